package domain

import "time"

// RelationType describes how a linked user relates to their guardian.
type RelationType string

const (
	RelationParent    RelationType = "parent"
	RelationChild     RelationType = "child"
	RelationSpouse    RelationType = "spouse"
	RelationSibling   RelationType = "sibling"
	RelationFriend    RelationType = "friend"
	RelationColleague RelationType = "colleague"
	RelationOther     RelationType = "other"
)

// Valid reports whether r is one of the known relation types.
func (r RelationType) Valid() bool {
	switch r {
	case RelationParent, RelationChild, RelationSpouse, RelationSibling,
		RelationFriend, RelationColleague, RelationOther:
		return true
	}
	return false
}

// Priority levels for linked users. Lower is more urgent.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// LinkedUser is a person a guardian watches over.
type LinkedUser struct {
	ID              string       `json:"id"`
	GuardianID      string       `json:"guardian_id"`
	Name            string       `json:"name"`
	RelationType    RelationType `json:"relation_type"`
	Age             *int         `json:"age,omitempty"`
	Phone           string       `json:"phone,omitempty"`
	PriorityLevel   int          `json:"priority_level"`
	TrackingEnabled bool         `json:"tracking_enabled"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
