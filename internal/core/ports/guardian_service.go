package ports

import (
	"context"

	"github.com/guardianlink/portal/internal/core/domain"
)

// LinkedUserInput carries the add-linked-user form.
type LinkedUserInput struct {
	Name            string
	RelationType    string
	Age             *int
	Phone           string
	PriorityLevel   int
	TrackingEnabled *bool
}

// GuardianService manages a guardian's linked users.
type GuardianService interface {
	AddLinkedUser(ctx context.Context, guardianID string, in LinkedUserInput) (*domain.LinkedUser, error)
	ListLinkedUsers(ctx context.Context, guardianID string) ([]*domain.LinkedUser, error)
	RemoveLinkedUser(ctx context.Context, guardianID, id string) error
}
