package domain

import (
	"strings"
	"time"
)

// Role is an account capability. A user may hold several.
type Role string

const (
	RoleNormalUser Role = "normal_user"
	RoleGuardian   Role = "guardian"
	RoleDriver     Role = "driver"
	RoleAdmin      Role = "admin"
)

// Client-side landing routes per account type.
const (
	RouteLogin    = "/login"
	RouteGuardian = "/guardian"
	RouteUser     = "/user"
)

// User models an account holder.
type User struct {
	ID                string      `json:"id"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	PasswordHash      string      `json:"-"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Roles             []Role      `json:"roles"`
	IsGuardian        bool        `json:"is_guardian"`
	IsActive          bool        `json:"is_active"`
	LoginAttempts     int         `json:"-"`
	LockedUntil       *time.Time  `json:"-"`
	LastLogin         *time.Time  `json:"last_login,omitempty"`
	PasswordChangedAt *time.Time  `json:"password_changed_at,omitempty"`
	Preferences       Preferences `json:"preferences"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// HasRole reports whether the user holds r.
func (u *User) HasRole(r Role) bool {
	return HasAnyRole(u.Roles, r)
}

// IsLocked reports whether a lockout is still in effect at now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// DisplayName is the name shown in dashboard headers.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// RolesFor returns the roles granted at registration.
func RolesFor(isGuardian bool) []Role {
	roles := []Role{RoleNormalUser}
	if isGuardian {
		roles = append(roles, RoleGuardian)
	}
	return roles
}

// HasAnyRole reports whether roles intersects want.
func HasAnyRole(roles []Role, want ...Role) bool {
	for _, r := range roles {
		for _, w := range want {
			if r == w {
				return true
			}
		}
	}
	return false
}

// HomeRoute is the dashboard route a session lands on after authentication.
func HomeRoute(roles []Role) string {
	if HasAnyRole(roles, RoleGuardian) {
		return RouteGuardian
	}
	return RouteUser
}

// RoleStrings flattens roles for token claims and JSON payloads.
func RoleStrings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// ParseRoles is the inverse of RoleStrings. Unknown values are kept verbatim.
func ParseRoles(values []string) []Role {
	out := make([]Role, len(values))
	for i, v := range values {
		out[i] = Role(v)
	}
	return out
}

// NormalizePhone is the stored form of a phone number: spaces, dashes, dots
// and parentheses removed, a leading + kept.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
