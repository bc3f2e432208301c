package ports

import (
	"context"
	"time"

	"github.com/guardianlink/portal/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	// Create inserts a new user. Duplicate email or phone surfaces as
	// domain.ErrUserExists or domain.ErrPhoneExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)

	// IncrementLoginAttempts atomically bumps the failure counter and returns
	// the new value.
	IncrementLoginAttempts(ctx context.Context, id string) (int, error)
	// LockUntil records a lockout that expires at until.
	LockUntil(ctx context.Context, id string, until time.Time) error
	// ResetLoginAttempts clears the failure counter and any lockout.
	ResetLoginAttempts(ctx context.Context, id string) error
	// RecordLogin resets the failure counter, clears any lockout and stamps last_login.
	RecordLogin(ctx context.Context, id string, at time.Time) error
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
	// UpdatePreferences writes only the fields set in patch, in one atomic
	// update, and returns the preferences as stored afterwards.
	UpdatePreferences(ctx context.Context, id string, patch domain.PreferencesPatch) (domain.Preferences, error)
}
