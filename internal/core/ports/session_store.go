package ports

import (
	"context"

	"github.com/guardianlink/portal/internal/core/domain"
)

// SessionStore keeps live sessions. Expired sessions behave as absent.
type SessionStore interface {
	Save(ctx context.Context, sess domain.Session) error
	// Get returns domain.ErrSessionNotFound for unknown or expired IDs.
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}
