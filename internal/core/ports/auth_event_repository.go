package ports

import (
	"context"

	"github.com/guardianlink/portal/internal/core/domain"
)

// AuthEventRepository persists the authentication audit trail.
type AuthEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}
