package ports

import (
	"context"

	"github.com/guardianlink/portal/internal/core/domain"
)

// LinkedUserRepository persists the people a guardian watches over.
type LinkedUserRepository interface {
	Create(ctx context.Context, lu *domain.LinkedUser) (*domain.LinkedUser, error)
	ListByGuardian(ctx context.Context, guardianID string) ([]*domain.LinkedUser, error)
	// Delete removes id only when it belongs to guardianID; otherwise it
	// returns domain.ErrLinkedUserNotFound.
	Delete(ctx context.Context, guardianID, id string) error
}
