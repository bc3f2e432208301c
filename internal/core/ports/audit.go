package ports

import (
	"context"

	"github.com/guardianlink/portal/internal/core/domain"
)

// AuditRecorder accepts audit events without blocking the caller.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditService processes a single audit event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
