package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guardianlink/portal/internal/api/metrics"
	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

type auditService struct {
	repo ports.AuthEventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to repo.
func NewAuditService(repo ports.AuthEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event.
func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if event.Kind == "" {
		return fmt.Errorf("process audit event: missing kind")
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(event.Kind)).Inc()
	s.log.Debug().
		Str("user_id", event.UserID).
		Str("kind", string(event.Kind)).
		Msg("audit event stored")

	return nil
}
