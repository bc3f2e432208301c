package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

type GuardianService struct {
	repo ports.LinkedUserRepository
	log  zerolog.Logger
}

func NewGuardianService(repo ports.LinkedUserRepository, log zerolog.Logger) *GuardianService {
	return &GuardianService{repo: repo, log: log}
}

func (s *GuardianService) AddLinkedUser(ctx context.Context, guardianID string, in ports.LinkedUserInput) (*domain.LinkedUser, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidLinkedUser)
	}
	relation := domain.RelationType(in.RelationType)
	if !relation.Valid() {
		return nil, fmt.Errorf("%w: unknown relation type %q", domain.ErrInvalidLinkedUser, in.RelationType)
	}

	priority := in.PriorityLevel
	if priority == 0 {
		priority = domain.PriorityHigh
	}
	if priority < domain.PriorityHigh || priority > domain.PriorityLow {
		return nil, fmt.Errorf("%w: priority must be between %d and %d", domain.ErrInvalidLinkedUser, domain.PriorityHigh, domain.PriorityLow)
	}

	tracking := true
	if in.TrackingEnabled != nil {
		tracking = *in.TrackingEnabled
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.LinkedUser{
		GuardianID:      guardianID,
		Name:            name,
		RelationType:    relation,
		Age:             in.Age,
		Phone:           domain.NormalizePhone(in.Phone),
		PriorityLevel:   priority,
		TrackingEnabled: tracking,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		s.log.Error().Err(err).Str("guardian_id", guardianID).Msg("failed to add linked user")
		return nil, err
	}

	s.log.Info().Str("guardian_id", guardianID).Str("linked_user_id", created.ID).Msg("linked user added")
	return created, nil
}

// ListLinkedUsers returns the guardian's linked users, most urgent first.
func (s *GuardianService) ListLinkedUsers(ctx context.Context, guardianID string) ([]*domain.LinkedUser, error) {
	return s.repo.ListByGuardian(ctx, guardianID)
}

func (s *GuardianService) RemoveLinkedUser(ctx context.Context, guardianID, id string) error {
	if err := s.repo.Delete(ctx, guardianID, id); err != nil {
		return err
	}
	s.log.Info().Str("guardian_id", guardianID).Str("linked_user_id", id).Msg("linked user removed")
	return nil
}
