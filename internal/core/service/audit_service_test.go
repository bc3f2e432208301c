package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardianlink/portal/internal/core/domain"
)

type stubEventRepo struct {
	events []domain.AuthEvent
	err    error
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *e)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuthEvent{UserID: "u1", Email: "a@example.com", Kind: domain.EventLoginSucceeded, At: time.Now()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Kind != domain.EventLoginSucceeded {
		t.Fatalf("event not stored: %+v", repo.events)
	}
}

func TestAuditService_RejectsMissingKind(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.AuthEvent{UserID: "u1"}); err == nil {
		t.Fatalf("expected error for event without kind")
	}
	if len(repo.events) != 0 {
		t.Fatalf("invalid event stored")
	}
}

func TestAuditService_WrapsRepositoryError(t *testing.T) {
	boom := errors.New("insert failed")
	svc := NewAuditService(&stubEventRepo{err: boom}, zerolog.Nop())

	err := svc.Process(context.Background(), domain.AuthEvent{UserID: "u1", Kind: domain.EventLoggedOut})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}
