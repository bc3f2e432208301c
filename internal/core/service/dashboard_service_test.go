package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, u *domain.User) string {
	t.Helper()
	created, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created.ID
}

func TestDashboardService_UserDashboard(t *testing.T) {
	users := newStubUserRepo()
	joined := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	last := joined.Add(48 * time.Hour)
	id := seedUser(t, users, &domain.User{
		Email:     "u@example.com",
		Phone:     "+910000000002",
		FirstName: "Asha",
		LastName:  "Rao",
		Roles:     domain.RolesFor(false),
		LastLogin: &last,
		CreatedAt: joined,
	})
	svc := NewDashboardService(users, NewGuardianService(&stubLinkedRepo{}, zerolog.Nop()))

	d, err := svc.UserDashboard(context.Background(), id)
	if err != nil {
		t.Fatalf("UserDashboard: %v", err)
	}
	if d.Header.DisplayName != "Asha Rao" || d.Header.Email != "u@example.com" {
		t.Fatalf("unexpected header %+v", d.Header)
	}
	if d.Header.Preferences.Language != domain.DefaultLanguage {
		t.Fatalf("preferences defaults not applied: %+v", d.Header.Preferences)
	}
	if !d.Account.MemberSince.Equal(joined) || d.Account.LastLogin == nil || !d.Account.LastLogin.Equal(last) {
		t.Fatalf("unexpected account summary %+v", d.Account)
	}
	if d.Account.PasswordChangedAt != nil {
		t.Fatalf("password never changed, got %v", d.Account.PasswordChangedAt)
	}

	if _, err := svc.UserDashboard(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDashboardService_GuardianDashboard(t *testing.T) {
	users := newStubUserRepo()
	guardianID := seedUser(t, users, &domain.User{Email: "g@example.com", Phone: "+910000000003", Roles: domain.RolesFor(true)})
	userID := seedUser(t, users, &domain.User{Email: "n@example.com", Phone: "+910000000004", Roles: domain.RolesFor(false)})

	guardian := NewGuardianService(&stubLinkedRepo{}, zerolog.Nop())
	ctx := context.Background()
	for _, in := range []ports.LinkedUserInput{
		{Name: "A", RelationType: "child"},
		{Name: "B", RelationType: "parent", TrackingEnabled: ptr(false)},
		{Name: "C", RelationType: "spouse"},
	} {
		if _, err := guardian.AddLinkedUser(ctx, guardianID, in); err != nil {
			t.Fatalf("AddLinkedUser: %v", err)
		}
	}

	svc := NewDashboardService(users, guardian)

	d, err := svc.GuardianDashboard(ctx, guardianID)
	if err != nil {
		t.Fatalf("GuardianDashboard: %v", err)
	}
	if d.TotalLinked != 3 || d.TrackingEnabled != 2 || len(d.LinkedUsers) != 3 {
		t.Fatalf("unexpected counts: total=%d tracking=%d", d.TotalLinked, d.TrackingEnabled)
	}
	if d.Header.DisplayName != "g@example.com" {
		t.Fatalf("display name should fall back to email, got %q", d.Header.DisplayName)
	}

	if _, err := svc.GuardianDashboard(ctx, userID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a normal user, got %v", err)
	}
}
