package service

import (
	"context"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

type dashboardService struct {
	users    ports.UserRepository
	guardian ports.GuardianService
}

func NewDashboardService(users ports.UserRepository, guardian ports.GuardianService) ports.DashboardService {
	return &dashboardService{users: users, guardian: guardian}
}

func (s *dashboardService) UserDashboard(ctx context.Context, userID string) (*ports.UserDashboard, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.UserDashboard{
		Header: header(user),
		Account: ports.AccountSummary{
			MemberSince:       user.CreatedAt,
			LastLogin:         user.LastLogin,
			PasswordChangedAt: user.PasswordChangedAt,
		},
	}, nil
}

func (s *dashboardService) GuardianDashboard(ctx context.Context, userID string) (*ports.GuardianDashboard, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(domain.RoleGuardian) {
		return nil, domain.ErrForbidden
	}

	linked, err := s.guardian.ListLinkedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	tracking := 0
	for _, lu := range linked {
		if lu.TrackingEnabled {
			tracking++
		}
	}

	return &ports.GuardianDashboard{
		Header:          header(user),
		LinkedUsers:     linked,
		TotalLinked:     len(linked),
		TrackingEnabled: tracking,
	}, nil
}

func header(u *domain.User) ports.DashboardHeader {
	return ports.DashboardHeader{
		DisplayName: u.DisplayName(),
		Email:       u.Email,
		Roles:       u.Roles,
		Preferences: withDefaults(u.Preferences),
	}
}
