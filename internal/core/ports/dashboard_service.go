package ports

import (
	"context"
	"time"

	"github.com/guardianlink/portal/internal/core/domain"
)

// DashboardHeader is shared by both dashboards.
type DashboardHeader struct {
	DisplayName string
	Email       string
	Roles       []domain.Role
	Preferences domain.Preferences
}

// AccountSummary is the account panel of the user dashboard.
type AccountSummary struct {
	MemberSince       time.Time
	LastLogin         *time.Time
	PasswordChangedAt *time.Time
}

// UserDashboard is the payload behind the /user route.
type UserDashboard struct {
	Header  DashboardHeader
	Account AccountSummary
}

// GuardianDashboard is the payload behind the /guardian route.
type GuardianDashboard struct {
	Header          DashboardHeader
	LinkedUsers     []*domain.LinkedUser
	TotalLinked     int
	TrackingEnabled int
}

// DashboardService assembles role-specific landing pages.
type DashboardService interface {
	UserDashboard(ctx context.Context, userID string) (*UserDashboard, error)
	GuardianDashboard(ctx context.Context, userID string) (*GuardianDashboard, error)
}
