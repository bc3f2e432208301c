package ports

import (
	"context"
	"time"

	"github.com/guardianlink/portal/internal/core/domain"
)

// RequestMeta identifies the caller for the audit trail.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email      string
	Phone      string
	Password   string
	FirstName  string
	LastName   string
	IsGuardian bool
	Meta       RequestMeta
}

// LoginInput identifies the account by email or, failing that, phone.
type LoginInput struct {
	Email    string
	Phone    string
	Password string
	Meta     RequestMeta
}

// TokenPair is what the client stores after authenticating.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Tokens    TokenPair
	User      *domain.User
	SessionID string
	// RedirectTo is the dashboard route for the user's role.
	RedirectTo string
}

// RefreshResult is returned by Refresh.
type RefreshResult struct {
	AccessToken     string
	AccessExpiresAt time.Time
}

// AuthService covers the account lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string, meta RequestMeta) error
	Refresh(ctx context.Context, refreshToken string, meta RequestMeta) (*RefreshResult, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	Session(ctx context.Context, sessionID string) (domain.Session, error)
	ChangePassword(ctx context.Context, userID, current, next string, meta RequestMeta) error
}
