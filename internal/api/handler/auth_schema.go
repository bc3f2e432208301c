package handler

import (
	"time"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

type registerRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Phone      string `json:"phone"      validate:"required,phone"`
	Password   string `json:"password"   validate:"required"`
	FirstName  string `json:"first_name" validate:"required,max=50"`
	LastName   string `json:"last_name"  validate:"required,max=50"`
	IsGuardian bool   `json:"is_guardian"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Phone    string `json:"phone"    validate:"omitempty,phone"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

type passwordStrengthRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken      string       `json:"access_token"`
	RefreshToken     string       `json:"refresh_token"`
	TokenType        string       `json:"token_type"`
	ExpiresAt        time.Time    `json:"expires_at"`
	RefreshExpiresAt time.Time    `json:"refresh_expires_at"`
	SessionID        string       `json:"session_id"`
	RedirectTo       string       `json:"redirect_to"`
	User             *domain.User `json:"user"`
}

type refreshResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type sessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	SessionID     string        `json:"session_id"`
	UserID        string        `json:"user_id"`
	Email         string        `json:"email"`
	Roles         []domain.Role `json:"roles"`
	ExpiresAt     time.Time     `json:"expires_at"`
	RedirectTo    string        `json:"redirect_to"`
}

type passwordStrengthResponse struct {
	Score     int    `json:"score"`
	Valid     bool   `json:"valid"`
	Rule      string `json:"rule,omitempty"`
	MinLength int    `json:"min_length"`
	Message   string `json:"message"`
}

func toTokenResponse(r *ports.AuthResult) tokenResponse {
	return tokenResponse{
		AccessToken:      r.Tokens.AccessToken,
		RefreshToken:     r.Tokens.RefreshToken,
		TokenType:        "bearer",
		ExpiresAt:        r.Tokens.AccessExpiresAt,
		RefreshExpiresAt: r.Tokens.RefreshExpiresAt,
		SessionID:        r.SessionID,
		RedirectTo:       r.RedirectTo,
		User:             r.User,
	}
}
