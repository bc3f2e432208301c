package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/guardianlink/portal/internal/core/domain"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the JWT payload for both token types. Email and Roles are only
// set on access tokens.
type Claims struct {
	Email     string    `json:"email,omitempty"`
	Roles     []string  `json:"roles,omitempty"`
	SessionID string    `json:"sid"`
	Type      TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccess signs a short-lived token carrying the user's identity and roles.
func (t *TokenIssuer) IssueAccess(user *domain.User, sessionID string) (string, time.Time, error) {
	return t.sign(Claims{
		Email:     user.Email,
		Roles:     domain.RoleStrings(user.Roles),
		SessionID: sessionID,
		Type:      TokenAccess,
	}, user.ID, t.accessTTL)
}

// IssueRefresh signs a long-lived token that can only mint access tokens.
func (t *TokenIssuer) IssueRefresh(userID, sessionID string) (string, time.Time, error) {
	return t.sign(Claims{
		SessionID: sessionID,
		Type:      TokenRefresh,
	}, userID, t.refreshTTL)
}

// RefreshTTL is the lifetime of a session.
func (t *TokenIssuer) RefreshTTL() time.Duration {
	return t.refreshTTL
}

// ParseAccess verifies an access token.
func (t *TokenIssuer) ParseAccess(token string) (*Claims, error) {
	return t.Parse(token, TokenAccess)
}

// Parse verifies signature, expiry and token type. Every failure wraps
// domain.ErrInvalidToken.
func (t *TokenIssuer) Parse(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: expired", domain.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Type != want {
		return nil, fmt.Errorf("%w: expected %s token", domain.ErrInvalidToken, want)
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	return claims, nil
}

func (t *TokenIssuer) sign(claims Claims, subject string, ttl time.Duration) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}
