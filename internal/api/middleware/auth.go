package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/service"
)

// AccessTokenParser verifies access tokens.
type AccessTokenParser interface {
	ParseAccess(token string) (*service.Claims, error)
}

// SessionGetter looks up live sessions.
type SessionGetter interface {
	Get(ctx context.Context, id string) (domain.Session, error)
}

// AccountGetter loads the caller's account and rejects inactive or locked
// ones with domain.ErrAccountInactive or domain.ErrAccountLocked.
type AccountGetter interface {
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// Auth validates the bearer token, checks that its session is still alive and
// that the account may still sign in, then injects the caller's identity into
// context. Roles come from the stored account, not the token.
func Auth(tokens AccessTokenParser, sessions SessionGetter, accounts AccountGetter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.ParseAccess(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			// Logout deletes the session, which invalidates every token bound to it.
			sess, err := sessions.Get(c.Request().Context(), claims.SessionID)
			if err != nil {
				return err
			}
			if sess.UserID != claims.Subject {
				return fmt.Errorf("%w: session owner mismatch", domain.ErrInvalidToken)
			}

			user, err := accounts.CurrentUser(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return fmt.Errorf("%w: account no longer exists", domain.ErrInvalidToken)
				}
				return err
			}

			c.Set(KeyUserID, user.ID)
			c.Set(KeyEmail, user.Email)
			c.Set(KeyRoles, user.Roles)
			c.Set(KeySessionID, claims.SessionID)

			return next(c)
		}
	}
}
