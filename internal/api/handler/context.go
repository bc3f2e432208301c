package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/api/middleware"
	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fails fast before any service call when it is absent.
func ctxIdentity(c echo.Context) (userID, sessionID string, err error) {
	userID, _ = c.Get(middleware.KeyUserID).(string)
	sessionID, _ = c.Get(middleware.KeySessionID).(string)
	if userID == "" || sessionID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, sessionID, nil
}

func ctxRoles(c echo.Context) []domain.Role {
	roles, _ := c.Get(middleware.KeyRoles).([]domain.Role)
	return roles
}

func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// Translator resolves a message key for a language.
type Translator interface {
	T(lang, key string, args ...any) string
}
