package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/core/domain"
)

// RBAC enforces role-based access control. The caller needs any one of
// allowedRoles. Must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(KeyRoles).([]domain.Role)
			if !domain.HasAnyRole(roles, allowedRoles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
