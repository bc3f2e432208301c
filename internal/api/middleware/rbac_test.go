package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name    string
		roles   any
		allowed []domain.Role
		wantErr error
	}{
		{"guardian on guardian route", domain.RolesFor(true), []domain.Role{domain.RoleGuardian}, nil},
		{"any of several roles", []domain.Role{domain.RoleAdmin}, []domain.Role{domain.RoleGuardian, domain.RoleAdmin}, nil},
		{"normal user on guardian route", domain.RolesFor(false), []domain.Role{domain.RoleGuardian}, domain.ErrForbidden},
		{"no roles in context", nil, []domain.Role{domain.RoleNormalUser}, domain.ErrForbidden},
		{"roles of the wrong type", []string{"guardian"}, []domain.Role{domain.RoleGuardian}, domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/guardian", nil), rec)
			if tt.roles != nil {
				c.Set(KeyRoles, tt.roles)
			}

			reached := false
			err := RBAC(tt.allowed...)(func(c echo.Context) error {
				reached = true
				return c.NoContent(http.StatusOK)
			})(c)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if reached {
					t.Fatalf("next handler must not run")
				}
				return
			}
			if err != nil || !reached || rec.Code != http.StatusOK {
				t.Fatalf("expected pass-through, got err=%v reached=%v code=%d", err, reached, rec.Code)
			}
		})
	}
}
