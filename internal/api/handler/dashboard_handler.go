package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/api/middleware"
	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

// DashboardHandler serves the role-specific landing pages.
type DashboardHandler struct {
	service ports.DashboardService
	tr      Translator
}

func NewDashboardHandler(service ports.DashboardService, tr Translator) *DashboardHandler {
	return &DashboardHandler{service: service, tr: tr}
}

type dashboardHeader struct {
	Title       string             `json:"title"`
	Welcome     string             `json:"welcome"`
	DisplayName string             `json:"display_name"`
	Email       string             `json:"email"`
	Roles       []domain.Role      `json:"roles"`
	Preferences domain.Preferences `json:"preferences"`
}

type accountSummary struct {
	MemberSince       time.Time  `json:"member_since"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	PasswordChangedAt *time.Time `json:"password_changed_at,omitempty"`
}

type userDashboardResponse struct {
	Header  dashboardHeader `json:"header"`
	Account accountSummary  `json:"account"`
}

type guardianDashboardResponse struct {
	Header          dashboardHeader      `json:"header"`
	LinkedUsers     []*domain.LinkedUser `json:"linked_users"`
	TotalLinked     int                  `json:"total_linked"`
	TrackingEnabled int                  `json:"tracking_enabled"`
}

// User handles GET /api/v1/dashboard/user.
//
// @Summary      User dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userDashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/dashboard/user [get]
func (h *DashboardHandler) User(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	d, err := h.service.UserDashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userDashboardResponse{
		Header: h.header(c, d.Header, "dashboard.user_title"),
		Account: accountSummary{
			MemberSince:       d.Account.MemberSince,
			LastLogin:         d.Account.LastLogin,
			PasswordChangedAt: d.Account.PasswordChangedAt,
		},
	})
}

// Guardian handles GET /api/v1/dashboard/guardian.
//
// @Summary      Guardian dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  guardianDashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/dashboard/guardian [get]
func (h *DashboardHandler) Guardian(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	d, err := h.service.GuardianDashboard(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	linked := d.LinkedUsers
	if linked == nil {
		linked = []*domain.LinkedUser{}
	}
	return c.JSON(http.StatusOK, guardianDashboardResponse{
		Header:          h.header(c, d.Header, "dashboard.guardian_title"),
		LinkedUsers:     linked,
		TotalLinked:     d.TotalLinked,
		TrackingEnabled: d.TrackingEnabled,
	})
}

// header localizes titles in the user's saved language, or the negotiated
// one when the account has none.
func (h *DashboardHandler) header(c echo.Context, hd ports.DashboardHeader, titleKey string) dashboardHeader {
	lang := hd.Preferences.Language
	if lang == "" {
		lang = middleware.Lang(c)
	}
	return dashboardHeader{
		Title:       h.tr.T(lang, titleKey),
		Welcome:     h.tr.T(lang, "dashboard.welcome", hd.DisplayName),
		DisplayName: hd.DisplayName,
		Email:       hd.Email,
		Roles:       hd.Roles,
		Preferences: hd.Preferences,
	}
}
