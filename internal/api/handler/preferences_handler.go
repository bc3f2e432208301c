package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

// PreferencesHandler serves the per-user UI settings (theme, language, text size).
type PreferencesHandler struct {
	service ports.PreferencesService
}

func NewPreferencesHandler(service ports.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

type preferencesPatchRequest struct {
	DarkMode *bool   `json:"dark_mode"`
	Language *string `json:"language"  validate:"omitempty,min=2,max=8"`
	TextSize *string `json:"text_size" validate:"omitempty,textsize"`
}

// Get returns the caller's preferences.
//
// @Summary      Get preferences
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Preferences
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/me/preferences [get]
func (h *PreferencesHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	prefs, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

// Update applies a partial update; omitted fields keep their value.
//
// @Summary      Update preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      preferencesPatchRequest  true  "Fields to change"
// @Success      200   {object}  domain.Preferences
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/users/me/preferences [patch]
func (h *PreferencesHandler) Update(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req preferencesPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	prefs, err := h.service.Update(c.Request().Context(), userID, domain.PreferencesPatch{
		DarkMode: req.DarkMode,
		Language: req.Language,
		TextSize: req.TextSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}
