package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/api/middleware"
	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
	"github.com/guardianlink/portal/internal/core/service"
)

type AuthHandler struct {
	authService       ports.AuthService
	tr                Translator
	passwordMinLength int
}

func NewAuthHandler(authService ports.AuthService, tr Translator, passwordMinLength int) *AuthHandler {
	if passwordMinLength <= 0 {
		passwordMinLength = service.DefaultPasswordMinLength
	}
	return &AuthHandler{authService: authService, tr: tr, passwordMinLength: passwordMinLength}
}

// Register creates a new account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		IsGuardian: req.IsGuardian,
		Meta:       requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTokenResponse(result))
}

// Login authenticates by email or phone and returns a token pair plus the
// dashboard route for the account's role.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Email == "" && req.Phone == "" {
		return domain.ErrIdentifierRequired
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Meta:     requestMeta(c),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTokenResponse(result))
}

// Refresh exchanges a refresh token for a new access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken, requestMeta(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, refreshResponse{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   result.AccessExpiresAt,
	})
}

// Logout revokes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	_, sessionID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), sessionID, requestMeta(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the signed-in account.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Session reports whether the caller is authenticated and where to route them.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	_, sessionID, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	sess, err := h.authService.Session(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		SessionID:     sess.ID,
		UserID:        sess.UserID,
		Email:         sess.Email,
		Roles:         sess.Roles,
		ExpiresAt:     sess.ExpiresAt,
		RedirectTo:    domain.HomeRoute(sess.Roles),
	})
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/v1/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword, requestMeta(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// PasswordStrength scores a candidate password for the registration form.
//
// @Summary      Password strength
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordStrengthRequest  true  "Candidate password"
// @Success      200   {object}  passwordStrengthResponse
// @Router       /api/v1/auth/password-strength [post]
func (h *AuthHandler) PasswordStrength(c echo.Context) error {
	var req passwordStrengthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	resp := passwordStrengthResponse{
		Score:     service.PasswordStrength(req.Password),
		Valid:     true,
		MinLength: h.passwordMinLength,
		Message:   h.tr.T(middleware.Lang(c), "password.strong"),
	}

	var pe *domain.PasswordPolicyError
	if err := service.ValidatePassword(req.Password, h.passwordMinLength); errors.As(err, &pe) {
		resp.Valid = false
		resp.Rule = pe.Rule
		resp.MinLength = pe.MinLength
		if pe.Rule == domain.PasswordRuleLength {
			resp.Message = h.tr.T(middleware.Lang(c), "password."+pe.Rule, pe.MinLength)
		} else {
			resp.Message = h.tr.T(middleware.Lang(c), "password."+pe.Rule)
		}
	}

	return c.JSON(http.StatusOK, resp)
}
