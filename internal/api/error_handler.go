package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/guardianlink/portal/internal/api/middleware"
	"github.com/guardianlink/portal/internal/core/domain"
)

// Translator resolves a message key for a language.
type Translator interface {
	T(lang, key string, args ...any) string
}

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	Redirect string `json:"redirect,omitempty"`
}

// apiError is the resolved form of an error before translation.
type apiError struct {
	status   int
	code     string
	key      string
	args     []any
	message  string // used verbatim when key is empty
	redirect string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Translates the message into the language negotiated for the request.
//   - Tells the client to go back to the login page when authentication fails.
func NewHTTPErrorHandler(tr Translator, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ae := resolveError(err, log, c)
		msg := ae.message
		if ae.key != "" {
			msg = tr.T(middleware.Lang(c), ae.key, ae.args...)
		}

		resp := errorResponse{Error: msg, Code: ae.code, Redirect: ae.redirect}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ae.status)
			return
		}
		_ = c.JSON(ae.status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) apiError {
	var pe *domain.PasswordPolicyError
	if errors.As(err, &pe) {
		ae := apiError{status: http.StatusUnprocessableEntity, code: "password_" + pe.Rule, key: "password." + pe.Rule}
		if pe.Rule == domain.PasswordRuleLength {
			ae.args = []any{pe.MinLength}
		}
		return ae
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return resolveHTTPError(he)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apiError{status: http.StatusUnauthorized, code: "invalid_credentials", key: "errors.invalid_credentials"}
	case errors.Is(err, domain.ErrInvalidToken):
		return apiError{status: http.StatusUnauthorized, code: "invalid_token", key: "errors.invalid_token", redirect: domain.RouteLogin}
	case errors.Is(err, domain.ErrSessionNotFound):
		return apiError{status: http.StatusUnauthorized, code: "session_expired", key: "errors.session_expired", redirect: domain.RouteLogin}
	case errors.Is(err, domain.ErrAccountLocked):
		return apiError{status: http.StatusForbidden, code: "account_locked", key: "errors.account_locked"}
	case errors.Is(err, domain.ErrAccountInactive):
		return apiError{status: http.StatusForbidden, code: "account_inactive", key: "errors.account_inactive"}
	case errors.Is(err, domain.ErrForbidden):
		return apiError{status: http.StatusForbidden, code: "forbidden", key: "errors.forbidden"}
	case errors.Is(err, domain.ErrUserExists):
		return apiError{status: http.StatusConflict, code: "user_exists", key: "errors.user_exists"}
	case errors.Is(err, domain.ErrPhoneExists):
		return apiError{status: http.StatusConflict, code: "phone_exists", key: "errors.phone_exists"}
	case errors.Is(err, domain.ErrIdentifierRequired):
		return apiError{status: http.StatusBadRequest, code: "identifier_required", key: "errors.identifier_required"}
	case errors.Is(err, domain.ErrIncorrectPassword):
		return apiError{status: http.StatusBadRequest, code: "incorrect_password", key: "errors.incorrect_password"}
	case errors.Is(err, domain.ErrInvalidPreference):
		return apiError{status: http.StatusUnprocessableEntity, code: "invalid_preference", key: "errors.invalid_preference"}
	case errors.Is(err, domain.ErrInvalidLinkedUser):
		return apiError{status: http.StatusUnprocessableEntity, code: "invalid_linked_user", key: "errors.invalid_linked_user"}
	case errors.Is(err, domain.ErrUserNotFound):
		return apiError{status: http.StatusNotFound, code: "user_not_found", key: "errors.user_not_found"}
	case errors.Is(err, domain.ErrLinkedUserNotFound):
		return apiError{status: http.StatusNotFound, code: "linked_user_not_found", key: "errors.linked_user_not_found"}
	case errors.Is(err, domain.ErrLocaleNotFound):
		return apiError{status: http.StatusNotFound, code: "locale_not_found", key: "errors.locale_not_found"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return apiError{status: http.StatusInternalServerError, code: "internal", key: "errors.internal"}
}

func resolveHTTPError(he *echo.HTTPError) apiError {
	switch he.Code {
	case http.StatusBadRequest:
		return apiError{status: he.Code, code: "invalid_payload", key: "errors.invalid_payload"}
	case http.StatusUnauthorized:
		return apiError{status: he.Code, code: "unauthorized", key: "errors.unauthorized", redirect: domain.RouteLogin}
	case http.StatusForbidden:
		return apiError{status: he.Code, code: "forbidden", key: "errors.forbidden"}
	case http.StatusNotFound:
		return apiError{status: he.Code, code: "not_found", key: "errors.not_found"}
	case http.StatusUnprocessableEntity:
		return apiError{status: he.Code, code: "validation_failed", message: fmt.Sprintf("%v", he.Message)}
	}
	return apiError{status: he.Code, code: "http_error", message: fmt.Sprintf("%v", he.Message)}
}
