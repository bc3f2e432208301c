package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianlink/portal/internal/api/middleware"
	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/i18n"
)

func TestHTTPErrorHandler(t *testing.T) {
	bundle, err := i18n.Load()
	require.NoError(t, err)

	tests := []struct {
		name     string
		err      error
		lang     string
		status   int
		code     string
		message  string
		redirect string
	}{
		{
			name:    "invalid credentials",
			err:     domain.ErrInvalidCredentials,
			status:  http.StatusUnauthorized,
			code:    "invalid_credentials",
			message: "Invalid credentials",
		},
		{
			name:     "wrapped invalid token redirects to login",
			err:      fmt.Errorf("%w: expired", domain.ErrInvalidToken),
			status:   http.StatusUnauthorized,
			code:     "invalid_token",
			message:  "Could not validate credentials",
			redirect: "/login",
		},
		{
			name:     "revoked session redirects to login",
			err:      domain.ErrSessionNotFound,
			status:   http.StatusUnauthorized,
			code:     "session_expired",
			redirect: "/login",
		},
		{
			name:     "missing header redirects to login",
			err:      echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header"),
			status:   http.StatusUnauthorized,
			code:     "unauthorized",
			redirect: "/login",
		},
		{name: "locked", err: domain.ErrAccountLocked, status: http.StatusForbidden, code: "account_locked"},
		{name: "inactive", err: domain.ErrAccountInactive, status: http.StatusForbidden, code: "account_inactive"},
		{name: "forbidden", err: domain.ErrForbidden, status: http.StatusForbidden, code: "forbidden"},
		{name: "duplicate email", err: domain.ErrUserExists, status: http.StatusConflict, code: "user_exists"},
		{name: "duplicate phone", err: domain.ErrPhoneExists, status: http.StatusConflict, code: "phone_exists"},
		{name: "identifier", err: domain.ErrIdentifierRequired, status: http.StatusBadRequest, code: "identifier_required"},
		{name: "bad current password", err: domain.ErrIncorrectPassword, status: http.StatusBadRequest, code: "incorrect_password"},
		{name: "linked user missing", err: domain.ErrLinkedUserNotFound, status: http.StatusNotFound, code: "linked_user_not_found"},
		{name: "locale missing", err: fmt.Errorf("%w: fr", domain.ErrLocaleNotFound), status: http.StatusNotFound, code: "locale_not_found"},
		{
			name:    "invalid preference",
			err:     fmt.Errorf("%w: text size", domain.ErrInvalidPreference),
			status:  http.StatusUnprocessableEntity,
			code:    "invalid_preference",
			message: "Invalid preference value",
		},
		{
			name:    "password policy length",
			err:     &domain.PasswordPolicyError{Rule: domain.PasswordRuleLength, MinLength: 10},
			status:  http.StatusUnprocessableEntity,
			code:    "password_length",
			message: "Password must be at least 10 characters long",
		},
		{
			name:    "password policy translated",
			err:     &domain.PasswordPolicyError{Rule: domain.PasswordRuleDigit, MinLength: 8},
			lang:    "hi",
			status:  http.StatusUnprocessableEntity,
			code:    "password_digit",
			message: "पासवर्ड में कम से कम एक अंक होना चाहिए",
		},
		{
			name:    "translated domain error",
			err:     domain.ErrInvalidCredentials,
			lang:    "hi",
			status:  http.StatusUnauthorized,
			code:    "invalid_credentials",
			message: "अमान्य क्रेडेंशियल",
		},
		{
			name:    "validation message passes through",
			err:     echo.NewHTTPError(http.StatusUnprocessableEntity, "email must be a valid email"),
			status:  http.StatusUnprocessableEntity,
			code:    "validation_failed",
			message: "email must be a valid email",
		},
		{
			name:    "unexpected error is hidden",
			err:     errors.New("mongo: connection reset"),
			status:  http.StatusInternalServerError,
			code:    "internal",
			message: "Something went wrong, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.lang != "" {
				c.Set(middleware.KeyLang, tt.lang)
			}

			NewHTTPErrorHandler(bundle, zerolog.Nop())(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.redirect, body.Redirect)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Error)
			}
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	bundle, err := i18n.Load()
	require.NoError(t, err)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	NewHTTPErrorHandler(bundle, zerolog.Nop())(domain.ErrForbidden, c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
