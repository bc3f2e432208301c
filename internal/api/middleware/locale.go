package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/core/domain"
)

// LanguageMatcher negotiates a supported language.
type LanguageMatcher interface {
	Match(acceptLanguage string) string
	Supported(code string) bool
}

// Locale picks the response language from ?lang= when supported, otherwise
// from Accept-Language, and stores it under KeyLang.
func Locale(m LanguageMatcher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if lang == "" || !m.Supported(lang) {
				lang = m.Match(c.Request().Header.Get("Accept-Language"))
			}
			c.Set(KeyLang, lang)
			c.Response().Header().Set("Content-Language", lang)
			return next(c)
		}
	}
}

// Lang returns the language chosen by Locale, or the default language when
// the middleware did not run.
func Lang(c echo.Context) string {
	if lang, ok := c.Get(KeyLang).(string); ok && lang != "" {
		return lang
	}
	return domain.DefaultLanguage
}
