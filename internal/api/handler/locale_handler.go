package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LocaleBundle exposes the translation bundles shipped to the web client.
type LocaleBundle interface {
	Languages() []string
	Fallback() string
	Messages(lang string) (map[string]string, error)
}

type LocaleHandler struct {
	bundle LocaleBundle
}

func NewLocaleHandler(bundle LocaleBundle) *LocaleHandler {
	return &LocaleHandler{bundle: bundle}
}

type localesResponse struct {
	Languages []string `json:"languages"`
	Default   string   `json:"default"`
}

type localeResponse struct {
	Language string            `json:"language"`
	Messages map[string]string `json:"messages"`
}

// List handles GET /api/v1/locales.
//
// @Summary      Available languages
// @Tags         locales
// @Produce      json
// @Success      200  {object}  localesResponse
// @Router       /api/v1/locales [get]
func (h *LocaleHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, localesResponse{
		Languages: h.bundle.Languages(),
		Default:   h.bundle.Fallback(),
	})
}

// Get handles GET /api/v1/locales/:lang.
//
// @Summary      Locale bundle
// @Tags         locales
// @Produce      json
// @Param        lang  path      string  true  "Language code (en, hi)"
// @Success      200   {object}  localeResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/locales/{lang} [get]
func (h *LocaleHandler) Get(c echo.Context) error {
	lang := c.Param("lang")
	msgs, err := h.bundle.Messages(lang)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")
	return c.JSON(http.StatusOK, localeResponse{Language: lang, Messages: msgs})
}
