package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/guardianlink/portal/internal/core/domain"
)

type RootHandler struct {
	version string
}

func NewRootHandler(version string) *RootHandler {
	return &RootHandler{version: version}
}

type discoveryResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Login   string `json:"login"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}

// Index sends browsers to the login page; API clients get a discovery document.
func (h *RootHandler) Index(c echo.Context) error {
	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML) {
		return c.Redirect(http.StatusFound, domain.RouteLogin)
	}
	return c.JSON(http.StatusOK, discoveryResponse{
		Name:    "guardian-portal",
		Version: h.version,
		Login:   "/api/v1/auth/login",
		Docs:    "/swagger/index.html",
		Health:  "/health",
	})
}
