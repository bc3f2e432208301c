package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/guardianlink/portal/docs"
	"github.com/guardianlink/portal/internal/api/handler"
	"github.com/guardianlink/portal/internal/api/middleware"
	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
	"github.com/guardianlink/portal/internal/i18n"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Auth        ports.AuthService
	Preferences ports.PreferencesService
	Dashboard   ports.DashboardService
	Guardian    ports.GuardianService

	Tokens   middleware.AccessTokenParser
	Sessions middleware.SessionGetter
	Bundle   *i18n.Bundle

	HealthChecks      map[string]handler.Check
	PasswordMinLength int
	AllowedOrigins    []string
	Version           string

	// Registerer receives the HTTP request metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Bundle, d.Logger)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "Accept-Language"},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portal",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Locale(i18n.NewMatcher(d.Bundle)))

	// --- Handlers ---
	rootHandler := handler.NewRootHandler(d.Version)
	authHandler := handler.NewAuthHandler(d.Auth, d.Bundle, d.PasswordMinLength)
	prefsHandler := handler.NewPreferencesHandler(d.Preferences)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard, d.Bundle)
	linkedHandler := handler.NewLinkedUserHandler(d.Guardian)
	localeHandler := handler.NewLocaleHandler(d.Bundle)
	healthHandler := handler.NewHealthHandler(d.Version)
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.HealthChecks)

	authMiddleware := middleware.Auth(d.Tokens, d.Sessions, d.Auth)
	guardianOnly := middleware.RBAC(domain.RoleGuardian)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/", rootHandler.Index)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/password-strength", authHandler.PasswordStrength)
	auth.POST("/logout", authHandler.Logout, authMiddleware)
	auth.GET("/me", authHandler.Me, authMiddleware)
	auth.GET("/session", authHandler.Session, authMiddleware)
	auth.POST("/change-password", authHandler.ChangePassword, authMiddleware)

	// --- Account settings ---
	users := v1.Group("/users/me", authMiddleware)
	users.GET("/preferences", prefsHandler.Get)
	users.PATCH("/preferences", prefsHandler.Update)

	// --- Dashboards ---
	dashboard := v1.Group("/dashboard", authMiddleware)
	dashboard.GET("/user", dashboardHandler.User)
	dashboard.GET("/guardian", dashboardHandler.Guardian, guardianOnly)

	// --- Guardian ---
	guardian := v1.Group("/guardian", authMiddleware, guardianOnly)
	guardian.GET("/linked-users", linkedHandler.List)
	guardian.POST("/linked-users", linkedHandler.Add)
	guardian.DELETE("/linked-users/:id", linkedHandler.Remove)

	// --- Locales ---
	v1.GET("/locales", localeHandler.List)
	v1.GET("/locales/:lang", localeHandler.Get)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				evt = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				evt = log.Warn()
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
