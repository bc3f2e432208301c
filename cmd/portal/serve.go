package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/guardianlink/portal/internal/api"
	"github.com/guardianlink/portal/internal/api/handler"
	"github.com/guardianlink/portal/internal/core/service"
	"github.com/guardianlink/portal/internal/i18n"
	mongodb "github.com/guardianlink/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/guardianlink/portal/internal/infrastructure/db/redis"
	"github.com/guardianlink/portal/internal/infrastructure/queue"
)

const shutdownTimeout = 15 * time.Second

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not create MongoDB indexes on startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting guardian portal")

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return wrap("connect mongo", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if !skipMigrate {
		ictx, cancel := withConnectTimeout(ctx)
		err := mongodb.EnsureIndexes(ictx, db)
		cancel()
		if err != nil {
			return wrap("ensure indexes", err)
		}
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addrs:      cfg.Redis.Addrs,
		MasterName: cfg.Redis.MasterName,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
	})
	if err != nil {
		return wrap("connect redis", err)
	}
	defer func() { _ = rdb.Close() }()

	bundle, err := i18n.Load()
	if err != nil {
		return wrap("load locales", err)
	}

	// --- Audit pipeline ---
	// Workers outlive the request context so queued events drain after the
	// server stops accepting traffic.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(mongodb.NewAuthEventRepository(db), log), log)
	dispatcher.Start(auditCtx)

	// --- Services ---
	users := mongodb.NewUserRepository(db)
	sessions := redisdb.NewSessionStore(rdb)
	tokens := service.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	authService := service.NewAuthService(users, sessions, tokens, dispatcher, service.AuthConfig{
		PasswordMinLength: cfg.Auth.PasswordMinLength,
		MaxLoginAttempts:  cfg.Auth.MaxLoginAttempts,
		LockoutDuration:   cfg.Auth.LockoutDuration,
	}, log)
	guardianService := service.NewGuardianService(mongodb.NewLinkedUserRepository(db), log)

	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Preferences: service.NewPreferencesService(users, bundle.Languages()),
		Dashboard:   service.NewDashboardService(users, guardianService),
		Guardian:    guardianService,
		Tokens:      tokens,
		Sessions:    sessions,
		Bundle:      bundle,
		HealthChecks: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		PasswordMinLength: cfg.Auth.PasswordMinLength,
		AllowedOrigins:    cfg.AllowedOrigins,
		Version:           cfg.AppVersion,
		Logger:            log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-serverErr:
		if err != nil {
			stopAudit()
			dispatcher.Wait()
			return wrap("http server", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	stopAudit()
	dispatcher.Wait()
	log.Info().Msg("audit queue drained; bye")
	return nil
}
