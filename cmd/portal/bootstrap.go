package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/guardianlink/portal/internal/pkg/config"
	"github.com/guardianlink/portal/pkg/logger"
)

const connectTimeout = 10 * time.Second

// bootstrap loads the .env file and configuration and initialises the logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotenv(envFile); err != nil {
		return nil, zerolog.Nop(), err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	appVersion := cfg.AppVersion
	if appVersion == "dev" && version != "dev" {
		appVersion = version
	}
	cfg.AppVersion = appVersion

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "guardian-portal",
		Version: cfg.AppVersion,
	})
	return cfg, log, nil
}

func withConnectTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, connectTimeout)
}

func wrap(step string, err error) error {
	return fmt.Errorf("%s: %w", step, err)
}
