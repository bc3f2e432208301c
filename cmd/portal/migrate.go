package main

import (
	"github.com/spf13/cobra"

	mongodb "github.com/guardianlink/portal/internal/infrastructure/db/mongo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create MongoDB indexes for users, linked users and the audit trail",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "guardian-portal-migrate",
	})
	if err != nil {
		return wrap("connect mongo", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	ictx, cancel := withConnectTimeout(ctx)
	defer cancel()
	if err := mongodb.EnsureIndexes(ictx, db); err != nil {
		return wrap("ensure indexes", err)
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("indexes up to date")
	return nil
}
