package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// defaultTimeout bounds a single repository call.
	defaultTimeout        = 5 * time.Second
	defaultConnectTimeout = 10 * time.Second
	defaultAppName        = "guardian-portal"
)

// Config describes the MongoDB deployment holding accounts and the audit trail.
type Config struct {
	URI         string
	Database    string
	AppName     string
	MaxPoolSize uint64
	Timeout     time.Duration
}

func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(c.URI).
		SetServerSelectionTimeout(c.timeout())
	if c.AppName != "" {
		opts.SetAppName(c.AppName)
	} else {
		opts.SetAppName(defaultAppName)
	}
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}
	return opts
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultConnectTimeout
	}
	return c.Timeout
}

// Connect opens a client, waits for the primary to answer and returns the
// configured database alongside the client.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	client, err := mongo.Connect(ctx, cfg.clientOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes owned by every repository in this package.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("%s indexes: %w", collectionUsers, err)
	}
	if err := NewLinkedUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("%s indexes: %w", collectionLinkedUsers, err)
	}
	if err := ensureAuthEventIndexes(ctx, db); err != nil {
		return fmt.Errorf("%s indexes: %w", collectionAuthEvents, err)
	}
	return nil
}
