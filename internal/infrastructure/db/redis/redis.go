package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultClientName  = "guardian-portal"
)

// Config describes the Redis deployment holding sessions.
type Config struct {
	// Addrs holds one address for a standalone server, or several for a
	// cluster or sentinel deployment.
	Addrs       []string
	MasterName  string
	Password    string
	DB          int
	ClientName  string
	DialTimeout time.Duration
}

func (c Config) options() *redis.UniversalOptions {
	dial := c.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	name := c.ClientName
	if name == "" {
		name = defaultClientName
	}
	return &redis.UniversalOptions{
		Addrs:       c.Addrs,
		MasterName:  c.MasterName,
		Password:    c.Password,
		DB:          c.DB,
		ClientName:  name,
		DialTimeout: dial,
	}
}

// Connect builds the client matching cfg and pings it before returning.
func Connect(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: no address configured")
	}

	opts := cfg.options()
	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %v: %w", cfg.Addrs, err)
	}
	return client, nil
}
