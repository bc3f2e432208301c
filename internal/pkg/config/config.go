package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const minProductionSecretLength = 32

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	AppVersion string `env:"APP_VERSION, default=dev"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:3000"`
	AuditWorkers   int      `env:"AUDIT_WORKERS,   default=4"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET, required"`
	AccessTokenTTL    time.Duration `env:"ACCESS_TOKEN_TTL,    default=30m"`
	RefreshTokenTTL   time.Duration `env:"REFRESH_TOKEN_TTL,   default=168h"`
	PasswordMinLength int           `env:"PASSWORD_MIN_LENGTH, default=8"`
	MaxLoginAttempts  int           `env:"MAX_LOGIN_ATTEMPTS,  default=5"`
	LockoutDuration   time.Duration `env:"LOCKOUT_DURATION,    default=30m"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=guardian_portal"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=50"`
}

// RedisConfig accepts a comma separated REDIS_ADDR. Several addresses select
// a cluster client, or a failover client when REDIS_MASTER_NAME is set.
type RedisConfig struct {
	Addrs      []string `env:"REDIS_ADDR,        default=localhost:6379"`
	MasterName string   `env:"REDIS_MASTER_NAME"`
	DB         int      `env:"REDIS_DB,          default=0"`
	Password   string   `env:"REDIS_PASSWORD"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks constraints envconfig tags cannot express.
func (c *Config) Validate() error {
	if c.IsProduction() && len(c.Auth.JWTSecret) < minProductionSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in production", minProductionSecretLength)
	}
	if c.Auth.PasswordMinLength < 6 {
		return errors.New("PASSWORD_MIN_LENGTH must be at least 6")
	}
	if c.Auth.MaxLoginAttempts < 1 {
		return errors.New("MAX_LOGIN_ATTEMPTS must be positive")
	}
	if c.Auth.AccessTokenTTL >= c.Auth.RefreshTokenTTL {
		return errors.New("ACCESS_TOKEN_TTL must be shorter than REFRESH_TOKEN_TTL")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom is Load with an explicit source of values.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadDotenv copies values from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
