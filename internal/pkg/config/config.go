package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full runtime configuration. The two signing secrets are
// required and deliberately distinct: JWTSecret signs sessions,
// LicenseSigningSecret signs offline license assertions.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret            string        `env:"JWT_SECRET, required"`
	LicenseSigningSecret string        `env:"LICENSE_SIGNING_SECRET, required"`
	SessionTTL           time.Duration `env:"SESSION_TTL, default=168h"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX,    default=5"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`

	AuditRetention time.Duration `env:"AUDIT_RETENTION, default=720h"`
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL,  default=24h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=license_server"`
}

// RedisConfig is optional: an empty Addr selects the in-memory rate
// limiter backend.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// A missing required secret is a startup-time fatal condition.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
