package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// FounderEmail is elevated to the founder role wherever it appears.
	FounderEmail string `env:"FOUNDER_EMAIL"`

	Firebase  FirebaseConfig
	DevAuth   DevAuthConfig
	Invite    InviteConfig
	Case      CaseConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type FirebaseConfig struct {
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
	CredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	APIKey          string `env:"FIREBASE_API_KEY"`
}

// DevAuthConfig enables the HS256 dev verifier in place of the provider.
// Only honoured outside production.
type DevAuthConfig struct {
	Enabled bool   `env:"DEV_AUTH_ENABLED, default=false"`
	Secret  string `env:"DEV_AUTH_SECRET"`
}

type InviteConfig struct {
	DefaultTTL time.Duration `env:"INVITE_DEFAULT_TTL, default=168h"`
}

type CaseConfig struct {
	Prefix string `env:"CASE_NUMBER_PREFIX, default=DPT"`
	Width  int    `env:"CASE_NUMBER_WIDTH,  default=5"`
}

type RateLimitConfig struct {
	AuthRequests int           `env:"RATE_LIMIT_AUTH_REQUESTS, default=10"`
	AuthWindow   time.Duration `env:"RATE_LIMIT_AUTH_WINDOW,   default=1m"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=care_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
