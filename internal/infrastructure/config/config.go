package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// TicketSecret signs the session tickets handed to clients.
	TicketSecret string `env:"TICKET_SECRET, required"`

	// HashScheme selects the password digest: "sha256" (legacy registry
	// format) or "bcrypt".
	HashScheme string `env:"HASH_SCHEME, default=sha256"`

	Accounts AccountsConfig
	Sessions SessionsConfig
	Audit    AuditConfig
	Guest    GuestConfig

	Mongo MongoConfig
	Redis RedisConfig
}

type AccountsConfig struct {
	// Backend is "file" (static JSON registry) or "mongo".
	Backend string `env:"ACCOUNTS_BACKEND, default=file"`
	File    string `env:"ACCOUNTS_FILE,    default=accounts.json"`
}

type SessionsConfig struct {
	// Backend is "memory" (single instance) or "redis".
	Backend string `env:"SESSIONS_BACKEND, default=memory"`
}

type AuditConfig struct {
	// Sink is "console" (transient, logged) or "mongo" (retained, served
	// back on the admin surface).
	Sink string `env:"AUDIT_SINK, default=console"`
	// Workers sizes the async fan-out in front of the sink.
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type GuestConfig struct {
	Token      string    `env:"GUEST_TOKEN"`
	ValidUntil time.Time `env:"GUEST_TOKEN_VALID_UNTIL"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=analysis_gate"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required fields are a deployment bug, not a runtime condition.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
