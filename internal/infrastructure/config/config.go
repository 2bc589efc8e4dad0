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

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	// TeacherInviteCode gates teacher signup. A shared secret compared
	// verbatim; a mismatch is a validation failure, not an auth failure.
	TeacherInviteCode string `env:"TEACHER_INVITE_CODE, default=5050"`

	// StudentSessionTTL bounds both the session cookie max-age and the
	// seat reservation expiry.
	StudentSessionTTL time.Duration `env:"STUDENT_SESSION_TTL, default=8h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=classroom_access"`
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

// Validate fails closed on missing required settings. The JWT secret has no
// safe default outside development.
func (c *Config) Validate() error {
	if c.JWTSecret == "" && c.Env != "development" {
		return fmt.Errorf("config: JWT_SECRET is required when ENV=%s", c.Env)
	}
	return nil
}
