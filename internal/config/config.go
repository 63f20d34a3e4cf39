package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Optional YAML rule table; the built-in table is used when empty.
	RulesFile string `env:"UNIBOT_RULES_FILE"`

	ThinkingDelay time.Duration `env:"UNIBOT_THINKING_DELAY" envDefault:"0s"`
	LogLevel      string        `env:"UNIBOT_LOG_LEVEL" envDefault:"info"`
	AllowedOrigin string        `env:"UNIBOT_ALLOWED_ORIGIN" envDefault:"http://localhost:5173"`

	// Seed for fallback selection, 0 picks a time-based seed.
	Seed uint64 `env:"UNIBOT_SEED" envDefault:"0"`

	// HTTP sessions idle for SessionTTL are discarded; at most MaxSessions live at once.
	SessionTTL  time.Duration `env:"UNIBOT_SESSION_TTL" envDefault:"30m"`
	MaxSessions int           `env:"UNIBOT_MAX_SESSIONS" envDefault:"10000"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.ThinkingDelay < 0 {
		return fmt.Errorf("UNIBOT_THINKING_DELAY must not be negative, got %s", c.ThinkingDelay)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("UNIBOT_SESSION_TTL must not be negative, got %s", c.SessionTTL)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("UNIBOT_MAX_SESSIONS must not be negative, got %d", c.MaxSessions)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("UNIBOT_LOG_LEVEL must be one of debug|info|warn|error, got %q", c.LogLevel)
	}
	return nil
}

func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
