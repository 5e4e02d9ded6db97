package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret = "change-me-jwt-secret"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"mentorship.db"`

	JWTSecret    string        `env:"JWT_SECRET" envDefault:"change-me-jwt-secret"`
	JWTAccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"24h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	MeetingBaseURL     string        `env:"MEETING_BASE_URL" envDefault:"https://meet.mentorship.local"`
	BookingMaxRetries  int           `env:"BOOKING_MAX_RETRIES" envDefault:"3"`
	CancellationWindow time.Duration `env:"CANCELLATION_WINDOW" envDefault:"24h"`

	NotificationRetention time.Duration `env:"NOTIFICATION_RETENTION" envDefault:"720h"`

	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s booking_max_retries=%d cancellation_window=%s otel=%t",
		cfg.AppEnv, cfg.HTTPAddr, cfg.BookingMaxRetries, cfg.CancellationWindow, cfg.OTelEnabled)

	return cfg, nil
}

func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.BookingMaxRetries < 1 {
		return fmt.Errorf("BOOKING_MAX_RETRIES must be >= 1")
	}
	if cfg.CancellationWindow <= 0 {
		return fmt.Errorf("CANCELLATION_WINDOW must be > 0")
	}
	if cfg.NotificationRetention <= 0 {
		return fmt.Errorf("NOTIFICATION_RETENTION must be > 0")
	}
	if strings.TrimSpace(cfg.MeetingBaseURL) == "" {
		return fmt.Errorf("MEETING_BASE_URL must not be empty")
	}
	if cfg.OTelEnabled && strings.TrimSpace(cfg.OTelEndpoint) == "" {
		return fmt.Errorf("OTEL_ENDPOINT must be set when OTEL_ENABLED=true")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
