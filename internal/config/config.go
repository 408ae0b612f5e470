// Package config loads the service configuration from an optional
// config.yml and the environment. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port      int    `mapstructure:"PORT"`
	Env       string `mapstructure:"APP_ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBDSN    string `mapstructure:"DB_DSN"`

	CacheDriver string        `mapstructure:"CACHE_DRIVER"`
	RedisURL    string        `mapstructure:"REDIS_URL"`
	CacheTTL    time.Duration `mapstructure:"CACHE_TTL"`

	JWTHMACSecret string `mapstructure:"JWT_HMAC_SECRET"`
	JWTPublicKey  string `mapstructure:"JWT_PUBLIC_KEY"`
	JWTIssuer     string `mapstructure:"JWT_ISSUER"`

	KeycloakURL               string        `mapstructure:"KEYCLOAK_URL"`
	KeycloakRealm             string        `mapstructure:"KEYCLOAK_REALM"`
	KeycloakAdminUsername     string        `mapstructure:"KEYCLOAK_ADMIN_USERNAME"`
	KeycloakAdminPassword     string        `mapstructure:"KEYCLOAK_ADMIN_PASSWORD"`
	KeycloakRegistrationRole  string        `mapstructure:"KEYCLOAK_REGISTRATION_ROLE"`
	KeycloakRollbackOnFailure bool          `mapstructure:"KEYCLOAK_ROLLBACK_ON_FAILURE"`
	// KeycloakHTTPTimeout bounds each identity-provider call. 0 means no
	// timeout.
	KeycloakHTTPTimeout       time.Duration `mapstructure:"KEYCLOAK_HTTP_TIMEOUT"`
}

var defaults = map[string]any{
	"PORT":       9090,
	"APP_ENV":    "development",
	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "text",

	"DB_DRIVER": "sqlite",
	"DB_DSN":    "data/portfolio.db",

	"CACHE_DRIVER": "memory",
	"REDIS_URL":    "redis://localhost:6379/0",
	"CACHE_TTL":    "10m",

	"JWT_HMAC_SECRET": "",
	"JWT_PUBLIC_KEY":  "",
	"JWT_ISSUER":      "",

	"KEYCLOAK_URL":                 "http://localhost:8080",
	"KEYCLOAK_REALM":               "portfolio",
	"KEYCLOAK_ADMIN_USERNAME":      "admin",
	"KEYCLOAK_ADMIN_PASSWORD":      "",
	"KEYCLOAK_REGISTRATION_ROLE":   "client",
	"KEYCLOAK_ROLLBACK_ON_FAILURE": false,
	"KEYCLOAK_HTTP_TIMEOUT":        "0s",
}

// Load reads config.yml from the working directory (or ./config) when
// present, overlays the environment and validates the result.
func Load() (*Config, error) {
	return load(".", "./config")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	// Every key needs a default, or AutomaticEnv values are invisible to
	// Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// PEM keys usually arrive through env files with escaped newlines.
	cfg.JWTPublicKey = strings.ReplaceAll(cfg.JWTPublicKey, `\n`, "\n")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that required values are present and that every enum-like
// setting names something the service supports.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}

	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}

	switch c.CacheDriver {
	case "memory", "none":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when CACHE_DRIVER is redis")
		}
	default:
		return fmt.Errorf("CACHE_DRIVER must be memory, redis or none, got %q", c.CacheDriver)
	}
	if c.CacheTTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}

	hasSecret, hasKey := c.JWTHMACSecret != "", c.JWTPublicKey != ""
	switch {
	case !hasSecret && !hasKey:
		return errors.New("one of JWT_HMAC_SECRET or JWT_PUBLIC_KEY is required")
	case hasSecret && hasKey:
		return errors.New("set only one of JWT_HMAC_SECRET and JWT_PUBLIC_KEY")
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	if c.KeycloakURL == "" || c.KeycloakRealm == "" {
		return errors.New("KEYCLOAK_URL and KEYCLOAK_REALM are required")
	}
	if c.KeycloakHTTPTimeout < 0 {
		return errors.New("KEYCLOAK_HTTP_TIMEOUT must not be negative")
	}

	if c.IsProduction() && c.KeycloakAdminPassword == "" {
		return errors.New("KEYCLOAK_ADMIN_PASSWORD is required in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// SlogLevel parses LOG_LEVEL ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
