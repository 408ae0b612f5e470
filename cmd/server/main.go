// Package main is the entry point for the portfolio service.
//
// main only composes: it loads configuration, builds the logger, opens the
// store and cache, and hands the wired services to internal/server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/paul-ayesiga/portfolio-service/internal/auth"
	"github.com/paul-ayesiga/portfolio-service/internal/cache"
	"github.com/paul-ayesiga/portfolio-service/internal/config"
	"github.com/paul-ayesiga/portfolio-service/internal/keycloak"
	"github.com/paul-ayesiga/portfolio-service/internal/repository/sqlstore"
	"github.com/paul-ayesiga/portfolio-service/internal/server"
	"github.com/paul-ayesiga/portfolio-service/internal/service"
	"github.com/paul-ayesiga/portfolio-service/internal/validation"
)

func main() {
	// === 1. CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. LOGGING ===
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	// === 3. STORE ===
	if cfg.DBDriver == string(sqlstore.DialectSQLite) {
		if err := ensureDir(cfg.DBDSN); err != nil {
			return err
		}
	}
	db, err := sqlstore.Open(ctx, sqlstore.Dialect(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("store ready", slog.String("driver", cfg.DBDriver))

	// === 4. CACHE ===
	c, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	// === 5. AUTH ===
	verifier, err := auth.NewVerifier(auth.VerifierConfig{
		HMACSecret:   cfg.JWTHMACSecret,
		PublicKeyPEM: cfg.JWTPublicKey,
		Issuer:       cfg.JWTIssuer,
	})
	if err != nil {
		return err
	}

	idp := keycloak.New(keycloak.Config{
		BaseURL:       cfg.KeycloakURL,
		Realm:         cfg.KeycloakRealm,
		AdminUsername: cfg.KeycloakAdminUsername,
		AdminPassword: cfg.KeycloakAdminPassword,
		HTTPClient:    &http.Client{Timeout: cfg.KeycloakHTTPTimeout},
	})

	// === 6. SERVICES AND SERVER ===
	v := validation.New()
	deps := server.Dependencies{
		Projects:    service.NewProjectService(db, c, v, logger),
		Skills:      service.NewSkillService(db, c, v, logger),
		Experiences: service.NewExperienceService(db, c, v, logger),
		Profiles:    service.NewProfileService(db, v, logger),
		Registration: service.NewRegistrationService(idp, v, logger, service.RegistrationOptions{
			Role:              cfg.KeycloakRegistrationRole,
			RollbackOnFailure: cfg.KeycloakRollbackOnFailure,
		}),
		Store:    db,
		Verifier: verifier,
	}

	return server.New(server.Config{Port: cfg.Port}, deps, logger).Start()
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel() // validated by config.Load
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newCache builds the configured cache. An unreachable Redis does not stop
// the service: it runs uncached and logs a warning.
func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func()) {
	switch cfg.CacheDriver {
	case "redis":
		r, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache", slog.String("error", err.Error()))
			return cache.Nop{}, func() {}
		}
		logger.Info("redis cache enabled", slog.Duration("ttl", cfg.CacheTTL))
		return r, func() { _ = r.Close() }
	case "none":
		return cache.Nop{}, func() {}
	default:
		logger.Info("in-memory cache enabled", slog.Duration("ttl", cfg.CacheTTL))
		return cache.NewMemory(cfg.CacheTTL), func() {}
	}
}

// ensureDir creates the parent directory of a SQLite database file.
func ensureDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(dsn), 0o755)
}
