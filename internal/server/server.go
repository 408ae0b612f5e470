// Package server wires handlers, middleware and routes, and runs the HTTP
// server with graceful shutdown.
//
// ROUTE STRUCTURE:
//
//	GET    /health                                   store ping
//	GET    /metrics                                  Prometheus
//	GET    /api/public/projects[/featured|/category/{category}|/technology/{technology}|/{id}]
//	GET    /api/public/skills[/category/{category}|/level/{level}|/{id}]
//	GET    /api/public/experiences[/current|/{id}]
//	GET    /api/public/profiles/{username}
//	POST   /api/public/auth/register
//	POST   /api/admin/{projects|skills|experiences|profiles}
//	PUT    /api/admin/{resource}/{id}
//	DELETE /api/admin/{resource}/{id}
//	GET    /api/admin/profiles[/{id}]
//
// Everything under /api/admin requires the ROLE_ADMIN authority.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paul-ayesiga/portfolio-service/internal/auth"
	"github.com/paul-ayesiga/portfolio-service/internal/handler"
	"github.com/paul-ayesiga/portfolio-service/internal/middleware"
)

// AdminAuthority guards every /api/admin route.
const AdminAuthority = "ROLE_ADMIN"

type Config struct {
	Port int
}

// Dependencies is everything the routes need. main builds it; tests build it
// with in-memory stores.
type Dependencies struct {
	Projects     handler.ProjectService
	Skills       handler.SkillService
	Experiences  handler.ExperienceService
	Profiles     handler.ProfileService
	Registration handler.RegistrationService
	Store        handler.Pinger
	Verifier     *auth.Verifier
}

type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
}

func New(cfg Config, deps Dependencies, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}
	s.setupRoutes(deps)
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes registers middleware and routes.
//
// MIDDLEWARE ORDER:
//  1. RequestID, RealIP
//  2. Logger, Metrics (see the final status, including recovered panics)
//  3. Recoverer
//  4. Authenticate (attaches the principal, never rejects)
func (s *Server) setupRoutes(deps Dependencies) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(auth.Authenticate(deps.Verifier))

	// Set before any Route call: chi copies them into sub-routers on mount.
	s.router.NotFound(handler.HandleNotFound)
	s.router.MethodNotAllowed(handler.HandleMethodNotAllowed)

	projects := handler.NewProjectHandler(deps.Projects, s.logger)
	skills := handler.NewSkillHandler(deps.Skills, s.logger)
	experiences := handler.NewExperienceHandler(deps.Experiences, s.logger)
	profiles := handler.NewProfileHandler(deps.Profiles, s.logger)
	registration := handler.NewRegistrationHandler(deps.Registration, s.logger)
	health := handler.NewHealthHandler(deps.Store, s.logger)

	s.router.Get("/health", health.HandleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/public", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projects.HandleList)
			r.Get("/featured", projects.HandleListFeatured)
			r.Get("/category/{category}", projects.HandleListByCategory)
			r.Get("/technology/{technology}", projects.HandleListByTechnology)
			r.Get("/{id}", projects.HandleGet)
		})
		r.Route("/skills", func(r chi.Router) {
			r.Get("/", skills.HandleList)
			r.Get("/category/{category}", skills.HandleListByCategory)
			r.Get("/level/{level}", skills.HandleListByLevel)
			r.Get("/{id}", skills.HandleGet)
		})
		r.Route("/experiences", func(r chi.Router) {
			r.Get("/", experiences.HandleList)
			r.Get("/current", experiences.HandleListCurrent)
			r.Get("/{id}", experiences.HandleGet)
		})
		r.Get("/profiles/{username}", profiles.HandleGetByUsername)
		r.Post("/auth/register", registration.HandleRegister)
	})

	s.router.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.RequireAuthority(AdminAuthority, handler.WriteError))

		r.Post("/projects", projects.HandleCreate)
		r.Put("/projects/{id}", projects.HandleUpdate)
		r.Delete("/projects/{id}", projects.HandleDelete)

		r.Post("/skills", skills.HandleCreate)
		r.Put("/skills/{id}", skills.HandleUpdate)
		r.Delete("/skills/{id}", skills.HandleDelete)

		r.Post("/experiences", experiences.HandleCreate)
		r.Put("/experiences/{id}", experiences.HandleUpdate)
		r.Delete("/experiences/{id}", experiences.HandleDelete)

		r.Get("/profiles", profiles.HandleList)
		r.Get("/profiles/{id}", profiles.HandleGet)
		r.Post("/profiles", profiles.HandleCreate)
		r.Put("/profiles/{id}", profiles.HandleUpdate)
		r.Delete("/profiles/{id}", profiles.HandleDelete)
	})
}

// Start serves until SIGINT/SIGTERM, then gives in-flight requests 30
// seconds to finish. Closing the store and cache is the caller's job.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
