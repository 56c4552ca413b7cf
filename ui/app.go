package ui

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"clauseforge/internal"
	"clauseforge/internal/container"
)

// App represents the HTTP application
type App struct {
	router *chi.Mux
	deps   *container.Container
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application over the assembled container
func NewApp(deps *container.Container) *App {
	app := &App{
		router: chi.NewRouter(),
		deps:   deps,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(120 * time.Second))
}

// setupRoutes wires the API surface
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/contracts/generate", a.handleGenerate)
		r.Post("/contracts/generate-package", a.handleGeneratePackage)
		r.Post("/contracts/preview", a.handlePreview)
		r.Post("/contracts/readiness", a.handleReadiness)
		r.Post("/contracts/ingest", a.handleIngest)
		r.Get("/contract-types/{contractType}/variables", a.handleVariableReport)
	})
}

// Start runs the HTTP server
func (a *App) Start(cfg Config) error {
	addr := fmt.Sprintf(":%s", cfg.Port)
	internal.DefaultLogger.Info("HTTP server listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
