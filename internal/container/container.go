package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"clauseforge/adapters/chromium"
	"clauseforge/adapters/postgres"
	"clauseforge/app"
	"clauseforge/domain/resolve"
	"clauseforge/internal/config"
	"clauseforge/internal/templateseed"
	"clauseforge/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	ClauseRepo   ports.ClauseRepository
	TemplateRepo ports.TemplateRepository

	// Rendering delegate
	PageRenderer ports.PageRenderer

	// Core engine
	Resolver *resolve.Resolver

	// Services
	Generation *app.GenerationService
	Preview    *app.PreviewService
	Ingestion  *app.IngestionService
	Report     *app.ReportService
	SeedLoader *templateseed.Loader
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = db

	c.ClauseRepo = postgres.NewClauseRepository(db)
	c.TemplateRepo = postgres.NewTemplateRepository(db)
	c.PageRenderer = chromium.NewPageRenderer(c.Config.Render.ChromiumBin)

	c.Resolver = resolve.New(c.ClauseRepo)
	c.Generation = app.NewGenerationService(c.TemplateRepo, c.Resolver, c.PageRenderer)
	c.Preview = app.NewPreviewService(c.TemplateRepo, c.Resolver)
	c.Ingestion = app.NewIngestionService(c.ClauseRepo)
	c.Report = app.NewReportService(c.ClauseRepo)
	c.SeedLoader = templateseed.NewLoader(c.ClauseRepo, c.TemplateRepo)

	return nil
}
