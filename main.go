package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"clauseforge/internal"
	"clauseforge/internal/config"
	"clauseforge/internal/container"
	"clauseforge/internal/errors"
	"clauseforge/internal/migration"
	"clauseforge/ui"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	deps, err := container.New(appConfig)
	if err != nil {
		log.Fatal("Failed to create container:", err)
	}
	if err := deps.InitWithDatabase(db); err != nil {
		log.Fatal("Failed to initialize container:", err)
	}

	if dir := appConfig.Seed.TemplateDir; dir != "" {
		if err := deps.SeedLoader.LoadDir(context.Background(), dir); err != nil {
			log.Fatal("Failed to seed templates:", err)
		}
	}

	app := ui.NewApp(deps)
	internal.DefaultLogger.Info("clauseforge starting")
	if err := app.Start(ui.Config{Port: appConfig.Server.Port}); err != nil {
		log.Fatal("HTTP server failed:", err)
	}
}
