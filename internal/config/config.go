package config

import (
	"os"

	"clauseforge/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Render   RenderConfig
	Seed     SeedConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// RenderConfig holds fixed-page rendering settings
type RenderConfig struct {
	// ChromiumBin pins the browser binary; empty lets the launcher resolve one
	ChromiumBin string
}

// SeedConfig holds template seeding settings
type SeedConfig struct {
	// TemplateDir is scanned for *.yaml template definitions on boot;
	// empty disables seeding
	TemplateDir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Render: RenderConfig{
			ChromiumBin: os.Getenv("CHROMIUM_BIN"),
		},
		Seed: SeedConfig{
			TemplateDir: os.Getenv("TEMPLATE_SEED_DIR"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
