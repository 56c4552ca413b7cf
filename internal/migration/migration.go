package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"clauseforge/internal/errors"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createClausesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create clauses table")
	}

	if err := r.createTemplatesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create templates table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createClausesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS clauses (
			id UUID PRIMARY KEY,
			code VARCHAR(50) NOT NULL DEFAULT '',
			name VARCHAR(500) NOT NULL,
			contract_type VARCHAR(100) NOT NULL,
			level INTEGER NOT NULL,
			order_key INTEGER NOT NULL,
			parent_id UUID,
			body TEXT NOT NULL DEFAULT '',
			variables TEXT[] NOT NULL DEFAULT '{}',
			condition TEXT NOT NULL DEFAULT '',
			risk VARCHAR(20) NOT NULL DEFAULT 'standard',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createTemplatesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS templates (
			id UUID PRIMARY KEY,
			contract_type VARCHAR(100) NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			active BOOLEAN NOT NULL DEFAULT FALSE,
			base_clauses JSONB NOT NULL DEFAULT '[]',
			rules JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_clauses_contract_type ON clauses(contract_type, order_key)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_active ON templates(contract_type) WHERE active`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
