package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
	"clauseforge/ports"
)

// TemplateRepositoryImpl implements TemplateRepository for PostgreSQL
type TemplateRepositoryImpl struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(db *sqlx.DB) ports.TemplateRepository {
	return &TemplateRepositoryImpl{db: db}
}

// FetchActive returns the single active template for a contract type
func (r *TemplateRepositoryImpl) FetchActive(ctx context.Context, contractType string) (*clause.Template, error) {
	var tpl clause.Template
	var id string
	var baseJSON, rulesJSON []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT id, contract_type, version, active, base_clauses, rules, created_at
		FROM templates
		WHERE contract_type = $1 AND active = TRUE
		ORDER BY version DESC
		LIMIT 1`, contractType).Scan(
		&id, &tpl.ContractType, &tpl.Version, &tpl.Active, &baseJSON, &rulesJSON, &tpl.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewTemplateNotFoundError(contractType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active template for %s: %w", contractType, err)
	}

	tpl.ID = core.TemplateID(id)
	if err := json.Unmarshal(baseJSON, &tpl.BaseClauses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal base clauses: %w", err)
	}
	if err := json.Unmarshal(rulesJSON, &tpl.Rules); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	return &tpl, nil
}

// Save upserts a template version; marking it active deactivates any
// previously active template for the same contract type
func (r *TemplateRepositoryImpl) Save(ctx context.Context, tpl *clause.Template) error {
	baseJSON, err := json.Marshal(tpl.BaseClauses)
	if err != nil {
		return fmt.Errorf("failed to marshal base clauses: %w", err)
	}
	rulesJSON, err := json.Marshal(tpl.Rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if tpl.Active {
		if _, err := tx.ExecContext(ctx, `
			UPDATE templates SET active = FALSE
			WHERE contract_type = $1 AND active = TRUE`, tpl.ContractType); err != nil {
			return fmt.Errorf("failed to deactivate previous template: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO templates (id, contract_type, version, active, base_clauses, rules, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			version = EXCLUDED.version,
			active = EXCLUDED.active,
			base_clauses = EXCLUDED.base_clauses,
			rules = EXCLUDED.rules`,
		tpl.ID.String(), tpl.ContractType, tpl.Version, tpl.Active, baseJSON, rulesJSON)
	if err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	return tx.Commit()
}
