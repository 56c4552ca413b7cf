package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
	"clauseforge/ports"
)

// ClauseRepositoryImpl implements ClauseRepository for PostgreSQL
type ClauseRepositoryImpl struct {
	db *sqlx.DB
}

// NewClauseRepository creates a new PostgreSQL clause repository
func NewClauseRepository(db *sqlx.DB) ports.ClauseRepository {
	return &ClauseRepositoryImpl{db: db}
}

const clauseColumns = `id, code, name, contract_type, level, order_key, parent_id, body, variables, condition, risk, created_at`

// FetchByIDs returns the clauses for the given id set, ordered ascending by
// ordering key
func (r *ClauseRepositoryImpl) FetchByIDs(ctx context.Context, ids []core.ClauseID) ([]clause.Clause, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM clauses
		WHERE id = ANY($1)
		ORDER BY order_key ASC`, clauseColumns), pq.Array(strIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clauses by ids: %w", err)
	}
	defer rows.Close()

	return scanClauses(rows)
}

// ListByContractType returns every clause of a contract type, ordered
// ascending by ordering key
func (r *ClauseRepositoryImpl) ListByContractType(ctx context.Context, contractType string) ([]clause.Clause, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM clauses
		WHERE contract_type = $1
		ORDER BY order_key ASC`, clauseColumns), contractType)
	if err != nil {
		return nil, fmt.Errorf("failed to list clauses for %s: %w", contractType, err)
	}
	defer rows.Close()

	return scanClauses(rows)
}

// ReplaceForContractType atomically swaps a contract type's clause set for a
// freshly ingested one
func (r *ClauseRepositoryImpl) ReplaceForContractType(ctx context.Context, contractType string, clauses []clause.Clause) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clauses WHERE contract_type = $1`, contractType); err != nil {
		return fmt.Errorf("failed to clear clauses for %s: %w", contractType, err)
	}

	for _, c := range clauses {
		var parentID *string
		if c.HasParent() {
			s := c.ParentID.String()
			parentID = &s
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO clauses (id, code, name, contract_type, level, order_key, parent_id, body, variables, condition, risk, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())`,
			c.ID.String(), c.Code, c.Name, c.ContractType, c.Level, c.OrderKey,
			parentID, c.Body, pq.Array(c.Variables), c.Condition, string(c.Risk))
		if err != nil {
			return fmt.Errorf("failed to insert clause %s: %w", c.Code, err)
		}
	}

	return tx.Commit()
}

func scanClauses(rows *sql.Rows) ([]clause.Clause, error) {
	var out []clause.Clause
	for rows.Next() {
		var c clause.Clause
		var id string
		var parentID sql.NullString
		var variables pq.StringArray
		var risk string
		if err := rows.Scan(&id, &c.Code, &c.Name, &c.ContractType, &c.Level, &c.OrderKey,
			&parentID, &c.Body, &variables, &c.Condition, &risk, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan clause row: %w", err)
		}
		c.ID = core.ClauseID(id)
		if parentID.Valid {
			c.ParentID = core.ClauseID(parentID.String)
		}
		c.Variables = []string(variables)
		c.Risk = clause.RiskLevel(risk)
		out = append(out, c)
	}
	return out, rows.Err()
}
