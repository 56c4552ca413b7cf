package ports

import (
	"context"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
)

// ClauseRepository defines the interface for clause data operations
type ClauseRepository interface {
	// FetchByIDs returns the clauses for the given id set, ordered
	// ascending by ordering key
	FetchByIDs(ctx context.Context, ids []core.ClauseID) ([]clause.Clause, error)

	// ListByContractType returns every clause of a contract type, ordered
	// ascending by ordering key
	ListByContractType(ctx context.Context, contractType string) ([]clause.Clause, error)

	// ReplaceForContractType atomically swaps a contract type's clause set
	// for a freshly ingested one
	ReplaceForContractType(ctx context.Context, contractType string, clauses []clause.Clause) error
}
