package app

import (
	"context"
	"sort"

	"clauseforge/domain/ingest"
	"clauseforge/internal"
	"clauseforge/ports"
)

// IngestionService turns a parsed block stream into the persisted clause
// set for a contract type. Ingestion is an offline, whole-set operation: a
// re-ingest replaces the type's previous clauses.
type IngestionService struct {
	clauses ports.ClauseRepository
}

// NewIngestionService creates an ingestion service
func NewIngestionService(clauses ports.ClauseRepository) *IngestionService {
	return &IngestionService{clauses: clauses}
}

// IngestResult summarizes one ingestion run
type IngestResult struct {
	ContractType    string   `json:"contract_type"`
	ClauseCount     int      `json:"clause_count"`
	SkippedHeadings int      `json:"skipped_headings"`
	Variables       []string `json:"variables"`
}

// Ingest parses the block stream and replaces the contract type's clause
// set with the result.
func (s *IngestionService) Ingest(ctx context.Context, contractType string, blocks []ingest.Block) (*IngestResult, error) {
	parsed := ingest.ParseBlocks(contractType, blocks)

	if err := s.clauses.ReplaceForContractType(ctx, contractType, parsed.Clauses); err != nil {
		return nil, err
	}

	varSet := make(map[string]bool)
	for _, c := range parsed.Clauses {
		for _, v := range c.Variables {
			varSet[v] = true
		}
	}
	variables := make([]string, 0, len(varSet))
	for v := range varSet {
		variables = append(variables, v)
	}
	sort.Strings(variables)

	internal.DefaultLogger.Info("ingested %d clauses for %s (%d headings skipped, %d variables)",
		len(parsed.Clauses), contractType, parsed.SkippedHeadings, len(variables))

	return &IngestResult{
		ContractType:    contractType,
		ClauseCount:     len(parsed.Clauses),
		SkippedHeadings: parsed.SkippedHeadings,
		Variables:       variables,
	}, nil
}
