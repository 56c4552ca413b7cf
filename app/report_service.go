package app

import (
	"context"
	"sort"

	"clauseforge/domain/core"
	"clauseforge/domain/resolve"
	"clauseforge/ports"
)

// ReportService answers "what variables does this contract type need",
// using the variable sets extracted at ingestion time.
type ReportService struct {
	clauses ports.ClauseRepository
}

// NewReportService creates a report service
func NewReportService(clauses ports.ClauseRepository) *ReportService {
	return &ReportService{clauses: clauses}
}

// VariableRequirement is one variable a contract type's clauses reference
type VariableRequirement struct {
	Variable  string   `json:"variable"`
	UsedBy    []string `json:"used_by"` // clause codes
	Satisfied bool     `json:"satisfied"`
}

// VariableRequirements lists every variable referenced by the contract
// type's clauses, marking whether the given bag provides it. The bag may be
// empty, in which case every row reports unsatisfied.
func (s *ReportService) VariableRequirements(ctx context.Context, contractType string, data core.DataBag) ([]VariableRequirement, error) {
	clauses, err := s.clauses.ListByContractType(ctx, contractType)
	if err != nil {
		return nil, err
	}
	if len(clauses) == 0 {
		return nil, core.NewClauseSetEmptyError(contractType)
	}

	bag := resolve.DeriveFlags(data)
	usedBy := make(map[string][]string)
	for _, c := range clauses {
		for _, v := range c.Variables {
			usedBy[v] = append(usedBy[v], c.Code)
		}
	}

	names := make([]string, 0, len(usedBy))
	for v := range usedBy {
		names = append(names, v)
	}
	sort.Strings(names)

	out := make([]VariableRequirement, 0, len(names))
	for _, v := range names {
		out = append(out, VariableRequirement{
			Variable:  v,
			UsedBy:    usedBy[v],
			Satisfied: !bag.Lookup(v).IsMissing(),
		})
	}
	return out, nil
}
