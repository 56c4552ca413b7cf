package app

import (
	"context"

	"clauseforge/domain/core"
	"clauseforge/domain/resolve"
	"clauseforge/domain/vars"
	"clauseforge/ports"
)

// PreviewService resolves a template against project data without
// substituting or rendering, for human review ahead of a full generation.
type PreviewService struct {
	templates ports.TemplateRepository
	resolver  *resolve.Resolver
}

// NewPreviewService creates a preview service
func NewPreviewService(templates ports.TemplateRepository, resolver *resolve.Resolver) *PreviewService {
	return &PreviewService{templates: templates, resolver: resolver}
}

// PreviewItem is one resolved clause with its inclusion provenance
type PreviewItem struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Conditional bool   `json:"conditional"`
	RuleField   string `json:"rule_field,omitempty"`
	RuleValue   string `json:"rule_value,omitempty"`
}

// PreviewResult is the annotated resolved clause set for one contract type
type PreviewResult struct {
	ContractType     string        `json:"contract_type"`
	TemplateVersion  int           `json:"template_version"`
	Items            []PreviewItem `json:"items"`
	BaseCount        int           `json:"base_count"`
	ConditionalCount int           `json:"conditional_count"`
}

// Preview returns the ordered clause set the data bag would produce,
// annotated base versus conditional.
func (s *PreviewService) Preview(ctx context.Context, contractType string, data core.DataBag) (*PreviewResult, error) {
	tpl, err := s.templates.FetchActive(ctx, contractType)
	if err != nil {
		return nil, err
	}

	bag := resolve.DeriveFlags(data)
	incs, err := s.resolver.ResolveAnnotated(ctx, tpl, bag)
	if err != nil {
		return nil, err
	}

	res := &PreviewResult{ContractType: contractType, TemplateVersion: tpl.Version}
	for _, inc := range incs {
		res.Items = append(res.Items, PreviewItem{
			ID:          inc.Clause.ID.String(),
			Code:        inc.Clause.Code,
			Name:        inc.Clause.Name,
			Level:       inc.Clause.Level,
			Conditional: inc.Conditional,
			RuleField:   inc.RuleField,
			RuleValue:   inc.RuleValue,
		})
		if inc.Conditional {
			res.ConditionalCount++
		} else {
			res.BaseCount++
		}
	}
	return res, nil
}

// Readiness reports whether every placeholder in the resolved clause set is
// satisfied by the data bag. A dry substitution pass over each clause body;
// nothing is rendered.
type Readiness struct {
	Ready            bool     `json:"ready"`
	ClauseCount      int      `json:"clause_count"`
	MissingVariables []string `json:"missing_variables,omitempty"`
}

// CheckReadiness runs the dry substitution pass for one contract type
func (s *PreviewService) CheckReadiness(ctx context.Context, contractType string, data core.DataBag) (*Readiness, error) {
	tpl, err := s.templates.FetchActive(ctx, contractType)
	if err != nil {
		return nil, err
	}

	bag := resolve.DeriveFlags(data)
	clauses, err := s.resolver.Resolve(ctx, tpl, bag)
	if err != nil {
		return nil, err
	}

	missing := make(map[string]bool)
	for _, c := range clauses {
		_, unresolved := vars.Substitute(c.Body, bag)
		for _, name := range unresolved {
			missing[name] = true
		}
	}
	return &Readiness{
		Ready:            len(missing) == 0,
		ClauseCount:      len(clauses),
		MissingVariables: sortedKeys(missing),
	}, nil
}
