package ports

import (
	"context"

	"clauseforge/domain/clause"
)

// TemplateRepository defines the interface for template data operations
type TemplateRepository interface {
	// FetchActive returns the single active template for a contract type,
	// or core.ErrTemplateNotFound when none is active
	FetchActive(ctx context.Context, contractType string) (*clause.Template, error)

	// Save upserts a template version; marking it active deactivates any
	// previously active template for the same contract type
	Save(ctx context.Context, tpl *clause.Template) error
}
