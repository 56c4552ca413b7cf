package templateseed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
	"clauseforge/domain/ingest"
	"clauseforge/internal"
	"clauseforge/ports"
)

// seedFile is the YAML shape of one template definition. Clause references
// are human codes ("2.4") or name slugs ("payment-terms"), resolved against
// the ingested clause set at load time.
type seedFile struct {
	ContractType string                         `yaml:"contract_type"`
	Version      int                            `yaml:"version"`
	BaseClauses  []string                       `yaml:"base_clauses"`
	Rules        map[string]map[string][]string `yaml:"rules"`
}

// Loader applies YAML template definitions against the clause repository
type Loader struct {
	clauses   ports.ClauseRepository
	templates ports.TemplateRepository
}

// NewLoader creates a template seed loader
func NewLoader(clauses ports.ClauseRepository, templates ports.TemplateRepository) *Loader {
	return &Loader{clauses: clauses, templates: templates}
}

// LoadDir applies every *.yaml file in dir as an active template
func (l *Loader) LoadDir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read template seed dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template seed %s: %w", path, err)
		}
		if err := l.Apply(ctx, data); err != nil {
			return fmt.Errorf("template seed %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// Apply parses one YAML template definition, resolves its clause references,
// and saves it as the active template for its contract type.
func (l *Loader) Apply(ctx context.Context, data []byte) error {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse template definition: %w", err)
	}
	if seed.ContractType == "" {
		return fmt.Errorf("template definition is missing contract_type")
	}
	if seed.Version == 0 {
		seed.Version = 1
	}

	clauses, err := l.clauses.ListByContractType(ctx, seed.ContractType)
	if err != nil {
		return err
	}
	if len(clauses) == 0 {
		return core.NewClauseSetEmptyError(seed.ContractType)
	}

	index := buildReferenceIndex(clauses)

	tpl := &clause.Template{
		ID:           core.NewTemplateID(),
		ContractType: seed.ContractType,
		Version:      seed.Version,
		Active:       true,
		Rules:        make(clause.RuleTable),
	}
	for _, ref := range seed.BaseClauses {
		id, ok := index[normalizeRef(ref)]
		if !ok {
			return fmt.Errorf("unknown clause reference %q in base_clauses of %s", ref, seed.ContractType)
		}
		tpl.BaseClauses = append(tpl.BaseClauses, id)
	}
	for field, byValue := range seed.Rules {
		tpl.Rules[field] = make(map[string][]core.ClauseID, len(byValue))
		for value, refs := range byValue {
			for _, ref := range refs {
				id, ok := index[normalizeRef(ref)]
				if !ok {
					return fmt.Errorf("unknown clause reference %q in rule %s=%s of %s", ref, field, value, seed.ContractType)
				}
				tpl.Rules[field][value] = append(tpl.Rules[field][value], id)
			}
		}
	}

	if err := l.templates.Save(ctx, tpl); err != nil {
		return err
	}
	internal.DefaultLogger.Info("seeded template %s v%d (%d base clauses, %d rules)",
		seed.ContractType, seed.Version, len(tpl.BaseClauses), len(tpl.Rules))
	return nil
}

// buildReferenceIndex maps both the clause code and the slugified clause
// name to the clause id
func buildReferenceIndex(clauses []clause.Clause) map[string]core.ClauseID {
	index := make(map[string]core.ClauseID, len(clauses)*2)
	for _, c := range clauses {
		if c.Code != "" {
			index[normalizeRef(c.Code)] = c.ID
		}
		index[ingest.Slugify(c.Name)] = c.ID
	}
	return index
}

func normalizeRef(ref string) string {
	return strings.ToLower(strings.TrimSpace(ref))
}
