package templateseed

import (
	"context"
	"sort"
	"strings"
	"testing"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
)

type memClauseRepo struct {
	clauses []clause.Clause
}

func (m *memClauseRepo) FetchByIDs(_ context.Context, ids []core.ClauseID) ([]clause.Clause, error) {
	var out []clause.Clause
	for _, id := range ids {
		for _, c := range m.clauses {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	sort.Sort(clause.ByOrderKey(out))
	return out, nil
}

func (m *memClauseRepo) ListByContractType(_ context.Context, contractType string) ([]clause.Clause, error) {
	var out []clause.Clause
	for _, c := range m.clauses {
		if c.ContractType == contractType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memClauseRepo) ReplaceForContractType(_ context.Context, _ string, _ []clause.Clause) error {
	return nil
}

type memTemplateRepo struct {
	saved []*clause.Template
}

func (m *memTemplateRepo) FetchActive(_ context.Context, contractType string) (*clause.Template, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].ContractType == contractType && m.saved[i].Active {
			return m.saved[i], nil
		}
	}
	return nil, core.NewTemplateNotFoundError(contractType)
}

func (m *memTemplateRepo) Save(_ context.Context, tpl *clause.Template) error {
	m.saved = append(m.saved, tpl)
	return nil
}

func seedFixture() (*Loader, *memTemplateRepo, map[string]core.ClauseID) {
	ids := map[string]core.ClauseID{}
	repo := &memClauseRepo{}
	add := func(code, name string, orderKey int) {
		id := core.NewClauseID()
		ids[code] = id
		repo.clauses = append(repo.clauses, clause.Clause{
			ID: id, Code: code, Name: name, ContractType: "SUBCONTRACT", Level: 1, OrderKey: orderKey,
		})
	}
	add("1", "Scope of Work", 100)
	add("2", "Payment Terms", 200)
	add("3", "CRC Special Terms", 300)

	templates := &memTemplateRepo{}
	return NewLoader(repo, templates), templates, ids
}

const seedYAML = `
contract_type: SUBCONTRACT
version: 2
base_clauses:
  - "1"
  - payment-terms
rules:
  SERVICE_MODEL:
    CRC:
      - crc-special-terms
`

func TestApply_ResolvesCodesAndSlugs(t *testing.T) {
	loader, templates, ids := seedFixture()

	if err := loader.Apply(context.Background(), []byte(seedYAML)); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	tpl, err := templates.FetchActive(context.Background(), "SUBCONTRACT")
	if err != nil {
		t.Fatalf("no active template after seed: %v", err)
	}
	if tpl.Version != 2 || !tpl.Active {
		t.Errorf("template version/active wrong: %+v", tpl)
	}
	if len(tpl.BaseClauses) != 2 || tpl.BaseClauses[0] != ids["1"] || tpl.BaseClauses[1] != ids["2"] {
		t.Errorf("base clause resolution wrong: %v", tpl.BaseClauses)
	}
	crc := tpl.Rules["SERVICE_MODEL"]["CRC"]
	if len(crc) != 1 || crc[0] != ids["3"] {
		t.Errorf("rule clause resolution wrong: %v", crc)
	}
}

func TestApply_UnknownReference(t *testing.T) {
	loader, _, _ := seedFixture()

	bad := strings.Replace(seedYAML, "payment-terms", "no-such-clause", 1)
	err := loader.Apply(context.Background(), []byte(bad))
	if err == nil {
		t.Fatal("expected error for unknown clause reference")
	}
	if !strings.Contains(err.Error(), "no-such-clause") {
		t.Errorf("error must name the unknown reference, got %v", err)
	}
}

func TestApply_MissingContractType(t *testing.T) {
	loader, _, _ := seedFixture()
	if err := loader.Apply(context.Background(), []byte("version: 1\n")); err == nil {
		t.Fatal("expected error for definition without contract_type")
	}
}

func TestApply_NoClausesIngested(t *testing.T) {
	loader := NewLoader(&memClauseRepo{}, &memTemplateRepo{})
	err := loader.Apply(context.Background(), []byte(seedYAML))
	if err == nil {
		t.Fatal("expected error when the contract type has no clauses")
	}
}
