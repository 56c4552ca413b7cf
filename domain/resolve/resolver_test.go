package resolve

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
)

// fakeClauseRepo serves clauses from memory, ordered by key like the real
// repository.
type fakeClauseRepo struct {
	clauses map[core.ClauseID]clause.Clause
}

func (f *fakeClauseRepo) FetchByIDs(_ context.Context, ids []core.ClauseID) ([]clause.Clause, error) {
	var out []clause.Clause
	for _, id := range ids {
		if c, ok := f.clauses[id]; ok {
			out = append(out, c)
		}
	}
	sort.Sort(clause.ByOrderKey(out))
	return out, nil
}

func (f *fakeClauseRepo) ListByContractType(_ context.Context, contractType string) ([]clause.Clause, error) {
	var out []clause.Clause
	for _, c := range f.clauses {
		if c.ContractType == contractType {
			out = append(out, c)
		}
	}
	sort.Sort(clause.ByOrderKey(out))
	return out, nil
}

func (f *fakeClauseRepo) ReplaceForContractType(_ context.Context, _ string, _ []clause.Clause) error {
	return nil
}

func testFixture() (*Resolver, *clause.Template, map[string]core.ClauseID) {
	ids := map[string]core.ClauseID{}
	repo := &fakeClauseRepo{clauses: map[core.ClauseID]clause.Clause{}}
	add := func(code string, orderKey int) {
		id := core.NewClauseID()
		ids[code] = id
		repo.clauses[id] = clause.Clause{
			ID: id, Code: code, Name: "Clause " + code,
			ContractType: "SUBCONTRACT", Level: 1, OrderKey: orderKey,
		}
	}
	add("1", 100)
	add("2", 200)
	add("5", 150) // conditional clause ordered between the base clauses
	add("6", 250)

	tpl := &clause.Template{
		ID:           core.NewTemplateID(),
		ContractType: "SUBCONTRACT",
		Version:      1,
		Active:       true,
		BaseClauses:  []core.ClauseID{ids["1"], ids["2"]},
		Rules: clause.RuleTable{
			"SERVICE_MODEL": {
				"CRC":  []core.ClauseID{ids["5"]},
				"CMOS": []core.ClauseID{ids["6"]},
			},
		},
	}
	return New(repo), tpl, ids
}

func codesOf(clauses []clause.Clause) []string {
	out := make([]string, len(clauses))
	for i, c := range clauses {
		out[i] = c.Code
	}
	return out
}

func TestResolve_ConditionalInclusion(t *testing.T) {
	resolver, tpl, _ := testFixture()
	ctx := context.Background()

	got, err := resolver.Resolve(ctx, tpl, core.DataBag{"SERVICE_MODEL": core.StringValue("CRC")})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	// Ordered by key (100, 150, 200), not insertion order.
	if want := []string{"1", "5", "2"}; !reflect.DeepEqual(codesOf(got), want) {
		t.Errorf("CRC resolution: got %v, want %v", codesOf(got), want)
	}

	got, err = resolver.Resolve(ctx, tpl, core.DataBag{"SERVICE_MODEL": core.StringValue("OTHER")})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if want := []string{"1", "2"}; !reflect.DeepEqual(codesOf(got), want) {
		t.Errorf("unmatched value must be a no-op: got %v, want %v", codesOf(got), want)
	}
}

func TestResolve_MissingFieldIsNoOp(t *testing.T) {
	resolver, tpl, _ := testFixture()
	got, err := resolver.Resolve(context.Background(), tpl, core.DataBag{})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if want := []string{"1", "2"}; !reflect.DeepEqual(codesOf(got), want) {
		t.Errorf("missing field must be a no-op: got %v, want %v", codesOf(got), want)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	resolver, tpl, _ := testFixture()
	bag := core.DataBag{"SERVICE_MODEL": core.StringValue("CMOS")}
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, tpl, bag)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := resolver.Resolve(ctx, tpl, bag)
		if err != nil {
			t.Fatalf("resolve failed: %v", err)
		}
		if !reflect.DeepEqual(codesOf(first), codesOf(again)) {
			t.Fatalf("resolution not deterministic: %v vs %v", codesOf(first), codesOf(again))
		}
	}
}

func TestResolve_Dedupes(t *testing.T) {
	resolver, tpl, ids := testFixture()
	// Clause 2 is both base and conditionally matched.
	tpl.Rules["SERVICE_MODEL"]["CRC"] = append(tpl.Rules["SERVICE_MODEL"]["CRC"], ids["2"])

	incs, err := resolver.ResolveAnnotated(context.Background(), tpl, core.DataBag{"SERVICE_MODEL": core.StringValue("CRC")})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(incs) != 3 {
		t.Fatalf("expected 3 clauses after dedup, got %d", len(incs))
	}
	for _, inc := range incs {
		if inc.Clause.Code == "2" && inc.Conditional {
			t.Errorf("base membership must win over a conditional match")
		}
		if inc.Clause.Code == "5" && !inc.Conditional {
			t.Errorf("rule-only clause must be annotated conditional")
		}
	}
}

func TestResolve_BooleanValueNeverMatches(t *testing.T) {
	resolver, tpl, _ := testFixture()
	// Exact-string matching only: a boolean in the bag must not be coerced
	// into a rule key.
	tpl.Rules["SERVICE_MODEL"]["true"] = tpl.Rules["SERVICE_MODEL"]["CRC"]
	got, err := resolver.Resolve(context.Background(), tpl, core.DataBag{"SERVICE_MODEL": core.BoolValue(true)})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("boolean bag value must not match rules, got %d clauses", len(got))
	}
}

func TestResolve_EmptySet(t *testing.T) {
	resolver, _, _ := testFixture()
	empty := &clause.Template{ContractType: "EMPTY"}
	_, err := resolver.Resolve(context.Background(), empty, core.DataBag{})
	if !errors.Is(err, core.ErrClauseSetEmpty) {
		t.Fatalf("expected ErrClauseSetEmpty, got %v", err)
	}
}
