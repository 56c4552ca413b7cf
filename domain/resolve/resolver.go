package resolve

import (
	"context"
	"sort"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
	"clauseforge/ports"
)

// Inclusion is one resolved clause annotated with why it is in the document
type Inclusion struct {
	Clause      clause.Clause
	Conditional bool
	RuleField   string // set when Conditional
	RuleValue   string
}

// Resolver computes the ordered clause set for one (template, data bag)
// pair. It is read-only: the repository is consulted for clause records and
// their ordering keys, never written.
type Resolver struct {
	clauses ports.ClauseRepository
}

// New creates a resolver backed by the given clause repository
func New(clauses ports.ClauseRepository) *Resolver {
	return &Resolver{clauses: clauses}
}

// origin records how an id entered the resolved set. Base membership wins
// over a conditional match for the same id.
type origin struct {
	conditional bool
	field       string
	value       string
}

// idSet unions the template's base ids with every conditional rule whose
// field is present in the bag with an exactly matching string value. Missing
// fields and unmatched values are no-ops. The result is a set: an id listed
// by both the base list and a rule appears once.
func idSet(tpl *clause.Template, bag core.DataBag) map[core.ClauseID]origin {
	set := make(map[core.ClauseID]origin, len(tpl.BaseClauses))
	for _, id := range tpl.BaseClauses {
		set[id] = origin{}
	}
	for field, byValue := range tpl.Rules {
		key, ok := bag.Lookup(field).ConditionKey()
		if !ok {
			continue
		}
		ids, ok := byValue[key]
		if !ok {
			continue
		}
		for _, id := range ids {
			if _, exists := set[id]; !exists {
				set[id] = origin{conditional: true, field: field, value: key}
			}
		}
	}
	return set
}

// Resolve returns the clauses to include, sorted ascending by ordering key.
// Sorting by ordering key rather than insertion order is what makes the
// result deterministic: base and conditional ids enter the set in arbitrary
// order, and map iteration order would leak into the document otherwise.
func (r *Resolver) Resolve(ctx context.Context, tpl *clause.Template, bag core.DataBag) ([]clause.Clause, error) {
	incs, err := r.ResolveAnnotated(ctx, tpl, bag)
	if err != nil {
		return nil, err
	}
	out := make([]clause.Clause, len(incs))
	for i, inc := range incs {
		out[i] = inc.Clause
	}
	return out, nil
}

// ResolveAnnotated is Resolve plus per-clause inclusion provenance, used by
// the preview surface so a reviewer can see which clauses a rule pulled in.
func (r *Resolver) ResolveAnnotated(ctx context.Context, tpl *clause.Template, bag core.DataBag) ([]Inclusion, error) {
	set := idSet(tpl, bag)
	if len(set) == 0 {
		return nil, core.NewClauseSetEmptyError(tpl.ContractType)
	}

	ids := make([]core.ClauseID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	fetched, err := r.clauses.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(fetched) == 0 {
		return nil, core.NewClauseSetEmptyError(tpl.ContractType)
	}

	incs := make([]Inclusion, 0, len(fetched))
	for _, c := range fetched {
		o := set[c.ID]
		incs = append(incs, Inclusion{
			Clause:      c,
			Conditional: o.conditional,
			RuleField:   o.field,
			RuleValue:   o.value,
		})
	}
	// The repository already orders by key; sort again so the guarantee
	// does not depend on the adapter.
	sort.SliceStable(incs, func(i, j int) bool {
		return incs[i].Clause.OrderKey < incs[j].Clause.OrderKey
	})
	return incs, nil
}
