package resolve

import (
	"strings"

	"clauseforge/domain/core"
)

// DeriveFlags computes the string-valued flags rule tables are allowed to
// match on and merges them into a copy of the bag. Conditional matching is
// exact string equality only, so boolean answers never select clauses
// directly; this step stringifies them explicitly ("yes"/"no") under a
// FLAG-suffixed key. Run once per generation, before resolution.
func DeriveFlags(bag core.DataBag) core.DataBag {
	overlay := make(core.DataBag)
	for key, v := range bag {
		if v.Kind() == core.KindBool {
			val := "no"
			if v.Bool() {
				val = "yes"
			}
			overlay[key+"_FLAG"] = core.StringValue(val)
		}
	}
	if model, ok := bag.Lookup("SERVICE_MODEL").ConditionKey(); ok {
		overlay["HAS_SERVICE_MODEL"] = core.StringValue("yes")
		overlay["SERVICE_MODEL_KEY"] = core.StringValue(strings.ToUpper(model))
	}
	return bag.Merge(overlay)
}
