package vars

import (
	"regexp"

	"clauseforge/domain/core"
)

// substPattern is the generation-time placeholder grammar
var substPattern = regexp.MustCompile(`\{\{([A-Z_]+)\}\}`)

// Substitute replaces every {{NAME}} placeholder in text with the formatted
// value from the bag. A name absent from the bag is replaced with the
// visibly bracketed [NAME] so an incomplete document stays reviewable, and
// each such occurrence is reported in the second return value.
//
// Replacement is a single left-to-right pass; a substituted value is never
// re-scanned for placeholders.
func Substitute(text string, bag core.DataBag) (string, []string) {
	var missing []string
	out := substPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-2]
		v := bag.Lookup(name)
		if v.IsMissing() {
			missing = append(missing, name)
			return "[" + name + "]"
		}
		return Format(v)
	})
	return out, missing
}
