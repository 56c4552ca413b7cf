package vars

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"clauseforge/domain/core"
)

// dateLayout is the long-form layout used for dates in contract text
const dateLayout = "January 2, 2006"

var printer = message.NewPrinter(language.English)

// Format maps a typed value to its display text. Total over every value
// kind; the missing variant formats to the empty string and is expected to
// be intercepted by the substitution engine before it gets here.
func Format(v core.Value) string {
	switch v.Kind() {
	case core.KindMissing:
		return ""
	case core.KindBool:
		if v.Bool() {
			return "Yes"
		}
		return "No"
	case core.KindNumber:
		return formatNumber(v.Number())
	case core.KindDate:
		return v.Date().Format(dateLayout)
	case core.KindArray:
		parts := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			parts = append(parts, Format(item))
		}
		return strings.Join(parts, ", ")
	default:
		return v.Str()
	}
}

// formatNumber renders a number with locale digit grouping. Whole numbers
// drop the fraction entirely rather than printing a trailing ".00".
func formatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return printer.Sprintf("%d", int64(n))
	}
	return printer.Sprintf("%.2f", n)
}
