package vars

import (
	"regexp"
)

// extractPattern is the ingestion-time placeholder grammar. It admits digits
// so codes like {{PARTY_2_NAME}} are captured for variable reporting even
// though the substitution grammar is stricter.
var extractPattern = regexp.MustCompile(`\{\{([A-Z0-9_]+)\}\}`)

// Extract returns the distinct placeholder names found in text, in order of
// first appearance.
func Extract(text string) []string {
	matches := extractPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
