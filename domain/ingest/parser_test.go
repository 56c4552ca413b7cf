package ingest

import (
	"strings"
	"testing"

	"clauseforge/domain/clause"
)

func heading(depth int, text string) Block {
	return Block{Kind: BlockHeading, Depth: depth, Text: text}
}

func content(text string) Block {
	return Block{Kind: BlockContent, Text: text}
}

func TestParseBlocks_HeadingRoundTrip(t *testing.T) {
	res := ParseBlocks("SUBCONTRACT", []Block{
		heading(1, "Scope"),
		content("text"),
		heading(2, "Sub"),
		content("more"),
	})

	if len(res.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(res.Clauses))
	}
	first, second := res.Clauses[0], res.Clauses[1]

	if first.Level != 1 || second.Level != 2 {
		t.Errorf("levels: got (%d,%d), want (1,2)", first.Level, second.Level)
	}
	if second.ParentID != first.ID {
		t.Errorf("second clause must be parented under the first")
	}
	if !strings.Contains(first.Body, "text") {
		t.Errorf("first body missing its paragraph: %q", first.Body)
	}
	if !strings.Contains(second.Body, "more") {
		t.Errorf("second body missing its paragraph: %q", second.Body)
	}
	if first.ContractType != "SUBCONTRACT" {
		t.Errorf("contract type not propagated")
	}
}

func TestParseBlocks_OrderKeyStrides(t *testing.T) {
	res := ParseBlocks("T", []Block{
		heading(1, "One"),
		heading(2, "One-sub"),
		heading(3, "One-sub-para"),
		heading(1, "Two"),
	})
	keys := make([]int, len(res.Clauses))
	for i, c := range res.Clauses {
		keys[i] = c.OrderKey
	}
	want := []int{100, 110, 115, 215}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("order keys: got %v, want %v", keys, want)
		}
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			t.Errorf("order keys must strictly increase: %v", keys)
		}
	}
}

func TestParseBlocks_ContentBeforeHeadingDropped(t *testing.T) {
	res := ParseBlocks("T", []Block{
		content("preamble that belongs to nothing"),
		heading(1, "Scope"),
		content("body"),
	})
	if len(res.Clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(res.Clauses))
	}
	if strings.Contains(res.Clauses[0].Body, "preamble") {
		t.Errorf("content before the first heading must be dropped, got %q", res.Clauses[0].Body)
	}
}

func TestParseBlocks_EmptyHeadingSkipped(t *testing.T) {
	res := ParseBlocks("T", []Block{
		heading(1, "Scope"),
		heading(2, "  <b> </b> "),
		content("still belongs to Scope"),
	})
	if len(res.Clauses) != 1 {
		t.Fatalf("near-empty heading must not become a clause, got %d clauses", len(res.Clauses))
	}
	if res.SkippedHeadings != 1 {
		t.Errorf("expected 1 skipped heading, got %d", res.SkippedHeadings)
	}
	if !strings.Contains(res.Clauses[0].Body, "still belongs") {
		t.Errorf("content after a skipped heading attaches to the open clause")
	}
}

func TestParseBlocks_DeepHeadingsCollapse(t *testing.T) {
	res := ParseBlocks("T", []Block{
		heading(1, "One"),
		heading(2, "Two"),
		heading(3, "Three"),
		heading(5, "Five collapses"),
	})
	last := res.Clauses[len(res.Clauses)-1]
	if last.Level != clause.LevelParagraph {
		t.Errorf("depth 5 must collapse to level %d, got %d", clause.LevelParagraph, last.Level)
	}
	// The collapsed heading closes the previous level-3 clause and parents
	// under the still-open level 2.
	if last.ParentID != res.Clauses[1].ID {
		t.Errorf("collapsed heading must parent under the open subsection")
	}
}

func TestParseBlocks_OrphanRepresentable(t *testing.T) {
	res := ParseBlocks("T", []Block{
		heading(3, "Orphan paragraph"),
		content("body"),
	})
	if len(res.Clauses) != 1 {
		t.Fatalf("orphan fragment must be representable, got %d clauses", len(res.Clauses))
	}
	if res.Clauses[0].HasParent() {
		t.Errorf("orphan must have no parent")
	}
}

func TestParseBlocks_TOCSkipped(t *testing.T) {
	blocks := []Block{
		{Kind: BlockContent, Text: "1. Scope\n2. Payment", InternalLinks: 2},
		{Kind: BlockHeading, Depth: 1, Text: "Scope", HasAnchor: true},
		content("real body"),
		{Kind: BlockHeading, Depth: 1, Text: "Payment", HasAnchor: true},
	}
	res := ParseBlocks("T", blocks)
	if len(res.Clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(res.Clauses))
	}
	for _, c := range res.Clauses {
		if strings.Contains(c.Body, "1. Scope") {
			t.Errorf("TOC entries must not become clause content")
		}
	}
}

func TestParseBlocks_UnclassifiableBlockIsContent(t *testing.T) {
	res := ParseBlocks("T", []Block{
		heading(1, "Scope"),
		{Kind: BlockKind(42), Text: "weird segment"},
	})
	if len(res.Clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d", len(res.Clauses))
	}
	if !strings.Contains(res.Clauses[0].Body, "weird segment") {
		t.Errorf("unclassifiable segment must degrade to content")
	}
}

func TestParseBlocks_VariableExtraction(t *testing.T) {
	res := ParseBlocks("T", []Block{
		heading(1, "Payment"),
		content("Pay {{CONTRACT_VALUE}} to {{CONTRACTOR_NAME}} by {{DUE_DATE}}."),
	})
	vars := res.Clauses[0].Variables
	if len(vars) != 3 {
		t.Fatalf("expected 3 extracted variables, got %v", vars)
	}
}

func TestParseBlocks_Codes(t *testing.T) {
	res := ParseBlocks("T", []Block{
		heading(1, "One"),
		heading(2, "One A"),
		heading(2, "One B"),
		heading(1, "Two"),
		heading(2, "Two A"),
	})
	want := []string{"1", "1.1", "1.2", "2", "2.1"}
	for i, c := range res.Clauses {
		if c.Code != want[i] {
			t.Fatalf("codes mismatch at %d: got %q, want %q", i, c.Code, want[i])
		}
	}
}

func TestSlugify(t *testing.T) {
	if got := Slugify("  Payment &amp; Terms! "); got == "" || strings.Contains(got, " ") {
		t.Errorf("slug must be non-empty and space-free, got %q", got)
	}
	if Slugify("Scope") != Slugify("SCOPE") {
		t.Errorf("slugs must be case-insensitive")
	}
}
