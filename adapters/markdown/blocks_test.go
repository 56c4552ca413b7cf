package markdown

import (
	"errors"
	"strings"
	"testing"

	"clauseforge/domain/core"
	"clauseforge/domain/ingest"
)

const sampleDoc = `# Scope

The works comprise {{SCOPE_SUMMARY}}.

## Definitions

- Client means {{CLIENT_NAME}}
- Site means the place of work

# Payment

Invoices are due within {{PAYMENT_DAYS}} days.
`

func TestParse_BlockStream(t *testing.T) {
	blocks, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var headings []ingest.Block
	var contents []ingest.Block
	for _, b := range blocks {
		switch b.Kind {
		case ingest.BlockHeading:
			headings = append(headings, b)
		case ingest.BlockContent:
			contents = append(contents, b)
		}
	}

	if len(headings) != 3 {
		t.Fatalf("expected 3 headings, got %d", len(headings))
	}
	if headings[0].Depth != 1 || headings[1].Depth != 2 || headings[2].Depth != 1 {
		t.Errorf("heading depths wrong: %d %d %d", headings[0].Depth, headings[1].Depth, headings[2].Depth)
	}
	if headings[0].Text != "Scope" {
		t.Errorf("heading text: got %q", headings[0].Text)
	}

	joined := ""
	for _, c := range contents {
		joined += c.Text + "\n"
	}
	for _, want := range []string{"{{SCOPE_SUMMARY}}", "{{CLIENT_NAME}}", "{{PAYMENT_DAYS}}"} {
		if !strings.Contains(joined, want) {
			t.Errorf("placeholder %s lost in content blocks", want)
		}
	}
}

func TestParse_InternalLinkCounting(t *testing.T) {
	src := "- [Scope](#scope)\n- [Payment](#payment)\n- [External](https://example.com)\n"
	blocks, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("expected at least one block")
	}
	if blocks[0].InternalLinks != 2 {
		t.Errorf("expected 2 internal links, got %d", blocks[0].InternalLinks)
	}
}

func TestParse_FeedsIngestion(t *testing.T) {
	blocks, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res := ingest.ParseBlocks("SUBCONTRACT", blocks)

	if len(res.Clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(res.Clauses))
	}
	if res.Clauses[1].ParentID != res.Clauses[0].ID {
		t.Errorf("Definitions must be parented under Scope")
	}
	if len(res.Clauses[1].Variables) != 1 || res.Clauses[1].Variables[0] != "CLIENT_NAME" {
		t.Errorf("list-item placeholder lost: %v", res.Clauses[1].Variables)
	}
}

func TestParse_UndecodableSource(t *testing.T) {
	_, err := Parse([]byte{0xff, 0xfe, 0x00, 0x80})
	if !errors.Is(err, core.ErrSourceUndecodable) {
		t.Fatalf("expected ErrSourceUndecodable, got %v", err)
	}
}
