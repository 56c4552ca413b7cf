package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"clauseforge/domain/core"
	"clauseforge/domain/ingest"
)

// Parse converts a markdown source document into the typed block stream the
// ingestion parser consumes. This is the only place the source format is
// known; the parser downstream sees headings and content, nothing else.
//
// The document-level failure mode is an undecodable byte stream. Anything
// that decodes produces a (possibly imperfect) block stream.
func Parse(src []byte) ([]ingest.Block, error) {
	if !utf8.Valid(src) {
		return nil, core.ErrSourceUndecodable
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(src)

	var blocks []ingest.Block
	for _, child := range doc.GetChildren() {
		switch n := child.(type) {
		case *ast.Heading:
			blocks = append(blocks, ingest.Block{
				Kind:      ingest.BlockHeading,
				Depth:     n.Level,
				Text:      collectText(n),
				HasAnchor: n.HeadingID != "",
			})
		default:
			text := collectText(child)
			if strings.TrimSpace(text) == "" {
				continue
			}
			blocks = append(blocks, ingest.Block{
				Kind:          ingest.BlockContent,
				Text:          text,
				InternalLinks: countInternalLinks(child),
			})
		}
	}
	return blocks, nil
}

// collectText flattens a node's leaf literals into display text, keeping
// list items and table rows on separate lines.
func collectText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Literal)
		case *ast.Code:
			b.Write(t.Literal)
		case *ast.ListItem, *ast.TableRow:
			if b.Len() > 0 {
				b.WriteString("\n")
			}
		case *ast.TableCell:
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteString(" ")
			}
		case *ast.Softbreak, *ast.Hardbreak:
			b.WriteString("\n")
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(b.String())
}

// countInternalLinks counts links that target in-document anchors, the
// signature of a hyperlinked table of contents.
func countInternalLinks(node ast.Node) int {
	count := 0
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := n.(*ast.Link); ok && strings.HasPrefix(string(link.Destination), "#") {
			count++
		}
		return ast.GoToNext
	})
	return count
}
