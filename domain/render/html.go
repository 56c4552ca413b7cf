package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"clauseforge/domain/assemble"
)

// SafeFragment is structural markup that is safe to emit without escaping.
// Only the helpers in this package construct non-trivial fragments; they
// escape every piece of untrusted text before wrapping it in tags, so the
// exemption holds by construction rather than by caller discipline.
type SafeFragment string

// Metadata drives the synthesized cover section. The cover is not a clause;
// it is rendered ahead of the body from top-level project attributes.
type Metadata struct {
	ContractTitle string
	ContractType  string
	ProjectID     string
	ProjectName   string
	ExecutionDate *time.Time
}

// printCSS carries the page geometry, margins, and page-break hints the
// fixed-page delegate honors. Heading elements avoid a break directly after
// them so a section title never strands at a page bottom.
const printCSS = `@page { size: A4; margin: 25mm 22mm; }
body { font-family: "Times New Roman", Georgia, serif; font-size: 11pt; line-height: 1.45; color: #111; }
.cover { text-align: center; margin-top: 90mm; page-break-after: always; }
.cover h1 { font-size: 20pt; letter-spacing: 0.04em; }
.cover .project { font-size: 13pt; margin-top: 18pt; }
.cover .date { margin-top: 36pt; }
h1.section { font-size: 13pt; page-break-after: avoid; }
h2.subsection { font-size: 11.5pt; page-break-after: avoid; }
p.body { text-align: justify; margin: 0; }
span.code { font-weight: bold; }
table.contract { border-collapse: collapse; width: 100%; page-break-inside: avoid; }
table.contract td, table.contract th { border: 1px solid #444; padding: 4pt 6pt; vertical-align: top; }
table.signature { width: 100%; margin-top: 48pt; page-break-inside: avoid; }
table.signature td { width: 50%; padding-top: 36pt; border-top: 1px solid #111; }
`

// RenderHTML serializes a logical document to a complete print-styled HTML
// page. All node text is escaped; appendix fragments are emitted verbatim
// because SafeFragment values are sanitized at construction.
func RenderHTML(doc assemble.Document, meta Metadata, appendix ...SafeFragment) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(meta.ContractTitle))
	b.WriteString("<style>\n" + printCSS + "</style>\n</head>\n<body>\n")

	writeCover(&b, meta)

	for _, node := range doc.Nodes {
		writeNode(&b, node)
	}
	for _, frag := range appendix {
		b.WriteString(string(frag))
		b.WriteString("\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func writeCover(b *strings.Builder, meta Metadata) {
	b.WriteString("<div class=\"cover\">\n")
	fmt.Fprintf(b, "<h1>%s</h1>\n", html.EscapeString(meta.ContractTitle))
	if meta.ProjectName != "" || meta.ProjectID != "" {
		fmt.Fprintf(b, "<div class=\"project\">%s", html.EscapeString(meta.ProjectName))
		if meta.ProjectID != "" {
			fmt.Fprintf(b, " (%s)", html.EscapeString(meta.ProjectID))
		}
		b.WriteString("</div>\n")
	}
	if meta.ExecutionDate != nil {
		fmt.Fprintf(b, "<div class=\"date\">%s</div>\n", meta.ExecutionDate.Format("January 2, 2006"))
	}
	b.WriteString("</div>\n")
}

func writeNode(b *strings.Builder, node assemble.Node) {
	style := fmt.Sprintf(" style=\"margin-top:%dpt\"", node.SpaceBefore)
	switch node.Kind {
	case assemble.NodeMajorHeading:
		fmt.Fprintf(b, "<h1 class=\"section\"%s>%s</h1>\n", style, headingText(node))
	case assemble.NodeMinorHeading:
		fmt.Fprintf(b, "<h2 class=\"subsection\"%s>%s</h2>\n", style, headingText(node))
	default:
		fmt.Fprintf(b, "<p class=\"body\"%s>", style)
		if node.Label != "" {
			fmt.Fprintf(b, "<span class=\"code\">%s</span>&nbsp;&nbsp;", html.EscapeString(node.Label))
		}
		b.WriteString(escapeBody(node.Text))
		b.WriteString("</p>\n")
	}
}

func headingText(node assemble.Node) string {
	if node.Code != "" {
		return html.EscapeString(node.Code) + ".&nbsp;" + html.EscapeString(node.Text)
	}
	return html.EscapeString(node.Text)
}

// escapeBody escapes untrusted text while keeping paragraph breaks from the
// source document readable in the output.
func escapeBody(text string) string {
	paras := strings.Split(text, "\n\n")
	for i, p := range paras {
		paras[i] = strings.ReplaceAll(html.EscapeString(p), "\n", "<br>\n")
	}
	return strings.Join(paras, "<br>\n<br>\n")
}
