package render

import (
	"fmt"
	"html"
	"strings"
)

// Table builds a contract table fragment. Every header and cell is escaped
// here, which is what entitles the result to SafeFragment status.
func Table(headers []string, rows [][]string) SafeFragment {
	var b strings.Builder
	b.WriteString("<table class=\"contract\">\n")
	if len(headers) > 0 {
		b.WriteString("<tr>")
		for _, h := range headers {
			fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
		}
		b.WriteString("</tr>\n")
	}
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>")
	return SafeFragment(b.String())
}

// SignatureBlock builds the two-column signature section appended after the
// contract body.
func SignatureBlock(leftParty, rightParty string) SafeFragment {
	var b strings.Builder
	b.WriteString("<table class=\"signature\">\n<tr>\n")
	fmt.Fprintf(&b, "<td>%s</td>\n", html.EscapeString(leftParty))
	fmt.Fprintf(&b, "<td>%s</td>\n", html.EscapeString(rightParty))
	b.WriteString("</tr>\n</table>")
	return SafeFragment(b.String())
}
