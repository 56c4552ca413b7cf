package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"clauseforge/domain/clause"
	"clauseforge/domain/core"
	"clauseforge/domain/vars"
	"clauseforge/internal"
)

// Ordering-key strides per hierarchy level. Wide gaps at the top let an
// administrator later slot a clause between two sections without
// renumbering the whole contract type.
var orderStride = map[int]int{
	clause.LevelSection:    100,
	clause.LevelSubsection: 10,
	clause.LevelParagraph:  5,
}

// tocScanWindow is how many leading blocks are inspected for a hyperlinked
// table of contents.
const tocScanWindow = 8

// Result is the outcome of parsing one source document
type Result struct {
	Clauses []clause.Clause
	// SlugIndex maps the slugified clause name to its id, used by callers
	// that need to correlate cross-references back to clauses.
	SlugIndex map[string]core.ClauseID
	// SkippedHeadings counts headings dropped for having no usable text
	SkippedHeadings int
}

// parseState holds the open-clause pointers for one parse call. It is
// created per call and discarded at the end; the parser keeps no state
// between documents.
type parseState struct {
	// open holds, per level, the index into the result slice of the clause
	// currently open at that level, or -1. Indices rather than pointers:
	// the slice reallocates as it grows.
	open    [clause.LevelParagraph + 1]int
	buf     strings.Builder
	lastKey int
	counter [clause.LevelParagraph + 1]int
}

func newParseState() *parseState {
	st := &parseState{}
	for l := range st.open {
		st.open[l] = -1
	}
	return st
}

// ParseBlocks converts a block stream into a flat ordered clause list for
// one contract type. Individual malformed segments never abort the parse;
// they degrade to content so ingestion always terminates with a usable
// (possibly imperfect) clause tree.
func ParseBlocks(contractType string, blocks []Block) Result {
	blocks = skipTableOfContents(blocks)

	st := newParseState()
	res := Result{SlugIndex: make(map[string]core.ClauseID)}

	for _, b := range blocks {
		switch b.Kind {
		case BlockHeading:
			st.onHeading(contractType, b, &res)
		case BlockContent:
			st.buf.WriteString(b.Text)
			st.buf.WriteString("\n\n")
		default:
			// Unclassifiable segment: treat as content, never fatal.
			internal.DefaultLogger.Warn("ingest: unclassifiable block treated as content (%d bytes)", len(b.Text))
			st.buf.WriteString(b.Text)
			st.buf.WriteString("\n\n")
		}
	}
	st.flush(&res)

	for i := range res.Clauses {
		res.Clauses[i].Variables = vars.Extract(res.Clauses[i].Body)
	}
	return res
}

func (st *parseState) onHeading(contractType string, b Block, res *Result) {
	// Content buffered so far belongs to the clause that was open when it
	// streamed in, regardless of what this heading does next.
	st.flush(res)

	name := cleanHeadingText(b.Text)
	if len([]rune(name)) < 2 {
		// Empty or near-empty heading: not promoted to a clause.
		res.SkippedHeadings++
		return
	}

	depth := b.Depth
	if depth < clause.LevelSection {
		depth = clause.LevelSection
	}
	if depth > clause.LevelParagraph {
		// Deeper headings collapse into the paragraph bucket.
		depth = clause.LevelParagraph
	}

	// Close every clause at this depth or deeper.
	for l := depth; l <= clause.LevelParagraph; l++ {
		st.open[l] = -1
	}

	var parentID core.ClauseID
	for l := depth - 1; l >= clause.LevelSection; l-- {
		if st.open[l] >= 0 {
			parentID = res.Clauses[st.open[l]].ID
			break
		}
	}

	st.lastKey += orderStride[depth]
	st.counter[depth]++
	for l := depth + 1; l <= clause.LevelParagraph; l++ {
		st.counter[l] = 0
	}

	c := clause.Clause{
		ID:           core.NewClauseID(),
		Code:         st.codeFor(depth),
		Name:         name,
		ContractType: contractType,
		Level:        depth,
		OrderKey:     st.lastKey,
		ParentID:     parentID,
		Risk:         clause.RiskStandard,
	}
	res.Clauses = append(res.Clauses, c)
	res.SlugIndex[Slugify(name)] = c.ID
	st.open[depth] = len(res.Clauses) - 1
}

// flush attaches buffered content to the deepest currently open clause.
// Content arriving before any heading has no addressable owner and is
// dropped.
func (st *parseState) flush(res *Result) {
	if st.buf.Len() == 0 {
		return
	}
	text := strings.TrimSpace(st.buf.String())
	st.buf.Reset()
	if text == "" {
		return
	}
	for l := clause.LevelParagraph; l >= clause.LevelSection; l-- {
		if st.open[l] >= 0 {
			c := &res.Clauses[st.open[l]]
			if c.Body != "" {
				c.Body += "\n\n"
			}
			c.Body += text
			return
		}
	}
}

// codeFor builds the human code ("2", "2.4", "2.4.1") from the per-level
// counters, skipping levels no heading has opened yet so an orphaned deep
// heading gets "1" rather than "0.0.1".
func (st *parseState) codeFor(depth int) string {
	var parts []string
	for l := clause.LevelSection; l <= depth; l++ {
		if st.counter[l] > 0 {
			parts = append(parts, fmt.Sprintf("%d", st.counter[l]))
		}
	}
	return strings.Join(parts, ".")
}

// skipTableOfContents drops everything up to the first anchored heading
// when the document opens with a hyperlinked table of contents. Without
// this, each TOC entry would surface as spurious clause content.
func skipTableOfContents(blocks []Block) []Block {
	linky := -1
	for i, b := range blocks {
		if i >= tocScanWindow {
			break
		}
		if b.Kind == BlockContent && b.InternalLinks > 0 {
			linky = i
		}
	}
	if linky < 0 {
		return blocks
	}
	for i, b := range blocks {
		if b.Kind == BlockHeading && b.HasAnchor {
			return blocks[i:]
		}
	}
	// No anchored heading: resume at the first heading past the TOC run.
	for i := linky + 1; i < len(blocks); i++ {
		if blocks[i].Kind == BlockHeading {
			return blocks[i:]
		}
	}
	return nil
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
	slugPattern  = regexp.MustCompile(`[^a-z0-9]+`)
)

// cleanHeadingText strips structural markup and collapses whitespace
func cleanHeadingText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Slugify normalizes a clause name into a stable lookup key
func Slugify(name string) string {
	s := strings.ToLower(cleanHeadingText(name))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
