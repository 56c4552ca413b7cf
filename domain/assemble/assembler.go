package assemble

import (
	"strings"

	"clauseforge/domain/clause"
)

// NodeKind is the presentation class of a logical document node
type NodeKind int

const (
	NodeMajorHeading NodeKind = iota
	NodeMinorHeading
	NodeParagraph
)

// Vertical space (points) emitted ahead of each presentation class, per
// legal-document layout convention.
const (
	spaceBeforeMajor     = 24
	spaceBeforeMinor     = 14
	spaceBeforeParagraph = 6
)

// Node is one entry in the logical document: a heading or a flowing
// paragraph, already substituted, tagged with enough for a renderer to lay
// it out without consulting the clause records again.
type Node struct {
	Kind        NodeKind
	Level       int
	Code        string
	Text        string // heading text or paragraph body
	Label       string // inline bolded prefix for paragraph nodes, e.g. "3.2.1"
	SpaceBefore int    // points
}

// Document is the in-memory logical document produced before serialization
type Document struct {
	Nodes []Node
}

// Input pairs a resolved clause with its substituted body text
type Input struct {
	Clause clause.Clause
	Body   string
}

// presentationFor maps a hierarchy level to exactly one presentation class.
// Total: levels past Paragraph degrade to plain paragraphs, never error.
func presentationFor(level int) NodeKind {
	switch level {
	case clause.LevelSection:
		return NodeMajorHeading
	case clause.LevelSubsection:
		return NodeMinorHeading
	default:
		return NodeParagraph
	}
}

// Assemble walks the ordered substituted clause list and produces the
// logical document. Order is trusted as given; the resolver already sorted
// by ordering key.
func Assemble(items []Input) Document {
	var doc Document
	for _, item := range items {
		c := item.Clause
		switch presentationFor(c.Level) {
		case NodeMajorHeading:
			doc.Nodes = append(doc.Nodes, Node{
				Kind:        NodeMajorHeading,
				Level:       c.Level,
				Code:        c.Code,
				Text:        strings.ToUpper(c.Name),
				SpaceBefore: spaceBeforeMajor,
			})
			doc.appendBody(c, item.Body)
		case NodeMinorHeading:
			doc.Nodes = append(doc.Nodes, Node{
				Kind:        NodeMinorHeading,
				Level:       c.Level,
				Code:        c.Code,
				Text:        c.Name,
				SpaceBefore: spaceBeforeMinor,
			})
			doc.appendBody(c, item.Body)
		default:
			// Paragraph clauses render no heading; the code, when present,
			// becomes an inline bolded label ahead of the body.
			body := item.Body
			if body == "" {
				body = c.Name
			}
			doc.Nodes = append(doc.Nodes, Node{
				Kind:        NodeParagraph,
				Level:       c.Level,
				Code:        c.Code,
				Text:        body,
				Label:       c.Code,
				SpaceBefore: spaceBeforeParagraph,
			})
		}
	}
	return doc
}

func (d *Document) appendBody(c clause.Clause, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	d.Nodes = append(d.Nodes, Node{
		Kind:        NodeParagraph,
		Level:       c.Level,
		Code:        c.Code,
		Text:        body,
		SpaceBefore: spaceBeforeParagraph,
	})
}
