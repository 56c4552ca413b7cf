package clause

import (
	"time"

	"clauseforge/domain/core"
)

// Hierarchy levels as they appear in contract documents. Deeper nesting is
// representable; presentation collapses everything past Paragraph.
const (
	LevelSection    = 1
	LevelSubsection = 2
	LevelParagraph  = 3
)

// RiskLevel classifies how negotiable a clause is. Metadata only; the
// resolution engine never reads it.
type RiskLevel string

const (
	RiskStandard   RiskLevel = "standard"
	RiskNegotiable RiskLevel = "negotiable"
	RiskCritical   RiskLevel = "critical"
)

// Clause is the smallest addressable unit of contract text
type Clause struct {
	ID           core.ClauseID
	Code         string // human code, e.g. "2.4"
	Name         string
	ContractType string
	Level        int
	// OrderKey controls document position within a contract type. It is
	// strided at ingestion so clauses can later be inserted between two
	// neighbors without renumbering the whole type.
	OrderKey  int
	ParentID  core.ClauseID // weak back-reference; empty for roots and orphans
	Body      string
	Variables []string // distinct placeholder names extracted from Body
	Condition string   // optional condition expression, empty when always-on
	Risk      RiskLevel
	CreatedAt time.Time
}

// HasParent reports whether the clause is linked under another clause
func (c *Clause) HasParent() bool {
	return !core.ID(c.ParentID).IsEmpty()
}

// RuleTable maps a project data field name to the clause ids each of its
// values pulls in. Matching is exact string equality on the bag value.
type RuleTable map[string]map[string][]core.ClauseID

// Template is the assembly recipe for one contract type
type Template struct {
	ID           core.TemplateID
	ContractType string
	Version      int
	Active       bool
	BaseClauses  []core.ClauseID
	Rules        RuleTable
	CreatedAt    time.Time
}

// ByOrderKey sorts clauses ascending by ordering key
type ByOrderKey []Clause

func (s ByOrderKey) Len() int           { return len(s) }
func (s ByOrderKey) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s ByOrderKey) Less(i, j int) bool { return s[i].OrderKey < s[j].OrderKey }
