package ingest

// BlockKind classifies a source document block
type BlockKind int

const (
	// BlockUnknown is a segment the source adapter could not classify.
	// The parser treats it as content rather than failing the document.
	BlockUnknown BlockKind = iota
	// BlockHeading carries a heading depth and its text
	BlockHeading
	// BlockContent is a paragraph, list, or table fragment in raw markup
	BlockContent
)

// Block is one typed segment of a source document. Source-format adapters
// (markdown today) produce the stream; the parser consumes it without
// knowing which format it came from.
type Block struct {
	Kind  BlockKind
	Depth int    // heading depth 1..N, meaningful for BlockHeading
	Text  string // heading text or raw content markup

	// HasAnchor marks a heading that carries an explicit anchor id in the
	// source. InternalLinks counts links targeting in-document anchors in
	// a content block. Both exist only to detect and skip a hyperlinked
	// table of contents.
	HasAnchor     bool
	InternalLinks int
}
