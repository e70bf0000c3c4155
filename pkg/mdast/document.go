// Package mdast provides the block-level document model consumed by the
// HTML renderer: a tree of typed paragraphs, their source lines, and the
// reference table used to resolve links and footnotes.
package mdast

// Document is a segmented Markdown source ready for rendering.
type Document struct {
	// Title, Author and Date come from a leading pandoc-style header
	// ("% line" x3). Empty when absent.
	Title  string
	Author string
	Date   string

	// Blocks is the top-level paragraph sequence.
	Blocks []*Paragraph

	// Footnotes holds reference definitions, sorted by tag.
	Footnotes Footnotes
}

// HasHeader reports whether the document carried a pandoc header.
func (d *Document) HasHeader() bool {
	return d.Title != "" || d.Author != "" || d.Date != ""
}

// ResetReferences clears the per-render footnote numbering so the document
// can be rendered again.
func (d *Document) ResetReferences() {
	for _, fn := range d.Footnotes {
		fn.Referenced = false
		fn.RefNumber = 0
	}
}
