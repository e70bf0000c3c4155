package mdast

import "strconv"

// Kind identifies a paragraph variant.
type Kind uint8

// Paragraph kinds.
const (
	Whitespace Kind = iota
	Code
	Quote
	Markup
	HTML
	Style
	DL
	UL
	OL
	AL
	ListItem
	Header
	HR
	Table
	Source
)

var kindNames = [...]string{
	Whitespace: "Whitespace",
	Code:       "Code",
	Quote:      "Quote",
	Markup:     "Markup",
	HTML:       "HTML",
	Style:      "Style",
	DL:         "DL",
	UL:         "UL",
	OL:         "OL",
	AL:         "AL",
	ListItem:   "ListItem",
	Header:     "Header",
	HR:         "HR",
	Table:      "Table",
	Source:     "Source",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsList reports whether k is one of the list container kinds.
func (k Kind) IsList() bool {
	return k == UL || k == OL || k == AL
}

// Align controls how a Markup paragraph is wrapped.
type Align uint8

// Alignments. Plain text gets no wrapper (tight list items).
const (
	Plain Align = iota
	Para
	Center
)

// Paragraph is one block. Container kinds (Quote, lists, DL, ListItem,
// Source) hold their content in Children; the rest hold Lines.
type Paragraph struct {
	Kind  Kind
	Align Align

	// HNumber is the heading level, 1 through 6.
	HNumber int

	// Lang is the fenced-code info string.
	Lang string

	// Ident is an attribute string for the wrapping tag, e.g. `class="x"`.
	Ident string

	Lines    []Line
	Children []*Paragraph
}

// NewParagraph returns a paragraph of the given kind holding lines.
func NewParagraph(kind Kind, lines ...Line) *Paragraph {
	return &Paragraph{Kind: kind, Lines: lines}
}

// Append adds children and returns p.
func (p *Paragraph) Append(children ...*Paragraph) *Paragraph {
	p.Children = append(p.Children, children...)
	return p
}

// Text joins the paragraph lines with newlines.
func (p *Paragraph) Text() []byte {
	var out []byte
	for i, l := range p.Lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, l.Text...)
	}
	return out
}
