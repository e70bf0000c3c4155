package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
)

// mapper converts a goldmark block tree into mdast paragraphs. Only block
// structure is taken from goldmark; inline content stays as source lines.
type mapper struct {
	source []byte
	flags  flags.Flags
}

// blocks maps every child of parent.
func (m *mapper) blocks(parent ast.Node) []*mdast.Paragraph {
	var out []*mdast.Paragraph
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if p := m.block(child); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (m *mapper) block(node ast.Node) *mdast.Paragraph {
	switch n := node.(type) {
	case *ast.Heading:
		return m.heading(n)
	case *ast.Paragraph:
		return m.paragraph(m.lines(n), mdast.Para)
	case *ast.TextBlock:
		return m.paragraph(m.lines(n), mdast.Plain)
	case *ast.ThematicBreak:
		return &mdast.Paragraph{Kind: mdast.HR}
	case *ast.FencedCodeBlock:
		return &mdast.Paragraph{
			Kind:  mdast.Code,
			Lang:  string(n.Language(m.source)),
			Lines: m.lines(n),
		}
	case *ast.CodeBlock:
		return &mdast.Paragraph{Kind: mdast.Code, Lines: m.lines(n)}
	case *ast.HTMLBlock:
		return m.html(n)
	case *ast.Blockquote:
		return m.quote(n)
	case *ast.List:
		return m.list(n)
	case *east.DefinitionList:
		return m.definitionList(n)
	default:
		return nil
	}
}

// lines returns the node's source lines without their line endings.
func (m *mapper) lines(node ast.Node) []mdast.Line {
	segs := node.Lines()
	out := make([]mdast.Line, 0, segs.Len())
	for i := range segs.Len() {
		out = append(out, m.line(segs.At(i)))
	}
	return out
}

func (m *mapper) line(seg text.Segment) mdast.Line {
	value := bytes.TrimRight(seg.Value(m.source), "\r\n")
	return mdast.NewLine(value, mdast.DefaultTabStop)
}

// heading folds a multi-line setext heading into one line.
func (m *mapper) heading(n *ast.Heading) *mdast.Paragraph {
	lines := m.lines(n)
	parts := make([][]byte, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, bytes.TrimSpace(l.Text))
	}

	return &mdast.Paragraph{
		Kind:    mdast.Header,
		HNumber: n.Level,
		Lines:   []mdast.Line{mdast.NewLine(bytes.Join(parts, []byte(" ")), mdast.DefaultTabStop)},
	}
}

// html maps a raw HTML block. A leading <style> block is kept apart so the
// renderer can skip it and a page can lift it into <head>.
func (m *mapper) html(n *ast.HTMLBlock) *mdast.Paragraph {
	lines := m.lines(n)
	if n.HasClosure() {
		lines = append(lines, m.line(n.ClosureLine))
	}

	kind := mdast.HTML
	if len(lines) > 0 && hasFoldPrefix(lines[0].Text[lines[0].Dle:], "<style") {
		kind = mdast.Style
	}
	return &mdast.Paragraph{Kind: kind, Lines: lines}
}

// quote maps a blockquote. A first line of the form %class% turns it into
// a <div> carrying that attribute.
func (m *mapper) quote(n *ast.Blockquote) *mdast.Paragraph {
	p := &mdast.Paragraph{Kind: mdast.Quote, Children: m.blocks(n)}
	if m.flags.Any(flags.NoDivQuote) || len(p.Children) == 0 {
		return p
	}

	first := p.Children[0]
	if first.Kind != mdast.Markup || len(first.Lines) == 0 {
		return p
	}
	ident, ok := divIdent(first.Lines[0].Text)
	if !ok {
		return p
	}

	p.Ident = ident
	first.Lines = first.Lines[1:]
	if len(first.Lines) == 0 {
		p.Children = p.Children[1:]
	}
	return p
}

func (m *mapper) list(n *ast.List) *mdast.Paragraph {
	kind := mdast.UL
	if n.IsOrdered() {
		kind = mdast.OL
	}

	p := &mdast.Paragraph{Kind: kind}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		p.Append(&mdast.Paragraph{Kind: mdast.ListItem, Children: m.blocks(item)})
	}
	return p
}

// definitionList groups consecutive terms with the descriptions that
// follow them.
func (m *mapper) definitionList(n *east.DefinitionList) *mdast.Paragraph {
	p := &mdast.Paragraph{Kind: mdast.DL}

	var item *mdast.Paragraph
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *east.DefinitionTerm:
			if item == nil || len(item.Children) > 0 {
				item = &mdast.Paragraph{Kind: mdast.ListItem}
				p.Append(item)
			}
			item.Lines = append(item.Lines, m.lines(c)...)

		case *east.DefinitionDescription:
			if item == nil {
				item = &mdast.Paragraph{Kind: mdast.ListItem}
				p.Append(item)
			}
			body := m.blocks(c)
			if c.IsTight {
				for _, b := range body {
					if b.Kind == mdast.Markup && b.Align == mdast.Para {
						b.Align = mdast.Plain
					}
				}
			}
			item.Children = append(item.Children, body...)
		}
	}
	return p
}

func hasFoldPrefix(text []byte, prefix string) bool {
	return len(text) >= len(prefix) && bytes.EqualFold(text[:len(prefix)], []byte(prefix))
}
