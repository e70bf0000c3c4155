package goldmark

import (
	"bytes"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/scan"
)

// paragraph recognises the paragraph-shaped extensions goldmark has no
// notion of: tables, centered text, lettered lists and =term= definitions.
func (m *mapper) paragraph(lines []mdast.Line, align mdast.Align) *mdast.Paragraph {
	if len(lines) == 0 {
		return nil
	}

	switch {
	case !m.flags.Any(flags.NoTables) && isTable(lines):
		return &mdast.Paragraph{Kind: mdast.Table, Lines: lines}
	case !m.flags.Any(flags.NoAlphaList) && isAlphaItem(lines[0]):
		return alphaList(lines)
	case !m.flags.Any(flags.NoDefinitionList) && isTerm(lines[0]) && len(lines) > 1:
		return termList(lines)
	case !m.flags.Any(flags.Strict) && isCentered(lines):
		return centered(lines)
	}

	return &mdast.Paragraph{Kind: mdast.Markup, Align: align, Lines: lines}
}

// isTable wants a header row holding a pipe followed by a divider row made
// of dashes, colons, pipes and blanks.
func isTable(lines []mdast.Line) bool {
	if len(lines) < 2 || lines[0].Flags&mdast.PipeChar == 0 || lines[1].Flags&mdast.PipeChar == 0 {
		return false
	}

	dashes := false
	for _, c := range lines[1].Text {
		switch c {
		case '-':
			dashes = true
		case '|', ':', ' ':
		default:
			return false
		}
	}
	return dashes
}

// isCentered matches ->text<- spanning the whole paragraph.
func isCentered(lines []mdast.Line) bool {
	first := lines[0].Text[lines[0].Dle:]
	last := bytes.TrimRight(lines[len(lines)-1].Text, " ")
	return bytes.HasPrefix(first, []byte("->")) && bytes.HasSuffix(last, []byte("<-")) &&
		(len(lines) > 1 || len(first) >= 4)
}

func centered(lines []mdast.Line) *mdast.Paragraph {
	out := make([]mdast.Line, len(lines))
	copy(out, lines)

	first := out[0].Text[out[0].Dle+2:]
	out[0] = mdast.NewLine(first, mdast.DefaultTabStop)

	n := len(out) - 1
	last := bytes.TrimRight(out[n].Text, " ")
	out[n] = mdast.NewLine(last[:len(last)-2], mdast.DefaultTabStop)

	return &mdast.Paragraph{Kind: mdast.Markup, Align: mdast.Center, Lines: out}
}

// isAlphaItem matches a single letter, a period and a blank.
func isAlphaItem(l mdast.Line) bool {
	t := l.Text[l.Dle:]
	return len(t) >= 3 && scan.IsAlpha(int(t[0])) && t[1] == '.' && t[2] == ' '
}

// alphaList splits a paragraph into lettered items. Lines that do not open
// an item continue the previous one.
func alphaList(lines []mdast.Line) *mdast.Paragraph {
	list := &mdast.Paragraph{Kind: mdast.AL}

	var body *mdast.Paragraph
	for _, l := range lines {
		if isAlphaItem(l) {
			body = &mdast.Paragraph{Kind: mdast.Markup, Align: mdast.Plain}
			list.Append(&mdast.Paragraph{Kind: mdast.ListItem, Children: []*mdast.Paragraph{body}})
			l = mdast.NewLine(bytes.TrimLeft(l.Text[l.Dle+2:], " "), mdast.DefaultTabStop)
		}
		body.Lines = append(body.Lines, l)
	}
	return list
}

// isTerm matches =term= with something between the equals signs.
func isTerm(l mdast.Line) bool {
	t := bytes.TrimRight(l.Text[l.Dle:], " ")
	return len(t) > 2 && t[0] == '=' && t[len(t)-1] == '='
}

// termList builds a definition list from =term= lines, each run of terms
// owning the lines up to the next term.
func termList(lines []mdast.Line) *mdast.Paragraph {
	list := &mdast.Paragraph{Kind: mdast.DL}

	var item *mdast.Paragraph
	for _, l := range lines {
		if isTerm(l) {
			if item == nil || len(item.Children) > 0 {
				item = &mdast.Paragraph{Kind: mdast.ListItem}
				list.Append(item)
			}
			t := bytes.TrimRight(l.Text[l.Dle:], " ")
			item.Lines = append(item.Lines, mdast.NewLine(t[1:len(t)-1], mdast.DefaultTabStop))
			continue
		}

		if len(item.Children) == 0 {
			item.Append(&mdast.Paragraph{Kind: mdast.Markup, Align: mdast.Plain})
		}
		body := item.Children[0]
		body.Lines = append(body.Lines, l)
	}
	return list
}

// divIdent parses %class%, %class:name% or %id:name%.
func divIdent(text []byte) (string, bool) {
	t := bytes.TrimSpace(text)
	if len(t) < 3 || t[0] != '%' || t[len(t)-1] != '%' {
		return "", false
	}
	inner := t[1 : len(t)-1]

	attr := "class"
	if name, ok := bytes.CutPrefix(inner, []byte("id:")); ok {
		attr, inner = "id", name
	} else if name, ok := bytes.CutPrefix(inner, []byte("class:")); ok {
		inner = name
	}

	if len(inner) == 0 {
		return "", false
	}
	for _, c := range inner {
		if !scan.IsAlnum(int(c)) && c != '-' && c != '_' {
			return "", false
		}
	}
	return attr + `="` + string(inner) + `"`, true
}
