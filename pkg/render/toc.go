package render

import (
	"bytes"
	"fmt"
	"math/rand/v2"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/inline"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/scan"
)

// label renders text as plain label HTML: link markup is reduced to the
// link text and no typographic substitution is made.
func label(text []byte) []byte {
	c := inline.New(inline.Options{
		Flags: flags.IsLabel,
		Rand:  rand.New(rand.NewPCG(0, 0)),
	}, nil)
	return c.Compile(text)
}

// Anchor returns the id used for a heading. The label form of text keeps
// letters, digits and "_:-."; everything else becomes '.', and an L is
// prefixed when the first byte is not a letter.
func Anchor(text []byte) string {
	line := label(text)
	if len(line) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.Grow(len(line) + 1)
	if !scan.IsAlpha(int(line[0])) {
		buf.WriteByte('L')
	}
	for _, c := range line {
		if scan.IsAlnum(int(c)) || c == '_' || c == ':' || c == '-' || c == '.' {
			buf.WriteByte(c)
		} else {
			buf.WriteByte('.')
		}
	}
	return buf.String()
}

// TOC returns a nested list linking every heading in doc, or nil when
// there are none. The links match the ids written in TOC mode.
func TOC(doc *mdast.Document) []byte {
	headers := mdast.FindByKind(doc.Blocks, mdast.Header)
	if len(headers) == 0 {
		return nil
	}

	var buf bytes.Buffer
	var levels []int

	for _, h := range headers {
		var text []byte
		if len(h.Lines) > 0 {
			text = h.Lines[0].Text
		}

		switch {
		case len(levels) == 0:
			buf.WriteString("<ul>\n")
			levels = append(levels, h.HNumber)
		case h.HNumber > levels[len(levels)-1]:
			buf.WriteString("\n<ul>\n")
			levels = append(levels, h.HNumber)
		default:
			buf.WriteString("</li>\n")
			for len(levels) > 1 && h.HNumber < levels[len(levels)-1] {
				levels = levels[:len(levels)-1]
				buf.WriteString("</ul>\n</li>\n")
			}
		}

		fmt.Fprintf(&buf, `<li><a href="#%s">`, Anchor(text))
		buf.Write(label(text))
		buf.WriteString("</a>")
	}

	buf.WriteString("</li>\n")
	for ; len(levels) > 1; levels = levels[:len(levels)-1] {
		buf.WriteString("</ul>\n</li>\n")
	}
	buf.WriteString("</ul>\n")
	return buf.Bytes()
}
