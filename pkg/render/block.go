package render

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/inline"
	"github.com/yaklabco/gomkd/pkg/langdetect"
	"github.com/yaklabco/gomkd/pkg/mdast"
)

var (
	paraBegin = [...]string{mdast.Plain: "", mdast.Para: "<p>", mdast.Center: `<p style="text-align:center;">`}
	paraEnd   = [...]string{mdast.Plain: "", mdast.Para: "</p>", mdast.Center: "</p>"}
)

// printBlock writes a text paragraph. A line ending in two blanks that is
// not the last line becomes a hard break.
func (r *Renderer) printBlock(p *mdast.Paragraph) {
	var text []byte
	for i, line := range p.Lines {
		t := line.Text
		if len(t) == 0 {
			continue
		}
		last := i == len(p.Lines)-1
		if !last && len(t) > 2 && t[len(t)-2] == ' ' && t[len(t)-1] == ' ' {
			text = append(text, t[:len(t)-2]...)
			text = append(text, inline.HardBreak, '\n')
			continue
		}
		text = append(text, tidy(t)...)
		if !last {
			text = append(text, '\n')
		}
	}

	align := p.Align
	if int(align) >= len(paraBegin) {
		align = mdast.Para
	}
	r.out.WriteString(paraBegin[align])
	r.out.Write(r.c.Compile(text))
	r.out.WriteString(paraEnd[align])
}

// printCode writes a code block. Trailing blank lines are dropped.
func (r *Renderer) printCode(p *mdast.Paragraph) {
	lang := p.Lang
	if lang == "" && r.opts.DetectLanguage {
		lang = langdetect.Detect(codeText(p.Lines))
	}

	if r.opts.Highlight != "" && lang != "" && r.highlight(p.Lines, lang) {
		return
	}

	r.out.WriteString("<pre><code")
	if lang != "" {
		fmt.Fprintf(&r.out, ` class="%s"`, lang)
	}
	r.out.WriteByte('>')

	blanks := 0
	for _, line := range p.Lines {
		if line.Blank() {
			blanks++
			continue
		}
		for ; blanks > 0; blanks-- {
			r.out.WriteByte('\n')
		}
		r.out.Write(r.c.Code(line.Text))
		r.out.WriteByte('\n')
	}

	r.out.WriteString("</code></pre>")
}

// printHTML passes raw HTML lines through untouched.
func (r *Renderer) printHTML(lines []mdast.Line) {
	blanks := 0
	for _, line := range lines {
		if len(line.Text) == 0 {
			blanks++
			continue
		}
		for ; blanks > 0; blanks-- {
			r.out.WriteByte('\n')
		}
		r.out.Write(line.Text)
		r.out.WriteByte('\n')
	}
}

// printHeader writes <hN>, with an id when a table of contents is being
// built.
func (r *Renderer) printHeader(p *mdast.Paragraph) {
	var text []byte
	if len(p.Lines) > 0 {
		text = p.Lines[0].Text
	}

	fmt.Fprintf(&r.out, "<h%d", p.HNumber)
	if r.opts.Flags.Any(flags.TOC) {
		fmt.Fprintf(&r.out, ` id="%s"`, Anchor(text))
	}
	r.out.WriteByte('>')
	r.out.Write(r.c.Compile(text))
	fmt.Fprintf(&r.out, "</h%d>", p.HNumber)
}

// codeText joins code lines for language detection.
func codeText(lines []mdast.Line) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.Write(line.Text)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// tidy drops trailing blanks.
func tidy(p []byte) []byte {
	return bytes.TrimRight(p, " \t\n\r\v\f")
}
