// Package render turns a segmented document into HTML. It walks the
// paragraph tree, writes the block-level markup itself and hands every run
// of text to an inline.Compiler.
package render

import (
	"bytes"
	"fmt"
	"math/rand/v2"

	"github.com/yaklabco/gomkd/pkg/charset"
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/inline"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/rawdef"
)

// Options configure a Renderer.
type Options struct {
	Flags     flags.Flags
	Callbacks *inline.Callbacks

	// RefPrefix replaces "fn" in footnote ids.
	RefPrefix string

	RawDefs  *rawdef.Table
	MaxDepth int
	Rand     *rand.Rand

	// Highlight names a chroma style. Code blocks with a known language
	// are highlighted with class-based markup when it is set.
	Highlight string

	// DetectLanguage guesses a class for code blocks without one.
	DetectLanguage bool
}

// Renderer renders documents. It is not safe for concurrent use; give
// each goroutine its own.
type Renderer struct {
	opts Options
	c    *inline.Compiler
	out  bytes.Buffer
}

// New returns a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render returns doc as HTML in the configured output charset, followed
// by a newline.
func (r *Renderer) Render(doc *mdast.Document) []byte {
	out := charset.Finish(r.HTML(doc), r.opts.Flags)
	return append(out, '\n')
}

// HTML returns the UTF-8 body of doc and, when extra footnotes are
// enabled and any were referenced, the footnote appendix.
func (r *Renderer) HTML(doc *mdast.Document) []byte {
	doc.ResetReferences()

	r.c = inline.New(inline.Options{
		Flags:     r.opts.Flags & flags.UserMask,
		Callbacks: r.opts.Callbacks,
		RefPrefix: r.opts.RefPrefix,
		RawDefs:   r.opts.RawDefs,
		MaxDepth:  r.opts.MaxDepth,
		Rand:      r.opts.Rand,
	}, doc.Footnotes)
	r.out.Reset()

	r.htmlify(doc.Blocks, "", "")
	if r.opts.Flags.Any(flags.ExtraFootnote) {
		r.footnotes(doc.Footnotes)
	}
	return bytes.Clone(r.out.Bytes())
}

// References returns how many footnotes the last render numbered.
func (r *Renderer) References() int {
	if r.c == nil {
		return 0
	}
	return r.c.References()
}

// htmlify renders blocks separated by blank lines, wrapped in block when
// it is not empty.
func (r *Renderer) htmlify(blocks []*mdast.Paragraph, block, attrs string) {
	if block != "" {
		if attrs != "" {
			fmt.Fprintf(&r.out, "<%s %s>", block, attrs)
		} else {
			fmt.Fprintf(&r.out, "<%s>", block)
		}
	}

	for i, p := range blocks {
		r.display(p)
		if i < len(blocks)-1 {
			r.out.WriteString("\n\n")
		}
	}

	if block != "" {
		fmt.Fprintf(&r.out, "</%s>", block)
	}
}

func (r *Renderer) display(p *mdast.Paragraph) {
	switch p.Kind {
	case mdast.Style, mdast.Whitespace:
	case mdast.HTML:
		r.printHTML(p.Lines)
	case mdast.Code:
		r.printCode(p)
	case mdast.Quote:
		block := "blockquote"
		if p.Ident != "" {
			block = "div"
		}
		r.htmlify(p.Children, block, p.Ident)
	case mdast.UL, mdast.OL, mdast.AL:
		r.listDisplay(p)
	case mdast.DL:
		r.definitionList(p.Children)
	case mdast.HR:
		r.out.WriteString(r.hr())
	case mdast.Header:
		r.printHeader(p)
	case mdast.Table:
		r.printTable(p)
	case mdast.Source:
		r.htmlify(p.Children, "", "")
	default:
		r.printBlock(p)
	}
}

func (r *Renderer) hr() string {
	if r.opts.Flags.Any(flags.XML) {
		return "<hr />"
	}
	return "<hr>"
}
