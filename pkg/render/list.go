package render

import (
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
)

// listDisplay writes a bulleted, numbered or lettered list.
func (r *Renderer) listDisplay(p *mdast.Paragraph) {
	if len(p.Children) == 0 {
		return
	}

	tag := "ol"
	if p.Kind == mdast.UL {
		tag = "ul"
	}

	r.out.WriteString("<" + tag)
	switch {
	case r.opts.Flags.Any(flags.ISO) && p.Kind == mdast.AL:
		r.out.WriteString(` class="alf"`)
	case r.opts.Flags.Any(flags.ISO) && p.Kind == mdast.OL:
		r.out.WriteString(` class="num"`)
	case p.Kind == mdast.AL && !r.opts.Flags.Any(flags.ISO):
		r.out.WriteString(` type="a"`)
	}
	r.out.WriteString(">\n")

	for _, item := range p.Children {
		r.htmlify(item.Children, "li", item.Ident)
		r.out.WriteByte('\n')
	}

	r.out.WriteString("</" + tag + ">\n")
}

// definitionList writes a <dl>. Each item's lines are its terms and its
// children the definition.
func (r *Renderer) definitionList(items []*mdast.Paragraph) {
	if len(items) == 0 {
		return
	}

	r.out.WriteString("<dl>\n")
	for _, item := range items {
		for _, term := range item.Lines {
			r.out.WriteString("<dt>")
			r.out.Write(r.c.Compile(term.Text))
			r.out.WriteString("</dt>\n")
		}
		r.htmlify(item.Children, "dd", item.Ident)
		r.out.WriteByte('\n')
	}
	r.out.WriteString("</dl>")
}
