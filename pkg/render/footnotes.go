package render

import (
	"fmt"

	"github.com/yaklabco/gomkd/pkg/mdast"
)

// footnotes appends the list of referenced notes in reference order.
// Rendering a note can reference further notes, which are then listed
// too.
func (r *Renderer) footnotes(notes mdast.Footnotes) {
	if r.c.References() == 0 {
		return
	}

	pfx := r.c.RefPrefix()
	fmt.Fprintf(&r.out, "\n<div class=\"footnotes\">\n%s\n<ol>\n", r.hr())

	for i := 1; i <= r.c.References(); i++ {
		for _, fn := range notes {
			if fn.RefNumber != i || !fn.Referenced {
				continue
			}
			fmt.Fprintf(&r.out, "<li id=\"%s:%d\">\n<p>", pfx, fn.RefNumber)
			r.out.Write(r.c.Compile([]byte(fn.Title)))
			fmt.Fprintf(&r.out, `<a href="#%sref:%d" rev="footnote">&#8617;</a>`, pfx, fn.RefNumber)
			r.out.WriteString("</p></li>\n")
		}
	}

	r.out.WriteString("</ol>\n</div>\n")
}
