package render

import (
	"fmt"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/scan"
)

// Alignment is a table column's text alignment.
type Alignment uint8

// Column alignments.
const (
	AlignNone Alignment = iota
	AlignCenter
	AlignLeft
	AlignRight
)

var alignStyles = [...]string{
	AlignNone:   "",
	AlignCenter: ` style="text-align:center;"`,
	AlignLeft:   ` style="text-align:left;"`,
	AlignRight:  ` style="text-align:right;"`,
}

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

func (a Alignment) style() string {
	if int(a) < len(alignStyles) {
		return alignStyles[a]
	}
	return ""
}

// Alignments reads the column alignments from a table's dash row, such as
// "|:--|--:|:-:|". A colon at the start of a cell means left, at the end
// right, at both ends center.
func Alignments(row []byte) []Alignment {
	start := 0
	for start < len(row) && row[start] == ' ' {
		start++
	}
	if start < len(row) && row[start] == '|' {
		start++
	}
	return alignments(row, start)
}

func alignments(row []byte, start int) []Alignment {
	var align []Alignment

	for start < len(row) {
		var first, last byte
		end := start
		for ; end < len(row) && row[end] != '|'; end++ {
			switch {
			case row[end] == '\\':
				end++
			case !scan.IsSpace(int(row[end])):
				if first == 0 {
					first = row[end]
				}
				last = row[end]
			}
		}

		switch {
		case first == ':' && last == ':':
			align = append(align, AlignCenter)
		case first == ':':
			align = append(align, AlignLeft)
		case last == ':':
			align = append(align, AlignRight)
		default:
			align = append(align, AlignNone)
		}
		start = end + 1
	}
	return align
}

// printTable writes a table: a header row, the dash row and body rows.
// Body rows always get as many cells as the header.
func (r *Renderer) printTable(p *mdast.Paragraph) {
	if len(p.Lines) < 2 {
		r.printBlock(p)
		return
	}

	lines := make([]mdast.Line, len(p.Lines))
	copy(lines, p.Lines)

	hdr := lines[0]
	if hdr.Dle < len(hdr.Text) && hdr.Text[hdr.Dle] == '|' {
		for i := range lines {
			lines[i].Dle++
		}
	}

	dash := lines[1]
	align := alignments(dash.Text, dash.Dle)

	if r.opts.Flags.Any(flags.ISO) {
		r.out.WriteString(`<table summary="A Markdown-generated table.">` + "\n")
	} else {
		r.out.WriteString("<table>\n")
	}

	r.out.WriteString("<thead>\n")
	hcols := r.splat(lines[0], "th", align, false)
	r.out.WriteString("</thead>\n")

	if hcols < len(align) {
		align = align[:hcols]
	}
	for len(align) < hcols {
		align = append(align, AlignNone)
	}

	r.out.WriteString("<tbody>\n")
	for _, body := range lines[2:] {
		r.splat(body, "td", align, true)
	}
	r.out.WriteString("</tbody>\n")
	r.out.WriteString("</table>\n")
}

// splat writes one row and returns the number of cells written. With force
// set the last column takes the rest of the line and missing cells are
// padded.
func (r *Renderer) splat(line mdast.Line, block string, align []Alignment, force bool) int {
	text := tidy(line.Text)
	if len(text) > 0 && text[len(text)-1] == '|' {
		text = text[:len(text)-1]
	}

	r.out.WriteString("<tr>\n")

	colno := 0
	for idx := line.Dle; idx < len(text); idx++ {
		first := idx
		if force && colno >= len(align)-1 {
			idx = len(text)
		} else {
			for idx < len(text) && text[idx] != '|' {
				if text[idx] == '\\' {
					idx++
				}
				idx++
			}
		}
		end := min(idx, len(text))

		style := ""
		if colno < len(align) {
			style = align[colno].style()
		}
		fmt.Fprintf(&r.out, "<%s%s>", block, style)
		r.out.Write(r.c.CompileWith(text[first:end], 0, "|"))
		fmt.Fprintf(&r.out, "</%s>\n", block)
		colno++
	}

	if force {
		for ; colno < len(align); colno++ {
			fmt.Fprintf(&r.out, "<%s></%s>\n", block, block)
		}
	}

	r.out.WriteString("</tr>\n")
	return colno
}
