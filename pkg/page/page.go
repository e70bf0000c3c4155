// Package page wraps a rendered document in a complete HTML page: doctype,
// <head> with generator and charset meta tags, stylesheets, title and
// extra header lines, then the body, an optional table of contents and
// footer lines.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomkd/pkg/charset"
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/render"
)

// Doctype selects the document type declaration.
type Doctype uint8

// Document types.
const (
	// Transitional is HTML 4.01 Transitional.
	Transitional Doctype = iota
	// Strict is HTML 4.01 Strict. It turns the ISO flag off.
	Strict
	// ISO is ISO/IEC 15445:2000. It turns the ISO flag on.
	ISO
)

// ErrUnknownDoctype is returned by ParseDoctype.
var ErrUnknownDoctype = errors.New("unknown doctype")

var doctypeNames = map[Doctype]string{
	Transitional: "transitional",
	Strict:       "strict",
	ISO:          "iso",
}

func (d Doctype) String() string {
	if name, ok := doctypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Doctype(%d)", uint8(d))
}

// ParseDoctype accepts "transitional", "strict" or "iso". The empty string
// means Transitional.
func ParseDoctype(s string) (Doctype, error) {
	if s == "" {
		return Transitional, nil
	}
	for d, name := range doctypeNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	return Transitional, fmt.Errorf("%w: %q", ErrUnknownDoctype, s)
}

// public returns the public identifier and the DTD url, which is empty
// for ISO.
func (d Doctype) public() (string, string) {
	switch d {
	case Strict:
		return "-//W3C//DTD HTML 4.01//EN", "http://www.w3.org/TR/html4/strict.dtd"
	case ISO:
		return "ISO/IEC 15445:2000//DTD HTML//EN", ""
	default:
		return "-//W3C//DTD HTML 4.01 Transitional//EN", "http://www.w3.org/TR/html4/loose.dtd"
	}
}

// DefaultGenerator is written into the GENERATOR meta tag.
const DefaultGenerator = "gomkd"

// Options configure a page.
type Options struct {
	Render  render.Options
	Doctype Doctype

	// CSS lists stylesheet urls, linked in order.
	CSS []string

	// Header lines are copied into <head>; Footer lines go before </body>.
	Header []string
	Footer []string

	// Title overrides the document's pandoc title.
	Title string

	Generator string
}

// Flags returns the render flags after the doctype has been applied.
func (o Options) Flags() flags.Flags {
	fl := o.Render.Flags
	switch o.Doctype {
	case Strict:
		fl = fl.Without(flags.ISO)
	case ISO:
		fl = fl.With(flags.ISO)
	}
	return fl
}

// Write renders doc as a full page to w.
func Write(w io.Writer, doc *mdast.Document, opts Options) error {
	if _, err := w.Write(Bytes(doc, opts)); err != nil {
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// Bytes renders doc as a full page.
func Bytes(doc *mdast.Document, opts Options) []byte {
	fl := opts.Flags()
	ropts := opts.Render
	ropts.Flags = fl

	generator := opts.Generator
	if generator == "" {
		generator = DefaultGenerator
	}
	closer := ">"
	if fl.Any(flags.XML) {
		closer = "/>"
	}

	var buf bytes.Buffer

	id, dtd := opts.Doctype.public()
	if dtd != "" {
		fmt.Fprintf(&buf, "<!doctype html public\t%q\n\t\t\t%q>\n", id, dtd)
	} else {
		fmt.Fprintf(&buf, "<!doctype html public\t%q>\n", id)
	}
	buf.WriteString("<html>\n<head>\n")
	fmt.Fprintf(&buf, "  <meta name=\"GENERATOR\" content=\"%s\"%s\n", generator, closer)
	fmt.Fprintf(&buf, "  <meta http-equiv=\"Content-Type\"\n\tcontent=\"text/html; charset=%s\">\n",
		charset.OutputFor(fl).Name())

	for _, css := range opts.CSS {
		fmt.Fprintf(&buf, "  <link rel=\"stylesheet\"\n        type=\"text/css\"\n        href=\"%s\"%s\n", css, closer)
	}

	title := opts.Title
	if title == "" {
		title = doc.Title
	}
	if title != "" {
		buf.WriteString("  <title>")
		buf.Write(render.Line([]byte(title), ropts))
		buf.WriteString("</title>\n")
	}

	for _, h := range opts.Header {
		fmt.Fprintf(&buf, "  %s\n", h)
	}
	for _, style := range mdast.FindByKind(doc.Blocks, mdast.Style) {
		buf.Write(style.Text())
		buf.WriteByte('\n')
	}

	buf.WriteString("</head>\n<body>\n")

	if fl.Any(flags.TOC) {
		buf.Write(charset.Finish(render.TOC(doc), fl))
	}

	buf.Write(render.New(ropts).Render(doc))

	for _, f := range opts.Footer {
		buf.WriteString(f)
		buf.WriteByte('\n')
	}
	buf.WriteString("</body>\n</html>\n")

	return buf.Bytes()
}

// SourcePath resolves an input name: the name itself if it exists, else
// the name with ".text" appended.
func SourcePath(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	alt := name + ".text"
	if _, err := os.Stat(alt); err != nil {
		return "", fmt.Errorf("can't open either %s or %s: %w", name, alt, err)
	}
	return alt, nil
}

// OutputPath replaces the extension of name with ".html".
func OutputPath(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".html"
}
