package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/yaklabco/gomkd/pkg/langdetect"
	"github.com/yaklabco/gomkd/pkg/mdast"
)

// highlight writes a code block as chroma class-annotated spans. It
// reports false, writing nothing, when no lexer knows lang.
func (r *Renderer) highlight(lines []mdast.Line, lang string) bool {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Get(langdetect.Canonical(lang))
	}
	if lexer == nil {
		return false
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, string(codeText(lines)))
	if err != nil {
		return false
	}

	var body strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))
	if err := formatter.Format(&body, styles.Get(r.opts.Highlight), iterator); err != nil {
		return false
	}

	r.out.WriteString(`<pre class="chroma"><code class="` + lang + `">`)
	r.out.WriteString(body.String())
	r.out.WriteString("</code></pre>")
	return true
}

// StyleCSS returns the stylesheet for a chroma style name, for pages that
// embed highlighted code.
func StyleCSS(name string) (string, error) {
	var css strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(name)); err != nil {
		return "", err
	}
	return css.String(), nil
}
