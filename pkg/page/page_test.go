package page_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/page"
	"github.com/yaklabco/gomkd/pkg/render"
)

func heading(level int, text string) *mdast.Paragraph {
	return &mdast.Paragraph{Kind: mdast.Header, HNumber: level, Lines: []mdast.Line{mdast.LineString(text)}}
}

func TestBytes_Minimal(t *testing.T) {
	t.Parallel()

	doc := &mdast.Document{Blocks: []*mdast.Paragraph{heading(1, "Hi")}}

	want := "<!doctype html public\t\"-//W3C//DTD HTML 4.01 Transitional//EN\"\n" +
		"\t\t\t\"http://www.w3.org/TR/html4/loose.dtd\">\n" +
		"<html>\n" +
		"<head>\n" +
		"  <meta name=\"GENERATOR\" content=\"gomkd\">\n" +
		"  <meta http-equiv=\"Content-Type\"\n" +
		"\tcontent=\"text/html; charset=UTF-8\">\n" +
		"</head>\n" +
		"<body>\n" +
		"<h1>Hi</h1>\n" +
		"</body>\n" +
		"</html>\n"

	assert.Equal(t, want, string(page.Bytes(doc, page.Options{})))
}

func TestBytes_Head(t *testing.T) {
	t.Parallel()

	doc := &mdast.Document{
		Title: "A *bold* title",
		Blocks: []*mdast.Paragraph{
			{Kind: mdast.Style, Lines: []mdast.Line{mdast.LineString("<style>p{}</style>")}},
			heading(1, "Body"),
		},
	}

	out := string(page.Bytes(doc, page.Options{
		CSS:       []string{"a.css", "b.css"},
		Header:    []string{`<script src="x.js"></script>`},
		Footer:    []string{"<p>footer</p>"},
		Generator: "gomkd 1.2.3",
	}))

	assert.Contains(t, out, `content="gomkd 1.2.3">`)
	assert.Contains(t, out, "  <link rel=\"stylesheet\"\n        type=\"text/css\"\n        href=\"a.css\">\n")
	assert.Less(t, strings.Index(out, "a.css"), strings.Index(out, "b.css"))
	assert.Contains(t, out, "  <title>A <em>bold</em> title</title>\n")
	assert.Contains(t, out, "  <script src=\"x.js\"></script>\n")
	assert.Contains(t, out, "<style>p{}</style>\n</head>")
	assert.Contains(t, out, "<p>footer</p>\n</body>\n</html>\n")
	assert.Equal(t, 1, strings.Count(out, "<style>"))
}

func TestBytes_TitleOverride(t *testing.T) {
	t.Parallel()

	doc := &mdast.Document{Title: "Doc"}
	out := string(page.Bytes(doc, page.Options{Title: "Override"}))
	assert.Contains(t, out, "<title>Override</title>")
	assert.NotContains(t, out, "<title>Doc")
}

func TestBytes_Doctypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doctype page.Doctype
		want    string
	}{
		{"strict", page.Strict, "<!doctype html public\t\"-//W3C//DTD HTML 4.01//EN\"\n\t\t\t\"http://www.w3.org/TR/html4/strict.dtd\">\n"},
		{"iso", page.ISO, "<!doctype html public\t\"ISO/IEC 15445:2000//DTD HTML//EN\">\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := string(page.Bytes(&mdast.Document{}, page.Options{Doctype: tt.doctype}))
			assert.True(t, strings.HasPrefix(out, tt.want), out)
		})
	}
}

func TestOptions_Flags(t *testing.T) {
	t.Parallel()

	base := render.Options{Flags: flags.ISO | flags.TOC}

	assert.Equal(t, flags.ISO|flags.TOC, page.Options{Render: base}.Flags())
	assert.Equal(t, flags.TOC, page.Options{Render: base, Doctype: page.Strict}.Flags())
	assert.Equal(t, flags.ISO, page.Options{Doctype: page.ISO}.Flags())
}

func TestBytes_XMLAndCharset(t *testing.T) {
	t.Parallel()

	out := string(page.Bytes(&mdast.Document{}, page.Options{
		Render: render.Options{Flags: flags.XML | flags.OutLatin1},
		CSS:    []string{"s.css"},
	}))

	assert.Contains(t, out, `content="gomkd"/>`)
	assert.Contains(t, out, `href="s.css"/>`)
	assert.Contains(t, out, "charset=ISO-8859-1")
}

func TestBytes_TOC(t *testing.T) {
	t.Parallel()

	doc := &mdast.Document{Blocks: []*mdast.Paragraph{heading(1, "One"), heading(2, "Two")}}
	out := string(page.Bytes(doc, page.Options{Render: render.Options{Flags: flags.TOC}}))

	body := out[strings.Index(out, "<body>\n")+len("<body>\n"):]
	assert.True(t, strings.HasPrefix(body, "<ul>\n<li><a href=\"#One\">One</a>"), body)
	assert.Contains(t, body, `<h1 id="One">One</h1>`)
	assert.Contains(t, body, `<h2 id="Two">Two</h2>`)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	doc := &mdast.Document{Blocks: []*mdast.Paragraph{heading(2, "x")}}
	require.NoError(t, page.Write(&buf, doc, page.Options{}))
	assert.Equal(t, string(page.Bytes(doc, page.Options{})), buf.String())
}

func TestParseDoctype(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    page.Doctype
		wantErr bool
	}{
		{"", page.Transitional, false},
		{"transitional", page.Transitional, false},
		{"STRICT", page.Strict, false},
		{"iso", page.ISO, false},
		{"html5", page.Transitional, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := page.ParseDoctype(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, page.ErrUnknownDoctype)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourcePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "syntax.text"), []byte("x"), 0o600))

	got, err := page.SourcePath(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	got, err = page.SourcePath(filepath.Join(dir, "syntax"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "syntax.text"), got)

	_, err = page.SourcePath(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't open either")
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "syntax.html", page.OutputPath("syntax"))
	assert.Equal(t, "syntax.html", page.OutputPath("syntax.text"))
	assert.Equal(t, filepath.Join("dir", "a.b.html"), page.OutputPath(filepath.Join("dir", "a.b.md")))
}
