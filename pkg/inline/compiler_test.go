package inline_test

import (
	"html"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/inline"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/rawdef"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func compile(text string, fl flags.Flags) string {
	c := inline.New(inline.Options{Flags: fl, Rand: seeded()}, nil)
	return string(c.Compile([]byte(text)))
}

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		flags flags.Flags
		want  string
	}{
		{name: "plain", input: "hello world", want: "hello world"},
		{name: "em", input: "*hi*", want: "<em>hi</em>"},
		{name: "strong", input: "**hi**", want: "<strong>hi</strong>"},
		{name: "underscore em", input: "_hi_", want: "<em>hi</em>"},
		{name: "intraword underscore", input: "snake_case_name", want: "snake_case_name"},
		{name: "lone star", input: "a * b", want: "a * b"},
		{name: "code span", input: "`code`", want: "<code>code</code>"},
		{name: "code span escapes", input: "`<a>`", want: "<code>&lt;a&gt;</code>"},
		{name: "code span trims one blank", input: "`` `x` ``", want: "<code>`x`</code>"},
		{name: "shorter closer", input: "``a`", want: "<code>`a</code>"},
		{name: "strikethrough", input: "~~no~~", want: "<del>no</del>"},
		{name: "single tilde", input: "~no~", want: "~no~"},
		{
			name:  "strikethrough disabled",
			input: "~~no~~",
			flags: flags.NoStrikethrough,
			want:  "~~no~~",
		},
		{name: "superscript", input: "a^b", want: "a<sup>b</sup>"},
		{name: "parenthesized superscript", input: "a^(b c)", want: "a<sup>b c</sup>"},
		{name: "superscript disabled", input: "a^b", flags: flags.NoSuperscript, want: "a^b"},
		{name: "backslash escapes", input: `\*x\*`, want: "*x*"},
		{name: "backslash kept", input: `a\b`, want: `a\b`},
		{name: "bare ampersand", input: "AT&T", want: "AT&amp;T"},
		{name: "entity", input: "&amp; &#169;", want: "&amp; &#169;"},
		{name: "html passes", input: "<b>x</b>", want: "<b>x</b>"},
		{name: "html blocked", input: "<b>x", flags: flags.NoHTML, want: "&lt;b>x"},
		{name: "lone angle", input: "a < b", want: "a &lt; b"},
		{name: "comment", input: "<!-- c -->", want: "<!-- c -->"},
		{name: "hard break", input: "a\x03b", want: "a<br>b"},
		{name: "xml hard break", input: "a\x03b", flags: flags.XML, want: "a<br />b"},
		{name: "double quotes", input: `"hi"`, want: "&ldquo;hi&rdquo;"},
		{name: "single quotes", input: "'hi'", want: "&lsquo;hi&rsquo;"},
		{name: "apostrophe", input: "it's", want: "it&rsquo;s"},
		{name: "en dash", input: "a -- b", want: "a &ndash; b"},
		{name: "em dash", input: "a---b", want: "a&mdash;b"},
		{name: "ellipsis", input: "wait...", want: "wait&hellip;"},
		{name: "copyright", input: "(c) 2024", want: "&copy; 2024"},
		{name: "trademark", input: "x(tm)", want: "x&trade;"},
		{name: "fraction", input: "1/2 cup", want: "&frac12; cup"},
		{name: "tick quotes", input: "``hi''", want: "&ldquo;hi&rdquo;"},
		{name: "pants disabled", input: `"hi" -- (c)`, flags: flags.NoPants, want: `"hi" -- (c)`},
		{
			name:  "inline link",
			input: `[a](http://x "t")`,
			want:  `<a href="http://x" title="t">a</a>`,
		},
		{name: "broket link", input: "[a](<http://x>)", want: `<a href="http://x">a</a>`},
		{name: "link text is compiled", input: "[*a*](/x)", want: `<a href="/x"><em>a</em></a>`},
		{name: "url is encoded", input: `[a](/x y"z)`, want: `<a href="/x%20y%22z">a</a>`},
		{name: "links disabled", input: "[a](http://x)", flags: flags.NoLinks, want: "[a](http://x)"},
		{name: "unclosed label", input: "[a", want: "[a"},
		{
			name:  "image with size and title",
			input: `![alt](/i.png =10x20 "t")`,
			want:  `<img src="/i.png" height="20" width="10" title="t" alt="alt">`,
		},
		{
			name:  "xml image",
			input: "![alt](/i.png)",
			flags: flags.XML,
			want:  `<img src="/i.png" alt="alt" />`,
		},
		{
			name:  "iso drops size",
			input: "![alt](/i.png =10x20)",
			flags: flags.ISO,
			want:  `<img src="/i.png" alt="alt">`,
		},
		{name: "images disabled", input: "![a](/i.png)", flags: flags.NoImage, want: "![a](/i.png)"},
		{
			name:  "object",
			input: "?[doc](file.pdf)",
			want:  `<object data="file.pdf" type ="application/pdf" title="doc"></object>`,
		},
		{name: "class span", input: "[x](class:foo)", want: `<span class="foo">x</span>`},
		{name: "id span", input: "[x](id:top)", want: `<span id="top">x</span>`},
		{name: "abbr", input: "[HTML](abbr:markup)", want: `<abbr title="markup">HTML</abbr>`},
		{name: "raw", input: "[x](raw:<b>)", want: "<b>"},
		{
			name:  "safe link rejects scheme",
			input: "[x](javascript:alert)",
			flags: flags.SafeLink,
			want:  "[x](javascript:alert)",
		},
		{
			name:  "safe link allows local",
			input: "[x](/local)",
			flags: flags.SafeLink,
			want:  `<a href="/local">x</a>`,
		},
		{
			name:  "safe link blocks pseudo",
			input: "[x](class:foo)",
			flags: flags.SafeLink,
			want:  "[x](class:foo)",
		},
		{
			name:  "safe link rejects empty link",
			input: "[a]()",
			flags: flags.SafeLink,
			want:  "[a]()",
		},
		{name: "empty link without safe link", input: "[a]()", want: `<a href="">a</a>`},
		{
			name:  "em inside strong",
			input: "**bold *it* text**",
			want:  "<strong>bold <em>it</em> text</strong>",
		},
		{
			name:  "strong inside em",
			input: "*it **bold** it*",
			want:  "<em>it <strong>bold</strong> it</em>",
		},
		{
			name:  "triple run closes nested pair",
			input: "*a **b***",
			want:  "<em>a <strong>b</strong></em>",
		},
		{
			name:  "triple run on both sides",
			input: "***a***",
			want:  "<strong><em>a</em></strong>",
		},
		{name: "flat runs", input: "**a** and *b*", want: "<strong>a</strong> and <em>b</em>"},
		{name: "mixed characters nest", input: "_a **b** c_", want: "<em>a <strong>b</strong> c</em>"},
		{name: "longer closer keeps the shorter run", input: "```a``b`c", want: "<code>`a</code>b`c"},
		{name: "longer run skipped for exact closer", input: "``a```b``c", want: "<code>a```b</code>c"},
		{
			name:  "url autolink",
			input: "<http://x.com>",
			want:  `<a href="http://x.com">http://x.com</a>`,
		},
		{
			name:  "bare autolink",
			input: "see http://x.com now",
			flags: flags.Autolink,
			want:  `see <a href="http://x.com">http://x.com</a> now`,
		},
		{name: "label mode", input: "[a](http://x)", flags: flags.IsLabel, want: "a"},
		{name: "tag text quotes", input: `a "b" > c`, flags: flags.TagText, want: "a &quot;b&quot; &gt; c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, compile(tt.input, tt.flags))
		})
	}
}

func TestCompile_References(t *testing.T) {
	t.Parallel()

	notes := mdast.Footnotes{
		{Tag: "ref", Link: "/x", Title: "The X"},
		{Tag: "pic", Link: "/p.png", Width: 5, Height: 6},
	}
	notes.Sort()

	tests := []struct {
		name  string
		input string
		flags flags.Flags
		want  string
	}{
		{name: "explicit", input: "[a][ref]", want: `<a href="/x" title="The X">a</a>`},
		{name: "space before tag", input: "[a] [ref]", want: `<a href="/x" title="The X">a</a>`},
		{name: "implicit", input: "[ref]", want: `<a href="/x" title="The X">ref</a>`},
		{name: "case insensitive", input: "[REF]", want: `<a href="/x" title="The X">REF</a>`},
		{name: "empty tag", input: "[ref][]", want: `<a href="/x" title="The X">ref</a>`},
		{name: "image", input: "![p][pic]", want: `<img src="/p.png" height="6" width="5" alt="p">`},
		{name: "undefined", input: "[nope]", want: "[nope]"},
		{name: "implicit needs two labels in 1.0 mode", input: "[ref]", flags: flags.OneCompat, want: "[ref]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := inline.New(inline.Options{Flags: tt.flags}, notes)
			assert.Equal(t, tt.want, string(c.Compile([]byte(tt.input))))
		})
	}
}

func TestCompile_FootnoteNumbering(t *testing.T) {
	t.Parallel()

	notes := mdast.Footnotes{
		{Tag: "^a", Title: "first"},
		{Tag: "^b", Title: "second"},
	}
	notes.Sort()

	c := inline.New(inline.Options{Flags: flags.ExtraFootnote, RefPrefix: "n"}, notes)
	got := string(c.Compile([]byte("x[^b] y[^a] z[^b]")))

	want := `x<sup id="nref:1"><a href="#n:1" rel="footnote">1</a></sup>` +
		` y<sup id="nref:2"><a href="#n:2" rel="footnote">2</a></sup>` +
		` z[^b]`
	assert.Equal(t, want, got)
	assert.Equal(t, 2, c.References())
	assert.Equal(t, 1, notes.Find("^b").RefNumber)
	assert.Equal(t, 2, notes.Find("^a").RefNumber)
	assert.True(t, notes.Find("^a").Referenced)
}

func TestCompile_MailAddress(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"<me@example.com>", "<mailto:me@example.com>"} {
		got := compile(input, 0)

		assert.NotContains(t, got, "@")
		assert.True(t, strings.HasPrefix(got, `<a href="&#`), got)

		plain := html.UnescapeString(got)
		assert.Contains(t, plain, `<a href="mailto:me@example.com">`)
		assert.True(t, strings.HasSuffix(plain, "me@example.com</a>"), plain)

		assert.Equal(t, got, compile(input, 0), "same seed gives same output")
	}
}

func TestCompile_BareAddress(t *testing.T) {
	t.Parallel()

	got := compile("a@b.co", flags.Autolink)
	assert.NotContains(t, got, "@")
	assert.NotContains(t, got, "mailto")
	assert.Equal(t, `<a href="mailto:a@b.co">a@b.co</a>`, html.UnescapeString(got))

	assert.Equal(t, "a@b.co", compile("a@b.co", 0))
}

func TestCompile_NotAnAddress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;me@localhost>", compile("<me@localhost>", 0))
	assert.Equal(t, "&lt;a@.b.c>", compile("<a@.b.c>", 0))
}

func TestCompile_RawDelimiters(t *testing.T) {
	t.Parallel()

	raw := rawdef.New()
	raw.MustRegister(`|$|$|<span class="m">|</span>|`, `|$$|$$|\[|\]|`)

	c := inline.New(inline.Options{RawDefs: raw}, nil)

	tests := []struct {
		input string
		want  string
	}{
		{input: "a $$x*y$$ b", want: `a \[x*y\] b`},
		{input: "$x_1$", want: `<span class="m">x_1</span>`},
		{input: "cost: $5", want: "cost: $5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(c.Compile([]byte(tt.input))), tt.input)
	}
}

func TestCompile_Callbacks(t *testing.T) {
	t.Parallel()

	var released []string
	cb := &inline.Callbacks{
		EditURL: func(url string, data any) (string, bool) {
			return strings.Replace(url, "http:", "https:", 1), strings.HasPrefix(url, "http:")
		},
		EditFlags: func(string, any) (string, bool) {
			return `rel="nofollow"`, true
		},
		Release: func(result string, _ any) {
			released = append(released, result)
		},
	}

	c := inline.New(inline.Options{Callbacks: cb}, nil)

	got := string(c.Compile([]byte("[a](http://x) [b](/y)")))
	assert.Equal(t, `<a href="https://x" rel="nofollow">a</a> <a href="/y" rel="nofollow">b</a>`, got)
	assert.Equal(t, []string{"https://x", `rel="nofollow"`, `rel="nofollow"`}, released)
}

func TestCompile_Wiki(t *testing.T) {
	t.Parallel()

	cb := &inline.Callbacks{Data: "http://wiki/"}
	c := inline.New(inline.Options{Flags: flags.Wiki, Callbacks: cb}, nil)

	assert.Equal(t, `<a href="http://wiki/Page">Page</a>`, string(c.Compile([]byte("[Page]"))))
}

func TestCompile_MaxDepth(t *testing.T) {
	t.Parallel()

	input := []byte("a^(b^(<c>))")

	deep := inline.New(inline.Options{}, nil)
	assert.Equal(t, "a<sup>b<sup><c></sup></sup>", string(deep.Compile(input)))

	shallow := inline.New(inline.Options{MaxDepth: 1}, nil)
	assert.Equal(t, "a<sup>b<sup>&lt;c&gt;</sup></sup>", string(shallow.Compile(input)))
}

func TestCompiler_Code(t *testing.T) {
	t.Parallel()

	c := inline.New(inline.Options{}, nil)
	assert.Equal(t, `a &lt; b &amp;&amp; c\*`, string(c.Code([]byte(`a < b && c\*`))))
}

func TestCompileWith_Escapes(t *testing.T) {
	t.Parallel()

	c := inline.New(inline.Options{}, nil)
	assert.Equal(t, "a%b", string(c.CompileWith([]byte(`a\%b`), 0, "%")))
	assert.Equal(t, `a\%b`, string(c.Compile([]byte(`a\%b`))))
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := inline.New(inline.Options{Flags: flags.TOC}, nil)
	require.NotNil(t, c)
	assert.Equal(t, "fn", c.RefPrefix())
	assert.Equal(t, flags.TOC, c.Flags())
	assert.Zero(t, c.References())
}

func FuzzCompile(f *testing.F) {
	for _, seed := range []string{
		"*a* **b** ***c***",
		"[a](b \"c\") ![d](e =1x2) ?[f](g.pdf)",
		"`` `x` `` ~~y~~ a^(b)",
		"<a href=\"x\">y</a> <me@x.org> <http://z>",
		`\\ \* \[ & &amp; "q" 'r' -- ... (c)`,
		"[^1] [ref] [x][]",
	} {
		f.Add(seed)
	}

	notes := mdast.Footnotes{{Tag: "^1", Title: "one"}, {Tag: "ref", Link: "/r"}}
	notes.Sort()

	f.Fuzz(func(t *testing.T, input string) {
		fl := flags.ExtraFootnote | flags.Autolink
		first := inline.New(inline.Options{Flags: fl, Rand: seeded()}, notes.Clone()).Compile([]byte(input))
		second := inline.New(inline.Options{Flags: fl, Rand: seeded()}, notes.Clone()).Compile([]byte(input))
		assert.Equal(t, first, second)
	})
}
