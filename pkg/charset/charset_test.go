package charset_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomkd/pkg/charset"
	"github.com/yaklabco/gomkd/pkg/flags"
)

func TestDecodeRune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []byte
		wantRune rune
		wantSize int
	}{
		{name: "ascii", input: []byte("A"), wantRune: 'A', wantSize: 1},
		{name: "two byte", input: []byte("ä"), wantRune: 'ä', wantSize: 2},
		{name: "three byte", input: []byte("€"), wantRune: '€', wantSize: 3},
		{name: "four byte", input: []byte("😀"), wantRune: '😀', wantSize: 4},
		{name: "stray trail byte", input: []byte{0x80}, wantSize: 0},
		{name: "truncated", input: []byte{0xE2, 0x82}, wantSize: 0},
		{name: "bad trail", input: []byte{0xC3, 0x41}, wantSize: 0},
		{name: "latin1 byte", input: []byte{0xE4, 'x'}, wantSize: 0},
		{name: "empty", input: nil, wantSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, size := charset.DecodeRune(tt.input)
			assert.Equal(t, tt.wantSize, size)
			if size > 0 {
				assert.Equal(t, tt.wantRune, r)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		out   charset.Output
		want  string
	}{
		{name: "utf8 passthrough", input: "ä€", out: charset.UTF8, want: "ä€"},
		{name: "utf8 stops at nul", input: "ab\x00cd", out: charset.UTF8, want: "ab"},
		{name: "ascii named entities", input: "ä ö ü Ä Ö Ü ß\u00a0", out: charset.ASCII, want: "&auml; &ouml; &uuml; &Auml; &Ouml; &Uuml; &szlig;&nbsp;"},
		{name: "ascii numeric", input: "é€", out: charset.ASCII, want: "&#233;&#8364;"},
		{name: "ascii plain", input: "<p>x</p>", out: charset.ASCII, want: "<p>x</p>"},
		{name: "latin1 passes low range", input: "é", out: charset.Latin1, want: "\xe9"},
		{name: "latin1 escapes high", input: "€", out: charset.Latin1, want: "&#8364;"},
		{name: "invalid byte ascii named", input: "a\xe4b", out: charset.ASCII, want: "a&auml;b"},
		{name: "invalid byte ascii numeric", input: "\xe9", out: charset.ASCII, want: "&#233;"},
		{name: "invalid byte latin1 escaped", input: "\xe9", out: charset.Latin1, want: "&#233;"},
		{name: "ascii stops at nul", input: "a\x00b", out: charset.ASCII, want: "a"},
		{name: "utf8 escapes stray bytes", input: "a\xffb\xe4c", out: charset.UTF8, want: "a&#255;b&#228;c"},
		{name: "utf8 escapes lone trail byte", input: "\x80x", out: charset.UTF8, want: "&#128;x"},
		{name: "utf8 escapes truncated sequence", input: "\xe2\x82", out: charset.UTF8, want: "&#226;&#130;"},
		{name: "utf8 escapes overlong nul", input: "a\xc0\x80b", out: charset.UTF8, want: "a&#192;&#128;b"},
		{name: "utf8 escapes surrogate", input: "\xed\xa0\x80", out: charset.UTF8, want: "&#237;&#160;&#128;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := charset.Encode([]byte(tt.input), tt.out)
			assert.Equal(t, tt.want, string(got))
			if tt.out == charset.UTF8 {
				assert.True(t, utf8.Valid(got), "output must be valid UTF-8")
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	t.Parallel()

	got := charset.EscapeXML([]byte(`<a href="x">'&'</a>`))
	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;&apos;&amp;&apos;&lt;/a&gt;", string(got))
}

func TestFinish(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;p&gt;", string(charset.Finish([]byte("<p>"), flags.CDATA|flags.OutASCII)))
	assert.Equal(t, "&#8364;", string(charset.Finish([]byte("€"), flags.OutASCII)))
	assert.Equal(t, "€", string(charset.Finish([]byte("€"), 0)))
}

func TestOutputFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, charset.ASCII, charset.OutputFor(flags.OutASCII))
	assert.Equal(t, charset.Latin1, charset.OutputFor(flags.OutLatin1))
	assert.Equal(t, charset.UTF8, charset.OutputFor(flags.OutUTF8))
	assert.Equal(t, "ISO-8859-1", charset.Latin1.Name())
	assert.Equal(t, "US-ASCII", charset.ASCII.Name())
	assert.Equal(t, "UTF-8", charset.UTF8.Name())
}

func TestDecodeLatin1(t *testing.T) {
	t.Parallel()

	got, err := charset.DecodeLatin1([]byte("gr\xfc\xdfe"))
	require.NoError(t, err)
	assert.Equal(t, "grüße", string(got))
}
