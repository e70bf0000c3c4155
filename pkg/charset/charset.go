// Package charset converts rendered HTML into the configured output
// character set and converts Latin-1 input to UTF-8.
package charset

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/yaklabco/gomkd/pkg/flags"
)

// Output selects the output encoding.
type Output uint8

// Output encodings.
const (
	UTF8 Output = iota
	Latin1
	ASCII
)

// OutputFor picks the output encoding from a flag set; UTF-8 unless ASCII
// or Latin-1 is selected.
func OutputFor(f flags.Flags) Output {
	switch {
	case f.Any(flags.OutASCII):
		return ASCII
	case f.Any(flags.OutLatin1):
		return Latin1
	default:
		return UTF8
	}
}

// Name returns the charset label used in a Content-Type meta tag.
func (o Output) Name() string {
	switch o {
	case ASCII:
		return "US-ASCII"
	case Latin1:
		return "ISO-8859-1"
	default:
		return "UTF-8"
	}
}

// DecodeRune reads one UTF-8 sequence from the start of p. It returns the
// code point and the number of bytes used, or size 0 when p does not start
// with a well-formed lead byte followed by its trail bytes. Overlong forms
// and surrogates are not rejected.
func DecodeRune(p []byte) (rune, int) {
	if len(p) == 0 {
		return 0, 0
	}

	lead := p[0]
	var size int
	var cp rune

	switch {
	case lead&0xC0 == 0x80:
		return 0, 0
	case lead&0xE0 == 0xC0:
		size, cp = 2, rune(lead&0x1F)
	case lead&0xF0 == 0xE0:
		size, cp = 3, rune(lead&0x0F)
	case lead&0xF8 == 0xF0:
		size, cp = 4, rune(lead&0x07)
	case lead >= 0x80:
		return 0, 0
	default:
		return rune(lead), 1
	}

	if len(p) < size {
		return 0, 0
	}
	for k := 1; k < size; k++ {
		if p[k]&0xC0 != 0x80 {
			return 0, 0
		}
		cp = cp<<6 | rune(p[k]&0x3F)
	}
	return cp, size
}

// named lists the code points ASCII output spells as named entities.
var named = map[rune]string{
	0xA0: "&nbsp;",
	0xE4: "&auml;",
	0xF6: "&ouml;",
	0xFC: "&uuml;",
	0xC4: "&Auml;",
	0xD6: "&Ouml;",
	0xDC: "&Uuml;",
	0xDF: "&szlig;",
}

// Encode re-encodes a rendered UTF-8 document. A NUL byte ends the
// document. A byte that does not start valid UTF-8 is read as its Latin-1
// code point and always escaped unless it is ASCII.
func Encode(doc []byte, out Output) []byte {
	ascii := out == ASCII
	buf := make([]byte, 0, len(doc))

	for len(doc) > 0 {
		cp, size := DecodeRune(doc)
		invalid := size == 0 || (size > 1 && !utf8.Valid(doc[:size]))
		if out == UTF8 {
			if invalid {
				buf = appendNumeric(buf, charmap.ISO8859_1.DecodeByte(doc[0]))
				doc = doc[1:]
				continue
			}
			if cp == 0 {
				break
			}
			buf = append(buf, doc[:size]...)
			doc = doc[size:]
			continue
		}
		if invalid {
			cp, size = charmap.ISO8859_1.DecodeByte(doc[0]), 1
		}
		if cp == 0 {
			break
		}
		doc = doc[size:]

		if ascii {
			if ent, ok := named[cp]; ok {
				buf = append(buf, ent...)
				continue
			}
			if cp < 0x80 {
				buf = append(buf, byte(cp))
				continue
			}
		} else if b, ok := charmap.ISO8859_1.EncodeRune(cp); ok && !invalid {
			buf = append(buf, b)
			continue
		}
		buf = appendNumeric(buf, cp)
	}
	return buf
}

func appendNumeric(buf []byte, cp rune) []byte {
	buf = append(buf, "&#"...)
	buf = strconv.AppendInt(buf, int64(cp&0x1FFFFF), 10)
	return append(buf, ';')
}

// EscapeXML writes doc with < > & " ' replaced by their XML entities.
func EscapeXML(doc []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(doc))
	for _, c := range doc {
		switch c {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteByte(c)
		}
	}
	return buf.Bytes()
}

// Finish applies the output stage selected by f: XML escaping in CDATA
// mode, else charset conversion.
func Finish(doc []byte, f flags.Flags) []byte {
	if f.Any(flags.CDATA) {
		return EscapeXML(doc)
	}
	return Encode(doc, OutputFor(f))
}

// DecodeLatin1 converts ISO 8859-1 input to UTF-8.
func DecodeLatin1(p []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(p)
}
