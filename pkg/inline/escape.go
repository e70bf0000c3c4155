package inline

import "github.com/yaklabco/gomkd/pkg/scan"

// putURL writes a URL for an attribute value. Alphanumerics and
// punctuation pass, as does whitespace when display is set; & and < become
// entities, '"' becomes %22 and everything else is percent-encoded. A
// backslash is dropped before punctuation or blanks.
func (c *Compiler) putURL(s []byte, display bool) {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' && i+1 < len(s) {
			i++
			ch = s[i]
			if !scan.IsPunct(int(ch)) && !scan.IsSpace(int(ch)) {
				c.q.Char('\\')
			}
		}

		switch {
		case ch == '&':
			c.q.String("&amp;")
		case ch == '<':
			c.q.String("&lt;")
		case ch == '"':
			c.q.String("%22")
		case scan.IsAlnum(int(ch)) || scan.IsPunct(int(ch)) || (display && scan.IsSpace(int(ch))):
			c.q.Char(ch)
		case ch == HardBreak:
			c.q.String("  ")
		default:
			c.q.Printf("%%%02X", ch)
		}
	}
}

// mangle writes every byte of s as a numeric character reference, picking
// hex or decimal at random per byte.
func (c *Compiler) mangle(s []byte) {
	for _, b := range s {
		if c.sh.rng.IntN(2) == 1 {
			c.q.Printf("&#x%02x;", b)
		} else {
			c.q.Printf("&#%02d;", b)
		}
	}
}
