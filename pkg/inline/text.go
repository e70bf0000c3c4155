package inline

import (
	"strings"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/scan"
)

// backslashLiterals are the characters a backslash always escapes.
const backslashLiterals = ">#.-+{}]![*_\\()`"

// text runs the dispatch loop over the whole input buffer, then empties
// it.
func (c *Compiler) text() {
	in := &c.in
	quotes := 0

	for {
		if c.flags.Any(flags.Autolink) && scan.IsAlpha(in.Peek(1)) && !c.tagText() {
			c.maybeAutolink()
		}

		ch := in.Pull()
		if ch == scan.EOF {
			break
		}

		if c.rawHandler(ch) {
			continue
		}
		if c.smartypants(ch, &quotes) {
			continue
		}

		switch ch {
		case 0:
		case HardBreak:
			switch {
			case c.tagText():
				c.q.String("  ")
			case c.flags.Any(flags.XML):
				c.q.String("<br />")
			default:
				c.q.String("<br>")
			}

		case '>':
			if c.tagText() {
				c.q.String("&gt;")
			} else {
				c.q.Char('>')
			}

		case '"':
			if c.tagText() {
				c.q.String("&quot;")
			} else {
				c.q.Char('"')
			}

		case '!', '?':
			if in.Peek(1) != '[' {
				c.q.Char(byte(ch))
				break
			}
			in.Pull()
			trig := triggerImage
			if ch == '?' {
				trig = triggerObject
			}
			if c.tagText() || !c.linkyLinky(trig) {
				c.q.Char(byte(ch))
				c.q.Char('[')
			}

		case '[':
			if c.tagText() || !c.linkyLinky(triggerLink) {
				c.q.Char('[')
			}

		case '^':
			c.superscript()

		case '_':
			// Underscores inside a word are literal.
			if !c.flags.Any(flags.NoRelaxed|flags.Strict) && in.IsAlnum(-1) && in.IsAlnum(1) {
				c.q.Char('_')
				break
			}
			fallthrough
		case '*':
			switch {
			case in.IsSpace(-1) && in.IsSpace(1):
				c.q.Char(byte(ch))
			case c.tagText():
				c.q.Char(byte(ch))
			default:
				rep := 1
				for ; in.Peek(1) == ch; in.Pull() {
					rep++
				}
				c.q.Emphasis(byte(ch), rep)
			}

		case '~':
			if c.flags.Any(flags.NoStrikethrough|flags.TagText|flags.Strict) ||
				!c.tickHandler(ch, 2, false, c.delSpan) {
				c.q.Char('~')
			}

		case '`':
			if c.tagText() || !c.tickHandler(ch, 1, true, c.codeSpan) {
				c.q.Char('`')
			}

		case '\\':
			c.backslash()

		case '<':
			if !c.maybeTagOrLink() {
				c.q.String("&lt;")
			}

		case '&':
			c.ampersand()

		default:
			c.q.Char(byte(ch))
		}
	}

	in.Truncate()
}

// backslash handles the byte after a '\'. When the pair is not an escape
// the backslash is written and the next byte is read again normally.
func (c *Compiler) backslash() {
	in := &c.in

	ch := in.Pull()
	switch ch {
	case '&':
		c.q.String("&amp;")

	case '<':
		if next := in.Peek(1); next == scan.EOF || scan.IsSpace(next) {
			c.q.String("&lt;")
		} else {
			c.unescape()
		}

	case '^':
		if c.flags.Any(flags.Strict | flags.NoSuperscript) {
			c.unescape()
			break
		}
		c.q.Char('^')

	case ':', '|':
		if c.flags.Any(flags.NoTables) {
			c.unescape()
			break
		}
		c.q.Char(byte(ch))

	case scan.EOF:
		c.q.Char('\\')

	default:
		if c.escaped(byte(ch)) || strings.IndexByte(backslashLiterals, byte(ch)) >= 0 {
			if c.flags.Any(flags.Wiki) && c.wikiBase() == "" {
				c.q.Char('\\')
			}
			c.q.Char(byte(ch))
		} else {
			c.unescape()
		}
	}
}

func (c *Compiler) unescape() {
	c.q.Char('\\')
	c.in.Shift(-1)
}

// ampersand passes '&' through when it starts an entity reference.
func (c *Compiler) ampersand() {
	in := &c.in

	j := 1
	if in.Peek(1) == '#' {
		j = 2
	}
	for in.IsAlnum(j) {
		j++
	}

	if in.Peek(j) == ';' {
		c.q.Char('&')
	} else {
		c.q.String("&amp;")
	}
}

// superscript renders A^B and A^(B C) as <sup>.
func (c *Compiler) superscript() {
	in := &c.in

	if c.flags.Any(flags.NoSuperscript|flags.Strict|flags.TagText) ||
		(in.IsNonword(-1) && in.Peek(-1) != ')') ||
		in.IsSpace(1) {
		c.q.Char('^')
		return
	}

	var body []byte
	if in.Peek(1) == '(' {
		here := in.Tell()
		in.Pull()

		size := c.parenthetical('(', ')')
		if size <= 0 {
			in.Seek(here)
			c.q.Char('^')
			return
		}
		body = in.Slice(here+1, here+1+size)
	} else {
		size := 0
		for in.IsAlnum(1 + size) {
			size++
		}
		if size == 0 {
			c.q.Char('^')
			return
		}
		start := in.Tell()
		body = in.Slice(start, start+size)
		in.Shift(size)
	}

	c.q.String("<sup>")
	c.reparse(body, 0, "()")
	c.q.String("</sup>")
}

// parenthetical consumes a balanced run up to the matching close, having
// already consumed the opener. It returns the length of the body, or EOF.
func (c *Compiler) parenthetical(open, closer int) int {
	in := &c.in
	size := 0

	for indent := 1; indent > 0; size++ {
		ch := in.Pull()
		switch {
		case ch == scan.EOF:
			return scan.EOF
		case ch == '\\' && (in.Peek(1) == closer || in.Peek(1) == open):
			size++
			in.Pull()
		case ch == open:
			indent++
		case ch == closer:
			indent--
		}
	}

	if size > 0 {
		return size - 1
	}
	return 0
}

// cputc writes ch with the three HTML metacharacters escaped.
func (c *Compiler) cputc(ch byte) {
	switch ch {
	case '&':
		c.q.String("&amp;")
	case '>':
		c.q.String("&gt;")
	case '<':
		c.q.String("&lt;")
	default:
		c.q.Char(ch)
	}
}
