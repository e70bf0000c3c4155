package inline

import (
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/scan"
)

// smarty is one typographic substitution. In pat a leading '|' requires a
// non-word byte before the match and a trailing '|' a non-word byte after
// it. An empty entity drops the match.
type smarty struct {
	c0     byte
	pat    string
	entity string
	shift  int
}

var smarties = []smarty{
	{'\'', "'s|", "rsquo", 0},
	{'\'', "'t|", "rsquo", 0},
	{'\'', "'re|", "rsquo", 0},
	{'\'', "'ll|", "rsquo", 0},
	{'\'', "'ve|", "rsquo", 0},
	{'\'', "'m|", "rsquo", 0},
	{'\'', "'d|", "rsquo", 0},
	{'-', "---", "mdash", 2},
	{'-', "--", "ndash", 1},
	{'.', "...", "hellip", 2},
	{'.', ". . .", "hellip", 4},
	{'(', "(c)", "copy", 2},
	{'(', "(r)", "reg", 2},
	{'(', "(tm)", "trade", 3},
	{'3', "|3/4|", "frac34", 2},
	{'3', "|3/4ths|", "frac34", 2},
	{'1', "|1/2|", "frac12", 2},
	{'1', "|1/4|", "frac14", 2},
	{'1', "|1/4th|", "frac14", 2},
	{'&', "&#0;", "", 3},
}

// isLike matches pat against the input, the pattern's first byte being
// the one just pulled.
func (c *Compiler) isLike(pat string) bool {
	in := &c.in

	if pat[0] == '|' {
		if !in.IsNonword(-1) {
			return false
		}
		pat = pat[1:]
	}
	if pat == "" {
		return false
	}
	if pat[len(pat)-1] == '|' {
		if !in.IsNonword(len(pat) - 1) {
			return false
		}
		pat = pat[:len(pat)-1]
	}

	for i := 1; i < len(pat); i++ {
		if scan.ToLower(in.Peek(i)) != int(pat[i]) {
			return false
		}
	}
	return true
}

// smartypants substitutes curly quotes, dashes, ellipses and symbols.
// quotes tracks which quote kinds are open.
func (c *Compiler) smartypants(ch int, quotes *int) bool {
	if c.flags.Any(flags.NoPants | flags.TagText | flags.IsLabel) {
		return false
	}

	for _, s := range smarties {
		if ch == int(s.c0) && c.isLike(s.pat) {
			if s.entity != "" {
				c.q.Printf("&%s;", s.entity)
			}
			c.in.Shift(s.shift)
			return true
		}
	}

	switch ch {
	case '\'':
		return c.smartyQuote(quotes, 's')
	case '"':
		return c.smartyQuote(quotes, 'd')
	case '`':
		return c.doubleTick()
	}
	return false
}

// smartyQuote opens a quote after a non-word byte and closes an open one
// before a non-word byte.
func (c *Compiler) smartyQuote(quotes *int, kind byte) bool {
	in := &c.in

	bit := 0x02
	if kind == 's' {
		bit = 0x01
	}

	if *quotes&bit != 0 {
		if in.IsNonword(1) {
			c.q.Printf("&r%cquo;", kind)
			*quotes &^= bit
			return true
		}
	} else if in.IsNonword(-1) && in.Peek(1) != scan.EOF {
		c.q.Printf("&l%cquo;", kind)
		*quotes |= bit
		return true
	}
	return false
}

// doubleTick renders ``text'' as curly double quotes.
func (c *Compiler) doubleTick() bool {
	in := &c.in
	if in.Peek(1) != '`' {
		return false
	}

	for j := 2; ; {
		ch := in.Peek(j)
		switch {
		case ch == scan.EOF || ch == '`':
			return false
		case ch == '\\':
			j += 2
		case ch == '\'' && in.Peek(j+1) == '\'':
			start := in.Tell() + 1
			c.q.String("&ldquo;")
			c.reparse(in.Slice(start, start+j-2), 0, "")
			c.q.String("&rdquo;")
			in.Shift(j + 1)
			return true
		default:
			j++
		}
	}
}
