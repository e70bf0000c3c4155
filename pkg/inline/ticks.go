package inline

import (
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/scan"
)

// nrTicks counts the run of tickchar starting at Peek(offset).
func (c *Compiler) nrTicks(offset, tickchar int) int {
	n := 0
	for c.in.Peek(offset+n) == tickchar {
		n++
	}
	return n
}

// matchTicks looks for a closing run of exactly ticks tickchars. Failing
// that, the longest shorter run wins and its length is returned as
// endticks. size is the span length before the closer; zero means no match.
func (c *Compiler) matchTicks(tickchar, ticks int) (size, endticks int) {
	subsize, subtick := 0, 0

	for size = 0; ; size++ {
		ch := c.in.Peek(size + ticks)
		if ch == scan.EOF {
			break
		}
		if ch != tickchar {
			continue
		}

		count := c.nrTicks(size+ticks, tickchar)
		if count == ticks {
			return size, ticks
		}
		if count > subtick && count < ticks {
			subsize, subtick = size, count
		}
		size += count
	}

	if subsize > 0 {
		return subsize, subtick
	}
	return 0, ticks
}

// tickHandler processes a span fenced by runs of tickchar, the first of
// which has just been pulled. The opening run must be at least minticks
// long. When the closer is shorter than the opener the opener's surplus
// becomes part of the span.
func (c *Compiler) tickHandler(tickchar, minticks int, allowSpace bool, spanner func(size int)) bool {
	in := &c.in

	tick := c.nrTicks(0, tickchar)
	if !allowSpace && scan.IsSpace(in.Peek(tick)) {
		return false
	}
	if tick < minticks {
		return false
	}

	size, endticks := c.matchTicks(tickchar, tick)
	if size == 0 {
		return false
	}
	if endticks < tick {
		size += tick - endticks
		tick = endticks
	}

	in.Shift(tick)
	spanner(size)
	in.Shift(size + tick - 1)
	return true
}

// span returns size bytes starting at Peek(0).
func (c *Compiler) span(size int) []byte {
	start := c.in.Tell() - 1
	return c.in.Slice(start, start+size)
}

// codeSpan writes the span as code, trimming one blank from each end.
func (c *Compiler) codeSpan(size int) {
	in := &c.in
	i := 0

	if size > 1 && in.Peek(size-1) == ' ' {
		size--
	}
	if in.Peek(i) == ' ' {
		i++
		size--
	}

	start := in.Tell() - 1 + i
	c.q.String("<code>")
	c.code(in.Slice(start, start+size))
	c.q.String("</code>")
}

// delSpan wraps the compiled span in <del>.
func (c *Compiler) delSpan(size int) {
	c.q.String("<del>")
	c.reparse(c.span(size), 0, "")
	c.q.String("</del>")
}

// code writes text with only the HTML metacharacters escaped.
func (c *Compiler) code(text []byte) {
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch == HardBreak:
			c.q.String("  ")
		case ch == '\\' && i < len(text)-1 && c.escaped(text[i+1]):
			i++
			c.cputc(text[i])
		case ch == '[' && c.flags.Any(flags.Wiki) && c.wikiBase() == "":
			c.q.String("\\[")
		default:
			c.cputc(ch)
		}
	}
}
