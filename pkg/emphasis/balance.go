// Package emphasis turns the star and underscore run markers left in a span
// queue into nested <em> and <strong> tags.
package emphasis

import (
	"bytes"

	"github.com/yaklabco/gomkd/pkg/spanq"
)

// Resolver flattens a queue into finished output.
type Resolver interface {
	Resolve(blocks []spanq.Block) []byte
}

// Balancer matches markers left to right. Each run that can open looks
// forward for a run of the same character that can close, preferring one
// of exactly the wanted length and otherwise splitting one or two
// characters off a longer run. Markers left unmatched inside a pair can no
// longer match across it and are written back literally.
//
// A run can open when it is not followed by whitespace and can close when
// it is not preceded by whitespace. The edges of the queue count as
// whitespace.
type Balancer struct{}

// Default is the resolver used when none is configured.
var Default Resolver = Balancer{}

type run struct {
	char     byte
	count    int
	canOpen  bool
	canClose bool
	frozen   bool
	opens    []byte
	closes   []byte
}

var (
	openTags  = [...]string{"", "<em>", "<strong>"}
	closeTags = [...]string{"", "</em>", "</strong>"}
)

type balance struct {
	runs []*run
}

// Resolve implements Resolver.
func (Balancer) Resolve(blocks []spanq.Block) []byte {
	b := &balance{runs: make([]*run, len(blocks))}
	for idx, blk := range blocks {
		if !blk.IsMarker() {
			continue
		}
		b.runs[idx] = &run{
			char:     blk.Char,
			count:    blk.Count,
			canOpen:  !isSpace(after(blocks, idx)),
			canClose: !isSpace(before(blocks, idx)),
		}
	}

	b.block(0, len(blocks)-1)

	var out bytes.Buffer
	for idx, blk := range blocks {
		if !blk.IsMarker() {
			out.Write(blk.Text)
			continue
		}
		r := b.runs[idx]
		out.Write(r.closes)
		out.Write(bytes.Repeat([]byte{r.char}, r.count))
		out.Write(r.opens)
	}
	return out.Bytes()
}

// block resolves every marker in [first, last], then freezes whatever is
// still open strictly inside the range.
func (b *balance) block(first, last int) {
	for i := first; i <= last; i++ {
		if b.runs[i] != nil {
			b.match(i, last)
		}
	}
	for i := first + 1; i < last; i++ {
		if b.runs[i] != nil {
			b.runs[i].frozen = true
		}
	}
}

// match pairs the run at first with closers up to last until it is used
// up or nothing fits. Earlier pairs end up innermost.
func (b *balance) match(first, last int) {
	start := b.runs[first]
	for start.count > 0 && start.canOpen && !start.frozen {
		n, e := b.pair(first, last)
		if e == 0 {
			return
		}
		end := b.runs[e]
		start.count -= n
		end.count -= n

		b.block(first, e)

		start.opens = append([]byte(openTags[n]), start.opens...)
		end.closes = append(end.closes, closeTags[n]...)
	}
}

// pair picks the closer and the number of characters to consume.
func (b *balance) pair(first, last int) (int, int) {
	switch b.runs[first].count {
	case 1:
		return 1, b.find(first, last, 1)
	case 2:
		if e := b.find(first, last, 2); e > 0 {
			return 2, e
		}
		return 1, b.find(first, last, 1)
	default:
		e1 := b.find(first, last, 1)
		e2 := b.find(first, last, 2)
		if e2 > 0 && (e1 == 0 || e2 >= e1) {
			return 2, e2
		}
		return 1, e1
	}
}

// find returns the first closer of exactly want characters, else the first
// longer one, else 0.
func (b *balance) find(first, last, want int) int {
	start := b.runs[first]
	longer := 0
	for j := first + 1; j <= last; j++ {
		r := b.runs[j]
		if r == nil || r.frozen || r.count <= 0 || !r.canClose || r.char != start.char {
			continue
		}
		if r.count == want {
			return j
		}
		if r.count > want && longer == 0 {
			longer = j
		}
	}
	return longer
}

// before returns the byte preceding the marker at idx. Adjacent markers
// read as punctuation; the queue edges read as a blank.
func before(blocks []spanq.Block, idx int) byte {
	if idx == 0 {
		return ' '
	}
	prev := blocks[idx-1]
	if prev.IsMarker() {
		return '*'
	}
	if len(prev.Text) == 0 {
		return before(blocks, idx-1)
	}
	return prev.Text[len(prev.Text)-1]
}

func after(blocks []spanq.Block, idx int) byte {
	if idx == len(blocks)-1 {
		return ' '
	}
	next := blocks[idx+1]
	if next.IsMarker() {
		return '*'
	}
	if len(next.Text) == 0 {
		return after(blocks, idx+1)
	}
	return next.Text[0]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
