// Package spanq holds the output queue of a render pass: literal text
// interleaved with deferred emphasis markers.
package spanq

import (
	"fmt"
	"strconv"
)

// Kind discriminates queue blocks.
type Kind uint8

// Block kinds.
const (
	Text Kind = iota
	Star
	Under
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Star:
		return "star"
	case Under:
		return "under"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Block is one queue element. Text blocks carry Text; marker blocks carry
// the run character and its length.
type Block struct {
	Kind  Kind
	Char  byte
	Count int
	Text  []byte
}

// IsMarker reports whether the block is an emphasis marker.
func (b Block) IsMarker() bool {
	return b.Kind != Text
}

// Queue is append-only until Reset.
type Queue struct {
	blocks []Block
}

func (q *Queue) tail() *Block {
	if len(q.blocks) == 0 || q.blocks[len(q.blocks)-1].Kind != Text {
		q.blocks = append(q.blocks, Block{Kind: Text})
	}
	return &q.blocks[len(q.blocks)-1]
}

// Char appends one byte of literal output.
func (q *Queue) Char(c byte) {
	t := q.tail()
	t.Text = append(t.Text, c)
}

// String appends literal output.
func (q *Queue) String(s string) {
	t := q.tail()
	t.Text = append(t.Text, s...)
}

// Write appends literal output.
func (q *Queue) Write(p []byte) {
	t := q.tail()
	t.Text = append(t.Text, p...)
}

// Printf appends formatted literal output.
func (q *Queue) Printf(format string, args ...any) {
	t := q.tail()
	t.Text = fmt.Appendf(t.Text, format, args...)
}

// Emphasis appends a run marker of count copies of c.
func (q *Queue) Emphasis(c byte, count int) {
	kind := Under
	if c == '*' {
		kind = Star
	}
	q.blocks = append(q.blocks, Block{Kind: kind, Char: c, Count: count}, Block{Kind: Text})
}

// Blocks returns the queued blocks. The slice aliases the queue.
func (q *Queue) Blocks() []Block {
	return q.blocks
}

// Len returns the number of blocks.
func (q *Queue) Len() int {
	return len(q.blocks)
}

// Markers reports whether any emphasis marker is pending.
func (q *Queue) Markers() bool {
	for _, b := range q.blocks {
		if b.IsMarker() {
			return true
		}
	}
	return false
}

// Reset drops every block.
func (q *Queue) Reset() {
	q.blocks = q.blocks[:0]
}
