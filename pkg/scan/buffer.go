// Package scan provides the cursor-addressed byte buffer the inline compiler
// reads from.
package scan

// EOF is returned by Peek and Pull for any position outside the buffer.
const EOF = -1

// Buffer is a byte slice with a read cursor. Peek(0) is the byte most
// recently returned by Pull; Peek(1) is the next byte Pull will return.
// No method panics: reads outside the data yield EOF.
type Buffer struct {
	data []byte
	pos  int
}

// New returns a buffer over a copy of data.
func New(data []byte) *Buffer {
	buf := &Buffer{}
	buf.Push(data)
	return buf
}

// Push appends data to the end of the buffer.
func (b *Buffer) Push(data []byte) {
	b.data = append(b.data, data...)
}

// PushString appends s to the end of the buffer.
func (b *Buffer) PushString(s string) {
	b.data = append(b.data, s...)
}

// Peek returns the byte i positions relative to the last pulled byte.
// Negative i looks behind.
func (b *Buffer) Peek(i int) int {
	idx := b.pos - 1 + i
	if idx < 0 || idx >= len(b.data) {
		return EOF
	}
	return int(b.data[idx])
}

// Pull consumes and returns the next byte.
func (b *Buffer) Pull() int {
	if b.pos >= len(b.data) {
		return EOF
	}
	c := b.data[b.pos]
	b.pos++
	return int(c)
}

// Shift moves the cursor by n bytes; a move before the start is ignored.
func (b *Buffer) Shift(n int) {
	if b.pos+n >= 0 {
		b.pos += n
	}
}

// Tell returns the absolute cursor position.
func (b *Buffer) Tell() int {
	return b.pos
}

// Seek restores an absolute cursor position saved with Tell.
func (b *Buffer) Seek(pos int) {
	b.pos = pos
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cursor returns the unread bytes. The slice aliases the buffer.
func (b *Buffer) Cursor() []byte {
	if b.pos >= len(b.data) {
		return nil
	}
	return b.data[b.pos:]
}

// Slice returns data[from:to], clamped to the buffer bounds.
func (b *Buffer) Slice(from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > len(b.data) {
		to = len(b.data)
	}
	if from >= to {
		return nil
	}
	return b.data[from:to]
}

// Truncate empties the buffer and rewinds the cursor.
func (b *Buffer) Truncate() {
	b.data = b.data[:0]
	b.pos = 0
}

// IsSpace reports whether the byte at Peek(i) counts as blank. EOF and
// control bytes are blank; bytes with the high bit set are not.
func (b *Buffer) IsSpace(i int) bool {
	c := b.Peek(i)
	if c == EOF {
		return true
	}
	if c&0x80 != 0 {
		return false
	}
	return IsSpace(c) || c < ' '
}

// IsAlnum reports whether the byte at Peek(i) is an ASCII letter or digit.
func (b *Buffer) IsAlnum(i int) bool {
	return IsAlnum(b.Peek(i))
}

// IsNonword reports whether the byte at Peek(i) is blank or punctuation.
func (b *Buffer) IsNonword(i int) bool {
	return b.IsSpace(i) || IsPunct(b.Peek(i))
}
