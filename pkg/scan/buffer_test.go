package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomkd/pkg/scan"
)

func TestBuffer_PullPeek(t *testing.T) {
	t.Parallel()

	buf := scan.New([]byte("abc"))

	assert.Equal(t, scan.EOF, buf.Peek(0), "nothing pulled yet")
	assert.Equal(t, 'a', rune(buf.Peek(1)))

	assert.Equal(t, 'a', rune(buf.Pull()))
	assert.Equal(t, 'a', rune(buf.Peek(0)))
	assert.Equal(t, 'b', rune(buf.Peek(1)))
	assert.Equal(t, 'c', rune(buf.Peek(2)))
	assert.Equal(t, scan.EOF, buf.Peek(3))
	assert.Equal(t, scan.EOF, buf.Peek(-1))

	buf.Pull()
	buf.Pull()
	assert.Equal(t, scan.EOF, buf.Pull())
	assert.Equal(t, scan.EOF, buf.Pull(), "pull past the end stays at EOF")
}

func TestBuffer_SeekTellShift(t *testing.T) {
	t.Parallel()

	buf := scan.New([]byte("hello"))
	buf.Pull()
	mark := buf.Tell()

	buf.Shift(3)
	assert.Equal(t, 'o', rune(buf.Pull()))

	buf.Seek(mark)
	assert.Equal(t, 'e', rune(buf.Pull()))

	buf.Shift(-100)
	assert.Equal(t, 2, buf.Tell(), "shift before start is ignored")

	buf.Shift(-2)
	assert.Equal(t, 0, buf.Tell())
}

func TestBuffer_CursorSliceTruncate(t *testing.T) {
	t.Parallel()

	buf := scan.New([]byte("xyz"))
	buf.Pull()

	assert.Equal(t, []byte("yz"), buf.Cursor())
	assert.Equal(t, []byte("xy"), buf.Slice(-5, 2))
	assert.Nil(t, buf.Slice(2, 1))

	buf.Truncate()
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 0, buf.Tell())
	assert.Nil(t, buf.Cursor())
}

func TestBuffer_Classes(t *testing.T) {
	t.Parallel()

	buf := scan.New([]byte("a \x01.\xc3"))
	buf.Pull()

	assert.True(t, buf.IsAlnum(0))
	assert.True(t, buf.IsSpace(1))
	assert.True(t, buf.IsSpace(2), "control bytes are blank")
	assert.True(t, buf.IsNonword(3), "punctuation is nonword")
	assert.False(t, buf.IsSpace(4), "high-bit bytes are not blank")
	assert.False(t, buf.IsNonword(4))
	assert.True(t, buf.IsSpace(5), "EOF is blank")
	assert.True(t, buf.IsSpace(-1))
}

func TestClasses(t *testing.T) {
	t.Parallel()

	assert.True(t, scan.IsPunct('!'))
	assert.True(t, scan.IsPunct('~'))
	assert.False(t, scan.IsPunct(' '))
	assert.False(t, scan.IsPunct('a'))
	assert.False(t, scan.IsPunct(scan.EOF))
	assert.True(t, scan.IsSpace('\v'))
	assert.Equal(t, 'q', rune(scan.ToLower('Q')))
	assert.Equal(t, '1', rune(scan.ToLower('1')))
}
