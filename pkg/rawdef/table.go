// Package rawdef keeps user-defined passthrough delimiters: text between a
// registered begin and end marker is copied to the output uninterpreted.
package rawdef

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Capacity is the maximum number of distinct begin delimiters.
const Capacity = 128

// Registration status codes, returned alongside a *RegisterError.
const (
	CodeEmpty      = -1
	CodeMissingEnd = -2
	CodeMissingTag = -3
	CodeFull       = -4
)

// Sentinel errors matched by RegisterError.Unwrap.
var (
	ErrEmptySpec  = errors.New("empty delimiter spec")
	ErrMissingEnd = errors.New("missing separator after begin delimiter")
	ErrMissingTag = errors.New("missing separator after open tag")
	ErrTableFull  = errors.New("delimiter table full")
)

// RegisterError reports why a spec was rejected.
type RegisterError struct {
	Code int
	Spec string
	err  error
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("raw delimiter %q: %v (status %d)", e.Spec, e.err, e.Code)
}

func (e *RegisterError) Unwrap() error {
	return e.err
}

// Entry is one delimiter pair with its output tags.
type Entry struct {
	Begin string
	End   string
	Open  string
	Close string
}

// Table holds entries sorted in descending order of Begin, so a delimiter
// that is a prefix of another sorts after it. first[i] is Begin[0] of
// entries[i].
//
// A Table is not safe for concurrent Register calls. Renders only read it;
// take a Snapshot before sharing it across goroutines.
type Table struct {
	entries []Entry
	first   []byte
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Register parses spec, which has the form
//
//	<sep>begin<sep>end<sep>[open<sep>close<sep>]
//
// where <sep> is the first character of spec. Without open/close the
// delimiters themselves are emitted. An existing entry with the same begin
// is overwritten. On success the new table size is returned; on failure the
// negative status code and a *RegisterError.
func (t *Table) Register(spec string) (int, error) {
	entry, code, err := parse(spec)
	if err != nil {
		return code, &RegisterError{Code: code, Spec: spec, err: err}
	}

	idx := t.search(entry.Begin)
	if idx < 0 {
		if len(t.entries) >= Capacity {
			return CodeFull, &RegisterError{Code: CodeFull, Spec: spec, err: ErrTableFull}
		}
		t.entries = append(t.entries, entry)
	} else {
		t.entries[idx] = entry
	}

	t.sort()
	return len(t.entries), nil
}

// MustRegister is Register for specs known to be valid.
func (t *Table) MustRegister(specs ...string) {
	for _, spec := range specs {
		if _, err := t.Register(spec); err != nil {
			panic(err)
		}
	}
}

func parse(spec string) (Entry, int, error) {
	if spec == "" {
		return Entry{}, CodeEmpty, ErrEmptySpec
	}
	sep := spec[:1]
	rest := spec[1:]

	begin, rest, ok := strings.Cut(rest, sep)
	if !ok {
		return Entry{}, CodeMissingEnd, ErrMissingEnd
	}
	if begin == "" {
		return Entry{}, CodeEmpty, ErrEmptySpec
	}

	end, rest, _ := strings.Cut(rest, sep)
	if end == "" {
		return Entry{}, CodeMissingEnd, ErrMissingEnd
	}

	entry := Entry{Begin: begin, End: end, Open: begin, Close: end}
	if rest == "" {
		return entry, 0, nil
	}

	open, rest, ok := strings.Cut(rest, sep)
	if !ok {
		return Entry{}, CodeMissingTag, ErrMissingTag
	}
	closeTag, _, _ := strings.Cut(rest, sep)

	entry.Open = open
	entry.Close = closeTag
	return entry, 0, nil
}

// search finds begin in the descending-sorted entries.
func (t *Table) search(begin string) int {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Begin <= begin
	})
	if i < len(t.entries) && t.entries[i].Begin == begin {
		return i
	}
	return -1
}

func (t *Table) sort() {
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].Begin > t.entries[j].Begin
	})
	t.first = t.first[:0]
	for _, e := range t.entries {
		t.first = append(t.first, e.Begin[0])
	}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries returns a copy of the entries in match order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Snapshot returns an independent copy of the table.
func (t *Table) Snapshot() *Table {
	if t == nil {
		return New()
	}
	return &Table{
		entries: t.Entries(),
		first:   append([]byte(nil), t.first...),
	}
}

// Match is a successful lookup at a text position.
type Match struct {
	Entry Entry
	// Payload is the text between the delimiters.
	Payload []byte
	// Length is the number of input bytes the match spans, delimiters
	// included.
	Length int
}

// Literal reports the begin/end pair written back to back, which stands
// for one literal delimiter character.
func (m Match) Literal() bool {
	return len(m.Payload) == 0
}

// Find checks whether text starts with a registered begin delimiter that is
// followed, somewhere later in text, by its end delimiter. The longest
// matching begin wins.
func (t *Table) Find(text []byte) (Match, bool) {
	if t.Len() == 0 || len(text) == 0 {
		return Match{}, false
	}

	k := bytes.IndexByte(t.first, text[0])
	if k < 0 {
		return Match{}, false
	}

	for ; k < len(t.entries) && t.first[k] == text[0]; k++ {
		entry := t.entries[k]
		if !bytes.HasPrefix(text, []byte(entry.Begin)) {
			continue
		}

		body := text[len(entry.Begin):]
		end := bytes.Index(body, []byte(entry.End))
		if end < 0 {
			return Match{}, false
		}
		return Match{
			Entry:   entry,
			Payload: body[:end],
			Length:  len(entry.Begin) + end + len(entry.End),
		}, true
	}
	return Match{}, false
}
