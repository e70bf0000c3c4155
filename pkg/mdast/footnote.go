package mdast

import "sort"

// Footnote is a reference definition: `[tag]: link =WxH "title"`, or an
// extra-style `[^tag]: text` whose text is kept in Title.
type Footnote struct {
	Tag    string
	Link   string
	Title  string
	Width  int
	Height int

	// Set while rendering, when the definition is first used as a
	// footnote reference.
	RefNumber  int
	Referenced bool
}

// Footnotes is a table of definitions. Find requires it sorted.
type Footnotes []*Footnote

// CompareTags orders tags by length, then byte-wise ignoring ASCII case.
// Two blank bytes at the same position compare equal.
func CompareTags(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range len(a) {
		ac, bc := lower(a[i]), lower(b[i])
		if isBlank(ac) && isBlank(bc) {
			continue
		}
		if ac != bc {
			return int(ac) - int(bc)
		}
	}
	return 0
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isBlank(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

// Sort orders the table for Find. Later duplicates keep their relative
// order, so Find returns the first definition of a tag.
func (f Footnotes) Sort() {
	sort.SliceStable(f, func(i, j int) bool {
		return CompareTags(f[i].Tag, f[j].Tag) < 0
	})
}

// Find binary-searches for tag.
func (f Footnotes) Find(tag string) *Footnote {
	i := sort.Search(len(f), func(i int) bool {
		return CompareTags(f[i].Tag, tag) >= 0
	})
	if i < len(f) && CompareTags(f[i].Tag, tag) == 0 {
		return f[i]
	}
	return nil
}

// Clone returns a copy of the table with fresh footnotes, so reference
// numbering in one render does not leak into another.
func (f Footnotes) Clone() Footnotes {
	if f == nil {
		return nil
	}
	out := make(Footnotes, len(f))
	for i, fn := range f {
		cp := *fn
		out[i] = &cp
	}
	return out
}
