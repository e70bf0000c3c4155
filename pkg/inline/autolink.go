package inline

import (
	"strings"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/scan"
)

const mailto = "mailto:"

// maybeAddress reports whether p looks like user@host.domain.
func maybeAddress(p []byte) bool {
	i := 0
	for i < len(p) && (scan.IsAlnum(int(p[i])) || strings.IndexByte("._-+*", p[i]) >= 0) {
		i++
	}
	if i >= len(p) || p[i] != '@' {
		return false
	}
	i++
	if i < len(p) && p[i] == '.' {
		return false
	}

	dotted := false
	for ; i < len(p); i++ {
		ch := p[i]
		if !scan.IsAlnum(int(ch)) && strings.IndexByte("._-+", ch) < 0 {
			return false
		}
		if ch == '.' && i < len(p)-1 {
			dotted = true
		}
	}
	return dotted
}

// processPossibleLink links the size bytes at the cursor if they form a
// mail address or a URL with an accepted scheme. Addresses are written
// as character references.
func (c *Compiler) processPossibleLink(size int) bool {
	if c.flags.Any(flags.NoLinks) {
		return false
	}

	in := &c.in
	text := in.Slice(in.Tell(), in.Tell()+size)

	address, skip := false, 0
	if len(text) > len(mailto) && strings.EqualFold(string(text[:len(mailto)]), mailto) {
		address, skip = true, len(mailto)
	} else {
		address = maybeAddress(text)
	}

	switch {
	case address:
		c.q.String(`<a href="`)
		if skip == 0 {
			c.mangle([]byte(mailto))
		}
		c.mangle(text)
		c.q.String(`">`)
		c.mangle(text[skip:])
		c.q.String("</a>")
		return true

	case isAutoPrefix(string(text)):
		c.printLinkyRef(&anchorTag, string(text))
		c.q.Char('>')
		c.putURL(text, true)
		c.q.String("</a>")
		return true
	}
	return false
}

// maybeTagOrLink handles the text after '<': an HTML tag or comment is
// passed through, an <address> or <url> becomes a link.
func (c *Compiler) maybeTagOrLink() bool {
	if c.tagText() {
		return false
	}

	in := &c.in
	maybeTag := true
	size := 0
	ch := 0

	for ; ; size++ {
		ch = in.Peek(size + 1)
		if ch == '>' {
			break
		}
		if ch == scan.EOF {
			return false
		}
		if ch == '\\' {
			maybeTag = false
			if in.Peek(size+2) != scan.EOF {
				size++
			}
		} else if scan.IsSpace(ch) {
			break
		} else if !c.tagNameByte(ch) {
			maybeTag = false
		}
	}

	if size == 0 {
		return false
	}

	comment := size >= 3 && string(in.Slice(in.Tell(), in.Tell()+3)) == "!--"
	if maybeTag || comment {
		// Only a tag if it closes in the same block.
		for ch = in.Peek(size + 1); ch != '>'; ch = in.Peek(size + 1) {
			if ch == scan.EOF {
				return false
			}
			size++
		}

		if c.forbiddenTag() {
			return false
		}

		c.q.Char('<')
		for ch = in.Peek(1); ch != scan.EOF && ch != '>'; ch = in.Peek(1) {
			c.q.Char(byte(in.Pull()))
		}
		return true
	}

	if !scan.IsSpace(ch) && c.processPossibleLink(size) {
		in.Shift(size + 1)
		return true
	}
	return false
}

func (c *Compiler) tagNameByte(ch int) bool {
	if ch == '/' || scan.IsAlnum(ch) {
		return true
	}
	return c.flags.Any(flags.GitHubTags) && (ch == '-' || ch == '_')
}

// forbiddenTag reports whether the tag at the cursor is blocked by NoHTML,
// NoLinks or NoImage.
func (c *Compiler) forbiddenTag() bool {
	in := &c.in

	if c.flags.Any(flags.NoHTML) {
		return true
	}

	switch scan.ToLower(in.Peek(1)) {
	case 'a':
		return c.flags.Any(flags.NoLinks) && !in.IsAlnum(2)
	case 'i':
		return c.flags.Any(flags.NoImage) &&
			scan.ToLower(in.Peek(2)) == 'm' && scan.ToLower(in.Peek(3)) == 'g' &&
			!in.IsAlnum(4)
	}
	return false
}

// maybeAutolink links a bare URL or address starting at the next byte.
func (c *Compiler) maybeAutolink() bool {
	in := &c.in

	size := 0
	for ch := in.Peek(1); ch != scan.EOF; ch = in.Peek(size + 1) {
		if ch == '\\' {
			if in.Peek(size+2) != scan.EOF {
				size++
			}
		} else if scan.IsSpace(ch) || strings.IndexByte("'\"()[]{}<>`", byte(ch)) >= 0 {
			break
		}
		size++
	}

	if size > 1 && c.processPossibleLink(size) {
		in.Shift(size)
		return true
	}
	return false
}
