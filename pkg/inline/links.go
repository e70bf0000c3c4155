package inline

import (
	"bytes"
	"strings"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/scan"
)

// eatSpace skips blanks and returns the next byte without pulling it.
func (c *Compiler) eatSpace() int {
	in := &c.in
	for {
		ch := in.Peek(1)
		if ch == scan.EOF || !scan.IsSpace(ch) {
			return ch
		}
		in.Pull()
	}
}

// linkyLabel reads a [] label whose '[' has been consumed.
func (c *Compiler) linkyLabel() ([]byte, bool) {
	start := c.in.Tell()
	size := c.parenthetical('[', ']')
	if size == scan.EOF {
		return nil, false
	}
	return c.in.Slice(start, start+size), true
}

// linkyTitle reads a title opened by quote. The cursor sits just before
// the opening quote. The title ends at a matching quote followed, after
// optional blanks, by ')'.
func (c *Compiler) linkyTitle(quote int) ([]byte, bool) {
	in := &c.in
	whence := in.Tell()

	for {
		ch := in.Pull()
		if ch == scan.EOF {
			break
		}
		end := in.Tell()
		if ch == quote && c.eatSpace() == ')' {
			if end-1 <= whence+1 {
				return []byte{}, true
			}
			return in.Slice(whence+1, end-1), true
		}
	}

	in.Seek(whence)
	return nil, false
}

// title parses a title into ref.
func (c *Compiler) title(quote int, ref *mdast.Footnote) bool {
	t, ok := c.linkyTitle(quote)
	if ok {
		ref.Title = string(t)
	}
	return ok
}

// linkySize reads " =WxH" after an image URL, optionally followed by a
// title.
func (c *Compiler) linkySize(ref *mdast.Footnote) bool {
	in := &c.in
	whence := in.Tell()

	if scan.IsSpace(in.Peek(0)) {
		in.Pull()

		width, height := 0, 0
		ch := in.Pull()
		for ; scan.IsDigit(ch); ch = in.Pull() {
			width = width*10 + ch - '0'
		}

		if ch == 'x' {
			for ch = in.Pull(); scan.IsDigit(ch); ch = in.Pull() {
				height = height*10 + ch - '0'
			}

			pulled := true
			if scan.IsSpace(ch) {
				ch = c.eatSpace()
				pulled = false
			}

			ok := ch == ')'
			if !ok && (ch == '\'' || ch == '"') {
				if pulled {
					in.Shift(-1)
				}
				ok = c.title(ch, ref)
			}
			if ok {
				ref.Width, ref.Height = width, height
				return true
			}
		}
	}

	in.Seek(whence)
	return false
}

// linkyBroket reads a <>-enclosed URL whose '<' has been consumed.
func (c *Compiler) linkyBroket(trig trigger, ref *mdast.Footnote) bool {
	in := &c.in
	start := in.Tell()

	size := 0
	for ch := in.Pull(); ch != '>'; ch = in.Pull() {
		if ch == scan.EOF {
			return false
		}
		if ch == '\\' && scan.IsPunct(in.Peek(1)) {
			size++
			in.Pull()
		}
		size++
	}
	link := in.Slice(start, start+size)

	ch := c.eatSpace()

	var good bool
	switch {
	case (ch == '\'' || ch == '"') && c.title(ch, ref):
		good = true
	case trig == triggerImage && ch == '=' && c.linkySize(ref):
		good = true
	default:
		good = ch == ')'
	}

	if good {
		if in.Peek(1) == ')' {
			in.Pull()
		}
		ref.Link = string(tidy(link))
	}
	return good
}

// linkyURL reads the (url "title") part of an inline link whose '(' has
// been consumed.
func (c *Compiler) linkyURL(trig trigger, ref *mdast.Footnote) bool {
	in := &c.in

	ch := c.eatSpace()
	if ch == scan.EOF {
		return false
	}

	trimBroket := false
	if ch == '<' {
		in.Pull()
		if !c.flags.Any(flags.OneCompat) {
			return c.linkyBroket(trig, ref)
		}
		trimBroket = true
	}

	start := in.Tell()
	size := 0
	for ; ; size++ {
		ch = in.Peek(1)
		if ch == ')' {
			break
		}
		if ch == scan.EOF {
			return false
		}
		if (ch == '"' || ch == '\'') && c.title(ch, ref) {
			break
		}
		if trig != triggerLink && ch == '=' && c.linkySize(ref) {
			break
		}
		if ch == '\\' && scan.IsPunct(in.Peek(2)) {
			size++
			in.Pull()
		}
		in.Pull()
	}
	if in.Peek(1) == ')' {
		in.Pull()
	}

	link := tidy(in.Slice(start, start+size))
	if trimBroket && len(link) > 0 && link[len(link)-1] == '>' {
		link = link[:len(link)-1]
	}
	ref.Link = string(link)
	return true
}

// linkyLinky handles [text](url), [text][ref], [text] and [^note], with
// the '[' consumed. On failure the cursor is restored and nothing is
// written.
func (c *Compiler) linkyLinky(trig trigger) bool {
	in := &c.in
	start := in.Tell()

	ok := c.linky(trig)
	if !ok {
		in.Seek(start)
	}
	return ok
}

func (c *Compiler) linky(trig trigger) bool {
	in := &c.in

	name, ok := c.linkyLabel()
	if !ok {
		return false
	}

	if in.Peek(1) == '(' {
		in.Pull()
		var key mdast.Footnote
		if !c.linkyURL(trig, &key) {
			return false
		}
		return c.linkyFormat(name, trig, &key)
	}

	mark := in.Tell()
	if scan.IsSpace(in.Peek(1)) {
		in.Pull()
	}

	var tag []byte
	footnote := false
	if in.Peek(1) == '[' {
		in.Pull()
		if tag, ok = c.linkyLabel(); !ok {
			return false
		}
	} else {
		// [text] on its own is a reference to itself.
		in.Seek(mark)
		if c.flags.Any(flags.OneCompat) {
			return false
		}
		footnote = c.flags.Any(flags.ExtraFootnote) && trig == triggerLink &&
			len(name) > 0 && name[0] == '^'
	}

	if len(tag) == 0 {
		tag = name
	}

	if ref := c.sh.footnotes.Find(string(tag)); ref != nil {
		if footnote {
			return c.extraLinky(name, ref)
		}
		return c.linkyFormat(name, trig, ref)
	}

	if c.flags.Any(flags.Wiki) && c.sh.callbacks != nil && c.sh.callbacks.Data != nil {
		c.printLinkyRef(&wikiTag, string(name))
		c.q.Char('>')
		c.q.Write(name)
		c.q.String("</a>")
		return true
	}
	return false
}

// linkyFormat writes a resolved link, image or object, or reports that
// the current flags forbid it.
func (c *Compiler) linkyFormat(text []byte, trig trigger, ref *mdast.Footnote) bool {
	var tag *linkTag

	switch {
	case trig == triggerImage && c.flags.Any(flags.XML):
		tag = &imageTagXML
	case trig == triggerImage:
		tag = &imageTag
	case trig == triggerObject:
		tag = &objectTag
	default:
		if p := pseudo(ref.Link); p != nil {
			if c.flags.Any(flags.NoExt | flags.SafeLink) {
				return false
			}
			tag = p
		} else if c.flags.Any(flags.SafeLink) &&
			(ref.Link == "" || (ref.Link[0] != '/' && !isAutoPrefix(ref.Link))) {
			return false
		} else {
			tag = &anchorTag
		}
	}

	if c.flags.Any(tag.flags) {
		return false
	}

	if c.flags.Any(flags.IsLabel) {
		c.reparse(text, tag.flags, "")
		return true
	}

	if tag.linkPfx == "" {
		c.q.String(ref.Link[len(tag.pat):])
		return true
	}

	c.printLinkyRef(tag, ref.Link)

	if tag.wxh && !c.flags.Any(flags.ISO) {
		if ref.Height != 0 {
			c.q.Printf(` height="%d"`, ref.Height)
		}
		if ref.Width != 0 {
			c.q.Printf(` width="%d"`, ref.Width)
		}
	}

	if ref.Title != "" {
		c.q.String(` title="`)
		c.reparse([]byte(ref.Title), flags.TagText, "")
		c.q.Char('"')
	}

	c.q.String(tag.textPfx)
	c.reparse(text, tag.flags, "")
	c.q.String(tag.textSfx)
	return true
}

// printLinkyRef writes the opening of a link tag up to and including the
// URL attribute, applying the host callbacks.
func (c *Compiler) printLinkyRef(tag *linkTag, link string) {
	if c.flags.Any(flags.IsLabel) {
		return
	}

	c.q.String(tag.linkPfx)

	switch tag.kind {
	case kindURL, kindMIME:
		if edit, ok := c.editURL(link); ok {
			c.putURL([]byte(edit), false)
			c.release(edit)
		} else {
			c.putURL([]byte(link[len(tag.pat):]), false)
		}
		if tag.kind == kindMIME {
			if mime := MIMEType(link); mime != "" {
				c.q.String(`" type ="`)
				c.q.String(mime)
			}
		}
	case kindWiki:
		c.putURL([]byte(c.wikiURL(link)), false)
	default:
		c.reparse([]byte(link[len(tag.pat):]), flags.TagText, "")
	}

	c.q.String(tag.linkSfx)

	if cb := c.sh.callbacks; cb != nil && cb.EditFlags != nil {
		if extra, ok := cb.EditFlags(link, cb.Data); ok {
			c.q.Char(' ')
			c.q.String(extra)
			c.release(extra)
		}
	}
}

func (c *Compiler) editURL(link string) (string, bool) {
	cb := c.sh.callbacks
	if cb == nil || cb.EditURL == nil {
		return "", false
	}
	return cb.EditURL(link, cb.Data)
}

func (c *Compiler) release(result string) {
	if cb := c.sh.callbacks; cb != nil && cb.Release != nil {
		cb.Release(result, cb.Data)
	}
}

// extraLinky writes a numbered footnote reference. A note already
// referenced once is not linked again.
func (c *Compiler) extraLinky(text []byte, ref *mdast.Footnote) bool {
	if ref.Referenced {
		return false
	}

	if c.flags.Any(flags.IsLabel) {
		c.reparse(text, anchorTag.flags, "")
		return true
	}

	c.sh.reference++
	ref.Referenced = true
	ref.RefNumber = c.sh.reference

	pfx := c.sh.prefix
	c.q.Printf(`<sup id="%sref:%d"><a href="#%s:%d" rel="footnote">%d</a></sup>`,
		pfx, ref.RefNumber, pfx, ref.RefNumber, ref.RefNumber)
	return true
}

// wikiURL joins the wiki base and a page name.
func (c *Compiler) wikiURL(link string) string {
	base := c.wikiBase()
	if base == "" {
		return link
	}
	if strings.HasSuffix(base, "/") || strings.HasSuffix(base, "?") {
		return base + link
	}
	return base + "/" + link
}

// tidy drops trailing blanks.
func tidy(p []byte) []byte {
	return bytes.TrimRight(p, " \t\n\r\v\f")
}
