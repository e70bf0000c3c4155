// Package inline compiles the span-level Markdown inside a block of text
// into HTML: emphasis markers, code spans, strikethrough, links, images,
// footnote references, autolinks, raw HTML, raw delimiters and typographic
// substitutions.
package inline

import (
	"math/rand/v2"
	"time"

	"github.com/yaklabco/gomkd/pkg/emphasis"
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
	"github.com/yaklabco/gomkd/pkg/rawdef"
	"github.com/yaklabco/gomkd/pkg/scan"
	"github.com/yaklabco/gomkd/pkg/spanq"
)

// DefaultMaxDepth bounds nested compilation (link text inside superscript
// inside a table cell, and so on).
const DefaultMaxDepth = 32

// HardBreak is the byte the block renderer substitutes for a line ending
// in two spaces.
const HardBreak = 0x03

// Callbacks let a host rewrite link URLs and add link attributes. Every
// field is optional.
type Callbacks struct {
	// EditURL may return a replacement URL for a link.
	EditURL func(url string, data any) (string, bool)

	// EditFlags may return extra attribute text appended to the link tag.
	EditFlags func(url string, data any) (string, bool)

	// Release is called with every result returned by EditURL or
	// EditFlags once it has been written.
	Release func(result string, data any)

	// Data is passed to every callback. When it is a string and the Wiki
	// flag is set it is also the wiki base URL.
	Data any
}

// Options configure a Compiler.
type Options struct {
	Flags     flags.Flags
	Callbacks *Callbacks

	// RefPrefix replaces "fn" in footnote ids.
	RefPrefix string

	// RawDefs is read, never modified, while compiling.
	RawDefs *rawdef.Table

	// Resolver balances emphasis markers; emphasis.Default when nil.
	Resolver emphasis.Resolver

	// MaxDepth limits nested compilation; DefaultMaxDepth when zero.
	MaxDepth int

	// Rand drives the per-byte choice between decimal and hex character
	// references when obscuring e-mail addresses.
	Rand *rand.Rand
}

// shared is the state every nested compiler of one render pass sees.
type shared struct {
	callbacks *Callbacks
	prefix    string
	raw       *rawdef.Table
	resolver  emphasis.Resolver
	maxDepth  int
	rng       *rand.Rand
	footnotes mdast.Footnotes
	reference int
}

// escapes is a chain of characters a backslash may protect, one link per
// enclosing nested compile.
type escapes struct {
	text string
	up   *escapes
}

// Compiler is the state of one render pass. Nested compiles run in child
// compilers that share configuration and footnote numbering but have
// their own input cursor and output queue.
type Compiler struct {
	sh    *shared
	flags flags.Flags
	in    scan.Buffer
	q     spanq.Queue
	esc   *escapes
	depth int
}

// New returns a compiler resolving references against footnotes, which
// must be sorted.
func New(opts Options, footnotes mdast.Footnotes) *Compiler {
	sh := &shared{
		callbacks: opts.Callbacks,
		prefix:    opts.RefPrefix,
		raw:       opts.RawDefs,
		resolver:  opts.Resolver,
		maxDepth:  opts.MaxDepth,
		rng:       opts.Rand,
		footnotes: footnotes,
	}
	if sh.prefix == "" {
		sh.prefix = "fn"
	}
	if sh.resolver == nil {
		sh.resolver = emphasis.Default
	}
	if sh.maxDepth <= 0 {
		sh.maxDepth = DefaultMaxDepth
	}
	if sh.rng == nil {
		seed := uint64(time.Now().UnixNano())
		sh.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &Compiler{sh: sh, flags: opts.Flags}
}

// Flags returns the compiler's flag set.
func (c *Compiler) Flags() flags.Flags {
	return c.flags
}

// RefPrefix returns the footnote id prefix.
func (c *Compiler) RefPrefix() string {
	return c.sh.prefix
}

// References returns how many footnotes have been numbered so far.
func (c *Compiler) References() int {
	return c.sh.reference
}

// Footnotes returns the reference table.
func (c *Compiler) Footnotes() mdast.Footnotes {
	return c.sh.footnotes
}

// Compile renders text and returns finished HTML with emphasis resolved.
func (c *Compiler) Compile(text []byte) []byte {
	return c.CompileWith(text, 0, "")
}

// CompileWith renders text with extra flags set and with the characters in
// esc added to the backslash-protected set.
func (c *Compiler) CompileWith(text []byte, extra flags.Flags, esc string) []byte {
	sub := c.child(extra, esc)
	sub.depth = c.depth
	sub.in.Push(text)
	sub.text()
	return sub.resolve()
}

// Code escapes text for a code block: only & < > are replaced, and a
// backslash before a protected character is dropped.
func (c *Compiler) Code(text []byte) []byte {
	sub := c.child(0, "")
	sub.code(text)
	return sub.resolve()
}

func (c *Compiler) child(extra flags.Flags, esc string) *Compiler {
	sub := &Compiler{
		sh:    c.sh,
		flags: c.flags | extra,
		esc:   c.esc,
		depth: c.depth + 1,
	}
	if esc != "" {
		sub.esc = &escapes{text: esc, up: c.esc}
	}
	return sub
}

// reparse compiles text in a child and appends the finished output. Past
// the depth limit the text is written literally.
func (c *Compiler) reparse(text []byte, extra flags.Flags, esc string) {
	if c.depth >= c.sh.maxDepth {
		for _, b := range text {
			c.cputc(b)
		}
		return
	}

	sub := c.child(extra, esc)
	sub.in.Push(text)
	sub.text()
	c.q.Write(sub.resolve())
}

func (c *Compiler) resolve() []byte {
	defer c.q.Reset()

	if c.q.Markers() {
		return c.sh.resolver.Resolve(c.q.Blocks())
	}

	var out []byte
	for _, b := range c.q.Blocks() {
		out = append(out, b.Text...)
	}
	return out
}

// escaped reports whether ch is protected by any enclosing compile.
func (c *Compiler) escaped(ch byte) bool {
	for e := c.esc; e != nil; e = e.up {
		for i := range len(e.text) {
			if e.text[i] == ch {
				return true
			}
		}
	}
	return false
}

func (c *Compiler) tagText() bool {
	return c.flags.Any(flags.TagText)
}

// wikiBase returns the wiki base URL carried in the callback data.
func (c *Compiler) wikiBase() string {
	if c.sh.callbacks == nil {
		return ""
	}
	base, _ := c.sh.callbacks.Data.(string)
	return base
}
