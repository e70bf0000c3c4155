// Package goldmark segments Markdown source into an mdast.Document. The
// goldmark block parser finds headings, lists, quotes, code and raw HTML;
// inline content is left as source lines for the inline compiler.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
)

// Parser segments Markdown documents. A Parser is safe for concurrent use.
type Parser struct {
	flags flags.Flags
	md    goldmark.Markdown
}

// New creates a Parser honouring the block-level flags in fl.
func New(fl flags.Flags) *Parser {
	return &Parser{
		flags: fl,
		md:    newGoldmarkInstance(fl),
	}
}

// Flags returns the flags the parser was built with.
func (p *Parser) Flags() flags.Flags {
	return p.flags
}

// Parse segments content. Tabs are expanded, a pandoc header is split off,
// reference definitions are collected into the footnote table and the rest
// is handed to goldmark for block structure.
func (p *Parser) Parse(ctx context.Context, content []byte) (*mdast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	lines := mdast.SplitLines(content, mdast.DefaultTabStop)
	hdr, lines := splitHeader(lines, p.flags)
	notes := extractDefinitions(lines, p.flags)

	var src bytes.Buffer
	for _, l := range lines {
		src.Write(l.Text)
		src.WriteByte('\n')
	}
	source := src.Bytes()

	root := p.md.Parser().Parse(text.NewReader(source))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := &mapper{source: source, flags: p.flags}
	return &mdast.Document{
		Title:     hdr.title,
		Author:    hdr.author,
		Date:      hdr.date,
		Blocks:    m.blocks(root),
		Footnotes: notes,
	}, nil
}

// Parse is a convenience wrapper around New(fl).Parse.
func Parse(ctx context.Context, content []byte, fl flags.Flags) (*mdast.Document, error) {
	return New(fl).Parse(ctx, content)
}

// newGoldmarkInstance configures goldmark for block segmentation. Tables
// and lettered lists are recognised from paragraphs afterwards, so only
// the definition list extension is loaded.
func newGoldmarkInstance(fl flags.Flags) goldmark.Markdown {
	var exts []goldmark.Extender
	if !fl.Any(flags.NoDefinitionList) {
		exts = append(exts, extension.DefinitionList)
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}
