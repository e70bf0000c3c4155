package runner

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomkd/pkg/charset"
	"github.com/yaklabco/gomkd/pkg/page"
	"github.com/yaklabco/gomkd/pkg/parser/goldmark"
	"github.com/yaklabco/gomkd/pkg/render"
)

// Converter turns one Markdown source into HTML. A Converter holds only
// configuration and may be shared by workers as long as Render.Rand is
// nil and Render.RawDefs is no longer being registered into.
type Converter struct {
	Render render.Options

	// Page, when set, wraps the body in a full HTML document.
	Page *page.Options

	// InputLatin1 marks sources as ISO 8859-1.
	InputLatin1 bool
}

// Convert parses and renders content.
func (c *Converter) Convert(ctx context.Context, content []byte) ([]byte, error) {
	if c.InputLatin1 {
		decoded, err := charset.DecodeLatin1(content)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1 input: %w", err)
		}
		content = decoded
	}

	var pg *page.Options
	fl := c.Render.Flags
	if c.Page != nil {
		p := *c.Page
		p.Render = c.Render
		pg, fl = &p, p.Flags()
	}

	doc, err := goldmark.Parse(ctx, content, fl)
	if err != nil {
		return nil, err
	}

	if pg != nil {
		return page.Bytes(doc, *pg), nil
	}
	return render.New(c.Render).Render(doc), nil
}

// frozen returns a copy whose raw delimiter table can no longer change
// under the workers.
func (c *Converter) frozen() *Converter {
	cp := *c
	if c.Render.RawDefs != nil {
		cp.Render.RawDefs = c.Render.RawDefs.Snapshot()
	}
	return &cp
}
