package render

import (
	"github.com/yaklabco/gomkd/pkg/charset"
	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/inline"
)

// Line renders a single line of text, such as a page title, with no
// surrounding block markup and no reference table. The result is in the
// output charset selected by opts.Flags.
func Line(text []byte, opts Options) []byte {
	c := inline.New(inline.Options{
		Flags:     opts.Flags & flags.UserMask,
		Callbacks: opts.Callbacks,
		RefPrefix: opts.RefPrefix,
		RawDefs:   opts.RawDefs,
		MaxDepth:  opts.MaxDepth,
		Rand:      opts.Rand,
	}, nil)
	return charset.Finish(c.Compile(text), opts.Flags)
}
