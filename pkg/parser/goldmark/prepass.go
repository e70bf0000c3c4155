package goldmark

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yaklabco/gomkd/pkg/flags"
	"github.com/yaklabco/gomkd/pkg/mdast"
)

// pandocHeader is the leading `% title`, `% author`, `% date` block.
type pandocHeader struct {
	title, author, date string
}

// splitHeader removes a pandoc header from the front of lines. All three
// lines must start with '%'.
func splitHeader(lines []mdast.Line, fl flags.Flags) (pandocHeader, []mdast.Line) {
	if fl.Any(flags.NoHeader|flags.Strict) || len(lines) < 3 {
		return pandocHeader{}, lines
	}
	for _, l := range lines[:3] {
		if len(l.Text) == 0 || l.Text[0] != '%' {
			return pandocHeader{}, lines
		}
	}

	field := func(l mdast.Line) string {
		return strings.TrimSpace(string(l.Text[1:]))
	}
	hdr := pandocHeader{
		title:  field(lines[0]),
		author: field(lines[1]),
		date:   field(lines[2]),
	}
	return hdr, lines[3:]
}

// extractDefinitions pulls `[tag]: url` reference definitions (and, with
// ExtraFootnote, `[^tag]: text` footnotes) out of lines. Consumed lines are
// blanked so later segmentation keeps its line structure. Lines inside
// fenced code are left alone.
func extractDefinitions(lines []mdast.Line, fl flags.Flags) mdast.Footnotes {
	var (
		notes mdast.Footnotes
		fence []byte
	)

	for i := 0; i < len(lines); i++ {
		text := lines[i].Text

		if marker := fenceMarker(text); marker != nil {
			switch {
			case fence == nil:
				fence = marker
			case bytes.HasPrefix(marker, fence):
				fence = nil
			}
			continue
		}
		if fence != nil || lines[i].Dle > 3 {
			continue
		}

		if fl.Has(flags.ExtraFootnote) && bytes.HasPrefix(text[lines[i].Dle:], []byte("[^")) {
			if note, used := extraFootnote(lines[i:]); note != nil {
				notes = append(notes, note)
				for j := range used {
					lines[i+j] = mdast.Line{}
				}
				i += used - 1
				continue
			}
		}

		if note := referenceDefinition(text[lines[i].Dle:]); note != nil {
			notes = append(notes, note)
			lines[i] = mdast.Line{}
		}
	}

	notes.Sort()
	return notes
}

// fenceMarker returns the run of backticks or tildes opening or closing a
// fenced code block, or nil.
func fenceMarker(text []byte) []byte {
	trimmed := bytes.TrimLeft(text, " ")
	if len(text)-len(trimmed) > 3 || len(trimmed) < 3 {
		return nil
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return nil
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return nil
	}
	return trimmed[:n]
}

// definitionTag parses the leading `[tag]:` and returns the tag and the
// remainder of the line.
func definitionTag(text []byte) (string, []byte, bool) {
	if len(text) == 0 || text[0] != '[' {
		return "", nil, false
	}
	end := bytes.Index(text, []byte("]:"))
	if end <= 1 {
		return "", nil, false
	}
	tag := text[1:end]
	if bytes.ContainsAny(tag, "[]") {
		return "", nil, false
	}
	return string(tag), text[end+2:], true
}

// referenceDefinition parses `[tag]: <url> =WxH "title"`. The url may be
// bracketed; size and title are optional.
func referenceDefinition(text []byte) *mdast.Footnote {
	tag, rest, ok := definitionTag(text)
	if !ok {
		return nil
	}

	rest = bytes.TrimLeft(rest, " ")
	if len(rest) == 0 {
		return nil
	}

	note := &mdast.Footnote{Tag: tag}

	if rest[0] == '<' {
		end := bytes.IndexByte(rest, '>')
		if end < 0 {
			return nil
		}
		note.Link = string(rest[1:end])
		rest = rest[end+1:]
	} else {
		end := bytes.IndexByte(rest, ' ')
		if end < 0 {
			end = len(rest)
		}
		note.Link = string(rest[:end])
		rest = rest[end:]
	}

	rest = bytes.TrimLeft(rest, " ")
	if len(rest) > 0 && rest[0] == '=' {
		var ok bool
		note.Width, note.Height, rest, ok = imageSize(rest[1:])
		if !ok {
			return nil
		}
		rest = bytes.TrimLeft(rest, " ")
	}

	rest = bytes.TrimRight(rest, " ")
	if len(rest) == 0 {
		return note
	}

	closer := map[byte]byte{'"': '"', '\'': '\'', '(': ')'}[rest[0]]
	if closer == 0 || len(rest) < 2 || rest[len(rest)-1] != closer {
		return nil
	}
	note.Title = string(rest[1 : len(rest)-1])
	return note
}

// imageSize parses `WxH` where either side may be empty.
func imageSize(text []byte) (int, int, []byte, bool) {
	digits := func(b []byte) (int, []byte) {
		n := 0
		for n < len(b) && b[n] >= '0' && b[n] <= '9' {
			n++
		}
		if n == 0 {
			return 0, b
		}
		v, err := strconv.Atoi(string(b[:n]))
		if err != nil {
			return 0, b[n:]
		}
		return v, b[n:]
	}

	width, rest := digits(text)
	if len(rest) == 0 || rest[0] != 'x' {
		return 0, 0, text, false
	}
	height, rest := digits(rest[1:])
	return width, height, rest, true
}

// extraFootnote parses `[^tag]: text` and any indented continuation lines.
// It returns the footnote and how many lines it consumed.
func extraFootnote(lines []mdast.Line) (*mdast.Footnote, int) {
	first := lines[0]
	tag, rest, ok := definitionTag(first.Text[first.Dle:])
	if !ok || len(tag) < 2 {
		return nil, 0
	}

	body := []string{string(bytes.TrimSpace(rest))}
	used := 1
	for used < len(lines) {
		l := lines[used]
		if l.Blank() {
			if used+1 < len(lines) && !lines[used+1].Blank() && lines[used+1].Dle >= 4 {
				used++
				continue
			}
			break
		}
		if l.Dle == 0 {
			break
		}
		body = append(body, string(l.Text[l.Dle:]))
		used++
	}

	return &mdast.Footnote{
		Tag:   tag,
		Title: strings.TrimSpace(strings.Join(body, "\n")),
	}, used
}
