package mdast

// DefaultTabStop is the column width a tab expands to.
const DefaultTabStop = 4

// LineFlags mark properties noticed while a line was read.
type LineFlags uint8

// Line flags.
const (
	// PipeChar is set when the line contains a '|'.
	PipeChar LineFlags = 1 << iota
)

// Line is one input line after tab expansion. Dle is the offset of the
// first non-blank byte.
type Line struct {
	Text  []byte
	Dle   int
	Flags LineFlags
}

// NewLine expands tabs to tabstop columns, drops control bytes and computes
// Dle and Flags.
func NewLine(raw []byte, tabstop int) Line {
	if tabstop <= 0 {
		tabstop = DefaultTabStop
	}

	var line Line
	text := make([]byte, 0, len(raw))
	col := 0
	for _, c := range raw {
		switch {
		case c == '\t':
			for {
				text = append(text, ' ')
				col++
				if col%tabstop == 0 {
					break
				}
			}
		case c >= ' ':
			if c == '|' {
				line.Flags |= PipeChar
			}
			text = append(text, c)
			col++
		}
	}

	line.Text = text
	line.Dle = firstNonBlank(text)
	return line
}

// LineString is NewLine for a string with the default tab stop.
func LineString(s string) Line {
	return NewLine([]byte(s), DefaultTabStop)
}

// Blank reports whether the line has no non-blank bytes.
func (l Line) Blank() bool {
	return l.Dle >= len(l.Text)
}

func firstNonBlank(text []byte) int {
	i := 0
	for i < len(text) && text[i] == ' ' {
		i++
	}
	return i
}

// SplitLines breaks content into lines, accepting LF and CRLF endings. A
// trailing newline does not produce an empty final line.
func SplitLines(content []byte, tabstop int) []Line {
	var lines []Line
	start := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		end := idx
		if end > start && content[end-1] == '\r' {
			end--
		}
		lines = append(lines, NewLine(content[start:end], tabstop))
		start = idx + 1
	}

	if start < len(content) {
		lines = append(lines, NewLine(content[start:], tabstop))
	}
	return lines
}
