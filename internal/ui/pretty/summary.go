package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomkd/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 files rendered, 1 failed, 48213 bytes in 35ms".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	rendered := fmt.Sprintf("%d %s rendered", stats.FilesRendered, plural(stats.FilesRendered, wordFile, wordFiles))
	if stats.FilesErrored == 0 {
		rendered = s.Success.Render(rendered)
	}

	failed := fmt.Sprintf("%d failed", stats.FilesErrored)
	if stats.FilesErrored > 0 {
		failed = s.Failure.Render(failed)
	}

	parts := []string{
		rendered,
		failed,
		fmt.Sprintf("%d bytes in %s", stats.BytesWritten, stats.Duration.Round(time.Millisecond)),
	}

	line := strings.Join(parts, ", ")
	if stats.FilesUnchanged > 0 {
		line += s.Dim.Render(fmt.Sprintf(" (%d unchanged)", stats.FilesUnchanged))
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files rendered:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesRendered)) + "\n")

	if stats.FilesUnchanged > 0 {
		builder.WriteString("    Unchanged:       " +
			s.Unchanged.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("  Bytes written:     " +
		s.SummaryValue.Render(strconv.FormatInt(stats.BytesWritten, 10)) + "\n")
	builder.WriteString("  Duration:          " +
		s.SummaryValue.Render(stats.Duration.Round(time.Millisecond).String()) + "\n")

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Render failed for some files"))
	} else {
		builder.WriteString(s.Success.Render("Render complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}
