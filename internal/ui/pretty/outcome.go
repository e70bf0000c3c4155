package pretty

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomkd/pkg/runner"
)

// FormatOutcome formats one file's result as "src -> out (N bytes)" or
// "src: error". Paths are shown relative to workDir when possible.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome, workDir string) string {
	src := s.FilePath.Render(relative(outcome.Path, workDir))

	if outcome.Error != nil {
		return fmt.Sprintf("  %s  %s  %s\n", src, s.Error.Render("error"), outcome.Error)
	}

	line := fmt.Sprintf("  %s %s %s %s",
		src,
		s.Arrow.Render("->"),
		relative(outcome.Output, workDir),
		s.Dim.Render(fmt.Sprintf("(%d bytes)", outcome.Bytes)),
	)
	if !outcome.Written {
		line += " " + s.Unchanged.Render("unchanged")
	}
	return line + "\n"
}

// FormatOutcomes formats every outcome, failures last.
func (s *Styles) FormatOutcomes(result *runner.Result, workDir string) string {
	if result == nil {
		return ""
	}

	var ok, failed strings.Builder
	for _, outcome := range result.Files {
		if outcome.Error != nil {
			failed.WriteString(s.FormatOutcome(outcome, workDir))
		} else {
			ok.WriteString(s.FormatOutcome(outcome, workDir))
		}
	}
	return ok.String() + failed.String()
}

func relative(path, workDir string) string {
	if workDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
