package runner

import "time"

// FileOutcome is the result of rendering one source file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Output is where the HTML went.
	Output string

	// Bytes is the size of the rendered HTML.
	Bytes int

	// Written is false when the output already held identical content.
	Written bool

	// Error is set if the file could not be rendered or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesUnchanged  int
	FilesErrored    int
	BytesWritten    int64
	Duration        time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by source path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Failed returns the outcomes that carry an error.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Error != nil {
			out = append(out, f)
		}
	}
	return out
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	case outcome.Written:
		r.Stats.FilesRendered++
		r.Stats.BytesWritten += int64(outcome.Bytes)
	default:
		r.Stats.FilesRendered++
		r.Stats.FilesUnchanged++
	}
}
