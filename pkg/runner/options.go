// Package runner renders many Markdown files concurrently.
package runner

// Options controls a batch run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths, relative to
	// WorkingDir. Empty means everything with a Markdown extension.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.GOMAXPROCS(0)).
	Jobs int

	// OutDir receives the .html files, mirroring the layout under
	// WorkingDir. Empty writes each page next to its source.
	OutDir string

	// Backup copies an existing output file to <name>.bak before it is
	// replaced.
	Backup bool

	// MaxFileSize bounds a single source. Zero means fsutil.DefaultMaxFileSize.
	MaxFileSize int64
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".text"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
