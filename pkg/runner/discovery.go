package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// matcher holds the compiled include and exclude globs.
type matcher struct {
	include []glob.Glob
	exclude []glob.Glob
	exts    []string
}

func newMatcher(opts Options) (*matcher, error) {
	compile := func(patterns []string) ([]glob.Glob, error) {
		out := make([]glob.Glob, 0, len(patterns))
		for _, p := range patterns {
			g, err := glob.Compile(filepath.ToSlash(p), '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", p, err)
			}
			out = append(out, g)
		}
		return out, nil
	}

	include, err := compile(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compile(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	exts := make([]string, 0, len(opts.effectiveExtensions()))
	for _, e := range opts.effectiveExtensions() {
		exts = append(exts, strings.ToLower(e))
	}
	return &matcher{include: include, exclude: exclude, exts: exts}, nil
}

// anyMatch tests rel and its base name against globs.
func anyMatch(globs []glob.Glob, rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func (m *matcher) excluded(rel string) bool {
	return anyMatch(m.exclude, rel)
}

func (m *matcher) file(rel string) bool {
	if !slices.Contains(m.exts, strings.ToLower(filepath.Ext(rel))) {
		return false
	}
	if m.excluded(rel) {
		return false
	}
	return len(m.include) == 0 || anyMatch(m.include, rel)
}

// Discover finds Markdown files matching opts. It returns a sorted,
// de-duplicated list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(opts)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Files named explicitly are rendered whatever their extension.
			if !m.excluded(relTo(workDir, absPath)) {
				files = append(files, absPath)
			}
			continue
		}

		found, err := walkDirectory(ctx, absPath, workDir, m, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func relTo(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// walkDirectory collects matching files under root. Hidden entries are
// skipped; directory symlinks are walked only when follow is set.
func walkDirectory(ctx context.Context, root, workDir string, m *matcher, follow bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := relTo(workDir, path)
		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || m.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if info.IsDir() {
				if !follow {
					return nil
				}
				target, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // unresolvable symlinks are skipped
				}
				sub, err := walkDirectory(ctx, target, workDir, m, follow)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.file(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
