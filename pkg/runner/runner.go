package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/gomkd/internal/logging"
	"github.com/yaklabco/gomkd/pkg/fsutil"
	"github.com/yaklabco/gomkd/pkg/page"
)

// Runner renders files with a shared Converter. Each document is parsed
// and rendered on a single worker goroutine.
type Runner struct {
	Converter *Converter
}

// New creates a Runner.
func New(conv *Converter) *Runner {
	return &Runner{Converter: conv}
}

// Run discovers files under opts.Paths and renders them concurrently.
// Outcomes come back in source path order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	conv := r.Converter.frozen()

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range workCh {
				outcome := renderFile(ctx, conv, path, outputFor(workDir, opts.OutDir, path), opts)
				select {
				case <-ctx.Done():
					return
				case outCh <- outcome:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// outputFor names the .html file for src: beside it, or at the same
// relative position under outDir.
func outputFor(workDir, outDir, src string) string {
	if outDir == "" {
		return page.OutputPath(src)
	}
	rel := relTo(workDir, src)
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(src)
	}
	return filepath.Join(outDir, page.OutputPath(rel))
}

func renderFile(ctx context.Context, conv *Converter, src, dst string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: src, Output: dst}

	content, err := fsutil.ReadFile(ctx, src, opts.MaxFileSize)
	if err != nil {
		outcome.Error = err
		logger.Error("read failed", logging.FieldPath, src, logging.FieldError, err)
		return outcome
	}

	html, err := conv.Convert(ctx, content)
	if err != nil {
		outcome.Error = fmt.Errorf("render %s: %w", src, err)
		logger.Error("render failed", logging.FieldPath, src, logging.FieldError, err)
		return outcome
	}
	outcome.Bytes = len(html)

	if opts.Backup {
		if _, err := fsutil.Backup(ctx, dst); err != nil {
			outcome.Error = err
			logger.Error("backup failed", logging.FieldOutput, dst, logging.FieldError, err)
			return outcome
		}
	}

	written, err := fsutil.WriteIfChanged(ctx, dst, html, 0)
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", dst, err)
		logger.Error("write failed", logging.FieldOutput, dst, logging.FieldError, err)
		return outcome
	}
	outcome.Written = written

	logger.Debug("rendered",
		logging.FieldInput, src,
		logging.FieldOutput, dst,
		logging.FieldBytes, len(html),
		logging.FieldFilesUnchanged, !written,
	)
	return outcome
}
