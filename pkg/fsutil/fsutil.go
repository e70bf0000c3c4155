// Package fsutil reads Markdown sources and writes rendered output safely:
// size-limited reads with categorized errors, atomic writes and optional
// backups of output files about to be replaced.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxFileSize bounds a single source file.
const DefaultMaxFileSize int64 = 16 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrNotRegularFile indicates a device, socket or other special file.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrFileTooLarge indicates the source exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// ReadFile reads a source file of at most limit bytes. A limit of zero
// means DefaultMaxFileSize.
func ReadFile(ctx context.Context, path string, limit int64) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}

	switch {
	case stat.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	case !stat.Mode().IsRegular():
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	case stat.Size() > limit:
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, path, stat.Size(), limit)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return content, nil
}

// ReadAll reads at most limit bytes from r, typically standard input.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}

	content, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrFileTooLarge, limit)
	}
	return content, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
