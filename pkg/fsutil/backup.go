package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to an output file's name for its backup.
const BackupSuffix = ".bak"

// BackupPath returns the backup path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies an existing file to its backup path, replacing any older
// backup. It reports false when there was nothing to copy.
func Backup(ctx context.Context, path string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("backup: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, BackupPath(path), content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
