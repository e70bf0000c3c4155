package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomkd/pkg/fsutil"
)

func TestBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.html")

	made, err := fsutil.Backup(ctx, path)
	require.NoError(t, err)
	assert.False(t, made)
	assert.NoFileExists(t, fsutil.BackupPath(path))

	require.NoError(t, os.WriteFile(path, []byte("first"), 0o600))
	made, err = fsutil.Backup(ctx, path)
	require.NoError(t, err)
	assert.True(t, made)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
	_, err = fsutil.Backup(ctx, path)
	require.NoError(t, err)

	got, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/doc.html.bak", fsutil.BackupPath("a/doc.html"))
}
