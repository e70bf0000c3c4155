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

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "doc.html")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("<p>x</p>"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("replaces existing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "a.html"), []byte("a"), 0))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "a.html", entries[0].Name())
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "doc.html")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.html")

	written, err := fsutil.WriteIfChanged(ctx, path, []byte("one"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fsutil.WriteIfChanged(ctx, path, []byte("one"), 0)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = fsutil.WriteIfChanged(ctx, path, []byte("two"), 0)
	require.NoError(t, err)
	assert.True(t, written)
}
