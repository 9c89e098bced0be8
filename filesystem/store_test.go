package filesystem_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivhu/farmstand"
	"github.com/ivhu/farmstand/filesystem"
)

func newTestStore(t *testing.T) (*filesystem.Store, string) {
	t.Helper()
	tempDir := t.TempDir()
	root, err := os.OpenRoot(tempDir)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return filesystem.NewImageStore(root), tempDir
}

func TestStore_Write_Success(t *testing.T) {
	store, tempDir := newTestStore(t)
	ctx := context.Background()

	content := []byte("fake image bytes")
	written, err := store.Write(ctx, "abc.png", bytes.NewReader(content))

	assert.NoError(t, err)
	assert.Equal(t, int64(len(content)), written)

	got, err := os.ReadFile(filepath.Join(tempDir, "abc.png"))
	assert.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestStore_Write_ContextCanceledLeavesNothing(t *testing.T) {
	store, tempDir := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Write(ctx, "abc.png", bytes.NewReader([]byte("data")))
	assert.Error(t, err)

	entries, err := os.ReadDir(tempDir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Write_CancelMidCopyRemovesTempFile(t *testing.T) {
	store, tempDir := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())

	// cancel after the first read
	r := &cancelAfterFirstRead{cancel: cancel, data: bytes.NewReader(make([]byte, 1<<20))}

	_, err := store.Write(ctx, "abc.png", r)
	assert.Error(t, err)

	entries, readErr := os.ReadDir(tempDir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries)
}

type cancelAfterFirstRead struct {
	cancel context.CancelFunc
	data   *bytes.Reader
	reads  int
}

func (c *cancelAfterFirstRead) Read(p []byte) (int, error) {
	c.reads++
	if c.reads > 1 {
		c.cancel()
	}
	return c.data.Read(p)
}

func TestStore_Delete(t *testing.T) {
	store, tempDir := newTestStore(t)
	ctx := context.Background()

	err := os.WriteFile(filepath.Join(tempDir, "abc.png"), []byte("img"), 0o644)
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "abc.png"))
	_, statErr := os.Stat(filepath.Join(tempDir, "abc.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_Delete_NotFound(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Delete(context.Background(), "missing.png")
	assert.ErrorIs(t, err, farmstand.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	store, tempDir := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.png", "b.jpg"} {
		assert.NoError(t, os.WriteFile(filepath.Join(tempDir, name), []byte("img"), 0o644))
	}
	// leftover temp file from an interrupted write must be skipped
	assert.NoError(t, os.WriteFile(filepath.Join(tempDir, ".t123"), []byte("partial"), 0o644))

	names, err := store.List(ctx)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.png", "b.jpg"}, names)
}

func TestStore_List_Empty(t *testing.T) {
	store, _ := newTestStore(t)

	names, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, names)
}
