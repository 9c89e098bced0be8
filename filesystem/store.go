// Package filesystem stores uploaded images on disk. Writes go through a
// temp file and rename so a failed upload never leaves a partial image
// behind, and all operations are sandboxed under an os.Root so nothing can
// escape the configured image directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/ivhu/farmstand"
)

// Store holds uploaded images in a single flat directory.
type Store struct {
	root *os.Root
}

// NewImageStore creates a Store rooted at the given directory. The root
// provides sandboxed file operations preventing path traversal.
func NewImageStore(root *os.Root) *Store {
	return &Store{root: root}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Write stores content under the given name using a temp file and rename.
// Returns the number of bytes written. The operation respects context
// cancellation; a cancelled or failed write removes the temp file.
func (s *Store) Write(ctx context.Context, name string, content io.Reader) (int64, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	tmpName := fmt.Sprintf(".t%s", uuid.NewString())
	t, createErr := s.root.Create(tmpName)
	if createErr != nil {
		return 0, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(t.Name()); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	written, err := io.Copy(t, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return 0, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return 0, fmt.Errorf("could not sync written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpName, name); renameErr != nil {
		return 0, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return written, nil
}

// FS exposes the store's directory as a read-only fs.FS for static serving.
func (s *Store) FS() fs.FS {
	return s.root.FS()
}

// Delete removes a stored image. Returns farmstand.ErrNotFound if the file
// does not exist.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.root.Remove(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return farmstand.ErrNotFound
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

// List returns the names of all stored images. Leftover temp files from
// interrupted writes are skipped. Used by the orphan sweep.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		if len(entry.Name()) > 0 && entry.Name()[0] == '.' {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}
