package farmstand

import (
	"context"
	"io"
)

// ProductRepo manages product persistence. Each call is independently atomic
// at the single-row level; no transaction ever spans multiple records.
//
// Add requires the caller to supply a pre-generated unique id. Delete returns
// ErrNotFound when no row matches the id.
type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	Add(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) error
}

// GalleryRepo manages gallery item persistence with the same contract as
// ProductRepo, plus a point lookup used before deleting the backing file.
type GalleryRepo interface {
	List(ctx context.Context) ([]GalleryItem, error)
	Get(ctx context.Context, id string) (GalleryItem, error)
	Add(ctx context.Context, item GalleryItem) error
	Delete(ctx context.Context, id string) error
}

// ImageStore is the physical storage for uploaded images. Names are flat
// storage filenames as produced by NewImageName, never client-supplied paths.
//
// Write must not leave a partial file behind on failure (write to a temp
// file, then rename). Delete returns ErrNotFound for an absent name. List
// returns every stored filename and is used by the orphan sweep.
type ImageStore interface {
	Write(ctx context.Context, name string, content io.Reader) (int64, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}
