package farmstand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// StoreService implements the storefront operations over a product repo, a
// gallery repo, and an image store. It owns id generation, input validation,
// and the coupling between gallery records and their backing files.
type StoreService struct {
	products ProductRepo
	gallery  GalleryRepo
	images   ImageStore
	validate *validator.Validate
}

// NewStoreService builds a StoreService.
func NewStoreService(products ProductRepo, gallery GalleryRepo, images ImageStore) *StoreService {
	return &StoreService{
		products: products,
		gallery:  gallery,
		images:   images,
		validate: validator.New(),
	}
}

// ListProducts returns all products. Order is not significant.
func (s *StoreService) ListProducts(ctx context.Context) ([]Product, error) {
	list, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// CreateProduct validates the request, assigns a fresh id, and stores the
// product. The price arrives already coerced to a number by the Price type.
func (s *StoreService) CreateProduct(ctx context.Context, in CreateProduct) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	if err := s.validate.Struct(in); err != nil {
		return Product{}, fmt.Errorf("create product: %w: %v", ErrInvalidInput, err)
	}

	p := Product{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Category: in.Category,
		Price:    float64(in.Price),
		Unit:     in.Unit,
		Img:      in.Img,
	}

	if err := s.products.Add(ctx, p); err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	return p, nil
}

// DeleteProduct deletes a product by id. Deleting an absent id returns
// ErrNotFound; product and gallery deletes share the same semantics.
func (s *StoreService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete product: %w: id cannot be empty", ErrInvalidInput)
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// ListGallery returns all gallery items. Order is not significant.
func (s *StoreService) ListGallery(ctx context.Context) ([]GalleryItem, error) {
	items, err := s.gallery.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	return items, nil
}

// AddGalleryItem stores a gallery record for an already-hosted image src.
func (s *StoreService) AddGalleryItem(ctx context.Context, src, caption string) (GalleryItem, error) {
	if src == "" {
		return GalleryItem{}, fmt.Errorf("add gallery item: %w: src cannot be empty", ErrInvalidInput)
	}

	item := GalleryItem{ID: uuid.NewString(), Src: src, Caption: caption}
	if err := s.gallery.Add(ctx, item); err != nil {
		return GalleryItem{}, fmt.Errorf("add gallery item: %w", err)
	}
	return item, nil
}

// SaveImage validates and stores one uploaded file under a generated name and
// returns its public src. The extension allow-list and size ceiling are
// checked before any byte is written.
func (s *StoreService) SaveImage(ctx context.Context, originalName string, size int64, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	if !AllowedImageName(originalName) {
		return "", fmt.Errorf("save image %q: %w: only jpg, jpeg, png and gif files are allowed", originalName, ErrInvalidInput)
	}

	if size > MaxUploadSize {
		return "", fmt.Errorf("save image %q: %w: file exceeds %d bytes", originalName, ErrInvalidInput, int64(MaxUploadSize))
	}

	name := NewImageName(originalName)
	if _, err := s.images.Write(ctx, name, io.LimitReader(content, MaxUploadSize)); err != nil {
		return "", fmt.Errorf("save image %q: %w", originalName, err)
	}

	return ImageSrc(name), nil
}

// UploadGalleryImage stores one uploaded file and creates its gallery record.
// If the record insert fails the stored file is removed again, so a gallery
// upload never leaves an unreferenced file behind.
func (s *StoreService) UploadGalleryImage(ctx context.Context, originalName string, size int64, content io.Reader, caption string) (GalleryItem, error) {
	src, err := s.SaveImage(ctx, originalName, size, content)
	if err != nil {
		return GalleryItem{}, fmt.Errorf("upload gallery image: %w", err)
	}

	item, err := s.AddGalleryItem(ctx, src, caption)
	if err != nil {
		name, nameErr := ImageFileName(src)
		if nameErr == nil {
			if delErr := s.images.Delete(ctx, name); delErr != nil {
				slog.Error("failed to remove image after record insert failure", "name", name, "err", delErr)
			}
		}
		return GalleryItem{}, fmt.Errorf("upload gallery image: %w", err)
	}

	return item, nil
}

// DeleteGalleryItem looks up the item, attempts to remove its backing file,
// and deletes the record. File removal is best-effort by policy: a failure is
// logged and record deletion proceeds, so an orphaned file is the worst
// outcome, never a dangling record.
func (s *StoreService) DeleteGalleryItem(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete gallery item: %w: id cannot be empty", ErrInvalidInput)
	}

	item, err := s.gallery.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete gallery item %s: %w", id, err)
	}

	if item.Src != "" {
		name, nameErr := ImageFileName(item.Src)
		if nameErr == nil {
			delErr := s.images.Delete(ctx, name)
			if delErr != nil && !errors.Is(delErr, ErrNotFound) {
				slog.Error("failed to remove gallery image file", "id", id, "name", name, "err", delErr)
			}
		}
	}

	if err := s.gallery.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete gallery item %s: %w", id, err)
	}

	return nil
}

// SweepOrphans removes stored image files referenced by no product and no
// gallery item. Orphans accumulate from the two-step product flow (upload
// succeeds, create never follows) and from best-effort deletes; this is the
// offline sweep that reclaims them. Returns the number of files removed.
func (s *StoreService) SweepOrphans(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("sweep orphans: %w", err)
	}

	names, err := s.images.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep orphans: %w", err)
	}

	referenced := make(map[string]struct{})

	products, err := s.products.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep orphans: %w", err)
	}
	for _, p := range products {
		if name, nameErr := ImageFileName(p.Img); nameErr == nil {
			referenced[name] = struct{}{}
		}
	}

	items, err := s.gallery.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("sweep orphans: %w", err)
	}
	for _, item := range items {
		if name, nameErr := ImageFileName(item.Src); nameErr == nil {
			referenced[name] = struct{}{}
		}
	}

	removed := 0
	for _, name := range names {
		if _, ok := referenced[name]; ok {
			continue
		}

		delErr := s.images.Delete(ctx, name)
		// Ignore ErrNotFound - the file may have been removed already
		if delErr != nil && !errors.Is(delErr, ErrNotFound) {
			return removed, fmt.Errorf("sweep orphans %q: %w", name, delErr)
		}
		removed++
	}

	return removed, nil
}
