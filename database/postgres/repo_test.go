package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivhu/farmstand"
)

func TestProductRepo_AddAndList(t *testing.T) {
	products, _ := setupTestRepos(t)
	ctx := context.Background()

	list, err := products.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, list)

	p := farmstand.Product{
		ID:       "p1",
		Name:     "Tomatoes",
		Category: "vegetable",
		Price:    1.2,
		Unit:     "kg",
		Img:      "/images/t.png",
	}
	assert.NoError(t, products.Add(ctx, p))

	list, err = products.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, p, list[0])
}

func TestProductRepo_Delete(t *testing.T) {
	products, _ := setupTestRepos(t)
	ctx := context.Background()

	p := farmstand.Product{ID: "p1", Name: "Tomatoes", Category: "vegetable", Price: 1.2, Unit: "kg"}
	assert.NoError(t, products.Add(ctx, p))

	assert.NoError(t, products.Delete(ctx, "p1"))

	err := products.Delete(ctx, "p1")
	assert.ErrorIs(t, err, farmstand.ErrNotFound)
}

func TestGalleryRepo_AddGetDelete(t *testing.T) {
	_, gallery := setupTestRepos(t)
	ctx := context.Background()

	item := farmstand.GalleryItem{ID: "g1", Src: "/images/a.png", Caption: "Cat"}
	assert.NoError(t, gallery.Add(ctx, item))

	got, err := gallery.Get(ctx, "g1")
	assert.NoError(t, err)
	assert.Equal(t, item, got)

	assert.NoError(t, gallery.Delete(ctx, "g1"))

	_, err = gallery.Get(ctx, "g1")
	assert.ErrorIs(t, err, farmstand.ErrNotFound)
}

func TestGalleryRepo_DeleteNotFound(t *testing.T) {
	_, gallery := setupTestRepos(t)

	err := gallery.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, farmstand.ErrNotFound)
}
