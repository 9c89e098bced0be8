package farmstand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivhu/farmstand"
)

func TestLightbox_OpenClose(t *testing.T) {
	lb := farmstand.NewLightbox(3)
	assert.False(t, lb.IsOpen())

	lb.Open(1)
	assert.True(t, lb.IsOpen())
	assert.Equal(t, 1, lb.Index())

	lb.Close()
	assert.False(t, lb.IsOpen())
}

func TestLightbox_OpenOutOfRange(t *testing.T) {
	lb := farmstand.NewLightbox(3)

	lb.Open(-1)
	assert.False(t, lb.IsOpen())

	lb.Open(3)
	assert.False(t, lb.IsOpen())

	empty := farmstand.NewLightbox(0)
	empty.Open(0)
	assert.False(t, empty.IsOpen())
}

func TestLightbox_NavigationWrapsAround(t *testing.T) {
	lb := farmstand.NewLightbox(3)
	lb.Open(2)

	lb.Next()
	assert.Equal(t, 0, lb.Index())

	lb.Prev()
	assert.Equal(t, 2, lb.Index())

	lb.Prev()
	assert.Equal(t, 1, lb.Index())
}

func TestLightbox_NavigationNoopWhileClosed(t *testing.T) {
	lb := farmstand.NewLightbox(3)

	lb.Next()
	lb.Prev()
	assert.Equal(t, 0, lb.Index())
	assert.False(t, lb.IsOpen())
}

func TestLightbox_Slideshow(t *testing.T) {
	lb := farmstand.NewLightbox(2)

	// cannot start while closed
	lb.ToggleSlideshow()
	assert.False(t, lb.SlideshowActive())

	lb.Open(0)
	lb.ToggleSlideshow()
	assert.True(t, lb.SlideshowActive())

	lb.ToggleSlideshow()
	assert.False(t, lb.SlideshowActive())

	// closing stops the slideshow
	lb.ToggleSlideshow()
	lb.Close()
	assert.False(t, lb.SlideshowActive())
}

func TestLightbox_Resize(t *testing.T) {
	lb := farmstand.NewLightbox(5)
	lb.Open(4)

	lb.Resize(3)
	assert.Equal(t, 2, lb.Index())
	assert.True(t, lb.IsOpen())

	lb.Resize(0)
	assert.False(t, lb.IsOpen())
	assert.Equal(t, 0, lb.Total())
}
