package farmstand

// Lightbox is the modal gallery viewer's state, kept independent of any
// rendering: a current index into a fixed-size image list, an open flag, and
// a slideshow flag. All transitions are pure with respect to the rendered
// image list; the caller re-creates or resizes the lightbox when the list
// changes, which avoids the index desynchronization the DOM-coupled viewer
// suffered from.
type Lightbox struct {
	index     int
	total     int
	open      bool
	slideshow bool
}

// NewLightbox returns a closed lightbox over a list of the given size.
func NewLightbox(total int) *Lightbox {
	if total < 0 {
		total = 0
	}
	return &Lightbox{total: total}
}

// Open opens the viewer at the given index. Out-of-range indexes and an empty
// list leave the lightbox closed.
func (l *Lightbox) Open(index int) {
	if index < 0 || index >= l.total {
		return
	}
	l.index = index
	l.open = true
}

// Close closes the viewer and stops any running slideshow.
func (l *Lightbox) Close() {
	l.open = false
	l.slideshow = false
}

// Next advances to the next image with wraparound. No-op while closed.
func (l *Lightbox) Next() {
	if !l.open || l.total == 0 {
		return
	}
	l.index = (l.index + 1) % l.total
}

// Prev moves to the previous image with wraparound. No-op while closed.
func (l *Lightbox) Prev() {
	if !l.open || l.total == 0 {
		return
	}
	l.index = (l.index - 1 + l.total) % l.total
}

// ToggleSlideshow flips the slideshow flag. The caller owns the advance
// timer; a closed lightbox cannot start a slideshow.
func (l *Lightbox) ToggleSlideshow() {
	if !l.open {
		return
	}
	l.slideshow = !l.slideshow
}

// Resize updates the list size, clamping the current index and closing the
// viewer when the list becomes empty.
func (l *Lightbox) Resize(total int) {
	if total < 0 {
		total = 0
	}
	l.total = total
	if total == 0 {
		l.Close()
		return
	}
	if l.index >= total {
		l.index = total - 1
	}
}

// Index returns the current image index.
func (l *Lightbox) Index() int { return l.index }

// Total returns the size of the image list.
func (l *Lightbox) Total() int { return l.total }

// IsOpen reports whether the viewer is open.
func (l *Lightbox) IsOpen() bool { return l.open }

// SlideshowActive reports whether the slideshow flag is set.
func (l *Lightbox) SlideshowActive() bool { return l.slideshow }
