// Package annotation implements the stroke-capture and history engine
// behind the image markup surface: a raster drawing buffer, freehand
// segment rendering, snapshot-based undo/redo, and the pointer session
// state machine that ties them together. It knows nothing about Fyne or
// any other UI framework; the widget layer feeds it raw screen
// coordinates and reads the buffer back out.
package annotation

import "image"

// Buffer is the drawing raster the pen marks land on, sized to match the
// rendered image it overlays. Pixels are RGBA, 4 bytes each. A Buffer is
// owned by exactly one Session and is not safe for concurrent use.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// Snapshot is an immutable full copy of a Buffer's pixels at one instant.
type Snapshot struct {
	width  int
	height int
	pix    []uint8
}

// NewBuffer creates a cleared buffer. Dimensions are clamped to at least 1.
func NewBuffer(width, height int) *Buffer {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Resize reallocates the raster at the new dimensions. The old content is
// discarded; buffer content is only meaningful between size syncs.
// Reports whether the size actually changed.
func (b *Buffer) Resize(width, height int) bool {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == b.width && height == b.height {
		return false
	}
	b.width = width
	b.height = height
	b.pix = make([]uint8, width*height*4)
	return true
}

// Clear resets every pixel to fully transparent.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// Snapshot copies the current pixel contents.
func (b *Buffer) Snapshot() Snapshot {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return Snapshot{width: b.width, height: b.height, pix: pix}
}

// Restore overwrites the buffer with a snapshot taken earlier. Snapshots
// from a differently sized buffer are stale and ignored; history is reset
// on resize so this only guards against misuse.
func (b *Buffer) Restore(s Snapshot) {
	if s.width != b.width || s.height != b.height {
		return
	}
	copy(b.pix, s.pix)
}

// Equal reports whether the buffer's pixels match the snapshot exactly.
func (b *Buffer) Equal(s Snapshot) bool {
	if s.width != b.width || s.height != b.height {
		return false
	}
	for i, v := range b.pix {
		if s.pix[i] != v {
			return false
		}
	}
	return true
}

// Blank reports whether every pixel is fully transparent.
func (b *Buffer) Blank() bool {
	for _, v := range b.pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Image returns the raster as an image.RGBA sharing the buffer's pixels.
// Callers compositing or encoding must not hold it across a Resize.
func (b *Buffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

func (b *Buffer) pixelAt(x, y int) (r, g, bl, a uint8) {
	i := (y*b.width + x) * 4
	return b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]
}
