package annotation

import (
	"image/color"
	"strconv"
)

// Point is a position in buffer space (the canvas's intrinsic pixel grid,
// not on-screen display space).
type Point struct {
	X, Y float32
}

// Style is the pen configuration a segment is drawn with. Styles change
// between strokes, never mid-stroke.
type Style struct {
	Color color.NRGBA
	Width float32
}

// Box is the displayed bounding box of the annotation surface in screen
// pixels. A zero-size Box means no surface is currently mounted.
type Box struct {
	Left, Top     float32
	Width, Height float32
}

// Empty reports whether the box cannot host any drawing.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

var palette = map[string]color.NRGBA{
	"black":  {A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
}

// ParseColor turns a pen color token into a concrete color. Named tokens
// cover the toolbar palette; "#rrggbb" is accepted for anything else.
// Unknown tokens fall back to black, same as an unknown path color did.
func ParseColor(token string) color.NRGBA {
	if c, ok := palette[token]; ok {
		return c
	}
	if len(token) == 7 && token[0] == '#' {
		if v, err := strconv.ParseUint(token[1:], 16, 32); err == nil {
			return color.NRGBA{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 255,
			}
		}
	}
	return color.NRGBA{A: 255}
}
