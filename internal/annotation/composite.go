package annotation

import (
	"image"
	"image/draw"
)

// Composite flattens the annotation buffer over the source image,
// returning a new raster sized to the source. The buffer is painted
// edge-to-edge, so a buffer sized differently from the source (displayed
// scaled) still lands where the user saw it.
func Composite(source image.Image, buf *Buffer) *image.RGBA {
	bounds := source.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), source, bounds.Min, draw.Src)

	overlay := buf.Image()
	if overlay.Rect == out.Rect {
		draw.Draw(out, out.Bounds(), overlay, image.Point{}, draw.Over)
		return out
	}
	drawScaledOver(out, overlay)
	return out
}

// drawScaledOver paints src over dst stretched to dst's bounds, nearest
// neighbor. Pen strokes are soft-edged already, so nearest is fine here;
// the export path uses a real scaler for page fitting.
func drawScaledOver(dst *image.RGBA, src *image.RGBA) {
	dw, dh := dst.Rect.Dx(), dst.Rect.Dy()
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	if sw == 0 || sh == 0 {
		return
	}
	for y := 0; y < dh; y++ {
		sy := y * sh / dh
		for x := 0; x < dw; x++ {
			sx := x * sw / dw
			i := src.PixOffset(sx, sy)
			sa := uint32(src.Pix[i+3])
			if sa == 0 {
				continue
			}
			j := dst.PixOffset(x, y)
			inv := 255 - sa
			dst.Pix[j] = uint8((uint32(src.Pix[i])*255 + uint32(dst.Pix[j])*inv) / 255)
			dst.Pix[j+1] = uint8((uint32(src.Pix[i+1])*255 + uint32(dst.Pix[j+1])*inv) / 255)
			dst.Pix[j+2] = uint8((uint32(src.Pix[i+2])*255 + uint32(dst.Pix[j+2])*inv) / 255)
			dst.Pix[j+3] = uint8((sa*255 + uint32(dst.Pix[j+3])*inv) / 255)
		}
	}
}
