package annotation

import "math"

// DrawSegment renders one rounded-cap, rounded-join line segment of the
// style's width and color between two buffer-space points. Consecutive
// pointer samples share endpoints, so the round caps double as joins.
//
// Zero-length segments are valid and paint a single dot; dense same-pixel
// samples from a fast-moving pointer just repaint the same coverage,
// which is additive and harmless. Width is taken as-is; the toolbar
// limits the range, the renderer does not.
func DrawSegment(buf *Buffer, from, to Point, style Style) {
	if style.Width <= 0 {
		return
	}
	half := float64(style.Width) / 2

	// Only pixels within half a width (plus the soft edge) of the
	// segment can be touched.
	minX := int(math.Floor(math.Min(float64(from.X), float64(to.X)) - half - 1))
	maxX := int(math.Ceil(math.Max(float64(from.X), float64(to.X)) + half + 1))
	minY := int(math.Floor(math.Min(float64(from.Y), float64(to.Y)) - half - 1))
	maxY := int(math.Ceil(math.Max(float64(from.Y), float64(to.Y)) + half + 1))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > buf.width-1 {
		maxX = buf.width - 1
	}
	if maxY > buf.height-1 {
		maxY = buf.height - 1
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			// Sample at the pixel center.
			d := distToSegment(float64(x)+0.5, float64(y)+0.5, from, to)
			cover := half + 0.5 - d
			if cover <= 0 {
				continue
			}
			if cover > 1 {
				cover = 1
			}
			blendPixel(buf, x, y, style, cover)
		}
	}
}

// distToSegment returns the distance from (px,py) to the closest point on
// the segment a-b. Degenerates to point distance when a == b.
func distToSegment(px, py float64, a, b Point) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-ax, float64(b.Y)-ay

	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-ax)*dx + (py-ay)*dy) / lenSq
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	cx := ax + t*dx
	cy := ay + t*dy
	return math.Hypot(px-cx, py-cy)
}

// blendPixel source-over composites the pen color at the given coverage
// onto one buffer pixel.
func blendPixel(buf *Buffer, x, y int, style Style, cover float64) {
	sa := float64(style.Color.A) / 255 * cover
	if sa <= 0 {
		return
	}
	sr := float64(style.Color.R) / 255 * sa
	sg := float64(style.Color.G) / 255 * sa
	sb := float64(style.Color.B) / 255 * sa

	i := (y*buf.width + x) * 4
	dr := float64(buf.pix[i]) / 255
	dg := float64(buf.pix[i+1]) / 255
	db := float64(buf.pix[i+2]) / 255
	da := float64(buf.pix[i+3]) / 255

	inv := 1 - sa
	buf.pix[i] = uint8(math.Round((sr + dr*inv) * 255))
	buf.pix[i+1] = uint8(math.Round((sg + dg*inv) * 255))
	buf.pix[i+2] = uint8(math.Round((sb + db*inv) * 255))
	buf.pix[i+3] = uint8(math.Round((sa + da*inv) * 255))
}
