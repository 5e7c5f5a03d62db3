package annotation

// MapToBuffer translates a raw pointer position in screen pixels into
// buffer coordinates, compensating for the surface being displayed at a
// different size than its intrinsic raster (the common case when the
// image is scaled to fit the window).
//
// If no surface is mounted (empty box) the origin is returned; callers
// treat that as a harmless degenerate point, not an error.
func MapToBuffer(screen Point, box Box, bufWidth, bufHeight int) Point {
	if box.Empty() {
		return Point{}
	}
	return Point{
		X: (screen.X - box.Left) * (float32(bufWidth) / box.Width),
		Y: (screen.Y - box.Top) * (float32(bufHeight) / box.Height),
	}
}
