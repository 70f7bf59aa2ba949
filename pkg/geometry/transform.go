package geometry

import (
	"image"
	"math"
)

// Transform holds everything needed to turn a physical coordinate into an
// image pixel for one rendered canvas. It is produced by [Fit], returned by
// every render, and is safe to serialize and keep for later conversions.
type Transform struct {
	// SizeI is the canvas width in pixels before padding.
	SizeI int `json:"size_i"`
	// SizeJ is the canvas height in pixels before padding.
	SizeJ int `json:"size_j"`
	// Resolution is the number of physical units covered by one pixel.
	Resolution float64 `json:"resolution"`
	// OffsetX and OffsetY shift physical coordinates into the positive quadrant.
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	// Padding is the border, in pixels, added around the canvas after
	// drawing. Image coordinates returned by this package ignore it; use
	// [Transform.PaddedImage] to address the padded canvas.
	Padding int `json:"padding,omitempty"`
}

// PhysicalToGrid converts a physical coordinate into grid coordinates.
// The scaled value is truncated toward zero.
func PhysicalToGrid(x, y, offsetX, offsetY, resolution float64) (i, j int) {
	i = toPixels((x + offsetX) / resolution)
	j = toPixels((y + offsetY) / resolution)
	return i, j
}

// maxPixelCoord bounds every pixel coordinate and length. Anything beyond it
// is far outside a canvas of at most MaxCanvasPixels.
const maxPixelCoord = 1 << 30

// toPixels truncates v toward zero, saturating at ±maxPixelCoord instead of
// overflowing. NaN maps to 0.
func toPixels(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxPixelCoord:
		return maxPixelCoord
	case v < -maxPixelCoord:
		return -maxPixelCoord
	}
	return int(v)
}

// GridToImage flips the vertical axis of a grid coordinate. The flip is its
// own inverse: applying it twice with the same sizeJ restores (i, j).
func GridToImage(i, j, sizeI, sizeJ int) (col, row int) {
	return i, sizeJ - j
}

// ConvertToImageCoordinates maps a physical point onto the image produced by
// the render that returned t. The result is only meaningful for that render.
func ConvertToImageCoordinates(t Transform, x, y float64) (col, row int) {
	p := t.PhysicalToImage(x, y)
	return p.X, p.Y
}

// ToGrid converts a physical coordinate into grid coordinates.
func (t Transform) ToGrid(x, y float64) image.Point {
	i, j := PhysicalToGrid(x, y, t.OffsetX, t.OffsetY, t.Resolution)
	return image.Pt(i, j)
}

// GridToImage flips a grid coordinate into image space.
func (t Transform) GridToImage(g image.Point) image.Point {
	col, row := GridToImage(g.X, g.Y, t.SizeI, t.SizeJ)
	return image.Pt(col, row)
}

// PhysicalToImage is the composition of ToGrid and GridToImage.
func (t Transform) PhysicalToImage(x, y float64) image.Point {
	return t.GridToImage(t.ToGrid(x, y))
}

// PaddedImage is PhysicalToImage shifted by the padding border.
func (t Transform) PaddedImage(x, y float64) image.Point {
	return t.PhysicalToImage(x, y).Add(image.Pt(t.Padding, t.Padding))
}

// Pixels converts a physical length into whole pixels.
func (t Transform) Pixels(length float64) int {
	return toPixels(length / t.Resolution)
}

// HalfPixels converts a physical length into pixels and halves it before
// truncating. Radii and rectangle half-extents use this.
func (t Transform) HalfPixels(length float64) int {
	return toPixels(length / t.Resolution / 2)
}

// Bounds returns the unpadded canvas rectangle in image space.
func (t Transform) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.SizeI, t.SizeJ)
}

// Contains reports whether an image point lies on the unpadded canvas.
func (t Transform) Contains(p image.Point) bool {
	return p.In(t.Bounds())
}
