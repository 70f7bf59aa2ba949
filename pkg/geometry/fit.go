package geometry

import (
	"fmt"
	"math"

	"github.com/matzehuels/combview/pkg/errors"
)

const (
	// Margin is the physical border added around the outline so that thick
	// outline strokes are not clipped at the canvas edge.
	Margin = 4.0

	// HalfMargin is the part of Margin placed on each side.
	HalfMargin = Margin / 2

	// MaxCanvasPixels caps the area of a canvas, padding included.
	MaxCanvasPixels = 1 << 26
)

// BoundingBox is an axis-aligned physical rectangle.
type BoundingBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Bound computes the bounding box of pts. The box is seeded at the physical
// origin, so it always contains (0, 0) even when every point lies in the
// positive quadrant.
func Bound(pts []Point) BoundingBox {
	var b BoundingBox
	for _, p := range pts {
		b.MinX = min(b.MinX, p.X())
		b.MinY = min(b.MinY, p.Y())
		b.MaxX = max(b.MaxX, p.X())
		b.MaxY = max(b.MaxY, p.Y())
	}
	return b
}

// Fit sizes a canvas around the outline vertices at the given resolution.
//
// Only the outline contributes to the bounding box. Entities placed outside
// it are drawn outside the canvas and clipped.
//
// Fit returns an INVALID_INPUT error for a non-positive resolution or one so
// fine that the canvas would exceed [MaxCanvasPixels], and a
// DEGENERATE_LAYOUT error when the outline is empty or the canvas would have
// no pixels.
func Fit(outline []Point, resolution float64) (Transform, error) {
	if err := errors.ValidateResolution(resolution); err != nil {
		return Transform{}, err
	}
	if len(outline) == 0 {
		return Transform{}, errors.New(errors.ErrCodeDegenerateLayout, "outline has no vertices")
	}

	b := Bound(outline)
	w := math.Trunc((b.MaxX - b.MinX + Margin) / resolution)
	h := math.Trunc((b.MaxY - b.MinY + Margin) / resolution)
	if err := checkArea(w, h); err != nil {
		return Transform{}, errors.New(errors.ErrCodeInvalidInput,
			"resolution %g is too fine for this outline: %v", resolution, err)
	}
	t := Transform{
		Resolution: resolution,
		OffsetX:    -b.MinX + HalfMargin,
		OffsetY:    -b.MinY + HalfMargin,
		SizeI:      int(w),
		SizeJ:      int(h),
	}
	if t.SizeI <= 0 || t.SizeJ <= 0 {
		return Transform{}, errors.New(errors.ErrCodeDegenerateLayout,
			"canvas would be %dx%d pixels at resolution %g", t.SizeI, t.SizeJ, resolution)
	}
	return t, nil
}

// WithPadding returns t with Padding set to the pixel border for a physical
// padding. It fails with INVALID_INPUT when the padding is negative or the
// padded canvas would exceed [MaxCanvasPixels].
func (t Transform) WithPadding(padding float64) (Transform, error) {
	if err := errors.ValidatePadding(padding); err != nil {
		return Transform{}, err
	}
	pad := math.Trunc(padding / t.Resolution)
	w := float64(t.SizeI) + 2*pad
	h := float64(t.SizeJ) + 2*pad
	if err := checkArea(w, h); err != nil {
		return Transform{}, errors.New(errors.ErrCodeInvalidInput,
			"padding %g is too large at resolution %g: %v", padding, t.Resolution, err)
	}
	t.Padding = int(pad)
	return t, nil
}

// CheckPadding rejects paddings that cannot fit in [MaxCanvasPixels] on any
// canvas, before a layout is known.
func CheckPadding(padding, resolution float64) error {
	if err := errors.ValidatePadding(padding); err != nil {
		return err
	}
	side := 2 * math.Trunc(padding/resolution)
	if err := checkArea(side, side); err != nil {
		return errors.New(errors.ErrCodeInvalidInput,
			"padding %g is too large at resolution %g: %v", padding, resolution, err)
	}
	return nil
}

// checkArea compares a w x h pixel area against MaxCanvasPixels in floating
// point, so it is safe for sizes that do not fit in an int.
func checkArea(w, h float64) error {
	if !(w*h <= MaxCanvasPixels) || w > MaxCanvasPixels || h > MaxCanvasPixels {
		return fmt.Errorf("%.4gx%.4g pixels exceeds the %d pixel limit", w, h, MaxCanvasPixels)
	}
	return nil
}
