package raster

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/combview/pkg/fonts"
)

// Filled is the thickness value that requests a filled shape instead of an
// outline.
const Filled = -1

// Painter is the set of drawing primitives frame renderers need. All
// coordinates are image coordinates (top-left origin). A thickness of
// [Filled] fills the shape; a positive thickness strokes it with a line that
// wide, centered on the geometric edge.
type Painter interface {
	Circle(center image.Point, radius int, col RGB, thickness int)
	Rectangle(p1, p2 image.Point, col RGB, thickness int)
	Polyline(pts []image.Point, closed bool, col RGB, thickness int)
	Text(s string, origin image.Point, col RGB, scale float64, thickness int)
}

var _ Painter = (*Canvas)(nil)

// Circle draws a circle of the given pixel radius. A radius of zero draws a
// single point.
func (c *Canvas) Circle(center image.Point, radius int, col RGB, thickness int) {
	radius = max(radius, 0)
	if thickness == Filled {
		r2 := radius * radius
		r := c.clip(center, radius)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			dy := y - center.Y
			for x := r.Min.X; x < r.Max.X; x++ {
				dx := x - center.X
				if dx*dx+dy*dy <= r2 {
					c.SetRGB(x, y, col)
				}
			}
		}
		return
	}

	half := float64(max(thickness, 1)) / 2
	inner := max(float64(radius)-half, 0)
	outer := float64(radius) + half
	lo, hi := inner*inner, outer*outer
	r := c.clip(center, radius+max(thickness, 1))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dy := y - center.Y
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := x - center.X
			d2 := float64(dx*dx + dy*dy)
			if d2 >= lo && d2 <= hi {
				c.SetRGB(x, y, col)
			}
		}
	}
}

// clip returns the part of the square of half-size ext around center that
// lies on the canvas.
func (c *Canvas) clip(center image.Point, ext int) image.Rectangle {
	return image.Rect(center.X-ext, center.Y-ext, center.X+ext+1, center.Y+ext+1).Intersect(c.Rect)
}

// Rectangle draws an axis-aligned rectangle with opposite corners p1 and p2,
// both inclusive. The corners may be given in any order.
func (c *Canvas) Rectangle(p1, p2 image.Point, col RGB, thickness int) {
	x0, x1 := min(p1.X, p2.X), max(p1.X, p2.X)
	y0, y1 := min(p1.Y, p2.Y), max(p1.Y, p2.Y)

	if thickness == Filled {
		// Clip first so that huge off-canvas rectangles stay cheap.
		r := image.Rect(x0, y0, x1+1, y1+1).Intersect(c.Rect)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c.SetRGB(x, y, col)
			}
		}
		return
	}

	c.Polyline([]image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, true, col, thickness)
}

// Polyline draws connected line segments through pts. When closed is true,
// the last point is joined back to the first.
func (c *Canvas) Polyline(pts []image.Point, closed bool, col RGB, thickness int) {
	switch len(pts) {
	case 0:
		return
	case 1:
		c.stamp(pts[0], col, thickness)
		return
	}
	for i := 0; i < len(pts)-1; i++ {
		c.line(pts[i], pts[i+1], col, thickness)
	}
	if closed && len(pts) > 2 {
		c.line(pts[len(pts)-1], pts[0], col, thickness)
	}
}

// line draws a line between two points using Bresenham's algorithm, stamping
// a square brush at every step.
func (c *Canvas) line(p0, p1 image.Point, col RGB, thickness int) {
	x1, y1 := p0.X, p0.Y
	x2, y2 := p1.X, p1.Y
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := -1
	if x1 < x2 {
		sx = 1
	}
	sy := -1
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy

	for {
		c.stamp(image.Pt(x1, y1), col, thickness)

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// stamp paints a square brush of the given thickness centered on p.
func (c *Canvas) stamp(p image.Point, col RGB, thickness int) {
	half := max(thickness, 1) / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			c.SetRGB(p.X+dx, p.Y+dy, col)
		}
	}
}

// Text draws s with its baseline starting at origin. Glyph coverage is
// thresholded at one half, so labels are aliased and never blend with the
// pixels beneath them. Thickness above 1 grows every glyph pixel into a
// square brush.
func (c *Canvas) Text(s string, origin image.Point, col RGB, scale float64, thickness int) {
	face := c.faces.get(scale)
	b, _ := font.BoundString(face, s)
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()).Add(origin)
	if r.Empty() {
		return
	}

	mask := image.NewAlpha(r)
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(s)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if mask.AlphaAt(x, y).A >= 0x80 {
				c.stamp(image.Pt(x, y), col, thickness)
			}
		}
	}
}

// faceCache keeps one font face per text scale for a single canvas.
type faceCache map[float64]font.Face

func (fc *faceCache) get(scale float64) font.Face {
	if *fc == nil {
		*fc = make(faceCache)
	}
	if f, ok := (*fc)[scale]; ok {
		return f
	}
	f := fonts.NewFace(scale)
	(*fc)[scale] = f
	return f
}

// abs returns the absolute value
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
