package frame

import (
	"image"
	"slices"

	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/raster"
)

// DefaultCellExclude are the accelerometer ids that get no cell grid.
var DefaultCellExclude = []int{5, 7}

// CellColor is the stroke color of cell circles.
var CellColor = raster.Gray(128)

// CellGrid describes the decorative cell pattern drawn around each
// accelerometer. Lengths are physical units.
type CellGrid struct {
	Columns   int     // highest column index per quadrant
	Rows      int     // highest row index per quadrant
	Diameter  float64 // cell circle size
	HPitch    float64 // horizontal distance between cells
	VPitch    float64 // vertical distance between rows
	HShift    float64 // horizontal offset of odd rows
	Thickness int
}

// DefaultCellGrid is the grid used by [Draw].
var DefaultCellGrid = CellGrid{
	Columns:   7,
	Rows:      9,
	Diameter:  5,
	HPitch:    6,
	VPitch:    5.2,
	HShift:    3,
	Thickness: 1,
}

// Draw paints the grid around every accelerometer whose id is not in
// exclude and returns the number of circles issued.
//
// Column i and row j run from 0 through Columns and Rows inclusive, and
// each (i, j) yields one circle per quadrant, so the anchor row and column
// are drawn more than once.
func (cg CellGrid) Draw(p raster.Painter, doc *layout.Document, t geometry.Transform, exclude []int) int {
	r := t.HalfPixels(cg.Diameter)
	hp := t.Pixels(cg.HPitch)
	vp := t.Pixels(cg.VPitch)
	hs := t.Pixels(cg.HShift)

	n := 0
	for _, acc := range doc.Accelerometers {
		if slices.Contains(exclude, acc.ID) {
			continue
		}
		c := t.PhysicalToImage(acc.Pos.X(), acc.Pos.Y())
		for i := 0; i <= cg.Columns; i++ {
			for j := 0; j <= cg.Rows; j++ {
				shift := hs * (j % 2)
				for _, d := range [4]image.Point{
					{hp*i + shift, vp * j},
					{hp*i + shift, -vp * j},
					{-hp*i + shift, vp * j},
					{-hp*i + shift, -vp * j},
				} {
					p.Circle(c.Add(d), r, CellColor, cg.Thickness)
					n++
				}
			}
		}
	}
	return n
}

func (o Options) cellExclude() []int {
	if o.CellExclude == nil {
		return DefaultCellExclude
	}
	return o.CellExclude
}
