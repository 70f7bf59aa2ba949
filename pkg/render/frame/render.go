package frame

import (
	"image"
	"strconv"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/raster"
)

// Options controls one render. The zero value, apart from Resolution, draws
// every category with labels and no cell grid.
type Options struct {
	// Resolution is the number of physical units per pixel. Required.
	Resolution float64
	// Padding is the physical border added on every side after drawing.
	Padding float64
	// Hidden lists categories that are not drawn at all, labels included.
	Hidden map[Category]bool
	// HideLabels suppresses id labels for every category.
	HideLabels bool
	// ShowCells overlays the cell grid around accelerometers.
	ShowCells bool
	// CellExclude lists accelerometer ids without a cell grid. Nil means
	// [DefaultCellExclude]; an empty non-nil slice excludes nothing.
	CellExclude []int
}

// Hide returns a Hidden set containing cats.
func Hide(cats ...Category) map[Category]bool {
	m := make(map[Category]bool, len(cats))
	for _, c := range cats {
		m[c] = true
	}
	return m
}

// Validate checks the numeric options. A padding whose border alone would
// exceed [geometry.MaxCanvasPixels] is rejected here; the padded size of a
// concrete layout is checked by Render.
func (o Options) Validate() error {
	if err := errors.ValidateResolution(o.Resolution); err != nil {
		return err
	}
	return geometry.CheckPadding(o.Padding, o.Resolution)
}

// Stats describes what a render drew.
type Stats struct {
	// Drawn counts shapes per category, including clipped ones.
	Drawn map[Category]int `json:"drawn"`
	// Labels counts id labels.
	Labels int `json:"labels"`
	// Cells counts cell grid circles.
	Cells int `json:"cells"`
	// Clipped counts entities, or outline vertices, whose anchor lies
	// outside the unpadded canvas.
	Clipped int `json:"clipped"`
}

// Result is a finished render.
type Result struct {
	Canvas    *raster.Canvas
	Transform geometry.Transform
	Stats     Stats
}

// Render draws doc and returns the padded canvas with its transform.
//
// Errors are INVALID_INPUT for bad options or a canvas, padding included,
// larger than [geometry.MaxCanvasPixels], and DEGENERATE_LAYOUT when the
// outline cannot size a canvas. Entities outside the canvas are clipped,
// never reported as errors.
func Render(doc *layout.Document, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	t, err := doc.Fit(opts.Resolution)
	if err != nil {
		return nil, err
	}
	if t, err = t.WithPadding(opts.Padding); err != nil {
		return nil, err
	}

	canvas := raster.NewCanvas(t.SizeI, t.SizeJ)
	stats := Draw(canvas, doc, t, opts)

	return &Result{
		Canvas:    canvas.Pad(t.Padding),
		Transform: t,
		Stats:     stats,
	}, nil
}

// Draw paints every visible category of doc onto p using t. Padding in
// opts is ignored; it applies to whole canvases only.
func Draw(p raster.Painter, doc *layout.Document, t geometry.Transform, opts Options) Stats {
	stats := Stats{Drawn: make(map[Category]int, len(Table))}
	for _, style := range Table {
		if opts.Hidden[style.Category] {
			continue
		}
		drawCategory(p, doc, t, style, !opts.HideLabels, &stats)
	}
	if opts.ShowCells {
		stats.Cells = DefaultCellGrid.Draw(p, doc, t, opts.cellExclude())
	}
	return stats
}

func drawCategory(p raster.Painter, doc *layout.Document, t geometry.Transform, s Style, labels bool, stats *Stats) {
	ents := s.entities(doc)

	if s.Shape == Polygon {
		if len(ents) == 0 {
			return
		}
		pts := make([]image.Point, len(ents))
		for i, e := range ents {
			pts[i] = t.PhysicalToImage(e.Pos.X(), e.Pos.Y())
			if !t.Contains(pts[i]) {
				stats.Clipped++
			}
		}
		p.Polyline(pts, true, s.Color, s.Thickness)
		stats.Drawn[s.Category]++
		return
	}

	for _, e := range ents {
		pl := place(t, s.Shape, e)
		switch s.Shape {
		case Circle:
			p.Circle(pl.Center, pl.R, s.Color, s.Thickness)
		case CenteredRect:
			far := t.GridToImage(t.ToGrid(e.Pos.X(), e.Pos.Y()).Add(image.Pt(pl.HW, pl.HH)))
			p.Rectangle(pl.Corner, far, s.Color, s.Thickness)
		case CornerRect:
			g := t.ToGrid(e.Pos.X(), e.Pos.Y())
			far := t.GridToImage(g.Add(image.Pt(t.Pixels(e.Size.W()), t.Pixels(e.Size.H()))))
			p.Rectangle(pl.Center, far, s.Color, s.Thickness)
		}
		stats.Drawn[s.Category]++
		if !t.Contains(pl.Center) {
			stats.Clipped++
		}

		if labels && s.Labeled() {
			p.Text(s.LabelPrefix+strconv.Itoa(e.ID), s.LabelAt(pl), s.Color, LabelScale, LabelThickness)
			stats.Labels++
		}
	}
}

// place transforms one entity. For corner-anchored rectangles the anchor
// is the corner itself and the half extents are zero.
func place(t geometry.Transform, shape Shape, e entity) Placement {
	g := t.ToGrid(e.Pos.X(), e.Pos.Y())
	pl := Placement{Center: t.GridToImage(g)}
	switch shape {
	case Circle:
		pl.R = t.HalfPixels(e.Radius)
		pl.Corner = pl.Center
	case CenteredRect:
		pl.HW = t.HalfPixels(e.Size.W())
		pl.HH = t.HalfPixels(e.Size.H())
		pl.Corner = t.GridToImage(g.Sub(image.Pt(pl.HW, pl.HH)))
	default:
		pl.Corner = pl.Center
	}
	return pl
}
