package frame

import (
	"image"

	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/raster"
)

// Category names one kind of drawn entity.
type Category string

// Drawable categories, in the order they appear in [Table].
const (
	Screws         Category = "screws"
	IRLEDs         Category = "irleds"
	VLEDs          Category = "vleds"
	Grooves        Category = "grooves"
	Actuators      Category = "actuators"
	Accelerometers Category = "accelerometers"
	Outline        Category = "outline"
	CombOutline    Category = "comb_outline"
)

// Shape is the geometric primitive a category is drawn with.
type Shape int

const (
	// Circle is centered on the entity position with radius HalfPixels(radius).
	Circle Shape = iota
	// CenteredRect spans (g-half, g+half) around the entity position in grid space.
	CenteredRect
	// CornerRect spans (g, g+size) from the entity position in grid space.
	CornerRect
	// Polygon joins the section's vertices, sorted by id, into a closed line.
	Polygon
)

// Label text settings shared by every category.
const (
	LabelScale     = 2.0
	LabelThickness = 1
)

// LineThickness is the stroke width of outlines and actuators.
const LineThickness = 3

// Category colors.
var (
	ScrewColor         = raster.RGB{R: 128, G: 128, B: 128}
	IRLEDColor         = raster.RGB{R: 180, G: 0, B: 200}
	VLEDColor          = raster.RGB{R: 255, G: 0, B: 0}
	GrooveColor        = raster.RGB{R: 0, G: 0, B: 255}
	ActuatorColor      = raster.RGB{R: 255, G: 255, B: 0}
	AccelerometerColor = raster.RGB{R: 0, G: 255, B: 0}
	OutlineColor       = raster.RGB{R: 255, G: 255, B: 255}
)

// entity is the category-independent view of one layout item.
type entity struct {
	ID     int
	Pos    geometry.Point
	Radius float64
	Size   geometry.Size
}

// Placement is an entity after transformation to image space. Label rules
// derive their origin from it.
type Placement struct {
	Center image.Point // image position of the entity anchor
	Corner image.Point // image position of grid (gi-hw, gj-hh)
	R      int         // radius in pixels
	HW, HH int         // half extents in pixels
}

// Style is one row of the category table.
type Style struct {
	Category  Category
	Section   string
	Shape     Shape
	Color     raster.RGB
	Thickness int

	// LabelPrefix is prepended to the entity id. Empty means unlabeled.
	LabelPrefix string
	// LabelAt returns the label baseline origin.
	LabelAt func(p Placement) image.Point

	entities func(d *layout.Document) []entity
}

// Labeled reports whether the category draws id labels.
func (s Style) Labeled() bool { return s.LabelPrefix != "" && s.LabelAt != nil }

// Table lists every category in drawing order.
var Table = []Style{
	{
		Category:  Screws,
		Section:   "screws",
		Shape:     Circle,
		Color:     ScrewColor,
		Thickness: raster.Filled,
		entities: func(d *layout.Document) []entity {
			out := make([]entity, len(d.Screws))
			for i, s := range d.Screws {
				out[i] = entity{Pos: s.Pos, Radius: s.Radius}
			}
			return out
		},
	},
	{
		Category:    IRLEDs,
		Section:     "led_ir",
		Shape:       Circle,
		Color:       IRLEDColor,
		Thickness:   raster.Filled,
		LabelPrefix: "IR",
		LabelAt: func(p Placement) image.Point {
			return image.Pt(p.Center.X, p.Center.Y-int(1.5*float64(p.R)))
		},
		entities: func(d *layout.Document) []entity {
			out := make([]entity, len(d.InfraredLEDs))
			for i, l := range d.InfraredLEDs {
				out[i] = entity{ID: l.ID, Pos: l.Pos, Radius: l.Radius}
			}
			return out
		},
	},
	{
		Category:    VLEDs,
		Section:     "led_red",
		Shape:       CenteredRect,
		Color:       VLEDColor,
		Thickness:   raster.Filled,
		LabelPrefix: "D",
		LabelAt: func(p Placement) image.Point {
			return image.Pt(p.Corner.X, p.Corner.Y-3*p.HH)
		},
		entities: func(d *layout.Document) []entity {
			out := make([]entity, len(d.VisibleLEDs))
			for i, l := range d.VisibleLEDs {
				out[i] = entity{ID: l.ID, Pos: l.Pos, Size: l.WH}
			}
			return out
		},
	},
	{
		Category:  Grooves,
		Section:   "grooves",
		Shape:     CornerRect,
		Color:     GrooveColor,
		Thickness: raster.Filled,
		entities: func(d *layout.Document) []entity {
			out := make([]entity, len(d.Grooves))
			for i, g := range d.Grooves {
				out[i] = entity{Pos: g.Pos, Size: g.WH}
			}
			return out
		},
	},
	{
		Category:    Actuators,
		Section:     "actuators",
		Shape:       Circle,
		Color:       ActuatorColor,
		Thickness:   LineThickness,
		LabelPrefix: "A",
		LabelAt: func(p Placement) image.Point {
			return image.Pt(p.Center.X-p.R/2, p.Center.Y-p.R/2)
		},
		entities: func(d *layout.Document) []entity {
			out := make([]entity, len(d.Actuators))
			for i, a := range d.Actuators {
				out[i] = entity{ID: a.ID, Pos: a.Pos, Radius: a.Radius}
			}
			return out
		},
	},
	{
		Category:    Accelerometers,
		Section:     "accelerometers",
		Shape:       CenteredRect,
		Color:       AccelerometerColor,
		Thickness:   raster.Filled,
		LabelPrefix: "Acc",
		LabelAt: func(p Placement) image.Point {
			return image.Pt(p.Corner.X+3*p.HW, p.Corner.Y+3*p.HH)
		},
		entities: func(d *layout.Document) []entity {
			out := make([]entity, len(d.Accelerometers))
			for i, a := range d.Accelerometers {
				out[i] = entity{ID: a.ID, Pos: a.Pos, Size: a.WH}
			}
			return out
		},
	},
	{
		Category:  Outline,
		Section:   "outline",
		Shape:     Polygon,
		Color:     OutlineColor,
		Thickness: LineThickness,
		entities: func(d *layout.Document) []entity {
			return vertices(d.Outline)
		},
	},
	{
		Category:  CombOutline,
		Section:   "outline_comb",
		Shape:     Polygon,
		Color:     OutlineColor,
		Thickness: LineThickness,
		entities: func(d *layout.Document) []entity {
			return vertices(d.CombOutline)
		},
	},
}

func vertices(vs []layout.Vertex) []entity {
	sorted := layout.SortVertices(vs)
	out := make([]entity, len(sorted))
	for i, v := range sorted {
		out[i] = entity{ID: v.ID, Pos: v.Pos}
	}
	return out
}

// Categories returns every category name in drawing order.
func Categories() []Category {
	out := make([]Category, len(Table))
	for i, s := range Table {
		out[i] = s.Category
	}
	return out
}

// ParseCategory returns the category with the given name. Layout section
// names such as "led_ir" are accepted as well.
func ParseCategory(name string) (Category, bool) {
	for _, s := range Table {
		if string(s.Category) == name || s.Section == name {
			return s.Category, true
		}
	}
	return "", false
}
