package geometry

// Point is a physical-plane coordinate. It is stored as a two-element array
// so that layout documents can spell positions as "pos": [x, y].
type Point [2]float64

// Pt creates a Point.
func Pt(x, y float64) Point { return Point{x, y} }

// X returns the horizontal coordinate.
func (p Point) X() float64 { return p[0] }

// Y returns the vertical coordinate.
func (p Point) Y() float64 { return p[1] }

// Size is a physical width/height pair, spelled "wh": [w, h] in layouts.
type Size [2]float64

// W returns the width.
func (s Size) W() float64 { return s[0] }

// H returns the height.
func (s Size) H() float64 { return s[1] }
