package layout

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/combview/pkg/geometry"
)

// Document is a frame layout. Field names follow the JSON sections.
type Document struct {
	Outline        []Vertex        `json:"outline" bson:"outline"`
	CombOutline    []Vertex        `json:"outline_comb" bson:"outline_comb"`
	Screws         []Screw         `json:"screws" bson:"screws"`
	Grooves        []Groove        `json:"grooves" bson:"grooves"`
	Actuators      []Actuator      `json:"actuators" bson:"actuators"`
	Accelerometers []Accelerometer `json:"accelerometers" bson:"accelerometers"`
	VisibleLEDs    []VisibleLED    `json:"led_red" bson:"led_red"`
	InfraredLEDs   []InfraredLED   `json:"led_ir" bson:"led_ir"`

	// raw holds the spec sections exactly as decoded by ReadJSON, so keys
	// the typed entities do not model survive Spec and WriteJSON.
	raw map[string]json.RawMessage
}

// Vertex is one corner of an outline polygon.
type Vertex struct {
	ID  int            `json:"id" bson:"id"`
	Pos geometry.Point `json:"pos" bson:"pos"`
}

// Screw is a mounting hole. Screws carry no identifier.
type Screw struct {
	Pos    geometry.Point `json:"pos" bson:"pos"`
	Radius float64        `json:"radius" bson:"radius"`
}

// Groove is a rectangle anchored at its lower-left corner.
type Groove struct {
	Pos geometry.Point `json:"pos" bson:"pos"`
	WH  geometry.Size  `json:"wh" bson:"wh"`
}

// Actuator is a circular vibration actuator.
type Actuator struct {
	ID     int            `json:"id" bson:"id"`
	Pos    geometry.Point `json:"pos" bson:"pos"`
	Radius float64        `json:"radius" bson:"radius"`
}

// Accelerometer is a rectangular sensor centered on Pos.
type Accelerometer struct {
	ID  int            `json:"id" bson:"id"`
	Pos geometry.Point `json:"pos" bson:"pos"`
	WH  geometry.Size  `json:"wh" bson:"wh"`
}

// VisibleLED is a rectangular red LED centered on Pos.
type VisibleLED struct {
	ID  int            `json:"id" bson:"id"`
	Pos geometry.Point `json:"pos" bson:"pos"`
	WH  geometry.Size  `json:"wh" bson:"wh"`
}

// InfraredLED is a circular IR LED.
type InfraredLED struct {
	ID     int            `json:"id" bson:"id"`
	Pos    geometry.Point `json:"pos" bson:"pos"`
	Radius float64        `json:"radius" bson:"radius"`
}

// SortVertices returns a copy of vs ordered by ID. Vertices sharing an ID
// keep their document order.
func SortVertices(vs []Vertex) []Vertex {
	out := slices.Clone(vs)
	slices.SortStableFunc(out, func(a, b Vertex) int {
		return a.ID - b.ID
	})
	return out
}

// OutlinePoints returns the outline vertex positions in document order.
func (d *Document) OutlinePoints() []geometry.Point {
	pts := make([]geometry.Point, len(d.Outline))
	for i, v := range d.Outline {
		pts[i] = v.Pos
	}
	return pts
}

// Fit sizes a canvas for the document at the given resolution.
func (d *Document) Fit(resolution float64) (geometry.Transform, error) {
	return geometry.Fit(d.OutlinePoints(), resolution)
}

// Counts returns the number of entities per JSON section.
func (d *Document) Counts() map[string]int {
	return map[string]int{
		"outline":        len(d.Outline),
		"outline_comb":   len(d.CombOutline),
		"screws":         len(d.Screws),
		"grooves":        len(d.Grooves),
		"actuators":      len(d.Actuators),
		"accelerometers": len(d.Accelerometers),
		"led_red":        len(d.VisibleLEDs),
		"led_ir":         len(d.InfraredLEDs),
	}
}
