// Package layout defines the frame layout document and its JSON format.
//
// # Overview
//
// A layout describes one sensor/actuator frame (a "comb") in physical
// units, with the origin at the bottom-left corner of the frame. It is
// the input of every render and is treated as read-only once loaded.
//
// # JSON Format
//
// Every section is optional and may appear in any order:
//
//	{
//	  "outline":        [{"id": 0, "pos": [0, 0]}, {"id": 1, "pos": [200, 0]}],
//	  "outline_comb":   [{"id": 0, "pos": [10, 10]}],
//	  "screws":         [{"pos": [5, 5], "radius": 3}],
//	  "grooves":        [{"pos": [20, 4], "wh": [30, 2]}],
//	  "actuators":      [{"id": 1, "pos": [50, 60], "radius": 10}],
//	  "accelerometers": [{"id": 1, "pos": [30, 30], "wh": [4, 4]}],
//	  "led_red":        [{"id": 1, "pos": [100, 110], "wh": [3, 2]}],
//	  "led_ir":         [{"id": 1, "pos": [100, 15], "radius": 3}]
//	}
//
// # Geometry Conventions
//
//   - outline, outline_comb: polygon vertices. The "id" field, not array
//     order, defines the winding; see [SortVertices].
//   - grooves: "pos" is the lower-left corner, the rectangle extends by
//     "wh" up and to the right.
//   - accelerometers, led_red: "pos" is the rectangle center.
//   - screws, actuators, led_ir: "pos" is the circle center and "radius"
//     its diameter-like extent (halved when drawn).
//
// Only the outline determines the canvas size. Other entities placed
// outside it are clipped when drawn.
//
// # Default Layout
//
// [Default] returns the layout compiled into the binary, used when no
// layout directory is configured.
package layout
