// Package frame draws a layout document onto a raster canvas.
//
// # Overview
//
// [Render] is the engine entry point. It sizes the canvas from the layout
// outline ([geometry.Fit]), draws every visible category in a fixed order,
// optionally overlays the cell grid, pads the result, and returns the
// canvas together with the [geometry.Transform] that maps physical points
// onto it:
//
//	res, err := frame.Render(doc, frame.Options{Resolution: 0.1})
//	col, row := geometry.ConvertToImageCoordinates(res.Transform, 42.5, 17)
//
// # Category Table
//
// Each category is one row of [Table]: which layout section feeds it, the
// shape kind, color, fill mode and label rule. A single generic loop
// iterates the table, so there is no per-category drawing code. Categories
// are drawn in table order, and later categories paint over earlier ones:
//
//	screws, irleds, vleds, grooves, actuators, accelerometers,
//	outline, comb_outline, then the cell grid
//
// # Coordinates
//
// Every pixel position comes from the transform. Centered rectangles are
// built in grid space as (gi±hw, gj±hh) and flipped afterwards; grooves are
// anchored at their lower-left corner and extend by their full size.
//
// # Clipping
//
// Only the outline sizes the canvas. Entities placed outside it are clipped
// by the drawing primitives and counted in [Stats.Clipped]; they are not an
// error.
//
// # Drawing Target
//
// [Draw] paints onto any [raster.Painter], which lets callers record draw
// calls or render into their own canvas. [Render] uses a fresh
// [raster.Canvas].
package frame
