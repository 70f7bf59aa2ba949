// Package render groups the frame layout renderers.
//
// # Overview
//
// Rendering turns a [layout.Document] into pixels in two steps:
//
//   - [frame] draws every visible category onto a [raster.Canvas] in a
//     fixed order, optionally overlays the accelerometer cell grid, and pads
//     the result. It returns the canvas with the transform that maps
//     physical coordinates onto it.
//   - [sink] encodes a canvas as PNG, BMP, or TIFF.
//
// Typical use:
//
//	res, err := frame.Render(doc, frame.Options{Resolution: 0.1})
//	if err != nil {
//	    return err
//	}
//	data, err := sink.Bytes(res.Canvas, sink.PNG)
//
// Both steps are pure: the same document and options always produce the
// same bytes, and concurrent renders share no state.
//
// [layout.Document]: github.com/matzehuels/combview/pkg/layout.Document
// [raster.Canvas]: github.com/matzehuels/combview/pkg/raster.Canvas
package render
