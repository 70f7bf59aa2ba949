// Package pkg provides the core libraries for combview.
//
// # Overview
//
// combview renders frame layouts (outline, comb outline, screws, grooves,
// actuators, accelerometers, and LEDs) as raster images and maps physical
// coordinates onto the pixels of those images. The pkg directory is
// organized into these areas:
//
//  1. [geometry] - Physical to image coordinate transforms and canvas sizing
//  2. [layout] - The layout document, its JSON form, and layout stores
//  3. [raster] and [fonts] - The RGB canvas and its drawing primitives
//  4. [render] - The category renderers and image encoders
//  5. [pipeline] - Orchestration (load → render → encode) with caching
//  6. [cache], [config], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through combview:
//
//	Layout store (directory, embedded, MongoDB)
//	         ↓
//	    [layout] package (validated document)
//	         ↓
//	    [geometry] package (fit canvas, build transform)
//	         ↓
//	    [render/frame] package (draw categories, cells, padding)
//	         ↓
//	    [render/sink] package (PNG/BMP/TIFF)
//
// # Quick Start
//
// Render the built-in layout and find a point on the image:
//
//	import (
//	    "github.com/matzehuels/combview/pkg/geometry"
//	    "github.com/matzehuels/combview/pkg/layout"
//	    "github.com/matzehuels/combview/pkg/render/frame"
//	    "github.com/matzehuels/combview/pkg/render/sink"
//	)
//
//	doc, _ := layout.Default()
//	res, err := frame.Render(doc, frame.Options{Resolution: 0.1, ShowCells: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png, _ := sink.Bytes(res.Canvas, sink.PNG)
//	col, row := geometry.ConvertToImageCoordinates(res.Transform, 12.5, 40)
//
// Applications normally go through [pipeline.Runner], which adds layout
// stores, caching, and logging, and is shared by the CLI and HTTP server.
package pkg
