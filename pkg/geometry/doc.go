// Package geometry maps physical frame coordinates onto raster pixels.
//
// Three coordinate systems are involved:
//
//   - Physical plane: real-world units, origin at the bottom-left corner of
//     the frame (excluding the ear).
//   - Grid: physical coordinates shifted by an offset and divided by the
//     resolution, truncated to integers. Still bottom-left origin.
//   - Image: grid coordinates with the vertical axis flipped so that the
//     origin is the top-left corner, matching pixel buffer indexing.
//
// [Fit] sizes a canvas around a layout outline and returns the [Transform]
// that every drawing routine shares. The same Transform value can be kept
// after rendering and handed to [ConvertToImageCoordinates] to place live
// measurements on a previously rendered diagram:
//
//	t, err := geometry.Fit(outline, 0.1)
//	if err != nil {
//	    return err
//	}
//	col, row := geometry.ConvertToImageCoordinates(t, 12.5, 40)
//
// Transform is a plain value. Nothing in this package keeps state between
// calls, so renders and conversions for different layouts can run
// concurrently.
package geometry
