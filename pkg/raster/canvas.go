// Package raster provides the 3-channel pixel canvas that frame diagrams are
// drawn on, together with the drawing primitives the renderers use.
//
// The canvas is row-major with a top-left origin. Every primitive clips
// silently at the canvas edge: shapes that lie partly or fully outside the
// canvas draw only their visible pixels.
package raster

import (
	"bytes"
	"image"
	"image/color"
)

// RGB is an opaque 3-channel color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// Gray returns an RGB with all three channels set to v.
func Gray(v uint8) RGB { return RGB{v, v, v} }

// Canvas is a 3-channel pixel grid. Pixel (x, y) occupies
// Pix[y*Stride+x*3 : y*Stride+x*3+3] in R, G, B order.
//
// Canvas implements draw.Image, so image/draw and encoders accept it.
type Canvas struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle

	faces faceCache
}

// NewCanvas returns a zero-filled (black) canvas of w columns and h rows.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	return &Canvas{
		Pix:    make([]uint8, w*h*3),
		Stride: w * 3,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.Rect.Dx() }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.Rect.Dy() }

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle { return c.Rect }

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color {
	return c.RGBAt(x, y)
}

// RGBAt returns the pixel at (x, y), or black outside the canvas.
func (c *Canvas) RGBAt(x, y int) RGB {
	if !image.Pt(x, y).In(c.Rect) {
		return RGB{}
	}
	i := c.offset(x, y)
	return RGB{c.Pix[i], c.Pix[i+1], c.Pix[i+2]}
}

// Set implements draw.Image. Alpha is discarded.
func (c *Canvas) Set(x, y int, col color.Color) {
	if !image.Pt(x, y).In(c.Rect) {
		return
	}
	r, g, b, _ := col.RGBA()
	i := c.offset(x, y)
	c.Pix[i] = uint8(r >> 8)
	c.Pix[i+1] = uint8(g >> 8)
	c.Pix[i+2] = uint8(b >> 8)
}

// SetRGB sets the pixel at (x, y) with bounds checking.
func (c *Canvas) SetRGB(x, y int, col RGB) {
	if !image.Pt(x, y).In(c.Rect) {
		return
	}
	i := c.offset(x, y)
	c.Pix[i] = col.R
	c.Pix[i+1] = col.G
	c.Pix[i+2] = col.B
}

func (c *Canvas) offset(x, y int) int {
	return (y-c.Rect.Min.Y)*c.Stride + (x-c.Rect.Min.X)*3
}

// Equal reports whether two canvases have the same size and pixels.
func (c *Canvas) Equal(o *Canvas) bool {
	return c.Rect.Size() == o.Rect.Size() && bytes.Equal(c.Pix, o.Pix)
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	return &Canvas{
		Pix:    bytes.Clone(c.Pix),
		Stride: c.Stride,
		Rect:   c.Rect,
	}
}

// CountNonZero returns the number of pixels that are not black.
func (c *Canvas) CountNonZero() int {
	n := 0
	for i := 0; i+2 < len(c.Pix); i += 3 {
		if c.Pix[i]|c.Pix[i+1]|c.Pix[i+2] != 0 {
			n++
		}
	}
	return n
}

// Pad grows the canvas by n zero pixels on every side and returns the new
// canvas. A non-positive n returns c unchanged.
func (c *Canvas) Pad(n int) *Canvas {
	if n <= 0 {
		return c
	}
	w, h := c.Width(), c.Height()
	out := NewCanvas(w+2*n, h+2*n)
	for y := 0; y < h; y++ {
		src := c.Pix[y*c.Stride : y*c.Stride+w*3]
		dst := (y+n)*out.Stride + n*3
		copy(out.Pix[dst:dst+w*3], src)
	}
	return out
}

// RGBA converts the canvas to an *image.RGBA for encoders.
func (c *Canvas) RGBA() *image.RGBA {
	w, h := c.Width(), c.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := y*c.Stride + x*3
			d := img.PixOffset(x, y)
			img.Pix[d] = c.Pix[s]
			img.Pix[d+1] = c.Pix[s+1]
			img.Pix[d+2] = c.Pix[s+2]
			img.Pix[d+3] = 0xff
		}
	}
	return img
}
