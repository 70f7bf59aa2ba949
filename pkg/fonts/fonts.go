// Package fonts provides the font used for entity labels on frame diagrams.
//
// The Go Regular font ships with golang.org/x/image, so it is compiled into
// the binary and needs no system font lookup. It is parsed once on first use.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ScaleHeight is the label height in pixels at text scale 1. A scale-2 label
// is therefore about 44 pixels tall.
const ScaleHeight = 22.0

// Cache for the parsed font (computed once on first access).
var (
	labelFont     *opentype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// Label returns the parsed label font.
func Label() (*opentype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = opentype.Parse(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// NewFace returns a face sized for the given text scale. Faces keep glyph
// buffers and must not be shared between goroutines; callers create one per
// canvas. If the font cannot be loaded, the fixed 7x13 bitmap face is
// returned so labels still appear.
func NewFace(scale float64) font.Face {
	f, err := Label()
	if err != nil || scale <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    ScaleHeight * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
