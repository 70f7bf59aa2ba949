// Package sink encodes finished frame canvases into image files.
//
// Supported formats:
//   - png: lossless, the default
//   - bmp: uncompressed, for tools that only read bitmaps
//   - tiff: deflate-compressed, for imaging pipelines
//
// All encoders write 8-bit RGB pixels; the canvas carries no alpha.
package sink

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/raster"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// Formats lists every supported format.
var Formats = []Format{PNG, BMP, TIFF}

// ParseFormat normalizes s into a Format. It accepts "tif" as TIFF and
// returns an INVALID_FORMAT error for anything unsupported.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	if f == "tif" {
		f = TIFF
	}
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want png, bmp or tiff)", s)
	}
	return f, nil
}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Encode writes c to w in format f.
func Encode(w io.Writer, c *raster.Canvas, f Format) error {
	img := c.RGBA()
	var err error
	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		err = enc.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}

// Bytes encodes c into memory.
func Bytes(c *raster.Canvas, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
