package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(4, 3)
	if c.Width() != 4 || c.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", c.Width(), c.Height())
	}
	if len(c.Pix) != 4*3*3 {
		t.Errorf("len(Pix) = %d, want 36", len(c.Pix))
	}
	if n := c.CountNonZero(); n != 0 {
		t.Errorf("CountNonZero() = %d, want 0", n)
	}
}

func TestNewCanvasNegative(t *testing.T) {
	c := NewCanvas(-1, 5)
	if c.Width() != 0 || len(c.Pix) != 0 {
		t.Errorf("NewCanvas(-1, 5) = %dx%d with %d bytes", c.Width(), c.Height(), len(c.Pix))
	}
}

func TestSetRGBClips(t *testing.T) {
	c := NewCanvas(3, 3)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		c.SetRGB(p.X, p.Y, RGB{255, 0, 0})
	}
	if n := c.CountNonZero(); n != 0 {
		t.Errorf("out-of-bounds writes changed %d pixels", n)
	}

	c.SetRGB(2, 1, RGB{1, 2, 3})
	if got := c.RGBAt(2, 1); got != (RGB{1, 2, 3}) {
		t.Errorf("RGBAt(2,1) = %v, want {1 2 3}", got)
	}
	if got := c.RGBAt(-5, 1); got != (RGB{}) {
		t.Errorf("RGBAt outside = %v, want black", got)
	}
}

func TestSetDropsAlpha(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, color.RGBA{10, 20, 30, 255})
	if got := c.RGBAt(0, 0); got != (RGB{10, 20, 30}) {
		t.Errorf("RGBAt = %v, want {10 20 30}", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCanvas(2, 2)
	c.SetRGB(0, 0, Gray(128))
	d := c.Clone()
	if !c.Equal(d) {
		t.Fatal("clone differs from source")
	}
	d.SetRGB(1, 1, Gray(255))
	if c.Equal(d) {
		t.Error("writing to clone changed source")
	}
}

func TestPad(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetRGB(0, 0, RGB{255, 0, 0})
	c.SetRGB(1, 0, RGB{0, 255, 0})

	p := c.Pad(2)
	if p.Width() != 6 || p.Height() != 5 {
		t.Fatalf("padded size = %dx%d, want 6x5", p.Width(), p.Height())
	}
	if got := p.RGBAt(2, 2); got != (RGB{255, 0, 0}) {
		t.Errorf("RGBAt(2,2) = %v, want red", got)
	}
	if got := p.RGBAt(3, 2); got != (RGB{0, 255, 0}) {
		t.Errorf("RGBAt(3,2) = %v, want green", got)
	}
	if n := p.CountNonZero(); n != 2 {
		t.Errorf("CountNonZero() = %d, want 2", n)
	}

	if c.Pad(0) != c {
		t.Error("Pad(0) should return the same canvas")
	}
}

func TestRGBARoundTrip(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetRGB(2, 1, RGB{180, 0, 200})
	img := c.RGBA()
	if got := img.RGBAAt(2, 1); got != (color.RGBA{180, 0, 200, 255}) {
		t.Errorf("RGBAAt = %v", got)
	}
	back := NewCanvas(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			back.Set(x, y, img.At(x, y))
		}
	}
	if !back.Equal(c) {
		t.Error("RGBA() does not round trip through Set")
	}
}
