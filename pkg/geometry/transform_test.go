package geometry

import (
	"encoding/json"
	"image"
	"math"
	"testing"

	"github.com/matzehuels/combview/pkg/errors"
)

func square(side float64) []Point {
	return []Point{Pt(0, 0), Pt(side, 0), Pt(side, side), Pt(0, side)}
}

func TestPhysicalToGrid(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		offX, offY float64
		res        float64
		wantI      int
		wantJ      int
	}{
		{"origin with offset", 0, 0, 2, 2, 1, 2, 2},
		{"unit resolution", 10, 10, 2, 2, 1, 12, 12},
		{"truncates", 1.9, 2.99, 0, 0, 1, 1, 2},
		{"fine resolution", 1.25, 0.5, 2, 2, 0.5, 6, 5},
		{"coarse resolution", 7, 3, 0, 0, 2, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j := PhysicalToGrid(tt.x, tt.y, tt.offX, tt.offY, tt.res)
			if i != tt.wantI || j != tt.wantJ {
				t.Errorf("PhysicalToGrid() = (%d, %d), want (%d, %d)", i, j, tt.wantI, tt.wantJ)
			}
		})
	}
}

func TestGridToImageFlip(t *testing.T) {
	col, row := GridToImage(3, 4, 20, 14)
	if col != 3 || row != 10 {
		t.Errorf("GridToImage(3, 4) = (%d, %d), want (3, 10)", col, row)
	}
}

func TestGridToImageInvolution(t *testing.T) {
	const sizeI, sizeJ = 40, 25
	for i := -2; i < sizeI+2; i++ {
		for j := -2; j < sizeJ+2; j++ {
			c, r := GridToImage(i, j, sizeI, sizeJ)
			i2, j2 := GridToImage(c, r, sizeI, sizeJ)
			if i2 != i || j2 != j {
				t.Fatalf("flip twice (%d, %d) = (%d, %d)", i, j, i2, j2)
			}
		}
	}
}

func TestFitSquare(t *testing.T) {
	tr, err := Fit(square(10), 1)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	want := Transform{SizeI: 14, SizeJ: 14, Resolution: 1, OffsetX: 2, OffsetY: 2}
	if tr != want {
		t.Errorf("Fit() = %+v, want %+v", tr, want)
	}

	if got := tr.PhysicalToImage(0, 0); got != image.Pt(2, 12) {
		t.Errorf("PhysicalToImage(0, 0) = %v, want (2,12)", got)
	}
	if got := tr.PhysicalToImage(10, 10); got != image.Pt(12, 2) {
		t.Errorf("PhysicalToImage(10, 10) = %v, want (12,2)", got)
	}
}

func TestFitOrderIndependent(t *testing.T) {
	a, err := Fit([]Point{Pt(-5, 3), Pt(20, 8), Pt(4, -1)}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fit([]Point{Pt(4, -1), Pt(-5, 3), Pt(20, 8)}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("Fit depends on vertex order: %+v vs %+v", a, b)
	}
	if a.OffsetX != 7 || a.OffsetY != 3 {
		t.Errorf("offset = (%v, %v), want (7, 3)", a.OffsetX, a.OffsetY)
	}
	if a.SizeI != 58 || a.SizeJ != 26 {
		t.Errorf("size = %dx%d, want 58x26", a.SizeI, a.SizeJ)
	}
}

func TestFitSeedsOrigin(t *testing.T) {
	// An outline that does not reach the origin still yields a box that
	// includes it.
	tr, err := Fit([]Point{Pt(5, 5), Pt(10, 5), Pt(10, 10)}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if tr.SizeI != 14 || tr.SizeJ != 14 {
		t.Errorf("size = %dx%d, want 14x14", tr.SizeI, tr.SizeJ)
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name    string
		outline []Point
		res     float64
		code    errors.Code
	}{
		{"empty outline", nil, 1, errors.ErrCodeDegenerateLayout},
		{"zero resolution", square(10), 0, errors.ErrCodeInvalidInput},
		{"negative resolution", square(10), -1, errors.ErrCodeInvalidInput},
		{"no pixels", square(1), 100, errors.ErrCodeDegenerateLayout},
		{"resolution too fine", square(10), 1e-6, errors.ErrCodeInvalidInput},
		{"just over the pixel limit", square(8189), 1, errors.ErrCodeInvalidInput},
		{"outline beyond int range", []Point{Pt(1e300, 1)}, 1, errors.ErrCodeInvalidInput},
		{"infinite vertex", []Point{Pt(math.Inf(1), 0)}, 1, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.outline, tt.res)
			if err == nil {
				t.Fatal("Fit() expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Fit() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestFitAtPixelLimit(t *testing.T) {
	tr, err := Fit(square(8188), 1)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if tr.SizeI*tr.SizeJ != MaxCanvasPixels {
		t.Errorf("size = %dx%d, want %d pixels", tr.SizeI, tr.SizeJ, MaxCanvasPixels)
	}
}

func TestWithPadding(t *testing.T) {
	base, err := Fit(square(10), 1)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		padding float64
		want    int
		code    errors.Code
	}{
		{"none", 0, 0, ""},
		{"two units", 2.5, 2, ""},
		{"largest that fits", 4000, 4000, ""},
		{"padded canvas over the limit", 5000, 0, errors.ErrCodeInvalidInput},
		{"beyond int range", 1e300, 0, errors.ErrCodeInvalidInput},
		{"infinite", math.Inf(1), 0, errors.ErrCodeInvalidInput},
		{"negative", -1, 0, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.WithPadding(tt.padding)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("WithPadding(%g) error = %v, want %s", tt.padding, err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("WithPadding(%g): %v", tt.padding, err)
			}
			if got.Padding != tt.want || got.SizeI != base.SizeI {
				t.Errorf("WithPadding(%g) = %+v, want padding %d", tt.padding, got, tt.want)
			}
		})
	}
}

func TestCheckPadding(t *testing.T) {
	tests := []struct {
		padding, res float64
		ok           bool
	}{
		{0, 0.1, true},
		{4096, 1, true},
		{4097, 1, false},
		{1, 1e-9, false},
		{1e300, 1, false},
		{-1, 1, false},
	}
	for _, tt := range tests {
		err := CheckPadding(tt.padding, tt.res)
		if (err == nil) != tt.ok {
			t.Errorf("CheckPadding(%g, %g) = %v, want ok=%v", tt.padding, tt.res, err, tt.ok)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("CheckPadding(%g, %g) code = %s", tt.padding, tt.res, errors.GetCode(err))
		}
	}
}

func TestPointsInsideBoxMapOntoCanvas(t *testing.T) {
	outline := []Point{Pt(0, 0), Pt(120, 0), Pt(120, 60), Pt(90, 75), Pt(0, 60)}
	for _, res := range []float64{0.1, 0.25, 0.5, 1, 2} {
		tr, err := Fit(outline, res)
		if err != nil {
			t.Fatalf("res %v: %v", res, err)
		}
		b := Bound(outline)
		for x := b.MinX; x <= b.MaxX; x += 2.5 {
			for y := b.MinY; y <= b.MaxY; y += 2.5 {
				p := tr.PhysicalToImage(x, y)
				if !tr.Contains(p) {
					t.Fatalf("res %v: (%v, %v) -> %v outside %v", res, x, y, p, tr.Bounds())
				}
			}
		}
	}
}

func TestConvertToImageCoordinates(t *testing.T) {
	tr, err := Fit(square(10), 1)
	if err != nil {
		t.Fatal(err)
	}
	col, row := ConvertToImageCoordinates(tr, 5, 3)
	if col != 7 || row != 9 {
		t.Errorf("ConvertToImageCoordinates(5, 3) = (%d, %d), want (7, 9)", col, row)
	}

	tr.Padding = 4
	if got := tr.PaddedImage(5, 3); got != image.Pt(11, 13) {
		t.Errorf("PaddedImage(5, 3) = %v, want (11,13)", got)
	}
	// Padding never changes the unpadded conversion.
	if c, r := ConvertToImageCoordinates(tr, 5, 3); c != col || r != row {
		t.Errorf("padding changed conversion: (%d, %d)", c, r)
	}
}

func TestPixels(t *testing.T) {
	tr := Transform{Resolution: 0.5}
	if got := tr.Pixels(3); got != 6 {
		t.Errorf("Pixels(3) = %d, want 6", got)
	}
	if got := tr.HalfPixels(3); got != 3 {
		t.Errorf("HalfPixels(3) = %d, want 3", got)
	}
	if got := tr.HalfPixels(0.7); got != 0 {
		t.Errorf("HalfPixels(0.7) = %d, want 0", got)
	}

	// Out-of-range lengths saturate instead of wrapping.
	if got := tr.Pixels(1e300); got != maxPixelCoord {
		t.Errorf("Pixels(1e300) = %d, want %d", got, maxPixelCoord)
	}
	if got := tr.HalfPixels(-1e300); got != -maxPixelCoord {
		t.Errorf("HalfPixels(-1e300) = %d, want %d", got, -maxPixelCoord)
	}
	if got := tr.Pixels(math.NaN()); got != 0 {
		t.Errorf("Pixels(NaN) = %d, want 0", got)
	}
	if i, j := PhysicalToGrid(1e300, -1e300, 0, 0, 1); i != maxPixelCoord || j != -maxPixelCoord {
		t.Errorf("PhysicalToGrid(±1e300) = (%d, %d)", i, j)
	}
}

func TestTransformJSON(t *testing.T) {
	tr := Transform{SizeI: 14, SizeJ: 12, Resolution: 0.5, OffsetX: 2, OffsetY: 3}
	data, err := json.Marshal(tr)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"size_i":14,"size_j":12,"resolution":0.5,"offset_x":2,"offset_y":3}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestPointJSON(t *testing.T) {
	var p Point
	if err := json.Unmarshal([]byte(`[12.5, -3]`), &p); err != nil {
		t.Fatal(err)
	}
	if p.X() != 12.5 || p.Y() != -3 {
		t.Errorf("Point = %v, want [12.5 -3]", p)
	}
}
