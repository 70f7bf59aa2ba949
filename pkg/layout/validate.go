package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
)

// Validate checks that every coordinate is finite and that no radius or
// extent is negative. It returns an INVALID_LAYOUT error naming the first
// offending entity.
//
// An empty outline passes validation; it is reported when sizing the
// canvas instead.
func (d *Document) Validate() error {
	for i, v := range d.Outline {
		if err := checkPoint(v.Pos); err != nil {
			return invalid("outline", i, err)
		}
	}
	for i, v := range d.CombOutline {
		if err := checkPoint(v.Pos); err != nil {
			return invalid("outline_comb", i, err)
		}
	}
	for i, s := range d.Screws {
		if err := checkCircle(s.Pos, s.Radius); err != nil {
			return invalid("screws", i, err)
		}
	}
	for i, g := range d.Grooves {
		if err := checkRect(g.Pos, g.WH); err != nil {
			return invalid("grooves", i, err)
		}
	}
	for i, a := range d.Actuators {
		if err := checkCircle(a.Pos, a.Radius); err != nil {
			return invalid("actuators", i, err)
		}
	}
	for i, a := range d.Accelerometers {
		if err := checkRect(a.Pos, a.WH); err != nil {
			return invalid("accelerometers", i, err)
		}
	}
	for i, l := range d.VisibleLEDs {
		if err := checkRect(l.Pos, l.WH); err != nil {
			return invalid("led_red", i, err)
		}
	}
	for i, l := range d.InfraredLEDs {
		if err := checkCircle(l.Pos, l.Radius); err != nil {
			return invalid("led_ir", i, err)
		}
	}
	return nil
}

func invalid(section string, index int, cause error) error {
	return errors.Wrap(errors.ErrCodeInvalidLayout, cause, "%s[%d]", section, index)
}

func checkPoint(p geometry.Point) error {
	if !finite(p.X()) || !finite(p.Y()) {
		return fmt.Errorf("position %v is not finite", p)
	}
	return nil
}

func checkCircle(p geometry.Point, r float64) error {
	if err := checkPoint(p); err != nil {
		return err
	}
	if !finite(r) || r < 0 {
		return fmt.Errorf("radius %g must be finite and non-negative", r)
	}
	return nil
}

func checkRect(p geometry.Point, wh geometry.Size) error {
	if err := checkPoint(p); err != nil {
		return err
	}
	if !finite(wh.W()) || !finite(wh.H()) || wh.W() < 0 || wh.H() < 0 {
		return fmt.Errorf("extent %v must be finite and non-negative", wh)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
