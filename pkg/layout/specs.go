package layout

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/combview/pkg/errors"
)

// Spec section names accepted by [Document.Spec].
const (
	SectionAccelerometers = "accelerometers"
	SectionActuators      = "actuators"
	SectionLEDs           = "leds"
)

// SpecSections lists the sections [Document.Spec] can return.
var SpecSections = []string{SectionAccelerometers, SectionActuators, SectionLEDs}

// LEDSpecs groups both LED sections.
type LEDSpecs struct {
	VLEDs  []VisibleLED  `json:"vleds"`
	IRLEDs []InfraredLED `json:"irleds"`
}

// AccelerometerSpecs returns the accelerometers section as stored.
func (d *Document) AccelerometerSpecs() []Accelerometer { return d.Accelerometers }

// ActuatorSpecs returns the actuators section as stored.
func (d *Document) ActuatorSpecs() []Actuator { return d.Actuators }

// LEDSpecs returns the led_red and led_ir sections.
func (d *Document) LEDSpecs() LEDSpecs {
	return LEDSpecs{VLEDs: d.VisibleLEDs, IRLEDs: d.InfraredLEDs}
}

// Spec returns one subsection by name as JSON. Documents read with
// [ReadJSON] return the section as stored, including keys the typed
// accessors drop; "leds" wraps led_red and led_ir as {"vleds", "irleds"}.
// Unknown names yield an INVALID_INPUT error.
func (d *Document) Spec(section string) (json.RawMessage, error) {
	var v any
	switch section {
	case SectionAccelerometers:
		v = d.section(keyAccelerometers, d.Accelerometers)
	case SectionActuators:
		v = d.section(keyActuators, d.Actuators)
	case SectionLEDs:
		v = struct {
			VLEDs  any `json:"vleds"`
			IRLEDs any `json:"irleds"`
		}{d.section(keyVisibleLEDs, d.VisibleLEDs), d.section(keyInfraredLEDs, d.InfraredLEDs)}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown section %q (want one of %v)", section, slices.Clone(SpecSections))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", section, err)
	}
	return data, nil
}
