package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/combview/pkg/errors"
)

// ReadJSON decodes a layout document from r and validates it.
//
// Missing sections decode as empty. Unknown top-level keys are ignored so
// that layouts carrying extra metadata still load. The accelerometer,
// actuator and LED sections are also kept verbatim for [Document.Spec].
//
// A malformed document yields a LAYOUT_PARSE_ERROR; a well-formed document
// with impossible geometry yields the INVALID_LAYOUT error from
// [Document.Validate]. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutParse, err, "decode layout")
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutParse, err, "decode layout")
	}
	for _, key := range rawSections {
		if v, ok := sections[key]; ok {
			if doc.raw == nil {
				doc.raw = make(map[string]json.RawMessage, len(rawSections))
			}
			doc.raw[key] = v
		}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Keys of the sections kept verbatim.
const (
	keyAccelerometers = "accelerometers"
	keyActuators      = "actuators"
	keyVisibleLEDs    = "led_red"
	keyInfraredLEDs   = "led_ir"
)

var rawSections = []string{keyAccelerometers, keyActuators, keyVisibleLEDs, keyInfraredLEDs}

// section returns the verbatim section under key when the document was
// decoded from JSON, and typed otherwise.
func (d *Document) section(key string, typed any) any {
	if v, ok := d.raw[key]; ok {
		return v
	}
	return typed
}

// MarshalJSON encodes the document, writing the verbatim sections in place
// of their typed form.
func (d *Document) MarshalJSON() ([]byte, error) {
	type sections Document
	return json.Marshal(struct {
		*sections
		Accelerometers any `json:"accelerometers"`
		Actuators      any `json:"actuators"`
		VisibleLEDs    any `json:"led_red"`
		InfraredLEDs   any `json:"led_ir"`
	}{
		sections:       (*sections)(d),
		Accelerometers: d.section(keyAccelerometers, d.Accelerometers),
		Actuators:      d.section(keyActuators, d.Actuators),
		VisibleLEDs:    d.section(keyVisibleLEDs, d.VisibleLEDs),
		InfraredLEDs:   d.section(keyInfraredLEDs, d.InfraredLEDs),
	})
}

// ImportJSON reads the layout file at path. A missing file yields a
// LAYOUT_NOT_FOUND error; everything else behaves like [ReadJSON].
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeLayoutNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes d as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
