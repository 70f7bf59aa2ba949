package layout

import (
	"bytes"
	_ "embed"
)

// DefaultName is the name the default layout is known by in every store.
const DefaultName = "frame_layout"

//go:embed frame_layout.json
var defaultJSON []byte

// Default decodes the layout compiled into the binary. Each call returns a
// fresh document.
func Default() (*Document, error) {
	return ReadJSON(bytes.NewReader(defaultJSON))
}

// DefaultJSON returns the raw bytes of the compiled-in layout.
func DefaultJSON() []byte {
	return bytes.Clone(defaultJSON)
}
