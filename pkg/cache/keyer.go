package cache

import (
	"slices"
)

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies an encoded render of one layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// TransformKey identifies the transform of one layout.
	TransformKey(layoutHash string, opts TransformKeyOpts) string
}

// ArtifactKeyOpts are the render parameters that change the output image.
type ArtifactKeyOpts struct {
	Format       string   `json:"format"`
	Resolution   float64  `json:"resolution"`
	Padding      float64  `json:"padding"`
	Hidden       []string `json:"hidden,omitempty"`
	DisplayNames bool     `json:"display_names"`
	ShowCells    bool     `json:"show_cells"`
	CellExclude  []int    `json:"cell_exclude,omitempty"`
}

// TransformKeyOpts are the parameters that change the transform.
type TransformKeyOpts struct {
	Resolution float64 `json:"resolution"`
	Padding    float64 `json:"padding"`
}

// DefaultKeyer hashes the key parts with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer. The order of Hidden and CellExclude does
// not affect the key.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	opts.Hidden = sorted(opts.Hidden)
	opts.CellExclude = sorted(opts.CellExclude)
	return hashKey("artifact", layoutHash, opts)
}

// TransformKey implements Keyer.
func (DefaultKeyer) TransformKey(layoutHash string, opts TransformKeyOpts) string {
	return hashKey("transform", layoutHash, opts)
}

func sorted[T int | string](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	s = slices.Clone(s)
	slices.Sort(s)
	return s
}

var _ Keyer = DefaultKeyer{}
