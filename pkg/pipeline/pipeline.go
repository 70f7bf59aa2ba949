// Package pipeline provides the load → render → encode pipeline for combview.
//
// This package is shared by the CLI and the HTTP API, so both apply the same
// defaults, validation, caching, and logging.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Fetch a layout document by name from a layout store
//  2. Render: Draw the layout onto a canvas (see pkg/render/frame)
//  3. Encode: Write the canvas as PNG, BMP, or TIFF
//
// The encoded image, its transform, and render statistics are cached
// together, keyed by the layout content and every render parameter.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, cache, nil, logger)
//	result, err := runner.Render(ctx, "frame_layout", pipeline.Options{
//	    Resolution: 0.1,
//	    ShowCells:  pipeline.Bool(true),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	col, row := geometry.ConvertToImageCoordinates(result.Transform, 12.5, 40)
package pipeline

import (
	"github.com/matzehuels/combview/pkg/cache"
	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/render/frame"
	"github.com/matzehuels/combview/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultResolution is the default number of physical units per pixel.
	DefaultResolution = 0.1

	// DefaultPadding is the default physical border around the canvas.
	DefaultPadding = 0.0

	// DefaultFormat is the default output format.
	DefaultFormat = string(sink.PNG)

	// DefaultLayout is the layout rendered when no name is given.
	DefaultLayout = layout.DefaultName
)

// =============================================================================
// Options - Render Parameters
// =============================================================================

// Options contains the render parameters. Toggles are pointers so that an
// unset toggle can be told apart from an explicit false; every category
// toggle defaults to true, display_names to true, and show_cells to false.
//
// The struct doubles as the [render] section of the config file.
type Options struct {
	Resolution float64 `json:"resolution,omitempty" toml:"resolution"`
	Padding    float64 `json:"padding,omitempty" toml:"padding"`
	Format     string  `json:"format,omitempty" toml:"format"`

	ShowOutline        *bool `json:"show_outline,omitempty" toml:"show_outline"`
	ShowCombOutline    *bool `json:"show_comb_outline,omitempty" toml:"show_comb_outline"`
	ShowScrews         *bool `json:"show_screws,omitempty" toml:"show_screws"`
	ShowGrooves        *bool `json:"show_grooves,omitempty" toml:"show_grooves"`
	ShowActuators      *bool `json:"show_actuators,omitempty" toml:"show_actuators"`
	ShowAccelerometers *bool `json:"show_accelerometers,omitempty" toml:"show_accelerometers"`
	ShowVLEDs          *bool `json:"show_vleds,omitempty" toml:"show_vleds"`
	ShowIRLEDs         *bool `json:"show_irleds,omitempty" toml:"show_irleds"`
	DisplayNames       *bool `json:"display_names,omitempty" toml:"display_names"`
	ShowCells          *bool `json:"show_cells,omitempty" toml:"show_cells"`

	// CellExclude lists accelerometer ids without a cell grid. Nil keeps
	// the renderer default.
	CellExclude []int `json:"cell_exclude,omitempty" toml:"cell_exclude"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty" toml:"-"`
}

// Bool returns a pointer to v, for filling toggle fields.
func Bool(v bool) *bool { return &v }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// toggle returns the field holding the visibility of c.
func (o *Options) toggle(c frame.Category) **bool {
	switch c {
	case frame.Outline:
		return &o.ShowOutline
	case frame.CombOutline:
		return &o.ShowCombOutline
	case frame.Screws:
		return &o.ShowScrews
	case frame.Grooves:
		return &o.ShowGrooves
	case frame.Actuators:
		return &o.ShowActuators
	case frame.Accelerometers:
		return &o.ShowAccelerometers
	case frame.VLEDs:
		return &o.ShowVLEDs
	case frame.IRLEDs:
		return &o.ShowIRLEDs
	}
	return nil
}

// Visible reports whether category c is drawn.
func (o *Options) Visible(c frame.Category) bool {
	if t := o.toggle(c); t != nil {
		return boolOr(*t, true)
	}
	return false
}

// SetVisible sets the toggle of category c. Unknown categories are ignored.
func (o *Options) SetVisible(c frame.Category, v bool) {
	if t := o.toggle(c); t != nil {
		*t = Bool(v)
	}
}

// Hidden returns the names of hidden categories in drawing order.
func (o *Options) Hidden() []string {
	var out []string
	for _, c := range frame.Categories() {
		if !o.Visible(c) {
			out = append(out, string(c))
		}
	}
	return out
}

// Labels reports whether id labels are drawn.
func (o *Options) Labels() bool { return boolOr(o.DisplayNames, true) }

// Cells reports whether the cell grid is drawn.
func (o *Options) Cells() bool { return boolOr(o.ShowCells, false) }

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults fills unset numeric and format fields.
func (o *Options) SetRenderDefaults() {
	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
}

// ValidateForRender applies defaults, normalizes the format, and checks
// every parameter.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := errors.ValidateResolution(o.Resolution); err != nil {
		return err
	}
	if err := geometry.CheckPadding(o.Padding, o.Resolution); err != nil {
		return err
	}
	f, err := sink.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = string(f)
	return nil
}

// FrameOptions converts the parameters for the renderer.
func (o *Options) FrameOptions() frame.Options {
	fo := frame.Options{
		Resolution:  o.Resolution,
		Padding:     o.Padding,
		HideLabels:  !o.Labels(),
		ShowCells:   o.Cells(),
		CellExclude: o.CellExclude,
	}
	if hidden := o.Hidden(); len(hidden) > 0 {
		fo.Hidden = make(map[frame.Category]bool, len(hidden))
		for _, h := range hidden {
			fo.Hidden[frame.Category(h)] = true
		}
	}
	return fo
}

// ArtifactKeyOpts returns cache key options for the encoded image.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	exclude := o.CellExclude
	if exclude == nil {
		exclude = frame.DefaultCellExclude
	}
	return cache.ArtifactKeyOpts{
		Format:       o.Format,
		Resolution:   o.Resolution,
		Padding:      o.Padding,
		Hidden:       o.Hidden(),
		DisplayNames: o.Labels(),
		ShowCells:    o.Cells(),
		CellExclude:  exclude,
	}
}

// TransformKeyOpts returns cache key options for the transform.
func (o *Options) TransformKeyOpts() cache.TransformKeyOpts {
	return cache.TransformKeyOpts{
		Resolution: o.Resolution,
		Padding:    o.Padding,
	}
}
