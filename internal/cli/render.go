package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/pipeline"
	"github.com/matzehuels/combview/pkg/render/frame"
	"github.com/matzehuels/combview/pkg/render/sink"
)

// transformSuffix is appended to an image path to name its transform sidecar.
const transformSuffix = ".transform.json"

// renderFlags holds the command-line flags shared by commands that take
// render parameters. Flags override the [render] section of the config
// only when set explicitly.
type renderFlags struct {
	format     string
	resolution float64
	padding    float64
	hide       []string
	show       []string
	names      bool
	cells      bool
	exclude    []int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", pipeline.DefaultFormat, "output format: png, bmp, tiff")
	cmd.Flags().Float64VarP(&f.resolution, "resolution", "r", pipeline.DefaultResolution, "physical units per pixel")
	cmd.Flags().Float64Var(&f.padding, "padding", pipeline.DefaultPadding, "physical border added around the canvas")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "categories to hide: "+categoryList())
	cmd.Flags().StringSliceVar(&f.show, "show", nil, "categories to show, overriding the config")
	cmd.Flags().BoolVar(&f.names, "names", true, "draw id labels")
	cmd.Flags().BoolVar(&f.cells, "cells", false, "draw the accelerometer cell grid")
	cmd.Flags().IntSliceVar(&f.exclude, "exclude", nil, "accelerometer ids without a cell grid (default 5,7)")
}

// apply overlays the explicitly set flags onto opts.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Format = f.format
	}
	if changed("resolution") {
		opts.Resolution = f.resolution
	}
	if changed("padding") {
		opts.Padding = f.padding
	}
	for _, name := range f.hide {
		c, ok := frame.ParseCategory(strings.TrimSpace(name))
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown category %q (want one of %s)", name, categoryList())
		}
		opts.SetVisible(c, false)
	}
	for _, name := range f.show {
		c, ok := frame.ParseCategory(strings.TrimSpace(name))
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown category %q (want one of %s)", name, categoryList())
		}
		opts.SetVisible(c, true)
	}
	if changed("names") {
		opts.DisplayNames = pipeline.Bool(f.names)
	}
	if changed("cells") {
		opts.ShowCells = pipeline.Bool(f.cells)
	}
	if changed("exclude") {
		opts.CellExclude = append([]int{}, f.exclude...)
	}
	return nil
}

func categoryList() string {
	cats := frame.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags       renderFlags
		output      string
		refresh     bool
		noCache     bool
		interactive bool
		noTransform bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout]",
		Short: "Render a frame layout to an image",
		Long: `Render draws a stored layout (default: frame_layout) and writes the image
together with a transform sidecar (<output>.transform.json) that the
convert command uses to map physical points onto the image.`,
		Example: `  combview render
  combview render bench -o bench.tiff --cells --hide screws,grooves
  combview render -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := pipeline.DefaultLayout
			if len(args) == 1 {
				name = args[0]
			}

			opts := c.cfg.Render
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			if output != "" && !cmd.Flags().Changed("format") {
				if f, err := sink.ParseFormat(filepath.Ext(output)); err == nil {
					opts.Format = string(f)
				}
			}
			opts.Refresh = refresh

			return c.runRender(cmd.Context(), name, output, opts, renderRun{
				noCache:     noCache,
				interactive: interactive,
				transform:   !noTransform,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <layout>.<format>)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached images")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick layers interactively before rendering")
	cmd.Flags().BoolVar(&noTransform, "no-transform", false, "do not write the transform sidecar")

	return cmd
}

type renderRun struct {
	noCache     bool
	interactive bool
	transform   bool
}

func (c *CLI) runRender(ctx context.Context, name, output string, opts pipeline.Options, run renderRun) error {
	runner, release, err := c.newRunner(ctx, run.noCache)
	if err != nil {
		return err
	}
	defer release()

	if run.interactive {
		doc, _, err := runner.Load(ctx, name)
		if err != nil {
			return err
		}
		ok, err := pickCategories(&opts, doc)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Cancelled")
			return nil
		}
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", name))
	spinner.Start()
	res, err := runner.Render(ctx, name, opts)
	if err != nil {
		spinner.StopWithError("Render failed: " + name)
		return err
	}
	spinner.StopWithSuccess("Rendered " + StyleHighlight.Render(name))
	prog.done("Rendered " + name)
	c.Logger.Debug("render finished", "render_id", res.RenderID, "cache_hit", res.CacheHit,
		"load", res.Timing.Load, "render", res.Timing.Render, "encode", res.Timing.Encode)

	if output == "" {
		output = name + res.Format.Ext()
	}
	if err := writeFile(output, res.Data); err != nil {
		return err
	}
	printFile(output)
	if run.transform {
		path := output + transformSuffix
		if err := writeTransform(path, res.Transform); err != nil {
			return err
		}
		printFile(path)
	}
	printRenderStats(res)
	if res.Stats.Clipped > 0 {
		printWarning("%d entities lie outside the outline and were clipped", res.Stats.Clipped)
	}
	if run.transform {
		printNextStep("Map a point", fmt.Sprintf("%s convert X Y --transform %s", appName, output+transformSuffix))
	}
	return nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func writeTransform(path string, t geometry.Transform) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}

func readTransform(path string) (geometry.Transform, error) {
	var t geometry.Transform
	data, err := os.ReadFile(path)
	if err != nil {
		return t, errors.Wrap(errors.ErrCodeInvalidPath, err, "read transform %s", path)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return t, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode transform %s", path)
	}
	if err := errors.ValidateResolution(t.Resolution); err != nil {
		return t, err
	}
	return t, nil
}
