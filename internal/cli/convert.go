package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/geometry"
	"github.com/matzehuels/combview/pkg/pipeline"
)

// convertResult is printed by convert --json.
type convertResult struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Col    int     `json:"col"`
	Row    int     `json:"row"`
	Inside bool    `json:"inside"`
}

// convertCommand creates the convert command, which maps physical points
// onto image pixels.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		flags         renderFlags
		layoutName    string
		transformPath string
		padded        bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "convert X Y [X Y ...]",
		Short: "Map physical coordinates onto image pixels",
		Long: `Convert maps physical (x, y) points onto (col, row) pixels of a rendered
image. The transform comes from a sidecar written by render (--transform),
or is recomputed from the layout and resolution.`,
		Example: `  combview convert 12.5 40 --transform frame_layout.png.transform.json
  combview convert 0 0 100 50 --layout bench -r 0.05`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected pairs of coordinates, got %d values", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pts, err := parsePoints(args)
			if err != nil {
				return err
			}

			var t geometry.Transform
			if transformPath != "" {
				t, err = readTransform(transformPath)
			} else {
				opts := c.cfg.Render
				if err := flags.apply(cmd, &opts); err != nil {
					return err
				}
				t, err = c.computeTransform(cmd.Context(), layoutName, opts)
			}
			if err != nil {
				return err
			}

			results := make([]convertResult, len(pts))
			for i, p := range pts {
				img := t.PhysicalToImage(p[0], p[1])
				results[i] = convertResult{X: p[0], Y: p[1], Col: img.X, Row: img.Y, Inside: t.Contains(img)}
				if padded {
					q := t.PaddedImage(p[0], p[1])
					results[i].Col, results[i].Row = q.X, q.Y
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				line := fmt.Sprintf("(%g, %g) %s (%d, %d)", r.X, r.Y, iconArrow, r.Col, r.Row)
				if !r.Inside {
					line += " " + StyleWarning.Render("outside")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&layoutName, "layout", "l", pipeline.DefaultLayout, "layout used to recompute the transform")
	cmd.Flags().StringVarP(&transformPath, "transform", "t", "", "transform sidecar written by render")
	cmd.Flags().BoolVar(&padded, "padded", false, "address the padded image instead of the drawing area")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

func (c *CLI) computeTransform(ctx context.Context, name string, opts pipeline.Options) (geometry.Transform, error) {
	runner, release, err := c.newRunner(ctx, false)
	if err != nil {
		return geometry.Transform{}, err
	}
	defer release()
	return runner.Transform(ctx, name, opts)
}

// parsePoints reads coordinate pairs.
func parsePoints(args []string) ([][2]float64, error) {
	pts := make([][2]float64, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		var p [2]float64
		for k := range 2 {
			v, err := strconv.ParseFloat(args[i+k], 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "%q is not a number", args[i+k])
			}
			p[k] = v
		}
		pts = append(pts, p)
	}
	return pts, nil
}
