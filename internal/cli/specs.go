package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/pipeline"
)

// specsCommand creates the specs command, which prints one raw layout
// section as JSON.
func (c *CLI) specsCommand() *cobra.Command {
	var layoutName string

	cmd := &cobra.Command{
		Use:       "specs SECTION",
		Short:     "Print a layout section as JSON",
		Long:      "Specs prints the accelerometers, actuators, or leds section of a layout.",
		Example:   "  combview specs accelerometers --layout bench",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: layout.SpecSections,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, release, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer release()

			v, err := runner.Specs(ctx, layoutName, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}

	cmd.Flags().StringVarP(&layoutName, "layout", "l", pipeline.DefaultLayout, "layout name")
	return cmd
}
