package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/combview/pkg/errors"
	"github.com/matzehuels/combview/pkg/layout"
	"github.com/matzehuels/combview/pkg/layout/store"
)

// layoutsCommand creates the layout management command.
func (c *CLI) layoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "layouts",
		Aliases: []string{"layout"},
		Short:   "List, show, and import frame layouts",
	}

	cmd.AddCommand(c.layoutsListCommand())
	cmd.AddCommand(c.layoutsShowCommand())
	cmd.AddCommand(c.layoutsImportCommand())

	return cmd
}

// layoutsListCommand creates the "layouts list" subcommand.
func (c *CLI) layoutsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available layouts with entity counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, release, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer release()

			names, err := runner.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No layouts found")
				return nil
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				doc, _, err := runner.Load(ctx, name)
				if err != nil {
					rows = append(rows, []string{name, "-", "-", "-", "-", StyleWarning.Render(string(errors.GetCode(err)))})
					continue
				}
				n := doc.Counts()
				rows = append(rows, []string{
					name,
					fmt.Sprint(n["outline"]),
					fmt.Sprint(n["accelerometers"]),
					fmt.Sprint(n["actuators"]),
					fmt.Sprint(n["led_red"] + n["led_ir"]),
					"",
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Layout", "Vertices", "Accel", "Actuators", "LEDs", "").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return StyleHighlight
					}
					return StyleValue
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

// layoutsShowCommand creates the "layouts show" subcommand.
func (c *CLI) layoutsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a layout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, release, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer release()

			doc, _, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			return layout.WriteJSON(doc, cmd.OutOrStdout())
		},
	}
}

// layoutsImportCommand creates the "layouts import" subcommand.
func (c *CLI) layoutsImportCommand() *cobra.Command {
	var (
		name    string
		toMongo bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a layout file and add it to the store",
		Example: `  combview layouts import ./bench.json
  combview layouts import ./bench.json --name bench-v2 --mongo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := layout.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			ctx := cmd.Context()
			w, where, closeFn, err := c.layoutWriter(ctx, toMongo)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := w.Save(ctx, name, doc); err != nil {
				return err
			}
			printSuccess("Imported %s", StyleHighlight.Render(name))
			printDetail("Store: %s", where)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "layout name (default: file name without extension)")
	cmd.Flags().BoolVar(&toMongo, "mongo", false, "save to the configured MongoDB store instead of the layout directory")
	return cmd
}

// layoutWriter opens the store that import writes to.
func (c *CLI) layoutWriter(ctx context.Context, toMongo bool) (store.Writer, string, func(), error) {
	sc := c.cfg.Store
	if toMongo {
		if sc.MongoURI == "" {
			return nil, "", nil, errors.New(errors.ErrCodeInvalidInput, "no mongo_uri in the [store] config")
		}
		ms, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:        sc.MongoURI,
			Database:   sc.MongoDatabase,
			Collection: sc.MongoCollection,
		})
		if err != nil {
			return nil, "", nil, err
		}
		closeFn := func() {
			if err := ms.Close(ctx); err != nil {
				c.Logger.Warn("close store", "err", err)
			}
		}
		return ms, "mongodb", closeFn, nil
	}

	fs, err := store.NewFileStore(sc.Dir)
	if err != nil {
		return nil, "", nil, err
	}
	return fs, fs.Dir(), func() {}, nil
}
