package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/combview/internal/server"
	"github.com/matzehuels/combview/pkg/config"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Long: `Serve exposes the layouts in the configured store over HTTP:

  GET /v1/layouts
  GET /v1/layouts/{name}/render?format=png&resolution=0.1&hide=screws&cells=true
  GET /v1/layouts/{name}/transform
  GET /v1/layouts/{name}/convert?x=..&y=..
  GET /v1/layouts/{name}/specs/{section}
  GET /healthz

Render parameters missing from a request come from the [render] config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") && c.cfg.Server.Addr != "" {
				addr = c.cfg.Server.Addr
			}

			runner, release, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer release()

			srv := server.New(runner, c.cfg.Render, c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	return cmd
}
