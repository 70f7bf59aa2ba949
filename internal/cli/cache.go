package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/combview/pkg/cache"
	"github.com/matzehuels/combview/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached images and transforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			dir, err := cacheDir()
			if err != nil {
				dir = ""
			}
			ch, err := c.cfg.Cache.OpenCache(ctx, dir)
			if err != nil {
				return err
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled")
				return nil
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			logger.Debug("cache cleared", "backend", fmt.Sprintf("%T", ch))

			printSuccess("Cleared cache")
			printDetail("Location: %s", cacheLocation(ch))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := c.cfg.Cache
			switch {
			case cc.Disabled:
				return errors.New(errors.ErrCodeUnsupported, "cache is disabled in the config")
			case cc.RedisAddr != "":
				fmt.Fprintf(cmd.OutOrStdout(), "redis://%s/%d\n", cc.RedisAddr, cc.RedisDB)
				return nil
			case cc.Dir != "":
				fmt.Fprintln(cmd.OutOrStdout(), cc.Dir)
				return nil
			}
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheLocation describes where ch keeps its entries.
func cacheLocation(ch cache.Cache) string {
	if fc, ok := ch.(*cache.FileCache); ok {
		return fc.Dir()
	}
	return "redis"
}
