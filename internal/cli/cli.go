package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/combview/pkg/buildinfo"
	"github.com/matzehuels/combview/pkg/config"
	"github.com/matzehuels/combview/pkg/observability"
	"github.com/matzehuels/combview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    &config.Config{},
	}
}

// SetLogLevel updates the logger's level. At debug level pipeline and
// cache events are logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := &logHooks{logger: c.Logger}
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "combview renders frame layouts as annotated raster images",
		Long: `combview draws the outline, comb outline, screws, grooves, actuators,
accelerometers and LEDs of a frame layout onto a raster canvas, and maps
physical coordinates onto the pixels of the rendered image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/combview/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.specsCommand())
	root.AddCommand(c.layoutsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.Store.Dir == "" {
		if dir, err := config.LayoutsDir(); err == nil {
			cfg.Store.Dir = dir
		}
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the loaded config. The caller
// must call the returned release function.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, func(), error) {
	s, storeCloser, err := c.cfg.Store.OpenStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	cacheCfg := c.cfg.Cache
	if noCache {
		cacheCfg.Disabled = true
	}
	fallback, err := config.CacheDir()
	if err != nil {
		fallback = ""
	}
	ch, err := cacheCfg.OpenCache(ctx, fallback)
	if err != nil {
		storeCloser.Close()
		return nil, nil, err
	}

	runner := pipeline.NewRunner(s, ch, cacheCfg.Keyer(), c.Logger)
	release := func() {
		if err := runner.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
		if err := storeCloser.Close(); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}
	return runner, release, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/combview/).
func cacheDir() (string, error) {
	return config.CacheDir()
}
