package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/artkit/pkg/buildinfo"
	"github.com/matzehuels/artkit/pkg/cache"
	"github.com/matzehuels/artkit/pkg/config"
	"github.com/matzehuels/artkit/pkg/ops"
	"github.com/matzehuels/artkit/pkg/pipeline"
	"github.com/matzehuels/artkit/pkg/prefs"
)

// appName is the application name used for directories and display.
const appName = "artkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
	Prefs  *prefs.Store

	configPath string
	prefsDir   string
	noCache    bool
	noPrefs    bool
}

// New creates a new CLI instance with a default logger and built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "artkit edits vector artwork documents from the command line",
		Long: `artkit measures, aligns, resizes and recolors the selection of a vector
artwork document, converts units, simulates color vision deficiencies,
builds shapes from point sets and renders previews and CAD exports.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/artkit/config.toml)")
	root.PersistentFlags().StringVar(&c.prefsDir, "prefs-dir", "", "preferences directory (default $XDG_CONFIG_HOME/artkit/prefs)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")
	root.PersistentFlags().BoolVar(&c.noPrefs, "no-prefs", false, "neither read nor save last used options")

	root.AddCommand(c.boundsCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.fitArtboardCommand())
	root.AddCommand(c.polygonCommand())
	root.AddCommand(c.smoothCommand())
	root.AddCommand(c.scatterCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.prefsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and opens the preferences store, then
// attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}

	if !c.noPrefs {
		store, err := prefs.NewStore(c.prefsDir)
		if err != nil {
			c.Logger.Warn("preferences disabled", "error", err)
		}
		c.Prefs = store
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// newOpsRunner creates an operation runner for CLI use.
func (c *CLI) newOpsRunner() *ops.Runner {
	return ops.NewRunner(c.Logger)
}

// newRunner creates a render pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	ch, err := c.newCache()
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheNamespace())
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache || !c.Config.Cache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}
