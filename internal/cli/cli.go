package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/svgbudget/pkg/buildinfo"
	"github.com/matzehuels/svgbudget/pkg/cache"
	"github.com/matzehuels/svgbudget/pkg/config"
	"github.com/matzehuels/svgbudget/pkg/pipeline"
	"github.com/matzehuels/svgbudget/pkg/store"
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
	verbose    bool
	cfg        *config.File
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "svgbudget generates SVG scenes and squeezes them under a byte budget",
		Long: `svgbudget composes layered SVG scenes from declarative scene files and
brings any SVG document under a size budget by escalating through
progressively more aggressive optimization levels.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/svgbudget/config.toml)")

	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once per process.
func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = cfg
	return nil
}

func (c *CLI) settings() *config.File {
	if c.cfg == nil {
		return &config.File{}
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// backendFlags switch off the cache or history for one invocation.
type backendFlags struct {
	noCache   bool
	noHistory bool
}

func (b *backendFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&b.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&b.noHistory, "no-history", false, "do not record the run in the history")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, b backendFlags) (*pipeline.Runner, error) {
	cfg := c.settings()

	ch, err := c.newCache(ctx, b.noCache)
	if err != nil {
		return nil, err
	}

	var st store.Store = store.Discard{}
	if !b.noHistory {
		sc, err := cfg.StoreConfig()
		if err != nil {
			ch.Close()
			return nil, fmt.Errorf("history location: %w", err)
		}
		st, err = store.Open(ctx, sc)
		if err != nil {
			ch.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
	}

	runner := pipeline.NewRunner(ch, nil, st, loggerFromContext(ctx))
	runner.TTL, _ = cfg.CacheTTL()
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := c.settings().CacheConfig()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return ch, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// optimizeFlags are the pipeline options settable on the command line.
type optimizeFlags struct {
	budgetKB   float64
	profile    string
	noGroup    bool
	namespaces []string
	refresh    bool
}

func (o *optimizeFlags) register(fs *pflag.FlagSet) {
	fs.Float64VarP(&o.budgetKB, "budget", "b", pipeline.DefaultBudgetKB, "size budget in kilobytes")
	fs.StringVarP(&o.profile, "profile", "p", pipeline.DefaultProfile, "optimization profile: competition, basic")
	fs.BoolVar(&o.noGroup, "no-group", false, "keep paint order by skipping style grouping")
	fs.StringSliceVar(&o.namespaces, "strip-ns", nil, "editor namespace prefixes to strip (default: built-in list)")
	fs.BoolVar(&o.refresh, "refresh", false, "ignore cached results")
}

// options merges the config file with the flags that were set explicitly.
func (c *CLI) options(cmd *cobra.Command, o optimizeFlags) pipeline.Options {
	opts := c.settings().Options()
	fs := cmd.Flags()
	if fs.Changed("budget") {
		opts.BudgetKB = o.budgetKB
	}
	if fs.Changed("profile") {
		opts.Profile = o.profile
	}
	if fs.Changed("no-group") {
		opts.DisableGrouping = o.noGroup
	}
	if fs.Changed("strip-ns") {
		opts.Namespaces = o.namespaces
	}
	opts.Refresh = o.refresh
	opts.Logger = c.Logger
	return opts
}

// =============================================================================
// File Helpers
// =============================================================================

// readInput reads a file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeOutput writes text to path, or stdout for "-".
func writeOutput(path, text string) error {
	if path == "-" {
		_, err := io.WriteString(os.Stdout, text)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// deriveOutput replaces the extension of input with suffix.
func deriveOutput(input, suffix string) string {
	if input == "-" {
		return "-"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}
