// Package cli implements the adjid command-line interface.
//
// This package provides commands for computing distances between causal
// graphs, rendering graph comparisons, serving the HTTP API, and managing
// the result cache and persisted runs. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compute: Compute a distance between a truth and a guess graph
//   - render: Draw a graph or a truth/guess comparison
//   - serve: Run the HTTP API
//   - cache: Manage the distance result cache
//   - runs: List, show and delete persisted runs
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
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

	"github.com/causalbench/adjid/pkg/buildinfo"
	"github.com/causalbench/adjid/pkg/cache"
	"github.com/causalbench/adjid/pkg/pipeline"
	"github.com/causalbench/adjid/pkg/results"
)

// appName is the application name used for directories and display.
const appName = "adjid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config
}

// New creates a new CLI instance with a default logger and the loaded
// config file (or defaults when no config file exists).
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfigOrDefault(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "adjid computes adjustment identification distances between causal DAGs",
		Long:         `adjid compares a hypothesized causal DAG against a reference DAG using adjustment-based distances (parent-AID, ancestor-AID, oset-AID, SID) and the structural Hamming distance.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Attach the logger to the command context so subcommands and the
	// packages they call can retrieve it without threading it explicitly.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.computeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.RedisAddr != "" {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
	}
	dir, err := cacheDir(c.Config)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore creates the run store per config. Returns nil when persistence
// is disabled.
func (c *CLI) newStore(ctx context.Context) (results.Store, error) {
	switch c.Config.Store.Backend {
	case "", StoreBackendFile:
		return results.NewFileStore(c.Config.Store.Dir)
	case StoreBackendMongo:
		return results.NewMongoStore(ctx, c.Config.Store.MongoURI, c.Config.Store.MongoDatabase, c.Config.Store.MongoCollection)
	case StoreBackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want file, mongo or none)", c.Config.Store.Backend)
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/adjid/).
func cacheDir(cfg *Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
