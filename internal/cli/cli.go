// Package cli implements the firstissue command-line interface.
//
// This package provides commands for searching GitHub for beginner-friendly
// issues, browsing the aggregated results interactively, serving them over a
// local HTTP API, and managing configuration and the response cache. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - search: Run an issue search and browse aggregated repositories
//   - serve: Expose the search engine as a local JSON API
//   - config: Inspect and update the stored labels and token
//   - cache: Manage the response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/quantumpixelator/firstissue/pkg/buildinfo"
	"github.com/quantumpixelator/firstissue/pkg/cache"
	"github.com/quantumpixelator/firstissue/pkg/config"
	"github.com/quantumpixelator/firstissue/pkg/github"
	"github.com/quantumpixelator/firstissue/pkg/search"
)

// appName is the application name used for directories and display.
const appName = "firstissue"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// configPath is where the config was loaded from and gets saved to.
	configPath string
}

// New creates a new CLI instance with a default logger and the user's
// stored configuration. A missing or broken config file falls back to
// defaults; the CLI must always start.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}

	path, err := config.Path()
	if err == nil {
		c.configPath = path
		if cfg, err := config.Load(path); err == nil {
			c.Config = cfg
			return c
		} else {
			c.Logger.Warn("config file unreadable, using defaults", "path", path, "err", err)
		}
	}
	c.Config = config.Default()
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Find open-source repositories with beginner-friendly issues",
		Long:         `firstissue searches GitHub for open beginner-friendly issues and aggregates them into a ranked list of repositories, so new contributors can find active projects to work on.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newEngine builds a search engine from the effective token and cache
// selection.
func (c *CLI) newEngine(ctx context.Context, tokenFlag string, noCache bool) *search.Engine {
	token := config.ResolveToken(tokenFlag, c.Config)
	client := github.NewClient(token, c.newCache(ctx, noCache))
	return search.NewEngine(client, c.Logger)
}

// newCache selects the cache backend: null when disabled, redis when
// configured, file otherwise. Backend failures degrade to a null cache
// instead of failing the command; caching is an optimization here.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	if c.Config.Cache.Backend == "redis" && c.Config.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.Config.Cache.RedisAddr})
		if err == nil {
			return rc
		}
		c.Logger.Warn("redis cache unavailable, falling back to file cache", "err", err)
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/firstissue/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
