// Package commands implements the docmerge subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docmerge/internal/config"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Settings string           `short:"s" help:"Settings document (default: ./docmerge.yaml when present)" type:"path"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Merge the input tree into <output>/index.md"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild whenever the input tree or settings change"`
	Init    InitCmd    `cmd:"" help:"Write an example settings document"`
	Verify  VerifyCmd  `cmd:"" help:"Check that in-page file links in a merged document have anchors"`
	History HistoryCmd `cmd:"" help:"List recorded runs"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level, err := logLevel(c.Verbose, os.Getenv(config.LogLevelEnv))
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// logLevel picks debug for -v; a non-empty env value wins over both.
func logLevel(verbose bool, env string) (slog.Level, error) {
	if env != "" {
		level, err := config.ParseLogLevel(env)
		if err != nil {
			return slog.LevelInfo, fmt.Errorf("%s: %w", config.LogLevelEnv, err)
		}
		return level, nil
	}
	if verbose {
		return slog.LevelDebug, nil
	}
	return slog.LevelInfo, nil
}

// settingsPath is the document init writes to and build reads from.
func (c *CLI) settingsPath() string {
	if c.Settings != "" {
		return c.Settings
	}
	return config.DefaultPath
}
