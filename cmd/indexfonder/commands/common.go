package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"indexfonder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	JSONLog bool             `name:"json-log" help:"Emit logs as JSON"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
	Check  CheckCmd  `cmd:"" help:"Validate the configuration and show a summary"`
	Emit   EmitCmd   `cmd:"" help:"Emit the framework-facing build configuration as JSON"`
	Update UpdateCmd `cmd:"" help:"Refresh the fund dataset once"`
	Daemon DaemonCmd `cmd:"" help:"Run scheduled fund dataset refreshes"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if c.JSONLog {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
