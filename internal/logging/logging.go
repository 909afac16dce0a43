// Package logging builds the hclog loggers shared by the CLI and the server.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options configures a logger.
type Options struct {
	// Name is the logger name printed with every line.
	Name string

	// Level is an hclog level name (trace, debug, info, warn, error, off).
	// Verbose and Quiet take precedence when set.
	Level string

	// Verbose enables debug output.
	Verbose bool

	// Quiet suppresses everything below errors.
	Quiet bool

	// JSON switches to JSON-formatted lines.
	JSON bool

	// Output is where log lines are written. Defaults to stderr.
	Output io.Writer
}

// New creates a logger from opts.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	name := opts.Name
	if name == "" {
		name = "yearpaper"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           level(opts),
		Output:          out,
		JSONFormat:      opts.JSON,
		IncludeLocation: opts.Verbose,
	})
}

func level(opts Options) hclog.Level {
	switch {
	case opts.Verbose:
		return hclog.Debug
	case opts.Quiet:
		return hclog.Error
	}

	if opts.Level == "" {
		return hclog.Info
	}
	if l := hclog.LevelFromString(strings.TrimSpace(opts.Level)); l != hclog.NoLevel {
		return l
	}
	return hclog.Info
}
