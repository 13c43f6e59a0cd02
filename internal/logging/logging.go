// Package logging configures slog for the long-running commands.
package logging

import (
	"log/slog"
	"os"
)

// New returns a text logger on stderr. Verbose enables debug level.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
