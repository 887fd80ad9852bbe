package main

import (
	"io"
	"log/slog"
)

// levelSilent sits above every standard level.
const levelSilent = slog.Level(100)

// levelFromVerbosity maps -v/-q to a log level: warn by default, info at
// -v, debug at -vv and above, nothing with -q.
func levelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return levelSilent
	}
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

func newLogger(w io.Writer, verbosity int, quiet bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelFromVerbosity(verbosity, quiet),
	}))
}
