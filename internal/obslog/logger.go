package obslog

import (
	"io"
	"log/slog"

	"github.com/btcsuite/btclog"
)

// ParseLevel maps a level name (trace, debug, info, warn, error) to its
// btclog.Level, defaulting to LevelInfo for an unrecognized name.
func ParseLevel(name string) btclog.Level {
	switch name {
	case "trace":
		return btclog.LevelTrace
	case "debug":
		return btclog.LevelDebug
	case "warn":
		return btclog.LevelWarn
	case "error":
		return btclog.LevelError
	default:
		return btclog.LevelInfo
	}
}

// New builds a *slog.Logger backed by a console btclog handler writing to
// w, following the same handler-construction shape as the daemon
// entrypoint this is adapted from: a btclog handler wrapped in a
// HandlerSet (even when there is only one sink, so additional sinks can
// be added later without touching call sites), bridged into slog via
// btclog.NewSLogger.
func New(w io.Writer, level btclog.Level) *slog.Logger {
	console := btclog.NewDefaultHandler(w)
	set := NewHandlerSet(console)
	set.SetLevel(level)

	return btclog.NewSLogger(set)
}
