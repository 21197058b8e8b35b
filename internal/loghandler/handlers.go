package loghandler

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"andy.dev/fluentdebug/internal/loghandler/human"
)

// Formatters accept everything; level filtering happens in the
// instrumentation handler wrapped around them.

// NewJSON returns a handler writing one JSON object per line to w.
func NewJSON(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	})
}

// NewText returns a handler writing logfmt-style key=value lines to w.
func NewText(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	})
}

// NewHuman returns a colourised handler for reading in a terminal.
func NewHuman(w io.Writer) slog.Handler {
	return human.NewHandler(human.HandlerOpts{
		MinLevel: slog.LevelDebug,
	}, w)
}

// NewAuto returns a human handler when w is a terminal, and a JSON handler
// otherwise.
func NewAuto(w io.Writer) slog.Handler {
	if IsTerminal(w) {
		return NewHuman(w)
	}
	return NewJSON(w)
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
