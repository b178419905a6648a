package job

import (
	"context"
	"io"
	"log/slog"
)

// parseLevel maps the config string to a slog level. The job default is
// debug: the debug log exists to be verbose.
func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// newLogger builds the job logger. The debug-log file receives records at
// the configured level and format; warnings and worse are mirrored to the
// console stream so problems are visible without opening the log.
func newLogger(file, console io.Writer, levelStr, formatStr string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(levelStr)}
	var fileHandler slog.Handler
	if formatStr == "json" {
		fileHandler = slog.NewJSONHandler(file, opts)
	} else {
		fileHandler = slog.NewTextHandler(file, opts)
	}
	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{Level: slog.LevelWarn})
	return slog.New(&fanoutHandler{handlers: []slog.Handler{fileHandler, consoleHandler}})
}

// fanoutHandler forwards records to every underlying handler that accepts
// the record's level. It lets the job keep a verbose debug log on disk while
// the console handler stays at its own level.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h *fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var first error
	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, rec.Level) {
			continue
		}
		if err := hh.Handle(ctx, rec.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (h *fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		out[i] = hh.WithAttrs(attrs)
	}
	return &fanoutHandler{handlers: out}
}

func (h *fanoutHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		out[i] = hh.WithGroup(name)
	}
	return &fanoutHandler{handlers: out}
}
