package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the process-wide logger, set by Init.
var Logger = slog.Default()

// Options controls how Init builds the handler chain.
type Options struct {
	Level       string
	Format      string
	ServiceName string
	OTelEnabled bool
	Output      io.Writer
}

// Init builds the logger: JSON (or text) on stdout with trace correlation,
// fanned out to the OTel log bridge when telemetry is enabled.
func Init(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var base slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		base = slog.NewTextHandler(out, handlerOpts)
	} else {
		base = slog.NewJSONHandler(out, handlerOpts)
	}

	var handler slog.Handler = NewTraceContextHandler(base)
	if opts.OTelEnabled {
		handler = NewMultiHandler(handler, opts.ServiceName)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	return Logger
}

// ParseLevel maps a LOG_LEVEL value to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
