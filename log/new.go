package log

import (
	stderr "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-kit/kit/metrics"
	promkit "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"

	"andy.dev/fluentdebug/internal/loghandler"
	"andy.dev/fluentdebug/internal/loghandler/instrumentation"
)

// Output formats understood by [New].
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatText  = "text"
	FormatHuman = "human"
)

// Options configures a logger built with [New].
type Options struct {
	// Name is attached to every line as the "logger" attribute and used as the
	// "logger" label on line counters. Optional.
	Name string
	// Format is one of the Format* constants. Empty means [FormatAuto], which
	// picks human output on a terminal and JSON otherwise.
	Format string
	// Level is the minimum level that will be written.
	Level slog.Level
	// ShowLocation attaches the file and line of the logging call.
	ShowLocation bool
	// Registerer, if set, receives a `log_messages_total` counter labelled by
	// logger and level.
	Registerer prometheus.Registerer
}

// New returns a Logger writing to w.
func New(w io.Writer, opts Options) (*Logger, error) {
	var formatter slog.Handler
	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		formatter = loghandler.NewJSON(w)
	case FormatText:
		formatter = loghandler.NewText(w)
	case FormatHuman:
		formatter = loghandler.NewHuman(w)
	case FormatAuto, "":
		formatter = loghandler.NewAuto(w)
	default:
		return nil, fmt.Errorf("invalid log format %q", opts.Format)
	}
	handlerOpts := instrumentation.HandlerOptions{
		MinLevel:     opts.Level,
		ShowLocation: opts.ShowLocation,
		TrimCode:     true,
	}
	if opts.Registerer != nil {
		counter, err := lineCounter(opts.Registerer)
		if err != nil {
			return nil, err
		}
		name := opts.Name
		if name == "" {
			name = "root"
		}
		handlerOpts.ErrorCounter = counter.With("logger", name, "level", "error")
		handlerOpts.WarnCounter = counter.With("logger", name, "level", "warn")
		handlerOpts.InfoCounter = counter.With("logger", name, "level", "info")
	}
	logger := slog.New(instrumentation.NewHandler(formatter, handlerOpts))
	if opts.Name != "" {
		logger = logger.With("logger", opts.Name)
	}
	return NewLogger(logger), nil
}

// ParseLevel converts one of debug, info, warn or error (any case) into a
// [slog.Level].
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}

func lineCounter(reg prometheus.Registerer) (metrics.Counter, error) {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "log_messages_total",
		Help: "the total number of messages logged, by logger and level",
	}, []string{"logger", "level"})
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !stderr.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		vec = existing
	}
	return promkit.NewCounter(vec), nil
}
