package instrumentation

import (
	"context"
	stderr "errors"
	"log/slog"

	"github.com/go-kit/kit/metrics"

	"andy.dev/fluentdebug/errors"
	"andy.dev/fluentdebug/internal/logfmt"
)

type HandlerOptions struct {
	MinLevel     slog.Level
	ShowLocation bool
	TrimCode     bool
	ErrorCounter metrics.Counter
	WarnCounter  metrics.Counter
	InfoCounter  metrics.Counter
}

type Handler struct {
	formatter    slog.Handler
	leveler      *slog.LevelVar
	doCode       bool
	trimCode     bool
	errorCounter metrics.Counter
	warnCounter  metrics.Counter
	infoCounter  metrics.Counter
}

func NewHandler(h slog.Handler, options HandlerOptions) *Handler {
	leveler := &slog.LevelVar{}
	leveler.Set(options.MinLevel)
	return &Handler{
		formatter:    h,
		leveler:      leveler,
		doCode:       options.ShowLocation,
		trimCode:     options.TrimCode,
		errorCounter: options.ErrorCounter,
		warnCounter:  options.WarnCounter,
		infoCounter:  options.InfoCounter,
	}
}

// Enabled implements [slog.Handler].
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.leveler.Level()
}

// Handle implements [slog.Handler]. This is where lines are counted, where
// [*errors.Error] values get their location, cause and fields attached, and
// where the decision to print source location is made.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var counter metrics.Counter
	switch {
	case r.Level >= slog.LevelError:
		counter = h.errorCounter
	case r.Level >= slog.LevelWarn:
		counter = h.warnCounter
	case r.Level >= slog.LevelInfo:
		counter = h.infoCounter
	}
	if counter != nil {
		counter.Add(1)
	}
	nr := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		err, isErr := a.Value.Any().(error)
		if !isErr {
			nr.AddAttrs(a)
			return true
		}
		if a.Key != "err" {
			a.Key = "err_" + a.Key
		}
		nr.AddAttrs(a)
		var fErr *errors.Error
		if stderr.As(err, &fErr) {
			nr.AddAttrs(slog.Group(a.Key+"_data", h.errorData(fErr)...))
		}
		return true
	})
	if h.doCode {
		if loc := logfmt.FmtRecord(nr, h.trimCode); loc != "" {
			nr.AddAttrs(slog.String(slog.SourceKey, loc))
		}
	}
	return h.formatter.Handle(ctx, nr)
}

func (h *Handler) errorData(err *errors.Error) []any {
	fields := err.Fields()
	data := make([]any, 0, 6+len(fields))
	data = append(data, "location", err.Location().String())
	if cause := err.Cause(); cause != nil {
		data = append(data, "cause", cause.Error())
	}
	data = append(data, fields...)
	if h.leveler.Level() <= slog.LevelDebug {
		data = append(data, "stacktrace", err.Stack().String())
	}
	return data
}

// WithAttrs implements [slog.Handler]. It returns a shallow copy wrapping the
// formatter's own WithAttrs.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := h.clone()
	nh.formatter = h.formatter.WithAttrs(attrs)
	return nh
}

// WithGroup implements [slog.Handler].
func (h *Handler) WithGroup(name string) slog.Handler {
	nh := h.clone()
	nh.formatter = h.formatter.WithGroup(name)
	return nh
}

func (h *Handler) clone() *Handler {
	clone := *h
	return &clone
}
