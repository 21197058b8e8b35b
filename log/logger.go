package log

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"time"
)

// Logger writes leveled, structured lines through an [*slog.Logger].
//
// The methods taking attrs accept key-value pairs as slog does. An error given
// as the first attr needs no key: it is logged as "err".
type Logger struct {
	s *slog.Logger
}

// NewLogger wraps slogger.
func NewLogger(slogger *slog.Logger) *Logger {
	return &Logger{s: slogger}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{s: slog.New(discardHandler{})}
}

func (l *Logger) Debug(msg string, attrs ...any) {
	l.Log(context.Background(), slog.LevelDebug, Up(1), msg, attrs...)
}

func (l *Logger) Info(msg string, attrs ...any) {
	l.Log(context.Background(), slog.LevelInfo, Up(1), msg, attrs...)
}

func (l *Logger) Warn(msg string, attrs ...any) {
	l.Log(context.Background(), slog.LevelWarn, Up(1), msg, attrs...)
}

func (l *Logger) Error(msg string, attrs ...any) {
	l.Log(context.Background(), slog.LevelError, Up(1), msg, attrs...)
}

// Enabled reports whether lines at level would be written.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.s.Enabled(context.Background(), level)
}

// With returns a Logger adding attrs to every line.
func (l *Logger) With(attrs ...any) *Logger {
	return &Logger{s: l.s.With(attrs...)}
}

// WithGroup returns a Logger nesting the attrs of every line under name.
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{s: l.s.WithGroup(name)}
}

// Log writes msg at lvl, reporting location as its source. Use [Up] to
// attribute the line to a caller, or [NoLocation] to attribute it to nothing.
func (l *Logger) Log(ctx context.Context, lvl slog.Level, location CodeLocation, msg string, attrs ...any) {
	if !l.s.Enabled(ctx, lvl) {
		return
	}
	r := slog.NewRecord(time.Now(), lvl, msg, uintptr(location))
	if len(attrs) > 0 {
		if err, ok := attrs[0].(error); ok {
			r.AddAttrs(slog.Any("err", err))
			attrs = attrs[1:]
		}
	}
	r.Add(attrs...)
	_ = l.s.Handler().Handle(ctx, r)
}

// Sink returns a LineSink writing whole messages to l at level. It satisfies
// fluentdebug.Sink, so a Debugger can report straight into this logger:
//
//	d := fluentdebug.New(logger.Sink(slog.LevelInfo))
func (l *Logger) Sink(level slog.Level) *LineSink {
	return &LineSink{logger: l, level: level}
}

// LineSink logs one message per call, with no attrs and no source location.
// It is safe for concurrent use.
type LineSink struct {
	logger *Logger
	level  slog.Level
}

// Log writes message as a single line.
func (s *LineSink) Log(message string) {
	s.logger.Log(context.Background(), s.level, NoLocation, message)
}

// Level is the level lines are written at.
func (s *LineSink) Level() slog.Level {
	return s.level
}

// CodeLocation is the program counter of the code a line is attributed to.
type CodeLocation uintptr

// String renders the location as file:line, or "" when there is none.
func (cl CodeLocation) String() string {
	if cl == NoLocation {
		return ""
	}
	frame, _ := runtime.CallersFrames([]uintptr{uintptr(cl)}).Next()
	if frame.Line == 0 {
		return ""
	}
	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}

// NoLocation attributes a line to no code at all.
const NoLocation CodeLocation = 0

// Up is the location skip frames above its caller; Up(0) is the caller itself.
func Up(skip int) CodeLocation {
	var pc [1]uintptr
	runtime.Callers(skip+2, pc[:])
	return CodeLocation(pc[0])
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler { return d }
func (d discardHandler) WithGroup(string) slog.Handler { return d }
