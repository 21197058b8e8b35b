package fdtest

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"unicode"

	"andy.dev/fluentdebug/log"
)

// ErrorStrategy defines what a test logger should do if a message is logged at
// the error level.
type ErrorStrategy int

const (
	// Ignore will take no action. This is the default.
	Ignore ErrorStrategy = iota
	// Fail will mark the test as failed, but continue.
	Fail
	// FailNow will mark the test as failed and exit immediately.
	FailNow
)

type LoggerOption func(*testHandler)

func WithErrorStrategy(es ErrorStrategy) LoggerOption {
	return func(th *testHandler) {
		th.es = es
	}
}

// NewLogger returns a [*log.Logger] that writes every line with [testing.T.Log].
func NewLogger(t testing.TB, options ...LoggerOption) *log.Logger {
	th := &testHandler{t: t}
	for _, o := range options {
		o(th)
	}
	return log.NewLogger(slog.New(th))
}

type testHandler struct {
	t      testing.TB
	es     ErrorStrategy
	prefix string
	static string
}

func (h *testHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *testHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix += name + "."
	return &h2
}

func (h *testHandler) WithAttrs(as []slog.Attr) slog.Handler {
	h2 := *h
	var sb strings.Builder
	for _, a := range as {
		writeAttr(&sb, h.prefix, a)
	}
	h2.static += sb.String()
	return &h2
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	h.t.Helper()
	var sb strings.Builder
	sb.WriteString(r.Level.String() + ": " + r.Message)
	sb.WriteString(h.static)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)
		return true
	})
	h.t.Log(sb.String())
	if r.Level >= slog.LevelError {
		switch h.es {
		case Fail:
			h.t.Fail()
		case FailNow:
			h.t.FailNow()
		}
	}
	return nil
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	rv := a.Value.Resolve()
	if rv.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range rv.Group() {
			writeAttr(sb, prefix, ga)
		}
		return
	}
	sb.WriteString(" " + qs(prefix+a.Key) + "=" + qs(rv.String()))
}

func qs(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return strconv.Quote(s)
	}
	return s
}
