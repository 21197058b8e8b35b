package human

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"

	"andy.dev/fluentdebug/internal/logfmt"
)

type cPrinter func(io.Writer, ...any)

var (
	warnP  = color.New(color.FgYellow).FprintFunc()
	errorP = color.New(color.FgRed).FprintFunc()
	valP   = color.New(color.FgHiBlack).FprintFunc()
	msgP   = color.New(color.Bold).FprintFunc()
	keyP   = color.New(color.FgGreen).Add(color.Faint).FprintFunc()
	callP  = color.New(color.FgCyan).Add(color.Bold).FprintFunc()
	timeP  = color.New(color.FgMagenta).FprintFunc()
)

const timeFormat = "Jan 02 15:04:05"

// timingRx matches the lines produced by a fluentdebug Debugger so they can be
// highlighted piecewise: call name, parameters, execution time.
var timingRx = regexp.MustCompile("(?s)^(\\[[^\\]]*\\(\\)\\] )?(Parameters: `.*` \\| )?(Execution time: [0-9]+ms)$")

type HandlerOpts struct {
	MinLevel slog.Leveler
	DoSource bool
}

// Handler makes logs easy to read from the CLI
type Handler struct {
	mu        *sync.Mutex
	minlevel  slog.Leveler
	writer    io.Writer
	doSource  bool
	logger    string
	prefix    string
	static    string
	staticErr string
}

func NewHandler(options HandlerOpts, w io.Writer) *Handler {
	minlevel := options.MinLevel
	if minlevel == nil {
		minlevel = slog.LevelInfo
	}
	return &Handler{
		mu:       &sync.Mutex{},
		minlevel: minlevel,
		doSource: options.DoSource,
		writer:   w,
	}
}

// Enabled implements [slog.Handler].
func (s *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.minlevel.Level()
}

// Handle implements [slog.Handler].
func (s *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := getBuf()
	defer putBuf(buf)
	attrBuf := getBuf()
	defer putBuf(attrBuf)

	var errAttrs []slog.Attr
	var manSource string
	r.Attrs(func(a slog.Attr) bool {
		switch {
		case a.Key == slog.SourceKey:
			manSource = a.Value.String()
		case a.Key == "logger":
		case strings.HasPrefix(a.Key, "err"):
			errAttrs = append(errAttrs, a)
		default:
			printAttr(keyP, attrBuf, s.prefix, a)
		}
		return true
	})

	valP(buf, r.Time.Format(timeFormat))
	io.WriteString(buf, " ")
	switch {
	case r.Level >= slog.LevelError:
		errorP(buf, "ERR")
	case r.Level >= slog.LevelWarn:
		warnP(buf, "WRN")
	case r.Level >= slog.LevelInfo:
		io.WriteString(buf, "INF")
	default:
		valP(buf, "DBG")
	}
	if s.logger != "" {
		valP(buf, "["+s.logger+"]")
	}
	valP(buf, " - ")
	if r.Message == "" {
		msgP(buf, "<no message>")
	} else {
		printMessage(buf, r.Message)
	}

	// source line only matters above info
	if r.Level > slog.LevelInfo {
		loc := manSource
		if loc == "" && s.doSource {
			loc = logfmt.FmtRecord(r, false)
		}
		if loc != "" {
			io.WriteString(buf, " ")
			valP(buf, "("+loc+")")
		}
	}
	for _, a := range errAttrs {
		printAttr(errorP, buf, s.prefix, a)
	}
	buf.WriteString(s.staticErr)
	buf.Write(attrBuf.Bytes())
	buf.WriteString(s.static)
	buf.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.writer.Write(buf.Bytes())
	return err
}

// WithAttrs implements [slog.Handler]. Attributes are rendered once, up front.
func (s *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	ns := s.clone()
	abuf := getBuf()
	defer putBuf(abuf)
	errbuf := getBuf()
	defer putBuf(errbuf)
	for _, a := range attrs {
		switch {
		case a.Key == slog.SourceKey:
		case a.Key == "logger" && s.prefix == "":
			if ns.logger != "" {
				ns.logger += "/"
			}
			ns.logger += a.Value.String()
		case strings.HasPrefix(a.Key, "err"):
			printAttr(errorP, errbuf, s.prefix, a)
		default:
			printAttr(keyP, abuf, s.prefix, a)
		}
	}
	ns.static += abuf.String()
	ns.staticErr += errbuf.String()
	return ns
}

// WithGroup implements [slog.Handler]. Grouped keys are printed dotted.
func (s *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	ns := s.clone()
	ns.prefix += name + "."
	return ns
}

func (s *Handler) clone() *Handler {
	clone := *s
	return &clone
}

func printMessage(w io.Writer, msg string) {
	m := timingRx.FindStringSubmatch(msg)
	if m == nil {
		msgP(w, msg)
		return
	}
	if m[1] != "" {
		callP(w, m[1])
	}
	if m[2] != "" {
		valP(w, m[2])
	}
	timeP(w, m[3])
}

func printAttr(cp cPrinter, w io.Writer, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	r := a.Value.Resolve()
	if r.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range r.Group() {
			printAttr(cp, w, groupPrefix, ga)
		}
		return
	}
	io.WriteString(w, " ")
	cp(w, qs(prefix+a.Key)+"=")
	if r.Kind() == slog.KindTime {
		valP(w, r.Time().Format(timeFormat))
		return
	}
	valP(w, qs(r.String()))
}

func qs(s string) string {
	if needsQuoted(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoted(str string) bool {
	for len(str) > 0 {
		if str[0] < utf8.RuneSelf {
			switch str[0] {
			case '\n', '\t', ' ', '"':
				return true
			}
			str = str[1:]
			continue
		}
		r, size := utf8.DecodeRuneInString(str)
		if unicode.IsSpace(r) {
			return true
		}
		str = str[size:]
	}
	return false
}
