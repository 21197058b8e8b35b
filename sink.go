package fluentdebug

import (
	"io"
	"sync"
)

// Sink receives the one line a [Debugger] produces for each successful call.
// A Sink shared by concurrent runs must be safe for concurrent use.
//
// A fluentdebug logger provides one for a given level with
// [andy.dev/fluentdebug/log.Logger.Sink].
type Sink interface {
	Log(message string)
}

// SinkFunc adapts an ordinary function to a [Sink].
type SinkFunc func(message string)

// Log calls f(message).
func (f SinkFunc) Log(message string) {
	f(message)
}

// NullSink discards every message. It is the sink of a [Debugger] created
// without one.
type NullSink struct{}

// Log does nothing.
func (NullSink) Log(string) {}

// WriterSink returns a Sink writing each message to w on its own line. Write
// errors are ignored.
func WriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) Log(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.w, message+"\n")
}
