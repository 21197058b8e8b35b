package fluentdebug

import "time"

// Timer starts stopwatches. Implementations must not be affected by changes
// to the wall clock.
type Timer interface {
	Start() Stopwatch
}

// Stopwatch reports the whole milliseconds elapsed since it was started.
type Stopwatch interface {
	ElapsedMilliseconds() int64
}

// MonotonicTimer is the default [Timer]. It relies on the monotonic clock
// reading carried by [time.Now].
type MonotonicTimer struct{}

// Start implements [Timer].
func (MonotonicTimer) Start() Stopwatch {
	return monotonicWatch{started: time.Now()}
}

type monotonicWatch struct {
	started time.Time
}

func (w monotonicWatch) ElapsedMilliseconds() int64 {
	return time.Since(w.started).Milliseconds()
}
