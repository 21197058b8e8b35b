package fdtest

import (
	"slices"
	"sync"

	"andy.dev/fluentdebug"
)

// Recorder is a [fluentdebug.Sink] that keeps every message it is given. It is
// safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

var _ fluentdebug.Sink = (*Recorder)(nil)

// Log records message.
func (r *Recorder) Log(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of the recorded messages, oldest first.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.messages)
}

// Len is the number of recorded messages.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// Last returns the most recent message, or the empty string.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}
