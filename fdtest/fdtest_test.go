package fdtest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderConcurrent(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Log("line")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
	assert.Len(t, r.Messages(), 50)
	assert.Equal(t, "line", r.Last())
}

func TestRecorderEmpty(t *testing.T) {
	var r Recorder
	assert.Equal(t, "", r.Last())
	assert.Empty(t, r.Messages())
}

func TestFixedTimer(t *testing.T) {
	assert.Equal(t, int64(42), FixedTimer(42).Start().ElapsedMilliseconds())
}

type recordingTB struct {
	testing.TB
	lines  []string
	failed bool
}

func (r *recordingTB) Helper() {}
func (r *recordingTB) Log(args ...any) { r.lines = append(r.lines, args[0].(string)) }
func (r *recordingTB) Fail() { r.failed = true }

func TestLoggerWritesThroughT(t *testing.T) {
	rec := &recordingTB{TB: t}
	logger := NewLogger(rec, WithErrorStrategy(Fail))

	logger.With("logger", "calls").WithGroup("call").Info("[delay()] Execution time: 1ms", "ms", 1)
	assert.False(t, rec.failed)
	logger.Error("boom")
	assert.True(t, rec.failed)

	assert.Equal(t, []string{
		"INFO: [delay()] Execution time: 1ms logger=calls call.ms=1",
		"ERROR: boom",
	}, rec.lines)
}
