package human

import (
	"bytes"
	"sync"
)

var buffers = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func getBuf() *bytes.Buffer {
	return buffers.Get().(*bytes.Buffer)
}

// putBuf returns a buffer to the pool; call it with defer.
func putBuf(buf *bytes.Buffer) {
	buf.Reset()
	buffers.Put(buf)
}
