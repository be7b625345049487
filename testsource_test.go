package xpt

import "bytes"

// newMemorySource builds a ByteSource over an in-memory buffer through the
// same NewByteSource adapter real files use, so short reads at end-of-stream
// behave the way they do for a real file.
func newMemorySource(data []byte) ByteSource {
	return NewByteSource(bytes.NewReader(data))
}
