package ioadapt

import "github.com/corewire/codecore/internal/bufpool"

// Output is a byte sink. Renderers write to an Output in strict event
// order; the sink must preserve write order.
type Output interface {
	WriteByte(b byte) error
	// WriteBytes writes up to four individual bytes in one call, the
	// common case for header bytes (major-type byte, up to 3 extra length
	// bytes beyond the first for a 16-bit length, etc).
	WriteBytes(bs ...byte) error
	// WriteBytesFrom writes a batch, e.g. a decoded string or byte string.
	WriteBytesFrom(b []byte) error
	// Result materializes the final accumulated value.
	Result() []byte
}

// DefaultChunkSize is the chunk size ChunkedOutput uses when none is
// configured.
const DefaultChunkSize = 4096

// ChunkedOutput is the default Output implementation: a list of fixed-size
// chunks, appending a new chunk once the current one fills, and flattening
// into one contiguous slice only in Result(). This generalizes a doubling
// growable-buffer strategy from "one growable slice" to "a chunk list", so
// that Result() does one flattening copy instead of several reallocation
// copies along the way.
type ChunkedOutput struct {
	chunkSize int
	pooled    bool
	chunks    [][]byte
	cur       []byte
	curLen    int
}

// NewChunkedOutput constructs a ChunkedOutput. chunkSize <= 0 uses
// DefaultChunkSize. When pooled is true, chunks are obtained from and
// returned to the process-wide bufpool (AllowBufferCaching).
func NewChunkedOutput(chunkSize int, pooled bool) *ChunkedOutput {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	o := &ChunkedOutput{chunkSize: chunkSize, pooled: pooled}
	o.cur = bufpool.Get(chunkSize, pooled)
	return o
}

func (o *ChunkedOutput) rotate() {
	o.chunks = append(o.chunks, o.cur[:o.curLen])
	o.cur = bufpool.Get(o.chunkSize, o.pooled)
	o.curLen = 0
}

func (o *ChunkedOutput) WriteByte(b byte) error {
	if o.curLen == len(o.cur) {
		o.rotate()
	}
	o.cur[o.curLen] = b
	o.curLen++
	return nil
}

func (o *ChunkedOutput) WriteBytes(bs ...byte) error {
	for _, b := range bs {
		if err := o.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}

func (o *ChunkedOutput) WriteBytesFrom(b []byte) error {
	for len(b) > 0 {
		if o.curLen == len(o.cur) {
			o.rotate()
		}
		n := copy(o.cur[o.curLen:], b)
		o.curLen += n
		b = b[n:]
	}
	return nil
}

// Result flattens all chunks into one contiguous slice. The ChunkedOutput
// should not be reused after calling Result.
func (o *ChunkedOutput) Result() []byte {
	total := o.curLen
	for _, c := range o.chunks {
		total += len(c)
	}
	out := make([]byte, 0, total)
	for _, c := range o.chunks {
		out = append(out, c...)
		bufpool.Put(c, o.pooled)
	}
	out = append(out, o.cur[:o.curLen]...)
	bufpool.Put(o.cur, o.pooled)
	o.cur = nil
	o.chunks = nil
	return out
}
