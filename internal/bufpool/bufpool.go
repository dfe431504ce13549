// Package bufpool is a per-size sync.Pool free list for byte-array chunks.
// It is disabled by default, since pooling is expensive on embedded
// targets relative to its benefit, and only consulted when a caller opts
// in via AllowBufferCaching on a parser/renderer/output Config.
package bufpool

import "sync"

var pools sync.Map // map[int]*sync.Pool, keyed by chunk size

func poolFor(size int) *sync.Pool {
	if p, ok := pools.Load(size); ok {
		return p.(*sync.Pool)
	}
	p := &sync.Pool{New: func() any {
		b := make([]byte, size)
		return &b
	}}
	actual, _ := pools.LoadOrStore(size, p)
	return actual.(*sync.Pool)
}

// Get returns a []byte of exactly size bytes, reused from the pool when
// enabled is true. When enabled is false it always allocates fresh.
func Get(size int, enabled bool) []byte {
	if !enabled || size <= 0 {
		return make([]byte, size)
	}
	bp := poolFor(size).Get().(*[]byte)
	return *bp
}

// Put returns a chunk obtained from Get back to its size-keyed pool. It is
// a no-op when enabled is false.
func Put(b []byte, enabled bool) {
	if !enabled || len(b) == 0 {
		return
	}
	size := len(b)
	poolFor(size).Put(&b)
}
