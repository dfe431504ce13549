package codec

import (
	"fmt"
	"reflect"
	"sync"
)

// Registry is an optional, reflect.Type-keyed convenience facade over the
// hot-path Codec[T] API, for call sites that only learn a value's type at
// runtime (a generic "transcode whatever this config field turns out to
// be" helper, or a plugin boundary). Nothing in cborproto, jsonproto, or
// the rest of codec depends on it; every built-in codec in this package
// is usable directly without ever touching a Registry.
type Registry struct {
	mu    sync.RWMutex
	boxes map[reflect.Type]any
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{boxes: make(map[reflect.Type]any)}
}

// RegisterCodec associates Codec[T] with the reflect.Type of T. A second
// registration for the same type replaces the first.
func RegisterCodec[T any](reg *Registry, c Codec[T]) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.boxes[reflect.TypeFor[T]()] = c
}

// LookupCodec retrieves the Codec[T] previously registered for T, if any.
func LookupCodec[T any](reg *Registry) (Codec[T], bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	boxed, ok := reg.boxes[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	c, ok := boxed.(Codec[T])
	return c, ok
}

// MustLookupCodec is LookupCodec but panics on a miss, for call sites that
// have already validated every type they transcode is registered at
// startup and would rather fail fast than propagate a bool.
func MustLookupCodec[T any](reg *Registry) Codec[T] {
	c, ok := LookupCodec[T](reg)
	if !ok {
		var zero T
		panic(fmt.Sprintf("codec: no Codec registered for %T", zero))
	}
	return c
}
