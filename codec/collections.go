package codec

import "github.com/corewire/codecore/event"

type sliceCodec[T any] struct{ elem Codec[T] }

// SliceCodec builds a Codec[[]T] from an element Codec, writing an
// ArrayOpen(len(v))/items/ArrayClose. A nil slice round-trips as a
// zero-length array, not as None; use OptionCodec to distinguish absent
// from empty.
func SliceCodec[T any](elem Codec[T]) Codec[[]T] {
	return sliceCodec[T]{elem: elem}
}

func (c sliceCodec[T]) Write(w *event.Writer, v []T) error {
	unbounded, err := w.WriteArrayOpen(uint64(len(v)))
	if err != nil {
		return err
	}
	for _, item := range v {
		if err := c.elem.Write(w, item); err != nil {
			return err
		}
	}
	return w.WriteArrayClose(unbounded)
}

func (c sliceCodec[T]) Read(r *event.Reader) ([]T, error) {
	n, unbounded, err := r.ReadArrayOpen()
	if err != nil {
		return nil, err
	}
	var out []T
	if !unbounded {
		if n > 0 {
			out = make([]T, 0, n)
		}
		for i := uint64(0); i < n; i++ {
			v, err := c.elem.Read(r)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, r.ReadArrayClose(false)
	}
	for {
		has, err := r.HasBreak()
		if err != nil {
			return nil, err
		}
		if has {
			break
		}
		v, err := c.elem.Read(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, r.ReadArrayClose(true)
}

type mapCodec[K comparable, V any] struct {
	key Codec[K]
	val Codec[V]
}

// MapCodec builds a Codec[map[K]V] from a key Codec and a value Codec,
// writing a MapOpen(len(v))/key,value pairs/MapClose. The key Codec must
// write a JSON-legal map key (a String item) if the map is ever rendered
// to jsonproto; codec.String satisfies that for K=string. Duplicate keys
// encountered while decoding resolve "last write wins", matching
// jsonproto.Parser's own duplicate-object-key behavior.
func MapCodec[K comparable, V any](key Codec[K], val Codec[V]) Codec[map[K]V] {
	return mapCodec[K, V]{key: key, val: val}
}

func (c mapCodec[K, V]) Write(w *event.Writer, v map[K]V) error {
	unbounded, err := w.WriteMapOpen(uint64(len(v)))
	if err != nil {
		return err
	}
	for k, val := range v {
		if err := c.key.Write(w, k); err != nil {
			return err
		}
		if err := c.val.Write(w, val); err != nil {
			return err
		}
	}
	return w.WriteMapClose(unbounded)
}

func (c mapCodec[K, V]) Read(r *event.Reader) (map[K]V, error) {
	n, unbounded, err := r.ReadMapOpen()
	if err != nil {
		return nil, err
	}
	out := make(map[K]V, n)
	readPair := func() error {
		k, err := c.key.Read(r)
		if err != nil {
			return err
		}
		v, err := c.val.Read(r)
		if err != nil {
			return err
		}
		out[k] = v
		return nil
	}
	if !unbounded {
		for i := uint64(0); i < n; i++ {
			if err := readPair(); err != nil {
				return nil, err
			}
		}
		return out, r.ReadMapClose(false)
	}
	for {
		has, err := r.HasBreak()
		if err != nil {
			return nil, err
		}
		if has {
			break
		}
		if err := readPair(); err != nil {
			return nil, err
		}
	}
	return out, r.ReadMapClose(true)
}
