package codec

import "github.com/corewire/codecore/event"

// OptionConfig controls how OptionCodec represents an absent value.
type OptionConfig struct {
	// NullOptions writes/reads a bare Null for None instead of the default
	// 0-or-1-element array representation.
	NullOptions bool
}

type optionCodec[T any] struct {
	inner Codec[T]
	cfg   OptionConfig
}

// OptionCodec builds a Codec[*T] standing in for an optional T: a nil
// pointer is None, a non-nil pointer is Some(*v). The default wire shape
// is a 0- or 1-element array (so CBOR and JSON agree on its shape); the
// opt-in NullOptions mode writes/reads a bare Null instead, for callers
// that would rather pay a type ambiguity than an extra array wrapper.
func OptionCodec[T any](inner Codec[T], cfg OptionConfig) Codec[*T] {
	return optionCodec[T]{inner: inner, cfg: cfg}
}

func (c optionCodec[T]) Write(w *event.Writer, v *T) error {
	if c.cfg.NullOptions {
		if v == nil {
			return w.WriteNull()
		}
		return c.inner.Write(w, *v)
	}
	if v == nil {
		unbounded, err := w.WriteArrayOpen(0)
		if err != nil {
			return err
		}
		return w.WriteArrayClose(unbounded)
	}
	unbounded, err := w.WriteArrayOpen(1)
	if err != nil {
		return err
	}
	if err := c.inner.Write(w, *v); err != nil {
		return err
	}
	return w.WriteArrayClose(unbounded)
}

func (c optionCodec[T]) Read(r *event.Reader) (*T, error) {
	if c.cfg.NullOptions {
		has, err := r.HasNull()
		if err != nil {
			return nil, err
		}
		if has {
			return nil, r.ReadNull()
		}
		v, err := c.inner.Read(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	n, unbounded, err := r.ReadArrayOpen()
	if err != nil {
		return nil, err
	}
	if unbounded {
		has, err := r.HasBreak()
		if err != nil {
			return nil, err
		}
		if has {
			return nil, r.ReadArrayClose(true)
		}
		v, err := c.inner.Read(r)
		if err != nil {
			return nil, err
		}
		return &v, r.ReadArrayClose(true)
	}
	if n == 0 {
		return nil, nil
	}
	v, err := c.inner.Read(r)
	if err != nil {
		return nil, err
	}
	return &v, r.ReadArrayClose(false)
}

// WriteWithDefault implements DefaultAwareEncoder: when both v and def are
// None, nothing is written, letting a record codec omit the field rather
// than emit an explicit empty representation.
func (c optionCodec[T]) WriteWithDefault(w *event.Writer, v *T, def *T) error {
	if v == nil && def == nil {
		return nil
	}
	return c.Write(w, v)
}

// ReadOrDefault implements DefaultAwareDecoder. OptionCodec always
// represents presence explicitly on the wire, so it always reports the
// field present; def is unused except when a caller chooses to interpret
// a top-level EndOfInput as omission (left to the record-codec layer).
func (c optionCodec[T]) ReadOrDefault(r *event.Reader, def *T) (*T, bool, error) {
	v, err := c.Read(r)
	if err != nil {
		return def, false, err
	}
	return v, true, nil
}
