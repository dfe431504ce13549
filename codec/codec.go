// Package codec implements a type-class encoding/decoding layer:
// polymorphic Encoder[T]/Decoder[T] contracts that translate application
// values to and from the shared event.Reader/event.Writer streams, plus
// compositional combinators and a library of built-ins.
//
// Codec lookup is explicit throughout: every hot-path call takes a codec
// as an ordinary parameter. There is no implicit resolution and no
// reflection on the hot path; the optional Registry in registry.go is a
// convenience facade built on top, not a dependency of the core codecs.
package codec

import "github.com/corewire/codecore/event"

// Encoder writes a value of type T to a Writer as exactly one top-level
// event-stream item (tags excepted: a Tag is a prefix, not an item in its
// own right). Maps and arrays count as one item regardless of their
// contents.
type Encoder[T any] interface {
	Write(w *event.Writer, v T) error
}

// Decoder reads a value of type T from a Reader.
type Decoder[T any] interface {
	Read(r *event.Reader) (T, error)
}

// Codec bundles an Encoder and a Decoder for the same type.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// EncoderFunc adapts a plain function to an Encoder.
type EncoderFunc[T any] func(w *event.Writer, v T) error

func (f EncoderFunc[T]) Write(w *event.Writer, v T) error { return f(w, v) }

// DecoderFunc adapts a plain function to a Decoder.
type DecoderFunc[T any] func(r *event.Reader) (T, error)

func (f DecoderFunc[T]) Read(r *event.Reader) (T, error) { return f(r) }

// codecPair joins an independently supplied Encoder and Decoder into a
// single Codec value, the common shape returned by combinators like Bimap.
type codecPair[T any] struct {
	Encoder[T]
	Decoder[T]
}

// Join combines a standalone Encoder and Decoder into a Codec.
func Join[T any](enc Encoder[T], dec Decoder[T]) Codec[T] {
	return codecPair[T]{Encoder: enc, Decoder: dec}
}

// DefaultAwareEncoder is implemented by an Encoder that can choose to omit
// its field entirely when the value being written equals the caller-
// supplied default. The core only declares the contract; a record-codec
// derivation layer (out of scope for this module) decides when to
// consult it.
type DefaultAwareEncoder[T any] interface {
	Encoder[T]
	// WriteWithDefault writes v, honoring def as the field's declared
	// default: an implementation may choose to write nothing at all when
	// v equals def.
	WriteWithDefault(w *event.Writer, v T, def T) error
}

// DefaultAwareDecoder is implemented by a Decoder that can substitute a
// caller-supplied default when the field was entirely absent from the
// stream (as opposed to present-but-null).
type DefaultAwareDecoder[T any] interface {
	Decoder[T]
	// ReadOrDefault reads v if present, or returns def if the decoder
	// determines the field was omitted. present reports which occurred.
	ReadOrDefault(r *event.Reader, def T) (v T, present bool, err error)
}

// --- combinators ---

// ContramapEncoder adapts an Encoder[T] into an Encoder[U] by mapping U
// values down to T before writing.
func ContramapEncoder[U, T any](enc Encoder[T], f func(U) T) Encoder[U] {
	return EncoderFunc[U](func(w *event.Writer, v U) error {
		return enc.Write(w, f(v))
	})
}

// MapDecoder adapts a Decoder[T] into a Decoder[U] by mapping decoded T
// values up to U.
func MapDecoder[T, U any](dec Decoder[T], f func(T) U) Decoder[U] {
	return DecoderFunc[U](func(r *event.Reader) (U, error) {
		v, err := dec.Read(r)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(v), nil
	})
}

// MapOptionDecoder adapts a Decoder[T] into a Decoder[U] via a function
// that may fail to produce a U; a false second return raises a decoder
// error at the reader's current position.
func MapOptionDecoder[T, U any](dec Decoder[T], f func(T) (U, bool)) Decoder[U] {
	return DecoderFunc[U](func(r *event.Reader) (U, error) {
		var zero U
		v, err := dec.Read(r)
		if err != nil {
			return zero, err
		}
		u, ok := f(v)
		if !ok {
			return zero, r.UnexpectedDataItem("value satisfying decoder mapping")
		}
		return u, nil
	})
}

// MapEitherDecoder adapts a Decoder[T] into a Decoder[U] via a function
// that may return an error, which is surfaced as the decode failure.
func MapEitherDecoder[T, U any](dec Decoder[T], f func(T) (U, error)) Decoder[U] {
	return DecoderFunc[U](func(r *event.Reader) (U, error) {
		var zero U
		v, err := dec.Read(r)
		if err != nil {
			return zero, err
		}
		u, err := f(v)
		if err != nil {
			return zero, err
		}
		return u, nil
	})
}

// BimapCodec builds a Codec[S] out of an existing Codec[T] given a pair of
// total conversion functions, the "Codec::bimap" combinator pattern
// expressed in Go's explicit-codec-parameter style.
func BimapCodec[T, S any](c Codec[T], to func(T) S, from func(S) T) Codec[S] {
	return Join[S](
		ContramapEncoder[S, T](c, from),
		MapDecoder[T, S](c, to),
	)
}
