package codec

import (
	"strconv"

	"github.com/corewire/codecore/event"
)

// Bool is the Codec for bool.
var Bool Codec[bool] = boolCodec{}

type boolCodec struct{}

func (boolCodec) Write(w *event.Writer, v bool) error { return w.WriteBool(v) }
func (boolCodec) Read(r *event.Reader) (bool, error)  { return r.ReadBoolean() }

// Int32 is the Codec for int32. Decoding also accepts a Long event that
// fits losslessly, so a codec built for a narrower integer type still
// reads wire values produced by a wider one.
var Int32 Codec[int32] = int32Codec{}

type int32Codec struct{}

func (int32Codec) Write(w *event.Writer, v int32) error { return w.WriteInt(v) }
func (int32Codec) Read(r *event.Reader) (int32, error)  { return r.ReadInt() }

// Int64 is the Codec for int64, widening an Int event on read.
var Int64 Codec[int64] = int64Codec{}

type int64Codec struct{}

func (int64Codec) Write(w *event.Writer, v int64) error { return w.WriteLong(v) }
func (int64Codec) Read(r *event.Reader) (int64, error)  { return r.ReadLong() }

// Int is the Codec for the platform int, routed through Int64.
var Int Codec[int] = BimapCodec[int64, int](Int64,
	func(v int64) int { return int(v) },
	func(v int) int64 { return int64(v) },
)

// Uint32/Uint64 reinterpret the signed wire representation as unsigned;
// values above the signed range round-trip through OverLong.
var Uint32 Codec[uint32] = uint32Codec{}

type uint32Codec struct{}

func (uint32Codec) Write(w *event.Writer, v uint32) error {
	if v <= 1<<31-1 {
		return w.WriteInt(int32(v))
	}
	return w.WriteLong(int64(v))
}

func (uint32Codec) Read(r *event.Reader) (uint32, error) {
	v, err := r.ReadLong()
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 1<<32-1 {
		return 0, r.UnexpectedDataItem("Uint32")
	}
	return uint32(v), nil
}

var Uint64 Codec[uint64] = uint64Codec{}

type uint64Codec struct{}

func (uint64Codec) Write(w *event.Writer, v uint64) error {
	if v <= 1<<63-1 {
		return w.WriteLong(int64(v))
	}
	return w.WriteOverLong(false, v)
}

func (uint64Codec) Read(r *event.Reader) (uint64, error) {
	hasOverLong, err := r.HasOverLong()
	if err != nil {
		return 0, err
	}
	if hasOverLong {
		neg, raw, err := r.ReadOverLong()
		if err != nil {
			return 0, err
		}
		if neg {
			return 0, r.UnexpectedDataItem("Uint64")
		}
		return raw, nil
	}
	v, err := r.ReadLong()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, r.UnexpectedDataItem("Uint64")
	}
	return uint64(v), nil
}

// Float32 is the Codec for float32.
var Float32 Codec[float32] = float32Codec{}

type float32Codec struct{}

func (float32Codec) Write(w *event.Writer, v float32) error { return w.WriteFloat(v) }

func (float32Codec) Read(r *event.Reader) (float32, error) {
	if has, err := r.HasFloat(); err != nil {
		return 0, err
	} else if has {
		return r.ReadFloat()
	}
	if has, err := r.HasFloat16(); err != nil {
		return 0, err
	} else if has {
		return r.ReadFloat16()
	}
	d, err := r.ReadDouble()
	return float32(d), err
}

// Float64 is the Codec for float64.
var Float64 Codec[float64] = float64Codec{}

type float64Codec struct{}

func (float64Codec) Write(w *event.Writer, v float64) error { return w.WriteDouble(v) }

func (float64Codec) Read(r *event.Reader) (float64, error) {
	if has, err := r.HasDouble(); err != nil {
		return 0, err
	} else if has {
		return r.ReadDouble()
	}
	if has, err := r.HasFloat(); err != nil {
		return 0, err
	} else if has {
		f, err := r.ReadFloat()
		return float64(f), err
	}
	if has, err := r.HasFloat16(); err != nil {
		return 0, err
	} else if has {
		f, err := r.ReadFloat16()
		return float64(f), err
	}
	return r.ReadDouble()
}

// StringNumbers wraps an integer/float Decoder so it also accepts a JSON
// String that parses as the number. It covers the decode side only; the
// write side is left to the wrapped type's own Encoder.
func StringNumbers[T any](dec Decoder[T], parse func(string) (T, error)) Decoder[T] {
	return DecoderFunc[T](func(r *event.Reader) (T, error) {
		var zero T
		if has, err := r.HasString(); err != nil {
			return zero, err
		} else if has {
			s, err := r.ReadString()
			if err != nil {
				return zero, err
			}
			v, err := parse(s)
			if err != nil {
				return zero, r.UnexpectedDataItem("numeric string")
			}
			return v, nil
		}
		return dec.Read(r)
	})
}

// StringBooleansCodec serializes bool as the JSON strings "true"/"false"
// instead of the Boolean event kind.
var StringBooleansCodec Codec[bool] = stringBoolCodec{}

type stringBoolCodec struct{}

func (stringBoolCodec) Write(w *event.Writer, v bool) error {
	if v {
		return w.WriteString("true")
	}
	return w.WriteString("false")
}

func (stringBoolCodec) Read(r *event.Reader) (bool, error) {
	s, err := r.ReadString()
	if err != nil {
		return false, err
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, r.UnexpectedDataItem(`"true" or "false"`)
}

// StringNullsDecoder wraps a Decoder[T] pointer-shaped use case: a JSON
// string "null" decodes as a nil *T, the same as the format's native Null
// event; any other string is rejected.
func StringNullsDecoder[T any](dec Decoder[T]) Decoder[*T] {
	return DecoderFunc[*T](func(r *event.Reader) (*T, error) {
		if has, err := r.HasNull(); err != nil {
			return nil, err
		} else if has {
			return nil, r.ReadNull()
		}
		if has, err := r.HasString(); err != nil {
			return nil, err
		} else if has {
			s, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			if s == "null" {
				return nil, nil
			}
			return nil, r.UnexpectedDataItem(`"null"`)
		}
		v, err := dec.Read(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// ParseIntStrict is a strconv.ParseInt-based helper for StringNumbers over
// int64, provided since it's the overwhelmingly common instantiation.
func ParseIntStrict(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// ParseFloatStrict is the float64 analogue of ParseIntStrict.
func ParseFloatStrict(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
