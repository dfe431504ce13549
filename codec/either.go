package codec

import "github.com/corewire/codecore/event"

// EitherMode selects the on-wire shape of an Either.
type EitherMode int

const (
	// EitherArray is the default shape: a 2-element array
	// [discriminant, value], discriminant 0 for Left and 1 for Right.
	EitherArray EitherMode = iota
	// EitherSingletonMap writes a one-entry map {"0": value} or
	// {"1": value} instead, for callers that want an object-shaped wire
	// form in JSON.
	EitherSingletonMap
)

// Either is the Go stand-in for a disjoint union of two types.
type Either[A, B any] struct {
	IsRight bool
	Left    A
	Right   B
}

// LeftOf builds a Left-valued Either.
func LeftOf[A, B any](a A) Either[A, B] { return Either[A, B]{Left: a} }

// RightOf builds a Right-valued Either.
func RightOf[A, B any](b B) Either[A, B] { return Either[A, B]{IsRight: true, Right: b} }

type eitherCodec[A, B any] struct {
	a    Codec[A]
	b    Codec[B]
	mode EitherMode
}

// EitherCodec builds a Codec[Either[A,B]] under the given mode.
func EitherCodec[A, B any](a Codec[A], b Codec[B], mode EitherMode) Codec[Either[A, B]] {
	return eitherCodec[A, B]{a: a, b: b, mode: mode}
}

func (c eitherCodec[A, B]) writeValue(w *event.Writer, v Either[A, B]) error {
	if v.IsRight {
		return c.b.Write(w, v.Right)
	}
	return c.a.Write(w, v.Left)
}

func (c eitherCodec[A, B]) Write(w *event.Writer, v Either[A, B]) error {
	switch c.mode {
	case EitherSingletonMap:
		unbounded, err := w.WriteMapOpen(1)
		if err != nil {
			return err
		}
		key := "0"
		if v.IsRight {
			key = "1"
		}
		if err := w.WriteString(key); err != nil {
			return err
		}
		if err := c.writeValue(w, v); err != nil {
			return err
		}
		return w.WriteMapClose(unbounded)
	default:
		disc := int32(0)
		if v.IsRight {
			disc = 1
		}
		unbounded, err := w.WriteArrayOpen(2)
		if err != nil {
			return err
		}
		if err := w.WriteInt(disc); err != nil {
			return err
		}
		if err := c.writeValue(w, v); err != nil {
			return err
		}
		return w.WriteArrayClose(unbounded)
	}
}

func (c eitherCodec[A, B]) readBranch(r *event.Reader, isRight bool) (Either[A, B], error) {
	if isRight {
		v, err := c.b.Read(r)
		if err != nil {
			return Either[A, B]{}, err
		}
		return Either[A, B]{IsRight: true, Right: v}, nil
	}
	v, err := c.a.Read(r)
	if err != nil {
		return Either[A, B]{}, err
	}
	return Either[A, B]{Left: v}, nil
}

func (c eitherCodec[A, B]) Read(r *event.Reader) (Either[A, B], error) {
	switch c.mode {
	case EitherSingletonMap:
		_, unbounded, err := r.ReadMapOpen()
		if err != nil {
			return Either[A, B]{}, err
		}
		key, err := r.ReadString()
		if err != nil {
			return Either[A, B]{}, err
		}
		var out Either[A, B]
		switch key {
		case "0":
			out, err = c.readBranch(r, false)
		case "1":
			out, err = c.readBranch(r, true)
		default:
			return Either[A, B]{}, r.UnexpectedDataItem(`"0" or "1" key`)
		}
		if err != nil {
			return Either[A, B]{}, err
		}
		return out, r.ReadMapClose(unbounded)
	default:
		_, unbounded, err := r.ReadArrayOpen()
		if err != nil {
			return Either[A, B]{}, err
		}
		disc, err := r.ReadInt()
		if err != nil {
			return Either[A, B]{}, err
		}
		var out Either[A, B]
		switch disc {
		case 0:
			out, err = c.readBranch(r, false)
		case 1:
			out, err = c.readBranch(r, true)
		default:
			return Either[A, B]{}, r.UnexpectedDataItem("0 or 1 discriminant")
		}
		if err != nil {
			return Either[A, B]{}, err
		}
		return out, r.ReadArrayClose(unbounded)
	}
}
