package codec

import "github.com/corewire/codecore/event"

// Tuple2..Tuple8 are fixed-arity heterogeneous product types, each encoded
// as a definite-count array of exactly that many elements. Go has no
// built-in tuple type; these are the idiomatic stand-in for a fixed-shape
// record.

type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

type Tuple5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

type Tuple6[A, B, C, D, E, F any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
}

type Tuple7[A, B, C, D, E, F, G any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
}

type Tuple8[A, B, C, D, E, F, G, H any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
	V6 F
	V7 G
	V8 H
}

func tupleOpen(w *event.Writer, n uint64) (bool, error) { return w.WriteArrayOpen(n) }

func tupleExpect(r *event.Reader, n uint64) (bool, error) {
	got, unbounded, err := r.ReadArrayOpen()
	if err != nil {
		return false, err
	}
	if !unbounded && got != n {
		return false, r.UnexpectedDataItem("tuple of fixed arity")
	}
	return unbounded, nil
}

type tuple2Codec[A, B any] struct {
	a Codec[A]
	b Codec[B]
}

// Tuple2Codec builds a Codec for a 2-element fixed-arity tuple.
func Tuple2Codec[A, B any](a Codec[A], b Codec[B]) Codec[Tuple2[A, B]] {
	return tuple2Codec[A, B]{a, b}
}

func (c tuple2Codec[A, B]) Write(w *event.Writer, v Tuple2[A, B]) error {
	u, err := tupleOpen(w, 2)
	if err != nil {
		return err
	}
	if err := c.a.Write(w, v.V1); err != nil {
		return err
	}
	if err := c.b.Write(w, v.V2); err != nil {
		return err
	}
	return w.WriteArrayClose(u)
}

func (c tuple2Codec[A, B]) Read(r *event.Reader) (Tuple2[A, B], error) {
	u, err := tupleExpect(r, 2)
	if err != nil {
		return Tuple2[A, B]{}, err
	}
	v1, err := c.a.Read(r)
	if err != nil {
		return Tuple2[A, B]{}, err
	}
	v2, err := c.b.Read(r)
	if err != nil {
		return Tuple2[A, B]{}, err
	}
	return Tuple2[A, B]{v1, v2}, r.ReadArrayClose(u)
}

type tuple3Codec[A, B, C any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
}

// Tuple3Codec builds a Codec for a 3-element fixed-arity tuple.
func Tuple3Codec[A, B, C any](a Codec[A], b Codec[B], c Codec[C]) Codec[Tuple3[A, B, C]] {
	return tuple3Codec[A, B, C]{a, b, c}
}

func (t tuple3Codec[A, B, C]) Write(w *event.Writer, v Tuple3[A, B, C]) error {
	u, err := tupleOpen(w, 3)
	if err != nil {
		return err
	}
	if err := t.a.Write(w, v.V1); err != nil {
		return err
	}
	if err := t.b.Write(w, v.V2); err != nil {
		return err
	}
	if err := t.c.Write(w, v.V3); err != nil {
		return err
	}
	return w.WriteArrayClose(u)
}

func (t tuple3Codec[A, B, C]) Read(r *event.Reader) (Tuple3[A, B, C], error) {
	u, err := tupleExpect(r, 3)
	if err != nil {
		return Tuple3[A, B, C]{}, err
	}
	v1, err := t.a.Read(r)
	if err != nil {
		return Tuple3[A, B, C]{}, err
	}
	v2, err := t.b.Read(r)
	if err != nil {
		return Tuple3[A, B, C]{}, err
	}
	v3, err := t.c.Read(r)
	if err != nil {
		return Tuple3[A, B, C]{}, err
	}
	return Tuple3[A, B, C]{v1, v2, v3}, r.ReadArrayClose(u)
}

type tuple4Codec[A, B, C, D any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
	d Codec[D]
}

// Tuple4Codec builds a Codec for a 4-element fixed-arity tuple.
func Tuple4Codec[A, B, C, D any](a Codec[A], b Codec[B], c Codec[C], d Codec[D]) Codec[Tuple4[A, B, C, D]] {
	return tuple4Codec[A, B, C, D]{a, b, c, d}
}

func (t tuple4Codec[A, B, C, D]) Write(w *event.Writer, v Tuple4[A, B, C, D]) error {
	u, err := tupleOpen(w, 4)
	if err != nil {
		return err
	}
	for _, err := range []error{
		t.a.Write(w, v.V1), t.b.Write(w, v.V2), t.c.Write(w, v.V3), t.d.Write(w, v.V4),
	} {
		if err != nil {
			return err
		}
	}
	return w.WriteArrayClose(u)
}

func (t tuple4Codec[A, B, C, D]) Read(r *event.Reader) (Tuple4[A, B, C, D], error) {
	u, err := tupleExpect(r, 4)
	if err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	v1, err := t.a.Read(r)
	if err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	v2, err := t.b.Read(r)
	if err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	v3, err := t.c.Read(r)
	if err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	v4, err := t.d.Read(r)
	if err != nil {
		return Tuple4[A, B, C, D]{}, err
	}
	return Tuple4[A, B, C, D]{v1, v2, v3, v4}, r.ReadArrayClose(u)
}

// Tuple5Codec..Tuple8Codec follow the same pattern as Tuple2Codec..
// Tuple4Codec above, growing the arity by one field at a time; they are
// written out longhand (rather than generated) to match the rest of this
// package's style of explicit, unreflective codec construction.

type tuple5Codec[A, B, C, D, E any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
	d Codec[D]
	e Codec[E]
}

func Tuple5Codec[A, B, C, D, E any](a Codec[A], b Codec[B], c Codec[C], d Codec[D], e Codec[E]) Codec[Tuple5[A, B, C, D, E]] {
	return tuple5Codec[A, B, C, D, E]{a, b, c, d, e}
}

func (t tuple5Codec[A, B, C, D, E]) Write(w *event.Writer, v Tuple5[A, B, C, D, E]) error {
	u, err := tupleOpen(w, 5)
	if err != nil {
		return err
	}
	for _, err := range []error{
		t.a.Write(w, v.V1), t.b.Write(w, v.V2), t.c.Write(w, v.V3), t.d.Write(w, v.V4), t.e.Write(w, v.V5),
	} {
		if err != nil {
			return err
		}
	}
	return w.WriteArrayClose(u)
}

func (t tuple5Codec[A, B, C, D, E]) Read(r *event.Reader) (Tuple5[A, B, C, D, E], error) {
	u, err := tupleExpect(r, 5)
	if err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	v1, err := t.a.Read(r)
	if err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	v2, err := t.b.Read(r)
	if err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	v3, err := t.c.Read(r)
	if err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	v4, err := t.d.Read(r)
	if err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	v5, err := t.e.Read(r)
	if err != nil {
		return Tuple5[A, B, C, D, E]{}, err
	}
	return Tuple5[A, B, C, D, E]{v1, v2, v3, v4, v5}, r.ReadArrayClose(u)
}

type tuple6Codec[A, B, C, D, E, F any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
	d Codec[D]
	e Codec[E]
	f Codec[F]
}

func Tuple6Codec[A, B, C, D, E, F any](a Codec[A], b Codec[B], c Codec[C], d Codec[D], e Codec[E], f Codec[F]) Codec[Tuple6[A, B, C, D, E, F]] {
	return tuple6Codec[A, B, C, D, E, F]{a, b, c, d, e, f}
}

func (t tuple6Codec[A, B, C, D, E, F]) Write(w *event.Writer, v Tuple6[A, B, C, D, E, F]) error {
	u, err := tupleOpen(w, 6)
	if err != nil {
		return err
	}
	for _, err := range []error{
		t.a.Write(w, v.V1), t.b.Write(w, v.V2), t.c.Write(w, v.V3),
		t.d.Write(w, v.V4), t.e.Write(w, v.V5), t.f.Write(w, v.V6),
	} {
		if err != nil {
			return err
		}
	}
	return w.WriteArrayClose(u)
}

func (t tuple6Codec[A, B, C, D, E, F]) Read(r *event.Reader) (Tuple6[A, B, C, D, E, F], error) {
	u, err := tupleExpect(r, 6)
	if err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	v1, err := t.a.Read(r)
	if err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	v2, err := t.b.Read(r)
	if err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	v3, err := t.c.Read(r)
	if err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	v4, err := t.d.Read(r)
	if err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	v5, err := t.e.Read(r)
	if err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	v6, err := t.f.Read(r)
	if err != nil {
		return Tuple6[A, B, C, D, E, F]{}, err
	}
	return Tuple6[A, B, C, D, E, F]{v1, v2, v3, v4, v5, v6}, r.ReadArrayClose(u)
}

type tuple7Codec[A, B, C, D, E, F, G any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
	d Codec[D]
	e Codec[E]
	f Codec[F]
	g Codec[G]
}

func Tuple7Codec[A, B, C, D, E, F, G any](a Codec[A], b Codec[B], c Codec[C], d Codec[D], e Codec[E], f Codec[F], g Codec[G]) Codec[Tuple7[A, B, C, D, E, F, G]] {
	return tuple7Codec[A, B, C, D, E, F, G]{a, b, c, d, e, f, g}
}

func (t tuple7Codec[A, B, C, D, E, F, G]) Write(w *event.Writer, v Tuple7[A, B, C, D, E, F, G]) error {
	u, err := tupleOpen(w, 7)
	if err != nil {
		return err
	}
	for _, err := range []error{
		t.a.Write(w, v.V1), t.b.Write(w, v.V2), t.c.Write(w, v.V3), t.d.Write(w, v.V4),
		t.e.Write(w, v.V5), t.f.Write(w, v.V6), t.g.Write(w, v.V7),
	} {
		if err != nil {
			return err
		}
	}
	return w.WriteArrayClose(u)
}

func (t tuple7Codec[A, B, C, D, E, F, G]) Read(r *event.Reader) (Tuple7[A, B, C, D, E, F, G], error) {
	u, err := tupleExpect(r, 7)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	v1, err := t.a.Read(r)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	v2, err := t.b.Read(r)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	v3, err := t.c.Read(r)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	v4, err := t.d.Read(r)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	v5, err := t.e.Read(r)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	v6, err := t.f.Read(r)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	v7, err := t.g.Read(r)
	if err != nil {
		return Tuple7[A, B, C, D, E, F, G]{}, err
	}
	return Tuple7[A, B, C, D, E, F, G]{v1, v2, v3, v4, v5, v6, v7}, r.ReadArrayClose(u)
}

type tuple8Codec[A, B, C, D, E, F, G, H any] struct {
	a Codec[A]
	b Codec[B]
	c Codec[C]
	d Codec[D]
	e Codec[E]
	f Codec[F]
	g Codec[G]
	h Codec[H]
}

func Tuple8Codec[A, B, C, D, E, F, G, H any](a Codec[A], b Codec[B], c Codec[C], d Codec[D], e Codec[E], f Codec[F], g Codec[G], h Codec[H]) Codec[Tuple8[A, B, C, D, E, F, G, H]] {
	return tuple8Codec[A, B, C, D, E, F, G, H]{a, b, c, d, e, f, g, h}
}

func (t tuple8Codec[A, B, C, D, E, F, G, H]) Write(w *event.Writer, v Tuple8[A, B, C, D, E, F, G, H]) error {
	u, err := tupleOpen(w, 8)
	if err != nil {
		return err
	}
	for _, err := range []error{
		t.a.Write(w, v.V1), t.b.Write(w, v.V2), t.c.Write(w, v.V3), t.d.Write(w, v.V4),
		t.e.Write(w, v.V5), t.f.Write(w, v.V6), t.g.Write(w, v.V7), t.h.Write(w, v.V8),
	} {
		if err != nil {
			return err
		}
	}
	return w.WriteArrayClose(u)
}

func (t tuple8Codec[A, B, C, D, E, F, G, H]) Read(r *event.Reader) (Tuple8[A, B, C, D, E, F, G, H], error) {
	u, err := tupleExpect(r, 8)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v1, err := t.a.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v2, err := t.b.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v3, err := t.c.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v4, err := t.d.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v5, err := t.e.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v6, err := t.f.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v7, err := t.g.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	v8, err := t.h.Read(r)
	if err != nil {
		return Tuple8[A, B, C, D, E, F, G, H]{}, err
	}
	return Tuple8[A, B, C, D, E, F, G, H]{v1, v2, v3, v4, v5, v6, v7, v8}, r.ReadArrayClose(u)
}
