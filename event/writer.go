package event

import "github.com/corewire/codecore/errs"

// Writer wraps a Renderer and exposes a symmetric push API to the Reader's
// pull one. Kept as a plain mutable struct over a Renderer, the same shape
// as a lower-level byte-buffer writer with one WriteXxx method per item
// kind — generalized here from "wraps a raw buffer" to "wraps a
// format-agnostic Renderer".
type Writer struct {
	r Renderer
}

// NewWriter constructs a Writer over r.
func NewWriter(r Renderer) *Writer { return &Writer{r: r} }

// Position returns the underlying renderer's current diagnostic position.
func (w *Writer) Position() errs.Position { return w.r.Position() }

// PrefersDefiniteLength exposes the wrapped Renderer's format preference,
// letting a codec pick a representation accordingly (e.g. the default
// []byte codec writes a native Bytes item for a CBOR-backed Writer, and a
// base64 string for a JSON-backed one, since JSON has no byte-string kind).
func (w *Writer) PrefersDefiniteLength() bool { return w.r.PrefersDefiniteLength() }

func (w *Writer) WriteNull() error      { return w.r.Push(NullItem()) }
func (w *Writer) WriteUndefined() error { return w.r.Push(UndefinedItem()) }
func (w *Writer) WriteBool(b bool) error { return w.r.Push(BoolItem(b)) }
func (w *Writer) WriteInt(i int32) error { return w.r.Push(IntItem(i)) }
func (w *Writer) WriteLong(i int64) error { return w.r.Push(LongItem(i)) }

// WriteOverLong writes a magnitude that does not fit in a signed int64.
func (w *Writer) WriteOverLong(neg bool, raw uint64) error {
	return w.r.Push(OverLongItem(neg, raw))
}

func (w *Writer) WriteFloat16(f float32) error   { return w.r.Push(Float16Item(f)) }
func (w *Writer) WriteFloat(f float32) error     { return w.r.Push(FloatItem(f)) }
func (w *Writer) WriteDouble(f float64) error    { return w.r.Push(DoubleItem(f)) }
func (w *Writer) WriteNumberString(s string) error { return w.r.Push(NumberStringItem(s)) }

func (w *Writer) WriteBytes(b []byte) error     { return w.r.Push(BytesItem(b)) }
func (w *Writer) WriteBytesStart() error        { return w.r.Push(BytesStartItem()) }
func (w *Writer) WriteString(s string) error    { return w.r.Push(StringItem(s)) }
func (w *Writer) WriteTextStart() error         { return w.r.Push(TextStartItem()) }

func (w *Writer) WriteArrayHeader(n uint64) error { return w.r.Push(ArrayHeaderItem(n)) }
func (w *Writer) WriteArrayStart() error          { return w.r.Push(ArrayStartItem()) }
func (w *Writer) WriteMapHeader(n uint64) error   { return w.r.Push(MapHeaderItem(n)) }
func (w *Writer) WriteMapStart() error            { return w.r.Push(MapStartItem()) }
func (w *Writer) WriteBreak() error               { return w.r.Push(BreakItem()) }
func (w *Writer) WriteTag(tag uint64) error       { return w.r.Push(TagItem(tag)) }
func (w *Writer) WriteSimpleValue(v byte) error   { return w.r.Push(SimpleValueItem(v)) }

// WriteArrayOpen writes an ArrayHeader(n) when the renderer prefers
// definite lengths, otherwise an ArrayStart; it returns whether it chose
// the indefinite form, to be passed to the matching WriteArrayClose. A
// caller that already knows it must be one or the other (e.g. CBOR
// indefinite byte-string chunking) should call WriteArrayStart/
// WriteArrayHeader directly instead.
func (w *Writer) WriteArrayOpen(n uint64) (unbounded bool, err error) {
	if w.r.PrefersDefiniteLength() {
		return false, w.WriteArrayHeader(n)
	}
	return true, w.WriteArrayStart()
}

// WriteArrayClose writes a Break if and only if unbounded is true.
func (w *Writer) WriteArrayClose(unbounded bool) error {
	if !unbounded {
		return nil
	}
	return w.WriteBreak()
}

// WriteMapOpen is the map analogue of WriteArrayOpen.
func (w *Writer) WriteMapOpen(n uint64) (unbounded bool, err error) {
	if w.r.PrefersDefiniteLength() {
		return false, w.WriteMapHeader(n)
	}
	return true, w.WriteMapStart()
}

// WriteMapClose is the map analogue of WriteArrayClose.
func (w *Writer) WriteMapClose(unbounded bool) error {
	if !unbounded {
		return nil
	}
	return w.WriteBreak()
}
