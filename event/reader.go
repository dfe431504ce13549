package event

import "github.com/corewire/codecore/errs"

// Reader wraps a Parser and buffers exactly one peeked event, the
// single-item lookahead a pull API needs to let a caller check a kind
// before committing to consume it. It is a plain mutable struct holding
// the Parser as an interface value, so every pull is a dynamic call,
// generalized from "wraps a raw []byte" to "wraps a format-agnostic Parser".
type Reader struct {
	p         Parser
	peeked    Item
	hasPeeked bool
}

// NewReader constructs a Reader over p.
func NewReader(p Parser) *Reader { return &Reader{p: p} }

// Position returns the underlying parser's current diagnostic position.
func (r *Reader) Position() errs.Position { return r.p.Position() }

func (r *Reader) peek() (Item, error) {
	if r.hasPeeked {
		return r.peeked, nil
	}
	it, err := r.p.Pull()
	if err != nil {
		return Item{}, err
	}
	r.peeked = it
	r.hasPeeked = true
	return it, nil
}

func (r *Reader) advance() Item {
	it := r.peeked
	r.hasPeeked = false
	r.peeked = Item{}
	return it
}

// unexpected raises UnexpectedDataItem naming what the caller expected.
func (r *Reader) unexpected(expected string, got Item) error {
	return errs.New(errs.UnexpectedDataItem, r.Position(), "expected "+expected+" but got "+got.Kind.String())
}

// UnexpectedDataItem is the reader's canonical way for a decoder that has
// already peeked an unsuitable item to raise a positioned error.
func (r *Reader) UnexpectedDataItem(expected string) error {
	it, err := r.peek()
	if err != nil {
		return err
	}
	return r.unexpected(expected, it)
}

// --- tag transparency ---
//
// The reader transparently skips a leading Tag unless the caller explicitly
// calls ReadTag. peekSkippingTag is used by every Has*/Read* method so a
// tag preceding, say, an Int is invisible to a caller that only cares about
// the Int.

func (r *Reader) peekSkippingTag() (Item, error) {
	it, err := r.peek()
	if err != nil {
		return Item{}, err
	}
	if it.Kind != Tag {
		return it, nil
	}
	r.advance()
	return r.peekSkippingTag()
}

// HasTag reports whether the next item, without skipping, is a Tag.
func (r *Reader) HasTag() (bool, error) {
	it, err := r.peek()
	if err != nil {
		return false, err
	}
	return it.Kind == Tag, nil
}

// ReadTag consumes a Tag item and returns its number. It is the only
// reader method that does not skip tags itself.
func (r *Reader) ReadTag() (uint64, error) {
	it, err := r.peek()
	if err != nil {
		return 0, err
	}
	if it.Kind != Tag {
		return 0, r.unexpected("Tag", it)
	}
	r.advance()
	return it.TagNum, nil
}

func (r *Reader) has(k Kind) (bool, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return false, err
	}
	return it.Kind == k, nil
}

func (r *Reader) HasNull() (bool, error)      { return r.has(Null) }
func (r *Reader) HasUndefined() (bool, error) { return r.has(Undefined) }
func (r *Reader) HasBoolean() (bool, error)   { return r.has(Boolean) }
func (r *Reader) HasBreak() (bool, error)     { return r.has(Break) }
func (r *Reader) HasEndOfInput() (bool, error) { return r.has(EndOfInput) }

// HasInt reports whether the next item is representable as an int32
// without loss: Int always is; Long is checked by magnitude; OverLong never is.
func (r *Reader) HasInt() (bool, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return false, err
	}
	switch it.Kind {
	case Int:
		return true, nil
	case Long:
		return it.I64 >= -(1<<31) && it.I64 < (1<<31), nil
	default:
		return false, nil
	}
}

func (r *Reader) HasLong() (bool, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return false, err
	}
	return it.Kind == Int || it.Kind == Long, nil
}

func (r *Reader) HasOverLong() (bool, error) { return r.has(OverLong) }
func (r *Reader) HasFloat16() (bool, error)  { return r.has(Float16) }
func (r *Reader) HasFloat() (bool, error)    { return r.has(Float) }
func (r *Reader) HasDouble() (bool, error)   { return r.has(Double) }
func (r *Reader) HasNumberString() (bool, error) { return r.has(NumberString) }
func (r *Reader) HasBytes() (bool, error)    { return r.has(Bytes) }
func (r *Reader) HasBytesStart() (bool, error) { return r.has(BytesStart) }

// HasString reports whether the next item is a String or Chars (the two
// textual representations are interchangeable to callers).
func (r *Reader) HasString() (bool, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return false, err
	}
	return it.Kind == String || it.Kind == Chars, nil
}

func (r *Reader) HasTextStart() (bool, error) { return r.has(TextStart) }
func (r *Reader) HasArrayHeader() (bool, error) { return r.has(ArrayHeader) }
func (r *Reader) HasArrayStart() (bool, error)  { return r.has(ArrayStart) }
func (r *Reader) HasMapHeader() (bool, error)   { return r.has(MapHeader) }
func (r *Reader) HasMapStart() (bool, error)    { return r.has(MapStart) }
func (r *Reader) HasSimpleValue() (bool, error) { return r.has(SimpleValue) }

// --- consumers ---

func (r *Reader) ReadNull() error {
	it, err := r.peekSkippingTag()
	if err != nil {
		return err
	}
	if it.Kind != Null {
		return r.unexpected("Null", it)
	}
	r.advance()
	return nil
}

func (r *Reader) ReadUndefined() error {
	it, err := r.peekSkippingTag()
	if err != nil {
		return err
	}
	if it.Kind != Undefined {
		return r.unexpected("Undefined", it)
	}
	r.advance()
	return nil
}

func (r *Reader) ReadBreak() error {
	it, err := r.peekSkippingTag()
	if err != nil {
		return err
	}
	if it.Kind != Break {
		return r.unexpected("Break", it)
	}
	r.advance()
	return nil
}

func (r *Reader) ReadBoolean() (bool, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return false, err
	}
	if it.Kind != Boolean {
		return false, r.unexpected("Boolean", it)
	}
	r.advance()
	return it.Bool, nil
}

// ReadInt reads an Int, or a Long that fits losslessly in int32.
func (r *Reader) ReadInt() (int32, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	switch it.Kind {
	case Int:
		r.advance()
		return it.I32, nil
	case Long:
		if it.I64 >= -(1<<31) && it.I64 < (1<<31) {
			r.advance()
			return int32(it.I64), nil
		}
	}
	return 0, r.unexpected("Int", it)
}

// ReadLong reads a Long, widening an Int if that's what's present.
func (r *Reader) ReadLong() (int64, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	switch it.Kind {
	case Int:
		r.advance()
		return int64(it.I32), nil
	case Long:
		r.advance()
		return it.I64, nil
	}
	return 0, r.unexpected("Long", it)
}

// ReadOverLong reads an OverLong item, returning its sign and raw magnitude.
func (r *Reader) ReadOverLong() (neg bool, raw uint64, err error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return false, 0, err
	}
	if it.Kind != OverLong {
		return false, 0, r.unexpected("OverLong", it)
	}
	r.advance()
	return it.OverLongNeg, it.OverLongRaw, nil
}

func (r *Reader) ReadFloat16() (float32, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	if it.Kind != Float16 {
		return 0, r.unexpected("Float16", it)
	}
	r.advance()
	return it.F32, nil
}

func (r *Reader) ReadFloat() (float32, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	if it.Kind != Float {
		return 0, r.unexpected("Float", it)
	}
	r.advance()
	return it.F32, nil
}

func (r *Reader) ReadDouble() (float64, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	if it.Kind != Double {
		return 0, r.unexpected("Double", it)
	}
	r.advance()
	return it.F64, nil
}

func (r *Reader) ReadNumberString() (string, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return "", err
	}
	if it.Kind != NumberString {
		return "", r.unexpected("NumberString", it)
	}
	r.advance()
	return it.Str, nil
}

func (r *Reader) ReadBytes() ([]byte, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return nil, err
	}
	if it.Kind != Bytes {
		return nil, r.unexpected("Bytes", it)
	}
	r.advance()
	return it.Bin, nil
}

// ReadString reads a String or Chars item as a Go string.
func (r *Reader) ReadString() (string, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return "", err
	}
	if it.Kind != String && it.Kind != Chars {
		return "", r.unexpected("String", it)
	}
	r.advance()
	return it.AsString(), nil
}

func (r *Reader) ReadSimpleValue() (byte, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	if it.Kind != SimpleValue {
		return 0, r.unexpected("SimpleValue", it)
	}
	r.advance()
	return it.Simple, nil
}

// ReadArrayHeader asserts and consumes a definite-length ArrayHeader,
// returning its declared item count.
func (r *Reader) ReadArrayHeader() (uint64, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	if it.Kind != ArrayHeader {
		return 0, r.unexpected("ArrayHeader", it)
	}
	r.advance()
	return it.Len, nil
}

// ReadArrayOpen consumes either an ArrayHeader or an ArrayStart and reports
// which: unbounded=true for ArrayStart (the caller must later call
// ReadArrayClose(true)), unbounded=false for ArrayHeader (n is the declared
// count). This is the canonical, format-agnostic way for a collection
// decoder to begin reading an array.
func (r *Reader) ReadArrayOpen() (n uint64, unbounded bool, err error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, false, err
	}
	switch it.Kind {
	case ArrayHeader:
		r.advance()
		return it.Len, false, nil
	case ArrayStart:
		r.advance()
		return 0, true, nil
	}
	return 0, false, r.unexpected("ArrayHeader or ArrayStart", it)
}

// ReadArrayClose consumes a matching Break if and only if unbounded is
// true. It returns only the error: it takes no accumulated value, so a
// collection decoder returns its own result after calling it.
func (r *Reader) ReadArrayClose(unbounded bool) error {
	if !unbounded {
		return nil
	}
	return r.ReadBreak()
}

// ReadMapHeader asserts and consumes a definite-length MapHeader, returning
// its declared pair count.
func (r *Reader) ReadMapHeader() (uint64, error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, err
	}
	if it.Kind != MapHeader {
		return 0, r.unexpected("MapHeader", it)
	}
	r.advance()
	return it.Len, nil
}

// ReadMapOpen is the map analogue of ReadArrayOpen.
func (r *Reader) ReadMapOpen() (n uint64, unbounded bool, err error) {
	it, err := r.peekSkippingTag()
	if err != nil {
		return 0, false, err
	}
	switch it.Kind {
	case MapHeader:
		r.advance()
		return it.Len, false, nil
	case MapStart:
		r.advance()
		return 0, true, nil
	}
	return 0, false, r.unexpected("MapHeader or MapStart", it)
}

// ReadMapClose is the map analogue of ReadArrayClose.
func (r *Reader) ReadMapClose(unbounded bool) error {
	if !unbounded {
		return nil
	}
	return r.ReadBreak()
}

// ReadEndOfInput asserts the stream has nothing left but EndOfInput.
func (r *Reader) ReadEndOfInput() error {
	it, err := r.peek()
	if err != nil {
		return err
	}
	if it.Kind != EndOfInput {
		return r.unexpected("EndOfInput", it)
	}
	r.advance()
	return nil
}

// SkipItem consumes and discards exactly one top-level item (tags count as
// a prefix of the item they qualify, not a separate item), recursing into
// containers as needed. It is used by decoders that need to ignore an
// unknown field.
func (r *Reader) SkipItem() error {
	return r.skip(0)
}

func (r *Reader) skip(depth int) error {
	if depth > MaxNestingLevels {
		return errs.New(errs.Overflow, r.Position(), "max nesting depth exceeded while skipping")
	}
	it, err := r.peek()
	if err != nil {
		return err
	}
	r.advance()
	switch it.Kind {
	case Tag:
		return r.skip(depth)
	case ArrayHeader:
		for i := uint64(0); i < it.Len; i++ {
			if err := r.skip(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case ArrayStart, BytesStart, TextStart:
		for {
			nit, err := r.peek()
			if err != nil {
				return err
			}
			if nit.Kind == Break {
				r.advance()
				return nil
			}
			if err := r.skip(depth + 1); err != nil {
				return err
			}
		}
	case MapHeader:
		for i := uint64(0); i < it.Len*2; i++ {
			if err := r.skip(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case MapStart:
		for {
			nit, err := r.peek()
			if err != nil {
				return err
			}
			if nit.Kind == Break {
				r.advance()
				return nil
			}
			if err := r.skip(depth + 1); err != nil { // key
				return err
			}
			if err := r.skip(depth + 1); err != nil { // value
				return err
			}
		}
	default:
		return nil
	}
}
