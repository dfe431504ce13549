package ioadapt

import (
	"bytes"
	"io"
)

// ByteAccess abstracts an opaque byte container type B so that Output and
// the encode-setup builders can materialize a result as something other
// than a plain []byte without the hot encode/decode path knowing about it.
//
// Implementations must be safe to use with the zero value of B where Go's
// zero value is meaningful (e.g. a nil []byte behaves like an empty one).
type ByteAccess[B any] interface {
	// Size returns the length, in bytes, of b.
	Size(b B) int
	// FromBytes converts a plain []byte into B. The returned value may
	// share the backing array of src; callers must not mutate src afterward.
	FromBytes(src []byte) B
	// ToBytes converts B back into a plain []byte. The returned slice may
	// share the backing array of b; callers must not mutate it.
	ToBytes(b B) []byte
	// Concat returns the concatenation of a and b.
	Concat(a, b B) B
	// Empty returns the zero-length value of B.
	Empty() B
	// CopyInto copies bytes from src, starting at start, into dst, filling
	// dst completely. It returns the tail of src that did not fit into dst.
	CopyInto(src B, dst []byte, start int) (tail B)
	// CopyIntoSink writes the entirety of src to w.
	CopyIntoSink(src B, w io.Writer) error
}

// ByteSliceAccess is the canonical, zero-copy ByteAccess implementation for
// plain []byte. It is the default used throughout the package.
type ByteSliceAccess struct{}

func (ByteSliceAccess) Size(b []byte) int { return len(b) }

func (ByteSliceAccess) FromBytes(src []byte) []byte { return src }

func (ByteSliceAccess) ToBytes(b []byte) []byte { return b }

func (ByteSliceAccess) Concat(a, b []byte) []byte {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]byte, len(a)+len(b))
	copy(out, a)
	copy(out[len(a):], b)
	return out
}

func (ByteSliceAccess) Empty() []byte { return nil }

func (ByteSliceAccess) CopyInto(src []byte, dst []byte, start int) (tail []byte) {
	n := copy(dst[start:], src)
	return src[n:]
}

func (ByteSliceAccess) CopyIntoSink(src []byte, w io.Writer) error {
	_, err := w.Write(src)
	return err
}

// BufferAccess adapts *bytes.Buffer as a ByteAccess container, for callers
// that want the result of an encode call handed back as a *bytes.Buffer
// (e.g. to feed straight into an io.Writer-oriented API) without an
// intermediate []byte copy.
type BufferAccess struct{}

func (BufferAccess) Size(b *bytes.Buffer) int { return b.Len() }

func (BufferAccess) FromBytes(src []byte) *bytes.Buffer {
	return bytes.NewBuffer(src)
}

func (BufferAccess) ToBytes(b *bytes.Buffer) []byte { return b.Bytes() }

func (BufferAccess) Concat(a, b *bytes.Buffer) *bytes.Buffer {
	out := bytes.NewBuffer(make([]byte, 0, a.Len()+b.Len()))
	out.Write(a.Bytes())
	out.Write(b.Bytes())
	return out
}

func (BufferAccess) Empty() *bytes.Buffer { return &bytes.Buffer{} }

func (BufferAccess) CopyInto(src *bytes.Buffer, dst []byte, start int) (tail *bytes.Buffer) {
	n := copy(dst[start:], src.Bytes())
	return bytes.NewBuffer(src.Bytes()[n:])
}

func (BufferAccess) CopyIntoSink(src *bytes.Buffer, w io.Writer) error {
	_, err := w.Write(src.Bytes())
	return err
}

// StringAccess adapts string as a read-only ByteAccess container, useful for
// ISO-8859-1 ("raw byte") string views produced by Input.PrecedingBytesAsASCII.
type StringAccess struct{}

func (StringAccess) Size(s string) int { return len(s) }

func (StringAccess) FromBytes(src []byte) string { return string(src) }

func (StringAccess) ToBytes(s string) []byte { return []byte(s) }

func (StringAccess) Concat(a, b string) string { return a + b }

func (StringAccess) Empty() string { return "" }

func (StringAccess) CopyInto(src string, dst []byte, start int) (tail string) {
	n := copy(dst[start:], src)
	return src[n:]
}

func (StringAccess) CopyIntoSink(src string, w io.Writer) error {
	_, err := io.WriteString(w, src)
	return err
}
