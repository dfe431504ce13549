package ioadapt

import (
	"encoding/binary"

	"github.com/corewire/codecore/errs"
)

// PaddingProvider supplies bytes when a padded read runs past the logical
// end of an Input. Parsers use ZeroPadding (0xFF fill, matching CBOR's
// "ran off the end of a well-formed-looking item" failure mode, which is
// then rejected downstream by length checks); read-only string views use
// StrictPadding, which always raises UnexpectedEndOfInput.
type PaddingProvider interface {
	// Pad fills dst[have:] and returns the number of bytes written, which
	// must equal len(dst)-have unless err is non-nil.
	Pad(dst []byte, have int) (n int, err error)
}

// ZeroPadding pads with 0xFF. Used by parsers: a padded read that runs off
// the end of the buffer is virtually always going to fail a subsequent
// length or bounds check, so padding with a recognizable, non-zero byte
// makes the resulting (still-reported) error easier to diagnose.
type ZeroPadding struct{}

func (ZeroPadding) Pad(dst []byte, have int) (int, error) {
	for i := have; i < len(dst); i++ {
		dst[i] = 0xFF
	}
	return len(dst) - have, nil
}

// StrictPadding never pads; it always raises UnexpectedEndOfInput. Used
// wherever a short read can never be legitimate, such as ISO-8859-1 slice
// views of an exact declared length.
type StrictPadding struct {
	Pos Position
}

func (p StrictPadding) Pad(dst []byte, have int) (int, error) {
	return 0, errs.New(errs.UnexpectedEndOfInput, p.Pos, "unexpected end of input")
}

// Input is a byte source with a monotonic cursor. Every padded read
// advances the cursor by exactly the number of bytes requested, padding
// with the supplied PaddingProvider on short reads.
type Input struct {
	buf []byte
	pos int
}

// NewInput constructs an Input over a byte slice. The slice is not copied;
// the caller must not mutate it while the Input is in use.
func NewInput(buf []byte) *Input {
	return &Input{buf: buf}
}

// Position returns a diagnostic position for the current cursor.
func (in *Input) Position() Position {
	return Position{Cursor: int64(in.pos)}
}

// Len returns the number of unread bytes.
func (in *Input) Len() int { return len(in.buf) - in.pos }

// PeekByte returns the byte at the cursor without advancing it, and whether
// one was available.
func (in *Input) PeekByte() (byte, bool) {
	if in.pos >= len(in.buf) {
		return 0, false
	}
	return in.buf[in.pos], true
}

// Byte reads and consumes one byte, padding via pp if none remains.
func (in *Input) Byte(pp PaddingProvider) (byte, error) {
	if in.pos < len(in.buf) {
		b := in.buf[in.pos]
		in.pos++
		return b, nil
	}
	var tmp [1]byte
	if _, err := pp.Pad(tmp[:], 0); err != nil {
		return 0, err
	}
	in.pos++
	return tmp[0], nil
}

// DoubleByteBE reads a big-endian uint16, padding via pp on a short read.
// The cursor always advances by exactly 2.
func (in *Input) DoubleByteBE(pp PaddingProvider) (uint16, error) {
	var tmp [2]byte
	if err := in.readPadded(tmp[:], pp); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(tmp[:]), nil
}

// QuadByteBE reads a big-endian uint32, padding via pp on a short read.
func (in *Input) QuadByteBE(pp PaddingProvider) (uint32, error) {
	var tmp [4]byte
	if err := in.readPadded(tmp[:], pp); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(tmp[:]), nil
}

// OctaByteBE reads a big-endian uint64, padding via pp on a short read.
func (in *Input) OctaByteBE(pp PaddingProvider) (uint64, error) {
	var tmp [8]byte
	if err := in.readPadded(tmp[:], pp); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(tmp[:]), nil
}

func (in *Input) readPadded(dst []byte, pp PaddingProvider) error {
	have := copy(dst, in.buf[in.pos:])
	in.pos += have
	if have < len(dst) {
		n, err := pp.Pad(dst, have)
		in.pos += n
		if err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns exactly length bytes from the current position, padding
// via pp on a short read, and advances the cursor by length. The returned
// slice shares the Input's backing array when no padding was needed and
// must be treated as read-only by the caller.
func (in *Input) Bytes(length int, pp PaddingProvider) ([]byte, error) {
	if length < 0 {
		return nil, errs.New(errs.InvalidInputData, in.Position(), "negative length")
	}
	if in.pos+length <= len(in.buf) {
		out := in.buf[in.pos : in.pos+length]
		in.pos += length
		return out, nil
	}
	out := make([]byte, length)
	if err := in.readPadded(out, pp); err != nil {
		return nil, err
	}
	return out, nil
}

// PrecedingBytesAsASCII returns the last length bytes before the current
// cursor as an ISO-8859-1 (Latin-1) string, without UTF-8 decoding. This is
// used by the JSON parser to materialize a NumberString lexeme directly
// from the input bytes it already consumed, rather than re-serializing a
// parsed numeric value.
func (in *Input) PrecedingBytesAsASCII(length int) string {
	start := in.pos - length
	if start < 0 {
		start = 0
	}
	b := in.buf[start:in.pos]
	out := make([]byte, len(b))
	copy(out, b)
	return string(out)
}

// Skip advances the cursor by n bytes without reading them, padding
// logically (the skipped region is treated as present even past the
// logical end, matching the padded-read contract used elsewhere).
func (in *Input) Skip(n int) {
	in.pos += n
}
