package cborproto

import (
	"math"
	"unicode/utf8"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
	"github.com/x448/float16"
)

// Renderer writes event.Items as CBOR bytes to an ioadapt.Output, tracking
// nesting depth and a per-level expected-remaining counter the way a
// recursive well-formedness walk would — reshaped into an explicit stack
// (frameStack) so a single Push call can do the accounting instead of
// recursing over a whole document at once.
type Renderer struct {
	out    ioadapt.Output
	cfg    Config
	frames frameStack
	cursor int64
}

// NewRenderer constructs a Renderer writing to out under cfg.
func NewRenderer(out ioadapt.Output, cfg Config) *Renderer {
	return &Renderer{out: out, cfg: cfg, frames: frameStack{limit: cfg.nestingLimit()}}
}

func (r *Renderer) Position() errs.Position { return errs.Position{Cursor: r.cursor} }

// PrefersDefiniteLength reports true: CBOR's canonical form prefers
// definite-length headers, and the Renderer can emit either shape on
// request (WriteArrayOpen/WriteMapOpen honor this).
func (r *Renderer) PrefersDefiniteLength() bool { return true }

func (r *Renderer) fail(kind errs.Kind, msg string) error {
	return errs.New(kind, r.Position(), msg)
}

func (r *Renderer) writeByte(b byte) error {
	r.cursor++
	return r.out.WriteByte(b)
}

func (r *Renderer) writeBytes(bs ...byte) error {
	r.cursor += int64(len(bs))
	return r.out.WriteBytes(bs...)
}

func (r *Renderer) writeBytesFrom(b []byte) error {
	r.cursor += int64(len(b))
	return r.out.WriteBytesFrom(b)
}

// writeHead emits the canonical-minimal-width major-type/argument header.
func (r *Renderer) writeHead(major uint8, value uint64) error {
	switch {
	case value <= 23:
		return r.writeByte(byte(major<<5) | byte(value))
	case value <= math.MaxUint8:
		return r.writeBytes(byte(major<<5)|addInfoUint8, byte(value))
	case value <= math.MaxUint16:
		return r.writeBytes(byte(major<<5)|addInfoUint16, byte(value>>8), byte(value))
	case value <= math.MaxUint32:
		return r.writeBytes(byte(major<<5)|addInfoUint32,
			byte(value>>24), byte(value>>16), byte(value>>8), byte(value))
	default:
		return r.writeBytes(byte(major<<5)|addInfoUint64,
			byte(value>>56), byte(value>>48), byte(value>>40), byte(value>>32),
			byte(value>>24), byte(value>>16), byte(value>>8), byte(value))
	}
}

func (r *Renderer) writeIndefiniteHead(major uint8) error {
	return r.writeByte(byte(major<<5) | addInfoIndefinite)
}

// Push writes one Item as CBOR, validating it against the currently open
// container (if any).
func (r *Renderer) Push(it event.Item) error {
	switch it.Kind {
	case event.Null:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		return r.writeByte(0xf6)
	case event.Undefined:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		return r.writeByte(0xf7)
	case event.Boolean:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		if it.Bool {
			return r.writeByte(0xf5)
		}
		return r.writeByte(0xf4)
	case event.Int:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		return r.writeSignedCore(int64(it.I32))
	case event.Long:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		return r.writeSignedCore(it.I64)
	case event.OverLong:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		if it.OverLongNeg {
			return r.writeHead(majorNegInt, it.OverLongRaw)
		}
		return r.writeHead(majorUint, it.OverLongRaw)
	case event.Float16:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		bits := float16.Fromfloat32(it.F32).Bits()
		return r.writeBytes(byte(majorSimple<<5)|simpleFloat16, byte(bits>>8), byte(bits))
	case event.Float:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		bits := math.Float32bits(it.F32)
		return r.writeBytes(byte(majorSimple<<5)|simpleFloat32,
			byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
	case event.Double:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		bits := math.Float64bits(it.F64)
		return r.writeBytes(byte(majorSimple<<5)|simpleFloat64,
			byte(bits>>56), byte(bits>>48), byte(bits>>40), byte(bits>>32),
			byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
	case event.NumberString:
		// CBOR has no native arbitrary-precision numeric literal; a codec
		// that needs one renders an explicit Tag (2/3/4/5) plus a Bytes
		// payload instead of handing the renderer a bare NumberString.
		return r.fail(errs.ValidationError, "CBOR renderer cannot write a bare NumberString; use a tagged bignum/decimal encoding instead")
	case event.Bytes:
		if r.cfg.MaxByteStringLength > 0 && uint64(len(it.Bin)) > r.cfg.MaxByteStringLength {
			return r.fail(errs.Overflow, "byte string exceeds configured limit")
		}
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		if err := r.writeHead(majorBytes, uint64(len(it.Bin))); err != nil {
			return err
		}
		return r.writeBytesFrom(it.Bin)
	case event.BytesStart:
		if err := r.frames.open(-1, false); err != nil {
			return classify(err, r.Position())
		}
		return r.writeIndefiniteHead(majorBytes)
	case event.String:
		payload := it.AsString()
		if r.cfg.MaxTextStringLength > 0 && uint64(len(payload)) > r.cfg.MaxTextStringLength {
			return r.fail(errs.Overflow, "text string exceeds configured limit")
		}
		if !utf8.ValidString(payload) {
			return r.fail(errs.InvalidInputData, "string is not valid UTF-8")
		}
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		if err := r.writeHead(majorText, uint64(len(payload))); err != nil {
			return err
		}
		return r.writeBytesFrom([]byte(payload))
	case event.Chars:
		return r.Push(event.StringItem(it.AsString()))
	case event.TextStart:
		if err := r.frames.open(-1, false); err != nil {
			return classify(err, r.Position())
		}
		return r.writeIndefiniteHead(majorText)
	case event.ArrayHeader:
		if r.cfg.MaxArrayLength > 0 && it.Len > r.cfg.MaxArrayLength {
			return r.fail(errs.Overflow, "array length exceeds configured limit")
		}
		if err := r.frames.open(int64(it.Len), false); err != nil {
			return classify(err, r.Position())
		}
		return r.writeHead(majorArray, it.Len)
	case event.ArrayStart:
		if err := r.frames.open(-1, false); err != nil {
			return classify(err, r.Position())
		}
		return r.writeIndefiniteHead(majorArray)
	case event.MapHeader:
		if r.cfg.MaxMapLength > 0 && it.Len > r.cfg.MaxMapLength {
			return r.fail(errs.Overflow, "map length exceeds configured limit")
		}
		if err := r.frames.open(int64(it.Len)*2, true); err != nil {
			return classify(err, r.Position())
		}
		return r.writeHead(majorMap, it.Len)
	case event.MapStart:
		if err := r.frames.open(-1, true); err != nil {
			return classify(err, r.Position())
		}
		return r.writeIndefiniteHead(majorMap)
	case event.Break:
		if err := r.frames.closeIndefinite(); err != nil {
			return classify(err, r.Position())
		}
		return r.writeByte(0xff)
	case event.Tag:
		if err := r.frames.tag(); err != nil {
			return classify(err, r.Position())
		}
		return r.writeHead(majorTag, it.TagNum)
	case event.SimpleValue:
		if err := r.frames.item(); err != nil {
			return classify(err, r.Position())
		}
		if it.Simple <= 23 {
			return r.writeByte(byte(majorSimple<<5) | it.Simple)
		}
		return r.writeBytes(byte(majorSimple<<5)|addInfoUint8, it.Simple)
	case event.EndOfInput:
		return nil
	default:
		return r.fail(errs.ValidationError, "unknown item kind")
	}
}

// writeSignedCore picks major type 0 (unsigned) or 1 (negative) for a
// signed value per RFC 8949.
func (r *Renderer) writeSignedCore(v int64) error {
	if v >= 0 {
		return r.writeHead(majorUint, uint64(v))
	}
	return r.writeHead(majorNegInt, uint64(-1-v))
}

// Finish asserts that every opened container has been closed, for callers
// that render exactly one top-level document and want to catch a caller
// bug (an unclosed indefinite array, say) instead of silently truncating.
func (r *Renderer) Finish() error {
	if r.frames.depth() != 0 {
		return r.fail(errs.ValidationError, "document ended with unclosed containers")
	}
	return nil
}
