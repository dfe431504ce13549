package cborproto

import (
	"math"
	"unicode/utf8"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
	"github.com/x448/float16"
)

// CBOR major types (RFC 8949 §3).
const (
	majorUint   = 0
	majorNegInt = 1
	majorBytes  = 2
	majorText   = 3
	majorArray  = 4
	majorMap    = 5
	majorTag    = 6
	majorSimple = 7
)

const (
	addInfoUint8      = 24
	addInfoUint16     = 25
	addInfoUint32     = 26
	addInfoUint64     = 27
	addInfoIndefinite = 31
)

const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

func majorType(b byte) uint8 { return (b >> 5) & 0x07 }
func addInfo(b byte) uint8   { return b & 0x1f }

// Parser decodes a CBOR byte stream into event.Items, one per Pull call.
// Generalizes a major-type dispatch over raw bytes, rebuilt to emit one
// Item per call instead of returning a typed Go value plus a
// remaining-bytes slice.
type Parser struct {
	in     *ioadapt.Input
	cfg    Config
	frames frameStack
}

// NewParser constructs a Parser reading from in under cfg.
func NewParser(in *ioadapt.Input, cfg Config) *Parser {
	return &Parser{in: in, cfg: cfg, frames: frameStack{limit: cfg.nestingLimit()}}
}

func (p *Parser) Position() errs.Position { return p.in.Position() }

func (p *Parser) fail(kind errs.Kind, msg string) error {
	return errs.New(kind, p.Position(), msg)
}

// Pull returns the next Item. At the logical end of the top-level document
// it returns EndOfInputItem, never an error, matching the stream contract
// event.Parser documents.
func (p *Parser) Pull() (event.Item, error) {
	if p.in.Len() == 0 && p.frames.depth() == 0 {
		return event.EndOfInputItem(), nil
	}
	lead, err := p.in.Byte(ioadapt.StrictPadding{Pos: p.Position()})
	if err != nil {
		return event.Item{}, err
	}
	major := majorType(lead)
	add := addInfo(lead)

	if add == 28 || add == 29 || add == 30 {
		return event.Item{}, p.fail(errs.InvalidInputData, "reserved additional info value")
	}

	switch major {
	case majorUint:
		return p.pullUint(add, false)
	case majorNegInt:
		return p.pullUint(add, true)
	case majorBytes:
		return p.pullByteOrText(add, false)
	case majorText:
		return p.pullByteOrText(add, true)
	case majorArray:
		return p.pullArray(add)
	case majorMap:
		return p.pullMap(add)
	case majorTag:
		return p.pullTag(add)
	case majorSimple:
		return p.pullSimple(add)
	}
	return event.Item{}, p.fail(errs.InvalidInputData, "unreachable major type")
}

// readArg decodes the additional-info-governed argument that follows a
// lead byte: a direct 0-23 value, or an explicit 1/2/4/8-byte field.
func (p *Parser) readArg(add uint8) (uint64, error) {
	pp := ioadapt.StrictPadding{Pos: p.Position()}
	switch {
	case add <= 23:
		return uint64(add), nil
	case add == addInfoUint8:
		b, err := p.in.Byte(pp)
		if err != nil {
			return 0, err
		}
		if p.cfg.RejectNonCanonical && b <= 23 {
			return 0, p.fail(errs.ValidationError, "non-canonical integer length")
		}
		return uint64(b), nil
	case add == addInfoUint16:
		v, err := p.in.DoubleByteBE(pp)
		if err != nil {
			return 0, err
		}
		if p.cfg.RejectNonCanonical && v <= math.MaxUint8 {
			return 0, p.fail(errs.ValidationError, "non-canonical integer length")
		}
		return uint64(v), nil
	case add == addInfoUint32:
		v, err := p.in.QuadByteBE(pp)
		if err != nil {
			return 0, err
		}
		if p.cfg.RejectNonCanonical && v <= math.MaxUint16 {
			return 0, p.fail(errs.ValidationError, "non-canonical integer length")
		}
		return uint64(v), nil
	case add == addInfoUint64:
		v, err := p.in.OctaByteBE(pp)
		if err != nil {
			return 0, err
		}
		if p.cfg.RejectNonCanonical && v <= math.MaxUint32 {
			return 0, p.fail(errs.ValidationError, "non-canonical integer length")
		}
		return v, nil
	}
	return 0, p.fail(errs.InvalidInputData, "invalid additional info")
}

func (p *Parser) pullUint(add uint8, neg bool) (event.Item, error) {
	raw, err := p.readArg(add)
	if err != nil {
		return event.Item{}, err
	}
	if err := p.frames.item(); err != nil {
		return event.Item{}, classify(err, p.Position())
	}
	if !neg {
		if raw <= math.MaxInt32 {
			return event.IntItem(int32(raw)), nil
		}
		if raw <= math.MaxInt64 {
			return event.LongItem(int64(raw)), nil
		}
		return event.OverLongItem(false, raw), nil
	}
	// Negative integer: value is -1-raw.
	if raw <= math.MaxInt32 {
		return event.IntItem(int32(-1 - int64(raw))), nil
	}
	if raw <= math.MaxInt64 {
		return event.LongItem(-1 - int64(raw)), nil
	}
	return event.OverLongItem(true, raw), nil
}

func (p *Parser) pullByteOrText(add uint8, text bool) (event.Item, error) {
	if add == addInfoIndefinite {
		if err := p.frames.open(-1, false); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		if text {
			return event.TextStartItem(), nil
		}
		return event.BytesStartItem(), nil
	}
	n, err := p.readArg(add)
	if err != nil {
		return event.Item{}, err
	}
	limit := p.cfg.MaxByteStringLength
	if text {
		limit = p.cfg.MaxTextStringLength
	}
	if limit > 0 && n > limit {
		return event.Item{}, p.fail(errs.Overflow, "string length exceeds configured limit")
	}
	b, err := p.in.Bytes(int(n), ioadapt.StrictPadding{Pos: p.Position()})
	if err != nil {
		return event.Item{}, err
	}
	if err := p.frames.item(); err != nil {
		return event.Item{}, classify(err, p.Position())
	}
	if !text {
		return event.BytesItem(b), nil
	}
	if !utf8.Valid(b) {
		return event.Item{}, p.fail(errs.InvalidInputData, "invalid UTF-8 in text string")
	}
	return event.StringItem(string(b)), nil
}

func (p *Parser) pullArray(add uint8) (event.Item, error) {
	if add == addInfoIndefinite {
		if err := p.frames.open(-1, false); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.ArrayStartItem(), nil
	}
	n, err := p.readArg(add)
	if err != nil {
		return event.Item{}, err
	}
	if p.cfg.MaxArrayLength > 0 && n > p.cfg.MaxArrayLength {
		return event.Item{}, p.fail(errs.Overflow, "array length exceeds configured limit")
	}
	if err := p.frames.open(int64(n), false); err != nil {
		return event.Item{}, classify(err, p.Position())
	}
	return event.ArrayHeaderItem(n), nil
}

func (p *Parser) pullMap(add uint8) (event.Item, error) {
	if add == addInfoIndefinite {
		if err := p.frames.open(-1, true); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.MapStartItem(), nil
	}
	n, err := p.readArg(add)
	if err != nil {
		return event.Item{}, err
	}
	if p.cfg.MaxMapLength > 0 && n > p.cfg.MaxMapLength {
		return event.Item{}, p.fail(errs.Overflow, "map length exceeds configured limit")
	}
	if err := p.frames.open(int64(n)*2, true); err != nil {
		return event.Item{}, classify(err, p.Position())
	}
	return event.MapHeaderItem(n), nil
}

func (p *Parser) pullTag(add uint8) (event.Item, error) {
	n, err := p.readArg(add)
	if err != nil {
		return event.Item{}, err
	}
	if err := p.frames.tag(); err != nil {
		return event.Item{}, classify(err, p.Position())
	}
	return event.TagItem(n), nil
}

func (p *Parser) pullSimple(add uint8) (event.Item, error) {
	switch add {
	case simpleBreak:
		if err := p.frames.closeIndefinite(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.BreakItem(), nil
	case simpleFalse:
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.BoolItem(false), nil
	case simpleTrue:
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.BoolItem(true), nil
	case simpleNull:
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.NullItem(), nil
	case simpleUndefined:
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.UndefinedItem(), nil
	case simpleFloat16:
		bits, err := p.in.DoubleByteBE(ioadapt.StrictPadding{Pos: p.Position()})
		if err != nil {
			return event.Item{}, err
		}
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.Float16Item(float16.Frombits(bits).Float32()), nil
	case simpleFloat32:
		bits, err := p.in.QuadByteBE(ioadapt.StrictPadding{Pos: p.Position()})
		if err != nil {
			return event.Item{}, err
		}
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.FloatItem(math.Float32frombits(bits)), nil
	case simpleFloat64:
		bits, err := p.in.OctaByteBE(ioadapt.StrictPadding{Pos: p.Position()})
		if err != nil {
			return event.Item{}, err
		}
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.DoubleItem(math.Float64frombits(bits)), nil
	case addInfoUint8:
		b, err := p.in.Byte(ioadapt.StrictPadding{Pos: p.Position()})
		if err != nil {
			return event.Item{}, err
		}
		if b < 32 {
			return event.Item{}, p.fail(errs.InvalidInputData, "invalid 1-byte simple value")
		}
		if err := p.frames.item(); err != nil {
			return event.Item{}, classify(err, p.Position())
		}
		return event.SimpleValueItem(b), nil
	default:
		if add <= 19 {
			if err := p.frames.item(); err != nil {
				return event.Item{}, classify(err, p.Position())
			}
			return event.SimpleValueItem(add), nil
		}
		return event.Item{}, p.fail(errs.InvalidInputData, "invalid simple value additional info")
	}
}
