package jsonproto

import (
	"math"
	"math/big"
	"strconv"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
)

// renderFrame tracks one open JSON container during rendering: how many
// more items are expected (-1 for an indefinite container awaiting an
// explicit Break), whether it's an object (keys and values alternate), and
// how many items have already landed (for comma/colon placement).
//
// Unlike cborproto's frameStack, a JSON container always needs its closing
// byte written explicitly — CBOR's definite-length containers need no
// terminator at all, since the header already carries the count. A
// definite-length ArrayHeader/MapHeader reaching JSON therefore still gets
// written as '[' ... ']' / '{' ... '}' exactly like ArrayStart/MapStart
// would; the only difference is that it closes itself once its declared
// item count is reached instead of waiting for a Break.
type renderFrame struct {
	remaining int64
	isMap     bool
	emitted   int64
}

// Renderer writes event.Items as JSON text to an ioadapt.Output, tracking
// open containers the way cborproto.Renderer tracks nesting/count but with
// the added responsibility of emitting the bracket bytes JSON requires at
// every open and close.
type Renderer struct {
	out    ioadapt.Output
	cfg    Config
	frames []renderFrame
	cursor int64
}

// NewRenderer constructs a Renderer writing to out under cfg.
func NewRenderer(out ioadapt.Output, cfg Config) *Renderer {
	return &Renderer{out: out, cfg: cfg}
}

func (r *Renderer) Position() errs.Position { return errs.Position{Cursor: r.cursor} }

// PrefersDefiniteLength is always false: JSON carries no length header, so
// Writer.WriteArrayOpen/WriteMapOpen should choose the Start/Break form for
// this renderer.
func (r *Renderer) PrefersDefiniteLength() bool { return false }

func (r *Renderer) fail(kind errs.Kind, msg string) error {
	return errs.New(kind, r.Position(), msg)
}

func (r *Renderer) writeByte(b byte) error {
	r.cursor++
	return r.out.WriteByte(b)
}

func (r *Renderer) writeBytesFrom(b []byte) error {
	r.cursor += int64(len(b))
	return r.out.WriteBytesFrom(b)
}

func (r *Renderer) writeRaw(s string) error { return r.writeBytesFrom([]byte(s)) }

func (r *Renderer) writeIndent(depth int) error {
	if r.cfg.PrettyIndent == nil {
		return nil
	}
	if err := r.writeByte('\n'); err != nil {
		return err
	}
	for i := 0; i < depth; i++ {
		if err := r.writeRaw(*r.cfg.PrettyIndent); err != nil {
			return err
		}
	}
	return nil
}

// beforeItem writes the separator appropriate for the item about to land in
// the current top frame (nothing for the first item of a container, ','
// before a later one, ':' before a map value) and accounts for a
// definite-length frame's declared count. It reports whether the item
// about to be written occupies a map-key position, since only String/Chars
// items may legally land there.
func (r *Renderer) beforeItem() (keyPosition bool, err error) {
	if len(r.frames) == 0 {
		return false, nil
	}
	top := &r.frames[len(r.frames)-1]
	if top.remaining == 0 {
		return false, r.fail(errs.ValidationError, "too many items for declared container length")
	}
	keyPosition = top.isMap && top.emitted%2 == 0
	switch {
	case top.isMap && top.emitted%2 == 1:
		if err := r.writeByte(':'); err != nil {
			return false, err
		}
		if r.cfg.PrettyIndent != nil {
			if err := r.writeByte(' '); err != nil {
				return false, err
			}
		}
	case top.emitted > 0:
		if err := r.writeByte(','); err != nil {
			return false, err
		}
		if err := r.writeIndent(len(r.frames)); err != nil {
			return false, err
		}
	default:
		if err := r.writeIndent(len(r.frames)); err != nil {
			return false, err
		}
	}
	top.emitted++
	if top.remaining > 0 {
		top.remaining--
	}
	return keyPosition, nil
}

// afterItem closes and pops every frame that has just become fully
// consumed (a definite-length frame whose declared count reached zero),
// writing each one's closing bracket. An indefinite frame (remaining ==
// -1) stops the cascade and is left open for an explicit Break.
func (r *Renderer) afterItem() error {
	for len(r.frames) > 0 {
		top := r.frames[len(r.frames)-1]
		if top.remaining != 0 {
			return nil
		}
		if err := r.closeFrame(top); err != nil {
			return err
		}
		r.frames = r.frames[:len(r.frames)-1]
	}
	return nil
}

func (r *Renderer) closeFrame(f renderFrame) error {
	if f.emitted > 0 {
		if err := r.writeIndent(len(r.frames) - 1); err != nil {
			return err
		}
	}
	closeByte := byte(']')
	if f.isMap {
		closeByte = '}'
	}
	return r.writeByte(closeByte)
}

func (r *Renderer) pushBreak() error {
	if len(r.frames) == 0 || r.frames[len(r.frames)-1].remaining != -1 {
		return r.fail(errs.ValidationError, "Break outside an indefinite-length container")
	}
	top := r.frames[len(r.frames)-1]
	if err := r.closeFrame(top); err != nil {
		return err
	}
	r.frames = r.frames[:len(r.frames)-1]
	return r.afterItem()
}

// Push writes one Item as JSON text, validating it against the currently
// open container (if any) and rejecting CBOR-only events (Undefined,
// SimpleValue, Tag, byte strings, Float16).
func (r *Renderer) Push(it event.Item) error {
	if it.Kind == event.EndOfInput {
		return nil
	}
	if it.Kind == event.Break {
		return r.pushBreak()
	}

	keyPos, err := r.beforeItem()
	if err != nil {
		return err
	}
	if keyPos {
		switch it.Kind {
		case event.String, event.Chars:
		default:
			return r.fail(errs.UnexpectedDataItem, "JSON object keys must be strings")
		}
	}

	switch it.Kind {
	case event.Null:
		err = r.writeRaw("null")
	case event.Boolean:
		if it.Bool {
			err = r.writeRaw("true")
		} else {
			err = r.writeRaw("false")
		}
	case event.Int:
		err = r.writeRaw(strconv.FormatInt(int64(it.I32), 10))
	case event.Long:
		err = r.writeRaw(strconv.FormatInt(it.I64, 10))
	case event.OverLong:
		err = r.writeOverLong(it)
	case event.Float:
		err = r.writeFloat(float64(it.F32), 32)
	case event.Double:
		err = r.writeFloat(it.F64, 64)
	case event.NumberString:
		err = r.writeRaw(it.Str)
	case event.String, event.Chars:
		err = r.writeJSONString(it.AsString())
	case event.ArrayHeader:
		return r.openArrayOrMap(int64(it.Len), false)
	case event.ArrayStart:
		return r.openArrayOrMap(-1, false)
	case event.MapHeader:
		return r.openArrayOrMap(int64(it.Len)*2, true)
	case event.MapStart:
		return r.openArrayOrMap(-1, true)
	case event.Undefined, event.SimpleValue, event.Tag, event.Bytes, event.BytesStart, event.TextStart, event.Float16:
		return r.fail(errs.ValidationError, it.Kind.String()+" cannot be written to a JSON renderer")
	default:
		return r.fail(errs.ValidationError, "unknown item kind")
	}
	if err != nil {
		return err
	}
	return r.afterItem()
}

// openArrayOrMap writes the opening bracket already accounted for by the
// beforeItem call in Push, pushes the new frame, and immediately cascades
// a close if the container is empty.
func (r *Renderer) openArrayOrMap(n int64, isMap bool) error {
	openByte := byte('[')
	if isMap {
		openByte = '{'
	}
	if err := r.writeByte(openByte); err != nil {
		return err
	}
	r.frames = append(r.frames, renderFrame{remaining: n, isMap: isMap})
	if limit := r.cfg.nestingLimit(); limit > 0 && len(r.frames) > limit {
		return r.fail(errs.Overflow, "maximum nesting depth exceeded")
	}
	return r.afterItem()
}

func (r *Renderer) writeOverLong(it event.Item) error {
	var bi big.Int
	bi.SetUint64(it.OverLongRaw)
	if it.OverLongNeg {
		bi.Add(&bi, big.NewInt(1))
		bi.Neg(&bi)
	}
	return r.writeRaw(bi.String())
}

// writeFloat renders f as a minimal-digits, shortest-round-trip JSON
// number via strconv.AppendFloat, rejecting NaN/±Inf (neither has a JSON
// representation) and forcing a trailing ".0" on an exact-integer value so
// the float/int type distinction survives the JSON round trip.
func (r *Renderer) writeFloat(f float64, bitSize int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return r.fail(errs.InvalidInputData, "cannot write NaN or Infinity as JSON")
	}
	buf := strconv.AppendFloat(nil, f, 'g', -1, bitSize)
	if !hasFloatMarker(buf) {
		buf = append(buf, '.', '0')
	}
	return r.writeBytesFrom(buf)
}

func hasFloatMarker(buf []byte) bool {
	for _, b := range buf {
		if b == '.' || b == 'e' || b == 'E' {
			return true
		}
	}
	return false
}

var hexDigits = "0123456789abcdef"

// writeJSONString escapes s per RFC 8259: the mandatory backslash escapes,
// ASCII control characters as \u00XX, and everything else passed through
// verbatim (RFC 8259 permits raw UTF-8 in a JSON string; only control
// characters and the two structural characters require escaping).
func (r *Renderer) writeJSONString(s string) error {
	if err := r.writeByte('"'); err != nil {
		return err
	}
	start := 0
	flush := func(end int) error {
		if end > start {
			if err := r.writeRaw(s[start:end]); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < len(s); i++ {
		b := s[i]
		var esc []byte
		switch {
		case b == '"':
			esc = []byte{'\\', '"'}
		case b == '\\':
			esc = []byte{'\\', '\\'}
		case b == '\b':
			esc = []byte{'\\', 'b'}
		case b == '\f':
			esc = []byte{'\\', 'f'}
		case b == '\n':
			esc = []byte{'\\', 'n'}
		case b == '\r':
			esc = []byte{'\\', 'r'}
		case b == '\t':
			esc = []byte{'\\', 't'}
		case b < 0x20:
			esc = []byte{'\\', 'u', '0', '0', hexDigits[b>>4], hexDigits[b&0xf]}
		default:
			continue
		}
		if err := flush(i); err != nil {
			return err
		}
		if err := r.writeBytesFrom(esc); err != nil {
			return err
		}
		start = i + 1
	}
	if err := flush(len(s)); err != nil {
		return err
	}
	return r.writeByte('"')
}

// Finish asserts every opened container has been closed, for a caller that
// renders exactly one top-level document and wants to catch an unclosed
// indefinite array/object as a bug instead of silently truncating.
func (r *Renderer) Finish() error {
	if len(r.frames) != 0 {
		return r.fail(errs.ValidationError, "document ended with unclosed containers")
	}
	return nil
}
