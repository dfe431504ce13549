// Package logreceiver implements a diagnostic-notation event logger: a
// Receiver that sits in the Transformer fan-out alongside a real Renderer
// and records every event it sees as RFC 8949-flavored text, regardless of
// which wire format actually produced the events.
//
// Generalized from "walk raw CBOR bytes recursively" to "receive one
// event.Item at a time from either format", so a logger is just another
// event.Receiver in the fan-out chain.
package logreceiver

import (
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
)

// Config bounds the amount of text Logger produces for a single document.
type Config struct {
	// Indent is the per-level indent string. Empty means compact, single-
	// line output (commas and colons still get a trailing space).
	Indent string
	// MaxStringLength and MaxContainerItems are not consulted by Logger:
	// strings, byte strings, arrays and maps are always written in full,
	// with no cut-off marker.
	MaxStringLength   int
	MaxContainerItems int
}

type frame struct {
	isMap     bool
	emitted   int
	remaining int64 // -1 for indefinite
	tagCloses int    // ")" characters to append once this frame closes
}

// Logger is an event.Renderer that accumulates RFC 8949 diagnostic
// notation instead of wire bytes. It is meant to be one of several targets
// in an event.Transformer, observing the same events a real Renderer
// consumes.
type Logger struct {
	cfg         Config
	buf         strings.Builder
	frames      []frame
	cursor      int64
	pendingTags []uint64 // tags seen but not yet combined with their wrapped item
}

// NewLogger constructs a Logger under cfg.
func NewLogger(cfg Config) *Logger {
	return &Logger{cfg: cfg}
}

func (l *Logger) Position() errs.Position { return errs.Position{Cursor: l.cursor} }

// PrefersDefiniteLength reports true so a Writer driving both a CBOR
// Renderer and a Logger through the same Transformer doesn't have its
// header-shape choice forced to JSON's indefinite style by the logger's
// presence.
func (l *Logger) PrefersDefiniteLength() bool { return true }

// String returns the accumulated diagnostic text.
func (l *Logger) String() string { return l.buf.String() }

func (l *Logger) writeSeparator() {
	if len(l.frames) == 0 {
		return
	}
	top := &l.frames[len(l.frames)-1]
	switch {
	case top.isMap && top.emitted%2 == 1:
		l.buf.WriteString(": ")
	case top.emitted > 0:
		l.buf.WriteString(", ")
	}
	top.emitted++
	if top.remaining > 0 {
		top.remaining--
	}
}

func (l *Logger) indent() {
	if l.cfg.Indent == "" {
		return
	}
	l.buf.WriteByte('\n')
	for i := 0; i < len(l.frames); i++ {
		l.buf.WriteString(l.cfg.Indent)
	}
}

// Push records it in diagnostic notation. A Tag item is not rendered on
// its own: it is held in pendingTags and combined with whatever item
// comes next (scalar or container) into the single tag(value) unit
// runtime/diag.go's majorTypeTag case produces, including recursion when
// the wrapped value is itself a container.
func (l *Logger) Push(it event.Item) error {
	l.cursor++
	if it.Kind == event.EndOfInput {
		return nil
	}
	if it.Kind == event.Break {
		return l.closeTop()
	}
	if it.Kind == event.Tag {
		l.pendingTags = append(l.pendingTags, it.TagNum)
		return nil
	}
	l.writeSeparator()
	if l.cfg.Indent != "" && len(l.frames) > 0 {
		l.indent()
	}
	tags := l.pendingTags
	l.pendingTags = nil
	for _, tag := range tags {
		l.buf.WriteString(strconv.FormatUint(tag, 10))
		l.buf.WriteByte('(')
	}
	switch it.Kind {
	case event.ArrayHeader:
		l.openContainer(int64(it.Len), false, false, len(tags))
		return nil
	case event.ArrayStart:
		l.openContainer(-1, false, true, len(tags))
		return nil
	case event.MapHeader:
		l.openContainer(int64(it.Len)*2, true, false, len(tags))
		return nil
	case event.MapStart:
		l.openContainer(-1, true, true, len(tags))
		return nil
	default:
		l.buf.WriteString(FormatItem(it))
		for range tags {
			l.buf.WriteByte(')')
		}
		return l.cascadeClose()
	}
}

func (l *Logger) openContainer(n int64, isMap, indefinite bool, tagCloses int) {
	open, _ := bracketsFor(isMap, indefinite)
	l.buf.WriteString(open)
	l.frames = append(l.frames, frame{isMap: isMap, remaining: n, tagCloses: tagCloses})
}

func bracketsFor(isMap, indefinite bool) (open, close string) {
	switch {
	case isMap && indefinite:
		return "{_ ", "}"
	case isMap:
		return "{", "}"
	case indefinite:
		return "[_ ", "]"
	default:
		return "[", "]"
	}
}

func (l *Logger) closeTop() error {
	if len(l.frames) == 0 {
		return errs.New(errs.ValidationError, l.Position(), "Break outside any open container")
	}
	top := l.frames[len(l.frames)-1]
	_, close := bracketsFor(top.isMap, true)
	l.buf.WriteString(close)
	for i := 0; i < top.tagCloses; i++ {
		l.buf.WriteByte(')')
	}
	l.frames = l.frames[:len(l.frames)-1]
	return l.cascadeClose()
}

// cascadeClose closes every frame whose declared count has just been
// reached, mirroring cborproto.frameStack/jsonproto.renderFrame's own
// cascade so a Logger watching a definite-length container closes its
// bracket in the same place the wire renderer does. Any tagCloses
// recorded when the frame was opened are appended right after its own
// bracket, completing the tag(...) wrapper runtime/diag.go produces.
func (l *Logger) cascadeClose() error {
	for len(l.frames) > 0 {
		top := l.frames[len(l.frames)-1]
		if top.remaining != 0 {
			return nil
		}
		_, close := bracketsFor(top.isMap, false)
		l.buf.WriteString(close)
		for i := 0; i < top.tagCloses; i++ {
			l.buf.WriteByte(')')
		}
		l.frames = l.frames[:len(l.frames)-1]
	}
	return nil
}

// FormatItem renders a single non-container item in RFC 8949 diagnostic
// notation, with no awareness of surrounding frame state. It is exported
// so codecore.Transcode's StringifyTags mode can reuse exactly the
// notation Logger writes when it falls back to a JSON string for a
// CBOR-only event with no native JSON shape.
func FormatItem(it event.Item) string {
	switch it.Kind {
	case event.Null:
		return "null"
	case event.Undefined:
		return "undefined"
	case event.Boolean:
		if it.Bool {
			return "true"
		}
		return "false"
	case event.Int:
		return strconv.FormatInt(int64(it.I32), 10)
	case event.Long:
		return strconv.FormatInt(it.I64, 10)
	case event.OverLong:
		z := new(big.Int).SetUint64(it.OverLongRaw)
		if it.OverLongNeg {
			z.Add(z, big.NewInt(1))
			z.Neg(z)
		}
		return z.String()
	case event.Float16:
		return strconv.FormatFloat(float64(it.F32), 'g', -1, 32) + "_1"
	case event.Float:
		return strconv.FormatFloat(float64(it.F32), 'g', -1, 32) + "_2"
	case event.Double:
		return strconv.FormatFloat(it.F64, 'g', -1, 64) + "_3"
	case event.NumberString:
		return it.Str
	case event.Bytes:
		return "h'" + hex.EncodeToString(it.Bin) + "'"
	case event.String, event.Chars:
		return strconv.Quote(it.AsString())
	case event.Tag:
		return strconv.FormatUint(it.TagNum, 10)
	case event.SimpleValue:
		return "simple(" + strconv.Itoa(int(it.Simple)) + ")"
	default:
		return it.Kind.String()
	}
}

// FormatTaggedScalar renders a Tag prefix together with the single scalar
// item it wraps, e.g. `0("2021-01-01T00:00:00Z")`, the shape
// codecore.Transcode emits for a CBOR tag that has no JSON equivalent.
func FormatTaggedScalar(tag uint64, wrapped event.Item) string {
	return strconv.FormatUint(tag, 10) + "(" + FormatItem(wrapped) + ")"
}

// FormatBytesAsBase64 renders b the way a "$base64" JSON wrapper
// convention represents a CBOR byte string with no native JSON shape.
func FormatBytesAsBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
