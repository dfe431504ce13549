package codecore

import (
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
	"github.com/corewire/codecore/logreceiver"
)

// TranscodeConfig controls the CBOR-only-event fallback used when
// transcoding into JSON.
type TranscodeConfig struct {
	// StringifyTags, when true and dst is Json, converts a CBOR-only leaf
	// event (Undefined, SimpleValue, Bytes, Float16), a Tag together with
	// the scalar item it wraps, and any non-string CBOR map key into a
	// JSON string instead of failing with errs.ValidationError. A byte
	// string becomes its standard base64 text; everything else uses the
	// diagnostic notation logreceiver.Logger writes (e.g. `2(h'012c')`).
	// The result is a plain JSON string, not a keyed wrapper object, and
	// transcoding it back yields that string rather than the CBOR item.
	//
	// A Tag wrapping an indefinite-length chunked byte/text string
	// (BytesStart/TextStart) is not convertible this way — stringifying
	// only the Start marker would leave its Chars/Bytes chunk items and
	// terminating Break still arriving as separate events — so those
	// still fail with ValidationError even with StringifyTags enabled.
	StringifyTags bool
}

// Transcode re-renders b, read under src, as dst, with StringifyTags
// disabled: walk one representation, emit the other, routed through the
// shared event model instead of a hardwired byte-to-JSON-text walker, so
// the same Renderer that serves a normal Encode call also serves this
// path.
func Transcode(dst, src Format, b []byte) ([]byte, error) {
	return TranscodeWithConfig(dst, src, b, TranscodeConfig{})
}

// tcFrame is Transcode's minimal nesting bookkeeping: just enough to know
// whether the next item lands in a map key position, since that's the
// only structural fact StringifyTags needs that the destination Renderer
// doesn't already enforce on its own.
type tcFrame struct {
	isMap   bool
	emitted int64
}

type tcStack struct {
	frames []tcFrame
}

func (s *tcStack) keyPosition() bool {
	if len(s.frames) == 0 {
		return false
	}
	top := s.frames[len(s.frames)-1]
	return top.isMap && top.emitted%2 == 0
}

func (s *tcStack) consumeInParent() {
	if len(s.frames) == 0 {
		return
	}
	s.frames[len(s.frames)-1].emitted++
}

func (s *tcStack) open(isMap bool) {
	s.consumeInParent()
	s.frames = append(s.frames, tcFrame{isMap: isMap})
}

func (s *tcStack) close() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.consumeInParent()
}

// TranscodeWithConfig is Transcode with explicit StringifyTags control.
func TranscodeWithConfig(dst, src Format, b []byte, cfg TranscodeConfig) ([]byte, error) {
	in := ioadapt.NewInput(b)
	parser := src.newParser(in)
	out := ioadapt.NewChunkedOutput(dst.chunkSize(), dst.allowBufferCaching())
	renderer := dst.newRenderer(out)

	st := &tcStack{}
	for {
		it, err := parser.Pull()
		if err != nil {
			return nil, err
		}
		if it.Kind == event.EndOfInput {
			if err := renderer.Push(it); err != nil {
				return nil, err
			}
			return out.Result(), nil
		}

		switch it.Kind {
		case event.ArrayHeader, event.ArrayStart:
			if err := renderer.Push(it); err != nil {
				return nil, err
			}
			st.open(false)
		case event.MapHeader, event.MapStart:
			if err := renderer.Push(it); err != nil {
				return nil, err
			}
			st.open(true)
		case event.Break:
			if err := renderer.Push(it); err != nil {
				return nil, err
			}
			st.close()
		case event.Tag:
			atKey := st.keyPosition()
			wrapped, werr := parser.Pull()
			if werr != nil {
				return nil, werr
			}
			if dst.isJSON && cfg.StringifyTags && wrapped.Kind != event.BytesStart && wrapped.Kind != event.TextStart {
				text := logreceiver.FormatTaggedScalar(it.TagNum, wrapped)
				if err := renderer.Push(event.StringItem(text)); err != nil {
					return nil, err
				}
			} else {
				if err := renderer.Push(it); err != nil {
					return nil, err
				}
				if err := pushRewritten(renderer, wrapped, atKey, dst, cfg); err != nil {
					return nil, err
				}
			}
			st.consumeInParent()
		default:
			atKey := st.keyPosition()
			if err := pushRewritten(renderer, it, atKey, dst, cfg); err != nil {
				return nil, err
			}
			st.consumeInParent()
		}
	}
}

// pushRewritten pushes it to renderer, substituting a diagnostic-notation
// JSON string when StringifyTags applies: either it is itself a
// CBOR-only leaf kind, or it occupies a map-key position and is not
// already a String/Chars.
func pushRewritten(renderer event.Renderer, it event.Item, atKey bool, dst Format, cfg TranscodeConfig) error {
	if dst.isJSON && cfg.StringifyTags {
		notString := it.Kind != event.String && it.Kind != event.Chars
		if needsStringify(it.Kind) || (atKey && notString) {
			return renderer.Push(event.StringItem(stringifyItem(it)))
		}
	}
	return renderer.Push(it)
}

func needsStringify(k event.Kind) bool {
	switch k {
	case event.Undefined, event.SimpleValue, event.Bytes, event.Float16:
		return true
	default:
		return false
	}
}

func stringifyItem(it event.Item) string {
	if it.Kind == event.Bytes {
		return logreceiver.FormatBytesAsBase64(it.Bin)
	}
	return logreceiver.FormatItem(it)
}
