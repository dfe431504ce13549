package event

import "github.com/corewire/codecore/errs"

// Receiver is the common supertype of Parser (produces events by pull) and
// Renderer (consumes events by push). It exists as a naming device for
// "logging as wrapped receiver": anything that can sit in the event chain
// — a real format parser/renderer, a logger, a Transformer fan-out — is a
// Receiver.
type Receiver interface {
	// Position reports the current diagnostic position for error messages.
	Position() errs.Position
}

// Parser produces one Item at a time by pull.
type Parser interface {
	Receiver
	// Pull returns the next Item, or an error. A well-formed input ends
	// with an EndOfInput item, not an error.
	Pull() (Item, error)
}

// Renderer consumes one Item at a time by push.
type Renderer interface {
	Receiver
	// Push writes one Item to the renderer's sink.
	Push(Item) error
	// PrefersDefiniteLength reports whether this renderer wants
	// ArrayHeader/MapHeader (definite) over ArrayStart/MapStart+Break
	// (indefinite) when the caller hasn't specified either way. CBOR
	// renderers may answer either way; JSON renderers always answer false,
	// since JSON has no definite-length array/object syntax to emit (the
	// renderer internally always writes '[' ... ']' regardless, but a
	// caller driving Writer.WriteArrayOpen needs to know which header
	// shape the renderer is prepared to validate against).
	PrefersDefiniteLength() bool
}

// Transformer composes two Receivers so that every event pushed through it
// reaches both: the downstream consumer and a logger or other auxiliary
// Receiver. Generalizes a single-hardwired-sink CBOR-to-JSON walker into one
// that fans out to an arbitrary list of Renderers.
type Transformer struct {
	targets []Renderer
}

// NewTransformer constructs a Transformer fanning out to the given targets,
// in order. Errors from an earlier target short-circuit later ones.
func NewTransformer(targets ...Renderer) *Transformer {
	return &Transformer{targets: targets}
}

func (t *Transformer) Position() errs.Position {
	if len(t.targets) == 0 {
		return errs.Position{}
	}
	return t.targets[0].Position()
}

func (t *Transformer) Push(it Item) error {
	for _, r := range t.targets {
		if err := r.Push(it); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transformer) PrefersDefiniteLength() bool {
	if len(t.targets) == 0 {
		return true
	}
	return t.targets[0].PrefersDefiniteLength()
}
