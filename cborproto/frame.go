package cborproto

import "github.com/corewire/codecore/errs"

// overflowErr and unexpectedErr let frameStack raise a classified error
// without needing to carry a Position itself; classify attaches one.
type overflowErr string

func (e overflowErr) Error() string { return string(e) }

type unexpectedErr string

func (e unexpectedErr) Error() string { return string(e) }

func errOverflow(msg string) error   { return overflowErr(msg) }
func errUnexpected(msg string) error { return unexpectedErr(msg) }

// classify turns a frameStack sentinel error into a positioned errs.Error.
func classify(err error, pos errs.Position) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case overflowErr:
		return errs.New(errs.Overflow, pos, err.Error())
	case unexpectedErr:
		return errs.New(errs.ValidationError, pos, err.Error())
	default:
		return errs.New(errs.ValidationError, pos, err.Error())
	}
}

// frame tracks one open container level for nesting/count validation,
// adapted from the recursive structural walk in this module's CBOR
// runtime's well-formedness validator into an explicit stack so a single
// event.Item can be consumed per Pull/Push call instead of recursing.
type frame struct {
	remaining int64 // -1 for indefinite-length containers
	isMap     bool
}

// frameStack is embedded by both Parser and Renderer: it is the common
// bookkeeping for "does this sequence of items form well-nested CBOR",
// independent of which direction the bytes are flowing.
type frameStack struct {
	frames      []frame
	skipConsume bool // set while unwinding a Tag prefix; the wrapped item doesn't double-count
	limit       int
}

func (s *frameStack) depth() int { return len(s.frames) }

// open pushes a new frame for an array/map/chunked-string container,
// after first accounting for the container itself as one item in its
// parent (unless it was itself the target of a pending Tag).
func (s *frameStack) open(remaining int64, isMap bool) error {
	if !s.skipConsume {
		if err := s.consumeInParent(); err != nil {
			return err
		}
	}
	s.skipConsume = false
	s.frames = append(s.frames, frame{remaining: remaining, isMap: isMap})
	if s.limit > 0 && len(s.frames) > s.limit {
		return errOverflow("maximum nesting depth exceeded")
	}
	// A just-opened definite-length container declaring zero items is
	// already complete (e.g. ArrayHeader(0)): pop it immediately so a
	// sibling item lands in the enclosing frame instead of being rejected
	// against a frame that no Break will ever arrive to close.
	for len(s.frames) > 0 && s.frames[len(s.frames)-1].remaining == 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
	return nil
}

// closeIndefinite pops the top frame on a Break; it must be an
// indefinite-length container.
func (s *frameStack) closeIndefinite() error {
	if len(s.frames) == 0 || s.frames[len(s.frames)-1].remaining != -1 {
		return errUnexpected("Break outside an indefinite-length container")
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// consumeInParent accounts for a just-arrived atomic item (or a container
// header, counted at open time) against the currently open frame, popping
// any definite-length frame that becomes fully consumed.
func (s *frameStack) consumeInParent() error {
	for len(s.frames) > 0 {
		top := &s.frames[len(s.frames)-1]
		if top.remaining < 0 { // indefinite: nothing to decrement
			return nil
		}
		if top.remaining == 0 {
			return errUnexpected("too many items for declared container length")
		}
		top.remaining--
		if top.remaining == 0 {
			s.frames = s.frames[:len(s.frames)-1]
			continue // this frame's own closing counts as one item up a level
		}
		return nil
	}
	return nil
}

// item records the arrival of a plain (non-container, non-tag, non-break)
// item, honoring a pending Tag skip.
func (s *frameStack) item() error {
	if s.skipConsume {
		s.skipConsume = false
		return nil
	}
	return s.consumeInParent()
}

// tag records the arrival of a Tag prefix: it counts as the logical item
// in its parent, and the item it wraps must not count again.
func (s *frameStack) tag() error {
	if s.skipConsume {
		return nil // a tag wrapping another tag: already accounted for
	}
	if err := s.consumeInParent(); err != nil {
		return err
	}
	s.skipConsume = true
	return nil
}
