package event

import "github.com/corewire/codecore/errs"

// Script is a test-only Parser/Renderer pair that replays or records a
// fixed sequence of Items, letting decoder/encoder unit tests exercise the
// event model directly without going through a real wire format.
type Script struct {
	items []Item
	pos   int
}

// NewScript constructs a Script that will Pull the given items in order,
// followed by an implicit EndOfInput.
func NewScript(items ...Item) *Script {
	return &Script{items: items}
}

func (s *Script) Position() errs.Position { return errs.Position{Cursor: int64(s.pos)} }

func (s *Script) Pull() (Item, error) {
	if s.pos >= len(s.items) {
		return EndOfInputItem(), nil
	}
	it := s.items[s.pos]
	s.pos++
	return it, nil
}

// Push appends to the script, letting a Script double as a Renderer that
// records what an Encoder wrote, for assertions in encoder tests.
func (s *Script) Push(it Item) error {
	s.items = append(s.items, it)
	return nil
}

func (s *Script) PrefersDefiniteLength() bool { return true }

// Recorded returns everything pushed so far (for use as a Renderer).
func (s *Script) Recorded() []Item { return s.items }
