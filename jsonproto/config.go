// Package jsonproto implements RFC 8259 JSON as a Parser/Renderer pair
// over the shared event model. There is no existing JSON parser to adapt
// here (delegating to encoding/json would only cover an unrelated
// CBOR<->JSON tag-wrapper convention); the scanner is hand-rolled in the
// same low-level, byte-indexed, minimal-branching style as the CBOR parser.
package jsonproto

import "github.com/corewire/codecore/event"

// Config bounds resource usage and governs number-classification
// behavior. The zero Config is usable; DefaultConfig returns production
// limits.
type Config struct {
	MaxNestingLevels int

	// MaxStringLength bounds the decoded length, in bytes, of any single
	// JSON string literal (key or value). Zero means unbounded.
	MaxStringLength int

	// MaxNumberMantissaDigits and MaxNumberAbsExponent bound how large a
	// decimal literal's mantissa digit count and exponent magnitude may be;
	// exceeding either raises Overflow once the lexeme has been scanned,
	// instead of classifying it.
	MaxNumberMantissaDigits int
	MaxNumberAbsExponent    int

	// ReadDecimalNumbersOnlyAsNumberStrings forces every literal with a
	// fraction or exponent to decode as NumberString regardless of size,
	// for callers that always want to hand such values to an arbitrary-
	// precision decoder rather than risk float64 rounding.
	ReadDecimalNumbersOnlyAsNumberStrings bool

	// PrettyIndent, when non-nil, is the per-level indent string the
	// Renderer uses; nil renders compact JSON with no extra whitespace.
	PrettyIndent *string

	AllowBufferCaching bool
	BufferSize         int
}

// DefaultConfig returns the limits used when a caller supplies none.
func DefaultConfig() Config {
	return Config{
		MaxNestingLevels:        event.MaxNestingLevels,
		MaxNumberMantissaDigits: 34,
		MaxNumberAbsExponent:    999,
		BufferSize:              4096,
	}
}

func (c Config) nestingLimit() int {
	if c.MaxNestingLevels > 0 {
		return c.MaxNestingLevels
	}
	return event.MaxNestingLevels
}

func (c Config) maxMantissaDigits() int {
	if c.MaxNumberMantissaDigits > 0 {
		return c.MaxNumberMantissaDigits
	}
	return 34
}

func (c Config) maxAbsExponent() int {
	if c.MaxNumberAbsExponent > 0 {
		return c.MaxNumberAbsExponent
	}
	return 999
}

func (c Config) maxStringLength() int { return c.MaxStringLength }
