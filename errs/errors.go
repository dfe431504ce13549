// Package errs defines the error taxonomy shared by every parser, renderer,
// reader, writer, and codec in codecore. Every error carries a position so
// that callers can locate the offending byte in the original input.
//
// Errors carry position information and wrap an optional cause rather than
// discarding it, collapsed here to six kinds covering malformed input,
// unexpected data items, premature end of input, overflow, validation, and
// general failures.
package errs

import "strconv"

// Position identifies a location in an input, for use in error messages.
// It is a diagnostic value only; it does not participate in decoding.
type Position struct {
	Cursor int64
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return "offset " + strconv.FormatInt(p.Cursor, 10)
}

// Kind enumerates the taxonomy of error causes every receiver can raise.
type Kind int

const (
	// InvalidInputData: malformed bytes at the format level (illegal UTF-8,
	// illegal escape, syntax error, decoder/type mismatch).
	InvalidInputData Kind = iota
	// UnexpectedDataItem: well-formed input, but the active decoder cannot
	// consume the next event.
	UnexpectedDataItem
	// UnexpectedEndOfInput: input terminated mid-item.
	UnexpectedEndOfInput
	// Overflow: a configured size/length/nesting/number bound was exceeded.
	Overflow
	// ValidationError: an encoder attempted to emit a structurally invalid
	// stream (odd map count, more items than a definite header promised,
	// a CBOR-only event written to a JSON renderer, ...).
	ValidationError
	// GeneralError: any error raised by a user-supplied codec, wrapped with
	// position information.
	GeneralError
)

func (k Kind) String() string {
	switch k {
	case InvalidInputData:
		return "InvalidInputData"
	case UnexpectedDataItem:
		return "UnexpectedDataItem"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case Overflow:
		return "Overflow"
	case ValidationError:
		return "ValidationError"
	case GeneralError:
		return "GeneralError"
	default:
		return "UnknownError"
	}
}

// Error is the concrete error type raised throughout codecore. It always
// carries a Kind and a Position; Cause is non-nil only for GeneralError,
// where it wraps an error raised by a caller-supplied Encoder/Decoder.
type Error struct {
	Kind     Kind
	Message  string
	Position Position
	Cause    error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Message + " at " + e.Position.String()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Resumable reports whether the stream is well-formed up to and including
// the error's position (true) or whether the bytes themselves are corrupt
// and no further reliable position exists (false). Overflow and
// ValidationError are resumable: the input was well-formed up to a
// configured limit or an emitted-shape mismatch. InvalidInputData and
// UnexpectedEndOfInput are not: the bytes are malformed or truncated.
// UnexpectedDataItem and GeneralError depend on the caller's own codec and
// default to resumable, since the underlying stream position is sound.
func (e *Error) Resumable() bool {
	switch e.Kind {
	case InvalidInputData, UnexpectedEndOfInput:
		return false
	default:
		return true
	}
}

// New constructs an Error of the given kind at pos with message msg.
func New(kind Kind, pos Position, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Position: pos}
}

// Wrap wraps cause as a GeneralError at pos, preserving cause via Unwrap.
// If cause is already a codecore *Error, it is returned unchanged so that
// repeated wrapping does not obscure the original position.
func Wrap(pos Position, cause error) *Error {
	if ce, ok := cause.(*Error); ok {
		return ce
	}
	return &Error{Kind: GeneralError, Message: "user codec error", Position: pos, Cause: cause}
}

// Resumable reports whether err means the stream of data is malformed and
// unrecoverable (false) versus a bound or shape mismatch at a known-good
// position (true). Non-codecore errors default to false.
func Resumable(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Resumable()
	}
	return false
}
