// Package event defines the streaming element-kind alphabet and the
// single-lookahead Reader / push Writer pair over it — the narrow waist
// between the format-specific parsers/renderers and the codec layer.
package event

// Kind enumerates the fixed set of element kinds every parser emits and
// every renderer consumes.
type Kind int

const (
	Null Kind = iota
	Undefined
	Boolean

	Int     // int32
	Long    // int64
	OverLong // raw uint64 magnitude + sign, for values outside [-2^63, 2^63)

	Float16 // IEEE-754 half, widened to float32
	Float   // float32
	Double  // float64
	NumberString

	Bytes
	BytesStart

	String
	Chars // same semantics as String; buffer is transiently owned by the parser
	TextStart

	ArrayHeader // definite-length array, N items follow
	ArrayStart  // indefinite-length array, terminated by Break

	MapHeader // definite-length map, 2N items follow
	MapStart  // indefinite-length map, terminated by Break

	Tag // a CBOR tag; always a prefix, never a standalone item

	SimpleValue

	Break

	EndOfInput
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Undefined:
		return "Undefined"
	case Boolean:
		return "Boolean"
	case Int:
		return "Int"
	case Long:
		return "Long"
	case OverLong:
		return "OverLong"
	case Float16:
		return "Float16"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case NumberString:
		return "NumberString"
	case Bytes:
		return "Bytes"
	case BytesStart:
		return "BytesStart"
	case String:
		return "String"
	case Chars:
		return "Chars"
	case TextStart:
		return "TextStart"
	case ArrayHeader:
		return "ArrayHeader"
	case ArrayStart:
		return "ArrayStart"
	case MapHeader:
		return "MapHeader"
	case MapStart:
		return "MapStart"
	case Tag:
		return "Tag"
	case SimpleValue:
		return "SimpleValue"
	case Break:
		return "Break"
	case EndOfInput:
		return "EndOfInput"
	default:
		return "Unknown"
	}
}

// MaxNestingLevels bounds container nesting depth across both formats,
// shared with cborproto.
const MaxNestingLevels = 64
