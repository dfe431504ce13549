package jsonproto

// containerState tracks what the parser/renderer may legally see next
// inside an open array or object, the JSON analogue of cborproto's
// frameStack — except JSON containers are always indefinite (there is no
// length header), so the only bookkeeping needed is "have we seen the
// first member yet" and, for objects, "are we between a key and its
// value".
type containerState int

const (
	stateArrayFirst containerState = iota // just opened '[', value or ']' next
	stateArrayRest                        // after a value, ',' or ']' next
	stateObjectFirst                      // just opened '{', a string key or '}' next
	stateObjectKey                        // after ',', a string key is required next
	stateObjectColon                      // after a key, ':' then a value
	stateObjectRest                       // after a value, ',' or '}' next
)

type containerFrame struct {
	isObject bool
	state    containerState
}
