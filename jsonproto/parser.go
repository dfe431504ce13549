package jsonproto

import (
	"math"
	"math/big"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
)

// Parser decodes a JSON byte stream into event.Items, one per Pull call.
// A container always emits the indefinite-length events (ArrayStart/
// MapStart ... Break) since JSON has no length-prefixed syntax to mirror
// CBOR's ArrayHeader/MapHeader.
type Parser struct {
	in    *ioadapt.Input
	cfg   Config
	stack []containerFrame
	atTop bool // the single top-level value has been produced
}

// NewParser constructs a Parser reading from in under cfg.
func NewParser(in *ioadapt.Input, cfg Config) *Parser {
	return &Parser{in: in, cfg: cfg}
}

func (p *Parser) Position() errs.Position { return p.in.Position() }

func (p *Parser) fail(kind errs.Kind, msg string) error {
	return errs.New(kind, p.Position(), msg)
}

func (p *Parser) skipWhitespace() {
	for {
		b, ok := p.in.PeekByte()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			p.in.Skip(1)
		default:
			return
		}
	}
}

func (p *Parser) peekNonSpace() (byte, bool) {
	p.skipWhitespace()
	return p.in.PeekByte()
}

// Pull returns the next Item, driving an explicit container-state
// machine instead of recursing, so one call always produces exactly one
// event even arbitrarily deep inside nested arrays/objects.
func (p *Parser) Pull() (event.Item, error) {
	if len(p.stack) == 0 {
		if p.atTop {
			p.skipWhitespace()
			if p.in.Len() == 0 {
				return event.EndOfInputItem(), nil
			}
			return event.Item{}, p.fail(errs.InvalidInputData, "unexpected trailing data after top-level value")
		}
		it, err := p.readValue()
		if err != nil {
			return event.Item{}, err
		}
		if len(p.stack) == 0 {
			p.atTop = true
		}
		return it, nil
	}

	top := &p.stack[len(p.stack)-1]
	if !top.isObject {
		return p.pullArrayMember(top)
	}
	return p.pullObjectMember(top)
}

func (p *Parser) pullArrayMember(top *containerFrame) (event.Item, error) {
	b, ok := p.peekNonSpace()
	switch top.state {
	case stateArrayFirst:
		if ok && b == ']' {
			p.in.Skip(1)
			p.popFrame()
			return event.BreakItem(), nil
		}
		top.state = stateArrayRest
		return p.readValue()
	case stateArrayRest:
		if ok && b == ']' {
			p.in.Skip(1)
			p.popFrame()
			return event.BreakItem(), nil
		}
		if !ok || b != ',' {
			return event.Item{}, p.fail(errs.InvalidInputData, "expected ',' or ']' in array")
		}
		p.in.Skip(1)
		if _, ok := p.peekNonSpace(); !ok {
			return event.Item{}, p.fail(errs.UnexpectedEndOfInput, "unexpected end of input after ','")
		}
		return p.readValue()
	}
	return event.Item{}, p.fail(errs.GeneralError, "invalid array parser state")
}

func (p *Parser) pullObjectMember(top *containerFrame) (event.Item, error) {
	switch top.state {
	case stateObjectFirst, stateObjectKey:
		b, ok := p.peekNonSpace()
		if top.state == stateObjectFirst && ok && b == '}' {
			p.in.Skip(1)
			p.popFrame()
			return event.BreakItem(), nil
		}
		if !ok || b != '"' {
			return event.Item{}, p.fail(errs.InvalidInputData, "expected a string key in object")
		}
		key, err := p.readStringLiteral()
		if err != nil {
			return event.Item{}, err
		}
		top.state = stateObjectColon
		return event.StringItem(key), nil
	case stateObjectColon:
		b, ok := p.peekNonSpace()
		if !ok || b != ':' {
			return event.Item{}, p.fail(errs.InvalidInputData, "expected ':' after object key")
		}
		p.in.Skip(1)
		if _, ok := p.peekNonSpace(); !ok {
			return event.Item{}, p.fail(errs.UnexpectedEndOfInput, "unexpected end of input after ':'")
		}
		top.state = stateObjectRest
		return p.readValue()
	case stateObjectRest:
		b, ok := p.peekNonSpace()
		if ok && b == '}' {
			p.in.Skip(1)
			p.popFrame()
			return event.BreakItem(), nil
		}
		if !ok || b != ',' {
			return event.Item{}, p.fail(errs.InvalidInputData, "expected ',' or '}' in object")
		}
		p.in.Skip(1)
		if _, ok := p.peekNonSpace(); !ok {
			return event.Item{}, p.fail(errs.UnexpectedEndOfInput, "unexpected end of input after ','")
		}
		top.state = stateObjectKey
		return p.pullObjectMember(top)
	}
	return event.Item{}, p.fail(errs.GeneralError, "invalid object parser state")
}

func (p *Parser) popFrame() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Parser) pushFrame(isObject bool) error {
	p.stack = append(p.stack, containerFrame{isObject: isObject})
	if len(p.stack) > p.cfg.nestingLimit() {
		return p.fail(errs.Overflow, "maximum nesting depth exceeded")
	}
	return nil
}

// readValue dispatches on the next significant byte to read exactly one
// JSON value, opening a new container frame for '[' / '{' instead of
// recursing into its members.
func (p *Parser) readValue() (event.Item, error) {
	b, ok := p.peekNonSpace()
	if !ok {
		return event.Item{}, p.fail(errs.UnexpectedEndOfInput, "unexpected end of input, expected a value")
	}
	switch {
	case b == '{':
		p.in.Skip(1)
		if err := p.pushFrame(true); err != nil {
			return event.Item{}, err
		}
		return event.MapStartItem(), nil
	case b == '[':
		p.in.Skip(1)
		if err := p.pushFrame(false); err != nil {
			return event.Item{}, err
		}
		return event.ArrayStartItem(), nil
	case b == '"':
		s, err := p.readStringLiteral()
		if err != nil {
			return event.Item{}, err
		}
		return event.StringItem(s), nil
	case b == 't':
		if err := p.expectLiteral("true"); err != nil {
			return event.Item{}, err
		}
		return event.BoolItem(true), nil
	case b == 'f':
		if err := p.expectLiteral("false"); err != nil {
			return event.Item{}, err
		}
		return event.BoolItem(false), nil
	case b == 'n':
		if err := p.expectLiteral("null"); err != nil {
			return event.Item{}, err
		}
		return event.NullItem(), nil
	case b == '-' || (b >= '0' && b <= '9'):
		return p.readNumber()
	}
	return event.Item{}, p.fail(errs.InvalidInputData, "unexpected character, expected a value")
}

func (p *Parser) expectLiteral(lit string) error {
	b, err := p.in.Bytes(len(lit), ioadapt.StrictPadding{Pos: p.Position()})
	if err != nil {
		return err
	}
	if string(b) != lit {
		return p.fail(errs.InvalidInputData, "invalid literal, expected "+lit)
	}
	return nil
}

// readStringLiteral consumes a '"'-delimited JSON string, decoding
// backslash escapes and surrogate pairs, and returns the Go string.
func (p *Parser) readStringLiteral() (string, error) {
	p.in.Skip(1) // opening quote, already confirmed present by the caller
	var buf []byte
	for {
		b, err := p.in.Byte(ioadapt.StrictPadding{Pos: p.Position()})
		if err != nil {
			return "", err
		}
		switch {
		case b == '"':
			if limit := p.cfg.maxStringLength(); limit > 0 && len(buf) > limit {
				return "", p.fail(errs.Overflow, "string exceeds configured maximum length")
			}
			return string(buf), nil
		case b == '\\':
			r, err := p.readEscape()
			if err != nil {
				return "", err
			}
			buf = utf8.AppendRune(buf, r)
		case b < 0x20:
			return "", p.fail(errs.InvalidInputData, "unescaped control character in string")
		case b < 0x80:
			buf = append(buf, b)
		default:
			buf = append(buf, b)
			n := utf8MultiByteLen(b)
			if n == 0 {
				return "", p.fail(errs.InvalidInputData, "invalid UTF-8 lead byte in string")
			}
			rest, err := p.in.Bytes(n-1, ioadapt.StrictPadding{Pos: p.Position()})
			if err != nil {
				return "", err
			}
			buf = append(buf, rest...)
			if !utf8.Valid(buf[len(buf)-n:]) {
				return "", p.fail(errs.InvalidInputData, "invalid UTF-8 sequence in string")
			}
		}
	}
}

func utf8MultiByteLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	}
	return 0
}

func (p *Parser) readEscape() (rune, error) {
	b, err := p.in.Byte(ioadapt.StrictPadding{Pos: p.Position()})
	if err != nil {
		return 0, err
	}
	switch b {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		hi, err := p.readHex4()
		if err != nil {
			return 0, err
		}
		if utf16.IsSurrogate(rune(hi)) {
			b2, err := p.in.Bytes(2, ioadapt.StrictPadding{Pos: p.Position()})
			if err != nil || string(b2) != "\\u" {
				return 0, p.fail(errs.InvalidInputData, "expected low surrogate escape")
			}
			lo, err := p.readHex4()
			if err != nil {
				return 0, err
			}
			r := utf16.DecodeRune(rune(hi), rune(lo))
			if r == utf8.RuneError {
				return 0, p.fail(errs.InvalidInputData, "invalid surrogate pair")
			}
			return r, nil
		}
		return rune(hi), nil
	}
	return 0, p.fail(errs.InvalidInputData, "invalid escape character")
}

func (p *Parser) readHex4() (uint16, error) {
	b, err := p.in.Bytes(4, ioadapt.StrictPadding{Pos: p.Position()})
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(string(b), 16, 16)
	if err != nil {
		return 0, p.fail(errs.InvalidInputData, "invalid \\u escape")
	}
	return uint16(v), nil
}

// maxDoubleExactMantissa is 2^53, the largest mantissa whose product or
// quotient with a power of ten up to 10^22 still lands on an exactly
// representable float64.
const maxDoubleExactMantissa = uint64(1) << 53

// maxLongExactMantissa is 2^63-1, the largest magnitude a positive or
// negative int64 can hold.
const maxLongExactMantissa = uint64(math.MaxInt64)

// readNumber scans a JSON number lexeme per RFC 8259 §6 and classifies it,
// in order: no fraction or exponent and magnitude fits i32 -> Int; else
// fits i64 -> Long; else mantissa fits 53 bits and the adjusted exponent
// (the explicit exponent less the fractional digit count) is within
// [-22, 22] -> Double, since such a value lands exactly on a float64; else
// mantissa fits 63 bits, adjusted exponent is positive, and the scaled
// integer still fits i64 -> Long (an integral value with trailing zeroes
// too wide for the Double fast path); else NumberString, the verbatim
// lexeme.
func (p *Parser) readNumber() (event.Item, error) {
	startPos := p.in.Position().Cursor
	hasFracOrExp := false
	mantissaDigits := 0

	consumeDigits := func() int {
		n := 0
		for {
			b, ok := p.in.PeekByte()
			if !ok || b < '0' || b > '9' {
				return n
			}
			p.in.Skip(1)
			n++
		}
	}

	neg := false
	if b, ok := p.in.PeekByte(); ok && b == '-' {
		neg = true
		p.in.Skip(1)
	}
	intDigits := consumeDigits()
	if intDigits == 0 {
		return event.Item{}, p.fail(errs.InvalidInputData, "invalid number: expected a digit")
	}
	mantissaDigits += intDigits

	if b, ok := p.in.PeekByte(); ok && b == '.' {
		hasFracOrExp = true
		p.in.Skip(1)
		fracDigits := consumeDigits()
		if fracDigits == 0 {
			return event.Item{}, p.fail(errs.InvalidInputData, "invalid number: expected a fraction digit")
		}
		mantissaDigits += fracDigits
	}

	if b, ok := p.in.PeekByte(); ok && (b == 'e' || b == 'E') {
		hasFracOrExp = true
		p.in.Skip(1)
		if b, ok := p.in.PeekByte(); ok && (b == '+' || b == '-') {
			p.in.Skip(1)
		}
		expDigits := consumeDigits()
		if expDigits == 0 {
			return event.Item{}, p.fail(errs.InvalidInputData, "invalid number: expected an exponent digit")
		}
	}

	length := int(p.in.Position().Cursor - startPos)
	lexeme := p.in.PrecedingBytesAsASCII(length)

	if !hasFracOrExp {
		return classifyInteger(lexeme)
	}

	explicitExponent := parseExplicitExponent(lexeme)
	if mantissaDigits > p.cfg.maxMantissaDigits() || abs(explicitExponent) > p.cfg.maxAbsExponent() {
		return event.Item{}, p.fail(errs.Overflow, "number exceeds configured mantissa digit or exponent bound")
	}

	mantissa, mantissaOverflow, fracDigits := decomposeMantissa(lexeme)
	adjustedExponent := explicitExponent - fracDigits

	if !p.cfg.ReadDecimalNumbersOnlyAsNumberStrings && !mantissaOverflow &&
		mantissa <= maxDoubleExactMantissa && adjustedExponent >= -22 && adjustedExponent <= 22 {
		if f, err := strconv.ParseFloat(lexeme, 64); err == nil {
			return event.DoubleItem(f), nil
		}
	}

	if !mantissaOverflow && mantissa <= maxLongExactMantissa && adjustedExponent > 0 {
		scaled := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(adjustedExponent)), nil)
		scaled.Mul(scaled, new(big.Int).SetUint64(mantissa))
		if neg {
			scaled.Neg(scaled)
		}
		if scaled.IsInt64() {
			return event.LongItem(scaled.Int64()), nil
		}
	}

	return event.NumberStringItem(lexeme), nil
}

func classifyInteger(lexeme string) (event.Item, error) {
	if v, err := strconv.ParseInt(lexeme, 10, 32); err == nil {
		return event.IntItem(int32(v)), nil
	}
	if v, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
		return event.LongItem(v), nil
	}
	return event.NumberStringItem(lexeme), nil
}

// decomposeMantissa strips the sign and decimal point from lexeme's
// mantissa (the part before any 'e'/'E') and accumulates it as a uint64,
// reporting overflow past 64 bits and the number of digits seen after the
// decimal point.
func decomposeMantissa(lexeme string) (mantissa uint64, overflow bool, fracDigits int) {
	seenDot := false
	for i := 0; i < len(lexeme); i++ {
		c := lexeme[i]
		switch {
		case c == '-':
			continue
		case c == '.':
			seenDot = true
		case c == 'e' || c == 'E':
			return mantissa, overflow, fracDigits
		default:
			if seenDot {
				fracDigits++
			}
			if !overflow {
				d := uint64(c - '0')
				if mantissa > (math.MaxUint64-d)/10 {
					overflow = true
				} else {
					mantissa = mantissa*10 + d
				}
			}
		}
	}
	return mantissa, overflow, fracDigits
}

// parseExplicitExponent returns the signed value of lexeme's 'e'/'E' part,
// or 0 if the lexeme has none.
func parseExplicitExponent(lexeme string) int {
	idx := indexAny(lexeme, "eE")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(lexeme[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

func indexAny(s string, chars string) int {
	for i := 0; i < len(s); i++ {
		for _, c := range chars {
			if s[i] == byte(c) {
				return i
			}
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
