package jsonproto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
)

func pullAll(t *testing.T, src string, cfg Config) ([]event.Item, error) {
	t.Helper()
	p := NewParser(ioadapt.NewInput([]byte(src)), cfg)
	var items []event.Item
	for {
		it, err := p.Pull()
		if err != nil {
			return items, err
		}
		if it.Kind == event.EndOfInput {
			return items, nil
		}
		items = append(items, it)
	}
}

func requireKind(t *testing.T, err error, kind errs.Kind) {
	t.Helper()
	require.Error(t, err)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind)
}

func TestParseScalarLiterals(t *testing.T) {
	items, err := pullAll(t, ` null `, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.NullItem()}, items)

	items, err = pullAll(t, `true`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.BoolItem(true)}, items)

	items, err = pullAll(t, `false`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.BoolItem(false)}, items)
}

func TestParseEmptyInputFails(t *testing.T) {
	_, err := pullAll(t, `   `, DefaultConfig())
	requireKind(t, err, errs.UnexpectedEndOfInput)
}

func TestParseTrailingDataRejected(t *testing.T) {
	_, err := pullAll(t, `1 2`, DefaultConfig())
	requireKind(t, err, errs.InvalidInputData)
}

func TestParseArraySyntaxErrorReportsPosition(t *testing.T) {
	// "[12,,42]": after the first element and its comma, index 4 holds a
	// second comma where a value is expected.
	_, err := pullAll(t, `[12,,42]`, DefaultConfig())
	requireKind(t, err, errs.InvalidInputData)
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	require.EqualValues(t, 4, e.Position.Cursor)
}

func TestParseArrayMissingCommaOrBracket(t *testing.T) {
	_, err := pullAll(t, `[1 2]`, DefaultConfig())
	requireKind(t, err, errs.InvalidInputData)
}

func TestParseObjectMissingColon(t *testing.T) {
	_, err := pullAll(t, `{"a" 1}`, DefaultConfig())
	requireKind(t, err, errs.InvalidInputData)
}

func TestParseObjectNonStringKeyRejected(t *testing.T) {
	_, err := pullAll(t, `{1:2}`, DefaultConfig())
	requireKind(t, err, errs.InvalidInputData)
}

func TestParseEmptyArrayAndObject(t *testing.T) {
	items, err := pullAll(t, `[]`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.ArrayStartItem(), event.BreakItem()}, items)

	items, err = pullAll(t, `{}`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.MapStartItem(), event.BreakItem()}, items)
}

func TestParseObjectKeepsDuplicateKeysAsSeparateEvents(t *testing.T) {
	// The parser itself never deduplicates; codec.MapCodec's "last value
	// wins" policy is a decision made one layer up.
	items, err := pullAll(t, `{"a":1,"a":2}`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{
		event.MapStartItem(),
		event.StringItem("a"), event.IntItem(1),
		event.StringItem("a"), event.IntItem(2),
		event.BreakItem(),
	}, items)
}

func TestParseNestedContainersMatchSeedShape(t *testing.T) {
	items, err := pullAll(t, `{"a":[0,1],"b":[1,[2,3]]}`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{
		event.MapStartItem(),
		event.StringItem("a"),
		event.ArrayStartItem(), event.IntItem(0), event.IntItem(1), event.BreakItem(),
		event.StringItem("b"),
		event.ArrayStartItem(),
		event.IntItem(1),
		event.ArrayStartItem(), event.IntItem(2), event.IntItem(3), event.BreakItem(),
		event.BreakItem(),
		event.BreakItem(),
	}, items)
}

func TestParseNestingDepthOverflow(t *testing.T) {
	cfg := Config{MaxNestingLevels: 2}
	_, err := pullAll(t, `[[[1]]]`, cfg)
	requireKind(t, err, errs.Overflow)
}

func TestParseStringEscapes(t *testing.T) {
	items, err := pullAll(t, `"\"\\\/\b\f\n\r\t"`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.StringItem("\"\\/\b\f\n\r\t")}, items)
}

func TestParseStringUnicodeEscape(t *testing.T) {
	// \x5c is a backslash: the input is the six-character escape of é.
	items, err := pullAll(t, "\"\x5cu00e9\"", DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.StringItem("é")}, items)
}

func TestParseStringSurrogatePairEscape(t *testing.T) {
	// U+1F600 written as the escaped UTF-16 surrogate pair \ud83d\ude00.
	items, err := pullAll(t, `"\ud83d\ude00"`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.StringItem("\U0001F600")}, items)
}

func TestParseStringUnpairedSurrogateRejected(t *testing.T) {
	_, err := pullAll(t, `"\ud83d"`, DefaultConfig())
	requireKind(t, err, errs.InvalidInputData)
}

func TestParseStringMultiByteUTF8PassThrough(t *testing.T) {
	for _, s := range []string{"é", "€", "𐍈"} { // 2, 3, 4-byte UTF-8
		items, err := pullAll(t, `"`+s+`"`, DefaultConfig())
		require.NoError(t, err)
		require.Equal(t, []event.Item{event.StringItem(s)}, items)
	}
}

func TestParseStringRawControlCharRejected(t *testing.T) {
	_, err := pullAll(t, "\"a\x01b\"", DefaultConfig())
	requireKind(t, err, errs.InvalidInputData)
}

func TestParseStringMaxLengthOverflow(t *testing.T) {
	cfg := Config{MaxStringLength: 2}
	_, err := pullAll(t, `"abc"`, cfg)
	requireKind(t, err, errs.Overflow)
}

func TestParseNumberIntAndLongWidths(t *testing.T) {
	items, err := pullAll(t, `2147483647`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.IntItem(2147483647)}, items)

	items, err = pullAll(t, `2147483648`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.LongItem(2147483648)}, items)

	// 14 digits, too wide for i32 but fits i64 exactly.
	items, err = pullAll(t, `12345678901234`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.LongItem(12345678901234)}, items)

	items, err = pullAll(t, `9223372036854775808`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.NumberStringItem("9223372036854775808")}, items)
}

func TestParseNumberDoubleLosslessWindow(t *testing.T) {
	items, err := pullAll(t, `3.14`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.DoubleItem(3.14)}, items)

	// Has a decimal point, so the Double dispatch branch (mantissa fits 53
	// bits, adjusted exponent in range) wins over the trailing-zero Long
	// branch even though the value is integral.
	items, err = pullAll(t, `100.0`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.DoubleItem(100.0)}, items)
}

func TestParseNumberBelowDoubleLosslessWindowIsNumberString(t *testing.T) {
	// The adjusted exponent (-23 explicit, less 12 fractional digits = -35)
	// falls well outside [-22, 22], so the mantissa cannot land exactly on
	// a float64 and the verbatim lexeme is preserved instead.
	items, err := pullAll(t, `1.234567890123E-23`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.NumberStringItem("1.234567890123E-23")}, items)
}

func TestParseNumberLongViaScaledMantissa(t *testing.T) {
	// Mantissa (12345678901234567, 17 digits) exceeds the 53-bit Double
	// threshold, but the adjusted exponent is positive and the scaled
	// value still fits an int64, so this takes the trailing-zero Long path.
	items, err := pullAll(t, `12345678901234567e1`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.LongItem(123456789012345670)}, items)
}

func TestParseNumberNegativeScaledLong(t *testing.T) {
	items, err := pullAll(t, `-12345678901234567e1`, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.LongItem(-123456789012345670)}, items)
}

func TestParseNumberReadDecimalNumbersOnlyAsNumberStrings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReadDecimalNumbersOnlyAsNumberStrings = true
	items, err := pullAll(t, `3.14`, cfg)
	require.NoError(t, err)
	require.Equal(t, []event.Item{event.NumberStringItem("3.14")}, items)
}

func TestParseNumberMantissaDigitsOverflow(t *testing.T) {
	cfg := Config{MaxNumberMantissaDigits: 5}
	_, err := pullAll(t, `1.234567`, cfg)
	requireKind(t, err, errs.Overflow)
}

func TestParseNumberExponentOverflow(t *testing.T) {
	cfg := Config{MaxNumberAbsExponent: 10}
	_, err := pullAll(t, `1e100`, cfg)
	requireKind(t, err, errs.Overflow)
}

func TestParseNumberMalformedLexemes(t *testing.T) {
	for _, s := range []string{`-`, `1.`, `1e`, `1e+`} {
		_, err := pullAll(t, s, DefaultConfig())
		requireKind(t, err, errs.InvalidInputData)
	}
}
