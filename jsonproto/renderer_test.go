package jsonproto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
)

func pushAll(t *testing.T, cfg Config, items ...event.Item) (string, error) {
	t.Helper()
	out := ioadapt.NewChunkedOutput(0, false)
	r := NewRenderer(out, cfg)
	for _, it := range items {
		if err := r.Push(it); err != nil {
			return string(out.Result()), err
		}
	}
	if err := r.Finish(); err != nil {
		return string(out.Result()), err
	}
	return string(out.Result()), nil
}

func TestRenderScalarLiterals(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.NullItem())
	require.NoError(t, err)
	require.Equal(t, "null", s)

	s, err = pushAll(t, DefaultConfig(), event.BoolItem(true))
	require.NoError(t, err)
	require.Equal(t, "true", s)

	s, err = pushAll(t, DefaultConfig(), event.BoolItem(false))
	require.NoError(t, err)
	require.Equal(t, "false", s)

	s, err = pushAll(t, DefaultConfig(), event.IntItem(42))
	require.NoError(t, err)
	require.Equal(t, "42", s)

	s, err = pushAll(t, DefaultConfig(), event.LongItem(9223372036854775807))
	require.NoError(t, err)
	require.Equal(t, "9223372036854775807", s)

	s, err = pushAll(t, DefaultConfig(), event.StringItem(`a"b`))
	require.NoError(t, err)
	require.Equal(t, `"a\"b"`, s)
}

func TestRenderNestedContainersMatchSeedShape(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(),
		event.MapStartItem(),
		event.StringItem("a"),
		event.ArrayStartItem(), event.IntItem(0), event.IntItem(1), event.BreakItem(),
		event.StringItem("b"),
		event.ArrayStartItem(),
		event.IntItem(1),
		event.ArrayStartItem(), event.IntItem(2), event.IntItem(3), event.BreakItem(),
		event.BreakItem(),
		event.BreakItem(),
	)
	require.NoError(t, err)
	require.Equal(t, `{"a":[0,1],"b":[1,[2,3]]}`, s)
}

func TestRenderDefiniteLengthHeadersCloseThemselves(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(),
		event.ArrayHeaderItem(2), event.IntItem(1), event.IntItem(2),
	)
	require.NoError(t, err)
	require.Equal(t, "[1,2]", s)

	s, err = pushAll(t, DefaultConfig(),
		event.MapHeaderItem(1), event.StringItem("k"), event.IntItem(1),
	)
	require.NoError(t, err)
	require.Equal(t, `{"k":1}`, s)
}

func TestRenderEmptyArrayAndObject(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.ArrayStartItem(), event.BreakItem())
	require.NoError(t, err)
	require.Equal(t, "[]", s)

	s, err = pushAll(t, DefaultConfig(), event.MapStartItem(), event.BreakItem())
	require.NoError(t, err)
	require.Equal(t, "{}", s)
}

func TestRenderPrettyIndent(t *testing.T) {
	indent := "  "
	cfg := Config{PrettyIndent: &indent}
	s, err := pushAll(t, cfg,
		event.MapStartItem(),
		event.StringItem("a"), event.IntItem(1),
		event.BreakItem(),
	)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": 1\n}", s)
}

func TestRenderFloatShortestRoundTrip(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.DoubleItem(3.14))
	require.NoError(t, err)
	require.Equal(t, "3.14", s)

	// An exact-integer float still needs a decimal point so a reader can
	// tell it apart from an Int/Long item on re-parse.
	s, err = pushAll(t, DefaultConfig(), event.DoubleItem(100))
	require.NoError(t, err)
	require.Equal(t, "100.0", s)

	s, err = pushAll(t, DefaultConfig(), event.FloatItem(2.5))
	require.NoError(t, err)
	require.Equal(t, "2.5", s)
}

func TestRenderFloatRejectsNaNAndInfinity(t *testing.T) {
	nan := 0.0
	nan = nan / nan
	_, err := pushAll(t, DefaultConfig(), event.DoubleItem(nan))
	requireKind(t, err, errs.InvalidInputData)

	inf := 1.0
	inf = inf / 0.0
	_, err = pushAll(t, DefaultConfig(), event.DoubleItem(inf))
	requireKind(t, err, errs.InvalidInputData)
}

func TestRenderNumberStringPassesThroughVerbatim(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.NumberStringItem("1.234567890123E-23"))
	require.NoError(t, err)
	require.Equal(t, "1.234567890123E-23", s)
}

func TestRenderStringEscapes(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.StringItem("\"\\/\b\f\n\r\t"))
	require.NoError(t, err)
	require.Equal(t, `"\"\\/\b\f\n\r\t"`, s)
}

func TestRenderStringControlCharEscape(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.StringItem("a\x01b"))
	require.NoError(t, err)
	require.Equal(t, `"a\u0001b"`, s)
}

func TestRenderStringMultiByteUTF8PassThrough(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.StringItem("é€𐍈"))
	require.NoError(t, err)
	require.Equal(t, `"é€𐍈"`, s)
}

func TestRenderObjectKeyMustBeString(t *testing.T) {
	_, err := pushAll(t, DefaultConfig(), event.MapStartItem(), event.IntItem(1))
	requireKind(t, err, errs.UnexpectedDataItem)
}

func TestRenderBreakOutsideContainerRejected(t *testing.T) {
	_, err := pushAll(t, DefaultConfig(), event.BreakItem())
	requireKind(t, err, errs.ValidationError)
}

func TestRenderUnclosedContainerFailsFinish(t *testing.T) {
	_, err := pushAll(t, DefaultConfig(), event.ArrayStartItem(), event.IntItem(1))
	requireKind(t, err, errs.ValidationError)
}

func TestRenderCBOROnlyItemsRejected(t *testing.T) {
	cborOnly := []event.Item{
		event.UndefinedItem(),
		event.SimpleValueItem(1),
		event.TagItem(0),
		event.BytesItem([]byte("x")),
		event.BytesStartItem(),
		event.TextStartItem(),
		event.Float16Item(1.5),
	}
	for _, it := range cborOnly {
		_, err := pushAll(t, DefaultConfig(), it)
		requireKind(t, err, errs.ValidationError)
	}
}

func TestRenderNestingDepthOverflow(t *testing.T) {
	cfg := Config{MaxNestingLevels: 2}
	_, err := pushAll(t, cfg,
		event.ArrayStartItem(), event.ArrayStartItem(), event.ArrayStartItem(), event.IntItem(1),
	)
	requireKind(t, err, errs.Overflow)
}

func TestRenderOverLong(t *testing.T) {
	s, err := pushAll(t, DefaultConfig(), event.OverLongItem(false, 18446744073709551615))
	require.NoError(t, err)
	require.Equal(t, "18446744073709551615", s)

	s, err = pushAll(t, DefaultConfig(), event.OverLongItem(true, 18446744073709551615))
	require.NoError(t, err)
	require.Equal(t, "-18446744073709551616", s)
}
