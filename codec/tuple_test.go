package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corewire/codecore/event"
)

func TestTuple2CodecRoundTrip(t *testing.T) {
	c := Tuple2Codec(Int32, String)
	got := roundTrip(t, c, Tuple2[int32, string]{V1: 1, V2: "a"})
	require.Equal(t, Tuple2[int32, string]{V1: 1, V2: "a"}, got)
}

func TestTuple3CodecRoundTrip(t *testing.T) {
	c := Tuple3Codec(Int32, String, Bool)
	got := roundTrip(t, c, Tuple3[int32, string, bool]{1, "a", true})
	require.Equal(t, Tuple3[int32, string, bool]{1, "a", true}, got)
}

func TestTuple4CodecRoundTrip(t *testing.T) {
	c := Tuple4Codec(Int32, String, Bool, Int64)
	got := roundTrip(t, c, Tuple4[int32, string, bool, int64]{1, "a", true, 9})
	require.Equal(t, Tuple4[int32, string, bool, int64]{1, "a", true, 9}, got)
}

func TestTuple5CodecRoundTrip(t *testing.T) {
	c := Tuple5Codec(Int32, String, Bool, Int64, Float64)
	got := roundTrip(t, c, Tuple5[int32, string, bool, int64, float64]{1, "a", true, 9, 1.5})
	require.Equal(t, Tuple5[int32, string, bool, int64, float64]{1, "a", true, 9, 1.5}, got)
}

func TestTuple6CodecRoundTrip(t *testing.T) {
	c := Tuple6Codec(Int32, String, Bool, Int64, Float64, Int32)
	got := roundTrip(t, c, Tuple6[int32, string, bool, int64, float64, int32]{1, "a", true, 9, 1.5, 2})
	require.Equal(t, Tuple6[int32, string, bool, int64, float64, int32]{1, "a", true, 9, 1.5, 2}, got)
}

func TestTuple7CodecRoundTrip(t *testing.T) {
	c := Tuple7Codec(Int32, String, Bool, Int64, Float64, Int32, String)
	got := roundTrip(t, c, Tuple7[int32, string, bool, int64, float64, int32, string]{1, "a", true, 9, 1.5, 2, "z"})
	require.Equal(t, Tuple7[int32, string, bool, int64, float64, int32, string]{1, "a", true, 9, 1.5, 2, "z"}, got)
}

func TestTuple8CodecRoundTrip(t *testing.T) {
	c := Tuple8Codec(Int32, String, Bool, Int64, Float64, Int32, String, Bool)
	got := roundTrip(t, c, Tuple8[int32, string, bool, int64, float64, int32, string, bool]{1, "a", true, 9, 1.5, 2, "z", false})
	require.Equal(t, Tuple8[int32, string, bool, int64, float64, int32, string, bool]{1, "a", true, 9, 1.5, 2, "z", false}, got)
}

func TestTupleCodecRejectsWrongArity(t *testing.T) {
	c := Tuple2Codec(Int32, String)
	s := event.NewScript(event.ArrayHeaderItem(3), event.IntItem(1), event.StringItem("a"), event.IntItem(2))
	r := event.NewReader(s)
	_, err := c.Read(r)
	require.Error(t, err)
}

func TestTupleCodecIndefiniteLength(t *testing.T) {
	c := Tuple2Codec(Int32, String)
	s := event.NewScript(event.ArrayStartItem(), event.IntItem(1), event.StringItem("a"), event.BreakItem())
	r := event.NewReader(s)
	got, err := c.Read(r)
	require.NoError(t, err)
	require.Equal(t, Tuple2[int32, string]{V1: 1, V2: "a"}, got)
}
