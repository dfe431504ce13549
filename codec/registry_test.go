package codec

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/corewire/codecore/event"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	RegisterCodec[int64](reg, Int64)
	c, ok := LookupCodec[int64](reg)
	require.True(t, ok)
	require.Equal(t, Int64, c)
}

func TestRegistryLookupMiss(t *testing.T) {
	reg := NewRegistry()
	_, ok := LookupCodec[string](reg)
	require.False(t, ok)
}

// stringifiedInt64 is a Codec[int64] deliberately wire-incompatible with
// Int64, so a replaced registration is distinguishable by what it puts on
// the wire, not just by reference identity (func-valued Codecs are never
// reflect.DeepEqual, even to themselves).
var stringifiedInt64 Codec[int64] = Join[int64](
	EncoderFunc[int64](func(w *event.Writer, v int64) error {
		return w.WriteString(strconv.FormatInt(v, 10))
	}),
	DecoderFunc[int64](func(r *event.Reader) (int64, error) {
		s, err := r.ReadString()
		if err != nil {
			return 0, err
		}
		return strconv.ParseInt(s, 10, 64)
	}),
)

func TestRegistrySecondRegistrationReplacesFirst(t *testing.T) {
	reg := NewRegistry()
	RegisterCodec[int64](reg, Int64)
	RegisterCodec[int64](reg, stringifiedInt64)
	got, ok := LookupCodec[int64](reg)
	require.True(t, ok)

	s := event.NewScript()
	w := event.NewWriter(s)
	require.NoError(t, got.Write(w, 7))
	require.Equal(t, event.String, s.Recorded()[0].Kind)
}

func TestMustLookupCodecPanicsOnMiss(t *testing.T) {
	reg := NewRegistry()
	require.Panics(t, func() {
		MustLookupCodec[string](reg)
	})
}

func TestMustLookupCodecReturnsRegistered(t *testing.T) {
	reg := NewRegistry()
	RegisterCodec[string](reg, String)
	require.Equal(t, String, MustLookupCodec[string](reg))
}
