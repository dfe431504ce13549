package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderBasicConsume(t *testing.T) {
	s := NewScript(IntItem(42), StringItem("hi"), BoolItem(true), EndOfInputItem())
	r := NewReader(s)

	hasInt, err := r.HasInt()
	require.NoError(t, err)
	require.True(t, hasInt)

	i, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, int32(42), i)

	str, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hi", str)

	b, err := r.ReadBoolean()
	require.NoError(t, err)
	require.True(t, b)

	require.NoError(t, r.ReadEndOfInput())
}

func TestReaderExplicitReadTagBeforeItem(t *testing.T) {
	s := NewScript(TagItem(0), StringItem("2021-01-01"))
	r := NewReader(s)

	hasTag, err := r.HasTag()
	require.NoError(t, err)
	require.True(t, hasTag)

	tag, err := r.ReadTag()
	require.NoError(t, err)
	require.EqualValues(t, 0, tag)

	str, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "2021-01-01", str)
}

func TestReaderTagSkippedWithoutExplicitRead(t *testing.T) {
	s := NewScript(TagItem(24), IntItem(5))
	r := NewReader(s)
	i, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, int32(5), i)
}

func TestReaderArrayOpenCloseDefinite(t *testing.T) {
	s := NewScript(ArrayHeaderItem(2), IntItem(1), IntItem(2))
	r := NewReader(s)
	n, unbounded, err := r.ReadArrayOpen()
	require.NoError(t, err)
	require.False(t, unbounded)
	require.EqualValues(t, 2, n)
	for i := 0; i < int(n); i++ {
		_, err := r.ReadInt()
		require.NoError(t, err)
	}
	require.NoError(t, r.ReadArrayClose(unbounded))
}

func TestReaderArrayOpenCloseIndefinite(t *testing.T) {
	s := NewScript(ArrayStartItem(), IntItem(1), IntItem(2), BreakItem())
	r := NewReader(s)
	_, unbounded, err := r.ReadArrayOpen()
	require.NoError(t, err)
	require.True(t, unbounded)
	for {
		hasBreak, err := r.HasBreak()
		require.NoError(t, err)
		if hasBreak {
			break
		}
		_, err = r.ReadInt()
		require.NoError(t, err)
	}
	require.NoError(t, r.ReadArrayClose(unbounded))
}

func TestReaderUnexpectedDataItem(t *testing.T) {
	s := NewScript(StringItem("x"))
	r := NewReader(s)
	_, err := r.ReadInt()
	require.Error(t, err)
}

func TestReaderSkipItemNestedContainers(t *testing.T) {
	s := NewScript(
		ArrayHeaderItem(2),
		MapStartItem(), StringItem("k"), IntItem(1), BreakItem(),
		IntItem(9),
		IntItem(100),
	)
	r := NewReader(s)
	require.NoError(t, r.SkipItem()) // skips the whole outer array
	i, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, int32(100), i)
}

func TestWriterRoundTripsThroughScript(t *testing.T) {
	s := NewScript()
	w := NewWriter(s)
	require.NoError(t, w.WriteArrayHeader(2))
	require.NoError(t, w.WriteInt(1))
	require.NoError(t, w.WriteString("x"))

	r := NewReader(NewScript(s.Recorded()...))
	n, unbounded, err := r.ReadArrayOpen()
	require.NoError(t, err)
	require.False(t, unbounded)
	require.EqualValues(t, 2, n)
	i, err := r.ReadInt()
	require.NoError(t, err)
	require.Equal(t, int32(1), i)
	str, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "x", str)
}

func TestTransformerFansOutToBothTargets(t *testing.T) {
	a := NewScript()
	b := NewScript()
	tr := NewTransformer(a, b)
	w := NewWriter(tr)
	require.NoError(t, w.WriteInt(7))
	require.Len(t, a.Recorded(), 1)
	require.Len(t, b.Recorded(), 1)
	require.Equal(t, int32(7), a.Recorded()[0].I32)
	require.Equal(t, int32(7), b.Recorded()[0].I32)
}
