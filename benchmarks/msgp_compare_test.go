package benchmarks

import (
	"testing"

	msgp "github.com/tinylib/msgp/msgp"

	"github.com/corewire/codecore/codec"
	"github.com/corewire/codecore/codecore"
	"github.com/corewire/codecore/event"
)

// TestData is a flat record mixing scalar, array, and map fields, used to
// compare tinylib/msgp against codecore/CBOR on the same payload shape.
type TestData struct {
	Name    string
	Age     int64
	Email   string
	Active  bool
	Balance float64
	Tags    []string
	Scores  map[string]int64
}

var testDataCodec = testDataCodecT{
	tags:   codec.SliceCodec(codec.String),
	scores: codec.MapCodec(codec.String, codec.Int64),
}

type testDataCodecT struct {
	tags   codec.Codec[[]string]
	scores codec.Codec[map[string]int64]
}

func (c testDataCodecT) Write(w *event.Writer, v TestData) error {
	unbounded, err := w.WriteArrayOpen(7)
	if err != nil {
		return err
	}
	if err := w.WriteString(v.Name); err != nil {
		return err
	}
	if err := w.WriteLong(v.Age); err != nil {
		return err
	}
	if err := w.WriteString(v.Email); err != nil {
		return err
	}
	if err := w.WriteBool(v.Active); err != nil {
		return err
	}
	if err := w.WriteDouble(v.Balance); err != nil {
		return err
	}
	if err := c.tags.Write(w, v.Tags); err != nil {
		return err
	}
	if err := c.scores.Write(w, v.Scores); err != nil {
		return err
	}
	return w.WriteArrayClose(unbounded)
}

func (c testDataCodecT) Read(r *event.Reader) (TestData, error) {
	var v TestData
	n, unbounded, err := r.ReadArrayOpen()
	if err != nil {
		return v, err
	}
	_ = n
	if v.Name, err = r.ReadString(); err != nil {
		return v, err
	}
	if v.Age, err = r.ReadLong(); err != nil {
		return v, err
	}
	if v.Email, err = r.ReadString(); err != nil {
		return v, err
	}
	if v.Active, err = r.ReadBoolean(); err != nil {
		return v, err
	}
	if v.Balance, err = r.ReadDouble(); err != nil {
		return v, err
	}
	if v.Tags, err = c.tags.Read(r); err != nil {
		return v, err
	}
	if v.Scores, err = c.scores.Read(r); err != nil {
		return v, err
	}
	return v, r.ReadArrayClose(unbounded)
}

func newTestData() TestData {
	return TestData{
		Name:    "Alice Johnson",
		Age:     30,
		Email:   "alice@example.com",
		Active:  true,
		Balance: 12345.67,
		Tags:    []string{"premium", "verified", "active"},
		Scores:  map[string]int64{"math": 95, "science": 88, "history": 92},
	}
}

func encodeMsgpTestData(data TestData) []byte {
	var buf []byte
	buf = msgp.AppendString(buf, data.Name)
	buf = msgp.AppendInt64(buf, data.Age)
	buf = msgp.AppendString(buf, data.Email)
	buf = msgp.AppendBool(buf, data.Active)
	buf = msgp.AppendFloat64(buf, data.Balance)

	buf = msgp.AppendArrayHeader(buf, uint32(len(data.Tags)))
	for _, tag := range data.Tags {
		buf = msgp.AppendString(buf, tag)
	}

	buf = msgp.AppendMapHeader(buf, uint32(len(data.Scores)))
	for k, v := range data.Scores {
		buf = msgp.AppendString(buf, k)
		buf = msgp.AppendInt64(buf, v)
	}

	return buf
}

func decodeMsgpTestData(b []byte) error {
	buf := b
	var err error

	_, buf, err = msgp.ReadStringBytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadInt64Bytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadStringBytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadBoolBytes(buf)
	if err != nil {
		return err
	}
	_, buf, err = msgp.ReadFloat64Bytes(buf)
	if err != nil {
		return err
	}

	var arrSize uint32
	arrSize, buf, err = msgp.ReadArrayHeaderBytes(buf)
	if err != nil {
		return err
	}
	for j := uint32(0); j < arrSize; j++ {
		_, buf, err = msgp.ReadStringBytes(buf)
		if err != nil {
			return err
		}
	}

	var mapSize uint32
	mapSize, buf, err = msgp.ReadMapHeaderBytes(buf)
	if err != nil {
		return err
	}
	for j := uint32(0); j < mapSize; j++ {
		_, buf, err = msgp.ReadStringBytes(buf)
		if err != nil {
			return err
		}
		_, buf, err = msgp.ReadInt64Bytes(buf)
		if err != nil {
			return err
		}
	}

	return nil
}

func encodeCodecoreTestData(data TestData) []byte {
	return codecore.Encode(codecore.Cbor, testDataCodec, data).ToByteArray()
}

func decodeCodecoreTestData(b []byte) error {
	_, err := codecore.Decode(codecore.Cbor, testDataCodec, b).Value()
	return err
}

// TestTestDataSizeBudget compares the wire size of the same payload under
// both libraries.
func TestTestDataSizeBudget(t *testing.T) {
	data := newTestData()
	msgpSize := len(encodeMsgpTestData(data))
	cborSize := len(encodeCodecoreTestData(data))
	t.Logf("msgp=%d bytes, codecore/cbor=%d bytes", msgpSize, cborSize)
	if cborSize == 0 {
		t.Fatalf("codecore: empty encoding")
	}
}

func TestTestDataPrimitivePathsParity(t *testing.T) {
	data := newTestData()

	cases := []struct {
		name string
		enc  func(TestData) []byte
		dec  func([]byte) error
	}{
		{"msgp", encodeMsgpTestData, decodeMsgpTestData},
		{"codecore/cbor", encodeCodecoreTestData, decodeCodecoreTestData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.enc(data)
			if len(b) == 0 {
				t.Fatalf("%s: empty encoding", tc.name)
			}
			if err := tc.dec(b); err != nil {
				t.Fatalf("%s: decode err: %v", tc.name, err)
			}
		})
	}
}

func BenchmarkMsgp_TestData_Encode(b *testing.B) {
	data := newTestData()
	b.ReportAllocs()
	b.ResetTimer()
	var out []byte
	for i := 0; i < b.N; i++ {
		out = encodeMsgpTestData(data)
	}
	_ = out
}

func BenchmarkMsgp_TestData_Decode(b *testing.B) {
	data := newTestData()
	enc := encodeMsgpTestData(data)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := decodeMsgpTestData(enc); err != nil {
			b.Fatalf("decode: %v", err)
		}
	}
}

func BenchmarkCodecoreCBOR_TestData_Encode(b *testing.B) {
	data := newTestData()
	b.ReportAllocs()
	b.ResetTimer()
	var out []byte
	for i := 0; i < b.N; i++ {
		out = encodeCodecoreTestData(data)
	}
	_ = out
}

func BenchmarkCodecoreCBOR_TestData_Decode(b *testing.B) {
	data := newTestData()
	enc := encodeCodecoreTestData(data)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := decodeCodecoreTestData(enc); err != nil {
			b.Fatalf("decode: %v", err)
		}
	}
}
