package codec

import (
	"github.com/corewire/codecore/baseenc"
	"github.com/corewire/codecore/event"
)

// String is the Codec for string.
var String Codec[string] = stringCodec{}

type stringCodec struct{}

func (stringCodec) Write(w *event.Writer, v string) error { return w.WriteString(v) }
func (stringCodec) Read(r *event.Reader) (string, error)  { return r.ReadString() }

// Bytes is the Codec for []byte using the format's native byte-string
// representation where one exists (CBOR major type 2), and falling back
// to a base64 string when the active Renderer has none. BytesWithEncoding
// lets a caller pick a different textual encoding than base64 for the
// JSON fallback.
var Bytes Codec[[]byte] = BytesWithEncoding(baseenc.StdBase64)

// BytesWithEncoding builds a []byte Codec whose non-native (JSON) rendering
// uses enc instead of the default base64 alphabet.
func BytesWithEncoding(enc baseenc.Codec) Codec[[]byte] {
	return bytesCodec{enc: enc}
}

type bytesCodec struct{ enc baseenc.Codec }

func (c bytesCodec) Write(w *event.Writer, v []byte) error {
	if w.PrefersDefiniteLength() {
		return w.WriteBytes(v)
	}
	return w.WriteString(c.enc.Encode(v))
}

func (c bytesCodec) Read(r *event.Reader) ([]byte, error) {
	if has, err := r.HasBytes(); err != nil {
		return nil, err
	} else if has {
		return r.ReadBytes()
	}
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	out, err := c.enc.Decode(s)
	if err != nil {
		return nil, r.UnexpectedDataItem("base64-encoded string")
	}
	return out, nil
}
