package baseenc

import "encoding/base64"

// Base64 implements RFC 4648 §4/§5 base64, standard or URL-safe alphabet,
// with optional '=' padding. This is the default byte-array encoding a
// JSON renderer falls back to when the wire format has no native byte
// string.
type Base64 struct {
	URL     bool
	Padding bool
}

func (b Base64) encoding() *base64.Encoding {
	switch {
	case b.URL && b.Padding:
		return base64.URLEncoding
	case b.URL && !b.Padding:
		return base64.RawURLEncoding
	case !b.URL && b.Padding:
		return base64.StdEncoding
	default:
		return base64.RawStdEncoding
	}
}

func (b Base64) Encode(data []byte) string {
	return b.encoding().EncodeToString(data)
}

func (b Base64) Decode(s string) ([]byte, error) {
	out, err := b.encoding().DecodeString(s)
	if err != nil {
		if ce, ok := err.(base64.CorruptInputError); ok {
			idx := int(ce)
			ch := byte(0)
			if idx >= 0 && idx < len(s) {
				ch = s[idx]
			}
			return nil, &IllegalCharacterError{Index: idx, Char: ch}
		}
		return nil, err
	}
	return out, nil
}

// StdBase64 is the RFC 4648 §4 standard, padded alphabet: the canonical
// default for CBOR tag-22 "expected base64" hints and JSON byte-array
// rendering.
var StdBase64 = Base64{URL: false, Padding: true}

// URLBase64 is the RFC 4648 §5 URL-and-filename-safe, unpadded alphabet.
var URLBase64 = Base64{URL: true, Padding: false}
