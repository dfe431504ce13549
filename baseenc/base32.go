package baseenc

import "encoding/base32"

// Base32Alphabet selects the character set a Base32 value uses.
type Base32Alphabet int

const (
	Base32Standard Base32Alphabet = iota // RFC 4648 §6
	Base32Hex                            // RFC 4648 §7 ("extended hex")
	Base32Crockford                      // Crockford's base32 (I/L/O and lower case normalized on decode; '=' padding per Base32.Padding)
)

const crockfordAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Base32 implements RFC 4648 base32 (standard and extended-hex alphabets,
// via the stdlib's encoding/base32, which already gets the 8-char-group/
// 5-byte windowing and '=' padding math right) plus Crockford's variant,
// which the stdlib alphabet table doesn't cover but which NewEncoding
// otherwise computes identically.
type Base32 struct {
	Alphabet Base32Alphabet
	Padding  bool
}

func (b Base32) encoding() *base32.Encoding {
	var enc *base32.Encoding
	switch b.Alphabet {
	case Base32Hex:
		enc = base32.HexEncoding
	case Base32Crockford:
		enc = base32.NewEncoding(crockfordAlphabet)
	default:
		enc = base32.StdEncoding
	}
	if !b.Padding {
		enc = enc.WithPadding(base32.NoPadding)
	}
	return enc
}

func (b Base32) Encode(data []byte) string {
	return b.encoding().EncodeToString(data)
}

func (b Base32) Decode(s string) ([]byte, error) {
	in := s
	if b.Alphabet == Base32Crockford {
		in = normalizeCrockford(s)
	}
	out, err := b.encoding().DecodeString(in)
	if err != nil {
		if ce, ok := err.(base32.CorruptInputError); ok {
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

// normalizeCrockford applies Crockford's documented ambiguous-character
// folding (I/L -> 1, O -> 0) and case-insensitivity before decoding.
func normalizeCrockford(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case 'i', 'I', 'l', 'L':
			c = '1'
		case 'o', 'O':
			c = '0'
		default:
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
		}
		out[i] = c
	}
	return string(out)
}
