// Package baseenc implements the base16/base32/base64 family of byte<->char
// encodings as a standalone, renderer-agnostic package: base16 and base64
// are thin wrappers over the stdlib (encoding/hex, encoding/base64) where
// RFC 4648 semantics match exactly. Base32, crockford variant included,
// wraps encoding/base32 the same way (crockford's alphabet via NewEncoding,
// with its ambiguous characters folded before decoding). Only z-base-32,
// with its non-byte-aligned bit-count mode, is hand-rolled, bit by bit.
package baseenc

import "strconv"

// IllegalCharacterError reports a decode failure at a specific input index
// and the offending character.
type IllegalCharacterError struct {
	Index int
	Char  byte
}

func (e *IllegalCharacterError) Error() string {
	return "baseenc: illegal character " + strconv.QuoteRune(rune(e.Char)) + " at index " + strconv.Itoa(e.Index)
}

// Codec is the common shape of every encoding in this package: a
// byte<->char round trip.
type Codec interface {
	Encode(b []byte) string
	Decode(s string) ([]byte, error)
}
