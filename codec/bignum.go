package codec

import (
	"math/big"

	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
)

// Arbitrary-precision tag numbers, RFC 8949 §3.4.3.
const (
	tagBigIntPositive   = 2
	tagBigIntNegative   = 3
	tagDecimalFraction  = 4
)

// BigInt is a Codec[*big.Int] implementing RFC 8949's bignum encoding:
// tag 2 for a non-negative magnitude, tag 3 for a negative one encoded as
// -(1+magnitude), wrapping a byte string. A
// jsonproto-backed Writer has no native byte string or tag, so this Codec
// is CBOR-only; a JSON-targeting caller should bimap big.Int through its
// decimal string form with codec.String instead.
var BigInt Codec[*big.Int] = bigIntCodec{}

type bigIntCodec struct{}

func (bigIntCodec) Write(w *event.Writer, v *big.Int) error {
	if v == nil {
		return w.WriteNull()
	}
	neg := v.Sign() < 0
	mag := new(big.Int).Set(v)
	if neg {
		mag.Neg(mag)
		mag.Sub(mag, big.NewInt(1))
	}
	tag := uint64(tagBigIntPositive)
	if neg {
		tag = tagBigIntNegative
	}
	if err := w.WriteTag(tag); err != nil {
		return err
	}
	return w.WriteBytes(mag.Bytes())
}

func (bigIntCodec) Read(r *event.Reader) (*big.Int, error) {
	has, err := r.HasNull()
	if err != nil {
		return nil, err
	}
	if has {
		return nil, r.ReadNull()
	}
	hasTag, err := r.HasTag()
	if err != nil {
		return nil, err
	}
	if !hasTag {
		return nil, r.UnexpectedDataItem("bignum tag")
	}
	tag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	if tag != tagBigIntPositive && tag != tagBigIntNegative {
		return nil, errs.New(errs.UnexpectedDataItem, r.Position(), "expected bignum tag 2 or 3")
	}
	raw, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	z := new(big.Int).SetBytes(raw)
	if tag == tagBigIntNegative {
		z.Add(z, big.NewInt(1))
		z.Neg(z)
	}
	return z, nil
}

// BigDecimal is a Codec[*big.Float] implementing RFC 8949's tag(4)
// decimal-fraction encoding: a 2-array [exponent, mantissa] meaning
// mantissa * 10^exponent. Like BigInt, it is CBOR-only.
var BigDecimal Codec[*big.Float] = bigDecimalCodec{}

type bigDecimalCodec struct{}

func (bigDecimalCodec) Write(w *event.Writer, v *big.Float) error {
	if v == nil {
		return w.WriteNull()
	}
	exp, mant := decompose(v)
	if err := w.WriteTag(tagDecimalFraction); err != nil {
		return err
	}
	unbounded, err := w.WriteArrayOpen(2)
	if err != nil {
		return err
	}
	if err := w.WriteLong(exp); err != nil {
		return err
	}
	if err := BigInt.Write(w, mant); err != nil {
		return err
	}
	return w.WriteArrayClose(unbounded)
}

func (bigDecimalCodec) Read(r *event.Reader) (*big.Float, error) {
	has, err := r.HasNull()
	if err != nil {
		return nil, err
	}
	if has {
		return nil, r.ReadNull()
	}
	hasTag, err := r.HasTag()
	if err != nil {
		return nil, err
	}
	if !hasTag {
		return nil, r.UnexpectedDataItem("decimal fraction tag")
	}
	tag, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	if tag != tagDecimalFraction {
		return nil, errs.New(errs.UnexpectedDataItem, r.Position(), "expected decimal fraction tag 4")
	}
	_, unbounded, err := r.ReadArrayOpen()
	if err != nil {
		return nil, err
	}
	exp, err := r.ReadLong()
	if err != nil {
		return nil, err
	}
	mant, err := BigInt.Read(r)
	if err != nil {
		return nil, err
	}
	if err := r.ReadArrayClose(unbounded); err != nil {
		return nil, err
	}
	return recompose(exp, mant), nil
}

// decompose splits f into a base-10 exponent and an integral mantissa such
// that mantissa * 10^exponent == f, to the precision f already carries.
// big.Float has no native decimal-exponent form, so this goes through its
// decimal Text representation rather than reconstructing one bit by bit.
func decompose(f *big.Float) (exp int64, mant *big.Int) {
	s := f.Text('e', -1)
	mantissaDigits, e := splitScientific(s)
	mant, _ = new(big.Int).SetString(mantissaDigits, 10)
	return e, mant
}

// splitScientific parses the output of big.Float.Text('e', -1), of the
// form "-d.ddddesNNN", into an all-digits (with sign) mantissa string and
// the exponent adjusted so mantissa*10^exponent reconstructs the value
// (i.e. folding the decimal point's position into the exponent).
func splitScientific(s string) (mantissa string, exponent int64) {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	eIdx := -1
	for i, c := range s {
		if c == 'e' || c == 'E' {
			eIdx = i
			break
		}
	}
	mantPart := s
	var exp int64
	if eIdx >= 0 {
		mantPart = s[:eIdx]
		exp = parseExp(s[eIdx+1:])
	}
	dotIdx := -1
	for i, c := range mantPart {
		if c == '.' {
			dotIdx = i
			break
		}
	}
	digits := mantPart
	if dotIdx >= 0 {
		fracLen := len(mantPart) - dotIdx - 1
		digits = mantPart[:dotIdx] + mantPart[dotIdx+1:]
		exp -= int64(fracLen)
	}
	if neg {
		digits = "-" + digits
	}
	return digits, exp
}

func parseExp(s string) int64 {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for _, c := range s {
		n = n*10 + int64(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}

func recompose(exp int64, mant *big.Int) *big.Float {
	f := new(big.Float).SetPrec(mant.BitLen() + 64).SetInt(mant)
	ten := new(big.Float).SetPrec(f.Prec()).SetInt64(10)
	pow := new(big.Float).SetPrec(f.Prec()).SetInt64(1)
	e := exp
	if e < 0 {
		e = -e
	}
	for i := int64(0); i < e; i++ {
		pow.Mul(pow, ten)
	}
	if exp < 0 {
		f.Quo(f, pow)
	} else if exp > 0 {
		f.Mul(f, pow)
	}
	return f
}
