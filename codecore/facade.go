// Package codecore is the root orchestration layer: the Cbor/Json facades
// that wrap a codec.Encoder[T]/Decoder[T] with a fluent EncodingSetup/
// DecodingSetup builder, and Transcode, which pipes one format's
// Parser into the other's Renderer through the shared event model.
package codecore

import (
	"fmt"

	"github.com/corewire/codecore/cborproto"
	"github.com/corewire/codecore/codec"
	"github.com/corewire/codecore/errs"
	"github.com/corewire/codecore/event"
	"github.com/corewire/codecore/ioadapt"
	"github.com/corewire/codecore/jsonproto"
)

// Format selects a wire format and carries that format's Config. The two
// package-level values Cbor and Json are the facade entry points;
// WithCborConfig/WithJsonConfig return a modified copy.
type Format struct {
	isJSON bool
	cbor   cborproto.Config
	json   jsonproto.Config
}

// Cbor is the CBOR facade, configured with cborproto.DefaultConfig().
var Cbor = Format{cbor: cborproto.DefaultConfig()}

// Json is the JSON facade, configured with jsonproto.DefaultConfig().
var Json = Format{isJSON: true, json: jsonproto.DefaultConfig()}

// WithCborConfig returns a copy of f with its CBOR config replaced. It has
// no effect on a Format built from Json.
func (f Format) WithCborConfig(cfg cborproto.Config) Format {
	f.cbor = cfg
	return f
}

// WithJsonConfig returns a copy of f with its JSON config replaced. It has
// no effect on a Format built from Cbor.
func (f Format) WithJsonConfig(cfg jsonproto.Config) Format {
	f.json = cfg
	return f
}

func (f Format) newRenderer(out ioadapt.Output) event.Renderer {
	if f.isJSON {
		return jsonproto.NewRenderer(out, f.json)
	}
	return cborproto.NewRenderer(out, f.cbor)
}

func (f Format) newParser(in *ioadapt.Input) event.Parser {
	if f.isJSON {
		return jsonproto.NewParser(in, f.json)
	}
	return cborproto.NewParser(in, f.cbor)
}

// NewParser builds a Parser for this format over in, for callers (such as
// cmd/codecorecli's diagnostic dump) that want to drive the event stream
// themselves instead of going through a Codec and DecodingSetup.
func (f Format) NewParser(in *ioadapt.Input) event.Parser { return f.newParser(in) }

// NewRenderer builds a Renderer for this format writing to out.
func (f Format) NewRenderer(out ioadapt.Output) event.Renderer { return f.newRenderer(out) }

// IsJSON reports whether f targets JSON rather than CBOR.
func (f Format) IsJSON() bool { return f.isJSON }

func (f Format) chunkSize() int {
	if f.isJSON {
		return f.json.BufferSize
	}
	return f.cbor.BufferSize
}

func (f Format) allowBufferCaching() bool {
	if f.isJSON {
		return f.json.AllowBufferCaching
	}
	return f.cbor.AllowBufferCaching
}

// EncodingSetup is a fluent handle for encoding one value of type T under
// a chosen Format. Go methods cannot carry their own type
// parameters, so the parameterized entry points (Encode, To) are
// package-level functions rather than Format methods; WithConfig lives on
// *EncodingSetup directly since T is already fixed by the time it runs.
type EncodingSetup[T any] struct {
	format Format
	enc    codec.Encoder[T]
	v      T
}

// Encode begins an EncodingSetup for v using enc under format.
func Encode[T any](format Format, enc codec.Encoder[T], v T) *EncodingSetup[T] {
	return &EncodingSetup[T]{format: format, enc: enc, v: v}
}

// WithConfig replaces the setup's CBOR or JSON config, whichever cfg's
// type matches.
func (es *EncodingSetup[T]) WithConfig(cfg any) *EncodingSetup[T] {
	switch c := cfg.(type) {
	case cborproto.Config:
		es.format = es.format.WithCborConfig(c)
	case jsonproto.Config:
		es.format = es.format.WithJsonConfig(c)
	}
	return es
}

// ToByteArrayTry encodes the setup's value to a plain []byte. The core
// itself never panics on malformed input, but a caller-supplied Encoder
// might; that panic is recovered here and reported as errs.GeneralError
// instead of propagating.
func (es *EncodingSetup[T]) ToByteArrayTry() ([]byte, error) {
	return To[T, []byte](es, ioadapt.ByteSliceAccess{})
}

// ToByteArray encodes the setup's value to a plain []byte, panicking on
// error. Use ToByteArrayTry to get the error back instead.
func (es *EncodingSetup[T]) ToByteArray() []byte {
	b, err := es.ToByteArrayTry()
	if err != nil {
		panic(err)
	}
	return b
}

// To encodes es's value into a container of type B via ba, recovering a
// panic raised by the caller-supplied Encoder into a GeneralError instead
// of letting it propagate out of an otherwise panic-free library.
func To[T, B any](es *EncodingSetup[T], ba ioadapt.ByteAccess[B]) (result B, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ba.Empty()
			if e, ok := rec.(error); ok {
				err = errs.Wrap(errs.Position{}, e)
			} else {
				err = errs.New(errs.GeneralError, errs.Position{}, fmt.Sprint(rec))
			}
		}
	}()
	out := ioadapt.NewChunkedOutput(es.format.chunkSize(), es.format.allowBufferCaching())
	w := event.NewWriter(es.format.newRenderer(out))
	if werr := es.enc.Write(w, es.v); werr != nil {
		return ba.Empty(), werr
	}
	return ba.FromBytes(out.Result()), nil
}

// DecodingSetup is a fluent handle for decoding one value of type T from
// bytes under a chosen Format.
type DecodingSetup[T any] struct {
	format Format
	dec    codec.Decoder[T]
	b      []byte
}

// Decode begins a DecodingSetup for b using dec under format.
func Decode[T any](format Format, dec codec.Decoder[T], b []byte) *DecodingSetup[T] {
	return &DecodingSetup[T]{format: format, dec: dec, b: b}
}

// WithConfig replaces the setup's CBOR or JSON config, whichever cfg's
// type matches.
func (ds *DecodingSetup[T]) WithConfig(cfg any) *DecodingSetup[T] {
	switch c := cfg.(type) {
	case cborproto.Config:
		ds.format = ds.format.WithCborConfig(c)
	case jsonproto.Config:
		ds.format = ds.format.WithJsonConfig(c)
	}
	return ds
}

// Value decodes and returns the setup's value, asserting that nothing but
// EndOfInput remains afterward. A panic from a caller-supplied Decoder is
// recovered into a GeneralError rather than propagating.
func (ds *DecodingSetup[T]) Value() (result T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			result = zero
			if e, ok := rec.(error); ok {
				err = errs.Wrap(errs.Position{}, e)
			} else {
				err = errs.New(errs.GeneralError, errs.Position{}, fmt.Sprint(rec))
			}
		}
	}()
	in := ioadapt.NewInput(ds.b)
	r := event.NewReader(ds.format.newParser(in))
	v, derr := ds.dec.Read(r)
	if derr != nil {
		var zero T
		return zero, derr
	}
	if derr := r.ReadEndOfInput(); derr != nil {
		var zero T
		return zero, derr
	}
	return v, nil
}
