// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode decodes reports back into typed values. Unknown fields are
// silently ignored.
var decMode cbor.DecMode

// valueDecMode decodes arbitrary input into untyped values. Maps keep
// their native key types, and unregistered tags decode to Tag.
var valueDecMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Reports never use non-string map keys. any-typed targets
		// get map[string]any so the result is interchangeable with
		// encoding/json output.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	valueDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[any]any(nil)),
		// Deeply nested input is legal; the default limit of 32 is
		// too tight for real documents.
		MaxNestedLevels: 1024,
		// Bignums decode to *big.Int whatever their size.
		BigIntDec: cbor.BigIntDecodePointer,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR value decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// Tag is a CBOR tag whose number has no built-in Go mapping. Content
// is the decoded tag content.
type Tag = cbor.Tag

// SimpleValue is a CBOR simple value other than false, true, null, and
// undefined.
type SimpleValue = cbor.SimpleValue

// NewEncoder returns a CBOR encoder that writes to w using Core
// Deterministic Encoding.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads typed values from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
