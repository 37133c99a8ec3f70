// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"fmt"

	"github.com/bureau-foundation/ionhash/lib/ion"
	"github.com/bureau-foundation/ionhash/lib/ionbinary"
)

// Type qualifiers that do not come from a value's binary encoding.
const (
	tqSymbol         byte = 0x70
	tqSymbolZero     byte = 0x71
	tqList           byte = 0xB0
	tqSexp           byte = 0xC0
	tqStruct         byte = 0xD0
	tqAnnotatedValue byte = 0xE0
)

// partsExtractor reduces values to (type qualifier, representation)
// pairs. The representation it returns is only valid until the next
// call.
type partsExtractor struct {
	encoder ionbinary.Encoder
}

// scalarParts returns the parts of a null or scalar value, including
// typed container nulls.
func (p *partsExtractor) scalarParts(v *ion.Value) (byte, []byte, error) {
	if !v.Type.IsScalar() && !(v.Null && v.Type.IsContainer()) {
		return 0, nil, fmt.Errorf("%w: %s", ErrUnsupportedValueType, v.Type)
	}
	if v.Type == ion.SymbolType && !v.Null {
		return p.symbolParts(v.Symbol)
	}

	encoded, err := p.encoder.Encode(v)
	if err != nil {
		return 0, nil, fmt.Errorf("encoding %s: %w", v.Type, err)
	}
	return p.split(v.Type, encoded)
}

// symbolParts returns the parts of a symbol: its text encoded as a
// string, or the distinguished qualifier for $0.
func (p *partsExtractor) symbolParts(token ion.SymbolToken) (byte, []byte, error) {
	if !token.HasText() {
		if token.LocalSID == 0 {
			return tqSymbolZero, nil, nil
		}
		return 0, nil, fmt.Errorf("%w: %s", ErrUnresolvedSymbol, token)
	}
	encoded := p.encoder.EncodeString(*token.Text)
	_, representation, err := p.split(ion.StringType, encoded)
	if err != nil {
		return 0, nil, err
	}
	return tqSymbol, representation, nil
}

// split drops the type descriptor and any length field from encoded.
// The qualifier keeps the whole descriptor for nulls and bools and only
// the type nibble otherwise.
func (p *partsExtractor) split(typ ion.Type, encoded []byte) (byte, []byte, error) {
	descriptor := encoded[0]
	lengthSize, err := ionbinary.LengthFieldSize(encoded)
	if err != nil {
		return 0, nil, fmt.Errorf("splitting %s encoding: %w", typ, err)
	}
	offset := 1 + lengthSize

	// A magnitude written by a two's-complement encoder can carry a
	// zero byte ahead of a high bit; it is not part of the value.
	if typ == ion.IntType && len(encoded) > offset && encoded[offset] == 0 {
		offset++
	}

	qualifier := descriptor & 0xF0
	if typ == ion.BoolType || descriptor&0x0F == 0x0F {
		qualifier = descriptor
	}
	return qualifier, encoded[offset:], nil
}

func containerQualifier(typ ion.Type) (byte, error) {
	switch typ {
	case ion.ListType:
		return tqList, nil
	case ion.SexpType:
		return tqSexp, nil
	case ion.StructType:
		return tqStruct, nil
	}
	return 0, fmt.Errorf("%w: %s is not a container", ErrUnsupportedValueType, typ)
}
