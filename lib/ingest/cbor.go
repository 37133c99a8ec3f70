// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/bureau-foundation/ionhash/lib/codec"
	"github.com/bureau-foundation/ionhash/lib/ion"
)

// decodeCBOR decodes a CBOR sequence.
func decodeCBOR(data []byte) ([]*ion.Value, error) {
	items, err := codec.DecodeSequence(data)
	if err != nil {
		return nil, err
	}
	values := make([]*ion.Value, 0, len(items))
	for index, item := range items {
		value, err := cborValue(item)
		if err != nil {
			return nil, fmt.Errorf("CBOR item %d: %w", index, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// cborValue maps a decoded CBOR item. Tags with no native mapping
// annotate their content with "tag:<n>".
func cborValue(item any) (*ion.Value, error) {
	switch v := item.(type) {
	case nil:
		return ion.Null(), nil
	case bool:
		return ion.Bool(v), nil
	case uint64:
		return ion.BigInt(new(big.Int).SetUint64(v)), nil
	case int64:
		return ion.Int(v), nil
	case *big.Int:
		return ion.BigInt(v), nil
	case big.Int:
		return ion.BigInt(&v), nil
	case float64:
		return ion.Float(v), nil
	case string:
		return ion.String(v), nil
	case []byte:
		return ion.Blob(v), nil
	case time.Time:
		// Epoch times carry no offset.
		if v.Location() == time.Local {
			v = v.UTC()
		}
		return ion.TimestampValue(timestampFromTime(v, offsetKind(v))), nil
	case []any:
		return listFrom(v, cborValue)
	case map[any]any:
		fields, err := fieldsFromMap(v, cborValue)
		if err != nil {
			return nil, err
		}
		return ion.Struct(fields...), nil
	case codec.Tag:
		content, err := cborValue(v.Content)
		if err != nil {
			return nil, fmt.Errorf("tag %d: %w", v.Number, err)
		}
		tagged := append([]ion.SymbolToken{ion.NewSymbolToken("tag:" + strconv.FormatUint(v.Number, 10))}, content.Annotations...)
		content.Annotations = tagged
		return content, nil
	case codec.SimpleValue:
		return ion.Int(int64(v)).Annotate("simple"), nil
	default:
		return nil, fmt.Errorf("%w: CBOR item of type %T", ErrUnsupportedValue, item)
	}
}
