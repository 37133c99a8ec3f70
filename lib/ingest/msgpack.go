// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// decodeMsgpack decodes a stream of concatenated MessagePack values.
// Maps are walked entry by entry so member order is preserved.
func decodeMsgpack(data []byte) ([]*ion.Value, error) {
	decoder := msgpack.NewDecoder(bytes.NewReader(data))
	var values []*ion.Value
	for {
		if _, err := decoder.PeekCode(); errors.Is(err, io.EOF) {
			return values, nil
		}
		value, err := msgpackValue(decoder)
		if err != nil {
			return nil, fmt.Errorf("MessagePack value %d: %w", len(values), err)
		}
		values = append(values, value)
	}
}

func msgpackValue(decoder *msgpack.Decoder) (*ion.Value, error) {
	code, err := decoder.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32:
		length, err := decoder.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		fields := make([]*ion.Value, 0, length)
		for range length {
			key, err := decoder.DecodeInterface()
			if err != nil {
				return nil, err
			}
			name := keyText(key)
			member, err := msgpackValue(decoder)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields = append(fields, ion.Field(name, member))
		}
		return ion.Struct(fields...), nil

	case msgpcode.IsFixedArray(code) || code == msgpcode.Array16 || code == msgpcode.Array32:
		length, err := decoder.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		members := make([]*ion.Value, 0, length)
		for index := range length {
			member, err := msgpackValue(decoder)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", index, err)
			}
			members = append(members, member)
		}
		return ion.List(members...), nil
	}

	scalar, err := decoder.DecodeInterface()
	if err != nil {
		return nil, err
	}
	return msgpackScalar(scalar)
}

func msgpackScalar(scalar any) (*ion.Value, error) {
	switch v := scalar.(type) {
	case nil:
		return ion.Null(), nil
	case bool:
		return ion.Bool(v), nil
	case int8:
		return ion.Int(int64(v)), nil
	case int16:
		return ion.Int(int64(v)), nil
	case int32:
		return ion.Int(int64(v)), nil
	case int64:
		return ion.Int(v), nil
	case uint8:
		return ion.Int(int64(v)), nil
	case uint16:
		return ion.Int(int64(v)), nil
	case uint32:
		return ion.Int(int64(v)), nil
	case uint64:
		return ion.BigInt(new(big.Int).SetUint64(v)), nil
	case float32:
		return ion.Float(float64(v)), nil
	case float64:
		return ion.Float(v), nil
	case string:
		return ion.String(v), nil
	case []byte:
		return ion.Blob(v), nil
	case time.Time:
		// The timestamp extension carries an instant without an offset.
		return ion.TimestampValue(timestampFromTime(v.UTC(), ion.TimezoneUTC)), nil
	default:
		return nil, fmt.Errorf("%w: MessagePack value of type %T", ErrUnsupportedValue, scalar)
	}
}
