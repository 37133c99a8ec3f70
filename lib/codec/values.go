// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "fmt"

// DecodeValue decodes a single CBOR data item into an untyped value.
// Trailing bytes are an error.
//
// The result is built from nil (null and undefined), bool, uint64,
// int64, *big.Int, float64, string, []byte, time.Time, []any,
// map[any]any, Tag, and cbor.SimpleValue for unassigned simple values.
// Non-negative integers decode to uint64.
func DecodeValue(data []byte) (any, error) {
	var value any
	if err := valueDecMode.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// DecodeSequence decodes a CBOR sequence (RFC 8742): zero or more
// concatenated data items. Empty input is an empty sequence.
func DecodeSequence(data []byte) ([]any, error) {
	var items []any
	for len(data) > 0 {
		var value any
		rest, err := valueDecMode.UnmarshalFirst(data, &value)
		if err != nil {
			return nil, fmt.Errorf("CBOR sequence item %d: %w", len(items), err)
		}
		items = append(items, value)
		data = rest
	}
	return items, nil
}
