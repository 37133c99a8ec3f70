// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"fmt"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// Sum returns the digest of a single value tree. A field name on v is
// ignored, as it is for any top-level value.
func Sum(v *ion.Value, config Config) ([]byte, error) {
	digests, err := SumAll([]*ion.Value{v}, config)
	if err != nil {
		return nil, err
	}
	return digests[0], nil
}

// SumAll returns the digest of each value, in order. The values share
// one engine, and so one digest cache.
func SumAll(values []*ion.Value, config Config) ([][]byte, error) {
	writer, err := NewWriter(ion.NewDiscardWriter(), config)
	if err != nil {
		return nil, err
	}
	digests := make([][]byte, len(values))
	for index, v := range values {
		if err := checkTypes(v); err != nil {
			return nil, fmt.Errorf("value %d: %w", index, err)
		}
		if err := ion.WriteValue(writer, v); err != nil {
			return nil, fmt.Errorf("value %d: %w", index, err)
		}
		digests[index] = writer.Digest()
	}
	return digests, nil
}

// checkTypes rejects a tree holding a type outside the Ion data model
// before any of it is written.
func checkTypes(v *ion.Value) error {
	if !v.Type.IsScalar() && !v.Type.IsContainer() {
		return fmt.Errorf("%w: %s", ErrUnsupportedValueType, v.Type)
	}
	for _, child := range v.Children {
		if err := checkTypes(child); err != nil {
			return err
		}
	}
	return nil
}

// ReadDigests reads every remaining value at reader's current depth
// through a hashing Reader and returns their digests, in order.
func ReadDigests(reader ion.Reader, config Config) ([][]byte, error) {
	hashReader, err := NewReader(reader, config)
	if err != nil {
		return nil, err
	}

	// Each Next reports the digest of the value it moved past, so the
	// digests trail the cursor by one value.
	var digests [][]byte
	seen := false
	for hashReader.Next() {
		if seen {
			digests = append(digests, hashReader.Digest())
		}
		seen = true
	}
	if err := hashReader.Err(); err != nil {
		return nil, err
	}
	if seen {
		digests = append(digests, hashReader.Digest())
	}
	return digests, nil
}
