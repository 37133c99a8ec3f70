// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"cmp"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// timestampFromTime converts a fully specified instant, keeping only
// as many fraction digits as the nanoseconds need.
func timestampFromTime(t time.Time, kind ion.TimezoneKind) ion.Timestamp {
	return ion.NewTimestampWithFraction(t, kind, fractionDigits(t.Nanosecond()))
}

// offsetKind classifies t's location: UTC or an explicit offset.
func offsetKind(t time.Time) ion.TimezoneKind {
	if _, offset := t.Zone(); offset == 0 {
		return ion.TimezoneUTC
	}
	return ion.TimezoneLocal
}

// fractionDigits returns the fewest decimal digits that represent
// nanos as a fraction of a second.
func fractionDigits(nanos int) uint8 {
	if nanos == 0 {
		return 0
	}
	digits := uint8(9)
	for nanos%10 == 0 {
		nanos /= 10
		digits--
	}
	return digits
}

// keyText renders a non-string map key as field name text.
func keyText(key any) string {
	switch k := key.(type) {
	case string:
		return k
	case []byte:
		return string(k)
	case *big.Int:
		return k.String()
	default:
		return fmt.Sprint(k)
	}
}

// sortFields orders struct fields by name. Digests do not depend on
// field order, but value trees built from Go maps should still compare
// equal across runs.
func sortFields(fields []*ion.Value) {
	slices.SortStableFunc(fields, func(a, b *ion.Value) int {
		return cmp.Compare(*a.FieldName.Text, *b.FieldName.Text)
	})
}

// fieldsFromMap converts map entries with convert, keyed by keyText.
func fieldsFromMap[K comparable, V any](m map[K]V, convert func(V) (*ion.Value, error)) ([]*ion.Value, error) {
	fields := make([]*ion.Value, 0, len(m))
	for key, member := range m {
		name := keyText(key)
		value, err := convert(member)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, ion.Field(name, value))
	}
	sortFields(fields)
	return fields, nil
}

// listFrom converts each member with convert.
func listFrom[V any](members []V, convert func(V) (*ion.Value, error)) (*ion.Value, error) {
	values := make([]*ion.Value, 0, len(members))
	for index, member := range members {
		value, err := convert(member)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", index, err)
		}
		values = append(values, value)
	}
	return ion.List(values...), nil
}
