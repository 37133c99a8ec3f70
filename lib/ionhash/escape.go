// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import "bytes"

// delimiter separates segments of hash input. A literal 0xEF in a
// segment is written twice.
const delimiter byte = 0xEF

var delimiterBytes = []byte{delimiter}

// Escape doubles every delimiter byte (0xEF) in b. When b contains no
// delimiter it is returned as is, without copying. Escape(nil) is nil.
func Escape(b []byte) []byte {
	count := bytes.Count(b, delimiterBytes)
	if count == 0 {
		return b
	}
	escaped := make([]byte, 0, len(b)+count)
	for _, octet := range b {
		if octet == delimiter {
			escaped = append(escaped, delimiter)
		}
		escaped = append(escaped, octet)
	}
	return escaped
}

// CompareDigests orders digests by unsigned byte-wise comparison, with
// a proper prefix ordered first. Struct members are hashed in this
// order.
func CompareDigests(a, b []byte) int {
	return bytes.Compare(a, b)
}

// writeSegment feeds one delimited segment to h.
func writeSegment(h IonHasher, segment []byte) {
	h.Update(delimiterBytes)
	h.Update(Escape(segment))
}

// writeEnd closes the segments of one value.
func writeEnd(h IonHasher) {
	h.Update(delimiterBytes)
}
