// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionbinary

import "math/big"

const (
	// endFlag marks the final byte of a VarUInt or VarInt.
	endFlag = 0x80

	// varIntSign is the sign bit in the first byte of a VarInt.
	varIntSign = 0x40

	// negativeZeroVarInt is the one-byte VarInt -0, used for an unknown
	// timestamp offset.
	negativeZeroVarInt = 0xC0

	// intSign is the sign bit in the first byte of a signed-magnitude Int.
	intSign = 0x80
)

// AppendVarUInt appends v as a VarUInt: big-endian groups of seven
// bits with the high bit set on the last byte.
func AppendVarUInt(dst []byte, v uint64) []byte {
	groups := 1
	for rest := v >> 7; rest != 0; rest >>= 7 {
		groups++
	}
	for shift := 7 * (groups - 1); shift > 0; shift -= 7 {
		dst = append(dst, byte(v>>shift)&0x7F)
	}
	return append(dst, byte(v&0x7F)|endFlag)
}

// AppendVarInt appends v as a VarInt. The first byte carries the sign
// bit and six bits of magnitude; later bytes carry seven bits each.
func AppendVarInt(dst []byte, v int64) []byte {
	negative := v < 0
	magnitude := uint64(v)
	if negative {
		magnitude = -magnitude
	}

	groups := 1
	for rest := magnitude >> 6; rest != 0; rest >>= 7 {
		groups++
	}
	first := byte(magnitude>>(7*(groups-1))) & 0x3F
	if negative {
		first |= varIntSign
	}
	if groups == 1 {
		return append(dst, first|endFlag)
	}
	dst = append(dst, first)
	for shift := 7 * (groups - 2); shift > 0; shift -= 7 {
		dst = append(dst, byte(magnitude>>shift)&0x7F)
	}
	return append(dst, byte(magnitude&0x7F)|endFlag)
}

// AppendUInt appends the minimal big-endian bytes of magnitude. Zero
// appends nothing.
func AppendUInt(dst []byte, magnitude *big.Int) []byte {
	return append(dst, magnitude.Bytes()...)
}

// AppendInt appends a signed-magnitude Int: the magnitude's bytes with
// the high bit of the first byte used as the sign. A zero byte is
// prepended when the magnitude already uses that bit. Positive zero
// appends nothing; negative zero appends a lone sign byte.
func AppendInt(dst []byte, magnitude *big.Int, negative bool) []byte {
	magnitudeBytes := magnitude.Bytes()
	if len(magnitudeBytes) == 0 {
		if negative {
			return append(dst, intSign)
		}
		return dst
	}
	start := len(dst)
	if magnitudeBytes[0]&intSign != 0 {
		dst = append(dst, 0)
	}
	dst = append(dst, magnitudeBytes...)
	if negative {
		dst[start] |= intSign
	}
	return dst
}
