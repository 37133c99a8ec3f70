// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ionbinary encodes individual Ion values in the Ion 1.0 binary
// format. It is a value-level encoder: there is no version marker, no
// symbol table, and containers are not supported. Symbols can be
// encoded only by local symbol ID; use [EncodeString] to get the bytes
// of a symbol's text.
//
// The encoding is deterministic. Floats are always written as 64-bit
// IEEE-754 (except positive zero, which has the empty representation)
// and every NaN is written as the canonical quiet NaN, so two equal
// values always produce identical bytes.
//
// Key exports:
//
//   - [Encode] and [Encoder] -- encode a scalar or null value
//   - [EncodeString] -- encode text as an Ion string
//   - [LengthFieldSize] -- size of a value's VarUInt length field
//   - [AppendVarUInt], [AppendVarInt], [AppendUInt], [AppendInt] --
//     the binary primitives
//
// This package depends on lib/ion for the value model.
package ionbinary
