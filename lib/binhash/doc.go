// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash formats and parses value digests for display and
// transport.
//
// Digests are variable-length byte strings: their size depends on the
// hash algorithm (8 bytes for xxh3, 32 for sha256, 64 for sha512).
// The canonical text form is lowercase hex, used in log output, the
// CLI's text and JSON reports, and test failure messages. Two more
// encodings are available for callers that want shorter strings:
//
//   - [Base64] -- standard base64 with padding
//   - [Base58] -- the Bitcoin alphabet, with no characters that are
//     easily confused in print
//
// [Encode] and [Decode] convert between digests and any encoding;
// [FormatDigest] and [ParseDigest] are the hex shorthands.
//
// This package has no dependencies on other ionhash packages.
package binhash
