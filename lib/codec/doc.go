// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides ionhash's CBOR configuration.
//
// CBOR appears in two places with different needs:
//
//   - Output: the CLI's --cbor digest reports. These use Core
//     Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
//     smallest integer encoding, no indefinite-length items. Same
//     logical report always produces identical bytes, so a report can
//     itself be hashed or diffed.
//   - Input: CBOR documents and CBOR sequences fed to the ingest layer
//     for digesting. These decode into untyped Go values with every
//     CBOR feature preserved: non-string map keys, tags, bignums, and
//     undefined.
//
// For reports:
//
//	data, err := codec.Marshal(report)
//	encoder := codec.NewEncoder(os.Stdout)
//
// For input:
//
//	items, err := codec.DecodeSequence(data)
//
// Report types use `json` struct tags. fxamacker/cbor v2 reads `json`
// tags as fallback when `cbor` tags are absent, so one tag controls the
// field names of both the --json and --cbor output.
package codec
