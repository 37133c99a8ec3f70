// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ingest turns documents in common data formats into Ion value
// trees for digesting.
//
// Ionhash does not parse Ion text or binary. Instead it maps the data
// models of JSON (and JSONC), YAML, CBOR, MessagePack, and TOML onto
// the Ion data model, so that the same logical data produces the same
// digest whichever format carried it. Mapping choices that matter for
// digests:
//
//   - JSON integers are arbitrary-precision ints, numbers with a
//     fraction and no exponent are decimals, and numbers with an
//     exponent are floats.
//   - YAML local tags (!name) become annotations, except !sexp which
//     turns a sequence into an s-expression.
//   - CBOR tags without a native mapping become a "tag:<n>" annotation
//     on the tag content.
//   - Objects, mappings, and maps become structs. Struct digests do
//     not depend on field order.
//
// Input may be compressed with zstd, gzip, lz4 (frame format), or
// snappy (framing format); [Decompress] detects these by magic number.
// [Load] chains input reading, decompression, format detection, and
// decoding for the CLI.
package ingest
