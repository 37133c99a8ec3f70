// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ionhash computes canonical digests of Ion values.
//
// Two Ion streams that carry the same data model values produce the
// same digest, regardless of how the values were traversed or how a
// struct's fields happen to be ordered. The digest is computed by
// decorating a cursor: [NewReader] wraps an [ion.Reader] and
// [NewWriter] wraps an [ion.Writer]. Both expose Digest, which returns
// the digest of the value most recently completed at the current
// depth.
//
// Each value is reduced to a type qualifier byte and representation
// bytes taken from its Ion binary encoding (see lib/ionbinary). Those
// segments are fed into a cryptographic hash behind a self-escaping
// delimiter byte (0xEF), so that value and container boundaries are
// unambiguous. Containers hash the digests of their children; a
// struct sorts its children's digests before hashing them, which is
// what makes field order irrelevant. Annotations and field names wrap
// the value digest in further hashing layers. A value's own digest
// never includes its field name; the enclosing struct's digest does.
//
// Skipping a container on the reader side (calling Next without
// stepping in, or stepping out early) still traverses the skipped part
// internally, so every traversal strategy yields the same digest.
//
// The hash function is pluggable through [HasherProvider]; [NewProvider]
// resolves algorithm names such as "sha256", "sha3-256", or "blake3".
// Providers must be safe for concurrent use, but a Reader or Writer
// and its hashing state belong to a single goroutine.
//
// Key exports:
//
//   - [NewReader] and [NewWriter] -- hashing cursor decorators
//   - [Sum] and [SumAll] -- digest in-memory value trees
//   - [Config] -- algorithm, provider, cache, and logger settings
//   - [NewProvider], [NewProviderFunc], [Algorithms] -- hash primitives
//   - [Escape] and [CompareDigests] -- the delimiter escape and the
//     digest ordering used for structs
//
// This package depends on lib/ion and lib/ionbinary.
package ionhash
