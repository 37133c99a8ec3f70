// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ion provides the in-memory Ion data model used by the ionhash
// engine: the value types, symbol tokens, timestamps, and the cursor
// interfaces ([Reader] and [Writer]) that hashing decorators wrap.
//
// The package deliberately stops at the data model. It does not parse
// or serialize Ion text or binary streams; values come from the tree
// constructors ([Int], [String], [Struct], ...), from the ingest
// decoders in lib/ingest, or from any other implementation of
// [Reader]. Value-level binary encoding lives in lib/ionbinary.
//
// Key exports:
//
//   - [Type] -- the thirteen Ion types plus [NoType] for "no value"
//   - [SymbolToken] -- symbol text or a bare local symbol ID
//   - [Timestamp] -- a point in time with Ion precision and offset kind
//   - [Value] -- a node in a value tree, scalar or container
//   - [Reader] and [Writer] -- the traversal interfaces
//   - [NewTreeReader] and [NewTreeWriter] -- tree-backed implementations
//   - [ReadValue] and [WriteValue] -- copy between trees and cursors
//
// This package depends on no other Bureau packages.
package ion
