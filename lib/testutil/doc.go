// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for ionhash packages.
//
// [TempFile] writes a named fixture file into a per-test temporary
// directory. [Testdata] reads a fixture from the calling package's
// testdata directory.
//
// [RequireReceive] encapsulates the timeout safety valve pattern
// (select with time.After fallback) so that concurrent tests do not
// need direct time.After calls. It is the only place in the test suite
// where real wall-clock timeouts are used.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no ionhash-internal dependencies.
package testutil
