// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import "errors"

var (
	// ErrTypeMismatch is returned when a typed accessor or write does
	// not match the value under the cursor.
	ErrTypeMismatch = errors.New("ion: type mismatch")

	// ErrNotContainer is returned by StepIn when the current value is
	// not a non-null list, sexp, or struct.
	ErrNotContainer = errors.New("ion: not a container")

	// ErrTopLevel is returned by StepOut at depth zero.
	ErrTopLevel = errors.New("ion: already at top level")

	// ErrInvalidState is returned for operations that are illegal in
	// the cursor's current position, such as reading with no current
	// value or finishing inside a container.
	ErrInvalidState = errors.New("ion: invalid cursor state")
)
