// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import "errors"

var (
	// ErrUnresolvedSymbol is returned when a symbol value, field name,
	// or annotation has no text and is not $0.
	ErrUnresolvedSymbol = errors.New("ionhash: unresolved symbol")

	// ErrUnsupportedValueType is returned for a value whose type is not
	// an Ion scalar, null, or container type.
	ErrUnsupportedValueType = errors.New("ionhash: unsupported value type")

	// ErrInvalidTraversalState is returned for StepOut with no open
	// container, and for suspending or resuming a writer anywhere but
	// the top level.
	ErrInvalidTraversalState = errors.New("ionhash: invalid traversal state")

	// ErrAlgorithmUnavailable is returned when the configured hash
	// algorithm is not known.
	ErrAlgorithmUnavailable = errors.New("ionhash: algorithm unavailable")
)
