// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import "errors"

var (
	// ErrUnknownFormat is returned for a format name that is not
	// supported, or input whose format cannot be guessed.
	ErrUnknownFormat = errors.New("unknown input format")

	// ErrUnsupportedValue is returned when a decoded value has no Ion
	// mapping, such as a YAML mapping used as a mapping key.
	ErrUnsupportedValue = errors.New("value has no Ion mapping")
)
