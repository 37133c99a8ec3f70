// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// Decode converts data in the given format to a stream of top-level
// values.
func Decode(format Format, data []byte) ([]*ion.Value, error) {
	var (
		values []*ion.Value
		err    error
	)
	switch format {
	case FormatJSON:
		values, err = decodeJSON(data)
	case FormatYAML:
		values, err = decodeYAML(data)
	case FormatCBOR:
		values, err = decodeCBOR(data)
	case FormatMsgpack:
		values, err = decodeMsgpack(data)
	case FormatTOML:
		values, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return values, nil
}

// Options controls Load.
type Options struct {
	// Format forces an input format. Empty detects it from the file
	// extension or the content.
	Format Format

	// Hex treats the input as hex text to decode before anything else.
	Hex bool

	// NoDecompress disables compression detection.
	NoDecompress bool

	// Stdin is read when no file argument is given. Nil means no
	// input.
	Stdin io.Reader

	// Logger receives debug messages about detection. If nil, a no-op
	// logger is used.
	Logger *slog.Logger
}

// Document is a decoded input.
type Document struct {
	Input       Input
	Format      Format
	Compression Compression
	Values      []*ion.Value
}

// Load reads input named by the last of args (or stdin), decompresses
// it, detects its format, and decodes it. It returns the remaining
// args like ReadInput.
func Load(args []string, options Options) (*Document, []string, error) {
	stdin := options.Stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	input, remaining, err := ReadInput(args, options.Hex, stdin)
	if err != nil {
		return nil, nil, err
	}
	document, err := LoadInput(input, options)
	if err != nil {
		return nil, nil, err
	}
	return document, remaining, nil
}

// LoadInput decompresses, detects, and decodes an input that has
// already been read.
func LoadInput(input Input, options Options) (*Document, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	document := &Document{Input: input, Format: options.Format}
	data := input.Data
	if !options.NoDecompress {
		decompressed, compression, err := Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", input.Name(), err)
		}
		data = decompressed
		document.Compression = compression
	}

	if document.Format == "" {
		format, err := DetectFormat(input.Path, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", input.Name(), err)
		}
		document.Format = format
	}
	logger.Debug("input detected",
		"input", input.Name(),
		"format", document.Format,
		"compression", document.Compression,
		"bytes", len(data),
	)

	values, err := Decode(document.Format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input.Name(), err)
	}
	document.Values = values
	return document, nil
}
