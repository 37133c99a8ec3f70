// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"
)

// Input is raw input data and where it came from.
type Input struct {
	Data []byte

	// Path is the file the data was read from, or empty for stdin.
	Path string
}

// Name returns the input's path, or "-" for stdin.
func (i Input) Name() string {
	if i.Path == "" {
		return "-"
	}
	return i.Path
}

// ReadInput resolves input data from either a file (the last element
// of args, if it names a regular file on disk) or stdin. A last
// argument of "-" explicitly selects stdin.
//
// When hexMode is true, the raw bytes are treated as hex-encoded
// binary: whitespace is stripped and the hex is decoded.
//
// Returns the input and the args with any consumed file path removed.
// The caller is responsible for validating that the returned args are
// acceptable (e.g., no unexpected positional arguments).
func ReadInput(args []string, hexMode bool, stdin io.Reader) (Input, []string, error) {
	var input Input
	remainingArgs := args

	if length := len(args); length > 0 {
		candidate := args[length-1]
		if candidate == "-" {
			remainingArgs = args[:length-1]
		} else if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			input.Data, err = os.ReadFile(candidate)
			if err != nil {
				return Input{}, nil, fmt.Errorf("read %s: %w", candidate, err)
			}
			input.Path = candidate
			remainingArgs = args[:length-1]
		}
	}

	if input.Path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return Input{}, nil, fmt.Errorf("read stdin: %w", err)
		}
		input.Data = data
	}

	if hexMode {
		decoded, err := DecodeHex(input.Data)
		if err != nil {
			return Input{}, nil, err
		}
		input.Data = decoded
	}

	return input, remainingArgs, nil
}

// ReadFile reads a single named input. A path of "-" reads stdin.
func ReadFile(path string, hexMode bool, stdin io.Reader) (Input, error) {
	if path == "-" {
		input, _, err := ReadInput([]string{"-"}, hexMode, stdin)
		return input, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read %s: %w", path, err)
	}
	input := Input{Data: data, Path: path}
	if hexMode {
		if input.Data, err = DecodeHex(data); err != nil {
			return Input{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return input, nil
}

// DecodeHex strips whitespace from hex-encoded input and decodes it to
// binary bytes. Whitespace between hex digit pairs is allowed (e.g.,
// "a1 63 6b 65 79" or "a1636b6579").
func DecodeHex(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}
