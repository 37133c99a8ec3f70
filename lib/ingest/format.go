// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/ionhash/lib/codec"
)

// Format identifies an input data format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
	FormatTOML    Format = "toml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR, FormatMsgpack, FormatTOML}

// ParseFormat returns the format named by name. Common file extensions
// are accepted as aliases ("yml", "jsonc", "mpk").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "jsonc", "json5", "ndjson", "jsonl":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor", "cborseq":
		return FormatCBOR, nil
	case "msgpack", "mpk", "messagepack":
		return FormatMsgpack, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// compressionSuffixes are stripped from a path before looking at the
// format extension, so data.json.zst is JSON.
var compressionSuffixes = []string{".zst", ".zstd", ".gz", ".lz4", ".sz", ".snappy"}

// DetectFormat picks a format from path's extension, falling back to
// sniffing data. data should already be decompressed.
func DetectFormat(path string, data []byte) (Format, error) {
	if path != "" {
		name := strings.ToLower(filepath.Base(path))
		for _, suffix := range compressionSuffixes {
			name = strings.TrimSuffix(name, suffix)
		}
		if extension := filepath.Ext(name); extension != "" {
			if format, err := ParseFormat(extension[1:]); err == nil {
				return format, nil
			}
		}
	}
	return sniffFormat(data)
}

// sniffFormat guesses a format from content. Text that starts like a
// JSON value is JSON; other text is TOML when its first line looks like
// a table header or key assignment, and YAML otherwise. Binary input
// is CBOR when it decodes as a CBOR sequence, and MessagePack
// otherwise. Short binary inputs are often valid in both; use an
// explicit format for those.
func sniffFormat(data []byte) (Format, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrUnknownFormat)
	}
	if !isText(trimmed) {
		if _, err := codec.DecodeSequence(data); err == nil {
			return FormatCBOR, nil
		}
		return FormatMsgpack, nil
	}
	switch trimmed[0] {
	case '{', '[', '"', '/':
		return FormatJSON, nil
	}
	if looksLikeTOML(trimmed) {
		return FormatTOML, nil
	}
	return FormatYAML, nil
}

// isText reports whether the start of data is UTF-8 without control
// characters other than whitespace.
func isText(data []byte) bool {
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
		// Drop a rune cut in half by the sample boundary.
		for cut := 0; cut < utf8.UTFMax && !utf8.Valid(sample); cut++ {
			sample = sample[:len(sample)-1]
		}
	}
	if !utf8.Valid(sample) {
		return false
	}
	for _, b := range sample {
		if (b < 0x20 && b != '\t' && b != '\r' && b != '\n') || b == 0x7f {
			return false
		}
	}
	return true
}

// looksLikeTOML reports whether the first non-comment line is a table
// header or a bare key assignment with '='.
func looksLikeTOML(data []byte) bool {
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			return true
		}
		key, _, found := strings.Cut(line, "=")
		return found && !strings.ContainsAny(key, ":\"'") && strings.TrimSpace(key) != ""
	}
	return false
}
