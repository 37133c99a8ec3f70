// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Encoding selects a text form for digests.
type Encoding string

const (
	Hex    Encoding = "hex"
	Base64 Encoding = "base64"
	Base58 Encoding = "base58"
)

// Encodings lists the supported encodings, canonical first.
var Encodings = []Encoding{Hex, Base64, Base58}

// ErrEmptyDigest is returned when parsing the empty string. An empty
// digest is legal in memory (a hashing reader before its first value)
// but never written out.
var ErrEmptyDigest = errors.New("empty digest")

// ParseEncoding returns the Encoding named by s, ignoring case.
func ParseEncoding(s string) (Encoding, error) {
	encoding := Encoding(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Encodings {
		if encoding == known {
			return encoding, nil
		}
	}
	return "", fmt.Errorf("unknown digest encoding %q (want hex, base64, or base58)", s)
}

// FormatDigest returns the lowercase hex form of digest. This is the
// canonical format used in reports and log output.
func FormatDigest(digest []byte) string {
	return hex.EncodeToString(digest)
}

// ParseDigest parses a hex-encoded digest of any non-zero length.
func ParseDigest(hexString string) ([]byte, error) {
	return Decode(hexString, Hex)
}

// Encode returns digest in the given encoding.
func Encode(digest []byte, encoding Encoding) (string, error) {
	switch encoding {
	case Hex, "":
		return hex.EncodeToString(digest), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(digest), nil
	case Base58:
		return base58.Encode(digest), nil
	default:
		return "", fmt.Errorf("unknown digest encoding %q", encoding)
	}
}

// Decode parses s in the given encoding.
func Decode(s string, encoding Encoding) ([]byte, error) {
	if s == "" {
		return nil, ErrEmptyDigest
	}
	var (
		digest []byte
		err    error
	)
	switch encoding {
	case Hex, "":
		digest, err = hex.DecodeString(s)
	case Base64:
		digest, err = base64.StdEncoding.DecodeString(s)
	case Base58:
		digest, err = base58.Decode(s)
	default:
		return nil, fmt.Errorf("unknown digest encoding %q", encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s digest: %w", encoding, err)
	}
	return digest, nil
}
