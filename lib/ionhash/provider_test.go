// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bureau-foundation/ionhash/lib/ion"
	"github.com/bureau-foundation/ionhash/lib/testutil"
)

func TestAlgorithmsDigestSizes(t *testing.T) {
	sizes := map[string]int{
		"md5":         16,
		"sha1":        20,
		"sha224":      28,
		"sha256":      32,
		"sha384":      48,
		"sha512":      64,
		"sha512/256":  32,
		"sha3-256":    32,
		"sha3-512":    64,
		"keccak-256":  32,
		"blake2b-256": 32,
		"blake2b-512": 64,
		"blake2s-256": 32,
		"blake3":      32,
		"xxh3":        8,
		"xxhash64":    8,
	}
	if got := len(Algorithms()); got != len(sizes) {
		t.Errorf("Algorithms() lists %d names, test covers %d", got, len(sizes))
	}

	value := ion.Struct(ion.Field("a", ion.List(ion.Int(1), ion.Symbol("b"))))
	seen := make(map[string]string)
	for _, name := range Algorithms() {
		t.Run(name, func(t *testing.T) {
			digest := mustSum(t, value, Config{Algorithm: name})
			if want, ok := sizes[name]; !ok || len(digest) != want {
				t.Errorf("digest size = %d, want %d", len(digest), want)
			}
			if other, ok := seen[string(digest)]; ok {
				t.Errorf("digest equals that of %s", other)
			}
			seen[string(digest)] = name
		})
	}
}

func TestAlgorithmAliases(t *testing.T) {
	for alias, name := range map[string]string{
		"SHA-256":  "sha256",
		"sha-512":  "sha512",
		" Blake3 ": "blake3",
		"MD5":      "md5",
		"blake2b":  "blake2b-512",
	} {
		got, err := CanonicalAlgorithm(alias)
		if err != nil || got != name {
			t.Errorf("CanonicalAlgorithm(%q) = %q, %v; want %q", alias, got, err, name)
		}
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := NewProvider("rot13"); !errors.Is(err, ErrAlgorithmUnavailable) {
		t.Errorf("NewProvider err = %v, want ErrAlgorithmUnavailable", err)
	}
	if _, err := NewReader(ion.NewTreeReader(), Config{Algorithm: "rot13"}); !errors.Is(err, ErrAlgorithmUnavailable) {
		t.Errorf("NewReader err = %v, want ErrAlgorithmUnavailable", err)
	}
	if _, err := NewWriter(ion.NewDiscardWriter(), Config{Algorithm: "rot13"}); !errors.Is(err, ErrAlgorithmUnavailable) {
		t.Errorf("NewWriter err = %v, want ErrAlgorithmUnavailable", err)
	}
}

func TestDefaultAlgorithmIsSHA256(t *testing.T) {
	value := ion.Int(7)
	if !bytes.Equal(mustSum(t, value, Config{}), mustSum(t, value, Config{Algorithm: "sha256"})) {
		t.Error("zero Config does not hash with sha256")
	}

	// The digest of a top-level int is SHA-256 over its delimited parts.
	want := sha256.Sum256(scalarStream(0x20, 0x07))
	if got := mustSum(t, value, Config{}); !bytes.Equal(got, want[:]) {
		t.Errorf("digest = %x, want %x", got, want)
	}
}

func TestProviderHasherResets(t *testing.T) {
	provider, err := NewProvider("sha256")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	hasher := provider.NewHasher()
	hasher.Update([]byte("abc"))
	first := hasher.Digest()
	hasher.Update([]byte("abc"))
	if second := hasher.Digest(); !bytes.Equal(first, second) {
		t.Error("Digest did not reset the hasher")
	}
}

func TestProviderConcurrentEngines(t *testing.T) {
	provider, err := NewProvider("blake3")
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	config := Config{Provider: provider}
	want := mustSum(t, nestedList(), config)

	const workers = 8
	results := make(chan error, workers)
	for worker := range workers {
		go func() {
			digest, err := Sum(nestedList(), config)
			switch {
			case err != nil:
				results <- err
			case !bytes.Equal(digest, want):
				results <- fmt.Errorf("worker %d: digest %x, want %x", worker, digest, want)
			default:
				results <- nil
			}
		}()
	}
	for range workers {
		if err := testutil.RequireReceive(t, results, 5*time.Second, "waiting for worker"); err != nil {
			t.Error(err)
		}
	}
}

func TestCustomProviderIsUsed(t *testing.T) {
	provider := &identityProvider{}
	if _, err := Sum(nestedList(), Config{Provider: provider, Algorithm: "rot13"}); err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if provider.created == 0 {
		t.Error("custom provider was not asked for hashers")
	}
}
