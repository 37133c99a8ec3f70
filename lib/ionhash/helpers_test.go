// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"bytes"
	"crypto/sha256"
	"hash"
	"sync"
	"testing"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// identityProvider makes hashers whose digest is the input they were
// given, so tests can assert on the exact byte stream fed to a real
// hash function. It counts the hashers it creates.
type identityProvider struct {
	mu      sync.Mutex
	created int
}

func (p *identityProvider) NewHasher() IonHasher {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created++
	return &identityHasher{}
}

func (p *identityProvider) String() string {
	return "identity"
}

type identityHasher struct {
	accumulated []byte
}

func (h *identityHasher) Update(b []byte) {
	h.accumulated = append(h.accumulated, b...)
}

func (h *identityHasher) Digest() []byte {
	digest := h.accumulated
	h.accumulated = nil
	if digest == nil {
		return []byte{}
	}
	return digest
}

// reusingSHA256Provider makes SHA-256 hashers that return every digest
// in the same backing array.
type reusingSHA256Provider struct{}

func (reusingSHA256Provider) NewHasher() IonHasher {
	return &reusingHasher{hash: sha256.New()}
}

type reusingHasher struct {
	hash   hash.Hash
	buffer [sha256.Size]byte
}

func (h *reusingHasher) Update(b []byte) {
	h.hash.Write(b)
}

func (h *reusingHasher) Digest() []byte {
	digest := h.hash.Sum(h.buffer[:0])
	h.hash.Reset()
	return digest
}

func identityConfig() Config {
	return Config{Provider: &identityProvider{}}
}

// segment is one delimited, escaped segment of hash input.
func segment(b ...byte) []byte {
	return append([]byte{delimiter}, Escape(b)...)
}

// joined concatenates segments and appends the closing delimiter.
func joined(segments ...[]byte) []byte {
	return append(bytes.Join(segments, nil), delimiter)
}

// scalarStream is the identity digest of a scalar with the given parts.
func scalarStream(qualifier byte, representation ...byte) []byte {
	if len(representation) == 0 {
		return joined(segment(qualifier))
	}
	return joined(segment(qualifier), segment(representation...))
}

func symbolStream(text string) []byte {
	return scalarStream(tqSymbol, []byte(text)...)
}

// fieldStream is the identity digest a struct member contributes.
func fieldStream(name string, annotated []byte) []byte {
	return joined(segment(symbolStream(name)...), segment(annotated...))
}

func mustSum(t *testing.T, v *ion.Value, config Config) []byte {
	t.Helper()
	digest, err := Sum(v, config)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	return digest
}
