// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is used when a Config names no algorithm.
const DefaultAlgorithm = "sha256"

// IonHasher is one instance of a hash primitive. Digest finalizes the
// accumulated input and resets the instance for reuse.
type IonHasher interface {
	Update(b []byte)
	Digest() []byte
}

// HasherProvider creates hash primitive instances. NewHasher must be
// safe to call from multiple goroutines; the instances it returns need
// not be.
type HasherProvider interface {
	NewHasher() IonHasher
}

var algorithms = map[string]func() hash.Hash{
	"md5":        md5.New,
	"sha1":       sha1.New,
	"sha224":     sha256.New224,
	"sha256":     sha256.New,
	"sha384":     sha512.New384,
	"sha512":     sha512.New,
	"sha512/256": sha512.New512_256,
	"sha3-256":   func() hash.Hash { return sha3.New256() },
	"sha3-512":   func() hash.Hash { return sha3.New512() },
	"keccak-256": sha3.NewLegacyKeccak256,
	"blake2b-256": func() hash.Hash {
		h, _ := blake2b.New256(nil)
		return h
	},
	"blake2b-512": func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
	"blake2s-256": func() hash.Hash {
		h, _ := blake2s.New256(nil)
		return h
	},
	"blake3":   func() hash.Hash { return blake3.New() },
	"xxh3":     func() hash.Hash { return xxh3.New() },
	"xxhash64": func() hash.Hash { return xxhash.New() },
}

// algorithmAliases maps the names used by Java's MessageDigest and
// similar registries to ours.
var algorithmAliases = map[string]string{
	"sha-1":       "sha1",
	"sha-224":     "sha224",
	"sha-256":     "sha256",
	"sha-384":     "sha384",
	"sha-512":     "sha512",
	"sha-512/256": "sha512/256",
	"sha3_256":    "sha3-256",
	"sha3_512":    "sha3-512",
	"keccak256":   "keccak-256",
	"blake2b":     "blake2b-512",
	"blake2s":     "blake2s-256",
}

// Algorithms returns the names NewProvider accepts, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CanonicalAlgorithm returns the registered name for algorithm, which
// may be an alias or differ in case. It returns ErrAlgorithmUnavailable
// for unknown names.
func CanonicalAlgorithm(algorithm string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(algorithm))
	if alias, ok := algorithmAliases[name]; ok {
		name = alias
	}
	if _, ok := algorithms[name]; !ok {
		return "", fmt.Errorf("%w: %q (available: %s)",
			ErrAlgorithmUnavailable, algorithm, strings.Join(Algorithms(), ", "))
	}
	return name, nil
}

// NewProvider returns a provider for the named algorithm.
func NewProvider(algorithm string) (HasherProvider, error) {
	name, err := CanonicalAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	return NewProviderFunc(name, algorithms[name]), nil
}

// NewProviderFunc returns a provider whose instances wrap the hash.Hash
// values returned by newHash. newHash must be safe for concurrent use.
func NewProviderFunc(name string, newHash func() hash.Hash) HasherProvider {
	return &hashProvider{name: name, newHash: newHash}
}

type hashProvider struct {
	name    string
	newHash func() hash.Hash
}

func (p *hashProvider) NewHasher() IonHasher {
	return &hashHasher{hash: p.newHash()}
}

func (p *hashProvider) String() string {
	return p.name
}

type hashHasher struct {
	hash hash.Hash
}

func (h *hashHasher) Update(b []byte) {
	// hash.Hash.Write never returns an error.
	h.hash.Write(b)
}

func (h *hashHasher) Digest() []byte {
	sum := h.hash.Sum(nil)
	h.hash.Reset()
	return sum
}
