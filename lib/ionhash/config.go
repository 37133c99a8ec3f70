// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import "log/slog"

// Config controls how a Reader or Writer computes digests. The zero
// value hashes with SHA-256 and an unbounded digest cache. A Config is
// resolved once, when the Reader or Writer is created.
type Config struct {
	// Algorithm names the hash function (see Algorithms). Empty means
	// DefaultAlgorithm. Ignored when Provider is set.
	Algorithm string

	// Provider supplies hash primitives directly, for algorithms that
	// are not registered or for testing.
	Provider HasherProvider

	// DisableCache turns off the digest cache for booleans, typed
	// nulls, and symbols. Digests are the same either way.
	DisableCache bool

	// CacheSize bounds the digest cache to this many entries, evicting
	// the least recently used. Zero or negative leaves it unbounded,
	// which suits streams with a small symbol vocabulary.
	CacheSize int

	// Logger receives debug messages about engine setup and writer
	// suspension. If nil, a no-op logger is used.
	Logger *slog.Logger
}

func (c Config) provider() (HasherProvider, string, error) {
	if c.Provider != nil {
		if named, ok := c.Provider.(interface{ String() string }); ok {
			return c.Provider, named.String(), nil
		}
		return c.Provider, "custom", nil
	}
	algorithm := c.Algorithm
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	name, err := CanonicalAlgorithm(algorithm)
	if err != nil {
		return nil, "", err
	}
	return NewProviderFunc(name, algorithms[name]), name, nil
}
