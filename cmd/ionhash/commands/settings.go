// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ionhash/lib/config"
)

// settingsFlags are the flags shared by every command that hashes
// input. Each one, when given, overrides the matching config file
// setting.
type settingsFlags struct {
	ConfigPath   string
	Algorithm    string
	NoCache      bool
	CacheSize    int
	Format       string
	Hex          bool
	NoDecompress bool
}

func (s *settingsFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.ConfigPath, "config", "", "config file (default: $"+config.EnvVar+" when set)")
	flagSet.StringVarP(&s.Algorithm, "algorithm", "a", "", "hash algorithm (see 'ionhash algorithms'; default sha256)")
	flagSet.BoolVar(&s.NoCache, "no-cache", false, "disable the symbol and boolean digest cache")
	flagSet.IntVar(&s.CacheSize, "cache-size", 0, "bound the digest cache to this many entries")
	flagSet.StringVarP(&s.Format, "format", "f", "", "input format: json, yaml, cbor, msgpack, toml (default: detect)")
	flagSet.BoolVarP(&s.Hex, "hex", "x", false, "treat input as hex-encoded binary")
	flagSet.BoolVar(&s.NoDecompress, "no-decompress", false, "do not detect zstd, gzip, lz4, or snappy compression")
}

// resolve loads the configuration named by --config or the
// environment, falling back to the defaults, applies the flags, and
// validates the result.
func (s *settingsFlags) resolve(logger *slog.Logger) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case s.ConfigPath != "":
		cfg, err = config.LoadFile(s.ConfigPath)
	case os.Getenv(config.EnvVar) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if s.Algorithm != "" {
		cfg.Hash.Algorithm = s.Algorithm
	}
	if s.NoCache {
		cfg.Hash.DisableCache = true
	}
	if s.CacheSize != 0 {
		cfg.Hash.CacheSize = s.CacheSize
	}
	if s.Format != "" {
		cfg.Input.Format = s.Format
	}
	if s.Hex {
		cfg.Input.Hex = true
	}
	if s.NoDecompress {
		cfg.Input.Decompress = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("configuration resolved",
		"environment", cfg.Environment,
		"algorithm", cfg.Hash.Algorithm,
		"cache_disabled", cfg.Hash.DisableCache,
		"cache_size", cfg.Hash.CacheSize,
	)
	return cfg, nil
}
