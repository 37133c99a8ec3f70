// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/ionhash/lib/binhash"
	"github.com/bureau-foundation/ionhash/lib/ingest"
	"github.com/bureau-foundation/ionhash/lib/ionhash"
)

// EnvVar names the environment variable read by Load.
const EnvVar = "IONHASH_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for interactive use.
	Development Environment = "development"
	// Staging is for pre-production pipelines.
	Staging Environment = "staging"
	// Production is for production pipelines.
	Production Environment = "production"
)

// ProductionCacheSize bounds the digest cache in production when the
// file does not say otherwise.
const ProductionCacheSize = 4096

// Config is the master configuration for ionhash.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Root is a base directory that path fields can refer to as
	// ${IONHASH_ROOT}.
	Root string `yaml:"root"`

	// Hash configures digest computation.
	Hash HashConfig `yaml:"hash"`

	// Input configures how input files are read and decoded.
	Input InputConfig `yaml:"input"`

	// Output configures how digests are reported.
	Output OutputConfig `yaml:"output"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Hash   *HashConfig   `yaml:"hash,omitempty"`
	Output *OutputConfig `yaml:"output,omitempty"`
}

// HashConfig configures digest computation.
type HashConfig struct {
	// Algorithm names the hash function. Default: sha256
	Algorithm string `yaml:"algorithm"`

	// DisableCache turns off the symbol and boolean digest cache.
	DisableCache bool `yaml:"disable_cache"`

	// CacheSize bounds the digest cache. Zero leaves it unbounded.
	// Default: 0 (development), 4096 (production)
	CacheSize int `yaml:"cache_size"`
}

// InputConfig configures input handling.
type InputConfig struct {
	// Format forces an input format (json, yaml, cbor, msgpack,
	// toml). Empty detects it per input.
	Format string `yaml:"format"`

	// Decompress enables zstd/gzip/lz4/snappy detection.
	// Default: true
	Decompress bool `yaml:"decompress"`

	// Hex treats input as hex text.
	Hex bool `yaml:"hex"`
}

// OutputConfig configures digest reports.
type OutputConfig struct {
	// Encoding is the digest text encoding: hex, base64, or base58.
	// Default: hex
	Encoding string `yaml:"encoding"`

	// Format is the report format: text, json, or cbor.
	// Default: text
	Format string `yaml:"format"`

	// File is where reports are written. Empty means stdout.
	File string `yaml:"file"`
}

// OutputFormats lists the valid values of OutputConfig.Format.
var OutputFormats = []string{"text", "json", "cbor"}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file,
// and alone when no config file is given.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Environment: Development,
		Root:        filepath.Join(homeDir, ".cache", "ionhash"),
		Hash: HashConfig{
			Algorithm: ionhash.DefaultAlgorithm,
		},
		Input: InputConfig{
			Decompress: true,
		},
		Output: OutputConfig{
			Encoding: string(binhash.Hex),
			Format:   "text",
		},
	}
}

// Load loads configuration from the IONHASH_CONFIG environment
// variable. If it is not set, this fails; callers that can run
// without a file check the variable first.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your ionhash.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values. The only expansion performed is
// ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	// Apply environment-specific overrides (development/staging/production sections in the file).
	cfg.applyEnvironmentOverrides()

	// Expand ${HOME} and similar variables in paths for portability.
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: bounded cache.
		if overrides == nil && c.Hash.CacheSize == 0 {
			overrides = &ConfigOverrides{
				Hash: &HashConfig{CacheSize: ProductionCacheSize},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Hash != nil {
		if overrides.Hash.Algorithm != "" {
			c.Hash.Algorithm = overrides.Hash.Algorithm
		}
		// DisableCache is a bool, so we always apply it from overrides.
		c.Hash.DisableCache = overrides.Hash.DisableCache
		if overrides.Hash.CacheSize != 0 {
			c.Hash.CacheSize = overrides.Hash.CacheSize
		}
	}

	if overrides.Output != nil {
		if overrides.Output.Encoding != "" {
			c.Output.Encoding = overrides.Output.Encoding
		}
		if overrides.Output.Format != "" {
			c.Output.Format = overrides.Output.Format
		}
		if overrides.Output.File != "" {
			c.Output.File = overrides.Output.File
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"IONHASH_ROOT": c.Root,
		"HOME":         os.Getenv("HOME"),
	}

	c.Root = expandVars(c.Root, vars)
	vars["IONHASH_ROOT"] = c.Root // Update for dependent paths.

	c.Output.File = expandVars(c.Output.File, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if _, err := ionhash.CanonicalAlgorithm(c.Hash.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("hash.algorithm: %w", err))
	}
	if c.Hash.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("hash.cache_size must not be negative"))
	}

	if c.Input.Format != "" {
		if _, err := ingest.ParseFormat(c.Input.Format); err != nil {
			errs = append(errs, fmt.Errorf("input.format: %w", err))
		}
	}

	if _, err := binhash.ParseEncoding(c.Output.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("output.encoding: %w", err))
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", OutputFormats))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// IonHashConfig returns the ionhash.Config described by the hash section.
func (c *Config) IonHashConfig(logger *slog.Logger) ionhash.Config {
	return ionhash.Config{
		Algorithm:    c.Hash.Algorithm,
		DisableCache: c.Hash.DisableCache,
		CacheSize:    c.Hash.CacheSize,
		Logger:       logger,
	}
}

// IngestOptions returns the ingest.Options described by the input
// section. Format must already be valid.
func (c *Config) IngestOptions(logger *slog.Logger) ingest.Options {
	options := ingest.Options{
		Hex:          c.Input.Hex,
		NoDecompress: !c.Input.Decompress,
		Logger:       logger,
	}
	if c.Input.Format != "" {
		options.Format, _ = ingest.ParseFormat(c.Input.Format)
	}
	return options
}
