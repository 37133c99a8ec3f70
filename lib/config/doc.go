// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the ionhash
// command.
//
// Configuration is loaded from a single file specified by either the
// IONHASH_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. Without a file the command runs on
// [Default] plus its flags.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override the hash and
// output sections when [Config].Environment matches. Production
// defaults bound the digest cache so long-running pipelines have flat
// memory use.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${IONHASH_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Hash, Input, Output
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.IonHashConfig] and [Config.IngestOptions] -- the library settings the sections describe
package config
