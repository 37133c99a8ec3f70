// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the ionhash CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in
// cmd/ionhash/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Parameter structs declare flags with struct tags and are bound with
// [FlagsFromParams]. Embedding [JSONOutput] adds a --json flag, and
// returning an [ExitError] ends the process with a chosen status
// without an extra error line.
package cli
