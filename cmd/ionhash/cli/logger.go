// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LogLevelEnvVar names the environment variable that sets the minimum
// log level ("debug", "info", "warn", "error"). Unset or invalid values
// mean info.
const LogLevelEnvVar = "IONHASH_LOG_LEVEL"

// NewCommandLogger creates a structured logger for CLI command operations.
// When stderr is a terminal, uses slog.TextHandler for human-readable output.
// When stderr is piped or redirected (CI, scripts), uses slog.JSONHandler
// for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger().With(
//	    "command", "ionhash digest",
//	    "input", input.Name(),
//	)
func NewCommandLogger() *slog.Logger {
	return NewLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), LevelFromEnv())
}

// NewLogger creates a logger writing to w: text when terminal is true,
// JSON otherwise.
func NewLogger(w io.Writer, terminal bool, level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// LevelFromEnv returns the level named by [LogLevelEnvVar].
func LevelFromEnv() slog.Level {
	var level slog.Level
	if value := os.Getenv(LogLevelEnvVar); value != "" {
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return slog.LevelInfo
		}
	}
	return level
}
