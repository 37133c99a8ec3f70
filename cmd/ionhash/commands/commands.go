// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the ionhash CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/ionhash/cmd/ionhash/cli"
	"github.com/bureau-foundation/ionhash/lib/version"
)

// Root builds and returns the complete ionhash command tree, reading
// and writing the given streams.
func Root(streams Streams) *cli.Command {
	return &cli.Command{
		Name: "ionhash",
		Description: `ionhash: canonical digests of Ion data.

Decode JSON, YAML, TOML, CBOR, or MessagePack input into the Ion data
model and compute Ion hashes: digests that depend only on the data,
never on the encoding, struct field order, or container traversal.`,
		Subcommands: []*cli.Command{
			digestCommand(streams),
			traceCommand(streams),
			compareCommand(streams),
			algorithmsCommand(streams),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					_, err := fmt.Fprintf(streams.Out, "ionhash %s\n", version.Full())
					return err
				},
			},
		},
	}
}
