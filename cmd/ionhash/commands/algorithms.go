// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ionhash/cmd/ionhash/cli"
	"github.com/bureau-foundation/ionhash/lib/ionhash"
)

type algorithmsParams struct {
	cli.JSONOutput
}

// algorithmInfo describes one registered hash algorithm.
type algorithmInfo struct {
	Name       string `json:"name"`
	DigestSize int    `json:"digest_size"`
	Default    bool   `json:"default,omitempty"`
}

func algorithmsCommand(streams Streams) *cli.Command {
	var params algorithmsParams

	return &cli.Command{
		Name:    "algorithms",
		Summary: "List the available hash algorithms",
		Description: `List the hash algorithms that --algorithm and the config file's
hash.algorithm accept, with their digest sizes in bytes. Names are
matched case-insensitively, and "sha-256"-style aliases are accepted.`,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("algorithms", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("algorithms takes no arguments, got %q", args[0])
			}
			infos, err := listAlgorithms()
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(streams.Out, infos); done {
				return err
			}
			return writeAlgorithms(streams.Out, infos)
		},
	}
}

func listAlgorithms() ([]algorithmInfo, error) {
	names := ionhash.Algorithms()
	infos := make([]algorithmInfo, 0, len(names))
	for _, name := range names {
		provider, err := ionhash.NewProvider(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, algorithmInfo{
			Name:       name,
			DigestSize: len(provider.NewHasher().Digest()),
			Default:    name == ionhash.DefaultAlgorithm,
		})
	}
	return infos, nil
}

func writeAlgorithms(w io.Writer, infos []algorithmInfo) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, info := range infos {
		marker := ""
		if info.Default {
			marker = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Name, info.DigestSize, marker)
	}
	return tw.Flush()
}
