// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/ionhash/cmd/ionhash/cli"
	"github.com/bureau-foundation/ionhash/lib/binhash"
	"github.com/bureau-foundation/ionhash/lib/ingest"
	"github.com/bureau-foundation/ionhash/lib/ionhash"
)

type compareParams struct {
	cli.JSONOutput
	Settings settingsFlags

	Quiet bool `flag:"quiet,q" desc:"print nothing; report only through the exit status"`
}

// comparison is the outcome of comparing two inputs value by value.
type comparison struct {
	Left       string          `json:"left"`
	Right      string          `json:"right"`
	Algorithm  string          `json:"algorithm"`
	Match      bool            `json:"match"`
	LeftCount  int             `json:"left_count"`
	RightCount int             `json:"right_count"`
	Mismatches []valueMismatch `json:"mismatches"`
}

// valueMismatch is a position where the two inputs differ. A digest
// is empty when that input has no value at the position.
type valueMismatch struct {
	Index       int    `json:"index"`
	LeftDigest  string `json:"left_digest"`
	RightDigest string `json:"right_digest"`
}

func compareCommand(streams Streams) *cli.Command {
	var params compareParams

	return &cli.Command{
		Name:    "compare",
		Summary: "Compare the Ion hashes of two inputs",
		Description: `Digest every top-level value of two inputs and report whether they
hash identically. The inputs may be in different formats; a JSON file
and a CBOR file carrying the same data compare equal.

Exits 0 when every digest matches and 1 when any differs or the inputs
hold different numbers of values; only errors print an "error:" line.
Either input may be "-" for stdin.`,
		Usage: "ionhash compare [flags] <a> <b>",
		Examples: []cli.Example{
			{
				Description: "Check that a YAML file and its JSON rendering agree",
				Command:     "ionhash compare config.yaml config.json",
			},
			{
				Command: "ionhash compare -q expected.cbor - < actual.msgpack",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("compare", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return fmt.Errorf("compare takes exactly two inputs, got %d", len(args))
			}
			if args[0] == "-" && args[1] == "-" {
				return fmt.Errorf("only one input can be stdin")
			}
			cfg, err := params.Settings.resolve(logger)
			if err != nil {
				return err
			}
			algorithm, err := ionhash.CanonicalAlgorithm(cfg.Hash.Algorithm)
			if err != nil {
				return err
			}
			encoding, err := binhash.ParseEncoding(cfg.Output.Encoding)
			if err != nil {
				return err
			}

			options := cfg.IngestOptions(logger)
			options.Stdin = streams.In
			hashConfig := cfg.IonHashConfig(logger)

			var digests [2][][]byte
			group, groupContext := errgroup.WithContext(ctx)
			for side, path := range args {
				group.Go(func() error {
					if err := groupContext.Err(); err != nil {
						return err
					}
					input, err := ingest.ReadFile(path, options.Hex, options.Stdin)
					if err != nil {
						return err
					}
					document, err := ingest.LoadInput(input, options)
					if err != nil {
						return err
					}
					sums, err := ionhash.SumAll(document.Values, hashConfig)
					if err != nil {
						return fmt.Errorf("%s: %w", input.Name(), err)
					}
					digests[side] = sums
					return nil
				})
			}
			if err := group.Wait(); err != nil {
				return err
			}

			result, err := compareDigests(args[0], args[1], digests[0], digests[1], encoding)
			if err != nil {
				return err
			}
			result.Algorithm = algorithm
			logger.Debug("inputs compared", "match", result.Match, "mismatches", len(result.Mismatches))

			if !params.Quiet {
				if done, err := params.EmitJSON(streams.Out, result); done {
					if err != nil {
						return err
					}
				} else if err := writeComparison(streams.Out, result); err != nil {
					return err
				}
			}
			if !result.Match {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// compareDigests pairs the digests of two inputs by position.
func compareDigests(left, right string, leftDigests, rightDigests [][]byte, encoding binhash.Encoding) (comparison, error) {
	result := comparison{
		Left:       left,
		Right:      right,
		LeftCount:  len(leftDigests),
		RightCount: len(rightDigests),
		Mismatches: []valueMismatch{},
	}
	for index := range max(len(leftDigests), len(rightDigests)) {
		var leftDigest, rightDigest []byte
		if index < len(leftDigests) {
			leftDigest = leftDigests[index]
		}
		if index < len(rightDigests) {
			rightDigest = rightDigests[index]
		}
		if leftDigest != nil && rightDigest != nil && bytes.Equal(leftDigest, rightDigest) {
			continue
		}
		mismatch := valueMismatch{Index: index}
		var err error
		if leftDigest != nil {
			if mismatch.LeftDigest, err = binhash.Encode(leftDigest, encoding); err != nil {
				return comparison{}, err
			}
		}
		if rightDigest != nil {
			if mismatch.RightDigest, err = binhash.Encode(rightDigest, encoding); err != nil {
				return comparison{}, err
			}
		}
		result.Mismatches = append(result.Mismatches, mismatch)
	}
	result.Match = len(result.Mismatches) == 0
	return result, nil
}

func writeComparison(w io.Writer, result comparison) error {
	if result.Match {
		_, err := color.New(color.FgGreen, color.Bold).Fprintf(w, "match: %d values (%s)\n", result.LeftCount, result.Algorithm)
		return err
	}

	if _, err := color.New(color.FgRed, color.Bold).Fprintf(w, "mismatch: %d of %d values differ (%s)\n",
		len(result.Mismatches), max(result.LeftCount, result.RightCount), result.Algorithm); err != nil {
		return err
	}
	missing := color.New(color.Faint).Sprint("(missing)")
	for _, mismatch := range result.Mismatches {
		leftDigest, rightDigest := mismatch.LeftDigest, mismatch.RightDigest
		if leftDigest == "" {
			leftDigest = missing
		}
		if rightDigest == "" {
			rightDigest = missing
		}
		if _, err := fmt.Fprintf(w, "  [%d]\n    %s  %s\n    %s  %s\n",
			mismatch.Index, leftDigest, result.Left, rightDigest, result.Right); err != nil {
			return err
		}
	}
	return nil
}
