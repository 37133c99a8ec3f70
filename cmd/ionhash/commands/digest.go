// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ionhash/cmd/ionhash/cli"
	"github.com/bureau-foundation/ionhash/lib/binhash"
	"github.com/bureau-foundation/ionhash/lib/codec"
	"github.com/bureau-foundation/ionhash/lib/config"
	"github.com/bureau-foundation/ionhash/lib/ingest"
	"github.com/bureau-foundation/ionhash/lib/ion"
	"github.com/bureau-foundation/ionhash/lib/ionhash"
)

type digestParams struct {
	cli.JSONOutput
	Settings settingsFlags

	Encoding string `flag:"encoding,e" desc:"digest text encoding: hex, base64, base58 (default from config, else hex)"`
	CBOR     bool   `flag:"cbor" desc:"write reports as a CBOR sequence"`
	Output   string `flag:"output,o" desc:"write reports to this file instead of stdout"`
}

// digestRecord is one line of a JSON digest report.
type digestRecord struct {
	Input     string `json:"input"`
	Index     int    `json:"index"`
	Type      string `json:"type"`
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

// cborDigestRecord is one item of a CBOR digest report. The digest is
// carried as a byte string rather than text.
type cborDigestRecord struct {
	Input     string `cbor:"input"`
	Index     int    `cbor:"index"`
	Type      string `cbor:"type"`
	Algorithm string `cbor:"algorithm"`
	Digest    []byte `cbor:"digest"`
}

// digestResult is the digest of one top-level value.
type digestResult struct {
	Index  int
	Type   ion.Type
	Digest []byte
}

func digestCommand(streams Streams) *cli.Command {
	var params digestParams

	return &cli.Command{
		Name:    "digest",
		Summary: "Print the Ion hash of each top-level value",
		Description: `Decode the input as a stream of Ion values and print the digest of
each top-level value, in order.

The input is read from the trailing file argument, or from stdin when
no file is given (or the argument is "-"). Its format is taken from
--format, then from the file extension, then sniffed from the content.
zstd, gzip, lz4, and snappy framed compression are detected and
removed first unless --no-decompress is given.

Struct field order never affects a digest, so the same record hashes
identically whether it came from JSON, YAML, TOML, CBOR, or
MessagePack.`,
		Usage: "ionhash digest [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Digest a JSON document with SHA-256",
				Command:     "ionhash digest record.json",
			},
			{
				Description: "Digest a compressed CBOR sequence with BLAKE3, base58 output",
				Command:     "ionhash digest -a blake3 -e base58 events.cbor.zst",
			},
			{
				Description: "Write a CBOR report",
				Command:     "ionhash digest --cbor -o digests.cbor config.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("digest", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cfg, err := params.Settings.resolve(logger)
			if err != nil {
				return err
			}
			if params.OutputJSON && params.CBOR {
				return fmt.Errorf("--json and --cbor are mutually exclusive")
			}

			options := cfg.IngestOptions(logger)
			options.Stdin = streams.In
			document, remaining, err := ingest.Load(args, options)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("unexpected argument %q (no such file)", remaining[0])
			}

			results, err := digestValues(document.Values, cfg.IonHashConfig(logger))
			if err != nil {
				return fmt.Errorf("%s: %w", document.Input.Name(), err)
			}
			logger.Debug("digests computed", "input", document.Input.Name(), "values", len(results))

			report, err := reportSettings(cfg, params)
			if err != nil {
				return err
			}
			outputPath := cfg.Output.File
			if params.Output != "" {
				outputPath = params.Output
			}
			w, closeOutput, err := openOutput(outputPath, streams.Out)
			if err != nil {
				return err
			}
			if err := report.write(w, document.Input.Name(), results); err != nil {
				closeOutput()
				return err
			}
			return closeOutput()
		},
	}
}

// digestValues hashes each value with one engine, in order.
func digestValues(values []*ion.Value, hashConfig ionhash.Config) ([]digestResult, error) {
	digests, err := ionhash.SumAll(values, hashConfig)
	if err != nil {
		return nil, err
	}
	results := make([]digestResult, len(values))
	for index, value := range values {
		results[index] = digestResult{Index: index, Type: value.Type, Digest: digests[index]}
	}
	return results, nil
}

// digestReport describes how digests are written out.
type digestReport struct {
	Format    string
	Encoding  binhash.Encoding
	Algorithm string
}

func reportSettings(cfg *config.Config, params digestParams) (digestReport, error) {
	report := digestReport{Format: cfg.Output.Format}
	switch {
	case params.OutputJSON:
		report.Format = "json"
	case params.CBOR:
		report.Format = "cbor"
	}

	encodingName := cfg.Output.Encoding
	if params.Encoding != "" {
		encodingName = params.Encoding
	}
	encoding, err := binhash.ParseEncoding(encodingName)
	if err != nil {
		return digestReport{}, err
	}
	report.Encoding = encoding

	algorithm, err := ionhash.CanonicalAlgorithm(cfg.Hash.Algorithm)
	if err != nil {
		return digestReport{}, err
	}
	report.Algorithm = algorithm
	return report, nil
}

func (r digestReport) write(w io.Writer, input string, results []digestResult) error {
	switch r.Format {
	case "cbor":
		encoder := codec.NewEncoder(w)
		for _, result := range results {
			record := cborDigestRecord{
				Input:     input,
				Index:     result.Index,
				Type:      result.Type.String(),
				Algorithm: r.Algorithm,
				Digest:    result.Digest,
			}
			if err := encoder.Encode(record); err != nil {
				return fmt.Errorf("write CBOR report: %w", err)
			}
		}
		return nil

	case "json":
		records := make([]digestRecord, 0, len(results))
		for _, result := range results {
			text, err := binhash.Encode(result.Digest, r.Encoding)
			if err != nil {
				return err
			}
			records = append(records, digestRecord{
				Input:     input,
				Index:     result.Index,
				Type:      result.Type.String(),
				Algorithm: r.Algorithm,
				Digest:    text,
			})
		}
		return cli.WriteJSON(w, records)

	default:
		for _, result := range results {
			text, err := binhash.Encode(result.Digest, r.Encoding)
			if err != nil {
				return err
			}
			location := input
			if len(results) > 1 {
				location = fmt.Sprintf("%s[%d]", input, result.Index)
			}
			if _, err := fmt.Fprintf(w, "%s  %s\n", text, location); err != nil {
				return err
			}
		}
		return nil
	}
}
