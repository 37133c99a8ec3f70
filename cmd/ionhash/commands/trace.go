// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ionhash/cmd/ionhash/cli"
	"github.com/bureau-foundation/ionhash/lib/binhash"
	"github.com/bureau-foundation/ionhash/lib/ingest"
	"github.com/bureau-foundation/ionhash/lib/ion"
	"github.com/bureau-foundation/ionhash/lib/ionhash"
)

type traceParams struct {
	cli.JSONOutput
	Settings settingsFlags

	Skip     bool   `flag:"skip" desc:"do not step into containers; report top-level digests only"`
	Encoding string `flag:"encoding,e" desc:"digest text encoding: hex, base64, base58"`
}

// traceEntry is the digest of one value reached during a traversal.
type traceEntry struct {
	Path   string `json:"path"`
	Depth  int    `json:"depth"`
	Type   string `json:"type"`
	Digest string `json:"digest"`
}

func traceCommand(streams Streams) *cli.Command {
	var params traceParams

	return &cli.Command{
		Name:    "trace",
		Summary: "Print the digest of every nested value",
		Description: `Read the input through a hashing reader and print the path, depth,
type and digest of every value, containers included.

Paths start at the top-level index ("[0]") and extend with ".field"
for struct members and "[n]" for list and sexp members. A container's
digest is the same whether or not the reader steps into it; --skip
reads each top-level container without stepping in and reports only
those digests.`,
		Usage: "ionhash trace [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Trace every value of a YAML document",
				Command:     "ionhash trace config.yaml",
			},
			{
				Description: "Top-level digests without stepping into containers",
				Command:     "ionhash trace --skip record.json",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("trace", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			cfg, err := params.Settings.resolve(logger)
			if err != nil {
				return err
			}
			encodingName := cfg.Output.Encoding
			if params.Encoding != "" {
				encodingName = params.Encoding
			}
			encoding, err := binhash.ParseEncoding(encodingName)
			if err != nil {
				return err
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

			reader, err := ionhash.NewReader(ion.NewTreeReader(document.Values...), cfg.IonHashConfig(logger))
			if err != nil {
				return err
			}
			entries, err := traceValues(reader, params.Skip, encoding)
			if err != nil {
				return fmt.Errorf("%s: %w", document.Input.Name(), err)
			}

			if done, err := params.EmitJSON(streams.Out, entries); done {
				return err
			}
			return writeTrace(streams.Out, entries)
		},
	}
}

// traceValues walks every value reachable from reader's current depth
// and returns one entry per value in document order.
func traceValues(reader *ionhash.Reader, skip bool, encoding binhash.Encoding) ([]traceEntry, error) {
	tracer := &tracer{reader: reader, skip: skip, encoding: encoding}
	if err := tracer.walk(""); err != nil {
		return nil, err
	}
	return tracer.entries, nil
}

type tracer struct {
	reader   *ionhash.Reader
	skip     bool
	encoding binhash.Encoding
	entries  []traceEntry
}

// walk reads the values of the current container. Each Next reports
// the digest of the value it moved past, so a scalar's (or skipped
// container's) entry is completed by the following Next; a container
// that is stepped into is completed by StepOut.
func (t *tracer) walk(parent string) error {
	pending := -1
	index := 0
	for t.reader.Next() {
		if err := t.complete(pending); err != nil {
			return err
		}
		pending = -1

		position := len(t.entries)
		t.entries = append(t.entries, traceEntry{
			Path:  childPath(parent, index, t.reader.FieldName()),
			Depth: t.reader.Depth(),
			Type:  t.reader.Type().String(),
		})
		index++

		if t.skip || t.reader.IsNull() || !t.reader.Type().IsContainer() {
			pending = position
			continue
		}
		if err := t.reader.StepIn(); err != nil {
			return err
		}
		if err := t.walk(t.entries[position].Path); err != nil {
			return err
		}
		if err := t.reader.StepOut(); err != nil {
			return err
		}
		if err := t.complete(position); err != nil {
			return err
		}
	}
	if err := t.reader.Err(); err != nil {
		return err
	}
	return t.complete(pending)
}

func (t *tracer) complete(position int) error {
	if position < 0 {
		return nil
	}
	text, err := binhash.Encode(t.reader.Digest(), t.encoding)
	if err != nil {
		return err
	}
	t.entries[position].Digest = text
	return nil
}

func childPath(parent string, index int, fieldName *ion.SymbolToken) string {
	if fieldName != nil {
		return parent + "." + fieldName.String()
	}
	return parent + "[" + strconv.Itoa(index) + "]"
}

func writeTrace(w io.Writer, entries []traceEntry) error {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", entry.Path, entry.Depth, entry.Type, entry.Digest)
	}
	return tw.Flush()
}
