// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/ionhash/lib/binhash"
	"github.com/bureau-foundation/ionhash/lib/codec"
	"github.com/bureau-foundation/ionhash/lib/ingest"
	"github.com/bureau-foundation/ionhash/lib/ion"
	"github.com/bureau-foundation/ionhash/lib/ionhash"
	"github.com/bureau-foundation/ionhash/lib/testutil"
)

func TestDigestStdin(t *testing.T) {
	output := mustRun(t, `{"a": 1}`, "digest", "--format", "json")

	want := binhash.FormatDigest(sum(t, ion.Struct(ion.Field("a", ion.Int(1))), ionhash.Config{}))
	if output != want+"  -\n" {
		t.Errorf("output = %q, want %q", output, want+"  -\n")
	}
}

func TestDigestStream(t *testing.T) {
	output := mustRun(t, "1 \"two\"", "digest", "-f", "json", "-")

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), output)
	}
	first := binhash.FormatDigest(sum(t, ion.Int(1), ionhash.Config{}))
	second := binhash.FormatDigest(sum(t, ion.String("two"), ionhash.Config{}))
	if lines[0] != first+"  -[0]" {
		t.Errorf("line 0 = %q, want %q", lines[0], first+"  -[0]")
	}
	if lines[1] != second+"  -[1]" {
		t.Errorf("line 1 = %q, want %q", lines[1], second+"  -[1]")
	}
}

func TestDigestFormatsAgree(t *testing.T) {
	jsonPath := testutil.TempFile(t, "record.json", []byte(`{"name": "ion", "tags": ["a", "b"], "count": 3}`))
	yamlPath := testutil.TempFile(t, "record.yaml", []byte("count: 3\nname: ion\ntags:\n  - a\n  - b\n"))
	compressed, err := ingest.Compress([]byte("count = 3\nname = \"ion\"\ntags = [\"a\", \"b\"]\n"), ingest.CompressionZstd)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	tomlPath := testutil.TempFile(t, "record.toml.zst", compressed)

	digestOf := func(path string) string {
		output := mustRun(t, "", "digest", "-a", "blake3", path)
		digest, _, _ := strings.Cut(output, "  ")
		return digest
	}
	fromJSON, fromYAML, fromTOML := digestOf(jsonPath), digestOf(yamlPath), digestOf(tomlPath)
	if fromJSON != fromYAML || fromJSON != fromTOML {
		t.Errorf("digests differ: json %s, yaml %s, toml %s", fromJSON, fromYAML, fromTOML)
	}
	if len(fromJSON) != 64 {
		t.Errorf("blake3 hex digest has length %d, want 64", len(fromJSON))
	}
}

func TestDigestEncodings(t *testing.T) {
	digest := sum(t, ion.Bool(true), ionhash.Config{})
	for _, encoding := range binhash.Encodings {
		t.Run(string(encoding), func(t *testing.T) {
			output := mustRun(t, "true", "digest", "-f", "json", "--encoding", string(encoding))
			want, err := binhash.Encode(digest, encoding)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if output != want+"  -\n" {
				t.Errorf("output = %q, want %q", output, want+"  -\n")
			}
		})
	}
}

func TestDigestJSONReport(t *testing.T) {
	output := mustRun(t, `[1, 2] null`, "digest", "-f", "json", "--json", "-a", "SHA-512")

	var records []digestRecord
	if err := json.Unmarshal([]byte(output), &records); err != nil {
		t.Fatalf("parse report: %v\n%s", err, output)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	want := binhash.FormatDigest(sum(t, ion.List(ion.Int(1), ion.Int(2)), ionhash.Config{Algorithm: "sha512"}))
	if records[0] != (digestRecord{Input: "-", Index: 0, Type: "list", Algorithm: "sha512", Digest: want}) {
		t.Errorf("record 0 = %+v", records[0])
	}
	if records[1].Type != "null" || records[1].Index != 1 {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestDigestCBORReport(t *testing.T) {
	output := mustRun(t, `"a" "b"`, "digest", "-f", "json", "--cbor")

	decoder := codec.NewDecoder(strings.NewReader(output))
	var records []cborDigestRecord
	for {
		var record cborDigestRecord
		if err := decoder.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("decode report: %v", err)
		}
		records = append(records, record)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	want := sum(t, ion.String("b"), ionhash.Config{})
	if !bytes.Equal(records[1].Digest, want) {
		t.Errorf("record 1 digest = %x, want %x", records[1].Digest, want)
	}
	if records[1].Algorithm != "sha256" || records[1].Type != "string" {
		t.Errorf("record 1 = %+v", records[1])
	}
}

func TestDigestOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digests.txt")
	output := mustRun(t, "1", "digest", "-f", "json", "-o", path)
	if output != "" {
		t.Errorf("stdout = %q, want nothing", output)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := binhash.FormatDigest(sum(t, ion.Int(1), ionhash.Config{}))
	if string(written) != want+"  -\n" {
		t.Errorf("file = %q", written)
	}
}

func TestDigestConfigFile(t *testing.T) {
	configPath := testutil.TempFile(t, "ionhash.yaml", []byte(`
environment: development
hash:
  algorithm: md5
output:
  encoding: base64
`))
	output := mustRun(t, "7", "digest", "-f", "json", "--config", configPath)
	want, _ := binhash.Encode(sum(t, ion.Int(7), ionhash.Config{Algorithm: "md5"}), binhash.Base64)
	if output != want+"  -\n" {
		t.Errorf("output = %q, want %q", output, want+"  -\n")
	}

	// Flags override the file.
	output = mustRun(t, "7", "digest", "-f", "json", "--config", configPath, "-a", "sha1", "-e", "hex")
	want = binhash.FormatDigest(sum(t, ion.Int(7), ionhash.Config{Algorithm: "sha1"}))
	if output != want+"  -\n" {
		t.Errorf("output = %q, want %q", output, want+"  -\n")
	}
}

func TestDigestCacheFlagsDoNotChangeDigests(t *testing.T) {
	input := `{"a": true, "b": [true, false, null]}`
	plain := mustRun(t, input, "digest", "-f", "json")
	for _, flags := range [][]string{{"--no-cache"}, {"--cache-size", "1"}} {
		args := append([]string{"digest", "-f", "json"}, flags...)
		if output := mustRun(t, input, args...); output != plain {
			t.Errorf("%v: output = %q, want %q", flags, output, plain)
		}
	}
}

func TestDigestHexInput(t *testing.T) {
	encoded, err := codec.Marshal(map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	output := mustRun(t, binhash.FormatDigest(encoded), "digest", "--hex", "-f", "cbor")
	want := binhash.FormatDigest(sum(t, ion.Struct(ion.Field("a", ion.Int(1))), ionhash.Config{}))
	if output != want+"  -\n" {
		t.Errorf("output = %q, want %q", output, want+"  -\n")
	}
}

func TestDigestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown algorithm", []string{"digest", "-f", "json", "-a", "rot13"}, "rot13"},
		{"json and cbor", []string{"digest", "-f", "json", "--json", "--cbor"}, "mutually exclusive"},
		{"unknown format", []string{"digest", "-f", "xml"}, "xml"},
		{"unknown encoding", []string{"digest", "-f", "json", "-e", "base32"}, "base32"},
		{"stray argument", []string{"digest", "no-such-file.json", "-"}, "no-such-file.json"},
		{"missing config", []string{"digest", "--config", "/nonexistent/ionhash.yaml"}, "ionhash.yaml"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := runCommand(t, "1", test.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want substring %q", err.Error(), test.want)
			}
		})
	}
}
