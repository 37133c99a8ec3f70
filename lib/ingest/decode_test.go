// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bureau-foundation/ionhash/lib/codec"
	"github.com/bureau-foundation/ionhash/lib/ion"
	"github.com/bureau-foundation/ionhash/lib/ionhash"
	"github.com/bureau-foundation/ionhash/lib/testutil"
)

func mustDecode(t *testing.T, format Format, data []byte) []*ion.Value {
	t.Helper()
	values, err := Decode(format, data)
	if err != nil {
		t.Fatalf("Decode(%s): %v", format, err)
	}
	return values
}

func requireSingle(t *testing.T, values []*ion.Value) *ion.Value {
	t.Helper()
	if len(values) != 1 {
		t.Fatalf("decoded %d values, want 1", len(values))
	}
	return values[0]
}

// recordValue is the logical content of testdata/record.*.
func recordValue() map[string]any {
	return map[string]any{
		"name":   "ion",
		"count":  3,
		"tags":   []string{"a", "b"},
		"ok":     true,
		"nested": map[string]any{"x": -1},
	}
}

func TestCrossFormatDigestsMatch(t *testing.T) {
	cborData, err := codec.Marshal(recordValue())
	if err != nil {
		t.Fatalf("codec.Marshal: %v", err)
	}
	msgpackData, err := msgpack.Marshal(recordValue())
	if err != nil {
		t.Fatalf("msgpack.Marshal: %v", err)
	}

	inputs := []struct {
		name   string
		format Format
		data   []byte
	}{
		{"json", FormatJSON, testutil.Testdata(t, "record.json")},
		{"jsonc", FormatJSON, testutil.Testdata(t, "record.jsonc")},
		{"yaml", FormatYAML, testutil.Testdata(t, "record.yaml")},
		{"toml", FormatTOML, testutil.Testdata(t, "record.toml")},
		{"cbor", FormatCBOR, cborData},
		{"msgpack", FormatMsgpack, msgpackData},
	}

	var want []byte
	for _, input := range inputs {
		t.Run(input.name, func(t *testing.T) {
			value := requireSingle(t, mustDecode(t, input.format, input.data))
			digest, err := ionhash.Sum(value, ionhash.Config{})
			if err != nil {
				t.Fatalf("Sum: %v", err)
			}
			if want == nil {
				want = digest
				return
			}
			if !bytes.Equal(digest, want) {
				t.Errorf("digest %x differs from json's %x", digest, want)
			}
		})
	}
}

func TestDecodeJSONStream(t *testing.T) {
	values := mustDecode(t, FormatJSON, testutil.Testdata(t, "stream.json"))
	huge, _ := new(big.Int).SetString("12345678901234567890123", 10)
	want := []*ion.Value{
		ion.Int(1),
		ion.MustDecimal("2.50"),
		ion.Float(300),
		ion.String("four"),
		ion.Null(),
		ion.List(ion.BigInt(huge)),
	}
	if len(values) != len(want) {
		t.Fatalf("decoded %d values, want %d", len(values), len(want))
	}
	for index := range want {
		if !values[index].Equal(want[index]) {
			t.Errorf("value %d = %+v, want %+v", index, values[index], want[index])
		}
	}
}

func TestDecodeJSONPreservesOrder(t *testing.T) {
	value := requireSingle(t, mustDecode(t, FormatJSON, []byte(`{"b": 1, "a": 2, "b": 3}`)))
	var names []string
	for _, field := range value.Children {
		names = append(names, *field.FieldName.Text)
	}
	if len(names) != 3 || names[0] != "b" || names[1] != "a" || names[2] != "b" {
		t.Errorf("field order = %v, want [b a b]", names)
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	for _, input := range []string{`{"a": `, `[1, 2`, `{"a" 1}`, `[1,,2]`} {
		if _, err := Decode(FormatJSON, []byte(input)); err == nil {
			t.Errorf("Decode(%q) should fail", input)
		}
	}
}

func TestDecodeYAMLTags(t *testing.T) {
	values := mustDecode(t, FormatYAML, testutil.Testdata(t, "tagged.yaml"))
	if len(values) != 6 {
		t.Fatalf("decoded %d documents, want 6", len(values))
	}

	point := ion.Struct(ion.Field("x", ion.Int(1)), ion.Field("y", ion.Float(2.5))).Annotate("point")
	if !values[0].Equal(point) {
		t.Errorf("document 0 = %+v, want annotated struct", values[0])
	}

	sexp := ion.Sexp(ion.String("+"), ion.Int(1), ion.Int(2))
	if !values[1].Equal(sexp) {
		t.Errorf("document 1 = %+v, want sexp", values[1])
	}

	if !values[2].Equal(ion.Blob([]byte{0xEF, 0x00})) {
		t.Errorf("document 2 = %+v, want blob EF00", values[2])
	}

	date := values[3]
	if date.Type != ion.TimestampType || date.Timestamp.Precision() != ion.TimestampPrecisionDay {
		t.Errorf("document 3 = %+v, want a day-precision timestamp", date)
	}

	instant := values[4].Timestamp
	if values[4].Type != ion.TimestampType || instant.FractionDigits() != 2 {
		t.Fatalf("document 4 = %+v, want timestamp with 2 fraction digits", values[4])
	}
	if offset, known := instant.OffsetMinutes(); !known || offset != -300 {
		t.Errorf("offset = %d (known %v), want -300", offset, known)
	}

	if !values[5].Equal(ion.String("quoted").Annotate("label")) {
		t.Errorf("document 5 = %+v, want annotated string", values[5])
	}
}

func TestDecodeYAMLLocalTagKeepsImplicitType(t *testing.T) {
	value := requireSingle(t, mustDecode(t, FormatYAML, []byte("!count 42\n")))
	if !value.Equal(ion.Int(42).Annotate("count")) {
		t.Errorf("value = %+v, want count::42", value)
	}
}

func TestDecodeYAMLAliases(t *testing.T) {
	value := requireSingle(t, mustDecode(t, FormatYAML, []byte("a: &shared [1, 2]\nb: *shared\n")))
	if len(value.Children) != 2 || !value.Children[0].Equal(value.Children[1]) {
		t.Errorf("alias did not resolve to its anchor: %+v", value)
	}
}

func TestDecodeYAMLRejectsComplexKeys(t *testing.T) {
	_, err := Decode(FormatYAML, []byte("? [a, b]\n: 1\n"))
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("err = %v, want ErrUnsupportedValue", err)
	}
}

func TestDecodeCBORTags(t *testing.T) {
	// 100("x"), 1(1363896240), h'EF'
	data := []byte{0xd8, 0x64, 0x61, 'x', 0xc1, 0x1a, 0x51, 0x4b, 0x67, 0xb0, 0x41, 0xef}
	values := mustDecode(t, FormatCBOR, data)
	if len(values) != 3 {
		t.Fatalf("decoded %d values, want 3", len(values))
	}
	if !values[0].Equal(ion.String("x").Annotate("tag:100")) {
		t.Errorf("value 0 = %+v, want tag:100::\"x\"", values[0])
	}
	want := ion.NewTimestampWithFraction(time.Unix(1363896240, 0).UTC(), ion.TimezoneUTC, 0)
	if values[1].Type != ion.TimestampType || !values[1].Timestamp.Equal(want) {
		t.Errorf("value 1 = %+v, want %s", values[1], want)
	}
	if !values[2].Equal(ion.Blob([]byte{0xef})) {
		t.Errorf("value 2 = %+v, want blob", values[2])
	}
}

func TestDecodeCBORNonStringKeys(t *testing.T) {
	// {1: "a", "k": "b"}
	data := []byte{0xa2, 0x01, 0x61, 'a', 0x61, 'k', 0x61, 'b'}
	value := requireSingle(t, mustDecode(t, FormatCBOR, data))
	want := ion.Struct(ion.Field("1", ion.String("a")), ion.Field("k", ion.String("b")))
	if !value.Equal(want) {
		t.Errorf("value = %+v, want %+v", value, want)
	}
}

func TestDecodeMsgpackStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := msgpack.NewEncoder(&buffer)
	for _, item := range []any{uint64(1) << 63, "s", []byte{1}, nil, []any{int8(-1), 1.5}} {
		if err := encoder.Encode(item); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}
	values := mustDecode(t, FormatMsgpack, buffer.Bytes())
	want := []*ion.Value{
		ion.BigInt(new(big.Int).Lsh(big.NewInt(1), 63)),
		ion.String("s"),
		ion.Blob([]byte{1}),
		ion.Null(),
		ion.List(ion.Int(-1), ion.Float(1.5)),
	}
	if len(values) != len(want) {
		t.Fatalf("decoded %d values, want %d", len(values), len(want))
	}
	for index := range want {
		if !values[index].Equal(want[index]) {
			t.Errorf("value %d = %+v, want %+v", index, values[index], want[index])
		}
	}
}

func TestDecodeTOMLDates(t *testing.T) {
	document := []byte(`
date = 1979-05-27
local = 1979-05-27T07:32:00
instant = 1979-05-27T07:32:00.5Z
clock = 07:32:00
`)
	value := requireSingle(t, mustDecode(t, FormatTOML, document))
	fields := make(map[string]*ion.Value)
	for _, field := range value.Children {
		fields[*field.FieldName.Text] = field
	}

	if got := fields["date"].Timestamp.Precision(); got != ion.TimestampPrecisionDay {
		t.Errorf("date precision = %s, want day", got)
	}
	if got := fields["local"].Timestamp.Kind(); got != ion.TimezoneUnspecified {
		t.Errorf("local datetime offset kind = %d, want unspecified", got)
	}
	if got := fields["instant"].Timestamp; got.Kind() != ion.TimezoneUTC || got.FractionDigits() != 1 {
		t.Errorf("instant = %s, want UTC with 1 fraction digit", got)
	}
	if !fields["clock"].Equal(ion.Field("clock", ion.String("07:32:00").Annotate("time"))) {
		t.Errorf("clock = %+v, want time::\"07:32:00\"", fields["clock"])
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	if _, err := Decode("xml", nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}
