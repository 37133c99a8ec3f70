// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionhash

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

func TestScalarDigestStreams(t *testing.T) {
	tests := []struct {
		name  string
		value *ion.Value
		want  []byte
	}{
		{"int one", ion.Int(1), []byte{0xEF, 0x20, 0xEF, 0x01, 0xEF}},
		{"int zero", ion.Int(0), []byte{0xEF, 0x20, 0xEF}},
		{"negative int", ion.Int(-2), scalarStream(0x30, 0x02)},
		{"null", ion.Null(), scalarStream(0x0F)},
		{"null.int", ion.TypedNull(ion.IntType), scalarStream(0x2F)},
		{"null.struct", ion.TypedNull(ion.StructType), scalarStream(0xDF)},
		{"true", ion.Bool(true), scalarStream(0x11)},
		{"false", ion.Bool(false), scalarStream(0x10)},
		{"positive zero float", ion.Float(0), scalarStream(0x40)},
		{"negative zero float", ion.Float(math.Copysign(0, -1)), scalarStream(0x40, 0x80, 0, 0, 0, 0, 0, 0, 0)},
		{"decimal", ion.MustDecimal("1.5"), scalarStream(0x50, 0xC1, 0x0F)},
		{"empty string", ion.String(""), scalarStream(0x80)},
		{"string", ion.String("hi"), scalarStream(0x80, 'h', 'i')},
		{"symbol", ion.Symbol("a"), []byte{0xEF, 0x70, 0xEF, 0x61, 0xEF}},
		{"symbol zero", ion.SymbolSID(0), scalarStream(0x71)},
		{"blob with delimiter", ion.Blob([]byte{0xEF}), []byte{0xEF, 0xA0, 0xEF, 0xEF, 0xEF, 0xEF}},
		{"clob", ion.Clob([]byte("x")), scalarStream(0x90, 'x')},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := mustSum(t, test.value, identityConfig())
			if !bytes.Equal(got, test.want) {
				t.Errorf("digest = % X, want % X", got, test.want)
			}
		})
	}
}

func TestLongValuesDropLengthField(t *testing.T) {
	text := bytes.Repeat([]byte("x"), 100)
	got := mustSum(t, ion.String(string(text)), identityConfig())
	want := scalarStream(0x80, text...)
	if !bytes.Equal(got, want) {
		t.Errorf("digest of 100-byte string starts % X, want % X", got[:4], want[:4])
	}
}

func TestContainerDigestStreams(t *testing.T) {
	one := scalarStream(0x20, 0x01)
	two := scalarStream(0x20, 0x02)

	t.Run("list", func(t *testing.T) {
		got := mustSum(t, ion.List(ion.Int(1)), identityConfig())
		want := []byte{0xEF, 0xB0, 0xEF, 0xEF, 0xEF, 0x20, 0xEF, 0xEF, 0x01, 0xEF, 0xEF, 0xEF}
		if !bytes.Equal(got, want) {
			t.Errorf("digest = % X, want % X", got, want)
		}
	})

	t.Run("empty sexp", func(t *testing.T) {
		got := mustSum(t, ion.Sexp(), identityConfig())
		if want := joined(segment(tqSexp)); !bytes.Equal(got, want) {
			t.Errorf("digest = % X, want % X", got, want)
		}
	})

	t.Run("struct members sorted", func(t *testing.T) {
		value := ion.Struct(ion.Field("b", ion.Int(2)), ion.Field("a", ion.Int(1)))
		got := mustSum(t, value, identityConfig())

		memberA := fieldStream("a", one)
		memberB := fieldStream("b", two)
		first, second := memberA, memberB
		if CompareDigests(memberB, memberA) < 0 {
			first, second = memberB, memberA
		}
		want := joined(segment(tqStruct), segment(first...), segment(second...))
		if !bytes.Equal(got, want) {
			t.Errorf("digest = % X, want % X", got, want)
		}
	})

	t.Run("annotated value", func(t *testing.T) {
		got := mustSum(t, ion.Int(1).Annotate("x", "y"), identityConfig())
		want := joined(
			segment(tqAnnotatedValue),
			segment(symbolStream("x")...),
			segment(symbolStream("y")...),
			segment(one...),
		)
		if !bytes.Equal(got, want) {
			t.Errorf("digest = % X, want % X", got, want)
		}
	})

	t.Run("annotated field", func(t *testing.T) {
		got := mustSum(t, ion.Struct(ion.Field("f", ion.Int(1).Annotate("x"))), identityConfig())
		annotated := joined(segment(tqAnnotatedValue), segment(symbolStream("x")...), segment(one...))
		want := joined(segment(tqStruct), segment(fieldStream("f", annotated)...))
		if !bytes.Equal(got, want) {
			t.Errorf("digest = % X, want % X", got, want)
		}
	})

	t.Run("top-level field name ignored", func(t *testing.T) {
		got := mustSum(t, ion.Field("ignored", ion.Int(1)), identityConfig())
		if !bytes.Equal(got, one) {
			t.Errorf("digest = % X, want % X", got, one)
		}
	})
}

func TestStructOrderIndependence(t *testing.T) {
	fields := func(order ...int) *ion.Value {
		all := []func() *ion.Value{
			func() *ion.Value { return ion.Field("a", ion.Int(1)) },
			func() *ion.Value { return ion.Field("b", ion.String("two")) },
			func() *ion.Value { return ion.Field("a", ion.Int(3)) },
			func() *ion.Value { return ion.Field("c", ion.List(ion.Symbol("x"), ion.Null())) },
			func() *ion.Value { return ion.Field("d", ion.Struct(ion.Field("z", ion.Bool(true)))) },
		}
		members := make([]*ion.Value, 0, len(order))
		for _, index := range order {
			members = append(members, all[index]())
		}
		return ion.Struct(members...)
	}

	want := mustSum(t, fields(0, 1, 2, 3, 4), Config{})
	for _, order := range [][]int{{4, 3, 2, 1, 0}, {2, 0, 4, 1, 3}, {1, 2, 3, 4, 0}} {
		if got := mustSum(t, fields(order...), Config{}); !bytes.Equal(got, want) {
			t.Errorf("order %v: digest %x, want %x", order, got, want)
		}
	}

	// Sanity: changing a value does change the digest.
	changed := ion.Struct(ion.Field("a", ion.Int(1)), ion.Field("b", ion.String("three")))
	original := ion.Struct(ion.Field("a", ion.Int(1)), ion.Field("b", ion.String("two")))
	if bytes.Equal(mustSum(t, changed, Config{}), mustSum(t, original, Config{})) {
		t.Error("different structs have equal digests")
	}
}

func TestFieldNameChangesParentOnly(t *testing.T) {
	named := ion.Struct(ion.Field("a", ion.Int(1)))
	renamed := ion.Struct(ion.Field("b", ion.Int(1)))
	if bytes.Equal(mustSum(t, named, Config{}), mustSum(t, renamed, Config{})) {
		t.Error("renaming a field did not change the struct digest")
	}

	reader, err := NewReader(ion.NewTreeReader(named), Config{})
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	reader.Next()
	if err := reader.StepIn(); err != nil {
		t.Fatalf("StepIn: %v", err)
	}
	reader.Next()
	reader.Next()
	if got, want := reader.Digest(), mustSum(t, ion.Int(1), Config{}); !bytes.Equal(got, want) {
		t.Errorf("member digest %x includes its field name; want %x", got, want)
	}
}

func TestDistinctValuesDistinctDigests(t *testing.T) {
	values := []*ion.Value{
		ion.Null(), ion.TypedNull(ion.IntType), ion.Bool(false), ion.Int(0),
		ion.Float(0), ion.Float(math.Copysign(0, -1)), ion.MustDecimal("0"),
		ion.MustDecimal("0.0"), ion.String(""), ion.Symbol(""), ion.SymbolSID(0),
		ion.Blob(nil), ion.Clob(nil), ion.List(), ion.Sexp(), ion.Struct(),
		ion.List().Annotate(""), ion.List(ion.Null()), ion.Sexp(ion.Null()),
	}
	digests, err := SumAll(values, Config{})
	if err != nil {
		t.Fatalf("SumAll: %v", err)
	}
	seen := make(map[string]int)
	for index, digest := range digests {
		if previous, ok := seen[string(digest)]; ok {
			t.Errorf("values %d and %d share a digest", previous, index)
		}
		seen[string(digest)] = index
	}
}

func TestCacheTransparency(t *testing.T) {
	values := []*ion.Value{
		ion.Struct(
			ion.Field("flag", ion.Bool(true)),
			ion.Field("kind", ion.Symbol("widget").Annotate("kind")),
			ion.Field("missing", ion.TypedNull(ion.StringType)),
		),
		ion.List(ion.Symbol("widget"), ion.Symbol("gadget"), ion.Bool(true), ion.Bool(false)),
		ion.Symbol("kind"),
		ion.Bool(true),
	}

	configs := map[string]Config{
		"unbounded": {},
		"disabled":  {DisableCache: true},
		"lru":       {CacheSize: 2},
	}
	var want [][]byte
	for name, config := range configs {
		// Hash everything twice so the second pass hits the cache.
		got, err := SumAll(append(values, values...), config)
		if err != nil {
			t.Fatalf("%s: SumAll: %v", name, err)
		}
		if want == nil {
			want = got
			continue
		}
		for index := range want {
			if !bytes.Equal(got[index], want[index]) {
				t.Errorf("%s: value %d digest differs", name, index)
			}
		}
	}
}

func TestUnresolvedSymbols(t *testing.T) {
	unresolved := ion.NewSymbolTokenSID(10)
	tests := []struct {
		name  string
		value *ion.Value
	}{
		{"symbol value", ion.SymbolFromToken(unresolved)},
		{"field name", ion.Struct(ion.FieldToken(unresolved, ion.Int(1)))},
		{"annotation", ion.Int(1).AnnotateTokens(unresolved)},
		{"container annotation", ion.List().AnnotateTokens(unresolved)},
		{"nested", ion.List(ion.List(ion.SymbolFromToken(unresolved)))},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Sum(test.value, Config{}); !errors.Is(err, ErrUnresolvedSymbol) {
				t.Errorf("Sum err = %v, want ErrUnresolvedSymbol", err)
			}

			reader, err := NewReader(ion.NewTreeReader(test.value), Config{})
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			reader.Next()
			if reader.Next() {
				t.Fatal("Next succeeded past an unresolved symbol")
			}
			if !errors.Is(reader.Err(), ErrUnresolvedSymbol) {
				t.Errorf("reader Err = %v, want ErrUnresolvedSymbol", reader.Err())
			}
		})
	}
}

func TestUnsupportedValueType(t *testing.T) {
	writer, err := NewWriter(ion.NewDiscardWriter(), Config{})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	for _, typ := range []ion.Type{ion.NoType, ion.Type(99)} {
		if err := writer.WriteInt(2); err != nil {
			t.Fatalf("WriteInt: %v", err)
		}
		if err := writer.WriteNullType(typ); !errors.Is(err, ErrUnsupportedValueType) {
			t.Errorf("WriteNullType(%s) err = %v, want ErrUnsupportedValueType", typ, err)
		}
		if got := writer.Digest(); len(got) != 0 {
			t.Errorf("digest after rejected null.%s = %x, want empty", typ, got)
		}
	}
	for _, typ := range []ion.Type{ion.IntType, ion.Type(99)} {
		if err := writer.StepIn(typ); !errors.Is(err, ErrUnsupportedValueType) {
			t.Errorf("StepIn(%s) err = %v, want ErrUnsupportedValueType", typ, err)
		}
	}
	if writer.Depth() != 0 {
		t.Errorf("Depth after rejected StepIn = %d, want 0", writer.Depth())
	}
	if err := writer.WriteInt(1); err != nil {
		t.Fatalf("WriteInt after rejected value: %v", err)
	}
	if got, want := writer.Digest(), mustSum(t, ion.Int(1), Config{}); !bytes.Equal(got, want) {
		t.Errorf("digest after rejected value = %x, want %x", got, want)
	}

	unknown := &ion.Value{Type: ion.Type(99)}
	values := map[string]*ion.Value{
		"top level": unknown,
		"in list":   ion.List(ion.Int(1), &ion.Value{Type: ion.Type(99)}),
		"in struct": ion.Struct(ion.Field("a", &ion.Value{Type: ion.Type(99)})),
	}
	for name, value := range values {
		t.Run(name, func(t *testing.T) {
			if _, err := Sum(value, Config{}); !errors.Is(err, ErrUnsupportedValueType) {
				t.Errorf("Sum err = %v, want ErrUnsupportedValueType", err)
			}

			reader, err := NewReader(ion.NewTreeReader(value), Config{})
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			for reader.Next() {
			}
			if !errors.Is(reader.Err(), ErrUnsupportedValueType) {
				t.Errorf("reader Err = %v, want ErrUnsupportedValueType", reader.Err())
			}
			if got := reader.Digest(); len(got) != 0 {
				t.Errorf("reader digest after error = %x, want empty", got)
			}
		})
	}
}

func TestBufferReusingProvider(t *testing.T) {
	values := []*ion.Value{
		ion.Struct(ion.Field("a", ion.Int(1)), ion.Field("b", ion.Int(2))),
		ion.Struct(
			ion.Field("name", ion.String("x").Annotate("label")),
			ion.Field("tags", ion.List(ion.Symbol("p"), ion.Symbol("q")).Annotate("set")),
			ion.Field("nested", ion.Struct(ion.Field("a", ion.Bool(true)))),
		),
		ion.Sexp(ion.Symbol("+"), ion.Int(1), ion.Float(2.5)).Annotate("op", "math"),
		ion.List(ion.Struct(ion.Field("a", ion.Null())), ion.Struct(ion.Field("a", ion.Null()))),
	}

	fresh, err := SumAll(values, Config{Algorithm: "sha256"})
	if err != nil {
		t.Fatalf("SumAll(sha256): %v", err)
	}
	for _, disableCache := range []bool{false, true} {
		config := Config{Provider: reusingSHA256Provider{}, DisableCache: disableCache}
		reused, err := SumAll(values, config)
		if err != nil {
			t.Fatalf("SumAll(reusing): %v", err)
		}
		read, err := ReadDigests(ion.NewTreeReader(values...), config)
		if err != nil {
			t.Fatalf("ReadDigests(reusing): %v", err)
		}
		for index := range values {
			if !bytes.Equal(reused[index], fresh[index]) {
				t.Errorf("cache disabled=%v: value %d written digest %x, want %x", disableCache, index, reused[index], fresh[index])
			}
			if !bytes.Equal(read[index], fresh[index]) {
				t.Errorf("cache disabled=%v: value %d read digest %x, want %x", disableCache, index, read[index], fresh[index])
			}
		}
	}
}
