// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import (
	"errors"
	"testing"
)

func sampleValues() []*Value {
	return []*Value{
		Int(1).Annotate("a"),
		Struct(
			Field("name", String("bureau")),
			Field("tags", List(Symbol("x"), Symbol("y")).Annotate("set")),
			Field("empty", Sexp()),
			Field("missing", TypedNull(StructType)),
		),
		Null(),
		MustDecimal("1.50"),
	}
}

func TestTreeReaderTraversal(t *testing.T) {
	reader := NewTreeReader(sampleValues()...)

	if reader.Type() != NoType {
		t.Fatalf("Type before Next = %s, want none", reader.Type())
	}
	if !reader.Next() || reader.Type() != IntType {
		t.Fatalf("first value type = %s, want int", reader.Type())
	}
	annotations := reader.Annotations()
	if len(annotations) != 1 || annotations[0].String() != "a" {
		t.Errorf("annotations = %v, want [a]", annotations)
	}
	if !reader.Next() || reader.Type() != StructType {
		t.Fatalf("second value type = %s, want struct", reader.Type())
	}
	if err := reader.StepIn(); err != nil {
		t.Fatalf("StepIn: %v", err)
	}
	if reader.Depth() != 1 {
		t.Errorf("Depth = %d, want 1", reader.Depth())
	}
	if !reader.Next() {
		t.Fatal("expected first field")
	}
	if name := reader.FieldName(); name == nil || name.String() != "name" {
		t.Errorf("FieldName = %v, want name", name)
	}
	text, err := reader.StringValue()
	if err != nil || text != "bureau" {
		t.Errorf("StringValue = %q, %v", text, err)
	}
	if _, err := reader.IntValue(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("IntValue on string: err = %v, want ErrTypeMismatch", err)
	}

	// Leave the struct early; the remaining fields are skipped.
	if err := reader.StepOut(); err != nil {
		t.Fatalf("StepOut: %v", err)
	}
	if reader.Type() != NoType {
		t.Errorf("Type after StepOut = %s, want none", reader.Type())
	}
	if !reader.Next() || reader.Type() != NullType || !reader.IsNull() {
		t.Fatalf("third value = %s (null %v), want null", reader.Type(), reader.IsNull())
	}
	if !reader.Next() || reader.Type() != DecimalType {
		t.Fatalf("fourth value type = %s, want decimal", reader.Type())
	}
	if reader.Next() {
		t.Fatal("Next past the end returned true")
	}
	if reader.Next() {
		t.Fatal("repeated Next past the end returned true")
	}
	if err := reader.Err(); err != nil {
		t.Errorf("Err = %v", err)
	}
}

func TestTreeReaderStepErrors(t *testing.T) {
	reader := NewTreeReader(Int(1), TypedNull(ListType))

	if err := reader.StepOut(); !errors.Is(err, ErrTopLevel) {
		t.Errorf("StepOut at top: err = %v, want ErrTopLevel", err)
	}
	if err := reader.StepIn(); !errors.Is(err, ErrNotContainer) {
		t.Errorf("StepIn with no value: err = %v, want ErrNotContainer", err)
	}
	reader.Next()
	if err := reader.StepIn(); !errors.Is(err, ErrNotContainer) {
		t.Errorf("StepIn on int: err = %v, want ErrNotContainer", err)
	}
	reader.Next()
	if err := reader.StepIn(); !errors.Is(err, ErrNotContainer) {
		t.Errorf("StepIn on null.list: err = %v, want ErrNotContainer", err)
	}
}

func TestReadAllRoundTrip(t *testing.T) {
	values := sampleValues()
	read, err := ReadAll(NewTreeReader(values...))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(read) != len(values) {
		t.Fatalf("ReadAll returned %d values, want %d", len(read), len(values))
	}
	for i := range values {
		if !values[i].Equal(read[i]) {
			t.Errorf("value %d differs after ReadAll", i)
		}
	}
}

func TestTreeWriterRoundTrip(t *testing.T) {
	values := sampleValues()
	writer := NewTreeWriter()
	if err := WriteValues(writer, values...); err != nil {
		t.Fatalf("WriteValues: %v", err)
	}
	written := writer.Values()
	if len(written) != len(values) {
		t.Fatalf("wrote %d values, want %d", len(written), len(values))
	}
	for i := range values {
		if !values[i].Equal(written[i]) {
			t.Errorf("value %d differs after writing", i)
		}
	}
}

func TestTreeWriterErrors(t *testing.T) {
	writer := NewTreeWriter()
	if err := writer.StepOut(); !errors.Is(err, ErrTopLevel) {
		t.Errorf("StepOut at top: err = %v, want ErrTopLevel", err)
	}
	if err := writer.StepIn(IntType); !errors.Is(err, ErrNotContainer) {
		t.Errorf("StepIn(int): err = %v, want ErrNotContainer", err)
	}
	if err := writer.StepIn(StructType); err != nil {
		t.Fatalf("StepIn(struct): %v", err)
	}
	if err := writer.WriteInt(1); !errors.Is(err, ErrInvalidState) {
		t.Errorf("unnamed field: err = %v, want ErrInvalidState", err)
	}
	if err := writer.Finish(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Finish inside struct: err = %v, want ErrInvalidState", err)
	}
}

func TestDiscardWriter(t *testing.T) {
	writer := NewDiscardWriter()
	if err := WriteValues(writer, sampleValues()...); err != nil {
		t.Fatalf("WriteValues: %v", err)
	}
	if err := writer.StepOut(); !errors.Is(err, ErrTopLevel) {
		t.Errorf("StepOut at top: err = %v, want ErrTopLevel", err)
	}
}
