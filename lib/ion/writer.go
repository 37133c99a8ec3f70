// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Writer receives a stream of Ion values.
//
// SetFieldName and SetAnnotations apply to the next value written
// (scalar, null, or StepIn) and are cleared after it.
type Writer interface {
	SetFieldName(name SymbolToken)
	SetAnnotations(annotations ...SymbolToken)

	WriteNull() error
	WriteNullType(t Type) error
	WriteBool(b bool) error
	WriteInt(i int64) error
	WriteBigInt(i *big.Int) error
	WriteFloat(f float64) error
	WriteDecimal(d *apd.Decimal) error
	WriteTimestamp(t Timestamp) error
	WriteString(s string) error
	WriteSymbol(token SymbolToken) error
	WriteBlob(b []byte) error
	WriteClob(b []byte) error

	StepIn(container Type) error
	StepOut() error
	Depth() int

	// Finish reports an error if any container is still open.
	Finish() error
}

// TreeWriter is a Writer that builds value trees in memory.
type TreeWriter struct {
	values     []*Value
	containers []*Value

	fieldName   *SymbolToken
	annotations []SymbolToken
}

// NewTreeWriter returns an empty TreeWriter.
func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

// Values returns the completed top-level values written so far.
func (w *TreeWriter) Values() []*Value {
	return w.values
}

func (w *TreeWriter) SetFieldName(name SymbolToken) {
	w.fieldName = &name
}

func (w *TreeWriter) SetAnnotations(annotations ...SymbolToken) {
	w.annotations = cloneTokens(annotations)
}

// InStruct reports whether the innermost open container is a struct.
func (w *TreeWriter) InStruct() bool {
	return len(w.containers) > 0 && w.containers[len(w.containers)-1].Type == StructType
}

// attach decorates v with the pending field name and annotations and
// appends it to the open container or the top-level list.
func (w *TreeWriter) attach(v *Value) error {
	fieldName, annotations := w.fieldName, w.annotations
	w.fieldName, w.annotations = nil, nil

	if w.InStruct() {
		if fieldName == nil {
			return fmt.Errorf("writing %s in struct without a field name: %w", v.Type, ErrInvalidState)
		}
		v.FieldName = fieldName
	}
	v.Annotations = annotations

	if len(w.containers) == 0 {
		w.values = append(w.values, v)
		return nil
	}
	parent := w.containers[len(w.containers)-1]
	parent.Children = append(parent.Children, v)
	return nil
}

func (w *TreeWriter) WriteNull() error {
	return w.attach(Null())
}

func (w *TreeWriter) WriteNullType(t Type) error {
	if t == NoType {
		return fmt.Errorf("writing null of no type: %w", ErrTypeMismatch)
	}
	return w.attach(TypedNull(t))
}

func (w *TreeWriter) WriteBool(b bool) error {
	return w.attach(Bool(b))
}

func (w *TreeWriter) WriteInt(i int64) error {
	return w.attach(Int(i))
}

func (w *TreeWriter) WriteBigInt(i *big.Int) error {
	if i == nil {
		return w.attach(TypedNull(IntType))
	}
	return w.attach(BigInt(i))
}

func (w *TreeWriter) WriteFloat(f float64) error {
	return w.attach(Float(f))
}

func (w *TreeWriter) WriteDecimal(d *apd.Decimal) error {
	if d == nil {
		return w.attach(TypedNull(DecimalType))
	}
	return w.attach(Decimal(d))
}

func (w *TreeWriter) WriteTimestamp(t Timestamp) error {
	return w.attach(TimestampValue(t))
}

func (w *TreeWriter) WriteString(s string) error {
	return w.attach(String(s))
}

func (w *TreeWriter) WriteSymbol(token SymbolToken) error {
	return w.attach(SymbolFromToken(token))
}

func (w *TreeWriter) WriteBlob(b []byte) error {
	if b == nil {
		return w.attach(TypedNull(BlobType))
	}
	return w.attach(Blob(append([]byte(nil), b...)))
}

func (w *TreeWriter) WriteClob(b []byte) error {
	if b == nil {
		return w.attach(TypedNull(ClobType))
	}
	return w.attach(Clob(append([]byte(nil), b...)))
}

func (w *TreeWriter) StepIn(container Type) error {
	if !container.IsContainer() {
		return fmt.Errorf("stepping into %s: %w", container, ErrNotContainer)
	}
	v := &Value{Type: container, Children: []*Value{}}
	if err := w.attach(v); err != nil {
		return err
	}
	w.containers = append(w.containers, v)
	return nil
}

func (w *TreeWriter) StepOut() error {
	if len(w.containers) == 0 {
		return ErrTopLevel
	}
	w.containers = w.containers[:len(w.containers)-1]
	return nil
}

func (w *TreeWriter) Depth() int {
	return len(w.containers)
}

func (w *TreeWriter) Finish() error {
	if len(w.containers) != 0 {
		return fmt.Errorf("finishing with %d open containers: %w", len(w.containers), ErrInvalidState)
	}
	return nil
}

// discardWriter tracks nesting and drops every value.
type discardWriter struct {
	containers []Type
}

// NewDiscardWriter returns a Writer that checks container nesting and
// discards everything written to it. It is the delegate of choice when
// only a digest is wanted.
func NewDiscardWriter() Writer {
	return &discardWriter{}
}

func (w *discardWriter) SetFieldName(SymbolToken) {}

func (w *discardWriter) SetAnnotations(...SymbolToken) {}

func (w *discardWriter) WriteNull() error { return nil }

func (w *discardWriter) WriteNullType(Type) error { return nil }

func (w *discardWriter) WriteBool(bool) error { return nil }

func (w *discardWriter) WriteInt(int64) error { return nil }

func (w *discardWriter) WriteBigInt(*big.Int) error { return nil }

func (w *discardWriter) WriteFloat(float64) error { return nil }

func (w *discardWriter) WriteDecimal(*apd.Decimal) error { return nil }

func (w *discardWriter) WriteTimestamp(Timestamp) error { return nil }

func (w *discardWriter) WriteString(string) error { return nil }

func (w *discardWriter) WriteSymbol(SymbolToken) error { return nil }

func (w *discardWriter) WriteBlob([]byte) error { return nil }

func (w *discardWriter) WriteClob([]byte) error { return nil }

func (w *discardWriter) StepIn(container Type) error {
	if !container.IsContainer() {
		return fmt.Errorf("stepping into %s: %w", container, ErrNotContainer)
	}
	w.containers = append(w.containers, container)
	return nil
}

func (w *discardWriter) StepOut() error {
	if len(w.containers) == 0 {
		return ErrTopLevel
	}
	w.containers = w.containers[:len(w.containers)-1]
	return nil
}

func (w *discardWriter) Depth() int { return len(w.containers) }

func (w *discardWriter) Finish() error {
	if len(w.containers) != 0 {
		return fmt.Errorf("finishing with %d open containers: %w", len(w.containers), ErrInvalidState)
	}
	return nil
}
