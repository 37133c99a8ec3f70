// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import (
	"fmt"
)

// WriteValue writes v, including its field name, annotations, and any
// members, to w.
func WriteValue(w Writer, v *Value) error {
	if v.FieldName != nil {
		w.SetFieldName(*v.FieldName)
	}
	if len(v.Annotations) > 0 {
		w.SetAnnotations(v.Annotations...)
	}

	if v.Null {
		if v.Type == NullType {
			return w.WriteNull()
		}
		return w.WriteNullType(v.Type)
	}

	switch v.Type {
	case NullType:
		return w.WriteNull()
	case BoolType:
		return w.WriteBool(v.Bool)
	case IntType:
		return w.WriteBigInt(intOrZero(v.Int))
	case FloatType:
		return w.WriteFloat(v.Float)
	case DecimalType:
		if v.Decimal == nil {
			return fmt.Errorf("writing decimal with no payload: %w", ErrInvalidState)
		}
		return w.WriteDecimal(v.Decimal)
	case TimestampType:
		return w.WriteTimestamp(v.Timestamp)
	case StringType:
		return w.WriteString(v.Text)
	case SymbolType:
		return w.WriteSymbol(v.Symbol)
	case BlobType:
		return w.WriteBlob(nonNilBytes(v.Bytes))
	case ClobType:
		return w.WriteClob(nonNilBytes(v.Bytes))
	case ListType, SexpType, StructType:
		if err := w.StepIn(v.Type); err != nil {
			return err
		}
		for _, child := range v.Children {
			if err := WriteValue(w, child); err != nil {
				return err
			}
		}
		return w.StepOut()
	}
	return fmt.Errorf("writing value of %s: %w", v.Type, ErrTypeMismatch)
}

// WriteValues writes each value to w in order and calls Finish.
func WriteValues(w Writer, values ...*Value) error {
	for index, v := range values {
		if err := WriteValue(w, v); err != nil {
			return fmt.Errorf("value %d: %w", index, err)
		}
	}
	return w.Finish()
}

// nonNilBytes keeps an empty lob from being written as a typed null.
func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// ReadValue materializes the value under r's cursor. A container is
// read to its end and r is left positioned on it, as if the container
// had been skipped.
func ReadValue(r Reader) (*Value, error) {
	if r.Type() == NoType {
		return nil, fmt.Errorf("reading value: %w", ErrInvalidState)
	}
	v, err := ReadScalar(r)
	if err == nil || !r.Type().IsContainer() || r.IsNull() {
		return v, err
	}

	v = header(r)
	if err := r.StepIn(); err != nil {
		return nil, err
	}
	v.Children = []*Value{}
	for r.Next() {
		child, err := ReadValue(r)
		if err != nil {
			return nil, err
		}
		v.Children = append(v.Children, child)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := r.StepOut(); err != nil {
		return nil, err
	}
	return v, nil
}

// ReadAll reads every remaining value at r's current depth.
func ReadAll(r Reader) ([]*Value, error) {
	var values []*Value
	for r.Next() {
		v, err := ReadValue(r)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func header(r Reader) *Value {
	v := &Value{
		Type:        r.Type(),
		Null:        r.IsNull(),
		Annotations: r.Annotations(),
		FieldName:   r.FieldName(),
	}
	if len(v.Annotations) == 0 {
		v.Annotations = nil
	}
	return v
}

// ReadScalar materializes the null or scalar under r's cursor without
// moving it. A non-null container is ErrTypeMismatch.
func ReadScalar(r Reader) (*Value, error) {
	v := header(r)
	if v.Null {
		return v, nil
	}

	var err error
	switch v.Type {
	case NoType:
		return nil, fmt.Errorf("reading scalar: %w", ErrInvalidState)
	case NullType:
		v.Null = true
	case BoolType:
		v.Bool, err = r.BoolValue()
	case IntType:
		v.Int, err = r.IntValue()
	case FloatType:
		v.Float, err = r.FloatValue()
	case DecimalType:
		v.Decimal, err = r.DecimalValue()
	case TimestampType:
		v.Timestamp, err = r.TimestampValue()
	case StringType:
		v.Text, err = r.StringValue()
	case SymbolType:
		v.Symbol, err = r.SymbolValue()
	case BlobType, ClobType:
		v.Bytes, err = r.ByteValue()
	default:
		return nil, fmt.Errorf("reading scalar from %s: %w", v.Type, ErrTypeMismatch)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
