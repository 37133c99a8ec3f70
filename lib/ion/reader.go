// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import (
	"fmt"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Reader is a forward-only cursor over a stream of Ion values.
//
// Next advances to the next value at the current depth and reports
// whether one exists. When Next returns false, Err distinguishes the
// end of the container (nil) from a failure. StepIn descends into the
// current container; StepOut returns to the parent, skipping anything
// left unread.
type Reader interface {
	Next() bool
	Err() error

	// Type returns the type of the current value, or NoType when the
	// cursor is not positioned on a value.
	Type() Type
	IsNull() bool
	FieldName() *SymbolToken
	Annotations() []SymbolToken

	StepIn() error
	StepOut() error
	Depth() int

	BoolValue() (bool, error)
	IntValue() (*big.Int, error)
	FloatValue() (float64, error)
	DecimalValue() (*apd.Decimal, error)
	TimestampValue() (Timestamp, error)
	StringValue() (string, error)
	SymbolValue() (SymbolToken, error)
	ByteValue() ([]byte, error)
}

type readerFrame struct {
	members []*Value
	index   int
}

// treeReader walks an in-memory value tree.
type treeReader struct {
	frames  []readerFrame
	current *Value
}

// NewTreeReader returns a Reader over the given top-level values. The
// values are not copied and must not be modified while being read.
func NewTreeReader(values ...*Value) Reader {
	return &treeReader{
		frames: []readerFrame{{members: values, index: -1}},
	}
}

func (r *treeReader) Next() bool {
	frame := &r.frames[len(r.frames)-1]
	if frame.index < len(frame.members) {
		frame.index++
	}
	if frame.index >= len(frame.members) {
		r.current = nil
		return false
	}
	r.current = frame.members[frame.index]
	return true
}

func (r *treeReader) Err() error { return nil }

func (r *treeReader) Type() Type {
	if r.current == nil {
		return NoType
	}
	return r.current.Type
}

func (r *treeReader) IsNull() bool {
	return r.current != nil && r.current.Null
}

func (r *treeReader) FieldName() *SymbolToken {
	if r.current == nil || r.current.FieldName == nil {
		return nil
	}
	name := *r.current.FieldName
	return &name
}

func (r *treeReader) Annotations() []SymbolToken {
	if r.current == nil {
		return nil
	}
	return cloneTokens(r.current.Annotations)
}

func (r *treeReader) StepIn() error {
	if r.current == nil || !r.current.IsContainer() {
		return fmt.Errorf("stepping into %s: %w", r.Type(), ErrNotContainer)
	}
	r.frames = append(r.frames, readerFrame{members: r.current.Children, index: -1})
	r.current = nil
	return nil
}

func (r *treeReader) StepOut() error {
	if len(r.frames) == 1 {
		return ErrTopLevel
	}
	r.frames = r.frames[:len(r.frames)-1]
	r.current = nil
	return nil
}

func (r *treeReader) Depth() int {
	return len(r.frames) - 1
}

// scalar returns the current value if it is a non-null value of type t.
func (r *treeReader) scalar(t Type) (*Value, error) {
	if r.current == nil {
		return nil, fmt.Errorf("reading %s: %w", t, ErrInvalidState)
	}
	if r.current.Type != t || r.current.Null {
		current := r.current.Type.String()
		if r.current.Null {
			current = "null." + current
		}
		return nil, fmt.Errorf("reading %s from %s: %w", t, current, ErrTypeMismatch)
	}
	return r.current, nil
}

func (r *treeReader) BoolValue() (bool, error) {
	v, err := r.scalar(BoolType)
	if err != nil {
		return false, err
	}
	return v.Bool, nil
}

func (r *treeReader) IntValue() (*big.Int, error) {
	v, err := r.scalar(IntType)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(intOrZero(v.Int)), nil
}

func (r *treeReader) FloatValue() (float64, error) {
	v, err := r.scalar(FloatType)
	if err != nil {
		return 0, err
	}
	return v.Float, nil
}

func (r *treeReader) DecimalValue() (*apd.Decimal, error) {
	v, err := r.scalar(DecimalType)
	if err != nil {
		return nil, err
	}
	if v.Decimal == nil {
		return new(apd.Decimal), nil
	}
	return new(apd.Decimal).Set(v.Decimal), nil
}

func (r *treeReader) TimestampValue() (Timestamp, error) {
	v, err := r.scalar(TimestampType)
	if err != nil {
		return Timestamp{}, err
	}
	return v.Timestamp, nil
}

func (r *treeReader) StringValue() (string, error) {
	v, err := r.scalar(StringType)
	if err != nil {
		return "", err
	}
	return v.Text, nil
}

func (r *treeReader) SymbolValue() (SymbolToken, error) {
	v, err := r.scalar(SymbolType)
	if err != nil {
		return SymbolToken{}, err
	}
	return v.Symbol, nil
}

// ByteValue returns the contents of a blob or clob.
func (r *treeReader) ByteValue() ([]byte, error) {
	if r.current != nil && r.current.Type == ClobType {
		v, err := r.scalar(ClobType)
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), v.Bytes...), nil
	}
	v, err := r.scalar(BlobType)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), v.Bytes...), nil
}
