// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import (
	"bytes"
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// Value is one node of an Ion value tree. Exactly one payload field is
// meaningful, selected by Type; containers hold their members in
// Children. A null value of any type has Null set and no payload.
type Value struct {
	Type Type
	Null bool

	// Annotations are the value's type annotations, in order.
	Annotations []SymbolToken

	// FieldName is set on members of a struct.
	FieldName *SymbolToken

	Bool      bool
	Int       *big.Int
	Float     float64
	Decimal   *apd.Decimal
	Timestamp Timestamp
	Text      string
	Symbol    SymbolToken
	Bytes     []byte

	Children []*Value
}

// Null returns null.null.
func Null() *Value {
	return &Value{Type: NullType, Null: true}
}

// TypedNull returns the null of type t, e.g. null.int.
func TypedNull(t Type) *Value {
	return &Value{Type: t, Null: true}
}

// Bool returns a bool value.
func Bool(b bool) *Value {
	return &Value{Type: BoolType, Bool: b}
}

// Int returns an int value.
func Int(i int64) *Value {
	return &Value{Type: IntType, Int: big.NewInt(i)}
}

// BigInt returns an int value of arbitrary size. The argument is copied.
func BigInt(i *big.Int) *Value {
	return &Value{Type: IntType, Int: new(big.Int).Set(i)}
}

// Float returns a float value.
func Float(f float64) *Value {
	return &Value{Type: FloatType, Float: f}
}

// Decimal returns a decimal value. The argument is copied.
func Decimal(d *apd.Decimal) *Value {
	return &Value{Type: DecimalType, Decimal: new(apd.Decimal).Set(d)}
}

// ParseDecimal parses s ("1.50", "-0.0", "12e-3") into a decimal value.
func ParseDecimal(s string) (*Value, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parsing decimal %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("parsing decimal %q: ion decimals must be finite", s)
	}
	return &Value{Type: DecimalType, Decimal: d}, nil
}

// MustDecimal is ParseDecimal for constant inputs; it panics on error.
func MustDecimal(s string) *Value {
	v, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return v
}

// TimestampValue returns a timestamp value.
func TimestampValue(t Timestamp) *Value {
	return &Value{Type: TimestampType, Timestamp: t}
}

// String returns a string value.
func String(s string) *Value {
	return &Value{Type: StringType, Text: s}
}

// Symbol returns a symbol value with text.
func Symbol(text string) *Value {
	return &Value{Type: SymbolType, Symbol: NewSymbolToken(text)}
}

// SymbolSID returns a symbol value known only by its local symbol ID.
func SymbolSID(sid int64) *Value {
	return &Value{Type: SymbolType, Symbol: NewSymbolTokenSID(sid)}
}

// SymbolFromToken returns a symbol value for an arbitrary token,
// including tokens without text.
func SymbolFromToken(token SymbolToken) *Value {
	return &Value{Type: SymbolType, Symbol: token}
}

// Blob returns a blob value. The argument is not copied.
func Blob(b []byte) *Value {
	return &Value{Type: BlobType, Bytes: b}
}

// Clob returns a clob value. The argument is not copied.
func Clob(b []byte) *Value {
	return &Value{Type: ClobType, Bytes: b}
}

// List returns a list of the given members.
func List(members ...*Value) *Value {
	return &Value{Type: ListType, Children: members}
}

// Sexp returns an s-expression of the given members.
func Sexp(members ...*Value) *Value {
	return &Value{Type: SexpType, Children: members}
}

// Struct returns a struct of the given fields. Each field should carry
// a FieldName, usually set with [Field].
func Struct(fields ...*Value) *Value {
	return &Value{Type: StructType, Children: fields}
}

// Field sets v's field name and returns v.
func Field(name string, v *Value) *Value {
	token := NewSymbolToken(name)
	v.FieldName = &token
	return v
}

// FieldToken sets v's field name to an arbitrary token and returns v.
func FieldToken(name SymbolToken, v *Value) *Value {
	v.FieldName = &name
	return v
}

// Annotate appends text annotations to v and returns v.
func (v *Value) Annotate(annotations ...string) *Value {
	v.Annotations = append(v.Annotations, NewSymbolTokens(annotations...)...)
	return v
}

// AnnotateTokens appends annotation tokens to v and returns v.
func (v *Value) AnnotateTokens(annotations ...SymbolToken) *Value {
	v.Annotations = append(v.Annotations, annotations...)
	return v
}

// IsContainer reports whether v is a non-null list, sexp, or struct.
func (v *Value) IsContainer() bool {
	return !v.Null && v.Type.IsContainer()
}

// Equal reports whether v and other are the same Ion value, including
// annotations, field names, decimal precision, and member order.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Type != other.Type || v.Null != other.Null {
		return false
	}
	if !tokensEqual(v.Annotations, other.Annotations) {
		return false
	}
	if (v.FieldName == nil) != (other.FieldName == nil) {
		return false
	}
	if v.FieldName != nil && !v.FieldName.Equal(*other.FieldName) {
		return false
	}
	if v.Null {
		return true
	}

	switch v.Type {
	case BoolType:
		return v.Bool == other.Bool
	case IntType:
		return intOrZero(v.Int).Cmp(intOrZero(other.Int)) == 0
	case FloatType:
		if math.IsNaN(v.Float) {
			return math.IsNaN(other.Float)
		}
		return v.Float == other.Float && math.Signbit(v.Float) == math.Signbit(other.Float)
	case DecimalType:
		return decimalsIdentical(v.Decimal, other.Decimal)
	case TimestampType:
		return v.Timestamp.Equal(other.Timestamp)
	case StringType:
		return v.Text == other.Text
	case SymbolType:
		return v.Symbol.Equal(other.Symbol)
	case BlobType, ClobType:
		return bytes.Equal(v.Bytes, other.Bytes)
	case ListType, SexpType, StructType:
		if len(v.Children) != len(other.Children) {
			return false
		}
		for i := range v.Children {
			if !v.Children[i].Equal(other.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func tokensEqual(a, b []SymbolToken) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func intOrZero(i *big.Int) *big.Int {
	if i == nil {
		return new(big.Int)
	}
	return i
}

// decimalsIdentical compares coefficient, exponent, and sign, so 1.0
// and 1.00 differ as they do in the Ion data model.
func decimalsIdentical(a, b *apd.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Form == b.Form &&
		a.Negative == b.Negative &&
		a.Exponent == b.Exponent &&
		a.Coeff.Cmp(&b.Coeff) == 0
}
