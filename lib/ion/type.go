// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import "fmt"

// Type identifies the Ion type of a value.
type Type uint8

const (
	// NoType means there is no value under the cursor.
	NoType Type = iota
	NullType
	BoolType
	IntType
	FloatType
	DecimalType
	TimestampType
	SymbolType
	StringType
	ClobType
	BlobType
	ListType
	SexpType
	StructType
)

var typeNames = [...]string{
	NoType:        "none",
	NullType:      "null",
	BoolType:      "bool",
	IntType:       "int",
	FloatType:     "float",
	DecimalType:   "decimal",
	TimestampType: "timestamp",
	SymbolType:    "symbol",
	StringType:    "string",
	ClobType:      "clob",
	BlobType:      "blob",
	ListType:      "list",
	SexpType:      "sexp",
	StructType:    "struct",
}

// String returns the Ion name of the type ("int", "struct", ...).
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// IsContainer reports whether t is list, sexp, or struct.
func (t Type) IsContainer() bool {
	return t == ListType || t == SexpType || t == StructType
}

// IsScalar reports whether t is a non-container value type.
func (t Type) IsScalar() bool {
	return t >= NullType && t <= BlobType
}

// ParseType returns the Type named by s. "none" is not accepted.
func ParseType(s string) (Type, error) {
	for index, name := range typeNames {
		if Type(index) != NoType && name == s {
			return Type(index), nil
		}
	}
	return NoType, fmt.Errorf("unknown ion type %q", s)
}
