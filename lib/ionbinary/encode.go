// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ionbinary

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"fortio.org/safecast"
	"github.com/cockroachdb/apd/v3"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

var (
	// ErrContainer is returned when asked to encode a non-null list,
	// sexp, or struct.
	ErrContainer = errors.New("ionbinary: containers are not encoded")

	// ErrSymbolText is returned for a symbol that has text but no local
	// symbol ID. Encoding it would need a symbol table.
	ErrSymbolText = errors.New("ionbinary: symbol text requires a symbol table")

	// ErrOutOfRange is returned for values the binary format cannot
	// carry, such as non-finite decimals or years outside 1-9999.
	ErrOutOfRange = errors.New("ionbinary: value out of range")

	// ErrTruncated is returned by LengthFieldSize when the length field
	// does not terminate.
	ErrTruncated = errors.New("ionbinary: truncated length field")
)

// Type codes (the high nibble of the type descriptor byte).
const (
	codeNull      = 0x0
	codeBool      = 0x1
	codePosInt    = 0x2
	codeNegInt    = 0x3
	codeFloat     = 0x4
	codeDecimal   = 0x5
	codeTimestamp = 0x6
	codeSymbol    = 0x7
	codeString    = 0x8
	codeClob      = 0x9
	codeBlob      = 0xA
	codeList      = 0xB
	codeSexp      = 0xC
	codeStruct    = 0xD

	// lengthNull in the low nibble marks a null value.
	lengthNull = 0xF

	// lengthVarUInt in the low nibble means a VarUInt length follows.
	lengthVarUInt = 0xE
)

// nullDescriptor is null.null. Every other null is code<<4|0xF.
const nullDescriptor = 0x0F

// canonicalNaN is the bit pattern every NaN is written as.
const canonicalNaN = 0x7FF8000000000000

var typeCodes = map[ion.Type]byte{
	ion.NullType:      codeNull,
	ion.BoolType:      codeBool,
	ion.IntType:       codePosInt,
	ion.FloatType:     codeFloat,
	ion.DecimalType:   codeDecimal,
	ion.TimestampType: codeTimestamp,
	ion.SymbolType:    codeSymbol,
	ion.StringType:    codeString,
	ion.ClobType:      codeClob,
	ion.BlobType:      codeBlob,
	ion.ListType:      codeList,
	ion.SexpType:      codeSexp,
	ion.StructType:    codeStruct,
}

// Encoder encodes values into a reusable buffer. The slice returned by
// its methods is valid until the next call. An Encoder is not safe for
// concurrent use; the zero value is ready to use.
type Encoder struct {
	out  []byte
	body []byte
}

// Encode returns the binary encoding of the scalar or null value v.
// Annotations and field names are not part of the encoding.
func (e *Encoder) Encode(v *ion.Value) ([]byte, error) {
	descriptor, body, err := appendBody(e.body[:0], v)
	e.body = body
	if err != nil {
		return nil, err
	}
	e.out = appendValue(e.out[:0], descriptor, body)
	return e.out, nil
}

// EncodeString returns the binary encoding of s as an Ion string.
func (e *Encoder) EncodeString(s string) []byte {
	e.out = appendHeader(e.out[:0], codeString, len(s))
	e.out = append(e.out, s...)
	return e.out
}

// Encode returns the binary encoding of the scalar or null value v in a
// newly allocated slice.
func Encode(v *ion.Value) ([]byte, error) {
	var encoder Encoder
	return encoder.Encode(v)
}

// EncodeString returns the binary encoding of s as an Ion string in a
// newly allocated slice.
func EncodeString(s string) []byte {
	var encoder Encoder
	return encoder.EncodeString(s)
}

// LengthFieldSize returns the number of bytes in the VarUInt length
// field that follows the type descriptor of encoded, or zero when the
// length is carried in the descriptor itself.
func LengthFieldSize(encoded []byte) (int, error) {
	if len(encoded) == 0 {
		return 0, ErrTruncated
	}
	if encoded[0]&0x0F != lengthVarUInt {
		return 0, nil
	}
	for index := 1; index < len(encoded); index++ {
		if encoded[index]&endFlag != 0 {
			return index, nil
		}
	}
	return 0, ErrTruncated
}

// appendValue writes a descriptor and body. A descriptor below
// nullDescriptor is a bare type code that gets its length from body;
// any other descriptor is complete and has no body.
func appendValue(dst []byte, descriptor byte, body []byte) []byte {
	if descriptor >= nullDescriptor {
		return append(dst, descriptor)
	}
	dst = appendHeader(dst, descriptor, len(body))
	return append(dst, body...)
}

func appendHeader(dst []byte, code byte, length int) []byte {
	if length < lengthVarUInt {
		return append(dst, code<<4|byte(length))
	}
	dst = append(dst, code<<4|lengthVarUInt)
	return AppendVarUInt(dst, uint64(length))
}

// appendBody appends the representation of v to dst and returns the
// descriptor for appendValue. Nulls and bools return a complete
// descriptor byte and no body.
func appendBody(dst []byte, v *ion.Value) (byte, []byte, error) {
	code, known := typeCodes[v.Type]
	if !known {
		return 0, dst, fmt.Errorf("encoding %s: %w", v.Type, ion.ErrTypeMismatch)
	}
	if v.Null || v.Type == ion.NullType {
		if code == codeNull {
			return nullDescriptor, dst, nil
		}
		return code<<4 | lengthNull, dst, nil
	}

	switch v.Type {
	case ion.BoolType:
		// The value lives in the length nibble.
		if v.Bool {
			return 0x11, dst, nil
		}
		return 0x10, dst, nil
	case ion.IntType:
		return appendIntBody(dst, v.Int)
	case ion.FloatType:
		return appendFloatBody(dst, v.Float)
	case ion.DecimalType:
		body, err := appendDecimalBody(dst, v)
		return codeDecimal, body, err
	case ion.TimestampType:
		body, err := appendTimestampBody(dst, v.Timestamp)
		return codeTimestamp, body, err
	case ion.SymbolType:
		if v.Symbol.HasText() || v.Symbol.LocalSID < 0 {
			return 0, dst, fmt.Errorf("encoding symbol %s: %w", v.Symbol, ErrSymbolText)
		}
		return codeSymbol, AppendUInt(dst, new(big.Int).SetInt64(v.Symbol.LocalSID)), nil
	case ion.StringType:
		return codeString, append(dst, v.Text...), nil
	case ion.ClobType, ion.BlobType:
		return code, append(dst, v.Bytes...), nil
	}
	return 0, dst, fmt.Errorf("encoding %s: %w", v.Type, ErrContainer)
}

func appendIntBody(dst []byte, i *big.Int) (byte, []byte, error) {
	if i == nil || i.Sign() == 0 {
		return codePosInt, dst, nil
	}
	if i.Sign() < 0 {
		return codeNegInt, AppendUInt(dst, new(big.Int).Abs(i)), nil
	}
	return codePosInt, AppendUInt(dst, i), nil
}

func appendFloatBody(dst []byte, f float64) (byte, []byte, error) {
	bits := math.Float64bits(f)
	if bits == 0 {
		return codeFloat, dst, nil
	}
	if math.IsNaN(f) {
		bits = canonicalNaN
	}
	for shift := 56; shift >= 0; shift -= 8 {
		dst = append(dst, byte(bits>>shift))
	}
	return codeFloat, dst, nil
}

func appendDecimalBody(dst []byte, v *ion.Value) ([]byte, error) {
	d := v.Decimal
	if d == nil {
		return dst, nil
	}
	if d.Form != apd.Finite {
		return dst, fmt.Errorf("encoding decimal %s: %w", d, ErrOutOfRange)
	}
	coefficient := d.Coeff.MathBigInt()
	if coefficient.Sign() == 0 && !d.Negative && d.Exponent == 0 {
		return dst, nil
	}
	dst = AppendVarInt(dst, int64(d.Exponent))
	return AppendInt(dst, coefficient, d.Negative), nil
}

// appendTimestampBody writes the offset followed by the UTC components
// down to the timestamp's precision. Timestamps with an unknown offset
// write their wall-clock fields as given.
func appendTimestampBody(dst []byte, timestamp ion.Timestamp) ([]byte, error) {
	dateTime := timestamp.DateTime()
	offset, known := timestamp.OffsetMinutes()
	if known {
		dst = AppendVarInt(dst, int64(offset))
		dateTime = dateTime.UTC()
	} else {
		dst = append(dst, negativeZeroVarInt)
	}

	year, err := safecast.Conv[uint64](dateTime.Year())
	if err != nil || year < 1 || year > 9999 {
		return dst, fmt.Errorf("encoding timestamp year %d: %w", dateTime.Year(), ErrOutOfRange)
	}
	dst = AppendVarUInt(dst, year)

	precision := timestamp.Precision()
	if precision >= ion.TimestampPrecisionMonth {
		dst = AppendVarUInt(dst, uint64(dateTime.Month()))
	}
	if precision >= ion.TimestampPrecisionDay {
		dst = AppendVarUInt(dst, uint64(dateTime.Day()))
	}
	if precision >= ion.TimestampPrecisionMinute {
		dst = appendClockComponent(dst, dateTime.Hour())
		dst = appendClockComponent(dst, dateTime.Minute())
	}
	if precision >= ion.TimestampPrecisionSecond {
		dst = appendClockComponent(dst, dateTime.Second())
	}
	if precision == ion.TimestampPrecisionFraction && timestamp.FractionDigits() > 0 {
		dst = appendFraction(dst, dateTime, timestamp.FractionDigits())
	}
	return dst, nil
}

func appendClockComponent(dst []byte, component int) []byte {
	value, _ := safecast.Conv[uint64](component)
	return AppendVarUInt(dst, value)
}

// appendFraction writes the fractional seconds as a decimal with
// exponent -digits. A zero coefficient is omitted.
func appendFraction(dst []byte, dateTime time.Time, digits uint8) []byte {
	nanos := int64(dateTime.Nanosecond())
	for range 9 - int(digits) {
		nanos /= 10
	}
	dst = AppendVarInt(dst, -int64(digits))
	return AppendInt(dst, big.NewInt(nanos), false)
}
