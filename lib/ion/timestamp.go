// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ion

import (
	"fmt"
	"strings"
	"time"
)

// TimestampPrecision is the finest component present in a timestamp.
type TimestampPrecision uint8

const (
	TimestampPrecisionYear TimestampPrecision = iota + 1
	TimestampPrecisionMonth
	TimestampPrecisionDay
	TimestampPrecisionMinute
	TimestampPrecisionSecond
	TimestampPrecisionFraction
)

// String returns a lowercase name for the precision.
func (p TimestampPrecision) String() string {
	switch p {
	case TimestampPrecisionYear:
		return "year"
	case TimestampPrecisionMonth:
		return "month"
	case TimestampPrecisionDay:
		return "day"
	case TimestampPrecisionMinute:
		return "minute"
	case TimestampPrecisionSecond:
		return "second"
	case TimestampPrecisionFraction:
		return "fraction"
	default:
		return fmt.Sprintf("precision(%d)", uint8(p))
	}
}

// TimezoneKind describes how a timestamp's offset is known.
type TimezoneKind uint8

const (
	// TimezoneUnspecified is the unknown offset, written -00:00.
	// Date-precision timestamps always have it.
	TimezoneUnspecified TimezoneKind = iota
	// TimezoneUTC is offset zero, written Z.
	TimezoneUTC
	// TimezoneLocal is an explicit offset taken from the time's location.
	TimezoneLocal
)

// maxFractionDigits is the finest fraction Go's time.Time can carry.
const maxFractionDigits = 9

// Timestamp is an Ion timestamp: an instant plus the precision it was
// written with and how its offset is known.
type Timestamp struct {
	dateTime       time.Time
	precision      TimestampPrecision
	kind           TimezoneKind
	fractionDigits uint8
}

// NewDateTimestamp returns a year, month, or day precision timestamp.
// The offset of a date is always unknown.
func NewDateTimestamp(dateTime time.Time, precision TimestampPrecision) Timestamp {
	if precision > TimestampPrecisionDay {
		precision = TimestampPrecisionDay
	}
	return Timestamp{dateTime: dateTime, precision: precision, kind: TimezoneUnspecified}
}

// NewTimestamp returns a timestamp of the given precision. Use
// [NewTimestampWithFraction] for sub-second precision.
func NewTimestamp(dateTime time.Time, precision TimestampPrecision, kind TimezoneKind) Timestamp {
	if precision <= TimestampPrecisionDay {
		return NewDateTimestamp(dateTime, precision)
	}
	if precision == TimestampPrecisionFraction {
		return NewTimestampWithFraction(dateTime, kind, maxFractionDigits)
	}
	return Timestamp{dateTime: dateTime, precision: precision, kind: kind}
}

// NewTimestampWithFraction returns a timestamp carrying digits digits
// of fractional seconds (1 to 9).
func NewTimestampWithFraction(dateTime time.Time, kind TimezoneKind, digits uint8) Timestamp {
	if digits == 0 {
		return Timestamp{dateTime: dateTime, precision: TimestampPrecisionSecond, kind: kind}
	}
	if digits > maxFractionDigits {
		digits = maxFractionDigits
	}
	return Timestamp{
		dateTime:       dateTime,
		precision:      TimestampPrecisionFraction,
		kind:           kind,
		fractionDigits: digits,
	}
}

// DateTime returns the instant as a time.Time.
func (t Timestamp) DateTime() time.Time { return t.dateTime }

// Precision returns the finest component present.
func (t Timestamp) Precision() TimestampPrecision { return t.precision }

// Kind returns how the offset is known.
func (t Timestamp) Kind() TimezoneKind { return t.kind }

// FractionDigits returns the number of fractional-second digits.
func (t Timestamp) FractionDigits() uint8 { return t.fractionDigits }

// OffsetMinutes returns the offset from UTC in minutes and whether the
// offset is known.
func (t Timestamp) OffsetMinutes() (int, bool) {
	if t.precision < TimestampPrecisionMinute || t.kind == TimezoneUnspecified {
		return 0, false
	}
	if t.kind == TimezoneUTC {
		return 0, true
	}
	_, seconds := t.dateTime.Zone()
	return seconds / 60, true
}

// Equal reports whether both timestamps have the same instant,
// precision, offset, and fraction digits.
func (t Timestamp) Equal(other Timestamp) bool {
	if t.precision != other.precision || t.fractionDigits != other.fractionDigits {
		return false
	}
	offset, known := t.OffsetMinutes()
	otherOffset, otherKnown := other.OffsetMinutes()
	if known != otherKnown || offset != otherOffset {
		return false
	}
	return t.String() == other.String()
}

// String returns the Ion text form, for example 2007-02-23T12:14:33.079-08:00.
func (t Timestamp) String() string {
	dateTime := t.dateTime
	if t.kind == TimezoneUTC {
		dateTime = dateTime.UTC()
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%04d", dateTime.Year())
	if t.precision == TimestampPrecisionYear {
		builder.WriteString("T")
		return builder.String()
	}
	fmt.Fprintf(&builder, "-%02d", int(dateTime.Month()))
	if t.precision == TimestampPrecisionMonth {
		builder.WriteString("T")
		return builder.String()
	}
	fmt.Fprintf(&builder, "-%02d", dateTime.Day())
	if t.precision == TimestampPrecisionDay {
		return builder.String()
	}

	fmt.Fprintf(&builder, "T%02d:%02d", dateTime.Hour(), dateTime.Minute())
	if t.precision >= TimestampPrecisionSecond {
		fmt.Fprintf(&builder, ":%02d", dateTime.Second())
	}
	if t.precision == TimestampPrecisionFraction && t.fractionDigits > 0 {
		fraction := fmt.Sprintf("%09d", dateTime.Nanosecond())
		builder.WriteString(".")
		builder.WriteString(fraction[:t.fractionDigits])
	}

	offset, known := t.OffsetMinutes()
	switch {
	case !known:
		builder.WriteString("-00:00")
	case t.kind == TimezoneUTC:
		builder.WriteString("Z")
	default:
		sign := '+'
		if offset < 0 {
			sign = '-'
			offset = -offset
		}
		fmt.Fprintf(&builder, "%c%02d:%02d", sign, offset/60, offset%60)
	}
	return builder.String()
}
