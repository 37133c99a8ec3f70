// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// decodeTOML decodes a TOML document into a single struct.
func decodeTOML(data []byte) ([]*ion.Value, error) {
	var document map[string]any
	if _, err := toml.Decode(string(data), &document); err != nil {
		return nil, err
	}
	value, err := tomlValue(document)
	if err != nil {
		return nil, err
	}
	return []*ion.Value{value}, nil
}

func tomlValue(item any) (*ion.Value, error) {
	switch v := item.(type) {
	case bool:
		return ion.Bool(v), nil
	case int64:
		return ion.Int(v), nil
	case float64:
		return ion.Float(v), nil
	case string:
		return ion.String(v), nil
	case time.Time:
		return tomlTime(v), nil
	case []any:
		return listFrom(v, tomlValue)
	case []map[string]any:
		return listFrom(v, func(table map[string]any) (*ion.Value, error) {
			return tomlValue(table)
		})
	case map[string]any:
		fields, err := fieldsFromMap(v, tomlValue)
		if err != nil {
			return nil, err
		}
		return ion.Struct(fields...), nil
	default:
		return nil, fmt.Errorf("%w: TOML value of type %T", ErrUnsupportedValue, item)
	}
}

// tomlTime maps the four TOML date-time kinds. A local time of day
// has no Ion counterpart and becomes a string annotated "time".
func tomlTime(t time.Time) *ion.Value {
	switch t.Location() {
	case toml.LocalDate:
		return ion.TimestampValue(ion.NewDateTimestamp(t, ion.TimestampPrecisionDay))
	case toml.LocalDatetime:
		return ion.TimestampValue(timestampFromTime(t, ion.TimezoneUnspecified))
	case toml.LocalTime:
		return ion.String(t.Format("15:04:05.999999999")).Annotate("time")
	default:
		return ion.TimestampValue(timestampFromTime(t, offsetKind(t)))
	}
}
