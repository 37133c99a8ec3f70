// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// decodeJSON decodes a stream of JSON values. Comments and trailing
// commas (JSONC) are accepted. Object member order is preserved.
func decodeJSON(data []byte) ([]*ion.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var values []*ion.Value
	for {
		value, err := decodeJSONValue(decoder)
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, fmt.Errorf("JSON value %d: %w", len(values), err)
		}
		values = append(values, value)
	}
}

// decodeJSONValue reads one complete value from the token stream.
func decodeJSONValue(decoder *json.Decoder) (*ion.Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch token := token.(type) {
	case nil:
		return ion.Null(), nil
	case bool:
		return ion.Bool(token), nil
	case string:
		return ion.String(token), nil
	case json.Number:
		return jsonNumber(string(token))
	case json.Delim:
		switch token {
		case '[':
			var members []*ion.Value
			for decoder.More() {
				member, err := decodeJSONValue(decoder)
				if err != nil {
					return nil, fmt.Errorf("index %d: %w", len(members), unexpectedEOF(err))
				}
				members = append(members, member)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return ion.List(members...), nil
		case '{':
			var fields []*ion.Value
			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				key, _ := keyToken.(string)
				member, err := decodeJSONValue(decoder)
				if err != nil {
					return nil, fmt.Errorf("field %q: %w", key, unexpectedEOF(err))
				}
				fields = append(fields, ion.Field(key, member))
			}
			if _, err := decoder.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return ion.Struct(fields...), nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", token)
}

// unexpectedEOF turns an EOF inside a container into a syntax error so
// it is not mistaken for the end of the stream.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// jsonNumber maps a JSON number literal: integers to ints of any size,
// exponent forms to floats, and plain fractions to decimals, which
// keep their exact digits.
func jsonNumber(literal string) (*ion.Value, error) {
	switch {
	case strings.ContainsAny(literal, "eE"):
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, fmt.Errorf("number %s: %w", literal, err)
		}
		return ion.Float(f), nil
	case strings.Contains(literal, "."):
		return ion.ParseDecimal(literal)
	default:
		i, ok := new(big.Int).SetString(literal, 10)
		if !ok {
			return nil, fmt.Errorf("number %s: invalid integer", literal)
		}
		return ion.BigInt(i), nil
	}
}
