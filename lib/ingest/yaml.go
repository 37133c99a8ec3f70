// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/ionhash/lib/ion"
)

// sexpTag marks a YAML sequence as an Ion s-expression.
const sexpTag = "!sexp"

// decodeYAML decodes every document in a YAML stream.
func decodeYAML(data []byte) ([]*ion.Value, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var values []*ion.Value
	for {
		var document yaml.Node
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			return values, nil
		}
		if err != nil {
			return nil, fmt.Errorf("YAML document %d: %w", len(values), err)
		}
		value, err := yamlValue(&document)
		if err != nil {
			return nil, fmt.Errorf("YAML document %d: %w", len(values), err)
		}
		values = append(values, value)
	}
}

// yamlValue converts a node. Local tags other than !sexp become
// annotations on the converted value.
func yamlValue(node *yaml.Node) (*ion.Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return ion.Null(), nil
		}
		return yamlValue(node.Content[0])
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	}

	annotation, untagged := yamlAnnotation(node)
	resolved := untagged.ShortTag()
	var (
		value *ion.Value
		err   error
	)
	switch untagged.Kind {
	case yaml.MappingNode:
		value, err = yamlMapping(untagged)
	case yaml.SequenceNode:
		value, err = yamlSequence(untagged)
	case yaml.ScalarNode:
		value, err = yamlScalar(untagged, resolved)
	default:
		err = fmt.Errorf("%w: YAML node kind %d at line %d", ErrUnsupportedValue, node.Kind, node.Line)
	}
	if err != nil {
		return nil, err
	}
	if annotation != "" {
		value.Annotate(annotation)
	}
	return value, nil
}

// yamlAnnotation splits a local tag off node, returning it as an
// annotation along with an untagged copy of the node that resolves to
// its implicit type.
func yamlAnnotation(node *yaml.Node) (string, *yaml.Node) {
	tag := node.ShortTag()
	if !strings.HasPrefix(tag, "!") || strings.HasPrefix(tag, "!!") || tag == sexpTag {
		return "", node
	}
	untagged := *node
	untagged.Tag = ""
	return strings.TrimPrefix(tag, "!"), &untagged
}

func yamlMapping(node *yaml.Node) (*ion.Value, error) {
	fields := make([]*ion.Value, 0, len(node.Content)/2)
	for index := 0; index+1 < len(node.Content); index += 2 {
		key := node.Content[index]
		for key.Kind == yaml.AliasNode {
			key = key.Alias
		}
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: non-scalar mapping key at line %d", ErrUnsupportedValue, key.Line)
		}
		value, err := yamlValue(node.Content[index+1])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key.Value, err)
		}
		fields = append(fields, ion.Field(key.Value, value))
	}
	return ion.Struct(fields...), nil
}

func yamlSequence(node *yaml.Node) (*ion.Value, error) {
	members := make([]*ion.Value, 0, len(node.Content))
	for index, child := range node.Content {
		member, err := yamlValue(child)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", index, err)
		}
		members = append(members, member)
	}
	if node.Tag == sexpTag {
		return ion.Sexp(members...), nil
	}
	return ion.List(members...), nil
}

func yamlScalar(node *yaml.Node, tag string) (*ion.Value, error) {
	switch tag {
	case "!!null":
		return ion.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return ion.Bool(b), nil
	case "!!int":
		i, ok := new(big.Int).SetString(node.Value, 0)
		if !ok {
			return nil, fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
		}
		return ion.BigInt(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return ion.Float(f), nil
	case "!!timestamp":
		return yamlTimestamp(node)
	case "!!binary":
		cleaned := strings.Join(strings.Fields(node.Value), "")
		decoded, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			return nil, fmt.Errorf("line %d: binary: %w", node.Line, err)
		}
		return ion.Blob(decoded), nil
	default:
		// !!str, and anything unrecognized, keep their text.
		return ion.String(node.Value), nil
	}
}

// yamlTimestamp keeps the precision the timestamp was written with.
// A date alone is day precision; a time without a zone has an unknown
// offset.
func yamlTimestamp(node *yaml.Node) (*ion.Value, error) {
	var dateTime time.Time
	if err := node.Decode(&dateTime); err != nil {
		return nil, err
	}
	text := strings.TrimSpace(node.Value)
	if len(text) == len("2006-01-02") {
		return ion.TimestampValue(ion.NewDateTimestamp(dateTime, ion.TimestampPrecisionDay)), nil
	}

	kind := offsetKind(dateTime)
	if !hasZone(text) {
		kind = ion.TimezoneUnspecified
	}
	return ion.TimestampValue(ion.NewTimestampWithFraction(dateTime, kind, writtenFractionDigits(text))), nil
}

// hasZone reports whether a YAML timestamp's time part ends in Z or a
// numeric offset.
func hasZone(text string) bool {
	timePart := text[len("2006-01-02"):]
	return strings.ContainsAny(timePart, "Zz+-")
}

// writtenFractionDigits counts the fractional-second digits in a
// timestamp's text.
func writtenFractionDigits(text string) uint8 {
	_, fraction, found := strings.Cut(text, ".")
	if !found {
		return 0
	}
	digits := uint8(0)
	for _, r := range fraction {
		if r < '0' || r > '9' {
			break
		}
		digits++
	}
	return digits
}
