// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// FlagBinder is implemented by flag groups that register their own
// flags, such as the hash and input settings shared by every command
// that reads data. [BindFlags] calls AddFlags for any struct field whose
// address implements it.
type FlagBinder interface {
	AddFlags(flagSet *pflag.FlagSet)
}

// FlagsFromParams returns a [pflag.FlagSet] named name with flags bound
// to the tagged fields of params, a pointer to a struct. A params type
// that cannot be bound is a programming error, so this panics.
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers a flag on flagSet for each tagged field of params.
//
// A field is bound when it has a flag:"name" or flag:"name,n" tag; desc
// gives the help text and default the initial value. Only string, bool
// and int fields are supported. Struct fields implementing [FlagBinder]
// bind themselves; other embedded structs are walked recursively.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Pointer || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStruct(value.Elem(), flagSet)
}

func bindStruct(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()
	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Type.Kind() == reflect.Struct {
			// Interface() needs an exported field.
			if field.IsExported() && fieldValue.CanAddr() {
				if binder, ok := fieldValue.Addr().Interface().(FlagBinder); ok {
					binder.AddFlags(flagSet)
					continue
				}
			}
			if field.Anonymous {
				if err := bindStruct(fieldValue, flagSet); err != nil {
					return fmt.Errorf("embedded %s: %w", field.Name, err)
				}
				continue
			}
		}

		tag := field.Tag.Get("flag")
		if tag == "" {
			continue
		}
		if !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not addressable", field.Name)
		}
		name, shorthand, _ := strings.Cut(tag, ",")
		if err := bindField(fieldValue, flagSet, name, shorthand, field.Tag.Get("desc"), field.Tag.Get("default")); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func bindField(fieldValue reflect.Value, flagSet *pflag.FlagSet, name, shorthand, description, defaultText string) error {
	switch target := fieldValue.Addr().Interface().(type) {
	case *string:
		flagSet.StringVarP(target, name, shorthand, defaultText, description)
	case *bool:
		initial := false
		if defaultText != "" {
			parsed, err := strconv.ParseBool(defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", name, err)
			}
			initial = parsed
		}
		flagSet.BoolVarP(target, name, shorthand, initial, description)
	case *int:
		initial := 0
		if defaultText != "" {
			parsed, err := strconv.Atoi(defaultText)
			if err != nil {
				return fmt.Errorf("default for --%s: %w", name, err)
			}
			initial = parsed
		}
		flagSet.IntVarP(target, name, shorthand, initial, description)
	default:
		return fmt.Errorf("unsupported type %s for flag --%s", fieldValue.Type(), name)
	}
	return nil
}
