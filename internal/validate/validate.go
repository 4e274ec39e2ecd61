// Package validate rejects caller-supplied strings that could break out of a
// script-injection context or a URL path segment.
package validate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// ErrDisallowed is matched by every validation failure.
var ErrDisallowed = errors.New("contains disallowed characters")

// disallowedChars is the full character class; there is no escaping mode.
const disallowedChars = `<>{}()[];"'$.#`

var scriptTags = []string{"<script>", "</script>"}

// Error reports which field failed validation. The offending value is kept
// out of the message so it never reaches logs.
type Error struct {
	Field string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validate: %s %s", e.Field, ErrDisallowed)
}

func (e *Error) Is(target error) bool {
	return target == ErrDisallowed
}

// IsDisallowed reports whether s contains a script tag or any character from
// the disallowed class. Tag matching is case-sensitive.
func IsDisallowed(s string) bool {
	for _, tag := range scriptTags {
		if strings.Contains(s, tag) {
			return true
		}
	}
	return strings.ContainsAny(s, disallowedChars)
}

// Field returns a *Error naming field when value is disallowed.
func Field(field, value string) error {
	if IsDisallowed(value) {
		return &Error{Field: field}
	}
	return nil
}

// Fields checks name/value pairs in order and returns the first failure.
// Pairs are passed flat: Fields("api key", key, "company", company).
func Fields(pairs ...string) error {
	if len(pairs)%2 != 0 {
		panic("validate.Fields: odd number of arguments")
	}
	for i := 0; i < len(pairs); i += 2 {
		if err := Field(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// Value validates a free-form payload value by kind. Strings, including named
// string types, are checked for disallowed characters; slices and arrays are
// checked element by element. Booleans, integers and finite floats pass.
// Pointers are followed and nil passes. Maps, structs, funcs, channels and
// non-finite floats are rejected.
func Value(field string, v any) error {
	if v == nil {
		return nil
	}
	return value(field, reflect.ValueOf(v))
}

func value(field string, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		return Field(field, rv.String())
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return nil
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return &Error{Field: field}
		}
		return nil
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := value(field, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return value(field, rv.Elem())
	default:
		return &Error{Field: field}
	}
}
