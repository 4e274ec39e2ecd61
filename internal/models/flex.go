package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// The content API is not consistent about scalar encodings: counts arrive as
// numbers or numeric strings, lists as arrays or comma-separated strings.
// The Flex types accept every shape seen on the wire.

// FlexInt decodes a JSON number or numeric string into an int. Fractional
// values are rounded.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	f, err := parseFlexNumber(data)
	if err != nil {
		return err
	}
	*n = FlexInt(math.Round(f))
	return nil
}

// Ptr returns a *int copy, or nil for a nil receiver.
func (n *FlexInt) Ptr() *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

// Or returns the value or def when n is nil.
func (n *FlexInt) Or(def int) int {
	if n == nil {
		return def
	}
	return int(*n)
}

// FlexFloat decodes a JSON number or numeric string into a float64.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, err := parseFlexNumber(data)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

func (f *FlexFloat) Ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

func parseFlexNumber(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse number %q: %w", s, err)
		}
		return v, nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// FlexStrings decodes an array of strings or a single comma-separated
// string. null decodes to an empty list.
type FlexStrings []string

func (l *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		out := []string{}
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		*l = out
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*l = arr
	return nil
}

// Slice returns the list as a non-nil []string.
func (l FlexStrings) Slice() []string {
	if l == nil {
		return []string{}
	}
	return append([]string(nil), l...)
}
