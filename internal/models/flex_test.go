package models

import (
	"encoding/json"
	"testing"
)

// TestFlexIntShapes verifies numbers, numeric strings, floats and empty strings.
func TestFlexIntShapes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`12`, 12},
		{`"12"`, 12},
		{`12.6`, 13},
		{`" 7 "`, 7},
		{`""`, 0},
	}
	for _, tc := range cases {
		var n FlexInt
		if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
			t.Errorf("%s: unexpected error %v", tc.in, err)
			continue
		}
		if int(n) != tc.want {
			t.Errorf("%s: got %d, want %d", tc.in, n, tc.want)
		}
	}

	var n FlexInt
	if err := json.Unmarshal([]byte(`"ten"`), &n); err == nil {
		t.Error("expected error for non-numeric string")
	}
}

// TestFlexStringsShapes verifies arrays, comma strings and null.
func TestFlexStringsShapes(t *testing.T) {
	var l FlexStrings
	if err := json.Unmarshal([]byte(`["Abs","Chest"]`), &l); err != nil || len(l) != 2 {
		t.Fatalf("array: %v %v", l, err)
	}
	if err := json.Unmarshal([]byte(`"Abs, Chest,,Lower Back"`), &l); err != nil {
		t.Fatal(err)
	}
	if len(l) != 3 || l[2] != "Lower Back" {
		t.Errorf("comma string: %v", l)
	}
	if err := json.Unmarshal([]byte(`null`), &l); err != nil || l != nil {
		t.Errorf("null: %v %v", l, err)
	}
	if got := l.Slice(); got == nil {
		t.Error("Slice of nil must be non-nil")
	}
}

// TestBodyParts verifies parsing and the comma-joined query form.
func TestBodyParts(t *testing.T) {
	bp, ok := ParseBodyPart("lower back")
	if !ok || bp != LowerBack {
		t.Errorf("ParseBodyPart = %q, %v", bp, ok)
	}
	if _, ok := ParseBodyPart("tail"); ok {
		t.Error("unknown body part must not parse")
	}
	if got := JoinBodyParts([]BodyPart{Abs, FullBody}); got != "Abs,Full Body" {
		t.Errorf("JoinBodyParts = %q", got)
	}
}
