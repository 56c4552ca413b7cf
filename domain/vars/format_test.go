package vars

import (
	"testing"
	"time"

	"clauseforge/domain/core"
)

func TestFormat_AllKinds(t *testing.T) {
	cases := []struct {
		name  string
		value core.Value
		want  string
	}{
		{"bool true", core.BoolValue(true), "Yes"},
		{"bool false", core.BoolValue(false), "No"},
		{"whole number grouped", core.NumberValue(1234567), "1,234,567"},
		{"fraction", core.NumberValue(1234.5), "1,234.50"},
		{"string", core.StringValue("as-is"), "as-is"},
		{"date", core.DateValue(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)), "June 1, 2025"},
		{"missing", core.Missing(), ""},
		{"array", core.ArrayValue([]core.Value{core.StringValue("a"), core.NumberValue(2)}), "a, 2"},
	}

	for _, tc := range cases {
		if got := Format(tc.value); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFromAny_RoundTrip(t *testing.T) {
	bag := core.NewDataBag(map[string]interface{}{
		"S": "text",
		"N": float64(42),
		"B": true,
		"A": []interface{}{"x", float64(1)},
		"Z": nil,
	})

	if bag.Lookup("S").Kind() != core.KindString {
		t.Errorf("expected string kind for S")
	}
	if bag.Lookup("N").Kind() != core.KindNumber {
		t.Errorf("expected number kind for N")
	}
	if bag.Lookup("B").Kind() != core.KindBool {
		t.Errorf("expected bool kind for B")
	}
	if bag.Lookup("A").Kind() != core.KindArray {
		t.Errorf("expected array kind for A")
	}
	if !bag.Lookup("Z").IsMissing() {
		t.Errorf("nil must map to the missing variant")
	}
	if !bag.Lookup("ABSENT").IsMissing() {
		t.Errorf("absent key must map to the missing variant")
	}
}
