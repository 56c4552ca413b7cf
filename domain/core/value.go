package core

import (
	"fmt"
	"time"
)

// ValueKind discriminates the variants a project data value can take
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindDate
	KindArray
)

// Value is a tagged variant for a single project data entry. Project data
// arrives as loosely typed key/value pairs; wrapping each entry in a Value
// keeps condition evaluation and display formatting total over the kinds
// instead of scattering type switches.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	t    time.Time
	arr  []Value
}

// Missing returns the absent-value variant
func Missing() Value { return Value{kind: KindMissing} }

// BoolValue wraps a boolean
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue wraps a number
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }

// StringValue wraps a string
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// DateValue wraps a timestamp
func DateValue(t time.Time) Value { return Value{kind: KindDate, t: t} }

// ArrayValue wraps a list of values
func ArrayValue(vs []Value) Value { return Value{kind: KindArray, arr: vs} }

// FromAny converts a dynamically typed value (e.g. decoded JSON) into a Value
func FromAny(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Missing()
	case bool:
		return BoolValue(x)
	case float64:
		return NumberValue(x)
	case float32:
		return NumberValue(float64(x))
	case int:
		return NumberValue(float64(x))
	case int64:
		return NumberValue(float64(x))
	case string:
		return StringValue(x)
	case time.Time:
		return DateValue(x)
	case []interface{}:
		arr := make([]Value, 0, len(x))
		for _, item := range x {
			arr = append(arr, FromAny(item))
		}
		return ArrayValue(arr)
	case Value:
		return x
	default:
		return StringValue(fmt.Sprintf("%v", x))
	}
}

// Kind returns the variant tag
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing checks for the absent variant
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Bool returns the boolean payload (zero value for other kinds)
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload (zero value for other kinds)
func (v Value) Number() float64 { return v.n }

// Str returns the string payload (zero value for other kinds)
func (v Value) Str() string { return v.s }

// Date returns the timestamp payload (zero value for other kinds)
func (v Value) Date() time.Time { return v.t }

// Array returns the list payload (nil for other kinds)
func (v Value) Array() []Value { return v.arr }

// ConditionKey returns the exact-match key this value presents to the
// conditional rule table. Only string values participate in rule matching;
// booleans and numbers must be turned into explicit string flags by the
// derived-flag step before they can select clauses.
func (v Value) ConditionKey() (string, bool) {
	if v.kind == KindString {
		return v.s, true
	}
	return "", false
}

// DataBag is one project's answers: a flat key to value map. The engine
// assumes no fixed schema, only key lookup.
type DataBag map[string]Value

// NewDataBag builds a bag from dynamically typed entries
func NewDataBag(raw map[string]interface{}) DataBag {
	bag := make(DataBag, len(raw))
	for k, v := range raw {
		bag[k] = FromAny(v)
	}
	return bag
}

// Lookup returns the value for key, or the missing variant
func (b DataBag) Lookup(key string) Value {
	if v, ok := b[key]; ok {
		return v
	}
	return Missing()
}

// Merge returns a copy of the bag with entries from other overlaid
func (b DataBag) Merge(other DataBag) DataBag {
	out := make(DataBag, len(b)+len(other))
	for k, v := range b {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
