package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type valueKind int

const (
	nullValue valueKind = iota
	numberValue
	stringValue
)

// Value is a single attribute value: null, a number or a string.
// The zero Value is null. Values are comparable with == and carry a total
// order (null < number < string) so that states and actions built from them
// hash and sort deterministically.
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// Null is the absent value, used for example by empty memory slots.
var Null = Value{}

func String(s string) Value {
	return Value{kind: stringValue, str: s}
}

func Number(f float64) Value {
	return Value{kind: numberValue, num: f}
}

func Int(i int) Value {
	return Number(float64(i))
}

func (v Value) IsNull() bool {
	return v.kind == nullValue
}

// Number returns the numeric value, false if the value is not a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == numberValue
}

// Text returns the string value, false if the value is not a string.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == stringValue
}

// Key is the canonical encoding of the value, used for state and feature
// hashing and for serialized weight snapshots. Strings are quoted so that
// "1" and 1 encode differently.
func (v Value) Key() string {
	switch v.kind {
	case numberValue:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case stringValue:
		return strconv.Quote(v.str)
	default:
		return "null"
	}
}

// ParseValue decodes a canonical Key back into a Value.
func ParseValue(key string) (Value, error) {
	if key == "null" {
		return Null, nil
	}
	if len(key) > 0 && key[0] == '"' {
		s, err := strconv.Unquote(key)
		if err != nil {
			return Null, fmt.Errorf("malformed value key %q: %w", key, err)
		}
		return String(s), nil
	}
	f, err := strconv.ParseFloat(key, 64)
	if err != nil {
		return Null, fmt.Errorf("malformed value key %q: %w", key, err)
	}
	return Number(f), nil
}

// Compare orders null < number < string, numbers by magnitude and strings
// lexicographically. Returns -1, 0 or 1.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}
	switch v.kind {
	case numberValue:
		switch {
		case v.num < other.num:
			return -1
		case v.num > other.num:
			return 1
		}
	case stringValue:
		switch {
		case v.str < other.str:
			return -1
		case v.str > other.str:
			return 1
		}
	}
	return 0
}

func (v Value) String() string {
	return v.Key()
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case numberValue:
		return json.Marshal(v.num)
	case stringValue:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = Null
	case float64:
		*v = Number(x)
	case string:
		*v = String(x)
	default:
		return fmt.Errorf("unsupported value type %T", raw)
	}
	return nil
}
