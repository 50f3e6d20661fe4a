package kernel

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which member of the Value union is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDateTime
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// Value is the operand type of conditions: a tagged union of String, Number, Bool,
// DateTime and List. Comparisons are loose: numeric strings compare as numbers and
// date strings compare as instants when the other side is a DateTime.
//
// Values are immutable. The zero value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
	list []Value
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func DateTime(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// ValueOf converts a decoded JSON value or a plain Go scalar into a Value.
// Unsupported types are rendered through fmt as strings.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return String(x.String())
	case time.Time:
		return DateTime(x)
	case []string:
		items := make([]Value, 0, len(x))
		for _, s := range x {
			items = append(items, String(s))
		}
		return List(items...)
	case []any:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			items = append(items, ValueOf(item))
		}
		return List(items...)
	default:
		return String(fmt.Sprint(x))
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// String renders the value the way string operators (contains, starts_with, ...) see it.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDateTime:
		return v.t.Format(time.RFC3339)
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.String())
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// Number returns the numeric reading of v. Numeric strings are accepted,
// surrounding whitespace ignored.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Time returns the instant held by v. Strings in RFC 3339 or YYYY-MM-DD
// (optionally with a space-separated HH:MM:SS) form are accepted.
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDateTime:
		return v.t, true
	case KindString:
		s := strings.TrimSpace(v.str)
		for _, layout := range []string{time.RFC3339Nano, time.DateTime, time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Truthy follows loose boolean conversion: null, false, 0, "", "0" and empty lists are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != "" && v.str != "0"
	case KindDateTime:
		return !v.t.IsZero()
	case KindList:
		return len(v.list) > 0
	default:
		return false
	}
}

// Items returns the members of v seen as a set operand: list items, or the
// trimmed parts of a comma-separated string, or v itself.
func (v Value) Items() []Value {
	switch v.kind {
	case KindList:
		cp := make([]Value, len(v.list))
		copy(cp, v.list)
		return cp
	case KindString:
		if v.str == "" {
			return nil
		}
		parts := strings.Split(v.str, ",")
		items := make([]Value, 0, len(parts))
		for _, p := range parts {
			items = append(items, String(strings.TrimSpace(p)))
		}
		return items
	case KindNull:
		return nil
	default:
		return []Value{v}
	}
}

// LooseEquals compares with numeric coercion: two numeric readings compare as numbers,
// a bool on either side compares truthiness, a DateTime compares as an instant,
// anything else compares as strings.
func (v Value) LooseEquals(other Value) bool {
	if v.kind == KindBool || other.kind == KindBool {
		return v.Truthy() == other.Truthy()
	}
	if v.kind == KindDateTime || other.kind == KindDateTime {
		a, okA := v.Time()
		b, okB := other.Time()
		if okA && okB {
			return a.Equal(b)
		}
	}
	if a, ok := v.Number(); ok {
		if b, okB := other.Number(); okB {
			return a == b
		}
	}
	return v.String() == other.String()
}

// Compare orders v against other and returns -1, 0 or 1. Numeric readings compare
// numerically, DateTime against a parseable date compares chronologically, anything
// else falls back to lexicographic string order.
func (v Value) Compare(other Value) int {
	if v.kind == KindDateTime || other.kind == KindDateTime {
		a, okA := v.Time()
		b, okB := other.Time()
		if okA && okB {
			return a.Compare(b)
		}
	}
	if a, ok := v.Number(); ok {
		if b, okB := other.Number(); okB {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(v.String(), other.String())
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindDateTime:
		return json.Marshal(v.t.Format(time.RFC3339Nano))
	case KindList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}
