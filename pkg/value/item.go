/*
Package value implements dynamically typed values and the resizable
heterogeneous Array built on top of them.

Every value is an Item: Number, String, Bool, Undefined (the "missing"
marker), Null (the "absent" marker) or *Array. Arrays are reference values,
everything else is compared by value.
*/
package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Item represents a single value stored in an Array or passed to its
// operations.
type Item interface {
	// String returns the textual form of the Item, the one produced by string
	// coercion.
	fmt.Stringer
	// Value returns the underlying Go value.
	Value() any
	// Dup duplicates current Item. Reference types return themselves.
	Dup() Item
	// TryBool converts Item to a boolean value using truthiness rules.
	TryBool() bool
	// TryNumber converts Item to a number, NaN is returned for values
	// that have no numeric representation.
	TryNumber() float64
	// Equals checks if 2 Items are strictly equal.
	Equals(s Item) bool
	// Type returns Item type.
	Type() Type
}

var (
	// ErrInvalidConversion is returned upon an attempt to make an incorrect
	// conversion between value types.
	ErrInvalidConversion = errors.New("invalid conversion")
	// ErrFrozen is returned on attempt to modify a frozen Array.
	ErrFrozen = errors.New("array is frozen")
	// ErrEmptyReduce is returned when reducing an empty Array without an
	// initial value.
	ErrEmptyReduce = errors.New("reduce of empty array with no initial value")
	// ErrTooBig is returned when an Array or a String would grow beyond
	// MaxLength.
	ErrTooBig = errors.New("length limit exceeded")
	// ErrInvalidLength is returned for negative lengths and counts.
	ErrInvalidLength = errors.New("invalid length")
)

// Make tries to make an appropriate Item from the provided value.
// It will panic if it's not possible.
func Make(v any) Item {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Item:
		return val
	case int:
		return Number(val)
	case int64:
		return Number(val)
	case float64:
		return Number(val)
	case float32:
		return Number(val)
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case []Item:
		return NewArray(val)
	case []int:
		return makeArray(val)
	case []float64:
		return makeArray(val)
	case []string:
		return makeArray(val)
	case []any:
		return makeArray(val)
	default:
		f64T := reflect.TypeOf(float64(0))
		if reflect.TypeOf(val).ConvertibleTo(f64T) {
			return Number(reflect.ValueOf(val).Convert(f64T).Float())
		}
		panic(
			fmt.Sprintf(
				"invalid value type: %v (%v)",
				val,
				reflect.TypeOf(val),
			),
		)
	}
}

func makeArray[T any](vals []T) *Array {
	res := make([]Item, len(vals))
	for i := range vals {
		res[i] = Make(vals[i])
	}
	return NewArray(res)
}

// StrictEquals compares two items the way `===` does: NaN is not equal to
// anything, +0 and -0 are equal and arrays are compared by reference.
func StrictEquals(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// SameValueZero is like StrictEquals, but treats NaN as equal to NaN. It is
// the comparison used for membership tests.
func SameValueZero(a, b Item) bool {
	if x, ok := a.(Number); ok {
		if y, ok := b.(Number); ok && x.IsNaN() && y.IsNaN() {
			return true
		}
	}
	return StrictEquals(a, b)
}

// ToNumber converts an Item to a float64.
func ToNumber(item Item) float64 {
	if item == nil {
		return math.NaN()
	}
	return item.TryNumber()
}

// Number represents a numeric value, always a double.
type Number float64

// NewNumber returns a new Number object.
func NewNumber(f float64) Number {
	return Number(f)
}

// NaN returns a Number holding NaN.
func NaN() Number {
	return Number(math.NaN())
}

// Value implements the Item interface.
func (i Number) Value() any {
	return float64(i)
}

// String implements the Item interface.
func (i Number) String() string {
	return formatNumber(float64(i))
}

// Dup implements the Item interface.
func (i Number) Dup() Item {
	return i
}

// TryBool implements the Item interface.
func (i Number) TryBool() bool {
	return i != 0 && !i.IsNaN()
}

// TryNumber implements the Item interface.
func (i Number) TryNumber() float64 {
	return float64(i)
}

// Equals implements the Item interface.
func (i Number) Equals(s Item) bool {
	val, ok := s.(Number)
	return ok && i == val
}

// Type implements the Item interface.
func (i Number) Type() Type { return NumberT }

// IsNaN checks whether the Number is NaN.
func (i Number) IsNaN() bool {
	return math.IsNaN(float64(i))
}

// formatNumber renders f the way number-to-string conversion does: integers
// have no fraction part, exponential form is used outside of [1e-6, 1e21).
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e21 && abs >= 1e-6 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// String represents a string value.
type String string

// NewString returns a new String object.
func NewString(s string) String {
	return String(s)
}

// Value implements the Item interface.
func (i String) Value() any {
	return string(i)
}

// String implements the Item interface.
func (i String) String() string {
	return string(i)
}

// Dup implements the Item interface.
func (i String) Dup() Item {
	return i
}

// TryBool implements the Item interface.
func (i String) TryBool() bool {
	return len(i) != 0
}

// TryNumber implements the Item interface.
func (i String) TryNumber() float64 {
	return parseNumber(string(i))
}

// Equals implements the Item interface.
func (i String) Equals(s Item) bool {
	val, ok := s.(String)
	return ok && i == val
}

// Type implements the Item interface.
func (i String) Type() Type { return StringT }

// Len returns the number of code points in the String value.
func (i String) Len() int {
	return utf8.RuneCountInString(string(i))
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		var base int
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(u)
		}
	}
	// ParseFloat accepts "inf", "nan" and underscores which are not valid
	// numeric literals here.
	if strings.ContainsAny(strings.ToLower(s), "_in") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Bool represents a boolean Item.
type Bool bool

// NewBool returns a new Bool object.
func NewBool(val bool) Bool {
	return Bool(val)
}

// Value implements the Item interface.
func (i Bool) Value() any {
	return bool(i)
}

// String implements the Item interface.
func (i Bool) String() string {
	return strconv.FormatBool(bool(i))
}

// Dup implements the Item interface.
func (i Bool) Dup() Item {
	return i
}

// TryBool implements the Item interface.
func (i Bool) TryBool() bool { return bool(i) }

// TryNumber implements the Item interface.
func (i Bool) TryNumber() float64 {
	if i {
		return 1
	}
	return 0
}

// Equals implements the Item interface.
func (i Bool) Equals(s Item) bool {
	val, ok := s.(Bool)
	return ok && i == val
}

// Type implements the Item interface.
func (i Bool) Type() Type { return BooleanT }

// Undefined represents a declared, but not assigned value.
type Undefined struct{}

// Value implements the Item interface.
func (i Undefined) Value() any {
	return nil
}

// String implements the Item interface.
func (i Undefined) String() string {
	return "undefined"
}

// Dup implements the Item interface.
// There is no need to perform a real copy here
// since Undefined has no internal state.
func (i Undefined) Dup() Item {
	return i
}

// TryBool implements the Item interface.
func (i Undefined) TryBool() bool { return false }

// TryNumber implements the Item interface.
func (i Undefined) TryNumber() float64 { return math.NaN() }

// Equals implements the Item interface.
func (i Undefined) Equals(s Item) bool {
	_, ok := s.(Undefined)
	return ok
}

// Type implements the Item interface.
func (i Undefined) Type() Type { return UndefinedT }

// Null represents an explicitly empty value.
type Null struct{}

// Value implements the Item interface.
func (i Null) Value() any {
	return nil
}

// String implements the Item interface.
func (i Null) String() string {
	return "null"
}

// Dup implements the Item interface.
func (i Null) Dup() Item {
	return i
}

// TryBool implements the Item interface.
func (i Null) TryBool() bool { return false }

// TryNumber implements the Item interface.
func (i Null) TryNumber() float64 { return 0 }

// Equals implements the Item interface.
func (i Null) Equals(s Item) bool {
	_, ok := s.(Null)
	return ok
}

// Type implements the Item interface.
func (i Null) Type() Type { return NullT }

// IsNullish checks whether the item is Undefined or Null.
func IsNullish(item Item) bool {
	switch item.(type) {
	case nil, Undefined, Null:
		return true
	default:
		return false
	}
}
