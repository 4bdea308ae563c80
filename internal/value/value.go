package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a sealed interface representing the types a query parameter can
// hold. Only Null, Bool, Int, Float, String, and Array implement it.
// Arrays are used exclusively as IN/NOT IN/BETWEEN operands.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents SQL NULL.
// Using an explicit type ensures all Values satisfy the sealed interface.
type Null struct{}

func (Null) value() {}

// Bool represents a boolean parameter.
type Bool bool

func (Bool) value() {}

// Int represents a 64-bit signed integer parameter.
type Int int64

func (Int) value() {}

// Float represents a 64-bit floating point parameter.
type Float float64

func (Float) value() {}

// String represents a text parameter.
type String string

func (String) value() {}

// Array represents an ordered list of Values.
// Only meaningful as the operand of In, NotIn, or Between.
type Array []Value

func (Array) value() {}

// NewBool creates a Bool value.
func NewBool(b bool) Bool {
	return Bool(b)
}

// NewInt creates an Int value.
func NewInt(n int64) Int {
	return Int(n)
}

// NewFloat creates a Float value.
func NewFloat(f float64) Float {
	return Float(f)
}

// NewString creates a String value.
func NewString(s string) String {
	return String(s)
}

// NewArray creates an Array from values.
func NewArray(vals ...Value) Array {
	return Array(vals)
}

// Strings creates an Array of String values.
// Convenience for the common IN-list case.
func Strings(ss ...string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}

// Ints creates an Array of Int values.
func Ints(ns ...int64) Array {
	arr := make(Array, len(ns))
	for i, n := range ns {
		arr[i] = Int(n)
	}
	return arr
}

// Equal reports whether two Values are structurally equal.
// Int and Float never compare equal to each other even when numerically
// identical.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// GoString returns a readable representation for diagnostics and CLI output.
func GoString(v Value) string {
	switch val := v.(type) {
	case Null:
		return "null"
	case Bool:
		if val {
			return "true"
		}
		return "false"
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case String:
		return strconv.Quote(string(val))
	case Array:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = GoString(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("unknown(%T)", v)
	}
}

// Driver converts a Value to the native Go type expected by database/sql
// drivers. Arrays convert element-wise to []any; dialect-specific wrapping
// (e.g. array-typed parameters) is handled by the dialect package.
func Driver(v Value) any {
	switch val := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Array:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Driver(elem)
		}
		return out
	default:
		return nil
	}
}
