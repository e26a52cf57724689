package vm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Runtime values
// ---------------------------------------------------------------------------

// Type is the runtime tag of a Value.
type Type uint8

const (
	TypeNone Type = iota
	TypeNumber
	TypeString
	TypeBoolean
	TypeFunction
)

var typeNames = [...]string{
	TypeNone:     "none",
	TypeNumber:   "number",
	TypeString:   "string",
	TypeBoolean:  "boolean",
	TypeFunction: "function",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

// NativeFunc is the Go routine behind a built-in function.
type NativeFunc func(args []Value) (Value, error)

// Function is a named native routine.
type Function struct {
	Name string
	Doc  string // one-line description for tooling
	Call NativeFunc
}

// Value is an immutable operand. It is a small struct passed by value; only
// the field matching Type is meaningful.
type Value struct {
	typ Type
	num float64
	str string
	b   bool
	fn  *Function
}

// None is the value of routines with nothing to return.
var None = Value{typ: TypeNone}

// NumberValue returns a number operand.
func NumberValue(f float64) Value { return Value{typ: TypeNumber, num: f} }

// StringValue returns a string operand.
func StringValue(s string) Value { return Value{typ: TypeString, str: s} }

// BoolValue returns a boolean operand.
func BoolValue(b bool) Value { return Value{typ: TypeBoolean, b: b} }

// FunctionValue returns a function operand wrapping fn.
func FunctionValue(fn *Function) Value { return Value{typ: TypeFunction, fn: fn} }

func (v Value) Type() Type { return v.typ }
func (v Value) IsNone() bool { return v.typ == TypeNone }
func (v Value) Number() float64 { return v.num }
func (v Value) Str() string { return v.str }
func (v Value) Bool() bool { return v.b }
func (v Value) Function() *Function { return v.fn }

// String renders v the way print does: numbers and booleans as literal text,
// strings raw, functions as <function NAME>.
func (v Value) String() string {
	switch v.typ {
	case TypeNumber:
		return FormatNumber(v.num)
	case TypeString:
		return v.str
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeFunction:
		if v.fn == nil {
			return "<function>"
		}
		return "<function " + v.fn.Name + ">"
	default:
		return "none"
	}
}

// Repr renders v for listings, quoting strings.
func (v Value) Repr() string {
	if v.typ == TypeString {
		return strconv.Quote(v.str)
	}
	return v.String()
}

// FormatNumber renders f as the shortest decimal that round-trips. Integral
// values print without a fractional part; very large and very small
// magnitudes switch to exponent form.
func FormatNumber(f float64) string {
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
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads exponents to two digits
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Render joins the printed forms of values with single spaces.
func Render(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
