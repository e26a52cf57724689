package vm

import (
	"math"

	"github.com/chazu/potato/diag"
)

// binaryOp applies op to left and right. Both operands must have the same
// runtime type; mixing types is a type error rather than false.
func binaryOp(op Operator, left, right Value) (Value, error) {
	switch {
	case left.typ == TypeNumber && right.typ == TypeNumber:
		if v, ok := numberOp(op, left.num, right.num); ok {
			return v, nil
		}
	case left.typ == TypeString && right.typ == TypeString:
		switch op {
		case Add:
			return StringValue(left.str + right.str), nil
		case Equal:
			return BoolValue(left.str == right.str), nil
		case NotEqual:
			return BoolValue(left.str != right.str), nil
		}
	case left.typ == TypeBoolean && right.typ == TypeBoolean:
		switch op {
		case Equal:
			return BoolValue(left.b == right.b), nil
		case NotEqual:
			return BoolValue(left.b != right.b), nil
		}
	}
	return None, diag.Errorf(diag.KindType, ErrUnsupportedOperation,
		"unsupported operation %s between %s and %s", op, left.typ, right.typ)
}

func numberOp(op Operator, a, b float64) (Value, bool) {
	switch op {
	case Add:
		return NumberValue(a + b), true
	case Subtract:
		return NumberValue(a - b), true
	case Multiply:
		return NumberValue(a * b), true
	case Divide:
		return NumberValue(a / b), true
	case Modulo:
		return NumberValue(math.Mod(a, b)), true
	case Power:
		return NumberValue(math.Pow(a, b)), true
	case Less:
		return BoolValue(a < b), true
	case Greater:
		return BoolValue(a > b), true
	case LessEqual:
		return BoolValue(a <= b), true
	case GreaterEqual:
		return BoolValue(a >= b), true
	case Equal:
		return BoolValue(a == b), true
	case NotEqual:
		return BoolValue(a != b), true
	}
	return None, false
}

// unaryOp applies op to v. Only logical negation of booleans is defined.
func unaryOp(op Operator, v Value) (Value, error) {
	if op == Not && v.typ == TypeBoolean {
		return BoolValue(!v.b), nil
	}
	return None, diag.Errorf(diag.KindType, ErrUnsupportedOperation,
		"unsupported operation %s on %s", op, v.typ)
}
