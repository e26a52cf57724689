package vm

import "fmt"

// Operator selects the behaviour of BINARY_OPERATION and UNARY_OPERATION.
type Operator uint8

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Modulo
	Power
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
	Not
)

var operatorInfo = [...]struct {
	symbol string
	name   string
}{
	Add:          {"+", "ADD"},
	Subtract:     {"-", "SUBTRACT"},
	Multiply:     {"*", "MULTIPLY"},
	Divide:       {"/", "DIVIDE"},
	Modulo:       {"%", "MODULO"},
	Power:        {"**", "POWER"},
	Less:         {"<", "LESS"},
	Greater:      {">", "GREATER"},
	LessEqual:    {"<=", "LESS_OR_EQUAL"},
	GreaterEqual: {">=", "GREATER_OR_EQUAL"},
	Equal:        {"==", "EQUAL"},
	NotEqual:     {"!=", "NOT_EQUAL"},
	Not:          {"!", "NOT"},
}

// String returns the source symbol, e.g. "**".
func (o Operator) String() string {
	if int(o) < len(operatorInfo) {
		return operatorInfo[o].symbol
	}
	return fmt.Sprintf("Operator(%d)", o)
}

// Name returns the upper-case operator name, e.g. "POWER".
func (o Operator) Name() string {
	if int(o) < len(operatorInfo) {
		return operatorInfo[o].name
	}
	return fmt.Sprintf("OPERATOR_%d", o)
}
