package vm

import (
	"fmt"

	"github.com/chazu/potato/diag"
)

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Opcode selects the behaviour of one instruction.
type Opcode byte

const (
	OpLoadConst             Opcode = 0x01 // push the baked-in constant
	OpLoadName              Opcode = 0x02 // push the built-in bound to a name
	OpPopTop                Opcode = 0x03 // discard top of stack
	OpCallFunction          Opcode = 0x10 // pop argc args and a callee, push result
	OpBinaryOperation       Opcode = 0x20 // pop left, pop right, push left OP right
	OpUnaryOperation        Opcode = 0x21 // pop operand, push OP operand
	OpPopJumpForwardIfFalse Opcode = 0x30 // relative jump when top is false (popped)
	OpPopJumpForwardIfTrue  Opcode = 0x31 // relative jump when top is true (popped)
	OpJumpForward           Opcode = 0x32 // unconditional relative jump
)

var opcodeNames = map[Opcode]string{
	OpLoadConst:             "LOAD_CONST",
	OpLoadName:              "LOAD_NAME",
	OpPopTop:                "POP_TOP",
	OpCallFunction:          "CALL_FUNCTION",
	OpBinaryOperation:       "BINARY_OPERATION",
	OpUnaryOperation:        "UNARY_OPERATION",
	OpPopJumpForwardIfFalse: "POP_JUMP_FORWARD_IF_FALSE",
	OpPopJumpForwardIfTrue:  "POP_JUMP_FORWARD_IF_TRUE",
	OpJumpForward:           "JUMP_FORWARD",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_0x%02X", byte(op))
}

// IsJump reports whether op carries a relative jump offset.
func (op Opcode) IsJump() bool {
	switch op {
	case OpPopJumpForwardIfFalse, OpPopJumpForwardIfTrue, OpJumpForward:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Instructions
// ---------------------------------------------------------------------------

// Instruction is one zero- or single-operand VM instruction. Which operand
// field is meaningful depends on Op:
//
//	LOAD_CONST         Const
//	LOAD_NAME          Const (string holding the name)
//	CALL_FUNCTION      Arg = argument count
//	BINARY/UNARY_*     Arg = Operator
//	*JUMP*             Arg = relative offset from this instruction
//
// Range is the source span that produced the instruction and is only used
// for diagnostics.
type Instruction struct {
	Op    Opcode
	Const Value
	Arg   int
	Range diag.Range
}

// LoadConst returns LOAD_CONST v.
func LoadConst(v Value) Instruction { return Instruction{Op: OpLoadConst, Const: v} }

// LoadName returns LOAD_NAME name.
func LoadName(name string) Instruction {
	return Instruction{Op: OpLoadName, Const: StringValue(name)}
}

// PopTop returns POP_TOP.
func PopTop() Instruction { return Instruction{Op: OpPopTop} }

// CallFunction returns CALL_FUNCTION argc.
func CallFunction(argc int) Instruction { return Instruction{Op: OpCallFunction, Arg: argc} }

// BinaryOperation returns BINARY_OPERATION op.
func BinaryOperation(op Operator) Instruction {
	return Instruction{Op: OpBinaryOperation, Arg: int(op)}
}

// UnaryOperation returns UNARY_OPERATION op.
func UnaryOperation(op Operator) Instruction {
	return Instruction{Op: OpUnaryOperation, Arg: int(op)}
}

// Jump returns a jump instruction of the given opcode and relative offset.
func Jump(op Opcode, offset int) Instruction { return Instruction{Op: op, Arg: offset} }

// At returns a copy of in attributed to source range r.
func (in Instruction) At(r diag.Range) Instruction {
	in.Range = r
	return in
}

// Operator returns Arg interpreted as an operator.
func (in Instruction) Operator() Operator { return Operator(in.Arg) }

// OperandString renders the operand of in, or "" for zero-operand opcodes.
func (in Instruction) OperandString() string {
	switch in.Op {
	case OpLoadConst:
		return in.Const.Repr()
	case OpLoadName:
		return in.Const.String()
	case OpCallFunction:
		return fmt.Sprintf("%d", in.Arg)
	case OpBinaryOperation, OpUnaryOperation:
		return in.Operator().String()
	case OpPopJumpForwardIfFalse, OpPopJumpForwardIfTrue, OpJumpForward:
		return fmt.Sprintf("+%d", in.Arg)
	}
	return ""
}

func (in Instruction) String() string {
	if operand := in.OperandString(); operand != "" {
		return in.Op.String() + " " + operand
	}
	return in.Op.String()
}
