package compiler

import (
	"fmt"

	"github.com/chazu/potato/diag"
	"github.com/chazu/potato/vm"
)

// ---------------------------------------------------------------------------
// Code generation: AST to bytecode
// ---------------------------------------------------------------------------

// Compile translates prog into a flat instruction sequence. Every
// instruction carries the range of the node that produced it. Jump offsets
// are relative and computed from the already compiled length of the code
// they skip.
func Compile(prog *Program) ([]vm.Instruction, error) {
	return compileStatements(prog.Statements)
}

func compileStatements(stmts []Stmt) ([]vm.Instruction, error) {
	var code []vm.Instruction
	for _, s := range stmts {
		c, err := compileStatement(s)
		if err != nil {
			return nil, err
		}
		code = append(code, c...)
	}
	return code, nil
}

func compileStatement(s Stmt) ([]vm.Instruction, error) {
	switch s := s.(type) {
	case *ExpressionStatement:
		code, err := compileExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		return append(code, vm.PopTop().At(s.Span())), nil

	case *Block:
		return compileStatements(s.Statements)

	case *IfStatement:
		return compileIf(s)
	}
	return nil, fmt.Errorf("compiler: unhandled statement %T", s)
}

// compileIf lays out
//
//	<test>
//	POP_JUMP_FORWARD_IF_FALSE  -> else (or end)
//	POP_TOP                    drop the tested boolean
//	<then>
//	JUMP_FORWARD               -> end (only with an else branch)
//	<else>
func compileIf(s *IfStatement) ([]vm.Instruction, error) {
	code, err := compileExpr(s.Test)
	if err != nil {
		return nil, err
	}
	body, err := compileStatements(s.Then.Statements)
	if err != nil {
		return nil, err
	}
	then := append([]vm.Instruction{vm.PopTop().At(s.Test.Span())}, body...)

	var otherwise []vm.Instruction
	if s.Else != nil {
		otherwise, err = compileStatement(s.Else)
		if err != nil {
			return nil, err
		}
		then = append(then, vm.Jump(vm.OpJumpForward, len(otherwise)+1).At(s.Else.Span()))
	}

	code = append(code, vm.Jump(vm.OpPopJumpForwardIfFalse, len(then)+1).At(s.Test.Span()))
	code = append(code, then...)
	return append(code, otherwise...), nil
}

func compileExpr(e Expr) ([]vm.Instruction, error) {
	r := e.Span()

	switch e := e.(type) {
	case *IntegerLiteral:
		return []vm.Instruction{vm.LoadConst(vm.NumberValue(float64(e.Value))).At(r)}, nil

	case *FloatLiteral:
		return []vm.Instruction{vm.LoadConst(vm.NumberValue(e.Value)).At(r)}, nil

	case *StringLiteral:
		return []vm.Instruction{vm.LoadConst(vm.StringValue(e.Value)).At(r)}, nil

	case *BooleanLiteral:
		return []vm.Instruction{vm.LoadConst(vm.BoolValue(e.Value)).At(r)}, nil

	case *Identifier:
		return []vm.Instruction{vm.LoadName(e.Name).At(r)}, nil

	case *UnaryExpression:
		code, err := compileExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return append(code, vm.UnaryOperation(e.Operator).At(r)), nil

	case *BinaryExpression:
		// Right first, so the left operand is on top and popped first.
		code, err := compileExpr(e.Right)
		if err != nil {
			return nil, err
		}
		left, err := compileExpr(e.Left)
		if err != nil {
			return nil, err
		}
		code = append(code, left...)
		return append(code, vm.BinaryOperation(e.Operator).At(r)), nil

	case *CallExpression:
		return compileCall(e)
	}
	return nil, fmt.Errorf("compiler: unhandled expression %T", e)
}

// compileCall emits the callee, the arguments in reverse order, then
// CALL_FUNCTION.
func compileCall(e *CallExpression) ([]vm.Instruction, error) {
	callee, ok := e.Callee.(*Identifier)
	if !ok {
		return nil, diag.ErrorAt(diag.KindType, e.Callee.Span(), vm.ErrNotCallable,
			"%s is not callable", describeExpr(e.Callee))
	}

	code := []vm.Instruction{vm.LoadName(callee.Name).At(callee.Span())}
	for i := len(e.Args) - 1; i >= 0; i-- {
		arg, err := compileExpr(e.Args[i])
		if err != nil {
			return nil, err
		}
		code = append(code, arg...)
	}
	return append(code, vm.CallFunction(len(e.Args)).At(e.Span())), nil
}

// describeExpr names the kind of a non-callable callee.
func describeExpr(e Expr) string {
	switch e.(type) {
	case *IntegerLiteral, *FloatLiteral:
		return `"number"`
	case *StringLiteral:
		return `"string"`
	case *BooleanLiteral:
		return `"boolean"`
	case *CallExpression:
		return "call result"
	}
	return "expression"
}
