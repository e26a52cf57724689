package compiler

import (
	"github.com/chazu/potato/diag"
	"github.com/chazu/potato/vm"
)

// ---------------------------------------------------------------------------
// AST: syntax tree produced by the parser
// ---------------------------------------------------------------------------

// Node is the interface implemented by all AST nodes.
type Node interface {
	Span() diag.Range
	node() // marker method
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	expr() // marker method
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmt() // marker method
}

// ---------------------------------------------------------------------------
// Expression nodes
// ---------------------------------------------------------------------------

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	SpanVal diag.Range
	Value   int64
}

func (n *IntegerLiteral) Span() diag.Range { return n.SpanVal }
func (n *IntegerLiteral) node()            {}
func (n *IntegerLiteral) expr()            {}

// FloatLiteral represents a floating-point literal.
type FloatLiteral struct {
	SpanVal diag.Range
	Value   float64
}

func (n *FloatLiteral) Span() diag.Range { return n.SpanVal }
func (n *FloatLiteral) node()            {}
func (n *FloatLiteral) expr()            {}

// StringLiteral represents a string literal with escapes decoded.
type StringLiteral struct {
	SpanVal diag.Range
	Value   string
}

func (n *StringLiteral) Span() diag.Range { return n.SpanVal }
func (n *StringLiteral) node()            {}
func (n *StringLiteral) expr()            {}

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	SpanVal diag.Range
	Value   bool
}

func (n *BooleanLiteral) Span() diag.Range { return n.SpanVal }
func (n *BooleanLiteral) node()            {}
func (n *BooleanLiteral) expr()            {}

// Identifier represents a name resolved at run time.
type Identifier struct {
	SpanVal diag.Range
	Name    string
}

func (n *Identifier) Span() diag.Range { return n.SpanVal }
func (n *Identifier) node()            {}
func (n *Identifier) expr()            {}

// UnaryExpression represents a prefix operator applied to an operand.
type UnaryExpression struct {
	SpanVal  diag.Range
	Operator vm.Operator
	Operand  Expr
}

func (n *UnaryExpression) Span() diag.Range { return n.SpanVal }
func (n *UnaryExpression) node()            {}
func (n *UnaryExpression) expr()            {}

// BinaryExpression represents left OP right.
type BinaryExpression struct {
	SpanVal  diag.Range
	Operator vm.Operator
	Left     Expr
	Right    Expr
}

func (n *BinaryExpression) Span() diag.Range { return n.SpanVal }
func (n *BinaryExpression) node()            {}
func (n *BinaryExpression) expr()            {}

// CallExpression represents callee(args...). Callee is whatever expression
// preceded the argument list; only identifiers compile.
type CallExpression struct {
	SpanVal diag.Range
	Callee  Expr
	Args    []Expr
}

func (n *CallExpression) Span() diag.Range { return n.SpanVal }
func (n *CallExpression) node()            {}
func (n *CallExpression) expr()            {}

// ---------------------------------------------------------------------------
// Statement nodes
// ---------------------------------------------------------------------------

// ExpressionStatement is an expression evaluated for its effects.
type ExpressionStatement struct {
	SpanVal diag.Range
	Expr    Expr
}

func (n *ExpressionStatement) Span() diag.Range { return n.SpanVal }
func (n *ExpressionStatement) node()            {}
func (n *ExpressionStatement) stmt()            {}

// Block is a braced statement list.
type Block struct {
	SpanVal    diag.Range
	Statements []Stmt
}

func (n *Block) Span() diag.Range { return n.SpanVal }
func (n *Block) node()            {}
func (n *Block) stmt()            {}

// IfStatement represents if Test { Then } else Else. Else is nil, a *Block,
// or a nested *IfStatement for else-if chains.
type IfStatement struct {
	SpanVal diag.Range
	Test    Expr
	Then    *Block
	Else    Stmt
}

func (n *IfStatement) Span() diag.Range { return n.SpanVal }
func (n *IfStatement) node()            {}
func (n *IfStatement) stmt()            {}

// Program is the root of a parsed source file.
type Program struct {
	SpanVal    diag.Range
	Statements []Stmt
}

func (n *Program) Span() diag.Range { return n.SpanVal }
func (n *Program) node()            {}
