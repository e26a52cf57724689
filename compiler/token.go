package compiler

import (
	"fmt"

	"github.com/chazu/potato/diag"
	"github.com/chazu/potato/vm"
)

// ---------------------------------------------------------------------------
// Token types
// ---------------------------------------------------------------------------

// TokenType identifies the kind of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenEndOfLine

	// Literals and names
	TokenIdentifier
	TokenKeyword
	TokenInteger
	TokenFloat
	TokenString

	// Operators
	TokenAssign         // =
	TokenEqual          // ==
	TokenBang           // !
	TokenNotEqual       // !=
	TokenLess           // <
	TokenLessEqual      // <=
	TokenGreater        // >
	TokenGreaterEqual   // >=
	TokenAdd            // +
	TokenAddAssign      // +=
	TokenSubtract       // -
	TokenSubtractAssign // -=
	TokenArrow          // ->
	TokenMultiply       // *
	TokenMultiplyAssign // *=
	TokenPower          // **
	TokenPowerAssign    // **=
	TokenDivide         // /
	TokenDivideAssign   // /=
	TokenModulo         // %

	// Punctuation
	TokenDot       // .
	TokenComma     // ,
	TokenColon     // :
	TokenSemicolon // ;

	// Brackets
	TokenLParen   // (
	TokenRParen   // )
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
)

var tokenNames = map[TokenType]string{
	TokenEOF:            "EOF",
	TokenEndOfLine:      "END_OF_LINE",
	TokenIdentifier:     "IDENTIFIER",
	TokenKeyword:        "KEYWORD",
	TokenInteger:        "INTEGER",
	TokenFloat:          "FLOAT",
	TokenString:         "STRING",
	TokenAssign:         "ASSIGN",
	TokenEqual:          "EQUAL",
	TokenBang:           "BANG",
	TokenNotEqual:       "NOT_EQUAL",
	TokenLess:           "LESS",
	TokenLessEqual:      "LESS_OR_EQUAL",
	TokenGreater:        "GREATER",
	TokenGreaterEqual:   "GREATER_OR_EQUAL",
	TokenAdd:            "ADD",
	TokenAddAssign:      "ADD_ASSIGNMENT",
	TokenSubtract:       "SUBTRACT",
	TokenSubtractAssign: "SUBTRACT_ASSIGNMENT",
	TokenArrow:          "ARROW",
	TokenMultiply:       "MULTIPLY",
	TokenMultiplyAssign: "MULTIPLY_ASSIGNMENT",
	TokenPower:          "POWER",
	TokenPowerAssign:    "POWER_ASSIGNMENT",
	TokenDivide:         "DIVIDE",
	TokenDivideAssign:   "DIVIDE_ASSIGNMENT",
	TokenModulo:         "MODULO",
	TokenDot:            "DOT",
	TokenComma:          "COMMA",
	TokenColon:          "COLON",
	TokenSemicolon:      "SEMICOLON",
	TokenLParen:         "LEFT_PARENTHESIS",
	TokenRParen:         "RIGHT_PARENTHESIS",
	TokenLBrace:         "LEFT_CURLY_BRACE",
	TokenRBrace:         "RIGHT_CURLY_BRACE",
	TokenLBracket:       "LEFT_SQUARE_BRACKET",
	TokenRBracket:       "RIGHT_SQUARE_BRACKET",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Keywords is the fixed set of reserved words.
var Keywords = map[string]bool{
	"true":  true,
	"false": true,
	"if":    true,
	"else":  true,
}

// binaryOperators maps operator tokens to the VM operator and its
// precedence. Higher binds tighter.
var binaryOperators = map[TokenType]struct {
	op         vm.Operator
	precedence int
}{
	TokenLess:         {vm.Less, 7},
	TokenGreater:      {vm.Greater, 7},
	TokenLessEqual:    {vm.LessEqual, 7},
	TokenGreaterEqual: {vm.GreaterEqual, 7},
	TokenEqual:        {vm.Equal, 7},
	TokenNotEqual:     {vm.NotEqual, 7},
	TokenAdd:          {vm.Add, 10},
	TokenSubtract:     {vm.Subtract, 10},
	TokenMultiply:     {vm.Multiply, 20},
	TokenDivide:       {vm.Divide, 20},
	TokenModulo:       {vm.Modulo, 20},
	TokenPower:        {vm.Power, 20},
}

// Precedence returns the binding power of a binary operator token, or 0 if
// t is not a binary operator.
func Precedence(t TokenType) int {
	return binaryOperators[t].precedence
}

// IsBinaryOperator reports whether t can join two expressions.
func (t TokenType) IsBinaryOperator() bool {
	_, ok := binaryOperators[t]
	return ok
}

// ---------------------------------------------------------------------------
// Token
// ---------------------------------------------------------------------------

// Token is one lexical unit. Text is the decoded value for identifiers,
// keywords and strings; Int and Float hold decoded numeric literals.
type Token struct {
	Type  TokenType
	Range diag.Range
	Text  string
	Int   int64
	Float float64
}

// Is reports whether the token has type t.
func (tok Token) Is(t TokenType) bool { return tok.Type == t }

// IsKeyword reports whether the token is the reserved word kw.
func (tok Token) IsKeyword(kw string) bool {
	return tok.Type == TokenKeyword && tok.Text == kw
}

// Describe renders the token for error messages.
func (tok Token) Describe() string {
	switch tok.Type {
	case TokenIdentifier:
		return fmt.Sprintf("identifier %q", tok.Text)
	case TokenKeyword:
		return fmt.Sprintf("keyword %q", tok.Text)
	case TokenString:
		return fmt.Sprintf("string %q", tok.Text)
	case TokenInteger:
		return fmt.Sprintf("integer %d", tok.Int)
	case TokenFloat:
		return fmt.Sprintf("float %s", vm.FormatNumber(tok.Float))
	}
	return tok.Type.String()
}

func (tok Token) String() string {
	return fmt.Sprintf("%s %s", tok.Describe(), tok.Range)
}
