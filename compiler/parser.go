package compiler

import (
	"github.com/chazu/potato/diag"
	"github.com/chazu/potato/vm"
)

// ---------------------------------------------------------------------------
// Parser: recursive descent with precedence climbing
// ---------------------------------------------------------------------------

// Parser builds a Program from a token stream. It stops at the first error.
type Parser struct {
	lexer *Lexer
	depth int // open parentheses; line breaks inside them are ignored
}

// NewParser creates a parser for the given source.
func NewParser(src string) *Parser {
	return &Parser{lexer: NewLexer(src)}
}

// Parse parses src into a Program.
func Parse(src string) (*Program, error) {
	return NewParser(src).ParseProgram()
}

// ParseExpr parses src as a single expression.
func ParseExpr(src string) (Expr, error) {
	p := NewParser(src)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !tok.Is(TokenEOF) {
		return nil, p.errorAt(tok, "expected end of input, got %s", tok.Describe())
	}
	return expr, nil
}

// peek returns the next significant token.
func (p *Parser) peek() (Token, error) {
	for {
		tok, err := p.lexer.Peek()
		if err != nil || p.depth == 0 || !tok.Is(TokenEndOfLine) {
			return tok, err
		}
		p.lexer.Next()
	}
}

// next consumes the next significant token.
func (p *Parser) next() (Token, error) {
	if _, err := p.peek(); err != nil {
		return Token{}, err
	}
	return p.lexer.Next()
}

// expect consumes a token of type t or fails naming what was wanted.
func (p *Parser) expect(t TokenType, want string) (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	if !tok.Is(t) {
		return Token{}, p.errorAt(tok, "expected %s, got %s", want, tok.Describe())
	}
	return p.next()
}

func (p *Parser) errorAt(tok Token, format string, args ...any) error {
	return diag.ErrorAt(diag.KindSyntax, tok.Range, ErrUnexpectedToken, format, args...)
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// ParseProgram parses statements until the end of input.
func (p *Parser) ParseProgram() (*Program, error) {
	stmts, err := p.parseStatements(TokenEOF)
	if err != nil {
		return nil, err
	}
	prog := &Program{Statements: stmts}
	if len(stmts) > 0 {
		prog.SpanVal = diag.Span(stmts[0].Span(), stmts[len(stmts)-1].Span())
	}
	return prog, nil
}

// assignments are lexed but have no meaning in the language.
var assignments = map[TokenType]bool{
	TokenAssign:         true,
	TokenAddAssign:      true,
	TokenSubtractAssign: true,
	TokenMultiplyAssign: true,
	TokenDivideAssign:   true,
	TokenPowerAssign:    true,
	TokenArrow:          true,
}

func isSeparator(tok Token) bool {
	return tok.Is(TokenEndOfLine) || tok.Is(TokenSemicolon)
}

// parseStatements parses separated statements up to, but not including, a
// token of type stop.
func (p *Parser) parseStatements(stop TokenType) ([]Stmt, error) {
	var stmts []Stmt
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if isSeparator(tok) {
			p.next()
			continue
		}
		if tok.Is(stop) {
			return stmts, nil
		}
		if tok.Is(TokenEOF) {
			return nil, p.errorAt(tok, "expected '}' to close block, got EOF")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case isSeparator(tok), tok.Is(stop):
		case tok.Is(TokenEOF):
			return nil, p.errorAt(tok, "expected '}' to close block, got EOF")
		case assignments[tok.Type]:
			return nil, diag.ErrorAt(diag.KindSyntax, tok.Range, ErrUnsupportedSyntax,
				"%s is not supported", tok.Describe())
		default:
			return nil, p.errorAt(tok, "expected end of line or ';' after statement, got %s", tok.Describe())
		}
	}
}

func (p *Parser) parseStatement() (Stmt, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.IsKeyword("if") {
		return p.parseIf()
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ExpressionStatement{SpanVal: expr.Span(), Expr: expr}, nil
}

// parseIf parses if TEST { ... } with an optional else block or else-if.
func (p *Parser) parseIf() (*IfStatement, error) {
	ifTok, err := p.next()
	if err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &IfStatement{SpanVal: diag.Span(ifTok.Range, then.Span()), Test: test, Then: then}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !tok.IsKeyword("else") {
		return stmt, nil
	}
	p.next()

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.IsKeyword("if") {
		stmt.Else, err = p.parseIf()
	} else {
		stmt.Else, err = p.parseBlock()
	}
	if err != nil {
		return nil, err
	}
	stmt.SpanVal = diag.Span(ifTok.Range, stmt.Else.Span())
	return stmt, nil
}

func (p *Parser) parseBlock() (*Block, error) {
	open, err := p.expect(TokenLBrace, "'{'")
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements(TokenRBrace)
	if err != nil {
		return nil, err
	}
	closing, err := p.expect(TokenRBrace, "'}'")
	if err != nil {
		return nil, err
	}
	return &Block{SpanVal: diag.Span(open.Range, closing.Range), Statements: stmts}, nil
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (p *Parser) parseExpression() (Expr, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	return p.parseBinary(left, 0)
}

// parseBinary folds operators whose precedence exceeds threshold into left.
// Operators of equal precedence associate to the left, except runs of a
// right-associative operator.
func (p *Parser) parseBinary(left Expr, threshold int) (Expr, error) {
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !tok.Type.IsBinaryOperator() || Precedence(tok.Type) <= threshold {
			return left, nil
		}
		p.next()

		right, err := p.parseOperand(tok.Type)
		if err != nil {
			return nil, err
		}
		left = binary(left, tok, right)
	}
}

// parseOperand parses the right operand of op, absorbing operators that bind
// tighter and, for right-associative op, further applications of op.
func (p *Parser) parseOperand(op TokenType) (Expr, error) {
	operand, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	operand, err = p.parseBinary(operand, Precedence(op))
	if err != nil {
		return nil, err
	}
	if !rightAssociative(op) {
		return operand, nil
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !tok.Is(op) {
		return operand, nil
	}
	p.next()
	rest, err := p.parseOperand(op)
	if err != nil {
		return nil, err
	}
	return binary(operand, tok, rest), nil
}

func rightAssociative(t TokenType) bool { return t == TokenPower }

func binary(left Expr, op Token, right Expr) *BinaryExpression {
	return &BinaryExpression{
		SpanVal:  diag.Span(left.Span(), right.Span()),
		Operator: binaryOperators[op.Type].op,
		Left:     left,
		Right:    right,
	}
}

// parsePostfix parses an atom followed by any number of argument lists.
func (p *Parser) parsePostfix() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !tok.Is(TokenLParen) {
			return expr, nil
		}
		args, closing, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		expr = &CallExpression{
			SpanVal: diag.Span(expr.Span(), closing.Range),
			Callee:  expr,
			Args:    args,
		}
	}
}

// parseArguments parses "(" expr ("," expr)* ","? ")".
func (p *Parser) parseArguments() ([]Expr, Token, error) {
	p.next() // (
	p.depth++
	defer func() { p.depth-- }()

	var args []Expr
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, Token{}, err
		}
		if tok.Is(TokenRParen) {
			break
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, Token{}, err
		}
		args = append(args, arg)

		tok, err = p.peek()
		if err != nil {
			return nil, Token{}, err
		}
		if tok.Is(TokenComma) {
			p.next()
			continue
		}
		if !tok.Is(TokenRParen) {
			return nil, Token{}, p.errorAt(tok, "expected ',' or ')' in argument list, got %s", tok.Describe())
		}
	}

	closing, err := p.lexer.Next()
	return args, closing, err
}

func (p *Parser) parseAtom() (Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TokenIdentifier:
		p.next()
		return &Identifier{SpanVal: tok.Range, Name: tok.Text}, nil

	case TokenInteger:
		p.next()
		return &IntegerLiteral{SpanVal: tok.Range, Value: tok.Int}, nil

	case TokenFloat:
		p.next()
		return &FloatLiteral{SpanVal: tok.Range, Value: tok.Float}, nil

	case TokenString:
		p.next()
		return &StringLiteral{SpanVal: tok.Range, Value: tok.Text}, nil

	case TokenKeyword:
		switch tok.Text {
		case "true", "false":
			p.next()
			return &BooleanLiteral{SpanVal: tok.Range, Value: tok.Text == "true"}, nil
		case "if":
			return nil, diag.ErrorAt(diag.KindSyntax, tok.Range, ErrUnsupportedSyntax,
				"if statement can not be used as an expression")
		}

	case TokenBang:
		p.next()
		operand, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{
			SpanVal:  diag.Span(tok.Range, operand.Span()),
			Operator: vm.Not,
			Operand:  operand,
		}, nil

	case TokenLParen:
		return p.parseGroup()
	}

	return nil, p.errorAt(tok, "expected expression, got %s", tok.Describe())
}

// parseGroup parses "(" expr ")". Grouping leaves no node behind.
func (p *Parser) parseGroup() (Expr, error) {
	p.next() // (
	p.depth++
	defer func() { p.depth-- }()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return nil, err
	}
	return expr, nil
}
