package compiler

import (
	"strconv"
	"strings"

	"github.com/chazu/potato/diag"
)

// ---------------------------------------------------------------------------
// Lexer: tokenizer with one token of look-ahead
// ---------------------------------------------------------------------------

// Lexer turns source text into tokens on demand. Peek buffers exactly one
// token; Next consumes it. After the first error every call returns that
// error.
type Lexer struct {
	cursor *Cursor
	peeked *Token
	err    error
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{cursor: NewCursor(src)}
}

// Source returns the text being tokenized.
func (l *Lexer) Source() string { return l.cursor.Source() }

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	if l.peeked == nil {
		tok, err := l.fresh()
		if err != nil {
			l.err = err
			return Token{}, err
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

// Next consumes and returns the next token. At the end of input it keeps
// returning a TokenEOF token.
func (l *Lexer) Next() (Token, error) {
	tok, err := l.Peek()
	if err != nil {
		return Token{}, err
	}
	if tok.Type != TokenEOF {
		l.peeked = nil
	}
	return tok, nil
}

// Tokenize lexes all of src. The trailing EOF token is not included.
func Tokenize(src string) ([]Token, error) {
	l := NewLexer(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// fresh reads one token from the cursor.
func (l *Lexer) fresh() (Token, error) {
	c := l.cursor
	c.SkipWhile(isHorizontalSpace)

	start := c.Position()
	r := c.Peek()

	switch {
	case r == EOF:
		return Token{Type: TokenEOF, Range: diag.Range{Start: start, End: start}}, nil
	case isIdentifierStart(r):
		return l.readIdentifier(), nil
	case isDigit(r):
		return l.readNumber()
	case r == '"':
		return l.readString()
	case r == '\r' || r == '\n':
		return l.readEndOfLine(), nil
	case strings.ContainsRune("!=<>+-/*%", r):
		return l.readOperator(), nil
	}

	if t, ok := singles[r]; ok {
		c.Next()
		return Token{Type: t, Range: c.rangeFrom(start)}, nil
	}

	c.Next()
	return Token{}, diag.ErrorAt(diag.KindLexical, c.rangeFrom(start), ErrUnexpectedCharacter,
		"unexpected character %q at %s", r, start)
}

var singles = map[rune]TokenType{
	'.': TokenDot,
	',': TokenComma,
	':': TokenColon,
	';': TokenSemicolon,
	'(': TokenLParen,
	')': TokenRParen,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'[': TokenLBracket,
	']': TokenRBracket,
}

func (l *Lexer) readIdentifier() Token {
	text, r := l.cursor.ReadWhile(isIdentifierPart)
	typ := TokenIdentifier
	if Keywords[text] {
		typ = TokenKeyword
	}
	return Token{Type: typ, Range: r, Text: text}
}

// readNumber reads digits with at most one decimal point.
func (l *Lexer) readNumber() (Token, error) {
	seenDot := false
	text, r := l.cursor.ReadWhile(func(c rune) bool {
		if c == '.' && !seenDot {
			seenDot = true
			return true
		}
		return isDigit(c)
	})

	if seenDot {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, diag.ErrorAt(diag.KindLexical, r, err, "invalid float literal %q", text)
		}
		return Token{Type: TokenFloat, Range: r, Text: text, Float: f}, nil
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, diag.ErrorAt(diag.KindLexical, r, ErrIntegerOutOfRange,
			"integer literal %s is out of range", text)
	}
	return Token{Type: TokenInteger, Range: r, Text: text, Int: n}, nil
}

var escapes = map[rune]rune{
	'n': '\n',
	't': '\t',
	'r': '\r',
}

// readString reads a double-quoted literal. A backslash escapes the next
// character; \n, \t and \r decode to control characters.
func (l *Lexer) readString() (Token, error) {
	c := l.cursor
	start := c.Position()
	c.Next() // opening quote

	var sb strings.Builder
	for {
		r := c.Next()
		switch r {
		case EOF:
			return Token{}, diag.ErrorAt(diag.KindLexical, c.rangeFrom(start), ErrUnterminatedString,
				"unterminated string starting at %s", start)
		case '"':
			return Token{Type: TokenString, Range: c.rangeFrom(start), Text: sb.String()}, nil
		case '\\':
			e := c.Next()
			if e == EOF {
				continue
			}
			if d, ok := escapes[e]; ok {
				e = d
			}
			sb.WriteRune(e)
		default:
			sb.WriteRune(r)
		}
	}
}

// readEndOfLine reads CR, LF or CRLF as a single token.
func (l *Lexer) readEndOfLine() Token {
	c := l.cursor
	start := c.Position()
	if c.Next() == '\r' && c.Peek() == '\n' {
		c.Next()
	}
	r := c.rangeFrom(start)
	return Token{Type: TokenEndOfLine, Range: r, Text: r.Text(c.Source())}
}

// readOperator applies maximal munch to operator characters.
func (l *Lexer) readOperator() Token {
	c := l.cursor
	start := c.Position()
	first := c.Next()

	accept := func(r rune) bool {
		if c.Peek() == r {
			c.Next()
			return true
		}
		return false
	}

	var typ TokenType
	switch first {
	case '=':
		typ = pick(accept('='), TokenEqual, TokenAssign)
	case '!':
		typ = pick(accept('='), TokenNotEqual, TokenBang)
	case '<':
		typ = pick(accept('='), TokenLessEqual, TokenLess)
	case '>':
		typ = pick(accept('='), TokenGreaterEqual, TokenGreater)
	case '+':
		typ = pick(accept('='), TokenAddAssign, TokenAdd)
	case '-':
		switch {
		case accept('='):
			typ = TokenSubtractAssign
		case accept('>'):
			typ = TokenArrow
		default:
			typ = TokenSubtract
		}
	case '*':
		switch {
		case accept('*'):
			typ = pick(accept('='), TokenPowerAssign, TokenPower)
		case accept('='):
			typ = TokenMultiplyAssign
		default:
			typ = TokenMultiply
		}
	case '/':
		typ = pick(accept('='), TokenDivideAssign, TokenDivide)
	case '%':
		typ = TokenModulo
	}
	return Token{Type: typ, Range: c.rangeFrom(start)}
}

func pick(cond bool, yes, no TokenType) TokenType {
	if cond {
		return yes
	}
	return no
}

func isHorizontalSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\v'
}

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
