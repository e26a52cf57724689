package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/potato/diag"
)

func tokenTypes(t *testing.T, input string) []TokenType {
	t.Helper()
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func equalTypes(a, b []TokenType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"=", []TokenType{TokenAssign}},
		{"==", []TokenType{TokenEqual}},
		{"===", []TokenType{TokenEqual, TokenAssign}},
		{"!", []TokenType{TokenBang}},
		{"!=", []TokenType{TokenNotEqual}},
		{"< <= > >=", []TokenType{TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual}},
		{"+ +=", []TokenType{TokenAdd, TokenAddAssign}},
		{"- -= ->", []TokenType{TokenSubtract, TokenSubtractAssign, TokenArrow}},
		{"* *= ** **=", []TokenType{TokenMultiply, TokenMultiplyAssign, TokenPower, TokenPowerAssign}},
		{"***", []TokenType{TokenPower, TokenMultiply}},
		{"/ /=", []TokenType{TokenDivide, TokenDivideAssign}},
		{"%", []TokenType{TokenModulo}},
		{". , : ;", []TokenType{TokenDot, TokenComma, TokenColon, TokenSemicolon}},
		{"()[]{}", []TokenType{TokenLParen, TokenRParen, TokenLBracket, TokenRBracket, TokenLBrace, TokenRBrace}},
	}
	for _, tc := range tests {
		if got := tokenTypes(t, tc.input); !equalTypes(got, tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	tokens, err := Tokenize("println if else true false _x9 iffy")
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		typ  TokenType
		text string
	}{
		{TokenIdentifier, "println"},
		{TokenKeyword, "if"},
		{TokenKeyword, "else"},
		{TokenKeyword, "true"},
		{TokenKeyword, "false"},
		{TokenIdentifier, "_x9"},
		{TokenIdentifier, "iffy"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Text != w.text {
			t.Errorf("token[%d] = %s %q, want %s %q", i, tokens[i].Type, tokens[i].Text, w.typ, w.text)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tokens, err := Tokenize("42 3.14 7. 1.2.3")
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].Type != TokenInteger || tokens[0].Int != 42 {
		t.Errorf("42 = %v", tokens[0])
	}
	if tokens[1].Type != TokenFloat || tokens[1].Float != 3.14 {
		t.Errorf("3.14 = %v", tokens[1])
	}
	if tokens[2].Type != TokenFloat || tokens[2].Float != 7 {
		t.Errorf("7. = %v", tokens[2])
	}
	// At most one dot per literal.
	rest := []TokenType{TokenFloat, TokenDot, TokenInteger}
	got := []TokenType{tokens[3].Type, tokens[4].Type, tokens[5].Type}
	if !equalTypes(got, rest) || tokens[3].Float != 1.2 || tokens[5].Int != 3 {
		t.Errorf("1.2.3 = %v", tokens[3:])
	}
}

func TestLexerIntegerOutOfRange(t *testing.T) {
	_, err := Tokenize("99999999999999999999")
	if !errors.Is(err, ErrIntegerOutOfRange) || !diag.IsKind(err, diag.KindLexical) {
		t.Errorf("err = %v", err)
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"say \"hi\""`, `say "hi"`},
		{`"a\\b"`, `a\b`},
		{`"tab\there"`, "tab\there"},
		{`"line\n"`, "line\n"},
		{`"\q"`, "q"},
		{"\"multi\nline\"", "multi\nline"},
	}
	for _, tc := range tests {
		tokens, err := Tokenize(tc.input)
		if err != nil {
			t.Errorf("Tokenize(%s): %v", tc.input, err)
			continue
		}
		if len(tokens) != 1 || tokens[0].Type != TokenString || tokens[0].Text != tc.want {
			t.Errorf("Tokenize(%s) = %v, want string %q", tc.input, tokens, tc.want)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	for _, input := range []string{`"abc`, `"abc\"`, `"\`} {
		_, err := Tokenize(input)
		if !errors.Is(err, ErrUnterminatedString) {
			t.Errorf("Tokenize(%s) = %v, want ErrUnterminatedString", input, err)
			continue
		}
		d, _ := diag.As(err)
		if d.Kind != diag.KindLexical || !d.HasRange || d.Range.Start.Offset != 0 {
			t.Errorf("diagnostic = %+v", d)
		}
	}
}

func TestLexerUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("println(1)\n  @")
	if !errors.Is(err, ErrUnexpectedCharacter) {
		t.Fatalf("err = %v", err)
	}
	d, _ := diag.As(err)
	if !strings.Contains(d.Message, `'@'`) {
		t.Errorf("message %q should name the character", d.Message)
	}
	if d.Range.Start.Line != 2 || d.Range.Start.Column != 2 {
		t.Errorf("position = %v", d.Range.Start)
	}
}

func TestLexerEndOfLine(t *testing.T) {
	got := tokenTypes(t, "a\nb\r\nc\rd")
	want := []TokenType{
		TokenIdentifier, TokenEndOfLine,
		TokenIdentifier, TokenEndOfLine,
		TokenIdentifier, TokenEndOfLine,
		TokenIdentifier,
	}
	if !equalTypes(got, want) {
		t.Errorf("types = %v", got)
	}
}

func TestLexerPeekBuffersOneToken(t *testing.T) {
	l := NewLexer("a b")
	p1, _ := l.Peek()
	p2, _ := l.Peek()
	if p1 != p2 || p1.Text != "a" {
		t.Fatalf("Peek = %v, %v", p1, p2)
	}
	n, _ := l.Next()
	if n != p1 {
		t.Errorf("Next = %v, want peeked %v", n, p1)
	}
	n, _ = l.Next()
	if n.Text != "b" {
		t.Errorf("second token = %v", n)
	}
	for range 2 {
		if n, _ = l.Next(); n.Type != TokenEOF {
			t.Errorf("expected EOF, got %v", n)
		}
	}
}

func TestLexerErrorIsSticky(t *testing.T) {
	l := NewLexer("@ a")
	_, err1 := l.Next()
	_, err2 := l.Next()
	if err1 == nil || err1 != err2 {
		t.Errorf("errors = %v, %v", err1, err2)
	}
}

// Token ranges tile the source: concatenating each token's text with the
// whitespace between tokens reproduces the input exactly.
func TestLexerRangesReconstructSource(t *testing.T) {
	inputs := []string{
		`println(1 + 2)`,
		"if 1 <= 2 {\r\n\tprint(\"a\\\"b\", 3.5)\n} else { println(!true) }\n",
		"x **= 2 ; y -> z",
		"  hello(\"héllo\")",
	}
	for _, src := range inputs {
		tokens, err := Tokenize(src)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", src, err)
		}
		var sb strings.Builder
		offset := 0
		for _, tok := range tokens {
			gap := src[offset:tok.Range.Start.Offset]
			if strings.Trim(gap, " \t") != "" {
				t.Errorf("%q: non-whitespace gap %q before %v", src, gap, tok)
			}
			sb.WriteString(gap)
			sb.WriteString(tok.Range.Text(src))
			offset = tok.Range.End.Offset
		}
		sb.WriteString(src[offset:])
		if sb.String() != src {
			t.Errorf("reconstructed %q, want %q", sb.String(), src)
		}
	}
}
