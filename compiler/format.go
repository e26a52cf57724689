package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/potato/vm"
)

// FormatNode renders n on one line per statement with every binary
// expression parenthesised, e.g. (2 + (3 * 4)).
func FormatNode(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		for i, s := range n.Statements {
			if i > 0 {
				sb.WriteString("\n")
			}
			writeNode(sb, s)
		}
	case *ExpressionStatement:
		writeNode(sb, n.Expr)
	case *Block:
		if len(n.Statements) == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, s := range n.Statements {
			if i > 0 {
				sb.WriteString("; ")
			}
			writeNode(sb, s)
		}
		sb.WriteString(" }")
	case *IfStatement:
		sb.WriteString("if ")
		writeNode(sb, n.Test)
		sb.WriteString(" ")
		writeNode(sb, n.Then)
		if n.Else != nil {
			sb.WriteString(" else ")
			writeNode(sb, n.Else)
		}
	case *BinaryExpression:
		sb.WriteString("(")
		writeNode(sb, n.Left)
		fmt.Fprintf(sb, " %s ", n.Operator)
		writeNode(sb, n.Right)
		sb.WriteString(")")
	case *UnaryExpression:
		sb.WriteString(n.Operator.String())
		writeNode(sb, n.Operand)
	case *CallExpression:
		writeNode(sb, n.Callee)
		sb.WriteString("(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeNode(sb, a)
		}
		sb.WriteString(")")
	case *Identifier:
		sb.WriteString(n.Name)
	case *StringLiteral:
		sb.WriteString(strconv.Quote(n.Value))
	case *IntegerLiteral:
		sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *FloatLiteral:
		s := vm.FormatNumber(n.Value)
		if strings.Trim(s, "-0123456789") == "" {
			s += ".0"
		}
		sb.WriteString(s)
	case *BooleanLiteral:
		sb.WriteString(strconv.FormatBool(n.Value))
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

// DumpTokens lists the tokens of src, one per line, with their positions and
// source text. Tokens read before a lexical error are listed along with the
// error.
func DumpTokens(src string) (string, error) {
	tokens, err := Tokenize(src)

	var sb strings.Builder
	for _, tok := range tokens {
		pos := fmt.Sprintf("%d:%d", tok.Range.Start.Line, tok.Range.Start.Column)
		fmt.Fprintf(&sb, "%-8s%-22s%q\n", pos, tok.Type, tok.Range.Text(src))
	}
	return sb.String(), err
}
