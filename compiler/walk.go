package compiler

// Walk visits n and its descendants in source order. If fn returns false the
// children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Statements {
			Walk(s, fn)
		}
	case *Block:
		for _, s := range n.Statements {
			Walk(s, fn)
		}
	case *ExpressionStatement:
		Walk(n.Expr, fn)
	case *IfStatement:
		Walk(n.Test, fn)
		Walk(n.Then, fn)
		if n.Else != nil {
			Walk(n.Else, fn)
		}
	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryExpression:
		Walk(n.Operand, fn)
	case *CallExpression:
		Walk(n.Callee, fn)
		for _, a := range n.Args {
			Walk(a, fn)
		}
	}
}
