package vm

import (
	"fmt"
	"io"
)

// Builtins returns the standard name table. print and println write to out
// in call order.
func Builtins(out io.Writer) *Names {
	return NewNames(
		&Function{
			Name: "print",
			Doc:  "print(args...) writes its arguments separated by spaces.",
			Call: func(args []Value) (Value, error) {
				if _, err := io.WriteString(out, Render(args)); err != nil {
					return None, fmt.Errorf("print: %w", err)
				}
				return None, nil
			},
		},
		&Function{
			Name: "println",
			Doc:  "println(args...) writes its arguments separated by spaces, then a newline.",
			Call: func(args []Value) (Value, error) {
				if _, err := io.WriteString(out, Render(args)+"\n"); err != nil {
					return None, fmt.Errorf("println: %w", err)
				}
				return None, nil
			},
		},
	)
}
