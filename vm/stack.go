package vm

import (
	"fmt"

	"github.com/chazu/potato/diag"
)

// Stack is a fixed-capacity LIFO of operands owned by a single VM.
type Stack struct {
	values []Value
	limit  int
}

// NewStack returns an empty stack that holds at most limit values.
func NewStack(limit int) (*Stack, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStackSize, limit)
	}
	return &Stack{
		values: make([]Value, 0, min(limit, 64)),
		limit:  limit,
	}, nil
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int { return len(s.values) }

// Limit returns the configured capacity.
func (s *Stack) Limit() int { return s.limit }

// IsEmpty reports whether the stack holds no values.
func (s *Stack) IsEmpty() bool { return len(s.values) == 0 }

// Push adds v on top. It fails once the stack holds limit values.
func (s *Stack) Push(v Value) error {
	if len(s.values)+1 > s.limit {
		return diag.Errorf(diag.KindRuntime, ErrStackOverflow,
			"stack size exceeded the given limit %d", s.limit)
	}
	s.values = append(s.values, v)
	return nil
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (Value, error) {
	v, err := s.Peek()
	if err != nil {
		return None, err
	}
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (Value, error) {
	if len(s.values) == 0 {
		return None, diag.Errorf(diag.KindRuntime, ErrStackUnderflow, "stack is empty")
	}
	return s.values[len(s.values)-1], nil
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []Value {
	out := make([]Value, len(s.values))
	copy(out, s.values)
	return out
}
