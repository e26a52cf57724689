package diag

import (
	"errors"
	"fmt"
)

// Kind is the category of a diagnostic.
type Kind int

const (
	KindLexical Kind = iota
	KindSyntax
	KindName
	KindType
	KindRuntime
)

var kindNames = map[Kind]string{
	KindLexical: "LexicalError",
	KindSyntax:  "SyntaxError",
	KindName:    "NameError",
	KindType:    "TypeError",
	KindRuntime: "VirtualMachineError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Error is a terminal diagnostic raised by one pipeline stage.
type Error struct {
	Kind    Kind
	Message string
	Hint    string // optional help text, e.g. a name suggestion

	Range    Range
	HasRange bool

	Cause error // sentinel describing the failure class, if any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.HasRange {
		msg += " (" + e.Range.Start.String() + ")"
	}
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// At returns a copy of e located at r unless e already carries a range.
func (e *Error) At(r Range) *Error {
	if e.HasRange {
		return e
	}
	c := *e
	c.Range = r
	c.HasRange = true
	return &c
}

// Errorf builds an unlocated diagnostic.
func Errorf(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Cause: cause, Message: fmt.Sprintf(format, args...)}
}

// ErrorAt builds a diagnostic located at r.
func ErrorAt(kind Kind, r Range, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		Cause:    cause,
		Message:  fmt.Sprintf(format, args...),
		Range:    r,
		HasRange: true,
	}
}

// As reports whether err is (or wraps) a diagnostic and returns it.
func As(err error) (*Error, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// IsKind reports whether err is a diagnostic of the given kind.
func IsKind(err error, kind Kind) bool {
	d, ok := As(err)
	return ok && d.Kind == kind
}
