package compiler

import "errors"

// Failure classes carried as the Cause of lexer, parser and compiler
// diagnostics.
var (
	ErrUnexpectedCharacter = errors.New("compiler: unexpected character")
	ErrUnterminatedString  = errors.New("compiler: unterminated string")
	ErrIntegerOutOfRange   = errors.New("compiler: integer literal out of range")
	ErrUnexpectedToken     = errors.New("compiler: unexpected token")
	ErrUnsupportedSyntax   = errors.New("compiler: unsupported syntax")
)
