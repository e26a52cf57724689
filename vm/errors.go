package vm

import "errors"

// Failure classes carried as the Cause of VM diagnostics.
var (
	ErrStackOverflow        = errors.New("vm: stack overflow")
	ErrStackUnderflow       = errors.New("vm: stack underflow")
	ErrUnknownOpcode        = errors.New("vm: unknown opcode")
	ErrUnknownName          = errors.New("vm: unknown name")
	ErrNotCallable          = errors.New("vm: value is not callable")
	ErrUnsupportedOperation = errors.New("vm: unsupported operation")
	ErrInvalidJump          = errors.New("vm: invalid jump")
	ErrInvalidOperand       = errors.New("vm: invalid operand")
	ErrNativeCall           = errors.New("vm: native routine failed")
)

// Usage errors, not diagnostics.
var (
	ErrAlreadyExecuted  = errors.New("vm: virtual machine has already been executed")
	ErrInvalidStackSize = errors.New("vm: invalid stack size")
)
