package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/potato/diag"
)

// DefaultStackSize is the operand stack capacity used when Options leaves it
// unset.
const DefaultStackSize = 1024

// Options configures a VM.
type Options struct {
	// StackSize is the operand stack capacity. Zero selects DefaultStackSize.
	StackSize int

	// Stdout receives print/println output when Names is nil. Defaults to
	// os.Stdout.
	Stdout io.Writer

	// Names is the built-in table. Defaults to Builtins(Stdout).
	Names *Names

	// Trace, when set and allowing debug level, logs every executed
	// instruction.
	Trace commonlog.Logger
}

// VM executes one compiled program once.
type VM struct {
	code     []Instruction
	stack    *Stack
	names    *Names
	trace    commonlog.Logger
	pc       int
	executed bool
}

// New prepares a VM for code.
func New(code []Instruction, opts Options) (*VM, error) {
	size := opts.StackSize
	if size == 0 {
		size = DefaultStackSize
	}
	stack, err := NewStack(size)
	if err != nil {
		return nil, err
	}

	names := opts.Names
	if names == nil {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		names = Builtins(out)
	}

	vm := &VM{
		code:  code,
		stack: stack,
		names: names,
	}
	if opts.Trace != nil && opts.Trace.AllowLevel(commonlog.Debug) {
		vm.trace = opts.Trace
	}
	return vm, nil
}

// Stack returns the operand stack.
func (vm *VM) Stack() *Stack { return vm.stack }

// ProgramCounter returns the index of the next instruction.
func (vm *VM) ProgramCounter() int { return vm.pc }

// Executed reports whether Run has been called.
func (vm *VM) Executed() bool { return vm.executed }

// Instructions returns the program being executed.
func (vm *VM) Instructions() []Instruction { return vm.code }

// Run executes the program to completion or to the first error. A VM runs at
// most once; later calls return ErrAlreadyExecuted.
func (vm *VM) Run() error {
	if vm.executed {
		return ErrAlreadyExecuted
	}
	vm.executed = true

	for vm.pc < len(vm.code) {
		in := vm.code[vm.pc]
		if vm.trace != nil {
			vm.trace.Debug("execute", "pc", vm.pc, "instruction", in.String(), "depth", vm.stack.Len())
		}

		next, err := vm.step(in)
		if err != nil {
			return locate(err, in)
		}
		vm.pc = next
	}
	return nil
}

// step executes in and returns the next program counter.
func (vm *VM) step(in Instruction) (int, error) {
	next := vm.pc + 1

	switch in.Op {
	case OpLoadConst:
		return next, vm.stack.Push(in.Const)

	case OpLoadName:
		return next, vm.loadName(in.Const)

	case OpPopTop:
		_, err := vm.stack.Pop()
		return next, err

	case OpCallFunction:
		return next, vm.callFunction(in.Arg)

	case OpBinaryOperation:
		// The left operand was pushed last.
		left, err := vm.stack.Pop()
		if err != nil {
			return next, err
		}
		right, err := vm.stack.Pop()
		if err != nil {
			return next, err
		}
		result, err := binaryOp(in.Operator(), left, right)
		if err != nil {
			return next, err
		}
		return next, vm.stack.Push(result)

	case OpUnaryOperation:
		operand, err := vm.stack.Pop()
		if err != nil {
			return next, err
		}
		result, err := unaryOp(in.Operator(), operand)
		if err != nil {
			return next, err
		}
		return next, vm.stack.Push(result)

	case OpPopJumpForwardIfFalse, OpPopJumpForwardIfTrue:
		target, err := vm.jumpTarget(in)
		if err != nil {
			return next, err
		}
		top, err := vm.stack.Peek()
		if err != nil {
			return next, err
		}
		if top.typ != TypeBoolean {
			return next, diag.Errorf(diag.KindType, ErrUnsupportedOperation,
				"condition must be a boolean, got %s", top.typ)
		}
		if top.b == (in.Op == OpPopJumpForwardIfTrue) {
			vm.stack.Pop()
			return target, nil
		}
		return next, nil

	case OpJumpForward:
		return vm.jumpTarget(in)
	}

	return next, diag.Errorf(diag.KindRuntime, ErrUnknownOpcode,
		"unknown or unimplemented %s opcode", in.Op)
}

func (vm *VM) loadName(name Value) error {
	if name.typ != TypeString {
		return diag.Errorf(diag.KindType, ErrUnsupportedOperation,
			"can not index names by type %s", name.typ)
	}
	if v, ok := vm.names.Lookup(name.str); ok {
		return vm.stack.Push(v)
	}

	err := diag.Errorf(diag.KindName, ErrUnknownName, "name %q is not defined.", name.str)
	if match, ok := vm.names.Suggest(name.str, SuggestionThreshold); ok {
		err.Hint = "Did you mean: " + match
	}
	return err
}

// callFunction pops argc arguments, then the callee. Arguments were pushed in
// reverse, so popping restores left-to-right order.
func (vm *VM) callFunction(argc int) error {
	if argc < 0 {
		return diag.Errorf(diag.KindRuntime, ErrInvalidOperand, "invalid argument count %d", argc)
	}
	args := make([]Value, 0, argc)
	for range argc {
		arg, err := vm.stack.Pop()
		if err != nil {
			return err
		}
		args = append(args, arg)
	}

	callee, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	if callee.typ != TypeFunction || callee.fn == nil || callee.fn.Call == nil {
		return diag.Errorf(diag.KindType, ErrNotCallable, "%q is not callable", callee.typ.String())
	}

	result, err := callee.fn.Call(args)
	if err != nil {
		if _, ok := diag.As(err); ok {
			return err
		}
		return &diag.Error{
			Kind:    diag.KindRuntime,
			Message: fmt.Sprintf("%s failed: %v", callee.fn.Name, err),
			Cause:   fmt.Errorf("%w: %w", ErrNativeCall, err),
		}
	}
	return vm.stack.Push(result)
}

func (vm *VM) jumpTarget(in Instruction) (int, error) {
	target := vm.pc + in.Arg
	if in.Arg < 1 || target > len(vm.code) {
		return vm.pc + 1, diag.Errorf(diag.KindRuntime, ErrInvalidJump,
			"%s offset %d at %d leaves the program", in.Op, in.Arg, vm.pc)
	}
	return target, nil
}

// locate attaches the source range of the failing instruction to diagnostics
// that lack one.
func locate(err error, in Instruction) error {
	d, ok := diag.As(err)
	if !ok || in.Range.Start.Line == 0 {
		return err
	}
	return d.At(in.Range)
}
