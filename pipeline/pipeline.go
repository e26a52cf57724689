// Package pipeline runs potato source through every stage: lexing, parsing,
// compilation and execution.
package pipeline

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/potato/compiler"
	"github.com/chazu/potato/vm"
)

var log = commonlog.GetLogger("potato.pipeline")

// Options configures a Runner.
type Options struct {
	// StackSize is the operand stack capacity. Zero selects
	// vm.DefaultStackSize.
	StackSize int

	// Stdout receives print/println output. Defaults to os.Stdout.
	Stdout io.Writer

	// Names overrides the built-in table. Defaults to vm.Builtins(Stdout).
	Names *vm.Names

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// Program is the output of the front end.
type Program struct {
	Source string
	AST    *compiler.Program
	Code   []vm.Instruction
}

// Compile parses and compiles source.
func Compile(source string) (*Program, error) {
	return compile(uuid.NewString(), source)
}

func compile(id, source string) (*Program, error) {
	if log.AllowLevel(commonlog.Debug) {
		// The parser reports the same error in source order.
		if tokens, err := compiler.Tokenize(source); err != nil {
			log.Debug("lex failed", "run", id, "tokens", len(tokens), "error", err.Error())
		} else {
			log.Debug("lexed", "run", id, "tokens", len(tokens))
		}
	}

	ast, err := compiler.Parse(source)
	if err != nil {
		log.Debug("parse failed", "run", id, "error", err.Error())
		return nil, err
	}
	log.Debug("parsed", "run", id, "statements", len(ast.Statements))

	code, err := compiler.Compile(ast)
	if err != nil {
		log.Debug("compile failed", "run", id, "error", err.Error())
		return nil, err
	}
	log.Debug("compiled", "run", id, "instructions", len(code))

	return &Program{Source: source, AST: ast, Code: code}, nil
}

// Check reports the first diagnostic the front end finds in source, or nil.
// Nothing is executed.
func Check(source string) error {
	_, err := Compile(source)
	return err
}

// Runner executes programs with fixed options. A Runner may be reused; each
// call to Run builds a fresh VM.
type Runner struct {
	opts Options
}

// NewRunner returns a Runner using opts.
func NewRunner(opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Runner{opts: opts}
}

// Run compiles and executes source.
func (r *Runner) Run(source string) error {
	id := uuid.NewString()
	prog, err := compile(id, source)
	if err != nil {
		return err
	}
	return r.execute(id, prog.Code)
}

// Execute runs already compiled code.
func (r *Runner) Execute(prog *Program) error {
	return r.execute(uuid.NewString(), prog.Code)
}

func (r *Runner) execute(id string, code []vm.Instruction) error {
	vmOpts := vm.Options{
		StackSize: r.opts.StackSize,
		Stdout:    r.opts.Stdout,
		Names:     r.opts.Names,
	}
	if r.opts.Trace {
		vmOpts.Trace = log
	}

	machine, err := vm.New(code, vmOpts)
	if err != nil {
		return err
	}
	if err := machine.Run(); err != nil {
		log.Debug("execution failed", "run", id, "pc", machine.ProgramCounter(), "error", err.Error())
		return err
	}
	log.Debug("executed", "run", id, "instructions", len(code), "depth", machine.Stack().Len())
	return nil
}

// Run compiles and executes source with default options, writing to
// os.Stdout.
func Run(source string) error {
	return NewRunner(Options{}).Run(source)
}
