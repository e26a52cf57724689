package vm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chazu/potato/diag"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func runCode(t *testing.T, code []Instruction) (string, error) {
	t.Helper()
	var out bytes.Buffer
	m, err := New(code, Options{Stdout: &out})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = m.Run()
	return out.String(), err
}

func num(f float64) Instruction { return LoadConst(NumberValue(f)) }
func str(s string) Instruction  { return LoadConst(StringValue(s)) }
func boolean(b bool) Instruction {
	return LoadConst(BoolValue(b))
}

// println(<value produced by body>)
func printlnOf(body ...Instruction) []Instruction {
	code := []Instruction{LoadName("println")}
	code = append(code, body...)
	return append(code, CallFunction(1), PopTop())
}

// ---------------------------------------------------------------------------
// Execution
// ---------------------------------------------------------------------------

func TestRunPrintln(t *testing.T) {
	out, err := runCode(t, printlnOf(num(2), num(1), BinaryOperation(Add)))
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\n" {
		t.Errorf("output = %q, want %q", out, "3\n")
	}
}

func TestRunArgumentOrder(t *testing.T) {
	// println("a", "b", "c") compiles its arguments in reverse.
	code := []Instruction{
		LoadName("println"),
		str("c"), str("b"), str("a"),
		CallFunction(3),
		PopTop(),
	}
	out, err := runCode(t, code)
	if err != nil {
		t.Fatal(err)
	}
	if out != "a b c\n" {
		t.Errorf("output = %q", out)
	}
}

func TestBinaryOperandOrder(t *testing.T) {
	// right is pushed first: 10 - 4
	out, err := runCode(t, printlnOf(num(4), num(10), BinaryOperation(Subtract)))
	if err != nil {
		t.Fatal(err)
	}
	if out != "6\n" {
		t.Errorf("10 - 4 = %q", out)
	}
}

func TestBinaryOperations(t *testing.T) {
	tests := []struct {
		name        string
		left, right Value
		op          Operator
		want        string
	}{
		{"add", NumberValue(1), NumberValue(2), Add, "3"},
		{"sub", NumberValue(1), NumberValue(2), Subtract, "-1"},
		{"mul", NumberValue(3), NumberValue(4), Multiply, "12"},
		{"div", NumberValue(5), NumberValue(7), Divide, "0.7142857142857143"},
		{"div by zero", NumberValue(1), NumberValue(0), Divide, "Infinity"},
		{"mod", NumberValue(50), NumberValue(9), Modulo, "5"},
		{"pow", NumberValue(2), NumberValue(10), Power, "1024"},
		{"lt", NumberValue(1), NumberValue(2), Less, "true"},
		{"gt", NumberValue(1), NumberValue(2), Greater, "false"},
		{"le", NumberValue(2), NumberValue(2), LessEqual, "true"},
		{"ge", NumberValue(1), NumberValue(2), GreaterEqual, "false"},
		{"num eq", NumberValue(5), NumberValue(5), Equal, "true"},
		{"num ne", NumberValue(5), NumberValue(5), NotEqual, "false"},
		{"concat", StringValue("a"), StringValue("b"), Add, "ab"},
		{"str eq", StringValue("a"), StringValue("a"), Equal, "true"},
		{"str ne", StringValue("a"), StringValue("b"), NotEqual, "true"},
		{"bool eq", BoolValue(true), BoolValue(false), Equal, "false"},
		{"bool ne", BoolValue(true), BoolValue(false), NotEqual, "true"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCode(t, printlnOf(LoadConst(tc.right), LoadConst(tc.left), BinaryOperation(tc.op)))
			if err != nil {
				t.Fatal(err)
			}
			if out != tc.want+"\n" {
				t.Errorf("%v %s %v = %q, want %q", tc.left, tc.op, tc.right, out, tc.want)
			}
		})
	}
}

func TestBinaryTypeErrors(t *testing.T) {
	tests := []struct {
		left, right Value
		op          Operator
		want        string
	}{
		{NumberValue(1), StringValue("a"), Add, "unsupported operation + between number and string"},
		{NumberValue(1), StringValue("1"), Equal, "unsupported operation == between number and string"},
		{StringValue("a"), StringValue("b"), Subtract, "unsupported operation - between string and string"},
		{StringValue("a"), StringValue("b"), Less, "unsupported operation < between string and string"},
		{BoolValue(true), BoolValue(true), Add, "unsupported operation + between boolean and boolean"},
		{BoolValue(true), NumberValue(1), NotEqual, "unsupported operation != between boolean and number"},
	}
	for _, tc := range tests {
		_, err := runCode(t, []Instruction{LoadConst(tc.right), LoadConst(tc.left), BinaryOperation(tc.op)})
		if !errors.Is(err, ErrUnsupportedOperation) {
			t.Errorf("%v %s %v: err = %v, want ErrUnsupportedOperation", tc.left, tc.op, tc.right, err)
			continue
		}
		d, _ := diag.As(err)
		if d.Kind != diag.KindType || d.Message != tc.want {
			t.Errorf("diagnostic = %v %q, want TypeError %q", d.Kind, d.Message, tc.want)
		}
	}
}

func TestUnaryNot(t *testing.T) {
	out, err := runCode(t, printlnOf(boolean(true), UnaryOperation(Not)))
	if err != nil {
		t.Fatal(err)
	}
	if out != "false\n" {
		t.Errorf("!true = %q", out)
	}

	_, err = runCode(t, []Instruction{num(1), UnaryOperation(Not)})
	if !errors.Is(err, ErrUnsupportedOperation) || !strings.Contains(err.Error(), "! on number") {
		t.Errorf("!1 = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Control flow
// ---------------------------------------------------------------------------

func TestPopJumpForwardIfFalse(t *testing.T) {
	body := printlnOf(str("yes"))
	for _, cond := range []bool{true, false} {
		code := []Instruction{boolean(cond), Jump(OpPopJumpForwardIfFalse, 2+len(body)), PopTop()}
		code = append(code, body...)

		var out bytes.Buffer
		m, _ := New(code, Options{Stdout: &out})
		if err := m.Run(); err != nil {
			t.Fatalf("cond %v: %v", cond, err)
		}
		want := ""
		if cond {
			want = "yes\n"
		}
		if out.String() != want {
			t.Errorf("cond %v: output = %q, want %q", cond, out.String(), want)
		}
		if m.Stack().Len() != 0 {
			t.Errorf("cond %v: stack left with %d values", cond, m.Stack().Len())
		}
		if m.ProgramCounter() != len(code) {
			t.Errorf("cond %v: pc = %d, want %d", cond, m.ProgramCounter(), len(code))
		}
	}
}

func TestPopJumpForwardIfTrue(t *testing.T) {
	code := []Instruction{boolean(true), Jump(OpPopJumpForwardIfTrue, 2), str("skipped")}
	m, _ := New(code, Options{Stdout: &bytes.Buffer{}})
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if m.Stack().Len() != 0 {
		t.Errorf("stack = %v, want empty", m.Stack().Values())
	}

	// No jump: the boolean stays on the stack.
	code = []Instruction{boolean(false), Jump(OpPopJumpForwardIfTrue, 2), str("kept")}
	m, _ = New(code, Options{Stdout: &bytes.Buffer{}})
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	vals := m.Stack().Values()
	if len(vals) != 2 || vals[0] != BoolValue(false) || vals[1] != StringValue("kept") {
		t.Errorf("stack = %v", vals)
	}
}

func TestJumpForward(t *testing.T) {
	code := []Instruction{Jump(OpJumpForward, 2)}
	code = append(code, printlnOf(str("no"))[:1]...)
	code = append(code, printlnOf(str("yes"))...)
	// Jump skips the stray LOAD_NAME at index 1.
	out, err := runCode(t, code)
	if err != nil {
		t.Fatal(err)
	}
	if out != "yes\n" {
		t.Errorf("output = %q", out)
	}
}

func TestConditionMustBeBoolean(t *testing.T) {
	_, err := runCode(t, []Instruction{num(1), Jump(OpPopJumpForwardIfFalse, 1)})
	if !diag.IsKind(err, diag.KindType) || !strings.Contains(err.Error(), "got number") {
		t.Errorf("err = %v", err)
	}
}

func TestInvalidJumps(t *testing.T) {
	for _, code := range [][]Instruction{
		{Jump(OpJumpForward, 0)},
		{Jump(OpJumpForward, -1)},
		{Jump(OpJumpForward, 5)},
	} {
		if _, err := runCode(t, code); !errors.Is(err, ErrInvalidJump) {
			t.Errorf("%v: err = %v, want ErrInvalidJump", code[0], err)
		}
	}

	// Jumping exactly to the end is allowed.
	if _, err := runCode(t, []Instruction{Jump(OpJumpForward, 1)}); err != nil {
		t.Errorf("jump to end: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Names and calls
// ---------------------------------------------------------------------------

func TestUnknownNameSuggests(t *testing.T) {
	_, err := runCode(t, []Instruction{LoadName("prntln")})
	if !errors.Is(err, ErrUnknownName) {
		t.Fatalf("err = %v, want ErrUnknownName", err)
	}
	d, _ := diag.As(err)
	if d.Kind != diag.KindName {
		t.Errorf("kind = %v", d.Kind)
	}
	if !strings.Contains(d.Message, `"prntln"`) {
		t.Errorf("message %q should name the identifier", d.Message)
	}
	if d.Hint != "Did you mean: println" {
		t.Errorf("hint = %q", d.Hint)
	}
}

func TestUnknownNameWithoutSuggestion(t *testing.T) {
	_, err := runCode(t, []Instruction{LoadName("frobnicate")})
	d, ok := diag.As(err)
	if !ok || d.Kind != diag.KindName {
		t.Fatalf("err = %v", err)
	}
	if d.Hint != "" {
		t.Errorf("unexpected hint %q", d.Hint)
	}
}

func TestLoadNameRequiresString(t *testing.T) {
	_, err := runCode(t, []Instruction{{Op: OpLoadName, Const: NumberValue(1)}})
	if !diag.IsKind(err, diag.KindType) || !strings.Contains(err.Error(), "by type number") {
		t.Errorf("err = %v", err)
	}
}

func TestCallNonFunction(t *testing.T) {
	_, err := runCode(t, []Instruction{num(5), CallFunction(0)})
	if !errors.Is(err, ErrNotCallable) {
		t.Fatalf("err = %v, want ErrNotCallable", err)
	}
	if !strings.Contains(err.Error(), `"number" is not callable`) {
		t.Errorf("message %q should name the runtime type", err)
	}
}

func TestCallPushesResult(t *testing.T) {
	fn := &Function{Name: "seven", Call: func([]Value) (Value, error) { return NumberValue(7), nil }}
	var out bytes.Buffer
	names := NewNames(fn, Builtins(&out).mustFunction("println"))

	code := printlnOf(LoadName("seven"), CallFunction(0))
	m, err := New(code, Options{Names: names})
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "7\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestNativeErrorBecomesRuntimeError(t *testing.T) {
	boom := errors.New("boom")
	fn := &Function{Name: "fail", Call: func([]Value) (Value, error) { return None, boom }}
	m, _ := New([]Instruction{LoadName("fail"), CallFunction(0)}, Options{Names: NewNames(fn)})

	err := m.Run()
	if !errors.Is(err, boom) || !errors.Is(err, ErrNativeCall) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !diag.IsKind(err, diag.KindRuntime) {
		t.Errorf("kind mismatch: %v", err)
	}
}

func TestStackUnderflowOnCall(t *testing.T) {
	_, err := runCode(t, []Instruction{LoadName("println"), CallFunction(2)})
	if !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("err = %v, want ErrStackUnderflow", err)
	}
}

func TestStackOverflowDuringRun(t *testing.T) {
	code := []Instruction{num(1), num(2), num(3)}
	m, _ := New(code, Options{StackSize: 2, Stdout: &bytes.Buffer{}})
	err := m.Run()
	if !errors.Is(err, ErrStackOverflow) || !strings.Contains(err.Error(), "limit 2") {
		t.Errorf("err = %v", err)
	}
	if m.ProgramCounter() != 2 {
		t.Errorf("pc = %d, want failing instruction 2", m.ProgramCounter())
	}
}

// ---------------------------------------------------------------------------
// Lifecycle and errors
// ---------------------------------------------------------------------------

func TestRunOnlyOnce(t *testing.T) {
	m, _ := New(nil, Options{Stdout: &bytes.Buffer{}})
	if m.Executed() {
		t.Error("fresh VM reports executed")
	}
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	if err := m.Run(); !errors.Is(err, ErrAlreadyExecuted) {
		t.Errorf("second Run = %v, want ErrAlreadyExecuted", err)
	}
}

func TestUnknownOpcode(t *testing.T) {
	_, err := runCode(t, []Instruction{{Op: Opcode(0xEE)}})
	if !errors.Is(err, ErrUnknownOpcode) || !diag.IsKind(err, diag.KindRuntime) {
		t.Errorf("err = %v, want unknown opcode", err)
	}
}

func TestInvalidStackSizeOption(t *testing.T) {
	if _, err := New(nil, Options{StackSize: -5}); !errors.Is(err, ErrInvalidStackSize) {
		t.Errorf("New = %v", err)
	}
	m, err := New(nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if m.Stack().Limit() != DefaultStackSize {
		t.Errorf("default limit = %d", m.Stack().Limit())
	}
}

func TestErrorsCarryInstructionRange(t *testing.T) {
	r := diag.Range{
		Start: diag.Position{Offset: 0, Line: 3, Column: 4},
		End:   diag.Position{Offset: 6, Line: 3, Column: 10},
	}
	_, err := runCode(t, []Instruction{LoadName("prntln").At(r)})
	d, ok := diag.As(err)
	if !ok || !d.HasRange || d.Range != r {
		t.Errorf("diagnostic range = %+v, want %+v", d, r)
	}

	_, err = runCode(t, []Instruction{LoadName("prntln")})
	if d, _ := diag.As(err); d.HasRange {
		t.Error("unlocated instruction should not invent a range")
	}
}

func (n *Names) mustFunction(name string) *Function {
	fn, ok := n.Function(name)
	if !ok {
		panic("missing builtin " + name)
	}
	return fn
}
