package vm

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of code.
func Disassemble(code []Instruction) string {
	return DisassembleWithName(code, "")
}

// DisassembleWithName returns a listing with a name header.
func DisassembleWithName(code []Instruction, name string) string {
	var sb strings.Builder

	if name != "" {
		sb.WriteString(fmt.Sprintf("; === %s ===\n", name))
	}
	sb.WriteString(fmt.Sprintf("; %d instructions\n", len(code)))

	for i, in := range code {
		line := fmt.Sprintf("%04d  %-26s%s", i, in.Op, in.OperandString())
		if in.Op.IsJump() {
			line += fmt.Sprintf(" (-> %04d)", i+in.Arg)
		}
		if in.Range.Start.Line > 0 {
			line += fmt.Sprintf("  ; ln %d", in.Range.Start.Line)
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteString("\n")
	}

	return sb.String()
}
