// Package vm implements the potato virtual machine.
//
// This package contains:
//   - the tagged runtime value (operand) model
//   - opcodes and the flat instruction format produced by the compiler
//   - a fixed-capacity operand stack
//   - the immutable built-in name table with edit-distance suggestions
//   - the execute-once interpreter loop
//   - a disassembler for instruction listings
package vm
