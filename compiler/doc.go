// Package compiler turns potato source into bytecode for package vm.
//
// The front end runs in three stages. A Cursor walks the source and tracks
// line and column. The Lexer turns it into Tokens with one token of
// lookahead. The Parser builds a Program by recursive descent, climbing
// operator precedence for binary expressions. Compile then flattens the tree
// into []vm.Instruction with relative forward jumps.
//
// Every stage stops at the first problem and returns a *diag.Error whose
// Range points at the offending source.
package compiler
