// Package diag holds source positions and the diagnostics every stage of the
// potato pipeline reports.
package diag

import "fmt"

// Position is a location in source text.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based line number
	Column int // 0-based column, counted in characters
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Range is the half-open span [Start, End) of source text.
type Range struct {
	Start Position
	End   Position
}

// Span returns the range from the start of a to the end of b.
func Span(a, b Range) Range {
	return Range{Start: a.Start, End: b.End}
}

// Text returns the slice of source covered by r.
func (r Range) Text(source string) string {
	start, end := r.Start.Offset, r.End.Offset
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if start > end {
		return ""
	}
	return source[start:end]
}

func (r Range) String() string {
	return fmt.Sprintf("from ln %d, col %d to ln %d, col %d",
		r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}
