package server

import (
	"strings"
	"unicode"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// prefixAt returns the identifier fragment ending at pos, for completion.
func prefixAt(text string, pos protocol.Position) string {
	line, start, _, col, ok := wordBounds(text, pos)
	if !ok {
		return ""
	}
	return line[start:col]
}

// wordAt returns the whole identifier touching pos, for hover.
func wordAt(text string, pos protocol.Position) string {
	line, start, end, _, ok := wordBounds(text, pos)
	if !ok {
		return ""
	}
	return line[start:end]
}

// wordBounds finds the line at pos and the identifier around its column.
// The column is clamped to the line length; ok is false past the last line.
func wordBounds(text string, pos protocol.Position) (line string, start, end, col int, ok bool) {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return "", 0, 0, 0, false
	}
	line = strings.TrimSuffix(lines[pos.Line], "\r")
	col = min(int(pos.Character), len(line))

	start = col
	for start > 0 && isWordChar(rune(line[start-1])) {
		start--
	}
	end = col
	for end < len(line) && isWordChar(rune(line[end])) {
		end++
	}
	return line, start, end, col, true
}

func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}
