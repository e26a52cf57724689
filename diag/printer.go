package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// DefaultFilename labels sources that did not come from a file.
const DefaultFilename = "<input>"

// Printer renders diagnostics with a source excerpt and a caret.
type Printer struct {
	out      *termenv.Output
	Filename string
}

// NewPrinter returns a printer writing to w. Colour escapes are emitted only
// when color is true.
func NewPrinter(w io.Writer, color bool, filename string) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	if filename == "" {
		filename = DefaultFilename
	}
	return &Printer{
		out:      termenv.NewOutput(w, termenv.WithProfile(profile)),
		Filename: filename,
	}
}

// Print writes err. Diagnostics get the full excerpt; any other error is
// printed as a plain message.
func (p *Printer) Print(err error, source string) {
	d, ok := As(err)
	if !ok {
		fmt.Fprintf(p.out, "%s %s\n", p.red("error:"), err)
		return
	}

	if d.HasRange {
		start := d.Range.Start
		line := SourceLine(source, start.Line)
		gutter := fmt.Sprintf(" %d |", start.Line)

		fmt.Fprintf(p.out, "file %q\n", p.Filename)
		fmt.Fprintf(p.out, "%s %s\n", p.gray(gutter), line)

		indent := runewidth.StringWidth(gutter) + 1 + runewidth.StringWidth(columnPrefix(line, start.Column))
		caret := fmt.Sprintf("^ line %d, column %d", start.Line, start.Column)
		fmt.Fprintf(p.out, "%s%s\n", strings.Repeat(" ", indent), p.out.String(caret).Bold())
	}

	fmt.Fprintf(p.out, "%s: %s\n", p.red(d.Kind.String()), d.Message)
	if d.Hint != "" {
		fmt.Fprintf(p.out, "%s %s\n", p.green("help:"), d.Hint)
	}
}

func (p *Printer) red(s string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color("9")).Bold()
}

func (p *Printer) green(s string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color("10"))
}

func (p *Printer) gray(s string) termenv.Style {
	return p.out.String(s).Foreground(p.out.Color("8"))
}

// SourceLine returns the 1-based line of source without its terminator.
// Out-of-range lines yield "".
func SourceLine(source string, line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}

// columnPrefix returns the first column characters of line.
func columnPrefix(line string, column int) string {
	n := 0
	for i := range line {
		if n == column {
			return line[:i]
		}
		n++
	}
	return line
}
