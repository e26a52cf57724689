// Potato CLI - runs, inspects and serves potato scripts
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/potato/compiler"
	"github.com/chazu/potato/diag"
	"github.com/chazu/potato/manifest"
	"github.com/chazu/potato/pipeline"
	"github.com/chazu/potato/server"
	"github.com/chazu/potato/vm"
)

const (
	exitOK         = 0
	exitDiagnostic = 1
	exitUsage      = 2
)

var log = commonlog.GetLogger("potato.cli")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	verbosity int
	eval      string
	tokens    bool
	ast       bool
	dis       bool
	trace     bool
	stack     int
	color     string
	lsp       bool
}

func newFlagSet(stderr io.Writer, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("potato", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&opts.verbosity, "v", 0, "Log verbosity (0 quiet, 1 info, 2 debug)")
	fs.StringVar(&opts.eval, "e", "", "Evaluate the given source instead of a file")
	fs.BoolVar(&opts.tokens, "tokens", false, "Print the token stream and exit")
	fs.BoolVar(&opts.ast, "ast", false, "Print the parsed tree and exit")
	fs.BoolVar(&opts.dis, "dis", false, "Print the compiled bytecode and exit")
	fs.BoolVar(&opts.trace, "trace", false, "Log every executed instruction (needs -v 2)")
	fs.IntVar(&opts.stack, "stack", 0, "Operand stack size (default from potato.toml, else 1024)")
	fs.StringVar(&opts.color, "color", "", "Colour diagnostics: auto, always or never")
	fs.BoolVar(&opts.lsp, "lsp", false, "Start the language server on stdio")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: potato [options] [file.pt]\n\n")
		fmt.Fprintf(stderr, "Runs a potato script. Without a file, the entry from potato.toml is used.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  potato main.pt                 # Run a script\n")
		fmt.Fprintf(stderr, "  potato -e 'println(1 + 2)'     # Run inline source\n")
		fmt.Fprintf(stderr, "  potato -dis main.pt            # Show bytecode\n")
		fmt.Fprintf(stderr, "  potato -lsp                    # Start language server\n")
	}
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(stderr, &opts)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	m, err := manifest.FindAndLoad(cwd)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if m == nil {
		m = manifest.Default()
	}

	if set["v"] {
		m.Log.Verbosity = opts.verbosity
	}
	if set["stack"] {
		m.VM.StackSize = opts.stack
	}
	if set["color"] {
		mode, err := manifest.ParseColorMode(opts.color)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		m.Output.Color = mode
	}
	if err := m.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	commonlog.Configure(m.Log.Verbosity, m.LogFile())

	if opts.lsp {
		log.Info("starting language server")
		if err := server.New().RunStdio(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitDiagnostic
		}
		return exitOK
	}

	source, filename, err := readSource(fs.Args(), set["e"], opts.eval, m)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, errNoInput) {
			fs.Usage()
		}
		return exitUsage
	}

	printer := diag.NewPrinter(stderr, m.Output.Color.Enabled(isTerminal(stderr)), filename)
	fail := func(err error) int {
		printer.Print(err, source)
		return exitDiagnostic
	}

	if opts.tokens {
		listing, err := compiler.DumpTokens(source)
		fmt.Fprint(stdout, listing)
		if err != nil {
			return fail(err)
		}
		if !opts.ast && !opts.dis {
			return exitOK
		}
	}

	prog, err := pipeline.Compile(source)
	if err != nil {
		return fail(err)
	}
	if opts.ast {
		fmt.Fprintln(stdout, compiler.FormatNode(prog.AST))
	}
	if opts.dis {
		fmt.Fprint(stdout, vm.DisassembleWithName(prog.Code, filename))
	}
	if opts.tokens || opts.ast || opts.dis {
		return exitOK
	}

	runner := pipeline.NewRunner(pipeline.Options{
		StackSize: m.VM.StackSize,
		Stdout:    stdout,
		Trace:     opts.trace,
	})
	if err := runner.Execute(prog); err != nil {
		return fail(err)
	}
	return exitOK
}

var errNoInput = errors.New("no input: pass a file, -e, or set [project] entry in " + manifest.FileName)

// readSource picks the script: -e, then the first argument, then the
// manifest entry.
func readSource(args []string, hasEval bool, eval string, m *manifest.Manifest) (string, string, error) {
	if hasEval {
		if len(args) > 0 {
			return "", "", fmt.Errorf("-e and a file are mutually exclusive")
		}
		return eval, diag.DefaultFilename, nil
	}

	var path string
	switch {
	case len(args) > 1:
		return "", "", fmt.Errorf("expected one file, got %d", len(args))
	case len(args) == 1:
		path = args[0]
	default:
		path = m.EntryPath()
	}
	if path == "" {
		return "", "", errNoInput
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
