package server

import (
	"fmt"
	"sort"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/chazu/potato/compiler"
	"github.com/chazu/potato/diag"
	"github.com/chazu/potato/vm"
)

var keywordDocs = map[string]string{
	"if":    "`if TEST { ... }` runs the block when TEST is true.",
	"else":  "`else { ... }` or `else if TEST { ... }` runs when the preceding test is false.",
	"true":  "Boolean literal.",
	"false": "Boolean literal.",
}

// complete lists built-ins, then keywords, whose names start with prefix.
func (s *Server) complete(prefix string) []protocol.CompletionItem {
	var items []protocol.CompletionItem

	for _, name := range s.names.All() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		fn, _ := s.names.Function(name)
		items = append(items, protocol.CompletionItem{
			Label:         name,
			Kind:          ptr(protocol.CompletionItemKindFunction),
			Detail:        ptr("built-in"),
			Documentation: fn.Doc,
			InsertText:    ptr(name),
		})
	}

	var keywords []string
	for kw := range compiler.Keywords {
		if strings.HasPrefix(kw, prefix) {
			keywords = append(keywords, kw)
		}
	}
	sort.Strings(keywords)
	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{
			Label:      kw,
			Kind:       ptr(protocol.CompletionItemKindKeyword),
			InsertText: ptr(kw),
		})
	}
	return items
}

func (s *Server) hover(word string) *protocol.Hover {
	var value string
	if fn, ok := s.names.Function(word); ok {
		value = fmt.Sprintf("**%s** (built-in)\n\n%s", fn.Name, fn.Doc)
	} else if doc, ok := keywordDocs[word]; ok {
		value = fmt.Sprintf("**%s** (keyword)\n\n%s", word, doc)
	} else {
		return nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: value},
	}
}

// diagnose compiles text without running it. A front-end failure yields one
// error; otherwise every identifier that names no built-in is a warning,
// since the same name would fail at run time.
func (s *Server) diagnose(text string) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}

	prog, err := compiler.Parse(text)
	if err == nil {
		_, err = compiler.Compile(prog)
	}
	if err != nil {
		return append(out, toDiagnostic(err, protocol.DiagnosticSeverityError))
	}

	compiler.Walk(prog, func(n compiler.Node) bool {
		id, ok := n.(*compiler.Identifier)
		if !ok {
			return true
		}
		if _, bound := s.names.Lookup(id.Name); bound {
			return true
		}
		d := diag.ErrorAt(diag.KindName, id.Span(), vm.ErrUnknownName, "name %q is not defined.", id.Name)
		if match, ok := s.names.Suggest(id.Name, vm.SuggestionThreshold); ok {
			d.Hint = "Did you mean: " + match
		}
		out = append(out, toDiagnostic(d, protocol.DiagnosticSeverityWarning))
		return true
	})
	return out
}

func toDiagnostic(err error, severity protocol.DiagnosticSeverity) protocol.Diagnostic {
	out := protocol.Diagnostic{
		Severity: &severity,
		Source:   ptr(serverName),
		Message:  err.Error(),
	}
	d, ok := diag.As(err)
	if !ok {
		return out
	}
	out.Message = d.Kind.String() + ": " + d.Message
	if d.Hint != "" {
		out.Message += "\n" + d.Hint
	}
	if d.HasRange {
		out.Range = protocol.Range{Start: toPosition(d.Range.Start), End: toPosition(d.Range.End)}
	}
	return out
}

// toPosition converts to LSP coordinates. LSP lines are 0-based; columns
// already are.
func toPosition(p diag.Position) protocol.Position {
	line := max(p.Line-1, 0)
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(p.Column),
	}
}
