// Package server implements a Language Server for potato scripts. It
// reports front-end diagnostics as the user types and offers completion and
// hover for built-in names and keywords.
package server

import (
	"io"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/chazu/potato/vm"
)

const (
	serverName    = "potato-lsp"
	serverVersion = "0.1.0"
)

var log = commonlog.GetLogger("potato.lsp")

// Server answers LSP requests over a glsp connection. Documents are synced
// in full on every change.
type Server struct {
	names   *vm.Names
	docs    *documents
	handler protocol.Handler
	conn    *glspserver.Server
}

// New returns a server that knows the default built-ins. They are only
// inspected, never called.
func New() *Server {
	s := &Server{
		names: vm.Builtins(io.Discard),
		docs:  newDocuments(),
	}
	s.handler = protocol.Handler{
		Initialize:             s.onInitialize,
		Initialized:            func(*glsp.Context, *protocol.InitializedParams) error { return nil },
		Shutdown:               s.onShutdown,
		SetTrace:               func(*glsp.Context, *protocol.SetTraceParams) error { return nil },
		TextDocumentDidOpen:    s.onOpen,
		TextDocumentDidChange:  s.onChange,
		TextDocumentDidClose:   s.onClose,
		TextDocumentCompletion: s.onCompletion,
		TextDocumentHover:      s.onHover,
	}
	s.conn = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio serves a single client on stdin/stdout until it disconnects.
func (s *Server) RunStdio() error {
	return s.conn.RunStdio()
}

func (s *Server) onInitialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initializing", "version", serverVersion)

	caps := s.handler.CreateServerCapabilities()
	full := protocol.TextDocumentSyncKindFull
	caps.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: ptr(true),
		Change:    &full,
	}
	caps.CompletionProvider = &protocol.CompletionOptions{}
	caps.HoverProvider = true

	version := serverVersion
	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo:   &protocol.InitializeResultServerInfo{Name: serverName, Version: &version},
	}, nil
}

func (s *Server) onShutdown(ctx *glsp.Context) error {
	log.Info("shutting down", "documents", s.docs.len())
	return nil
}

func (s *Server) onOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	s.docs.put(doc.URI, doc.Text)
	s.publish(ctx, doc.URI, s.diagnose(doc.Text))
	return nil
}

func (s *Server) onChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	n := len(params.ContentChanges)
	if n == 0 {
		return nil
	}
	// Full sync: only the last event matters.
	whole, ok := params.ContentChanges[n-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	uri := params.TextDocument.URI
	s.docs.put(uri, whole.Text)
	s.publish(ctx, uri, s.diagnose(whole.Text))
	return nil
}

func (s *Server) onClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.docs.remove(uri)
	s.publish(ctx, uri, []protocol.Diagnostic{})
	return nil
}

func (s *Server) onCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	text, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	prefix := prefixAt(text, params.Position)
	if prefix == "" {
		return nil, nil
	}
	return s.complete(prefix), nil
}

func (s *Server) onHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	text, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	word := wordAt(text, params.Position)
	if word == "" {
		return nil, nil
	}
	return s.hover(word), nil
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debug("publishing diagnostics", "uri", string(uri), "count", len(diagnostics))
	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptr[T any](v T) *T { return &v }
