package server

import (
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// documents holds the latest full text of every open document.
type documents struct {
	mu    sync.RWMutex
	texts map[protocol.DocumentUri]string
}

func newDocuments() *documents {
	return &documents{texts: make(map[protocol.DocumentUri]string)}
}

func (d *documents) put(uri protocol.DocumentUri, text string) {
	d.mu.Lock()
	d.texts[uri] = text
	d.mu.Unlock()
}

func (d *documents) get(uri protocol.DocumentUri) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	text, ok := d.texts[uri]
	return text, ok
}

func (d *documents) remove(uri protocol.DocumentUri) {
	d.mu.Lock()
	delete(d.texts, uri)
	d.mu.Unlock()
}

func (d *documents) len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.texts)
}
