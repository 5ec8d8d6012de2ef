package qalc

import (
	"qalctxt.net/qalc/internal/store"
	"qalctxt.net/qalc/internal/value"
)

// Option configures a Notebook.
type Option func(*Notebook)

// WithSQLiteStore configures SQLite persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(n *Notebook) {
		s, err := store.NewSQLite(path)
		if err == nil {
			n.store = s
		}
	}
}

// WithMemoryStore configures an in-memory document store (for testing).
func WithMemoryStore() Option {
	return func(n *Notebook) {
		n.store = store.NewMemory()
	}
}

// WithStore configures a custom document store.
func WithStore(s DocumentStore) Option {
	return func(n *Notebook) {
		n.store = s
	}
}

// WithAutoSave saves the document to the configured store after every
// recompute.
func WithAutoSave() Option {
	return func(n *Notebook) {
		n.autoSave = true
	}
}

// DocumentStore persists whole notebook documents.
type DocumentStore = store.DocumentStore

// DocLine is one persisted line of a document.
type DocLine = store.DocLine

// Record is the evaluated result of one line.
type Record = value.Record
