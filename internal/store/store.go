// Package store provides the notebook result store and document persistence.
package store

import "qalctxt.net/qalc/internal/value"

// DocLine is one serialized line of a notebook document: the raw text plus
// the result record it last evaluated to (nil for comment/blank lines).
type DocLine struct {
	Index  int
	Raw    string
	Record *value.Record
}

// DocumentStore persists whole notebook documents.
type DocumentStore interface {
	// Save replaces the persisted document.
	Save(doc []DocLine) error
	// Load retrieves the persisted document in line order. Returns an empty
	// document if nothing has been saved.
	Load() ([]DocLine, error)
	// Close releases resources.
	Close() error
}

// Stats summarizes the records currently held by a result store.
type Stats struct {
	Total     int
	Succeeded int
	Equations int // records with multiple solutions
	Errors    int
}
