// Package qalc provides the public API for the qalc notebook engine.
package qalc

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"qalctxt.net/qalc/internal/notebook"
	"qalctxt.net/qalc/internal/store"
	"qalctxt.net/qalc/internal/value"
)

// Notebook is a calculation notebook runtime: a document of expression
// lines, the recompute engine, and optional persistence.
type Notebook struct {
	doc      *notebook.Document
	store    store.DocumentStore
	autoSave bool
}

// LineResult is the rendered outcome of one line after a recompute.
type LineResult struct {
	Index   int
	Input   string
	Output  string // "" for comment and blank lines
	Kind    string // "single", "multiple", or "error"; "" when no record
	IsError bool
}

// New creates a notebook runtime with the given options.
func New(opts ...Option) *Notebook {
	n := &Notebook{}
	for _, opt := range opts {
		opt(n)
	}
	n.doc = notebook.New(nil)
	return n
}

// Eval replaces the document with text and recomputes every line. Results
// come back in line order; failed lines carry their error as Output.
func (n *Notebook) Eval(text string) []LineResult {
	n.doc.SetText(text)
	return n.RecomputeAll()
}

// EvalLine appends one line and recomputes only it.
func (n *Notebook) EvalLine(raw string) LineResult {
	idx := n.doc.Append(raw)
	n.doc.RecomputeOne(idx)
	if n.autoSave {
		n.Save()
	}
	return n.result(idx)
}

// SetLine replaces the text of a line and marks it dirty. Nothing is
// recomputed until RecomputeOne or RecomputeAll runs.
func (n *Notebook) SetLine(idx int, raw string) {
	n.doc.SetLine(idx, raw)
}

// RecomputeOne reevaluates a single line against the stored results of the
// others.
func (n *Notebook) RecomputeOne(idx int) LineResult {
	n.doc.RecomputeOne(idx)
	if n.autoSave {
		n.Save()
	}
	return n.result(idx)
}

// RecomputeAll reevaluates the whole document top to bottom and returns
// every line's result.
func (n *Notebook) RecomputeAll() []LineResult {
	n.doc.RecomputeAll()
	out := make([]LineResult, n.doc.Len())
	for i := range out {
		out[i] = n.result(i + 1)
	}
	if n.autoSave {
		n.Save()
	}
	return out
}

// Len returns the number of document lines.
func (n *Notebook) Len() int { return n.doc.Len() }

// Line returns the current result of one line.
func (n *Notebook) Line(idx int) LineResult { return n.result(idx) }

// Stats summarizes the current result store.
func (n *Notebook) Stats() store.Stats { return n.doc.Stats() }

// Save writes the document and its results to the configured store.
func (n *Notebook) Save() error {
	if n.store == nil {
		return fmt.Errorf("no document store configured")
	}
	return n.store.Save(n.doc.Snapshot())
}

// Load replaces the document with the store's persisted snapshot.
func (n *Notebook) Load() error {
	if n.store == nil {
		return fmt.Errorf("no document store configured")
	}
	doc, err := n.store.Load()
	if err != nil {
		return err
	}
	n.doc.Restore(doc)
	return nil
}

// EvalReader evaluates notebook text from a reader.
func (n *Notebook) EvalReader(r io.Reader) ([]LineResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return n.Eval(string(data)), nil
}

// EvalFile evaluates a notebook text file.
func (n *Notebook) EvalFile(path string) ([]LineResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return n.EvalReader(f)
}

// WriteTo renders the document as annotated plain text: each line that has
// a result gets it appended as a trailing comment.
func (n *Notebook) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for idx := 1; idx <= n.doc.Len(); idx++ {
		raw := n.doc.Raw(idx)
		line := raw
		if rec, ok := n.doc.Record(idx); ok {
			line = fmt.Sprintf("%s  # = %s", raw, rec.Display())
		}
		c, err := fmt.Fprintln(bw, line)
		total += int64(c)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// SaveFile writes the annotated plain-text rendering to a file.
func (n *Notebook) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := n.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Close releases resources.
func (n *Notebook) Close() error {
	if n.store != nil {
		return n.store.Close()
	}
	return nil
}

func (n *Notebook) result(idx int) LineResult {
	lr := LineResult{Index: idx, Input: n.doc.Raw(idx)}
	rec, ok := n.doc.Record(idx)
	if !ok {
		return lr
	}
	lr.Output = rec.Display()
	lr.Kind = rec.Kind.String()
	lr.IsError = rec.Kind == value.Error
	return lr
}
