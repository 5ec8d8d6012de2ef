// Package notebook holds the document controller: ordered lines of text,
// their evaluation pipeline, and the dirty-tracking recompute cycle.
package notebook

import (
	"strings"

	"qalctxt.net/qalc/internal/eval"
	"qalctxt.net/qalc/internal/parse"
	"qalctxt.net/qalc/internal/ref"
	"qalctxt.net/qalc/internal/scanner"
	"qalctxt.net/qalc/internal/solve"
	"qalctxt.net/qalc/internal/store"
	"qalctxt.net/qalc/internal/value"
)

// State is the recompute lifecycle of a document.
type State int

const (
	Clean State = iota
	Dirty
	Recomputing
)

// String returns the display name of a document state.
func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Recomputing:
		return "recomputing"
	}
	return "unknown"
}

// Document is a calculation notebook: ordered lines of text evaluated top
// to bottom, each line's result addressable from later lines as @N or @N.M.
// Lines are numbered from 1, the way references write them. All methods run
// on a single controller goroutine; the result store carries its own lock
// for concurrent readers.
type Document struct {
	ns      *eval.Namespace
	results *store.Results
	lines   []string
	dirty   map[int]bool
	state   State
}

// New creates an empty document evaluating against the given namespace.
// A nil namespace means the default permitted-name table.
func New(ns *eval.Namespace) *Document {
	if ns == nil {
		ns = eval.Default()
	}
	return &Document{
		ns:      ns,
		results: store.NewResults(),
		dirty:   make(map[int]bool),
	}
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// State returns the recompute lifecycle state.
func (d *Document) State() State { return d.state }

// Raw returns the raw text of a line, comment included.
func (d *Document) Raw(idx int) string {
	if idx < 1 || idx > len(d.lines) {
		return ""
	}
	return d.lines[idx-1]
}

// Record returns the stored result record of a line, if it has one. Comment
// and blank lines never do.
func (d *Document) Record(idx int) (*value.Record, bool) {
	return d.results.Get(idx)
}

// Display returns the rendered result of a line, or "" when the line has no
// record.
func (d *Document) Display(idx int) string {
	rec, ok := d.results.Get(idx)
	if !ok {
		return ""
	}
	return rec.Display()
}

// Stats summarizes the current result store.
func (d *Document) Stats() store.Stats { return d.results.Stats() }

// SetLine replaces the text of a line, growing the document with blank lines
// if idx is past the end, and marks the line dirty. Stored results of other
// lines are left as they are until the next recompute.
func (d *Document) SetLine(idx int, raw string) {
	if idx < 1 {
		return
	}
	for len(d.lines) < idx {
		d.lines = append(d.lines, "")
	}
	d.lines[idx-1] = raw
	d.markDirty(idx)
}

// Append adds a line at the end and returns its index.
func (d *Document) Append(raw string) int {
	d.lines = append(d.lines, raw)
	idx := len(d.lines)
	d.markDirty(idx)
	return idx
}

// Insert places a line at idx, shifting later lines down. The shifted lines
// keep their text but every line from idx on is marked dirty, since the
// renumbering changes what their references point at.
func (d *Document) Insert(idx int, raw string) {
	if idx < 1 || idx > len(d.lines)+1 {
		return
	}
	d.lines = append(d.lines, "")
	copy(d.lines[idx:], d.lines[idx-1:])
	d.lines[idx-1] = raw
	d.invalidateFrom(idx)
}

// Remove deletes a line, shifting later lines up and marking them dirty.
func (d *Document) Remove(idx int) {
	if idx < 1 || idx > len(d.lines) {
		return
	}
	d.lines = append(d.lines[:idx-1], d.lines[idx:]...)
	d.results.Delete(len(d.lines) + 1)
	d.invalidateFrom(idx)
}

// SetText replaces the whole document with the given text, one line per
// newline, and marks every line dirty.
func (d *Document) SetText(text string) {
	d.lines = strings.Split(text, "\n")
	d.results.Clear()
	d.dirty = make(map[int]bool)
	d.invalidateFrom(1)
}

func (d *Document) markDirty(idx int) {
	d.dirty[idx] = true
	d.state = Dirty
}

func (d *Document) invalidateFrom(idx int) {
	for i := idx; i <= len(d.lines); i++ {
		d.dirty[i] = true
	}
	for i := range d.dirty {
		if i > len(d.lines) {
			delete(d.dirty, i)
			d.results.Delete(i)
		}
	}
	if len(d.dirty) > 0 {
		d.state = Dirty
	}
}

// RecomputeOne reevaluates a single line against the results already in the
// store and returns its new record, nil when the line is blank or a whole
// line comment. Downstream lines are not recomputed.
func (d *Document) RecomputeOne(idx int) *value.Record {
	if idx < 1 || idx > len(d.lines) {
		return nil
	}
	d.state = Recomputing
	rec := d.evaluate(idx, d.lines[idx-1])
	if rec == nil {
		d.results.Delete(idx)
	} else {
		d.results.Put(rec)
	}
	delete(d.dirty, idx)
	if len(d.dirty) == 0 {
		d.state = Clean
	} else {
		d.state = Dirty
	}
	return rec
}

// RecomputeAll reevaluates every line in ascending order. A failing line
// stores an error record and the pass continues; it never aborts.
func (d *Document) RecomputeAll() {
	d.state = Recomputing
	for idx := 1; idx <= len(d.lines); idx++ {
		rec := d.evaluate(idx, d.lines[idx-1])
		if rec == nil {
			d.results.Delete(idx)
		} else {
			d.results.Put(rec)
		}
	}
	d.dirty = make(map[int]bool)
	d.state = Clean
}

// evaluate runs the full pipeline for one line: strip the comment, classify,
// resolve references against earlier results, then dispatch to the matching
// evaluator. Every failure comes back as an error record; evaluate itself
// cannot fail.
func (d *Document) evaluate(idx int, raw string) *value.Record {
	text, wholeLine := scanner.StripComment(raw)
	if wholeLine {
		return nil
	}

	class := Classify(text)
	if class == System {
		return value.NewError(idx, value.Errorf(value.ErrSyntax, "equation systems are not supported"))
	}

	resolved, err := ref.Resolve(text, idx, d.results)
	if err != nil {
		return value.NewError(idx, value.AsEvalError(err))
	}

	switch class {
	case Symbolic:
		return d.evalDirective(idx, resolved)
	case Equation:
		return d.evalEquation(idx, resolved)
	default:
		return d.evalExpr(idx, resolved)
	}
}

func (d *Document) evalExpr(idx int, text string) *value.Record {
	n, err := parse.Expr(text)
	if err != nil {
		return value.NewError(idx, value.AsEvalError(err))
	}
	v, err := eval.Evaluate(n, d.ns)
	if err != nil {
		return value.NewError(idx, value.AsEvalError(err))
	}
	return value.NewSingle(idx, v)
}

func (d *Document) evalEquation(idx int, text string) *value.Record {
	n, err := parse.Line(text)
	if err != nil {
		return value.NewError(idx, value.AsEvalError(err))
	}
	eq, ok := n.(parse.Equation)
	if !ok {
		return value.NewError(idx, value.Errorf(value.ErrSyntax, "expected an equation"))
	}
	rs, err := solve.Solve(eq.L, eq.R, "", d.ns)
	if err != nil {
		return value.NewError(idx, value.AsEvalError(err))
	}
	vs := make([]value.Value, len(rs))
	for i, r := range rs {
		vs[i] = r
	}
	return value.NewMultiple(idx, vs)
}

func (d *Document) evalDirective(idx int, text string) *value.Record {
	n, err := parse.Line(text)
	if err != nil {
		return value.NewError(idx, value.AsEvalError(err))
	}
	c, ok := n.(parse.Call)
	if !ok || !solve.IsDirective(c.Name) {
		return value.NewError(idx, value.Errorf(value.ErrSyntax, "expected a directive call"))
	}
	vs, multiple, err := solve.Directive(c.Name, c.Args, d.ns)
	if err != nil {
		return value.NewError(idx, value.AsEvalError(err))
	}
	if multiple {
		return value.NewMultiple(idx, vs)
	}
	return value.NewSingle(idx, vs[0])
}

// Snapshot serializes the document for a store.DocumentStore.
func (d *Document) Snapshot() []store.DocLine {
	doc := make([]store.DocLine, len(d.lines))
	for i, raw := range d.lines {
		idx := i + 1
		rec, _ := d.results.Get(idx)
		doc[i] = store.DocLine{Index: idx, Raw: raw, Record: rec}
	}
	return doc
}

// Restore replaces the document with a persisted snapshot. The stored
// records come back as-is; call RecomputeAll to reevaluate instead of
// trusting them.
func (d *Document) Restore(doc []store.DocLine) {
	d.lines = d.lines[:0]
	d.results.Clear()
	d.dirty = make(map[int]bool)
	for _, l := range doc {
		for len(d.lines) < l.Index {
			d.lines = append(d.lines, "")
		}
		d.lines[l.Index-1] = l.Raw
		if l.Record != nil {
			d.results.Put(l.Record)
		}
	}
	d.state = Clean
}
