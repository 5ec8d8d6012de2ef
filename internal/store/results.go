package store

import (
	"sync"

	"qalctxt.net/qalc/internal/value"
)

// Results is the live result store: an ordered-by-line mapping from line
// index to the record the line last evaluated to. It holds at most one
// record per index; a recompute overwrites. Recompute runs on a single
// controller goroutine; the lock exists so a UI thread or a background save
// can read concurrently.
type Results struct {
	mu      sync.RWMutex
	records map[int]*value.Record
}

// NewResults creates an empty result store.
func NewResults() *Results {
	return &Results{records: make(map[int]*value.Record)}
}

// Put stores a record at its line index, overwriting any previous record.
func (s *Results) Put(rec *value.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Line] = rec
}

// Get retrieves the record for a line index.
func (s *Results) Get(line int) (*value.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[line]
	return rec, ok
}

// Value returns the formatted value of one solution of a line's record.
// solution < 0 means a bare lookup, which yields solution 0 even on a
// multiple-solution record.
func (s *Results) Value(line, solution int) (string, error) {
	rec, ok := s.Get(line)
	if !ok {
		return "", value.Errorf(value.ErrUnresolvedReference, "line %d has no result", line)
	}
	if rec.Kind == value.Error {
		return "", value.Errorf(value.ErrUnresolvedReference, "line %d failed: %s", line, rec.Err)
	}
	v, ok := rec.Value(solution)
	if !ok {
		return "", value.Errorf(value.ErrIndexOutOfRange, "line %d has %d solution(s), index %d requested", line, len(rec.Values), solution)
	}
	return v.String(), nil
}

// Delete removes the record for a line index.
func (s *Results) Delete(line int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, line)
}

// Clear removes all records.
func (s *Results) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[int]*value.Record)
}

// Stats summarizes the stored records.
func (s *Results) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.records)}
	for _, rec := range s.records {
		switch rec.Kind {
		case value.Error:
			st.Errors++
		case value.Multiple:
			st.Succeeded++
			st.Equations++
		default:
			st.Succeeded++
		}
	}
	return st
}
