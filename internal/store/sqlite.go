package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"qalctxt.net/qalc/internal/value"
)

// Current schema version
const SchemaVersion = "1"

// SQLite is a SQLite-backed document store.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite creates a new SQLite document store at the given path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS lines (
			idx INTEGER PRIMARY KEY,
			raw TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS results (
			idx INTEGER PRIMARY KEY,
			kind TEXT NOT NULL,
			err_kind INTEGER,
			err_msg TEXT,
			vals TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLite{db: db}

	version, err := s.getMetadataUnlocked("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	if version == "" {
		if err := s.setMetadataUnlocked("schema_version", SchemaVersion); err != nil {
			db.Close()
			return nil, err
		}
	} else if version != SchemaVersion {
		db.Close()
		return nil, fmt.Errorf("unsupported schema version: %s (expected %s)", version, SchemaVersion)
	}

	return s, nil
}

// Save replaces the persisted document.
func (s *SQLite) Save(doc []DocLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM lines"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM results"); err != nil {
		return err
	}

	for _, line := range doc {
		if _, err := tx.Exec("INSERT INTO lines (idx, raw) VALUES (?, ?)", line.Index, line.Raw); err != nil {
			return err
		}
		if line.Record == nil {
			continue
		}
		vals, errKind, errMsg, err := encodeRecord(line.Record)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO results (idx, kind, err_kind, err_msg, vals) VALUES (?, ?, ?, ?, ?)",
			line.Index, line.Record.Kind.String(), errKind, errMsg, vals,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load retrieves the persisted document in line order.
func (s *SQLite) Load() ([]DocLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT l.idx, l.raw, r.kind, r.err_kind, r.err_msg, r.vals
		FROM lines l LEFT JOIN results r ON r.idx = l.idx
		ORDER BY l.idx
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doc []DocLine
	for rows.Next() {
		var (
			line            DocLine
			kind, msg, vals sql.NullString
			errKind         sql.NullInt64
		)
		if err := rows.Scan(&line.Index, &line.Raw, &kind, &errKind, &msg, &vals); err != nil {
			return nil, err
		}
		if kind.Valid {
			rec, err := decodeRecord(line.Index, kind.String, errKind, msg, vals.String)
			if err != nil {
				return nil, err
			}
			line.Record = rec
		}
		doc = append(doc, line)
	}
	return doc, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetMetadata retrieves a metadata value by key.
func (s *SQLite) GetMetadata(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getMetadataUnlocked(key)
}

// getMetadataUnlocked retrieves metadata without locking (caller must hold lock).
func (s *SQLite) getMetadataUnlocked(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// SetMetadata stores a metadata value by key.
func (s *SQLite) SetMetadata(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setMetadataUnlocked(key, value)
}

// setMetadataUnlocked stores metadata without locking (caller must hold lock).
func (s *SQLite) setMetadataUnlocked(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// encodeRecord flattens a record into column values. Only the formatted
// strings of values are persisted; substitution downstream is textual.
func encodeRecord(rec *value.Record) (vals string, errKind sql.NullInt64, errMsg sql.NullString, err error) {
	strs := make([]string, len(rec.Values))
	for i, v := range rec.Values {
		strs[i] = v.String()
	}
	b, err := json.Marshal(strs)
	if err != nil {
		return "", errKind, errMsg, err
	}
	if rec.Err != nil {
		errKind = sql.NullInt64{Int64: int64(rec.Err.Kind), Valid: true}
		errMsg = sql.NullString{String: rec.Err.Msg, Valid: true}
	}
	return string(b), errKind, errMsg, nil
}

func decodeRecord(line int, kind string, errKind sql.NullInt64, errMsg sql.NullString, vals string) (*value.Record, error) {
	var strs []string
	if err := json.Unmarshal([]byte(vals), &strs); err != nil {
		return nil, err
	}
	rec := &value.Record{Line: line}
	switch kind {
	case value.Single.String():
		rec.Kind = value.Single
	case value.Multiple.String():
		rec.Kind = value.Multiple
	case value.Error.String():
		rec.Kind = value.Error
	default:
		return nil, fmt.Errorf("unknown result kind %q", kind)
	}
	for _, s := range strs {
		rec.Values = append(rec.Values, value.Symbolic(s))
	}
	if errKind.Valid {
		rec.Err = &value.EvalError{Kind: value.ErrKind(errKind.Int64), Msg: errMsg.String}
	}
	return rec, nil
}
