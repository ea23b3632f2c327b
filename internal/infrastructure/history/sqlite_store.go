// Package history persists the dispatch log under ~/.drupai/history.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/drupai-go/internal/domain"
	"github.com/doeshing/drupai-go/internal/pkg/filesystem"
	"github.com/doeshing/drupai-go/internal/ports"
)

// SQLiteStore persists dispatch records in a SQLite database. When the
// database cannot be opened it degrades to the jsonl file store.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.drupai/history/history.db database.
func NewSQLiteStore() *SQLiteStore {
	path := filepath.Join(filesystem.StateDir(), "history", "history.db")
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS dispatches (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		input TEXT,
		operation TEXT,
		source TEXT,
		success INTEGER,
		message TEXT,
		duration_ms INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.DispatchRecord) error {
	if s.db == nil {
		return (&FileStore{path: jsonlPath(s.path)}).Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO dispatches
		(id, timestamp, input, operation, source, success, message, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Input,
		record.Operation,
		record.Source,
		boolToInt(record.Success),
		record.Message,
		record.DurationMS,
	)
	return err
}

// Records returns dispatch entries newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.DispatchRecord, error) {
	if s.db == nil {
		return (&FileStore{path: jsonlPath(s.path)}).Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, input, operation, source, success, message, duration_ms FROM dispatches")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE input LIKE ? OR operation LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.DispatchRecord
	for rows.Next() {
		var rec domain.DispatchRecord
		var ts string
		var success int
		if err := rows.Scan(&rec.ID, &ts, &rec.Input, &rec.Operation, &rec.Source, &success, &rec.Message, &rec.DurationMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Success = success == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all dispatch entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return (&FileStore{path: jsonlPath(s.path)}).Clear()
	}
	_, err := s.db.Exec("DELETE FROM dispatches")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func jsonlPath(dbPath string) string {
	return strings.TrimSuffix(dbPath, ".db") + ".jsonl"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
