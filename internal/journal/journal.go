package journal

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// Operation kinds
const (
	KindImport = "import"
	KindExport = "export"
)

// Operation statuses
const (
	StatusProcessing = "processing"
	StatusOK         = "ok"
	StatusFailed     = "failed"
)

// Entry one recorded import or export
type Entry struct {
	ID           string     `json:"id"`
	Kind         string     `json:"kind"`
	Filename     string     `json:"filename"`
	Format       string     `json:"format"`
	Rows         int        `json:"rows"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// Journal SQLite log of imports and exports
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database
func Open(dbPath string) (*Journal, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	// single connection for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return j, nil
}

func (j *Journal) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := j.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the database
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Start records a new operation in the processing state and returns its id
func (j *Journal) Start(kind, filename, format string) (string, error) {
	id := uuid.NewString()
	_, err := j.db.Exec(`
		INSERT INTO operations (id, kind, filename, format, status)
		VALUES (?, ?, ?, ?, ?)
	`, id, kind, filename, format, StatusProcessing)
	if err != nil {
		return "", fmt.Errorf("failed to create journal entry: %w", err)
	}
	return id, nil
}

// Finish completes an operation; a non-nil opErr marks it failed
func (j *Journal) Finish(id string, rows int, opErr error) error {
	status, msg := StatusOK, ""
	if opErr != nil {
		status, msg = StatusFailed, opErr.Error()
	}
	res, err := j.db.Exec(`
		UPDATE operations SET
			rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, rows, status, msg, id)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("journal entry %s not found", id)
	}
	return nil
}

// Recent returns the latest operations, newest first
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.Query(`
		SELECT id, kind, filename, format, rows, status, error_message, started_at, completed_at
		FROM operations
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal failed: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal failed: %w", err)
	}
	return out, nil
}

// LastSuccessful returns the newest successful operation of kind, nil if none
func (j *Journal) LastSuccessful(kind string) (*Entry, error) {
	row := j.db.QueryRow(`
		SELECT id, kind, filename, format, rows, status, error_message, started_at, completed_at
		FROM operations
		WHERE kind = ? AND status = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT 1
	`, kind, StatusOK)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e         Entry
		completed sql.NullTime
	)
	err := s.Scan(&e.ID, &e.Kind, &e.Filename, &e.Format, &e.Rows, &e.Status, &e.ErrorMessage, &e.StartedAt, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("scan journal entry failed: %w", err)
	}
	if completed.Valid {
		t := completed.Time
		e.CompletedAt = &t
	}
	return e, nil
}
