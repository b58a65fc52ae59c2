// Package store implements persistence for uploads and fill-run history,
// backed by a single SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// UploadRecord describes one stored document upload.
type UploadRecord struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	DocType    string    `json:"doc_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FillRun describes one completed form-fill attempt.
type FillRun struct {
	ID           int64     `json:"id"`
	Success      bool      `json:"success"`
	ScreenshotID string    `json:"screenshot_id"`
	FilledFields int       `json:"filled_fields"`
	TotalFields  int       `json:"total_fields"`
	Errors       []string  `json:"errors"`
	DurationMs   int64     `json:"duration_ms"`
	RanAt        time.Time `json:"ran_at"`
}

// Store persists uploads and fill runs.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: log}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug("store ready", zap.String("path", path))
	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS uploads (
		file_id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		doc_type TEXT NOT NULL,
		uploaded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS fill_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		success INTEGER NOT NULL,
		screenshot_id TEXT DEFAULT '',
		filled_fields INTEGER NOT NULL,
		total_fields INTEGER NOT NULL,
		errors TEXT DEFAULT '[]',
		duration_ms INTEGER DEFAULT 0,
		ran_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_fill_runs_ran_at ON fill_runs(ran_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordUpload saves an upload record.
func (s *Store) RecordUpload(ctx context.Context, rec UploadRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (file_id, filename, doc_type) VALUES (?, ?, ?)`,
		rec.FileID, rec.Filename, rec.DocType)
	if err != nil {
		return fmt.Errorf("failed to record upload: %w", err)
	}
	return nil
}

// Upload fetches an upload record by file ID.
func (s *Store) Upload(ctx context.Context, fileID string) (*UploadRecord, error) {
	var rec UploadRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT file_id, filename, doc_type, uploaded_at FROM uploads WHERE file_id = ?`,
		fileID).Scan(&rec.FileID, &rec.Filename, &rec.DocType, &rec.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load upload: %w", err)
	}
	return &rec, nil
}

// RecordFillRun saves a completed fill run and returns its row ID.
func (s *Store) RecordFillRun(ctx context.Context, run FillRun) (int64, error) {
	errsJSON, err := json.Marshal(run.Errors)
	if err != nil {
		return 0, fmt.Errorf("failed to encode errors: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO fill_runs (success, screenshot_id, filled_fields, total_fields, errors, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Success, run.ScreenshotID, run.FilledFields, run.TotalFields, string(errsJSON), run.DurationMs)
	if err != nil {
		return 0, fmt.Errorf("failed to record fill run: %w", err)
	}
	return res.LastInsertId()
}

// RecentRuns returns the most recent fill runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]FillRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, success, screenshot_id, filled_fields, total_fields, errors, duration_ms, ran_at
		 FROM fill_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fill runs: %w", err)
	}
	defer rows.Close()

	runs := []FillRun{}
	for rows.Next() {
		var run FillRun
		var errsJSON string
		if err := rows.Scan(&run.ID, &run.Success, &run.ScreenshotID, &run.FilledFields,
			&run.TotalFields, &errsJSON, &run.DurationMs, &run.RanAt); err != nil {
			return nil, fmt.Errorf("failed to scan fill run: %w", err)
		}
		if err := json.Unmarshal([]byte(errsJSON), &run.Errors); err != nil {
			run.Errors = []string{}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
