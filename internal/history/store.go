// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite record of past extraction runs so
// users can retrace what was pulled, from where, and into which file.
// The pipeline itself never reads history; recording is strictly
// append-only bookkeeping after a successful export.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gridpoint/pkg/types"
)

const dbFile = "gridpoint.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Run is one recorded extraction.
type Run struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Variable       string    `json:"variable"`
	Interval       string    `json:"interval"`
	CRS            string    `json:"crs"`
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	CellX          float64   `json:"cell_x"`
	CellY          float64   `json:"cell_y"`
	Start          string    `json:"start"`
	End            string    `json:"end"`
	Rows           int       `json:"rows"`
	OmittedBuckets int       `json:"omitted_buckets"`
	OutputPath     string    `json:"output_path"`
}

// NewStore opens or creates the history database at dir/gridpoint.db and
// creates the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		variable TEXT NOT NULL,
		interval TEXT NOT NULL,
		crs TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		cell_x REAL NOT NULL,
		cell_y REAL NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		omitted_buckets INTEGER NOT NULL,
		output_path TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends one run.
func (s *Store) Record(ctx context.Context, r Run) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, variable, interval, crs, x, y, cell_x, cell_y, start_date, end_date, row_count, omitted_buckets, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339), r.Variable, r.Interval, r.CRS,
		r.X, r.Y, r.CellX, r.CellY, r.Start, r.End,
		r.Rows, r.OmittedBuckets, r.OutputPath)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first. A limit of 0 returns
// the default 20.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, variable, interval, crs, x, y, cell_x, cell_y, start_date, end_date, row_count, omitted_buckets, output_path
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.Variable, &r.Interval, &r.CRS,
			&r.X, &r.Y, &r.CellX, &r.CellY, &r.Start, &r.End,
			&r.Rows, &r.OmittedBuckets, &r.OutputPath); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
