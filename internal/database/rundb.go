package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/uibench/uibench/internal/model"
)

// dbFileName is the history database filename inside the data directory.
const dbFileName = "uibench.db"

// RunDB provides SQLite-based storage for run history.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses URI-style modes: rw requires the file to
	// exist, rwc creates it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one finished pipeline run each, keyed by run identifier.
	-- The full metadata record is kept as JSON; the extracted columns
	-- exist only for listing and filtering without parsing every row.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		timestamp DATETIME NOT NULL,
		preset TEXT NOT NULL,
		urls TEXT NOT NULL,
		score_count INTEGER NOT NULL DEFAULT 0,
		comparison_winner TEXT,
		record_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary is one row of the run listing, without the full record.
type RunSummary struct {
	RunID            string
	Timestamp        time.Time
	Preset           string
	URLs             []string
	ScoreCount       int
	ComparisonWinner string
}

// SaveRun inserts or replaces the history row for a run.
// Re-running with the same run identifier supersedes the old row.
func (rdb *RunDB) SaveRun(ctx context.Context, record *model.MetadataRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to serialize run record: %w", err)
	}

	query := `
	INSERT INTO runs (run_id, timestamp, preset, urls, score_count, comparison_winner, record_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(run_id) DO UPDATE SET
		timestamp = excluded.timestamp,
		preset = excluded.preset,
		urls = excluded.urls,
		score_count = excluded.score_count,
		comparison_winner = excluded.comparison_winner,
		record_json = excluded.record_json
	`

	_, err = rdb.db.ExecContext(ctx, query,
		record.RunID,
		record.Timestamp.UTC().Format(time.RFC3339),
		record.Preset,
		strings.Join(record.URLs, "\n"),
		len(record.Scores),
		record.ComparisonWinner,
		string(recordJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// ListRuns returns run summaries, newest first, up to limit rows.
// A non-positive limit returns all rows.
func (rdb *RunDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
	SELECT run_id, timestamp, preset, urls, score_count, COALESCE(comparison_winner, '')
	FROM runs
	ORDER BY timestamp DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var timestamp, urls string
		if err := rows.Scan(&s.RunID, &timestamp, &s.Preset, &urls, &s.ScoreCount, &s.ComparisonWinner); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		s.Timestamp = parseTimestamp(timestamp)
		if urls != "" {
			s.URLs = strings.Split(urls, "\n")
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// GetRun retrieves the full metadata record for a run identifier.
// Returns nil without error when no such run exists.
func (rdb *RunDB) GetRun(ctx context.Context, runID string) (*model.MetadataRecord, error) {
	query := `
	SELECT record_json FROM runs
	WHERE run_id = ?
	`

	var recordJSON string
	err := rdb.db.QueryRowContext(ctx, query, runID).Scan(&recordJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	var record model.MetadataRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to parse run record: %w", err)
	}

	return &record, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05", // SQLite default datetime format
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
