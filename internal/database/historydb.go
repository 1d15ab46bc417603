package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/leadfinder/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "leadfinder.db"

// timeLayout stores timestamps as fixed-width UTC text so that string
// comparison in SQL matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryDB provides SQLite-based storage for run history.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run find first to create it)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per industry search
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		city TEXT NOT NULL,
		industry TEXT NOT NULL,
		started_at TEXT NOT NULL,
		url_count INTEGER NOT NULL,
		summary TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_city_industry ON runs(city, industry);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	-- Analysis results of each run, stored as the result file entry
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		status TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		result TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
	CREATE INDEX IF NOT EXISTS idx_results_url ON results(url, status, timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run is a stored industry search.
type Run struct {
	// ID is the database identifier, set by SaveRun.
	ID int64

	// City is the searched city.
	City string

	// Industry is the searched industry.
	Industry string

	// StartedAt is when the search began.
	StartedAt time.Time

	// URLCount is the number of analyzed URLs.
	URLCount int

	// Summary aggregates the run's results.
	Summary model.BatchSummary
}

// SaveRun stores run and its results in one transaction and returns the
// new run ID. URLCount and Summary are recomputed from results and the ID
// is written back to run.
func (hdb *HistoryDB) SaveRun(ctx context.Context, run *Run, results []*model.AnalysisResult) (id int64, err error) {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Summary = model.Summarize(results)
	run.URLCount = run.Summary.Total

	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize summary: %w", err)
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (city, industry, started_at, url_count, summary)
	VALUES (?, ?, ?, ?, ?)
	`,
		run.City,
		run.Industry,
		formatTime(run.StartedAt),
		run.URLCount,
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO results (run_id, url, status, timestamp, result)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range results {
		if r == nil {
			continue
		}
		resultJSON, err := json.Marshal(r)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize result for %s: %w", r.URL, err)
		}
		if _, err := stmt.ExecContext(ctx, id, r.URL, string(r.Status), formatTime(r.Timestamp), string(resultJSON)); err != nil {
			return 0, fmt.Errorf("failed to insert result for %s: %w", r.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = id
	return id, nil
}

// ListRuns returns stored runs, newest first. Empty city or industry
// match every run.
func (hdb *HistoryDB) ListRuns(ctx context.Context, city, industry string) ([]Run, error) {
	query := `
	SELECT id, city, industry, started_at, url_count, summary
	FROM runs
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if city != "" {
		query += " AND city = ? COLLATE NOCASE"
		args = append(args, city)
	}
	if industry != "" {
		query += " AND industry = ? COLLATE NOCASE"
		args = append(args, industry)
	}

	query += " ORDER BY started_at DESC, id DESC"

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// GetRun retrieves a run by ID. It returns nil without error when no run
// has that ID.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*Run, error) {
	row := hdb.db.QueryRowContext(ctx, `
	SELECT id, city, industry, started_at, url_count, summary
	FROM runs
	WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRunResults returns the results of a run in the order they were saved.
func (hdb *HistoryDB) GetRunResults(ctx context.Context, id int64) ([]*model.AnalysisResult, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT result FROM results
	WHERE run_id = ?
	ORDER BY id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []*model.AnalysisResult
	for rows.Next() {
		var resultJSON string
		if err := rows.Scan(&resultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		var r model.AnalysisResult
		if err := json.Unmarshal([]byte(resultJSON), &r); err != nil {
			return nil, fmt.Errorf("failed to parse result: %w", err)
		}
		results = append(results, &r)
	}

	return results, rows.Err()
}

// HasRecentResult reports whether url was analyzed successfully within d.
func (hdb *HistoryDB) HasRecentResult(ctx context.Context, url string, d time.Duration) (bool, error) {
	cutoff := formatTime(time.Now().Add(-d))

	var count int
	err := hdb.db.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM results
	WHERE url = ? AND status = ? AND timestamp > ?
	`, url, string(model.StatusSuccess), cutoff).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check recent result: %w", err)
	}

	return count > 0, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row.
func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var startedAt, summaryJSON string

	if err := row.Scan(&run.ID, &run.City, &run.Industry, &startedAt, &run.URLCount, &summaryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.StartedAt = parseTimestamp(startedAt)
	if err := json.Unmarshal([]byte(summaryJSON), &run.Summary); err != nil {
		return nil, fmt.Errorf("failed to parse run summary: %w", err)
	}

	return &run, nil
}

// formatTime formats t for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// timestampFormats contains the timestamp formats accepted when reading.
// The order matters: the storage layout comes first.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// parseTimestamp parses a stored timestamp, returning zero time when no
// format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
