package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with additional methods
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Enable WAL mode for better concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.SetMaxOpenConns(1)

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS sessions (
        id TEXT PRIMARY KEY,
        start_time DATETIME NOT NULL,
        end_time DATETIME NOT NULL,
        duration_seconds REAL NOT NULL,
        uptime_ratio REAL NOT NULL,
        interruption_count INTEGER NOT NULL,
        avg_rtt_ms REAL,
        min_rtt_ms REAL,
        max_rtt_ms REAL,
        total_pings INTEGER NOT NULL,
        successful_pings INTEGER NOT NULL,
        failed_pings INTEGER NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS ping_results (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id TEXT NOT NULL,
        timestamp DATETIME NOT NULL,
        target TEXT NOT NULL,
        success BOOLEAN NOT NULL,
        timed_out BOOLEAN NOT NULL,
        rtt_ms REAL,
        error_message TEXT
    );

    CREATE INDEX IF NOT EXISTS idx_ping_session ON ping_results(session_id, timestamp);

    CREATE TABLE IF NOT EXISTS speed_samples (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id TEXT NOT NULL,
        timestamp DATETIME NOT NULL,
        direction TEXT NOT NULL,
        size_bytes INTEGER NOT NULL,
        duration_seconds REAL NOT NULL,
        throughput_mbps REAL NOT NULL,
        error_message TEXT
    );

    CREATE INDEX IF NOT EXISTS idx_speed_session ON speed_samples(session_id, timestamp);

    CREATE TABLE IF NOT EXISTS outages (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        session_id TEXT NOT NULL,
        start_time DATETIME NOT NULL,
        end_time DATETIME,
        duration_seconds REAL,
        checks_failed INTEGER NOT NULL
    );
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
