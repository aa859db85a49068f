// Package resultstore persists one row per completed run to a SQLite
// database alongside the text reports. The reference repo opens its
// pairs database the same way (sql.Open("sqlite3", path), see
// syncharvester.FlushHarvestedReservesToRouter) though only ever for
// reads; here the same driver is promoted to a write path recording run
// history across scenarios.
package resultstore

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"dispatchfabric/fingerprint"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	duration_secs INTEGER NOT NULL,
	produced INTEGER NOT NULL,
	processed INTEGER NOT NULL,
	delivered INTEGER NOT NULL,
	stage1_p50_us REAL NOT NULL,
	stage1_p90_us REAL NOT NULL,
	stage1_p99_us REAL NOT NULL,
	total_p50_us REAL NOT NULL,
	total_p90_us REAL NOT NULL,
	total_p99_us REAL NOT NULL,
	run_at_unix INTEGER NOT NULL
);`

// Store wraps a SQLite database holding run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("resultstore: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("resultstore: creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one completed scenario's recorded outcome.
type Run struct {
	Scenario     string
	Fingerprint  fingerprint.Hash
	DurationSecs int
	Produced     int64
	Processed    int64
	Delivered    int64

	Stage1P50Us float64
	Stage1P90Us float64
	Stage1P99Us float64
	TotalP50Us  float64
	TotalP90Us  float64
	TotalP99Us  float64

	RunAtUnix int64
}

// Insert records one run.
func (s *Store) Insert(r Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (
			scenario, fingerprint, duration_secs,
			produced, processed, delivered,
			stage1_p50_us, stage1_p90_us, stage1_p99_us,
			total_p50_us, total_p90_us, total_p99_us,
			run_at_unix
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, string(r.Fingerprint), r.DurationSecs,
		r.Produced, r.Processed, r.Delivered,
		r.Stage1P50Us, r.Stage1P90Us, r.Stage1P99Us,
		r.TotalP50Us, r.TotalP90Us, r.TotalP99Us,
		r.RunAtUnix,
	)
	if err != nil {
		return fmt.Errorf("resultstore: inserting run: %w", err)
	}
	return nil
}

// RecentByScenario returns up to limit most recent runs for scenario,
// newest first.
func (s *Store) RecentByScenario(scenario string, limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT scenario, fingerprint, duration_secs,
		       produced, processed, delivered,
		       stage1_p50_us, stage1_p90_us, stage1_p99_us,
		       total_p50_us, total_p90_us, total_p99_us,
		       run_at_unix
		FROM runs
		WHERE scenario = ?
		ORDER BY run_at_unix DESC
		LIMIT ?`, scenario, limit)
	if err != nil {
		return nil, fmt.Errorf("resultstore: querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var fp string
		if err := rows.Scan(
			&r.Scenario, &fp, &r.DurationSecs,
			&r.Produced, &r.Processed, &r.Delivered,
			&r.Stage1P50Us, &r.Stage1P90Us, &r.Stage1P99Us,
			&r.TotalP50Us, &r.TotalP90Us, &r.TotalP99Us,
			&r.RunAtUnix,
		); err != nil {
			return nil, fmt.Errorf("resultstore: scanning run: %w", err)
		}
		r.Fingerprint = fingerprint.Hash(fp)
		out = append(out, r)
	}
	return out, rows.Err()
}
