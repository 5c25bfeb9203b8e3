//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"sweeplab/internal/model"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

// DefaultStoreKind names the backend used when none is requested.
func DefaultStoreKind() string { return "sqlite" }

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveSweep(ctx context.Context, summary model.SweepSummary) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeSweep(summary)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO sweeps (id, schema_version, codec_version, started_at_utc, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			started_at_utc = excluded.started_at_utc,
			payload = excluded.payload
	`, summary.ID, summary.SchemaVersion, summary.CodecVersion, summary.StartedAtUTC, payload)
	return err
}

func (s *SQLiteStore) GetSweep(ctx context.Context, id string) (model.SweepSummary, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.SweepSummary{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM sweeps WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SweepSummary{}, false, nil
		}
		return model.SweepSummary{}, false, err
	}

	summary, err := DecodeSweep(payload)
	if err != nil {
		return model.SweepSummary{}, false, fmt.Errorf("decode sweep %s: %w", id, err)
	}
	return summary, true, nil
}

func (s *SQLiteStore) ListSweeps(ctx context.Context) ([]model.SweepSummary, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT payload FROM sweeps ORDER BY started_at_utc DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SweepSummary, 0, 16)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		summary, err := DecodeSweep(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveTable(ctx context.Context, table model.ReportTable) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeTable(table)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO report_tables (sweep_id, name, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(sweep_id, name) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, table.SweepID, table.Name, table.SchemaVersion, table.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetTable(ctx context.Context, sweepID, name string) (model.ReportTable, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.ReportTable{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM report_tables WHERE sweep_id = ? AND name = ?`, sweepID, name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ReportTable{}, false, nil
		}
		return model.ReportTable{}, false, err
	}

	table, err := DecodeTable(payload)
	if err != nil {
		return model.ReportTable{}, false, fmt.Errorf("decode table %s/%s: %w", sweepID, name, err)
	}
	return table, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sweeps (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			started_at_utc TEXT NOT NULL DEFAULT '',
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS report_tables (
			sweep_id TEXT NOT NULL,
			name TEXT NOT NULL,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL,
			PRIMARY KEY (sweep_id, name)
		);
	`)
	return err
}
