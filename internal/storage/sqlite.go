//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"felogen/internal/model"

	_ "modernc.org/sqlite"
)

// catalogKey is the single row the gene catalog document occupies.
const catalogKey = "catalog"

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

func (s *SQLiteStore) SaveIndividual(ctx context.Context, ind model.Individual) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeIndividual(ind)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO individuals (id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, ind.ID, ind.SchemaVersion, ind.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) GetIndividual(ctx context.Context, id string) (model.Individual, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return model.Individual{}, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM individuals WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Individual{}, false, nil
		}
		return model.Individual{}, false, err
	}

	ind, err := DecodeIndividual(payload)
	if err != nil {
		return model.Individual{}, false, fmt.Errorf("decode individual %s: %w", id, err)
	}
	return ind, true, nil
}

func (s *SQLiteStore) ListIndividuals(ctx context.Context) ([]model.Individual, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, payload FROM individuals ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Individual
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		ind, err := DecodeIndividual(payload)
		if err != nil {
			return nil, fmt.Errorf("decode individual %s: %w", id, err)
		}
		out = append(out, ind)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteIndividual(ctx context.Context, id string) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `DELETE FROM individuals WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) SaveGeneCatalog(ctx context.Context, catalog map[string]model.GeneDefinition) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeGeneCatalog(catalog)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO gene_catalogs (name, payload)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload
	`, catalogKey, payload)
	return err
}

func (s *SQLiteStore) GetGeneCatalog(ctx context.Context) (map[string]model.GeneDefinition, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, `SELECT payload FROM gene_catalogs WHERE name = ?`, catalogKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	catalog, err := DecodeGeneCatalog(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode gene catalog: %w", err)
	}
	return catalog, true, nil
}

func (s *SQLiteStore) SaveLitter(ctx context.Context, litter model.LitterRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := EncodeLitter(litter)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO litters (id, payload)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload
	`, litter.ID, payload)
	return err
}

func (s *SQLiteStore) ListLitters(ctx context.Context) ([]model.LitterRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT id, payload FROM litters ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LitterRecord
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, err
		}
		litter, err := DecodeLitter(payload)
		if err != nil {
			return nil, fmt.Errorf("decode litter %s: %w", id, err)
		}
		out = append(out, litter)
	}
	return out, rows.Err()
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
		CREATE TABLE IF NOT EXISTS individuals (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS gene_catalogs (
			name TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS litters (
			id TEXT PRIMARY KEY,
			payload BLOB NOT NULL
		);
	`)
	return err
}
