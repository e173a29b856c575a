package treestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"kasubs/internal/domain/model"
	"kasubs/internal/domain/ports"
)

// SQLiteStore keeps trees in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.TreeStore = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("treestore: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("treestore: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("treestore: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS content_trees (
		locale       TEXT NOT NULL,
		content_type TEXT NOT NULL,
		payload      BLOB NOT NULL,
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (locale, content_type)
	)`)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the tree stored for key.
func (s *SQLiteStore) Load(ctx context.Context, key model.TreeKey) (model.Node, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM content_trees WHERE locale = ? AND content_type = ?`,
		key.Locale, string(key.ContentType),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("treestore: load %s: %w", key, err)
	}
	return Decode(payload)
}

// Save upserts the tree stored for key.
func (s *SQLiteStore) Save(ctx context.Context, key model.TreeKey, tree model.Node) error {
	payload, err := Encode(tree)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO content_trees (locale, content_type, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (locale, content_type) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key.Locale, string(key.ContentType), payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("treestore: save %s: %w", key, err)
	}
	return nil
}
