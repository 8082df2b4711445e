package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	settingsout "inkwell/internal/modules/settings/port/out"

	_ "modernc.org/sqlite"
)

type SQLitePreferenceStore struct {
	db *sql.DB
}

func NewSQLitePreferenceStore(dbPath string) (settingsout.PreferenceStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLitePreferenceStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLitePreferenceStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create preferences table: %w", err)
	}
	return nil
}

func (s *SQLitePreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference: %w", err)
	}
	return value, true, nil
}

func (s *SQLitePreferenceStore) Set(ctx context.Context, key, value string) error {
	const stmt = `
INSERT INTO preferences (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, value); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

func (s *SQLitePreferenceStore) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}
