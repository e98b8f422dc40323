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

	_ "modernc.org/sqlite"

	"github.com/kolshub/themelab/internal/pack"
	"github.com/kolshub/themelab/internal/theme"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_kv_updated_at ON kv(updated_at DESC);
`

// SQLiteStore keeps every key as a row in a single kv table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initPragmas(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLiteStore) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string, v any) error {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, t theme.Theme) (string, error) {
	key, err := ThemeKey(t.ID)
	if err != nil {
		return "", err
	}
	if err := s.put(ctx, key, t); err != nil {
		return "", err
	}
	return key, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (theme.Theme, error) {
	key, err := ThemeKey(id)
	if err != nil {
		return theme.Theme{}, err
	}
	var t theme.Theme
	if err := s.get(ctx, key, &t); err != nil {
		return theme.Theme{}, err
	}
	return t, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, updated_at FROM kv WHERE key LIKE ? AND key != ?`,
		KeyPrefix+"%", PackKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			key, value string
			updated    int64
		)
		if err := rows.Scan(&key, &value, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		var t theme.Theme
		if err := json.Unmarshal([]byte(value), &t); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", key, err)
		}
		records = append(records, Record{Key: key, Theme: t, SavedAt: time.Unix(0, updated).UTC()})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortRecords(records)
	return records, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	key, err := ThemeKey(id)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// SavePack implements Store.
func (s *SQLiteStore) SavePack(ctx context.Context, p *pack.Pack) error {
	if p == nil {
		return errors.New("nil pack")
	}
	return s.put(ctx, PackKey, p)
}

// LoadPack implements Store.
func (s *SQLiteStore) LoadPack(ctx context.Context) (*pack.Pack, error) {
	var p pack.Pack
	if err := s.get(ctx, PackKey, &p); err != nil {
		return nil, err
	}
	if p.Presets == nil {
		p.Presets = []theme.Theme{}
	}
	return &p, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
