package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kolshub/themelab/internal/pack"
	"github.com/kolshub/themelab/internal/theme"
)

// FileStore keeps one indented JSON file per key in a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func joinPath(dir, name string) string {
	return filepath.Join(dir, name)
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Save implements Store.
func (s *FileStore) Save(_ context.Context, t theme.Theme) (string, error) {
	key, err := ThemeKey(t.ID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(key, t); err != nil {
		return "", err
	}
	return key, nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, id string) (theme.Theme, error) {
	key, err := ThemeKey(id)
	if err != nil {
		return theme.Theme{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var t theme.Theme
	if err := s.read(key, &t); err != nil {
		return theme.Theme{}, err
	}
	return t, nil
}

// List implements Store.
func (s *FileStore) List(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list store: %w", err)
	}

	var records []Record
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		key := strings.TrimSuffix(name, ".json")
		if !strings.HasPrefix(key, KeyPrefix) || key == PackKey {
			continue
		}

		var t theme.Theme
		if err := s.read(key, &t); err != nil {
			return nil, err
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		records = append(records, Record{Key: key, Theme: t, SavedAt: info.ModTime().UTC()})
	}

	sortRecords(records)
	return records, nil
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, id string) error {
	key, err := ThemeKey(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// SavePack implements Store.
func (s *FileStore) SavePack(_ context.Context, p *pack.Pack) error {
	if p == nil {
		return errors.New("nil pack")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(PackKey, p)
}

// LoadPack implements Store.
func (s *FileStore) LoadPack(_ context.Context) (*pack.Pack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p pack.Pack
	if err := s.read(PackKey, &p); err != nil {
		return nil, err
	}
	if p.Presets == nil {
		p.Presets = []theme.Theme{}
	}
	return &p, nil
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

// write replaces the file atomically via a temp file in the same directory.
func (s *FileStore) write(key string, v any) error {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) read(key string, v any) error {
	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
