// Package store persists generated themes and the imported theme pack.
//
// Keys follow the local-storage layout the theme lab has always used:
// "kol-theme-<id>" for a saved theme and "kol-theme-pack" for the most
// recently imported pack.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kolshub/themelab/internal/pack"
	"github.com/kolshub/themelab/internal/theme"
)

const (
	// KeyPrefix prefixes every key the store writes.
	KeyPrefix = "kol-theme-"
	// PackKey holds the imported theme pack.
	PackKey = KeyPrefix + "pack"
)

// Supported drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

var (
	// ErrNotFound is returned when a theme or pack is not stored.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for IDs that cannot form a key.
	ErrInvalidID = errors.New("invalid theme id")
)

// Record is a stored theme.
type Record struct {
	Key     string
	Theme   theme.Theme
	SavedAt time.Time
}

// Store persists themes and a single theme pack.
type Store interface {
	// Save writes t under its ID and returns the key used.
	Save(ctx context.Context, t theme.Theme) (string, error)
	Get(ctx context.Context, id string) (theme.Theme, error)
	// List returns stored themes, newest first.
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
	SavePack(ctx context.Context, p *pack.Pack) error
	LoadPack(ctx context.Context) (*pack.Pack, error)
	Close() error
}

// ThemeKey returns the storage key for a theme ID.
func ThemeKey(id string) (string, error) {
	if err := validateID(id); err != nil {
		return "", err
	}
	return KeyPrefix + id, nil
}

func validateID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case KeyPrefix+id == PackKey:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidID, id)
	case strings.ContainsAny(id, `/\`) || strings.Contains(id, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Open returns the store for driver rooted at dir. filename names the
// SQLite database and is ignored by the file driver.
func Open(driver, dir, filename string) (Store, error) {
	switch driver {
	case "", DriverFile:
		return NewFileStore(dir)
	case DriverSQLite:
		if filename == "" {
			filename = "themelab.db"
		}
		return NewSQLiteStore(joinPath(dir, filename))
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// Export returns the indented JSON download payload for t and its file
// name, "<id>.json".
func Export(t theme.Theme) ([]byte, string, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode theme: %w", err)
	}
	name := t.ID
	if name == "" {
		name = "theme"
	}
	return append(data, '\n'), name + ".json", nil
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].SavedAt.Equal(records[j].SavedAt) {
			return records[i].SavedAt.After(records[j].SavedAt)
		}
		return records[i].Key < records[j].Key
	})
}
