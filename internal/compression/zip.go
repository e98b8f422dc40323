package compression

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/kolshub/themelab/internal/security"
)

// extractFromZip selects and reads one member of a zip archive.
func extractFromZip(data []byte, sel Selector) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	files := make(map[string]*zip.File, len(zr.File))
	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := security.ValidateMemberName(f.Name); err != nil {
			return nil, fmt.Errorf("unsafe archive member %q: %w", f.Name, err)
		}
		files[f.Name] = f
		names = append(names, f.Name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no files found in archive")
	}

	target, err := sel.choose(names)
	if err != nil {
		return nil, err
	}

	rc, err := files[target].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file in archive: %w", err)
	}
	defer rc.Close()

	out, err := readLimited(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", target, err)
	}
	return &Result{Name: target, Data: out, WasArchive: true}, nil
}
