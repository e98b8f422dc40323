package compression

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"

	"github.com/kolshub/themelab/internal/security"
)

// extractFromTar selects and reads one member of a compressed tarball.
// The archive is scanned twice: once to choose, once to read.
func extractFromTar(data []byte, f format, sel Selector) (*Result, error) {
	names, err := tarMembers(data, f)
	if err != nil {
		return nil, err
	}

	target, err := sel.choose(names)
	if err != nil {
		return nil, err
	}

	r, closeFn, err := streamReader(data, f)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file not found in archive")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Name != target {
			continue
		}

		out, err := readLimited(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", target, err)
		}
		return &Result{Name: target, Data: out, WasArchive: true}, nil
	}
}

// tarMembers lists the regular files of a tarball, rejecting unsafe names.
func tarMembers(data []byte, f format) ([]string, error) {
	r, closeFn, err := streamReader(data, f)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	tr := tar.NewReader(r)
	var names []string
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if err := security.ValidateMemberName(header.Name); err != nil {
			return nil, fmt.Errorf("unsafe archive member %q: %w", header.Name, err)
		}
		names = append(names, header.Name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no files found in archive")
	}
	return names, nil
}
