package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/kolshub/themelab/internal/security"
)

// streamReader wraps data in the decompressor for a single-stream format.
func streamReader(data []byte, f format) (io.Reader, func() error, error) {
	noop := func() error { return nil }
	switch f {
	case formatGz, formatTarGz:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, gzr.Close, nil
	case formatXz, formatTarXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, noop, nil
	case formatBz2, formatTarBz2:
		return bzip2.NewReader(bytes.NewReader(data)), noop, nil
	}
	return nil, noop, fmt.Errorf("unsupported compression format")
}

// readLimited reads r fully, failing once MaxDocumentSize is exceeded.
func readLimited(r io.Reader) ([]byte, error) {
	return io.ReadAll(security.NewLimitedReader(r, MaxDocumentSize))
}

// decompress handles a standalone .gz, .xz or .bz2 document.
func decompress(data []byte, f format, name string) (*Result, error) {
	r, closeFn, err := streamReader(data, f)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	out, err := readLimited(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}

	return &Result{
		Name:       stripCompressionSuffix(name),
		Data:       out,
		WasArchive: false,
	}, nil
}
