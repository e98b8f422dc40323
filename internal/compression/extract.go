// Package compression unpacks seed corpora and theme packs that are shipped
// as archives. Everything happens in memory: callers get the bytes of one
// selected document back.
package compression

import (
	"fmt"
	"path"
	"strings"
)

// MaxDocumentSize caps the decompressed size of a single document.
const MaxDocumentSize = 16 * 1024 * 1024

// Result is a document pulled out of a (possibly) compressed payload.
type Result struct {
	// Name of the selected archive member, or the payload name with the
	// compression suffix removed.
	Name string
	// Data is the decompressed content.
	Data []byte
	// WasArchive reports whether the payload was a multi-file archive.
	WasArchive bool
}

// Selector picks one member out of an archive.
type Selector struct {
	// Target is an explicit member name. It matches the full member path or
	// its trailing path components.
	Target string
	// Preferred lists base names that win over other candidates,
	// e.g. "seeds.json".
	Preferred []string
	// Extensions limits candidates to these suffixes (".json", ".yaml").
	// Empty accepts any regular file.
	Extensions []string
}

// priority scores a member name. Zero means "not a candidate".
func (s Selector) priority(name string) int {
	if s.Target != "" {
		if name == s.Target || strings.HasSuffix(name, "/"+s.Target) {
			return 100
		}
		return 0
	}

	base := path.Base(name)
	if strings.HasPrefix(base, ".") {
		return 0
	}
	for _, p := range s.Preferred {
		if strings.EqualFold(base, p) {
			return 90
		}
	}
	if len(s.Extensions) == 0 {
		return 10
	}
	lower := strings.ToLower(base)
	for _, ext := range s.Extensions {
		if strings.HasSuffix(lower, ext) {
			return 10
		}
	}
	return 0
}

// choose applies the selector to the member list and returns the winner.
func (s Selector) choose(names []string) (string, error) {
	best, bestPriority := "", 0
	var candidates []string
	for _, name := range names {
		p := s.priority(name)
		if p == 0 {
			continue
		}
		candidates = append(candidates, name)
		if p > bestPriority {
			best, bestPriority = name, p
		}
	}

	switch {
	case bestPriority >= 90:
		return best, nil
	case s.Target != "":
		return "", fmt.Errorf("file '%s' not found in archive (found: %v)", s.Target, names)
	case len(candidates) == 0:
		return "", fmt.Errorf("no matching files found in archive (found: %v)", names)
	case len(candidates) > 1:
		return "", fmt.Errorf("multiple candidate files in archive, select one explicitly (found: %v)", candidates)
	}
	return best, nil
}

// Extract detects the payload format from contentType and name, then
// returns the selected document. It handles:
//   - Tar archives (.tar.gz, .tgz, .tar.xz, .txz, .tar.bz2, .tbz, .tbz2)
//   - Zip archives (.zip)
//   - Standalone compressed files (.gz, .xz, .bz2)
//
// Payloads that are not compressed are returned unchanged.
func Extract(data []byte, name, contentType string, sel Selector) (*Result, error) {
	if result, err := extractByContentType(data, name, contentType, sel); result != nil || err != nil {
		return result, err
	}
	if result, err := extractByFileExtension(data, name, sel); result != nil || err != nil {
		return result, err
	}
	return &Result{Name: name, Data: data}, nil
}

// IsCompressed reports whether name carries a suffix Extract understands.
func IsCompressed(name string) bool {
	return formatOf(name) != formatNone
}

type format int

const (
	formatNone format = iota
	formatTarGz
	formatTarXz
	formatTarBz2
	formatZip
	formatGz
	formatXz
	formatBz2
)

func formatOf(name string) format {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".tar.gz"), strings.HasSuffix(n, ".tgz"):
		return formatTarGz
	case strings.HasSuffix(n, ".tar.xz"), strings.HasSuffix(n, ".txz"):
		return formatTarXz
	case strings.HasSuffix(n, ".tar.bz2"), strings.HasSuffix(n, ".tbz"), strings.HasSuffix(n, ".tbz2"):
		return formatTarBz2
	case strings.HasSuffix(n, ".zip"):
		return formatZip
	case strings.HasSuffix(n, ".gz"):
		return formatGz
	case strings.HasSuffix(n, ".xz"):
		return formatXz
	case strings.HasSuffix(n, ".bz2"):
		return formatBz2
	}
	return formatNone
}

// extractByContentType attempts to extract based on HTTP Content-Type header.
// Content types only settle zip; compressed streams still need the name to
// tell a tarball from a single file.
func extractByContentType(data []byte, name, contentType string, sel Selector) (*Result, error) {
	switch {
	case strings.Contains(contentType, "application/zip"), strings.Contains(contentType, "application/x-zip-compressed"):
		return extractFromZip(data, sel)
	case strings.Contains(contentType, "application/gzip"), strings.Contains(contentType, "application/x-gzip"):
		if formatOf(name) == formatTarGz {
			return extractFromTar(data, formatTarGz, sel)
		}
		return decompress(data, formatGz, name)
	case strings.Contains(contentType, "application/x-xz"):
		if formatOf(name) == formatTarXz {
			return extractFromTar(data, formatTarXz, sel)
		}
		return decompress(data, formatXz, name)
	case strings.Contains(contentType, "application/x-bzip2"):
		if formatOf(name) == formatTarBz2 {
			return extractFromTar(data, formatTarBz2, sel)
		}
		return decompress(data, formatBz2, name)
	}

	// Generic types (octet-stream, JSON, text) fall through to the name.
	return nil, nil
}

// extractByFileExtension attempts to extract based on the payload name.
func extractByFileExtension(data []byte, name string, sel Selector) (*Result, error) {
	switch f := formatOf(name); f {
	case formatTarGz, formatTarXz, formatTarBz2:
		return extractFromTar(data, f, sel)
	case formatZip:
		return extractFromZip(data, sel)
	case formatGz, formatXz, formatBz2:
		return decompress(data, f, name)
	}
	return nil, nil
}

// stripCompressionSuffix turns "seeds.json.xz" into "seeds.json".
func stripCompressionSuffix(name string) string {
	for _, ext := range []string{".gz", ".xz", ".bz2"} {
		if before, ok := strings.CutSuffix(name, ext); ok {
			return before
		}
	}
	return name
}
