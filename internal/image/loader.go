// Package image loads the pictures seeds are extracted from.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/kolshub/themelab/internal/compression"
	"github.com/kolshub/themelab/internal/source"
)

// SupportedExtensions lists the image file extensions Load decodes.
func SupportedExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	return slices.Contains(SupportedExtensions(), strings.ToLower(filepath.Ext(path)))
}

// Load reads and decodes an image from a local file, an https:// URL, an
// archive holding a single image, or "-" for stdin. The returned name is
// the file or archive member the image came from.
// Supported formats: JPEG, PNG, GIF, WebP.
func Load(ctx context.Context, src string, opts source.Options) (image.Image, string, error) {
	if opts.Member.Target == "" && len(opts.Member.Extensions) == 0 {
		opts.Member = compression.Selector{Extensions: SupportedExtensions()}
	}

	doc, err := source.Read(ctx, src, opts)
	if err != nil {
		return nil, "", err
	}

	img, format, err := image.Decode(bytes.NewReader(doc.Data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s (format: %s): %w", doc.Name, format, err)
	}
	return img, doc.Name, nil
}

// Resolve expands directories in srcs to the images they contain. URLs,
// stdin and plain files pass through unchanged.
func Resolve(srcs []string) ([]string, error) {
	var out []string
	for _, src := range srcs {
		if src == "-" || source.IsRemote(src) {
			out = append(out, src)
			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("image file or directory not found: %s", src)
			}
			return nil, fmt.Errorf("failed to access image path: %w", err)
		}
		if !info.IsDir() {
			out = append(out, src)
			continue
		}

		files, err := ScanDirectory(src)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

// ScanDirectory returns the image files directly inside dir in name order.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		// Stat the target so symlinks to files count and broken ones are skipped.
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		if IsImageFile(entry.Name()) {
			files = append(files, full)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dir)
	}
	return files, nil
}
