// Package source resolves a corpus or theme-pack location to a decoded
// document. A source is a local path, an https:// URL or "-" for stdin, and
// may be compressed or archived.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/kolshub/themelab/internal/compression"
	"github.com/kolshub/themelab/internal/security"
	httputil "github.com/kolshub/themelab/internal/util/http"
)

// Format is the serialisation of a document.
type Format string

const (
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"
)

// Document is the raw content of a resolved source.
type Document struct {
	// Origin is the source string as given.
	Origin string
	// Name is the file or archive member the data came from.
	Name string
	// Format is detected from Name, falling back to sniffing the content.
	Format Format
	Data   []byte
}

// Options control how a source is read.
type Options struct {
	// AllowInsecure permits http:// and private hosts. Only tests and
	// trusted local setups should set it.
	AllowInsecure bool
	// Timeout for remote fetches. Zero uses the HTTP default.
	Timeout time.Duration
	// Member selects the file inside an archive.
	Member compression.Selector
	// Stdin is read when the source is "-".
	Stdin io.Reader
	// HTTPClient overrides the client used for remote sources.
	HTTPClient *http.Client
	// Logger receives debug output.
	Logger hclog.Logger
}

// IsRemote reports whether src is fetched over HTTP.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

// Read resolves src and returns its (decompressed) content.
func Read(ctx context.Context, src string, opts Options) (*Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var (
		data        []byte
		name        string
		contentType string
	)

	switch {
	case src == "":
		return nil, fmt.Errorf("empty source")

	case src == "-":
		if opts.Stdin == nil {
			return nil, fmt.Errorf("stdin source requested but no reader configured")
		}
		b, err := io.ReadAll(security.NewLimitedReader(opts.Stdin, compression.MaxDocumentSize))
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		data, name = b, "stdin"

	case IsRemote(src):
		if !opts.AllowInsecure {
			if err := security.ValidateHTTPURL(src); err != nil {
				return nil, fmt.Errorf("refusing to fetch %s: %w", src, err)
			}
		}
		logger.Debug("fetching remote source", "url", src)
		resp, err := httputil.Fetch(ctx, src, httputil.FetchOptions{
			Timeout: opts.Timeout,
			Client:  opts.HTTPClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
		}
		data, contentType = resp.Data, resp.ContentType
		name = remoteName(src)

	default:
		b, err := os.ReadFile(filepath.Clean(src))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src, err)
		}
		data, name = b, filepath.Base(src)
	}

	res, err := compression.Extract(data, name, contentType, opts.Member)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", src, err)
	}
	if res.WasArchive {
		logger.Debug("extracted archive member", "source", src, "member", res.Name, "bytes", len(res.Data))
	}

	return &Document{
		Origin: src,
		Name:   res.Name,
		Format: detectFormat(res.Name, res.Data),
		Data:   res.Data,
	}, nil
}

// remoteName returns the last path element of a URL.
func remoteName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "download"
	}
	return path.Base(u.Path)
}

func detectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode unmarshals the document into v according to its format.
func (d *Document) Decode(v any) error {
	switch d.Format {
	case FormatYAML:
		if err := yaml.Unmarshal(d.Data, v); err != nil {
			return fmt.Errorf("failed to parse YAML from %s: %w", d.Name, err)
		}
	default:
		if err := json.Unmarshal(d.Data, v); err != nil {
			return fmt.Errorf("failed to parse JSON from %s: %w", d.Name, err)
		}
	}
	return nil
}
