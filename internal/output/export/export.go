// Package export renders a theme as a portable JSON or YAML document, the
// same payload "themes export" downloads.
package export

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kolshub/themelab/internal/store"
	"github.com/kolshub/themelab/internal/theme"
)

// Supported encodings.
const (
	JSON = "json"
	YAML = "yaml"
)

// Renderer writes <id>.json or <id>.yaml.
type Renderer struct {
	format string
}

// New returns an export renderer for format (JSON or YAML).
func New(format string) *Renderer {
	return &Renderer{format: format}
}

// Name returns the renderer name, which is its format.
func (r *Renderer) Name() string {
	return r.format
}

// Description returns the renderer description.
func (r *Renderer) Description() string {
	return fmt.Sprintf("Theme tokens as %s (theme-pack preset format)", strings.ToUpper(r.format))
}

// Render encodes the theme.
func (r *Renderer) Render(t theme.Theme) (map[string][]byte, error) {
	switch r.format {
	case JSON:
		data, name, err := store.Export(t)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{name: data}, nil

	case YAML:
		data, err := yaml.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("failed to encode theme: %w", err)
		}
		_, name, _ := store.Export(theme.Theme{ID: t.ID})
		return map[string][]byte{strings.TrimSuffix(name, ".json") + ".yaml": data}, nil

	default:
		return nil, fmt.Errorf("unsupported export format %q", r.format)
	}
}
