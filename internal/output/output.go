// Package output defines presentation renderers that turn a synthesised
// theme into files (stylesheets, exports, preview images).
package output

import (
	"fmt"
	"sort"

	"github.com/kolshub/themelab/internal/output/template"
	"github.com/kolshub/themelab/internal/theme"
)

// Renderer produces one or more files from a theme.
type Renderer interface {
	// Name returns the renderer's name (e.g., "css", "png").
	Name() string

	// Description returns a human-readable description of the renderer.
	Description() string

	// Render returns a map of filename to content.
	Render(t theme.Theme) (map[string][]byte, error)
}

// Templated is implemented by renderers whose output comes from
// overridable text templates.
type Templated interface {
	Templates() *template.Loader
}

// Registry holds the available renderers.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds r, replacing any renderer with the same name.
func (r *Registry) Register(renderer Renderer) {
	r.renderers[renderer.Name()] = renderer
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, bool) {
	renderer, ok := r.renderers[name]
	return renderer, ok
}

// List returns all registered renderer names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered renderers ordered by name.
func (r *Registry) All() []Renderer {
	names := r.List()
	all := make([]Renderer, 0, len(names))
	for _, name := range names {
		all = append(all, r.renderers[name])
	}
	return all
}

// RenderAll runs the named renderers and merges their files. A filename
// produced twice is an error.
func (r *Registry) RenderAll(t theme.Theme, names []string) (map[string][]byte, error) {
	files := make(map[string][]byte)
	owner := make(map[string]string)

	for _, name := range names {
		renderer, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output %q (available: %v)", name, r.List())
		}
		out, err := renderer.Render(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for file, data := range out {
			if prev, dup := owner[file]; dup {
				return nil, fmt.Errorf("outputs %s and %s both write %s", prev, name, file)
			}
			owner[file] = name
			files[file] = data
		}
	}

	return files, nil
}
