// Package css renders a theme as CSS custom properties.
package css

import (
	"embed"

	"github.com/hashicorp/go-hclog"

	"github.com/kolshub/themelab/internal/output/common"
	"github.com/kolshub/themelab/internal/output/template"
	"github.com/kolshub/themelab/internal/theme"
)

//go:embed *.tmpl
var templates embed.FS

const templateFile = "theme.css.tmpl"

// Renderer writes theme.css.
type Renderer struct {
	loader *template.Loader
}

// New creates a CSS renderer. Templates in {templateDir}/css override the
// embedded one; an empty templateDir disables overrides.
func New(templateDir string, logger hclog.Logger) *Renderer {
	return &Renderer{
		loader: template.New("css", templates, templateDir).WithLogger(logger),
	}
}

// Name returns the renderer name.
func (r *Renderer) Name() string {
	return "css"
}

// Description returns the renderer description.
func (r *Renderer) Description() string {
	return "CSS custom properties (:root variables) for web apps"
}

// Templates exposes the template loader for listing and dumping.
func (r *Renderer) Templates() *template.Loader {
	return r.loader
}

// Render executes the stylesheet template.
func (r *Renderer) Render(t theme.Theme) (map[string][]byte, error) {
	content, err := common.ExecuteTemplate(r.loader, templateFile, t)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"theme.css": content}, nil
}
