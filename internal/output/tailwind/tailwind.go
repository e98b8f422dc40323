// Package tailwind renders a theme for Tailwind CSS and shadcn/ui.
package tailwind

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	gotemplate "text/template"

	"github.com/hashicorp/go-hclog"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/output/common"
	"github.com/kolshub/themelab/internal/output/template"
	"github.com/kolshub/themelab/internal/theme"
)

//go:embed *.tmpl
var templates embed.FS

// Output formats.
const (
	FormatCSS    = "css"
	FormatConfig = "config"
)

// Renderer writes globals.css (shadcn/ui variables) or tailwind.config.js.
type Renderer struct {
	format string
	loader *template.Loader
}

// New creates a Tailwind renderer for format.
func New(format, templateDir string, logger hclog.Logger) *Renderer {
	if format == "" {
		format = FormatCSS
	}
	return &Renderer{
		format: format,
		loader: template.New("tailwind", templates, templateDir).WithLogger(logger),
	}
}

// Name returns the renderer name.
func (r *Renderer) Name() string {
	return "tailwind"
}

// Description returns the renderer description.
func (r *Renderer) Description() string {
	return "Tailwind CSS / shadcn/ui theme (globals.css or tailwind.config.js)"
}

// Templates exposes the template loader for listing and dumping.
func (r *Renderer) Templates() *template.Loader {
	return r.loader
}

// Validate checks the configured format.
func (r *Renderer) Validate() error {
	if r.format != FormatCSS && r.format != FormatConfig {
		return fmt.Errorf("invalid format: %s (must be 'css' or 'config')", r.format)
	}
	return nil
}

// Render produces the file for the configured format.
func (r *Renderer) Render(t theme.Theme) (map[string][]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if r.format == FormatConfig {
		content, err := r.execute("tailwind.config.js.tmpl", prepareConfigData(t))
		if err != nil {
			return nil, err
		}
		return map[string][]byte{"tailwind.config.js": content}, nil
	}

	content, err := r.execute("globals.css.tmpl", prepareCSSData(t))
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"globals.css": content}, nil
}

func (r *Renderer) execute(filename string, data any) ([]byte, error) {
	content, _, err := r.loader.Load(filename)
	if err != nil {
		return nil, err
	}
	tmpl, err := gotemplate.New(filename).Funcs(common.TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}

// CSSData holds shadcn/ui variables as "h s% l%" triplets.
type CSSData struct {
	Name                string
	Background          string
	Foreground          string
	Card                string
	CardForeground      string
	Popover             string
	PopoverForeground   string
	Primary             string
	PrimaryForeground   string
	Secondary           string
	SecondaryForeground string
	Muted               string
	MutedForeground     string
	Accent              string
	AccentForeground    string
	Border              string
	Input               string
	Ring                string
	Radius              string
}

// ConfigData holds values for tailwind.config.js.
type ConfigData struct {
	Name          string
	Hex           theme.Palette
	RadiusCard    string
	RadiusControl string
	Display       string
	Text          string
}

func prepareCSSData(t theme.Theme) CSSData {
	p := t.Palette
	secondary := colour.Mix(p.Surface, p.Text, 0.08)
	border := colour.Mix(p.Surface, p.Text, 0.12)

	return CSSData{
		Name:                t.Name,
		Background:          toHSL(p.Background),
		Foreground:          toHSL(p.Text),
		Card:                toHSL(p.Surface),
		CardForeground:      toHSL(p.Text),
		Popover:             toHSL(p.Surface),
		PopoverForeground:   toHSL(p.Text),
		Primary:             toHSL(p.Brand),
		PrimaryForeground:   toHSL(theme.EnsureContrast(p.Brand, p.Background)),
		Secondary:           toHSL(secondary),
		SecondaryForeground: toHSL(theme.EnsureContrast(secondary, p.Text)),
		Muted:               toHSL(p.Surface),
		MutedForeground:     toHSL(p.Muted),
		Accent:              toHSL(p.Accent),
		AccentForeground:    toHSL(theme.EnsureContrast(p.Accent, p.Background)),
		Border:              toHSL(border),
		Input:               toHSL(border),
		Ring:                toHSL(p.Brand),
		Radius:              rem(t.Radius.Control),
	}
}

func prepareConfigData(t theme.Theme) ConfigData {
	p := t.Palette
	return ConfigData{
		Name: t.Name,
		Hex: theme.Palette{
			Background: colour.Normalize(p.Background),
			Surface:    colour.Normalize(p.Surface),
			Text:       colour.Normalize(p.Text),
			Muted:      colour.Normalize(p.Muted),
			Brand:      colour.Normalize(p.Brand),
			Accent:     colour.Normalize(p.Accent),
		},
		RadiusCard:    rem(t.Radius.Card),
		RadiusControl: rem(t.Radius.Control),
		Display:       t.Typography.Display,
		Text:          t.Typography.Text,
	}
}

// toHSL converts a hex colour to the shadcn/ui variable format
// "hue saturation% lightness%" (e.g., "222.2 47.4% 11.2%").
func toHSL(hex string) string {
	h, s, l := colour.Parse(hex).HSL()
	return fmt.Sprintf("%.1f %.1f%% %.1f%%", h, s*100, l*100)
}

// rem converts pixels to rem at a 16px root size.
func rem(px int) string {
	return strconv.FormatFloat(float64(px)/16, 'f', -1, 64) + "rem"
}
