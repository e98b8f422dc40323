// Package common provides helpers shared by the template-driven renderers.
package common

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/kolshub/themelab/internal/colour"
	tmplloader "github.com/kolshub/themelab/internal/output/template"
	"github.com/kolshub/themelab/internal/theme"
)

// TemplateFuncs returns the functions available to every renderer template.
// Colour helpers accept "#rrggbb" strings straight from the theme palette.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Colour formats.
		"hex":       colour.Normalize,
		"hexNoHash": hexNoHashFunc,
		"rgb":       rgbFunc,
		"rgba":      rgbaFunc,
		"rgbSpaces": rgbSpacesFunc,
		"hsl":       hslFunc,
		"hslSpaces": hslSpacesFunc,
		"mix":       mixFunc,

		// Units.
		"px":       pxFunc,
		"ms":       msFunc,
		"fixed":    fixedFunc,
		"percent":  percentFunc,
		"joinInts": joinIntsFunc,

		// String manipulation (pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"replace":    replaceFunc,
		"quote":      strconv.Quote,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
	}
}

func hexNoHashFunc(hex string) string {
	return strings.TrimPrefix(colour.Normalize(hex), "#")
}

// rgbFunc returns CSS rgb(r, g, b).
func rgbFunc(hex string) string {
	return colour.Parse(hex).String()
}

// rgbaFunc returns CSS rgba(r, g, b, a). The colour comes last so it pipes:
//
//	{{ .Palette.Accent | rgba 0.4 }}
func rgbaFunc(alpha float64, hex string) string {
	c := colour.Parse(hex)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(colour.Clamp01(alpha), 'f', -1, 64))
}

func rgbSpacesFunc(hex string) string {
	c := colour.Parse(hex)
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// hslFunc returns CSS hsl(h, s%, l%).
func hslFunc(hex string) string {
	h, s, l := colour.Parse(hex).HSL()
	return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", h, s*100, l*100)
}

// hslSpacesFunc returns "h s% l%", the shadcn/ui variable format
// (e.g., "222.2 47.4% 11.2%").
func hslSpacesFunc(hex string) string {
	h, s, l := colour.Parse(hex).HSL()
	return fmt.Sprintf("%.1f %.1f%% %.1f%%", h, s*100, l*100)
}

// mixFunc blends toward b; pipe-friendly: {{ .Palette.Surface | mix .Palette.Text 0.1 }}.
func mixFunc(b string, t float64, a string) string {
	return colour.Mix(a, b, t)
}

func pxFunc(v int) string {
	return strconv.Itoa(v) + "px"
}

func msFunc(v int) string {
	return strconv.Itoa(v) + "ms"
}

func fixedFunc(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func percentFunc(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 0, 64) + "%"
}

func joinIntsFunc(sep string, vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

// trimPrefixFunc removes a prefix from a string (pipe-friendly argument order).
//
//	{{ value | trimPrefix "#" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

// replaceFunc replaces all occurrences of old with new (pipe-friendly argument order).
//
//	{{ value | replace "_" "-" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}

// ExecuteTemplate loads filename through loader, parses it with the shared
// funcs and executes it against t.
func ExecuteTemplate(loader *tmplloader.Loader, filename string, t theme.Theme) ([]byte, error) {
	content, _, err := loader.Load(filename)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(filename).Funcs(TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", filename, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, t); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}
