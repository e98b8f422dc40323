// Package preview renders a theme as styled terminal output.
package preview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/theme"
)

const swatchWidth = 10

// Render returns the preview as a string styled for w's colour profile.
// Writers that are not terminals get plain text.
func Render(w io.Writer, t theme.Theme) string {
	r := lipgloss.NewRenderer(w)
	p := t.Palette

	bg := lipgloss.Color(colour.Normalize(p.Background))
	surface := lipgloss.Color(colour.Normalize(p.Surface))
	text := lipgloss.Color(colour.Normalize(p.Text))
	muted := lipgloss.Color(colour.Normalize(p.Muted))
	brand := lipgloss.Color(colour.Normalize(p.Brand))
	accent := lipgloss.Color(colour.Normalize(p.Accent))

	title := r.NewStyle().Foreground(text).Bold(true).Render(t.Name)
	sub := r.NewStyle().Foreground(muted).Render(
		fmt.Sprintf("%s · %dK · contrast %.2f · glow %.2f", t.ID, t.Lighting.Kelvin, t.Lighting.Contrast, t.Lighting.EdgeGlow))

	roles := []struct {
		label string
		hex   string
	}{
		{"bg", p.Background},
		{"surface", p.Surface},
		{"text", p.Text},
		{"muted", p.Muted},
		{"brand", p.Brand},
		{"accent", p.Accent},
	}
	swatches := make([]string, 0, len(roles))
	for _, role := range roles {
		hex := colour.Normalize(role.hex)
		fg := lipgloss.Color(theme.EnsureContrast(hex, p.Text))
		block := r.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(fg).
			Width(swatchWidth).
			Align(lipgloss.Center).
			Render(role.label)
		label := r.NewStyle().Foreground(muted).Width(swatchWidth).Align(lipgloss.Center).Render(hex)
		swatches = append(swatches, lipgloss.JoinVertical(lipgloss.Center, block, label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(swatches)...)

	button := r.NewStyle().
		Background(brand).
		Foreground(lipgloss.Color(theme.EnsureContrast(colour.Normalize(p.Brand), p.Background))).
		Padding(0, 2).
		Render("Apply")
	materials := r.NewStyle().Foreground(muted).Render(
		fmt.Sprintf("  %s · %s · %s", t.Materials.Wood, t.Materials.Stone, t.Materials.Metal))

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		sub,
		"",
		row,
		"",
		button+materials,
	)

	return r.NewStyle().
		Background(surface).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		BorderBackground(bg).
		Padding(1, 2).
		Render(body)
}

// Fprint writes the preview followed by a newline.
func Fprint(w io.Writer, t theme.Theme) error {
	_, err := io.WriteString(w, Render(w, t)+"\n")
	return err
}

func joinWithGap(blocks []string) []string {
	out := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, b)
	}
	return out
}
