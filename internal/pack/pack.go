// Package pack reads, audits and builds theme packs: named, versioned
// collections of complete themes ("presets").
package pack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/compression"
	"github.com/kolshub/themelab/internal/source"
	"github.com/kolshub/themelab/internal/theme"
)

// DefaultName is reported for packs that do not name themselves.
const DefaultName = "Theme Pack"

// ErrPresetNotFound is returned by Find for an unknown preset ID.
var ErrPresetNotFound = errors.New("preset not found")

var memberSelector = compression.Selector{
	Preferred:  []string{"theme_pack.json", "pack.json", "pack.yaml"},
	Extensions: []string{".json", ".yaml", ".yml"},
}

// Pack is a collection of presets.
type Pack struct {
	Name    string        `json:"name" yaml:"name"`
	Version string        `json:"version" yaml:"version"`
	Presets []theme.Theme `json:"presets" yaml:"presets"`
}

// Load reads a pack from a file, URL or archive.
func Load(ctx context.Context, src string, opts source.Options) (*Pack, error) {
	if opts.Member.Target == "" && len(opts.Member.Extensions) == 0 {
		opts.Member = memberSelector
	}
	doc, err := source.Read(ctx, src, opts)
	if err != nil {
		return nil, err
	}

	var p Pack
	if err := doc.Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode theme pack: %w", err)
	}
	p.normalize()
	return &p, nil
}

func (p *Pack) normalize() {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = DefaultName
	}
	if p.Presets == nil {
		p.Presets = []theme.Theme{}
	}
}

// Len returns the number of presets.
func (p *Pack) Len() int {
	return len(p.Presets)
}

// First returns the preset applied after an import.
func (p *Pack) First() (theme.Theme, bool) {
	if len(p.Presets) == 0 {
		return theme.Theme{}, false
	}
	return p.Presets[0].Clone(), true
}

// Find returns the preset with the given ID.
func (p *Pack) Find(id string) (theme.Theme, error) {
	for _, t := range p.Presets {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return theme.Theme{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
}

// Finding is a preset whose text colour is unreadable on its background.
type Finding struct {
	ID         string
	Name       string
	Background string
	Text       string
	Ratio      float64
	Corrected  string
}

// Audit checks every preset against the body text contrast threshold.
func (p *Pack) Audit() []Finding {
	var findings []Finding
	for _, t := range p.Presets {
		bg, text := t.Palette.Background, t.Palette.Text
		ratio := colour.ContrastRatio(bg, text)
		if ratio >= theme.MinContrast {
			continue
		}
		findings = append(findings, Finding{
			ID:         t.ID,
			Name:       t.Name,
			Background: bg,
			Text:       text,
			Ratio:      ratio,
			Corrected:  theme.EnsureContrast(bg, text),
		})
	}
	return findings
}

// Repair applies the corrections Audit suggests and returns how many
// presets changed. Readable presets are left untouched, hex case included.
func (p *Pack) Repair() int {
	fixed := 0
	for i := range p.Presets {
		pal := &p.Presets[i].Palette
		if colour.ContrastRatio(pal.Background, pal.Text) >= theme.MinContrast {
			continue
		}
		pal.Text = theme.EnsureContrast(pal.Background, pal.Text)
		fixed++
	}
	return fixed
}
