package pack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/seeds"
	"github.com/kolshub/themelab/internal/source"
	"github.com/kolshub/themelab/internal/theme"
)

func samplePack() *Pack {
	ok := theme.Baseline()
	ok.ID = "noir"

	bright := theme.Baseline()
	bright.ID = "paper"
	bright.Name = "Paper"
	bright.Palette.Background = "#ffffff"

	return &Pack{Name: "Kol", Version: "1.0.0", Presets: []theme.Theme{ok, bright}}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name     string
		file     string
		content  string
		wantName string
		wantLen  int
	}{
		{
			name:     "json",
			file:     "kol_theme_pack.json",
			content:  `{"name":"Kol","version":"2","presets":[{"id":"a","palette":{"bg":"#000000"}}]}`,
			wantName: "Kol",
			wantLen:  1,
		},
		{
			name:     "yaml",
			file:     "pack.yaml",
			content:  "version: \"3\"\npresets:\n  - id: a\n  - id: b\n",
			wantName: DefaultName,
			wantLen:  2,
		},
		{
			name:     "no presets",
			file:     "empty.json",
			content:  `{"name":"Empty"}`,
			wantName: "Empty",
			wantLen:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, tt.file)
			if err := os.WriteFile(p, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			got, err := Load(context.Background(), p, source.Options{})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Len() != tt.wantLen || got.Presets == nil {
				t.Errorf("Len() = %d, want %d", got.Len(), tt.wantLen)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte(`{"presets": 7}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(context.Background(), p, source.Options{}); err == nil {
		t.Error("Load() expected error for malformed pack")
	}
}

func TestFindAndFirst(t *testing.T) {
	p := samplePack()

	first, ok := p.First()
	if !ok || first.ID != "noir" {
		t.Errorf("First() = %q, %v", first.ID, ok)
	}

	got, err := p.Find("paper")
	if err != nil || got.Name != "Paper" {
		t.Errorf("Find(paper) = %q, %v", got.Name, err)
	}

	if _, err := p.Find("missing"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("Find(missing) error = %v, want ErrPresetNotFound", err)
	}

	// Returned presets are copies.
	got.BeatReactivity.Bands[0] = 1
	if p.Presets[1].BeatReactivity.Bands[0] == 1 {
		t.Error("Find() returned shared slice")
	}

	empty := &Pack{}
	if _, ok := empty.First(); ok {
		t.Error("First() on empty pack returned ok")
	}
}

func TestAuditAndRepair(t *testing.T) {
	p := samplePack()

	findings := p.Audit()
	if len(findings) != 1 {
		t.Fatalf("Audit() returned %d findings, want 1", len(findings))
	}
	f := findings[0]
	if f.ID != "paper" || f.Corrected != theme.DarkFallbackText || f.Ratio >= theme.MinContrast {
		t.Errorf("finding = %+v", f)
	}

	if n := p.Repair(); n != 1 {
		t.Errorf("Repair() = %d, want 1", n)
	}
	if len(p.Audit()) != 0 {
		t.Error("Audit() still reports findings after Repair()")
	}
	if n := p.Repair(); n != 0 {
		t.Errorf("second Repair() = %d, want 0", n)
	}
}

func TestRepairLeavesReadablePresets(t *testing.T) {
	preset := theme.Baseline()
	preset.ID = "upper"
	preset.Palette.Background = "#0C0D10"
	preset.Palette.Text = "#EDEFF2"
	p := &Pack{Name: "Kol", Version: "1.0.0", Presets: []theme.Theme{preset}}

	if n := len(p.Audit()); n != 0 {
		t.Fatalf("Audit() returned %d findings, want 0", n)
	}
	if n := p.Repair(); n != 0 {
		t.Errorf("Repair() = %d, want 0", n)
	}
	if got := p.Presets[0].Palette.Text; got != "#EDEFF2" {
		t.Errorf("Text = %s, want #EDEFF2 unchanged", got)
	}
}

func TestBuildDuplicateNames(t *testing.T) {
	corpus := []theme.SeedTheme{
		{Name: "Dark Velvet", Palette: &theme.SeedPalette{Background: "#1a0f1f"}},
		{Name: "dark velvet", Palette: &theme.SeedPalette{Background: "#200010"}},
		{Name: "Dark-Velvet!", Palette: &theme.SeedPalette{Background: "#101020"}},
	}
	synth := theme.New(theme.WithClock(func() time.Time { return time.UnixMilli(1) }))
	p := Build(synth, corpus, BuildOptions{Name: "Dupes", Version: "1.0.0", WarmCool: 0.5, ContrastBoost: 0.5, EdgeGlow: 0.5})

	want := []string{"dark-velvet", "dark-velvet-2", "dark-velvet-3"}
	if p.Len() != len(want) {
		t.Fatalf("Build() produced %d presets, want %d", p.Len(), len(want))
	}
	for i, id := range want {
		if p.Presets[i].ID != id {
			t.Errorf("preset %d ID = %q, want %q", i, p.Presets[i].ID, id)
		}
		if _, err := p.Find(id); err != nil {
			t.Errorf("Find(%s) error = %v", id, err)
		}
	}
}

func TestBuild(t *testing.T) {
	corpus := seeds.Default()
	synth := theme.New(theme.WithClock(func() time.Time { return time.UnixMilli(1) }))

	p := Build(synth, corpus, BuildOptions{
		Name:          "Kol's Hub",
		Version:       "1.0.0",
		WarmCool:      0.5,
		ContrastBoost: 0.5,
		EdgeGlow:      0.2,
	})

	if p.Len() != len(corpus) {
		t.Fatalf("Build() produced %d presets, want %d", p.Len(), len(corpus))
	}

	tests := []struct {
		id   string
		wood string
	}{
		{id: "modern-noir-penthouse", wood: "walnut"},
		{id: "dark-velvet", wood: "mahogany"},
		{id: "goth-regency-study", wood: "rosewood"},
	}
	for _, tt := range tests {
		got, err := p.Find(tt.id)
		if err != nil {
			t.Errorf("Find(%s) error = %v", tt.id, err)
			continue
		}
		if got.Materials.Wood != tt.wood {
			t.Errorf("%s wood = %q, want %q", tt.id, got.Materials.Wood, tt.wood)
		}
	}

	for _, preset := range p.Presets {
		if r := colour.ContrastRatio(preset.Palette.Background, preset.Palette.Text); r < theme.MinContrast {
			t.Errorf("%s contrast %.2f below threshold", preset.ID, r)
		}
	}

	if p.Presets[0].Lighting.Kelvin != 2900 {
		t.Errorf("kelvin = %d, want 2900 at neutral warmth", p.Presets[0].Lighting.Kelvin)
	}
}
