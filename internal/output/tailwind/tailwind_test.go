package tailwind

import (
	"strings"
	"testing"

	"github.com/kolshub/themelab/internal/theme"
)

func TestRenderCSS(t *testing.T) {
	r := New("", "", nil)
	files, err := r.Render(theme.Baseline())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	css, ok := files["globals.css"]
	if !ok {
		t.Fatalf("globals.css missing, got %v", files)
	}

	for _, want := range []string{
		"@tailwind base;",
		"--background: ",
		"--foreground: ",
		"--primary: ",
		"--radius: 0.875rem;",
		"/* Modern Noir Penthouse */",
	} {
		if !strings.Contains(string(css), want) {
			t.Errorf("globals.css missing %q", want)
		}
	}
}

func TestRenderConfig(t *testing.T) {
	r := New(FormatConfig, "", nil)
	files, err := r.Render(theme.Baseline())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	cfg := string(files["tailwind.config.js"])
	for _, want := range []string{
		`bg: "#0c0d10",`,
		`brand: "#d4af37",`,
		`card: "1.5rem",`,
		`display: ["Cinzel", "serif"],`,
	} {
		if !strings.Contains(cfg, want) {
			t.Errorf("tailwind.config.js missing %q:\n%s", want, cfg)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: FormatCSS},
		{format: FormatConfig},
		{format: "scss", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r := New(tt.format, "", nil)
			if err := r.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if _, err := r.Render(theme.Baseline()); (err != nil) != tt.wantErr {
				t.Errorf("Render() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToHSL(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{hex: "#ffffff", want: "0.0 0.0% 100.0%"},
		{hex: "#000000", want: "0.0 0.0% 0.0%"},
		{hex: "#ff0000", want: "0.0 100.0% 50.0%"},
		{hex: "#0000ff", want: "240.0 100.0% 50.0%"},
	}
	for _, tt := range tests {
		if got := toHSL(tt.hex); got != tt.want {
			t.Errorf("toHSL(%s) = %q, want %q", tt.hex, got, tt.want)
		}
	}
}

func TestRem(t *testing.T) {
	if got := rem(24); got != "1.5rem" {
		t.Errorf("rem(24) = %q", got)
	}
	if got := rem(14); got != "0.875rem" {
		t.Errorf("rem(14) = %q", got)
	}
}
