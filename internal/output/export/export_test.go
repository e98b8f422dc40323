package export

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kolshub/themelab/internal/theme"
)

func sample() theme.Theme {
	t := theme.Baseline()
	t.ID = "gothic-night-1700000000000"
	return t
}

func TestRenderJSON(t *testing.T) {
	files, err := New(JSON).Render(sample())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	data, ok := files["gothic-night-1700000000000.json"]
	if !ok {
		t.Fatalf("unexpected files %v", files)
	}
	var got theme.Theme
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Palette != sample().Palette {
		t.Errorf("palette = %+v", got.Palette)
	}
}

func TestRenderYAML(t *testing.T) {
	files, err := New(YAML).Render(sample())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	data, ok := files["gothic-night-1700000000000.yaml"]
	if !ok {
		t.Fatalf("unexpected files %v", files)
	}
	var got theme.Theme
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Lighting != sample().Lighting || got.Typography.Display != "Cinzel" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	r := New("toml")
	if r.Name() != "toml" {
		t.Errorf("Name() = %q", r.Name())
	}
	if _, err := r.Render(sample()); err == nil {
		t.Error("Render() expected error")
	}
}
