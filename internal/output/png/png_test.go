package png

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/theme"
)

func TestRender(t *testing.T) {
	th := theme.Baseline()
	th.ID = "noir-1"

	r := New()
	if r.Name() != "png" {
		t.Errorf("Name() = %q", r.Name())
	}
	files, err := r.Render(th)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	tests := []struct {
		name string
		w, h int
	}{
		{name: "noir-1.png", w: Width, h: Height},
		{name: "noir-1.thumb.png", w: ThumbWidth, h: ThumbHeight},
	}
	for _, tt := range tests {
		data, ok := files[tt.name]
		if !ok {
			t.Errorf("missing %s", tt.name)
			continue
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode %s: %v", tt.name, err)
		}
		if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("%s is %dx%d, want %dx%d", tt.name, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}
}

func TestCardColours(t *testing.T) {
	th := theme.Baseline()
	img := Card(th)

	// Bottom-left corner is outside the gradient's reach: pure background.
	if got := colour.ToRGB(img.At(0, Height-1)); got.Hex() != th.Palette.Background {
		t.Errorf("corner = %s, want %s", got.Hex(), th.Palette.Background)
	}
	// Gradient centre is the surface colour.
	if got := colour.ToRGB(img.At(Width*7/10, 0)); got.Hex() != th.Palette.Surface {
		t.Errorf("gradient centre = %s, want %s", got.Hex(), th.Palette.Surface)
	}

	// Centre of the brand swatch (fifth role).
	panel := image.Rect(padding, padding, Width-padding, Height-padding)
	gap := (panel.Dx() - 2*padding - 6*swatchSize) / 5
	x := panel.Min.X + padding + 4*(swatchSize+gap) + swatchSize/2
	y := panel.Min.Y + 110 + swatchSize/2
	if got := colour.ToRGB(img.At(x, y)); got.Hex() != th.Palette.Brand {
		t.Errorf("brand swatch = %s, want %s", got.Hex(), th.Palette.Brand)
	}
}

func TestRenderEmptyID(t *testing.T) {
	files, err := New().Render(theme.Theme{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := files["theme.png"]; !ok {
		t.Errorf("files = %v", files)
	}
}
