// Package png renders a preview card of a theme as a PNG image.
package png

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/theme"
)

// Card dimensions in pixels.
const (
	Width  = 640
	Height = 400

	ThumbWidth  = 200
	ThumbHeight = 125

	padding    = 24
	swatchSize = 64
)

// Renderer writes <id>.png and <id>.thumb.png.
type Renderer struct{}

// New returns a PNG renderer.
func New() *Renderer {
	return &Renderer{}
}

// Name returns the renderer name.
func (r *Renderer) Name() string {
	return "png"
}

// Description returns the renderer description.
func (r *Renderer) Description() string {
	return "Preview card image with palette swatches and a thumbnail"
}

// Render draws the card and its thumbnail.
func (r *Renderer) Render(t theme.Theme) (map[string][]byte, error) {
	card := Card(t)

	thumb := image.NewRGBA(image.Rect(0, 0, ThumbWidth, ThumbHeight))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), card, card.Bounds(), draw.Over, nil)

	base := t.ID
	if base == "" {
		base = "theme"
	}

	files := make(map[string][]byte, 2)
	for name, img := range map[string]image.Image{
		base + ".png":       card,
		base + ".thumb.png": thumb,
	} {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", name, err)
		}
		files[name] = buf.Bytes()
	}
	return files, nil
}

// Card draws the preview: a radial surface-to-background backdrop, a card
// panel, the theme name and one labelled swatch per palette role.
func Card(t theme.Theme) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	p := t.Palette

	fillBackdrop(img, colour.Parse(p.Surface), colour.Parse(p.Background))

	panel := image.Rect(padding, padding, Width-padding, Height-padding)
	draw.Draw(img, panel, image.NewUniform(colour.Parse(p.Surface).Color()), image.Point{}, draw.Src)
	strokeRect(img, panel, colour.Parse(colour.Mix(p.Accent, p.Surface, 1-t.Lighting.EdgeGlow)).Color())

	text := colour.Parse(p.Text).Color()
	muted := colour.Parse(p.Muted).Color()
	drawString(img, padding*2, padding*2+13, t.Name, text)
	drawString(img, padding*2, padding*2+32,
		fmt.Sprintf("%dK  contrast %.2f  glow %.2f", t.Lighting.Kelvin, t.Lighting.Contrast, t.Lighting.EdgeGlow), muted)

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
	gap := (panel.Dx() - 2*padding - len(roles)*swatchSize) / (len(roles) - 1)
	y := panel.Min.Y + 110
	for i, role := range roles {
		x := panel.Min.X + padding + i*(swatchSize+gap)
		sw := image.Rect(x, y, x+swatchSize, y+swatchSize)
		draw.Draw(img, sw, image.NewUniform(colour.Parse(role.hex).Color()), image.Point{}, draw.Src)
		strokeRect(img, sw, muted)
		drawString(img, x, y+swatchSize+16, role.label, text)
		drawString(img, x, y+swatchSize+32, colour.Normalize(role.hex), muted)
	}

	brand := colour.Parse(p.Brand).Color()
	button := image.Rect(panel.Min.X+padding, panel.Max.Y-padding-36, panel.Min.X+padding+140, panel.Max.Y-padding)
	draw.Draw(img, button, image.NewUniform(brand), image.Point{}, draw.Src)
	label := colour.Parse(theme.EnsureContrast(p.Brand, p.Background)).Color()
	drawString(img, button.Min.X+12, button.Min.Y+23, t.Materials.Metal, label)
	drawString(img, button.Max.X+16, button.Min.Y+23,
		fmt.Sprintf("%s / %s / %s", t.Materials.Wood, t.Materials.Stone, t.Typography.Display), muted)

	return img
}

// fillBackdrop paints a radial gradient centred at (70%, 0) from inner to
// outer, reaching outer at 60% of the diagonal.
func fillBackdrop(img *image.RGBA, inner, outer colour.RGB) {
	b := img.Bounds()
	cx, cy := float64(b.Dx())*0.7, 0.0
	reach := math.Hypot(float64(b.Dx()), float64(b.Dy())) * 0.6

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Min(math.Hypot(float64(x)-cx, float64(y)-cy)/reach, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: lerp(inner.R, outer.R, d),
				G: lerp(inner.G, outer.G, d),
				B: lerp(inner.B, outer.B, d),
				A: 255,
			})
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

func drawString(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
