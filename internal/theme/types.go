// Package theme synthesises complete visual themes from a prompt, a seed
// corpus and three sliders.
//
// Synthesis is a pure function of its inputs plus a clock used for the
// theme ID. Seeds and the baseline are never mutated, so a corpus can be
// shared between goroutines without coordination.
package theme

// Palette holds the six colour roles of a theme as "#rrggbb" strings.
type Palette struct {
	Background string `json:"bg" yaml:"bg"`
	Surface    string `json:"surface" yaml:"surface"`
	Text       string `json:"text" yaml:"text"`
	Muted      string `json:"muted" yaml:"muted"`
	Brand      string `json:"brand" yaml:"brand"`
	Accent     string `json:"accent" yaml:"accent"`
}

// Materials are free-form descriptions used by scene previews.
type Materials struct {
	Wood  string `json:"wood" yaml:"wood"`
	Stone string `json:"stone" yaml:"stone"`
	Metal string `json:"metal" yaml:"metal"`
}

// Lighting describes the ambient light of a theme.
type Lighting struct {
	Kelvin   int     `json:"kelvin" yaml:"kelvin"`
	Contrast float64 `json:"contrast" yaml:"contrast"`
	EdgeGlow float64 `json:"edgeGlow" yaml:"edgeGlow"`
}

// Radius is the corner radius in pixels for cards and controls.
type Radius struct {
	Card    int `json:"card" yaml:"card"`
	Control int `json:"control" yaml:"control"`
}

// Elevation holds CSS box-shadow values.
type Elevation struct {
	Low  string `json:"low" yaml:"low"`
	High string `json:"high" yaml:"high"`
}

// Textures names the surface treatment.
type Textures struct {
	Surface string `json:"surface" yaml:"surface"`
}

// Motion is the default transition curve.
type Motion struct {
	Easing     string `json:"easing" yaml:"easing"`
	DurationMs int    `json:"durationMs" yaml:"durationMs"`
}

// BeatReactivity configures audio-reactive effects.
type BeatReactivity struct {
	Intensity float64 `json:"intensity" yaml:"intensity"`
	Bands     []int   `json:"bands" yaml:"bands"`
}

// Typography names the display and body font families.
type Typography struct {
	Display string `json:"display" yaml:"display"`
	Text    string `json:"text" yaml:"text"`
}

// Theme is a complete, synthesised visual theme. It is plain data and
// encodes with encoding/json without special handling.
type Theme struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Palette        Palette        `json:"palette" yaml:"palette"`
	Materials      Materials      `json:"materials" yaml:"materials"`
	Lighting       Lighting       `json:"lighting" yaml:"lighting"`
	Radius         Radius         `json:"radius" yaml:"radius"`
	Elevation      Elevation      `json:"elevation" yaml:"elevation"`
	Textures       Textures       `json:"textures" yaml:"textures"`
	Motion         Motion         `json:"motion" yaml:"motion"`
	BeatReactivity BeatReactivity `json:"beatReactivity" yaml:"beatReactivity"`
	Typography     Typography     `json:"typography" yaml:"typography"`
}

// Clone returns a deep copy of t.
func (t Theme) Clone() Theme {
	t.BeatReactivity.Bands = append([]int(nil), t.BeatReactivity.Bands...)
	return t
}

// SeedPalette holds the optional colour overrides of a seed. Empty strings
// mean "not set".
type SeedPalette struct {
	Background string `json:"bg,omitempty" yaml:"bg,omitempty"`
	Surface    string `json:"surface,omitempty" yaml:"surface,omitempty"`
	Brand      string `json:"brand,omitempty" yaml:"brand,omitempty"`
	Accent     string `json:"accent,omitempty" yaml:"accent,omitempty"`
	Hint       string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// SeedLighting holds optional lighting hints.
type SeedLighting struct {
	Kelvin   *int     `json:"kelvin,omitempty" yaml:"kelvin,omitempty"`
	Contrast *float64 `json:"contrast,omitempty" yaml:"contrast,omitempty"`
	EdgeGlow *float64 `json:"edgeGlow,omitempty" yaml:"edgeGlow,omitempty"`
}

// SeedTheme is a partial, pre-authored theme descriptor used as blend input.
// Every field other than Name is optional.
type SeedTheme struct {
	Name      string        `json:"name" yaml:"name"`
	Tags      []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Palette   *SeedPalette  `json:"palette,omitempty" yaml:"palette,omitempty"`
	Materials *Materials    `json:"materials,omitempty" yaml:"materials,omitempty"`
	Lighting  *SeedLighting `json:"lighting,omitempty" yaml:"lighting,omitempty"`
	Textures  *Textures     `json:"textures,omitempty" yaml:"textures,omitempty"`
}

func (s *SeedTheme) background() string {
	if s == nil || s.Palette == nil {
		return ""
	}
	return s.Palette.Background
}

func (s *SeedTheme) brand() string {
	if s == nil || s.Palette == nil {
		return ""
	}
	return s.Palette.Brand
}

func (s *SeedTheme) accent() string {
	if s == nil || s.Palette == nil {
		return ""
	}
	return s.Palette.Accent
}

func (s *SeedTheme) materials() Materials {
	if s == nil || s.Materials == nil {
		return Materials{}
	}
	return *s.Materials
}
