package theme

import (
	"math"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/kolshub/themelab/internal/colour"
)

// Request carries the inputs of one synthesis.
//
// The sliders are nominally in [0,1]. Out-of-range values are accepted:
// WarmCool extrapolates the shift, ContrastBoost and EdgeGlow are clamped.
// Non-finite slider values are treated as the neutral 0.5.
type Request struct {
	Prompt        string
	Seeds         []SeedTheme
	WarmCool      float64
	ContrastBoost float64
	EdgeGlow      float64
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithClock replaces the time source used for theme IDs.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger. Ranking is logged at trace level and
// contrast fallbacks at debug level.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Synthesizer turns requests into themes. The zero value is not usable;
// construct one with New. A Synthesizer holds no per-call state and is safe
// for concurrent use.
type Synthesizer struct {
	now    func() time.Time
	logger hclog.Logger
}

// New creates a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		now:    time.Now,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSynthesizer = New()

// Synthesize builds a theme using the wall clock for its ID.
func Synthesize(prompt string, seeds []SeedTheme, warmCool, contrastBoost, edgeGlow float64) Theme {
	return defaultSynthesizer.Synthesize(Request{
		Prompt:        prompt,
		Seeds:         seeds,
		WarmCool:      warmCool,
		ContrastBoost: contrastBoost,
		EdgeGlow:      edgeGlow,
	})
}

// Synthesize builds a complete theme. It never fails: malformed seed colours
// read as black and an empty corpus leaves the baseline palette in place.
// The returned palette text always reaches MinContrast against the
// background.
func (s *Synthesizer) Synthesize(req Request) Theme {
	warmCool := numberOr(req.WarmCool, 0.5)
	contrastBoost := numberOr(req.ContrastBoost, 0.5)
	edgeGlow := numberOr(req.EdgeGlow, 0.5)

	ranked := Rank(req.Prompt, req.Seeds)
	top := make([]*SeedTheme, 0, TopSeeds)
	for i := 0; i < len(ranked) && i < TopSeeds; i++ {
		top = append(top, ranked[i].Seed)
		s.logger.Trace("seed selected", "rank", i+1, "name", ranked[i].Seed.Name, "score", ranked[i].Score, "index", ranked[i].Index)
	}

	out := Baseline()
	pal := blendPalette(out.Palette, top)
	pal = shiftTemperature(pal, warmCool)

	text := EnsureContrast(pal.Background, baseline.Palette.Text)
	if text != colour.Normalize(baseline.Palette.Text) {
		s.logger.Debug("text colour replaced for contrast",
			"background", pal.Background,
			"ratio", colour.ContrastRatio(pal.Background, baseline.Palette.Text),
			"text", text)
	}
	pal.Text = text

	out.Palette = pal
	out.Lighting = Lighting{
		Kelvin:   kelvinFor(warmCool),
		Contrast: colour.Clamp01(baseline.Lighting.Contrast + (contrastBoost-0.5)*0.4),
		EdgeGlow: colour.Clamp01(edgeGlow),
	}
	out.Materials = deriveMaterials(out.Materials, top)

	slug := Slugify(req.Prompt)
	if slug == "" {
		slug = defaultSlug
	}
	out.ID = slug + "-" + strconv.FormatInt(s.now().UnixMilli(), 10)
	out.Name = NormalizeName(req.Prompt)
	if out.Name == "" {
		out.Name = DefaultName
	}

	return out
}

// blendPalette pulls the base palette toward the top-ranked seeds. The
// background blends sequentially: first seed at 0.6, then the result toward
// the second seed at 0.3. Brand and accent only consult the first seed.
func blendPalette(p Palette, top []*SeedTheme) Palette {
	var first, second *SeedTheme
	if len(top) > 0 {
		first = top[0]
	}
	if len(top) > 1 {
		second = top[1]
	}

	if bg := first.background(); bg != "" {
		p.Background = colour.Mix(p.Background, bg, 0.6)
	}
	if bg := second.background(); bg != "" {
		p.Background = colour.Mix(p.Background, bg, 0.3)
	}
	if brand := first.brand(); brand != "" {
		p.Brand = colour.Mix(p.Brand, brand, 0.5)
	}
	if accent := first.accent(); accent != "" {
		p.Accent = colour.Mix(p.Accent, accent, 0.6)
	}
	return p
}

// shiftTemperature nudges the palette toward the warm or cool reference.
// Intensity is |warmCool-0.5|*0.5, so it is zero at the midpoint. Each role
// has its own sensitivity: the background moves least, the accent most.
func shiftTemperature(p Palette, warmCool float64) Palette {
	target := CoolReference
	if warmCool >= 0.5 {
		target = WarmReference
	}
	intensity := math.Abs(warmCool-0.5) * 0.5

	p.Background = colour.Mix(p.Background, target, intensity*0.2)
	p.Surface = colour.Mix(p.Surface, target, intensity*0.1)
	p.Brand = colour.Mix(p.Brand, target, intensity*0.3)
	p.Accent = colour.Mix(p.Accent, target, intensity*0.4)
	return p
}

// deriveMaterials takes each material from the top seed, falling back to
// base per field.
func deriveMaterials(base Materials, top []*SeedTheme) Materials {
	if len(top) == 0 {
		return base
	}
	m := top[0].materials()
	if m.Wood != "" {
		base.Wood = m.Wood
	}
	if m.Stone != "" {
		base.Stone = m.Stone
	}
	if m.Metal != "" {
		base.Metal = m.Metal
	}
	return base
}

// EnsureContrast returns text unchanged (normalised) when it reaches
// MinContrast against bg. Otherwise it picks DarkFallbackText for light
// backgrounds and LightFallbackText for dark ones. Mid-luminance backgrounds
// can defeat both near-neutral fallbacks; those get pure black or white,
// whichever contrasts more, which always clears 4.5:1.
func EnsureContrast(bg, text string) string {
	if colour.ContrastRatio(bg, text) >= MinContrast {
		return colour.Normalize(text)
	}

	fallback := LightFallbackText
	if colour.RelativeLuminance(bg) > 0.5 {
		fallback = DarkFallbackText
	}
	if colour.ContrastRatio(bg, fallback) >= MinContrast {
		return fallback
	}

	if colour.ContrastRatio(bg, pureBlack) >= colour.ContrastRatio(bg, pureWhite) {
		return pureBlack
	}
	return pureWhite
}

// numberOr replaces NaN with fallback. Infinities pass through and are
// clamped where each slider is applied.
func numberOr(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}

// kelvinFor shifts the baseline temperature 800K cooler per unit of
// warmCool. Sliders far outside [0,1] saturate at the int32 range.
func kelvinFor(warmCool float64) int {
	k := math.Round(float64(baseline.Lighting.Kelvin) + (warmCool-0.5)*-800)
	if math.IsNaN(k) {
		return baseline.Lighting.Kelvin
	}
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, k)))
}
