package theme

// Reference colours and constants used by synthesis.
const (
	// WarmReference is the amber the warm end of the slider pulls toward.
	WarmReference = "#d0a060"
	// CoolReference is the ice blue the cool end of the slider pulls toward.
	CoolReference = "#a5d8ff"

	// LightFallbackText replaces unreadable text on dark backgrounds.
	LightFallbackText = "#edeff2"
	// DarkFallbackText replaces unreadable text on light backgrounds.
	DarkFallbackText = "#0c0d10"

	pureBlack = "#000000"
	pureWhite = "#ffffff"

	// MinContrast is the approximate WCAG AA threshold for body text.
	MinContrast = 4.5

	// DefaultName is used when the prompt is empty.
	DefaultName = "Custom Theme"
	// defaultSlug stands in for an empty prompt in theme IDs.
	defaultSlug = "custom"

	// TopSeeds is how many ranked seeds synthesis blends.
	TopSeeds = 3
)

// baseline is the fallback theme every synthesis starts from. It is never
// handed out directly; Baseline returns a copy.
var baseline = Theme{
	ID:   "modern-noir-penthouse",
	Name: "Modern Noir Penthouse",
	Palette: Palette{
		Background: "#0c0d10",
		Surface:    "#14161a",
		Text:       "#edeff2",
		Muted:      "#a8afbf",
		Brand:      "#d4af37",
		Accent:     "#7bd1ff",
	},
	Materials: Materials{Wood: "walnut", Stone: "marquina", Metal: "brass"},
	Lighting:  Lighting{Kelvin: 2900, Contrast: 0.85, EdgeGlow: 0.2},
	Radius:    Radius{Card: 24, Control: 14},
	Elevation: Elevation{
		Low:  "0 2px 8px rgba(0,0,0,.35)",
		High: "0 10px 30px rgba(0,0,0,.45)",
	},
	Textures:       Textures{Surface: "glass"},
	Motion:         Motion{Easing: "cubic-bezier(.2,.8,.2,1)", DurationMs: 320},
	BeatReactivity: BeatReactivity{Intensity: 0.4, Bands: []int{60, 120, 240}},
	Typography:     Typography{Display: "Cinzel", Text: "Inter"},
}

// Baseline returns a fresh copy of the fallback theme.
func Baseline() Theme {
	return baseline.Clone()
}
