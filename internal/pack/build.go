package pack

import (
	"strconv"

	"github.com/kolshub/themelab/internal/theme"
)

// BuildOptions configure Build.
type BuildOptions struct {
	Name    string
	Version string

	WarmCool      float64
	ContrastBoost float64
	EdgeGlow      float64
}

// Build synthesises one preset per seed, prompting with the seed's name so
// each preset leans on its own seed first. Preset IDs are the slugged seed
// names, which keeps them stable across builds. Seeds whose names slug the
// same get "-2", "-3" and so on in corpus order.
func Build(synth *theme.Synthesizer, seeds []theme.SeedTheme, opts BuildOptions) *Pack {
	p := &Pack{
		Name:    opts.Name,
		Version: opts.Version,
		Presets: make([]theme.Theme, 0, len(seeds)),
	}
	taken := make(map[string]bool, len(seeds))

	for _, seed := range seeds {
		t := synth.Synthesize(theme.Request{
			Prompt:        seed.Name,
			Seeds:         seeds,
			WarmCool:      opts.WarmCool,
			ContrastBoost: opts.ContrastBoost,
			EdgeGlow:      opts.EdgeGlow,
		})
		if slug := theme.Slugify(seed.Name); slug != "" {
			t.ID = slug
		}
		t.ID = uniqueID(t.ID, taken)
		p.Presets = append(p.Presets, t)
	}

	p.normalize()
	return p
}

func uniqueID(id string, taken map[string]bool) string {
	candidate := id
	for n := 2; taken[candidate]; n++ {
		candidate = id + "-" + strconv.Itoa(n)
	}
	taken[candidate] = true
	return candidate
}
