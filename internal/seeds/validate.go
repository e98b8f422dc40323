package seeds

import (
	"fmt"
	"strings"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/theme"
)

// Plausible bounds for colour temperature hints.
const (
	minKelvin = 1000
	maxKelvin = 12000
)

// Issue is one problem found in a seed.
type Issue struct {
	Index   int
	Seed    string
	Field   string
	Message string
}

func (i Issue) String() string {
	name := i.Seed
	if name == "" {
		name = fmt.Sprintf("#%d", i.Index)
	}
	return fmt.Sprintf("%s: %s: %s", name, i.Field, i.Message)
}

// ValidationError collects the issues that failed a strict load.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "invalid seed corpus: " + e.Issues[0].String()
	}
	return fmt.Sprintf("invalid seed corpus: %d issues, first: %s", len(e.Issues), e.Issues[0])
}

// Validate reports malformed colours, missing or duplicate names and
// out-of-range lighting hints.
func Validate(seeds []theme.SeedTheme) []Issue {
	var issues []Issue
	seen := make(map[string]int, len(seeds))

	for i := range seeds {
		s := &seeds[i]
		add := func(field, format string, args ...any) {
			issues = append(issues, Issue{Index: i, Seed: s.Name, Field: field, Message: fmt.Sprintf(format, args...)})
		}

		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			add("name", "missing")
		} else if first, dup := seen[name]; dup {
			add("name", "duplicate of seed #%d", first)
		} else {
			seen[name] = i
		}

		for _, tag := range s.Tags {
			if strings.TrimSpace(tag) == "" {
				add("tags", "empty tag")
				break
			}
		}

		if p := s.Palette; p != nil {
			for _, c := range []struct{ field, value string }{
				{"palette.bg", p.Background},
				{"palette.surface", p.Surface},
				{"palette.brand", p.Brand},
				{"palette.accent", p.Accent},
				{"palette.hint", p.Hint},
			} {
				if c.value == "" {
					continue
				}
				if _, err := colour.ParseStrict(c.value); err != nil {
					add(c.field, "%q is not a #rrggbb colour", c.value)
				}
			}
		}

		if l := s.Lighting; l != nil {
			if l.Kelvin != nil && (*l.Kelvin < minKelvin || *l.Kelvin > maxKelvin) {
				add("lighting.kelvin", "%d outside %d-%d", *l.Kelvin, minKelvin, maxKelvin)
			}
			if l.Contrast != nil && (*l.Contrast < 0 || *l.Contrast > 1) {
				add("lighting.contrast", "%g outside 0-1", *l.Contrast)
			}
			if l.EdgeGlow != nil && (*l.EdgeGlow < 0 || *l.EdgeGlow > 1) {
				add("lighting.edgeGlow", "%g outside 0-1", *l.EdgeGlow)
			}
		}
	}

	return issues
}
