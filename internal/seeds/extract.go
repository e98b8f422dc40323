package seeds

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/kolshub/themelab/internal/colour"
	"github.com/kolshub/themelab/internal/theme"
)

// DefaultClusters is the number of dominant colours FromImage looks for.
const DefaultClusters = 6

// minRoleWeight is the share of the image a colour needs to be considered
// for the background.
const minRoleWeight = 0.05

// ExtractOptions configure FromImage.
type ExtractOptions struct {
	// Name of the seed. Defaults to "Extracted Seed".
	Name string
	// Tags are added before the derived mood tags.
	Tags []string
	// Clusters is the number of dominant colours. Defaults to DefaultClusters.
	Clusters int
	// Rand seeds the clustering. Nil gives reproducible results.
	Rand *rand.Rand
}

// FromImage derives a seed from an image's dominant colours:
//   - bg is the darkest colour covering a meaningful share of the image
//   - brand is the most vivid remaining colour, accent the next
//   - hint is the lightest colour
//
// Lighting hints come from the overall warmth and light range, and tags
// describe the mood (dark/light, warm/cool, brand hue) so prompts can find
// the seed.
func FromImage(img image.Image, opts ExtractOptions) (theme.SeedTheme, error) {
	k := opts.Clusters
	if k <= 0 {
		k = DefaultClusters
	}
	clusters, err := colour.Dominant(img, k, opts.Rand)
	if err != nil {
		return theme.SeedTheme{}, fmt.Errorf("failed to extract colours: %w", err)
	}

	bg := darkest(clusters)
	hint := lightest(clusters)
	brand, ok := mostVivid(clusters, bg.Colour)
	if !ok {
		brand = hint
	}
	accent, ok := mostVivid(clusters, bg.Colour, brand.Colour)
	if !ok {
		accent = cluster{Colour: colour.Parse(colour.Mix(brand.Colour.Hex(), hint.Colour.Hex(), 0.5))}
	}

	bgHex, hintHex := bg.Colour.Hex(), hint.Colour.Hex()
	warmth := warmthOf(clusters)
	kelvin := int(math.Round(math.Max(1500, math.Min(9000, 4500-2500*warmth))))
	contrast := round2(colour.Clamp01(colour.RelativeLuminance(hintHex) - colour.RelativeLuminance(bgHex)))
	_, accentSat, _ := accent.Colour.HSL()
	edgeGlow := round2(accentSat * 0.5)

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "Extracted Seed"
	}

	return theme.SeedTheme{
		Name: name,
		Tags: moodTags(opts.Tags, bgHex, warmth, brand.Colour),
		Palette: &theme.SeedPalette{
			Background: bgHex,
			Surface:    colour.Mix(bgHex, hintHex, 0.08),
			Brand:      brand.Colour.Hex(),
			Accent:     accent.Colour.Hex(),
			Hint:       hintHex,
		},
		Lighting: &theme.SeedLighting{
			Kelvin:   &kelvin,
			Contrast: &contrast,
			EdgeGlow: &edgeGlow,
		},
	}, nil
}

type cluster = colour.Cluster

func luminance(c cluster) float64 {
	return colour.RelativeLuminance(c.Colour.Hex())
}

// darkest returns the darkest cluster above minRoleWeight, or the darkest
// overall when every cluster is small.
func darkest(clusters []cluster) cluster {
	best, found := clusters[0], false
	for _, c := range clusters {
		if c.Weight < minRoleWeight {
			continue
		}
		if !found || luminance(c) < luminance(best) {
			best, found = c, true
		}
	}
	if found {
		return best
	}
	for _, c := range clusters {
		if luminance(c) < luminance(best) {
			best = c
		}
	}
	return best
}

func lightest(clusters []cluster) cluster {
	best := clusters[0]
	for _, c := range clusters[1:] {
		if luminance(c) > luminance(best) {
			best = c
		}
	}
	return best
}

// mostVivid picks the cluster with the highest saturation weighted by the
// square root of its share, skipping near-black, near-white and excluded
// colours.
func mostVivid(clusters []cluster, exclude ...colour.RGB) (cluster, bool) {
	var (
		best      cluster
		bestScore float64
		found     bool
	)
	for _, c := range clusters {
		if containsRGB(exclude, c.Colour) {
			continue
		}
		_, s, l := c.Colour.HSL()
		if l < 0.12 || l > 0.92 {
			continue
		}
		score := s * math.Sqrt(c.Weight)
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}

func containsRGB(list []colour.RGB, c colour.RGB) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

// warmthOf returns the weighted red-minus-blue balance in [-1,1].
func warmthOf(clusters []cluster) float64 {
	var warmth, total float64
	for _, c := range clusters {
		warmth += c.Weight * (float64(c.Colour.R) - float64(c.Colour.B)) / 255
		total += c.Weight
	}
	if total == 0 {
		return 0
	}
	return warmth / total
}

// moodTags lowercases and dedupes the given tags and appends derived ones.
func moodTags(given []string, bg string, warmth float64, brand colour.RGB) []string {
	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	for _, t := range given {
		add(t)
	}

	switch l := colour.RelativeLuminance(bg); {
	case l < 0.25:
		add("dark")
	case l > 0.6:
		add("light")
	}
	switch {
	case warmth > 0.05:
		add("warm")
	case warmth < -0.05:
		add("cool")
	}
	add(hueName(brand))
	return tags
}

// hueName names the hue family of c, or "" for greys.
func hueName(c colour.RGB) string {
	h, s, _ := c.HSL()
	if s < 0.25 {
		return ""
	}
	switch {
	case h < 15 || h >= 345:
		return "red"
	case h < 40:
		return "orange"
	case h < 65:
		return "gold"
	case h < 160:
		return "green"
	case h < 200:
		return "teal"
	case h < 255:
		return "blue"
	case h < 290:
		return "purple"
	default:
		return "pink"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
