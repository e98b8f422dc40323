package colour

import "math"

// RelativeLuminance returns 0.2126*R + 0.7152*G + 0.0722*B over channels
// normalised to [0,1].
//
// This deliberately skips the sRGB gamma linearisation of WCAG 2.x. The
// 4.5:1 readability threshold used by theme synthesis is calibrated against
// this exact formula, so do not swap in the full definition.
func RelativeLuminance(hex string) float64 {
	c := Parse(hex)
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
}

// ContrastRatio returns (Lmax + 0.05) / (Lmin + 0.05) for the two colours.
// The result is between 1 and 21 and does not depend on argument order.
func ContrastRatio(a, b string) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
