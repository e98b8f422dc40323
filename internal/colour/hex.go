package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kolshub/themelab/internal/security"
)

// ErrMalformedHex is returned by ParseStrict for anything other than six hex digits.
var ErrMalformedHex = errors.New("malformed hex colour")

// Parse converts a "#rrggbb" or "rrggbb" string (any case) to RGB.
// Malformed input yields Black rather than an error.
func Parse(hex string) RGB {
	rgb, err := ParseStrict(hex)
	if err != nil {
		return Black
	}
	return rgb
}

// ParseStrict is Parse for callers that validate untrusted input.
func ParseStrict(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return Black, fmt.Errorf("%w: %q", ErrMalformedHex, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("%w: %q", ErrMalformedHex, hex)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Format rounds each channel to the nearest integer, clamps it to [0,255]
// and returns the lowercase "#rrggbb" form.
func Format(r, g, b float64) string {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}.Hex()
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	if math.IsInf(v, 1) {
		return 255
	}
	if math.IsInf(v, -1) {
		return 0
	}
	// Clamp before converting so huge values cannot overflow int.
	v = math.Max(-1, math.Min(256, v))
	return security.SafeUint8(int(math.Round(v)))
}

// Mix linearly interpolates from a to b per channel. t is not clamped:
// values outside [0,1] extrapolate and are clamped only when encoded.
func Mix(a, b string, t float64) string {
	ca := Parse(a)
	cb := Parse(b)
	return Format(
		lerp(ca.R, cb.R, t),
		lerp(ca.G, cb.G, t),
		lerp(ca.B, cb.B, t),
	)
}

func lerp(a, b uint8, t float64) float64 {
	fa := float64(a)
	return fa + (float64(b)-fa)*t
}

// Normalize re-encodes a colour in canonical lowercase form.
func Normalize(hex string) string {
	return Parse(hex).Hex()
}
