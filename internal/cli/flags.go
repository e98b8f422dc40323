package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// unitValue is a pflag.Value holding a float in [0,1].
type unitValue struct {
	v *float64
}

var _ pflag.Value = unitValue{}

func newUnitValue(p *float64, def float64) unitValue {
	*p = def
	return unitValue{v: p}
}

func (u unitValue) String() string {
	if u.v == nil {
		return ""
	}
	return strconv.FormatFloat(*u.v, 'g', -1, 64)
}

func (u unitValue) Set(s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if !(f >= 0 && f <= 1) {
		return fmt.Errorf("%s is outside [0,1]", s)
	}
	*u.v = f
	return nil
}

func (u unitValue) Type() string {
	return "0..1"
}

// sliders holds the three synthesis sliders shared by generate and pack build.
type sliders struct {
	warmCool      float64
	contrastBoost float64
	edgeGlow      float64
}

func (s *sliders) register(fs *pflag.FlagSet) {
	fs.Var(newUnitValue(&s.warmCool, 0.5), "warm-cool", "temperature: 0 cool, 1 warm (default from config)")
	fs.Var(newUnitValue(&s.contrastBoost, 0.5), "contrast", "lighting contrast boost (default from config)")
	fs.Var(newUnitValue(&s.edgeGlow, 0.25), "edge-glow", "edge glow intensity (default from config)")
}

// resolve fills unset sliders from the configured defaults.
func (s *sliders) resolve(fs *pflag.FlagSet, warmCool, contrastBoost, edgeGlow float64) {
	if !fs.Changed("warm-cool") {
		s.warmCool = warmCool
	}
	if !fs.Changed("contrast") {
		s.contrastBoost = contrastBoost
	}
	if !fs.Changed("edge-glow") {
		s.edgeGlow = edgeGlow
	}
}
