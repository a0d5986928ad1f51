package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Lightness limits applied by Adjust.
const (
	maxBackgroundLightness = 100.0
	maxForegroundLightness = 95.0
)

// ParseMultiplier parses a saturation multiplier. An empty (or blank) string means
// no multiplier and returns nil.
func ParseMultiplier(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMultiplier, s)
	}
	if !isFinite(v) {
		return nil, fmt.Errorf("%w: %q is not finite", ErrInvalidMultiplier, s)
	}
	return &v, nil
}

// Adjust rescales the pair with a saturation multiplier. A nil multiplier returns
// the pair unchanged.
//
// Only the background lightness moves (inversely to the multiplier) while the
// foreground lightness and chroma scale with it, so the background stays muted.
// Expected multipliers are in [0, 2] but any finite value is accepted.
func Adjust(pair ThemePair, multiplier *float64) (ThemePair, error) {
	if multiplier == nil {
		return pair, nil
	}
	m := *multiplier
	if !isFinite(m) {
		return ThemePair{}, fmt.Errorf("%w: %v", ErrInvalidMultiplier, m)
	}

	bg := pair.Background
	fg := pair.Foreground

	bg.L = clamp(bg.L*(2-m), 0, maxBackgroundLightness)
	fg.L = math.Min(fg.L*m, maxForegroundLightness)
	fg.A *= m
	fg.B *= m

	return ThemePair{Background: bg, Foreground: fg}, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
