package colour

import (
	"fmt"
	"regexp"
	"strings"
)

// HexColour is a "#rrggbb" string with lowercase digits.
type HexColour string

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

// Encode converts a CIELAB colour to its sRGB hex form.
func Encode(c Lab) HexColour {
	return c.Pixel().Hex()
}

// String returns the hex string.
func (h HexColour) String() string {
	return string(h)
}

// Valid reports whether h matches "#rrggbb" in lowercase.
func (h HexColour) Valid() bool {
	return hexPattern.MatchString(string(h))
}

// StripHash returns the six hex digits without the "#" prefix.
func (h HexColour) StripHash() string {
	return strings.TrimPrefix(string(h), "#")
}

// RGBA renders the colour in Hyprland's "rgba(rrggbbAA)" form with a fixed alpha byte.
func (h HexColour) RGBA(alpha uint8) string {
	return fmt.Sprintf("rgba(%s%02X)", h.StripHash(), alpha)
}

// Theme is the final pair of hex colours handed to output actions.
type Theme struct {
	Background HexColour `json:"background"`
	Foreground HexColour `json:"foreground"`
}

// EncodePair encodes both colours of a pair.
func EncodePair(pair ThemePair) Theme {
	return Theme{
		Background: Encode(pair.Background),
		Foreground: Encode(pair.Foreground),
	}
}
