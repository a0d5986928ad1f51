package colour

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Palette is an ordered set of cluster centroids.
type Palette struct {
	Colours []Lab
}

// NewPalette creates a new Palette with the given colours.
func NewPalette(colours []Lab) Palette {
	return Palette{Colours: colours}
}

// Len returns the number of colours in the palette.
func (p Palette) Len() int {
	return len(p.Colours)
}

// Ordered returns a copy of the palette sorted by descending chroma. The sort is
// stable, so equal chroma keeps the quantizer's order.
func (p Palette) Ordered() Palette {
	ordered := slices.Clone(p.Colours)
	slices.SortStableFunc(ordered, func(a, b Lab) int {
		return cmp.Compare(b.Chroma(), a.Chroma())
	})
	return Palette{Colours: ordered}
}

// ToHex encodes every colour in the palette.
func (p Palette) ToHex() []HexColour {
	hex := make([]HexColour, len(p.Colours))
	for i, c := range p.Colours {
		hex[i] = Encode(c)
	}
	return hex
}

// ColourJSON represents a palette entry in JSON output format.
type ColourJSON struct {
	Hex    HexColour `json:"hex"`
	RGB    Pixel     `json:"rgb"`
	Lab    Lab       `json:"lab"`
	Chroma float64   `json:"chroma"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count   int          `json:"count"`
	Colours []ColourJSON `json:"colours"`
}

// JSON returns the palette in its JSON output form.
func (p Palette) JSON() PaletteJSON {
	colours := make([]ColourJSON, len(p.Colours))
	for i, c := range p.Colours {
		colours[i] = ColourJSON{
			Hex:    Encode(c),
			RGB:    c.Pixel(),
			Lab:    c,
			Chroma: c.Chroma(),
		}
	}
	return PaletteJSON{Count: len(colours), Colours: colours}
}

// ToJSON converts the palette to indented JSON.
func (p Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.JSON(), "", "  ")
}

// String returns a human-readable representation of the palette.
func (p Palette) String() string {
	if len(p.Colours) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Colours))
	for i, c := range p.Colours {
		fmt.Fprintf(&sb, "  %2d: %s (chroma %6.2f)\n", i+1, Encode(c), c.Chroma())
	}
	return sb.String()
}

// Mode selects which extreme of the palette becomes the background.
type Mode int

const (
	// ModeLight uses the most saturated centroid as background.
	ModeLight Mode = iota
	// ModeDark uses the least saturated centroid as background.
	ModeDark
)

// String returns the string representation of a Mode.
func (m Mode) String() string {
	switch m {
	case ModeLight:
		return "light"
	case ModeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the recognised modes.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// ParseMode parses "light"/"dark" or the numeric prompt answers "0"/"1".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "0":
		return ModeLight, nil
	case "dark", "1":
		return ModeDark, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: light, dark, 0, 1)", ErrInvalidMode, s)
	}
}

// ThemePair is the background/foreground pair derived from a palette.
type ThemePair struct {
	Background Lab `json:"background"`
	Foreground Lab `json:"foreground"`
}

// SelectPair picks the pair from an ordered palette. In light mode the first
// (highest chroma) centroid is the background and the last the foreground; dark
// mode swaps them.
func SelectPair(ordered Palette, mode Mode) (ThemePair, error) {
	if !mode.Valid() {
		return ThemePair{}, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	if ordered.Len() == 0 {
		return ThemePair{}, fmt.Errorf("cannot select from an empty palette: %w", ErrNoPixels)
	}

	pair := ThemePair{
		Background: ordered.Colours[0],
		Foreground: ordered.Colours[ordered.Len()-1],
	}
	if mode == ModeDark {
		pair.Background, pair.Foreground = pair.Foreground, pair.Background
	}
	return pair, nil
}
