package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for 24-bit terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns a solid block of the colour, width cells wide.
func Swatch(p Pixel, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return ansiBackground(p) + strings.Repeat(" ", width) + ansiReset
}

// SwatchWithText returns a block of the colour with text centred on it. The text is
// black or white depending on the swatch lightness.
func SwatchWithText(p Pixel, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	text = centre(text, width)

	fg := Pixel{R: 255, G: 255, B: 255}
	if ToLab(p).L > 50 {
		fg = Pixel{}
	}

	return ansiBackground(p) + ansiForeground(fg) + text + ansiReset
}

// FormatWithLabel formats a colour as "<swatch>  <label> <hex>".
func FormatWithLabel(c Lab, label string, width int) string {
	p := c.Pixel()
	return fmt.Sprintf("%s  %-12s %s", Swatch(p, width), label, p.Hex())
}

func ansiBackground(p Pixel) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, p.R, p.G, p.B, ansiSuffix)
}

func ansiForeground(p Pixel) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, p.R, p.G, p.B, ansiSuffix)
}

func centre(text string, width int) string {
	if len(text) >= width {
		return text[:width]
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
}
