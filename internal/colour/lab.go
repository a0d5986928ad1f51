// Package colour extracts a chroma-ordered palette from an image and derives a
// background/foreground pair from it.
package colour

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel is an 8-bit sRGB triple as read from a decoded image.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the pixel in the format "rgb(r, g, b)".
func (p Pixel) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", p.R, p.G, p.B)
}

// Hex returns the pixel as a lowercase hex string (e.g., "#1a2b3c").
func (p Pixel) Hex() HexColour {
	return HexColour(fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B))
}

// Lab is a CIELAB colour (D65 white point) with L in [0, 100].
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// ToLab converts an sRGB pixel to CIELAB. Channels are linearised before the XYZ step.
func ToLab(p Pixel) Lab {
	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
	l, a, b := c.Lab()
	// go-colorful works in L [0, 1]; scale to the conventional [0, 100] range.
	return Lab{L: l * 100, A: a * 100, B: b * 100}
}

// Pixel converts the colour back to 8-bit sRGB. Each channel is clamped to [0, 1],
// scaled to 255 and truncated, never rounded.
func (c Lab) Pixel() Pixel {
	rgb := colorful.Lab(c.L/100, c.A/100, c.B/100)
	return Pixel{
		R: truncateChannel(rgb.R),
		G: truncateChannel(rgb.G),
		B: truncateChannel(rgb.B),
	}
}

// Chroma returns the magnitude of the a/b axes.
func (c Lab) Chroma() float64 {
	return math.Hypot(c.A, c.B)
}

// IsFinite reports whether every component is a finite number.
func (c Lab) IsFinite() bool {
	return isFinite(c.L) && isFinite(c.A) && isFinite(c.B)
}

// distance returns the Euclidean distance between two colours.
func (c Lab) distance(other Lab) float64 {
	return math.Sqrt(c.distanceSquared(other))
}

func (c Lab) distanceSquared(other Lab) float64 {
	dl := c.L - other.L
	da := c.A - other.A
	db := c.B - other.B
	return dl*dl + da*da + db*db
}

func truncateChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Max(0, math.Min(1, v))
	return uint8(v * 255)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PixelsFromImage returns the image pixels in row-major order. Alpha is ignored and
// colour channels are read un-premultiplied.
func PixelsFromImage(img image.Image) []Pixel {
	bounds := img.Bounds()
	pixels := make([]Pixel, 0, bounds.Dx()*bounds.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, y):]
			for x := 0; x < bounds.Dx(); x++ {
				i := x * 4
				pixels = append(pixels, Pixel{R: row[i], G: row[i+1], B: row[i+2]})
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				pixels = append(pixels, Pixel{R: c.R, G: c.G, B: c.B})
			}
		}
	}

	return pixels
}

// ToLabSlice converts a pixel sequence to CIELAB.
func ToLabSlice(pixels []Pixel) []Lab {
	points := make([]Lab, len(pixels))
	for i, p := range pixels {
		points[i] = ToLab(p)
	}
	return points
}
