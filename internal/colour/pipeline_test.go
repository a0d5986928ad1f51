package colour

import (
	"errors"
	"math"
	"testing"
)

func checkerboardPixels(w, h int, a, b Pixel) []Pixel {
	pixels := make([]Pixel, 0, w*h)
	for y := range h {
		for x := range w {
			if (x+y)%2 == 0 {
				pixels = append(pixels, a)
			} else {
				pixels = append(pixels, b)
			}
		}
	}
	return pixels
}

func pixelNear(got, want Pixel) bool {
	return channelDiff(got.R, want.R) <= 1 && channelDiff(got.G, want.G) <= 1 && channelDiff(got.B, want.B) <= 1
}

func TestGenerateFromPixelsCheckerboard(t *testing.T) {
	red := Pixel{R: 255}
	blue := Pixel{B: 255}
	pixels := checkerboardPixels(10, 10, red, blue)

	cfg := DefaultConfig()
	cfg.ClusterCount = MinimalClusterCount

	result, err := GenerateFromPixels(pixels, cfg)
	if err != nil {
		t.Fatalf("GenerateFromPixels() error = %v", err)
	}

	// Blue has the higher chroma, so it is ordered first and becomes the light-mode background.
	if !labNear(result.Palette.Colours[0], ToLab(blue), 1e-9) {
		t.Errorf("first ordered colour = %+v, want blue %+v", result.Palette.Colours[0], ToLab(blue))
	}
	if !pixelNear(result.Adjusted.Background.Pixel(), blue) {
		t.Errorf("light background = %v, want blue", result.Adjusted.Background.Pixel())
	}
	if !pixelNear(result.Adjusted.Foreground.Pixel(), red) {
		t.Errorf("light foreground = %v, want red", result.Adjusted.Foreground.Pixel())
	}

	cfg.Mode = ModeDark
	dark, err := GenerateFromPixels(pixels, cfg)
	if err != nil {
		t.Fatalf("GenerateFromPixels(dark) error = %v", err)
	}
	if dark.Theme.Background != result.Theme.Foreground || dark.Theme.Foreground != result.Theme.Background {
		t.Errorf("dark theme %+v is not light theme %+v swapped", dark.Theme, result.Theme)
	}
}

func TestGenerateFromPixelsDeterministic(t *testing.T) {
	pixels := make([]Pixel, 0, 4096)
	for i := range 4096 {
		pixels = append(pixels, Pixel{R: uint8(i * 7), G: uint8(i * 13), B: uint8(i * 29)})
	}

	cfg := DefaultConfig()
	first, err := GenerateFromPixels(pixels, cfg)
	if err != nil {
		t.Fatalf("GenerateFromPixels() error = %v", err)
	}
	if first.Palette.Len() != DefaultClusterCount {
		t.Fatalf("palette has %d colours, want %d", first.Palette.Len(), DefaultClusterCount)
	}
	for range 3 {
		again, err := GenerateFromPixels(pixels, cfg)
		if err != nil {
			t.Fatalf("GenerateFromPixels() error = %v", err)
		}
		if again.Theme != first.Theme {
			t.Fatalf("theme = %+v, want %+v", again.Theme, first.Theme)
		}
	}
}

func TestGenerateSaturationIdentity(t *testing.T) {
	pixels := checkerboardPixels(6, 6, Pixel{R: 200, G: 40, B: 30}, Pixel{R: 30, G: 60, B: 90})

	cfg := DefaultConfig()
	cfg.ClusterCount = MinimalClusterCount
	raw, err := GenerateFromPixels(pixels, cfg)
	if err != nil {
		t.Fatalf("GenerateFromPixels() error = %v", err)
	}

	one := 1.0
	cfg.Saturation = &one
	unit, err := GenerateFromPixels(pixels, cfg)
	if err != nil {
		t.Fatalf("GenerateFromPixels(1.0) error = %v", err)
	}

	if raw.Theme != unit.Theme {
		t.Errorf("multiplier 1.0 changed the theme: %+v vs %+v", unit.Theme, raw.Theme)
	}
	if raw.Selected != raw.Adjusted {
		t.Errorf("nil multiplier adjusted the pair: %+v vs %+v", raw.Adjusted, raw.Selected)
	}
}

func TestGenerateImage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ClusterCount = MinimalClusterCount

	result, err := Generate(checkerboard(12, 12, opaqueRed, opaqueBlue), cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !result.Theme.Background.Valid() || !result.Theme.Foreground.Valid() {
		t.Errorf("Generate() theme = %+v, want valid hex colours", result.Theme)
	}
	if !pixelNear(result.Adjusted.Background.Pixel(), Pixel{B: 255}) {
		t.Errorf("background = %v, want blue", result.Adjusted.Background.Pixel())
	}
}

func TestGenerateErrors(t *testing.T) {
	pixels := checkerboardPixels(4, 4, Pixel{R: 255}, Pixel{B: 255})
	nan := math.NaN()

	tests := []struct {
		name    string
		pixels  []Pixel
		mutate  func(*Config)
		wantErr error
	}{
		{name: "no pixels", pixels: nil, mutate: func(*Config) {}, wantErr: ErrNoPixels},
		{name: "too many clusters", pixels: pixels, mutate: func(c *Config) { c.ClusterCount = 8 }, wantErr: ErrInsufficientColours},
		{name: "zero clusters", pixels: pixels, mutate: func(c *Config) { c.ClusterCount = 0 }, wantErr: ErrInvalidClusterCount},
		{name: "bad mode", pixels: pixels, mutate: func(c *Config) { c.ClusterCount = 2; c.Mode = Mode(5) }, wantErr: ErrInvalidMode},
		{name: "nan multiplier", pixels: pixels, mutate: func(c *Config) { c.ClusterCount = 2; c.Saturation = &nan }, wantErr: ErrInvalidMultiplier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := GenerateFromPixels(tt.pixels, cfg); !errors.Is(err, tt.wantErr) {
				t.Errorf("GenerateFromPixels() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Generate(checkerboard(2, 2, opaqueRed, opaqueBlue), Config{Algorithm: "bogus", ClusterCount: 2}); err == nil {
		t.Error("Generate() with unknown algorithm expected error")
	}

	for _, alg := range []Algorithm{AlgorithmLloyd, AlgorithmDominant, "bogus"} {
		if _, err := GenerateFromPixels(pixels, Config{Algorithm: alg, ClusterCount: 2}); err == nil {
			t.Errorf("GenerateFromPixels() with algorithm %q expected error", alg)
		}
	}
	if _, err := GenerateFromPixels(pixels, Config{ClusterCount: 2}); err != nil {
		t.Errorf("GenerateFromPixels() with empty algorithm error = %v", err)
	}
}
