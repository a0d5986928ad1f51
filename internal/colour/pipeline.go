package colour

import (
	"fmt"
	"image"
)

// Config holds the inputs of one theme derivation.
type Config struct {
	Algorithm    Algorithm
	ClusterCount int
	Mode         Mode
	// Saturation is the optional multiplier; nil keeps the raw cluster colours.
	Saturation *float64
}

// DefaultConfig returns the full-pipeline configuration in light mode.
func DefaultConfig() Config {
	return Config{
		Algorithm:    AlgorithmHamerly,
		ClusterCount: DefaultClusterCount,
		Mode:         ModeLight,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.ClusterCount < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidClusterCount, c.ClusterCount)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(c.Mode))
	}
	if c.Saturation != nil && !isFinite(*c.Saturation) {
		return fmt.Errorf("%w: %v", ErrInvalidMultiplier, *c.Saturation)
	}
	return nil
}

// Result carries every stage of a theme derivation.
type Result struct {
	// Palette holds the centroids ordered by descending chroma.
	Palette  Palette
	Selected ThemePair
	Adjusted ThemePair
	Theme    Theme
}

// Generate derives a theme from a decoded image using the configured algorithm.
func Generate(img image.Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	extractor, err := NewExtractor(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	palette, err := extractor.Extract(img, cfg.ClusterCount)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	return finish(palette, cfg)
}

// GenerateFromPixels derives a theme from a raw pixel sequence. It performs no
// I/O and only supports the Hamerly quantizer; cfg.Algorithm must be empty or
// AlgorithmHamerly.
func GenerateFromPixels(pixels []Pixel, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Algorithm != "" && cfg.Algorithm != AlgorithmHamerly {
		return nil, fmt.Errorf("algorithm %s cannot cluster raw pixels (use %s)", cfg.Algorithm, AlgorithmHamerly)
	}
	palette, err := NewHamerlyExtractor(DefaultClusterOptions()).ExtractPixels(pixels, cfg.ClusterCount)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	return finish(palette, cfg)
}

func finish(palette Palette, cfg Config) (*Result, error) {
	ordered := palette.Ordered()

	selected, err := SelectPair(ordered, cfg.Mode)
	if err != nil {
		return nil, err
	}

	adjusted, err := Adjust(selected, cfg.Saturation)
	if err != nil {
		return nil, err
	}

	return &Result{
		Palette:  ordered,
		Selected: selected,
		Adjusted: adjusted,
		Theme:    EncodePair(adjusted),
	}, nil
}
