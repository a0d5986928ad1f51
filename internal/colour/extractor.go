package colour

import (
	"fmt"
	"image"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Extractor defines the interface for colour extraction algorithms.
type Extractor interface {
	// Extract returns exactly count centroids for the image, in the
	// algorithm's natural (unordered) order.
	Extract(img image.Image, count int) (Palette, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmHamerly is the deterministic Hamerly k-means in CIELAB. It is the default.
	AlgorithmHamerly Algorithm = "hamerly"

	// AlgorithmLloyd runs plain Lloyd k-means from muesli/kmeans. Its initialisation is
	// random, so results vary between runs.
	AlgorithmLloyd Algorithm = "lloyd"

	// AlgorithmDominant picks the most frequent colours with cenkalti/dominantcolor.
	AlgorithmDominant Algorithm = "dominant"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmHamerly, AlgorithmLloyd, AlgorithmDominant}
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmHamerly, "":
		return NewHamerlyExtractor(DefaultClusterOptions()), nil
	case AlgorithmLloyd:
		return &LloydExtractor{}, nil
	case AlgorithmDominant:
		return &DominantExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// HamerlyExtractor clusters every pixel of the image with Cluster.
type HamerlyExtractor struct {
	opts ClusterOptions
}

// NewHamerlyExtractor creates an extractor using opts for everything but K.
func NewHamerlyExtractor(opts ClusterOptions) *HamerlyExtractor {
	return &HamerlyExtractor{opts: opts}
}

// Extract clusters the image pixels.
func (e *HamerlyExtractor) Extract(img image.Image, count int) (Palette, error) {
	if img == nil {
		return Palette{}, fmt.Errorf("image cannot be nil")
	}
	return e.ExtractPixels(PixelsFromImage(img), count)
}

// ExtractPixels clusters a raw pixel sequence.
func (e *HamerlyExtractor) ExtractPixels(pixels []Pixel, count int) (Palette, error) {
	if len(pixels) == 0 {
		return Palette{}, ErrNoPixels
	}
	opts := e.opts
	opts.K = count
	centroids, err := Cluster(ToLabSlice(pixels), opts)
	if err != nil {
		return Palette{}, err
	}
	return NewPalette(centroids), nil
}

// LloydExtractor clusters the image with muesli/kmeans.
type LloydExtractor struct{}

// Extract clusters the image pixels. Lab coordinates are scaled into the unit cube
// because muesli/clusters seeds its centres there.
func (e *LloydExtractor) Extract(img image.Image, count int) (Palette, error) {
	if img == nil {
		return Palette{}, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return Palette{}, fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidClusterCount, count)
	}

	points := ToLabSlice(PixelsFromImage(img))
	if len(points) == 0 {
		return Palette{}, ErrNoPixels
	}
	if distinct := countDistinct(points, count); distinct < count {
		return Palette{}, fmt.Errorf("%w: requested %d clusters but only %d distinct colours",
			ErrInsufficientColours, count, distinct)
	}

	dataset := make(clusters.Observations, len(points))
	for i, p := range points {
		dataset[i] = clusters.Coordinates{p.L / 100, (p.A + 128) / 255, (p.B + 128) / 255}
	}

	cc, err := kmeans.New().Partition(dataset, count)
	if err != nil {
		return Palette{}, fmt.Errorf("failed to partition pixels: %w", err)
	}

	colours := make([]Lab, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		colours = append(colours, Lab{
			L: c.Center[0] * 100,
			A: c.Center[1]*255 - 128,
			B: c.Center[2]*255 - 128,
		})
	}
	if len(colours) != count {
		return Palette{}, fmt.Errorf("%w: kmeans produced %d of %d clusters",
			ErrInsufficientColours, len(colours), count)
	}

	return NewPalette(colours), nil
}

// DominantExtractor returns the most frequent colours of the image, heaviest first.
type DominantExtractor struct{}

// Extract finds count dominant colours.
func (e *DominantExtractor) Extract(img image.Image, count int) (Palette, error) {
	if img == nil {
		return Palette{}, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return Palette{}, fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidClusterCount, count)
	}

	found := dominantcolor.FindWeight(img, count)
	if len(found) == 0 {
		return Palette{}, ErrNoPixels
	}
	if len(found) < count {
		return Palette{}, fmt.Errorf("%w: requested %d colours but only %d dominant colours found",
			ErrInsufficientColours, count, len(found))
	}

	colours := make([]Lab, len(found))
	for i, c := range found {
		colours[i] = ToLab(Pixel{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
	}
	return NewPalette(colours), nil
}
