package colour

import "errors"

// Errors returned by the extraction pipeline. Callers should match them with errors.Is,
// since every stage wraps them with the offending value.
var (
	// ErrNoPixels is returned when the pixel sequence is empty.
	ErrNoPixels = errors.New("no pixels to cluster")

	// ErrInsufficientColours is returned when the requested cluster count exceeds the
	// number of distinct colours available.
	ErrInsufficientColours = errors.New("not enough distinct colours")

	// ErrInvalidClusterCount is returned for a cluster count below 1.
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrInvalidMultiplier is returned when the saturation multiplier is not a finite number.
	ErrInvalidMultiplier = errors.New("invalid saturation multiplier")

	// ErrInvalidMode is returned for any mode other than light or dark.
	ErrInvalidMode = errors.New("invalid mode")
)
