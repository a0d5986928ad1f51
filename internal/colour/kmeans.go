package colour

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Default clustering parameters used by the theme pipeline.
const (
	DefaultClusterCount         = 8
	MinimalClusterCount         = 2
	DefaultMaxIterations        = 20
	DefaultConvergenceThreshold = 0.005
	DefaultSeed                 = 42
)

// ClusterOptions configures a k-means run.
type ClusterOptions struct {
	K                    int
	MaxIterations        int
	ConvergenceThreshold float64
	Seed                 uint64

	// AllowDuplicates permits fewer distinct input colours than K. The missing
	// centroids are filled with copies of already chosen ones instead of failing
	// with ErrInsufficientColours.
	AllowDuplicates bool
}

// DefaultClusterOptions returns the options used by the full pipeline.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		K:                    DefaultClusterCount,
		MaxIterations:        DefaultMaxIterations,
		ConvergenceThreshold: DefaultConvergenceThreshold,
		Seed:                 DefaultSeed,
	}
}

// Cluster partitions points into opts.K clusters with Hamerly's accelerated k-means
// and returns the centroids in cluster index order. The result is a pure function of
// the input and the options: the same seed always reproduces the same centroids.
func Cluster(points []Lab, opts ClusterOptions) ([]Lab, error) {
	if len(points) == 0 {
		return nil, ErrNoPixels
	}
	if opts.K < 1 {
		return nil, fmt.Errorf("%w: %d (must be at least 1)", ErrInvalidClusterCount, opts.K)
	}
	if !opts.AllowDuplicates {
		if distinct := countDistinct(points, opts.K); distinct < opts.K {
			return nil, fmt.Errorf("%w: requested %d clusters but only %d distinct colours",
				ErrInsufficientColours, opts.K, distinct)
		}
	}

	h := newHamerly(points, opts)
	h.run()

	centroids := make([]Lab, len(h.centroids))
	copy(centroids, h.centroids)
	return centroids, nil
}

// countDistinct counts distinct points, stopping once limit is reached.
func countDistinct(points []Lab, limit int) int {
	seen := make(map[Lab]struct{}, limit)
	for _, p := range points {
		seen[p] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	return len(seen)
}

// hamerly holds the working state of one clustering run.
type hamerly struct {
	points    []Lab
	opts      ClusterOptions
	centroids []Lab

	assignments []int
	upper       []float64 // upper bound on the distance to the assigned centroid
	lower       []float64 // lower bound on the distance to the second closest centroid
	halfSep     []float64 // half the distance to the closest other centroid
	moved       []float64
}

func newHamerly(points []Lab, opts ClusterOptions) *hamerly {
	n := len(points)
	return &hamerly{
		points:      points,
		opts:        opts,
		assignments: make([]int, n),
		upper:       make([]float64, n),
		lower:       make([]float64, n),
		halfSep:     make([]float64, opts.K),
		moved:       make([]float64, opts.K),
	}
}

func (h *hamerly) run() {
	h.centroids = initializeCentroidsKMeansPlusPlus(h.points, h.opts.K, h.opts.Seed)

	for i, p := range h.points {
		h.assignFull(i, p)
	}

	for iter := 0; iter < h.opts.MaxIterations; iter++ {
		totalMovement := h.recalculateCentroids()
		h.updateBounds()

		// Centroids barely moved, we've converged.
		if totalMovement < h.opts.ConvergenceThreshold {
			return
		}

		h.computeHalfSeparation()
		for i, p := range h.points {
			a := h.assignments[i]
			bound := math.Max(h.halfSep[a], h.lower[i])
			if h.upper[i] <= bound {
				continue
			}
			// Tighten the upper bound before paying for a full scan.
			h.upper[i] = p.distance(h.centroids[a])
			if h.upper[i] <= bound {
				continue
			}
			h.assignFull(i, p)
		}
	}
}

// assignFull scans every centroid for point i and resets both bounds exactly.
func (h *hamerly) assignFull(i int, p Lab) {
	nearest, first, second := nearestTwo(p, h.centroids)
	h.assignments[i] = nearest
	h.upper[i] = first
	h.lower[i] = second
}

// nearestTwo returns the index of the closest centroid with the distances to the
// closest and second closest. Ties resolve to the lowest index.
func nearestTwo(p Lab, centroids []Lab) (int, float64, float64) {
	nearest := 0
	first := math.Inf(1)
	second := math.Inf(1)
	for j, c := range centroids {
		d := p.distance(c)
		switch {
		case d < first:
			second = first
			first = d
			nearest = j
		case d < second:
			second = d
		}
	}
	return nearest, first, second
}

// recalculateCentroids moves each centroid to the mean of its points and returns
// the summed movement. Sums are rebuilt from scratch in point order, so the result
// does not depend on the history of reassignments. A cluster left without points
// keeps its previous centroid.
func (h *hamerly) recalculateCentroids() float64 {
	k := len(h.centroids)
	sums := make([]Lab, k)
	counts := make([]int, k)

	for i, p := range h.points {
		c := h.assignments[i]
		sums[c].L += p.L
		sums[c].A += p.A
		sums[c].B += p.B
		counts[c]++
	}

	total := 0.0
	for j := range k {
		if counts[j] == 0 {
			h.moved[j] = 0
			continue
		}
		n := float64(counts[j])
		next := Lab{L: sums[j].L / n, A: sums[j].A / n, B: sums[j].B / n}
		h.moved[j] = h.centroids[j].distance(next)
		h.centroids[j] = next
		total += h.moved[j]
	}

	return total
}

// updateBounds loosens every point's bounds by how far the centroids moved.
func (h *hamerly) updateBounds() {
	furthest, secondFurthest := 0, -1
	for j := 1; j < len(h.moved); j++ {
		switch {
		case h.moved[j] > h.moved[furthest]:
			secondFurthest = furthest
			furthest = j
		case secondFurthest < 0 || h.moved[j] > h.moved[secondFurthest]:
			secondFurthest = j
		}
	}

	for i, a := range h.assignments {
		h.upper[i] += h.moved[a]
		if a == furthest {
			if secondFurthest >= 0 {
				h.lower[i] -= h.moved[secondFurthest]
			}
		} else {
			h.lower[i] -= h.moved[furthest]
		}
	}
}

func (h *hamerly) computeHalfSeparation() {
	for j, c := range h.centroids {
		closest := math.Inf(1)
		for other, o := range h.centroids {
			if other == j {
				continue
			}
			closest = math.Min(closest, c.distance(o))
		}
		h.halfSep[j] = closest / 2
	}
}

// initializeCentroidsKMeansPlusPlus seeds the centroids with k-means++ driven by a
// PCG source, so the choice is reproducible for a given seed.
func initializeCentroidsKMeansPlusPlus(points []Lab, k int, seed uint64) []Lab {
	rng := rand.New(rand.NewPCG(seed, seed))
	centroids := make([]Lab, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, p := range points {
			minDist := math.Inf(1)
			for _, c := range centroids {
				minDist = math.Min(minDist, p.distanceSquared(c))
			}
			distances[i] = minDist
			totalDistance += minDist
		}

		// Every point already coincides with a centroid; only reachable when
		// duplicates are allowed.
		if totalDistance == 0 {
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := -1
		for i, d := range distances {
			if d == 0 {
				continue
			}
			chosen = i
			cumulative += d
			if cumulative >= target {
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}
