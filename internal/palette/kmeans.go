package palette

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/muesli/clusters"
	"gonum.org/v1/gonum/floats"
)

// Defaults for LloydClusterer.
const (
	DefaultSeed          uint64  = 42
	DefaultRestarts              = 10
	DefaultMaxIterations         = 300
	DefaultTolerance     float64 = 1e-4
)

// LloydClusterer is a deterministic weighted k-means.
//
// Each restart seeds centroids with k-means++ and then runs Lloyd's
// algorithm until the total squared centroid movement falls below
// Tolerance times the mean per-channel variance of the data, or until
// MaxIterations is reached. The restart with the lowest inertia (weighted
// sum of squared distances to the nearest centroid) wins.
//
// All randomness comes from a PCG generator built from Seed on every call,
// so identical inputs always produce identical centroids and a single
// LloydClusterer can be shared between goroutines.
type LloydClusterer struct {
	Seed          uint64
	Restarts      int
	MaxIterations int
	Tolerance     float64
}

// NewLloydClusterer returns a clusterer with the default seed, 10 restarts,
// 300 iterations and a relative tolerance of 1e-4.
func NewLloydClusterer() *LloydClusterer {
	return &LloydClusterer{
		Seed:          DefaultSeed,
		Restarts:      DefaultRestarts,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// Cluster implements Clusterer.
func (c *LloydClusterer) Cluster(samples []Sample, k int) ([]clusters.Coordinates, error) {
	if err := checkClusterArgs(samples, k); err != nil {
		return nil, err
	}

	restarts := max(c.Restarts, 1)
	maxIter := max(c.MaxIterations, 1)
	tol := c.Tolerance * meanVariance(samples)

	rng := rand.New(rand.NewPCG(c.Seed, c.Seed))

	var best []clusters.Coordinates
	bestInertia := math.Inf(1)
	for r := 0; r < restarts; r++ {
		centers := seedPlusPlus(samples, k, rng)
		centers, inertia := lloyd(samples, centers, maxIter, tol)
		if inertia < bestInertia {
			best, bestInertia = centers, inertia
		}
	}
	return best, nil
}

// seedPlusPlus picks k initial centroids with weighted k-means++: each new
// centroid is drawn with probability proportional to weight times the squared
// distance to the closest centroid chosen so far.
func seedPlusPlus(samples []Sample, k int, rng *rand.Rand) []clusters.Coordinates {
	weights := make([]float64, len(samples))
	for i, s := range samples {
		weights[i] = s.Weight
	}

	centers := make([]clusters.Coordinates, 0, k)
	first := weightedChoice(weights, rng)
	centers = append(centers, clonePoint(samples[first].Point))

	closest := make([]float64, len(samples))
	for i, s := range samples {
		closest[i] = sqDist(s.Point, centers[0])
	}

	probs := make([]float64, len(samples))
	for len(centers) < k {
		for i, s := range samples {
			probs[i] = s.Weight * closest[i]
		}
		next := weightedChoice(probs, rng)
		center := clonePoint(samples[next].Point)
		centers = append(centers, center)

		for i, s := range samples {
			if d := sqDist(s.Point, center); d < closest[i] {
				closest[i] = d
			}
		}
	}
	return centers
}

// weightedChoice returns an index drawn with probability proportional to
// w[i]. Zero-weight entries are never chosen unless every weight is zero.
func weightedChoice(w []float64, rng *rand.Rand) int {
	total := floats.Sum(w)
	if total <= 0 {
		return rng.IntN(len(w))
	}
	target := rng.Float64() * total
	cumulative := 0.0
	last := 0
	for i, v := range w {
		if v <= 0 {
			continue
		}
		cumulative += v
		last = i
		if cumulative > target {
			return i
		}
	}
	return last
}

// lloyd refines centers in place and returns them with their final inertia.
func lloyd(samples []Sample, centers []clusters.Coordinates, maxIter int, tol float64) ([]clusters.Coordinates, float64) {
	k := len(centers)
	dim := len(samples[0].Point)
	labels := make([]int, len(samples))

	for iter := 0; iter < maxIter; iter++ {
		assign(samples, centers, labels)

		sums := make([]clusters.Coordinates, k)
		mass := make([]float64, k)
		for j := range sums {
			sums[j] = make(clusters.Coordinates, dim)
		}
		for i, s := range samples {
			floats.AddScaled(sums[labels[i]], s.Weight, s.Point)
			mass[labels[i]] += s.Weight
		}

		var empty []int
		for j := range sums {
			if mass[j] == 0 {
				empty = append(empty, j)
				continue
			}
			floats.Scale(1/mass[j], sums[j])
		}
		if len(empty) > 0 {
			relocate(samples, centers, labels, sums, empty)
		}

		shift := 0.0
		for j := range centers {
			d := floats.Distance(centers[j], sums[j], 2)
			shift += d * d
		}
		centers = sums
		if shift <= tol {
			break
		}
	}

	inertia := assign(samples, centers, labels)
	return centers, inertia
}

// assign labels every sample with its nearest center and returns the
// weighted sum of squared distances.
func assign(samples []Sample, centers []clusters.Coordinates, labels []int) float64 {
	inertia := 0.0
	for i, s := range samples {
		best, bestDist := 0, math.Inf(1)
		for j, c := range centers {
			if d := sqDist(s.Point, c); d < bestDist {
				best, bestDist = j, d
			}
		}
		labels[i] = best
		inertia += s.Weight * bestDist
	}
	return inertia
}

// relocate moves each empty cluster onto the sample that is currently
// farthest from its own centroid, taking a different sample for each.
func relocate(samples []Sample, centers []clusters.Coordinates, labels []int, next []clusters.Coordinates, empty []int) {
	order := make([]int, len(samples))
	dist := make([]float64, len(samples))
	for i, s := range samples {
		order[i] = i
		dist[i] = sqDist(s.Point, centers[labels[i]])
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dist[order[a]] > dist[order[b]]
	})
	for n, j := range empty {
		next[j] = clonePoint(samples[order[n]].Point)
	}
}

// meanVariance is the weighted variance of each coordinate, averaged over
// the coordinates.
func meanVariance(samples []Sample) float64 {
	dim := len(samples[0].Point)
	mean := make([]float64, dim)
	total := 0.0
	for _, s := range samples {
		floats.AddScaled(mean, s.Weight, s.Point)
		total += s.Weight
	}
	if total == 0 {
		return 0
	}
	floats.Scale(1/total, mean)

	variance := 0.0
	for _, s := range samples {
		for d, v := range s.Point {
			diff := v - mean[d]
			variance += s.Weight * diff * diff
		}
	}
	return variance / total / float64(dim)
}

func sqDist(a, b clusters.Coordinates) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func clonePoint(p clusters.Coordinates) clusters.Coordinates {
	out := make(clusters.Coordinates, len(p))
	copy(out, p)
	return out
}
