package palette

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// MuesliClusterer partitions samples with github.com/muesli/kmeans.
//
// The library seeds its centroids from the wall clock, so unlike
// LloydClusterer the result is not reproducible between runs. Samples are
// expanded back into one observation per pixel because the library has no
// notion of weights.
type MuesliClusterer struct {
	// DeltaThreshold stops iterating once fewer than this fraction of
	// observations change cluster. Zero selects the library default.
	DeltaThreshold float64
}

// Cluster implements Clusterer.
func (c MuesliClusterer) Cluster(samples []Sample, k int) ([]clusters.Coordinates, error) {
	if err := checkClusterArgs(samples, k); err != nil {
		return nil, err
	}

	km := kmeans.New()
	if c.DeltaThreshold > 0 {
		var err error
		km, err = kmeans.NewWithOptions(c.DeltaThreshold, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid kmeans options: %w", err)
		}
	}

	// The library draws initial centers from [0,1), so work in unit space.
	var dataset clusters.Observations
	for _, s := range samples {
		unit := make(clusters.Coordinates, len(s.Point))
		for i, v := range s.Point {
			unit[i] = v / 255.0
		}
		for n := max(int(math.Round(s.Weight)), 1); n > 0; n-- {
			dataset = append(dataset, unit)
		}
	}

	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("kmeans partition failed: %w", err)
	}

	centers := make([]clusters.Coordinates, 0, len(cc))
	for _, cl := range cc {
		center := make(clusters.Coordinates, len(cl.Center))
		for i, v := range cl.Center {
			center[i] = v * 255.0
		}
		centers = append(centers, center)
	}
	return centers, nil
}
