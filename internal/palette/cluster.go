package palette

import (
	"errors"

	"github.com/muesli/clusters"
)

// Sample is one distinct color in RGB space together with the number of
// pixels that carry it.
//
// Clustering the distinct colors with their pixel counts as weights minimizes
// exactly the same objective as clustering every pixel individually, at a
// fraction of the cost for photographs with large flat areas.
type Sample struct {
	Point  clusters.Coordinates
	Weight float64
}

// Clusterer partitions weighted samples into exactly k groups and returns the
// k group centroids.
//
// Implementations must be safe to call from multiple goroutines and must not
// keep state between calls. Callers guarantee that len(samples) > k > 0 and
// that all samples are distinct.
type Clusterer interface {
	Cluster(samples []Sample, k int) ([]clusters.Coordinates, error)
}

// ClustererFunc adapts a plain function to the Clusterer interface.
type ClustererFunc func(samples []Sample, k int) ([]clusters.Coordinates, error)

// Cluster calls f(samples, k).
func (f ClustererFunc) Cluster(samples []Sample, k int) ([]clusters.Coordinates, error) {
	return f(samples, k)
}

var (
	errNoSamples   = errors.New("no samples to cluster")
	errInvalidK    = errors.New("cluster count must be at least 1")
	errTooFewItems = errors.New("fewer distinct samples than clusters")
)

func checkClusterArgs(samples []Sample, k int) error {
	if len(samples) == 0 {
		return errNoSamples
	}
	if k < 1 {
		return errInvalidK
	}
	if k > len(samples) {
		return errTooFewItems
	}
	return nil
}
