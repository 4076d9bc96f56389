package palette

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/muesli/clusters"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
)

// ErrNilImage is returned by extractors when no image is supplied.
var ErrNilImage = errors.New("image cannot be nil")

// Extractor reduces an image to at most maxColors representative colors.
//
// An image with no pixels yields an empty, non-nil slice and a nil error so
// callers can tell "nothing found" apart from a failure.
type Extractor interface {
	Extract(img image.Image, maxColors int) ([]Pixel, error)
}

// Algorithm names an extraction strategy.
type Algorithm string

const (
	// AlgorithmKMeans clusters with the deterministic LloydClusterer.
	AlgorithmKMeans Algorithm = "kmeans"

	// AlgorithmKMeansMuesli clusters with github.com/muesli/kmeans.
	// Results are not reproducible between runs.
	AlgorithmKMeansMuesli Algorithm = "kmeans-muesli"

	// AlgorithmDominantColor picks weighted dominant colors with
	// github.com/cenkalti/dominantcolor. It may return fewer colors
	// than requested.
	AlgorithmDominantColor Algorithm = "dominantcolor"
)

// ValidAlgorithms lists every supported algorithm, default first.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans, AlgorithmKMeansMuesli, AlgorithmDominantColor}
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool {
	for _, v := range ValidAlgorithms() {
		if a == v {
			return true
		}
	}
	return false
}

// NewExtractor builds the extractor described by opts.
func NewExtractor(opts Options) (Extractor, error) {
	switch opts.Algorithm {
	case AlgorithmKMeans, "":
		return NewClusterExtractor(&LloydClusterer{
			Seed:          opts.Seed,
			Restarts:      opts.Restarts,
			MaxIterations: opts.MaxIterations,
			Tolerance:     DefaultTolerance,
		}), nil
	case AlgorithmKMeansMuesli:
		return NewClusterExtractor(MuesliClusterer{}), nil
	case AlgorithmDominantColor:
		return DominantColorExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", opts.Algorithm, ValidAlgorithms())
	}
}

// ClusterExtractor implements the dominant color contract on top of a
// Clusterer.
//
// When the image has no more distinct colors than requested, the distinct
// colors are returned unchanged in (R, G, B) order and the clusterer is never
// called. Otherwise the pixel population is split into exactly maxColors
// clusters and the truncated centroids are returned.
type ClusterExtractor struct {
	clusterer Clusterer
}

// NewClusterExtractor wraps c. A nil c selects NewLloydClusterer().
func NewClusterExtractor(c Clusterer) *ClusterExtractor {
	if c == nil {
		c = NewLloydClusterer()
	}
	return &ClusterExtractor{clusterer: c}
}

// Extract implements Extractor.
func (e *ClusterExtractor) Extract(img image.Image, maxColors int) ([]Pixel, error) {
	hist, err := histogramFor(img, maxColors)
	if err != nil {
		return nil, err
	}
	if hist.Len() <= maxColors {
		return hist.Colors(), nil
	}

	centers, err := e.clusterer.Cluster(hist.Samples(), maxColors)
	if err != nil {
		return nil, fmt.Errorf("clustering %d colors into %d failed: %w", hist.Len(), maxColors, err)
	}
	if len(centers) == 0 || len(centers) > maxColors {
		return nil, fmt.Errorf("clusterer returned %d centroids, want %d", len(centers), maxColors)
	}

	out := make([]Pixel, len(centers))
	for i, c := range centers {
		if len(c) < 3 {
			return nil, fmt.Errorf("centroid %d has %d coordinates, want 3", i, len(c))
		}
		out[i] = pixelFromFloats(c[0], c[1], c[2])
	}
	return out, nil
}

// DominantColorExtractor uses github.com/cenkalti/dominantcolor for images
// with more distinct colors than requested, ordered by weight descending.
type DominantColorExtractor struct{}

// Extract implements Extractor.
func (DominantColorExtractor) Extract(img image.Image, maxColors int) ([]Pixel, error) {
	hist, err := histogramFor(img, maxColors)
	if err != nil {
		return nil, err
	}
	if hist.Len() <= maxColors {
		return hist.Colors(), nil
	}

	found := dominantcolor.FindWeight(imaging.Normalize(img), maxColors)
	out := make([]Pixel, 0, len(found))
	for _, c := range found {
		out = append(out, Pixel{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B})
		if len(out) == maxColors {
			break
		}
	}
	return out, nil
}

func histogramFor(img image.Image, maxColors int) (Histogram, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if maxColors < 1 {
		return nil, fmt.Errorf("max colors must be at least 1, got %d", maxColors)
	}
	return CountColors(img), nil
}

// Histogram maps each distinct pixel value of an image to its pixel count.
type Histogram map[Pixel]int

// CountColors builds the exact color histogram of img.
func CountColors(img image.Image) Histogram {
	n := imaging.Normalize(img)
	hist := make(Histogram)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	for y := 0; y < h; y++ {
		row := n.Pix[y*n.Stride : y*n.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			hist[Pixel{R: row[x], G: row[x+1], B: row[x+2]}]++
		}
	}
	return hist
}

// Len returns the number of distinct colors.
func (h Histogram) Len() int {
	return len(h)
}

// Colors returns the distinct colors in (R, G, B) order.
func (h Histogram) Colors() []Pixel {
	out := make([]Pixel, 0, len(h))
	for p := range h {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// Samples returns one weighted sample per distinct color, in (R, G, B) order.
func (h Histogram) Samples() []Sample {
	colors := h.Colors()
	out := make([]Sample, len(colors))
	for i, p := range colors {
		out[i] = Sample{
			Point:  clusters.Coordinates{float64(p.R), float64(p.G), float64(p.B)},
			Weight: float64(h[p]),
		}
	}
	return out
}
