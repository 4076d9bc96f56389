package palette

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"sort"
	"testing"

	"github.com/muesli/clusters"
)

func samplesOf(points ...[4]float64) []Sample {
	out := make([]Sample, len(points))
	for i, p := range points {
		out[i] = Sample{Point: clusters.Coordinates{p[0], p[1], p[2]}, Weight: p[3]}
	}
	return out
}

func sortCenters(cs []clusters.Coordinates) {
	sort.Slice(cs, func(i, j int) bool {
		for d := range cs[i] {
			if cs[i][d] != cs[j][d] {
				return cs[i][d] < cs[j][d]
			}
		}
		return false
	})
}

func TestCheckClusterArgs(t *testing.T) {
	three := samplesOf([4]float64{0, 0, 0, 1}, [4]float64{1, 1, 1, 1}, [4]float64{2, 2, 2, 1})

	tests := []struct {
		name    string
		samples []Sample
		k       int
		want    error
	}{
		{"valid", three, 2, nil},
		{"k equals n", three, 3, nil},
		{"no samples", nil, 1, errNoSamples},
		{"zero k", three, 0, errInvalidK},
		{"k above n", three, 4, errTooFewItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkClusterArgs(tt.samples, tt.k); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLloydClusterer_SeparatedGroups(t *testing.T) {
	samples := samplesOf(
		[4]float64{0, 0, 0, 3},
		[4]float64{2, 2, 2, 1},
		[4]float64{250, 250, 250, 1},
		[4]float64{254, 254, 254, 1},
	)

	centers, err := NewLloydClusterer().Cluster(samples, 2)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	if len(centers) != 2 {
		t.Fatalf("expected 2 centers, got %d", len(centers))
	}
	sortCenters(centers)

	want := []clusters.Coordinates{{0.5, 0.5, 0.5}, {252, 252, 252}}
	for i := range want {
		for d := range want[i] {
			if math.Abs(centers[i][d]-want[i][d]) > 1e-9 {
				t.Errorf("center %d = %v, want %v", i, centers[i], want[i])
				break
			}
		}
	}
}

func TestLloydClusterer_KEqualsN(t *testing.T) {
	samples := samplesOf(
		[4]float64{10, 0, 0, 1},
		[4]float64{0, 10, 0, 5},
		[4]float64{0, 0, 10, 2},
	)

	centers, err := NewLloydClusterer().Cluster(samples, 3)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	sortCenters(centers)

	want := []clusters.Coordinates{{0, 0, 10}, {0, 10, 0}, {10, 0, 0}}
	if !reflect.DeepEqual(centers, want) {
		t.Errorf("got %v, want %v", centers, want)
	}
}

func TestLloydClusterer_Deterministic(t *testing.T) {
	var samples []Sample
	for i := 0; i < 60; i++ {
		samples = append(samples, Sample{
			Point:  clusters.Coordinates{float64(i * 4 % 256), float64(i * 7 % 256), float64(i * 13 % 256)},
			Weight: float64(1 + i%5),
		})
	}

	c := NewLloydClusterer()
	first, err := c.Cluster(samples, 6)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	second, err := c.Cluster(samples, 6)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different centers:\n%v\n%v", first, second)
	}
}

func TestLloydClusterer_ZeroConfigUsesOneRun(t *testing.T) {
	samples := samplesOf([4]float64{0, 0, 0, 1}, [4]float64{100, 100, 100, 1}, [4]float64{200, 200, 200, 1})

	centers, err := (&LloydClusterer{}).Cluster(samples, 2)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}
	if len(centers) != 2 {
		t.Errorf("expected 2 centers, got %d", len(centers))
	}
}

func TestLloydClusterer_InvalidArgs(t *testing.T) {
	if _, err := NewLloydClusterer().Cluster(nil, 2); err == nil {
		t.Error("expected error for empty samples")
	}
	one := samplesOf([4]float64{1, 2, 3, 1})
	if _, err := NewLloydClusterer().Cluster(one, 2); err == nil {
		t.Error("expected error when k exceeds sample count")
	}
}

func TestLloyd_RelocatesEmptyCluster(t *testing.T) {
	samples := samplesOf([4]float64{0, 0, 0, 1}, [4]float64{10, 10, 10, 1})
	start := []clusters.Coordinates{{0, 0, 0}, {0, 0, 0}}

	centers, inertia := lloyd(samples, start, 10, 0)
	if inertia != 0 {
		t.Errorf("inertia = %v, want 0", inertia)
	}
	sortCenters(centers)
	want := []clusters.Coordinates{{0, 0, 0}, {10, 10, 10}}
	if !reflect.DeepEqual(centers, want) {
		t.Errorf("got %v, want %v", centers, want)
	}
}

func TestWeightedChoice(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 100; i++ {
		if got := weightedChoice([]float64{0, 0, 5, 0}, rng); got != 2 {
			t.Fatalf("only index 2 has weight, got %d", got)
		}
	}
	for i := 0; i < 100; i++ {
		if got := weightedChoice([]float64{0, 0, 0}, rng); got < 0 || got > 2 {
			t.Fatalf("index out of range: %d", got)
		}
	}
}

func TestMeanVariance(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		want    float64
	}{
		{"two points", samplesOf([4]float64{0, 0, 0, 1}, [4]float64{2, 2, 2, 1}), 1},
		{"single point", samplesOf([4]float64{9, 9, 9, 4}), 0},
		{"zero weight", samplesOf([4]float64{0, 0, 0, 0}), 0},
		{"weighted", samplesOf([4]float64{0, 0, 0, 3}, [4]float64{4, 4, 4, 1}), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := meanVariance(tt.samples); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
