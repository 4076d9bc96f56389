package palette

import "fmt"

// Color budget limits enforced by Options.Validate. The pipeline itself only
// requires a positive budget; these bounds are what the front ends accept.
const (
	DefaultMaxColors = 50
	MinColorBudget   = 5
	MaxColorBudget   = 200
)

// Options holds everything needed to build and run a Pipeline.
type Options struct {
	MaxColors  int
	SortByHue  bool
	SquareSize int

	Algorithm     Algorithm
	Seed          uint64
	Restarts      int
	MaxIterations int
}

// DefaultOptions returns 50 colors, hue sorting, 50px cells and the
// deterministic k-means extractor.
func DefaultOptions() Options {
	return Options{
		MaxColors:     DefaultMaxColors,
		SortByHue:     true,
		SquareSize:    DefaultSquareSize,
		Algorithm:     AlgorithmKMeans,
		Seed:          DefaultSeed,
		Restarts:      DefaultRestarts,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate checks the options against the limits accepted by the front ends.
func (o Options) Validate() error {
	if o.MaxColors < MinColorBudget || o.MaxColors > MaxColorBudget {
		return fmt.Errorf("max colors must be between %d and %d, got %d", MinColorBudget, MaxColorBudget, o.MaxColors)
	}
	if o.SquareSize < 1 {
		return fmt.Errorf("square size must be positive, got %d", o.SquareSize)
	}
	if !o.Algorithm.Valid() {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", o.Algorithm, ValidAlgorithms())
	}
	if o.Restarts < 1 {
		return fmt.Errorf("restarts must be at least 1, got %d", o.Restarts)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", o.MaxIterations)
	}
	return nil
}
