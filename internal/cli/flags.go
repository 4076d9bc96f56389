package cli

import (
	"github.com/spf13/pflag"

	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

// paletteFlags are the palette settings shared by serve and extract.
type paletteFlags struct {
	colors     int
	sortByHue  bool
	squareSize int
	algorithm  string
}

func (f *paletteFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.colors, "colors", "c", palette.DefaultMaxColors, "maximum number of palette colors (5-200)")
	fs.BoolVar(&f.sortByHue, "sort-by-hue", true, "sort colors by hue, then brightness")
	fs.IntVar(&f.squareSize, "square-size", palette.DefaultSquareSize, "palette cell size in pixels")
	fs.StringVarP(&f.algorithm, "algorithm", "a", string(palette.AlgorithmKMeans), "extraction algorithm (kmeans, kmeans-muesli, dominantcolor)")
}

// options applies the flags over palette.DefaultOptions.
func (f *paletteFlags) options() palette.Options {
	opts := palette.DefaultOptions()
	opts.MaxColors = f.colors
	opts.SortByHue = f.sortByHue
	opts.SquareSize = f.squareSize
	opts.Algorithm = palette.Algorithm(f.algorithm)
	return opts
}
