package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/palette"
)

type extractOptions struct {
	paletteFlags
	seed          uint64
	restarts      int
	maxIterations int
	region        string
	maxDimension  int
	output        string
	format        string
	preview       bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	o := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the dominant color palette of an image",
		Long: `Extract the dominant colors of an image, save them as a palette image and
print them.

The image may be a file path or an http(s) URL. Supported formats: PNG,
JPEG, GIF, WebP, BMP, TIFF. The palette image format follows the output
file extension (.png, .jpg, .bmp).

Examples:
  # Extract up to 50 colors (default) into palette.png
  palette-mcp extract photo.jpg

  # 12 colors, unsorted, as JSON
  palette-mcp extract -c 12 --sort-by-hue=false -f json photo.jpg

  # Only the top-left quarter, downscaled to 256px first
  palette-mcp extract --region top-left --max-dimension 256 photo.jpg

  # An explicit region with swatches in the terminal
  palette-mcp extract --region 10,10,200,120 --preview photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, o, args[0])
		},
	}

	o.register(cmd.Flags())
	cmd.Flags().Uint64Var(&o.seed, "seed", palette.DefaultSeed, "random seed for the kmeans algorithm")
	cmd.Flags().IntVar(&o.restarts, "restarts", palette.DefaultRestarts, "number of kmeans restarts")
	cmd.Flags().IntVar(&o.maxIterations, "max-iterations", palette.DefaultMaxIterations, "maximum kmeans iterations per restart")
	cmd.Flags().StringVar(&o.region, "region", "", "analyze only a region: x1,y1,x2,y2 or a name such as top-left or center")
	cmd.Flags().IntVar(&o.maxDimension, "max-dimension", 0, "downscale so neither side exceeds this many pixels (0 disables)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "palette.png", "palette image file (empty to skip)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "hex", "color list format (hex, rgb, json)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "show color swatches when writing to a terminal")
	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, root *rootOptions, o *extractOptions, source string) error {
	logger := root.logger.Named("extract")

	opts := o.options()
	opts.Seed = o.seed
	opts.Restarts = o.restarts
	opts.MaxIterations = o.maxIterations
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if o.maxDimension < 0 {
		return fmt.Errorf("invalid configuration: max dimension must not be negative, got %d", o.maxDimension)
	}
	switch o.format {
	case "hex", "rgb", "json":
	default:
		return fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", o.format)
	}
	if o.output != "" {
		if _, err := imaging.EncoderFor(o.output); err != nil {
			return err
		}
	}

	sel, err := parseSelection(o.region)
	if err != nil {
		return err
	}
	sel.MaxDimension = o.maxDimension

	p, err := palette.NewFromOptions(opts, logger.Named("pipeline"))
	if err != nil {
		return err
	}

	logger.Debug("loading image", "source", source)
	src, err := imaging.NewImageCache().Load(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	logger.Debug("image loaded", "format", src.Format, "width", src.Image.Bounds().Dx(), "height", src.Image.Bounds().Dy())

	img, err := sel.Apply(src.Image)
	if err != nil {
		return err
	}

	res := p.Process(img, opts.MaxColors, opts.SortByHue)
	if !res.OK() {
		return res.Err
	}

	if o.output != "" {
		if err := imaging.Save(o.output, res.Image); err != nil {
			return err
		}
		logger.Info("palette saved", "path", o.output)
	}

	out := cmd.OutOrStdout()
	text, err := formatColors(res, o.output, o.format, o.preview && isTerminal(out))
	if err != nil {
		return err
	}
	if o.format != "json" {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Status)
	}
	_, err = io.WriteString(out, text)
	return err
}

// parseSelection accepts "x1,y1,x2,y2" or one of imaging.NamedRegions.
func parseSelection(region string) (imaging.Selection, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return imaging.Selection{}, nil
	}
	if !strings.Contains(region, ",") {
		for _, name := range imaging.NamedRegions() {
			if region == name {
				return imaging.Selection{Named: name}, nil
			}
		}
		return imaging.Selection{}, fmt.Errorf("invalid region: %q (use x1,y1,x2,y2 or one of %v)", region, imaging.NamedRegions())
	}

	parts := strings.Split(region, ",")
	if len(parts) != 4 {
		return imaging.Selection{}, fmt.Errorf("invalid region: %q (want x1,y1,x2,y2)", region)
	}
	var coords [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return imaging.Selection{}, fmt.Errorf("invalid region coordinate %q: %w", part, err)
		}
		coords[i] = n
	}
	return imaging.Selection{Region: &imaging.Region{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}}, nil
}

type jsonColor struct {
	Hex string `json:"hex"`
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
}

type jsonPalette struct {
	Status string      `json:"status"`
	Count  int         `json:"count"`
	Output string      `json:"output,omitempty"`
	Colors []jsonColor `json:"colors"`
}

// formatColors renders the color list in the requested format.
func formatColors(res palette.Result, output, format string, preview bool) (string, error) {
	var b strings.Builder
	switch format {
	case "hex":
		for _, c := range res.Colors {
			if preview {
				b.WriteString(swatch(c) + " ")
			}
			b.WriteString(c.Hex() + "\n")
		}
	case "rgb":
		for _, c := range res.Colors {
			if preview {
				b.WriteString(swatch(c) + " ")
			}
			fmt.Fprintf(&b, "rgb(%d, %d, %d)\n", c.R, c.G, c.B)
		}
	case "json":
		doc := jsonPalette{Status: res.Status, Count: len(res.Colors), Output: output, Colors: make([]jsonColor, len(res.Colors))}
		for i, c := range res.Colors {
			doc.Colors[i] = jsonColor{Hex: c.Hex(), R: c.R, G: c.G, B: c.B}
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		b.Write(data)
		b.WriteString("\n")
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
	return b.String(), nil
}

// swatch is an 8-cell block in the color, using a 24-bit ANSI background.
func swatch(c palette.Pixel) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", c.R, c.G, c.B, strings.Repeat(" ", 8))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
