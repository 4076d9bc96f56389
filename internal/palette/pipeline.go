package palette

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
)

var (
	// ErrMissingInput means no image was supplied.
	ErrMissingInput = errors.New("no image provided")

	// ErrEmptyResult means the image produced no colors at all.
	ErrEmptyResult = errors.New("no colors found")
)

// ProcessingError wraps any failure raised while extracting, sorting or
// rendering.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string {
	return "processing error: " + e.Err.Error()
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Outcome classifies a Result.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeMissingInput
	OutcomeEmptyResult
	OutcomeProcessingFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeMissingInput:
		return "missing_input"
	case OutcomeEmptyResult:
		return "empty_result"
	case OutcomeProcessingFailure:
		return "processing_failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the outcome of one Process call. Image and Colors are set only
// when Outcome is OutcomeOK; Err is set for every other outcome.
type Result struct {
	Image   *image.RGBA
	Colors  []Pixel
	Status  string
	Outcome Outcome
	Err     error
}

// OK reports whether a palette image was produced.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// Pipeline runs extraction, optional hue sorting and rendering for one image
// at a time. It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	extractor  Extractor
	squareSize int
	logger     hclog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractor replaces the default deterministic k-means extractor.
func WithExtractor(e Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithSquareSize sets the rendered cell size in pixels.
func WithSquareSize(n int) Option {
	return func(p *Pipeline) { p.squareSize = n }
}

// WithLogger sets the logger used for debug tracing and dropped download
// failures.
func WithLogger(l hclog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New returns a pipeline with the given options applied over the defaults.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:  NewClusterExtractor(nil),
		squareSize: DefaultSquareSize,
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewFromOptions validates o and builds the matching pipeline.
func NewFromOptions(o Options, logger hclog.Logger) (*Pipeline, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	ext, err := NewExtractor(o)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return New(WithExtractor(ext), WithSquareSize(o.SquareSize), WithLogger(logger)), nil
}

// Process extracts up to maxColors dominant colors from img, optionally sorts
// them by hue, and renders the palette image.
//
// Process never returns an error or panics on bad input. Every failure is
// reported through Result.Outcome and a human readable Result.Status:
//
//	"no image provided"                       img is nil
//	"no colors found"                         img has no pixels
//	"palette created with N dominant colors"  success
//	"processing error: <details>"             anything else
func (p *Pipeline) Process(img image.Image, maxColors int, sortByHue bool) Result {
	if img == nil {
		return Result{Status: ErrMissingInput.Error(), Outcome: OutcomeMissingInput, Err: ErrMissingInput}
	}

	canvas, colors, err := p.run(img, maxColors, sortByHue)
	if err != nil {
		p.logger.Debug("palette processing failed", "error", err)
		perr := &ProcessingError{Err: err}
		return Result{Status: perr.Error(), Outcome: OutcomeProcessingFailure, Err: perr}
	}
	if canvas == nil {
		return Result{Status: ErrEmptyResult.Error(), Outcome: OutcomeEmptyResult, Err: ErrEmptyResult}
	}

	return Result{
		Image:   canvas,
		Colors:  colors,
		Status:  fmt.Sprintf("palette created with %d dominant colors", len(colors)),
		Outcome: OutcomeOK,
	}
}

// Download runs the same pipeline as Process and returns the palette encoded
// as PNG.
//
// Any failure, including a nil image or an image without colors, yields nil
// and no diagnostic. The cause is only written to the debug log.
func (p *Pipeline) Download(img image.Image, maxColors int, sortByHue bool) []byte {
	res := p.Process(img, maxColors, sortByHue)
	if !res.OK() {
		p.logger.Debug("palette download skipped", "outcome", res.Outcome.String(), "status", res.Status)
		return nil
	}

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, res.Image); err != nil {
		p.logger.Debug("palette download encode failed", "error", err)
		return nil
	}
	return buf.Bytes()
}

// run is the single error boundary: panics from the extractor, sorter or
// renderer are converted into errors here.
func (p *Pipeline) run(img image.Image, maxColors int, sortByHue bool) (canvas *image.RGBA, colors []Pixel, err error) {
	defer func() {
		if r := recover(); r != nil {
			canvas, colors = nil, nil
			err = fmt.Errorf("%v", r)
		}
	}()

	colors, err = p.extractor.Extract(img, maxColors)
	if err != nil {
		return nil, nil, err
	}
	p.logger.Debug("extracted colors", "count", len(colors), "max_colors", maxColors)

	if sortByHue && len(colors) > 0 {
		colors = SortByHue(colors)
	}

	canvas, err = Render(colors, p.squareSize)
	if err != nil {
		return nil, nil, err
	}
	return canvas, colors, nil
}
