package palette

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"reflect"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

type panicExtractor struct{}

func (panicExtractor) Extract(image.Image, int) ([]Pixel, error) {
	panic("extractor exploded")
}

type staticExtractor []Pixel

func (s staticExtractor) Extract(image.Image, int) ([]Pixel, error) {
	return s, nil
}

func TestPipeline_Process_MissingInput(t *testing.T) {
	res := New().Process(nil, 50, true)

	if res.Status != "no image provided" {
		t.Errorf("Status = %q", res.Status)
	}
	if res.Outcome != OutcomeMissingInput || !errors.Is(res.Err, ErrMissingInput) {
		t.Errorf("Outcome = %v, Err = %v", res.Outcome, res.Err)
	}
	if res.Image != nil || res.Colors != nil {
		t.Error("missing input must not produce an image")
	}
}

func TestPipeline_Process_Quadrants(t *testing.T) {
	res := New().Process(createPatternImage(4, 4), 50, true)

	if !res.OK() {
		t.Fatalf("Process failed: %s", res.Status)
	}
	if res.Status != "palette created with 4 dominant colors" {
		t.Errorf("Status = %q", res.Status)
	}

	want := []Pixel{red, White, green, blue}
	if !reflect.DeepEqual(res.Colors, want) {
		t.Errorf("Colors = %v, want %v", res.Colors, want)
	}

	if res.Image.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("Image bounds = %v, want 100x100", res.Image.Bounds())
	}
	cells := []struct {
		x, y int
		want Pixel
	}{
		{10, 10, red},
		{60, 10, White},
		{10, 60, green},
		{60, 60, blue},
	}
	for _, c := range cells {
		got := res.Image.RGBAAt(c.x, c.y)
		if got != (color.RGBA{c.want.R, c.want.G, c.want.B, 255}) {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestPipeline_Process_Unsorted(t *testing.T) {
	res := New().Process(createPatternImage(4, 4), 50, false)
	if !res.OK() {
		t.Fatalf("Process failed: %s", res.Status)
	}

	want := []Pixel{blue, green, red, White}
	if !reflect.DeepEqual(res.Colors, want) {
		t.Errorf("Colors = %v, want %v", res.Colors, want)
	}
}

func TestPipeline_Process_Clustered(t *testing.T) {
	res := New().Process(createGradientImage(24, 24), 5, true)
	if !res.OK() {
		t.Fatalf("Process failed: %s", res.Status)
	}
	if len(res.Colors) != 5 {
		t.Errorf("expected 5 colors, got %d", len(res.Colors))
	}
	if res.Image.Bounds().Dx() != 150 {
		t.Errorf("expected 150px canvas, got %d", res.Image.Bounds().Dx())
	}
}

func TestPipeline_Process_EmptyImage(t *testing.T) {
	res := New().Process(image.NewRGBA(image.Rect(0, 0, 0, 0)), 50, true)

	if res.Status != "no colors found" {
		t.Errorf("Status = %q", res.Status)
	}
	if res.Outcome != OutcomeEmptyResult || !errors.Is(res.Err, ErrEmptyResult) {
		t.Errorf("Outcome = %v, Err = %v", res.Outcome, res.Err)
	}
	if res.Image != nil {
		t.Error("empty image must not produce a palette")
	}
}

func TestPipeline_Process_InvalidBudget(t *testing.T) {
	res := New().Process(createPatternImage(4, 4), 0, true)

	if !strings.HasPrefix(res.Status, "processing error: ") {
		t.Errorf("Status = %q", res.Status)
	}
	var perr *ProcessingError
	if !errors.As(res.Err, &perr) {
		t.Errorf("Err = %v, want *ProcessingError", res.Err)
	}
	if res.Outcome != OutcomeProcessingFailure {
		t.Errorf("Outcome = %v", res.Outcome)
	}
}

func TestPipeline_Process_RecoversPanic(t *testing.T) {
	p := New(WithExtractor(panicExtractor{}))
	res := p.Process(createPatternImage(4, 4), 5, true)

	if res.Outcome != OutcomeProcessingFailure {
		t.Fatalf("Outcome = %v", res.Outcome)
	}
	if res.Status != "processing error: extractor exploded" {
		t.Errorf("Status = %q", res.Status)
	}
}

func TestPipeline_Process_RenderError(t *testing.T) {
	p := New(WithSquareSize(0), WithExtractor(staticExtractor{red}))
	res := p.Process(createPatternImage(2, 2), 5, false)
	if res.Outcome != OutcomeProcessingFailure {
		t.Errorf("Outcome = %v, want processing failure", res.Outcome)
	}
}

func TestPipeline_SquareSize(t *testing.T) {
	p := New(WithSquareSize(8), WithExtractor(staticExtractor{red, green, blue}))
	res := p.Process(createPatternImage(2, 2), 5, false)
	if !res.OK() {
		t.Fatalf("Process failed: %s", res.Status)
	}
	if res.Image.Bounds().Dx() != 16 {
		t.Errorf("expected 16px canvas, got %d", res.Image.Bounds().Dx())
	}
}

func TestPipeline_Download(t *testing.T) {
	data := New().Download(createPatternImage(4, 4), 50, true)
	if data == nil {
		t.Fatal("Download returned nil")
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Download did not return a PNG: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("decoded size = %v, want 100x100", img.Bounds().Size())
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("first cell should be red, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestPipeline_Download_Failures(t *testing.T) {
	p := New(WithLogger(hclog.NewNullLogger()))

	tests := []struct {
		name      string
		img       image.Image
		maxColors int
	}{
		{"nil image", nil, 50},
		{"empty image", image.NewRGBA(image.Rect(0, 0, 0, 0)), 50},
		{"invalid budget", createPatternImage(4, 4), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if data := p.Download(tt.img, tt.maxColors, true); data != nil {
				t.Errorf("expected nil, got %d bytes", len(data))
			}
		})
	}
}

func TestNewFromOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.SquareSize = 10

	p, err := NewFromOptions(opts, nil)
	if err != nil {
		t.Fatalf("NewFromOptions failed: %v", err)
	}
	res := p.Process(createPatternImage(4, 4), opts.MaxColors, opts.SortByHue)
	if !res.OK() || res.Image.Bounds().Dx() != 20 {
		t.Errorf("unexpected result: %s %v", res.Status, res.Image)
	}

	opts.MaxColors = 1000
	if _, err := NewFromOptions(opts, nil); err == nil {
		t.Error("NewFromOptions should reject invalid options")
	}
}

func TestOutcome_String(t *testing.T) {
	tests := map[Outcome]string{
		OutcomeOK:                "ok",
		OutcomeMissingInput:      "missing_input",
		OutcomeEmptyResult:       "empty_result",
		OutcomeProcessingFailure: "processing_failure",
		Outcome(42):              "outcome(42)",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}

func TestPipeline_ConcurrentUse(t *testing.T) {
	p := New()
	img := createGradientImage(12, 12)
	want := p.Process(img, 5, true)

	done := make(chan Result, 4)
	for i := 0; i < 4; i++ {
		go func() { done <- p.Process(img, 5, true) }()
	}
	for i := 0; i < 4; i++ {
		got := <-done
		if !reflect.DeepEqual(got.Colors, want.Colors) {
			t.Errorf("concurrent run produced %v, want %v", got.Colors, want.Colors)
		}
	}
}
