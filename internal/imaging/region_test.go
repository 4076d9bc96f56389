package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNamedRegion(t *testing.T) {
	tests := []struct {
		name string
		want Region
	}{
		{"top-left", Region{0, 0, 50, 40}},
		{"top-right", Region{50, 0, 100, 40}},
		{"bottom-left", Region{0, 40, 50, 80}},
		{"bottom-right", Region{50, 40, 100, 80}},
		{"top-half", Region{0, 0, 100, 40}},
		{"bottom-half", Region{0, 40, 100, 80}},
		{"left-half", Region{0, 0, 50, 80}},
		{"right-half", Region{50, 0, 100, 80}},
		{"center", Region{25, 20, 75, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(tt.name, 100, 80)
			if err != nil {
				t.Fatalf("NamedRegion failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	if len(NamedRegions()) != len(tests) {
		t.Errorf("NamedRegions lists %d names, test covers %d", len(NamedRegions()), len(tests))
	}
}

func TestNamedRegion_Unknown(t *testing.T) {
	if _, err := NamedRegion("middle", 100, 100); err == nil {
		t.Error("NamedRegion should fail for unknown names")
	}
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, Region{X1: 50, Y1: 0, X2: 100, Y2: 50})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if b := cropped.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Fatalf("cropped size: got %dx%d, want 50x50", b.Dx(), b.Dy())
	}

	got := cropped.NRGBAAt(10, 10)
	want := color.NRGBA{0, 255, 0, 255}
	if got != want {
		t.Errorf("cropped top-right quadrant: got %v, want %v", got, want)
	}
}

func TestCrop_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates; regions are relative.
	parent := createPatternImage(100, 100)
	sub := parent.SubImage(image.Rect(50, 50, 100, 100))

	cropped, err := Crop(sub, Region{X1: 0, Y1: 0, X2: 10, Y2: 10})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	got := cropped.NRGBAAt(0, 0)
	want := color.NRGBA{255, 255, 255, 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCrop_Invalid(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name string
		r    Region
	}{
		{"negative origin", Region{-1, 0, 10, 10}},
		{"beyond width", Region{0, 0, 101, 10}},
		{"beyond height", Region{0, 0, 10, 101}},
		{"empty width", Region{10, 0, 10, 10}},
		{"inverted", Region{20, 20, 10, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.r); err == nil {
				t.Errorf("Crop(%+v) should fail", tt.r)
			}
		})
	}
}

func TestDownscale(t *testing.T) {
	img := createPatternImage(400, 200)

	tests := []struct {
		name         string
		maxDimension int
		wantW, wantH int
	}{
		{"disabled", 0, 400, 200},
		{"already fits", 400, 400, 200},
		{"halved", 200, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Downscale(img, tt.maxDimension)
			b := out.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDownscale_NoNewColors(t *testing.T) {
	img := createPatternImage(300, 300)
	out := Normalize(Downscale(img, 64))

	allowed := map[color.NRGBA]bool{
		{255, 0, 0, 255}:     true,
		{0, 255, 0, 255}:     true,
		{0, 0, 255, 255}:     true,
		{255, 255, 255, 255}: true,
	}
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := out.NRGBAAt(x, y); !allowed[c] {
				t.Fatalf("pixel (%d,%d) has new color %v", x, y, c)
			}
		}
	}
}

func TestSelection_Apply(t *testing.T) {
	img := createPatternImage(100, 80)

	tests := []struct {
		name      string
		sel       Selection
		wantSize  image.Point
		wantColor color.NRGBA
	}{
		{"zero", Selection{}, image.Pt(100, 80), color.NRGBA{255, 0, 0, 255}},
		{"explicit region", Selection{Region: &Region{60, 50, 90, 70}}, image.Pt(30, 20), color.NRGBA{255, 255, 255, 255}},
		{"named region", Selection{Named: "top-right"}, image.Pt(50, 40), color.NRGBA{0, 255, 0, 255}},
		{"region wins over name", Selection{Region: &Region{0, 40, 10, 50}, Named: "top-right"}, image.Pt(10, 10), color.NRGBA{0, 0, 255, 255}},
		{"downscale", Selection{MaxDimension: 50}, image.Pt(50, 40), color.NRGBA{255, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.sel.Apply(img)
			if err != nil {
				t.Fatalf("Apply failed: %v", err)
			}
			if got.Bounds().Size() != tt.wantSize {
				t.Errorf("size = %v, want %v", got.Bounds().Size(), tt.wantSize)
			}
			b := got.Bounds()
			c := color.NRGBAModel.Convert(got.At(b.Min.X, b.Min.Y)).(color.NRGBA)
			if c != tt.wantColor {
				t.Errorf("top-left pixel = %v, want %v", c, tt.wantColor)
			}
		})
	}
}

func TestSelection_ApplyErrors(t *testing.T) {
	img := createPatternImage(20, 20)

	if _, err := (Selection{Named: "middle"}).Apply(img); err == nil {
		t.Error("unknown named region should fail")
	}
	if _, err := (Selection{Region: &Region{0, 0, 30, 10}}).Apply(img); err == nil {
		t.Error("out of bounds region should fail")
	}
}
