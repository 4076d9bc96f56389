package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestNormalize_DropsPremultiplication(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 12, 12))
	img.SetNRGBA(10, 10, color.NRGBA{200, 100, 50, 128})

	n := Normalize(img)
	if n.Rect.Min != (image.Point{}) {
		t.Fatalf("origin: got %v, want (0,0)", n.Rect.Min)
	}
	got := n.NRGBAAt(0, 0)
	if got.R != 200 || got.G != 100 || got.B != 50 {
		t.Errorf("color channels: got (%d,%d,%d), want (200,100,50)", got.R, got.G, got.B)
	}
}

func TestNormalize_ReusesOriginNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	if Normalize(img) != img {
		t.Error("origin-based NRGBA should not be copied")
	}
}

func TestNormalize_Paletted(t *testing.T) {
	pal := color.Palette{color.RGBA{0, 0, 0, 255}, color.RGBA{0, 128, 255, 255}}
	img := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	img.SetColorIndex(1, 0, 1)

	n := Normalize(img)
	if got := n.NRGBAAt(1, 0); got != (color.NRGBA{0, 128, 255, 255}) {
		t.Errorf("got %v, want {0 128 255 255}", got)
	}
}
