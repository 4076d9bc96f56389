package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel is an opaque 8-bit RGB color.
//
// Alpha is never carried: images are normalized to non-premultiplied RGB
// before any Pixel is produced, so a half-transparent red pixel becomes
// plain red.
type Pixel struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// White is the palette canvas background.
var White = Pixel{R: 255, G: 255, B: 255}

// RGBA implements color.Color so a Pixel can be drawn directly.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}.RGBA()
}

// Hex returns the color as "#rrggbb".
func (p Pixel) Hex() string {
	return p.colorful().Hex()
}

// Brightness is the unweighted mean of the three channels, in [0,255].
func (p Pixel) Brightness() float64 {
	return (float64(p.R) + float64(p.G) + float64(p.B)) / 3
}

// HSV is shorthand for RGBToHSV(p).
func (p Pixel) HSV() (h, s, v float64) {
	return RGBToHSV(p)
}

func (p Pixel) colorful() colorful.Color {
	return colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
}

// less orders pixels lexicographically by (R, G, B).
func (p Pixel) less(o Pixel) bool {
	if p.R != o.R {
		return p.R < o.R
	}
	if p.G != o.G {
		return p.G < o.G
	}
	return p.B < o.B
}

// RGBToHSV converts a pixel to the HSV color model.
//
// Each channel is normalized to [0,1] before conversion. All three results are
// in [0,1]; hue is a fraction of a full turn and is always strictly below 1.
// Achromatic colors (R == G == B) have hue 0.
func RGBToHSV(p Pixel) (h, s, v float64) {
	deg, s, v := p.colorful().Hsv()
	h = math.Mod(deg/360.0, 1.0)
	if h < 0 {
		h += 1.0
	}
	return h, s, v
}

// PixelFromColor converts any color.Color to a Pixel, dropping alpha.
//
// The conversion is non-premultiplied, matching how decoders store straight
// alpha, so partially transparent pixels keep their full color values.
func PixelFromColor(c color.Color) Pixel {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B}
}

// pixelFromFloats truncates float channels to 8-bit values.
//
// Values are clamped to [0,255] first. Centroids already lie inside the range
// of the observed samples, so the clamp only absorbs rounding error.
func pixelFromFloats(r, g, b float64) Pixel {
	return Pixel{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func clampChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
