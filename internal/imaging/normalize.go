package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Normalize returns img as non-premultiplied 8-bit RGBA with its origin at
// (0,0).
//
// Every color model (paletted, grayscale, 16-bit, YCbCr, CMYK) ends up with
// three straight color channels plus alpha. Callers that want plain RGB read
// the first three bytes of each pixel and ignore the fourth. An image that is
// already an origin-based *image.NRGBA is returned as is, not copied.
func Normalize(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}
