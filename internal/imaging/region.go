package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region represents a rectangular region within an image.
//
// Coordinates follow the standard image convention:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
//   - Width = X2 - X1, Height = Y2 - Y1
type Region struct {
	X1 int `json:"x1"` // Left edge X coordinate (inclusive)
	Y1 int `json:"y1"` // Top edge Y coordinate (inclusive)
	X2 int `json:"x2"` // Right edge X coordinate (exclusive)
	Y2 int `json:"y2"` // Bottom edge Y coordinate (exclusive)
}

// NamedRegions lists the names accepted by NamedRegion.
func NamedRegions() []string {
	return []string{
		"top-left", "top-right", "bottom-left", "bottom-right",
		"top-half", "bottom-half", "left-half", "right-half", "center",
	}
}

// NamedRegion resolves a named area of a width x height image.
// "center" is the middle 50% of each dimension.
func NamedRegion(name string, width, height int) (Region, error) {
	midX := width / 2
	midY := height / 2

	switch name {
	case "top-left":
		return Region{0, 0, midX, midY}, nil
	case "top-right":
		return Region{midX, 0, width, midY}, nil
	case "bottom-left":
		return Region{0, midY, midX, height}, nil
	case "bottom-right":
		return Region{midX, midY, width, height}, nil
	case "top-half":
		return Region{0, 0, width, midY}, nil
	case "bottom-half":
		return Region{0, midY, width, height}, nil
	case "left-half":
		return Region{0, 0, midX, height}, nil
	case "right-half":
		return Region{midX, 0, width, height}, nil
	case "center":
		qW := width / 4
		qH := height / 4
		return Region{qW, qH, width - qW, height - qH}, nil
	default:
		return Region{}, fmt.Errorf("unknown region: %s (valid regions: %v)", name, NamedRegions())
	}
}

// Crop extracts r from img. Coordinates are relative to the image's top-left
// corner, whatever its bounds origin.
func Crop(img image.Image, r Region) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if r.X1 < 0 || r.Y1 < 0 || r.X2 > w || r.Y2 > h {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, w, h)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	rect := image.Rect(r.X1, r.Y1, r.X2, r.Y2).Add(bounds.Min)
	return imaging.Crop(img, rect), nil
}

// Downscale shrinks img so neither side exceeds maxDimension, keeping the
// aspect ratio. Images that already fit, and a maxDimension of zero or less,
// return img unchanged.
//
// Nearest-neighbor sampling is used on purpose: it never invents colors that
// were not in the source, so the exact-color path stays meaningful.
func Downscale(img image.Image, maxDimension int) image.Image {
	if maxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDimension && b.Dy() <= maxDimension {
		return img
	}
	return imaging.Fit(img, maxDimension, maxDimension, imaging.NearestNeighbor)
}

// Selection narrows an image before palette extraction.
type Selection struct {
	// Region is an explicit rectangle. It takes precedence over Named.
	Region *Region

	// Named is one of NamedRegions.
	Named string

	// MaxDimension downscales the selected area, see Downscale.
	MaxDimension int
}

// Apply crops img to the selection and then downscales it. The zero
// Selection returns img unchanged.
func (s Selection) Apply(img image.Image) (image.Image, error) {
	switch {
	case s.Region != nil:
		cropped, err := Crop(img, *s.Region)
		if err != nil {
			return nil, err
		}
		img = cropped
	case s.Named != "":
		b := img.Bounds()
		r, err := NamedRegion(s.Named, b.Dx(), b.Dy())
		if err != nil {
			return nil, err
		}
		cropped, err := Crop(img, r)
		if err != nil {
			return nil, err
		}
		img = cropped
	}
	return Downscale(img, s.MaxDimension), nil
}
