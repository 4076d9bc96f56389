package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// DefaultSquareSize is the side of one palette cell in pixels.
const DefaultSquareSize = 50

// GridSize returns the number of cells per side of the smallest square grid
// that holds count colors.
func GridSize(count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(count))))
}

// Render lays colors out on a square grid of squareSize cells.
//
// The canvas side is GridSize(len(colors))*squareSize. Color i fills the cell
// at column i%grid and row i/grid, so cells fill left to right, top to bottom.
// The background is white and cells past the last color stay white.
//
// An empty colors slice returns (nil, nil): there is nothing to render, which
// is not an error.
func Render(colors []Pixel, squareSize int) (*image.RGBA, error) {
	if len(colors) == 0 {
		return nil, nil
	}
	if squareSize < 1 {
		return nil, fmt.Errorf("square size must be positive, got %d", squareSize)
	}

	grid := GridSize(len(colors))
	side := grid * squareSize
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.RGBA{R: White.R, G: White.G, B: White.B, A: 255}), image.Point{}, draw.Src)

	for i, c := range colors {
		x := (i % grid) * squareSize
		y := (i / grid) * squareSize
		cell := image.Rect(x, y, x+squareSize, y+squareSize)
		draw.Draw(canvas, cell, image.NewUniform(c), image.Point{}, draw.Src)
	}
	return canvas, nil
}
