package image

import (
	"image"

	"github.com/disintegration/imaging"
)

// Default cell geometry used when the terminal does not report pixels.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

// Square crops img to its centred square and scales it to size x size.
// Avatars are shown as square tiles whatever their source aspect.
func Square(img image.Image, size int) *image.NRGBA {
	if size < 1 {
		size = 1
	}
	return imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
}

// FitPixels scales img down to fit w x h pixels, keeping its aspect ratio.
// Images that already fit are returned as is.
func FitPixels(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}
	return imaging.Fit(img, w, h, imaging.Lanczos)
}

// HalfblockPixels is the pixel grid a cols x rows halfblock tile displays:
// one pixel per column and two per row.
func HalfblockPixels(cols, rows int) (int, int) {
	return max(cols, 1), max(rows, 1) * 2
}

// CellPixels converts a cell box to pixels using the given cell geometry.
func CellPixels(cols, rows, cellW, cellH int) (int, int) {
	if cellW <= 0 {
		cellW = DefaultCellW
	}
	if cellH <= 0 {
		cellH = DefaultCellH
	}
	return max(cols, 1) * cellW, max(rows, 1) * cellH
}
