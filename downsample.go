package pindou

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Cell is one grid position's averaged color prior to quantization.
type Cell struct {
	R, G, B, A uint8
}

// RGB drops the alpha channel.
func (c Cell) RGB() Color {
	return Color{R: c.R, G: c.G, B: c.B}
}

// GridSize computes the target grid dimensions for a source of srcW x srcH
// so that the longer side maps to maxSize. Either dimension rounding to
// zero is clamped to 1.
func GridSize(srcW, srcH, maxSize int) (int, int) {
	scale := min(float64(maxSize)/float64(srcW), float64(maxSize)/float64(srcH))
	pw := int(math.Round(float64(srcW) * scale))
	ph := int(math.Round(float64(srcH) * scale))
	return max(pw, 1), max(ph, 1)
}

// Downsample reduces src to a pixelW x pixelH grid of area-averaged cells.
// The source is first resampled with a Catmull-Rom kernel to a supersampled
// intermediate of (pixelW*super) x (pixelH*super), then each cell averages
// its super x super block per channel, rounded to nearest. The source image
// is never mutated.
func Downsample(src image.Image, pixelW, pixelH, super int) []Cell {
	if super < 1 {
		super = 1
	}
	mid := image.NewNRGBA(image.Rect(0, 0, pixelW*super, pixelH*super))
	xdraw.CatmullRom.Scale(mid, mid.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	cells := make([]Cell, pixelW*pixelH)
	n := super * super
	for y := range pixelH {
		for x := range pixelW {
			var rs, gs, bs, as int
			for sy := range super {
				off := mid.PixOffset(x*super, y*super+sy)
				for range super {
					rs += int(mid.Pix[off])
					gs += int(mid.Pix[off+1])
					bs += int(mid.Pix[off+2])
					as += int(mid.Pix[off+3])
					off += 4
				}
			}
			cells[y*pixelW+x] = Cell{
				R: uint8((rs + n/2) / n),
				G: uint8((gs + n/2) / n),
				B: uint8((bs + n/2) / n),
				A: uint8((as + n/2) / n),
			}
		}
	}
	return cells
}

// VisibleColors collects the colors of cells whose alpha exceeds the
// visibility threshold, in row-major order. The result is empty for a
// fully transparent grid.
func VisibleColors(cells []Cell) []Color {
	out := make([]Color, 0, len(cells))
	for _, c := range cells {
		if c.A > AlphaVisible {
			out = append(out, c.RGB())
		}
	}
	return out
}
