package pindou

import (
	"image"

	"github.com/gogpu/gg"
)

// Draw paints a conversion result onto the given drawing context: each cell
// becomes a blockSize x blockSize filled square at (x*blockSize,
// y*blockSize) with a thin grid outline on top. Cell alpha is passed
// through as straight alpha. A grid without Final colors is drawn from its
// raw cell averages.
//
// The context is a shared surface; interleaving draw calls from two
// conversions onto one context is not supported.
func Draw(dc *gg.Context, grid *PixelGrid, blockSize int) error {
	if blockSize <= 0 {
		blockSize = 12
	}
	cells := grid.Final
	if cells == nil {
		cells = grid.Cells
	}
	bs := float64(blockSize)
	for y := range grid.Height {
		for x := range grid.Width {
			c := cells[y*grid.Width+x]
			px := float64(x) * bs
			py := float64(y) * bs

			dc.SetRGBA(
				float64(c.R)/255.0,
				float64(c.G)/255.0,
				float64(c.B)/255.0,
				float64(c.A)/255.0,
			)
			dc.DrawRectangle(px, py, bs, bs)
			if err := dc.Fill(); err != nil {
				return err
			}

			dc.SetRGBA(0, 0, 0, 0.25)
			dc.SetLineWidth(1)
			dc.DrawRectangle(px, py, bs, bs)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Render draws the grid on a fresh software context and returns the
// resulting image of size (Width*blockSize) x (Height*blockSize).
func Render(grid *PixelGrid, blockSize int) (image.Image, error) {
	if blockSize <= 0 {
		blockSize = 12
	}
	dc := gg.NewContext(grid.Width*blockSize, grid.Height*blockSize)
	if err := Draw(dc, grid, blockSize); err != nil {
		dc.Close()
		return nil, err
	}
	img := dc.Image()
	if err := dc.Close(); err != nil {
		return nil, err
	}
	return img, nil
}
