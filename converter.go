// Package pindou converts photos into bounded-palette pixel-art grids:
// a supersampled box-filter downsampler, a median-cut palette quantizer,
// and a nearest-color mapper, plus a block renderer for the result.
package pindou

import (
	"errors"
	"image"
)

// Options controls a single conversion.
type Options struct {
	// Palette size K for quantization. User-facing callers should clamp
	// with Clamp; Quantize itself accepts any K >= 1.
	Colors int
	// Longest side of the target grid, in cells.
	MaxGridSize int
	// On-screen edge length of one rendered cell, in pixels.
	BlockSize int
	// Supersampling factor for the downsampling pass.
	Supersample int
	// Palette extraction method. MethodMedianCut is the default and the
	// only method with exact median-cut semantics.
	Method PaletteMethod
}

func DefaultOptions() Options {
	return Options{
		Colors:      48,
		MaxGridSize: 64,
		BlockSize:   12,
		Supersample: 4,
		Method:      MethodMedianCut,
	}
}

// Clamp constrains user-supplied values to the supported ranges and fills
// in defaults for unset rendering parameters.
func (o Options) Clamp() Options {
	o.Colors = clampInt(o.Colors, 24, 256)
	o.MaxGridSize = clampInt(o.MaxGridSize, 20, 200)
	if o.BlockSize <= 0 {
		o.BlockSize = 12
	}
	if o.Supersample <= 0 {
		o.Supersample = 4
	}
	return o
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PixelGrid is the result of one conversion: the averaged cell colors, the
// palette (nil when quantization was skipped), and the final per-cell
// colors after nearest-palette mapping. Cells and Final are row-major and
// always the same length; Final aliases nothing and equals Cells when
// Palette is nil.
type PixelGrid struct {
	Width   int
	Height  int
	Cells   []Cell
	Final   []Cell
	Palette []Color
}

// ErrNoSource is returned for a nil or zero-area source image.
var ErrNoSource = errors.New("pindou: source image is nil or has zero area")

// Convert runs the full pipeline: downsample src to a grid bounded by
// opt.MaxGridSize, build a palette from the visible cell colors, and map
// every cell onto its nearest palette entry. When no palette can be built
// (fully transparent source, or Colors <= 0) the raw averaged colors are
// kept unchanged.
//
// Convert is pure: it owns all intermediate state and may be called from
// multiple goroutines with distinct sources.
func Convert(src image.Image, opt Options) (*PixelGrid, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrNoSource
	}

	pw, ph := GridSize(b.Dx(), b.Dy(), opt.MaxGridSize)
	cells := Downsample(src, pw, ph, opt.Supersample)

	grid := &PixelGrid{
		Width:  pw,
		Height: ph,
		Cells:  cells,
		Final:  make([]Cell, len(cells)),
	}

	grid.Palette = ExtractPalette(VisibleColors(cells), opt.Colors, opt.Method)
	if grid.Palette == nil {
		copy(grid.Final, cells)
		return grid, nil
	}

	for i, c := range cells {
		q := Nearest(c.RGB(), grid.Palette)
		grid.Final[i] = Cell{R: q.R, G: q.G, B: q.B, A: c.A}
	}
	return grid, nil
}
