package pindou

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report summarizes how faithfully the palette reproduces the averaged cell
// colors of one conversion.
type Report struct {
	PaletteSize  int
	VisibleCells int
	// Per-visible-cell Euclidean RGB distance between the averaged color
	// and the palette entry it mapped to.
	MeanError   float64
	StdDevError float64
	MaxError    float64
	// Visible cells mapped to each palette entry, indexed like Palette.
	Usage []int
}

// Report computes quality statistics for the grid. With no palette the
// report only carries the visible cell count.
func (g *PixelGrid) Report() Report {
	rep := Report{PaletteSize: len(g.Palette)}
	if len(g.Palette) == 0 {
		for _, c := range g.Cells {
			if c.A > AlphaVisible {
				rep.VisibleCells++
			}
		}
		return rep
	}

	rep.Usage = make([]int, len(g.Palette))
	errs := make([]float64, 0, len(g.Cells))
	for i, c := range g.Cells {
		if c.A <= AlphaVisible {
			continue
		}
		q := g.Final[i].RGB()
		errs = append(errs, math.Sqrt(float64(distSq(c.RGB(), q))))
		if idx := paletteIndex(g.Palette, q); idx >= 0 {
			rep.Usage[idx]++
		}
	}
	rep.VisibleCells = len(errs)
	if len(errs) > 0 {
		rep.MeanError = stat.Mean(errs, nil)
		rep.MaxError = floats.Max(errs)
	}
	if len(errs) > 1 {
		rep.StdDevError = stat.StdDev(errs, nil)
	}
	return rep
}

func paletteIndex(palette []Color, c Color) int {
	for i, p := range palette {
		if p == c {
			return i
		}
	}
	return -1
}
