package pindou

import (
	"image"
	"image/color"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteMethod selects how the palette is extracted from the visible cell
// colors. MethodMedianCut is deterministic and follows the exact split
// semantics documented on Quantize; the alternates trade that for
// perceptually spread palettes and may vary between runs.
type PaletteMethod int

const (
	MethodMedianCut PaletteMethod = iota
	MethodKMeans
	MethodDominant
)

func (m PaletteMethod) String() string {
	switch m {
	case MethodKMeans:
		return "kmeans"
	case MethodDominant:
		return "dominant"
	default:
		return "mediancut"
	}
}

// ParsePaletteMethod maps a method name to its PaletteMethod. Unknown names
// fall back to MethodMedianCut.
func ParsePaletteMethod(name string) PaletteMethod {
	switch name {
	case "kmeans":
		return MethodKMeans
	case "dominant":
		return MethodDominant
	default:
		return MethodMedianCut
	}
}

// ExtractPalette builds a palette of at most k colors from the given color
// sequence. A nil result means quantization must be skipped. The alternate
// methods fall back to median cut when they produce nothing usable.
func ExtractPalette(colors []Color, k int, method PaletteMethod) []Color {
	switch method {
	case MethodKMeans:
		p := ExtractKMeansPalette(colors, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to median cut")
		return Quantize(colors, k)
	case MethodDominant:
		p := ExtractDominantPalette(colors, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: dominantcolor returned empty palette, falling back to median cut")
		return Quantize(colors, k)
	default:
		return Quantize(colors, k)
	}
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// ExtractKMeansPalette clusters the colors in RGB space and keeps the k
// most diverse cluster centers, dominant clusters first.
func ExtractKMeansPalette(colors []Color, k int) []Color {
	if k <= 0 || len(colors) == 0 {
		return nil
	}

	dataset := make(clusters.Observations, 0, len(colors))
	for _, c := range colors {
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255.0,
			float64(c.G) / 255.0,
			float64(c.B) / 255.0,
		})
	}

	// Over-cluster, then thin out to k diverse entries.
	workK := min(max(k*2, k+2), len(dataset))
	if workK <= 0 {
		return nil
	}
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		center := c.Center
		if len(center) < 3 {
			continue
		}
		col := colorful.Color{R: center[0], G: center[1], B: center[2]}.Clamped()
		w := float64(len(c.Observations))
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{Col: col, Weight: w})
	}
	return selectDiverseWeighted(weighted, k)
}

// ExtractDominantPalette ranks the colors by dominance and keeps the k most
// diverse of the strongest candidates.
func ExtractDominantPalette(colors []Color, k int) []Color {
	if k <= 0 || len(colors) == 0 {
		return nil
	}

	// dominantcolor wants an image; a 1-pixel-tall strip of the cell
	// colors carries the same population.
	strip := image.NewNRGBA(image.Rect(0, 0, len(colors), 1))
	for i, c := range colors {
		strip.SetNRGBA(i, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}

	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(strip, nCandidates)
	if len(candidates) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: w})
	}
	return selectDiverseWeighted(weighted, k)
}

// selectDiverseWeighted greedily picks k candidates, scoring each by its
// Lab-space distance to the already-picked set scaled by its weight, so
// dominant tones come in without collapsing onto near-duplicates.
func selectDiverseWeighted(cands []weightedColor, k int) []Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		if w > maxW {
			maxW = w
		}
		items = append(items, item{col: col, lab: [3]float64{l, a, b}, w: w})
	}
	if k > len(items) {
		k = len(items)
	}
	if maxW <= 0 {
		maxW = 1.0
	}

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	// Seed with the strongest candidate to stay close to dominant tones.
	bestSeed := 0
	bestSeedW := items[0].w
	for i := 1; i < len(items); i++ {
		if items[i].w > bestSeedW {
			bestSeedW = items[i].w
			bestSeed = i
		}
	}
	selectedIdx = append(selectedIdx, bestSeed)
	selected[bestSeed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				d2v := d0*d0 + d1*d1 + d2*d2
				if d2v < minD2 {
					minD2 = d2v
				}
			}
			normW := items[i].w / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		c := items[idx].col
		out = append(out, Color{
			R: uint8(max(0, min(255, c.R*255))),
			G: uint8(max(0, min(255, c.G*255))),
			B: uint8(max(0, min(255, c.B*255))),
		})
	}
	return out
}

// SortPaletteByBrightness orders colors from darkest to brightest by linear
// luminance.
func SortPaletteByBrightness(palette []Color) {
	slices.SortFunc(palette, func(a, b Color) int {
		ya := luminance(a)
		yb := luminance(b)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func luminance(c Color) float64 {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	r, g, b := col.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
