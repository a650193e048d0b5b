package pindou

import (
	"slices"
)

// Color is an RGB triple, 8 bits per channel. Alpha is carried on cells
// separately and never participates in quantization.
type Color struct {
	R, G, B uint8
}

// AlphaVisible is the visibility threshold: cells whose alpha does not
// exceed it are treated as transparent and do not influence the palette.
const AlphaVisible = 128

const (
	chR = iota
	chG
	chB
)

// Quantize builds a palette of at most k representative colors from the
// given color sequence using median cut. Duplicate input colors are
// collapsed first, so the palette never exceeds the number of distinct
// colors. Returns nil when k <= 0 or the input is empty; callers must then
// keep the unquantized cell colors.
//
// The result is deterministic for a given input sequence and k.
func Quantize(colors []Color, k int) []Color {
	if k <= 0 || len(colors) == 0 {
		return nil
	}

	distinct := distinctColors(colors)

	// ceil(log2(k)) split rounds yield up to 2^depth leaf buckets.
	depth := 0
	for 1<<depth < k {
		depth++
	}

	leaves := splitBucket(distinct, depth)
	if len(leaves) > k {
		leaves = leaves[:k]
	}

	palette := make([]Color, 0, len(leaves))
	for _, b := range leaves {
		if len(b) == 0 {
			continue
		}
		palette = append(palette, bucketMean(b))
	}
	return palette
}

// distinctColors keeps the first occurrence of every color, preserving
// input order so repeated calls produce identical palettes.
func distinctColors(colors []Color) []Color {
	seen := make(map[Color]struct{}, len(colors))
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// splitBucket recursively halves a bucket depth times, cutting along the
// channel with the widest value range. Leaves are returned in left-then-
// right traversal order. An empty bucket is returned unchanged.
func splitBucket(bucket []Color, depth int) [][]Color {
	if depth == 0 || len(bucket) == 0 {
		return [][]Color{bucket}
	}

	ch := widestChannel(bucket)
	slices.SortStableFunc(bucket, func(a, b Color) int {
		return int(channelValue(a, ch)) - int(channelValue(b, ch))
	})

	mid := len(bucket) / 2
	leaves := splitBucket(bucket[:mid], depth-1)
	return append(leaves, splitBucket(bucket[mid:], depth-1)...)
}

// widestChannel picks the channel with the largest max-min spread.
// Ties prefer R over G over B; a zero-variance bucket therefore cuts on R.
func widestChannel(bucket []Color) int {
	minC := Color{255, 255, 255}
	maxC := Color{}
	for _, c := range bucket {
		minC.R = min(minC.R, c.R)
		minC.G = min(minC.G, c.G)
		minC.B = min(minC.B, c.B)
		maxC.R = max(maxC.R, c.R)
		maxC.G = max(maxC.G, c.G)
		maxC.B = max(maxC.B, c.B)
	}
	rangeR := int(maxC.R) - int(minC.R)
	rangeG := int(maxC.G) - int(minC.G)
	rangeB := int(maxC.B) - int(minC.B)
	if rangeR >= rangeG && rangeR >= rangeB {
		return chR
	}
	if rangeG >= rangeB {
		return chG
	}
	return chB
}

func channelValue(c Color, ch int) uint8 {
	switch ch {
	case chR:
		return c.R
	case chG:
		return c.G
	default:
		return c.B
	}
}

// bucketMean is the componentwise rounded integer mean over a non-empty bucket.
func bucketMean(bucket []Color) Color {
	var rs, gs, bs int
	for _, c := range bucket {
		rs += int(c.R)
		gs += int(c.G)
		bs += int(c.B)
	}
	n := len(bucket)
	return Color{
		R: uint8((rs + n/2) / n),
		G: uint8((gs + n/2) / n),
		B: uint8((bs + n/2) / n),
	}
}

// Nearest returns the palette entry closest to c by squared Euclidean RGB
// distance. The earliest entry wins ties. The palette must be non-empty.
func Nearest(c Color, palette []Color) Color {
	best := palette[0]
	bestDist := distSq(c, best)
	for _, p := range palette[1:] {
		if d := distSq(c, p); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

func distSq(a, b Color) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
