package pindou

import (
	"math/rand"
	"slices"
	"testing"
)

func TestQuantizeSolidColor(t *testing.T) {
	colors := make([]Color, 100)
	for i := range colors {
		colors[i] = Color{R: 255}
	}
	palette := Quantize(colors, 24)
	if len(palette) != 1 {
		t.Fatalf("palette length = %d, want 1", len(palette))
	}
	if palette[0] != (Color{R: 255}) {
		t.Fatalf("palette[0] = %v, want {255 0 0}", palette[0])
	}
}

func TestQuantizeBlackWhite(t *testing.T) {
	colors := []Color{
		{0, 0, 0}, {255, 255, 255},
		{0, 0, 0}, {255, 255, 255},
	}
	palette := Quantize(colors, 2)
	if len(palette) != 2 {
		t.Fatalf("palette length = %d, want 2", len(palette))
	}
	black := Color{0, 0, 0}
	white := Color{255, 255, 255}
	if !slices.Contains(palette, black) || !slices.Contains(palette, white) {
		t.Fatalf("palette = %v, want black and white", palette)
	}
	if got := Nearest(black, palette); got != black {
		t.Errorf("Nearest(black) = %v", got)
	}
	if got := Nearest(white, palette); got != white {
		t.Errorf("Nearest(white) = %v", got)
	}
}

func TestQuantizeDegenerateInput(t *testing.T) {
	colors := []Color{{1, 2, 3}}
	if p := Quantize(colors, 0); p != nil {
		t.Errorf("Quantize(k=0) = %v, want nil", p)
	}
	if p := Quantize(colors, -5); p != nil {
		t.Errorf("Quantize(k=-5) = %v, want nil", p)
	}
	if p := Quantize(nil, 24); p != nil {
		t.Errorf("Quantize(empty) = %v, want nil", p)
	}
}

func TestQuantizeDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	colors := make([]Color, 500)
	for i := range colors {
		colors[i] = Color{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
	}
	first := Quantize(colors, 24)
	second := Quantize(colors, 24)
	if !slices.Equal(first, second) {
		t.Fatalf("palettes differ:\n%v\n%v", first, second)
	}
}

func TestQuantizeDoesNotMutateInput(t *testing.T) {
	colors := []Color{{9, 8, 7}, {1, 2, 3}, {200, 100, 50}}
	snapshot := slices.Clone(colors)
	Quantize(colors, 24)
	if !slices.Equal(colors, snapshot) {
		t.Fatalf("input mutated: %v", colors)
	}
}

func TestQuantizePaletteBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	colors := make([]Color, 300)
	for i := range colors {
		colors[i] = Color{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
	}
	distinct := len(distinctColors(colors))
	for _, k := range []int{1, 2, 3, 24, 100, 256} {
		palette := Quantize(colors, k)
		if len(palette) < 1 {
			t.Errorf("k=%d: empty palette for non-empty input", k)
		}
		if len(palette) > k {
			t.Errorf("k=%d: palette length %d exceeds k", k, len(palette))
		}
		if len(palette) > distinct {
			t.Errorf("k=%d: palette length %d exceeds distinct colors %d", k, len(palette), distinct)
		}
	}
}

func TestQuantizeMonotonicPaletteLength(t *testing.T) {
	// 256 distinct grays: every k in range gets exactly k entries, so the
	// length is non-decreasing in k.
	colors := make([]Color, 256)
	for i := range colors {
		v := uint8(i)
		colors[i] = Color{v, v, v}
	}
	prev := 0
	for _, k := range []int{24, 32, 48, 64, 128, 256} {
		n := len(Quantize(colors, k))
		if n < prev {
			t.Fatalf("palette length decreased: k=%d gave %d after %d", k, n, prev)
		}
		prev = n
	}
}

func TestNearestMembership(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	colors := make([]Color, 200)
	for i := range colors {
		colors[i] = Color{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
		}
	}
	palette := Quantize(colors, 24)
	for _, c := range colors {
		if !slices.Contains(palette, Nearest(c, palette)) {
			t.Fatalf("Nearest(%v) not a palette member", c)
		}
	}
}

func TestNearestTieBreak(t *testing.T) {
	// Both entries are at distance 50; the first must win.
	palette := []Color{{10, 0, 0}, {0, 10, 0}}
	if got := Nearest(Color{5, 5, 0}, palette); got != palette[0] {
		t.Fatalf("Nearest tie = %v, want first entry %v", got, palette[0])
	}
}

func TestWidestChannelTieBreak(t *testing.T) {
	// Zero variance in every channel still cuts on R.
	if ch := widestChannel([]Color{{7, 7, 7}, {7, 7, 7}}); ch != chR {
		t.Errorf("zero-variance bucket chose channel %d, want R", ch)
	}
	// All ranges equal: R wins.
	if ch := widestChannel([]Color{{0, 0, 0}, {10, 10, 10}}); ch != chR {
		t.Errorf("equal ranges chose channel %d, want R", ch)
	}
	// G and B tied, R smaller: G wins.
	if ch := widestChannel([]Color{{0, 0, 0}, {0, 10, 10}}); ch != chG {
		t.Errorf("G/B tie chose channel %d, want G", ch)
	}
	// B strictly widest.
	if ch := widestChannel([]Color{{0, 0, 0}, {1, 2, 30}}); ch != chB {
		t.Errorf("widest B chose channel %d, want B", ch)
	}
}

func TestBucketMeanRounds(t *testing.T) {
	// (1+2)/2 = 1.5 rounds to 2.
	got := bucketMean([]Color{{1, 0, 0}, {2, 0, 0}})
	if got.R != 2 {
		t.Errorf("mean R = %d, want 2", got.R)
	}
}
