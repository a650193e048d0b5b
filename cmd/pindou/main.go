package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"

	pindou "github.com/ashleynku/pin-dou-pictures"
	"github.com/ashleynku/pin-dou-pictures/utils"
)

type options struct {
	Output  string `short:"o" long:"output" description:"Output PNG file (default: <input>_pindou.png)"`
	Colors  int    `short:"c" long:"colors" default:"48" description:"Palette size, clamped to [24,256]"`
	Grid    int    `short:"g" long:"grid" default:"64" description:"Longest grid side in cells, clamped to [20,200]"`
	Block   int    `short:"b" long:"block" default:"12" description:"Rendered cell size in pixels"`
	Method  string `short:"m" long:"method" default:"mediancut" choice:"mediancut" choice:"kmeans" choice:"dominant" description:"Palette extraction method"`
	Palette string `long:"palette" description:"Also write the palette as a swatch sheet PNG"`
	Stats   bool   `long:"stats" description:"Print palette quality statistics"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] INPUT"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}
	if len(args) == 0 {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}
	input := args[0]
	output := opts.Output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "_pindou.png"
	}

	img, err := utils.ReadImage(input)
	if err != nil {
		log.Fatal(err)
	}

	conv := pindou.Options{
		Colors:      opts.Colors,
		MaxGridSize: opts.Grid,
		BlockSize:   opts.Block,
		Supersample: pindou.DefaultOptions().Supersample,
		Method:      pindou.ParsePaletteMethod(opts.Method),
	}.Clamp()

	grid, err := pindou.Convert(img, conv)
	if err != nil {
		log.Fatal(err)
	}

	out, err := pindou.Render(grid, conv.BlockSize)
	if err != nil {
		log.Fatal(err)
	}
	if err := utils.SaveImage(out, output); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s (%dx%d cells, %d palette colors)", output, grid.Width, grid.Height, len(grid.Palette))

	if opts.Palette != "" {
		pal := append([]pindou.Color(nil), grid.Palette...)
		pindou.SortPaletteByBrightness(pal)
		if err := utils.SavePalette(pal, 64, opts.Palette); err != nil {
			log.Fatal(err)
		}
		log.Println("wrote", opts.Palette)
	}

	if opts.Stats {
		rep := grid.Report()
		fmt.Printf("palette=%d visible=%d meanErr=%.2f stdDevErr=%.2f maxErr=%.2f\n",
			rep.PaletteSize, rep.VisibleCells, rep.MeanError, rep.StdDevError, rep.MaxError)
	}
}
