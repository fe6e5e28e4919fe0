// Command pdfscene replays a decoded PDF content stream into a vector scene
// and writes it out as SVG. The input must already be decompressed; this
// tool interprets drawing operators, it does not parse PDF files.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/novvoo/go-pdfscene/pkg/interp"
	"github.com/novvoo/go-pdfscene/pkg/svg"
)

func main() {
	var (
		output = flag.String("o", "", "output SVG file (default stdout)")
		width  = flag.Float64("width", 612, "page width in points")
		height = flag.Float64("height", 792, "page height in points")
		quiet  = flag.Bool("q", false, "suppress diagnostics")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] content-stream-file\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	content, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfscene: %v\n", err)
		os.Exit(1)
	}

	sc, diags, err := interp.Interpret(content, nil, interp.Options{
		PageWidth:  *width,
		PageHeight: *height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfscene: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "pdfscene: %s\n", d)
		}
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pdfscene: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := svg.Write(out, sc); err != nil {
		fmt.Fprintf(os.Stderr, "pdfscene: %v\n", err)
		os.Exit(1)
	}
}
