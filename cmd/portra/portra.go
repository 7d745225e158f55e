package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/filmgeek/portra/pkg/film"
)

var (
	fVerbosity int
	fConfig    string
	fOutput    string
	fSpace     string
	fLUTDim    int
	fGrain     float64
	fMaxWidth  int
	fDumpHDR   bool
	fDumpGrids bool
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fConfig, "config", "", "yaml config file (flags override it)")
	flag.StringVar(&fOutput, "o", "", "output filename (default <input>-portra.jpg)")
	flag.StringVar(&fSpace, "space", "display-p3", "working color space tag")
	flag.IntVar(&fLUTDim, "lutdim", 64, "side length of the 3D color LUT")
	flag.Float64Var(&fGrain, "grain", 0.04, "grain intensity (0 disables grain)")
	flag.IntVar(&fMaxWidth, "maxwidth", 0, "downscale input to this width before processing (0 = no resize)")
	flag.BoolVar(&fDumpHDR, "dumphdr", false, "write the pre-clamp working buffer as a Radiance .hdr file")
	flag.BoolVar(&fDumpGrids, "dumpgrids", false, "write the luminance mask and a grain field as PNGs")
	flag.Parse()

	log.Printf("portra starting\n")
}

func main() {
	cfg := film.NewConfig()
	if fConfig != "" {
		var err error
		if cfg, err = film.LoadConfig(fConfig); err != nil {
			log.Fatalf("config '%s': %v", fConfig, err)
		}
		log.Printf("Loaded base configuration from %s\n", fConfig)
	}

	cfg.Verbosity = fVerbosity
	cfg.WorkingSpace = fSpace
	cfg.LUTDimension = fLUTDim
	cfg.GrainIntensity = fGrain

	pipe, err := film.NewPipeline(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	if flag.NArg() == 0 {
		log.Fatalf("no input images; usage: portra [flags] photo.jpg ...")
	}

	for _, arg := range flag.Args() {
		if err := develop(pipe, arg); err != nil {
			log.Fatal(err)
		}
	}
}

func develop(pipe *film.Pipeline, filename string) error {
	capture, err := pipe.LoadCapture(filename)
	if err != nil {
		return err
	}
	log.Printf("Loaded %s", capture)

	if fMaxWidth > 0 && capture.Image.Bounds().Dx() > fMaxWidth {
		capture.Image = imaging.Resize(capture.Image, fMaxWidth, 0, imaging.Lanczos)
		log.Printf("Resized input to %v", capture.Image.Bounds())
	}

	buf := capture.Buffer(pipe.WorkingSpace)
	if pipe.Verbosity > 0 {
		film.LogStats("input", buf)
	}

	if fDumpGrids {
		mask := film.LuminanceMask(buf)
		if err := mask.ToImg("luminance mask", outName(filename, "-mask.png")); err != nil {
			log.Printf("mask dump failed: %v", err)
		}
		if err := pipe.GrainField(buf.Rect).ToImg("grain field", outName(filename, "-grain.png")); err != nil {
			log.Printf("grain dump failed: %v", err)
		}
	}

	out, err := pipe.Process(buf)
	if err != nil {
		return fmt.Errorf("develop '%s': %v", filename, err)
	}

	if pipe.Verbosity > 0 {
		film.LogStats("output", out)
	}

	if fDumpHDR {
		if err := film.WriteHDR(out, outName(filename, ".hdr")); err != nil {
			log.Printf("hdr dump failed: %v", err)
		}
	}

	dest := fOutput
	if dest == "" {
		dest = outName(filename, "-portra.jpg")
	}
	if err := film.SaveImage(out, dest); err != nil {
		return err
	}
	log.Printf("Wrote %s", dest)
	return nil
}

func outName(input, suffix string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + suffix
}
