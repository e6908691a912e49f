// Command unmult unmultiplies an image file: premultiplied pixels go in,
// straight-alpha pixels with the dominant channel at full scale come out.
//
// Usage:
//
//	unmult -in layer.png -out keyed.png
//	unmult -in plate.tif -out plate-keyed.tif -format rgba16 -v
//
// Input may be PNG, JPEG, TIFF, BMP or WebP. The output encoding follows the
// -out extension: .png, .tif/.tiff or .bmp.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/unmult"
	intImage "github.com/gogpu/unmult/internal/image"
)

func main() {
	var (
		input    = flag.String("in", "", "input image file")
		output   = flag.String("out", "unmult.png", "output image file (.png, .tif, .bmp)")
		format   = flag.String("format", "rgba8", "working pixel format (see -formats)")
		strategy = flag.String("strategy", "exact", "kernel: exact or table (8-bit only)")
		workers  = flag.Int("workers", 0, "worker goroutines, 0 for one per CPU")
		verbose  = flag.Bool("v", false, "log debug diagnostics")
		list     = flag.Bool("formats", false, "list supported pixel formats and exit")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	unmult.SetLogger(logger)

	if *list {
		printFormats()
		return
	}

	if err := run(*input, *output, *format, *strategy, *workers, logger); err != nil {
		logger.Error("unmult failed", "err", err)
		os.Exit(1)
	}
}

func run(input, output, formatName, strategyName string, workers int, logger *slog.Logger) error {
	if input == "" {
		return errors.New("missing -in")
	}
	format, err := parseFormat(formatName)
	if err != nil {
		return err
	}
	strategy, err := parseStrategy(strategyName)
	if err != nil {
		return err
	}

	in, err := intImage.LoadImage(input, format)
	if err != nil {
		return err
	}
	out, err := unmult.NewFrame(make([]byte, len(in.Data)), in.Width, in.Height, 0, format)
	if err != nil {
		return err
	}

	if err := unmult.Render(in, out, unmult.WithStrategy(strategy), unmult.WithWorkers(workers)); err != nil {
		return err
	}
	if err := intImage.SaveImage(output, out); err != nil {
		return err
	}

	logger.Info("unmult: saved", "path", output, "width", out.Width, "height", out.Height, "format", format.String())
	return nil
}

func parseFormat(name string) (unmult.PixelFormat, error) {
	for _, f := range unmult.SupportedFormats() {
		if strings.EqualFold(f.String(), name) {
			if f.IsYUV() {
				return unmult.FormatInvalid, fmt.Errorf("format %s cannot hold a decoded image file", f)
			}
			return f, nil
		}
	}
	return unmult.FormatInvalid, fmt.Errorf("%w: %q", unmult.ErrUnsupportedFormat, name)
}

func parseStrategy(name string) (unmult.Strategy, error) {
	for _, s := range []unmult.Strategy{unmult.StrategyExact, unmult.StrategyTable} {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return unmult.StrategyExact, fmt.Errorf("unknown strategy %q", name)
}

func printFormats() {
	for _, c := range unmult.Capabilities() {
		fmt.Printf("%-8s %2d bytes/pixel  texture %v\n", strings.ToLower(c.Format.String()), c.BytesPerPixel, c.TextureFormat)
	}
}
