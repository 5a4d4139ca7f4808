// Command compositor-cli applies a transform-node parameter set to an
// image from the command line: it composes the transform, reports the
// bake decision and writes the baked result as PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg" // input decoders
	_ "image/png"
	"log"
	"log/slog"
	"math"
	"os"

	_ "golang.org/x/image/bmp" // input decoders beyond stdlib
	_ "golang.org/x/image/tiff"

	"github.com/gogpu/compositor"
)

func main() {
	var (
		input      = flag.String("input", "", "input image (png, jpeg, bmp, tiff)")
		output     = flag.String("output", "baked.png", "output PNG file")
		offsetX    = flag.Float64("offset-x", 0, "world offset X in pixels")
		offsetY    = flag.Float64("offset-y", 0, "world offset Y in pixels")
		angle      = flag.Float64("angle", 0, "rotation in degrees")
		scaleX     = flag.Float64("scale-x", 1, "horizontal scale factor")
		scaleY     = flag.Float64("scale-y", 1, "vertical scale factor")
		pivotX     = flag.Float64("pivot-x", math.NaN(), "pivot X in source pixels (default: center)")
		pivotY     = flag.Float64("pivot-y", math.NaN(), "pivot Y in source pixels (default: center)")
		background = flag.String("background", "#0000", "composite background color (hex)")
		force      = flag.Bool("force", false, "bake even when the heuristic would defer")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	buf, err := loadBuffer(*input)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}

	params := compositor.DefaultParameters(buf.Width(), buf.Height())
	params.OffsetX = *offsetX
	params.OffsetY = *offsetY
	params.Angle = *angle * math.Pi / 180
	params.ScaleX = *scaleX
	params.ScaleY = *scaleY
	if !math.IsNaN(*pivotX) {
		params.PivotX = *pivotX
	}
	if !math.IsNaN(*pivotY) {
		params.PivotY = *pivotY
	}

	bg := compositor.Hex(*background)
	img := compositor.NewImage(buf).Transformed(params.Matrix())

	if !*force && !compositor.ShouldBake(img, bg) {
		fmt.Println("bake deferred: transform cannot visibly clip against the background")
		fmt.Println("rerun with -force to resample anyway")
		return
	}

	baked, err := compositor.Bake(img, bg)
	if err != nil {
		log.Fatalf("Bake skipped: %v", err)
	}

	if err := baked.Buffer().SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	if m, ok := baked.Pending(); ok {
		fmt.Printf("baked %dx%d -> %dx%d, placement translation (%.1f, %.1f)\n",
			buf.Width(), buf.Height(),
			baked.Width(), baked.Height(), m.C, m.F)
	}
	fmt.Printf("saved to %s\n", *output)
}

// loadBuffer decodes an image file into a float pixel buffer.
func loadBuffer(path string) (*compositor.Buffer, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return compositor.FromImage(img), nil
}
