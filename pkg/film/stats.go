package film

import (
	"log"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/skypies/util/histogram"

	"github.com/filmgeek/portra/pkg/fimg"
)

// LogStats prints a luminance histogram and the mean HSL saturation
// of a buffer. Called before and after processing at verbosity>0, so
// the warmth/desaturation shift shows up in numbers rather than
// eyeballs. Large images are subsampled; stats don't need every
// pixel.
func LogStats(tag string, b *fimg.Buffer) {
	hist := histogram.Histogram{NumBuckets: 16, ValMin: 0, ValMax: 100}

	step := 1
	for (b.Rect.Dx()/step)*(b.Rect.Dy()/step) > 1<<20 {
		step *= 2
	}

	var satSum float64
	n := 0
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y += step {
		for x := b.Rect.Min.X; x < b.Rect.Max.X; x += step {
			c := b.RGBAAt(x, y).Clamp()
			hist.Add(histogram.ScalarVal(int(c.Luminance() * 100)))

			col := colorful.Color{R: c.R, G: c.G, B: c.B}
			_, s, _ := col.Hsl()
			satSum += s
			n++
		}
	}

	if n == 0 {
		return
	}

	log.Printf("%s: %d px sampled, mean saturation %.3f, luminance histogram %s",
		tag, n, satSum/float64(n), &hist)
}
