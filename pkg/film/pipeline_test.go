package film

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filmgeek/portra/pkg/fcolor"
	"github.com/filmgeek/portra/pkg/fimg"
)

func uniformBuffer(rect image.Rectangle, c fcolor.RGBA) *fimg.Buffer {
	b := fimg.New(rect, fimg.DisplayP3)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			b.SetRGBA(x, y, c)
		}
	}
	return b
}

func gradientBuffer(rect image.Rectangle) *fimg.Buffer {
	b := fimg.New(rect, fimg.DisplayP3)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			fx := float64(x-rect.Min.X) / math.Max(1, float64(rect.Dx()-1))
			fy := float64(y-rect.Min.Y) / math.Max(1, float64(rect.Dy()-1))
			b.SetRGBA(x, y, fcolor.RGBA{R: fx, G: fy, B: (fx + fy) / 2, A: 1})
		}
	}
	return b
}

func grainlessPipeline(t *testing.T) *Pipeline {
	cfg := NewConfig()
	cfg.GrainIntensity = 0
	p, err := NewPipeline(cfg)
	require.NoError(t, err)
	return p
}

func TestNewPipelineRejectsBadConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.LUTDimension = 1
	_, err := NewPipeline(cfg)
	require.Error(t, err, "LUT dimension must be surfaced before any capture")
}

func TestProcessRejectsNoImage(t *testing.T) {
	p := grainlessPipeline(t)

	_, err := p.Process(nil)
	require.Error(t, err)

	_, err = p.Process(fimg.New(image.Rect(0, 0, 0, 0), fimg.DisplayP3))
	require.Error(t, err)
}

// Without grain the pipeline is fully deterministic: same input in,
// bit-identical output out.
func TestProcessDeterministicWithoutGrain(t *testing.T) {
	p := grainlessPipeline(t)
	src := gradientBuffer(image.Rect(0, 0, 24, 18))

	out1, err := p.Process(src)
	require.NoError(t, err)
	out2, err := p.Process(src)
	require.NoError(t, err)

	require.Equal(t, out1.Pix, out2.Pix)
}

// With grain enabled, two runs share everything except the grain
// component, so outputs differ but stay the same shape.
func TestProcessGrainIsTheOnlyNondeterminism(t *testing.T) {
	cfg := NewConfig()
	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	src := uniformBuffer(image.Rect(0, 0, 32, 32), fcolor.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})

	out1, err := p.Process(src)
	require.NoError(t, err)
	out2, err := p.Process(src)
	require.NoError(t, err)

	require.Equal(t, out1.Rect, out2.Rect)
	require.NotEqual(t, out1.Pix, out2.Pix, "grain is regenerated per capture")
}

func TestProcessPreservesExtentAndSpace(t *testing.T) {
	p := grainlessPipeline(t)
	rect := image.Rect(10, 20, 34, 41)
	src := gradientBuffer(rect)

	out, err := p.Process(src)
	require.NoError(t, err)
	require.Equal(t, rect, out.Rect)
	require.Equal(t, src.Space, out.Space)
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	cfg := NewConfig()
	p, err := NewPipeline(cfg)
	require.NoError(t, err)

	src := gradientBuffer(image.Rect(0, 0, 8, 8))
	orig := src.Clone()

	_, err = p.Process(src)
	require.NoError(t, err)
	require.Equal(t, orig.Pix, src.Pix, "caller's buffer is read-only to the pipeline")
}

func TestProcessBoundaryImages(t *testing.T) {
	p := grainlessPipeline(t)

	cases := map[string]*fimg.Buffer{
		"1x1":   uniformBuffer(image.Rect(0, 0, 1, 1), fcolor.RGBA{R: 0.5, G: 0.2, B: 0.9, A: 1}),
		"black": uniformBuffer(image.Rect(0, 0, 4, 4), fcolor.RGBA{A: 1}),
		"white": uniformBuffer(image.Rect(0, 0, 4, 4), fcolor.RGBA{R: 1, G: 1, B: 1, A: 1}),
	}

	for name, src := range cases {
		out, err := p.Process(src)
		require.NoError(t, err, name)
		require.Equal(t, src.Rect, out.Rect, name)
		for i, v := range out.Pix {
			if math.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("%s: channel %d out of range: %f", name, i, v)
			}
		}
	}
}

// Mid-gray in, warm near-gray out: the tone curve pulls 0.5 down to
// 0.48 and the cube shifts red above green above blue.
func TestProcessMidGrayScenario(t *testing.T) {
	p := grainlessPipeline(t)
	src := uniformBuffer(image.Rect(0, 0, 2, 2), fcolor.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})

	out, err := p.Process(src)
	require.NoError(t, err)

	c := out.RGBAAt(0, 0)
	require.Greater(t, c.R, c.G)
	require.Greater(t, c.G, c.B)
	for _, v := range []float64{c.R, c.G, c.B} {
		require.GreaterOrEqual(t, v, 0.44)
		require.LessOrEqual(t, v, 0.60)
	}
}
