package tone

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/filmgeek/portra/pkg/fcolor"
	"github.com/filmgeek/portra/pkg/fimg"
)

// FilmicPoints is the fixed Portra-ish response: lifted black point,
// slightly compressed mids, soft highlight rolloff instead of a hard
// clip at 1.0. Input -> output, both in [0,1].
var FilmicPoints = [][2]float64{
	{0.00, 0.03},
	{0.15, 0.12},
	{0.50, 0.48},
	{0.85, 0.82},
	{1.00, 0.97},
}

// A Curve maps per-channel intensity through a monotone
// piecewise-cubic spline (Fritsch-Butland) fitted through its control
// points. Built once at pipeline construction; stateless and
// immutable afterwards, so one Curve is safe across goroutines.
type Curve struct {
	xs, ys []float64
	spline interp.FritschButland
}

func NewFilmicCurve() (*Curve, error) {
	return NewCurve(FilmicPoints)
}

func NewCurve(points [][2]float64) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("tone: need at least 2 control points, got %d", len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p[0], p[1]
		if p[0] < 0 || p[0] > 1 || p[1] < 0 || p[1] > 1 {
			return nil, fmt.Errorf("tone: control point %d (%f,%f) outside [0,1]", i, p[0], p[1])
		}
		if i > 0 && (xs[i] <= xs[i-1] || ys[i] < ys[i-1]) {
			return nil, fmt.Errorf("tone: control points must be monotone non-decreasing, broken at %d", i)
		}
	}

	c := &Curve{xs: xs, ys: ys}
	if err := c.spline.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("tone: spline fit: %v", err)
	}
	return c, nil
}

// Eval maps one channel value. Inputs outside the control point
// domain (transient over/undershoot from an earlier stage) pin to the
// endpoint values.
func (c *Curve)Eval(v float64) float64 {
	if v <= c.xs[0] {
		return c.ys[0]
	}
	if v >= c.xs[len(c.xs)-1] {
		return c.ys[len(c.ys)-1]
	}
	return c.spline.Predict(v)
}

// Apply runs every pixel's R,G,B through the curve, identically per
// channel. Alpha passes through. Output extent == input extent.
func (c *Curve)Apply(src *fimg.Buffer) *fimg.Buffer {
	dst := fimg.New(src.Rect, src.Space)
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			p := src.RGBAAt(x, y)
			dst.SetRGBA(x, y, fcolor.RGBA{
				R: c.Eval(p.R),
				G: c.Eval(p.G),
				B: c.Eval(p.B),
				A: p.A,
			})
		}
	}
	return dst
}
