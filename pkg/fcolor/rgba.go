package fcolor

import (
	"fmt"
)

// ITU-R BT.709 luminance weights. The LUT recipe and the highlight
// mask must agree on these, so they live here and nowhere else.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// An RGBA is a single pixel sample in the working color space.
// Channels are nominally [0,1], but intermediate pipeline stages may
// push them outside that range; call Clamp before a value leaves the
// pipeline or indexes the LUT.
type RGBA struct {
	R, G, B, A float64
}

func (c RGBA)String() string {
	return fmt.Sprintf("[%8.6f, %8.6f, %8.6f, %8.6f]", c.R, c.G, c.B, c.A)
}

// Luminance is the BT.709 weighted sum of the color channels.
func (c RGBA)Luminance() float64 {
	return LumaR*c.R + LumaG*c.G + LumaB*c.B
}

func (c RGBA)Clamp() RGBA {
	return RGBA{
		R: ClampF(c.R, 0, 1),
		G: ClampF(c.G, 0, 1),
		B: ClampF(c.B, 0, 1),
		A: ClampF(c.A, 0, 1),
	}
}

// Desaturate blends the color toward its BT.709 gray equivalent.
// keep=1 is a no-op, keep=0 is full grayscale.
func (c RGBA)Desaturate(keep float64) RGBA {
	y := c.Luminance()
	return RGBA{
		R: y + (c.R-y)*keep,
		G: y + (c.G-y)*keep,
		B: y + (c.B-y)*keep,
		A: c.A,
	}
}

// Lerp blends a->b by t, per channel (alpha included).
func Lerp(a, b RGBA, t float64) RGBA {
	return RGBA{
		R: LerpF(a.R, b.R, t),
		G: LerpF(a.G, b.G, t),
		B: LerpF(a.B, b.B, t),
		A: LerpF(a.A, b.A, t),
	}
}

func LerpF(a, b, t float64) float64 { return a + (b-a)*t }

func ClampF(v, lo, hi float64) float64 {
	if v < lo { return lo }
	if v > hi { return hi }
	return v
}
