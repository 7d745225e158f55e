// Package grain synthesizes monochrome film grain and composites it
// onto an image. Grain is the cosmetic final stage of the pipeline:
// it never errors, it just hands back the best image it has.
package grain

import (
	"image"
	"math/rand"
	"time"

	"github.com/filmgeek/portra/pkg/fcolor"
	"github.com/filmgeek/portra/pkg/fimg"
)

// A Synthesizer holds the grain parameters. By default each Apply
// draws from a fresh time-seeded source - reusing a seed across
// captures produces visible patterning, so there is deliberately no
// caching of noise fields.
type Synthesizer struct {
	Intensity float64 // scale of the noise perturbation around 0.5
	Strength  float64 // how much of the overlay result survives attenuation

	src *rand.Rand // pinned source; nil means fresh per Apply
}

func New(intensity, strength float64) *Synthesizer {
	return &Synthesizer{Intensity: intensity, Strength: strength}
}

// WithSource pins the noise source, making Apply reproducible. For
// tests and debug dumps; captures must never share a seed.
func (s *Synthesizer)WithSource(src *rand.Rand) *Synthesizer {
	s.src = src
	return s
}

func (s *Synthesizer)source() *rand.Rand {
	if s.src != nil {
		return s.src
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Field generates the grain plane for an extent: uniform uncorrelated
// RGB noise per pixel, flattened to monochrome with equal 1/3 channel
// weights (flat on purpose - perceptual weighting already happened in
// the tone and LUT stages), then scaled by Intensity and recentered
// at 0.5 so the grain perturbs rather than darkens.
func (s *Synthesizer)Field(r image.Rectangle) *fimg.FloatGrid {
	rng := s.source()
	fg := fimg.NewFloatGrid(r)
	fg.Fill(func(x, y int) float64 {
		mono := (rng.Float64() + rng.Float64() + rng.Float64()) / 3.0
		return 0.5 + (mono-0.5)*s.Intensity
	})
	return fg
}

// Apply composites fresh grain over the image:
//
//	overlay blend of the grain plane against each channel,
//	attenuate to Strength overlay / (1-Strength) original,
//	source-atop composite, the grain layer's own alpha (opaque)
//	governing coverage.
//
// The three-step chain mirrors the reference look; the atop step is
// arguably redundant for opaque grain but it is what the target
// output does. Fail-soft: a degenerate extent or zero intensity
// returns the input untouched.
func (s *Synthesizer)Apply(img *fimg.Buffer) *fimg.Buffer {
	if img == nil || img.Rect.Empty() || s.Intensity <= 0 {
		return img
	}

	field := s.Field(img.Rect)
	out := fimg.New(img.Rect, img.Space)

	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			base := img.RGBAAt(x, y)
			g := field.Get(x, y)

			ov := fcolor.RGBA{
				R: overlay(base.R, g),
				G: overlay(base.G, g),
				B: overlay(base.B, g),
				A: base.A,
			}

			att := fcolor.Lerp(base, ov, s.Strength)

			// Source-atop: S*Da + D*(1-Sa). The grain layer is opaque
			// (Sa=1), so this collapses to the attenuated layer scaled by
			// the base coverage.
			out.SetRGBA(x, y, fcolor.RGBA{
				R: att.R * base.A,
				G: att.G * base.A,
				B: att.B * base.A,
				A: base.A,
			})
		}
	}
	return out
}

// overlay is the standard overlay blend of grain value g onto base
// channel b: darkens below mid, screens above, pushing grain contrast
// hardest in the midtones where analog grain is most visible.
func overlay(b, g float64) float64 {
	b = fcolor.ClampF(b, 0, 1)
	if b < 0.5 {
		return 2.0 * b * g
	}
	return 1.0 - 2.0*(1.0-b)*(1.0-g)
}
