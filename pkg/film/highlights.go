package film

import (
	"github.com/filmgeek/portra/pkg/fcolor"
	"github.com/filmgeek/portra/pkg/fimg"
)

// LuminanceMask computes the per-pixel BT.709 luminance plane for an
// image. Ephemeral; recomputed per capture.
func LuminanceMask(img *fimg.Buffer) *fimg.FloatGrid {
	fg := fimg.NewFloatGrid(img.Rect)
	fg.Fill(func(x, y int) float64 {
		return img.RGBAAt(x, y).Luminance()
	})
	return fg
}

// desaturateHighlights blends a partially desaturated copy of the
// image into the bright regions. The blend weight ramps 0 -> 1 across
// the [HighlightFloor, HighlightCeil] luminance band; below the floor
// the pixel passes through bit-identical.
//
// Cosmetic stage: anything unusable here means we return the input
// unchanged rather than fail - photography never blocks on a
// highlight tweak.
func (p *Pipeline)desaturateHighlights(img *fimg.Buffer) *fimg.Buffer {
	if img == nil || img.Rect.Empty() {
		return img // fail soft, stage is cosmetic
	}
	band := p.HighlightCeil - p.HighlightFloor
	if band <= 0 {
		return img // fail soft, stage is cosmetic
	}

	mask := LuminanceMask(img)
	out := fimg.New(img.Rect, img.Space)

	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			c := img.RGBAAt(x, y)
			w := fcolor.ClampF((mask.Get(x, y)-p.HighlightFloor)/band, 0, 1)
			if w == 0 {
				out.SetRGBA(x, y, c)
				continue
			}
			d := c.Desaturate(p.DesaturationFactor)
			out.SetRGBA(x, y, fcolor.Lerp(c, d, w))
		}
	}
	return out
}
