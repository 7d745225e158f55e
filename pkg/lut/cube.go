package lut

import (
	"fmt"
	"math"

	"github.com/filmgeek/portra/pkg/fcolor"
	"github.com/filmgeek/portra/pkg/fimg"
)

// A Cube is a dense DxDxD color lookup table: an output (R,G,B)
// triple for every quantized input triple, alpha implicitly 1.
// Immutable once built, so a single Cube can be shared by any number
// of pipelines. The layout is plain enough that a cube parsed from an
// external file could be dropped in, though nothing here does that.
type Cube struct {
	Dim  int
	Data []float64 // 3 values per node; node (ri,gi,bi) at ((ri*Dim+gi)*Dim+bi)*3
}

// Build procedurally generates the Portra 400 cube. Pure function of
// the dimension: same D in, bit-identical table out.
func Build(dim int) (*Cube, error) {
	if dim <= 1 {
		return nil, fmt.Errorf("lut: cube dimension %d invalid, need >= 2", dim)
	}

	c := &Cube{Dim: dim, Data: make([]float64, dim*dim*dim*3)}
	n := float64(dim - 1)

	i := 0
	for ri := 0; ri < dim; ri++ {
		for gi := 0; gi < dim; gi++ {
			for bi := 0; bi < dim; bi++ {
				r, g, b := portraNode(float64(ri)/n, float64(gi)/n, float64(bi)/n)
				c.Data[i] = r
				c.Data[i+1] = g
				c.Data[i+2] = b
				i += 3
			}
		}
	}
	return c, nil
}

// portraNode is the color recipe for one cube node. The four
// adjustments run in order and each one reads the channels as already
// shifted by the previous ones; the effects compound. Luminance is
// taken once, from the unshifted input.
func portraNode(r, g, b float64) (float64, float64, float64) {
	luma := fcolor.LumaR*r + fcolor.LumaG*g + fcolor.LumaB*b

	// Midtone warmth
	if luma > 0.2 && luma < 0.8 {
		s := 1.0 - 2.0*math.Abs(luma-0.5)
		r += 0.05 * s
		b -= 0.02 * s
	}

	// Cyan-tinted shadow lift
	if luma < 0.3 {
		s := (0.3 - luma) / 0.3
		b += 0.04 * s
		g += 0.02 * s
	}

	// Skin tone warmth
	if r > 0.4 && r > g && g > b && luma > 0.3 && luma < 0.7 {
		r += 0.03
		g += 0.01
	}

	// Global warmth
	r += 0.02
	g += 0.01

	return fcolor.ClampF(r, 0, 1), fcolor.ClampF(g, 0, 1), fcolor.ClampF(b, 0, 1)
}

// Lookup trilinearly interpolates the 8 cube corners surrounding
// (r,g,b), each channel scaled to [0,Dim-1]. Inputs are clamped to
// [0,1] first; stages upstream may overshoot.
func (c *Cube)Lookup(r, g, b float64) (float64, float64, float64) {
	n := float64(c.Dim - 1)
	rp := fcolor.ClampF(r, 0, 1) * n
	gp := fcolor.ClampF(g, 0, 1) * n
	bp := fcolor.ClampF(b, 0, 1) * n

	ri, gi, bi := int(rp), int(gp), int(bp)
	if ri > c.Dim-2 { ri = c.Dim - 2 }
	if gi > c.Dim-2 { gi = c.Dim - 2 }
	if bi > c.Dim-2 { bi = c.Dim - 2 }

	fr := rp - float64(ri)
	fg := gp - float64(gi)
	fb := bp - float64(bi)

	bStride := 3
	gStride := c.Dim * bStride
	rStride := c.Dim * gStride
	base := ri*rStride + gi*gStride + bi*bStride

	c000 := base
	c001 := base + bStride
	c010 := base + gStride
	c011 := base + gStride + bStride
	c100 := base + rStride
	c101 := base + rStride + bStride
	c110 := base + rStride + gStride
	c111 := base + rStride + gStride + bStride

	var out [3]float64
	for i := 0; i < 3; i++ {
		v00 := c.Data[c000+i]*(1-fb) + c.Data[c001+i]*fb
		v01 := c.Data[c010+i]*(1-fb) + c.Data[c011+i]*fb
		v10 := c.Data[c100+i]*(1-fb) + c.Data[c101+i]*fb
		v11 := c.Data[c110+i]*(1-fb) + c.Data[c111+i]*fb

		v0 := v00*(1-fg) + v01*fg
		v1 := v10*(1-fg) + v11*fg

		out[i] = v0*(1-fr) + v1*fr
	}
	return out[0], out[1], out[2]
}

// Apply maps every pixel through the cube. Output alpha is fixed at
// 1; the table has no alpha axis. Extent preserved.
func (c *Cube)Apply(src *fimg.Buffer) *fimg.Buffer {
	dst := fimg.New(src.Rect, src.Space)
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		for x := src.Rect.Min.X; x < src.Rect.Max.X; x++ {
			p := src.RGBAAt(x, y)
			r, g, b := c.Lookup(p.R, p.G, p.B)
			dst.SetRGBA(x, y, fcolor.RGBA{R: r, G: g, B: b, A: 1.0})
		}
	}
	return dst
}
