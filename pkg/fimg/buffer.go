package fimg

import (
	"image"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/filmgeek/portra/pkg/fcolor"
)

// A ColorSpace names the working color space a Buffer's samples live
// in. The pipeline never converts between spaces; it just guarantees
// that whatever space came in goes out.
type ColorSpace string

const (
	DisplayP3 ColorSpace = "display-p3"
	SRGB      ColorSpace = "srgb"
)

// A Buffer is a width x height grid of float RGBA samples in a single
// working color space. Implements image.Image (clamped 16-bit view)
// and hdr.Image (raw float view), so it can go straight into the PNG
// encoder or the RGBE codec.
type Buffer struct {
	Rect  image.Rectangle
	Space ColorSpace
	Pix   []float64 // 4 values per pixel (R,G,B,A), row major
}

func New(r image.Rectangle, space ColorSpace) *Buffer {
	return &Buffer{
		Rect:  r,
		Space: space,
		Pix:   make([]float64, r.Dx()*r.Dy()*4),
	}
}

// FromImage samples a decoded image into a float Buffer, mapping
// [0,0xFFFF] channels onto [0.0,1.0].
func FromImage(img image.Image, space ColorSpace) *Buffer {
	b := New(img.Bounds(), space)
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		for x := b.Rect.Min.X; x < b.Rect.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			b.SetRGBA(x, y, fcolor.RGBA{
				R: float64(r) / float64(0xFFFF),
				G: float64(g) / float64(0xFFFF),
				B: float64(bl) / float64(0xFFFF),
				A: float64(a) / float64(0xFFFF),
			})
		}
	}
	return b
}

func (b *Buffer)Clone() *Buffer {
	b2 := &Buffer{Rect: b.Rect, Space: b.Space, Pix: make([]float64, len(b.Pix))}
	copy(b2.Pix, b.Pix)
	return b2
}

func (b *Buffer)index(x, y int) int {
	return ((y-b.Rect.Min.Y)*b.Rect.Dx() + (x - b.Rect.Min.X)) * 4
}

func (b *Buffer)RGBAAt(x, y int) fcolor.RGBA {
	i := b.index(x, y)
	return fcolor.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

func (b *Buffer)SetRGBA(x, y int, c fcolor.RGBA) {
	i := b.index(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Implement image.Image
func (b *Buffer)ColorModel() color.Model  { return hdrcolor.RGBModel }
func (b *Buffer)Bounds() image.Rectangle  { return b.Rect }
func (b *Buffer)At(x, y int) color.Color {
	c := b.RGBAAt(x, y).Clamp()
	return color.RGBA64{
		R: uint16(c.R * 0xFFFF),
		G: uint16(c.G * 0xFFFF),
		B: uint16(c.B * 0xFFFF),
		A: uint16(c.A * 0xFFFF),
	}
}

// Implement hdr.Image
func (b *Buffer)HDRAt(x, y int) hdrcolor.Color {
	c := b.RGBAAt(x, y)
	return hdrcolor.RGB{R: c.R, G: c.G, B: c.B}
}
func (b *Buffer)Size() int { return b.Rect.Dx() * b.Rect.Dy() }

// ClampInPlace pins every channel to [0,1]. The pipeline calls this
// once, at the final materialization point.
func (b *Buffer)ClampInPlace() {
	for i := range b.Pix {
		if b.Pix[i] < 0 {
			b.Pix[i] = 0
		} else if b.Pix[i] > 1 {
			b.Pix[i] = 1
		}
	}
}

// ToRGBA64 renders the buffer into a concrete 16-bit image, clamping
// on the way. This is the single point where float pixels become
// encodable pixel data.
func (b *Buffer)ToRGBA64() *image.RGBA64 {
	img := image.NewRGBA64(b.Rect)
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		for x := b.Rect.Min.X; x < b.Rect.Max.X; x++ {
			img.Set(x, y, b.At(x, y))
		}
	}
	return img
}
