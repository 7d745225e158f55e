package fimg

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// A FloatGrid is a per-pixel scalar plane over an image extent - a
// luminance mask, a noise field. Ephemeral; recomputed per capture.
type FloatGrid struct {
	rect   image.Rectangle
	values []float64
}

func NewFloatGrid(r image.Rectangle) *FloatGrid {
	return &FloatGrid{
		rect:   r,
		values: make([]float64, r.Dx()*r.Dy()),
	}
}

func (fg *FloatGrid)Bounds() image.Rectangle { return fg.rect }
func (fg *FloatGrid)Dx() int                 { return fg.rect.Dx() }
func (fg *FloatGrid)Dy() int                 { return fg.rect.Dy() }

func (fg *FloatGrid)Set(x, y int, v float64) {
	fg.values[(y-fg.rect.Min.Y)*fg.rect.Dx()+(x-fg.rect.Min.X)] = v
}

func (fg *FloatGrid)Get(x, y int) float64 {
	return fg.values[(y-fg.rect.Min.Y)*fg.rect.Dx()+(x-fg.rect.Min.X)]
}

// Fill populates every cell from f(x,y).
func (fg *FloatGrid)Fill(f func(x, y int) float64) {
	for y := fg.rect.Min.Y; y < fg.rect.Max.Y; y++ {
		for x := fg.rect.Min.X; x < fg.rect.Max.X; x++ {
			fg.Set(x, y, f(x, y))
		}
	}
}

func (fg *FloatGrid)Stats() string {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < len(fg.values); i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}

// ToImg saves a simple grayscale, based on the range of values in the
// grid, gamma scaled so the gray looks normal for human vision.
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for i := 0; i < len(fg.values); i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	if max <= min {
		max = min + 1 // flat grid, render as black
	}

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x := 0; x < fg.Dx(); x++ {
		for y := 0; y < fg.Dy(); y++ {
			v := fg.Get(x+fg.rect.Min.X, y+fg.rect.Min.Y)
			gray := GammaExpand_F64((v - min) / (max - min))
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(title, 20, 20)
	return dc.SavePNG(filename)
}
