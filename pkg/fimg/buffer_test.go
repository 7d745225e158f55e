package fimg

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filmgeek/portra/pkg/fcolor"
)

func TestBufferSetGetWithOffsetExtent(t *testing.T) {
	rect := image.Rect(10, 20, 14, 23)
	b := New(rect, DisplayP3)

	want := fcolor.RGBA{R: 0.1, G: 0.2, B: 0.3, A: 0.4}
	b.SetRGBA(12, 21, want)
	require.Equal(t, want, b.RGBAAt(12, 21))
	require.Equal(t, fcolor.RGBA{}, b.RGBAAt(10, 20))
}

func TestFromImageNormalizes(t *testing.T) {
	img := image.NewRGBA64(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA64{R: 0xFFFF, G: 0, B: 0x7FFF, A: 0xFFFF})

	b := FromImage(img, SRGB)
	c := b.RGBAAt(0, 0)
	require.InDelta(t, 1.0, c.R, 1e-9)
	require.InDelta(t, 0.0, c.G, 1e-9)
	require.InDelta(t, 0.5, c.B, 1e-4)
	require.InDelta(t, 1.0, c.A, 1e-9)
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(image.Rect(0, 0, 2, 2), DisplayP3)
	b.SetRGBA(1, 1, fcolor.RGBA{R: 0.5, A: 1})

	c := b.Clone()
	c.SetRGBA(1, 1, fcolor.RGBA{R: 0.9, A: 1})

	require.InDelta(t, 0.5, b.RGBAAt(1, 1).R, 1e-12)
	require.InDelta(t, 0.9, c.RGBAAt(1, 1).R, 1e-12)
}

func TestAtClampsTransientOvershoot(t *testing.T) {
	b := New(image.Rect(0, 0, 1, 1), DisplayP3)
	b.SetRGBA(0, 0, fcolor.RGBA{R: 1.5, G: -0.25, B: 0.5, A: 1})

	got := b.At(0, 0).(color.RGBA64)
	require.Equal(t, uint16(0xFFFF), got.R)
	require.Equal(t, uint16(0), got.G)
}

func TestClampInPlace(t *testing.T) {
	b := New(image.Rect(0, 0, 1, 1), DisplayP3)
	b.SetRGBA(0, 0, fcolor.RGBA{R: 2, G: -1, B: 0.5, A: 1})
	b.ClampInPlace()
	require.Equal(t, fcolor.RGBA{R: 1, G: 0, B: 0.5, A: 1}, b.RGBAAt(0, 0))
}

func TestFloatGridOffsetExtent(t *testing.T) {
	rect := image.Rect(5, 5, 8, 7)
	fg := NewFloatGrid(rect)
	fg.Set(7, 6, 0.25)
	require.InDelta(t, 0.25, fg.Get(7, 6), 1e-12)
	require.Equal(t, rect, fg.Bounds())
	require.NotEmpty(t, fg.Stats())
}

func TestFloatGridFill(t *testing.T) {
	fg := NewFloatGrid(image.Rect(0, 0, 3, 3))
	fg.Fill(func(x, y int) float64 { return float64(x + y) })
	require.InDelta(t, 4.0, fg.Get(2, 2), 1e-12)
}
