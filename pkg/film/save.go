package film

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/mdouchement/hdr/codec/rgbe"

	"github.com/filmgeek/portra/pkg/fimg"
)

// SaveImage encodes by file extension (jpg/png/tif/bmp/gif). The
// buffer is rendered to concrete 16-bit pixels exactly once, here.
func SaveImage(b *fimg.Buffer, filename string) error {
	if err := imaging.Save(b.ToRGBA64(), filename); err != nil {
		return fmt.Errorf("save '%s': %v", filename, err)
	}
	return nil
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteHDR dumps a working buffer as a Radiance RGBE file, unclamped.
// Debug only - lets you inspect intermediate float pixels in an HDR
// viewer before the final clamp throws range away.
func WriteHDR(b *fimg.Buffer, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := rgbe.Encode(writer, b); err != nil {
			return fmt.Errorf("encoding RGBE '%s': %v", filename, err)
		}
		return nil
	}
}
