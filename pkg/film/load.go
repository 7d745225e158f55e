package film

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	// Registers the Radiance .hdr format with image.Decode.
	_ "github.com/mdouchement/hdr/codec/rgbe"

	"github.com/filmgeek/portra/pkg/fcolor"
	"github.com/filmgeek/portra/pkg/fimg"
)

// A Capture is one decoded photograph plus the exposure metadata the
// camera reported. The pipeline only consumes the pixels; the
// metadata is pass-through for logging and the storage side.
type Capture struct {
	Filename     string
	Image        image.Image

	ISO          int64
	ExposureBias float64 // EV, clamped into the configured range
	HasExif      bool
}

func (c Capture)String() string {
	if !c.HasExif {
		return fmt.Sprintf("%s: %v, no exif", filepath.Base(c.Filename), c.Image.Bounds())
	}
	return fmt.Sprintf("%s: %v, ISO %d, bias %+.1f EV",
		filepath.Base(c.Filename), c.Image.Bounds(), c.ISO, c.ExposureBias)
}

// Buffer samples the capture into the pipeline's working space.
func (c *Capture)Buffer(space string) *fimg.Buffer {
	return fimg.FromImage(c.Image, fimg.ColorSpace(space))
}

// LoadCapture decodes one photograph. JPEG, PNG, 16-bit TIFF and
// Radiance HDR are understood. Missing or broken EXIF is not an
// error - plenty of capture paths strip it - the capture just carries
// no metadata.
func (p *Pipeline)LoadCapture(filename string) (*Capture, error) {
	c := &Capture{Filename: filename}

	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer reader.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		c.Image, err = jpeg.Decode(reader)
	case ".png":
		c.Image, err = png.Decode(reader)
	case ".tif", ".tiff":
		c.Image, err = tiff.Decode(reader)
	case ".hdr":
		c.Image, _, err = image.Decode(reader)
	default:
		return nil, fmt.Errorf("load '%s': unsupported extension", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("decode '%s': %v", filename, err)
	}

	p.readExif(c)
	return c, nil
}

// readExif pulls ISO and exposure bias out of the file, when present.
// The bias is a device parameter we only pass through, clamped to the
// configured range when the device gives us something silly.
func (p *Pipeline)readExif(c *Capture) {
	reader, err := os.Open(c.Filename)
	if err != nil {
		return
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		if p.Verbosity > 0 {
			log.Printf("no exif in '%s': %v", c.Filename, err)
		}
		return
	}
	c.HasExif = true

	if tag, err := ex.Get(exif.ISOSpeedRatings); err == nil {
		if val, err := tag.Int64(0); err == nil {
			c.ISO = val
		}
	}

	if tag, err := ex.Get(exif.ExposureBiasValue); err == nil {
		if num, denom, err := tag.Rat2(0); err == nil && denom != 0 {
			c.ExposureBias = fcolor.ClampF(float64(num)/float64(denom),
				p.ExposureBiasMin, p.ExposureBiasMax)
		}
	}
}
