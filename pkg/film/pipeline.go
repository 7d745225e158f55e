// Package film orchestrates the Portra 400 emulation pipeline: tone
// curve, 3-D LUT, highlight desaturation, grain - in that order,
// always. Grain has to come last so it isn't itself desaturated or
// curve-shaped, and the LUT has to see filmic-curved values because
// the cube was authored against that range.
package film

import (
	"fmt"
	"image"
	"log"

	"github.com/filmgeek/portra/pkg/fimg"
	"github.com/filmgeek/portra/pkg/grain"
	"github.com/filmgeek/portra/pkg/lut"
	"github.com/filmgeek/portra/pkg/tone"
)

// A Pipeline is one configured film-emulation instance. All of its
// state (curve knots, LUT table) is immutable after NewPipeline, so
// concurrent Process calls on distinct pipelines are independent;
// within one pipeline, callers get at most whatever concurrency they
// arrange themselves - Process has no internal suspension points.
type Pipeline struct {
	Config

	curve *tone.Curve
	cube  *lut.Cube
	grain *grain.Synthesizer
}

// NewPipeline builds the curve and cube up front. Any failure here is
// a configuration error and fatal to the pipeline; nothing is
// deferred to capture time except the per-capture grain field.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	curve, err := tone.NewFilmicCurve()
	if err != nil {
		return nil, fmt.Errorf("pipeline: tone curve: %v", err)
	}

	cube, err := lut.Shared(cfg.LUTDimension)
	if err != nil {
		return nil, fmt.Errorf("pipeline: lut: %v", err)
	}

	return &Pipeline{
		Config: cfg,
		curve:  curve,
		cube:   cube,
		grain:  grain.New(cfg.GrainIntensity, cfg.GrainBlendStrength),
	}, nil
}

// Process transforms one decoded capture into the film-emulated
// output: same extent, same working space, channels clamped to [0,1].
// Tone curve and LUT are structural - if they can't run, the capture
// is lost and the caller gets an error. Highlight desaturation and
// grain are cosmetic and fail soft inside their own stages.
func (p *Pipeline)Process(img *fimg.Buffer) (*fimg.Buffer, error) {
	if img == nil || img.Rect.Empty() {
		return nil, fmt.Errorf("process: no image to process")
	}
	if p.curve == nil || p.cube == nil {
		return nil, fmt.Errorf("process: pipeline not initialized")
	}

	if p.Verbosity > 0 {
		log.Printf("Processing %dx%d capture (%s)", img.Rect.Dx(), img.Rect.Dy(), img.Space)
	}

	out := p.curve.Apply(img)
	out = p.cube.Apply(out)
	out = p.desaturateHighlights(out)
	out = p.grain.Apply(out)

	// Cosmetic stages may have handed back their input; never clamp
	// the caller's buffer in place.
	if out == img {
		out = img.Clone()
	}
	out.ClampInPlace()

	if out.Rect != img.Rect {
		return nil, fmt.Errorf("process: extent changed %v -> %v", img.Rect, out.Rect)
	}
	return out, nil
}

// GrainField exposes a freshly generated grain plane for an extent,
// for debug dumps. Each call draws new noise, same as a capture.
func (p *Pipeline)GrainField(r image.Rectangle) *fimg.FloatGrid {
	return p.grain.Field(r)
}
