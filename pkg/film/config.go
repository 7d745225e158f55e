package film

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// Config carries the pipeline's tuning knobs. The defaults are the
// Portra 400 recipe; a yaml file or CLI flags can override them.
type Config struct {
	Verbosity          int

	WorkingSpace       string  // color space tag carried through the pipeline

	LUTDimension       int     // side length of the 3-D color cube
	GrainIntensity     float64 // noise perturbation scale
	GrainBlendStrength float64 // overlay attenuation factor
	HighlightFloor     float64 // luminance where desaturation starts
	HighlightCeil      float64 // luminance where desaturation is full
	DesaturationFactor float64 // fraction of saturation retained in highlights

	// Exposure bias is a pass-through hardware parameter, not a pixel
	// operation. These bound what we accept when the capture device
	// doesn't report its own range.
	ExposureBiasMin    float64
	ExposureBiasMax    float64
}

func NewConfig() Config {
	return Config{
		WorkingSpace:       "display-p3",
		LUTDimension:       64,
		GrainIntensity:     0.04,
		GrainBlendStrength: 0.3,
		HighlightFloor:     0.7,
		HighlightCeil:      1.0,
		DesaturationFactor: 0.7,
		ExposureBiasMin:    -3.0,
		ExposureBiasMax:    3.0,
	}
}

// LoadConfig reads a yaml config file over the defaults.
func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("config read '%s': %v", filename, err)
	}
	return newConfigFromYaml(contents)
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate catches configuration errors before any capture is
// attempted; a pipeline is never built from a bad config.
func (c Config)Validate() error {
	if c.LUTDimension <= 1 {
		return fmt.Errorf("config: LUT dimension %d invalid, need >= 2", c.LUTDimension)
	}
	if c.HighlightFloor < 0 || c.HighlightCeil > 1 || c.HighlightFloor >= c.HighlightCeil {
		return fmt.Errorf("config: highlight band [%f,%f] invalid", c.HighlightFloor, c.HighlightCeil)
	}
	if c.DesaturationFactor < 0 || c.DesaturationFactor > 1 {
		return fmt.Errorf("config: desaturation factor %f outside [0,1]", c.DesaturationFactor)
	}
	if c.GrainIntensity < 0 {
		return fmt.Errorf("config: grain intensity %f negative", c.GrainIntensity)
	}
	if c.GrainBlendStrength < 0 || c.GrainBlendStrength > 1 {
		return fmt.Errorf("config: grain blend strength %f outside [0,1]", c.GrainBlendStrength)
	}
	if c.ExposureBiasMin >= c.ExposureBiasMax {
		return fmt.Errorf("config: exposure bias range [%f,%f] invalid", c.ExposureBiasMin, c.ExposureBiasMax)
	}
	return nil
}
