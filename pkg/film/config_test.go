package film

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreThePortraRecipe(t *testing.T) {
	c := NewConfig()
	require.Equal(t, 64, c.LUTDimension)
	require.Equal(t, 0.04, c.GrainIntensity)
	require.Equal(t, 0.3, c.GrainBlendStrength)
	require.Equal(t, 0.7, c.HighlightFloor)
	require.Equal(t, 1.0, c.HighlightCeil)
	require.Equal(t, 0.7, c.DesaturationFactor)
	require.Equal(t, -3.0, c.ExposureBiasMin)
	require.Equal(t, 3.0, c.ExposureBiasMax)
	require.NoError(t, c.Validate())
}

func TestYamlRoundTrip(t *testing.T) {
	c := NewConfig()
	c.LUTDimension = 32
	c.GrainIntensity = 0.08
	c.WorkingSpace = "srgb"

	c2, err := newConfigFromYaml([]byte(c.AsYaml()))
	require.NoError(t, err)
	require.Equal(t, c, c2)
}

func TestYamlPartialOverride(t *testing.T) {
	c, err := newConfigFromYaml([]byte("lutdimension: 17\n"))
	require.NoError(t, err)
	require.Equal(t, 17, c.LUTDimension)
	require.Equal(t, 0.04, c.GrainIntensity, "unspecified keys keep their defaults")
}

func TestValidateCatchesBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"lut dim too small":    func(c *Config) { c.LUTDimension = 1 },
		"highlight band flips": func(c *Config) { c.HighlightFloor = 0.9; c.HighlightCeil = 0.8 },
		"highlight ceil > 1":   func(c *Config) { c.HighlightCeil = 1.2 },
		"desaturation > 1":     func(c *Config) { c.DesaturationFactor = 1.5 },
		"negative grain":       func(c *Config) { c.GrainIntensity = -0.1 },
		"blend strength > 1":   func(c *Config) { c.GrainBlendStrength = 2 },
		"bias range inverted":  func(c *Config) { c.ExposureBiasMin = 3; c.ExposureBiasMax = -3 },
	}

	for name, mutate := range cases {
		c := NewConfig()
		mutate(&c)
		require.Error(t, c.Validate(), name)
	}
}
