package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/exosim-labs/transpec/internal/pipeline"
	"github.com/exosim-labs/transpec/internal/sampling"
	"github.com/exosim-labs/transpec/internal/units"
)

const (
	DefaultWavelengthInitial  = 1.0
	DefaultWavelengthFinal    = 10.0
	DefaultWavenumberSpacing  = 0.1
	DefaultOversample         = 100
	DefaultTemperatureInitial = 500.0
	DefaultTemperatureFinal   = 3000.0
	DefaultTemperatureSpacing = 100.0
)

// Radius policy names accepted in configuration files.
const (
	PolicyResample = "resample"
	PolicyNative   = "native"
)

type Config struct {
	Name        string         `yaml:"name"`
	Atmosphere  string         `yaml:"atmosphere"`
	Linelist    string         `yaml:"linelist"`
	Wavenumber  SamplingConfig `yaml:"wavenumber"`
	Wavelength  SamplingConfig `yaml:"wavelength"`
	Radius      RadiusConfig   `yaml:"radius"`
	Impact      SamplingConfig `yaml:"impact"`
	Temperature SamplingConfig `yaml:"temperature"`
}

type SamplingConfig struct {
	Initial    float64 `yaml:"initial"`
	Final      float64 `yaml:"final"`
	Spacing    float64 `yaml:"spacing"`
	Oversample int     `yaml:"oversample"`
	Units      string  `yaml:"units"`
}

type RadiusConfig struct {
	Initial    float64 `yaml:"initial"`
	Final      float64 `yaml:"final"`
	Spacing    float64 `yaml:"spacing"`
	Oversample int     `yaml:"oversample"`
	Units      string  `yaml:"units"`
	Policy     string  `yaml:"policy"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "run",
		Wavelength: SamplingConfig{
			Initial: DefaultWavelengthInitial,
			Final:   DefaultWavelengthFinal,
			Units:   units.Micron,
		},
		Wavenumber: SamplingConfig{
			Spacing:    DefaultWavenumberSpacing,
			Oversample: DefaultOversample,
			Units:      units.Wavenumber,
		},
		Radius: RadiusConfig{Policy: PolicyResample},
		Temperature: SamplingConfig{
			Initial: DefaultTemperatureInitial,
			Final:   DefaultTemperatureFinal,
			Spacing: DefaultTemperatureSpacing,
			Units:   units.Kelvin,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Hints resolves the configured sections into pipeline hints, converting
// unit names to cgs factors. Radius-like sections with no units defer to
// the atmosphere's factor (zero means unset there); spectral sections with
// no units are already cgs.
func (c *Config) Hints() (pipeline.Hints, error) {
	var h pipeline.Hints
	var err error

	if h.Wavenumber, err = resolveSpec(c.Wavenumber, 1); err != nil {
		return h, err
	}
	if h.Wavelength, err = resolveSpec(c.Wavelength, 1); err != nil {
		return h, err
	}
	rad := SamplingConfig{
		Initial: c.Radius.Initial, Final: c.Radius.Final,
		Spacing: c.Radius.Spacing, Oversample: c.Radius.Oversample,
		Units: c.Radius.Units,
	}
	if h.Radius, err = resolveSpec(rad, 0); err != nil {
		return h, err
	}
	if h.Impact, err = resolveSpec(c.Impact, 0); err != nil {
		return h, err
	}
	if h.Temperature, err = resolveSpec(c.Temperature, 1); err != nil {
		return h, err
	}

	switch c.Radius.Policy {
	case "", PolicyResample:
		h.RadiusPolicy = pipeline.RadiusResample
	case PolicyNative:
		h.RadiusPolicy = pipeline.RadiusNative
	default:
		return h, fmt.Errorf("config: unknown radius policy %q (valid: %s, %s)",
			c.Radius.Policy, PolicyResample, PolicyNative)
	}
	return h, nil
}

func resolveSpec(s SamplingConfig, emptyFactor float64) (sampling.Spec, error) {
	fct := emptyFactor
	if s.Units != "" {
		var err error
		if fct, err = units.Factor(s.Units); err != nil {
			return sampling.Spec{}, err
		}
	}
	return sampling.Spec{
		Initial:    s.Initial,
		Final:      s.Final,
		Spacing:    s.Spacing,
		Oversample: s.Oversample,
		Factor:     fct,
	}, nil
}
