package config

var Presets = map[string]map[string]*Config{
	"hot-jupiter": {
		"survey": {
			Name: "hot-jupiter-survey",
			Wavelength: SamplingConfig{Initial: 1.0, Final: 5.0, Units: "um"},
			Wavenumber: SamplingConfig{Spacing: 1.0, Oversample: 100, Units: "cm-1"},
			Radius:     RadiusConfig{Spacing: 50, Units: "km", Policy: PolicyResample},
			Temperature: SamplingConfig{
				Initial: 1000, Final: 3000, Spacing: 100, Units: "K",
			},
		},
		"highres": {
			Name: "hot-jupiter-highres",
			Wavelength: SamplingConfig{Initial: 1.0, Final: 5.0, Units: "um"},
			Wavenumber: SamplingConfig{Spacing: 0.05, Oversample: 2160, Units: "cm-1"},
			Radius:     RadiusConfig{Spacing: 10, Units: "km", Policy: PolicyResample},
			Temperature: SamplingConfig{
				Initial: 1000, Final: 3000, Spacing: 50, Units: "K",
			},
		},
		"native": {
			Name: "hot-jupiter-native",
			Wavelength: SamplingConfig{Initial: 1.0, Final: 5.0, Units: "um"},
			Wavenumber: SamplingConfig{Spacing: 1.0, Oversample: 100, Units: "cm-1"},
			Radius:     RadiusConfig{Policy: PolicyNative},
			Temperature: SamplingConfig{
				Initial: 1000, Final: 3000, Spacing: 100, Units: "K",
			},
		},
	},
	"warm-neptune": {
		"survey": {
			Name: "warm-neptune-survey",
			Wavelength: SamplingConfig{Initial: 1.0, Final: 10.0, Units: "um"},
			Wavenumber: SamplingConfig{Spacing: 0.5, Oversample: 100, Units: "cm-1"},
			Radius:     RadiusConfig{Spacing: 25, Units: "km", Policy: PolicyResample},
			Temperature: SamplingConfig{
				Initial: 400, Final: 1200, Spacing: 50, Units: "K",
			},
		},
		"narrowband": {
			Name: "warm-neptune-narrowband",
			Wavenumber: SamplingConfig{
				Initial: 2850, Final: 3100, Spacing: 0.02, Oversample: 500, Units: "cm-1",
			},
			Radius: RadiusConfig{Spacing: 25, Units: "km", Policy: PolicyResample},
			Temperature: SamplingConfig{
				Initial: 400, Final: 1200, Spacing: 50, Units: "K",
			},
		},
	},
	"terrestrial": {
		"survey": {
			Name: "terrestrial-survey",
			Wavelength: SamplingConfig{Initial: 5.0, Final: 20.0, Units: "um"},
			Wavenumber: SamplingConfig{Spacing: 0.2, Oversample: 100, Units: "cm-1"},
			Radius:     RadiusConfig{Spacing: 2, Units: "km", Policy: PolicyResample},
			Temperature: SamplingConfig{
				Initial: 150, Final: 350, Spacing: 10, Units: "K",
			},
		},
		"native": {
			Name: "terrestrial-native",
			Wavelength: SamplingConfig{Initial: 5.0, Final: 20.0, Units: "um"},
			Wavenumber: SamplingConfig{Spacing: 0.2, Oversample: 100, Units: "cm-1"},
			Radius:     RadiusConfig{Policy: PolicyNative},
			Temperature: SamplingConfig{
				Initial: 150, Final: 350, Spacing: 10, Units: "K",
			},
		},
	},
}

func GetPreset(target, preset string) *Config {
	targetPresets, ok := Presets[target]
	if !ok {
		return nil
	}
	cfg, ok := targetPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(target string) []string {
	targetPresets, ok := Presets[target]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(targetPresets))
	for name := range targetPresets {
		names = append(names, name)
	}
	return names
}
