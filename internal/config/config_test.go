package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exosim-labs/transpec/internal/pipeline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Wavelength.Initial <= 0 || cfg.Wavelength.Final <= cfg.Wavelength.Initial {
		t.Errorf("wavelength band should be positive and ordered, got %g..%g",
			cfg.Wavelength.Initial, cfg.Wavelength.Final)
	}
	if cfg.Wavenumber.Spacing <= 0 {
		t.Error("wavenumber spacing should be positive")
	}
	if cfg.Wavenumber.Oversample <= 0 {
		t.Error("oversample should be positive")
	}
	if cfg.Radius.Policy != PolicyResample {
		t.Errorf("expected policy %s, got %s", PolicyResample, cfg.Radius.Policy)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := []byte("name: override\nwavenumber:\n  spacing: 0.5\n  oversample: 20\n  units: cm-1\n")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "override" {
		t.Errorf("expected name override, got %s", cfg.Name)
	}
	if cfg.Wavenumber.Spacing != 0.5 {
		t.Errorf("expected spacing 0.5, got %g", cfg.Wavenumber.Spacing)
	}
	if cfg.Temperature.Final != DefaultTemperatureFinal {
		t.Errorf("expected default temperature final, got %g", cfg.Temperature.Final)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Name = "roundtrip"
	cfg.Radius.Policy = PolicyNative

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "roundtrip" {
		t.Errorf("expected name roundtrip, got %s", got.Name)
	}
	if got.Radius.Policy != PolicyNative {
		t.Errorf("expected policy %s, got %s", PolicyNative, got.Radius.Policy)
	}
}

func TestHints(t *testing.T) {
	h, err := DefaultConfig().Hints()
	if err != nil {
		t.Fatal(err)
	}
	if h.Wavelength.Factor != 1e-4 {
		t.Errorf("expected micron factor 1e-4, got %g", h.Wavelength.Factor)
	}
	if h.Wavenumber.Factor != 1 {
		t.Errorf("expected wavenumber factor 1, got %g", h.Wavenumber.Factor)
	}
	if h.Radius.Factor != 0 {
		t.Errorf("unitless radius should defer to the atmosphere, got factor %g", h.Radius.Factor)
	}
	if h.RadiusPolicy != pipeline.RadiusResample {
		t.Errorf("expected resample policy, got %v", h.RadiusPolicy)
	}
}

func TestHintsNativePolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius.Policy = PolicyNative
	h, err := cfg.Hints()
	if err != nil {
		t.Fatal(err)
	}
	if h.RadiusPolicy != pipeline.RadiusNative {
		t.Errorf("expected native policy, got %v", h.RadiusPolicy)
	}
}

func TestHintsBadUnits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius.Units = "furlong"
	if _, err := cfg.Hints(); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestHintsBadPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius.Policy = "verbatim"
	if _, err := cfg.Hints(); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("hot-jupiter", "survey")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Wavelength.Final != 5.0 {
		t.Errorf("expected wavelength final 5.0, got %f", cfg.Wavelength.Final)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("hot-jupiter", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "survey")
	if cfg != nil {
		t.Error("expected nil for nonexistent target")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("hot-jupiter")
	if len(presets) == 0 {
		t.Error("expected presets for hot-jupiter")
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent target")
	}
}

func TestPresetsConvertToHints(t *testing.T) {
	for target, variants := range Presets {
		for name, cfg := range variants {
			if _, err := cfg.Hints(); err != nil {
				t.Errorf("preset %s/%s: %v", target, name, err)
			}
		}
	}
}
