package atmosphere

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const sampleModel = `
radius_units: km
temperature_units: K
pressure_units: bar
radius: [6000, 6100, 6200, 6300]
temperature: [1500, 1300, 1100, 900]
pressure: [100, 10, 1, 0.1]
molecules:
  - name: H2
    mass: 2.016
    density: [1.0e-3, 1.0e-4, 1.0e-5, 1.0e-6]
    abundance: [0.85, 0.85, 0.85, 0.85]
  - name: He
    mass: 4.003
    density: [3.0e-4, 3.0e-5, 3.0e-6, 3.0e-7]
    abundance: [0.15, 0.15, 0.15, 0.15]
`

func writeModel(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atm.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	m, err := Load(writeModel(t, sampleModel))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.Layers() != 4 {
		t.Errorf("expected 4 layers, got %d", m.Layers())
	}
	if m.RadiusFactor != 1e5 {
		t.Errorf("expected radius factor 1e5 (km), got %g", m.RadiusFactor)
	}
	if m.PressureFactor != 1e6 {
		t.Errorf("expected pressure factor 1e6 (bar), got %g", m.PressureFactor)
	}
	if len(m.Molecules) != 2 {
		t.Fatalf("expected 2 molecules, got %d", len(m.Molecules))
	}
}

func TestLoadComputesMeanMolarMass(t *testing.T) {
	m, err := Load(writeModel(t, sampleModel))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := 0.85*2.016 + 0.15*4.003
	for i, got := range m.MeanMolarMass {
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("layer %d: mean molar mass %g, want %g", i, got, want)
		}
	}
}

func TestValidateRejectsMismatchedLayers(t *testing.T) {
	m := &Model{
		Radius:      []float64{1, 2, 3},
		Temperature: []float64{100, 200},
		Pressure:    []float64{1, 2, 3},
		Molecules: []Molecule{{
			Name: "H2O", Mass: 18,
			Density:   []float64{1, 1, 1},
			Abundance: []float64{1, 1, 1},
		}},
	}
	if err := m.Validate(); !errors.Is(err, ErrLayerMismatch) {
		t.Errorf("expected ErrLayerMismatch, got %v", err)
	}
}

func TestValidateRejectsUnorderedRadius(t *testing.T) {
	m := &Model{
		Radius:      []float64{1, 3, 2},
		Temperature: []float64{100, 200, 300},
		Pressure:    []float64{1, 2, 3},
		Molecules: []Molecule{{
			Name: "H2O", Mass: 18,
			Density:   []float64{1, 1, 1},
			Abundance: []float64{1, 1, 1},
		}},
	}
	if err := m.Validate(); !errors.Is(err, ErrRadiusOrder) {
		t.Errorf("expected ErrRadiusOrder, got %v", err)
	}
}

func TestValidateRejectsEmptyModel(t *testing.T) {
	if err := (&Model{}).Validate(); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestValidateKeepsExplicitMeanMolarMass(t *testing.T) {
	m := &Model{
		Radius:        []float64{1, 2},
		Temperature:   []float64{100, 200},
		Pressure:      []float64{1, 2},
		MeanMolarMass: []float64{2.3, 2.4},
		Molecules: []Molecule{{
			Name: "H2", Mass: 2.016,
			Density:   []float64{1, 1},
			Abundance: []float64{1, 1},
		}},
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if m.MeanMolarMass[0] != 2.3 {
		t.Errorf("explicit mean molar mass overwritten: %g", m.MeanMolarMass[0])
	}
}
