package linelist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleInfo = `
tmin: 300
tmax: 3000
databases:
  - name: hitran-h2o
    temperatures: [300, 1000, 2000, 3000]
    isotopes:
      - name: "1H2-16O"
        mass: 18.011
        partition: [174.6, 1120.1, 4599.4, 12862.1]
      - name: "1H2-18O"
        mass: 20.015
        partition: [176.1, 1131.1, 4640.7, 12981.3]
  - name: hitran-co2
    temperatures: [300, 1500, 3000]
    isotopes:
      - name: "12C-16O2"
        mass: 43.99
        partition: [286.9, 3715.4, 21690.0]
`

func writeInfo(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tli.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	li, err := Load(writeInfo(t, sampleInfo))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if li.Tmin != 300 || li.Tmax != 3000 {
		t.Errorf("bounds [%g, %g], want [300, 3000]", li.Tmin, li.Tmax)
	}
	if len(li.Databases) != 2 {
		t.Fatalf("expected 2 databases, got %d", len(li.Databases))
	}
	if li.Isotopes() != 3 {
		t.Errorf("expected 3 isotopes total, got %d", li.Isotopes())
	}
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	li := &Info{Tmin: 500, Tmax: 100}
	if err := li.Validate(); !errors.Is(err, ErrBounds) {
		t.Errorf("expected ErrBounds, got %v", err)
	}
}

func TestValidateRejectsUnorderedTemperatures(t *testing.T) {
	li := &Info{
		Tmin: 100, Tmax: 1000,
		Databases: []Database{{
			Name:         "db",
			Temperatures: []float64{100, 500, 400},
			Isotopes:     []Isotope{{Name: "x", Partition: []float64{1, 2, 3}}},
		}},
	}
	if err := li.Validate(); !errors.Is(err, ErrTemperatureOrder) {
		t.Errorf("expected ErrTemperatureOrder, got %v", err)
	}
}

func TestValidateRejectsMisalignedPartition(t *testing.T) {
	li := &Info{
		Tmin: 100, Tmax: 1000,
		Databases: []Database{{
			Name:         "db",
			Temperatures: []float64{100, 500, 900},
			Isotopes:     []Isotope{{Name: "x", Partition: []float64{1, 2}}},
		}},
	}
	if err := li.Validate(); !errors.Is(err, ErrPartitionMismatch) {
		t.Errorf("expected ErrPartitionMismatch, got %v", err)
	}
}

func TestValidateRejectsEmptyInfo(t *testing.T) {
	li := &Info{Tmin: 100, Tmax: 1000}
	if err := li.Validate(); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}
