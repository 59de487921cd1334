package units

import (
	"errors"
	"testing"
)

func TestFactor(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected float64
	}{
		{"centimeter is the cgs base", Cm, 1.0},
		{"meter", Meter, 1e2},
		{"kilometer", Km, 1e5},
		{"micron", Micron, 1e-4},
		{"angstrom", Angstrom, 1e-8},
		{"wavenumber", Wavenumber, 1.0},
		{"kelvin", Kelvin, 1.0},
		{"bar", Bar, 1e6},
		{"empty name means already cgs", "", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Factor(tt.unit)
			if err != nil {
				t.Fatalf("Factor(%q) returned error: %v", tt.unit, err)
			}
			if got != tt.expected {
				t.Errorf("Factor(%q) = %g, want %g", tt.unit, got, tt.expected)
			}
		})
	}
}

func TestFactorUnknown(t *testing.T) {
	_, err := Factor("parsec")
	if !errors.Is(err, ErrUnknown) {
		t.Errorf("Factor(parsec) error = %v, want ErrUnknown", err)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid cm", Cm, true},
		{"valid km", Km, true},
		{"invalid unit", "furlong", false},
		{"empty string", "", false},
		{"case sensitive", "KM", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.unit); got != tt.expected {
				t.Errorf("IsValid(%q) = %v, want %v", tt.unit, got, tt.expected)
			}
		})
	}
}
