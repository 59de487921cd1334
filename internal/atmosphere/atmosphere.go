// Package atmosphere holds the layered atmosphere model whose native radius
// grid and per-layer profiles feed the radius-grid builder.
package atmosphere

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/exosim-labs/transpec/internal/units"
)

var (
	// ErrEmpty indicates a model with no layers or no molecules.
	ErrEmpty = errors.New("atmosphere: model needs at least one layer and one molecule")

	// ErrLayerMismatch indicates per-layer arrays of differing lengths.
	ErrLayerMismatch = errors.New("atmosphere: per-layer array lengths differ")

	// ErrRadiusOrder indicates radii out of strictly ascending order.
	ErrRadiusOrder = errors.New("atmosphere: radii must be strictly ascending")
)

// Molecule is one atmospheric species with per-layer profiles.
type Molecule struct {
	Name      string    `yaml:"name"`
	Mass      float64   `yaml:"mass"` // g/mol
	Density   []float64 `yaml:"density"`
	Abundance []float64 `yaml:"abundance"`
}

// Model is a layered atmosphere. All per-layer arrays are indexed by the
// radius axis, innermost layer first.
type Model struct {
	RadiusUnits      string `yaml:"radius_units"`
	TemperatureUnits string `yaml:"temperature_units"`
	PressureUnits    string `yaml:"pressure_units"`

	Radius        []float64  `yaml:"radius"`
	Temperature   []float64  `yaml:"temperature"`
	Pressure      []float64  `yaml:"pressure"`
	MeanMolarMass []float64  `yaml:"mean_molar_mass,omitempty"`
	Molecules     []Molecule `yaml:"molecules"`

	// Conversion factors resolved from the unit names during validation.
	RadiusFactor      float64 `yaml:"-"`
	TemperatureFactor float64 `yaml:"-"`
	PressureFactor    float64 `yaml:"-"`
}

// Load reads and validates an atmosphere model from a YAML file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("atmosphere: parse %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("atmosphere: %s: %w", path, err)
	}
	return &m, nil
}

// Layers returns the number of atmospheric layers.
func (m *Model) Layers() int { return len(m.Radius) }

// Validate checks array alignment and radius ordering, resolves unit
// factors, and fills the mean molar mass from the abundances when the file
// does not carry it.
func (m *Model) Validate() error {
	n := len(m.Radius)
	if n == 0 || len(m.Molecules) == 0 {
		return ErrEmpty
	}
	if len(m.Temperature) != n || len(m.Pressure) != n {
		return fmt.Errorf("%w: %d radii, %d temperatures, %d pressures",
			ErrLayerMismatch, n, len(m.Temperature), len(m.Pressure))
	}
	if len(m.MeanMolarMass) != 0 && len(m.MeanMolarMass) != n {
		return fmt.Errorf("%w: %d radii, %d mean molar masses",
			ErrLayerMismatch, n, len(m.MeanMolarMass))
	}
	for _, mol := range m.Molecules {
		if len(mol.Density) != n || len(mol.Abundance) != n {
			return fmt.Errorf("%w: molecule %s has %d densities, %d abundances over %d layers",
				ErrLayerMismatch, mol.Name, len(mol.Density), len(mol.Abundance), n)
		}
	}
	for i := 1; i < n; i++ {
		if m.Radius[i] <= m.Radius[i-1] {
			return fmt.Errorf("%w: radius[%d]=%g, radius[%d]=%g",
				ErrRadiusOrder, i-1, m.Radius[i-1], i, m.Radius[i])
		}
	}

	var err error
	if m.RadiusFactor, err = units.Factor(m.RadiusUnits); err != nil {
		return err
	}
	if m.TemperatureFactor, err = units.Factor(m.TemperatureUnits); err != nil {
		return err
	}
	if m.PressureFactor, err = units.Factor(m.PressureUnits); err != nil {
		return err
	}

	if len(m.MeanMolarMass) == 0 {
		m.MeanMolarMass = m.computeMeanMolarMass()
	}
	return nil
}

// computeMeanMolarMass derives the per-layer mean molar mass as the
// abundance-weighted sum of the molecular masses.
func (m *Model) computeMeanMolarMass() []float64 {
	masses := make([]float64, len(m.Molecules))
	for j, mol := range m.Molecules {
		masses[j] = mol.Mass
	}

	mm := make([]float64, m.Layers())
	row := make([]float64, len(m.Molecules))
	for i := range mm {
		for j, mol := range m.Molecules {
			row[j] = mol.Abundance[i]
		}
		mm[i] = floats.Dot(row, masses)
	}
	return mm
}
