// Package units maps unit names from configuration and atmosphere files to
// multiplicative conversion factors into cgs.
package units

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknown indicates a unit name with no registered cgs factor.
var ErrUnknown = errors.New("units: unknown unit")

// Unit name constants.
const (
	Cm         = "cm"
	Meter      = "m"
	Km         = "km"
	Micron     = "um"
	Nm         = "nm"
	Angstrom   = "A"
	Wavenumber = "cm-1"
	Kelvin     = "K"
	Barye      = "barye"
	Millibar   = "mbar"
	Bar        = "bar"
	Atmosphere = "atm"
	Pascal     = "Pa"
)

var factors = map[string]float64{
	Cm:         1.0,
	Meter:      1e2,
	Km:         1e5,
	Micron:     1e-4,
	Nm:         1e-7,
	Angstrom:   1e-8,
	Wavenumber: 1.0,
	Kelvin:     1.0,
	Barye:      1.0,
	Millibar:   1e3,
	Bar:        1e6,
	Atmosphere: 1.01325e6,
	Pascal:     10.0,
}

// Factor returns the multiplicative conversion from the named unit to cgs.
// An empty name means "already cgs" and converts with factor 1.
func Factor(name string) (float64, error) {
	if name == "" {
		return 1.0, nil
	}
	f, ok := factors[name]
	if !ok {
		return 0, fmt.Errorf("%w %q (valid: %s)", ErrUnknown, name, ValidNames())
	}
	return f, nil
}

// IsValid checks whether the given unit name has a registered factor.
func IsValid(name string) bool {
	_, ok := factors[name]
	return ok
}

// ValidNames returns a comma-separated list of known unit names for error
// messages.
func ValidNames() string {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
