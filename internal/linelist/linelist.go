// Package linelist holds the line-list metadata the radius builder needs:
// valid temperature bounds and the per-database partition-function tables.
package linelist

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrBounds indicates tmin/tmax that do not bracket a valid range.
	ErrBounds = errors.New("linelist: tmin must be below tmax")

	// ErrEmpty indicates an info record without databases or isotopes.
	ErrEmpty = errors.New("linelist: needs at least one database with one isotope")

	// ErrTemperatureOrder indicates a tabulated temperature axis out of order.
	ErrTemperatureOrder = errors.New("linelist: tabulated temperatures must be strictly ascending")

	// ErrPartitionMismatch indicates a partition table misaligned with its
	// temperature axis.
	ErrPartitionMismatch = errors.New("linelist: partition length differs from temperature axis")
)

// Isotope is one isotopologue with its partition function tabulated on the
// owning database's temperature axis.
type Isotope struct {
	Name      string    `yaml:"name"`
	Mass      float64   `yaml:"mass"`
	Partition []float64 `yaml:"partition"`
}

// Database groups the isotopes sharing one tabulated temperature axis.
type Database struct {
	Name         string    `yaml:"name"`
	Temperatures []float64 `yaml:"temperatures"`
	Isotopes     []Isotope `yaml:"isotopes"`
}

// Info is the line-list metadata consumed by the grid pipeline.
type Info struct {
	Tmin      float64    `yaml:"tmin"`
	Tmax      float64    `yaml:"tmax"`
	Databases []Database `yaml:"databases"`
}

// Load reads and validates line-list metadata from a YAML file.
func Load(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var li Info
	if err := yaml.Unmarshal(data, &li); err != nil {
		return nil, fmt.Errorf("linelist: parse %s: %w", path, err)
	}
	if err := li.Validate(); err != nil {
		return nil, fmt.Errorf("linelist: %s: %w", path, err)
	}
	return &li, nil
}

// Isotopes returns the total isotope count across all databases.
func (li *Info) Isotopes() int {
	n := 0
	for _, db := range li.Databases {
		n += len(db.Isotopes)
	}
	return n
}

// Validate checks the temperature bounds, each database's temperature axis,
// and the alignment of every partition table.
func (li *Info) Validate() error {
	if li.Tmin >= li.Tmax {
		return fmt.Errorf("%w: tmin %g, tmax %g", ErrBounds, li.Tmin, li.Tmax)
	}
	if len(li.Databases) == 0 {
		return ErrEmpty
	}
	for _, db := range li.Databases {
		if len(db.Isotopes) == 0 {
			return fmt.Errorf("%w: database %s", ErrEmpty, db.Name)
		}
		if len(db.Temperatures) < 2 {
			return fmt.Errorf("%w: database %s has %d tabulated temperatures",
				ErrTemperatureOrder, db.Name, len(db.Temperatures))
		}
		for i := 1; i < len(db.Temperatures); i++ {
			if db.Temperatures[i] <= db.Temperatures[i-1] {
				return fmt.Errorf("%w: database %s at index %d",
					ErrTemperatureOrder, db.Name, i)
			}
		}
		for _, iso := range db.Isotopes {
			if len(iso.Partition) != len(db.Temperatures) {
				return fmt.Errorf("%w: database %s isotope %s (%d vs %d)",
					ErrPartitionMismatch, db.Name, iso.Name,
					len(iso.Partition), len(db.Temperatures))
			}
		}
	}
	return nil
}
