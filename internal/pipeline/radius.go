package pipeline

import (
	"fmt"

	"github.com/exosim-labs/transpec/internal/sampling"
	"github.com/exosim-labs/transpec/internal/spline"
)

// BuildRadius derives the radius grid from the atmosphere's native grid and
// projects every atmospheric profile onto it. A single-layer atmosphere
// copies its one point whatever the policy; RadiusNative copies the native
// grid; RadiusResample runs the hinted constructor against it. Re-running
// releases the previous grid and profiles first.
func (p *Pipeline) BuildRadius() error {
	if p.atm == nil {
		return fmt.Errorf("%w: atmosphere model not loaded", ErrNotReady)
	}
	if p.line == nil {
		return fmt.Errorf("%w: line-list info not loaded", ErrNotReady)
	}

	if p.Ready.Radius {
		p.Radius = nil
		p.Profiles = nil
		p.Ready.Radius = false
	}

	ref := sampling.Spec{
		Initial: p.atm.Radius[0],
		Final:   p.atm.Radius[p.atm.Layers()-1],
		Factor:  p.atm.RadiusFactor,
		Values:  p.atm.Radius,
	}

	switch {
	case p.atm.Layers() == 1:
		p.Radius = copyReference(ref)
	case p.hints.RadiusPolicy == RadiusNative:
		p.Radius = copyReference(ref)
	default:
		hint := p.hints.Radius
		if hint.Oversample <= 0 {
			// Radius grids are never oversampled downstream.
			hint.Oversample = 1
		}
		g, flags, err := sampling.New(hint, ref)
		if err != nil {
			return fmt.Errorf("pipeline: radius grid: %w", err)
		}
		p.Radius = g
		p.noteFlags("radius", g, flags)
	}

	if err := p.projectProfiles(); err != nil {
		p.Radius = nil
		return err
	}
	p.Ready.Radius = true
	return nil
}

// copyReference materializes a reference spec as a verbatim grid, the
// explicit-array shape with zero spacing and oversample.
func copyReference(ref sampling.Spec) *sampling.Grid {
	return &sampling.Grid{
		Initial: ref.Initial,
		Final:   ref.Final,
		Factor:  ref.Factor,
		Values:  append([]float64(nil), ref.Values...),
	}
}

// projectProfiles moves temperature, pressure, mean molar mass, and the
// per-molecule profiles from the atmosphere's radius axis onto the built
// grid, checks the projected temperatures against the line-list bounds,
// then evaluates each isotope's partition function at those temperatures.
func (p *Pipeline) projectProfiles() error {
	src := p.atm.Radius
	dst := p.Radius.Values

	prof := &Profiles{
		TemperatureFactor: p.atm.TemperatureFactor,
		PressureFactor:    p.atm.PressureFactor,
	}

	if len(src) == 1 {
		prof.Temperature = append([]float64(nil), p.atm.Temperature...)
		prof.Pressure = append([]float64(nil), p.atm.Pressure...)
		prof.MeanMolarMass = append([]float64(nil), p.atm.MeanMolarMass...)
		for _, mol := range p.atm.Molecules {
			prof.Molecules = append(prof.Molecules, MoleculeProfile{
				Name:      mol.Name,
				Mass:      mol.Mass,
				Density:   append([]float64(nil), mol.Density...),
				Abundance: append([]float64(nil), mol.Abundance...),
			})
		}
		if err := p.checkTemperatureBounds(prof); err != nil {
			return err
		}
	} else {
		for _, proj := range []struct {
			name string
			src  []float64
			dst  *[]float64
		}{
			{"temperature", p.atm.Temperature, &prof.Temperature},
			{"pressure", p.atm.Pressure, &prof.Pressure},
			{"mean molar mass", p.atm.MeanMolarMass, &prof.MeanMolarMass},
		} {
			s, err := spline.Fit(src, proj.src)
			if err != nil {
				return fmt.Errorf("pipeline: fit %s profile: %w", proj.name, err)
			}
			*proj.dst = s.Project(dst)
		}
		if err := p.checkTemperatureBounds(prof); err != nil {
			return err
		}
		for _, mol := range p.atm.Molecules {
			mp := MoleculeProfile{Name: mol.Name, Mass: mol.Mass}
			s, err := spline.Fit(src, mol.Density)
			if err != nil {
				return fmt.Errorf("pipeline: fit %s density: %w", mol.Name, err)
			}
			mp.Density = s.Project(dst)
			s, err = spline.Fit(src, mol.Abundance)
			if err != nil {
				return fmt.Errorf("pipeline: fit %s abundance: %w", mol.Name, err)
			}
			mp.Abundance = s.Project(dst)
			prof.Molecules = append(prof.Molecules, mp)
		}
	}

	if err := p.evalPartitions(prof); err != nil {
		return err
	}
	p.Profiles = prof
	return nil
}

// checkTemperatureBounds validates every projected layer temperature, in
// Kelvin, against the line list's tabulated range. Interpolating line data
// outside that range is undefined, so violations are fatal.
func (p *Pipeline) checkTemperatureBounds(prof *Profiles) error {
	for i, t := range prof.Temperature {
		tk := t * prof.TemperatureFactor
		if tk < p.line.Tmin {
			return fmt.Errorf("%w: layer %d at %.1f K below minimum %.1f K",
				ErrTemperatureRange, i, tk, p.line.Tmin)
		}
		if tk > p.line.Tmax {
			return fmt.Errorf("%w: layer %d at %.1f K above maximum %.1f K",
				ErrTemperatureRange, i, tk, p.line.Tmax)
		}
	}
	return nil
}

// evalPartitions interpolates every isotope's partition function over its
// database's temperature axis at each projected layer temperature. The
// projected temperatures need not be monotonic in radius, so this uses
// single-point queries rather than a batch projection.
func (p *Pipeline) evalPartitions(prof *Profiles) error {
	for _, db := range p.line.Databases {
		for _, iso := range db.Isotopes {
			s, err := spline.Fit(db.Temperatures, iso.Partition)
			if err != nil {
				return fmt.Errorf("pipeline: fit partition of %s/%s: %w", db.Name, iso.Name, err)
			}
			vals := make([]float64, len(prof.Temperature))
			for i, t := range prof.Temperature {
				vals[i] = s.At(t * prof.TemperatureFactor)
			}
			prof.Partition = append(prof.Partition, PartitionProfile{
				Database: db.Name,
				Isotope:  iso.Name,
				Values:   vals,
			})
		}
	}
	return nil
}
