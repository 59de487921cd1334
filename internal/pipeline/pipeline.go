// Package pipeline assembles the derived sampling grids (wavenumber, radius,
// impact parameter, temperature) from caller hints, an atmosphere model, and
// line-list metadata, and projects the atmospheric profiles onto the built
// radius grid.
package pipeline

import (
	"fmt"

	"github.com/exosim-labs/transpec/internal/atmosphere"
	"github.com/exosim-labs/transpec/internal/linelist"
	"github.com/exosim-labs/transpec/internal/sampling"
)

// RadiusPolicy selects how the radius grid is derived from the atmosphere's
// native grid. A single-layer atmosphere always copies its one point,
// whatever the policy.
type RadiusPolicy int

const (
	// RadiusResample builds a fresh grid from the radius hint against the
	// atmosphere's native grid as reference.
	RadiusResample RadiusPolicy = iota
	// RadiusNative keeps the atmosphere's native grid verbatim.
	RadiusNative
)

// Hints carries the caller's sampling requests. Zero fields are unset and
// fall back per the grid-constructor rules.
type Hints struct {
	Wavenumber   sampling.Spec
	Wavelength   sampling.Spec // inverse fallback for wavenumber bounds
	Radius       sampling.Spec
	RadiusPolicy RadiusPolicy
	Impact       sampling.Spec
	Temperature  sampling.Spec
}

// Readiness gates the builder order: the impact-parameter builder needs the
// radius grid, and downstream physics stages consume these booleans instead
// of a process-wide bitmask.
type Readiness struct {
	Wavenumber  bool
	Radius      bool
	Impact      bool
	Temperature bool
}

// MoleculeProfile is one species' profiles projected onto the radius grid.
type MoleculeProfile struct {
	Name      string
	Mass      float64
	Density   []float64
	Abundance []float64
}

// PartitionProfile is one isotope's partition function evaluated at the
// projected temperature of every radius-grid layer.
type PartitionProfile struct {
	Database string
	Isotope  string
	Values   []float64
}

// Profiles holds every atmospheric quantity projected onto the radius grid.
// All arrays are aligned to the grid's Values.
type Profiles struct {
	TemperatureFactor float64
	PressureFactor    float64

	Temperature   []float64
	Pressure      []float64
	MeanMolarMass []float64
	Molecules     []MoleculeProfile
	Partition     []PartitionProfile
}

// Pipeline owns the built grids, the projected profiles, and the warnings
// accumulated along the way. It is not safe for concurrent use.
type Pipeline struct {
	hints Hints
	atm   *atmosphere.Model
	line  *linelist.Info

	Wavenumber     *sampling.Grid // oversample 1
	WavenumberOver *sampling.Grid
	OversampleDivs []int
	Radius         *sampling.Grid
	Impact         *sampling.Grid
	Temperature    *sampling.Grid
	Profiles       *Profiles

	Ready    Readiness
	Warnings []string
}

// New returns a pipeline over the given hints and collaborators. atm and
// line may be nil when only the wavenumber or temperature builders run.
func New(hints Hints, atm *atmosphere.Model, line *linelist.Info) *Pipeline {
	return &Pipeline{hints: hints, atm: atm, line: line}
}

// BuildAll runs every builder in dependency order and stops at the first
// failure.
func (p *Pipeline) BuildAll() error {
	if err := p.BuildWavenumber(); err != nil {
		return err
	}
	if err := p.BuildRadius(); err != nil {
		return err
	}
	if err := p.BuildImpact(); err != nil {
		return err
	}
	return p.BuildTemperature()
}

func (p *Pipeline) warnf(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

// noteFlags turns a construction's informational flags into warnings.
// Boundary defaulting alone is expected fallback behavior and stays silent.
func (p *Pipeline) noteFlags(name string, g *sampling.Grid, flags sampling.Flags) {
	if flags&sampling.FlagCopiedValues != 0 &&
		flags&(sampling.FlagInitialFromRef|sampling.FlagFinalFromRef) != 0 {
		p.warnf("%s sampling: reference array of %d values copied verbatim, "+
			"boundary values defaulted from the reference may not match it", name, g.Len())
	}
	if flags&sampling.FlagOversampleIgnored != 0 {
		p.warnf("%s sampling: fixed reference array used, reference oversample ignored", name)
	}
	if flags&sampling.FlagShortFinal != 0 {
		p.warnf("%s sampling: final sampled value %g of %d points does not coincide "+
			"exactly with requested value %g (spacing %g)",
			name, g.Values[g.Len()-1], g.Len(), g.Final, g.Spacing)
	}
}
