package pipeline

import (
	"fmt"

	"github.com/exosim-labs/transpec/internal/sampling"
)

// BuildWavenumber builds the oversampled and plain wavenumber grids over
// one shared range. Boundaries come from the wavenumber hint when set, else
// from inverting the wavelength hint (wavenumber = 1/(wavelength*factor));
// the reference works in cm^-1, so its factor is fixed to 1.
func (p *Pipeline) BuildWavenumber() error {
	wn, wl := p.hints.Wavenumber, p.hints.Wavelength
	var ref sampling.Spec

	switch {
	case wn.Initial > 0:
		if wn.Factor <= 0 {
			return fmt.Errorf("%w: wavenumber factor %g", ErrNonPositiveFactor, wn.Factor)
		}
		ref.Initial = wn.Initial * wn.Factor
	case wl.Final > 0:
		if wl.Factor <= 0 {
			return fmt.Errorf("%w: wavelength factor %g", ErrNonPositiveFactor, wl.Factor)
		}
		ref.Initial = 1.0 / (wl.Final * wl.Factor)
	default:
		return fmt.Errorf("%w: neither initial wavenumber nor final wavelength set", ErrWavenumberBounds)
	}

	switch {
	case wn.Final > 0:
		if wn.Factor <= 0 {
			return fmt.Errorf("%w: wavenumber factor %g", ErrNonPositiveFactor, wn.Factor)
		}
		ref.Final = wn.Final * wn.Factor
	case wl.Initial > 0:
		if wl.Factor <= 0 {
			return fmt.Errorf("%w: wavelength factor %g", ErrNonPositiveFactor, wl.Factor)
		}
		ref.Final = 1.0 / (wl.Initial * wl.Factor)
	default:
		return fmt.Errorf("%w: neither final wavenumber nor initial wavelength set", ErrWavenumberBounds)
	}

	if wn.Spacing <= 0 {
		return fmt.Errorf("pipeline: wavenumber spacing %g must be positive: %w",
			wn.Spacing, sampling.ErrInvalidSpacing)
	}
	ref.Spacing = wn.Spacing
	ref.Factor = 1
	ref.Oversample = wn.Oversample

	over, err := sampling.NewFromReference(ref)
	if err != nil {
		return fmt.Errorf("pipeline: oversampled wavenumber grid: %w", err)
	}
	ref.Oversample = 1
	plain, err := sampling.NewFromReference(ref)
	if err != nil {
		return fmt.Errorf("pipeline: wavenumber grid: %w", err)
	}

	p.WavenumberOver = over
	p.Wavenumber = plain
	p.OversampleDivs = sampling.Divisors(over.Oversample)
	if plain.Initial != 0 && plain.Truncated() {
		p.noteFlags("wavenumber", plain, sampling.FlagShortFinal)
	}
	p.Ready.Wavenumber = true
	return nil
}
