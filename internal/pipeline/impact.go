package pipeline

import (
	"fmt"

	"github.com/exosim-labs/transpec/internal/sampling"
)

// BuildImpact derives the impact-parameter grid, which runs from the top of
// the atmosphere down and is therefore descending. Under the native radius
// policy it mirrors the radius grid in reverse; otherwise it constructs a
// descending grid from the impact hint with the reversed radius grid as
// reference (negated spacings, swapped boundaries).
func (p *Pipeline) BuildImpact() error {
	if !p.Ready.Radius {
		return fmt.Errorf("%w: impact-parameter grid needs the radius grid", ErrNotReady)
	}
	rad := p.Radius

	if p.hints.RadiusPolicy == RadiusNative {
		n := rad.Len()
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = rad.Values[n-1-i]
		}
		p.Impact = &sampling.Grid{
			Initial: rad.Final,
			Final:   rad.Initial,
			Factor:  rad.Factor,
			Values:  vals,
		}
		p.Ready.Impact = true
		return nil
	}

	ips := p.hints.Impact
	if ips.Final < ips.Initial {
		return fmt.Errorf("pipeline: impact parameter: %w: final value %g has to be bigger than initial %g",
			sampling.ErrInvalidRange, ips.Final, ips.Initial)
	}
	hint := sampling.Spec{
		Initial:    ips.Final,
		Final:      ips.Initial,
		Factor:     ips.Factor,
		Spacing:    -ips.Spacing,
		Oversample: ips.Oversample,
	}
	ref := sampling.Spec{
		Initial:    rad.Values[rad.Len()-1],
		Final:      rad.Values[0],
		Factor:     rad.Factor,
		Spacing:    -rad.Spacing,
		Oversample: rad.Oversample,
	}

	g, flags, err := sampling.New(hint, ref)
	if err != nil {
		return fmt.Errorf("pipeline: impact-parameter grid: %w", err)
	}
	p.Impact = g
	p.noteFlags("impact parameter", g, flags)
	p.Ready.Impact = true
	return nil
}
