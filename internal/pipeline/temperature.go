package pipeline

import (
	"fmt"

	"github.com/exosim-labs/transpec/internal/sampling"
)

// BuildTemperature builds the temperature grid from the hint alone, with a
// fixed oversample of 1 and no unit factor. The reference is empty, so an
// absent spacing fails the construction.
func (p *Pipeline) BuildTemperature() error {
	th := p.hints.Temperature
	if th.Final < th.Initial {
		return fmt.Errorf("pipeline: temperature: %w: final value %g has to be bigger than initial %g",
			sampling.ErrInvalidRange, th.Final, th.Initial)
	}

	hint := sampling.Spec{
		Initial:    th.Initial,
		Final:      th.Final,
		Factor:     1,
		Spacing:    th.Spacing,
		Oversample: 1,
	}
	ref := sampling.Spec{Factor: 1, Oversample: 1}

	g, flags, err := sampling.New(hint, ref)
	if err != nil {
		return fmt.Errorf("pipeline: temperature grid: %w", err)
	}
	p.Temperature = g
	p.noteFlags("temperature", g, flags)
	p.Ready.Temperature = true
	return nil
}
