package pipeline

import (
	"fmt"
	"io"

	"github.com/exosim-labs/transpec/internal/sampling"
)

// Summary writes a human-readable report of every built grid. Wavenumber
// values are suppressed (they run to many thousands of points) and the
// radius grid hides its oversample, which does not apply to copied or
// resampled atmospheric grids in a meaningful way.
func (p *Pipeline) Summary(w io.Writer) {
	if p.Ready.Wavenumber {
		printGrid(w, "Wavenumber", p.Wavenumber, true, false)
		printGrid(w, "Wavenumber (oversampled)", p.WavenumberOver, true, false)
	}
	if p.Ready.Radius {
		printGrid(w, "Radius", p.Radius, false, true)
	}
	if p.Ready.Impact {
		printGrid(w, "Impact parameter", p.Impact, true, true)
	}
	if p.Ready.Temperature {
		printGrid(w, "Temperature", p.Temperature, true, true)
	}
}

func printGrid(w io.Writer, desc string, g *sampling.Grid, showOversample, showValues bool) {
	fmt.Fprintf(w, "############################\n")
	fmt.Fprintf(w, "   %-12s Sampling\n", desc)
	fmt.Fprintf(w, "----------------------------\n")
	fmt.Fprintf(w, "Factor to cgs units: %g\n", g.Factor)
	fmt.Fprintf(w, "Initial value: %g\nFinal value: %g\n", g.Initial, g.Final)
	fmt.Fprintf(w, "Spacing: %g\n", g.Spacing)
	if showOversample {
		fmt.Fprintf(w, "Oversample: %d\n", g.Oversample)
	}
	fmt.Fprintf(w, "Number of elements: %d\n", g.Len())
	if showValues {
		fmt.Fprintf(w, "Values:")
		for _, v := range g.Values {
			fmt.Fprintf(w, " %12.8g", v)
		}
		fmt.Fprintf(w, "\n")
	}
}
