// Package export renders built grids and projected profiles as PNG plots.
package export

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/exosim-labs/transpec/internal/pipeline"
	"github.com/exosim-labs/transpec/internal/sampling"
)

const plotWidth, plotHeight = 10 * vg.Inch, 6 * vg.Inch

// GridPNG plots a grid's sampled values against their point index.
func GridPNG(path, name string, g *sampling.Grid) error {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s sampling (%d points)", name, g.Len())
	pl.X.Label.Text = "Index"
	pl.Y.Label.Text = name

	pts := make(plotter.XYs, g.Len())
	for i, v := range g.Values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Width = vg.Points(1)
	pl.Add(line)

	return pl.Save(plotWidth, plotHeight, path)
}

// PlotProfiles renders every projected profile against the radius grid as
// PNG files under dir and reports how many plots it wrote. Species and
// isotope curves share one plot each, distinguished by color.
func PlotProfiles(dir string, p *pipeline.Pipeline) (int, error) {
	if !p.Ready.Radius || p.Profiles == nil {
		return 0, fmt.Errorf("export: no projected profiles to plot")
	}
	rad := p.Radius.Values
	prof := p.Profiles

	count := 0
	singles := []struct {
		file  string
		label string
		data  []float64
	}{
		{"temperature.png", "Temperature", prof.Temperature},
		{"pressure.png", "Pressure", prof.Pressure},
		{"mean_molar_mass.png", "Mean molar mass (g/mol)", prof.MeanMolarMass},
	}
	for _, s := range singles {
		pl := newProfilePlot(s.label)
		if err := addLine(pl, rad, s.data, "", color.RGBA{B: 196, A: 255}); err != nil {
			return count, err
		}
		if err := pl.Save(plotWidth, plotHeight, filepath.Join(dir, s.file)); err != nil {
			return count, err
		}
		count++
	}

	if len(prof.Molecules) > 0 {
		colors := palette(len(prof.Molecules))
		density := newProfilePlot("Density")
		abundance := newProfilePlot("Abundance")
		for i, mol := range prof.Molecules {
			if err := addLine(density, rad, mol.Density, mol.Name, colors[i]); err != nil {
				return count, err
			}
			if err := addLine(abundance, rad, mol.Abundance, mol.Name, colors[i]); err != nil {
				return count, err
			}
		}
		if err := density.Save(plotWidth, plotHeight, filepath.Join(dir, "density.png")); err != nil {
			return count, err
		}
		count++
		if err := abundance.Save(plotWidth, plotHeight, filepath.Join(dir, "abundance.png")); err != nil {
			return count, err
		}
		count++
	}

	if len(prof.Partition) > 0 {
		colors := palette(len(prof.Partition))
		partition := newProfilePlot("Partition function")
		for i, part := range prof.Partition {
			label := part.Database + "/" + part.Isotope
			if err := addLine(partition, rad, part.Values, label, colors[i]); err != nil {
				return count, err
			}
		}
		if err := partition.Save(plotWidth, plotHeight, filepath.Join(dir, "partition.png")); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func newProfilePlot(ylabel string) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = ylabel + " vs radius"
	pl.X.Label.Text = "Radius"
	pl.Y.Label.Text = ylabel
	pl.Legend.Top = true
	return pl
}

func addLine(pl *plot.Plot, x, y []float64, label string, c color.Color) error {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	pl.Add(line)
	if label != "" {
		pl.Legend.Add(label, line)
	}
	return nil
}

// palette spreads n hues evenly at fixed saturation and lightness.
func palette(n int) []color.Color {
	colors := make([]color.Color, n)
	for i := range colors {
		r, g, b := hslToRGB(float64(i)/float64(n), 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	rf := hueToRGB(p, q, h+1.0/3.0)
	gf := hueToRGB(p, q, h)
	bf := hueToRGB(p, q, h-1.0/3.0)
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
