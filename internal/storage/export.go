package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/exosim-labs/transpec/internal/config"
	"github.com/exosim-labs/transpec/internal/pipeline"
)

type GridDump struct {
	Initial    float64   `json:"initial"`
	Final      float64   `json:"final"`
	Factor     float64   `json:"factor"`
	Spacing    float64   `json:"spacing"`
	Oversample int       `json:"oversample"`
	Values     []float64 `json:"values"`
}

type MoleculeDump struct {
	Name      string    `json:"name"`
	Mass      float64   `json:"mass"`
	Density   []float64 `json:"density"`
	Abundance []float64 `json:"abundance"`
}

type PartitionDump struct {
	Database string    `json:"database"`
	Isotope  string    `json:"isotope"`
	Values   []float64 `json:"values"`
}

type ProfilesDump struct {
	Temperature   []float64       `json:"temperature"`
	Pressure      []float64       `json:"pressure"`
	MeanMolarMass []float64       `json:"mean_molar_mass"`
	Molecules     []MoleculeDump  `json:"molecules,omitempty"`
	Partition     []PartitionDump `json:"partition,omitempty"`
}

type ExportData struct {
	Name           string              `json:"name"`
	OversampleDivs []int               `json:"oversample_divisors,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	Grids          map[string]GridDump `json:"grids"`
	Profiles       *ProfilesDump       `json:"profiles,omitempty"`
}

func buildExport(cfg *config.Config, p *pipeline.Pipeline) ExportData {
	data := ExportData{
		Name:           cfg.Name,
		OversampleDivs: p.OversampleDivs,
		Warnings:       p.Warnings,
		Grids:          make(map[string]GridDump),
	}

	for name, g := range builtGrids(p) {
		data.Grids[name] = GridDump{
			Initial:    g.Initial,
			Final:      g.Final,
			Factor:     g.Factor,
			Spacing:    g.Spacing,
			Oversample: g.Oversample,
			Values:     g.Values,
		}
	}

	if p.Profiles != nil {
		prof := &ProfilesDump{
			Temperature:   p.Profiles.Temperature,
			Pressure:      p.Profiles.Pressure,
			MeanMolarMass: p.Profiles.MeanMolarMass,
		}
		for _, mol := range p.Profiles.Molecules {
			prof.Molecules = append(prof.Molecules, MoleculeDump{
				Name:      mol.Name,
				Mass:      mol.Mass,
				Density:   mol.Density,
				Abundance: mol.Abundance,
			})
		}
		for _, part := range p.Profiles.Partition {
			prof.Partition = append(prof.Partition, PartitionDump{
				Database: part.Database,
				Isotope:  part.Isotope,
				Values:   part.Values,
			})
		}
		data.Profiles = prof
	}

	return data
}

func exportTo(w io.Writer, cfg *config.Config, p *pipeline.Pipeline) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildExport(cfg, p))
}

func ExportJSON(path string, cfg *config.Config, p *pipeline.Pipeline) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportTo(file, cfg, p)
}

func ExportJSONStdout(cfg *config.Config, p *pipeline.Pipeline) error {
	return exportTo(os.Stdout, cfg, p)
}
