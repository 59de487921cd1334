package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/exosim-labs/transpec/internal/config"
	"github.com/exosim-labs/transpec/internal/pipeline"
	"github.com/exosim-labs/transpec/internal/sampling"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// GridInfo summarizes one saved grid for listings; the full values live in
// the run directory's .grid snapshots.
type GridInfo struct {
	Initial    float64 `json:"initial"`
	Final      float64 `json:"final"`
	Factor     float64 `json:"factor"`
	Spacing    float64 `json:"spacing"`
	Oversample int     `json:"oversample"`
	Points     int     `json:"points"`
}

type RunMetadata struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Timestamp      time.Time           `json:"timestamp"`
	Atmosphere     string              `json:"atmosphere,omitempty"`
	Linelist       string              `json:"linelist,omitempty"`
	OversampleDivs []int               `json:"oversample_divisors,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	Grids          map[string]GridInfo `json:"grids"`
}

// builtGrids maps grid names to the pipeline's built grids; the names double
// as snapshot file stems.
func builtGrids(p *pipeline.Pipeline) map[string]*sampling.Grid {
	grids := make(map[string]*sampling.Grid)
	if p.Ready.Wavenumber {
		grids["wavenumber"] = p.Wavenumber
		grids["wavenumber_over"] = p.WavenumberOver
	}
	if p.Ready.Radius {
		grids["radius"] = p.Radius
	}
	if p.Ready.Impact {
		grids["impact"] = p.Impact
	}
	if p.Ready.Temperature {
		grids["temperature"] = p.Temperature
	}
	return grids
}

// Save writes one run directory: metadata.json, a config.yaml echo, one
// binary snapshot per built grid, and profiles.csv when the radius builder
// projected the atmosphere.
func (s *Store) Save(cfg *config.Config, p *pipeline.Pipeline) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	grids := builtGrids(p)
	meta := RunMetadata{
		ID:             runID,
		Name:           cfg.Name,
		Timestamp:      time.Now(),
		Atmosphere:     cfg.Atmosphere,
		Linelist:       cfg.Linelist,
		OversampleDivs: p.OversampleDivs,
		Warnings:       p.Warnings,
		Grids:          make(map[string]GridInfo, len(grids)),
	}
	for name, g := range grids {
		meta.Grids[name] = GridInfo{
			Initial:    g.Initial,
			Final:      g.Final,
			Factor:     g.Factor,
			Spacing:    g.Spacing,
			Oversample: g.Oversample,
			Points:     g.Len(),
		}
		if err := writeGrid(filepath.Join(runDir, name+".grid"), g); err != nil {
			return "", err
		}
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, "config.yaml"), cfg); err != nil {
		return "", err
	}

	if p.Ready.Radius && p.Profiles != nil {
		if err := writeProfiles(filepath.Join(runDir, "profiles.csv"), p); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeGrid(path string, g *sampling.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = g.WriteTo(f)
	return err
}

func writeProfiles(path string, p *pipeline.Pipeline) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	prof := p.Profiles
	header := []string{"radius", "temperature", "pressure", "mean_molar_mass"}
	for _, mol := range prof.Molecules {
		header = append(header, mol.Name+"_density", mol.Name+"_abundance")
	}
	for _, part := range prof.Partition {
		header = append(header, part.Database+"_"+part.Isotope+"_partition")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// Densities span many orders of magnitude, so rows use the shortest
	// exact representation rather than a fixed precision.
	for i, r := range p.Radius.Values {
		row := []string{
			strconv.FormatFloat(r, 'g', -1, 64),
			strconv.FormatFloat(prof.Temperature[i], 'g', -1, 64),
			strconv.FormatFloat(prof.Pressure[i], 'g', -1, 64),
			strconv.FormatFloat(prof.MeanMolarMass[i], 'g', -1, 64),
		}
		for _, mol := range prof.Molecules {
			row = append(row,
				strconv.FormatFloat(mol.Density[i], 'g', -1, 64),
				strconv.FormatFloat(mol.Abundance[i], 'g', -1, 64))
		}
		for _, part := range prof.Partition {
			row = append(row, strconv.FormatFloat(part.Values[i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadGrid reads one grid snapshot back by its name from Save.
func (s *Store) LoadGrid(runID, name string) (*sampling.Grid, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name+".grid"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sampling.Read(f)
}

// LoadProfiles reads profiles.csv back as its header and data rows. Rows
// that fail to parse are skipped.
func (s *Store) LoadProfiles(runID string) ([]string, [][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "profiles.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []string{}, [][]float64{}, nil
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}

		row := make([]float64, 0, len(record))
		ok := true
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			row = append(row, val)
		}
		if ok {
			rows = append(rows, row)
		}
	}

	return header, rows, nil
}
