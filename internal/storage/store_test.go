package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/exosim-labs/transpec/internal/atmosphere"
	"github.com/exosim-labs/transpec/internal/config"
	"github.com/exosim-labs/transpec/internal/linelist"
	"github.com/exosim-labs/transpec/internal/pipeline"
	"github.com/exosim-labs/transpec/internal/sampling"
)

func builtPipeline(t *testing.T) (*config.Config, *pipeline.Pipeline) {
	t.Helper()

	atm := &atmosphere.Model{
		RadiusUnits:      "km",
		TemperatureUnits: "K",
		Radius:           []float64{1000, 1100, 1200, 1300},
		Temperature:      []float64{1400, 1300, 1200, 1100},
		Pressure:         []float64{10, 5, 2, 1},
		Molecules: []atmosphere.Molecule{
			{Name: "H2", Mass: 2.016,
				Density:   []float64{8e-5, 4e-5, 2e-5, 1e-5},
				Abundance: []float64{1, 1, 1, 1}},
		},
	}
	if err := atm.Validate(); err != nil {
		t.Fatalf("atmosphere: %v", err)
	}
	line := &linelist.Info{
		Tmin: 70, Tmax: 3000,
		Databases: []linelist.Database{{
			Name:         "hitran",
			Temperatures: []float64{500, 1000, 1500, 2000},
			Isotopes: []linelist.Isotope{
				{Name: "1H2", Mass: 2.016, Partition: []float64{250, 500, 750, 1000}},
			},
		}},
	}

	cfg := config.DefaultConfig()
	cfg.Name = "test"
	cfg.Wavenumber = config.SamplingConfig{
		Initial: 2000, Final: 2100, Spacing: 1, Oversample: 4, Units: "cm-1",
	}
	cfg.Radius = config.RadiusConfig{Spacing: 50, Units: "km", Policy: config.PolicyResample}
	cfg.Impact = config.SamplingConfig{Spacing: 50, Oversample: 1}
	cfg.Temperature = config.SamplingConfig{Initial: 1000, Final: 1400, Spacing: 100, Units: "K"}

	hints, err := cfg.Hints()
	if err != nil {
		t.Fatalf("hints: %v", err)
	}
	p := pipeline.New(hints, atm, line)
	if err := p.BuildAll(); err != nil {
		t.Fatalf("build: %v", err)
	}
	return cfg, p
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, p := builtPipeline(t)
	runID, err := st.Save(cfg, p)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", meta.Name)
	}
	if len(meta.Grids) != 5 {
		t.Errorf("expected 5 grids, got %d", len(meta.Grids))
	}
	if meta.Grids["radius"].Points != p.Radius.Len() {
		t.Errorf("expected %d radius points, got %d", p.Radius.Len(), meta.Grids["radius"].Points)
	}
}

func TestStoreGridRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, p := builtPipeline(t)
	runID, err := st.Save(cfg, p)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	g, err := st.LoadGrid(runID, "radius")
	if err != nil {
		t.Fatalf("load grid failed: %v", err)
	}
	if g.Len() != p.Radius.Len() {
		t.Fatalf("expected %d points, got %d", p.Radius.Len(), g.Len())
	}
	for i, v := range g.Values {
		if v != p.Radius.Values[i] {
			t.Errorf("value %d: expected %g, got %g", i, p.Radius.Values[i], v)
		}
	}
	if g.Factor != p.Radius.Factor {
		t.Errorf("expected factor %g, got %g", p.Radius.Factor, g.Factor)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, p := builtPipeline(t)
	if _, err := st.Save(cfg, p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, p := builtPipeline(t)
	runID, err := st.Save(cfg, p)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{
		"metadata.json", "config.yaml", "profiles.csv",
		"wavenumber.grid", "wavenumber_over.grid", "radius.grid",
		"impact.grid", "temperature.grid",
	} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadProfiles(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, p := builtPipeline(t)
	runID, err := st.Save(cfg, p)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	header, rows, err := st.LoadProfiles(runID)
	if err != nil {
		t.Fatalf("load profiles failed: %v", err)
	}
	if len(rows) != p.Radius.Len() {
		t.Errorf("expected %d rows, got %d", p.Radius.Len(), len(rows))
	}
	// radius, temperature, pressure, mean molar mass, one molecule's
	// density and abundance, one partition column
	if len(header) != 7 {
		t.Errorf("expected 7 columns, got %d: %v", len(header), header)
	}
	if header[0] != "radius" {
		t.Errorf("expected radius column first, got %s", header[0])
	}
	if rows[0][0] != p.Radius.Values[0] {
		t.Errorf("expected first radius %g, got %g", p.Radius.Values[0], rows[0][0])
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	cfg, p := builtPipeline(t)

	if err := ExportJSON(path, cfg, p); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}

func TestBuiltGridsSkipsUnbuilt(t *testing.T) {
	p := pipeline.New(pipeline.Hints{
		Temperature: sampling.Spec{Initial: 1000, Final: 1400, Spacing: 100},
	}, nil, nil)
	if err := p.BuildTemperature(); err != nil {
		t.Fatalf("build: %v", err)
	}

	grids := builtGrids(p)
	if len(grids) != 1 {
		t.Errorf("expected 1 grid, got %d", len(grids))
	}
	if _, ok := grids["temperature"]; !ok {
		t.Error("expected temperature grid")
	}
}
