package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/exosim-labs/transpec/internal/atmosphere"
	"github.com/exosim-labs/transpec/internal/config"
	"github.com/exosim-labs/transpec/internal/export"
	"github.com/exosim-labs/transpec/internal/linelist"
	"github.com/exosim-labs/transpec/internal/pipeline"
	"github.com/exosim-labs/transpec/internal/sampling"
	"github.com/exosim-labs/transpec/internal/simpson"
	"github.com/exosim-labs/transpec/internal/storage"
	"github.com/exosim-labs/transpec/internal/tui"
	"github.com/exosim-labs/transpec/internal/units"
)

var (
	dataDir    string
	configFile string
	preset     string
	runName    string
	atmFile    string
	lineFile   string
	// Wavenumber window, with the wavelength fallback
	wnInitial  float64
	wnFinal    float64
	wnSpacing  float64
	oversample int
	wlInitial  float64
	wlFinal    float64
	wlUnits    string
	// Radius, impact parameter and temperature grids
	radSpacing float64
	radUnits   string
	radPolicy  string
	ipsSpacing float64
	tmpInitial float64
	tmpFinal   float64
	tmpSpacing float64
	// Extra build outputs
	jsonPath string
	plotsDir string
	// Plot and snapshot options
	pngPath    string
	withValues bool
)

// main is the entry point for the transpec CLI; it registers commands and
// flags, launches the interactive run browser when no subcommand is given,
// and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "transpec",
		Short: "sampling grids for transmission spectra",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive browser when no command given
			return tui.RunBrowser(storage.New(dataDir))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".transpec", "data directory")

	buildCmd := &cobra.Command{
		Use:   "build [target]",
		Short: "build sampling grids and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	buildCmd.Flags().StringVar(&preset, "preset", "", "preset for the target argument (default survey)")
	buildCmd.Flags().StringVar(&runName, "name", "run", "run name")
	buildCmd.Flags().StringVar(&atmFile, "atm", "", "atmosphere model file (yaml)")
	buildCmd.Flags().StringVar(&lineFile, "lines", "", "line-list info file (yaml)")
	buildCmd.Flags().Float64Var(&wnInitial, "wn-initial", 0, "initial wavenumber (cm-1)")
	buildCmd.Flags().Float64Var(&wnFinal, "wn-final", 0, "final wavenumber (cm-1)")
	buildCmd.Flags().Float64Var(&wnSpacing, "wn-spacing", config.DefaultWavenumberSpacing, "wavenumber spacing (cm-1)")
	buildCmd.Flags().IntVar(&oversample, "oversample", config.DefaultOversample, "wavenumber oversampling factor")
	buildCmd.Flags().Float64Var(&wlInitial, "wl-initial", config.DefaultWavelengthInitial, "initial wavelength fallback")
	buildCmd.Flags().Float64Var(&wlFinal, "wl-final", config.DefaultWavelengthFinal, "final wavelength fallback")
	buildCmd.Flags().StringVar(&wlUnits, "wl-units", units.Micron, "wavelength units")
	buildCmd.Flags().Float64Var(&radSpacing, "rad-spacing", 0, "radius spacing")
	buildCmd.Flags().StringVar(&radUnits, "rad-units", "", "radius units (default: atmosphere units)")
	buildCmd.Flags().StringVar(&radPolicy, "rad-policy", config.PolicyResample, "radius policy (resample|native)")
	buildCmd.Flags().Float64Var(&ipsSpacing, "ips-spacing", 0, "impact parameter spacing")
	buildCmd.Flags().Float64Var(&tmpInitial, "temp-initial", config.DefaultTemperatureInitial, "initial temperature (K)")
	buildCmd.Flags().Float64Var(&tmpFinal, "temp-final", config.DefaultTemperatureFinal, "final temperature (K)")
	buildCmd.Flags().Float64Var(&tmpSpacing, "temp-spacing", config.DefaultTemperatureSpacing, "temperature spacing (K)")
	buildCmd.Flags().StringVar(&jsonPath, "json", "", "export full run data to JSON file (- for stdout)")
	buildCmd.Flags().StringVar(&plotsDir, "plots", "", "write profile plots (png) to directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata and grid summary",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id] [grid]",
		Short: "plot a saved grid",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  plotGrid,
	}
	plotCmd.Flags().StringVar(&pngPath, "png", "", "write a png instead of the terminal plot")

	profilesCmd := &cobra.Command{
		Use:   "profiles [run_id]",
		Short: "plot projected atmospheric profiles",
		Args:  cobra.ExactArgs(1),
		RunE:  plotProfiles,
	}

	columnCmd := &cobra.Command{
		Use:   "column [run_id]",
		Short: "integrate column densities over the radius grid",
		Args:  cobra.ExactArgs(1),
		RunE:  columnDensities,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file]",
		Short: "inspect a binary grid snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  dumpSnapshot,
	}
	snapshotCmd.Flags().BoolVar(&withValues, "values", false, "print every sampled value")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse saved runs interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunBrowser(storage.New(dataDir))
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [target]",
		Short: "list preset configurations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				targets := make([]string, 0, len(config.Presets))
				for t := range config.Presets {
					targets = append(targets, t)
				}
				sort.Strings(targets)
				fmt.Println("targets:")
				for _, t := range targets {
					fmt.Printf("  %s\n", t)
				}
				return nil
			}
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for target: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a starter config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "transpec.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(buildCmd, runsCmd, showCmd, exportCmd, plotCmd, profilesCmd, columnCmd, snapshotCmd, browseCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	// Start from a preset if a target is given
	if len(args) > 0 {
		name := preset
		if name == "" {
			name = "survey"
		}
		pc := config.GetPreset(args[0], name)
		if pc == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(args[0]))
		}
		c := *pc
		cfg = &c
	} else if preset != "" {
		return fmt.Errorf("--preset needs a target argument (e.g. hot-jupiter)")
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// Apply CLI flags (flags override preset and config)
	if cmd.Flags().Changed("name") {
		cfg.Name = runName
	}
	if cmd.Flags().Changed("atm") {
		cfg.Atmosphere = atmFile
	}
	if cmd.Flags().Changed("lines") {
		cfg.Linelist = lineFile
	}
	if cmd.Flags().Changed("wn-initial") {
		cfg.Wavenumber.Initial = wnInitial
	}
	if cmd.Flags().Changed("wn-final") {
		cfg.Wavenumber.Final = wnFinal
	}
	if cmd.Flags().Changed("wn-spacing") {
		cfg.Wavenumber.Spacing = wnSpacing
	}
	if cmd.Flags().Changed("oversample") {
		cfg.Wavenumber.Oversample = oversample
	}
	if cmd.Flags().Changed("wl-initial") {
		cfg.Wavelength.Initial = wlInitial
	}
	if cmd.Flags().Changed("wl-final") {
		cfg.Wavelength.Final = wlFinal
	}
	if cmd.Flags().Changed("wl-units") {
		cfg.Wavelength.Units = wlUnits
	}
	if cmd.Flags().Changed("rad-spacing") {
		cfg.Radius.Spacing = radSpacing
	}
	if cmd.Flags().Changed("rad-units") {
		cfg.Radius.Units = radUnits
	}
	if cmd.Flags().Changed("rad-policy") {
		cfg.Radius.Policy = radPolicy
	}
	if cmd.Flags().Changed("ips-spacing") {
		cfg.Impact.Spacing = ipsSpacing
	}
	if cmd.Flags().Changed("temp-initial") {
		cfg.Temperature.Initial = tmpInitial
	}
	if cmd.Flags().Changed("temp-final") {
		cfg.Temperature.Final = tmpFinal
	}
	if cmd.Flags().Changed("temp-spacing") {
		cfg.Temperature.Spacing = tmpSpacing
	}

	hints, err := cfg.Hints()
	if err != nil {
		return err
	}

	var atm *atmosphere.Model
	if cfg.Atmosphere != "" {
		if atm, err = atmosphere.Load(cfg.Atmosphere); err != nil {
			return err
		}
	}
	var lines *linelist.Info
	if cfg.Linelist != "" {
		if lines, err = linelist.Load(cfg.Linelist); err != nil {
			return err
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	p := pipeline.New(hints, atm, lines)

	fmt.Printf("building %s sampling grids...\n", cfg.Name)
	start := time.Now()

	if err := p.BuildWavenumber(); err != nil {
		return err
	}
	if atm != nil && lines != nil {
		if err := p.BuildRadius(); err != nil {
			return err
		}
		if err := p.BuildImpact(); err != nil {
			return err
		}
	} else {
		fmt.Println("no atmosphere model or line list, skipping radius and impact grids")
	}
	if err := p.BuildTemperature(); err != nil {
		return err
	}

	elapsed := time.Since(start)

	fmt.Println()
	p.Summary(os.Stdout)

	if len(p.OversampleDivs) > 0 {
		fmt.Printf("\noversample divisors: %v\n", p.OversampleDivs)
	}
	for _, warn := range p.Warnings {
		fmt.Printf("warning: %s\n", warn)
	}

	runID, err := st.Save(cfg, p)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)

	if jsonPath == "-" {
		if err := storage.ExportJSONStdout(cfg, p); err != nil {
			return err
		}
	} else if jsonPath != "" {
		if err := storage.ExportJSON(jsonPath, cfg, p); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if plotsDir != "" {
		if err := os.MkdirAll(plotsDir, 0755); err != nil {
			return err
		}
		n, err := export.PlotProfiles(plotsDir, p)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d profile plots to %s\n", n, plotsDir)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tGRIDS\tWAVENUMBERS\tWARNINGS")

	for _, run := range runs {
		wnPoints := 0
		if gi, ok := run.Grids["wavenumber"]; ok {
			wnPoints = gi.Points
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Grids),
			wnPoints,
			len(run.Warnings),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	if meta.Atmosphere != "" {
		fmt.Printf("atmosphere: %s\n", meta.Atmosphere)
	}
	if meta.Linelist != "" {
		fmt.Printf("linelist: %s\n", meta.Linelist)
	}
	if len(meta.OversampleDivs) > 0 {
		fmt.Printf("oversample divisors: %v\n", meta.OversampleDivs)
	}
	fmt.Println()

	names := make([]string, 0, len(meta.Grids))
	for name := range meta.Grids {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tINITIAL\tFINAL\tSPACING\tOVERSAMPLE\tPOINTS")
	for _, name := range names {
		gi := meta.Grids[name]
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%d\t%d\n",
			name, gi.Initial, gi.Final, gi.Spacing, gi.Oversample, gi.Points)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(meta.Warnings) > 0 {
		fmt.Println("\nwarnings:")
		for _, warn := range meta.Warnings {
			fmt.Printf("  %s\n", warn)
		}
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotGrid(cmd *cobra.Command, args []string) error {
	runID := args[0]
	name := "wavenumber"
	if len(args) > 1 {
		name = args[1]
	}

	st := storage.New(dataDir)
	g, err := st.LoadGrid(runID, name)
	if err != nil {
		return err
	}
	if g.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	if pngPath != "" {
		if err := export.GridPNG(pngPath, name, g); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngPath)
		return nil
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("grid: %s\n", name)
	fmt.Printf("samples: %d\n\n", g.Len())

	graph := asciigraph.Plot(g.Values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s values", name)),
	)
	fmt.Println(graph)

	return nil
}

func plotProfiles(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	header, rows, err := st.LoadProfiles(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no profile data")
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("layers: %d\n\n", len(rows))

	numCols := len(header)
	maxPlots := 6
	if numCols > maxPlots+1 {
		numCols = maxPlots + 1
	}

	// Column 0 is the radius axis itself
	for col := 1; col < numCols; col++ {
		data := make([]float64, 0, len(rows))
		for _, row := range rows {
			if col < len(row) {
				data = append(data, row[col])
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(header[col]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func columnDensities(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	g, err := st.LoadGrid(runID, "radius")
	if err != nil {
		return err
	}
	header, rows, err := st.LoadProfiles(runID)
	if err != nil {
		return err
	}
	if len(rows) < 2 || len(header) == 0 || header[0] != "radius" {
		return fmt.Errorf("no profile data to integrate")
	}

	// Radii in cgs so densities in molec/cm3 integrate to molec/cm2
	x := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = row[0] * g.Factor
	}
	rule := simpson.NewRule(simpson.Intervals(x))

	fmt.Printf("column densities: %s\n", runID)
	fmt.Printf("layers: %d\n\n", len(rows))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOLECULE\tCOLUMN (cm^-2)")

	for col, name := range header {
		if !strings.HasSuffix(name, "_density") {
			continue
		}
		data := make([]float64, 0, len(rows))
		for _, row := range rows {
			if col < len(row) {
				data = append(data, row[col])
			}
		}
		if len(data) != rule.Len() {
			continue
		}
		mol := strings.TrimSuffix(name, "_density")
		fmt.Fprintf(w, "%s\t%.6e\n", mol, rule.Integrate(data))
	}

	return w.Flush()
}

func dumpSnapshot(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	g, err := sampling.Read(f)
	if err != nil {
		return err
	}

	fmt.Printf("initial: %g\n", g.Initial)
	fmt.Printf("final: %g\n", g.Final)
	fmt.Printf("factor to cgs: %g\n", g.Factor)
	fmt.Printf("spacing: %g\n", g.Spacing)
	fmt.Printf("oversample: %d\n", g.Oversample)
	fmt.Printf("points: %d\n", g.Len())

	if withValues {
		for _, v := range g.Values {
			fmt.Printf(" %12.8g\n", v)
		}
	}

	return nil
}
