package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/anukaran/pbreactor/internal/config"
	"github.com/anukaran/pbreactor/internal/export"
	"github.com/anukaran/pbreactor/internal/reactor"
	"github.com/anukaran/pbreactor/internal/storage"
	"github.com/anukaran/pbreactor/internal/sweep"
	"github.com/anukaran/pbreactor/internal/tui"
	"github.com/anukaran/pbreactor/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	label      string
	// Feed overrides (engineering units, matching the config file)
	tempC     float64
	pressBar  float64
	flowMLMin float64
	yCH4      float64
	yH2       float64
	yN2       float64
	// Solver
	isothermal bool
	points     int
	noSave     bool
	// Plot/export
	plotVar  string
	outFile  string
	svgWidth int
	// Sweep
	overSpecs []string
	objective string
	minimize  bool
	workers   int
	// Bench
	benchSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pbreactor",
		Short: "packed-bed methane decomposition reactor simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pbreactor", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "solve one reactor configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReactor,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "", "run label (defaults to preset name)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored axial profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotVar, "var", "x_ch4", "profile variable (x_ch4, t, p, y_ch4, y_h2, f_ch4, f_h2)")

	viewCmd := &cobra.Command{
		Use:   "view [preset]",
		Short: "solve and browse profiles interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewReactor,
	}
	addConfigFlags(viewCmd)

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "export a stored profile as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVar(&plotVar, "var", "x_ch4", "profile variable")
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (defaults to <run_id>_<var>.svg)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "solve a parameter grid in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&overSpecs, "over", nil, "swept axis as param=min:max:n (SI units, repeatable)")
	sweepCmd.Flags().StringVar(&objective, "objective", "conversion", "metric to rank by (conversion, h2_nm3_h, pressure_drop, outlet_temperature)")
	sweepCmd.Flags().BoolVar(&minimize, "min", false, "minimize the objective instead of maximizing")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "worker count (0 = NumCPU)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in operating presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "compare the adaptive solver against fixed-step integration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchSolvers,
	}
	addConfigFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchSteps, "steps", 10000, "fixed-step count")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, viewCmd, exportCmd, svgCmd, sweepCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&tempC, "temp", 800, "feed temperature [°C]")
	cmd.Flags().Float64Var(&pressBar, "pressure", 1, "feed pressure [bar]")
	cmd.Flags().Float64Var(&flowMLMin, "flow", 50, "feed flow rate [mL/min]")
	cmd.Flags().Float64Var(&yCH4, "y-ch4", 0.5, "feed CH4 mole fraction")
	cmd.Flags().Float64Var(&yH2, "y-h2", 0, "feed H2 mole fraction")
	cmd.Flags().Float64Var(&yN2, "y-n2", 0.5, "feed N2 mole fraction")
	cmd.Flags().BoolVar(&isothermal, "isothermal", false, "hold bed temperature at the feed value")
	cmd.Flags().IntVar(&points, "points", 0, "axial output points (0 = config value)")
}

// loadConfig resolves preset, config file, and flag overrides in that
// order; later sources win, and flags win only when set explicitly.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "lab"
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(strings.TrimSuffix(configFile, ".yaml"), ".yml")
	}

	if cmd.Flags().Changed("temp") {
		cfg.Feed.TemperatureC = tempC
	}
	if cmd.Flags().Changed("pressure") {
		cfg.Feed.PressureBar = pressBar
	}
	if cmd.Flags().Changed("flow") {
		cfg.Feed.FlowRateMLMin = flowMLMin
	}
	if cmd.Flags().Changed("y-ch4") {
		cfg.Feed.YCH4 = yCH4
	}
	if cmd.Flags().Changed("y-h2") {
		cfg.Feed.YH2 = yH2
	}
	if cmd.Flags().Changed("y-n2") {
		cfg.Feed.YN2 = yN2
	}
	if cmd.Flags().Changed("isothermal") {
		cfg.Isothermal = isothermal
	}
	if points > 0 {
		cfg.Points = points
	}

	return cfg, name, nil
}

func solve(cfg *config.Config) (*reactor.Result, error) {
	m, err := reactor.New(cfg.ToSI())
	if err != nil {
		return nil, err
	}
	n := cfg.Points
	if n < 2 {
		n = reactor.DefaultPoints
	}
	return m.Solve(reactor.Grid(cfg.ToSI().BedLength, n))
}

func runReactor(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if label == "" {
		label = name
	}

	start := time.Now()
	res, err := solve(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(viz.Summary(label, res))
	fmt.Printf("solved in %v\n", elapsed)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(label, cfg.Isothermal, res)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func viewReactor(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	res, err := solve(cfg)
	if err != nil {
		return err
	}
	return tui.Run(name, res)
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tX_CH4\tH2 NM3/H\tT_OUT\tDP PA\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4g\t%.1f\t%.4g\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Conversion,
			run.H2FlowNm3h,
			run.OutletTempK,
			run.PressureDropPa,
			run.Steps,
		)
	}

	return w.Flush()
}

// profileSeries pulls one plottable series out of a stored profile.
func profileSeries(p *storage.Profile, variable string) ([]float64, string, error) {
	column := map[string]string{
		"t": "T", "temperature": "T",
		"p": "P", "pressure": "P",
		"y_ch4": "y_CH4", "y_h2": "y_H2", "y_n2": "y_N2",
		"f_ch4": "F_CH4", "f_h2": "F_H2",
	}

	v := strings.ToLower(variable)
	if v == "x_ch4" || v == "conversion" {
		fCH4 := p.Column("F_CH4")
		if len(fCH4) == 0 || fCH4[0] <= 0 {
			return nil, "", fmt.Errorf("profile has no usable F_CH4 column")
		}
		data := make([]float64, len(fCH4))
		for i, f := range fCH4 {
			data[i] = (fCH4[0] - f) / fCH4[0]
		}
		return data, "CH4 conversion vs position", nil
	}

	name, ok := column[v]
	if !ok {
		return nil, "", fmt.Errorf("unknown profile variable %q", variable)
	}
	data := p.Column(name)
	if data == nil {
		return nil, "", fmt.Errorf("profile has no %s column", name)
	}
	return data, fmt.Sprintf("%s vs position", name), nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	data, caption, err := profileSeries(profile, plotVar)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s  X=%.4f  T_out=%.1fK\n\n", meta.ID, meta.Conversion, meta.OutletTempK)
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
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

func svgRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	profile, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	data, caption, err := profileSeries(profile, plotVar)
	if err != nil {
		return err
	}
	z := profile.Column("z")
	if z == nil {
		return fmt.Errorf("profile has no z column")
	}

	svg := export.ProfileSVG(z, data, svgWidth, svgWidth*9/16, "#00ff88", caption)
	if svg == "" {
		return fmt.Errorf("profile too short to plot")
	}

	if outFile == "" {
		outFile = fmt.Sprintf("%s_%s.svg", args[0], strings.ToLower(plotVar))
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

// parseAxis parses "param=min:max:n" into a swept axis.
func parseAxis(spec string) (sweep.Axis, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return sweep.Axis{}, fmt.Errorf("bad axis %q, want param=min:max:n", spec)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return sweep.Axis{}, fmt.Errorf("bad axis range %q, want min:max:n", rng)
	}
	min, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return sweep.Axis{}, fmt.Errorf("bad axis min %q: %w", parts[0], err)
	}
	max, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return sweep.Axis{}, fmt.Errorf("bad axis max %q: %w", parts[1], err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return sweep.Axis{}, fmt.Errorf("bad axis count %q", parts[2])
	}
	return sweep.Axis{Param: name, Values: sweep.Span(min, max, n)}, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(overSpecs) == 0 {
		return fmt.Errorf("at least one --over axis is required")
	}

	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	axes := make([]sweep.Axis, 0, len(overSpecs))
	for _, spec := range overSpecs {
		ax, err := parseAxis(spec)
		if err != nil {
			return err
		}
		axes = append(axes, ax)
	}
	grid := sweep.Grid(axes)

	start := time.Now()
	outcomes := sweep.Run(context.Background(), cfg.ToSI(), grid, workers)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(axes)+2)
	for _, ax := range axes {
		header = append(header, strings.ToUpper(ax.Param))
	}
	header = append(header, strings.ToUpper(objective), "STATUS")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, o := range outcomes {
		row := make([]string, 0, len(axes)+2)
		for _, ax := range axes {
			row = append(row, fmt.Sprintf("%.6g", o.Params[ax.Param]))
		}
		if o.Err != nil {
			row = append(row, "-", o.Err.Error())
		} else {
			v, verr := sweep.Objective(o.Result, objective)
			if verr != nil {
				return verr
			}
			row = append(row, fmt.Sprintf("%.6g", v), "ok")
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	best, err := sweep.Best(outcomes, objective, !minimize)
	if err != nil {
		return err
	}
	bestVal, err := sweep.Objective(best.Result, objective)
	if err != nil {
		return err
	}
	mean, stddev, err := sweep.Summary(outcomes, objective)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d points in %v (base: %s)\n", len(outcomes), elapsed, name)
	fmt.Printf("%s: mean %.6g, stddev %.6g\n", objective, mean, stddev)
	fmt.Printf("best: %.6g at %v\n", bestVal, best.Params)
	return nil
}

func benchSolvers(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	m, err := reactor.New(cfg.ToSI())
	if err != nil {
		return err
	}

	start := time.Now()
	adaptive, err := m.Solve(nil)
	if err != nil {
		return err
	}
	adaptiveTime := time.Since(start)

	start = time.Now()
	fixed, err := m.SolveFixed(benchSteps)
	if err != nil {
		return err
	}
	fixedTime := time.Since(start)

	fmt.Printf("config: %s\n\n", name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tSTEPS\tREJECTED\tX_CH4\tT_OUT\tTIME")
	fmt.Fprintf(w, "rk45 adaptive\t%d\t%d\t%.6f\t%.1f\t%v\n",
		adaptive.Steps, adaptive.Rejected, adaptive.Conversion, adaptive.OutletTemp, adaptiveTime)
	fmt.Fprintf(w, "rk4 fixed\t%d\t%d\t%.6f\t%.1f\t%v\n",
		fixed.Steps, fixed.Rejected, fixed.Conversion, fixed.OutletTemp, fixedTime)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nconversion delta: %.3e\n", adaptive.Conversion-fixed.Conversion)
	return nil
}
