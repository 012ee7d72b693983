package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jacobbriones1/DynoDiff/internal/analysis"
	"github.com/jacobbriones1/DynoDiff/internal/config"
	"github.com/jacobbriones1/DynoDiff/internal/integrators"
	"github.com/jacobbriones1/DynoDiff/internal/lake"
	"github.com/jacobbriones1/DynoDiff/internal/metrics"
	"github.com/jacobbriones1/DynoDiff/internal/sim"
	"github.com/jacobbriones1/DynoDiff/internal/storage"
	"github.com/jacobbriones1/DynoDiff/internal/symbolic"
	"github.com/jacobbriones1/DynoDiff/internal/viz"
)

var (
	dataDir    string
	flowRate   float64
	volume     float64
	inputRate  float64
	tmax       float64
	samples    int
	dt         float64
	configFile string
	preset     string
	// fit flags
	fitVolume   float64
	fitFlowMin  float64
	fitFlowMax  float64
	fitSteps    int
	fitInputMin float64
	fitInputMax float64
	// sweep flags
	sweepFlows string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dynodiff",
		Short: "lake solute concentration model",
		Long:  "Closed-form solution of dσ/dt + (v/V)σ = m/V with σ(0)=0, evaluated, plotted, and cross-checked numerically.",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynodiff", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "derive and print the closed form",
		RunE:  runSolve,
	}
	addModelFlags(solveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "evaluate the closed form and store the series",
		RunE:  runEvaluate,
	}
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the filling curve live",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().Float64Var(&dt, "dt", 1.0, "model time per frame")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare numeric integration against the closed form",
		RunE:  compareIntegrators,
	}
	addModelFlags(compareCmd)
	compareCmd.Flags().Float64Var(&dt, "dt", 0.1, "integration timestep")

	fitCmd := &cobra.Command{
		Use:   "fit [run_id]",
		Short: "calibrate flow and input rate to a stored series",
		Args:  cobra.ExactArgs(1),
		RunE:  fitRun,
	}
	fitCmd.Flags().Float64Var(&fitVolume, "volume", config.DefaultVolume, "fixed lake volume")
	fitCmd.Flags().Float64Var(&fitFlowMin, "flow-min", 0.1, "flow rate search minimum")
	fitCmd.Flags().Float64Var(&fitFlowMax, "flow-max", 10.0, "flow rate search maximum")
	fitCmd.Flags().Float64Var(&fitInputMin, "input-min", 0.1, "input rate search minimum")
	fitCmd.Flags().Float64Var(&fitInputMax, "input-max", 10.0, "input rate search maximum")
	fitCmd.Flags().IntVar(&fitSteps, "steps", 50, "search steps per axis")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "evaluate a set of flow rates in parallel",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepFlows, "flows", "0.5,1,2,5,10", "comma-separated flow rates")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFLOW\tVOLUME\tINPUT\tTMAX\tSAMPLES")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.0f\t%d\n",
					name, cfg.FlowRate, cfg.Volume, cfg.InputRate, cfg.Tmax, cfg.Samples)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(solveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		liveCmd, compareCmd, fitCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flowRate, "flow", config.DefaultFlowRate, "volumetric flow rate v")
	cmd.Flags().Float64Var(&volume, "volume", config.DefaultVolume, "lake volume V")
	cmd.Flags().Float64Var(&inputRate, "input", config.DefaultInputRate, "solute input rate m")
	cmd.Flags().Float64Var(&tmax, "tmax", config.DefaultTmax, "end of the time domain")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of time samples")
}

func modelParams() lake.Parameters {
	return lake.Parameters{FlowRate: flowRate, Volume: volume, InputRate: inputRate}
}

// applyConfig resolves preset, then config file, then CLI flags, the
// last one winning.
func applyConfig(cmd *cobra.Command) error {
	var cfg *config.Config

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cfg == nil {
		return nil
	}

	if !cmd.Flags().Changed("flow") {
		flowRate = cfg.FlowRate
	}
	if !cmd.Flags().Changed("volume") {
		volume = cfg.Volume
	}
	if !cmd.Flags().Changed("input") {
		inputRate = cfg.InputRate
	}
	if !cmd.Flags().Changed("tmax") {
		tmax = cfg.Tmax
	}
	if !cmd.Flags().Changed("samples") {
		samples = cfg.Samples
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	d := symbolic.Derive()
	for _, line := range d.Steps() {
		fmt.Println(line)
	}

	res := d.Residual()
	fmt.Printf("residual check:     σ' + (v/V)σ − m/V = %s\n\n", res)

	sol, err := lake.Solve(modelParams())
	if err != nil {
		return err
	}

	fmt.Printf("v=%.4f V=%.4f m=%.4f\n", flowRate, volume, inputRate)
	fmt.Printf("σ(t) = %.6f·(1 − exp(−%.6f·t))\n", sol.SteadyState(), sol.TurnoverRate())
	fmt.Printf("steady state: %.6f\n", sol.SteadyState())
	fmt.Printf("half-life:    %.4f\n\n", analysis.Halflife(sol))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRACTION\tTIME\tTURNOVERS")
	for _, row := range analysis.ApproachTable(sol, analysis.DefaultFractions) {
		fmt.Fprintf(w, "%.0f%%\t%.4f\t%.4f\n", row.Fraction*100, row.Time, row.Turnover)
	}
	return w.Flush()
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	p := modelParams()
	sol, err := lake.Solve(p)
	if err != nil {
		return err
	}

	times, err := lake.UniformTimes(tmax, samples)
	if err != nil {
		return err
	}

	series, err := lake.Evaluate(sol, times)
	if err != nil {
		return err
	}

	ms := []sim.Metric{
		metrics.NewSaturation(sol.SteadyState()),
		metrics.NewMassBalance(p),
		metrics.NewResidual(p),
	}
	for _, smp := range series {
		for _, m := range ms {
			m.Observe(sim.State{smp.Concentration}, smp.Time)
		}
	}
	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(p, tmax, series, values)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d over [0, %.1f]\n", len(series), tmax)
	fmt.Printf("steady state: %.6f\n", sol.SteadyState())
	fmt.Println("\nmetrics:")
	for name, val := range values {
		fmt.Printf("  %s: %.6g\n", name, val)
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
	fmt.Fprintln(w, "ID\tTIME\tFLOW\tVOLUME\tINPUT\tTMAX\tSAMPLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.1f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FlowRate,
			run.Volume,
			run.InputRate,
			run.Tmax,
			run.Samples,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("v=%.2f V=%.2f m=%.2f, steady state %.6f\n\n",
		meta.FlowRate, meta.Volume, meta.InputRate, meta.Params().SteadyState())

	fmt.Println(viz.PlotSeries(series, "concentration vs time"))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "concentration"}); err != nil {
		return err
	}
	for _, smp := range series {
		row := []string{
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Concentration, 'g', 12, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	m, err := viz.NewModel(modelParams(), dt)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = []string{"euler", "rk4"}
	}

	p := modelParams()
	sol, err := lake.Solve(p)
	if err != nil {
		return err
	}
	system, err := lake.NewSystem(p)
	if err != nil {
		return err
	}

	exact := sol.Concentration(tmax)
	fmt.Printf("closed form at t=%.1f: %.10f (steady state %.6f)\n\n", tmax, exact, sol.SteadyState())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL\tABS ERROR\tMAX RESIDUAL")

	for _, name := range names {
		var integ sim.Integrator
		switch name {
		case "euler":
			integ = integrators.NewEuler()
		case "rk4":
			integ = integrators.NewRK4()
		default:
			fmt.Fprintf(w, "%s\terror: unknown integrator\t\t\n", name)
			continue
		}

		s := sim.New(system, integ)
		residual := metrics.NewResidual(p)
		s.AddMetric(residual)

		result, err := s.Run(context.Background(), sim.State{0}, sim.Config{Dt: dt, Duration: tmax})
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\n", name, err)
			continue
		}

		final := result.States[len(result.States)-1][0]
		fmt.Fprintf(w, "%s\t%.10f\t%.3e\t%.3e\n",
			name, final, math.Abs(final-exact), result.Metrics["residual"])
	}
	return w.Flush()
}

func fitRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to fit")
	}

	best, score, err := analysis.Calibrate(context.Background(), series, fitVolume,
		analysis.CalibrateRange{Min: fitFlowMin, Max: fitFlowMax, Steps: fitSteps},
		analysis.CalibrateRange{Min: fitInputMin, Max: fitInputMax, Steps: fitSteps},
	)
	if err != nil {
		return err
	}

	fmt.Printf("best fit: v=%.4f V=%.4f m=%.4f\n", best.FlowRate, best.Volume, best.InputRate)
	fmt.Printf("steady state: %.6f\n", best.SteadyState())
	fmt.Printf("rmse: %.6g\n", math.Sqrt(score/float64(len(series))))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	parts := strings.Split(sweepFlows, ",")
	variants := make([]lake.Parameters, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("bad flow rate %q: %w", part, err)
		}
		variants = append(variants, lake.Parameters{FlowRate: v, Volume: volume, InputRate: inputRate})
	}

	times, err := lake.UniformTimes(tmax, samples)
	if err != nil {
		return err
	}

	results := lake.Sweep(context.Background(), variants, times)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FLOW\tSTEADY\tFINAL\tSATURATION")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%.2f\terror: %v\t\t\n", r.Params.FlowRate, r.Err)
			continue
		}
		final := r.Series[len(r.Series)-1].Concentration
		steady := r.Params.SteadyState()
		fmt.Fprintf(w, "%.2f\t%.6f\t%.6f\t%.1f%%\n",
			r.Params.FlowRate, steady, final, 100*final/nonzero(steady))
	}
	return w.Flush()
}

func nonzero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
