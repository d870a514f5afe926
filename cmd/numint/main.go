package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kvanta/numint/internal/config"
	"github.com/kvanta/numint/internal/driver"
	"github.com/kvanta/numint/internal/observers"
	"github.com/kvanta/numint/internal/ode"
	"github.com/kvanta/numint/internal/steppers"
	"github.com/kvanta/numint/internal/storage"
	"github.com/kvanta/numint/internal/systems"
	"github.com/kvanta/numint/internal/tui"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	tolerance  float64
	stepper    string
	norm       string
	decimation uint
	configFile string
	preset     string
	doSave     bool
	doPlot     bool
	doPrint    bool
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numint",
		Short: "numerical integration of ordinary differential equations",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".numint", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "integrate a system and report the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runIntegration,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size (initial step size when adaptive)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "error tolerance (adaptive)")
	runCmd.Flags().StringVar(&stepper, "stepper", "rk4", "stepper: euler|trapezoidal|rk4|adaptive")
	runCmd.Flags().StringVar(&norm, "norm", "absolute", "adaptive error norm: absolute|relative|mixed")
	runCmd.Flags().UintVar(&decimation, "decimate", 0, "print every Nth step (0 = every step)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&doSave, "save", false, "persist the run")
	runCmd.Flags().BoolVar(&doPlot, "plot", true, "plot the trajectory")
	runCmd.Flags().BoolVar(&doPrint, "print", false, "print observed states to stdout")

	watchCmd := &cobra.Command{
		Use:   "watch [system]",
		Short: "live terminal view of a running integration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchIntegration,
	}
	watchCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	watchCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "error tolerance (adaptive)")
	watchCmd.Flags().StringVar(&stepper, "stepper", "rk4", "stepper: euler|trapezoidal|rk4|adaptive")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, watchCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig merges preset/config file/flags into one run description.
func resolveConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = config.DefaultConfig()
		cfg.Dt = dt
		cfg.Duration = duration
		cfg.Tolerance = tolerance
		cfg.Stepper = stepper
		cfg.Norm = norm
		cfg.Decimation = decimation
	}

	if len(args) > 0 {
		cfg.System = args[0]
	}
	return cfg, cfg.Validate()
}

func parseNorm(name string) (steppers.Norm, error) {
	switch name {
	case "", "absolute":
		return steppers.NormAbsolute, nil
	case "relative":
		return steppers.NormRelative, nil
	case "mixed":
		return steppers.NormMixed, nil
	}
	return 0, fmt.Errorf("unknown norm %q", name)
}

func buildStepper(cfg *config.Config) (ode.Stepper, error) {
	switch cfg.Stepper {
	case "euler":
		return steppers.NewEuler(), nil
	case "trapezoidal":
		return steppers.NewTrapezoidal(), nil
	case "", "rk4":
		return steppers.NewRK4(), nil
	case "adaptive":
		n, err := parseNorm(cfg.Norm)
		if err != nil {
			return nil, err
		}
		return steppers.NewAdaptiveRK4(cfg.Tolerance, steppers.WithErrorNorm(n)), nil
	}
	return nil, fmt.Errorf("unknown stepper %q", cfg.Stepper)
}

func lookupModel(cfg *config.Config) (systems.Model, error) {
	model, ok := systems.Registry()[cfg.System]
	if !ok {
		return systems.Model{}, fmt.Errorf("unknown system %q", cfg.System)
	}
	if len(cfg.InitState) > 0 {
		if len(cfg.InitState) != model.Dim {
			return systems.Model{}, fmt.Errorf("init_state has %d components, %s needs %d",
				len(cfg.InitState), model.Name, model.Dim)
		}
		model.Init = ode.State(cfg.InitState).Clone()
	}
	return model, nil
}

func runIntegration(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	model, err := lookupModel(cfg)
	if err != nil {
		return err
	}

	st, err := buildStepper(cfg)
	if err != nil {
		return err
	}

	d := driver.New(model.Sys, st)

	hist := observers.NewHistory(0)
	d.AddObserver(hist)
	if doPrint {
		d.AddObserver(observers.NewPrint(os.Stdout, cfg.Decimation))
	}

	runCfg := ode.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Tolerance:     cfg.Tolerance,
		ValidateState: true,
	}

	var result *ode.Result
	if st.Adaptive() {
		result, err = d.RunAdaptive(context.Background(), model.Init, runCfg)
	} else {
		result, err = d.Run(context.Background(), model.Init, runCfg)
	}
	if err != nil {
		return err
	}

	printSummary(cfg, result)

	if doPlot && hist.Len() > 1 {
		series := make([][]float64, model.Dim)
		for i := 0; i < model.Dim; i++ {
			series[i] = hist.Component(i)
		}
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Width(72),
			asciigraph.Height(16),
			asciigraph.Caption(fmt.Sprintf("%s (%s)", model.Name, cfg.Stepper)),
		))
	}

	if doSave {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.Save(cfg.System, cfg.Stepper, cfg.Dt, cfg.Duration, cfg.Tolerance, result)
		if err != nil {
			return err
		}
		fmt.Println(dimStyle.Render("saved as " + id))
	}

	return nil
}

func printSummary(cfg *config.Config, result *ode.Result) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("%s · %s", cfg.System, cfg.Stepper)))

	final := result.States[len(result.States)-1]
	finalT := result.Times[len(result.Times)-1]
	fmt.Printf("  steps    %d\n", result.StepsTaken)
	fmt.Printf("  t final  %.6f\n", finalT)
	fmt.Printf("  x final  %.6v\n", final)
	if cfg.Stepper == "adaptive" {
		fmt.Printf("  dt next  %.3e\n", result.FinalDt)
	}
	for _, e := range result.Errors {
		fmt.Println(dimStyle.Render("  warning: " + e.Error()))
	}
}

func watchIntegration(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Dt = dt
	cfg.Tolerance = tolerance
	cfg.Stepper = stepper
	if len(args) > 0 {
		cfg.System = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	model, err := lookupModel(cfg)
	if err != nil {
		return err
	}
	st, err := buildStepper(cfg)
	if err != nil {
		return err
	}

	return tui.Run(model.Name, model.Sys, st, model.Init, cfg.Dt)
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tSTEPPER\tSTEPS\tDT\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%s\n",
			r.ID, r.System, r.Stepper, r.StepsTaken, r.Dt,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
