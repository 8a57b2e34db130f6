package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/atomcloud/internal/cloud"
	"github.com/san-kum/atomcloud/internal/config"
	"github.com/san-kum/atomcloud/internal/gui"
	"github.com/san-kum/atomcloud/internal/metrics"
	"github.com/san-kum/atomcloud/internal/sim"
	"github.com/san-kum/atomcloud/internal/store"
	"github.com/san-kum/atomcloud/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	atoms      int
	dt         float64
	duration   float64
	seed       int64
	frameRate  int
	winWidth   int
	winHeight  int
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atomcloud",
		Short: "real-time particle-cloud simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".atomcloud", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and archive the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}
	addSimFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run with windowed visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}
	addSimFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run's centroid trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write an archived run's frames as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write an archived run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput across population sizes",
		RunE:  benchCloud,
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&atoms, "atoms", config.DefaultAtoms, "number of atoms")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().IntVar(&winWidth, "width", config.DefaultWidth, "window width")
	cmd.Flags().IntVar(&winHeight, "height", config.DefaultHeight, "window height")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("atoms") {
		cfg.Atoms = atoms
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = frameRate
	}
	if cmd.Flags().Changed("width") {
		cfg.Window.Width = winWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Window.Height = winHeight
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runCfg := sim.Config{
		Atoms:         cfg.Atoms,
		Seed:          cfg.Seed,
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		ValidateState: true,
	}

	runner := sim.NewRunner(cloud.New(runCfg.Atoms, runCfg.Seed))
	runner.AddMetric(metrics.NewCentroidDrift())
	runner.AddMetric(metrics.NewKineticEnergy())
	runner.AddMetric(metrics.NewSpread())

	fmt.Printf("running %d atoms for %.1fs at dt=%.4fs...\n", runCfg.Atoms, runCfg.Duration, runCfg.Dt)
	start := time.Now()

	result, err := runner.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(runCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tATOMS\tDURATION\tDT\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Atoms,
			run.Duration,
			run.Dt,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("atoms: %d\n", meta.Atoms)
	fmt.Printf("samples: %d\n\n", len(frames))

	captions := []string{"centroid x", "centroid y", "centroid z"}
	for axis := 0; axis < 3; axis++ {
		data := make([]float64, len(frames))
		for i, frame := range frames {
			sum := 0.0
			for _, p := range frame {
				sum += float64(p[axis])
			}
			if len(frame) > 0 {
				data[i] = sum / float64(len(frame))
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[axis]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return store.ExportCSV(os.Stdout, frames, times)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta, frames, times)
}

func benchCloud(cmd *cobra.Command, args []string) error {
	populations := []int{10, 20, 50, 100}
	dts := []float64{1.0 / 240.0, 1.0 / 60.0}
	const steps = 1000

	fmt.Println("benchmarking cloud step")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ATOMS\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range populations {
		for _, stepDt := range dts {
			c := cloud.New(n, 42)

			start := time.Now()
			for i := 0; i < steps; i++ {
				c.Step(float32(stepDt))
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.4fs\t%d\t%v\t%.0f\n",
				n, stepDt, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
