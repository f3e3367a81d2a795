package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gearsim/internal/assembly"
	"github.com/san-kum/gearsim/internal/automation"
	"github.com/san-kum/gearsim/internal/config"
	"github.com/san-kum/gearsim/internal/export"
	"github.com/san-kum/gearsim/internal/gui"
	"github.com/san-kum/gearsim/internal/metrics"
	"github.com/san-kum/gearsim/internal/motion"
	"github.com/san-kum/gearsim/internal/scene"
	"github.com/san-kum/gearsim/internal/storage"
	"github.com/san-kum/gearsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	// Gear train
	sceneFile string
	idPrefix  string
	teeth     []int
	gearCount int
	// Motion parameters
	baseSpeed float64
	dampen    float64
	influence float64
	frameRate int
	// export-svg
	svgTime  float64
	svgOut   string
	svgTrace bool
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// defaultScenario spins the first gear one turn against the base direction.
const defaultScenario = `
name: default
duration_ms: 5000
drags:
  - gear: %s
    start_ms: 1000
    end_ms: 2000
    turns: -1
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "gearsim",
		Short: "interactive gear train animation",
		RunE:  runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&sceneFile, "scene", "", "scene file path (yaml)")
	pf.StringVar(&idPrefix, "prefix", scene.DefaultPrefix, "gear element id prefix")
	pf.IntSliceVar(&teeth, "teeth", nil, "signed tooth counts, one per gear")
	pf.IntVar(&gearCount, "gears", config.DefaultGearCount, "number of generated gears")
	pf.Float64Var(&baseSpeed, "base-speed", motion.DefaultBaseSpeed, "resting speed (deg/ms)")
	pf.Float64Var(&dampen, "dampen", motion.DefaultDampenFactor, "per tick pull toward base speed")
	pf.Float64Var(&influence, "influence", motion.DefaultMouseInfluenceFactor, "drag influence factor")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scripted drag scenario headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run speed and angle",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [scenario]",
		Short: "render a frame or a speed trace as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().Float64Var(&svgTime, "time", 0, "frame time in ms (0 renders the end of the run)")
	svgCmd.Flags().StringVar(&svgOut, "out", "gears.svg", "output file")
	svgCmd.Flags().BoolVar(&svgTrace, "trace", false, "render the speed trace instead of a frame")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the gear train in the terminal",
		RunE:  runLive,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the gear train in a window",
		RunE:  runGUI,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(headerStyle.Render("presets"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBASE\tDAMPEN\tINFLUENCE\tTEETH")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%+.3f\t%.3f\t%.3f\t%s\n", name, p.BaseSpeed, p.DampenFactor, p.MouseInfluenceFactor, describeTeeth(p))
			}
			return w.Flush()
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "sweep a motion parameter over a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dampen_factor", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.01, "minimum value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.5, "maximum value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of steps")

	sceneCmd := &cobra.Command{
		Use:   "scene [path]",
		Short: "write the configured gear train as a scene file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeScene,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, svgCmd, liveCmd, guiCmd, presetsCmd, sweepCmd, sceneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// loadConfig layers defaults, preset, config file and changed flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base-speed") {
		cfg.BaseSpeed = baseSpeed
	}
	if flags.Changed("dampen") {
		cfg.DampenFactor = dampen
	}
	if flags.Changed("influence") {
		cfg.MouseInfluenceFactor = influence
	}
	if flags.Changed("prefix") {
		cfg.IDPrefix = idPrefix
	}
	if flags.Changed("teeth") {
		cfg.Teeth = teeth
	}
	if flags.Changed("gears") {
		cfg.Gears = gearCount
	}
	if flags.Changed("scene") {
		cfg.Scene = sceneFile
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func buildAssembly(cfg *config.Config, logger *slog.Logger) (*assembly.Assembly, error) {
	sc, err := cfg.LoadScene()
	if err != nil {
		return nil, err
	}
	return assembly.Build(sc, assembly.Options{
		Params: cfg.Params(),
		Prefix: cfg.IDPrefix,
		Teeth:  cfg.Teeth,
		Logger: logger,
	})
}

func setup(cmd *cobra.Command) (*config.Config, *assembly.Assembly, *slog.Logger, error) {
	logger := newLogger()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	a, err := buildAssembly(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(a.Gears) == 0 {
		return nil, nil, nil, fmt.Errorf("no gears resolved with prefix %q", cfg.IDPrefix)
	}
	return cfg, a, logger, nil
}

func loadScenario(args []string, a *assembly.Assembly) (*automation.Scenario, error) {
	if len(args) > 0 {
		return automation.LoadScenario(args[0])
	}
	return automation.ParseScenario([]byte(fmt.Sprintf(defaultScenario, a.Gears[0].ID)))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, a, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(args, a)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s scenario...\n", sc.Name)
	start := time.Now()

	frames, err := automation.Run(ctx, sc, a)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	results := metrics.Evaluate(frames, metrics.Standard(cfg.BaseSpeed)...)
	meta := storage.RunMetadata{
		Scenario: sc.Name,
		Scene:    a.Scene.Name,
		Params:   cfg.Params(),
		Duration: sc.Duration,
		Metrics:  results,
	}
	for _, g := range a.Gears {
		meta.Gears = append(meta.Gears, g.ID)
		meta.Teeth = append(meta.Teeth, g.Teeth)
	}

	runID, err := st.Save(meta, frames)
	if err != nil {
		return err
	}
	logger.Debug("run saved", "id", runID, "frames", len(frames))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(frames))
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Standard(cfg.BaseSpeed) {
		fmt.Printf("  %s: %.6f\n", m.Name(), results[m.Name()])
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

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d runs in %s", len(runs), dataDir)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tGEARS\tBASE\tDAMPEN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fms\t%d\t%+.3f\t%.3f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			len(run.Gears),
			run.Params.BaseSpeed,
			run.Params.DampenFactor,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(frames))

	speed := make([]float64, len(frames))
	angle := make([]float64, len(frames))
	for i, f := range frames {
		speed[i] = f.Speed
		angle[i] = f.Angle
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{speed, "speed (deg/ms)"},
		{angle, "accumulated angle (deg)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, a, _, err := setup(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(args, a)
	if err != nil {
		return err
	}
	if svgTime > 0 && !svgTrace {
		sc.Duration = svgTime
	}

	ctx, cancel := signalContext()
	defer cancel()
	frames, err := automation.Run(ctx, sc, a)
	if err != nil {
		return err
	}

	var out string
	if svgTrace {
		out = export.TraceToSVG(frames, 800, 200, "#ffcc00")
	} else {
		out = export.FrameToSVG(a, 20)
	}
	if err := os.WriteFile(svgOut, []byte(out), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	_, a, _, err := setup(cmd)
	if err != nil {
		return err
	}
	return viz.Run(a, a.Scene.Name)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, a, _, err := setup(cmd)
	if err != nil {
		return err
	}
	gui.Run(a, a.Scene.Name, cfg.FPS)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, a, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(args, a)
	if err != nil {
		return err
	}

	sw := &automation.ParameterSweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, sw, sc, cfg.Params(), func(p motion.Params) (*assembly.Assembly, error) {
		c := *cfg
		c.BaseSpeed, c.DampenFactor, c.MouseInfluenceFactor = p.BaseSpeed, p.DampenFactor, p.MouseInfluenceFactor
		return buildAssembly(&c, logger)
	})
	if err != nil {
		return err
	}

	names := metrics.Standard(cfg.BaseSpeed)
	fmt.Println(headerStyle.Render(fmt.Sprintf("sweep %s over %s", sweepParam, sc.Name)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(sweepParam)}
	for _, m := range names {
		header = append(header, strings.ToUpper(m.Name()))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range results {
		row := []string{fmt.Sprintf("%.4f", r.Value)}
		for _, m := range names {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[m.Name()]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func writeScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.LoadScene()
	if err != nil {
		return err
	}
	if err := scene.Save(args[0], sc); err != nil {
		return err
	}
	fmt.Printf("wrote %d elements to %s\n", len(sc.Elements), args[0])
	return nil
}

func describeTeeth(c *config.Config) string {
	if c.Teeth == nil {
		return fmt.Sprintf("%d alternating", c.Gears)
	}
	parts := make([]string, len(c.Teeth))
	for i, n := range c.Teeth {
		parts[i] = fmt.Sprintf("%+d", n)
	}
	return strings.Join(parts, " ")
}
