package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/constellation/internal/camera"
	"github.com/san-kum/constellation/internal/config"
	"github.com/san-kum/constellation/internal/content"
	"github.com/san-kum/constellation/internal/export"
	"github.com/san-kum/constellation/internal/frame"
	"github.com/san-kum/constellation/internal/globe"
	"github.com/san-kum/constellation/internal/layout"
	"github.com/san-kum/constellation/internal/metrics"
	"github.com/san-kum/constellation/internal/pick"
	"github.com/san-kum/constellation/internal/render"
	"github.com/san-kum/constellation/internal/scene"
	"github.com/san-kum/constellation/internal/sim"
	"github.com/san-kum/constellation/internal/storage"
	"github.com/san-kum/constellation/internal/telemetry"
	"github.com/san-kum/constellation/internal/viz"
	"github.com/spf13/cobra"
)

// builtinContent selects the built-in payload list for --content.
const builtinContent = "builtin"

// Output colours; fatih/color drops them when stdout is not a terminal.
var (
	brand  = color.New(color.FgHiCyan, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
)

var (
	dataDir     string
	configFile  string
	preset      string
	contentFile string
	seed        int64
	count       int
	k           int
	radius      float64
	fps         int
	duration    float64
	sampleEvery int
	// Ensemble
	numRuns  int
	parallel int
	// Live view
	themeName   string
	noGlobe     bool
	pickPreset  bool
	metricsAddr string
	logFile     string
	logLevel    string
	// Export
	output  string
	width   int
	height  int
	braille bool
	svgOut  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "constellation",
		Short:        "drifting kNN node cloud in the terminal",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".constellation", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the node cloud in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&themeName, "theme", viz.ThemeNight.Name, "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().BoolVar(&noGlobe, "no-globe", false, "hide the globe panel")
	liveCmd.Flags().BoolVar(&pickPreset, "pick", false, "choose a preset from a menu first")
	liveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	liveCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "record a headless run to the data directory",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "ticks between position samples")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run, starting at --seed")
	runCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent runs (0 = unlimited)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot max radius and mean edge length of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgOut, "svg", "", "also write the mean edge series to this SVG file")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render the first frame to SVG",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	addSceneFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 600, "image height")
	exportSVGCmd.Flags().StringVar(&themeName, "theme", viz.ThemeNight.Name, "colour theme")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "render through the terminal rasterizer")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tNODES\tK\tPROXY\tAMPLITUDE\tAUTO-ROTATE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%g\t%g\n", name, p.Nodes.Count, p.Nodes.K, p.Nodes.Proxy, p.Motion.Amplitude, p.Camera.AutoRotate)
			}
			return w.Flush()
		},
	}

	globeCmd := &cobra.Command{
		Use:   "globe",
		Short: "print the globe arc and its distance label",
		Args:  cobra.NoArgs,
		RunE:  showGlobe,
	}
	globeCmd.Flags().StringVar(&svgOut, "svg", "", "write the braille globe to this SVG file")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, presetsCmd, globeCmd)
	return rootCmd
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&contentFile, "content", "", "payload file (yaml/json), or \"builtin\"")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&count, "count", config.DefaultCount, "node count when no content is given")
	cmd.Flags().IntVar(&k, "k", config.DefaultK, "neighbours per node")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "sampling sphere radius")
}

// resolveConfig layers flags over the config file over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("count") {
		cfg.Nodes.Count = count
	}
	if flags.Changed("k") {
		cfg.Nodes.K = k
	}
	if flags.Changed("radius") {
		cfg.Nodes.Radius = radius
	}
	if flags.Changed("content") {
		cfg.Content = contentFile
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = fps
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadContent(cfg *config.Config) ([]scene.Payload, error) {
	switch cfg.Content {
	case "":
		return nil, nil
	case builtinContent:
		return content.Default(), nil
	default:
		return content.Load(cfg.Content)
	}
}

func newLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func buildScene(cfg *config.Config) (*scene.Scene, error) {
	payloads, err := loadContent(cfg)
	if err != nil {
		return nil, err
	}
	return layout.Build(cfg.Layout(), payloads, rand.New(rand.NewSource(cfg.Seed)))
}

func runLive(cmd *cobra.Command, args []string) error {
	if pickPreset && !cmd.Flags().Changed("preset") {
		chosen, err := viz.RunPicker(config.ListPresets())
		if err != nil {
			return err
		}
		if chosen == "" {
			return nil
		}
		preset = chosen
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs only go to a file.
	logger := newLogger(io.Discard)
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "constellation")
		if err != nil {
			return err
		}
		defer f.Close()
		logger = newLogger(f)
	}

	s, err := buildScene(cfg)
	if err != nil {
		return err
	}

	host := viz.NewHost(80, 24)
	pw, ph := host.Backend.Canvas.Pixels()
	cam := cfg.NewCamera(float64(pw) / float64(ph))
	resolver := pick.NewResolver(pick.BrowserNavigator{}, cfg.Render.HoverSwap)
	d := frame.New(s, cam, cfg.NewOrbit(cam), host.Backend, resolver, host.Scheduler, frame.Options{
		Drift:     cfg.Drift(),
		TimeScale: cfg.Motion.TimeScale,
		Billboard: cfg.Render.Billboard,
		Logger:    logger,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if metricsAddr != "" {
		go func() {
			if err := telemetry.Serve(ctx, metricsAddr, logger); err != nil {
				logger.Error("metrics server", "error", err)
			}
		}()
	}

	var orn *globe.Ornament
	if !noGlobe {
		orn = globe.NewOrnament(globe.DefaultOptions())
	}

	theme := viz.GetTheme(themeName)
	logger.Info("starting live view", "preset", cfg.Preset, "seed", cfg.Seed, "nodes", s.Len(), "edges", s.EdgeCount())
	m := viz.NewModel(host, d, viz.Options{
		FPS:      cfg.Render.FPS,
		Title:    cfg.Preset,
		Theme:    theme.Name,
		Globe:    orn,
		Snapshot: snapshotter(filepath.Join(dataDir, "snapshots"), theme),
		Logger:   logger,
	})
	return viz.Run(m)
}

// snapshotter returns the live view's s-key handler, writing SVG frames
// under dir.
func snapshotter(dir string, theme viz.Theme) func(*scene.Scene, *camera.Camera) (string, error) {
	return func(s *scene.Scene, cam *camera.Camera) (string, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame-%s.svg", time.Now().Format("20060102-150405.000")))
		w, h := 1200, int(1200/cam.Aspect)
		return path, os.WriteFile(path, []byte(export.FrameSVG(s, cam, w, h, theme)), 0644)
	}
}

func defaultMetrics(cfg *config.Config) func() []sim.Metric {
	return func() []sim.Metric {
		return []sim.Metric{
			metrics.NewMaxRadius(),
			metrics.NewContainment(cfg.Bound()),
			metrics.NewMeanEdgeLength(),
			metrics.NewEdgeStretch(),
		}
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	payloads, err := loadContent(cfg)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	newMetrics := defaultMetrics(cfg)
	start := time.Now()

	var results []*sim.Result
	if numRuns > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "running %d seeds from %d...\n", numRuns, cfg.Seed)
		ens := sim.NewEnsemble(numRuns, cfg.Seed, newMetrics, logger)
		ens.SetLimit(parallel)
		results, err = ens.Run(cmd.Context(), cfg, payloads)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "running %s for %.1fs at %d fps...\n", cfg.Preset, cfg.Run.Duration, cfg.Render.FPS)
		runner := sim.New(logger)
		for _, m := range newMetrics() {
			runner.AddMetric(m)
		}
		var res *sim.Result
		res, err = runner.Run(cmd.Context(), cfg, payloads)
		results = []*sim.Result{res}
	}
	if err != nil {
		return err
	}

	good.Fprintf(cmd.OutOrStdout(), "completed in %v\n", time.Since(start))
	for _, res := range results {
		runCfg := *cfg
		runCfg.Seed = res.Seed
		runID, err := st.Save(&runCfg, res)
		if err != nil {
			return err
		}
		brand.Fprintf(cmd.OutOrStdout(), "\nrun id: %s\n", runID)
		fmt.Fprintf(cmd.OutOrStdout(), "seed: %d  nodes: %d  edges: %d  ticks: %d\n", res.Seed, res.Nodes, res.Edges, res.Ticks)
		subtle.Fprintln(cmd.OutOrStdout(), "metrics:")
		for _, m := range newMetrics() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %.6f\n", m.Name(), res.Metrics[m.Name()])
		}
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
		subtle.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tNODES\tEDGES\tK\tTICKS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Nodes,
			run.Edges,
			run.K,
			run.Ticks,
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
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("run %s has %d samples, need at least 2 to plot", runID, len(samples))
	}

	radii := make([]float64, len(samples))
	edges := make([]float64, len(samples))
	for i, smp := range samples {
		radii[i] = smp.MaxRadius
		edges[i] = smp.MeanEdge
	}

	out := cmd.OutOrStdout()
	brand.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "preset: %s  bound: %.3f\n", meta.Preset, meta.Bound)
	fmt.Fprintf(out, "samples: %d\n\n", len(samples))

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{radii, "max radius"},
		{edges, "mean edge length"},
	} {
		fmt.Fprintln(out, asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		))
		fmt.Fprintln(out)
	}

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.SeriesToSVG(edges, 800, 200, string(viz.ThemeNight.Node))), 0644); err != nil {
			return err
		}
		good.Fprintf(out, "wrote %s\n", svgOut)
	}
	return nil
}

func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if err := storage.New(dataDir).ExportJSON(w, args[0]); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

// exportSVG builds the scene, drives one frame through the driver and
// writes it out.
func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := buildScene(cfg)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	theme := viz.GetTheme(themeName)

	var backend render.Backend = render.NewRecorder(1)
	var term *viz.TermBackend
	aspect := float64(width) / float64(height)
	if braille {
		// one cell is 8x16 pixels; the canvas keeps the image size
		term = viz.NewTermBackend(max(width/8, 1), max(height/16, 1))
		pw, ph := term.Canvas.Pixels()
		backend, aspect = term, float64(pw)/float64(ph)
	}

	cam := cfg.NewCamera(aspect)
	sched := frame.NewManualScheduler()
	d := frame.New(s, cam, cfg.NewOrbit(cam), backend, nil, sched, frame.Options{
		Drift:     cfg.Drift(),
		TimeScale: cfg.Motion.TimeScale,
		Billboard: cfg.Render.Billboard,
		Logger:    newLogger(cmd.ErrOrStderr()),
	})
	d.Start(nil, sim.Origin)
	sched.Fire(sim.Origin)
	if err := d.Err(); err != nil {
		return err
	}

	var doc string
	if braille {
		doc = export.CanvasToSVG(term.Canvas, 4, theme)
	} else {
		doc = export.FrameSVG(s, cam, width, height, theme)
	}
	if err := d.Teardown(); err != nil {
		return err
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, doc+"\n"); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func showGlobe(cmd *cobra.Command, args []string) error {
	opts := globe.DefaultOptions()
	orn := globe.NewOrnament(opts)
	start, end := orn.Endpoints()
	apex := orn.Apex()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%.4f, %.4f) -> %s (%.4f, %.4f)\n", opts.From.Name, opts.From.Lat, opts.From.Lon, opts.To.Name, opts.To.Lat, opts.To.Lon)
	fmt.Fprintf(out, "great circle: %s\n", brand.Sprint(orn.Label))
	fmt.Fprintf(out, "start: (%.3f, %.3f, %.3f)\n", start.X, start.Y, start.Z)
	fmt.Fprintf(out, "end:   (%.3f, %.3f, %.3f)\n", end.X, end.Y, end.Z)
	fmt.Fprintf(out, "apex:  (%.3f, %.3f, %.3f)\n", apex.X, apex.Y, apex.Z)

	c := viz.NewCanvas(40, 20)
	viz.DrawGlobe(c, orn)
	fmt.Fprint(out, "\n"+c.String())

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(c, 4, viz.ThemeNight)), 0644); err != nil {
			return err
		}
		good.Fprintf(out, "wrote %s\n", svgOut)
	}
	return nil
}
