package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/bounceball/internal/analysis"
	"github.com/san-kum/bounceball/internal/automation"
	"github.com/san-kum/bounceball/internal/config"
	"github.com/san-kum/bounceball/internal/dynamo"
	"github.com/san-kum/bounceball/internal/env"
	"github.com/san-kum/bounceball/internal/experiment"
	"github.com/san-kum/bounceball/internal/export"
	"github.com/san-kum/bounceball/internal/optim"
	"github.com/san-kum/bounceball/internal/physics"
	"github.com/san-kum/bounceball/internal/storage"
	"github.com/san-kum/bounceball/internal/viz"
)

const indexFile = "episodes.db"

var (
	dataDir  string
	logLevel string
	logger   *log.Logger

	dt         float64
	maxSteps   int
	gravity    float64
	seed       int64
	policy     string
	hitProb    float64
	every      int
	target     float64
	kp         float64
	kd         float64
	configFile string
	preset     string

	live      bool
	frameRate int
	noSave    bool

	episodes int
	workers  int
	record   bool

	outFile   string
	svgWidth  int
	svgHeight int
	plotWidth int

	grid      int
	topPolicy string
	topLimit  int

	tuneParams []string
	sweepSpec  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bounceball",
		Short: "bouncing ball episode lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(logLevel)
			return err
		},
		RunE: playEpisode,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bounceball", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play one episode and store it",
		Args:  cobra.NoArgs,
		RunE:  runEpisode,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&live, "live", false, "draw the ball while the episode runs")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "play many seeded episodes in parallel and summarize them",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&episodes, "episodes", 32, "number of episodes")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	ensembleCmd.Flags().BoolVar(&record, "record", false, "record every episode in the index")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "position/velocity phase plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "image height")
	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd, exportSVGCmd} {
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "check where bounce contact times fall inside a step",
		Args:  cobra.NoArgs,
		RunE:  auditContacts,
	}
	addSimFlags(auditCmd)
	auditCmd.Flags().IntVar(&grid, "grid", 200, "grid points per axis")
	auditCmd.Flags().IntVar(&episodes, "episodes", 200, "episodes to replay")

	topCmd := &cobra.Command{
		Use:   "top",
		Short: "best recorded episodes",
		Args:  cobra.NoArgs,
		RunE:  topEpisodes,
	}
	topCmd.Flags().StringVar(&topPolicy, "policy", "", "only this policy")
	topCmd.Flags().IntVar(&topLimit, "limit", 10, "number of episodes")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search policy parameters for the best mean return",
		Args:  cobra.NoArgs,
		RunE:  tunePolicy,
	}
	addSimFlags(tuneCmd)
	tuneCmd.Flags().IntVar(&episodes, "episodes", 16, "episodes per grid point")
	tuneCmd.Flags().StringSliceVar(&tuneParams, "param", nil, "name=lo:hi:n, repeatable (e.g. target=40:120:5)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play episodes in the terminal (space swings the paddle)",
		Args:  cobra.NoArgs,
		RunE:  playEpisode,
	}
	addSimFlags(playCmd)

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "run the ensembles scripted in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "summarize an ensemble for each value of one parameter",
		Args:  cobra.NoArgs,
		RunE:  sweepParam,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&episodes, "episodes", 16, "episodes per value")
	sweepCmd.Flags().StringVar(&sweepSpec, "param", "gravity=-15:-3:5", "name=lo:hi:n")

	rootCmd.AddCommand(runCmd, ensembleCmd, listCmd, plotCmd, phaseCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, auditCmd, topCmd, tuneCmd,
		scenarioCmd, sweepCmd, playCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*log.Logger, error) {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bounceball",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("bad --log-level %q: %w", level, err)
	}
	l.SetLevel(lvl)
	return l, nil
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", dynamo.DefaultTimeStep, "timestep")
	cmd.Flags().IntVar(&maxSteps, "steps", dynamo.DefaultMaxSteps, "step limit per episode")
	cmd.Flags().Float64Var(&gravity, "gravity", dynamo.DefaultGravity, "gravitational acceleration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&policy, "policy", config.DefaultPolicy, "policy (none, random, periodic, energy)")
	cmd.Flags().Float64Var(&hitProb, "p", config.DefaultP, "hit probability (random)")
	cmd.Flags().IntVar(&every, "every", config.DefaultEvery, "hit period in steps (periodic)")
	cmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "target energy (energy)")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "energy error gain (energy)")
	cmd.Flags().Float64Var(&kd, "kd", 0, "energy rate gain (energy)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.TimeStep = dt
	}
	if flags.Changed("steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("p") {
		cfg.PolicyParams.P = hitProb
	}
	if flags.Changed("every") {
		cfg.PolicyParams.Every = every
	}
	if flags.Changed("target") {
		cfg.PolicyParams.Target = target
	}
	if flags.Changed("kp") {
		cfg.PolicyParams.Kp = kp
	}
	if flags.Changed("kd") {
		cfg.PolicyParams.Kd = kd
	}
	if flags.Changed("episodes") {
		cfg.Episodes = episodes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runEpisode(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	expCfg := cfg.ToExperiment()
	expCfg.Params["seed"] = float64(cfg.Seed) + 1

	registry := experiment.NewRegistry()
	ctrl, err := registry.GetPolicy(expCfg.Policy, expCfg.Params)
	if err != nil {
		return err
	}

	var observers []dynamo.Observer
	var renderer *viz.LiveRenderer
	if live {
		renderer = viz.NewLiveRenderer(os.Stdout, frameRate)
		observers = append(observers, frameDelay(renderer, cfg.TimeStep))
	}

	exp := experiment.New(expCfg)
	exp.SetLogger(logger)
	if err := exp.Setup(ctrl, registry.DefaultMetrics(cfg.Gravity), observers...); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running episode", "policy", cfg.Policy, "seed", cfg.Seed, "dt", cfg.TimeStep)
	if renderer != nil {
		renderer.Start()
	}
	start := time.Now()
	result, err := exp.Run(ctx)
	if renderer != nil {
		renderer.Stop()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("return: %.0f\n", result.Return)
	fmt.Printf("bounces: %d\n", result.Bounces)
	fmt.Printf("outcome: %s\n", outcome(result.Terminated, result.Truncated))
	fmt.Println("\nmetrics:")
	for _, m := range registry.DefaultMetrics(cfg.Gravity) {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.NewMetadata(cfg.Policy, expCfg.Dynamo(), result)
	runID, err := st.Save(meta, exp.Trajectory())
	if err != nil {
		return err
	}
	meta.ID = runID
	fmt.Printf("run id: %s\n", runID)

	idx, err := storage.OpenIndex(filepath.Join(dataDir, indexFile))
	if err != nil {
		return err
	}
	defer idx.Close()
	return idx.Record(meta)
}

// frameDelay slows the episode to roughly real time so the live view is
// watchable.
func frameDelay(o dynamo.Observer, step float64) dynamo.Observer {
	return observerFunc(func(x dynamo.State, a dynamo.Action, t float64) {
		o.OnStep(x, a, t)
		time.Sleep(time.Duration(step * float64(time.Second)))
	})
}

type observerFunc func(x dynamo.State, a dynamo.Action, t float64)

func (f observerFunc) OnStep(x dynamo.State, a dynamo.Action, t float64) { f(x, a, t) }

func outcome(terminated, truncated bool) string {
	switch {
	case terminated:
		return "terminated (ball at rest)"
	case truncated:
		return "truncated (step limit)"
	}
	return "running"
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	n := cfg.Episodes
	if !cmd.Flags().Changed("episodes") && preset == "" && configFile == "" {
		n = episodes
	}

	ens := experiment.NewEnsemble(cfg.ToExperiment(), n, cfg.Seed)
	ens.SetWorkers(workers)

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running ensemble", "policy", cfg.Policy, "episodes", n, "seed", cfg.Seed)
	start := time.Now()
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("ensemble complete", "elapsed", time.Since(start))

	s := analysis.Summarize(results)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "episodes\t%d\n", s.Episodes)
	fmt.Fprintf(w, "steps\tmean %.1f\tstd %.1f\tmedian %.0f\n", s.MeanSteps, s.StdSteps, s.MedianSteps)
	fmt.Fprintf(w, "return\tmean %.1f\tstd %.1f\tmedian %.0f\n", s.MeanReturn, s.StdReturn, s.MedianReturn)
	fmt.Fprintf(w, "bounces\tmean %.1f\n", s.MeanBounces)
	fmt.Fprintf(w, "terminated\t%.1f%%\n", 100*s.TerminationRate)
	fmt.Fprintf(w, "truncated\t%.1f%%\n", 100*s.TruncationRate)
	if err := w.Flush(); err != nil {
		return err
	}

	if !record {
		return nil
	}

	idx, err := storage.OpenIndex(filepath.Join(dataDir, indexFile))
	if err != nil {
		return err
	}
	defer idx.Close()

	stamp := time.Now().UnixNano()
	dyn := cfg.Dynamo()
	for _, r := range results {
		meta := storage.NewMetadata(cfg.Policy, dyn, r)
		meta.ID = fmt.Sprintf("ensemble_%s_%d_%d", cfg.Policy, r.Seed, stamp)
		if err := idx.Record(meta); err != nil {
			return err
		}
	}
	logger.Info("recorded episodes", "count", len(results))
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
	fmt.Fprintln(w, "ID\tPOLICY\tTIME\tSEED\tSTEPS\tRETURN\tOUTCOME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.0f\t%s\n",
			run.ID,
			run.Policy,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Steps,
			run.Return,
			outcome(run.Terminated, run.Truncated),
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []env.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("policy: %s  seed: %d\n", meta.Policy, meta.Seed)
	fmt.Printf("samples: %d\n\n", len(samples))
	fmt.Print(viz.PlotTrajectory(samples, plotWidth, 10))
	if period := analysis.DominantPeriod(samples, meta.TimeStep); period > 0 {
		fmt.Printf("\ndominant bounce period: %.2fs\n", period)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("phase portrait: %s (position vs velocity)\n\n", meta.ID)
	fmt.Print(analysis.PhasePortraitToASCII(analysis.PhasePortrait(samples), 70, 24))
	return nil
}

// output returns stdout or the --out file.
func output() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, samples); err != nil {
		done()
		return err
	}
	return done()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, samples); err != nil {
		done()
		return err
	}
	return done()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := output()
	if err != nil {
		return err
	}
	if err := export.WriteSVG(w, samples, svgWidth, svgHeight); err != nil {
		done()
		return err
	}
	if outFile != "" {
		logger.Info("wrote svg", "path", outFile)
	}
	return done()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOLICY\tDT\tSTEPS\tGRAVITY\tEPISODES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%.2f\t%d\n",
			name, p.Policy, p.TimeStep, p.MaxSteps, p.Gravity, p.Episodes)
	}
	return w.Flush()
}

func auditContacts(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ball := physics.NewBall()
	ball.Gravity = cfg.Gravity
	fmt.Printf("grid:     %s\n", analysis.AuditContactTimes(ball, cfg.TimeStep, grid))

	expCfg := cfg.ToExperiment()
	expCfg.Params["seed"] = float64(cfg.Seed) + 1
	ctrl, err := experiment.NewRegistry().GetPolicy(cfg.Policy, expCfg.Params)
	if err != nil {
		return err
	}
	audit, err := analysis.AuditEpisodes(cfg.Dynamo(), ctrl, episodes)
	if err != nil {
		return err
	}
	fmt.Printf("episodes: %s\n", audit)
	if audit.Late > 0 {
		logger.Warn("contacts resolved after the step ended", "count", audit.Late)
	}
	return nil
}

func topEpisodes(cmd *cobra.Command, args []string) error {
	idx, err := storage.OpenIndex(filepath.Join(dataDir, indexFile))
	if err != nil {
		return err
	}
	defer idx.Close()

	entries, err := idx.Top(topPolicy, topLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no episodes recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tRUN\tPOLICY\tSEED\tSTEPS\tRETURN\tOUTCOME")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%.0f\t%s\n",
			i+1, e.RunID, e.Policy, e.Seed, e.Steps, e.Return, outcome(e.Terminated, e.Truncated))
	}
	return w.Flush()
}

func playEpisode(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if cmd.Flags().Lookup("dt") != nil {
		var err error
		if cfg, err = resolveConfig(cmd); err != nil {
			return err
		}
	}

	e, err := env.New(cfg.Dynamo(), env.WithLogger(logger))
	if err != nil {
		return err
	}

	// manual unless a policy was asked for
	var ctrl dynamo.Controller
	if cmd.Flags().Changed("policy") || (configFile != "" && cfg.Policy != config.DefaultPolicy) {
		params := cfg.GetPolicyParams()
		params["seed"] = float64(cfg.Seed) + 1
		if ctrl, err = experiment.NewRegistry().GetPolicy(cfg.Policy, params); err != nil {
			return err
		}
	}

	logger.Debug("starting play", "seed", cfg.Seed, "manual", ctrl == nil)
	return viz.Run(viz.NewPlayModel(e, ctrl, cfg.Seed))
}

// parseRange reads "name=lo:hi:n".
func parseRange(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	parts := strings.Split(rng, ":")
	if !ok || name == "" || len(parts) != 3 {
		return "", nil, fmt.Errorf("bad --param %q, want name=lo:hi:n", spec)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad --param %q: %w", spec, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad --param %q: %w", spec, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("bad --param %q: n must be a positive integer", spec)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func tunePolicy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(tuneParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, spec := range tuneParams {
		name, values, err := parseRange(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	expCfg := cfg.ToExperiment()
	search := optim.NewGridSearch(names, ranges)

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("tuning", "policy", cfg.Policy, "params", names, "episodes", episodes)
	best, score, err := search.Search(ctx, expCfg.Params, optim.MeanReturn(expCfg, episodes, cfg.Seed))
	if err != nil {
		return err
	}

	sort.Strings(names)
	fmt.Printf("best mean return: %.1f\n", score)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, best[name])
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running scenario", "name", sc.Name, "steps", len(sc.Steps))
	reports, err := automation.RunScenario(ctx, sc, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPOLICY\tEPISODES\tMEAN STEPS\tMEAN RETURN\tTERMINATED")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.1f\t%.0f%%\n",
			r.Name, r.Policy, r.Summary.Episodes, r.Summary.MeanSteps, r.Summary.MeanReturn, 100*r.Summary.TerminationRate)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func sweepParam(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	name, values, err := parseRange(sweepSpec)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      cfg.ToExperiment(),
		Param:     name,
		Min:       values[0],
		Max:       values[len(values)-1],
		NumSteps:  len(values),
		Episodes:  episodes,
		SeedStart: cfg.Seed,
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, sweep, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN STEPS\tMEAN RETURN\tMEAN BOUNCES\tTERMINATED\n", strings.ToUpper(name))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.1f\t%.1f\t%.1f\t%.0f%%\n",
			r.Value, r.Summary.MeanSteps, r.Summary.MeanReturn, r.Summary.MeanBounces, 100*r.Summary.TerminationRate)
	}
	return w.Flush()
}
