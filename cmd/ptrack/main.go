package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/ptrack/internal/config"
	"github.com/san-kum/ptrack/internal/estimate"
	"github.com/san-kum/ptrack/internal/inference"
	"github.com/san-kum/ptrack/internal/report"
	"github.com/san-kum/ptrack/internal/storage"
	"github.com/san-kum/ptrack/internal/synth"
)

var (
	dataDir    string
	configFile string
	preset     string

	// mle / posterior
	lowerLog10  float64
	upperLog10  float64
	intervals   int
	unknownName string
	radius      float64
	viscosity   float64
	temperature float64
	theta       float64
	priorName   string
	priorLower  float64
	priorUpper  float64

	// cgw
	maxLag     int
	downSample int
	doFit      bool

	// simulate
	simDim   int
	simSteps int
	simD     float64
	simSigma float64
	simDt    float64
	simSeed  uint64
	simOut   string
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd := &cobra.Command{
		Use:   "ptrack",
		Short: "diffusion coefficient inference from particle tracks",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ptrack", "data directory")

	mleCmd := &cobra.Command{
		Use:   "mle [trajectory.csv]",
		Short: "grid-search maximum likelihood estimate",
		Args:  cobra.ExactArgs(1),
		RunE:  runMLE,
	}
	mleCmd.Flags().Float64Var(&lowerLog10, "lower", config.DefaultGridLower, "log10 of grid lower bound")
	mleCmd.Flags().Float64Var(&upperLog10, "upper", config.DefaultGridUpper, "log10 of grid upper bound")
	mleCmd.Flags().IntVar(&intervals, "intervals", config.DefaultIntervals, "grid points")
	mleCmd.Flags().StringVar(&unknownName, "unknown", "D", "unknown parameter (D, a, mu, T)")
	mleCmd.Flags().Float64Var(&radius, "radius", 0, "known particle radius (m)")
	mleCmd.Flags().Float64Var(&viscosity, "viscosity", 0, "known dynamic viscosity (Pa*s)")
	mleCmd.Flags().Float64Var(&temperature, "temperature", 0, "known temperature (K)")
	mleCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	mleCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	cgwCmd := &cobra.Command{
		Use:   "cgw [trajectory.csv]",
		Short: "Crocker-Grier-Weeks MSD analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runCGW,
	}
	cgwCmd.Flags().IntVar(&maxLag, "max-lag", config.DefaultMaxLag, "maximum lag count")
	cgwCmd.Flags().IntVar(&downSample, "down-sample", config.DefaultDownSample, "stride between lags")
	cgwCmd.Flags().BoolVar(&doFit, "fit", false, "fit MSD curve for D")

	posteriorCmd := &cobra.Command{
		Use:   "posterior [trajectory.csv]",
		Short: "evaluate the log posterior at a point",
		Args:  cobra.ExactArgs(1),
		RunE:  runPosterior,
	}
	posteriorCmd.Flags().Float64Var(&theta, "theta", 0, "parameter value to evaluate")
	posteriorCmd.Flags().StringVar(&unknownName, "unknown", "D", "unknown parameter (D, a, mu, T)")
	posteriorCmd.Flags().StringVar(&priorName, "prior", config.DefaultPrior, "prior family (Jeffreys, Uniform)")
	posteriorCmd.Flags().Float64Var(&priorLower, "prior-lower", config.DefaultPriorLower, "prior lower bound")
	posteriorCmd.Flags().Float64Var(&priorUpper, "prior-upper", config.DefaultPriorUpper, "prior upper bound")
	posteriorCmd.Flags().Float64Var(&radius, "radius", 0, "known particle radius (m)")
	posteriorCmd.Flags().Float64Var(&viscosity, "viscosity", 0, "known dynamic viscosity (Pa*s)")
	posteriorCmd.Flags().Float64Var(&temperature, "temperature", 0, "known temperature (K)")
	_ = posteriorCmd.MarkFlagRequired("theta")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "generate a synthetic diffusion trajectory",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().IntVar(&simDim, "dim", 3, "dimensions (1-3)")
	simulateCmd.Flags().IntVar(&simSteps, "steps", 1000, "number of records")
	simulateCmd.Flags().Float64Var(&simD, "d", 1e-12, "diffusion coefficient (m^2/s)")
	simulateCmd.Flags().Float64Var(&simSigma, "sigma", 1e-9, "measurement noise (m)")
	simulateCmd.Flags().Float64Var(&simDt, "dt", 1.0, "time step (s)")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", uint64(time.Now().UnixNano()), "random seed")
	simulateCmd.Flags().StringVar(&simOut, "out", "track.csv", "output file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	rootCmd.AddCommand(mleCmd, cgwCmd, posteriorCmd, simulateCmd, listCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadRunConfig resolves config file, preset, and flag overrides in that
// order of increasing precedence.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		// Copy so flag overrides never touch the shared preset.
		c := *p
		cfg = &c
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("lower") {
		cfg.Grid.LowerLog10 = lowerLog10
	}
	if cmd.Flags().Changed("upper") {
		cfg.Grid.UpperLog10 = upperLog10
	}
	if cmd.Flags().Changed("intervals") {
		cfg.Grid.Intervals = intervals
	}
	if cmd.Flags().Changed("unknown") {
		cfg.Unknown = unknownName
	}
	if cmd.Flags().Changed("radius") {
		cfg.Known.Radius = radius
	}
	if cmd.Flags().Changed("viscosity") {
		cfg.Known.Viscosity = viscosity
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Known.Temperature = temperature
	}
	return cfg, nil
}

func runMLE(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	tr, err := storage.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if !tr.TimesIncreasing() {
		return fmt.Errorf("%s: timestamps are not strictly increasing", args[0])
	}

	unknown, err := inference.ParseUnknown(cfg.Unknown)
	if err != nil {
		return err
	}
	known := inference.Constants{
		Radius:      cfg.Known.Radius,
		Viscosity:   cfg.Known.Viscosity,
		Temperature: cfg.Known.Temperature,
	}

	res, err := estimate.MLE(context.Background(), tr, unknown, known,
		cfg.Grid.LowerLog10, cfg.Grid.UpperLog10, cfg.Grid.Intervals)
	if err != nil {
		return err
	}

	fmt.Print(report.MLESummary(res, unknown))
	fmt.Println(report.LogLikSketch(res, fmt.Sprintf("log-likelihood over %s grid", unknown)))

	if res.EdgeTouching() {
		logrus.Warn("confidence band touches the grid edge; widen --lower/--upper")
	}
	if res.Disjoint {
		logrus.Warn("likelihood multimodal at this grid resolution")
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	disjoint := 0.0
	if res.Disjoint {
		disjoint = 1
	}
	runID, err := store.Save(storage.RunMetadata{
		Kind:    "mle",
		Dim:     tr.Dim(),
		Points:  tr.Len(),
		Unknown: cfg.Unknown,
		Prior:   cfg.Prior,
		Summary: map[string]float64{
			"best":     res.Best,
			"ci_min":   res.CIMin,
			"ci_max":   res.CIMax,
			"disjoint": disjoint,
		},
	}, []string{cfg.Unknown, "loglik"}, [][]float64{res.Grid, res.LogLik})
	if err != nil {
		return err
	}
	logrus.WithField("run", runID).Info("saved")
	return nil
}

func runCGW(cmd *cobra.Command, args []string) error {
	tr, err := storage.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if !tr.TimesIncreasing() {
		return fmt.Errorf("%s: timestamps are not strictly increasing", args[0])
	}

	curve := estimate.CGW(tr, maxLag, downSample)

	degenerate := 0
	for i := range curve.Sigma {
		if math.IsNaN(curve.Sigma[i]) || math.IsInf(curve.Sigma[i], 0) {
			degenerate++
		}
	}
	if degenerate > 0 {
		logrus.Warnf("%d large-lag entries have degenerate standard errors; treat the tail as low confidence", degenerate)
	}

	report.CGWTable(os.Stdout, curve)
	fmt.Println(report.MSDSketch(curve, "MSD vs lag"))

	summary := map[string]float64{}
	if doFit {
		dt := tr.Time(1) - tr.Time(0)
		d, stderr, err := estimate.FitDiffusion(curve, dt)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s ± %s\n",
			report.Label.Render("fitted D ="),
			report.Value.Render(fmt.Sprintf("%.4g", d)),
			fmt.Sprintf("%.2g", stderr))
		summary["fit_d"] = d
		summary["fit_stderr"] = stderr
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	lags := make([]float64, len(curve.Lags))
	for i, l := range curve.Lags {
		lags[i] = float64(l)
	}
	runID, err := store.Save(storage.RunMetadata{
		Kind:    "cgw",
		Dim:     tr.Dim(),
		Points:  tr.Len(),
		Summary: summary,
	}, []string{"lag", "msd", "sigma"}, [][]float64{lags, curve.MSD, curve.Sigma})
	if err != nil {
		return err
	}
	logrus.WithField("run", runID).Info("saved")
	return nil
}

func runPosterior(cmd *cobra.Command, args []string) error {
	tr, err := storage.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if !tr.TimesIncreasing() {
		return fmt.Errorf("%s: timestamps are not strictly increasing", args[0])
	}

	unknown, err := inference.ParseUnknown(unknownName)
	if err != nil {
		return err
	}
	family, err := inference.ParseFamily(priorName)
	if err != nil {
		return err
	}
	prior, err := inference.NewPrior(family, priorLower, priorUpper)
	if err != nil {
		return err
	}
	known := inference.Constants{Radius: radius, Viscosity: viscosity, Temperature: temperature}

	lp, err := inference.LogPosterior(theta, tr, unknown, known, prior)
	if err != nil {
		return err
	}
	fmt.Printf("log posterior(%s = %.4g) = %v\n", unknown, theta, lp)
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	tr, err := synth.Walk(simDim, simSteps, simD, simSigma, simDt, simSeed)
	if err != nil {
		return err
	}
	if err := storage.WriteTrajectory(simOut, tr); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"file":  simOut,
		"dim":   simDim,
		"steps": simSteps,
		"seed":  simSeed,
	}).Info("trajectory written")
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tDIM\tPOINTS\tUNKNOWN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dim,
			run.Points,
			run.Unknown,
		)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
