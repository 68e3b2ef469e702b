package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/odefit/internal/compare"
	"github.com/san-kum/odefit/internal/config"
	"github.com/san-kum/odefit/internal/dataset"
	"github.com/san-kum/odefit/internal/dynamo"
	"github.com/san-kum/odefit/internal/export"
	"github.com/san-kum/odefit/internal/fit"
	"github.com/san-kum/odefit/internal/models"
	"github.com/san-kum/odefit/internal/report"
	"github.com/san-kum/odefit/internal/storage"
	"github.com/san-kum/odefit/internal/tui"
)

var (
	dataFile   string
	dataFile2  string
	outputFile string
	configFile string
	preset     string
	solverName string
	model2     string
	maxIter    int
	budgetSec  int
	seed       int64
	plot       bool
	noTUI      bool
	noiseSigma float64
	dataDir    string
	saveRun    bool
	svgFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odefit",
		Short: "fit and compare ODE growth models against time-series data",
	}

	rootCmd.PersistentFlags().StringVar(&outputFile, "output", "", "summary CSV path (predictions CSV is derived)")
	rootCmd.PersistentFlags().StringVar(&solverName, "solver", "rk45", "default integrator")
	rootCmd.PersistentFlags().IntVar(&maxIter, "iters", config.DefaultMaxIter, "optimizer iteration budget")
	rootCmd.PersistentFlags().IntVar(&budgetSec, "budget", config.DefaultBudgetSeconds, "optimizer time budget (seconds)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "optimizer random seed")
	rootCmd.PersistentFlags().BoolVar(&plot, "plot", true, "plot the winning curve")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".odefit", "run storage directory")
	rootCmd.PersistentFlags().BoolVar(&saveRun, "save", false, "persist the run under the data directory")
	rootCmd.PersistentFlags().StringVar(&svgFile, "svg", "", "write an SVG plot of the winning fit")

	compareCmd := &cobra.Command{
		Use:   "compare [modelA] [modelB]",
		Short: "fit two models to one dataset and rank them by BIC",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}
	compareCmd.Flags().StringVar(&dataFile, "data", "", "dataset CSV (time,value)")
	compareCmd.MarkFlagRequired("data")

	datasetsCmd := &cobra.Command{
		Use:   "datasets [model]",
		Short: "fit a model to two datasets side by side",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasets,
	}
	datasetsCmd.Flags().StringVar(&dataFile, "data", "", "first dataset CSV")
	datasetsCmd.Flags().StringVar(&dataFile2, "data2", "", "second dataset CSV")
	datasetsCmd.Flags().StringVar(&model2, "model2", "", "optional different model for the second dataset")
	datasetsCmd.MarkFlagRequired("data")
	datasetsCmd.MarkFlagRequired("data2")

	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "fit every model of a config or preset to one dataset",
		RunE:  runCollection,
	}
	collectionCmd.Flags().StringVar(&configFile, "config", "", "run config (yaml)")
	collectionCmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
	collectionCmd.Flags().StringVar(&dataFile, "data", "", "dataset CSV (overrides config)")

	batchCmd := &cobra.Command{
		Use:   "batch [model] [dataset.csv...]",
		Short: "fit one model across many datasets and aggregate",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noTUI, "plain", false, "disable live progress view")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available growth models",
		Run: func(cmd *cobra.Command, args []string) {
			reg := models.NewRegistry()
			for _, name := range reg.List() {
				m, _ := reg.Get(name)
				fmt.Printf("%-16s params: %v\n", name, m.ParamNames())
			}
		},
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "recover known logistic parameters from synthetic data",
		RunE:  runDemo,
	}
	demoCmd.Flags().Float64Var(&noiseSigma, "noise", 0, "gaussian noise sigma added to samples")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tDATASET\tBEST\tWHEN")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Kind, r.Dataset, r.Best, r.Timestamp.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(compareCmd, datasetsCmd, collectionCmd, batchCmd, modelsCmd, demoCmd, runsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func engineConfig() fit.Config {
	return fit.Config{
		MaxIter:     maxIter,
		TimeBudget:  time.Duration(budgetSec) * time.Second,
		Seed:        seed,
		DensePoints: config.DefaultDensePoints,
	}
}

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Solver = solverName
	cfg.MaxIter = maxIter
	cfg.BudgetSeconds = budgetSec
	cfg.Seed = seed
	return cfg
}

func namedSpec(cfg *config.Config, reg *models.Registry, name string) (compare.NamedSpec, error) {
	spec, err := cfg.Spec(config.ModelConfig{Name: name, Model: name}, reg)
	if err != nil {
		return compare.NamedSpec{}, err
	}
	return compare.NamedSpec{Name: name, Spec: spec}, nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := baseConfig()
	reg := models.NewRegistry()

	specA, err := namedSpec(cfg, reg, args[0])
	if err != nil {
		return err
	}
	specB, err := namedSpec(cfg, reg, args[1])
	if err != nil {
		return err
	}

	ds, err := dataset.FromCSV(dataFile)
	if err != nil {
		return err
	}

	o := compare.NewOrchestrator(fit.NewEngine(engineConfig()))
	c, err := o.Models(cmd.Context(), specA, specB, ds)
	if err != nil {
		return err
	}

	report.NewConsole(os.Stdout, plot).Comparison("model comparison: "+ds.Name, c)
	return finish("models", "Model", &ds, c)
}

func runDatasets(cmd *cobra.Command, args []string) error {
	cfg := baseConfig()
	reg := models.NewRegistry()

	specs := make([]compare.NamedSpec, 0, 2)
	spec, err := namedSpec(cfg, reg, args[0])
	if err != nil {
		return err
	}
	specs = append(specs, spec)
	if model2 != "" {
		second, err := namedSpec(cfg, reg, model2)
		if err != nil {
			return err
		}
		specs = append(specs, second)
	}

	dsA, err := dataset.FromCSV(dataFile)
	if err != nil {
		return err
	}
	dsB, err := dataset.FromCSV(dataFile2)
	if err != nil {
		return err
	}

	o := compare.NewOrchestrator(fit.NewEngine(engineConfig()))
	c, err := o.Datasets(cmd.Context(), specs, dsA, dsB)
	if err != nil {
		return err
	}

	report.NewConsole(os.Stdout, false).Comparison("dataset comparison", c)
	return finish("datasets", "Dataset", nil, c)
}

func runCollection(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset %q, have %v", preset, config.ListPresets())
		}
	default:
		return fmt.Errorf("need --config or --preset")
	}
	if dataFile != "" {
		cfg.Data = dataFile
	}
	if cfg.Data == "" {
		return fmt.Errorf("no dataset given")
	}
	if outputFile == "" {
		outputFile = cfg.Output
	}

	reg := models.NewRegistry()
	specs := make(map[string]fit.Spec, len(cfg.Models))
	for _, mc := range cfg.Models {
		spec, err := cfg.Spec(mc, reg)
		if err != nil {
			return err
		}
		label := mc.Name
		if label == "" {
			label = mc.Model
		}
		specs[label] = spec
	}

	ds, err := dataset.FromCSV(cfg.Data)
	if err != nil {
		return err
	}

	engine := fit.NewEngine(fit.Config{
		MaxIter:     cfg.MaxIter,
		TimeBudget:  time.Duration(cfg.BudgetSeconds) * time.Second,
		Seed:        cfg.Seed,
		DensePoints: cfg.DensePoints,
	})
	c, err := compare.NewOrchestrator(engine).Collection(cmd.Context(), specs, ds)
	if err != nil {
		return err
	}

	report.NewConsole(os.Stdout, plot).Comparison("collection: "+ds.Name, c)
	return finish("collection", "Model", &ds, c)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := baseConfig()
	reg := models.NewRegistry()

	spec, err := namedSpec(cfg, reg, args[0])
	if err != nil {
		return err
	}

	sets := make([]dataset.Dataset, 0, len(args)-1)
	labels := make([]string, 0, len(args)-1)
	for _, path := range args[1:] {
		ds, err := dataset.FromCSV(path)
		if err != nil {
			return err
		}
		sets = append(sets, ds)
		labels = append(labels, ds.Name)
	}

	engine := fit.NewEngine(engineConfig())

	if noTUI {
		c, summary, err := compare.NewOrchestrator(engine).AcrossDatasets(cmd.Context(), spec, sets)
		if err != nil {
			return err
		}
		console := report.NewConsole(os.Stdout, false)
		console.Comparison("batch: "+spec.Name, c)
		console.Summary(summary, paramNames(c))
		return finish("batch", "Dataset", nil, c)
	}

	return runBatchTUI(cmd.Context(), engine, spec, sets, labels)
}

// runBatchTUI drives the fits from a goroutine and streams per-unit
// completions into the progress view.
func runBatchTUI(ctx context.Context, engine *fit.Engine, spec compare.NamedSpec, sets []dataset.Dataset, labels []string) error {
	p := tea.NewProgram(tui.NewModel("batch: "+spec.Name, labels))

	outcomes := make([]compare.Outcome, len(sets))
	units := make([]compare.Unit, len(sets))
	go func() {
		for i, ds := range sets {
			res, err := engine.Fit(ctx, spec.Spec, ds)
			outcomes[i] = compare.Outcome{Index: i, Result: res, Err: err}
			units[i] = compare.Unit{Label: labels[i], Result: res, Err: err}
			p.Send(tui.UnitDoneMsg{Index: i, Unit: units[i]})
		}
		p.Send(tui.AllDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}

	c := &compare.Comparison{Units: units, Best: -1}
	summary := compare.Aggregate(outcomes)
	console := report.NewConsole(os.Stdout, false)
	console.Comparison("batch: "+spec.Name, c)
	console.Summary(summary, paramNames(c))
	return finish("batch", "Dataset", nil, c)
}

func runDemo(cmd *cobra.Command, args []string) error {
	trueParams := dynamo.Params{0.8, 12.0}
	times := dataset.UniformTimes(0, 10, 15)

	ds, err := dataset.Sample(cmd.Context(), "synthetic-logistic", models.NewLogistic(),
		trueParams, dynamo.State{1.0}, times, noiseSigma, seed)
	if err != nil {
		return err
	}

	cfg := baseConfig()
	reg := models.NewRegistry()
	spec, err := namedSpec(cfg, reg, "logistic")
	if err != nil {
		return err
	}

	engine := fit.NewEngine(engineConfig())
	res, err := engine.Fit(cmd.Context(), spec.Spec, ds)
	if err != nil {
		return err
	}

	fmt.Printf("true params:   %v\n", []float64(trueParams))
	fmt.Printf("fitted params: %v\n", []float64(res.Params))
	fmt.Printf("SSR: %.6g  BIC: %.6g\n", res.SSR, res.BIC)

	c := &compare.Comparison{Units: []compare.Unit{{Label: "logistic", Result: res}}, Best: 0}
	if plot {
		report.NewConsole(os.Stdout, true).Comparison("demo", c)
	}
	return finish("demo", "Model", &ds, c)
}

// finish handles the shared tail of every comparison command: optional CSV
// export, optional run persistence, optional SVG plot of the winning fit.
// ds may be nil when no single dataset pairs with the winning unit.
func finish(kind, labelColumn string, ds *dataset.Dataset, c *compare.Comparison) error {
	if outputFile != "" {
		if err := report.Export(outputFile, labelColumn, c); err != nil {
			return err
		}
		fmt.Printf("wrote %s and %s\n", outputFile, report.PredictionsPath(outputFile))
	}

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		name := ""
		if ds != nil {
			name = ds.Name
		}
		runID, err := store.Save(kind, name, seed, c)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", runID)
	}

	if svgFile != "" && ds != nil {
		if best := c.BestUnit(); best != nil {
			if err := export.WriteFitSVG(svgFile, *ds, best.Result, 640, 480); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", svgFile)
		}
	}
	return nil
}

func paramNames(c *compare.Comparison) []string {
	for _, u := range c.Units {
		if u.OK() {
			return u.Result.Names
		}
	}
	return nil
}
