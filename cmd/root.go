package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/debt-sim/sim"
	"github.com/inference-sim/debt-sim/sim/report"
)

// modelFlags holds the model parameters shared by run and batch.
type modelFlags struct {
	villagers     int     // Population size
	loan          float64 // Loan per villager (dinars)
	interestRate  float64 // Annual interest rate as a fraction
	years         int     // Number of simulated years
	seed          int64   // Seed for the repayment order
	scenario      string  // Preset name in the scenarios file
	scenariosFile string  // Path to scenarios.yaml
}

// outputOptions selects what run writes besides the summary.
type outputOptions struct {
	resultsPath string // Optional export path (.json, .yaml, .csv)
	chartsDir   string // Optional directory for PNG charts
	showYears   bool   // Print a per-year table after the summary
}

var (
	runFlags   modelFlags
	batchFlags modelFlags
	runOutput  outputOptions

	logLevel string // Log verbosity level
	runs     int    // Number of independent batch runs
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "debt-sim",
	Short: "Monte Carlo simulation of village debt under randomized repayment",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
	},
}

// runCmd executes a single simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one debt simulation and print its summary",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSimulation(cmd, &runFlags, runOutput, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// batchCmd repeats the simulation with independent seeds and prints per-year statistics
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many independent simulations and print per-year statistics",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBatch(cmd, &batchFlags, runs, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runSimulation runs one simulation and writes the summary to w, plus the
// optional yearly table, results file and charts.
func runSimulation(cmd *cobra.Command, f *modelFlags, out outputOptions, w io.Writer) error {
	params, seed, err := f.resolve(cmd)
	if err != nil {
		return err
	}

	result, err := sim.Run(params, seed)
	if err != nil {
		return fmt.Errorf("invalid simulation parameters: %w", err)
	}

	if err := report.Summarize(result).Print(w); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if out.showYears {
		if err := report.PrintYears(w, result); err != nil {
			return fmt.Errorf("writing yearly table: %w", err)
		}
	}
	if out.resultsPath != "" {
		if err := report.SaveResults(result, out.resultsPath); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		logrus.Infof("Results written to %s", out.resultsPath)
	}
	if out.chartsDir != "" {
		if err := report.SaveCharts(result, out.chartsDir); err != nil {
			return fmt.Errorf("saving charts: %w", err)
		}
		logrus.Infof("Charts written to %s", out.chartsDir)
	}
	return nil
}

// runBatch runs n independent simulations and writes per-year statistics to w.
func runBatch(cmd *cobra.Command, f *modelFlags, n int, w io.Writer) error {
	params, seed, err := f.resolve(cmd)
	if err != nil {
		return err
	}

	batch, err := sim.RunBatch(params, seed, n)
	if err != nil {
		return fmt.Errorf("invalid batch parameters: %w", err)
	}
	if err := report.PrintBatch(w, batch); err != nil {
		return fmt.Errorf("writing batch table: %w", err)
	}
	return nil
}

// setupLogging sets the logrus level, exiting on an unknown level name.
func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

// addModelFlags registers the model flags on cmd, taking the seed and
// scenarios file defaults from defaults.
func addModelFlags(cmd *cobra.Command, f *modelFlags, defaults envConfig) {
	cmd.Flags().IntVar(&f.villagers, "villagers", 500, "Number of villagers (population size)")
	cmd.Flags().Float64Var(&f.loan, "loan", 100, "Loan per villager in dinars")
	cmd.Flags().Float64Var(&f.interestRate, "interest-rate", 0.04, "Annual interest rate as a fraction")
	cmd.Flags().IntVar(&f.years, "years", 15, "Number of years to simulate")
	cmd.Flags().Int64Var(&f.seed, "seed", defaults.Seed, "Seed for the random repayment order")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "Named preset from the scenarios file; explicit flags override it")
	cmd.Flags().StringVar(&f.scenariosFile, "scenarios-file", defaults.ScenariosFile, "Path to the scenarios YAML file")
}

// resolve builds Params and seed from the flags. When a scenario is named,
// the keys it sets replace flag defaults, but never flags the user set explicitly.
func (f *modelFlags) resolve(cmd *cobra.Command) (sim.Params, int64, error) {
	params := sim.NewParams(f.villagers, f.loan, f.interestRate, f.years)
	seed := f.seed
	if f.scenario == "" {
		return params, seed, nil
	}

	cfg, err := loadScenariosConfig(f.scenariosFile)
	if err != nil {
		return sim.Params{}, 0, err
	}
	preset, err := cfg.Lookup(f.scenario)
	if err != nil {
		return sim.Params{}, 0, err
	}

	params, seed = preset.Apply(params, seed, cmd.Flags().Changed)
	logrus.Infof("Using scenario %q from %s", f.scenario, f.scenariosFile)
	return params, seed, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults, err := parseEnv()
	if err != nil {
		logrus.Warnf("Ignoring environment defaults: %v", err)
		defaults = envConfig{Seed: 42, LogLevel: "warn", ScenariosFile: "scenarios.yaml"}
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log", defaults.LogLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")

	addModelFlags(runCmd, &runFlags, defaults)
	runCmd.Flags().StringVar(&runOutput.resultsPath, "results-path", "", "Write yearly records to this file (.json, .yaml, .yml, .csv)")
	runCmd.Flags().StringVar(&runOutput.chartsDir, "charts-dir", "", "Write PNG charts to this directory")
	runCmd.Flags().BoolVar(&runOutput.showYears, "show-years", false, "Print a per-year table after the summary")

	addModelFlags(batchCmd, &batchFlags, defaults)
	batchCmd.Flags().IntVar(&runs, "runs", 20, "Number of independent simulation runs")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
}
