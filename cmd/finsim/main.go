package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/krfin/finsim/internal/assemble"
	"github.com/krfin/finsim/internal/config"
	"github.com/krfin/finsim/internal/health"
	"github.com/krfin/finsim/internal/narrative"
	"github.com/krfin/finsim/internal/output"
	"github.com/krfin/finsim/internal/risk"
	"github.com/krfin/finsim/internal/simulation"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "finsim",
	Short: "Financial projection and risk analysis CLI",
	Long:  "Monte Carlo net worth simulation, debt service risk detection, and financial health scoring",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; the environment may already be set.
		_ = godotenv.Load()

		level := zerolog.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Run a Monte Carlo net worth projection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if request.Simulation == nil {
			return fmt.Errorf("input file %s has no simulation section", args[0])
		}

		format, _ := cmd.Flags().GetString("format")
		compare, _ := cmd.Flags().GetBool("compare")
		analyze, _ := cmd.Flags().GetBool("analyze")

		engine := simulation.NewMonteCarloEngine()
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		start := time.Now()
		if compare {
			result, err := engine.RunScenarioComparison(ctx, request.Simulation)
			if err != nil {
				return err
			}
			logger.Debug().Dur("elapsed", time.Since(start)).Msg("scenario comparison complete")
			if err := output.GenerateComparisonReport(result, format); err != nil {
				return err
			}
			if analyze && format == "console" {
				advisor := narrative.NewAdvisor(logger)
				output.NewReportGenerator().PrintAnalysis(advisor.Analyze(ctx, result.BaseCase, nil, nil))
			}
			return nil
		}

		summary, err := engine.Run(ctx, request.Simulation)
		if err != nil {
			return err
		}
		logger.Debug().
			Int("repetitions", request.Simulation.Repetitions).
			Dur("elapsed", time.Since(start)).
			Msg("simulation complete")

		if err := output.GenerateSimulationReport(summary, format); err != nil {
			return err
		}
		if analyze && format == "console" {
			advisor := narrative.NewAdvisor(logger)
			output.NewReportGenerator().PrintAnalysis(advisor.Analyze(ctx, summary, nil, nil))
		}
		return nil
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk [input-file]",
	Short: "Analyze debt service ratios and payoff projections",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if request.Debt == nil {
			return fmt.Errorf("input file %s has no debt section", args[0])
		}

		input := &request.Debt.Input
		if request.Debt.Profile != nil {
			input = assemble.BuildDSRInput(*request.Debt.Profile, request.Debt.LoanRecords, time.Now())
		}

		format, _ := cmd.Flags().GetString("format")
		detector := risk.NewDSRRiskDetector()
		result := detector.Calculate(input)

		if err := output.GenerateRiskReport(result, format); err != nil {
			return err
		}

		if request.Debt.Improvement != nil && format == "console" {
			improved := detector.SimulateImprovement(input, *request.Debt.Improvement)
			fmt.Println("IMPROVEMENT SCENARIO")
			fmt.Println("--------------------")
			fmt.Printf("Current DSR:    %s\n", output.FormatPercentage(improved.CurrentDSR))
			fmt.Printf("Improved DSR:   %s\n", output.FormatPercentage(improved.ImprovedDSR))
			fmt.Printf("Improvement:    %s\n", output.FormatPercentage(improved.Improvement))
			fmt.Printf("New Risk Level: %s\n", improved.NewRiskLevel)
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health [input-file]",
	Short: "Score overall financial health",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if request.Health == nil {
			return fmt.Errorf("input file %s has no health section", args[0])
		}

		input := request.Health.Input
		if request.Health.Profile != nil {
			input = assemble.BuildHealthInput(*request.Health.Profile, request.Health.Accounts, request.Health.Loans)
		}

		format, _ := cmd.Flags().GetString("format")
		result := health.NewFinancialHealthScorer().Score(input)
		return output.GenerateHealthReport(result, format)
	},
}

var projectCmd = &cobra.Command{
	Use:   "project [input-file]",
	Short: "Run a deterministic compound growth projection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if request.Deterministic == nil {
			return fmt.Errorf("input file %s has no deterministic section", args[0])
		}

		points := simulation.ProjectDeterministic(request.Deterministic)
		fmt.Printf("%-6s %18s %18s %18s\n", "Year", "Net Worth", "Income", "Expenses")
		for _, p := range points {
			fmt.Printf("%-6d %18s %18s %18s\n",
				p.Year,
				output.FormatCurrency(p.NetWorth),
				output.FormatCurrency(p.Income),
				output.FormatCurrency(p.Expenses))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "finsim %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Fprintln(os.Stdout, bi.Main.Version)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().String("format", "console", "output format: console, json, csv")

	simulateCmd.Flags().Bool("compare", false, "run best/worst scenario comparison")
	simulateCmd.Flags().Bool("analyze", false, "append advisor commentary to the report")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
