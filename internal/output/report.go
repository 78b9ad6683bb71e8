package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/krfin/finsim/internal/domain"
	"github.com/krfin/finsim/internal/narrative"
)

// ReportGenerator handles report generation in various formats
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// GenerateSimulationReport renders a Monte Carlo summary in the given
// format.
func GenerateSimulationReport(summary *domain.SimulationSummary, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.SimulationConsole(summary)
	case "json":
		return generator.writeJSON(summary)
	case "csv":
		return generator.SimulationCSV(summary)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateComparisonReport renders a base/best/worst scenario comparison.
func GenerateComparisonReport(result *domain.ScenarioComparisonResult, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.ComparisonConsole(result)
	case "json":
		return generator.writeJSON(result)
	case "csv":
		return generator.ComparisonCSV(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateRiskReport renders a DSR risk analysis.
func GenerateRiskReport(result *domain.DSRResult, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.RiskConsole(result)
	case "json":
		return generator.writeJSON(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateHealthReport renders a financial health score.
func GenerateHealthReport(result *domain.HealthScoreResult, format string) error {
	generator := NewReportGenerator()

	switch format {
	case "console":
		return generator.HealthConsole(result)
	case "json":
		return generator.writeJSON(result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// SimulationConsole prints the percentile bands and final statistics.
func (rg *ReportGenerator) SimulationConsole(summary *domain.SimulationSummary) error {
	fmt.Println("================================================================")
	fmt.Println("MONTE CARLO NET WORTH PROJECTION")
	fmt.Println("================================================================")
	fmt.Println()

	fmt.Println("FINAL YEAR STATISTICS")
	fmt.Println("---------------------")
	stats := summary.Statistics
	fmt.Printf("Mean:                  %s\n", FormatCurrency(stats.Mean))
	fmt.Printf("Median:                %s\n", FormatCurrency(stats.Median))
	fmt.Printf("Std Deviation:         %s\n", FormatCurrency(stats.StdDev))
	fmt.Printf("Success Probability:   %s\n", FormatPercentage(stats.ProbabilityOfSuccess.Mul(decimal.NewFromInt(100))))
	fmt.Printf("Value at Risk (5%%):    %s\n", FormatCurrency(stats.ValueAtRisk))
	fmt.Println()

	fmt.Println("PERCENTILE BANDS BY YEAR")
	fmt.Println("------------------------")
	fmt.Printf("%-6s %16s %16s %16s %16s %16s\n", "Year", "P10", "P25", "P50", "P75", "P90")
	for i, year := range summary.Years {
		fmt.Printf("%-6d %16s %16s %16s %16s %16s\n",
			year,
			FormatCurrency(summary.Percentiles.P10[i]),
			FormatCurrency(summary.Percentiles.P25[i]),
			FormatCurrency(summary.Percentiles.P50[i]),
			FormatCurrency(summary.Percentiles.P75[i]),
			FormatCurrency(summary.Percentiles.P90[i]))
	}
	fmt.Println()

	return nil
}

// SimulationCSV writes one row per year of the percentile bands.
func (rg *ReportGenerator) SimulationCSV(summary *domain.SimulationSummary) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	if err := writer.Write([]string{"year", "p10", "p25", "p50", "p75", "p90"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, year := range summary.Years {
		row := []string{
			fmt.Sprintf("%d", year),
			summary.Percentiles.P10[i].Round(0).String(),
			summary.Percentiles.P25[i].Round(0).String(),
			summary.Percentiles.P50[i].Round(0).String(),
			summary.Percentiles.P75[i].Round(0).String(),
			summary.Percentiles.P90[i].Round(0).String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// ComparisonConsole prints the three scenarios side by side.
func (rg *ReportGenerator) ComparisonConsole(result *domain.ScenarioComparisonResult) error {
	fmt.Println("================================================================")
	fmt.Println("SCENARIO COMPARISON")
	fmt.Println("================================================================")
	fmt.Println()

	scenarios := []struct {
		name    string
		summary *domain.SimulationSummary
	}{
		{"Base Case", result.BaseCase},
		{"Best Case", result.BestCase},
		{"Worst Case", result.WorstCase},
	}

	fmt.Printf("%-12s %18s %18s %14s\n", "Scenario", "Median", "Mean", "Success")
	fmt.Println(strings.Repeat("-", 64))
	for _, s := range scenarios {
		stats := s.summary.Statistics
		fmt.Printf("%-12s %18s %18s %14s\n",
			s.name,
			FormatCurrency(stats.Median),
			FormatCurrency(stats.Mean),
			FormatPercentage(stats.ProbabilityOfSuccess.Mul(decimal.NewFromInt(100))))
	}
	fmt.Println()

	return nil
}

// ComparisonCSV writes the median trajectory of each scenario per year.
func (rg *ReportGenerator) ComparisonCSV(result *domain.ScenarioComparisonResult) error {
	writer := csv.NewWriter(os.Stdout)
	defer writer.Flush()

	if err := writer.Write([]string{"year", "base_median", "best_median", "worst_median"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, year := range result.BaseCase.Years {
		row := []string{
			fmt.Sprintf("%d", year),
			result.BaseCase.Percentiles.P50[i].Round(0).String(),
			result.BestCase.Percentiles.P50[i].Round(0).String(),
			result.WorstCase.Percentiles.P50[i].Round(0).String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	return nil
}

// RiskConsole prints the ratios, alerts, recommendations, and the payoff
// projection.
func (rg *ReportGenerator) RiskConsole(result *domain.DSRResult) error {
	fmt.Println("================================================================")
	fmt.Println("DEBT SERVICE RISK ANALYSIS")
	fmt.Println("================================================================")
	fmt.Println()

	fmt.Printf("DSR:        %s\n", FormatPercentage(result.DSR))
	fmt.Printf("DTI:        %s\n", FormatPercentage(result.DTI))
	fmt.Printf("Risk Level: %s\n", strings.ToUpper(string(result.RiskLevel)))
	fmt.Printf("Risk Score: %d/100\n", result.RiskScore)
	fmt.Println()

	fmt.Println("ALERTS")
	fmt.Println("------")
	for _, alert := range result.Alerts {
		marker := " "
		if alert.ActionRequired {
			marker = "!"
		}
		fmt.Printf("[%s] %-8s %s\n", marker, strings.ToUpper(string(alert.Severity)), alert.Title)
		fmt.Printf("             %s\n", alert.Message)
	}
	fmt.Println()

	fmt.Println("RECOMMENDATIONS")
	fmt.Println("---------------")
	for i, rec := range result.Recommendations {
		fmt.Printf("%d. %s\n", i+1, rec)
	}
	fmt.Println()

	fmt.Println("PAYOFF PROJECTION")
	fmt.Println("-----------------")
	if result.Projection.NonConvergent {
		fmt.Println("Current payments do not cover the interest charge.")
		fmt.Println("The balance will not be paid off at this payment level.")
	} else {
		fmt.Printf("Months until debt-free:     %d\n", result.Projection.MonthsUntilPayoff)
		fmt.Printf("Total interest to pay:      %s\n", FormatCurrency(result.Projection.TotalInterest))
		fmt.Printf("Savings with 20%% overpay:   %s\n", FormatCurrency(result.Projection.PotentialSavings))
	}
	fmt.Println()

	return nil
}

// HealthConsole prints the composite score, sub-scores, and commentary.
func (rg *ReportGenerator) HealthConsole(result *domain.HealthScoreResult) error {
	fmt.Println("================================================================")
	fmt.Println("FINANCIAL HEALTH SCORE")
	fmt.Println("================================================================")
	fmt.Println()

	fmt.Printf("Total Score: %s / 100 (Grade %s)\n", result.TotalScore.StringFixed(1), result.Grade)
	fmt.Println()

	fmt.Println("COMPONENTS")
	fmt.Println("----------")
	components := []struct {
		name string
		c    domain.ScoreComponent
	}{
		{"Asset Health", result.Components.AssetHealth},
		{"Debt Management", result.Components.DebtManagement},
		{"Cash Flow", result.Components.CashFlowHealth},
		{"Savings Rate", result.Components.SavingsRate},
		{"Emergency Fund", result.Components.EmergencyFund},
		{"Debt-to-Income", result.Components.DebtToIncome},
	}
	for _, item := range components {
		fmt.Printf("%-16s %6s  (weight %s)  %s\n",
			item.name,
			item.c.Score.StringFixed(0),
			item.c.Weight.StringFixed(2),
			item.c.Description)
	}
	fmt.Println()

	fmt.Println("INSIGHTS")
	fmt.Println("--------")
	for _, insight := range result.Insights {
		fmt.Printf("- %s\n", insight)
	}
	fmt.Println()

	fmt.Println("RECOMMENDATIONS")
	fmt.Println("---------------")
	for i, rec := range result.Recommendations {
		fmt.Printf("%d. %s\n", i+1, rec)
	}
	fmt.Println()

	return nil
}

// PrintAnalysis prints the advisory narrative after a numeric report.
func (rg *ReportGenerator) PrintAnalysis(analysis *narrative.Analysis) {
	fmt.Println("ADVISOR COMMENTARY")
	fmt.Println("------------------")
	fmt.Println(analysis.Summary)
	fmt.Println()

	printList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Println(title + ":")
		for _, item := range items {
			fmt.Printf("- %s\n", item)
		}
		fmt.Println()
	}
	printList("Insights", analysis.Insights)
	printList("Risks", analysis.Risks)
	printList("Recommendations", analysis.Recommendations)
}

func (rg *ReportGenerator) writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// FormatCurrency formats a won amount with thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if negative {
		s = "-" + s
	}
	return s + " won"
}

// FormatPercentage formats a percent-unit decimal with one decimal place.
func FormatPercentage(value decimal.Decimal) string {
	return value.StringFixed(1) + "%"
}
