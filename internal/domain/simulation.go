package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EconomicVariable describes a normally distributed yearly rate in percent
// units (e.g. Mean 2.5 means 2.5% per year).
type EconomicVariable struct {
	Mean   decimal.Decimal `json:"mean" yaml:"mean"`
	StdDev decimal.Decimal `json:"stdDev" yaml:"std_dev"`
}

// LifeEventKind distinguishes one-time cash inflows from outflows.
type LifeEventKind string

const (
	LifeEventIncome  LifeEventKind = "income"
	LifeEventExpense LifeEventKind = "expense"
)

// LifeEvent is a discrete one-time cash impact applied at the start of the
// given simulation year. Events are matched by year; their order in the
// config is irrelevant.
type LifeEvent struct {
	Year   int             `json:"year" yaml:"year"`
	Kind   LifeEventKind   `json:"kind" yaml:"kind"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Label  string          `json:"label" yaml:"label"`
}

// SimulationConfig holds everything one Monte Carlo run needs. Starting
// positions may be negative (debt-heavy households are allowed); horizon
// and repetitions must be positive.
type SimulationConfig struct {
	HorizonYears int `json:"horizonYears" yaml:"horizon_years"`
	Repetitions  int `json:"repetitions" yaml:"repetitions"`

	StartingNetWorth decimal.Decimal `json:"startingNetWorth" yaml:"starting_net_worth"`
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	MonthlyExpenses  decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"`

	InflationRate        EconomicVariable `json:"inflationRate" yaml:"inflation_rate"`
	IncomeGrowthRate     EconomicVariable `json:"incomeGrowthRate" yaml:"income_growth_rate"`
	InvestmentReturnRate EconomicVariable `json:"investmentReturnRate" yaml:"investment_return_rate"`
	ExpenseGrowthRate    EconomicVariable `json:"expenseGrowthRate" yaml:"expense_growth_rate"`

	Events []LifeEvent `json:"events,omitempty" yaml:"events"`

	// Seed makes runs reproducible; zero means seed from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed"`
}

// Validate rejects structurally invalid configurations before any
// computation runs.
func (c *SimulationConfig) Validate() error {
	if c.HorizonYears < 1 {
		return fmt.Errorf("%w: horizon years must be at least 1, got %d", ErrInvalidConfiguration, c.HorizonYears)
	}
	if c.Repetitions < 1 {
		return fmt.Errorf("%w: repetitions must be at least 1, got %d", ErrInvalidConfiguration, c.Repetitions)
	}
	for i, ev := range c.Events {
		if ev.Year < 0 {
			return fmt.Errorf("%w: event %d (%s) has negative year %d", ErrInvalidConfiguration, i, ev.Label, ev.Year)
		}
		if ev.Amount.IsNegative() {
			return fmt.Errorf("%w: event %d (%s) has negative amount", ErrInvalidConfiguration, i, ev.Label)
		}
		if ev.Kind != LifeEventIncome && ev.Kind != LifeEventExpense {
			return fmt.Errorf("%w: event %d (%s) has unknown kind %q", ErrInvalidConfiguration, i, ev.Label, ev.Kind)
		}
	}
	return nil
}

// PercentileBands carries one value per simulated year (index 0 is the
// starting year) for each of the five reported percentiles.
type PercentileBands struct {
	P10 []decimal.Decimal `json:"p10"`
	P25 []decimal.Decimal `json:"p25"`
	P50 []decimal.Decimal `json:"p50"`
	P75 []decimal.Decimal `json:"p75"`
	P90 []decimal.Decimal `json:"p90"`
}

// FinalStatistics summarizes the distribution of final-year net worth.
type FinalStatistics struct {
	Mean                 decimal.Decimal `json:"finalNetWorthMean"`
	Median               decimal.Decimal `json:"finalNetWorthMedian"`
	StdDev               decimal.Decimal `json:"finalNetWorthStdDev"`
	ProbabilityOfSuccess decimal.Decimal `json:"probabilityOfSuccess"`
	ValueAtRisk          decimal.Decimal `json:"valueAtRisk"`
}

// SimulationSummary is the aggregated, immutable result of a Monte Carlo
// run. SampleTrajectories retains at most the first 100 raw trajectories
// for downstream visualization; it is a payload bound, not a statistical
// input.
type SimulationSummary struct {
	Years              []int               `json:"years"`
	Percentiles        PercentileBands     `json:"percentiles"`
	Statistics         FinalStatistics     `json:"statistics"`
	SampleTrajectories [][]decimal.Decimal `json:"sampleTrajectories"`
}

// GoalProbability reports the fraction of retained sample trajectories
// whose net worth at targetYear is at least targetAmount.
func (s *SimulationSummary) GoalProbability(targetAmount decimal.Decimal, targetYear int) decimal.Decimal {
	if len(s.SampleTrajectories) == 0 {
		return decimal.Zero
	}
	hits := 0
	for _, traj := range s.SampleTrajectories {
		if targetYear < 0 || targetYear >= len(traj) {
			continue
		}
		if traj[targetYear].GreaterThanOrEqual(targetAmount) {
			hits++
		}
	}
	return decimal.NewFromInt(int64(hits)).Div(decimal.NewFromInt(int64(len(s.SampleTrajectories))))
}

// ScenarioComparisonResult bundles the base run with the derived
// optimistic and pessimistic runs.
type ScenarioComparisonResult struct {
	BaseCase  *SimulationSummary `json:"baseCase"`
	BestCase  *SimulationSummary `json:"bestCase"`
	WorstCase *SimulationSummary `json:"worstCase"`
}
