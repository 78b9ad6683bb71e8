package simulation

import (
	"github.com/shopspring/decimal"
)

// DeterministicConfig drives the simple compound-growth projection shown
// alongside the stochastic bands: single fixed rates, no volatility.
// Rates are in percent units.
type DeterministicConfig struct {
	Years            int             `json:"years" yaml:"years"`
	StartingNetWorth decimal.Decimal `json:"startingNetWorth" yaml:"starting_net_worth"`
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	MonthlyExpenses  decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"`

	InflationRate        decimal.Decimal `json:"inflationRate" yaml:"inflation_rate"`
	IncomeGrowthRate     decimal.Decimal `json:"incomeGrowthRate" yaml:"income_growth_rate"`
	InvestmentReturnRate decimal.Decimal `json:"investmentReturnRate" yaml:"investment_return_rate"`

	Events []PlannedEvent `json:"events,omitempty" yaml:"events"`
}

// PlannedEvent is a richer life event for the deterministic view: a
// one-time cost plus monthly income/expense deltas, all booked in the
// offset year.
type PlannedEvent struct {
	Title                string          `json:"title" yaml:"title"`
	YearOffset           int             `json:"yearOffset" yaml:"year_offset"`
	OneTimeCost          decimal.Decimal `json:"oneTimeCost" yaml:"one_time_cost"`
	MonthlyIncomeChange  decimal.Decimal `json:"monthlyIncomeChange" yaml:"monthly_income_change"`
	MonthlyExpenseChange decimal.Decimal `json:"monthlyExpenseChange" yaml:"monthly_expense_change"`
}

// ProjectionPoint is one year of the deterministic projection.
type ProjectionPoint struct {
	Year     int             `json:"year"`
	NetWorth decimal.Decimal `json:"netWorth"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// ProjectDeterministic compounds income by the income growth rate and
// expenses by inflation, applies event impacts in their offset year, then
// applies the investment return multiplier to the running net worth.
func ProjectDeterministic(config *DeterministicConfig) []ProjectionPoint {
	incomeFactor := one.Add(config.IncomeGrowthRate.Div(hundred))
	expenseFactor := one.Add(config.InflationRate.Div(hundred))
	returnFactor := one.Add(config.InvestmentReturnRate.Div(hundred))

	points := make([]ProjectionPoint, 0, config.Years+1)
	netWorth := config.StartingNetWorth

	for year := 0; year <= config.Years; year++ {
		exp := decimal.NewFromInt(int64(year))
		yearlyIncome := config.MonthlyIncome.Mul(twelve).Mul(incomeFactor.Pow(exp))
		yearlyExpenses := config.MonthlyExpenses.Mul(twelve).Mul(expenseFactor.Pow(exp))

		eventImpact := decimal.Zero
		for _, ev := range config.Events {
			if ev.YearOffset != year {
				continue
			}
			eventImpact = eventImpact.Sub(ev.OneTimeCost)
			eventImpact = eventImpact.Add(ev.MonthlyIncomeChange.Mul(twelve))
			eventImpact = eventImpact.Sub(ev.MonthlyExpenseChange.Mul(twelve))
		}

		netWorth = netWorth.Add(yearlyIncome).Sub(yearlyExpenses).Add(eventImpact)
		netWorth = netWorth.Mul(returnFactor)

		points = append(points, ProjectionPoint{
			Year:     year,
			NetWorth: netWorth.Round(0),
			Income:   yearlyIncome.Round(0),
			Expenses: yearlyExpenses.Round(0),
		})
	}

	return points
}
