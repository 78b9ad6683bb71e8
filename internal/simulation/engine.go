package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/krfin/finsim/internal/domain"
)

// DefaultTrajectorySample bounds how many raw trajectories a summary
// retains for visualization.
const DefaultTrajectorySample = 100

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// MonteCarloEngine runs repeated stochastic net-worth trajectories and
// aggregates them into percentile bands and summary statistics. The
// engine itself is stateless; every Run is independently reproducible
// given the config's seed.
type MonteCarloEngine struct {
	TrajectorySample int
}

// NewMonteCarloEngine creates an engine with the default trajectory
// sample bound.
func NewMonteCarloEngine() *MonteCarloEngine {
	return &MonteCarloEngine{TrajectorySample: DefaultTrajectorySample}
}

// Run executes config.Repetitions independent trajectories and aggregates
// them. Repetitions are embarrassingly parallel and run concurrently; the
// aggregation treats completed trajectories as an unordered multiset.
func (e *MonteCarloEngine) Run(ctx context.Context, config *domain.SimulationConfig) (*domain.SimulationSummary, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	trajectories := make([][]decimal.Decimal, config.Repetitions)
	var wg sync.WaitGroup
	for i := 0; i < config.Repetitions; i++ {
		wg.Add(1)
		go func(run int) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				return
			default:
			}
			// Each run gets its own derived sampler; math/rand sources
			// are not safe for concurrent use.
			sampler := NewSeededNormalSampler(seed + int64(run))
			trajectories[run] = runTrajectory(config, sampler)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return e.aggregate(config, trajectories), nil
}

// RunScenarioComparison runs the base config plus derived optimistic and
// pessimistic variants and returns the triple.
func (e *MonteCarloEngine) RunScenarioComparison(ctx context.Context, base *domain.SimulationConfig) (*domain.ScenarioComparisonResult, error) {
	baseCase, err := e.Run(ctx, base)
	if err != nil {
		return nil, err
	}

	bestCase, err := e.Run(ctx, deriveBestCase(base))
	if err != nil {
		return nil, err
	}

	worstCase, err := e.Run(ctx, deriveWorstCase(base))
	if err != nil {
		return nil, err
	}

	return &domain.ScenarioComparisonResult{
		BaseCase:  baseCase,
		BestCase:  bestCase,
		WorstCase: worstCase,
	}, nil
}

// runTrajectory walks one stochastic yearly path. Net worth saturates at
// zero rather than carrying negative balances through bankruptcy.
func runTrajectory(config *domain.SimulationConfig, sampler *NormalSampler) []decimal.Decimal {
	netWorth := config.StartingNetWorth
	income := config.MonthlyIncome
	expenses := config.MonthlyExpenses

	trajectory := make([]decimal.Decimal, 0, config.HorizonYears+1)
	trajectory = append(trajectory, netWorth)

	for year := 1; year <= config.HorizonYears; year++ {
		// All four economic variables are drawn every year. Inflation is
		// reported but does not feed expense growth: expenses move by
		// their own independently sampled rate, matching the published
		// product model.
		_ = sampler.Sample(config.InflationRate.Mean, config.InflationRate.StdDev)
		incomeGrowth := sampler.Sample(config.IncomeGrowthRate.Mean, config.IncomeGrowthRate.StdDev).Div(hundred)
		investmentReturn := sampler.Sample(config.InvestmentReturnRate.Mean, config.InvestmentReturnRate.StdDev).Div(hundred)
		expenseGrowth := sampler.Sample(config.ExpenseGrowthRate.Mean, config.ExpenseGrowthRate.StdDev).Div(hundred)

		income = income.Mul(one.Add(incomeGrowth))
		expenses = expenses.Mul(one.Add(expenseGrowth))

		annualSavings := income.Sub(expenses).Mul(twelve)
		investmentGain := netWorth.Mul(investmentReturn)
		eventImpact := eventImpactForYear(config.Events, year)

		netWorth = netWorth.Add(annualSavings).Add(investmentGain).Add(eventImpact)
		if netWorth.IsNegative() {
			netWorth = decimal.Zero
		}

		trajectory = append(trajectory, netWorth)
	}

	return trajectory
}

// eventImpactForYear sums the signed one-time impacts landing in the
// given year.
func eventImpactForYear(events []domain.LifeEvent, year int) decimal.Decimal {
	impact := decimal.Zero
	for _, ev := range events {
		if ev.Year != year {
			continue
		}
		if ev.Kind == domain.LifeEventIncome {
			impact = impact.Add(ev.Amount)
		} else {
			impact = impact.Sub(ev.Amount)
		}
	}
	return impact
}

// aggregate computes per-year percentile bands and final-year statistics
// across all completed trajectories.
func (e *MonteCarloEngine) aggregate(config *domain.SimulationConfig, trajectories [][]decimal.Decimal) *domain.SimulationSummary {
	years := make([]int, config.HorizonYears+1)
	bands := domain.PercentileBands{
		P10: make([]decimal.Decimal, 0, config.HorizonYears+1),
		P25: make([]decimal.Decimal, 0, config.HorizonYears+1),
		P50: make([]decimal.Decimal, 0, config.HorizonYears+1),
		P75: make([]decimal.Decimal, 0, config.HorizonYears+1),
		P90: make([]decimal.Decimal, 0, config.HorizonYears+1),
	}

	column := make([]decimal.Decimal, len(trajectories))
	for yearIdx := 0; yearIdx <= config.HorizonYears; yearIdx++ {
		years[yearIdx] = yearIdx
		for i, traj := range trajectories {
			column[i] = traj[yearIdx]
		}
		sorted := sortValues(column)
		bands.P10 = append(bands.P10, percentileOf(sorted, 0.10))
		bands.P25 = append(bands.P25, percentileOf(sorted, 0.25))
		bands.P50 = append(bands.P50, percentileOf(sorted, 0.50))
		bands.P75 = append(bands.P75, percentileOf(sorted, 0.75))
		bands.P90 = append(bands.P90, percentileOf(sorted, 0.90))
	}

	finals := make([]decimal.Decimal, len(trajectories))
	for i, traj := range trajectories {
		finals[i] = traj[config.HorizonYears]
	}
	sortedFinals := sortValues(finals)

	mean := meanOf(sortedFinals)
	successes := 0
	for _, v := range sortedFinals {
		// A trajectory clamped to zero counts as a failure: success
		// requires strictly positive final net worth.
		if v.IsPositive() {
			successes++
		}
	}

	stats := domain.FinalStatistics{
		Mean:                 mean,
		Median:               percentileOf(sortedFinals, 0.50),
		StdDev:               populationStdDev(sortedFinals, mean),
		ProbabilityOfSuccess: decimal.NewFromInt(int64(successes)).Div(decimal.NewFromInt(int64(len(sortedFinals)))),
		ValueAtRisk:          percentileOf(sortedFinals, 0.05),
	}

	sampleSize := e.TrajectorySample
	if sampleSize <= 0 {
		sampleSize = DefaultTrajectorySample
	}
	if sampleSize > len(trajectories) {
		sampleSize = len(trajectories)
	}

	return &domain.SimulationSummary{
		Years:              years,
		Percentiles:        bands,
		Statistics:         stats,
		SampleTrajectories: trajectories[:sampleSize],
	}
}

// deriveBestCase shifts the economic variables toward the optimistic
// scenario: lower inflation and expense growth, higher income growth and
// investment returns, all with halved volatility.
func deriveBestCase(base *domain.SimulationConfig) *domain.SimulationConfig {
	derived := *base
	derived.InflationRate = shiftVariable(base.InflationRate, decimal.NewFromFloat(-0.5), decimal.NewFromFloat(0.5))
	derived.IncomeGrowthRate = shiftVariable(base.IncomeGrowthRate, decimal.NewFromInt(1), decimal.NewFromFloat(0.5))
	derived.InvestmentReturnRate = shiftVariable(base.InvestmentReturnRate, decimal.NewFromInt(2), decimal.NewFromFloat(0.5))
	derived.ExpenseGrowthRate = shiftVariable(base.ExpenseGrowthRate, decimal.NewFromFloat(-0.5), decimal.NewFromFloat(0.5))
	return &derived
}

// deriveWorstCase mirrors the shifts pessimistically with inflated
// volatility.
func deriveWorstCase(base *domain.SimulationConfig) *domain.SimulationConfig {
	derived := *base
	derived.InflationRate = shiftVariable(base.InflationRate, decimal.NewFromInt(1), decimal.NewFromFloat(1.5))
	derived.IncomeGrowthRate = shiftVariable(base.IncomeGrowthRate, decimal.NewFromInt(-1), decimal.NewFromFloat(1.5))
	derived.InvestmentReturnRate = shiftVariable(base.InvestmentReturnRate, decimal.NewFromInt(-2), decimal.NewFromFloat(1.5))
	derived.ExpenseGrowthRate = shiftVariable(base.ExpenseGrowthRate, decimal.NewFromInt(1), decimal.NewFromFloat(1.5))
	return &derived
}

func shiftVariable(v domain.EconomicVariable, meanDelta, stdDevFactor decimal.Decimal) domain.EconomicVariable {
	return domain.EconomicVariable{
		Mean:   v.Mean.Add(meanDelta),
		StdDev: v.StdDev.Mul(stdDevFactor),
	}
}
