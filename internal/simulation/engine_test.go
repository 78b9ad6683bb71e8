package simulation

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krfin/finsim/internal/domain"
)

func baseConfig() *domain.SimulationConfig {
	return &domain.SimulationConfig{
		HorizonYears:     10,
		Repetitions:      500,
		StartingNetWorth: decimal.NewFromInt(10_000_000),
		MonthlyIncome:    decimal.NewFromInt(3_000_000),
		MonthlyExpenses:  decimal.NewFromInt(2_000_000),

		InflationRate:        domain.EconomicVariable{Mean: decimal.NewFromInt(2), StdDev: decimal.NewFromInt(1)},
		IncomeGrowthRate:     domain.EconomicVariable{Mean: decimal.NewFromInt(3), StdDev: decimal.NewFromInt(1)},
		InvestmentReturnRate: domain.EconomicVariable{Mean: decimal.NewFromInt(5), StdDev: decimal.NewFromInt(4)},
		ExpenseGrowthRate:    domain.EconomicVariable{Mean: decimal.NewFromInt(2), StdDev: decimal.NewFromInt(1)},

		Seed: 99,
	}
}

// frozenConfig has zero volatility everywhere, so every trajectory is
// identical and exactly computable by hand.
func frozenConfig() *domain.SimulationConfig {
	cfg := baseConfig()
	cfg.Repetitions = 50
	cfg.InflationRate.StdDev = decimal.Zero
	cfg.IncomeGrowthRate = domain.EconomicVariable{Mean: decimal.Zero, StdDev: decimal.Zero}
	cfg.InvestmentReturnRate = domain.EconomicVariable{Mean: decimal.Zero, StdDev: decimal.Zero}
	cfg.ExpenseGrowthRate = domain.EconomicVariable{Mean: decimal.Zero, StdDev: decimal.Zero}
	return cfg
}

func TestMonteCarloEngine_Run_ShapeAndOrdering(t *testing.T) {
	engine := NewMonteCarloEngine()

	summary, err := engine.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	require.Len(t, summary.Years, 11, "Years should cover 0..horizon")
	require.Len(t, summary.Percentiles.P50, 11)

	for i := range summary.Years {
		assert.Equal(t, i, summary.Years[i])

		p10 := summary.Percentiles.P10[i]
		p25 := summary.Percentiles.P25[i]
		p50 := summary.Percentiles.P50[i]
		p75 := summary.Percentiles.P75[i]
		p90 := summary.Percentiles.P90[i]

		assert.True(t, p10.LessThanOrEqual(p25), "year %d: p10 <= p25", i)
		assert.True(t, p25.LessThanOrEqual(p50), "year %d: p25 <= p50", i)
		assert.True(t, p50.LessThanOrEqual(p75), "year %d: p50 <= p75", i)
		assert.True(t, p75.LessThanOrEqual(p90), "year %d: p75 <= p90", i)

		assert.False(t, p10.IsNegative(), "year %d: net worth never goes negative", i)
	}

	prob := summary.Statistics.ProbabilityOfSuccess
	assert.True(t, prob.GreaterThanOrEqual(decimal.Zero) && prob.LessThanOrEqual(decimal.NewFromInt(1)))
	assert.Len(t, summary.SampleTrajectories, 100, "Sample retention should cap at 100")
}

func TestMonteCarloEngine_Run_DeterministicWithSeed(t *testing.T) {
	engine := NewMonteCarloEngine()

	first, err := engine.Run(context.Background(), baseConfig())
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), baseConfig())
	require.NoError(t, err)

	for i := range first.Percentiles.P50 {
		assert.True(t, first.Percentiles.P50[i].Equal(second.Percentiles.P50[i]),
			"year %d: identical seeds must reproduce identical medians", i)
	}
	assert.True(t, first.Statistics.Mean.Equal(second.Statistics.Mean))
}

func TestMonteCarloEngine_Run_ExactWithoutVolatility(t *testing.T) {
	engine := NewMonteCarloEngine()

	cfg := frozenConfig()
	cfg.HorizonYears = 3
	summary, err := engine.Run(context.Background(), cfg)
	require.NoError(t, err)

	// Savings of 12,000,000 per year, no growth, no returns.
	want := []int64{10_000_000, 22_000_000, 34_000_000, 46_000_000}
	for i, w := range want {
		assert.True(t, summary.Percentiles.P50[i].Equal(decimal.NewFromInt(w)),
			"year %d: want %d got %s", i, w, summary.Percentiles.P50[i])
	}
	assert.True(t, summary.Statistics.StdDev.IsZero(), "Identical trajectories have zero spread")
	assert.True(t, summary.Statistics.ProbabilityOfSuccess.Equal(decimal.NewFromInt(1)))
}

func TestMonteCarloEngine_Run_LifeEventsApplied(t *testing.T) {
	engine := NewMonteCarloEngine()

	cfg := frozenConfig()
	cfg.HorizonYears = 3
	cfg.Events = []domain.LifeEvent{
		{Year: 2, Kind: domain.LifeEventExpense, Amount: decimal.NewFromInt(5_000_000), Label: "wedding"},
		{Year: 2, Kind: domain.LifeEventIncome, Amount: decimal.NewFromInt(1_000_000), Label: "bonus"},
	}

	summary, err := engine.Run(context.Background(), cfg)
	require.NoError(t, err)

	// Year 2 carries the net -4,000,000 event impact.
	assert.True(t, summary.Percentiles.P50[2].Equal(decimal.NewFromInt(30_000_000)),
		"got %s", summary.Percentiles.P50[2])
	assert.True(t, summary.Percentiles.P50[3].Equal(decimal.NewFromInt(42_000_000)))
}

func TestMonteCarloEngine_Run_FailureTrajectoriesClampToZero(t *testing.T) {
	engine := NewMonteCarloEngine()

	cfg := frozenConfig()
	cfg.StartingNetWorth = decimal.NewFromInt(1_000_000)
	cfg.MonthlyIncome = decimal.Zero
	cfg.MonthlyExpenses = decimal.NewFromInt(1_000_000)

	summary, err := engine.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.True(t, summary.Statistics.ProbabilityOfSuccess.IsZero(),
		"Trajectories clamped at zero count as failures")
	assert.True(t, summary.Statistics.ValueAtRisk.IsZero())
}

func TestMonteCarloEngine_Run_InvalidConfig(t *testing.T) {
	engine := NewMonteCarloEngine()

	cfg := baseConfig()
	cfg.HorizonYears = 0

	summary, err := engine.Run(context.Background(), cfg)
	assert.Nil(t, summary)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
}

func TestMonteCarloEngine_Run_CancelledContext(t *testing.T) {
	engine := NewMonteCarloEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := engine.Run(ctx, baseConfig())
	assert.Nil(t, summary)
	assert.Error(t, err)
}

func TestMonteCarloEngine_ScenarioComparison(t *testing.T) {
	engine := NewMonteCarloEngine()

	// With zero volatility the derived scenarios stay deterministic, so
	// the ordering best > base > worst is exact, not probabilistic.
	cfg := frozenConfig()
	cfg.InvestmentReturnRate.Mean = decimal.NewFromInt(5)

	result, err := engine.RunScenarioComparison(context.Background(), cfg)
	require.NoError(t, err)

	last := cfg.HorizonYears
	base := result.BaseCase.Percentiles.P50[last]
	best := result.BestCase.Percentiles.P50[last]
	worst := result.WorstCase.Percentiles.P50[last]

	assert.True(t, best.GreaterThan(base), "best %s should beat base %s", best, base)
	assert.True(t, base.GreaterThan(worst), "base %s should beat worst %s", base, worst)
}

func TestSimulationSummary_GoalProbability(t *testing.T) {
	engine := NewMonteCarloEngine()

	cfg := frozenConfig()
	cfg.HorizonYears = 3
	summary, err := engine.Run(context.Background(), cfg)
	require.NoError(t, err)

	// Every trajectory ends at 46,000,000.
	assert.True(t, summary.GoalProbability(decimal.NewFromInt(40_000_000), 3).Equal(decimal.NewFromInt(1)))
	assert.True(t, summary.GoalProbability(decimal.NewFromInt(50_000_000), 3).IsZero())
	assert.True(t, summary.GoalProbability(decimal.NewFromInt(1), 99).IsZero(),
		"Out-of-range target year counts as a miss")
}
