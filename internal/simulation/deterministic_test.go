package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDeterministic_NoGrowth(t *testing.T) {
	cfg := &DeterministicConfig{
		Years:           2,
		MonthlyIncome:   decimal.NewFromInt(100),
		MonthlyExpenses: decimal.NewFromInt(50),
	}

	points := ProjectDeterministic(cfg)
	require.Len(t, points, 3)

	// 600 saved per year, nothing compounds.
	assert.True(t, points[0].NetWorth.Equal(decimal.NewFromInt(600)))
	assert.True(t, points[1].NetWorth.Equal(decimal.NewFromInt(1200)))
	assert.True(t, points[2].NetWorth.Equal(decimal.NewFromInt(1800)))
}

func TestProjectDeterministic_ReturnCompounds(t *testing.T) {
	cfg := &DeterministicConfig{
		Years:                1,
		MonthlyIncome:        decimal.NewFromInt(100),
		MonthlyExpenses:      decimal.NewFromInt(50),
		InvestmentReturnRate: decimal.NewFromInt(10),
	}

	points := ProjectDeterministic(cfg)
	require.Len(t, points, 2)

	// Year 0: 600 * 1.1 = 660. Year 1: (660 + 600) * 1.1 = 1386.
	assert.True(t, points[0].NetWorth.Equal(decimal.NewFromInt(660)))
	assert.True(t, points[1].NetWorth.Equal(decimal.NewFromInt(1386)))
}

func TestProjectDeterministic_GrowthRatesDiverge(t *testing.T) {
	cfg := &DeterministicConfig{
		Years:            2,
		MonthlyIncome:    decimal.NewFromInt(1000),
		MonthlyExpenses:  decimal.NewFromInt(1000),
		IncomeGrowthRate: decimal.NewFromInt(5),
		InflationRate:    decimal.NewFromInt(2),
	}

	points := ProjectDeterministic(cfg)

	// Income outgrows expenses, so reported income pulls ahead.
	assert.True(t, points[0].Income.Equal(points[0].Expenses))
	assert.True(t, points[2].Income.GreaterThan(points[2].Expenses))
}

func TestProjectDeterministic_EventImpact(t *testing.T) {
	cfg := &DeterministicConfig{
		Years:           2,
		MonthlyIncome:   decimal.NewFromInt(100),
		MonthlyExpenses: decimal.NewFromInt(50),
		Events: []PlannedEvent{
			{
				Title:                "move",
				YearOffset:           1,
				OneTimeCost:          decimal.NewFromInt(300),
				MonthlyExpenseChange: decimal.NewFromInt(10),
			},
		},
	}

	points := ProjectDeterministic(cfg)

	// Year 1: 600 + 600 - 300 - 120 = 780.
	assert.True(t, points[1].NetWorth.Equal(decimal.NewFromInt(780)),
		"got %s", points[1].NetWorth)
}
