package health

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krfin/finsim/internal/domain"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func strongInput() *domain.FinancialHealthInput {
	return &domain.FinancialHealthInput{
		TotalAssets:      dec(200_000_000),
		LiquidAssets:     dec(60_000_000),
		InvestmentAssets: dec(140_000_000),

		TotalLiabilities: dec(20_000_000),
		ShortTermDebt:    dec(6_000_000),
		LongTermDebt:     dec(14_000_000),

		MonthlyIncome:      dec(5_000_000),
		MonthlyExpenses:    dec(3_000_000),
		MonthlyDebtPayment: dec(500_000),

		Age:                   40,
		HasEmergencyFund:      true,
		MonthsOfEmergencyFund: dec(6),
	}
}

func TestFinancialHealthScorer_StrongProfile(t *testing.T) {
	scorer := NewFinancialHealthScorer()

	result := scorer.Score(strongInput())

	// Five perfect components plus a 90 DTI sub-score at weight 0.15.
	assert.True(t, result.TotalScore.Equal(decimal.NewFromFloat(98.5)),
		"got %s", result.TotalScore)
	assert.Equal(t, "A+", result.Grade)

	assert.True(t, result.Components.AssetHealth.Score.Equal(dec(100)))
	assert.True(t, result.Components.DebtManagement.Score.Equal(dec(100)))
	assert.True(t, result.Components.CashFlowHealth.Score.Equal(dec(100)))
	assert.True(t, result.Components.SavingsRate.Score.Equal(dec(100)))
	assert.True(t, result.Components.EmergencyFund.Score.Equal(dec(100)))
	assert.True(t, result.Components.DebtToIncome.Score.Equal(dec(90)))

	joined := strings.Join(result.Recommendations, " ")
	assert.Contains(t, joined, "healthy", "Clean profile gets the keep-it-up recommendation")
}

func TestFinancialHealthScorer_ModerateDebtFreeProfile(t *testing.T) {
	scorer := NewFinancialHealthScorer()

	input := &domain.FinancialHealthInput{
		TotalAssets:      dec(50_000_000),
		LiquidAssets:     dec(15_000_000),
		InvestmentAssets: dec(35_000_000),

		TotalLiabilities: dec(5_000_000),
		ShortTermDebt:    dec(1_500_000),
		LongTermDebt:     dec(3_500_000),

		MonthlyIncome:   dec(3_500_000),
		MonthlyExpenses: dec(2_100_000),

		Age:                   32,
		HasEmergencyFund:      true,
		MonthsOfEmergencyFund: dec(6),
	}

	result := scorer.Score(input)

	// Net worth of 45M earns the 10M-tier bonus, the 0.3 liquidity ratio
	// earns the top liquidity bonus; every other component maxes out, with
	// zero debt payments giving the perfect DTI sub-score.
	assert.True(t, result.Components.AssetHealth.Score.Equal(dec(80)),
		"got %s", result.Components.AssetHealth.Score)
	assert.True(t, result.Components.DebtManagement.Score.Equal(dec(100)))
	assert.True(t, result.Components.CashFlowHealth.Score.Equal(dec(100)))
	assert.True(t, result.Components.SavingsRate.Score.Equal(dec(100)), "40%% savings rate maxes out")
	assert.True(t, result.Components.EmergencyFund.Score.Equal(dec(100)))
	assert.True(t, result.Components.DebtToIncome.Score.Equal(dec(100)))

	assert.True(t, result.TotalScore.Equal(decimal.NewFromFloat(96.0)),
		"got %s", result.TotalScore)
	assert.Equal(t, "A+", result.Grade)
}

func TestFinancialHealthScorer_DebtPaymentOnlyAffectsDTI(t *testing.T) {
	scorer := NewFinancialHealthScorer()

	// A heavy debt payment must not drag down the cash-flow or savings-rate
	// sub-scores; those look at income minus living expenses only.
	input := &domain.FinancialHealthInput{
		TotalAssets:        dec(10_000_000),
		TotalLiabilities:   dec(30_000_000),
		MonthlyIncome:      dec(3_000_000),
		MonthlyExpenses:    dec(2_000_000),
		MonthlyDebtPayment: dec(1_500_000),
	}

	result := scorer.Score(input)

	assert.True(t, result.Components.CashFlowHealth.Score.Equal(dec(100)),
		"surplus of 1,000,000 before debt service scores full, got %s", result.Components.CashFlowHealth.Score)
	assert.True(t, result.Components.SavingsRate.Score.Equal(dec(100)),
		"33.3%% savings rate scores full, got %s", result.Components.SavingsRate.Score)
	assert.True(t, result.Components.DebtToIncome.Score.Equal(dec(30)),
		"the 50%% DTI lands in the bottom band of the DTI sub-score alone, got %s", result.Components.DebtToIncome.Score)
}

func TestFinancialHealthScorer_WeightsSumToOne(t *testing.T) {
	scorer := NewFinancialHealthScorer()

	result := scorer.Score(strongInput())
	c := result.Components

	total := c.AssetHealth.Weight.
		Add(c.DebtManagement.Weight).
		Add(c.CashFlowHealth.Weight).
		Add(c.SavingsRate.Weight).
		Add(c.EmergencyFund.Weight).
		Add(c.DebtToIncome.Weight)

	assert.True(t, total.Equal(dec(1)), "Weights must sum to exactly 1, got %s", total)
}

func TestFinancialHealthScorer_ZeroIncome(t *testing.T) {
	scorer := NewFinancialHealthScorer()

	input := &domain.FinancialHealthInput{
		TotalAssets:        dec(10_000_000),
		MonthlyExpenses:    dec(1_000_000),
		MonthlyDebtPayment: dec(500_000),
	}

	result := scorer.Score(input)

	assert.True(t, result.Components.SavingsRate.Score.IsZero(), "No income means no savings rate")
	assert.True(t, result.Components.DebtToIncome.Score.IsZero(), "No income means the DTI sub-score bottoms out")
}

func TestFinancialHealthScorer_NoDebtScoresFull(t *testing.T) {
	scorer := NewFinancialHealthScorer()

	input := strongInput()
	input.TotalLiabilities = decimal.Zero
	input.MonthlyDebtPayment = decimal.Zero

	result := scorer.Score(input)

	assert.True(t, result.Components.DebtManagement.Score.Equal(dec(100)))
	assert.True(t, result.Components.DebtToIncome.Score.Equal(dec(100)), "Zero DTI is the only way to a perfect DTI sub-score")
}

func TestFinancialHealthScorer_NegativeNetWorth(t *testing.T) {
	scorer := NewFinancialHealthScorer()

	input := &domain.FinancialHealthInput{
		TotalAssets:        dec(10_000_000),
		LiquidAssets:       dec(1_000_000),
		TotalLiabilities:   dec(50_000_000),
		MonthlyIncome:      dec(2_000_000),
		MonthlyExpenses:    dec(2_500_000),
		MonthlyDebtPayment: dec(800_000),
	}

	result := scorer.Score(input)

	// No net-worth base, only the minimum liquidity bonus.
	assert.True(t, result.Components.AssetHealth.Score.Equal(dec(10)),
		"got %s", result.Components.AssetHealth.Score)
	assert.True(t, result.Components.CashFlowHealth.Score.IsZero())
	assert.Equal(t, "F", result.Grade)

	joined := strings.Join(result.Insights, " ")
	assert.Contains(t, joined, "liabilities exceed", "Negative net worth gets called out")
	assert.Contains(t, joined, "spending more than you earn")

	assert.NotEmpty(t, result.Recommendations)
}

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{95, "A+"},
		{94.9, "A"},
		{90, "A"},
		{85, "B+"},
		{80, "B"},
		{75, "C+"},
		{70, "C"},
		{60, "D"},
		{59.9, "F"},
	}

	for _, tc := range cases {
		got := gradeFor(decimal.NewFromFloat(tc.score))
		assert.Equal(t, tc.grade, got, "score %.1f", tc.score)
	}
}

func TestEmergencyFundLadder(t *testing.T) {
	cases := []struct {
		months int64
		score  int64
	}{
		{0, 0},
		{1, 40},
		{3, 70},
		{6, 100},
		{12, 100},
	}

	for _, tc := range cases {
		input := &domain.FinancialHealthInput{MonthsOfEmergencyFund: dec(tc.months)}
		got := emergencyFundScore(input)
		require.True(t, got.Equal(dec(tc.score)), "%d months: want %d got %s", tc.months, tc.score, got)
	}
}
