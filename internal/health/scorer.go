package health

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/krfin/finsim/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)

	weightAssets    = decimal.NewFromFloat(0.20)
	weightDebt      = decimal.NewFromFloat(0.20)
	weightCashFlow  = decimal.NewFromFloat(0.15)
	weightSavings   = decimal.NewFromFloat(0.15)
	weightEmergency = decimal.NewFromFloat(0.15)
	weightDTI       = decimal.NewFromFloat(0.15)

	// Net-worth bonus tiers for the asset sub-score, in won.
	netWorthTier1 = decimal.NewFromInt(10_000_000)
	netWorthTier2 = decimal.NewFromInt(50_000_000)
	netWorthTier3 = decimal.NewFromInt(100_000_000)
)

// FinancialHealthScorer grades a household balance sheet on six weighted
// sub-scores and renders the result as a 0-100 composite with a letter
// grade.
type FinancialHealthScorer struct{}

// NewFinancialHealthScorer creates a scorer.
func NewFinancialHealthScorer() *FinancialHealthScorer {
	return &FinancialHealthScorer{}
}

// Score computes the six sub-scores, the weighted composite, the letter
// grade, and the generated commentary.
func (s *FinancialHealthScorer) Score(input *domain.FinancialHealthInput) *domain.HealthScoreResult {
	components := domain.HealthComponents{
		AssetHealth: domain.ScoreComponent{
			Score:       assetHealthScore(input),
			Weight:      weightAssets,
			Description: "Net worth and asset liquidity",
		},
		DebtManagement: domain.ScoreComponent{
			Score:       debtManagementScore(input),
			Weight:      weightDebt,
			Description: "Liabilities relative to total assets",
		},
		CashFlowHealth: domain.ScoreComponent{
			Score:       cashFlowScore(input),
			Weight:      weightCashFlow,
			Description: "Monthly surplus after expenses and debt service",
		},
		SavingsRate: domain.ScoreComponent{
			Score:       savingsRateScore(input),
			Weight:      weightSavings,
			Description: "Share of income saved each month",
		},
		EmergencyFund: domain.ScoreComponent{
			Score:       emergencyFundScore(input),
			Weight:      weightEmergency,
			Description: "Months of expenses covered by liquid reserves",
		},
		DebtToIncome: domain.ScoreComponent{
			Score:       debtToIncomeScore(input),
			Weight:      weightDTI,
			Description: "Monthly debt payments relative to income",
		},
	}

	total := decimal.Zero
	for _, c := range []domain.ScoreComponent{
		components.AssetHealth,
		components.DebtManagement,
		components.CashFlowHealth,
		components.SavingsRate,
		components.EmergencyFund,
		components.DebtToIncome,
	} {
		total = total.Add(c.Score.Mul(c.Weight))
	}
	total = total.Round(1)

	return &domain.HealthScoreResult{
		TotalScore:      total,
		Grade:           gradeFor(total),
		Components:      components,
		Insights:        buildInsights(total, input),
		Recommendations: buildRecommendations(components),
	}
}

// assetHealthScore awards a 50-point base for positive net worth, tiered
// bonuses for its size, and a liquidity bonus for the share of assets held
// in liquid form. The liquidity bonus applies even at zero net worth.
func assetHealthScore(input *domain.FinancialHealthInput) decimal.Decimal {
	netWorth := input.TotalAssets.Sub(input.TotalLiabilities)

	score := decimal.Zero
	if netWorth.IsPositive() {
		score = decimal.NewFromInt(50)
		switch {
		case netWorth.GreaterThan(netWorthTier3):
			score = score.Add(decimal.NewFromInt(30))
		case netWorth.GreaterThan(netWorthTier2):
			score = score.Add(decimal.NewFromInt(20))
		case netWorth.GreaterThan(netWorthTier1):
			score = score.Add(decimal.NewFromInt(10))
		}
	}

	liquidityRatio := decimal.Zero
	if input.TotalAssets.IsPositive() {
		liquidityRatio = input.LiquidAssets.Div(input.TotalAssets)
	}
	switch {
	case liquidityRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.3)):
		score = score.Add(decimal.NewFromInt(20))
	case liquidityRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.2)):
		score = score.Add(decimal.NewFromInt(15))
	case liquidityRatio.GreaterThanOrEqual(decimal.NewFromFloat(0.1)):
		score = score.Add(decimal.NewFromInt(10))
	default:
		score = score.Add(decimal.NewFromInt(5))
	}

	if score.GreaterThan(hundred) {
		return hundred
	}
	return score
}

// debtManagementScore ladders on the debt-to-asset ratio. No debt scores
// a flat 100; debt with zero assets is treated as a ratio of 1.
func debtManagementScore(input *domain.FinancialHealthInput) decimal.Decimal {
	if !input.TotalLiabilities.IsPositive() {
		return hundred
	}

	debtRatio := decimal.NewFromInt(1)
	if input.TotalAssets.IsPositive() {
		debtRatio = input.TotalLiabilities.Div(input.TotalAssets)
	}

	switch {
	case debtRatio.LessThanOrEqual(decimal.NewFromFloat(0.3)):
		return hundred
	case debtRatio.LessThanOrEqual(decimal.NewFromFloat(0.5)):
		return decimal.NewFromInt(80)
	case debtRatio.LessThanOrEqual(decimal.NewFromFloat(0.7)):
		return decimal.NewFromInt(60)
	case debtRatio.LessThanOrEqual(decimal.NewFromFloat(0.9)):
		return decimal.NewFromInt(40)
	default:
		return decimal.NewFromInt(20)
	}
}

// cashFlowScore looks at income minus living expenses only. Debt service
// is scored separately by the DTI sub-score.
func cashFlowScore(input *domain.FinancialHealthInput) decimal.Decimal {
	cashFlow := input.MonthlyIncome.Sub(input.MonthlyExpenses)
	switch {
	case cashFlow.IsPositive():
		return hundred
	case cashFlow.IsZero():
		return decimal.NewFromInt(50)
	default:
		return decimal.Zero
	}
}

func savingsRateScore(input *domain.FinancialHealthInput) decimal.Decimal {
	if !input.MonthlyIncome.IsPositive() {
		return decimal.Zero
	}
	rate := input.MonthlyIncome.
		Sub(input.MonthlyExpenses).
		Div(input.MonthlyIncome).
		Mul(hundred)

	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(30)):
		return hundred
	case rate.GreaterThanOrEqual(decimal.NewFromInt(20)):
		return decimal.NewFromInt(80)
	case rate.GreaterThanOrEqual(decimal.NewFromInt(10)):
		return decimal.NewFromInt(60)
	case rate.GreaterThanOrEqual(decimal.NewFromInt(5)):
		return decimal.NewFromInt(40)
	case rate.GreaterThanOrEqual(decimal.Zero):
		return decimal.NewFromInt(20)
	default:
		return decimal.Zero
	}
}

func emergencyFundScore(input *domain.FinancialHealthInput) decimal.Decimal {
	months := input.MonthsOfEmergencyFund
	switch {
	case months.GreaterThanOrEqual(decimal.NewFromInt(6)):
		return hundred
	case months.GreaterThanOrEqual(decimal.NewFromInt(3)):
		return decimal.NewFromInt(70)
	case months.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return decimal.NewFromInt(40)
	default:
		return decimal.Zero
	}
}

func debtToIncomeScore(input *domain.FinancialHealthInput) decimal.Decimal {
	if !input.MonthlyIncome.IsPositive() {
		return decimal.Zero
	}
	dti := input.MonthlyDebtPayment.Div(input.MonthlyIncome).Mul(hundred)

	switch {
	case dti.IsZero():
		return hundred
	case dti.LessThanOrEqual(decimal.NewFromInt(20)):
		return decimal.NewFromInt(90)
	case dti.LessThanOrEqual(decimal.NewFromInt(30)):
		return decimal.NewFromInt(70)
	case dti.LessThanOrEqual(decimal.NewFromInt(40)):
		return decimal.NewFromInt(50)
	case dti.LessThanOrEqual(decimal.NewFromInt(50)):
		return decimal.NewFromInt(30)
	default:
		return decimal.Zero
	}
}

func gradeFor(total decimal.Decimal) string {
	switch {
	case total.GreaterThanOrEqual(decimal.NewFromInt(95)):
		return "A+"
	case total.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return "A"
	case total.GreaterThanOrEqual(decimal.NewFromInt(85)):
		return "B+"
	case total.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return "B"
	case total.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return "C+"
	case total.GreaterThanOrEqual(decimal.NewFromInt(70)):
		return "C"
	case total.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return "D"
	default:
		return "F"
	}
}

func buildInsights(total decimal.Decimal, input *domain.FinancialHealthInput) []string {
	insights := []string{
		fmt.Sprintf("Your financial health score is %s out of 100.", total.StringFixed(1)),
	}

	switch {
	case total.GreaterThanOrEqual(decimal.NewFromInt(90)):
		insights = append(insights, "You are in excellent financial shape. Keep it up.")
	case total.GreaterThanOrEqual(decimal.NewFromInt(70)):
		insights = append(insights, "You are in good financial shape with a few areas worth tightening up.")
	default:
		insights = append(insights, "Your finances need attention. Work through the recommendations below.")
	}

	netWorth := input.TotalAssets.Sub(input.TotalLiabilities)
	if netWorth.IsPositive() {
		insights = append(insights, fmt.Sprintf("Your net worth is %s won.", netWorth.Round(0).String()))
	} else if netWorth.IsNegative() {
		insights = append(insights, "Your liabilities exceed your assets. Prioritize paying down debt.")
	}

	if input.MonthlyIncome.IsPositive() {
		rate := input.MonthlyIncome.
			Sub(input.MonthlyExpenses).
			Div(input.MonthlyIncome).
			Mul(hundred)
		if rate.GreaterThanOrEqual(decimal.NewFromInt(20)) {
			insights = append(insights, fmt.Sprintf("You are saving %s%% of your income, a strong rate.", rate.StringFixed(1)))
		} else if rate.IsNegative() {
			insights = append(insights, "You are spending more than you earn each month.")
		}
	}

	return insights
}

func buildRecommendations(components domain.HealthComponents) []string {
	recs := []string{}

	if components.EmergencyFund.Score.LessThan(decimal.NewFromInt(70)) {
		recs = append(recs, "Build an emergency fund covering 3 to 6 months of expenses.")
	}
	if components.DebtManagement.Score.LessThan(decimal.NewFromInt(60)) {
		recs = append(recs, "Your debt ratio is high. Set up a repayment plan to bring liabilities down.")
	}
	if components.SavingsRate.Score.LessThan(decimal.NewFromInt(60)) {
		recs = append(recs, "Review your spending and aim to save at least 10% of income each month.")
	}
	if components.DebtToIncome.Score.LessThan(decimal.NewFromInt(50)) {
		recs = append(recs, "Debt service is taking a large share of income. Consider refinancing or restructuring.")
	}
	if components.CashFlowHealth.Score.LessThan(decimal.NewFromInt(50)) {
		recs = append(recs, "Your monthly cash flow is negative. Cut fixed costs to restore a surplus.")
	}

	if len(recs) == 0 {
		recs = append(recs, "All indicators look healthy. Consider expanding your investments for long-term growth.")
	}

	return recs
}
