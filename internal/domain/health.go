package domain

import "github.com/shopspring/decimal"

// FinancialHealthInput aggregates the balance-sheet and cash-flow facts
// the health scorer works from.
type FinancialHealthInput struct {
	TotalAssets      decimal.Decimal `json:"totalAssets" yaml:"total_assets"`
	LiquidAssets     decimal.Decimal `json:"liquidAssets" yaml:"liquid_assets"`
	InvestmentAssets decimal.Decimal `json:"investmentAssets" yaml:"investment_assets"`

	TotalLiabilities decimal.Decimal `json:"totalLiabilities" yaml:"total_liabilities"`
	ShortTermDebt    decimal.Decimal `json:"shortTermDebt" yaml:"short_term_debt"`
	LongTermDebt     decimal.Decimal `json:"longTermDebt" yaml:"long_term_debt"`

	MonthlyIncome      decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	MonthlyExpenses    decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"`
	MonthlyDebtPayment decimal.Decimal `json:"monthlyDebtPayment" yaml:"monthly_debt_payment"`

	Age                   int             `json:"age" yaml:"age"`
	HasEmergencyFund      bool            `json:"hasEmergencyFund" yaml:"has_emergency_fund"`
	MonthsOfEmergencyFund decimal.Decimal `json:"monthsOfEmergencyFund" yaml:"months_of_emergency_fund"`
}

// ScoreComponent is one sub-score of the composite health score. Score is
// 0-100 before weighting; Weight is the fixed share it contributes to the
// total.
type ScoreComponent struct {
	Score       decimal.Decimal `json:"score"`
	Weight      decimal.Decimal `json:"weight"`
	Description string          `json:"description"`
}

// HealthComponents names the six sub-scores in weighting order.
type HealthComponents struct {
	AssetHealth    ScoreComponent `json:"assetHealth"`
	DebtManagement ScoreComponent `json:"debtManagement"`
	CashFlowHealth ScoreComponent `json:"cashFlowHealth"`
	SavingsRate    ScoreComponent `json:"savingsRate"`
	EmergencyFund  ScoreComponent `json:"emergencyFund"`
	DebtToIncome   ScoreComponent `json:"debtToIncome"`
}

// HealthScoreResult is the composite 0-100 score with its letter grade,
// sub-scores, and generated commentary.
type HealthScoreResult struct {
	TotalScore      decimal.Decimal  `json:"totalScore"`
	Grade           string           `json:"grade"`
	Components      HealthComponents `json:"components"`
	Insights        []string         `json:"insights"`
	Recommendations []string         `json:"recommendations"`
}
