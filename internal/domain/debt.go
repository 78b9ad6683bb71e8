package domain

import "github.com/shopspring/decimal"

// LoanFacility is one debt instrument, built from externally sourced loan
// records and read-only within the engines. AnnualRate is in percent units.
type LoanFacility struct {
	Type            string          `json:"loanType" yaml:"loan_type"`
	Balance         decimal.Decimal `json:"balance" yaml:"balance"`
	AnnualRate      decimal.Decimal `json:"interestRate" yaml:"interest_rate"`
	MonthlyPayment  decimal.Decimal `json:"monthlyPayment" yaml:"monthly_payment"`
	RemainingMonths int             `json:"remainingMonths" yaml:"remaining_months"`
}

// DSRInput aggregates the income and debt-service facts the risk detector
// works from. AnnualIncome is supplied redundantly by the caller
// (monthly x 12) and is not recomputed here.
type DSRInput struct {
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	AnnualIncome       decimal.Decimal `json:"annualIncome" yaml:"annual_income"`
	MonthlyDebtPayment decimal.Decimal `json:"monthlyDebtPayment" yaml:"monthly_debt_payment"`
	MonthlyPrincipal   decimal.Decimal `json:"monthlyPrincipal" yaml:"monthly_principal"`
	MonthlyInterest    decimal.Decimal `json:"monthlyInterest" yaml:"monthly_interest"`

	Loans []LoanFacility `json:"loans" yaml:"loans"`

	// Fixed monthly obligations outside debt service: insurance premiums,
	// telecom contracts and the like.
	OtherMonthlyObligations decimal.Decimal `json:"otherMonthlyObligations" yaml:"other_monthly_obligations"`
}

// RiskLevel is the four-step classification used by financial regulators
// for debt-service ratios.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskCaution RiskLevel = "caution"
	RiskWarning RiskLevel = "warning"
	RiskDanger  RiskLevel = "danger"
)

// AlertSeverity grades an alert for display purposes.
type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is one human-readable warning produced by the risk detector.
type Alert struct {
	Severity       AlertSeverity `json:"severity"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	ActionRequired bool          `json:"actionRequired"`
}

// DebtProjection is the outcome of the flat-rate amortization projection.
// NonConvergent reports the designed non-payoff signal: the payment does
// not cover the monthly interest charge, so the balance can never reach
// zero at this payment level. That is a valid (if dire) financial outcome
// for the caller to display, not an error.
type DebtProjection struct {
	MonthsUntilPayoff int             `json:"monthsUntilDebtFree"`
	TotalInterest     decimal.Decimal `json:"totalInterestToPay"`
	PotentialSavings  decimal.Decimal `json:"potentialSavings"`
	NonConvergent     bool            `json:"nonConvergent,omitempty"`
}

// DSRResult is the full structured output of one risk calculation.
type DSRResult struct {
	DSR             decimal.Decimal `json:"dsr"`
	DTI             decimal.Decimal `json:"dti"`
	RiskLevel       RiskLevel       `json:"riskLevel"`
	RiskScore       int             `json:"riskScore"`
	Alerts          []Alert         `json:"alerts"`
	Recommendations []string        `json:"recommendations"`
	Projection      DebtProjection  `json:"projection"`
}

// ImprovementScenario describes a what-if adjustment for the DSR
// improvement simulation. Nil fields mean "leave unchanged".
type ImprovementScenario struct {
	IncreaseIncome *decimal.Decimal `json:"increaseIncome,omitempty" yaml:"increase_income"`
	ReduceExpenses *decimal.Decimal `json:"reduceExpenses,omitempty" yaml:"reduce_expenses"`
	RefinanceRate  *decimal.Decimal `json:"refinanceRate,omitempty" yaml:"refinance_rate"`
	ExtraPayment   *decimal.Decimal `json:"extraPayment,omitempty" yaml:"extra_payment"`
}

// ImprovementResult reports the before/after delta of an improvement
// simulation.
type ImprovementResult struct {
	CurrentDSR   decimal.Decimal `json:"currentDsr"`
	ImprovedDSR  decimal.Decimal `json:"improvedDsr"`
	Improvement  decimal.Decimal `json:"improvement"`
	NewRiskLevel RiskLevel       `json:"newRiskLevel"`
}
