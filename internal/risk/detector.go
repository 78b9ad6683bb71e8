package risk

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/krfin/finsim/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)

	// Regulator-style DSR thresholds, percent units.
	dsrCaution = decimal.NewFromInt(40)
	dsrWarning = decimal.NewFromInt(50)
	dsrDanger  = decimal.NewFromInt(60)
	dsrSevere  = decimal.NewFromInt(70)

	dtiCaution = decimal.NewFromInt(30)
	dtiWarning = decimal.NewFromInt(40)
	dtiDanger  = decimal.NewFromInt(50)

	// Loans at or above this annual rate count as high-interest debt.
	highInterestRate = decimal.NewFromInt(15)

	// Balances below this are "small loans" worth clearing first to
	// reduce the number of open facilities.
	smallLoanCeiling = decimal.NewFromInt(5_000_000)

	// Payments above 30% of income trigger a concrete reduction target.
	targetPaymentShare = decimal.NewFromFloat(0.3)
)

// DSRRiskDetector computes debt-service ratios, classifies risk, and
// produces alerts, recommendations, and a payoff projection.
type DSRRiskDetector struct {
	projector *AmortizationProjector
}

// NewDSRRiskDetector creates a detector with a standard amortization
// projector.
func NewDSRRiskDetector() *DSRRiskDetector {
	return &DSRRiskDetector{projector: NewAmortizationProjector()}
}

// Calculate runs the full DSR/DTI analysis over one input snapshot.
func (d *DSRRiskDetector) Calculate(input *domain.DSRInput) *domain.DSRResult {
	dsr := serviceRatio(input.MonthlyDebtPayment.Add(input.OtherMonthlyObligations), input.MonthlyIncome)
	dti := serviceRatio(input.MonthlyDebtPayment, input.MonthlyIncome)

	return &domain.DSRResult{
		DSR:             dsr,
		DTI:             dti,
		RiskLevel:       classifyRisk(dsr, dti),
		RiskScore:       riskScore(dsr, dti, input.Loans),
		Alerts:          buildAlerts(dsr, dti, input.Loans),
		Recommendations: buildRecommendations(dsr, dti, input.Loans, input.MonthlyIncome),
		Projection:      d.projector.Project(input.Loans, input.MonthlyDebtPayment),
	}
}

// SimulateImprovement recomputes the ratios under a what-if adjustment
// and reports the delta. The refinance effect is a deliberately crude
// linear approximation of the payment reduction, not a true amortization
// recomputation; its output is indicative, not contractual.
func (d *DSRRiskDetector) SimulateImprovement(input *domain.DSRInput, scenario domain.ImprovementScenario) *domain.ImprovementResult {
	current := d.Calculate(input)

	newIncome := input.MonthlyIncome
	newPayment := input.MonthlyDebtPayment

	if scenario.IncreaseIncome != nil {
		newIncome = newIncome.Add(*scenario.IncreaseIncome)
	}
	if scenario.ReduceExpenses != nil {
		// Freed-up spending is redirected into debt service.
		newPayment = newPayment.Add(*scenario.ReduceExpenses)
	}
	if scenario.RefinanceRate != nil && len(input.Loans) > 0 {
		avgRate := simpleAverageRate(input.Loans)
		if avgRate.IsPositive() {
			rateDiff := avgRate.Sub(*scenario.RefinanceRate)
			reduction := rateDiff.Div(avgRate).Mul(decimal.NewFromFloat(0.5))
			newPayment = newPayment.Mul(one.Sub(reduction))
		}
	}
	if scenario.ExtraPayment != nil {
		newPayment = newPayment.Add(*scenario.ExtraPayment)
	}

	improvedDSR := serviceRatio(newPayment.Add(input.OtherMonthlyObligations), newIncome)
	newDTI := serviceRatio(newPayment, newIncome)

	return &domain.ImprovementResult{
		CurrentDSR:   current.DSR,
		ImprovedDSR:  improvedDSR,
		Improvement:  current.DSR.Sub(improvedDSR),
		NewRiskLevel: classifyRisk(improvedDSR, newDTI),
	}
}

// serviceRatio is payment/income as a percentage, zero when there is no
// income. The zero-income short-circuit is a domain convention, not a
// swallowed error.
func serviceRatio(payment, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return payment.Div(income).Mul(hundred)
}

// classifyRisk applies the threshold ladder from worst to best; the first
// matching rule wins.
func classifyRisk(dsr, dti decimal.Decimal) domain.RiskLevel {
	switch {
	case dsr.GreaterThanOrEqual(dsrDanger) || dti.GreaterThanOrEqual(dtiDanger):
		return domain.RiskDanger
	case dsr.GreaterThanOrEqual(dsrWarning) || dti.GreaterThanOrEqual(dtiWarning):
		return domain.RiskWarning
	case dsr.GreaterThanOrEqual(dsrCaution) || dti.GreaterThanOrEqual(dtiCaution):
		return domain.RiskCaution
	default:
		return domain.RiskSafe
	}
}

// riskScore is additive: up to 50 points from DSR, 30 from DTI, 20 from
// high-interest exposure, capped at 100.
func riskScore(dsr, dti decimal.Decimal, loans []domain.LoanFacility) int {
	score := decimal.Zero

	switch {
	case dsr.GreaterThanOrEqual(dsrSevere):
		score = score.Add(decimal.NewFromInt(50))
	case dsr.GreaterThanOrEqual(dsrDanger):
		score = score.Add(decimal.NewFromInt(45))
	case dsr.GreaterThanOrEqual(dsrWarning):
		score = score.Add(decimal.NewFromInt(35))
	case dsr.GreaterThanOrEqual(dsrCaution):
		score = score.Add(decimal.NewFromInt(25))
	case dsr.GreaterThanOrEqual(dtiCaution):
		score = score.Add(decimal.NewFromInt(15))
	default:
		score = score.Add(dsr.Div(dtiCaution).Mul(decimal.NewFromInt(15)))
	}

	switch {
	case dti.GreaterThanOrEqual(dtiDanger):
		score = score.Add(decimal.NewFromInt(30))
	case dti.GreaterThanOrEqual(dtiWarning):
		score = score.Add(decimal.NewFromInt(25))
	case dti.GreaterThanOrEqual(dtiCaution):
		score = score.Add(decimal.NewFromInt(20))
	default:
		score = score.Add(dti.Div(dtiCaution).Mul(decimal.NewFromInt(20)))
	}

	if n := len(highInterestLoans(loans)); n > 0 {
		points := n * 5
		if points > 20 {
			points = 20
		}
		score = score.Add(decimal.NewFromInt(int64(points)))
	}

	rounded := score.Round(0)
	if rounded.GreaterThan(hundred) {
		return 100
	}
	return int(rounded.IntPart())
}

// buildAlerts emits one alert per triggered condition. The DSR, DTI,
// high-interest, and multi-debt checks are independent; several alerts
// can coexist. A completely clean result still produces a single
// informational alert.
func buildAlerts(dsr, dti decimal.Decimal, loans []domain.LoanFacility) []domain.Alert {
	alerts := []domain.Alert{}

	switch {
	case dsr.GreaterThanOrEqual(dsrDanger):
		alerts = append(alerts, domain.Alert{
			Severity:       domain.SeverityCritical,
			Title:          "DSR critical threshold exceeded",
			Message:        fmt.Sprintf("Your DSR is %s%%, far above the regulatory guideline of 40%%. The risk of financial distress is high.", dsr.StringFixed(1)),
			ActionRequired: true,
		})
	case dsr.GreaterThanOrEqual(dsrWarning):
		alerts = append(alerts, domain.Alert{
			Severity:       domain.SeverityWarning,
			Title:          "DSR warning level",
			Message:        fmt.Sprintf("Your DSR is %s%%. Debt reduction is needed.", dsr.StringFixed(1)),
			ActionRequired: true,
		})
	case dsr.GreaterThanOrEqual(dsrCaution):
		alerts = append(alerts, domain.Alert{
			Severity:       domain.SeverityWarning,
			Title:          "DSR caution level",
			Message:        fmt.Sprintf("Your DSR is %s%%. Hold off on new borrowing and focus on managing existing debt.", dsr.StringFixed(1)),
			ActionRequired: false,
		})
	}

	if dti.GreaterThanOrEqual(dtiWarning) {
		alerts = append(alerts, domain.Alert{
			Severity:       domain.SeverityCritical,
			Title:          "DTI danger level",
			Message:        fmt.Sprintf("Your DTI is %s%%; debt service takes a heavy share of income.", dti.StringFixed(1)),
			ActionRequired: true,
		})
	}

	if high := highInterestLoans(loans); len(high) > 0 {
		totalHighInterest := decimal.Zero
		for _, loan := range high {
			totalHighInterest = totalHighInterest.Add(loan.Balance)
		}
		alerts = append(alerts, domain.Alert{
			Severity:       domain.SeverityWarning,
			Title:          "High-interest loans outstanding",
			Message:        fmt.Sprintf("You hold %d loan(s) at 15%%+ APR totalling %s won. Consider refinancing.", len(high), formatWon(totalHighInterest)),
			ActionRequired: true,
		})
	}

	if len(loans) >= 5 {
		alerts = append(alerts, domain.Alert{
			Severity:       domain.SeverityWarning,
			Title:          "Multiple open loans",
			Message:        fmt.Sprintf("You are managing %d loans. Consider consolidating them.", len(loans)),
			ActionRequired: false,
		})
	}

	if len(alerts) == 0 {
		alerts = append(alerts, domain.Alert{
			Severity:       domain.SeverityInfo,
			Title:          "Financially healthy",
			Message:        fmt.Sprintf("DSR %s%% and DTI %s%% are at sound levels.", dsr.StringFixed(1), dti.StringFixed(1)),
			ActionRequired: false,
		})
	}

	return alerts
}

// buildRecommendations produces rule-based free-text advice keyed off the
// same thresholds as the alerts.
func buildRecommendations(dsr, dti decimal.Decimal, loans []domain.LoanFacility, monthlyIncome decimal.Decimal) []string {
	recs := []string{}

	switch {
	case dsr.GreaterThanOrEqual(dsrDanger):
		recs = append(recs,
			"Urgent: consult a financial professional and set up a debt restructuring plan.",
			"Raising income or cutting spending sharply to bring DSR under 40% is critical.")
	case dsr.GreaterThanOrEqual(dsrWarning):
		recs = append(recs, "Stop taking on new loans and concentrate on repaying existing debt to bring DSR down.")
	case dsr.GreaterThanOrEqual(dsrCaution):
		recs = append(recs, "With DSR above 40%, new loan approvals may be difficult. Tighten up debt management.")
	}

	if high := highInterestLoans(loans); len(high) > 0 {
		sort.Slice(high, func(i, j int) bool { return high[i].AnnualRate.GreaterThan(high[j].AnnualRate) })
		recs = append(recs,
			fmt.Sprintf("Pay down your highest-rate loan (%s%% APR) first.", high[0].AnnualRate.StringFixed(1)),
			"Look into government-backed low-rate refinancing programs such as Sunshine Loan or New Hope Seed.")
	}

	if small := smallLoans(loans); len(small) > 0 {
		sort.Slice(small, func(i, j int) bool { return small[i].Balance.LessThan(small[j].Balance) })
		recs = append(recs, fmt.Sprintf("Clear your smallest loan (%s won) first to reduce the number of open facilities.", formatWon(small[0].Balance)))
	}

	if len(loans) >= 3 {
		recs = append(recs, "Consolidating several loans into one can lower your rate and simplify management.")
	}

	if dti.GreaterThanOrEqual(dtiCaution) && monthlyIncome.IsPositive() {
		targetPayment := monthlyIncome.Mul(targetPaymentShare)
		totalPayment := decimal.Zero
		for _, loan := range loans {
			totalPayment = totalPayment.Add(loan.MonthlyPayment)
		}
		if reduction := totalPayment.Sub(targetPayment); reduction.IsPositive() {
			recs = append(recs, fmt.Sprintf("Consider restructuring to cut your monthly repayments by %s won.", formatWon(reduction)))
		}
	}

	if len(recs) == 0 {
		recs = append(recs,
			"Your debt is well managed. Keep it at this level.",
			"If you have spare funds, early repayment will cut your interest costs.")
	}

	return recs
}

func highInterestLoans(loans []domain.LoanFacility) []domain.LoanFacility {
	var high []domain.LoanFacility
	for _, loan := range loans {
		if loan.AnnualRate.GreaterThanOrEqual(highInterestRate) {
			high = append(high, loan)
		}
	}
	return high
}

func smallLoans(loans []domain.LoanFacility) []domain.LoanFacility {
	var small []domain.LoanFacility
	for _, loan := range loans {
		if loan.Balance.LessThan(smallLoanCeiling) {
			small = append(small, loan)
		}
	}
	return small
}

// simpleAverageRate is the unweighted mean annual rate, used only by the
// refinance approximation.
func simpleAverageRate(loans []domain.LoanFacility) decimal.Decimal {
	if len(loans) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, loan := range loans {
		sum = sum.Add(loan.AnnualRate)
	}
	return sum.Div(decimal.NewFromInt(int64(len(loans))))
}

// formatWon renders an amount with thousands separators, no decimals.
func formatWon(amount decimal.Decimal) string {
	s := amount.Round(0).String()
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
