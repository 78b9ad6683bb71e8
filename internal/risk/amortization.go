package risk

import (
	"github.com/shopspring/decimal"

	"github.com/krfin/finsim/internal/domain"
)

// MaxPayoffMonths caps the amortization loop at 50 years. The cap exists
// to guarantee termination when a payment barely exceeds the interest
// charge; it is not a user-facing timeout.
const MaxPayoffMonths = 600

var acceleratedFactor = decimal.NewFromFloat(1.2)

// AmortizationProjector projects months-to-payoff and total interest for
// a debt portfolio under a flat-rate approximation: a single balance-
// weighted average rate stands in for the per-loan schedules.
type AmortizationProjector struct {
	MaxMonths int
}

// NewAmortizationProjector creates a projector with the standard 600-month
// ceiling.
func NewAmortizationProjector() *AmortizationProjector {
	return &AmortizationProjector{MaxMonths: MaxPayoffMonths}
}

// Project runs the month-by-month payoff at the given payment, then again
// at a 20%-larger payment to estimate the interest saved by accelerating.
// A payment that does not cover the monthly interest charge yields a
// NonConvergent projection rather than an error.
func (p *AmortizationProjector) Project(loans []domain.LoanFacility, monthlyPayment decimal.Decimal) domain.DebtProjection {
	totalBalance := decimal.Zero
	for _, loan := range loans {
		totalBalance = totalBalance.Add(loan.Balance)
	}

	monthlyRate := weightedAverageRate(loans).Div(hundred).Div(twelve)

	months, baseInterest, converged := p.payoff(totalBalance, monthlyRate, monthlyPayment)
	if !converged {
		return domain.DebtProjection{
			NonConvergent:    true,
			TotalInterest:    decimal.Zero,
			PotentialSavings: decimal.Zero,
		}
	}

	_, acceleratedInterest, _ := p.payoff(totalBalance, monthlyRate, monthlyPayment.Mul(acceleratedFactor))

	savings := baseInterest.Sub(acceleratedInterest)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return domain.DebtProjection{
		MonthsUntilPayoff: months,
		TotalInterest:     baseInterest,
		PotentialSavings:  savings,
	}
}

// payoff iterates the balance month by month until it is cleared or the
// ceiling is hit. converged is false only when the payment fails to cover
// the interest charge, which means the balance can never reach zero.
func (p *AmortizationProjector) payoff(balance, monthlyRate, payment decimal.Decimal) (months int, totalInterest decimal.Decimal, converged bool) {
	maxMonths := p.MaxMonths
	if maxMonths <= 0 {
		maxMonths = MaxPayoffMonths
	}

	totalInterest = decimal.Zero
	for balance.IsPositive() && months < maxMonths {
		interest := balance.Mul(monthlyRate)
		principal := payment.Sub(interest)
		if principal.LessThanOrEqual(decimal.Zero) {
			return 0, totalInterest, false
		}
		balance = balance.Sub(principal)
		totalInterest = totalInterest.Add(interest)
		months++
	}
	return months, totalInterest, true
}

// weightedAverageRate is the balance-weighted average annual rate across
// the portfolio, in percent units. An empty or zero-balance portfolio
// averages to zero.
func weightedAverageRate(loans []domain.LoanFacility) decimal.Decimal {
	totalBalance := decimal.Zero
	weighted := decimal.Zero
	for _, loan := range loans {
		totalBalance = totalBalance.Add(loan.Balance)
		weighted = weighted.Add(loan.AnnualRate.Mul(loan.Balance))
	}
	if !totalBalance.IsPositive() {
		return decimal.Zero
	}
	return weighted.Div(totalBalance)
}
