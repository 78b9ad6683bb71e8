// Package assemble turns raw account, loan, and profile records into the
// structured inputs the risk and health engines consume. The heuristics
// here (liquid account types, the short/long-term debt split, the
// emergency-fund estimate) are data-availability compromises, not
// engine semantics.
package assemble

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/krfin/finsim/internal/domain"
)

// DefaultRemainingMonths stands in when a loan record carries no maturity
// date.
const DefaultRemainingMonths = 120

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)

	// Liabilities without term data are split 30% short-term, 70%
	// long-term.
	shortTermShare = decimal.NewFromFloat(0.3)
	longTermShare  = decimal.NewFromFloat(0.7)

	// Half of liquid holdings are assumed reachable as an emergency fund.
	emergencyShare = decimal.NewFromFloat(0.5)
)

// liquidAccountTypes lists the account types counted as liquid assets.
var liquidAccountTypes = map[string]bool{
	"bank":    true,
	"deposit": true,
}

// BuildDSRInput derives a risk-detector input from raw records. Monthly
// interest is estimated from each loan's balance and rate; the principal
// portion is whatever remains of the reported payment.
func BuildDSRInput(profile domain.ProfileRecord, loans []domain.LoanRecord, now time.Time) *domain.DSRInput {
	facilities := make([]domain.LoanFacility, 0, len(loans))
	totalPayment := decimal.Zero
	totalInterest := decimal.Zero

	for _, loan := range loans {
		monthlyInterest := loan.Balance.Mul(loan.AnnualRate).Div(hundred).Div(twelve)
		totalPayment = totalPayment.Add(loan.MonthlyPayment)
		totalInterest = totalInterest.Add(monthlyInterest)

		facilities = append(facilities, domain.LoanFacility{
			Type:            loan.LoanType,
			Balance:         loan.Balance,
			AnnualRate:      loan.AnnualRate,
			MonthlyPayment:  loan.MonthlyPayment,
			RemainingMonths: remainingMonths(loan.MaturityDate, now),
		})
	}

	principal := totalPayment.Sub(totalInterest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}

	return &domain.DSRInput{
		MonthlyIncome:      profile.MonthlyIncome,
		AnnualIncome:       profile.MonthlyIncome.Mul(twelve),
		MonthlyDebtPayment: totalPayment,
		MonthlyPrincipal:   principal,
		MonthlyInterest:    totalInterest,
		Loans:              facilities,
	}
}

// BuildHealthInput derives a health-scorer input from raw records. The
// emergency-fund months are estimated from liquid balances; they are a
// floor, not a statement about the user's actual reserves.
func BuildHealthInput(profile domain.ProfileRecord, accounts []domain.AccountRecord, loans []domain.LoanRecord) *domain.FinancialHealthInput {
	totalAssets := decimal.Zero
	liquidAssets := decimal.Zero
	for _, acct := range accounts {
		totalAssets = totalAssets.Add(acct.Balance)
		if liquidAccountTypes[acct.AccountType] {
			liquidAssets = liquidAssets.Add(acct.Balance)
		}
	}

	totalLiabilities := decimal.Zero
	monthlyDebtPayment := decimal.Zero
	for _, loan := range loans {
		totalLiabilities = totalLiabilities.Add(loan.Balance)
		monthlyDebtPayment = monthlyDebtPayment.Add(loan.MonthlyPayment)
	}

	emergencyAmount := liquidAssets.Mul(emergencyShare)
	emergencyMonths := decimal.Zero
	if profile.MonthlyExpenses.IsPositive() {
		emergencyMonths = emergencyAmount.Div(profile.MonthlyExpenses)
	}

	return &domain.FinancialHealthInput{
		TotalAssets:      totalAssets,
		LiquidAssets:     liquidAssets,
		InvestmentAssets: totalAssets.Sub(liquidAssets),

		TotalLiabilities: totalLiabilities,
		ShortTermDebt:    totalLiabilities.Mul(shortTermShare),
		LongTermDebt:     totalLiabilities.Mul(longTermShare),

		MonthlyIncome:      profile.MonthlyIncome,
		MonthlyExpenses:    profile.MonthlyExpenses,
		MonthlyDebtPayment: monthlyDebtPayment,

		Age:                   profile.Age,
		HasEmergencyFund:      emergencyMonths.GreaterThanOrEqual(decimal.NewFromInt(3)),
		MonthsOfEmergencyFund: emergencyMonths,
	}
}

// remainingMonths counts 30-day months to maturity, rounded up, never
// negative. Records without a maturity date get the default term.
func remainingMonths(maturity *time.Time, now time.Time) int {
	if maturity == nil {
		return DefaultRemainingMonths
	}
	days := maturity.Sub(now).Hours() / 24
	months := int(math.Ceil(days / 30))
	if months < 0 {
		return 0
	}
	return months
}
