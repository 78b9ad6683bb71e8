package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw records as fetched by callers from their account/loan store. The
// engines never touch storage; these are the plain shapes the assembler
// turns into engine inputs.

// AccountRecord is one account row. AccountType distinguishes liquid
// holdings ("bank", "deposit") from everything else.
type AccountRecord struct {
	AccountType string          `json:"accountType" yaml:"account_type"`
	Balance     decimal.Decimal `json:"balance" yaml:"balance"`
}

// LoanRecord is one loan row. MaturityDate may be nil when the source did
// not report one.
type LoanRecord struct {
	LoanType       string          `json:"loanType" yaml:"loan_type"`
	Balance        decimal.Decimal `json:"balance" yaml:"balance"`
	AnnualRate     decimal.Decimal `json:"interestRate" yaml:"interest_rate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment" yaml:"monthly_payment"`
	MaturityDate   *time.Time      `json:"maturityDate,omitempty" yaml:"maturity_date"`
}

// ProfileRecord is the user-level income/expense row.
type ProfileRecord struct {
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome" yaml:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses" yaml:"monthly_expenses"`
	Age             int             `json:"age" yaml:"age"`
}
