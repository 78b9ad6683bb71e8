package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/krfin/finsim/internal/domain"
	"github.com/krfin/finsim/internal/simulation"
)

// AnalysisRequest is the top-level input file shape. Every section is
// optional; commands pick the one they need and fail if it is absent.
type AnalysisRequest struct {
	Simulation    *domain.SimulationConfig        `yaml:"simulation"`
	Deterministic *simulation.DeterministicConfig `yaml:"deterministic"`
	Debt          *DebtSection                    `yaml:"debt"`
	Health        *HealthSection                  `yaml:"health"`
}

// DebtSection carries the risk-detector input plus an optional what-if
// scenario. Raw profile/loan records may be given instead of the
// aggregated input; the assembler then builds the input from them.
type DebtSection struct {
	Input       domain.DSRInput             `yaml:",inline"`
	Profile     *domain.ProfileRecord       `yaml:"profile"`
	LoanRecords []domain.LoanRecord         `yaml:"loan_records"`
	Improvement *domain.ImprovementScenario `yaml:"improvement"`
}

// HealthSection is the health-scorer input. Callers may provide the
// aggregated figures directly or raw records for the assembler; records
// win when both are present.
type HealthSection struct {
	Input    *domain.FinancialHealthInput `yaml:"input"`
	Profile  *domain.ProfileRecord        `yaml:"profile"`
	Accounts []domain.AccountRecord       `yaml:"accounts"`
	Loans    []domain.LoanRecord          `yaml:"loans"`
}

// InputParser handles parsing of analysis input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an analysis request from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*AnalysisRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var request AnalysisRequest
	if err := yaml.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRequest(&request); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &request, nil
}

// ValidateRequest validates whichever sections are present. The
// simulation section reuses the domain-level validation the engine runs;
// validating here surfaces errors before any goroutine spins up.
func (ip *InputParser) ValidateRequest(request *AnalysisRequest) error {
	if request.Simulation == nil && request.Deterministic == nil && request.Debt == nil && request.Health == nil {
		return fmt.Errorf("input file has no simulation, deterministic, debt, or health section")
	}

	if request.Simulation != nil {
		if err := request.Simulation.Validate(); err != nil {
			return fmt.Errorf("simulation section: %w", err)
		}
	}
	if request.Deterministic != nil {
		if err := ip.validateDeterministic(request.Deterministic); err != nil {
			return fmt.Errorf("deterministic section: %w", err)
		}
	}
	if request.Debt != nil {
		if err := ip.validateDebt(&request.Debt.Input); err != nil {
			return fmt.Errorf("debt section: %w", err)
		}
	}
	if request.Health != nil {
		if err := ip.validateHealth(request.Health); err != nil {
			return fmt.Errorf("health section: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) validateDeterministic(cfg *simulation.DeterministicConfig) error {
	if cfg.Years <= 0 {
		return fmt.Errorf("years must be positive, got %d", cfg.Years)
	}
	if cfg.MonthlyIncome.IsNegative() {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if cfg.MonthlyExpenses.IsNegative() {
		return fmt.Errorf("monthly expenses cannot be negative")
	}
	for i, ev := range cfg.Events {
		if ev.YearOffset < 0 || ev.YearOffset > cfg.Years {
			return fmt.Errorf("event %d (%s): year offset %d outside horizon", i, ev.Title, ev.YearOffset)
		}
	}
	return nil
}

func (ip *InputParser) validateDebt(input *domain.DSRInput) error {
	if input.MonthlyIncome.IsNegative() {
		return fmt.Errorf("monthly income cannot be negative")
	}
	for i, loan := range input.Loans {
		if loan.Balance.IsNegative() {
			return fmt.Errorf("loan %d (%s): balance cannot be negative", i, loan.Type)
		}
		if loan.AnnualRate.IsNegative() {
			return fmt.Errorf("loan %d (%s): interest rate cannot be negative", i, loan.Type)
		}
		if loan.MonthlyPayment.IsNegative() {
			return fmt.Errorf("loan %d (%s): monthly payment cannot be negative", i, loan.Type)
		}
	}
	return nil
}

func (ip *InputParser) validateHealth(section *HealthSection) error {
	if section.Input == nil && section.Profile == nil {
		return fmt.Errorf("either an aggregated input or a profile with records is required")
	}
	if section.Input != nil {
		if section.Input.TotalAssets.IsNegative() {
			return fmt.Errorf("total assets cannot be negative")
		}
		if section.Input.TotalLiabilities.IsNegative() {
			return fmt.Errorf("total liabilities cannot be negative")
		}
		if section.Input.MonthlyIncome.IsNegative() {
			return fmt.Errorf("monthly income cannot be negative")
		}
	}
	for i, acct := range section.Accounts {
		if acct.Balance.IsNegative() {
			return fmt.Errorf("account %d (%s): balance cannot be negative", i, acct.AccountType)
		}
	}
	return nil
}
