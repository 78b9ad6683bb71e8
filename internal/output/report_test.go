package output

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/krfin/finsim/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		amount decimal.Decimal
		want   string
	}{
		{decimal.NewFromInt(0), "0 won"},
		{decimal.NewFromInt(999), "999 won"},
		{decimal.NewFromInt(1000), "1,000 won"},
		{decimal.NewFromInt(1_234_567), "1,234,567 won"},
		{decimal.NewFromInt(-9_876_543), "-9,876,543 won"},
		{decimal.NewFromFloat(1234.6), "1,235 won"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(tc.amount))
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "42.5%", FormatPercentage(decimal.NewFromFloat(42.5)))
	assert.Equal(t, "0.0%", FormatPercentage(decimal.Zero))
}

func TestGenerateSimulationReport_UnsupportedFormat(t *testing.T) {
	err := GenerateSimulationReport(&domain.SimulationSummary{}, "xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestGenerateRiskReport_UnsupportedFormat(t *testing.T) {
	err := GenerateRiskReport(&domain.DSRResult{}, "csv")
	assert.Error(t, err)
}
