package config

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxengine/internal/calculation"
)

func writeTempInput(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test_input_*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadAssessmentInputSuccess(t *testing.T) {
	path := writeTempInput(t, "financial_year: \"2025-26\"\n"+
		"tax_regime: \"115BAA\"\n"+
		"profit:\n"+
		"  ytd_revenue: \"4500000\"\n"+
		"  ytd_expenses: \"2600000\"\n"+
		"  projected_additional_revenue: \"1500000\"\n"+
		"  projected_additional_expenses: \"900000\"\n"+
		"  projected_depreciation: \"250000\"\n"+
		"  projected_other_income: \"50000\"\n"+
		"additions:\n"+
		"  depreciation_addback: \"250000\"\n"+
		"  disallowed_cash_payments: \"15000\"\n"+
		"deductions:\n"+
		"  tax_depreciation: \"310000\"\n"+
		"credits:\n"+
		"  tds_receivable: \"20000\"\n"+
		"payments:\n"+
		"  - {date: \"2025-06-10\", amount: \"15000\"}\n"+
		"  - {date: \"2025-09-14\", amount: \"30000\"}\n")

	input, err := LoadAssessmentInput(path)
	require.NoError(t, err)

	assert.Equal(t, "2025-26", input.FinancialYear)
	assert.Equal(t, calculation.Regime115BAA, input.TaxRegime)
	assert.True(t, input.Profit.YtdRevenue.Equal(decimal.NewFromInt(4500000)), "got %s", input.Profit.YtdRevenue)
	assert.True(t, input.Reconciliation.DepreciationAddback.Equal(decimal.NewFromInt(250000)), "got %s", input.Reconciliation.DepreciationAddback)
	assert.True(t, input.Reconciliation.TaxDepreciation.Equal(decimal.NewFromInt(310000)), "got %s", input.Reconciliation.TaxDepreciation)
	assert.True(t, input.Credits.TdsReceivable.Equal(decimal.NewFromInt(20000)), "got %s", input.Credits.TdsReceivable)

	require.Len(t, input.Payments, 2)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), input.Payments[0].Date)
	assert.True(t, input.Payments[1].Amount.Equal(decimal.NewFromInt(30000)), "got %s", input.Payments[1].Amount)
}

func TestLoadAssessmentInputOmittedFieldsDefaultToZero(t *testing.T) {
	path := writeTempInput(t, "financial_year: \"2025-26\"\n"+
		"profit:\n"+
		"  ytd_revenue: \"1000000\"\n")

	input, err := LoadAssessmentInput(path)
	require.NoError(t, err)

	assert.Equal(t, calculation.RegimeNormal, input.TaxRegime)
	assert.True(t, input.Profit.YtdExpenses.IsZero())
	assert.True(t, input.Credits.TcsCredit.IsZero())
	assert.Empty(t, input.Payments)
}

func TestLoadAssessmentInputMissingYear(t *testing.T) {
	path := writeTempInput(t, "profit:\n  ytd_revenue: \"1000000\"\n")

	_, err := LoadAssessmentInput(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "financial_year is required")
}

func TestLoadAssessmentInputBadYearSuffix(t *testing.T) {
	path := writeTempInput(t, "financial_year: \"2025-27\"\n")

	_, err := LoadAssessmentInput(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid financial year")
}

func TestLoadAssessmentInputNonPositivePayment(t *testing.T) {
	path := writeTempInput(t, "financial_year: \"2025-26\"\n"+
		"payments:\n"+
		"  - {date: \"2025-06-10\", amount: \"0\"}\n")

	_, err := LoadAssessmentInput(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be positive")
}

func TestLoadAssessmentInputBadAmount(t *testing.T) {
	path := writeTempInput(t, "financial_year: \"2025-26\"\n"+
		"profit:\n"+
		"  ytd_revenue: \"1,000,000\"\n")

	_, err := LoadAssessmentInput(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ytd_revenue")
}

func TestLoadAssessmentInputFileNotFound(t *testing.T) {
	_, err := LoadAssessmentInput("nonexistent_input.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
