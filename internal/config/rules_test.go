package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxengine/internal/calculation"
)

func writeTempRules(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test_rules_*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadRulesEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)

	normal, ok := rules.RatesFor(calculation.RegimeNormal)
	require.True(t, ok)
	assert.True(t, normal.BaseRate.Equal(decimal.NewFromFloat(0.25)), "got %s", normal.BaseRate)
	assert.Len(t, rules.Installments, 4)
	assert.True(t, rules.Interest.MonthlyRate.Equal(decimal.NewFromFloat(0.01)), "got %s", rules.Interest.MonthlyRate)
}

func TestLoadRulesRegimeOverrideKeepsOtherSections(t *testing.T) {
	path := writeTempRules(t, "regimes:\n"+
		"  NORMAL:\n"+
		"    base_rate: \"0.30\"\n"+
		"    surcharge_rate: \"0.07\"\n"+
		"    cess_rate: \"0.04\"\n")

	rules, err := LoadRules(path)
	require.NoError(t, err)

	normal, ok := rules.RatesFor(calculation.RegimeNormal)
	require.True(t, ok)
	assert.True(t, normal.BaseRate.Equal(decimal.NewFromFloat(0.30)), "got %s", normal.BaseRate)
	assert.True(t, normal.SurchargeRate.Equal(decimal.NewFromFloat(0.07)), "got %s", normal.SurchargeRate)

	// Untouched regimes and sections keep their defaults.
	baa, ok := rules.RatesFor(calculation.Regime115BAA)
	require.True(t, ok)
	assert.True(t, baa.BaseRate.Equal(decimal.NewFromFloat(0.22)), "got %s", baa.BaseRate)
	assert.Len(t, rules.Installments, 4)
	assert.Equal(t, []int{3, 3, 3, 1}, rules.Interest.DefermentMonths)
}

func TestLoadRulesAddsNewRegime(t *testing.T) {
	path := writeTempRules(t, "regimes:\n"+
		"  LLP:\n"+
		"    base_rate: \"0.30\"\n"+
		"    surcharge_rate: \"0.12\"\n"+
		"    cess_rate: \"0.04\"\n")

	rules, err := LoadRules(path)
	require.NoError(t, err)

	llp, ok := rules.RatesFor("LLP")
	require.True(t, ok)
	assert.True(t, llp.SurchargeRate.Equal(decimal.NewFromFloat(0.12)), "got %s", llp.SurchargeRate)
	assert.Contains(t, rules.RegimeCodes(), "LLP")
	assert.Contains(t, rules.RegimeCodes(), calculation.RegimeNormal)
}

func TestLoadRulesInstallmentOverride(t *testing.T) {
	path := writeTempRules(t, "installments:\n"+
		"  - {quarter: 1, due_month: 6, due_day: 15, cumulative_pct: \"25\"}\n"+
		"  - {quarter: 2, due_month: 9, due_day: 15, cumulative_pct: \"50\"}\n"+
		"  - {quarter: 3, due_month: 12, due_day: 15, cumulative_pct: \"75\"}\n"+
		"  - {quarter: 4, due_month: 3, due_day: 15, cumulative_pct: \"100\"}\n"+
		"interest:\n"+
		"  monthly_rate: \"0.01\"\n"+
		"  deferment_months: [3, 3, 3, 1]\n")

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules.Installments, 4)
	assert.True(t, rules.Installments[0].CumulativePct.Equal(decimal.NewFromInt(25)), "got %s", rules.Installments[0].CumulativePct)
}

func TestLoadRulesRejectsLadderNotEndingAt100(t *testing.T) {
	path := writeTempRules(t, "installments:\n"+
		"  - {quarter: 1, due_month: 6, due_day: 15, cumulative_pct: \"15\"}\n"+
		"  - {quarter: 2, due_month: 9, due_day: 15, cumulative_pct: \"90\"}\n"+
		"interest:\n"+
		"  monthly_rate: \"0.01\"\n"+
		"  deferment_months: [3, 1]\n")

	_, err := LoadRules(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules file")
}

func TestLoadRulesRejectsBadDecimal(t *testing.T) {
	path := writeTempRules(t, "regimes:\n"+
		"  NORMAL:\n"+
		"    base_rate: \"twenty-five\"\n"+
		"    surcharge_rate: \"0\"\n"+
		"    cess_rate: \"0.04\"\n")

	_, err := LoadRules(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base_rate")
}

func TestLoadRulesFileNotFound(t *testing.T) {
	_, err := LoadRules("nonexistent_rules.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read rules file")
}
