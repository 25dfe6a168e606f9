package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultRulesAreValid(t *testing.T) {
	rules := DefaultRules()
	assert.NoError(t, rules.Validate())
	assert.Equal(t, []string{Regime115BAA, Regime115BAB, RegimeNormal}, rules.RegimeCodes())
}

func TestEffectiveRates(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		regime string
		want   decimal.Decimal
	}{
		{regime: RegimeNormal, want: decimal.NewFromFloat(0.26)},      // 0.25 * 1.00 * 1.04
		{regime: Regime115BAA, want: decimal.NewFromFloat(0.25168)},   // 0.22 * 1.10 * 1.04
		{regime: Regime115BAB, want: decimal.NewFromFloat(0.1716)},    // 0.15 * 1.10 * 1.04
	}

	for _, tt := range tests {
		t.Run(tt.regime, func(t *testing.T) {
			rates, ok := rules.RatesFor(tt.regime)
			assert.True(t, ok)
			got := rates.EffectiveRate()
			assert.True(t, got.Equal(tt.want), "expected %s, got %s", tt.want, got)
		})
	}

	_, ok := rules.RatesFor("115XYZ")
	assert.False(t, ok)
}

func TestRulesValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{
			name:   "no regimes",
			mutate: func(r *Rules) { r.Regimes = nil },
		},
		{
			name: "negative rate",
			mutate: func(r *Rules) {
				r.Regimes[RegimeNormal] = RegimeRates{BaseRate: decimal.NewFromFloat(-0.25)}
			},
		},
		{
			name: "rate above one",
			mutate: func(r *Rules) {
				r.Regimes[RegimeNormal] = RegimeRates{BaseRate: decimal.NewFromInt(25)}
			},
		},
		{
			name:   "no installments",
			mutate: func(r *Rules) { r.Installments = nil },
		},
		{
			name: "quarters out of order",
			mutate: func(r *Rules) {
				r.Installments[1].Quarter = 3
			},
		},
		{
			name: "cumulative ladder not increasing",
			mutate: func(r *Rules) {
				r.Installments[2].CumulativePct = decimal.NewFromInt(45)
			},
		},
		{
			name: "ladder does not end at 100",
			mutate: func(r *Rules) {
				r.Installments[3].CumulativePct = decimal.NewFromInt(95)
			},
		},
		{
			name: "invalid due day",
			mutate: func(r *Rules) {
				r.Installments[0].DueDay = 0
			},
		},
		{
			name: "zero monthly rate",
			mutate: func(r *Rules) {
				r.Interest.MonthlyRate = decimal.Zero
			},
		},
		{
			name: "deferment months mismatch",
			mutate: func(r *Rules) {
				r.Interest.DefermentMonths = []int{3, 3, 3}
			},
		},
		{
			name: "negative deferment months",
			mutate: func(r *Rules) {
				r.Interest.DefermentMonths = []int{3, 3, 3, -1}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			assert.Error(t, rules.Validate())
		})
	}
}

func TestInstallmentDueDatesStraddleTheNewYear(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	plan := sc.Plan(decimal.NewFromInt(100000), FinancialYear{StartYear: 2025})

	assert.Equal(t, Date(2025, time.June, 15), plan[0].DueDate)
	assert.Equal(t, Date(2025, time.September, 15), plan[1].DueDate)
	assert.Equal(t, Date(2025, time.December, 15), plan[2].DueDate)
	assert.Equal(t, Date(2026, time.March, 15), plan[3].DueDate)
}
