package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Tax regime codes. Rates live in the Rules table, not in code, so adding a
// regime is a configuration change.
const (
	RegimeNormal = "NORMAL"
	Regime115BAA = "115BAA"
	Regime115BAB = "115BAB"
)

// RegimeRates holds the three statutory rate components of a regime.
type RegimeRates struct {
	BaseRate      decimal.Decimal
	SurchargeRate decimal.Decimal
	CessRate      decimal.Decimal
}

// EffectiveRate is base × (1 + surcharge) × (1 + cess), the headline figure
// quoted for a regime (115BAA ≈ 25.17%, 115BAB ≈ 17.16%).
func (r RegimeRates) EffectiveRate() decimal.Decimal {
	one := decimal.NewFromInt(1)
	return r.BaseRate.Mul(one.Add(r.SurchargeRate)).Mul(one.Add(r.CessRate))
}

// InstallmentRule positions one advance-tax installment: its due day inside
// the fiscal year and the cumulative share of net tax payable due by then.
type InstallmentRule struct {
	Quarter       int
	DueMonth      time.Month
	DueDay        int
	CumulativePct decimal.Decimal
}

// InterestRules parameterizes Sections 234B/234C: the simple monthly rate
// and the fixed per-quarter deferment durations.
type InterestRules struct {
	MonthlyRate     decimal.Decimal
	DefermentMonths []int
}

// Rules is the full statutory table the engine computes from. The compiled
// defaults cover companies under the modeled sections; configs/regimes.yaml
// may replace the table wholesale for other assessee classes.
type Rules struct {
	Regimes      map[string]RegimeRates
	Installments []InstallmentRule
	Interest     InterestRules
}

// DefaultRules returns the compiled statutory table: NORMAL 25/0/4,
// 115BAA 22/10/4, 115BAB 15/10/4, installments 15/45/75/100 due 15 Jun,
// 15 Sep, 15 Dec, 15 Mar, and 1% monthly interest with deferment months
// 3,3,3,1.
func DefaultRules() Rules {
	return Rules{
		Regimes: map[string]RegimeRates{
			RegimeNormal: {
				BaseRate:      decimal.NewFromFloat(0.25),
				SurchargeRate: decimal.Zero,
				CessRate:      decimal.NewFromFloat(0.04),
			},
			Regime115BAA: {
				BaseRate:      decimal.NewFromFloat(0.22),
				SurchargeRate: decimal.NewFromFloat(0.10),
				CessRate:      decimal.NewFromFloat(0.04),
			},
			Regime115BAB: {
				BaseRate:      decimal.NewFromFloat(0.15),
				SurchargeRate: decimal.NewFromFloat(0.10),
				CessRate:      decimal.NewFromFloat(0.04),
			},
		},
		Installments: []InstallmentRule{
			{Quarter: 1, DueMonth: time.June, DueDay: 15, CumulativePct: decimal.NewFromInt(15)},
			{Quarter: 2, DueMonth: time.September, DueDay: 15, CumulativePct: decimal.NewFromInt(45)},
			{Quarter: 3, DueMonth: time.December, DueDay: 15, CumulativePct: decimal.NewFromInt(75)},
			{Quarter: 4, DueMonth: time.March, DueDay: 15, CumulativePct: decimal.NewFromInt(100)},
		},
		Interest: InterestRules{
			MonthlyRate:     decimal.NewFromFloat(0.01),
			DefermentMonths: []int{3, 3, 3, 1},
		},
	}
}

// RatesFor looks up a regime's rates.
func (r Rules) RatesFor(regime string) (RegimeRates, bool) {
	rates, ok := r.Regimes[regime]
	return rates, ok
}

// RegimeCodes returns the configured regime codes sorted for stable output.
func (r Rules) RegimeCodes() []string {
	codes := make([]string, 0, len(r.Regimes))
	for code := range r.Regimes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Validate rejects tables the pipeline cannot compute from: missing regimes,
// negative rates, installment quarters out of order, a cumulative ladder not
// ending at 100, or deferment months not matching the installment count.
func (r Rules) Validate() error {
	if len(r.Regimes) == 0 {
		return fmt.Errorf("rules: no regimes configured")
	}
	for code, rates := range r.Regimes {
		if rates.BaseRate.IsNegative() || rates.SurchargeRate.IsNegative() || rates.CessRate.IsNegative() {
			return fmt.Errorf("rules: regime %s has a negative rate", code)
		}
		if rates.BaseRate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("rules: regime %s base rate %s exceeds 1, rates are fractions", code, rates.BaseRate)
		}
	}
	if len(r.Installments) == 0 {
		return fmt.Errorf("rules: no installments configured")
	}
	prev := decimal.Zero
	for i, inst := range r.Installments {
		if inst.Quarter != i+1 {
			return fmt.Errorf("rules: installment %d has quarter %d, expected %d", i, inst.Quarter, i+1)
		}
		if inst.DueDay < 1 || inst.DueDay > 31 || inst.DueMonth < time.January || inst.DueMonth > time.December {
			return fmt.Errorf("rules: installment %d has an invalid due day", inst.Quarter)
		}
		if !inst.CumulativePct.GreaterThan(prev) {
			return fmt.Errorf("rules: installment %d cumulative %s does not increase past %s", inst.Quarter, inst.CumulativePct, prev)
		}
		prev = inst.CumulativePct
	}
	if !prev.Equal(decimal.NewFromInt(100)) {
		return fmt.Errorf("rules: final installment cumulative is %s, must be 100", prev)
	}
	if !r.Interest.MonthlyRate.IsPositive() {
		return fmt.Errorf("rules: interest monthly rate must be positive")
	}
	if len(r.Interest.DefermentMonths) != len(r.Installments) {
		return fmt.Errorf("rules: %d deferment month entries for %d installments", len(r.Interest.DefermentMonths), len(r.Installments))
	}
	for i, m := range r.Interest.DefermentMonths {
		if m < 0 {
			return fmt.Errorf("rules: deferment months for quarter %d is negative", i+1)
		}
	}
	return nil
}
