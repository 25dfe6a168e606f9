package calculation

import "github.com/shopspring/decimal"

// TaxCredits are the prepaid amounts offset against total liability before
// the installment plan is derived.
type TaxCredits struct {
	TdsReceivable decimal.Decimal
	TcsCredit     decimal.Decimal
}

// LiabilityResult is the taxable-income-to-net-payable derivation.
type LiabilityResult struct {
	BaseTax           decimal.Decimal
	Surcharge         decimal.Decimal
	Cess              decimal.Decimal
	TotalTaxLiability decimal.Decimal
	NetTaxPayable     decimal.Decimal
}

// LiabilityCalculator applies one regime's rates.
type LiabilityCalculator struct {
	Rates RegimeRates
}

// NewLiabilityCalculator creates a liability calculator for the given rates.
func NewLiabilityCalculator(rates RegimeRates) *LiabilityCalculator {
	return &LiabilityCalculator{Rates: rates}
}

// Calculate derives base tax, surcharge on base tax, cess on the sum of
// both, their total, and net payable after TDS/TCS credits clamped at zero.
// Each named figure is rounded to 2 decimal places.
func (lc *LiabilityCalculator) Calculate(taxableIncome decimal.Decimal, credits TaxCredits) LiabilityResult {
	baseTax := taxableIncome.Mul(lc.Rates.BaseRate).Round(2)
	surcharge := baseTax.Mul(lc.Rates.SurchargeRate).Round(2)
	cess := baseTax.Add(surcharge).Mul(lc.Rates.CessRate).Round(2)
	total := baseTax.Add(surcharge).Add(cess)

	net := total.Sub(credits.TdsReceivable).Sub(credits.TcsCredit)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return LiabilityResult{
		BaseTax:           baseTax,
		Surcharge:         surcharge,
		Cess:              cess,
		TotalTaxLiability: total,
		NetTaxPayable:     net,
	}
}
