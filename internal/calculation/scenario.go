package calculation

import "github.com/shopspring/decimal"

// AssessmentInputs bundles everything the pipeline reads for one assessment.
// It is a value type: handing it to a scenario clones it.
type AssessmentInputs struct {
	Profit         ProfitInputs
	Reconciliation ReconciliationInputs
	Credits        TaxCredits
}

// ScenarioDeltas are the signed what-if adjustments applied over a base
// assessment's inputs.
type ScenarioDeltas struct {
	RevenueAdjustment decimal.Decimal
	ExpenseAdjustment decimal.Decimal
	CapexImpact       decimal.Decimal
	PayrollChange     decimal.Decimal
	OtherAdjustments  decimal.Decimal
}

// ApplyTo maps the deltas onto a copy of the inputs: revenue adjustments to
// projected additional revenue, expense, payroll, and other adjustments to
// projected additional expenses, capex impact to projected depreciation.
func (d ScenarioDeltas) ApplyTo(in AssessmentInputs) AssessmentInputs {
	in.Profit.ProjectedAdditionalRevenue = in.Profit.ProjectedAdditionalRevenue.Add(d.RevenueAdjustment)
	in.Profit.ProjectedAdditionalExpenses = in.Profit.ProjectedAdditionalExpenses.
		Add(d.ExpenseAdjustment).
		Add(d.PayrollChange).
		Add(d.OtherAdjustments)
	in.Profit.ProjectedDepreciation = in.Profit.ProjectedDepreciation.Add(d.CapexImpact)
	return in
}

// ScenarioOutcome is the recomputed pipeline result for adjusted inputs.
type ScenarioOutcome struct {
	Statement        ReconciliationStatement
	Liability        LiabilityResult
	VarianceFromBase decimal.Decimal
}

// RunScenario clones the base inputs, applies the deltas, and re-runs
// reconciliation and liability. No schedule or interest is computed here
// since a scenario has no payment history. varianceFromBase compares against
// the base assessment's stored total liability; the base is never touched.
func RunScenario(base AssessmentInputs, deltas ScenarioDeltas, rates RegimeRates, baseTotalLiability decimal.Decimal) ScenarioOutcome {
	adjusted := deltas.ApplyTo(base)
	statement := Reconcile(adjusted.Profit.BookProfit(), adjusted.Reconciliation)
	liability := NewLiabilityCalculator(rates).Calculate(statement.TaxableIncome, adjusted.Credits)
	return ScenarioOutcome{
		Statement:        statement,
		Liability:        liability,
		VarianceFromBase: liability.TotalTaxLiability.Sub(baseTotalLiability),
	}
}
