package calculation

import "github.com/shopspring/decimal"

// ProfitInputs resolves estimated annual book profit from YTD actuals plus
// the editable projections for the remainder of the year.
type ProfitInputs struct {
	YtdRevenue                  decimal.Decimal
	YtdExpenses                 decimal.Decimal
	ProjectedAdditionalRevenue  decimal.Decimal
	ProjectedAdditionalExpenses decimal.Decimal
	ProjectedDepreciation       decimal.Decimal
	ProjectedOtherIncome        decimal.Decimal
}

// BookProfit is revenue plus other income less expenses and book
// depreciation, all on the projected full-year basis.
func (p ProfitInputs) BookProfit() decimal.Decimal {
	return p.YtdRevenue.
		Add(p.ProjectedAdditionalRevenue).
		Add(p.ProjectedOtherIncome).
		Sub(p.YtdExpenses).
		Sub(p.ProjectedAdditionalExpenses).
		Sub(p.ProjectedDepreciation)
}

// ReconciliationInputs are the statutory adjustment lines entered against
// book profit: additions disallowed for tax purposes and deductions the tax
// computation allows instead.
type ReconciliationInputs struct {
	DepreciationAddback           decimal.Decimal
	DisallowedCashPayments        decimal.Decimal
	DisallowedGratuityProvision   decimal.Decimal
	DisallowedUnpaidStatutoryDues decimal.Decimal
	OtherDisallowances            decimal.Decimal

	TaxDepreciation decimal.Decimal
	Deduction80C    decimal.Decimal
	Deduction80D    decimal.Decimal
	OtherDeductions decimal.Decimal
}

// ReconciliationLine is one reported adjustment, kept individually for the
// audit view.
type ReconciliationLine struct {
	Code   string
	Label  string
	Amount decimal.Decimal
}

// ReconciliationStatement is the full book-profit-to-taxable-income bridge.
type ReconciliationStatement struct {
	BookProfit      decimal.Decimal
	Additions       []ReconciliationLine
	Deductions      []ReconciliationLine
	TotalAdditions  decimal.Decimal
	TotalDeductions decimal.Decimal
	TaxableIncome   decimal.Decimal
}

// Reconcile computes taxableIncome = bookProfit + Σadditions − Σdeductions,
// clamped at zero. Pure: identical inputs always yield an identical
// statement.
func Reconcile(bookProfit decimal.Decimal, in ReconciliationInputs) ReconciliationStatement {
	additions := []ReconciliationLine{
		{Code: "depreciation_addback", Label: "Depreciation as per books", Amount: in.DepreciationAddback},
		{Code: "disallowed_cash_payments", Label: "Cash payments disallowed u/s 40A(3)", Amount: in.DisallowedCashPayments},
		{Code: "disallowed_gratuity_provision", Label: "Gratuity provision disallowed u/s 40A(7)", Amount: in.DisallowedGratuityProvision},
		{Code: "disallowed_unpaid_statutory_dues", Label: "Unpaid statutory dues u/s 43B", Amount: in.DisallowedUnpaidStatutoryDues},
		{Code: "other_disallowances", Label: "Other disallowances", Amount: in.OtherDisallowances},
	}
	deductions := []ReconciliationLine{
		{Code: "tax_depreciation", Label: "Depreciation as per tax u/s 32", Amount: in.TaxDepreciation},
		{Code: "deduction_80c", Label: "Deduction u/s 80C", Amount: in.Deduction80C},
		{Code: "deduction_80d", Label: "Deduction u/s 80D", Amount: in.Deduction80D},
		{Code: "other_deductions", Label: "Other deductions", Amount: in.OtherDeductions},
	}

	totalAdditions := decimal.Zero
	for _, line := range additions {
		totalAdditions = totalAdditions.Add(line.Amount)
	}
	totalDeductions := decimal.Zero
	for _, line := range deductions {
		totalDeductions = totalDeductions.Add(line.Amount)
	}

	taxable := bookProfit.Add(totalAdditions).Sub(totalDeductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	return ReconciliationStatement{
		BookProfit:      bookProfit,
		Additions:       additions,
		Deductions:      deductions,
		TotalAdditions:  totalAdditions,
		TotalDeductions: totalDeductions,
		TaxableIncome:   taxable,
	}
}
