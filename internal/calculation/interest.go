package calculation

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// QuarterInterest is the Section 234C deferment charge for one quarter.
type QuarterInterest struct {
	Quarter   int
	DueDate   time.Time
	Shortfall decimal.Decimal
	Months    int
	Interest  decimal.Decimal
}

// Annual234B is the Section 234B year-end shortfall charge.
type Annual234B struct {
	AssessedTax     decimal.Decimal
	AdvanceTaxPaid  decimal.Decimal
	Shortfall       decimal.Decimal
	Months          int
	Interest        decimal.Decimal
	ComputedThrough time.Time
}

// InterestCalculator applies the configured monthly rate and deferment
// durations. Interest is simple, never compounded.
type InterestCalculator struct {
	Rules InterestRules
}

// NewInterestCalculator creates an interest calculator for the given rules.
func NewInterestCalculator(rules InterestRules) *InterestCalculator {
	return &InterestCalculator{Rules: rules}
}

// Deferment234C charges each quarter's shortfall at the monthly rate for its
// fixed statutory duration (3 months for Q1–Q3, 1 for Q4 under the default
// rules). A zero shortfall accrues nothing. Returns the per-quarter lines
// and their total.
func (ic *InterestCalculator) Deferment234C(entries []InstallmentStatus) ([]QuarterInterest, decimal.Decimal) {
	lines := make([]QuarterInterest, 0, len(entries))
	total := decimal.Zero
	for i, e := range entries {
		months := 0
		if i < len(ic.Rules.DefermentMonths) {
			months = ic.Rules.DefermentMonths[i]
		}
		interest := decimal.Zero
		if e.Shortfall.IsPositive() && months > 0 {
			interest = e.Shortfall.Mul(ic.Rules.MonthlyRate).Mul(decimal.NewFromInt(int64(months))).Round(2)
		}
		lines = append(lines, QuarterInterest{
			Quarter:   e.Quarter,
			DueDate:   e.DueDate,
			Shortfall: e.Shortfall,
			Months:    months,
			Interest:  interest,
		})
		total = total.Add(interest)
	}
	return lines, total
}

// Shortfall234B charges the year-end gap between assessed tax and advance
// tax actually paid within the fiscal year. Months run from the start of the
// assessment year to asOf, or to the payment that brought cumulative
// payments up to the assessed tax, whichever is earlier; any part of a month
// counts as a whole month, and nothing accrues before the assessment year
// opens or when the shortfall is zero.
func (ic *InterestCalculator) Shortfall234B(assessedTax decimal.Decimal, payments []LedgerPayment, fy FinancialYear, asOf time.Time) Annual234B {
	asOf = Date(asOf.Year(), asOf.Month(), asOf.Day())
	fyEnd := fy.End()

	advancePaid := decimal.Zero
	var later []LedgerPayment
	for _, p := range payments {
		d := Date(p.Date.Year(), p.Date.Month(), p.Date.Day())
		if d.After(fyEnd) {
			later = append(later, LedgerPayment{Date: d, Amount: p.Amount})
		} else {
			advancePaid = advancePaid.Add(p.Amount)
		}
	}

	shortfall := assessedTax.Sub(advancePaid)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}
	if shortfall.IsZero() {
		return Annual234B{
			AssessedTax:     assessedTax,
			AdvanceTaxPaid:  advancePaid,
			Shortfall:       decimal.Zero,
			Interest:        decimal.Zero,
			ComputedThrough: asOf,
		}
	}

	// Settling the balance after the year stops the clock at that payment.
	through := asOf
	sort.Slice(later, func(i, j int) bool { return later[i].Date.Before(later[j].Date) })
	running := advancePaid
	for _, p := range later {
		running = running.Add(p.Amount)
		if running.GreaterThanOrEqual(assessedTax) {
			if p.Date.Before(through) {
				through = p.Date
			}
			break
		}
	}

	months := MonthsThrough(fy.AssessmentYearStart(), through)
	interest := decimal.Zero
	if months > 0 {
		interest = shortfall.Mul(ic.Rules.MonthlyRate).Mul(decimal.NewFromInt(int64(months))).Round(2)
	}

	return Annual234B{
		AssessedTax:     assessedTax,
		AdvanceTaxPaid:  advancePaid,
		Shortfall:       shortfall,
		Months:          months,
		Interest:        interest,
		ComputedThrough: through,
	}
}
