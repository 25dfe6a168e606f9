package calculation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses of a quarterly installment.
const (
	PaymentPending = "PENDING"
	PaymentPartial = "PARTIAL"
	PaymentPaid    = "PAID"
)

// Installment is one quarter of the payment plan before any payment history
// is applied.
type Installment struct {
	Quarter          int
	DueDate          time.Time
	CumulativePct    decimal.Decimal
	CumulativeTarget decimal.Decimal
	TaxPayable       decimal.Decimal
}

// LedgerPayment is the slice of a payment record the schedule math needs.
type LedgerPayment struct {
	Date   time.Time
	Amount decimal.Decimal
}

// InstallmentStatus is an installment with fulfillment applied.
type InstallmentStatus struct {
	Installment
	TaxPaid   decimal.Decimal
	Shortfall decimal.Decimal
	Status    string
	Overdue   bool
}

// ScheduleCalculator derives the quarterly plan from the installment rules.
type ScheduleCalculator struct {
	Installments []InstallmentRule
}

// NewScheduleCalculator creates a schedule calculator for the given rules.
func NewScheduleCalculator(rules []InstallmentRule) *ScheduleCalculator {
	return &ScheduleCalculator{Installments: rules}
}

// Plan spreads netTaxPayable across the installments. Cumulative targets for
// all but the final quarter round to 2 decimal places; the final cumulative
// target is netTaxPayable itself, and each quarter's obligation is the
// difference between consecutive cumulative targets. The four obligations
// therefore sum to netTaxPayable exactly, with no rounding drift.
func (sc *ScheduleCalculator) Plan(netTaxPayable decimal.Decimal, fy FinancialYear) []Installment {
	hundred := decimal.NewFromInt(100)
	plan := make([]Installment, 0, len(sc.Installments))
	prevTarget := decimal.Zero
	for i, rule := range sc.Installments {
		target := netTaxPayable
		if i < len(sc.Installments)-1 {
			target = netTaxPayable.Mul(rule.CumulativePct).Div(hundred).Round(2)
		}
		plan = append(plan, Installment{
			Quarter:          rule.Quarter,
			DueDate:          sc.dueDate(rule, fy),
			CumulativePct:    rule.CumulativePct,
			CumulativeTarget: target,
			TaxPayable:       target.Sub(prevTarget),
		})
		prevTarget = target
	}
	return plan
}

// dueDate anchors a rule's month/day inside the fiscal year: months from
// April onward fall in the starting calendar year, January through March in
// the following one.
func (sc *ScheduleCalculator) dueDate(rule InstallmentRule, fy FinancialYear) time.Time {
	year := fy.StartYear
	if rule.DueMonth < time.April {
		year++
	}
	return Date(year, rule.DueMonth, rule.DueDay)
}

// Apply populates fulfillment against the plan. For quarter i, the amount
// paid is the sum of payments dated on or before its due date net of what
// earlier quarters already absorbed; money beyond a quarter's own obligation
// carries forward, money arriving after a due date never cures that quarter.
// Overdue is evaluated against today only when enforceOverdue is set (the
// assessment is active); a quarter is overdue once its due date has passed
// and it is not fully paid.
func (sc *ScheduleCalculator) Apply(plan []Installment, payments []LedgerPayment, today time.Time, enforceOverdue bool) []InstallmentStatus {
	today = Date(today.Year(), today.Month(), today.Day())
	statuses := make([]InstallmentStatus, 0, len(plan))
	absorbed := decimal.Zero
	for _, inst := range plan {
		cumulativePaid := decimal.Zero
		for _, p := range payments {
			if !Date(p.Date.Year(), p.Date.Month(), p.Date.Day()).After(inst.DueDate) {
				cumulativePaid = cumulativePaid.Add(p.Amount)
			}
		}

		paid := cumulativePaid.Sub(absorbed)
		if paid.IsNegative() {
			paid = decimal.Zero
		}
		shortfall := inst.TaxPayable.Sub(paid)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}
		absorbed = absorbed.Add(decimal.Min(inst.TaxPayable, paid))

		status := PaymentPending
		switch {
		case shortfall.IsZero() && cumulativePaid.GreaterThanOrEqual(inst.CumulativeTarget):
			status = PaymentPaid
		case paid.IsPositive():
			status = PaymentPartial
		}

		statuses = append(statuses, InstallmentStatus{
			Installment: inst,
			TaxPaid:     paid,
			Shortfall:   shortfall,
			Status:      status,
			Overdue:     enforceOverdue && today.After(inst.DueDate) && status != PaymentPaid,
		})
	}
	return statuses
}
