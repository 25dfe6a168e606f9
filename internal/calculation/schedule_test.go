package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testFY = FinancialYear{StartYear: 2025}

func defaultPlan(net int64) []Installment {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	return sc.Plan(decimal.NewFromInt(net), testFY)
}

func TestPlanStatutoryExample(t *testing.T) {
	plan := defaultPlan(100000)

	wantPayable := []int64{15000, 30000, 30000, 25000}
	wantCumulative := []int64{15000, 45000, 75000, 100000}
	for i, inst := range plan {
		assert.Equal(t, i+1, inst.Quarter)
		assert.True(t, inst.TaxPayable.Equal(decimal.NewFromInt(wantPayable[i])),
			"Q%d payable: got %s", i+1, inst.TaxPayable)
		assert.True(t, inst.CumulativeTarget.Equal(decimal.NewFromInt(wantCumulative[i])),
			"Q%d cumulative: got %s", i+1, inst.CumulativeTarget)
	}
}

func TestPlanQuartersSumToNetExactly(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)

	nets := []decimal.Decimal{
		decimal.NewFromInt(100000),
		decimal.NewFromFloat(100001.33),
		decimal.NewFromFloat(0.01),
		decimal.NewFromFloat(999999999.99),
		decimal.NewFromFloat(77777.77),
		decimal.Zero,
	}

	for _, net := range nets {
		t.Run(net.String(), func(t *testing.T) {
			plan := sc.Plan(net, testFY)
			sum := decimal.Zero
			for _, inst := range plan {
				sum = sum.Add(inst.TaxPayable)
			}
			assert.True(t, sum.Equal(net), "sum %s != net %s", sum, net)
		})
	}
}

func TestApplyWithNoPayments(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	plan := defaultPlan(100000)

	// Between the Q2 and Q3 due dates.
	today := Date(2025, time.October, 1)
	entries := sc.Apply(plan, nil, today, true)

	for i, e := range entries {
		assert.Equal(t, PaymentPending, e.Status, "Q%d", i+1)
		assert.True(t, e.TaxPaid.IsZero())
		assert.True(t, e.Shortfall.Equal(e.TaxPayable), "Q%d shortfall: got %s", i+1, e.Shortfall)
	}
	assert.True(t, entries[0].Overdue)
	assert.True(t, entries[1].Overdue)
	assert.False(t, entries[2].Overdue)
	assert.False(t, entries[3].Overdue)
}

func TestApplyOverdueNotEvaluatedForDrafts(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	entries := sc.Apply(defaultPlan(100000), nil, Date(2026, time.June, 1), false)

	for _, e := range entries {
		assert.False(t, e.Overdue)
	}
}

func TestApplyDueDateItselfIsNotOverdue(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	entries := sc.Apply(defaultPlan(100000), nil, Date(2025, time.June, 15), true)

	assert.False(t, entries[0].Overdue)

	entries = sc.Apply(defaultPlan(100000), nil, Date(2025, time.June, 16), true)
	assert.True(t, entries[0].Overdue)
}

func TestApplyFullOnTimePayments(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	payments := []LedgerPayment{
		{Date: Date(2025, time.June, 10), Amount: decimal.NewFromInt(15000)},
		{Date: Date(2025, time.September, 14), Amount: decimal.NewFromInt(30000)},
		{Date: Date(2025, time.December, 15), Amount: decimal.NewFromInt(30000)},
		{Date: Date(2026, time.March, 10), Amount: decimal.NewFromInt(25000)},
	}

	entries := sc.Apply(defaultPlan(100000), payments, Date(2026, time.April, 30), true)

	for i, e := range entries {
		assert.Equal(t, PaymentPaid, e.Status, "Q%d", i+1)
		assert.True(t, e.Shortfall.IsZero(), "Q%d shortfall: got %s", i+1, e.Shortfall)
		assert.False(t, e.Overdue, "Q%d", i+1)
	}
}

func TestApplyOverpaymentCarriesForward(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	// A single early payment covering the first two cumulative targets.
	payments := []LedgerPayment{
		{Date: Date(2025, time.June, 1), Amount: decimal.NewFromInt(45000)},
	}

	entries := sc.Apply(defaultPlan(100000), payments, Date(2025, time.December, 31), true)

	assert.Equal(t, PaymentPaid, entries[0].Status)
	assert.True(t, entries[0].TaxPaid.Equal(decimal.NewFromInt(45000)), "Q1 paid: got %s", entries[0].TaxPaid)

	// Q2 sees the 30000 left after Q1 absorbed its 15000.
	assert.Equal(t, PaymentPaid, entries[1].Status)
	assert.True(t, entries[1].TaxPaid.Equal(decimal.NewFromInt(30000)), "Q2 paid: got %s", entries[1].TaxPaid)
	assert.True(t, entries[1].Shortfall.IsZero())

	assert.Equal(t, PaymentPending, entries[2].Status)
	assert.True(t, entries[2].Shortfall.Equal(decimal.NewFromInt(30000)))
}

func TestApplyLatePaymentDoesNotCureEarlierQuarter(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	// Paid the Q1 amount, but a day after the Q1 due date.
	payments := []LedgerPayment{
		{Date: Date(2025, time.June, 16), Amount: decimal.NewFromInt(15000)},
	}

	entries := sc.Apply(defaultPlan(100000), payments, Date(2025, time.July, 1), true)

	assert.Equal(t, PaymentPending, entries[0].Status)
	assert.True(t, entries[0].Shortfall.Equal(decimal.NewFromInt(15000)))
	assert.True(t, entries[0].Overdue)

	// The money still counts toward Q2's window.
	assert.True(t, entries[1].TaxPaid.Equal(decimal.NewFromInt(15000)))
	assert.True(t, entries[1].Shortfall.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, PaymentPartial, entries[1].Status)
}

func TestApplyPartialPayment(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	payments := []LedgerPayment{
		{Date: Date(2025, time.June, 5), Amount: decimal.NewFromInt(9000)},
	}

	entries := sc.Apply(defaultPlan(100000), payments, Date(2025, time.July, 1), true)

	assert.Equal(t, PaymentPartial, entries[0].Status)
	assert.True(t, entries[0].TaxPaid.Equal(decimal.NewFromInt(9000)))
	assert.True(t, entries[0].Shortfall.Equal(decimal.NewFromInt(6000)))
	assert.True(t, entries[0].Overdue)
}

func TestApplyZeroNetPayable(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	entries := sc.Apply(defaultPlan(0), nil, Date(2026, time.June, 1), true)

	for _, e := range entries {
		assert.Equal(t, PaymentPaid, e.Status)
		assert.True(t, e.Shortfall.IsZero())
		assert.False(t, e.Overdue)
	}
}

func TestRecomputationIsIdempotent(t *testing.T) {
	sc := NewScheduleCalculator(DefaultRules().Installments)
	payments := []LedgerPayment{
		{Date: Date(2025, time.June, 10), Amount: decimal.NewFromFloat(15000.55)},
		{Date: Date(2025, time.November, 2), Amount: decimal.NewFromFloat(12499.45)},
	}
	today := Date(2025, time.December, 20)
	net := decimal.NewFromFloat(123456.78)

	first := sc.Apply(sc.Plan(net, testFY), payments, today, true)
	second := sc.Apply(sc.Plan(net, testFY), payments, today, true)

	assert.Equal(t, first, second)
}
