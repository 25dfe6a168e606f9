package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func baseInputs() AssessmentInputs {
	return AssessmentInputs{
		Profit: ProfitInputs{
			YtdRevenue:                  decimal.NewFromInt(9000000),
			YtdExpenses:                 decimal.NewFromInt(6500000),
			ProjectedAdditionalRevenue:  decimal.NewFromInt(3000000),
			ProjectedAdditionalExpenses: decimal.NewFromInt(2100000),
			ProjectedDepreciation:       decimal.NewFromInt(400000),
			ProjectedOtherIncome:        decimal.NewFromInt(150000),
		},
		Reconciliation: ReconciliationInputs{
			DepreciationAddback: decimal.NewFromInt(400000),
			TaxDepreciation:     decimal.NewFromInt(520000),
		},
		Credits: TaxCredits{TdsReceivable: decimal.NewFromInt(50000)},
	}
}

func TestScenarioRevenueAdjustmentShiftsTaxableIncomeExactly(t *testing.T) {
	rates, _ := DefaultRules().RatesFor(RegimeNormal)
	base := baseInputs()

	baseStatement := Reconcile(base.Profit.BookProfit(), base.Reconciliation)
	baseLiability := NewLiabilityCalculator(rates).Calculate(baseStatement.TaxableIncome, base.Credits)

	outcome := RunScenario(base, ScenarioDeltas{
		RevenueAdjustment: decimal.NewFromInt(500000),
	}, rates, baseLiability.TotalTaxLiability)

	delta := outcome.Statement.TaxableIncome.Sub(baseStatement.TaxableIncome)
	assert.True(t, delta.Equal(decimal.NewFromInt(500000)), "taxable income delta: got %s", delta)

	// Variance equals the independently recomputed liability difference.
	wantVariance := outcome.Liability.TotalTaxLiability.Sub(baseLiability.TotalTaxLiability)
	assert.True(t, outcome.VarianceFromBase.Equal(wantVariance), "variance: got %s", outcome.VarianceFromBase)
	assert.True(t, outcome.VarianceFromBase.IsPositive())
}

func TestScenarioDeltaMapping(t *testing.T) {
	base := baseInputs()
	adjusted := ScenarioDeltas{
		RevenueAdjustment: decimal.NewFromInt(100000),
		ExpenseAdjustment: decimal.NewFromInt(40000),
		CapexImpact:       decimal.NewFromInt(250000),
		PayrollChange:     decimal.NewFromInt(60000),
		OtherAdjustments:  decimal.NewFromInt(-10000),
	}.ApplyTo(base)

	assert.True(t, adjusted.Profit.ProjectedAdditionalRevenue.Equal(decimal.NewFromInt(3100000)))
	// 2100000 + 40000 + 60000 - 10000
	assert.True(t, adjusted.Profit.ProjectedAdditionalExpenses.Equal(decimal.NewFromInt(2190000)))
	assert.True(t, adjusted.Profit.ProjectedDepreciation.Equal(decimal.NewFromInt(650000)))

	// Reconciliation lines and credits pass through untouched.
	assert.True(t, adjusted.Reconciliation.DepreciationAddback.Equal(base.Reconciliation.DepreciationAddback))
	assert.True(t, adjusted.Credits.TdsReceivable.Equal(base.Credits.TdsReceivable))
}

func TestScenarioNeverMutatesBaseInputs(t *testing.T) {
	rates, _ := DefaultRules().RatesFor(Regime115BAA)
	base := baseInputs()
	before := base

	RunScenario(base, ScenarioDeltas{
		RevenueAdjustment: decimal.NewFromInt(-2000000),
		CapexImpact:       decimal.NewFromInt(1000000),
	}, rates, decimal.NewFromInt(500000))

	assert.Equal(t, before, base)
}

func TestScenarioCapexLowersTaxableIncome(t *testing.T) {
	rates, _ := DefaultRules().RatesFor(RegimeNormal)
	base := baseInputs()

	baseStatement := Reconcile(base.Profit.BookProfit(), base.Reconciliation)
	outcome := RunScenario(base, ScenarioDeltas{
		CapexImpact: decimal.NewFromInt(300000),
	}, rates, decimal.Zero)

	// Extra book depreciation lowers book profit one for one.
	delta := baseStatement.TaxableIncome.Sub(outcome.Statement.TaxableIncome)
	assert.True(t, delta.Equal(decimal.NewFromInt(300000)), "got %s", delta)
}

func TestScenarioLossStaysClampedAtZero(t *testing.T) {
	rates, _ := DefaultRules().RatesFor(RegimeNormal)
	base := baseInputs()

	outcome := RunScenario(base, ScenarioDeltas{
		RevenueAdjustment: decimal.NewFromInt(-100000000),
	}, rates, decimal.NewFromInt(260000))

	assert.True(t, outcome.Statement.TaxableIncome.IsZero())
	assert.True(t, outcome.Liability.TotalTaxLiability.IsZero())
	// Variance goes fully negative against the stored base liability.
	assert.True(t, outcome.VarianceFromBase.Equal(decimal.NewFromInt(-260000)))
}
