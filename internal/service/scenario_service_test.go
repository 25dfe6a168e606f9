package service

import (
	"context"
	"testing"
	"time"

	"taxengine/internal/apperr"
	"taxengine/internal/calculation"
	"taxengine/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScenarioComputesVariance(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())

	resp, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{
		Name:              "new contract win",
		RevenueAdjustment: "500000",
	})
	require.NoError(t, err)

	assert.Equal(t, "new contract win", resp.Name)
	assert.Equal(t, "500000.00", resp.RevenueAdjustment)
	assert.Equal(t, "1500000.00", resp.TaxableIncome)
	assert.Equal(t, "390000.00", resp.TotalTaxLiability)
	assert.Equal(t, "330000.00", resp.NetTaxPayable)
	assert.Equal(t, "130000.00", resp.VarianceFromBase)
	assert.Empty(t, resp.SchedulePreview, "no preview unless requested")

	// The base assessment is read-only to scenarios.
	stored := f.assessments.stored(uuid.MustParse(base.ID))
	assert.Equal(t, "200000.00", stored.NetTaxPayable.StringFixed(2))
	assert.Equal(t, "500000.00", stored.ProjectedAdditionalRevenue.StringFixed(2))

	assert.Len(t, f.scenarios.rows, 1)
	assert.Contains(t, f.audits.actions(), model.ActionRunScenario)
	assert.Contains(t, f.events.names(), EventScenarioCreated)
}

func TestRunScenarioNegativeAdjustment(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())

	resp, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{
		Name:              "order book slump",
		RevenueAdjustment: "-300000",
	})
	require.NoError(t, err)

	assert.Equal(t, "-300000.00", resp.RevenueAdjustment)
	assert.Equal(t, "700000.00", resp.TaxableIncome)
	assert.Equal(t, "182000.00", resp.TotalTaxLiability)
	assert.Equal(t, "122000.00", resp.NetTaxPayable)
	assert.Equal(t, "-78000.00", resp.VarianceFromBase, "a downside scenario carries a negative variance")
}

func TestRunScenarioMixedDeltas(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())

	resp, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{
		Name:              "plant expansion",
		Description:       "second line plus hiring",
		RevenueAdjustment: "100000",
		ExpenseAdjustment: "50000",
		PayrollChange:     "25000",
		CapexImpact:       "40000",
		OtherAdjustments:  "10000",
	})
	require.NoError(t, err)

	assert.Equal(t, "100000.00", resp.RevenueAdjustment)
	assert.Equal(t, "50000.00", resp.ExpenseAdjustment)
	assert.Equal(t, "25000.00", resp.PayrollChange)
	assert.Equal(t, "40000.00", resp.CapexImpact)
	assert.Equal(t, "10000.00", resp.OtherAdjustments)

	// 975000 taxable under NORMAL: 243750 + 9750 cess.
	assert.Equal(t, "975000.00", resp.TaxableIncome)
	assert.Equal(t, "253500.00", resp.TotalTaxLiability)
	assert.Equal(t, "193500.00", resp.NetTaxPayable)
	assert.Equal(t, "-6500.00", resp.VarianceFromBase)
}

func TestRunScenarioSchedulePreview(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())

	resp, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{
		Name:                   "new contract win",
		RevenueAdjustment:      "500000",
		IncludeSchedulePreview: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.SchedulePreview, 4)
	wantTarget := []string{"49500.00", "148500.00", "247500.00", "330000.00"}
	wantPayable := []string{"49500.00", "99000.00", "99000.00", "82500.00"}
	wantInterest := []string{"1485.00", "2970.00", "2970.00", "825.00"}
	for i, p := range resp.SchedulePreview {
		assert.Equal(t, i+1, p.Quarter)
		assert.Equal(t, wantTarget[i], p.CumulativeTarget, "Q%d target", i+1)
		assert.Equal(t, wantPayable[i], p.TaxPayable, "Q%d payable", i+1)
		assert.Equal(t, wantInterest[i], p.Indicative234C, "Q%d indicative interest", i+1)
	}
	assert.Equal(t, "2025-06-15", resp.SchedulePreview[0].DueDate)
	assert.Equal(t, "2026-03-15", resp.SchedulePreview[3].DueDate)

	// The preview is a response-only projection.
	listed, err := f.scenarioSvc.ListScenarios(context.Background(), base.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].SchedulePreview)
}

func TestRunScenarioWorksOnFinalized(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())
	f.mustActivate(t, base.ID)
	f.clock.set(calculation.Date(2026, time.April, 10))
	_, err := f.assessmentSvc.FinalizeAssessment(context.Background(), base.ID, uuid.NewString())
	require.NoError(t, err)

	resp, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{
		Name:              "post-finalization review",
		RevenueAdjustment: "500000",
	})

	require.NoError(t, err, "scenarios never mutate the base, so finalized is fine")
	assert.Equal(t, "130000.00", resp.VarianceFromBase)

	stored := f.assessments.stored(uuid.MustParse(base.ID))
	assert.Equal(t, model.AssessmentFinalized, stored.Status)
}

func TestRunScenarioValidation(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())

	_, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{
		Name:              "bad delta",
		RevenueAdjustment: "++5",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, f.scenarios.rows)

	_, err = f.scenarioSvc.RunScenario(context.Background(), "nope", uuid.NewString(), RunScenarioRequest{Name: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.scenarioSvc.RunScenario(context.Background(), uuid.NewString(), uuid.NewString(), RunScenarioRequest{Name: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListScenarios(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())

	_, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{Name: "first"})
	require.NoError(t, err)
	_, err = f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{Name: "second"})
	require.NoError(t, err)

	listed, err := f.scenarioSvc.ListScenarios(context.Background(), base.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "second", listed[0].Name, "newest first")
	assert.Equal(t, "first", listed[1].Name)

	_, err = f.scenarioSvc.ListScenarios(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.scenarioSvc.ListScenarios(context.Background(), "nope")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteScenario(t *testing.T) {
	f := newFixture(midYear)
	base := f.mustCreate(t, baseCreateRequest())

	created, err := f.scenarioSvc.RunScenario(context.Background(), base.ID, uuid.NewString(), RunScenarioRequest{
		Name:              "disposable",
		RevenueAdjustment: "500000",
	})
	require.NoError(t, err)

	err = f.scenarioSvc.DeleteScenario(context.Background(), created.ID, uuid.NewString())
	require.NoError(t, err)

	assert.Empty(t, f.scenarios.rows)
	assert.Contains(t, f.audits.actions(), model.ActionDeleteScenario)
	assert.Contains(t, f.events.names(), EventScenarioDeleted)

	stored := f.assessments.stored(uuid.MustParse(base.ID))
	assert.Equal(t, "200000.00", stored.NetTaxPayable.StringFixed(2), "base untouched by the delete")

	err = f.scenarioSvc.DeleteScenario(context.Background(), created.ID, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = f.scenarioSvc.DeleteScenario(context.Background(), "nope", uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
