package service

import (
	"context"
	"fmt"
	"time"

	"taxengine/internal/apperr"
	"taxengine/internal/calculation"
	"taxengine/internal/clock"
	"taxengine/internal/model"
	"taxengine/internal/repository"

	"github.com/google/uuid"
)

// computeEngine runs the calculation pipeline against stored rows. It is
// shared by the assessment and payment services so every recompute path
// derives the snapshot and the schedule the exact same way.
type computeEngine struct {
	rules calculation.Rules
}

func newComputeEngine(rules calculation.Rules) computeEngine {
	return computeEngine{rules: rules}
}

// inputsOf collects an assessment's stored input columns into the pipeline's
// input shape.
func (e computeEngine) inputsOf(a *model.Assessment) calculation.AssessmentInputs {
	return calculation.AssessmentInputs{
		Profit: calculation.ProfitInputs{
			YtdRevenue:                  a.YtdRevenue,
			YtdExpenses:                 a.YtdExpenses,
			ProjectedAdditionalRevenue:  a.ProjectedAdditionalRevenue,
			ProjectedAdditionalExpenses: a.ProjectedAdditionalExpenses,
			ProjectedDepreciation:       a.ProjectedDepreciation,
			ProjectedOtherIncome:        a.ProjectedOtherIncome,
		},
		Reconciliation: calculation.ReconciliationInputs{
			DepreciationAddback:           a.DepreciationAddback,
			DisallowedCashPayments:        a.DisallowedCashPayments,
			DisallowedGratuityProvision:   a.DisallowedGratuityProvision,
			DisallowedUnpaidStatutoryDues: a.DisallowedUnpaidStatutoryDues,
			OtherDisallowances:            a.OtherDisallowances,
			TaxDepreciation:               a.TaxDepreciation,
			Deduction80C:                  a.Deduction80C,
			Deduction80D:                  a.Deduction80D,
			OtherDeductions:               a.OtherDeductions,
		},
		Credits: calculation.TaxCredits{
			TdsReceivable: a.TdsReceivable,
			TcsCredit:     a.TcsCredit,
		},
	}
}

// derive recomputes the assessment's derived snapshot (book profit through
// net payable) from its input columns. The only failure mode is a regime
// missing from the rules table.
func (e computeEngine) derive(a *model.Assessment) error {
	rates, ok := e.rules.RatesFor(a.TaxRegime)
	if !ok {
		return apperr.Validationf("tax_regime", "unknown regime %s", a.TaxRegime)
	}

	in := e.inputsOf(a)
	statement := calculation.Reconcile(in.Profit.BookProfit(), in.Reconciliation)
	liability := calculation.NewLiabilityCalculator(rates).Calculate(statement.TaxableIncome, in.Credits)

	a.BookProfit = statement.BookProfit
	a.TotalAdditions = statement.TotalAdditions
	a.TotalDeductions = statement.TotalDeductions
	a.TaxableIncome = statement.TaxableIncome
	a.BaseTax = liability.BaseTax
	a.Surcharge = liability.Surcharge
	a.Cess = liability.Cess
	a.TotalTaxLiability = liability.TotalTaxLiability
	a.NetTaxPayable = liability.NetTaxPayable
	return nil
}

// buildSchedule regenerates the four schedule rows from the derived net
// payable, the payment history, and today's date. Overdue is only enforced
// once the assessment is active.
func (e computeEngine) buildSchedule(a *model.Assessment, payments []model.Payment, today time.Time) ([]model.ScheduleEntry, error) {
	fy, err := calculation.ParseFinancialYear(a.FinancialYear)
	if err != nil {
		return nil, apperr.Validation("financial_year", err.Error())
	}

	sc := calculation.NewScheduleCalculator(e.rules.Installments)
	plan := sc.Plan(a.NetTaxPayable, fy)
	statuses := sc.Apply(plan, ledgerPayments(payments), today, a.Status == model.AssessmentActive)
	lines, _ := calculation.NewInterestCalculator(e.rules.Interest).Deferment234C(statuses)

	entries := make([]model.ScheduleEntry, 0, len(statuses))
	for i, st := range statuses {
		entries = append(entries, model.ScheduleEntry{
			AssessmentID:     a.ID,
			Quarter:          st.Quarter,
			DueDate:          st.DueDate,
			CumulativePct:    st.CumulativePct,
			CumulativeTarget: st.CumulativeTarget,
			TaxPayable:       st.TaxPayable,
			TaxPaid:          st.TaxPaid,
			Shortfall:        st.Shortfall,
			Interest234C:     lines[i].Interest,
			PaymentStatus:    st.Status,
			IsOverdue:        st.Overdue,
		})
	}
	return entries, nil
}

// annual234B computes the year-end shortfall interest as of a date.
func (e computeEngine) annual234B(a *model.Assessment, payments []model.Payment, asOf time.Time) (calculation.Annual234B, error) {
	fy, err := calculation.ParseFinancialYear(a.FinancialYear)
	if err != nil {
		return calculation.Annual234B{}, apperr.Validation("financial_year", err.Error())
	}
	ic := calculation.NewInterestCalculator(e.rules.Interest)
	return ic.Shortfall234B(a.NetTaxPayable, ledgerPayments(payments), fy, asOf), nil
}

func ledgerPayments(payments []model.Payment) []calculation.LedgerPayment {
	out := make([]calculation.LedgerPayment, 0, len(payments))
	for _, p := range payments {
		out = append(out, calculation.LedgerPayment{Date: p.PaymentDate, Amount: p.Amount})
	}
	return out
}

// refreshDerived re-derives the snapshot from current inputs and payment
// history, persists the assessment, swaps its schedule rows, and re-points
// designated payments at the regenerated rows for their quarter. Returns the
// fresh schedule entries. Callers hold the per-assessment lock.
func refreshDerived(
	txCtx context.Context,
	engine computeEngine,
	assessmentRepo repository.AssessmentRepository,
	scheduleRepo repository.ScheduleRepository,
	paymentRepo repository.PaymentRepository,
	clk clock.Clock,
	assessment *model.Assessment,
) ([]model.ScheduleEntry, error) {
	if err := engine.derive(assessment); err != nil {
		return nil, err
	}
	payments, err := paymentRepo.ListByAssessment(txCtx, assessment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	entries, err := engine.buildSchedule(assessment, payments, clk.Today())
	if err != nil {
		return nil, err
	}
	if err := assessmentRepo.Update(txCtx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}
	if err := scheduleRepo.Replace(txCtx, assessment.ID, entries); err != nil {
		return nil, fmt.Errorf("failed to write schedule: %w", err)
	}
	entryIDByQuarter := make(map[int]uuid.UUID, len(entries))
	for _, e := range entries {
		entryIDByQuarter[e.Quarter] = e.ID
	}
	if err := paymentRepo.RelinkScheduleEntries(txCtx, assessment.ID, entryIDByQuarter); err != nil {
		return nil, fmt.Errorf("failed to relink payments: %w", err)
	}
	return entries, nil
}
