package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"taxengine/internal/apperr"
	"taxengine/internal/calculation"
	"taxengine/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePaymentRequest() RecordPaymentRequest {
	return RecordPaymentRequest{
		PaymentDate:   "2025-06-10",
		Amount:        "30000",
		ChallanNumber: "CHN-0042",
		BsrCode:       "0510001",
	}
}

// activeAssessment seeds a created-and-activated assessment with net payable
// 200000 across quarters 30000/60000/60000/50000.
func activeAssessment(t *testing.T, f *fixture) AssessmentResponse {
	t.Helper()
	created := f.mustCreate(t, baseCreateRequest())
	return f.mustActivate(t, created.ID)
}

func TestRecordPayment(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)

	resp, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), basePaymentRequest())
	require.NoError(t, err)

	assert.Equal(t, a.ID, resp.AssessmentID)
	assert.Equal(t, "30000.00", resp.Amount)
	assert.Equal(t, "2025-06-10", resp.PaymentDate)
	assert.Equal(t, "NET_BANKING", resp.PaymentMode, "mode defaults when omitted")
	assert.False(t, resp.JournalPending)
	if assert.NotNil(t, resp.JournalNumber) {
		assert.Equal(t, "JRN-1001", *resp.JournalNumber)
	}

	// The on-time payment settles Q1 and clears its deferment interest.
	entries, err := f.schedules.ListByAssessment(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, calculation.PaymentPaid, entries[0].PaymentStatus)
	assert.True(t, entries[0].Shortfall.IsZero())
	assert.True(t, entries[0].Interest234C.IsZero())
	assert.False(t, entries[0].IsOverdue)
	assert.Equal(t, calculation.PaymentPending, entries[1].PaymentStatus)
	assert.Equal(t, "1800.00", entries[1].Interest234C.StringFixed(2))

	require.Len(t, f.journal.entries, 1)
	entry := f.journal.entries[0]
	assert.Equal(t, resp.ID, entry.PaymentID)
	assert.Equal(t, a.ID, entry.AssessmentID)
	assert.Equal(t, "CHN-0042", entry.ChallanNumber)
	assert.Equal(t, "Advance tax 2025-26 challan CHN-0042", entry.Narration)

	assert.Contains(t, f.audits.actions(), model.ActionRecordPayment)
	assert.Contains(t, f.events.names(), EventPaymentRecorded)
}

func TestRecordPaymentValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RecordPaymentRequest)
	}{
		{"zero amount", func(r *RecordPaymentRequest) { r.Amount = "0" }},
		{"negative amount", func(r *RecordPaymentRequest) { r.Amount = "-100" }},
		{"unparseable amount", func(r *RecordPaymentRequest) { r.Amount = "thirty thousand" }},
		{"missing challan number", func(r *RecordPaymentRequest) { r.ChallanNumber = "" }},
		{"missing bsr code", func(r *RecordPaymentRequest) { r.BsrCode = "" }},
		{"short bsr code", func(r *RecordPaymentRequest) { r.BsrCode = "12345" }},
		{"non-numeric bsr code", func(r *RecordPaymentRequest) { r.BsrCode = "05X0001" }},
		{"future date", func(r *RecordPaymentRequest) { r.PaymentDate = "2025-07-11" }},
		{"date before the year opens", func(r *RecordPaymentRequest) { r.PaymentDate = "2025-03-31" }},
		{"date wrong format", func(r *RecordPaymentRequest) { r.PaymentDate = "10-06-2025" }},
		{"quarter too low", func(r *RecordPaymentRequest) { q := 0; r.Quarter = &q }},
		{"quarter too high", func(r *RecordPaymentRequest) { q := 5; r.Quarter = &q }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(midYear)
			a := activeAssessment(t, f)
			req := basePaymentRequest()
			tc.mutate(&req)

			_, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), req)

			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Empty(t, f.payments.rows, "nothing persisted on rejection")
			assert.Zero(t, f.journal.calls, "nothing posted on rejection")
		})
	}
}

func TestRecordPaymentDateBoundedByAssessmentYear(t *testing.T) {
	// Clock well past the FY 2025-26 assessment year's close.
	f := newFixture(calculation.Date(2027, time.June, 10))
	a := activeAssessment(t, f)

	req := basePaymentRequest()
	req.PaymentDate = "2027-06-01"
	_, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, f.payments.rows, "nothing persisted on rejection")

	// The assessment year's closing day itself is still payable.
	req.PaymentDate = "2027-03-31"
	_, err = f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), req)
	require.NoError(t, err)
}

func TestRecordPaymentLifecycleGate(t *testing.T) {
	t.Run("draft", func(t *testing.T) {
		f := newFixture(midYear)
		created := f.mustCreate(t, baseCreateRequest())

		_, err := f.paymentSvc.RecordPayment(context.Background(), created.ID, uuid.NewString(), basePaymentRequest())

		assert.ErrorIs(t, err, apperr.ErrStateConflict)
		assert.Empty(t, f.payments.rows)
	})

	t.Run("finalized", func(t *testing.T) {
		f := newFixture(midYear)
		a := activeAssessment(t, f)
		f.clock.set(calculation.Date(2026, time.April, 10))
		_, err := f.assessmentSvc.FinalizeAssessment(context.Background(), a.ID, uuid.NewString())
		require.NoError(t, err)

		req := basePaymentRequest()
		_, err = f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), req)

		assert.ErrorIs(t, err, apperr.ErrStateConflict)
		assert.Empty(t, f.payments.rows)
	})

	t.Run("missing assessment", func(t *testing.T) {
		f := newFixture(midYear)

		_, err := f.paymentSvc.RecordPayment(context.Background(), uuid.NewString(), uuid.NewString(), basePaymentRequest())
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		_, err = f.paymentSvc.RecordPayment(context.Background(), "nope", uuid.NewString(), basePaymentRequest())
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestRecordPaymentDesignatesInstallment(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)

	entries, err := f.schedules.ListByAssessment(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)

	req := basePaymentRequest()
	req.ScheduleEntryID = entries[1].ID.String()

	resp, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), req)
	require.NoError(t, err)

	// The designated entry pins the quarter tag, and the stored link follows
	// the schedule row regenerated by the recompute the payment triggered.
	require.NotNil(t, resp.Quarter)
	assert.Equal(t, 2, *resp.Quarter)
	fresh, err := f.schedules.ListByAssessment(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)
	require.NotNil(t, resp.ScheduleEntryID)
	assert.Equal(t, fresh[1].ID.String(), *resp.ScheduleEntryID)

	require.Len(t, f.journal.entries, 1)
	assert.Equal(t, "Advance tax 2025-26 Q2 challan CHN-0042", f.journal.entries[0].Narration)
}

func TestScheduleRegenerationRelinksDesignatedPayments(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)

	entries, err := f.schedules.ListByAssessment(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)

	req := basePaymentRequest()
	req.ScheduleEntryID = entries[0].ID.String()
	_, err = f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), req)
	require.NoError(t, err)

	// Regenerating the schedule reissues entry IDs; the payment's link must
	// follow its quarter's new row instead of dangling.
	_, err = f.assessmentSvc.RecalculateSchedules(context.Background(), a.ID, uuid.NewString())
	require.NoError(t, err)

	fresh, err := f.schedules.ListByAssessment(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)
	assert.NotEqual(t, entries[0].ID, fresh[0].ID, "regeneration reissues IDs")

	payments, err := f.payments.ListByAssessment(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.NotNil(t, payments[0].ScheduleEntryID)
	assert.Equal(t, fresh[0].ID, *payments[0].ScheduleEntryID)
}

func TestRecordPaymentRejectsForeignScheduleEntry(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)

	req := basePaymentRequest()
	req.ScheduleEntryID = uuid.NewString()

	_, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), req)

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Empty(t, f.payments.rows)
}

func TestRecordPaymentSurvivesJournalOutage(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)
	f.journal.failErr = errors.New("accounting service unavailable")

	resp, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), basePaymentRequest())

	// The payment commits regardless; only the journal number is pending.
	require.NoError(t, err)
	assert.True(t, resp.JournalPending)
	assert.Nil(t, resp.JournalNumber)
	assert.Len(t, f.payments.rows, 1)
	assert.Equal(t, 1, f.journal.calls)
	assert.Contains(t, f.events.names(), EventPaymentRecorded)
}

func TestRetryJournal(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)
	f.journal.failErr = errors.New("accounting service unavailable")

	recorded, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), basePaymentRequest())
	require.NoError(t, err)
	require.True(t, recorded.JournalPending)

	t.Run("still failing", func(t *testing.T) {
		_, err := f.paymentSvc.RetryJournal(context.Background(), recorded.ID, uuid.NewString())
		assert.Error(t, err)
	})

	t.Run("succeeds once the service is back", func(t *testing.T) {
		f.journal.failErr = nil

		resp, err := f.paymentSvc.RetryJournal(context.Background(), recorded.ID, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, resp.JournalPending)
		require.NotNil(t, resp.JournalNumber)
		assert.Equal(t, "JRN-1001", *resp.JournalNumber)
		assert.Contains(t, f.audits.actions(), model.ActionRetryJournal)
	})

	t.Run("idempotent once posted", func(t *testing.T) {
		calls := f.journal.calls

		resp, err := f.paymentSvc.RetryJournal(context.Background(), recorded.ID, uuid.NewString())
		require.NoError(t, err)
		assert.False(t, resp.JournalPending)
		assert.Equal(t, calls, f.journal.calls, "no second post for a journaled payment")
	})
}

func TestRetryJournalErrors(t *testing.T) {
	f := newFixture(midYear)

	_, err := f.paymentSvc.RetryJournal(context.Background(), "nope", uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.paymentSvc.RetryJournal(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListPayments(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)

	second := basePaymentRequest()
	second.PaymentDate = "2025-07-01"
	second.Amount = "20000"
	second.ChallanNumber = "CHN-0043"

	// Recorded out of date order; listing sorts by payment date.
	_, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), second)
	require.NoError(t, err)
	_, err = f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), basePaymentRequest())
	require.NoError(t, err)

	payments, err := f.paymentSvc.ListPayments(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "2025-06-10", payments[0].PaymentDate)
	assert.Equal(t, "2025-07-01", payments[1].PaymentDate)

	_, err = f.paymentSvc.ListPayments(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.paymentSvc.ListPayments(context.Background(), "nope")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRecordPaymentsAcrossQuarters(t *testing.T) {
	f := newFixture(midYear)
	a := activeAssessment(t, f)

	_, err := f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), basePaymentRequest())
	require.NoError(t, err)

	// Move past the Q2 due date and cover it exactly.
	f.clock.set(calculation.Date(2025, time.September, 20))
	q2 := basePaymentRequest()
	q2.PaymentDate = "2025-09-14"
	q2.Amount = "60000"
	q2.ChallanNumber = "CHN-0044"
	_, err = f.paymentSvc.RecordPayment(context.Background(), a.ID, uuid.NewString(), q2)
	require.NoError(t, err)

	entries, err := f.schedules.ListByAssessment(context.Background(), uuid.MustParse(a.ID))
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, calculation.PaymentPaid, entries[0].PaymentStatus)
	assert.Equal(t, calculation.PaymentPaid, entries[1].PaymentStatus)
	assert.Equal(t, calculation.PaymentPending, entries[2].PaymentStatus)
	assert.True(t, entries[1].Interest234C.IsZero())
	assert.Equal(t, "1800.00", entries[2].Interest234C.StringFixed(2))
	assert.False(t, entries[2].IsOverdue, "Q3 not due yet")
}
