package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"taxengine/internal/calculation"
	"taxengine/internal/integrations/journal"
	"taxengine/internal/model"
	"taxengine/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mimic the persistence contract the
// services rely on: rows are stored and returned by value so a mutation
// that never reaches Update stays invisible, and missing rows surface as
// gorm.ErrRecordNotFound exactly like the real repositories.

type fakeClock struct {
	at time.Time
}

func (c *fakeClock) Now() time.Time { return c.at }

func (c *fakeClock) Today() time.Time {
	return calculation.Date(c.at.Year(), c.at.Month(), c.at.Day())
}

func (c *fakeClock) set(t time.Time) { c.at = t }

type fakeTxManager struct {
	locks []uuid.UUID
}

func (m *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) LockAssessment(_ context.Context, id uuid.UUID) error {
	m.locks = append(m.locks, id)
	return nil
}

type fakeAssessmentRepo struct {
	rows map[uuid.UUID]model.Assessment
	seq  int

	schedules *fakeScheduleRepo
}

func newFakeAssessmentRepo(schedules *fakeScheduleRepo) *fakeAssessmentRepo {
	return &fakeAssessmentRepo{rows: make(map[uuid.UUID]model.Assessment), schedules: schedules}
}

func (r *fakeAssessmentRepo) Create(_ context.Context, a *model.Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.seq++
	a.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	a.UpdatedAt = a.CreatedAt
	r.rows[a.ID] = *a
	return nil
}

func (r *fakeAssessmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Assessment, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *fakeAssessmentRepo) FindByIDWithSchedule(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	row, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Schedule, _ = r.schedules.ListByAssessment(ctx, id)
	return row, nil
}

func (r *fakeAssessmentRepo) FindByCompanyAndYear(_ context.Context, companyID uuid.UUID, financialYear string) (*model.Assessment, error) {
	for _, row := range r.rows {
		if row.CompanyID == companyID && row.FinancialYear == financialYear {
			match := row
			return &match, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssessmentRepo) List(_ context.Context, filter repository.AssessmentFilter, page, limit int) ([]model.Assessment, int64, error) {
	var matched []model.Assessment
	for _, row := range r.rows {
		if filter.CompanyID != nil && row.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.FinancialYear != "" && row.FinancialYear != filter.FinancialYear {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if filter.TaxRegime != "" && row.TaxRegime != filter.TaxRegime {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeAssessmentRepo) ListActiveIDs(_ context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, row := range r.rows {
		if row.Status == model.AssessmentActive {
			ids = append(ids, row.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r *fakeAssessmentRepo) Update(_ context.Context, a *model.Assessment) error {
	if _, ok := r.rows[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.seq++
	a.UpdatedAt = time.Unix(int64(r.seq), 0).UTC()
	r.rows[a.ID] = *a
	return nil
}

// stored returns the persisted copy, bypassing the repository interface, so
// tests can assert what actually reached the store.
func (r *fakeAssessmentRepo) stored(id uuid.UUID) model.Assessment {
	return r.rows[id]
}

type fakeScheduleRepo struct {
	rows map[uuid.UUID][]model.ScheduleEntry
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{rows: make(map[uuid.UUID][]model.ScheduleEntry)}
}

func (r *fakeScheduleRepo) Replace(_ context.Context, assessmentID uuid.UUID, entries []model.ScheduleEntry) error {
	// IDs are written back into the caller's slice, like the RETURNING
	// clause the real repository relies on.
	for i := range entries {
		if entries[i].ID == uuid.Nil {
			entries[i].ID = uuid.New()
		}
	}
	stored := make([]model.ScheduleEntry, len(entries))
	copy(stored, entries)
	sort.Slice(stored, func(i, j int) bool { return stored[i].Quarter < stored[j].Quarter })
	r.rows[assessmentID] = stored
	return nil
}

func (r *fakeScheduleRepo) ListByAssessment(_ context.Context, assessmentID uuid.UUID) ([]model.ScheduleEntry, error) {
	entries := r.rows[assessmentID]
	out := make([]model.ScheduleEntry, len(entries))
	copy(out, entries)
	return out, nil
}

type fakePaymentRepo struct {
	rows []model.Payment
	seq  int
}

func (r *fakePaymentRepo) Create(_ context.Context, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.seq++
	p.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	r.rows = append(r.rows, *p)
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	for _, row := range r.rows {
		if row.ID == id {
			match := row
			return &match, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePaymentRepo) ListByAssessment(_ context.Context, assessmentID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, row := range r.rows {
		if row.AssessmentID == assessmentID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.Before(out[j].PaymentDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakePaymentRepo) RelinkScheduleEntries(_ context.Context, assessmentID uuid.UUID, entryIDByQuarter map[int]uuid.UUID) error {
	for i := range r.rows {
		row := &r.rows[i]
		if row.AssessmentID != assessmentID || row.ScheduleEntryID == nil || row.Quarter == nil {
			continue
		}
		if entryID, ok := entryIDByQuarter[*row.Quarter]; ok {
			id := entryID
			row.ScheduleEntryID = &id
		}
	}
	return nil
}

func (r *fakePaymentRepo) SetJournalNumber(_ context.Context, id uuid.UUID, journalNumber string) (bool, error) {
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].JournalNumber == nil {
			r.rows[i].JournalNumber = &journalNumber
			return true, nil
		}
	}
	return false, nil
}

type fakeScenarioRepo struct {
	rows map[uuid.UUID]model.Scenario
	seq  int
}

func newFakeScenarioRepo() *fakeScenarioRepo {
	return &fakeScenarioRepo{rows: make(map[uuid.UUID]model.Scenario)}
}

func (r *fakeScenarioRepo) Create(_ context.Context, s *model.Scenario) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.seq++
	s.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	r.rows[s.ID] = *s
	return nil
}

func (r *fakeScenarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Scenario, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *fakeScenarioRepo) ListByAssessment(_ context.Context, assessmentID uuid.UUID) ([]model.Scenario, error) {
	var out []model.Scenario
	for _, row := range r.rows {
		if row.AssessmentID == assessmentID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeScenarioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

type fakeAuditRepo struct {
	rows []model.AuditLog
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	r.rows = append(r.rows, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, action, entityID string, page, limit int) ([]model.AuditLog, int64, error) {
	var matched []model.AuditLog
	for _, row := range r.rows {
		if action != "" && row.Action != action {
			continue
		}
		if entityID != "" && row.EntityID != entityID {
			continue
		}
		matched = append(matched, row)
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeAuditRepo) actions() []string {
	out := make([]string, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row.Action)
	}
	return out
}

type publishedEvent struct {
	name string
	data interface{}
}

type fakeEvents struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakeEvents) Publish(event string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{name: event, data: data})
}

func (f *fakeEvents) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.name)
	}
	return out
}

type fakeJournal struct {
	calls   int
	failErr error
	entries []journal.EntryRequest
}

func (f *fakeJournal) PostEntry(_ context.Context, entry journal.EntryRequest) (string, error) {
	f.calls++
	if f.failErr != nil {
		return "", f.failErr
	}
	f.entries = append(f.entries, entry)
	return "JRN-1001", nil
}

type fakeDirectory struct {
	name string
}

func (f *fakeDirectory) CompanyName(_ context.Context, _ string) string { return f.name }

// fixture wires the three write-path services against shared fakes.
type fixture struct {
	assessments *fakeAssessmentRepo
	schedules   *fakeScheduleRepo
	payments    *fakePaymentRepo
	scenarios   *fakeScenarioRepo
	audits      *fakeAuditRepo
	tx          *fakeTxManager
	journal     *fakeJournal
	events      *fakeEvents
	clock       *fakeClock

	assessmentSvc AssessmentService
	paymentSvc    PaymentService
	scenarioSvc   ScenarioService
}

func newFixture(today time.Time) *fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	schedules := newFakeScheduleRepo()
	f := &fixture{
		assessments: newFakeAssessmentRepo(schedules),
		schedules:   schedules,
		payments:    &fakePaymentRepo{},
		scenarios:   newFakeScenarioRepo(),
		audits:      &fakeAuditRepo{},
		tx:          &fakeTxManager{},
		journal:     &fakeJournal{},
		events:      &fakeEvents{},
		clock:       &fakeClock{at: today},
	}

	rules := calculation.DefaultRules()
	directory := &fakeDirectory{name: "Apex Forgings Pvt Ltd"}

	f.assessmentSvc = NewAssessmentService(f.assessments, f.schedules, f.payments, f.audits, f.tx, rules, f.clock, directory, f.events, log)
	f.paymentSvc = NewPaymentService(f.payments, f.assessments, f.schedules, f.audits, f.tx, rules, f.clock, f.journal, f.events, log)
	f.scenarioSvc = NewScenarioService(f.scenarios, f.assessments, f.audits, f.tx, rules, f.clock, f.events, log)
	return f
}

var testCompanyID = uuid.MustParse("3f2b8c14-9a14-4e14-b8a1-67d21c2a9e01")

// baseCreateRequest carries round figures chosen so every derived stage is
// checkable by hand: book profit 10,00,000, additions and deductions 2,00,000
// each, taxable 10,00,000, NORMAL-regime tax 2,60,000, credits 60,000, net
// payable 2,00,000.
func baseCreateRequest() CreateAssessmentRequest {
	return CreateAssessmentRequest{
		CompanyID:     testCompanyID.String(),
		FinancialYear: "2025-26",

		YtdRevenue:     "1500000",
		YtdExpenses:    "700000",
		YtdThroughDate: "2025-06-30",

		ProjectedAdditionalRevenue:  "500000",
		ProjectedAdditionalExpenses: "400000",
		ProjectedDepreciation:       "100000",
		ProjectedOtherIncome:        "200000",

		DepreciationAddback:           "100000",
		DisallowedCashPayments:        "50000",
		DisallowedGratuityProvision:   "30000",
		DisallowedUnpaidStatutoryDues: "15000",
		OtherDisallowances:            "5000",

		TaxDepreciation: "150000",
		OtherDeductions: "50000",

		TdsReceivable: "50000",
		TcsCredit:     "10000",
	}
}

func (f *fixture) mustCreate(t *testing.T, req CreateAssessmentRequest) AssessmentResponse {
	t.Helper()
	resp, err := f.assessmentSvc.CreateAssessment(context.Background(), uuid.NewString(), req)
	require.NoError(t, err)
	return resp
}

func (f *fixture) mustActivate(t *testing.T, id string) AssessmentResponse {
	t.Helper()
	resp, err := f.assessmentSvc.ActivateAssessment(context.Background(), id, uuid.NewString())
	require.NoError(t, err)
	return resp
}
