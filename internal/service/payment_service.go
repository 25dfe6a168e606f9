package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taxengine/internal/apperr"
	"taxengine/internal/calculation"
	"taxengine/internal/clock"
	"taxengine/internal/integrations/journal"
	"taxengine/internal/model"
	"taxengine/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RecordPaymentRequest struct {
	PaymentDate   string `json:"payment_date" binding:"required"` // YYYY-MM-DD
	Amount        string `json:"amount" binding:"required"`
	ChallanNumber string `json:"challan_number" binding:"required"`
	BsrCode       string `json:"bsr_code" binding:"required"`
	PaymentMode   string `json:"payment_mode"`

	// ScheduleEntryID or Quarter designates the installment being paid.
	// Optional; fulfillment is attributed by date regardless.
	ScheduleEntryID string `json:"schedule_entry_id"`
	Quarter         *int   `json:"quarter"`

	Notes string `json:"notes"`
}

type PaymentResponse struct {
	ID              string  `json:"id"`
	AssessmentID    string  `json:"assessment_id"`
	ScheduleEntryID *string `json:"schedule_entry_id"`
	Quarter         *int    `json:"quarter"`
	PaymentDate     string  `json:"payment_date"`
	Amount          string  `json:"amount"`
	ChallanNumber   string  `json:"challan_number"`
	BsrCode         string  `json:"bsr_code"`
	PaymentMode     string  `json:"payment_mode"`
	JournalNumber   *string `json:"journal_number"`
	JournalPending  bool    `json:"journal_pending"`
	Notes           string  `json:"notes"`
	CreatedAt       string  `json:"created_at"`
}

type PaymentService interface {
	RecordPayment(ctx context.Context, assessmentID, userID string, req RecordPaymentRequest) (PaymentResponse, error)
	ListPayments(ctx context.Context, assessmentID string) ([]PaymentResponse, error)
	RetryJournal(ctx context.Context, paymentID, userID string) (PaymentResponse, error)
}

type paymentService struct {
	paymentRepo    repository.PaymentRepository
	assessmentRepo repository.AssessmentRepository
	scheduleRepo   repository.ScheduleRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	engine         computeEngine
	clock          clock.Clock
	journal        JournalPoster
	events         EventPublisher
	log            *logrus.Logger
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	assessmentRepo repository.AssessmentRepository,
	scheduleRepo repository.ScheduleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	rules calculation.Rules,
	clk clock.Clock,
	journalClient JournalPoster,
	events EventPublisher,
	log *logrus.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo:    paymentRepo,
		assessmentRepo: assessmentRepo,
		scheduleRepo:   scheduleRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		engine:         newComputeEngine(rules),
		clock:          clk,
		journal:        journalClient,
		events:         events,
		log:            log,
	}
}

// RecordPayment inserts a payment row, reattributes fulfillment across the
// schedule, and then posts the accounting entry. The journal post happens
// after commit: a dead accounting service leaves the payment durable with
// its journal number pending.
func (s *paymentService) RecordPayment(ctx context.Context, assessmentID, userID string, req RecordPaymentRequest) (PaymentResponse, error) {
	aID, err := uuid.Parse(assessmentID)
	if err != nil {
		return PaymentResponse{}, apperr.Validation("assessment_id", "must be a valid UUID")
	}

	amount, err := parseMoney("amount", req.Amount)
	if err != nil {
		return PaymentResponse{}, err
	}
	if !amount.IsPositive() {
		return PaymentResponse{}, apperr.Validation("amount", "must be greater than zero")
	}
	paymentDate, err := parseDate("payment_date", req.PaymentDate)
	if err != nil {
		return PaymentResponse{}, err
	}
	if req.ChallanNumber == "" {
		return PaymentResponse{}, apperr.Validation("challan_number", "required")
	}
	if req.BsrCode == "" {
		return PaymentResponse{}, apperr.Validation("bsr_code", "required with the challan number")
	}
	if !isBsrCode(req.BsrCode) {
		return PaymentResponse{}, apperr.Validation("bsr_code", "must be a 7-digit bank branch code")
	}
	if req.Quarter != nil && (*req.Quarter < 1 || *req.Quarter > 4) {
		return PaymentResponse{}, apperr.Validation("quarter", "must be between 1 and 4")
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = "NET_BANKING"
	}

	payment := &model.Payment{
		AssessmentID:  aID,
		PaymentDate:   paymentDate,
		Amount:        amount,
		ChallanNumber: req.ChallanNumber,
		BsrCode:       req.BsrCode,
		PaymentMode:   mode,
		Quarter:       req.Quarter,
		Notes:         req.Notes,
		CreatedBy:     parseUserID(userID),
	}

	var assessment *model.Assessment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if lockErr := s.txManager.LockAssessment(txCtx, aID); lockErr != nil {
			return fmt.Errorf("failed to lock assessment: %w", lockErr)
		}

		var findErr error
		assessment, findErr = s.assessmentRepo.FindByID(txCtx, aID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperr.NotFound("assessment")
			}
			return fmt.Errorf("failed to fetch assessment: %w", findErr)
		}
		if assessment.Status != model.AssessmentActive {
			return apperr.StateConflict("assessment", assessment.Status, "record payment")
		}

		fy, fyErr := calculation.ParseFinancialYear(assessment.FinancialYear)
		if fyErr != nil {
			return apperr.Validation("financial_year", fyErr.Error())
		}
		if paymentDate.Before(fy.Start()) {
			return apperr.Validation("payment_date", "cannot predate the financial year")
		}
		if paymentDate.After(fy.AssessmentYearEnd()) {
			return apperr.Validation("payment_date", "cannot postdate the assessment year")
		}
		if paymentDate.After(s.clock.Today()) {
			return apperr.Validation("payment_date", "cannot be in the future")
		}

		if req.ScheduleEntryID != "" {
			entryID, parseErr := uuid.Parse(req.ScheduleEntryID)
			if parseErr != nil {
				return apperr.Validation("schedule_entry_id", "must be a valid UUID")
			}
			entries, listErr := s.scheduleRepo.ListByAssessment(txCtx, aID)
			if listErr != nil {
				return fmt.Errorf("failed to fetch schedule: %w", listErr)
			}
			matched := false
			for _, e := range entries {
				if e.ID == entryID {
					matched = true
					payment.ScheduleEntryID = &entryID
					quarter := e.Quarter
					payment.Quarter = &quarter
					break
				}
			}
			if !matched {
				return apperr.Validation("schedule_entry_id", "does not belong to this assessment")
			}
		}

		if createErr := s.paymentRepo.Create(txCtx, payment); createErr != nil {
			return fmt.Errorf("failed to create payment: %w", createErr)
		}

		entries, recompErr := refreshDerived(txCtx, s.engine, s.assessmentRepo, s.scheduleRepo, s.paymentRepo, s.clock, assessment)
		if recompErr != nil {
			return recompErr
		}
		// Regeneration reissued the entry IDs; point the response at the
		// row now covering the designated quarter.
		if payment.ScheduleEntryID != nil && payment.Quarter != nil {
			for _, e := range entries {
				if e.Quarter == *payment.Quarter {
					entryID := e.ID
					payment.ScheduleEntryID = &entryID
					break
				}
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"payment_id":     payment.ID.String(),
			"amount":         payment.Amount.StringFixed(2),
			"payment_date":   req.PaymentDate,
			"challan_number": payment.ChallanNumber,
		})
		audit := &model.AuditLog{
			UserID:     payment.CreatedBy,
			Action:     model.ActionRecordPayment,
			EntityID:   assessment.ID.String(),
			EntityName: assessment.FinancialYear,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	s.postJournal(ctx, payment, assessment)

	s.publish(EventPaymentRecorded, map[string]interface{}{
		"assessment_id": assessment.ID.String(),
		"payment_id":    payment.ID.String(),
		"amount":        payment.Amount.StringFixed(2),
	})
	return toPaymentResponse(payment), nil
}

func (s *paymentService) ListPayments(ctx context.Context, assessmentID string) ([]PaymentResponse, error) {
	aID, err := uuid.Parse(assessmentID)
	if err != nil {
		return nil, apperr.Validation("assessment_id", "must be a valid UUID")
	}
	if _, err := s.assessmentRepo.FindByID(ctx, aID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assessment")
		}
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}

	payments, err := s.paymentRepo.ListByAssessment(ctx, aID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	result := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		result = append(result, toPaymentResponse(&payments[i]))
	}
	return result, nil
}

// RetryJournal re-attempts the accounting post for a payment whose journal
// number is still pending. Posting is idempotent on the accounting side via
// the payment ID.
func (s *paymentService) RetryJournal(ctx context.Context, paymentID, userID string) (PaymentResponse, error) {
	pID, err := uuid.Parse(paymentID)
	if err != nil {
		return PaymentResponse{}, apperr.Validation("payment_id", "must be a valid UUID")
	}

	payment, err := s.paymentRepo.FindByID(ctx, pID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, apperr.NotFound("payment")
		}
		return PaymentResponse{}, fmt.Errorf("failed to fetch payment: %w", err)
	}
	if payment.JournalNumber != nil {
		return toPaymentResponse(payment), nil
	}

	assessment, err := s.assessmentRepo.FindByID(ctx, payment.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, apperr.NotFound("assessment")
		}
		return PaymentResponse{}, fmt.Errorf("failed to fetch assessment: %w", err)
	}

	journalNumber, err := s.journal.PostEntry(ctx, journalEntry(payment, assessment))
	if err != nil {
		return PaymentResponse{}, err
	}
	if _, err := s.paymentRepo.SetJournalNumber(ctx, payment.ID, journalNumber); err != nil {
		return PaymentResponse{}, fmt.Errorf("failed to store journal number: %w", err)
	}
	payment.JournalNumber = &journalNumber

	details, _ := json.Marshal(map[string]interface{}{
		"payment_id":     payment.ID.String(),
		"journal_number": journalNumber,
	})
	audit := &model.AuditLog{
		UserID:     parseUserID(userID),
		Action:     model.ActionRetryJournal,
		EntityID:   payment.AssessmentID.String(),
		EntityName: assessment.FinancialYear,
		Details:    string(details),
	}
	if auditErr := s.auditRepo.Log(ctx, audit); auditErr != nil {
		s.log.WithError(auditErr).Warn("failed to write audit log for journal retry")
	}

	return toPaymentResponse(payment), nil
}

// postJournal runs after the payment commit. Failure only logs; the payment
// stays journal-pending until a retry succeeds.
func (s *paymentService) postJournal(ctx context.Context, payment *model.Payment, assessment *model.Assessment) {
	if s.journal == nil {
		return
	}
	journalNumber, err := s.journal.PostEntry(ctx, journalEntry(payment, assessment))
	if err != nil {
		s.log.WithError(err).WithField("payment_id", payment.ID.String()).Warn("journal posting failed, payment retained as journal-pending")
		return
	}
	if _, err := s.paymentRepo.SetJournalNumber(ctx, payment.ID, journalNumber); err != nil {
		s.log.WithError(err).WithField("payment_id", payment.ID.String()).Warn("failed to store journal number")
		return
	}
	payment.JournalNumber = &journalNumber
}

func journalEntry(payment *model.Payment, assessment *model.Assessment) journal.EntryRequest {
	narration := fmt.Sprintf("Advance tax %s challan %s", assessment.FinancialYear, payment.ChallanNumber)
	if payment.Quarter != nil {
		narration = fmt.Sprintf("Advance tax %s Q%d challan %s", assessment.FinancialYear, *payment.Quarter, payment.ChallanNumber)
	}
	return journal.EntryRequest{
		PaymentID:     payment.ID.String(),
		AssessmentID:  assessment.ID.String(),
		CompanyID:     assessment.CompanyID.String(),
		FinancialYear: assessment.FinancialYear,
		PaymentDate:   payment.PaymentDate.Format("2006-01-02"),
		Amount:        payment.Amount,
		ChallanNumber: payment.ChallanNumber,
		Narration:     narration,
	}
}

func (s *paymentService) publish(event string, data interface{}) {
	if s.events != nil {
		s.events.Publish(event, data)
	}
}

func isBsrCode(code string) bool {
	if len(code) != 7 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func toPaymentResponse(p *model.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:             p.ID.String(),
		AssessmentID:   p.AssessmentID.String(),
		Quarter:        p.Quarter,
		PaymentDate:    p.PaymentDate.Format("2006-01-02"),
		Amount:         p.Amount.StringFixed(2),
		ChallanNumber:  p.ChallanNumber,
		BsrCode:        p.BsrCode,
		PaymentMode:    p.PaymentMode,
		JournalNumber:  p.JournalNumber,
		JournalPending: p.JournalNumber == nil,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
	if p.ScheduleEntryID != nil {
		id := p.ScheduleEntryID.String()
		resp.ScheduleEntryID = &id
	}
	return resp
}
