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
	"taxengine/internal/model"
	"taxengine/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateAssessmentRequest struct {
	CompanyID     string `json:"company_id" binding:"required"`
	FinancialYear string `json:"financial_year" binding:"required"` // e.g. 2025-26
	TaxRegime     string `json:"tax_regime"`                        // defaults to NORMAL

	YtdRevenue     string `json:"ytd_revenue"`
	YtdExpenses    string `json:"ytd_expenses"`
	YtdThroughDate string `json:"ytd_through_date"` // YYYY-MM-DD

	ProjectedAdditionalRevenue  string `json:"projected_additional_revenue"`
	ProjectedAdditionalExpenses string `json:"projected_additional_expenses"`
	ProjectedDepreciation       string `json:"projected_depreciation"`
	ProjectedOtherIncome        string `json:"projected_other_income"`

	DepreciationAddback           string `json:"depreciation_addback"`
	DisallowedCashPayments        string `json:"disallowed_cash_payments"`
	DisallowedGratuityProvision   string `json:"disallowed_gratuity_provision"`
	DisallowedUnpaidStatutoryDues string `json:"disallowed_unpaid_statutory_dues"`
	OtherDisallowances            string `json:"other_disallowances"`

	TaxDepreciation string `json:"tax_depreciation"`
	Deduction80C    string `json:"deduction_80c"`
	Deduction80D    string `json:"deduction_80d"`
	OtherDeductions string `json:"other_deductions"`

	TdsReceivable string `json:"tds_receivable"`
	TcsCredit     string `json:"tcs_credit"`
}

// UpdateAssessmentRequest edits projections, reconciliation inputs, credits,
// or the regime. Nil fields are left unchanged; YTD actuals move only
// through RefreshYtd.
type UpdateAssessmentRequest struct {
	TaxRegime *string `json:"tax_regime"`

	ProjectedAdditionalRevenue  *string `json:"projected_additional_revenue"`
	ProjectedAdditionalExpenses *string `json:"projected_additional_expenses"`
	ProjectedDepreciation       *string `json:"projected_depreciation"`
	ProjectedOtherIncome        *string `json:"projected_other_income"`

	DepreciationAddback           *string `json:"depreciation_addback"`
	DisallowedCashPayments        *string `json:"disallowed_cash_payments"`
	DisallowedGratuityProvision   *string `json:"disallowed_gratuity_provision"`
	DisallowedUnpaidStatutoryDues *string `json:"disallowed_unpaid_statutory_dues"`
	OtherDisallowances            *string `json:"other_disallowances"`

	TaxDepreciation *string `json:"tax_depreciation"`
	Deduction80C    *string `json:"deduction_80c"`
	Deduction80D    *string `json:"deduction_80d"`
	OtherDeductions *string `json:"other_deductions"`

	TdsReceivable *string `json:"tds_receivable"`
	TcsCredit     *string `json:"tcs_credit"`
}

type RefreshYtdRequest struct {
	YtdRevenue     string `json:"ytd_revenue" binding:"required"`
	YtdExpenses    string `json:"ytd_expenses" binding:"required"`
	YtdThroughDate string `json:"ytd_through_date" binding:"required"` // YYYY-MM-DD

	// AutoProjectFromTrend re-derives the remaining-year revenue and expense
	// projections from the actuals' monthly run rate.
	AutoProjectFromTrend bool `json:"auto_project_from_trend"`
}

type AssessmentListFilter struct {
	CompanyID     string
	FinancialYear string
	Status        string
	TaxRegime     string
	Page          int
	Limit         int
}

type AssessmentResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	CompanyName   string `json:"company_name,omitempty"`
	FinancialYear string `json:"financial_year"`
	TaxRegime     string `json:"tax_regime"`
	Status        string `json:"status"`

	YtdRevenue     string  `json:"ytd_revenue"`
	YtdExpenses    string  `json:"ytd_expenses"`
	YtdThroughDate *string `json:"ytd_through_date"`

	ProjectedAdditionalRevenue  string `json:"projected_additional_revenue"`
	ProjectedAdditionalExpenses string `json:"projected_additional_expenses"`
	ProjectedDepreciation       string `json:"projected_depreciation"`
	ProjectedOtherIncome        string `json:"projected_other_income"`

	DepreciationAddback           string `json:"depreciation_addback"`
	DisallowedCashPayments        string `json:"disallowed_cash_payments"`
	DisallowedGratuityProvision   string `json:"disallowed_gratuity_provision"`
	DisallowedUnpaidStatutoryDues string `json:"disallowed_unpaid_statutory_dues"`
	OtherDisallowances            string `json:"other_disallowances"`

	TaxDepreciation string `json:"tax_depreciation"`
	Deduction80C    string `json:"deduction_80c"`
	Deduction80D    string `json:"deduction_80d"`
	OtherDeductions string `json:"other_deductions"`

	TdsReceivable string `json:"tds_receivable"`
	TcsCredit     string `json:"tcs_credit"`

	BookProfit        string `json:"book_profit"`
	TotalAdditions    string `json:"total_additions"`
	TotalDeductions   string `json:"total_deductions"`
	TaxableIncome     string `json:"taxable_income"`
	BaseTax           string `json:"base_tax"`
	Surcharge         string `json:"surcharge"`
	Cess              string `json:"cess"`
	TotalTaxLiability string `json:"total_tax_liability"`
	NetTaxPayable     string `json:"net_tax_payable"`

	Shortfall234B string  `json:"shortfall_234b"`
	Months234B    int     `json:"months_234b"`
	Interest234B  string  `json:"interest_234b"`
	FinalizedAt   *string `json:"finalized_at"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ScheduleEntryResponse struct {
	ID               string `json:"id"`
	Quarter          int    `json:"quarter"`
	DueDate          string `json:"due_date"`
	CumulativePct    string `json:"cumulative_pct"`
	CumulativeTarget string `json:"cumulative_target"`
	TaxPayable       string `json:"tax_payable"`
	TaxPaid          string `json:"tax_paid"`
	Shortfall        string `json:"shortfall"`
	Interest234C     string `json:"interest_234c"`
	PaymentStatus    string `json:"payment_status"`
	IsOverdue        bool   `json:"is_overdue"`
}

type QuarterInterestResponse struct {
	Quarter   int    `json:"quarter"`
	DueDate   string `json:"due_date"`
	Shortfall string `json:"shortfall"`
	Months    int    `json:"months"`
	Interest  string `json:"interest"`
}

type InterestResponse struct {
	Quarters          []QuarterInterestResponse `json:"quarters"`
	TotalInterest234C string                    `json:"total_interest_234c"`

	AssessedTax     string `json:"assessed_tax"`
	AdvanceTaxPaid  string `json:"advance_tax_paid"`
	Shortfall234B   string `json:"shortfall_234b"`
	Months234B      int    `json:"months_234b"`
	Interest234B    string `json:"interest_234b"`
	ComputedThrough string `json:"computed_through"`

	TotalInterest string `json:"total_interest"`
}

// --- Interface ---

type AssessmentService interface {
	CreateAssessment(ctx context.Context, userID string, req CreateAssessmentRequest) (AssessmentResponse, error)
	GetAssessment(ctx context.Context, id string) (AssessmentResponse, error)
	ListAssessments(ctx context.Context, filter AssessmentListFilter) ([]AssessmentResponse, int64, error)
	UpdateAssessment(ctx context.Context, id, userID string, req UpdateAssessmentRequest) (AssessmentResponse, error)
	ActivateAssessment(ctx context.Context, id, userID string) (AssessmentResponse, error)
	FinalizeAssessment(ctx context.Context, id, userID string) (AssessmentResponse, error)
	RefreshYtd(ctx context.Context, id, userID string, req RefreshYtdRequest) (AssessmentResponse, error)
	RecalculateSchedules(ctx context.Context, id, userID string) (AssessmentResponse, error)
	RefreshActiveSchedules(ctx context.Context) (int, error)
	GetSchedule(ctx context.Context, id string) ([]ScheduleEntryResponse, error)
	GetInterest(ctx context.Context, id string) (InterestResponse, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	scheduleRepo   repository.ScheduleRepository
	paymentRepo    repository.PaymentRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	engine         computeEngine
	clock          clock.Clock
	companies      CompanyDirectory
	events         EventPublisher
	log            *logrus.Logger
}

func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	scheduleRepo repository.ScheduleRepository,
	paymentRepo repository.PaymentRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	rules calculation.Rules,
	clk clock.Clock,
	companies CompanyDirectory,
	events EventPublisher,
	log *logrus.Logger,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		scheduleRepo:   scheduleRepo,
		paymentRepo:    paymentRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		engine:         newComputeEngine(rules),
		clock:          clk,
		companies:      companies,
		events:         events,
		log:            log,
	}
}

// --- Implementation ---

func (s *assessmentService) CreateAssessment(ctx context.Context, userID string, req CreateAssessmentRequest) (AssessmentResponse, error) {
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return AssessmentResponse{}, apperr.Validation("company_id", "must be a valid UUID")
	}

	fy, err := calculation.ParseFinancialYear(req.FinancialYear)
	if err != nil {
		return AssessmentResponse{}, apperr.Validation("financial_year", err.Error())
	}

	regime := req.TaxRegime
	if regime == "" {
		regime = calculation.RegimeNormal
	}

	assessment := &model.Assessment{
		CompanyID:     companyID,
		FinancialYear: fy.Label(),
		TaxRegime:     regime,
		Status:        model.AssessmentDraft,
		CreatedBy:     parseUserID(userID),
	}

	if err := assignMoney([]moneyField{
		{"ytd_revenue", req.YtdRevenue, &assessment.YtdRevenue},
		{"ytd_expenses", req.YtdExpenses, &assessment.YtdExpenses},
		{"projected_additional_revenue", req.ProjectedAdditionalRevenue, &assessment.ProjectedAdditionalRevenue},
		{"projected_additional_expenses", req.ProjectedAdditionalExpenses, &assessment.ProjectedAdditionalExpenses},
		{"projected_depreciation", req.ProjectedDepreciation, &assessment.ProjectedDepreciation},
		{"projected_other_income", req.ProjectedOtherIncome, &assessment.ProjectedOtherIncome},
		{"depreciation_addback", req.DepreciationAddback, &assessment.DepreciationAddback},
		{"disallowed_cash_payments", req.DisallowedCashPayments, &assessment.DisallowedCashPayments},
		{"disallowed_gratuity_provision", req.DisallowedGratuityProvision, &assessment.DisallowedGratuityProvision},
		{"disallowed_unpaid_statutory_dues", req.DisallowedUnpaidStatutoryDues, &assessment.DisallowedUnpaidStatutoryDues},
		{"other_disallowances", req.OtherDisallowances, &assessment.OtherDisallowances},
		{"tax_depreciation", req.TaxDepreciation, &assessment.TaxDepreciation},
		{"deduction_80c", req.Deduction80C, &assessment.Deduction80C},
		{"deduction_80d", req.Deduction80D, &assessment.Deduction80D},
		{"other_deductions", req.OtherDeductions, &assessment.OtherDeductions},
		{"tds_receivable", req.TdsReceivable, &assessment.TdsReceivable},
		{"tcs_credit", req.TcsCredit, &assessment.TcsCredit},
	}); err != nil {
		return AssessmentResponse{}, err
	}

	if req.YtdThroughDate != "" {
		through, parseErr := parseDate("ytd_through_date", req.YtdThroughDate)
		if parseErr != nil {
			return AssessmentResponse{}, parseErr
		}
		if !fy.Contains(through) {
			return AssessmentResponse{}, apperr.Validation("ytd_through_date", "must fall within the financial year")
		}
		assessment.YtdThroughDate = &through
	}

	if _, err := s.assessmentRepo.FindByCompanyAndYear(ctx, companyID, fy.Label()); err == nil {
		return AssessmentResponse{}, fmt.Errorf("an assessment for this company and financial year already exists: %w", apperr.ErrStateConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AssessmentResponse{}, fmt.Errorf("failed to check for existing assessment: %w", err)
	}

	if err := s.engine.derive(assessment); err != nil {
		return AssessmentResponse{}, err
	}
	entries, err := s.engine.buildSchedule(assessment, nil, s.clock.Today())
	if err != nil {
		return AssessmentResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.assessmentRepo.Create(txCtx, assessment); createErr != nil {
			return fmt.Errorf("failed to create assessment: %w", createErr)
		}
		for i := range entries {
			entries[i].AssessmentID = assessment.ID
		}
		if repErr := s.scheduleRepo.Replace(txCtx, assessment.ID, entries); repErr != nil {
			return fmt.Errorf("failed to write schedule: %w", repErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"company_id":      assessment.CompanyID.String(),
			"financial_year":  assessment.FinancialYear,
			"tax_regime":      assessment.TaxRegime,
			"net_tax_payable": assessment.NetTaxPayable.StringFixed(2),
		})
		audit := &model.AuditLog{
			UserID:     assessment.CreatedBy,
			Action:     model.ActionCreateAssessment,
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
		return AssessmentResponse{}, err
	}

	s.publish(EventAssessmentCreated, map[string]interface{}{
		"assessment_id":  assessment.ID.String(),
		"company_id":     assessment.CompanyID.String(),
		"financial_year": assessment.FinancialYear,
	})
	return s.respond(ctx, assessment), nil
}

func (s *assessmentService) GetAssessment(ctx context.Context, id string) (AssessmentResponse, error) {
	assessment, err := s.find(ctx, id)
	if err != nil {
		return AssessmentResponse{}, err
	}
	return s.respond(ctx, assessment), nil
}

func (s *assessmentService) ListAssessments(ctx context.Context, filter AssessmentListFilter) ([]AssessmentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	repoFilter := repository.AssessmentFilter{
		FinancialYear: filter.FinancialYear,
		Status:        filter.Status,
		TaxRegime:     filter.TaxRegime,
	}
	if filter.CompanyID != "" {
		companyID, err := uuid.Parse(filter.CompanyID)
		if err != nil {
			return nil, 0, apperr.Validation("company_id", "must be a valid UUID")
		}
		repoFilter.CompanyID = &companyID
	}

	assessments, total, err := s.assessmentRepo.List(ctx, repoFilter, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assessments: %w", err)
	}

	result := make([]AssessmentResponse, 0, len(assessments))
	for i := range assessments {
		result = append(result, toAssessmentResponse(&assessments[i]))
	}
	return result, total, nil
}

func (s *assessmentService) UpdateAssessment(ctx context.Context, id, userID string, req UpdateAssessmentRequest) (AssessmentResponse, error) {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return AssessmentResponse{}, apperr.Validation("id", "must be a valid UUID")
	}

	var assessment *model.Assessment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if lockErr := s.txManager.LockAssessment(txCtx, assessmentID); lockErr != nil {
			return fmt.Errorf("failed to lock assessment: %w", lockErr)
		}

		var findErr error
		assessment, findErr = s.findByUUID(txCtx, assessmentID)
		if findErr != nil {
			return findErr
		}
		if assessment.Status == model.AssessmentFinalized {
			return apperr.StateConflict("assessment", assessment.Status, "update")
		}

		if req.TaxRegime != nil {
			assessment.TaxRegime = *req.TaxRegime
		}
		if patchErr := patchMoney([]moneyPatch{
			{"projected_additional_revenue", req.ProjectedAdditionalRevenue, &assessment.ProjectedAdditionalRevenue},
			{"projected_additional_expenses", req.ProjectedAdditionalExpenses, &assessment.ProjectedAdditionalExpenses},
			{"projected_depreciation", req.ProjectedDepreciation, &assessment.ProjectedDepreciation},
			{"projected_other_income", req.ProjectedOtherIncome, &assessment.ProjectedOtherIncome},
			{"depreciation_addback", req.DepreciationAddback, &assessment.DepreciationAddback},
			{"disallowed_cash_payments", req.DisallowedCashPayments, &assessment.DisallowedCashPayments},
			{"disallowed_gratuity_provision", req.DisallowedGratuityProvision, &assessment.DisallowedGratuityProvision},
			{"disallowed_unpaid_statutory_dues", req.DisallowedUnpaidStatutoryDues, &assessment.DisallowedUnpaidStatutoryDues},
			{"other_disallowances", req.OtherDisallowances, &assessment.OtherDisallowances},
			{"tax_depreciation", req.TaxDepreciation, &assessment.TaxDepreciation},
			{"deduction_80c", req.Deduction80C, &assessment.Deduction80C},
			{"deduction_80d", req.Deduction80D, &assessment.Deduction80D},
			{"other_deductions", req.OtherDeductions, &assessment.OtherDeductions},
			{"tds_receivable", req.TdsReceivable, &assessment.TdsReceivable},
			{"tcs_credit", req.TcsCredit, &assessment.TcsCredit},
		}); patchErr != nil {
			return patchErr
		}

		if recompErr := s.recompute(txCtx, assessment); recompErr != nil {
			return recompErr
		}

		details, _ := json.Marshal(req)
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateAssessment,
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
		return AssessmentResponse{}, err
	}

	s.publish(EventScheduleRecalculated, map[string]interface{}{"assessment_id": assessment.ID.String()})
	return s.respond(ctx, assessment), nil
}

func (s *assessmentService) ActivateAssessment(ctx context.Context, id, userID string) (AssessmentResponse, error) {
	return s.transition(ctx, id, userID, model.AssessmentDraft, model.AssessmentActive)
}

func (s *assessmentService) FinalizeAssessment(ctx context.Context, id, userID string) (AssessmentResponse, error) {
	return s.transition(ctx, id, userID, model.AssessmentActive, model.AssessmentFinalized)
}

// transition moves an assessment one step along draft → active → finalized.
// Both steps run a final recompute under the per-assessment lock before the
// new status takes effect; finalization additionally snapshots Section 234B
// and freezes the row.
func (s *assessmentService) transition(ctx context.Context, id, userID, from, to string) (AssessmentResponse, error) {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return AssessmentResponse{}, apperr.Validation("id", "must be a valid UUID")
	}

	operation := "activate"
	action := model.ActionActivateAssessment
	event := EventAssessmentActivated
	if to == model.AssessmentFinalized {
		operation = "finalize"
		action = model.ActionFinalizeAssessment
		event = EventAssessmentFinalized
	}

	var assessment *model.Assessment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if lockErr := s.txManager.LockAssessment(txCtx, assessmentID); lockErr != nil {
			return fmt.Errorf("failed to lock assessment: %w", lockErr)
		}

		var findErr error
		assessment, findErr = s.findByUUID(txCtx, assessmentID)
		if findErr != nil {
			return findErr
		}
		if assessment.Status != from {
			return apperr.StateConflict("assessment", assessment.Status, operation)
		}

		// The schedule and overdue flags are rebuilt under the target
		// status: activation starts enforcing due dates, finalization
		// freezes the last active evaluation.
		if to == model.AssessmentActive {
			assessment.Status = model.AssessmentActive
		}

		payments, payErr := s.paymentRepo.ListByAssessment(txCtx, assessment.ID)
		if payErr != nil {
			return fmt.Errorf("failed to load payments: %w", payErr)
		}
		if deriveErr := s.engine.derive(assessment); deriveErr != nil {
			return deriveErr
		}
		entries, schedErr := s.engine.buildSchedule(assessment, payments, s.clock.Today())
		if schedErr != nil {
			return schedErr
		}

		if to == model.AssessmentFinalized {
			annual, intErr := s.engine.annual234B(assessment, payments, s.clock.Today())
			if intErr != nil {
				return intErr
			}
			now := s.clock.Now()
			assessment.Shortfall234B = annual.Shortfall
			assessment.Months234B = annual.Months
			assessment.Interest234B = annual.Interest
			assessment.FinalizedAt = &now
			assessment.Status = model.AssessmentFinalized
		}

		if updateErr := s.assessmentRepo.Update(txCtx, assessment); updateErr != nil {
			return fmt.Errorf("failed to update assessment: %w", updateErr)
		}
		if repErr := s.scheduleRepo.Replace(txCtx, assessment.ID, entries); repErr != nil {
			return fmt.Errorf("failed to write schedule: %w", repErr)
		}
		entryIDByQuarter := make(map[int]uuid.UUID, len(entries))
		for _, e := range entries {
			entryIDByQuarter[e.Quarter] = e.ID
		}
		if relinkErr := s.paymentRepo.RelinkScheduleEntries(txCtx, assessment.ID, entryIDByQuarter); relinkErr != nil {
			return fmt.Errorf("failed to relink payments: %w", relinkErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"from": from,
			"to":   to,
		})
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     action,
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
		return AssessmentResponse{}, err
	}

	s.publish(event, map[string]interface{}{
		"assessment_id": assessment.ID.String(),
		"status":        assessment.Status,
	})
	return s.respond(ctx, assessment), nil
}

func (s *assessmentService) RefreshYtd(ctx context.Context, id, userID string, req RefreshYtdRequest) (AssessmentResponse, error) {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return AssessmentResponse{}, apperr.Validation("id", "must be a valid UUID")
	}

	ytdRevenue, err := parseMoney("ytd_revenue", req.YtdRevenue)
	if err != nil {
		return AssessmentResponse{}, err
	}
	ytdExpenses, err := parseMoney("ytd_expenses", req.YtdExpenses)
	if err != nil {
		return AssessmentResponse{}, err
	}
	through, err := parseDate("ytd_through_date", req.YtdThroughDate)
	if err != nil {
		return AssessmentResponse{}, err
	}

	var assessment *model.Assessment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if lockErr := s.txManager.LockAssessment(txCtx, assessmentID); lockErr != nil {
			return fmt.Errorf("failed to lock assessment: %w", lockErr)
		}

		var findErr error
		assessment, findErr = s.findByUUID(txCtx, assessmentID)
		if findErr != nil {
			return findErr
		}
		if assessment.Status == model.AssessmentFinalized {
			return apperr.StateConflict("assessment", assessment.Status, "refresh YTD")
		}

		fy, fyErr := calculation.ParseFinancialYear(assessment.FinancialYear)
		if fyErr != nil {
			return apperr.Validation("financial_year", fyErr.Error())
		}
		if !fy.Contains(through) {
			return apperr.Validation("ytd_through_date", "must fall within the financial year")
		}

		assessment.YtdRevenue = ytdRevenue
		assessment.YtdExpenses = ytdExpenses
		assessment.YtdThroughDate = &through
		if req.AutoProjectFromTrend {
			assessment.ProjectedAdditionalRevenue = calculation.RunRateProjection(ytdRevenue, fy, through)
			assessment.ProjectedAdditionalExpenses = calculation.RunRateProjection(ytdExpenses, fy, through)
		}

		if recompErr := s.recompute(txCtx, assessment); recompErr != nil {
			return recompErr
		}

		details, _ := json.Marshal(map[string]interface{}{
			"ytd_revenue":             req.YtdRevenue,
			"ytd_expenses":            req.YtdExpenses,
			"ytd_through_date":        req.YtdThroughDate,
			"auto_project_from_trend": req.AutoProjectFromTrend,
		})
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionRefreshYtd,
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
		return AssessmentResponse{}, err
	}

	s.publish(EventScheduleRecalculated, map[string]interface{}{"assessment_id": assessment.ID.String()})
	return s.respond(ctx, assessment), nil
}

func (s *assessmentService) RecalculateSchedules(ctx context.Context, id, userID string) (AssessmentResponse, error) {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return AssessmentResponse{}, apperr.Validation("id", "must be a valid UUID")
	}

	assessment, err := s.recalculateOne(ctx, assessmentID, parseUserID(userID))
	if err != nil {
		return AssessmentResponse{}, err
	}

	s.publish(EventScheduleRecalculated, map[string]interface{}{"assessment_id": assessment.ID.String()})
	return s.respond(ctx, assessment), nil
}

// RefreshActiveSchedules recomputes every active assessment, tracking the
// calendar for overdue flags and deferment interest. Called by the daily
// job; failures are logged per assessment and do not stop the sweep.
func (s *assessmentService) RefreshActiveSchedules(ctx context.Context) (int, error) {
	ids, err := s.assessmentRepo.ListActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active assessments: %w", err)
	}

	refreshed := 0
	for _, id := range ids {
		if _, err := s.recalculateOne(ctx, id, nil); err != nil {
			s.log.WithError(err).WithField("assessment_id", id.String()).Warn("scheduled recalculation failed")
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// recalculateOne reruns the full derivation and schedule regeneration for
// one assessment under its lock. Identical history in, identical rows out.
func (s *assessmentService) recalculateOne(ctx context.Context, assessmentID uuid.UUID, userID *uuid.UUID) (*model.Assessment, error) {
	var assessment *model.Assessment
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if lockErr := s.txManager.LockAssessment(txCtx, assessmentID); lockErr != nil {
			return fmt.Errorf("failed to lock assessment: %w", lockErr)
		}

		var findErr error
		assessment, findErr = s.findByUUID(txCtx, assessmentID)
		if findErr != nil {
			return findErr
		}
		if assessment.Status == model.AssessmentFinalized {
			return apperr.StateConflict("assessment", assessment.Status, "recalculate")
		}

		if recompErr := s.recompute(txCtx, assessment); recompErr != nil {
			return recompErr
		}

		details, _ := json.Marshal(map[string]interface{}{
			"net_tax_payable": assessment.NetTaxPayable.StringFixed(2),
		})
		audit := &model.AuditLog{
			UserID:     userID,
			Action:     model.ActionRecalculate,
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
		return nil, err
	}
	return assessment, nil
}

func (s *assessmentService) recompute(txCtx context.Context, assessment *model.Assessment) error {
	_, err := refreshDerived(txCtx, s.engine, s.assessmentRepo, s.scheduleRepo, s.paymentRepo, s.clock, assessment)
	return err
}

func (s *assessmentService) GetSchedule(ctx context.Context, id string) ([]ScheduleEntryResponse, error) {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("id", "must be a valid UUID")
	}

	assessment, err := s.assessmentRepo.FindByIDWithSchedule(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assessment")
		}
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}

	result := make([]ScheduleEntryResponse, 0, len(assessment.Schedule))
	for _, e := range assessment.Schedule {
		result = append(result, toScheduleEntryResponse(e))
	}
	return result, nil
}

func (s *assessmentService) GetInterest(ctx context.Context, id string) (InterestResponse, error) {
	assessment, err := s.find(ctx, id)
	if err != nil {
		return InterestResponse{}, err
	}

	entries, err := s.scheduleRepo.ListByAssessment(ctx, assessment.ID)
	if err != nil {
		return InterestResponse{}, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	resp := InterestResponse{Quarters: make([]QuarterInterestResponse, 0, len(entries))}
	total234C := decimal.Zero
	months234C := s.engine.rules.Interest.DefermentMonths
	for i, e := range entries {
		months := 0
		if i < len(months234C) {
			months = months234C[i]
		}
		resp.Quarters = append(resp.Quarters, QuarterInterestResponse{
			Quarter:   e.Quarter,
			DueDate:   e.DueDate.Format("2006-01-02"),
			Shortfall: e.Shortfall.StringFixed(2),
			Months:    months,
			Interest:  e.Interest234C.StringFixed(2),
		})
		total234C = total234C.Add(e.Interest234C)
	}
	resp.TotalInterest234C = total234C.StringFixed(2)

	var annual calculation.Annual234B
	if assessment.Status == model.AssessmentFinalized {
		// Serve the snapshot taken at finalization; nothing accrues on a
		// frozen assessment.
		payments, payErr := s.paymentRepo.ListByAssessment(ctx, assessment.ID)
		if payErr != nil {
			return InterestResponse{}, fmt.Errorf("failed to load payments: %w", payErr)
		}
		annual = calculation.Annual234B{
			AssessedTax:     assessment.NetTaxPayable,
			AdvanceTaxPaid:  sumWithinYear(payments, assessment.FinancialYear),
			Shortfall:       assessment.Shortfall234B,
			Months:          assessment.Months234B,
			Interest:        assessment.Interest234B,
			ComputedThrough: finalizedDate(assessment, s.clock),
		}
	} else {
		payments, payErr := s.paymentRepo.ListByAssessment(ctx, assessment.ID)
		if payErr != nil {
			return InterestResponse{}, fmt.Errorf("failed to load payments: %w", payErr)
		}
		annual, err = s.engine.annual234B(assessment, payments, s.clock.Today())
		if err != nil {
			return InterestResponse{}, err
		}
	}

	resp.AssessedTax = annual.AssessedTax.StringFixed(2)
	resp.AdvanceTaxPaid = annual.AdvanceTaxPaid.StringFixed(2)
	resp.Shortfall234B = annual.Shortfall.StringFixed(2)
	resp.Months234B = annual.Months
	resp.Interest234B = annual.Interest.StringFixed(2)
	resp.ComputedThrough = annual.ComputedThrough.Format("2006-01-02")
	resp.TotalInterest = total234C.Add(annual.Interest).StringFixed(2)
	return resp, nil
}

// --- Helpers ---

func (s *assessmentService) find(ctx context.Context, id string) (*model.Assessment, error) {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("id", "must be a valid UUID")
	}
	return s.findByUUID(ctx, assessmentID)
}

func (s *assessmentService) findByUUID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("assessment")
		}
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}
	return assessment, nil
}

func (s *assessmentService) respond(ctx context.Context, assessment *model.Assessment) AssessmentResponse {
	resp := toAssessmentResponse(assessment)
	if s.companies != nil {
		resp.CompanyName = s.companies.CompanyName(ctx, assessment.CompanyID.String())
	}
	return resp
}

func (s *assessmentService) publish(event string, data interface{}) {
	if s.events != nil {
		s.events.Publish(event, data)
	}
}

// sumWithinYear totals payments dated on or before the financial year end,
// the figure Section 234B treats as advance tax.
func sumWithinYear(payments []model.Payment, financialYear string) decimal.Decimal {
	total := decimal.Zero
	fy, err := calculation.ParseFinancialYear(financialYear)
	if err != nil {
		return total
	}
	for _, p := range payments {
		if !p.PaymentDate.After(fy.End()) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

func finalizedDate(assessment *model.Assessment, clk clock.Clock) time.Time {
	if assessment.FinalizedAt != nil {
		t := assessment.FinalizedAt.UTC()
		return calculation.Date(t.Year(), t.Month(), t.Day())
	}
	return clk.Today()
}

func parseUserID(userID string) *uuid.UUID {
	if parsed, err := uuid.Parse(userID); err == nil {
		return &parsed
	}
	return nil
}

type moneyField struct {
	name string
	raw  string
	dst  *decimal.Decimal
}

// assignMoney parses request amount strings onto model columns. Empty
// strings keep the zero value; amounts are statutory magnitudes, so
// negatives are rejected outright.
func assignMoney(fields []moneyField) error {
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		d, err := parseMoney(f.name, f.raw)
		if err != nil {
			return err
		}
		*f.dst = d
	}
	return nil
}

type moneyPatch struct {
	name string
	raw  *string
	dst  *decimal.Decimal
}

func patchMoney(fields []moneyPatch) error {
	for _, f := range fields {
		if f.raw == nil {
			continue
		}
		d, err := parseMoney(f.name, *f.raw)
		if err != nil {
			return err
		}
		*f.dst = d
	}
	return nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperr.Validationf(field, "invalid amount %q", raw)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, apperr.Validation(field, "amount cannot be negative")
	}
	return d.Round(2), nil
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperr.Validationf(field, "invalid date %q, expected YYYY-MM-DD", raw)
	}
	return calculation.Date(d.Year(), d.Month(), d.Day()), nil
}

// --- Mapping ---

func toAssessmentResponse(a *model.Assessment) AssessmentResponse {
	resp := AssessmentResponse{
		ID:            a.ID.String(),
		CompanyID:     a.CompanyID.String(),
		FinancialYear: a.FinancialYear,
		TaxRegime:     a.TaxRegime,
		Status:        a.Status,

		YtdRevenue:  a.YtdRevenue.StringFixed(2),
		YtdExpenses: a.YtdExpenses.StringFixed(2),

		ProjectedAdditionalRevenue:  a.ProjectedAdditionalRevenue.StringFixed(2),
		ProjectedAdditionalExpenses: a.ProjectedAdditionalExpenses.StringFixed(2),
		ProjectedDepreciation:       a.ProjectedDepreciation.StringFixed(2),
		ProjectedOtherIncome:        a.ProjectedOtherIncome.StringFixed(2),

		DepreciationAddback:           a.DepreciationAddback.StringFixed(2),
		DisallowedCashPayments:        a.DisallowedCashPayments.StringFixed(2),
		DisallowedGratuityProvision:   a.DisallowedGratuityProvision.StringFixed(2),
		DisallowedUnpaidStatutoryDues: a.DisallowedUnpaidStatutoryDues.StringFixed(2),
		OtherDisallowances:            a.OtherDisallowances.StringFixed(2),

		TaxDepreciation: a.TaxDepreciation.StringFixed(2),
		Deduction80C:    a.Deduction80C.StringFixed(2),
		Deduction80D:    a.Deduction80D.StringFixed(2),
		OtherDeductions: a.OtherDeductions.StringFixed(2),

		TdsReceivable: a.TdsReceivable.StringFixed(2),
		TcsCredit:     a.TcsCredit.StringFixed(2),

		BookProfit:        a.BookProfit.StringFixed(2),
		TotalAdditions:    a.TotalAdditions.StringFixed(2),
		TotalDeductions:   a.TotalDeductions.StringFixed(2),
		TaxableIncome:     a.TaxableIncome.StringFixed(2),
		BaseTax:           a.BaseTax.StringFixed(2),
		Surcharge:         a.Surcharge.StringFixed(2),
		Cess:              a.Cess.StringFixed(2),
		TotalTaxLiability: a.TotalTaxLiability.StringFixed(2),
		NetTaxPayable:     a.NetTaxPayable.StringFixed(2),

		Shortfall234B: a.Shortfall234B.StringFixed(2),
		Months234B:    a.Months234B,
		Interest234B:  a.Interest234B.StringFixed(2),

		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}

	if a.YtdThroughDate != nil {
		s := a.YtdThroughDate.Format("2006-01-02")
		resp.YtdThroughDate = &s
	}
	if a.FinalizedAt != nil {
		s := a.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &s
	}
	return resp
}

func toScheduleEntryResponse(e model.ScheduleEntry) ScheduleEntryResponse {
	return ScheduleEntryResponse{
		ID:               e.ID.String(),
		Quarter:          e.Quarter,
		DueDate:          e.DueDate.Format("2006-01-02"),
		CumulativePct:    e.CumulativePct.StringFixed(2),
		CumulativeTarget: e.CumulativeTarget.StringFixed(2),
		TaxPayable:       e.TaxPayable.StringFixed(2),
		TaxPaid:          e.TaxPaid.StringFixed(2),
		Shortfall:        e.Shortfall.StringFixed(2),
		Interest234C:     e.Interest234C.StringFixed(2),
		PaymentStatus:    e.PaymentStatus,
		IsOverdue:        e.IsOverdue,
	}
}
