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

// RunScenarioRequest holds the signed what-if deltas. Empty fields apply no
// adjustment.
type RunScenarioRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	RevenueAdjustment string `json:"revenue_adjustment"`
	ExpenseAdjustment string `json:"expense_adjustment"`
	CapexImpact       string `json:"capex_impact"`
	PayrollChange     string `json:"payroll_change"`
	OtherAdjustments  string `json:"other_adjustments"`

	// IncludeSchedulePreview adds a hypothetical quarterly plan for the
	// scenario's net payable to the response. The preview is never persisted.
	IncludeSchedulePreview bool `json:"include_schedule_preview"`
}

type ScenarioResponse struct {
	ID           string `json:"id"`
	AssessmentID string `json:"assessment_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`

	RevenueAdjustment string `json:"revenue_adjustment"`
	ExpenseAdjustment string `json:"expense_adjustment"`
	CapexImpact       string `json:"capex_impact"`
	PayrollChange     string `json:"payroll_change"`
	OtherAdjustments  string `json:"other_adjustments"`

	TaxableIncome     string `json:"taxable_income"`
	TotalTaxLiability string `json:"total_tax_liability"`
	NetTaxPayable     string `json:"net_tax_payable"`
	VarianceFromBase  string `json:"variance_from_base"`

	SchedulePreview []SchedulePreviewEntry `json:"schedule_preview,omitempty"`

	CreatedAt string `json:"created_at"`
}

// SchedulePreviewEntry is one quarter of a scenario's hypothetical schedule,
// with the deferment interest that would accrue if nothing were paid.
type SchedulePreviewEntry struct {
	Quarter          int    `json:"quarter"`
	DueDate          string `json:"due_date"`
	CumulativeTarget string `json:"cumulative_target"`
	TaxPayable       string `json:"tax_payable"`
	Indicative234C   string `json:"indicative_234c"`
}

type ScenarioService interface {
	RunScenario(ctx context.Context, assessmentID, userID string, req RunScenarioRequest) (ScenarioResponse, error)
	ListScenarios(ctx context.Context, assessmentID string) ([]ScenarioResponse, error)
	DeleteScenario(ctx context.Context, scenarioID, userID string) error
}

type scenarioService struct {
	scenarioRepo   repository.ScenarioRepository
	assessmentRepo repository.AssessmentRepository
	auditRepo      repository.AuditRepository
	txManager      repository.TransactionManager
	engine         computeEngine
	clock          clock.Clock
	events         EventPublisher
	log            *logrus.Logger
}

func NewScenarioService(
	scenarioRepo repository.ScenarioRepository,
	assessmentRepo repository.AssessmentRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	rules calculation.Rules,
	clk clock.Clock,
	events EventPublisher,
	log *logrus.Logger,
) ScenarioService {
	return &scenarioService{
		scenarioRepo:   scenarioRepo,
		assessmentRepo: assessmentRepo,
		auditRepo:      auditRepo,
		txManager:      txManager,
		engine:         newComputeEngine(rules),
		clock:          clk,
		events:         events,
		log:            log,
	}
}

// RunScenario computes a what-if over the assessment's current inputs and
// saves the outcome. The base assessment is read-only here, so scenarios
// work in any lifecycle state, finalized included.
func (s *scenarioService) RunScenario(ctx context.Context, assessmentID, userID string, req RunScenarioRequest) (ScenarioResponse, error) {
	aID, err := uuid.Parse(assessmentID)
	if err != nil {
		return ScenarioResponse{}, apperr.Validation("assessment_id", "must be a valid UUID")
	}

	assessment, err := s.assessmentRepo.FindByID(ctx, aID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScenarioResponse{}, apperr.NotFound("assessment")
		}
		return ScenarioResponse{}, fmt.Errorf("failed to fetch assessment: %w", err)
	}

	deltas := calculation.ScenarioDeltas{}
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"revenue_adjustment", req.RevenueAdjustment, &deltas.RevenueAdjustment},
		{"expense_adjustment", req.ExpenseAdjustment, &deltas.ExpenseAdjustment},
		{"capex_impact", req.CapexImpact, &deltas.CapexImpact},
		{"payroll_change", req.PayrollChange, &deltas.PayrollChange},
		{"other_adjustments", req.OtherAdjustments, &deltas.OtherAdjustments},
	} {
		d, parseErr := parseSignedAmount(f.name, f.raw)
		if parseErr != nil {
			return ScenarioResponse{}, parseErr
		}
		*f.dst = d
	}

	rates, ok := s.engine.rules.RatesFor(assessment.TaxRegime)
	if !ok {
		return ScenarioResponse{}, apperr.Validationf("tax_regime", "unknown regime %s", assessment.TaxRegime)
	}

	outcome := calculation.RunScenario(s.engine.inputsOf(assessment), deltas, rates, assessment.TotalTaxLiability)

	scenario := &model.Scenario{
		AssessmentID:      assessment.ID,
		Name:              req.Name,
		Description:       req.Description,
		RevenueAdjustment: deltas.RevenueAdjustment,
		ExpenseAdjustment: deltas.ExpenseAdjustment,
		CapexImpact:       deltas.CapexImpact,
		PayrollChange:     deltas.PayrollChange,
		OtherAdjustments:  deltas.OtherAdjustments,
		TaxableIncome:     outcome.Statement.TaxableIncome,
		TotalTaxLiability: outcome.Liability.TotalTaxLiability,
		NetTaxPayable:     outcome.Liability.NetTaxPayable,
		VarianceFromBase:  outcome.VarianceFromBase,
		CreatedBy:         parseUserID(userID),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.scenarioRepo.Create(txCtx, scenario); createErr != nil {
			return fmt.Errorf("failed to create scenario: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"scenario_id":        scenario.ID.String(),
			"name":               scenario.Name,
			"variance_from_base": scenario.VarianceFromBase.StringFixed(2),
		})
		audit := &model.AuditLog{
			UserID:     scenario.CreatedBy,
			Action:     model.ActionRunScenario,
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
		return ScenarioResponse{}, err
	}

	resp := toScenarioResponse(scenario)
	if req.IncludeSchedulePreview {
		preview, previewErr := s.schedulePreview(assessment.FinancialYear, outcome.Liability.NetTaxPayable)
		if previewErr != nil {
			return ScenarioResponse{}, previewErr
		}
		resp.SchedulePreview = preview
	}

	s.publish(EventScenarioCreated, map[string]interface{}{
		"assessment_id": assessment.ID.String(),
		"scenario_id":   scenario.ID.String(),
		"name":          scenario.Name,
	})
	return resp, nil
}

func (s *scenarioService) ListScenarios(ctx context.Context, assessmentID string) ([]ScenarioResponse, error) {
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

	scenarios, err := s.scenarioRepo.ListByAssessment(ctx, aID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}

	result := make([]ScenarioResponse, 0, len(scenarios))
	for i := range scenarios {
		result = append(result, toScenarioResponse(&scenarios[i]))
	}
	return result, nil
}

// DeleteScenario removes a saved what-if. Deleting a scenario never affects
// the assessment it was run against.
func (s *scenarioService) DeleteScenario(ctx context.Context, scenarioID, userID string) error {
	sID, err := uuid.Parse(scenarioID)
	if err != nil {
		return apperr.Validation("scenario_id", "must be a valid UUID")
	}

	scenario, err := s.scenarioRepo.FindByID(ctx, sID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("scenario")
		}
		return fmt.Errorf("failed to fetch scenario: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if delErr := s.scenarioRepo.Delete(txCtx, scenario.ID); delErr != nil {
			return fmt.Errorf("failed to delete scenario: %w", delErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"scenario_id": scenario.ID.String(),
			"name":        scenario.Name,
		})
		audit := &model.AuditLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDeleteScenario,
			EntityID:   scenario.AssessmentID.String(),
			EntityName: scenario.Name,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(EventScenarioDeleted, map[string]interface{}{
		"assessment_id": scenario.AssessmentID.String(),
		"scenario_id":   scenario.ID.String(),
	})
	return nil
}

// schedulePreview spreads the scenario's net payable across the year's
// installments with no payment history, so the interest column shows the
// full deferment charge per quarter.
func (s *scenarioService) schedulePreview(financialYear string, netTaxPayable decimal.Decimal) ([]SchedulePreviewEntry, error) {
	fy, err := calculation.ParseFinancialYear(financialYear)
	if err != nil {
		return nil, apperr.Validation("financial_year", err.Error())
	}

	sc := calculation.NewScheduleCalculator(s.engine.rules.Installments)
	plan := sc.Plan(netTaxPayable, fy)
	statuses := sc.Apply(plan, nil, s.clock.Today(), false)
	lines, _ := calculation.NewInterestCalculator(s.engine.rules.Interest).Deferment234C(statuses)

	preview := make([]SchedulePreviewEntry, 0, len(plan))
	for i, inst := range plan {
		preview = append(preview, SchedulePreviewEntry{
			Quarter:          inst.Quarter,
			DueDate:          inst.DueDate.Format("2006-01-02"),
			CumulativeTarget: inst.CumulativeTarget.StringFixed(2),
			TaxPayable:       inst.TaxPayable.StringFixed(2),
			Indicative234C:   lines[i].Interest.StringFixed(2),
		})
	}
	return preview, nil
}

func (s *scenarioService) publish(event string, data interface{}) {
	if s.events != nil {
		s.events.Publish(event, data)
	}
}

func parseSignedAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperr.Validationf(field, "invalid amount %q", raw)
	}
	return d.Round(2), nil
}

func toScenarioResponse(sc *model.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ID:           sc.ID.String(),
		AssessmentID: sc.AssessmentID.String(),
		Name:         sc.Name,
		Description:  sc.Description,

		RevenueAdjustment: sc.RevenueAdjustment.StringFixed(2),
		ExpenseAdjustment: sc.ExpenseAdjustment.StringFixed(2),
		CapexImpact:       sc.CapexImpact.StringFixed(2),
		PayrollChange:     sc.PayrollChange.StringFixed(2),
		OtherAdjustments:  sc.OtherAdjustments.StringFixed(2),

		TaxableIncome:     sc.TaxableIncome.StringFixed(2),
		TotalTaxLiability: sc.TotalTaxLiability.StringFixed(2),
		NetTaxPayable:     sc.NetTaxPayable.StringFixed(2),
		VarianceFromBase:  sc.VarianceFromBase.StringFixed(2),

		CreatedAt: sc.CreatedAt.Format(time.RFC3339),
	}
}
