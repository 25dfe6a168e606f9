package service

import (
	"context"
	"fmt"

	"taxengine/internal/model"
	"taxengine/internal/repository"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, action, entityID string, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetAuditLogs retrieves paginated audit records, optionally filtered by
// action or entity. A blank user_id marks system-initiated writes.
func (s *auditService) GetAuditLogs(ctx context.Context, action, entityID string, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.auditRepo.List(ctx, action, entityID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		userID := ""
		if l.UserID != nil {
			userID = l.UserID.String()
		}
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			UserID:     userID,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return res, total, nil
}

// AuditActions lists the action codes the engine writes, for filter
// dropdowns.
func AuditActions() []string {
	return []string{
		model.ActionCreateAssessment,
		model.ActionUpdateAssessment,
		model.ActionActivateAssessment,
		model.ActionFinalizeAssessment,
		model.ActionRefreshYtd,
		model.ActionRecalculate,
		model.ActionRecordPayment,
		model.ActionRetryJournal,
		model.ActionRunScenario,
		model.ActionDeleteScenario,
	}
}
