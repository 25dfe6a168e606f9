package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateAssessment   = "CREATE_ASSESSMENT"
	ActionUpdateAssessment   = "UPDATE_ASSESSMENT"
	ActionActivateAssessment = "ACTIVATE_ASSESSMENT"
	ActionFinalizeAssessment = "FINALIZE_ASSESSMENT"
	ActionRefreshYtd         = "REFRESH_YTD"
	ActionRecalculate        = "RECALCULATE_SCHEDULE"

	// Payment and scenario actions
	ActionRecordPayment  = "RECORD_PAYMENT"
	ActionRetryJournal   = "RETRY_JOURNAL_POST"
	ActionRunScenario    = "RUN_SCENARIO"
	ActionDeleteScenario = "DELETE_SCENARIO"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
