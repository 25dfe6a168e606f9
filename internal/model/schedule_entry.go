package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Schedule entry payment status enum constants
const (
	SchedulePending = "PENDING"
	SchedulePartial = "PARTIAL"
	SchedulePaid    = "PAID"
)

// ScheduleEntry is one quarterly installment of an assessment's payment
// schedule. The four rows of an assessment are regenerated wholesale on every
// recomputation; they carry no identity of their own across recomputes.
type ScheduleEntry struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssessmentID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_assessment_quarter" json:"assessment_id"`
	Quarter          int             `gorm:"not null;uniqueIndex:idx_schedule_assessment_quarter" json:"quarter"` // 1..4
	DueDate          time.Time       `gorm:"type:date;not null" json:"due_date"`
	CumulativePct    decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"cumulative_pct"`
	CumulativeTarget decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cumulative_target"`
	TaxPayable       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_payable"`
	TaxPaid          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_paid"`
	Shortfall        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"shortfall"`
	Interest234C     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"interest_234c"`
	PaymentStatus    string          `gorm:"type:varchar(10);not null;default:'PENDING'" json:"payment_status"` // PENDING, PARTIAL, PAID
	IsOverdue        bool            `gorm:"not null;default:false" json:"is_overdue"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
