package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is one advance-tax remittance against an assessment. The economic
// fields are append-only: nothing updates them after insert. JournalNumber
// is backfilled once when the accounting post succeeds, and ScheduleEntryID
// is re-pointed at the row regenerated for its quarter on every schedule
// recomputation so the reference never dangles.
//
// Quarter records which installment the payer designated at the time of
// recording and is the stable half of that designation; fulfillment math
// attributes payments by date and never reads either field.
type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssessmentID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"assessment_id"`
	ScheduleEntryID *uuid.UUID      `gorm:"type:uuid" json:"schedule_entry_id"`
	Quarter         *int            `json:"quarter"`
	PaymentDate     time.Time       `gorm:"type:date;not null;index" json:"payment_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	ChallanNumber   string          `gorm:"type:varchar(50);not null" json:"challan_number"`
	BsrCode         string          `gorm:"type:varchar(7)" json:"bsr_code"`        // 7-digit bank branch code
	PaymentMode     string          `gorm:"type:varchar(20)" json:"payment_mode"`   // e.g. NET_BANKING, CHEQUE
	JournalNumber   *string         `gorm:"type:varchar(50)" json:"journal_number"` // set when the journal post succeeds
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}
