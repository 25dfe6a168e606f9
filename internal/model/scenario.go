package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scenario is a saved what-if projection against an assessment. The delta
// columns record what was varied; the outcome columns are computed from the
// assessment's inputs with the deltas applied and never touch the assessment
// itself.
type Scenario struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssessmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"assessment_id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`

	// Deltas applied on top of the assessment's inputs
	RevenueAdjustment decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"revenue_adjustment"`
	ExpenseAdjustment decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"expense_adjustment"`
	CapexImpact       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"capex_impact"`
	PayrollChange     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"payroll_change"`
	OtherAdjustments  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"other_adjustments"`

	// Computed outcome
	TaxableIncome     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"taxable_income"`
	TotalTaxLiability decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_tax_liability"`
	NetTaxPayable     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"net_tax_payable"`
	VarianceFromBase  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"variance_from_base"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}
