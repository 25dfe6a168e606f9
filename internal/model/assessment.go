package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Assessment status enum constants
const (
	AssessmentDraft     = "DRAFT"
	AssessmentActive    = "ACTIVE"
	AssessmentFinalized = "FINALIZED"
)

// Assessment is the advance-tax position of one company for one financial
// year. Derived columns are snapshots recomputed from the input columns and
// the regime table; they are never written directly by callers.
type Assessment struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assessments_company_fy" json:"company_id"`
	FinancialYear string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_assessments_company_fy" json:"financial_year"` // e.g. 2025-26
	TaxRegime     string    `gorm:"type:varchar(10);not null;default:'NORMAL'" json:"tax_regime"`                           // NORMAL, 115BAA, 115BAB
	Status        string    `gorm:"type:varchar(10);not null;default:'DRAFT';index" json:"status"`

	// Year-to-date actuals
	YtdRevenue     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"ytd_revenue"`
	YtdExpenses    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"ytd_expenses"`
	YtdThroughDate *time.Time      `gorm:"type:date" json:"ytd_through_date"`

	// Editable projections for the remainder of the year
	ProjectedAdditionalRevenue  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"projected_additional_revenue"`
	ProjectedAdditionalExpenses decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"projected_additional_expenses"`
	ProjectedDepreciation       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"projected_depreciation"`
	ProjectedOtherIncome        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"projected_other_income"`

	// Reconciliation additions
	DepreciationAddback           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"depreciation_addback"`
	DisallowedCashPayments        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"disallowed_cash_payments"`
	DisallowedGratuityProvision   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"disallowed_gratuity_provision"`
	DisallowedUnpaidStatutoryDues decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"disallowed_unpaid_statutory_dues"`
	OtherDisallowances            decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"other_disallowances"`

	// Reconciliation deductions
	TaxDepreciation decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_depreciation"`
	Deduction80C    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"deduction_80c"`
	Deduction80D    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"deduction_80d"`
	OtherDeductions decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"other_deductions"`

	// Prepaid credits
	TdsReceivable decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tds_receivable"`
	TcsCredit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tcs_credit"`

	// Derived snapshot
	BookProfit        decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"book_profit"`
	TotalAdditions    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_additions"`
	TotalDeductions   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_deductions"`
	TaxableIncome     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"taxable_income"`
	BaseTax           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"base_tax"`
	Surcharge         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"surcharge"`
	Cess              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"cess"`
	TotalTaxLiability decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_tax_liability"`
	NetTaxPayable     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"net_tax_payable"`

	// Section 234B snapshot, written at finalization
	Shortfall234B decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"shortfall_234b"`
	Months234B    int             `gorm:"not null;default:0" json:"months_234b"`
	Interest234B  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"interest_234b"`
	FinalizedAt   *time.Time      `json:"finalized_at"`

	Schedule  []ScheduleEntry `gorm:"foreignKey:AssessmentID" json:"schedule,omitempty"`
	CreatedBy *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
