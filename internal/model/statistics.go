package model

import (
	"github.com/shopspring/decimal"
)

// PortfolioStatistics aggregates liability and collection totals across all
// assessments of one financial year
type PortfolioStatistics struct {
	FinancialYear     string          `json:"financial_year"`
	TotalAssessments  int64           `json:"total_assessments"`
	DraftCount        int64           `json:"draft_count"`
	ActiveCount       int64           `json:"active_count"`
	FinalizedCount    int64           `json:"finalized_count"`
	TotalTaxLiability decimal.Decimal `json:"total_tax_liability"`
	TotalNetPayable   decimal.Decimal `json:"total_net_payable"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	OverdueQuarters   int64           `json:"overdue_quarters"`
	TopLiabilities    []LiabilityRank `json:"top_liabilities"`
}

// LiabilityRank represents one assessment ranked by net tax payable
type LiabilityRank struct {
	AssessmentID  string          `json:"assessment_id"`
	CompanyID     string          `json:"company_id"`
	CompanyName   string          `json:"company_name,omitempty"`
	TaxRegime     string          `json:"tax_regime"`
	NetTaxPayable decimal.Decimal `json:"net_tax_payable"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// CollectionsStatistics breaks advance-tax receipts down by month
type CollectionsStatistics struct {
	FinancialYear string            `json:"financial_year"`
	TotalPaid     decimal.Decimal   `json:"total_paid"`
	PaymentCount  int64             `json:"payment_count"`
	Monthly       []MonthCollection `json:"monthly"`
}

// MonthCollection is the receipts total of one calendar month
type MonthCollection struct {
	Month  string          `json:"month"` // e.g. 2025-06
	Amount decimal.Decimal `json:"amount"`
	Count  int64           `json:"count"`
}
