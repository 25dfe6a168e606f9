package repository

import (
	"context"
	"fmt"

	"taxengine/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PortfolioTotalsRow aggregates one financial year's assessments.
type PortfolioTotalsRow struct {
	TotalAssessments  int64           `gorm:"column:total_assessments"`
	DraftCount        int64           `gorm:"column:draft_count"`
	ActiveCount       int64           `gorm:"column:active_count"`
	FinalizedCount    int64           `gorm:"column:finalized_count"`
	TotalTaxLiability decimal.Decimal `gorm:"column:total_tax_liability"`
	TotalNetPayable   decimal.Decimal `gorm:"column:total_net_payable"`
	TotalPaid         decimal.Decimal `gorm:"column:total_paid"`
	TotalOutstanding  decimal.Decimal `gorm:"column:total_outstanding"`
}

// LiabilityRankRow is one assessment ranked by net tax payable.
type LiabilityRankRow struct {
	AssessmentID  string          `gorm:"column:assessment_id"`
	CompanyID     string          `gorm:"column:company_id"`
	TaxRegime     string          `gorm:"column:tax_regime"`
	NetTaxPayable decimal.Decimal `gorm:"column:net_tax_payable"`
	TotalPaid     decimal.Decimal `gorm:"column:total_paid"`
}

// MonthCollectionRow is one calendar month's receipts.
type MonthCollectionRow struct {
	Month  string          `gorm:"column:month"`
	Amount decimal.Decimal `gorm:"column:amount"`
	Count  int64           `gorm:"column:count"`
}

type StatisticsRepository interface {
	PortfolioTotals(ctx context.Context, financialYear string) (*PortfolioTotalsRow, error)
	OverdueQuarterCount(ctx context.Context, financialYear string) (int64, error)
	TopLiabilities(ctx context.Context, financialYear string, limit int) ([]LiabilityRankRow, error)
	MonthlyCollections(ctx context.Context, financialYear string) ([]MonthCollectionRow, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) PortfolioTotals(ctx context.Context, financialYear string) (*PortfolioTotalsRow, error) {
	query := `
		SELECT
			COUNT(*) AS total_assessments,
			COUNT(*) FILTER (WHERE a.status = $2) AS draft_count,
			COUNT(*) FILTER (WHERE a.status = $3) AS active_count,
			COUNT(*) FILTER (WHERE a.status = $4) AS finalized_count,
			COALESCE(SUM(a.total_tax_liability), 0) AS total_tax_liability,
			COALESCE(SUM(a.net_tax_payable), 0) AS total_net_payable,
			COALESCE(SUM(COALESCE(p.paid, 0)), 0) AS total_paid,
			COALESCE(SUM(GREATEST(a.net_tax_payable - COALESCE(p.paid, 0), 0)), 0) AS total_outstanding
		FROM assessments a
		LEFT JOIN (
			SELECT assessment_id, SUM(amount) AS paid FROM payments GROUP BY assessment_id
		) p ON p.assessment_id = a.id
		WHERE a.financial_year = $1
	`

	var row PortfolioTotalsRow
	if err := r.db.WithContext(ctx).Raw(query,
		financialYear, model.AssessmentDraft, model.AssessmentActive, model.AssessmentFinalized,
	).Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to query portfolio totals: %w", err)
	}

	return &row, nil
}

func (r *statisticsRepository) OverdueQuarterCount(ctx context.Context, financialYear string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Table("schedule_entries").
		Joins("JOIN assessments ON assessments.id = schedule_entries.assessment_id").
		Where("assessments.financial_year = ? AND schedule_entries.is_overdue = TRUE", financialYear).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count overdue quarters: %w", err)
	}
	return count, nil
}

func (r *statisticsRepository) TopLiabilities(ctx context.Context, financialYear string, limit int) ([]LiabilityRankRow, error) {
	query := `
		SELECT
			a.id AS assessment_id,
			a.company_id,
			a.tax_regime,
			a.net_tax_payable,
			COALESCE(p.paid, 0) AS total_paid
		FROM assessments a
		LEFT JOIN (
			SELECT assessment_id, SUM(amount) AS paid FROM payments GROUP BY assessment_id
		) p ON p.assessment_id = a.id
		WHERE a.financial_year = $1
		ORDER BY a.net_tax_payable DESC
		LIMIT $2
	`

	var rows []LiabilityRankRow
	if err := r.db.WithContext(ctx).Raw(query, financialYear, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query top liabilities: %w", err)
	}

	return rows, nil
}

func (r *statisticsRepository) MonthlyCollections(ctx context.Context, financialYear string) ([]MonthCollectionRow, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('month', p.payment_date), 'YYYY-MM') AS month,
			COALESCE(SUM(p.amount), 0) AS amount,
			COUNT(*) AS count
		FROM payments p
		JOIN assessments a ON a.id = p.assessment_id
		WHERE a.financial_year = $1
		GROUP BY DATE_TRUNC('month', p.payment_date)
		ORDER BY month
	`

	var rows []MonthCollectionRow
	if err := r.db.WithContext(ctx).Raw(query, financialYear).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query monthly collections: %w", err)
	}

	return rows, nil
}
