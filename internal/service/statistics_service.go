package service

import (
	"context"
	"fmt"

	"taxengine/internal/apperr"
	"taxengine/internal/calculation"
	"taxengine/internal/clock"
	"taxengine/internal/model"
	"taxengine/internal/repository"

	"github.com/shopspring/decimal"
)

type StatisticsService interface {
	GetPortfolio(ctx context.Context, financialYear string) (model.PortfolioStatistics, error)
	GetCollections(ctx context.Context, financialYear string) (model.CollectionsStatistics, error)
}

type statisticsService struct {
	statsRepo repository.StatisticsRepository
	companies CompanyDirectory
	clock     clock.Clock
}

func NewStatisticsService(statsRepo repository.StatisticsRepository, companies CompanyDirectory, clk clock.Clock) StatisticsService {
	return &statisticsService{statsRepo: statsRepo, companies: companies, clock: clk}
}

// GetPortfolio aggregates liability, collection, and overdue totals across
// one financial year's assessments. Defaults to the year containing today.
func (s *statisticsService) GetPortfolio(ctx context.Context, financialYear string) (model.PortfolioStatistics, error) {
	fy, err := s.resolveYear(financialYear)
	if err != nil {
		return model.PortfolioStatistics{}, err
	}

	totals, err := s.statsRepo.PortfolioTotals(ctx, fy)
	if err != nil {
		return model.PortfolioStatistics{}, fmt.Errorf("failed to aggregate portfolio: %w", err)
	}
	overdue, err := s.statsRepo.OverdueQuarterCount(ctx, fy)
	if err != nil {
		return model.PortfolioStatistics{}, fmt.Errorf("failed to count overdue quarters: %w", err)
	}
	ranked, err := s.statsRepo.TopLiabilities(ctx, fy, 5)
	if err != nil {
		return model.PortfolioStatistics{}, fmt.Errorf("failed to rank liabilities: %w", err)
	}

	top := make([]model.LiabilityRank, 0, len(ranked))
	for _, row := range ranked {
		rank := model.LiabilityRank{
			AssessmentID:  row.AssessmentID,
			CompanyID:     row.CompanyID,
			TaxRegime:     row.TaxRegime,
			NetTaxPayable: row.NetTaxPayable,
			TotalPaid:     row.TotalPaid,
		}
		if s.companies != nil {
			rank.CompanyName = s.companies.CompanyName(ctx, row.CompanyID)
		}
		top = append(top, rank)
	}

	return model.PortfolioStatistics{
		FinancialYear:     fy,
		TotalAssessments:  totals.TotalAssessments,
		DraftCount:        totals.DraftCount,
		ActiveCount:       totals.ActiveCount,
		FinalizedCount:    totals.FinalizedCount,
		TotalTaxLiability: totals.TotalTaxLiability,
		TotalNetPayable:   totals.TotalNetPayable,
		TotalPaid:         totals.TotalPaid,
		TotalOutstanding:  totals.TotalOutstanding,
		OverdueQuarters:   overdue,
		TopLiabilities:    top,
	}, nil
}

// GetCollections breaks the year's advance-tax receipts down by calendar
// month.
func (s *statisticsService) GetCollections(ctx context.Context, financialYear string) (model.CollectionsStatistics, error) {
	fy, err := s.resolveYear(financialYear)
	if err != nil {
		return model.CollectionsStatistics{}, err
	}

	rows, err := s.statsRepo.MonthlyCollections(ctx, fy)
	if err != nil {
		return model.CollectionsStatistics{}, fmt.Errorf("failed to aggregate collections: %w", err)
	}

	stats := model.CollectionsStatistics{
		FinancialYear: fy,
		TotalPaid:     decimal.Zero,
		Monthly:       make([]model.MonthCollection, 0, len(rows)),
	}
	for _, row := range rows {
		stats.TotalPaid = stats.TotalPaid.Add(row.Amount)
		stats.PaymentCount += row.Count
		stats.Monthly = append(stats.Monthly, model.MonthCollection{
			Month:  row.Month,
			Amount: row.Amount,
			Count:  row.Count,
		})
	}
	return stats, nil
}

func (s *statisticsService) resolveYear(financialYear string) (string, error) {
	if financialYear == "" {
		return calculation.FinancialYearFor(s.clock.Today()).Label(), nil
	}
	fy, err := calculation.ParseFinancialYear(financialYear)
	if err != nil {
		return "", apperr.Validation("financial_year", err.Error())
	}
	return fy.Label(), nil
}
