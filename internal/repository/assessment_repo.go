package repository

import (
	"context"

	"taxengine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssessmentFilter narrows List results. Zero-valued fields are ignored.
type AssessmentFilter struct {
	CompanyID     *uuid.UUID
	FinancialYear string
	Status        string
	TaxRegime     string
}

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	FindByIDWithSchedule(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	FindByCompanyAndYear(ctx context.Context, companyID uuid.UUID, financialYear string) (*model.Assessment, error)
	List(ctx context.Context, filter AssessmentFilter, page, limit int) ([]model.Assessment, int64, error)
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	Update(ctx context.Context, assessment *model.Assessment) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(assessment).Error
}

func (r *assessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := GetDB(ctx, r.db).First(&assessment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByIDWithSchedule(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := GetDB(ctx, r.db).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB { return db.Order("quarter asc") }).
		First(&assessment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindByCompanyAndYear(ctx context.Context, companyID uuid.UUID, financialYear string) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := GetDB(ctx, r.db).
		First(&assessment, "company_id = ? AND financial_year = ?", companyID, financialYear).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) List(ctx context.Context, filter AssessmentFilter, page, limit int) ([]model.Assessment, int64, error) {
	var assessments []model.Assessment
	var total int64

	db := GetDB(ctx, r.db)
	if err := r.filtered(db.Model(&model.Assessment{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.filtered(db, filter).Order("created_at desc").Offset(offset).Limit(limit).Find(&assessments).Error; err != nil {
		return nil, 0, err
	}

	return assessments, total, nil
}

func (r *assessmentRepository) filtered(db *gorm.DB, filter AssessmentFilter) *gorm.DB {
	if filter.CompanyID != nil {
		db = db.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.FinancialYear != "" {
		db = db.Where("financial_year = ?", filter.FinancialYear)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.TaxRegime != "" {
		db = db.Where("tax_regime = ?", filter.TaxRegime)
	}
	return db
}

func (r *assessmentRepository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := GetDB(ctx, r.db).Model(&model.Assessment{}).
		Where("status = ?", model.AssessmentActive).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Update persists the full row. Schedule rows are owned by the schedule
// repository and are deliberately not written here.
func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(assessment).Error
}
