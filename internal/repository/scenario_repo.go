package repository

import (
	"context"

	"taxengine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScenarioRepository interface {
	Create(ctx context.Context, scenario *model.Scenario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Scenario, error)
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type scenarioRepository struct {
	db *gorm.DB
}

func NewScenarioRepository(db *gorm.DB) ScenarioRepository {
	return &scenarioRepository{db: db}
}

func (r *scenarioRepository) Create(ctx context.Context, scenario *model.Scenario) error {
	return GetDB(ctx, r.db).Create(scenario).Error
}

func (r *scenarioRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	var scenario model.Scenario
	if err := GetDB(ctx, r.db).First(&scenario, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (r *scenarioRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.Scenario, error) {
	var scenarios []model.Scenario
	if err := GetDB(ctx, r.db).
		Where("assessment_id = ?", assessmentID).
		Order("created_at desc").
		Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (r *scenarioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Scenario{}, "id = ?", id).Error
}
