package repository

import (
	"context"

	"taxengine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleRepository interface {
	Replace(ctx context.Context, assessmentID uuid.UUID, entries []model.ScheduleEntry) error
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.ScheduleEntry, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Replace swaps an assessment's schedule wholesale. Entries are regenerated
// on every recomputation, so partial updates are never needed. Callers run
// this inside a transaction.
func (r *scheduleRepository) Replace(ctx context.Context, assessmentID uuid.UUID, entries []model.ScheduleEntry) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("assessment_id = ?", assessmentID).Delete(&model.ScheduleEntry{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return db.Create(&entries).Error
}

func (r *scheduleRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	if err := GetDB(ctx, r.db).
		Where("assessment_id = ?", assessmentID).
		Order("quarter asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
