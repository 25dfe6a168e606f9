package repository

import (
	"context"

	"taxengine/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.Payment, error)
	SetJournalNumber(ctx context.Context, id uuid.UUID, journalNumber string) (bool, error)
	RelinkScheduleEntries(ctx context.Context, assessmentID uuid.UUID, entryIDByQuarter map[int]uuid.UUID) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	if err := GetDB(ctx, r.db).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	if err := GetDB(ctx, r.db).
		Where("assessment_id = ?", assessmentID).
		Order("payment_date asc, created_at asc").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// RelinkScheduleEntries re-points designated payments at the schedule rows
// regenerated for their quarter. Replace reissues entry IDs on every
// recomputation, so the stored reference would otherwise dangle. Payments
// recorded without a designation are left untouched.
func (r *paymentRepository) RelinkScheduleEntries(ctx context.Context, assessmentID uuid.UUID, entryIDByQuarter map[int]uuid.UUID) error {
	db := GetDB(ctx, r.db)
	for quarter, entryID := range entryIDByQuarter {
		if err := db.Model(&model.Payment{}).
			Where("assessment_id = ? AND quarter = ? AND schedule_entry_id IS NOT NULL", assessmentID, quarter).
			Update("schedule_entry_id", entryID).Error; err != nil {
			return err
		}
	}
	return nil
}

// SetJournalNumber backfills the journal reference once. The IS NULL guard
// makes the write idempotent: a second attempt reports false instead of
// overwriting the recorded number.
func (r *paymentRepository) SetJournalNumber(ctx context.Context, id uuid.UUID, journalNumber string) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Payment{}).
		Where("id = ? AND journal_number IS NULL", id).
		Update("journal_number", journalNumber)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
