package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "gorm_tx"

// TransactionManager manages database transactions via context injection.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error

	// LockAssessment serializes writers of one assessment for the rest of
	// the current transaction. Concurrent writers block here rather than
	// interleave; the lock releases automatically at commit or rollback.
	// Must be called inside RunInTx.
	LockAssessment(ctx context.Context, id uuid.UUID) error
}

type transactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) TransactionManager {
	return &transactionManager{db: db}
}

func (t *transactionManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey, tx)
		return fn(txCtx)
	})
}

func (t *transactionManager) LockAssessment(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, t.db).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", id.String()).Error
}

// GetDB extracts the transaction DB from context if present, otherwise returns root DB.
func GetDB(ctx context.Context, rootDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return rootDB.WithContext(ctx)
}
