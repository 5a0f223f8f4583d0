package deadletter

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=deadletter_repo.go -destination=mock/deadletter_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, fs *FailedSync) error
	// FindRetryable returns rows still eligible for the sweeper:
	// status pending_retry with retries below the ceiling, oldest first.
	FindRetryable(ctx context.Context) ([]FailedSync, error)
	FindAll(ctx context.Context, limit int) ([]FailedSync, error)
	Update(ctx context.Context, fs *FailedSync) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, fs *FailedSync) error {
	return r.db.WithContext(ctx).Create(fs).Error
}

func (r *repository) FindRetryable(ctx context.Context) ([]FailedSync, error) {
	var rows []FailedSync
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPendingRetry).
		Where("retries < ?", MaxRetries).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, limit int) ([]FailedSync, error) {
	var rows []FailedSync
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, fs *FailedSync) error {
	return r.db.WithContext(ctx).Save(fs).Error
}
