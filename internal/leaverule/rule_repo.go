package leaverule

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/djval79/careflow-sub001/internal/tenant"
)

//go:generate mockgen -source=rule_repo.go -destination=mock/rule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rule *LeaveApprovalRule) error
	FindAllByCompany(ctx context.Context, companyID string) ([]LeaveApprovalRule, error)
	// FindActiveByCompany returns active rules ordered by ascending
	// priority, created_at ascending on equal priority. The evaluator
	// relies on this ordering for its first-match semantics.
	FindActiveByCompany(ctx context.Context, companyID string) ([]LeaveApprovalRule, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApprovalRule, error)
	Update(ctx context.Context, rule *LeaveApprovalRule) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, rule *LeaveApprovalRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]LeaveApprovalRule, error) {
	var rules []LeaveApprovalRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("priority ASC, created_at ASC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) FindActiveByCompany(ctx context.Context, companyID string) ([]LeaveApprovalRule, error) {
	var rules []LeaveApprovalRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Order("priority ASC, created_at ASC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveApprovalRule, error) {
	var rule LeaveApprovalRule
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&rule, "id = ?", id).Error
	return &rule, err
}

func (r *repository) Update(ctx context.Context, rule *LeaveApprovalRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&LeaveApprovalRule{}, "id = ?", id).Error
}
