package employee

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/djval79/careflow-sub001/internal/tenant"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByExternalID(ctx context.Context, companyID string, externalID int64) (*Employee, error)
	// Upsert inserts keyed by (company_id, external_id), updating the
	// mapped columns on conflict so concurrent syncs of the same
	// external id cannot duplicate rows.
	Upsert(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) error
	SetStatusByExternalID(ctx context.Context, companyID string, externalID int64, status string) (int64, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
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

func (r *repository) FindByExternalID(ctx context.Context, companyID string, externalID int64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Upsert(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "company_id"}, {Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "email", "phone",
				"role", "status", "right_to_work_status", "dbs_status",
				"updated_at",
			}),
		}).
		Create(empl).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) SetStatusByExternalID(ctx context.Context, companyID string, externalID int64, status string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("external_id = ?", externalID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("last_name ASC, first_name ASC").
		Find(&employees).Error
	return employees, err
}
