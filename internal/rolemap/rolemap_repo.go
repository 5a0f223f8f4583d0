package rolemap

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleMapping translates an external HR system role name into ours.
type RoleMapping struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalRole string    `gorm:"type:varchar(60);not null;uniqueIndex"`
	InternalRole string    `gorm:"type:varchar(60);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RoleMapping) TableName() string {
	return "role_mappings"
}

//go:generate mockgen -source=rolemap_repo.go -destination=mock/rolemap_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]RoleMapping, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]RoleMapping, error) {
	var mappings []RoleMapping
	err := r.db.WithContext(ctx).Find(&mappings).Error
	return mappings, err
}
