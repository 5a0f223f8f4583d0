package audit

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Record(ctx context.Context, entry *Entry) error
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

func (r *repository) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// NewEntry builds an audit entry, marshalling details best-effort: a
// detail that cannot be serialized is logged and dropped, never fatal.
func NewEntry(companyID uuid.UUID, action, entityType, entityID, actorID string, details map[string]any) *Entry {
	entry := &Entry{
		ID:         uuid.New(),
		CompanyID:  companyID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
	}

	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			zap.L().Named("audit").Warn("marshal audit details failed", zap.Error(err))
		} else {
			entry.Details = raw
		}
	}

	return entry
}
