package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Action     string         `gorm:"type:varchar(60);not null"`
	EntityType string         `gorm:"type:varchar(40);not null"`
	EntityID   string         `gorm:"type:varchar(64);not null"`
	ActorID    string         `gorm:"type:varchar(64)"`
	Details    datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
}

func (Entry) TableName() string {
	return "audit_logs"
}
