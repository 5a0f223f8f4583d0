package deadletter

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FailedSync statuses. pending_retry is the only non-terminal state; no
// path returns from resolved or manual_review_required.
const (
	StatusPendingRetry         = "pending_retry"
	StatusResolved             = "resolved"
	StatusManualReviewRequired = "manual_review_required"
)

// MaxRetries is the retry ceiling; reaching it escalates the row to
// manual review.
const MaxRetries = 3

type FailedSync struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Payload      datatypes.JSON `gorm:"type:jsonb;not null"`
	ErrorMessage string         `gorm:"type:text;not null"`

	Retries int    `gorm:"type:int;not null;default:0"`
	Status  string `gorm:"type:varchar(30);not null;default:'pending_retry';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FailedSync) TableName() string {
	return "failed_syncs"
}
