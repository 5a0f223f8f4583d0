package leaverule

import (
	"time"

	"github.com/google/uuid"
)

// LeaveApprovalRule is a static approval criterion administered per
// company. The evaluator only exercises MaxDurationDays and LeaveType;
// MinDurationDays and MinDaysNotice are persisted for administration but
// never evaluated (see Evaluate).
type LeaveApprovalRule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_rules_company_priority"`

	Name      string  `gorm:"type:varchar(100);not null"`
	LeaveType *string `gorm:"type:varchar(30)"`

	MinDurationDays *int `gorm:"type:int"`
	MaxDurationDays *int `gorm:"type:int"`
	MinDaysNotice   *int `gorm:"type:int"`

	RequiresManagerApproval bool `gorm:"not null;default:true"`
	AutoApprove             bool `gorm:"not null;default:false"`

	IsActive bool `gorm:"not null;default:true"`
	Priority int  `gorm:"type:int;not null;default:100;index:idx_leave_rules_company_priority"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveApprovalRule) TableName() string {
	return "leave_approval_rules"
}

// Action is the disposition a matching rule imposes on a request.
// auto_approve wins over requires_manager_approval; a rule with neither
// flag still leaves the request pending for manual handling.
func (r LeaveApprovalRule) Action() string {
	if r.AutoApprove {
		return StatusApproved
	}
	return StatusPending
}
