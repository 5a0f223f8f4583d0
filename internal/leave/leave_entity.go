package leave

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRequest is created once with its final initial status; no workflow
// transitions are modelled after submission. Status is resolved by the
// rule evaluator at submission time.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`

	LeaveType string    `gorm:"type:varchar(30);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status      string  `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_company_status"`
	RuleApplied *string `gorm:"type:varchar(100)"`

	RequestedBy uuid.UUID `gorm:"type:uuid;not null"`
	SubmittedAt time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveEntitlement is the default allowance provisioned for an employee
// when they first arrive through the sync pipeline.
type LeaveEntitlement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_entitlement_employee_type_year"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_entitlement_employee_type_year"`

	LeaveType string `gorm:"type:varchar(30);not null;uniqueIndex:uq_entitlement_employee_type_year"`
	TotalDays int    `gorm:"type:int;not null"`
	Year      int    `gorm:"type:int;not null;uniqueIndex:uq_entitlement_employee_type_year"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveEntitlement) TableName() string {
	return "leave_entitlements"
}
