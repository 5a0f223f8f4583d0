package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee statuses. A deleted external employee becomes inactive; the
// row is never removed.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// CompliancePending is the default for unsupplied compliance fields.
const CompliancePending = "Pending"

// Employee rows are keyed externally by (company_id, external_id) so a
// replayed webhook updates instead of duplicating.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employees_company_external"`
	ExternalID int64     `gorm:"not null;uniqueIndex:uq_employees_company_external"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null;default:''"`
	Email     string `gorm:"type:varchar(255);not null"`
	Phone     string `gorm:"type:varchar(40)"`

	Role   string `gorm:"type:varchar(60);not null"`
	Status string `gorm:"type:varchar(20);not null;default:'active'"`

	RightToWorkStatus string `gorm:"type:varchar(30);not null;default:'Pending'"`
	DBSStatus         string `gorm:"type:varchar(30);not null;default:'Pending'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
