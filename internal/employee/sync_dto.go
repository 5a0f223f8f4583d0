package employee

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/djval79/careflow-sub001/internal/shared/apperror"
)

// Sync actions accepted from the external HR system.
const (
	ActionCreated = "employee.created"
	ActionUpdated = "employee.updated"
	ActionDeleted = "employee.deleted"
)

// SyncPayload is the inbound webhook body. It is validated strictly
// before any business logic runs; an invalid payload is rejected with no
// side effects. Action membership is checked separately so an unknown
// action surfaces as a business rejection, not a validation failure.
type SyncPayload struct {
	Action   string       `json:"action" validate:"required"`
	Employee SyncEmployee `json:"employee" validate:"required"`
	TenantID string       `json:"tenant_id" validate:"required,uuid"`
}

type SyncEmployee struct {
	ExternalID int64           `json:"id" validate:"required"`
	FullName   string          `json:"full_name" validate:"required"`
	Email      string          `json:"email" validate:"required,email"`
	Phone      string          `json:"phone" validate:"omitempty"`
	Role       string          `json:"role" validate:"required"`
	Status     string          `json:"status" validate:"required"`
	Compliance *SyncCompliance `json:"compliance" validate:"omitempty"`
}

type SyncCompliance struct {
	RightToWorkStatus string `json:"right_to_work_status" validate:"omitempty"`
	DBSStatus         string `json:"dbs_status" validate:"omitempty"`
}

var syncValidate = validator.New(validator.WithRequiredStructEnabled())

// ParsePayload decodes and validates a raw webhook body, producing either
// a typed payload or a validation error before any persistence happens.
func ParsePayload(raw []byte) (SyncPayload, error) {
	var payload SyncPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return SyncPayload{}, apperror.Wrap(err, apperror.CodeInvalidInput, "malformed sync payload", http.StatusBadRequest)
	}

	if err := syncValidate.Struct(payload); err != nil {
		return SyncPayload{}, apperror.MapValidationError(err)
	}

	return payload, nil
}

type EmployeeResponse struct {
	ID                string `json:"id"`
	CompanyID         string `json:"company_id"`
	ExternalID        int64  `json:"external_id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Role              string `json:"role"`
	Status            string `json:"status"`
	RightToWorkStatus string `json:"right_to_work_status"`
	DBSStatus         string `json:"dbs_status"`
}
