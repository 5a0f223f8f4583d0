package events

import "time"

const EmployeeSyncedTopic = "care.employee.sync.v1"

// EmployeeSyncedEvent is emitted through the outbox when a webhook sync
// creates an employee for the first time. Updates and soft deletes do not
// emit; downstream provisioning only cares about first appearance.
type EmployeeSyncedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	ExternalID int64     `json:"external_id"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
