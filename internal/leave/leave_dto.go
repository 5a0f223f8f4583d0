package leave

// SubmitLeaveEnvelope matches the wire shape of the submission endpoint:
// the draft arrives wrapped in a leaveRequest key.
type SubmitLeaveEnvelope struct {
	LeaveRequest SubmitLeaveRequest `json:"leaveRequest" binding:"required"`
}

type SubmitLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	LeaveType  string `json:"leave_type" binding:"required,oneof=annual sick unpaid maternity paternity compassionate"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason"`
}

type LeaveRequestResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveType   string  `json:"leave_type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   int     `json:"total_days"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	RuleApplied *string `json:"rule_applied,omitempty"`
	RequestedBy string  `json:"requested_by"`
	SubmittedAt string  `json:"submitted_at"`
}

// SubmissionResult is what the submission endpoint returns: the persisted
// request plus the resolved disposition and the rule that produced it.
type SubmissionResult struct {
	Data        LeaveRequestResponse `json:"data"`
	Status      string               `json:"status"`
	RuleApplied string               `json:"ruleApplied"`
}
