package leaverule

type CreateRuleRequest struct {
	Name                    string  `json:"name" binding:"required,max=100"`
	LeaveType               *string `json:"leave_type"`
	MinDurationDays         *int    `json:"min_duration_days"`
	MaxDurationDays         *int    `json:"max_duration_days"`
	MinDaysNotice           *int    `json:"min_days_notice"`
	RequiresManagerApproval bool    `json:"requires_manager_approval"`
	AutoApprove             bool    `json:"auto_approve"`
	IsActive                *bool   `json:"is_active"`
	Priority                int     `json:"priority" binding:"required"`
}

type UpdateRuleRequest struct {
	Name                    string  `json:"name" binding:"required,max=100"`
	LeaveType               *string `json:"leave_type"`
	MinDurationDays         *int    `json:"min_duration_days"`
	MaxDurationDays         *int    `json:"max_duration_days"`
	MinDaysNotice           *int    `json:"min_days_notice"`
	RequiresManagerApproval bool    `json:"requires_manager_approval"`
	AutoApprove             bool    `json:"auto_approve"`
	IsActive                bool    `json:"is_active"`
	Priority                int     `json:"priority" binding:"required"`
}

type RuleResponse struct {
	ID                      string  `json:"id"`
	CompanyID               string  `json:"company_id"`
	Name                    string  `json:"name"`
	LeaveType               *string `json:"leave_type,omitempty"`
	MinDurationDays         *int    `json:"min_duration_days,omitempty"`
	MaxDurationDays         *int    `json:"max_duration_days,omitempty"`
	MinDaysNotice           *int    `json:"min_days_notice,omitempty"`
	RequiresManagerApproval bool    `json:"requires_manager_approval"`
	AutoApprove             bool    `json:"auto_approve"`
	IsActive                bool    `json:"is_active"`
	Priority                int     `json:"priority"`
}
