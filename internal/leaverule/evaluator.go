package leaverule

// Dispositions a rule evaluation can resolve to. These are also the only
// statuses a leave request is ever created with.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Draft carries the request attributes the evaluator looks at.
type Draft struct {
	LeaveType string
	TotalDays int
}

// Outcome reports the resolved disposition and which rule, if any, fired.
type Outcome struct {
	Status   string
	RuleName string
	Matched  bool
}

// Evaluate scans rules in the order the store returned them (ascending
// priority, created_at breaking ties) and adopts the action of the first
// rule whose specified criteria all hold. Unspecified criteria are
// treated as always matching. No match leaves the request pending.
//
// Only max_duration_days and leave_type are evaluated; min_days_notice
// exists in the schema but does not participate in matching.
func Evaluate(rules []LeaveApprovalRule, draft Draft) Outcome {
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if !matches(rule, draft) {
			continue
		}
		return Outcome{
			Status:   rule.Action(),
			RuleName: rule.Name,
			Matched:  true,
		}
	}

	return Outcome{Status: StatusPending}
}

func matches(rule LeaveApprovalRule, draft Draft) bool {
	if rule.MaxDurationDays != nil && draft.TotalDays > *rule.MaxDurationDays {
		return false
	}
	if rule.LeaveType != nil && *rule.LeaveType != draft.LeaveType {
		return false
	}
	return true
}
