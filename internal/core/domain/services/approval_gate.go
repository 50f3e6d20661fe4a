package services

import "orderflow/internal/core/domain/model/approval"

// ApprovalGate decides whether the approvals raised for one (order, step) pair
// let the order enter the step.
type ApprovalGate struct{}

func NewApprovalGate() ApprovalGate {
	return ApprovalGate{}
}

// IsSatisfied is true when no approval is pending and at least one was approved.
// A step with no approval records at all is not satisfied.
func (g ApprovalGate) IsSatisfied(approvals []*approval.Approval) bool {
	approved := false
	for _, a := range approvals {
		switch a.Status() {
		case approval.Pending:
			return false
		case approval.Approved:
			approved = true
		}
	}
	return approved
}
