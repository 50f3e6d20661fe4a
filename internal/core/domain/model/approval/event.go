package approval

import "orderflow/internal/core/domain/model/kernel"

// ResolvedEvent is published once the approvals of a step are all resolved and at
// least one of them approved the step.
type ResolvedEvent struct {
	ApprovalID kernel.UUID
	OrderID    kernel.UUID
	StepID     kernel.UUID
	ApproverID string
	Decision   Status
}
